package rpc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meridianchain/meridian/internal/blockhash"
	"github.com/meridianchain/meridian/mmr"
	"github.com/stretchr/testify/require"
)

type fakeLog struct {
	size  uint64
	root  blockhash.Hash
	proof *mmr.MerkleProof[blockhash.Hash]
	err   error
}

func (f *fakeLog) MMRSize() uint64 { return f.size }
func (f *fakeLog) Root() (blockhash.Hash, error) {
	return f.root, f.err
}
func (f *fakeLog) GenProof(pos uint64) (*mmr.MerkleProof[blockhash.Hash], error) {
	return f.proof, f.err
}
func (f *fakeLog) Push(leaf blockhash.Hash) (uint64, error) {
	return f.size, f.err
}

func call(t *testing.T, srv *Server, method string, params string) Response {
	t.Helper()
	body, err := json.Marshal(Request{JSONRPC: "2.0", ID: json.RawMessage(`1`), Method: method, Params: json.RawMessage(params)})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGetLeafCount(t *testing.T) {
	srv := NewServer(&fakeLog{size: 42})
	resp := call(t, srv, "getLeafCount", "null")
	require.Nil(t, resp.Error)
	// an mmr of size 42 has peaks of heights 4, 2, 1, 0: 16+4+2+1 leaves
	require.Equal(t, float64(23), resp.Result)
}

func TestGetRoot(t *testing.T) {
	srv := NewServer(&fakeLog{root: blockhash.Sum([]byte("root"))})
	resp := call(t, srv, "getRoot", "null")
	require.Nil(t, resp.Error)
	require.NotNil(t, resp.Result)
}

func TestUnknownMethod(t *testing.T) {
	srv := NewServer(&fakeLog{})
	resp := call(t, srv, "notAMethod", "null")
	require.NotNil(t, resp.Error)
}

func TestSubmitLeafInvalidParams(t *testing.T) {
	srv := NewServer(&fakeLog{})
	resp := call(t, srv, "submitLeaf", `{"leaf": "not-a-hash-array"}`)
	require.NotNil(t, resp.Error)
}

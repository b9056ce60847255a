// Package rpc exposes a minimal JSON-RPC 2.0 surface over the node's
// merkle log. No retrieved dependency's RPC layer (jsonrpc2,
// gorilla/websocket) comes with actual source to ground an implementation
// against - those only appear as bare entries in dependency manifests - so
// this is built directly on net/http and encoding/json, kept deliberately
// thin: the core spec names a wire format as the caller's concern, not
// the engine's.
package rpc

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/meridianchain/meridian/internal/blockhash"
	"github.com/meridianchain/meridian/mmr"
)

// Request is a JSON-RPC 2.0 request envelope.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// Response is a JSON-RPC 2.0 response envelope.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *ResponseError  `json:"error,omitempty"`
}

// ResponseError carries a JSON-RPC error.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Log is the subset of node state the RPC surface reads from. The running
// node satisfies it directly; tests can supply a narrower fake.
type Log interface {
	MMRSize() uint64
	Root() (blockhash.Hash, error)
	GenProof(pos uint64) (*mmr.MerkleProof[blockhash.Hash], error)
	Push(leaf blockhash.Hash) (uint64, error)
}

// Server serves the JSON-RPC surface over a Log.
type Server struct {
	log Log
}

// NewServer constructs a Server over log.
func NewServer(log Log) *Server {
	return &Server{log: log}
}

// ServeHTTP implements http.Handler. Every request is a single JSON-RPC
// call; batching is not supported.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, nil, -32700, "parse error: "+err.Error())
		return
	}

	result, err := s.dispatch(req.Method, req.Params)
	if err != nil {
		writeError(w, req.ID, -32000, err.Error())
		return
	}
	writeResult(w, req.ID, result)
}

func (s *Server) dispatch(method string, params json.RawMessage) (any, error) {
	switch method {
	case "getLeafCount":
		// MMRSize counts internal nodes too; a peak of height h roots a
		// perfect subtree holding 2^h leaves.
		var leaves uint64
		for _, peak := range mmr.GetPeaks(s.log.MMRSize()) {
			leaves += uint64(1) << mmr.PosHeightInTree(peak)
		}
		return leaves, nil

	case "getRoot":
		root, err := s.log.Root()
		if err != nil {
			return nil, err
		}
		return root, nil

	case "getProof":
		var args struct {
			Pos uint64 `json:"pos"`
		}
		if err := json.Unmarshal(params, &args); err != nil {
			return nil, fmt.Errorf("invalid params: %w", err)
		}
		proof, err := s.log.GenProof(args.Pos)
		if err != nil {
			return nil, err
		}
		return struct {
			MMRSize uint64             `json:"mmr_size"`
			Proof   []blockhash.Hash   `json:"proof"`
		}{MMRSize: proof.MMRSize(), Proof: proof.Elements()}, nil

	case "submitLeaf":
		var args struct {
			Leaf blockhash.Hash `json:"leaf"`
		}
		if err := json.Unmarshal(params, &args); err != nil {
			return nil, fmt.Errorf("invalid params: %w", err)
		}
		pos, err := s.log.Push(args.Leaf)
		if err != nil {
			return nil, err
		}
		return pos, nil

	default:
		return nil, fmt.Errorf("unknown method %q", method)
	}
}

func writeResult(w http.ResponseWriter, id json.RawMessage, result any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Response{JSONRPC: "2.0", ID: id, Result: result})
}

func writeError(w http.ResponseWriter, id json.RawMessage, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Response{JSONRPC: "2.0", ID: id, Error: &ResponseError{Code: code, Message: msg}})
}

package checkpoint

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/meridianchain/meridian/internal/blockhash"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return key
}

func TestSignVerifyRoundTrip(t *testing.T) {
	key := testKey(t)
	state := NewState(11, blockhash.Sum([]byte("root")), []blockhash.Hash{
		blockhash.Sum([]byte("peak-a")),
		blockhash.Sum([]byte("peak-b")),
	})

	envelope, err := Sign(state, key)
	require.NoError(t, err)

	got, err := Verify(envelope, &key.PublicKey)
	require.NoError(t, err)
	require.Equal(t, state, got)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	key := testKey(t)
	other := testKey(t)
	state := NewState(3, blockhash.Sum([]byte("root")), nil)

	envelope, err := Sign(state, key)
	require.NoError(t, err)

	_, err = Verify(envelope, &other.PublicKey)
	require.Error(t, err)
}

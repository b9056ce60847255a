// Package checkpoint periodically signs and wraps the merkle log's current
// root and size into a COSE_Sign1 envelope, giving the log a
// independently-verifiable published commitment - the same role the
// teacher's massif root signing plays, generalized from "massif root" to
// "mmr root".
package checkpoint

import (
	"crypto/ecdsa"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/meridianchain/meridian/internal/blockhash"
	cose "github.com/veraison/go-cose"
)

// State is the payload CBOR-encoded inside the COSE envelope: the root
// commitment at a known size and the peaks that produce it, timestamped.
type State struct {
	MMRSize   uint64            `cbor:"1,keyasint"`
	Root      blockhash.Hash    `cbor:"2,keyasint"`
	Peaks     []blockhash.Hash  `cbor:"3,keyasint"`
	Timestamp int64             `cbor:"4,keyasint"`
}

// Sign CBOR-encodes state and wraps it in a COSE_Sign1 envelope signed by
// key, using ES256.
func Sign(state State, key *ecdsa.PrivateKey) ([]byte, error) {
	payload, err := cbor.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: encoding state: %w", err)
	}

	signer, err := cose.NewSigner(cose.AlgorithmES256, key)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: building signer: %w", err)
	}

	msg := cose.NewSign1Message()
	msg.Headers.Protected.SetAlgorithm(cose.AlgorithmES256)
	msg.Payload = payload

	if err := msg.Sign(nil, nil, signer); err != nil {
		return nil, fmt.Errorf("checkpoint: signing: %w", err)
	}

	envelope, err := msg.MarshalCBOR()
	if err != nil {
		return nil, fmt.Errorf("checkpoint: encoding envelope: %w", err)
	}
	return envelope, nil
}

// Verify checks envelope's signature against pub and decodes the State it
// carries.
func Verify(envelope []byte, pub *ecdsa.PublicKey) (State, error) {
	var zero State
	verifier, err := cose.NewVerifier(cose.AlgorithmES256, pub)
	if err != nil {
		return zero, fmt.Errorf("checkpoint: building verifier: %w", err)
	}

	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(envelope); err != nil {
		return zero, fmt.Errorf("checkpoint: decoding envelope: %w", err)
	}
	if err := msg.Verify(nil, verifier); err != nil {
		return zero, fmt.Errorf("checkpoint: verifying signature: %w", err)
	}

	var state State
	if err := cbor.Unmarshal(msg.Payload, &state); err != nil {
		return zero, fmt.Errorf("checkpoint: decoding state: %w", err)
	}
	return state, nil
}

// NewState builds a State stamped with the current time.
func NewState(mmrSize uint64, root blockhash.Hash, peaks []blockhash.Hash) State {
	return State{
		MMRSize:   mmrSize,
		Root:      root,
		Peaks:     peaks,
		Timestamp: time.Now().UnixMilli(),
	}
}

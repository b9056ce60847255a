package cli

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
)

// loadSigningKey reads a PEM-encoded EC private key, the format
// "openssl ecparam -genkey" produces, used to sign checkpoint envelopes.
func loadSigningKey(path string) (*ecdsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	block, rest := pem.Decode(data)
	// openssl ecparam -genkey writes an EC PARAMETERS block ahead of the key
	for block != nil && block.Type == "EC PARAMETERS" {
		block, rest = pem.Decode(rest)
	}
	if block == nil {
		return nil, fmt.Errorf("%s: not a PEM file", path)
	}
	key, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%s: parsing EC private key: %w", path, err)
	}
	return key, nil
}

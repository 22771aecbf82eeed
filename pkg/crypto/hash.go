// Package crypto provides the hashing primitives behind Quai addresses.
package crypto

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"

	"github.com/Klingon-tech/quai-shadow-wallet/pkg/types"
)

// Keccak256 computes the legacy Keccak-256 hash of the concatenated inputs.
func Keccak256(data ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// AddressFromPubKey derives an address from a compressed or uncompressed
// secp256k1 public key.
// Address = Keccak256(uncompressed_pubkey without 0x04)[12:].
func AddressFromPubKey(pubKey []byte) (types.Address, error) {
	pub, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return types.Address{}, fmt.Errorf("parse public key: %w", err)
	}
	h := Keccak256(pub.SerializeUncompressed()[1:])
	return common.BytesToAddress(h[12:]), nil
}

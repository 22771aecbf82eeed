package wallet

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/Klingon-tech/quai-shadow-wallet/pkg/crypto"
	"github.com/Klingon-tech/quai-shadow-wallet/pkg/types"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip32"
)

// BIP-44 derivation path constants.
// Full path: m/44'/994'/account'/change/index
const (
	// PurposeBIP44 is the BIP-44 purpose field (hardened).
	PurposeBIP44 = bip32.FirstHardenedChild + 44

	// CoinTypeQuai is the SLIP-44 coin type of Quai (hardened).
	CoinTypeQuai = bip32.FirstHardenedChild + 994

	// ChangeExternal is for receiving addresses.
	ChangeExternal = 0
)

// HDKey represents a hierarchical deterministic key (BIP-32).
type HDKey struct {
	key *bip32.Key
}

// NewMasterKey creates a master HD key from a 64-byte seed.
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &HDKey{key: master}, nil
}

// DeriveChild derives a child key at the given index.
// For hardened derivation, add bip32.FirstHardenedChild to the index.
func (k *HDKey) DeriveChild(index uint32) (*HDKey, error) {
	child, err := k.key.NewChildKey(index)
	if err != nil {
		return nil, fmt.Errorf("derive child %d: %w", index, err)
	}
	return &HDKey{key: child}, nil
}

// DerivePath derives a key along a sequence of indices.
func (k *HDKey) DerivePath(indices ...uint32) (*HDKey, error) {
	current := k
	for _, idx := range indices {
		child, err := current.DeriveChild(idx)
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// DeriveExternalChain derives m/44'/994'/account'/0, the parent of every
// receiving address of the account.
func (k *HDKey) DeriveExternalChain(account uint32) (*HDKey, error) {
	return k.DerivePath(
		PurposeBIP44,
		CoinTypeQuai,
		bip32.FirstHardenedChild+account,
		ChangeExternal,
	)
}

// PrivateKeyBytes returns the raw 32-byte private key.
// Returns nil if this is a public-only key.
func (k *HDKey) PrivateKeyBytes() []byte {
	if !k.key.IsPrivate {
		return nil
	}
	raw := k.key.Key
	switch {
	case len(raw) == 33 && raw[0] == 0:
		return raw[1:]
	case len(raw) < 32:
		padded := make([]byte, 32)
		copy(padded[32-len(raw):], raw)
		return padded
	}
	return raw
}

// PublicKeyBytes returns the compressed 33-byte public key.
func (k *HDKey) PublicKeyBytes() []byte {
	return k.key.PublicKey().Key
}

// PrivateKey returns the key as an ECDSA private key for transaction signing.
func (k *HDKey) PrivateKey() (*ecdsa.PrivateKey, error) {
	priv := k.PrivateKeyBytes()
	if priv == nil {
		return nil, fmt.Errorf("cannot sign with a public-only key")
	}
	return ethcrypto.ToECDSA(priv)
}

// Address returns the account address: the last 20 bytes of the Keccak-256
// hash of the uncompressed public key without its 0x04 prefix.
func (k *HDKey) Address() (types.Address, error) {
	return crypto.AddressFromPubKey(k.PublicKeyBytes())
}

package wallet

import (
	"bytes"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip32"
)

// testSeed returns a deterministic seed for testing.
// Uses the BIP-39 test vector: "abandon" x11 + "about" with passphrase "TREZOR".
func testSeed(t *testing.T) []byte {
	t.Helper()
	seed, err := SeedFromMnemonic(testPhrase, "TREZOR")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	return seed
}

func testMaster(t *testing.T) *HDKey {
	t.Helper()
	master, err := NewMasterKey(testSeed(t))
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}
	return master
}

func TestNewMasterKey(t *testing.T) {
	master := testMaster(t)

	if !master.key.IsPrivate {
		t.Error("master key should be private")
	}
	if master.key.Depth != 0 {
		t.Errorf("master key depth = %d, want 0", master.key.Depth)
	}
	if priv := master.PrivateKeyBytes(); len(priv) != 32 {
		t.Errorf("private key length = %d, want 32", len(priv))
	}
	if pub := master.PublicKeyBytes(); len(pub) != 33 {
		t.Errorf("public key length = %d, want 33", len(pub))
	}
}

func TestNewMasterKey_InvalidSeedLength(t *testing.T) {
	tests := []struct {
		name string
		seed []byte
	}{
		{"empty", []byte{}},
		{"too short", make([]byte, 32)},
		{"too long", make([]byte, 128)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMasterKey(tt.seed); err == nil {
				t.Error("expected error for invalid seed length")
			}
		})
	}
}

func TestDeriveChild(t *testing.T) {
	master := testMaster(t)

	child, err := master.DeriveChild(0)
	if err != nil {
		t.Fatalf("DeriveChild(0) error: %v", err)
	}
	if child.key.Depth != 1 {
		t.Errorf("child depth = %d, want 1", child.key.Depth)
	}

	child2, err := master.DeriveChild(1)
	if err != nil {
		t.Fatalf("DeriveChild(1) error: %v", err)
	}
	if bytes.Equal(child.PrivateKeyBytes(), child2.PrivateKeyBytes()) {
		t.Error("different indices should produce different keys")
	}
}

func TestDerivePath(t *testing.T) {
	master := testMaster(t)

	c1, _ := master.DeriveChild(PurposeBIP44)
	c2, _ := c1.DeriveChild(CoinTypeQuai)

	combined, err := master.DerivePath(PurposeBIP44, CoinTypeQuai)
	if err != nil {
		t.Fatalf("DerivePath() error: %v", err)
	}
	if !bytes.Equal(c2.PrivateKeyBytes(), combined.PrivateKeyBytes()) {
		t.Error("DerivePath should equal sequential DeriveChild")
	}
}

func TestDeriveExternalChain(t *testing.T) {
	master := testMaster(t)

	chain, err := master.DeriveExternalChain(0)
	if err != nil {
		t.Fatalf("DeriveExternalChain() error: %v", err)
	}
	// m / purpose' / coin' / account' / change
	if chain.key.Depth != 4 {
		t.Errorf("chain depth = %d, want 4", chain.key.Depth)
	}

	other, err := master.DeriveExternalChain(1)
	if err != nil {
		t.Fatalf("DeriveExternalChain() error: %v", err)
	}
	if bytes.Equal(chain.PrivateKeyBytes(), other.PrivateKeyBytes()) {
		t.Error("different accounts should produce different chains")
	}
}

func TestAddress_KnownVector(t *testing.T) {
	// m/44'/60'/0'/0/0 of the "abandon ... about" mnemonic, no passphrase.
	seed, err := SeedFromMnemonic(testPhrase, "")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	master, err := NewMasterKey(seed)
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}
	key, err := master.DerivePath(PurposeBIP44, bip32.FirstHardenedChild+60, bip32.FirstHardenedChild, 0, 0)
	if err != nil {
		t.Fatalf("DerivePath() error: %v", err)
	}

	addr, err := key.Address()
	if err != nil {
		t.Fatalf("Address() error: %v", err)
	}
	if want := "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"; addr.Hex() != want {
		t.Errorf("Address() = %s, want %s", addr.Hex(), want)
	}
}

func TestAddress_MatchesSigningKey(t *testing.T) {
	chain, err := testMaster(t).DeriveExternalChain(0)
	if err != nil {
		t.Fatalf("DeriveExternalChain() error: %v", err)
	}
	key, _ := chain.DeriveChild(7)

	addr, err := key.Address()
	if err != nil {
		t.Fatalf("Address() error: %v", err)
	}
	priv, err := key.PrivateKey()
	if err != nil {
		t.Fatalf("PrivateKey() error: %v", err)
	}
	if got := ethcrypto.PubkeyToAddress(priv.PublicKey); got != addr {
		t.Errorf("signing key address = %s, want %s", got.Hex(), addr.Hex())
	}
}

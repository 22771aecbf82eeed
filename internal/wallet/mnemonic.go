// Package wallet holds the Quai wallet core: the encrypted seed record, the
// per-process unlock session, HD key derivation and transaction signing.
package wallet

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// entropyBits maps a supported mnemonic length to its entropy size.
var entropyBits = map[int]int{
	12: 128,
	24: 256,
}

// GenerateMnemonic creates a new BIP-39 mnemonic of 12 or 24 words.
func GenerateMnemonic(words int) (string, error) {
	bits, ok := entropyBits[words]
	if !ok {
		return "", fmt.Errorf("%w: mnemonic must have 12 or 24 words, got %d", ErrValidation, words)
	}
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic checks if a mnemonic is valid per BIP-39
// (correct word count, valid words, valid checksum).
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// NormalizeMnemonic lowercases the phrase and collapses runs of whitespace
// to single spaces.
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}

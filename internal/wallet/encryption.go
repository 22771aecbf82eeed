package wallet

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/pbkdf2"
)

// Encryption constants. The record layout stores neither the KDF nor its
// iteration count, so these are part of the on-disk format.
const (
	SaltSize          = 16
	IVSize            = aes.BlockSize
	KeySize           = 32 // AES-256
	DefaultIterations = 200_000

	// MinSeedWords accepts 12- and 24-word phrases while rejecting empty or
	// truncated input.
	MinSeedWords = 11
)

// Params holds the PBKDF2 parameters.
type Params struct {
	Iterations int
}

// DefaultParams returns the parameters every record on disk is written with.
func DefaultParams() Params {
	return Params{Iterations: DefaultIterations}
}

// SecretStore encrypts a seed phrase under a password with
// PBKDF2-HMAC-SHA512 and AES-256-CBC.
//
// CBC carries no authentication tag: a wrong password is only noticed when
// the padding or the UTF-8 decoding fails, and a tampered ciphertext that
// still decodes cleanly goes undetected.
type SecretStore struct {
	params Params
}

// NewSecretStore returns a store using params. Non-positive iteration counts
// fall back to DefaultParams.
func NewSecretStore(params Params) *SecretStore {
	if params.Iterations <= 0 {
		params = DefaultParams()
	}
	return &SecretStore{params: params}
}

// Params returns the store's KDF parameters.
func (s *SecretStore) Params() Params {
	return s.params
}

func (s *SecretStore) deriveKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, s.params.Iterations, KeySize, sha512.New)
}

// Encrypt seals seedPhrase under password. Salt and IV are fresh for every
// call. The returned record carries no addresses; the caller attaches them.
func (s *SecretStore) Encrypt(seedPhrase string, password []byte) (*Record, error) {
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: password cannot be empty", ErrValidation)
	}
	if n := len(strings.Fields(seedPhrase)); n < MinSeedWords {
		return nil, fmt.Errorf("%w: seed phrase has %d words, need at least %d", ErrValidation, n, MinSeedWords)
	}

	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	iv := make([]byte, IVSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("generate iv: %w", err)
	}

	key := s.deriveKey(password, salt)
	defer zero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	plaintext := pkcs7Pad([]byte(seedPhrase), aes.BlockSize)
	defer zero(plaintext)

	ciphertext := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, plaintext)

	return &Record{
		Salt:       salt,
		IV:         iv,
		Ciphertext: ciphertext,
	}, nil
}

// Decrypt recovers the seed phrase from rec. Any failure to decrypt to a
// padded UTF-8 string is reported as ErrAuthentication. A record whose salt
// or IV has the wrong size matches both ErrAuthentication and
// ErrCorruptRecord.
func (s *SecretStore) Decrypt(rec *Record, password []byte) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("%w: %w: nil record", ErrAuthentication, ErrCorruptRecord)
	}
	if len(rec.Salt) != SaltSize {
		return "", fmt.Errorf("%w: %w: salt is %d bytes, want %d", ErrAuthentication, ErrCorruptRecord, len(rec.Salt), SaltSize)
	}
	if len(rec.IV) != IVSize {
		return "", fmt.Errorf("%w: %w: iv is %d bytes, want %d", ErrAuthentication, ErrCorruptRecord, len(rec.IV), IVSize)
	}
	if len(rec.Ciphertext) == 0 || len(rec.Ciphertext)%aes.BlockSize != 0 {
		return "", ErrAuthentication
	}

	key := s.deriveKey(password, rec.Salt)
	defer zero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	plaintext := make([]byte, len(rec.Ciphertext))
	defer zero(plaintext)
	cipher.NewCBCDecrypter(block, rec.IV).CryptBlocks(plaintext, rec.Ciphertext)

	unpadded, ok := pkcs7Unpad(plaintext, aes.BlockSize)
	if !ok || !utf8.Valid(unpadded) {
		return "", ErrAuthentication
	}
	return string(unpadded), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	copy(out[len(data):], bytes.Repeat([]byte{byte(n)}, n))
	return out
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, false
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, false
		}
	}
	return data[:len(data)-n], true
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

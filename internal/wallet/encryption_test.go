package wallet

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

const testPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// fastParams returns a low iteration count for tests.
func fastParams() Params {
	return Params{Iterations: 1000}
}

func fastStore() *SecretStore {
	return NewSecretStore(fastParams())
}

func TestEncryptDecrypt(t *testing.T) {
	store := fastStore()
	password := []byte("test-password-123")

	rec, err := store.Encrypt(testPhrase, password)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}

	if len(rec.Salt) != SaltSize {
		t.Errorf("salt length = %d, want %d", len(rec.Salt), SaltSize)
	}
	if len(rec.IV) != IVSize {
		t.Errorf("iv length = %d, want %d", len(rec.IV), IVSize)
	}
	if len(rec.Ciphertext)%IVSize != 0 {
		t.Errorf("ciphertext length %d is not a multiple of the block size", len(rec.Ciphertext))
	}
	if rec.MainAddress != "" || rec.DerivedAddress != "" {
		t.Error("Encrypt() should not fill in addresses")
	}

	got, err := store.Decrypt(rec, password)
	if err != nil {
		t.Fatalf("Decrypt() error: %v", err)
	}
	if got != testPhrase {
		t.Errorf("Decrypt() = %q, want %q", got, testPhrase)
	}
}

func TestEncryptDecrypt_RoundTripProperty(t *testing.T) {
	store := fastStore()
	words := strings.Fields(testPhrase + " zoo wrong legal winner thank year wave sausage worth useful")

	rapid.Check(t, func(t *rapid.T) {
		phrase := strings.Join(rapid.SliceOfN(rapid.SampledFrom(words), MinSeedWords, 24).Draw(t, "words"), " ")
		password := rapid.SliceOfN(rapid.Byte(), 1, 64).Draw(t, "password")

		rec, err := store.Encrypt(phrase, password)
		if err != nil {
			t.Fatalf("Encrypt() error: %v", err)
		}
		got, err := store.Decrypt(rec, password)
		if err != nil {
			t.Fatalf("Decrypt() error: %v", err)
		}
		if got != phrase {
			t.Fatalf("Decrypt() = %q, want %q", got, phrase)
		}
	})
}

func TestDecrypt_WrongPasswordProperty(t *testing.T) {
	store := fastStore()

	rapid.Check(t, func(t *rapid.T) {
		password := rapid.StringMatching(`[a-zA-Z0-9!&]{1,24}`).Draw(t, "password")
		other := password + rapid.StringMatching(`[a-z0-9]{1,8}`).Draw(t, "suffix")

		rec, err := store.Encrypt(testPhrase, []byte(password))
		if err != nil {
			t.Fatalf("Encrypt() error: %v", err)
		}
		_, err = store.Decrypt(rec, []byte(other))
		if !errors.Is(err, ErrAuthentication) {
			t.Fatalf("Decrypt() with wrong password error = %v, want ErrAuthentication", err)
		}
	})
}

func TestEncrypt_FreshRandomness(t *testing.T) {
	store := fastStore()
	password := []byte("same-password")

	r1, err := store.Encrypt(testPhrase, password)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	r2, err := store.Encrypt(testPhrase, password)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}

	if bytes.Equal(r1.Salt, r2.Salt) {
		t.Error("two encryptions should use different salts")
	}
	if bytes.Equal(r1.IV, r2.IV) {
		t.Error("two encryptions should use different IVs")
	}
	if bytes.Equal(r1.Ciphertext, r2.Ciphertext) {
		t.Error("two encryptions should produce different ciphertexts")
	}
}

func TestEncrypt_Validation(t *testing.T) {
	store := fastStore()

	tests := []struct {
		name     string
		phrase   string
		password []byte
	}{
		{"empty password", testPhrase, nil},
		{"empty phrase", "", []byte("pw")},
		{"ten words", "abandon abandon abandon abandon abandon abandon abandon abandon abandon about", []byte("pw")},
		{"whitespace only", "   \t\n ", []byte("pw")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Encrypt(tt.phrase, tt.password)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Encrypt() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestEncrypt_ElevenWordsAccepted(t *testing.T) {
	store := fastStore()
	phrase := strings.Join(strings.Fields(testPhrase)[:MinSeedWords], " ")

	if _, err := store.Encrypt(phrase, []byte("pw")); err != nil {
		t.Errorf("Encrypt() with %d words error: %v", MinSeedWords, err)
	}
}

func TestDecrypt_CorruptRecord(t *testing.T) {
	store := fastStore()
	password := []byte("pw")
	rec, err := store.Encrypt(testPhrase, password)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(r *Record)
		corrupt bool
	}{
		{"short salt", func(r *Record) { r.Salt = r.Salt[:8] }, true},
		{"short iv", func(r *Record) { r.IV = r.IV[:15] }, true},
		{"long iv", func(r *Record) { r.IV = append(r.IV, 0) }, true},
		{"empty ciphertext", func(r *Record) { r.Ciphertext = nil }, false},
		{"truncated ciphertext", func(r *Record) { r.Ciphertext = r.Ciphertext[:len(r.Ciphertext)-1] }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp := &Record{
				Salt:       append([]byte{}, rec.Salt...),
				IV:         append([]byte{}, rec.IV...),
				Ciphertext: append([]byte{}, rec.Ciphertext...),
			}
			tt.mutate(cp)
			_, err := store.Decrypt(cp, password)
			if !errors.Is(err, ErrAuthentication) {
				t.Errorf("Decrypt() error = %v, want ErrAuthentication", err)
			}
			if got := errors.Is(err, ErrCorruptRecord); got != tt.corrupt {
				t.Errorf("errors.Is(err, ErrCorruptRecord) = %v, want %v", got, tt.corrupt)
			}
		})
	}
}

func TestDecrypt_NilRecord(t *testing.T) {
	_, err := fastStore().Decrypt(nil, []byte("pw"))
	if !errors.Is(err, ErrAuthentication) || !errors.Is(err, ErrCorruptRecord) {
		t.Fatalf("Decrypt(nil) error = %v, want ErrAuthentication and ErrCorruptRecord", err)
	}
}

func TestDecrypt_TamperedIVUndetected(t *testing.T) {
	// CBC has no integrity check: flipping a bit of the IV flips the same
	// bit of the first plaintext block and still decrypts cleanly.
	store := fastStore()
	password := []byte("pw")
	rec, err := store.Encrypt(testPhrase, password)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	rec.IV[0] ^= 0x01

	got, err := store.Decrypt(rec, password)
	if err != nil {
		t.Fatalf("Decrypt() error: %v", err)
	}
	if want := "`" + testPhrase[1:]; got != want {
		t.Errorf("Decrypt() = %q, want %q", got, want)
	}
}

func TestDecrypt_DifferentParams(t *testing.T) {
	password := []byte("pw")
	rec, err := NewSecretStore(Params{Iterations: 1000}).Encrypt(testPhrase, password)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	if _, err := NewSecretStore(Params{Iterations: 1001}).Decrypt(rec, password); !errors.Is(err, ErrAuthentication) {
		t.Errorf("Decrypt() with other iteration count error = %v, want ErrAuthentication", err)
	}
}

func TestNewSecretStore_DefaultParams(t *testing.T) {
	if got := NewSecretStore(Params{}).Params().Iterations; got != DefaultIterations {
		t.Errorf("iterations = %d, want %d", got, DefaultIterations)
	}
	if DefaultParams().Iterations != 200_000 {
		t.Errorf("DefaultParams().Iterations = %d, want 200000", DefaultParams().Iterations)
	}
}

func TestSecretStore_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("full-strength KDF")
	}
	store := NewSecretStore(DefaultParams())
	password := []byte("Tr0ub4dor&3")

	rec, err := store.Encrypt(testPhrase, password)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	rec.MainAddress = "0x0012345678901234567890123456789012345678"
	rec.DerivedAddress = "0x0034567890123456789012345678901234567890"

	file := NewRecordFile(t.TempDir() + "/mainnet/.env")
	if err := file.Save(rec); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	loaded, err := file.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if s := hex.EncodeToString(loaded.Salt); len(s) != 32 {
		t.Errorf("salt hex = %q, want 32 hex chars", s)
	}
	if s := hex.EncodeToString(loaded.IV); len(s) != 32 {
		t.Errorf("iv hex = %q, want 32 hex chars", s)
	}
	if len(loaded.Ciphertext) == 0 {
		t.Error("ciphertext should not be empty")
	}

	sess := NewSession()
	got, err := sess.Unlock(store, loaded, func() ([]byte, error) { return []byte("Tr0ub4dor&3"), nil })
	if err != nil {
		t.Fatalf("Unlock() error: %v", err)
	}
	if got != testPhrase {
		t.Errorf("Unlock() = %q, want %q", got, testPhrase)
	}

	_, err = NewSession().Unlock(store, loaded, func() ([]byte, error) { return []byte("tr0ub4dor&3"), nil })
	if !errors.Is(err, ErrAuthentication) {
		t.Errorf("Unlock() with wrong password error = %v, want ErrAuthentication", err)
	}
}

func TestPKCS7(t *testing.T) {
	for n := 0; n <= 33; n++ {
		data := bytes.Repeat([]byte{'x'}, n)
		padded := pkcs7Pad(data, 16)
		if len(padded)%16 != 0 || len(padded) <= n {
			t.Fatalf("pad(%d) length = %d", n, len(padded))
		}
		got, ok := pkcs7Unpad(padded, 16)
		if !ok || !bytes.Equal(got, data) {
			t.Fatalf("unpad(pad(%d)) = %q, %v", n, got, ok)
		}
	}

	bad := [][]byte{
		nil,
		bytes.Repeat([]byte{0}, 16),
		bytes.Repeat([]byte{17}, 16),
		append(bytes.Repeat([]byte{'x'}, 14), 3, 2),
	}
	for _, b := range bad {
		if _, ok := pkcs7Unpad(b, 16); ok {
			t.Errorf("unpad(%x) should fail", b)
		}
	}
}

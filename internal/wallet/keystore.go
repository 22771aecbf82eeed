package wallet

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Record file keys.
const (
	KeyEncryptedSeed  = "ENCRYPTED_SEED_PHRASE"
	KeySalt           = "SALT"
	KeyIV             = "IV"
	KeyMainAddress    = "MAIN_ADDRESS"
	KeyDerivedAddress = "DERIVED_ADDRESS"
)

// Record is the persisted secret record: the encrypted seed phrase plus the
// two public addresses shown without unlocking.
type Record struct {
	Salt       []byte
	IV         []byte
	Ciphertext []byte

	MainAddress    string
	DerivedAddress string
}

// RecordFile stores a single Record as a dotenv file.
type RecordFile struct {
	path string
}

// NewRecordFile returns a record file at path. Nothing is touched on disk.
func NewRecordFile(path string) *RecordFile {
	return &RecordFile{path: path}
}

// Path returns the file location.
func (f *RecordFile) Path() string {
	return f.path
}

// Exists reports whether the record file is present.
func (f *RecordFile) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Save writes rec to a new file with owner-only permissions. An existing
// record is never overwritten.
func (f *RecordFile) Save(rec *Record) error {
	if rec == nil {
		return fmt.Errorf("%w: nil record", ErrValidation)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create record directory: %w", err)
	}

	file, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("record file %s already exists", f.path)
		}
		return fmt.Errorf("create record file: %w", err)
	}

	if _, err := file.Write(encodeRecord(rec)); err != nil {
		file.Close()
		os.Remove(f.path)
		return fmt.Errorf("write record file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(f.path)
		return fmt.Errorf("close record file: %w", err)
	}
	return nil
}

// encodeRecord renders the record in a fixed key order. Values are hex or
// plain addresses and need no quoting.
func encodeRecord(rec *Record) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s=%s\n", KeyEncryptedSeed, hex.EncodeToString(rec.Ciphertext))
	fmt.Fprintf(&buf, "%s=%s\n", KeySalt, hex.EncodeToString(rec.Salt))
	fmt.Fprintf(&buf, "%s=%s\n", KeyIV, hex.EncodeToString(rec.IV))
	buf.WriteString("\n# Public (non-sensitive) addresses\n")
	fmt.Fprintf(&buf, "%s=%s\n", KeyMainAddress, rec.MainAddress)
	fmt.Fprintf(&buf, "%s=%s\n", KeyDerivedAddress, rec.DerivedAddress)
	return buf.Bytes()
}

func (f *RecordFile) read() (map[string]string, error) {
	env, err := godotenv.Read(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no wallet record at %s: %w", f.path, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return env, nil
}

// Load reads and decodes the full record. Missing or malformed secret
// fields are reported as ErrCorruptRecord.
func (f *RecordFile) Load() (*Record, error) {
	env, err := f.read()
	if err != nil {
		return nil, err
	}

	rec := &Record{
		MainAddress:    env[KeyMainAddress],
		DerivedAddress: env[KeyDerivedAddress],
	}
	fields := []struct {
		key string
		dst *[]byte
	}{
		{KeyEncryptedSeed, &rec.Ciphertext},
		{KeySalt, &rec.Salt},
		{KeyIV, &rec.IV},
	}
	for _, fld := range fields {
		val, ok := env[fld.key]
		if !ok || val == "" {
			return nil, fmt.Errorf("%w: missing %s", ErrCorruptRecord, fld.key)
		}
		raw, err := hex.DecodeString(val)
		if err != nil {
			return nil, fmt.Errorf("%w: %s is not hex: %v", ErrCorruptRecord, fld.key, err)
		}
		*fld.dst = raw
	}
	return rec, nil
}

// Addresses returns the public addresses without touching the secret
// fields.
func (f *RecordFile) Addresses() (main, derived string, err error) {
	env, err := f.read()
	if err != nil {
		return "", "", err
	}
	main, derived = env[KeyMainAddress], env[KeyDerivedAddress]
	if main == "" || derived == "" {
		return "", "", fmt.Errorf("%w: missing public addresses", ErrCorruptRecord)
	}
	return main, derived, nil
}

package wallet

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const (
	testMainAddr    = "0x00a3e2c4F1a1D7E7bC9D16A0B9a4E6d3c2b1a0F9"
	testDerivedAddr = "0x0061Bb1f8F1B0c9A2f3E4d5C6b7A8990a1B2c3D4"
)

func testRecord(t *testing.T) *Record {
	t.Helper()
	rec, err := fastStore().Encrypt(testPhrase, []byte("pw"))
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	rec.MainAddress = testMainAddr
	rec.DerivedAddress = testDerivedAddr
	return rec
}

func TestRecordFile_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testnet", ".env")
	file := NewRecordFile(path)

	if file.Exists() {
		t.Fatal("record should not exist yet")
	}

	rec := testRecord(t)
	if err := file.Save(rec); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if !file.Exists() {
		t.Fatal("record should exist after Save")
	}

	loaded, err := file.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if string(loaded.Salt) != string(rec.Salt) || string(loaded.IV) != string(rec.IV) ||
		string(loaded.Ciphertext) != string(rec.Ciphertext) {
		t.Error("loaded secret fields differ from saved ones")
	}
	if loaded.MainAddress != testMainAddr || loaded.DerivedAddress != testDerivedAddr {
		t.Errorf("addresses = %s, %s", loaded.MainAddress, loaded.DerivedAddress)
	}

	phrase, err := fastStore().Decrypt(loaded, []byte("pw"))
	if err != nil {
		t.Fatalf("Decrypt() error: %v", err)
	}
	if phrase != testPhrase {
		t.Errorf("Decrypt() = %q", phrase)
	}
}

func TestRecordFile_Layout(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := NewRecordFile(path).Save(testRecord(t)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var keys []string
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, _, ok := strings.Cut(line, "=")
		if !ok {
			t.Fatalf("malformed line %q", line)
		}
		keys = append(keys, k)
	}
	want := []string{KeyEncryptedSeed, KeySalt, KeyIV, KeyMainAddress, KeyDerivedAddress}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("keys = %v, want %v", keys, want)
	}
}

func TestRecordFile_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	dir := filepath.Join(t.TempDir(), "data")
	path := filepath.Join(dir, ".env")
	if err := NewRecordFile(path).Save(testRecord(t)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}
	dinfo, err := os.Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if perm := dinfo.Mode().Perm(); perm != 0o700 {
		t.Errorf("dir mode = %o, want 700", perm)
	}
}

func TestRecordFile_NoOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	file := NewRecordFile(path)
	if err := file.Save(testRecord(t)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	before, _ := os.ReadFile(path)

	if err := file.Save(testRecord(t)); err == nil {
		t.Fatal("second Save() should fail")
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Error("existing record was modified")
	}
}

func TestRecordFile_Addresses(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "MAIN_ADDRESS=" + testMainAddr + "\nDERIVED_ADDRESS=" + testDerivedAddr + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	main, derived, err := NewRecordFile(path).Addresses()
	if err != nil {
		t.Fatalf("Addresses() error: %v", err)
	}
	if main != testMainAddr || derived != testDerivedAddr {
		t.Errorf("Addresses() = %s, %s", main, derived)
	}
}

func TestRecordFile_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing ciphertext", "SALT=00112233445566778899aabbccddeeff\nIV=00112233445566778899aabbccddeeff\n"},
		{"missing salt", "ENCRYPTED_SEED_PHRASE=00112233445566778899aabbccddeeff\nIV=00112233445566778899aabbccddeeff\n"},
		{"bad hex", "ENCRYPTED_SEED_PHRASE=zz\nSALT=00112233445566778899aabbccddeeff\nIV=00112233445566778899aabbccddeeff\n"},
		{"empty iv", "ENCRYPTED_SEED_PHRASE=00112233445566778899aabbccddeeff\nSALT=00112233445566778899aabbccddeeff\nIV=\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".env")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := NewRecordFile(path).Load()
			if !errors.Is(err, ErrCorruptRecord) {
				t.Errorf("Load() error = %v, want ErrCorruptRecord", err)
			}
		})
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("MAIN_ADDRESS=0x00\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := NewRecordFile(path).Addresses(); !errors.Is(err, ErrCorruptRecord) {
		t.Errorf("Addresses() error = %v, want ErrCorruptRecord", err)
	}
}

func TestRecordFile_LoadMissing(t *testing.T) {
	_, err := NewRecordFile(filepath.Join(t.TempDir(), ".env")).Load()
	if err == nil {
		t.Fatal("Load() of a missing file should fail")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

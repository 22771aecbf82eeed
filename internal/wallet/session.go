package wallet

import "fmt"

// PasswordFunc supplies the record password when the session needs it.
type PasswordFunc func() ([]byte, error)

// PassphraseFunc supplies the BIP-39 passphrase when the session needs it.
type PassphraseFunc func() (string, error)

// Decrypter recovers a seed phrase from a record.
type Decrypter interface {
	Decrypt(rec *Record, password []byte) (string, error)
}

// Session caches the decrypted seed phrase and the BIP-39 passphrase for the
// life of the process, so the user is asked at most once for each.
// Values are held in memory only. A Session is not safe for concurrent use.
type Session struct {
	phrase    string
	hasPhrase bool

	passphrase    string
	hasPassphrase bool
}

// NewSession returns an empty, locked session.
func NewSession() *Session {
	return &Session{}
}

// Unlock returns the cached phrase, or asks password for the password and
// decrypts rec. Nothing is cached on failure. The password buffer is zeroed
// once used.
func (s *Session) Unlock(d Decrypter, rec *Record, password PasswordFunc) (string, error) {
	if s.hasPhrase {
		return s.phrase, nil
	}

	pw, err := password()
	if err != nil {
		return "", err
	}
	defer zero(pw)

	phrase, err := d.Decrypt(rec, pw)
	if err != nil {
		return "", fmt.Errorf("unlock wallet: %w", err)
	}
	s.phrase, s.hasPhrase = phrase, true
	return phrase, nil
}

// SecondaryPassphrase returns the cached passphrase or asks for it once.
// An empty passphrase is a valid answer and is cached like any other.
func (s *Session) SecondaryPassphrase(ask PassphraseFunc) (string, error) {
	if s.hasPassphrase {
		return s.passphrase, nil
	}
	p, err := ask()
	if err != nil {
		return "", err
	}
	s.passphrase, s.hasPassphrase = p, true
	return p, nil
}

// Lock forgets the phrase and passphrase. Calling it on a locked session is
// a no-op.
func (s *Session) Lock() {
	s.phrase, s.hasPhrase = "", false
	s.passphrase, s.hasPassphrase = "", false
}

// IsUnlocked reports whether a phrase is cached.
func (s *Session) IsUnlocked() bool {
	return s.hasPhrase
}

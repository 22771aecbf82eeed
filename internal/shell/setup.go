package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/Klingon-tech/quai-shadow-wallet/internal/log"
	"github.com/Klingon-tech/quai-shadow-wallet/internal/prompt"
	"github.com/Klingon-tech/quai-shadow-wallet/internal/wallet"
)

// Setup runs the first-run wizard: obtain a seed phrase, derive both
// addresses, choose a password and write the encrypted record. The session
// is left locked.
func (s *Shell) Setup(ctx context.Context) error {
	if s.records.Exists() {
		return fmt.Errorf("%w: wallet file %s already exists", wallet.ErrValidation, s.records.Path())
	}

	fmt.Fprintln(s.out, bold("\n--- Wallet Setup ---"))
	fmt.Fprintln(s.out, "1. Create a new wallet")
	fmt.Fprintln(s.out, "2. Restore from an existing seed phrase")
	choice, err := prompt.Choose(s.prompt, s.out, "Select an option: ", "1", "2")
	if err != nil {
		return err
	}

	var phrase string
	if choice == "1" {
		phrase, err = s.createPhrase()
	} else {
		phrase, err = s.restorePhrase()
	}
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	phrase = wallet.NormalizeMnemonic(phrase)
	if n := len(strings.Fields(phrase)); n < wallet.MinSeedWords {
		return fmt.Errorf("%w: incomplete seed phrase (%d words)", wallet.ErrValidation, n)
	}

	fmt.Fprintln(s.out, "\nThe derived wallet is protected by a BIP-39 passphrase.")
	fmt.Fprintln(s.out, "It is never stored; you will be asked for it when you spend from that wallet.")
	pass, err := s.prompt.ReadPassword("BIP-39 passphrase for the derived wallet: ")
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "\nDeriving addresses...")
	main, err := wallet.DeriveAccount(phrase, "", s.account, s.zone)
	if err != nil {
		return fmt.Errorf("derive main wallet: %w", err)
	}
	derived, err := wallet.DeriveAccount(phrase, string(pass), s.account, s.zone)
	if err != nil {
		return fmt.Errorf("derive derived wallet: %w", err)
	}
	if len(pass) == 0 {
		fmt.Fprintln(s.out, yellow("Empty passphrase: the derived wallet is the same as the main wallet."))
	}
	fmt.Fprintln(s.out, roundBox("Configured addresses", fmt.Sprintf(
		"%s\n%s\n\n%s\n%s",
		bold("Main wallet"), main.Address.Hex(),
		bold("Derived wallet"), derived.Address.Hex(),
	), colorCyan))

	fmt.Fprintln(s.out, "\nChoose a password. It encrypts the seed phrase on disk.")
	pw, err := prompt.ConfirmedPassword(s.prompt, s.out, "Password: ", "Confirm password: ")
	if err != nil {
		return err
	}
	if len(pw) == 0 {
		return fmt.Errorf("%w: password cannot be empty", wallet.ErrValidation)
	}

	fmt.Fprintln(s.out, "Encrypting seed phrase...")
	rec, err := s.store.Encrypt(phrase, pw)
	for i := range pw {
		pw[i] = 0
	}
	if err != nil {
		return err
	}
	rec.MainAddress = main.Address.Hex()
	rec.DerivedAddress = derived.Address.Hex()
	if err := s.records.Save(rec); err != nil {
		return err
	}

	log.Shell.Info().Str("path", s.records.Path()).Str("zone", s.zone.String()).Msg("Wallet record created")
	fmt.Fprintln(s.out, green("\nSetup complete. Encrypted wallet saved to "+s.records.Path()))
	return nil
}

func (s *Shell) createPhrase() (string, error) {
	words, err := prompt.Choose(s.prompt, s.out, "Number of words (12 or 24): ", "12", "24")
	if err != nil {
		return "", err
	}
	n := 12
	if words == "24" {
		n = 24
	}
	phrase, err := wallet.GenerateMnemonic(n)
	if err != nil {
		return "", err
	}

	fmt.Fprintln(s.out, warningBox("IMPORTANT: write down your seed phrase",
		"Anyone with these words controls your funds. Store them offline.\n"+
			"Without them and your BIP-39 passphrase, the derived wallet cannot be recovered.\n\n"+
			numbered(phrase)))
	if err := prompt.WaitEnter(s.prompt, "Press Enter once you have written it down..."); err != nil {
		return "", err
	}
	return phrase, nil
}

func (s *Shell) restorePhrase() (string, error) {
	fmt.Fprintln(s.out, "\n1. Paste the whole phrase")
	fmt.Fprintln(s.out, "2. Enter it word by word")
	how, err := prompt.Choose(s.prompt, s.out, "Select an option: ", "1", "2")
	if err != nil {
		return "", err
	}

	if how == "1" {
		p, err := s.prompt.ReadPassword("Seed phrase: ")
		if err != nil {
			return "", err
		}
		return string(p), nil
	}

	count, err := prompt.Choose(s.prompt, s.out, "Number of words (12 or 24): ", "12", "24")
	if err != nil {
		return "", err
	}
	n := 12
	if count == "24" {
		n = 24
	}
	words := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		w, err := s.prompt.ReadPassword(fmt.Sprintf("Word %d: ", i))
		if err != nil {
			return "", err
		}
		if word := strings.TrimSpace(string(w)); word != "" {
			words = append(words, word)
		}
	}
	return strings.Join(words, " "), nil
}

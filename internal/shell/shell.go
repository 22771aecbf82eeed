// Package shell implements the interactive wallet: the first-run setup
// wizard, the main menu and the actions behind it.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Klingon-tech/quai-shadow-wallet/internal/explorer"
	"github.com/Klingon-tech/quai-shadow-wallet/internal/log"
	"github.com/Klingon-tech/quai-shadow-wallet/internal/prompt"
	"github.com/Klingon-tech/quai-shadow-wallet/internal/rpcclient"
	"github.com/Klingon-tech/quai-shadow-wallet/internal/wallet"
	"github.com/Klingon-tech/quai-shadow-wallet/pkg/types"
)

// History fetches the transactions of an address.
type History interface {
	Transactions(ctx context.Context, addr string) ([]explorer.Transaction, error)
}

// Config wires the shell to its collaborators.
type Config struct {
	Out      io.Writer
	Prompter prompt.Prompter

	Store   *wallet.SecretStore
	Records *wallet.RecordFile
	Session *wallet.Session
	Chain   wallet.Chain
	History History
	// Journal may be nil when the journal is disabled.
	Journal *wallet.Journal

	Zone    types.Zone
	Account uint32

	// PollInterval overrides how often a broadcast is checked for inclusion.
	PollInterval time.Duration
}

// Shell runs wallet actions against a terminal.
type Shell struct {
	out    io.Writer
	prompt prompt.Prompter

	store   *wallet.SecretStore
	records *wallet.RecordFile
	session *wallet.Session
	chain   wallet.Chain
	history History
	journal *wallet.Journal

	zone         types.Zone
	account      uint32
	pollInterval time.Duration
}

// New creates a shell. A nil Session starts a fresh one.
func New(cfg Config) *Shell {
	sess := cfg.Session
	if sess == nil {
		sess = wallet.NewSession()
	}
	return &Shell{
		out:          cfg.Out,
		prompt:       cfg.Prompter,
		store:        cfg.Store,
		records:      cfg.Records,
		session:      sess,
		chain:        cfg.Chain,
		history:      cfg.History,
		journal:      cfg.Journal,
		zone:         cfg.Zone,
		account:      cfg.Account,
		pollInterval: cfg.PollInterval,
	}
}

// WalletKind selects one of the two wallets behind the record.
type WalletKind int

const (
	MainWallet WalletKind = iota
	DerivedWallet
)

func (k WalletKind) String() string {
	if k == DerivedWallet {
		return "Derived wallet (BIP-39 passphrase)"
	}
	return "Main wallet"
}

// ParseWalletKind parses "main" or "derived".
func ParseWalletKind(s string) (WalletKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "main":
		return MainWallet, nil
	case "derived":
		return DerivedWallet, nil
	}
	return 0, fmt.Errorf("%w: wallet must be main or derived, got %q", wallet.ErrValidation, s)
}

// Direction selects received or sent transactions.
type Direction int

const (
	Received Direction = iota
	Sent
)

func (d Direction) String() string {
	if d == Sent {
		return "sent"
	}
	return "received"
}

// ParseDirection parses "received" or "sent".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "received":
		return Received, nil
	case "sent":
		return Sent, nil
	}
	return 0, fmt.Errorf("%w: type must be received or sent, got %q", wallet.ErrValidation, s)
}

// ── Main loop ───────────────────────────────────────────────────────────

// Run starts the setup wizard when no record exists and then serves the
// main menu until the user exits or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	if !s.records.Exists() {
		fmt.Fprintln(s.out, "Welcome! It looks like this is your first time running the wallet.")
		fmt.Fprintln(s.out, "Let's begin with the secure setup.")
		if err := s.Setup(ctx); err != nil {
			if errors.Is(err, prompt.ErrCancelled) {
				fmt.Fprintln(s.out, yellow("Setup cancelled."))
				return nil
			}
			return fmt.Errorf("setup: %w", err)
		}
		if err := s.pause(); err != nil {
			return nil
		}
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		s.printMenu()
		choice, err := s.prompt.ReadLine("Select an option: ")
		if err != nil {
			if errors.Is(err, prompt.ErrCancelled) {
				fmt.Fprintln(s.out, "\nGoodbye!")
				return nil
			}
			return err
		}

		choice = strings.TrimSpace(choice)
		log.Shell.Debug().Str("choice", choice).Msg("Menu selection")
		switch choice {
		case "1":
			s.report(s.Balance(ctx))
		case "2":
			s.report(s.SendFromDerived(ctx))
		case "3":
			s.report(s.SendToDerived(ctx))
		case "4", "5":
			dir := Received
			if choice == "5" {
				dir = Sent
			}
			s.report(s.chooseAndList(ctx, dir))
		case "6":
			s.report(s.chooseAndReceive())
		case "7":
			s.report(s.ShowJournal())
		case "8":
			s.Lock()
		case "9":
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(s.out, red("Invalid option. Please try again."))
		}

		if err := s.pause(); err != nil {
			fmt.Fprintln(s.out, "\nGoodbye!")
			return nil
		}
	}
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, banner())
	fmt.Fprintln(s.out, bold("--- Main Wallet Menu ---"))
	items := []string{
		"Check Balance",
		"Send (FROM Derived Wallet with BIP-39 Passphrase)",
		"Send (TO Derived Wallet with BIP-39 Passphrase)",
		"List Received Transactions",
		"List Sent Transactions",
		"Show Receive Address (QR)",
		"Show Local Send Journal",
		"Lock Wallet (Forget Password)",
		"Exit",
	}
	for i, item := range items {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, item)
	}
	if s.session.IsUnlocked() {
		fmt.Fprintln(s.out, green("Wallet is unlocked for this session."))
	}
}

func (s *Shell) pause() error {
	return prompt.WaitEnter(s.prompt, "\nPress Enter to return to the menu...")
}

// report prints the outcome of a menu action. Cancellation is a normal
// early exit.
func (s *Shell) report(err error) {
	if err == nil {
		return
	}
	var (
		netErr *rpcclient.NetworkError
		apiErr *explorer.APIError
	)
	switch {
	case errors.Is(err, prompt.ErrCancelled):
		fmt.Fprintln(s.out, yellow("\nCancelled."))
		return
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(s.out, yellow("\nInterrupted."))
		return
	case errors.Is(err, wallet.ErrAuthentication):
		fmt.Fprintln(s.out, red("\nIncorrect password. The wallet stays locked."))
	case errors.Is(err, wallet.ErrUnsupportedChain):
		fmt.Fprintln(s.out, red("\nThis RPC endpoint cannot accept the transactions this wallet signs."))
		fmt.Fprintln(s.out, "Sending needs a node serving the eth namespace (--rpc-namespace eth).")
	case errors.As(err, &netErr) && netErr.StatusCode == 502:
		fmt.Fprintln(s.out, red("\nThe server returned 502 Bad Gateway. It may be temporarily unavailable, try again later."))
	case errors.As(err, &apiErr):
		fmt.Fprintln(s.out, red("\nExplorer error: "+apiErr.Message))
	default:
		fmt.Fprintln(s.out, red("\nError: "+err.Error()))
	}
	log.Shell.Debug().Err(err).Msg("Action failed")
}

// Lock forgets the password and passphrase of this session.
func (s *Shell) Lock() {
	s.session.Lock()
	fmt.Fprintln(s.out, yellow("\nWallet locked. Password and passphrase will be asked again."))
}

// ── Record helpers ──────────────────────────────────────────────────────

func (s *Shell) addresses() (main, derived types.Address, err error) {
	m, d, err := s.records.Addresses()
	if err != nil {
		return types.Address{}, types.Address{}, fmt.Errorf("%w (re-run setup)", err)
	}
	if main, err = types.ParseAddress(m); err != nil {
		return types.Address{}, types.Address{}, fmt.Errorf("%w: main address: %v", wallet.ErrCorruptRecord, err)
	}
	if derived, err = types.ParseAddress(d); err != nil {
		return types.Address{}, types.Address{}, fmt.Errorf("%w: derived address: %v", wallet.ErrCorruptRecord, err)
	}
	return main, derived, nil
}

func (s *Shell) addressOf(kind WalletKind) (types.Address, error) {
	main, derived, err := s.addresses()
	if err != nil {
		return types.Address{}, err
	}
	if kind == DerivedWallet {
		return derived, nil
	}
	return main, nil
}

func (s *Shell) chooseWallet() (WalletKind, error) {
	main, derived, err := s.addresses()
	if err != nil {
		return 0, err
	}
	fmt.Fprintln(s.out, "\nWhich address?")
	fmt.Fprintf(s.out, "1. %s (%s)\n", MainWallet, main.Hex())
	fmt.Fprintf(s.out, "2. %s (%s)\n", DerivedWallet, derived.Hex())
	choice, err := prompt.Choose(s.prompt, s.out, "Select: ", "1", "2")
	if err != nil {
		return 0, err
	}
	if choice == "2" {
		return DerivedWallet, nil
	}
	return MainWallet, nil
}

// unlock returns the seed phrase, asking for the password when the session
// is locked.
func (s *Shell) unlock() (string, error) {
	if s.session.IsUnlocked() {
		return s.session.Unlock(s.store, nil, nil)
	}
	rec, err := s.records.Load()
	if err != nil {
		return "", err
	}
	phrase, err := s.session.Unlock(s.store, rec, func() ([]byte, error) {
		fmt.Fprintln(s.out, yellow("\nWallet is locked."))
		return s.prompt.ReadPassword("Enter your password to unlock: ")
	})
	if err != nil {
		return "", err
	}
	fmt.Fprintln(s.out, green("Wallet unlocked for this session."))
	return phrase, nil
}

// passphrase returns the BIP-39 passphrase of the derived wallet, asking
// once per session.
func (s *Shell) passphrase() (string, error) {
	return s.session.SecondaryPassphrase(func() (string, error) {
		p, err := s.prompt.ReadPassword("Enter your BIP-39 passphrase: ")
		if err != nil {
			return "", err
		}
		return string(p), nil
	})
}

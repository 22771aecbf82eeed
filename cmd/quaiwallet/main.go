// quaiwallet is an interactive command-line wallet for the Quai network.
//
// Usage:
//
//	quaiwallet [global options]             Run the interactive wallet
//	quaiwallet [global options] setup       Create or restore the wallet
//	quaiwallet [global options] balance     Show both balances
//	quaiwallet [global options] history     List received or sent transactions
//	quaiwallet [global options] receive     Show a receive address as QR code
//	quaiwallet [global options] journal     Show transfers sent from this machine
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/Klingon-tech/quai-shadow-wallet/config"
	"github.com/Klingon-tech/quai-shadow-wallet/internal/explorer"
	"github.com/Klingon-tech/quai-shadow-wallet/internal/log"
	"github.com/Klingon-tech/quai-shadow-wallet/internal/prompt"
	"github.com/Klingon-tech/quai-shadow-wallet/internal/rpcclient"
	"github.com/Klingon-tech/quai-shadow-wallet/internal/shell"
	"github.com/Klingon-tech/quai-shadow-wallet/internal/storage"
	"github.com/Klingon-tech/quai-shadow-wallet/internal/wallet"
)

const version = "0.1.0"

func main() {
	app := cli.NewApp()
	app.Name = "quaiwallet"
	app.Version = version
	app.Usage = "Quai network wallet with an encrypted seed and a passphrase-protected shadow wallet"
	app.Flags = config.Flags()
	app.Action = func(c *cli.Context) error {
		return withShell(c, true, func(ctx context.Context, sh *shell.Shell) error {
			return sh.Run(ctx)
		})
	}
	app.Commands = []cli.Command{
		setupCommand,
		balanceCommand,
		historyCommand,
		receiveCommand,
		journalCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fatal("%v", err)
	}
}

// ── Commands ────────────────────────────────────────────────────────────

var walletFlag = cli.StringFlag{
	Name:  "wallet",
	Value: "main",
	Usage: "Which wallet to use: main or derived",
}

var setupCommand = cli.Command{
	Name:  "setup",
	Usage: "create a new wallet or restore one from a seed phrase",
	Action: func(c *cli.Context) error {
		return withShell(c, false, func(ctx context.Context, sh *shell.Shell) error {
			return sh.Setup(ctx)
		})
	},
}

var balanceCommand = cli.Command{
	Name:  "balance",
	Usage: "show the balance of the main and derived wallets",
	Action: func(c *cli.Context) error {
		return withShell(c, false, func(ctx context.Context, sh *shell.Shell) error {
			return sh.Balance(ctx)
		})
	},
}

var historyCommand = cli.Command{
	Name:  "history",
	Usage: "list received or sent transactions from the block explorer",
	Flags: []cli.Flag{
		walletFlag,
		cli.StringFlag{
			Name:  "type",
			Value: "received",
			Usage: "Which transactions to list: received or sent",
		},
	},
	Action: func(c *cli.Context) error {
		kind, err := shell.ParseWalletKind(c.String("wallet"))
		if err != nil {
			return err
		}
		dir, err := shell.ParseDirection(c.String("type"))
		if err != nil {
			return err
		}
		return withShell(c, false, func(ctx context.Context, sh *shell.Shell) error {
			return sh.ListTransactions(ctx, kind, dir)
		})
	},
}

var receiveCommand = cli.Command{
	Name:  "receive",
	Usage: "show a receive address and its QR code",
	Flags: []cli.Flag{walletFlag},
	Action: func(c *cli.Context) error {
		kind, err := shell.ParseWalletKind(c.String("wallet"))
		if err != nil {
			return err
		}
		return withShell(c, false, func(_ context.Context, sh *shell.Shell) error {
			return sh.Receive(kind)
		})
	},
}

var journalCommand = cli.Command{
	Name:  "journal",
	Usage: "show transfers broadcast from this machine",
	Action: func(c *cli.Context) error {
		return withShell(c, true, func(_ context.Context, sh *shell.Shell) error {
			return sh.ShowJournal()
		})
	},
}

// ── Wiring ──────────────────────────────────────────────────────────────

// withShell loads the configuration, builds the shell and runs fn. The
// journal database is only opened when needJournal is set.
func withShell(c *cli.Context, needJournal bool, fn func(context.Context, *shell.Shell) error) error {
	cfg, err := config.Load(c)
	if err != nil {
		return err
	}
	logFile, err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logFile.Close()
	log.Shell.Debug().
		Str("network", string(cfg.Network)).
		Str("zone", cfg.Zone().String()).
		Str("rpc", cfg.RPCEndpoint()).
		Str("explorer", cfg.Explorer.URL).
		Str("wallet", cfg.RecordPath()).
		Msg("Configuration loaded")

	// The first interrupt cancels network calls, except a confirmation wait
	// on a broadcast transfer; the next one kills the process as usual.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		stop()
	}()

	p, err := prompt.Open(os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer p.Close()

	var journal *wallet.Journal
	if needJournal && cfg.Wallet.Journal {
		db, err := storage.NewBadger(cfg.JournalDir())
		switch {
		case errors.Is(err, storage.ErrLocked):
			log.Storage.Warn().Err(err).Msg("Send journal disabled")
		case err != nil:
			return fmt.Errorf("open journal: %w", err)
		default:
			defer db.Close()
			journal = wallet.NewJournal(storage.NewPrefixDB(db, []byte(cfg.Zone().String()+"/")))
		}
	}

	rpc := rpcclient.NewWithTimeout(cfg.RPCEndpoint(), cfg.RPC.Timeout)
	sh := shell.New(shell.Config{
		Out:      os.Stdout,
		Prompter: p,
		Store:    wallet.NewSecretStore(wallet.DefaultParams()),
		Records:  wallet.NewRecordFile(cfg.RecordPath()),
		Session:  wallet.NewSession(),
		Chain:    rpcclient.NewChainClient(rpc, cfg.RPC.Namespace),
		History:  explorer.New(cfg.Explorer.URL, cfg.Explorer.Timeout),
		Journal:  journal,
		Zone:     cfg.Zone(),
		Account:  cfg.Wallet.Account,
	})

	err = fn(ctx, sh)
	if errors.Is(err, prompt.ErrCancelled) {
		return nil
	}
	return err
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

package shell

import (
	"context"
	"fmt"
	"math/big"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Klingon-tech/quai-shadow-wallet/internal/explorer"
	"github.com/Klingon-tech/quai-shadow-wallet/internal/wallet"
	"github.com/Klingon-tech/quai-shadow-wallet/pkg/types"
)

// ListTransactions prints the received or sent transactions of one wallet.
func (s *Shell) ListTransactions(ctx context.Context, kind WalletKind, dir Direction) error {
	addr, err := s.addressOf(kind)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "\nFetching %s transactions for %s...\n", dir, addr.Hex())
	txs, err := s.history.Transactions(ctx, addr.Hex())
	if err != nil {
		return fmt.Errorf("fetch history: %w", err)
	}
	if dir == Sent {
		txs = explorer.Sent(txs, addr.Hex())
	} else {
		txs = explorer.Received(txs, addr.Hex())
	}
	if len(txs) == 0 {
		fmt.Fprintf(s.out, "No %s transactions found for %s.\n", dir, kind)
		return nil
	}

	peer := "From"
	if dir == Sent {
		peer = "To"
	}
	tw := newTable("Date", "Hash", peer, "Amount")
	for _, tx := range txs {
		other, amount := tx.From, green("+ "+quai(tx.Value))
		if dir == Sent {
			other, amount = tx.To, red("- "+quai(tx.Value))
		}
		if tx.Failed {
			amount += " " + red("(failed)")
		}
		tw.AppendRow(table.Row{formatTime(tx.Timestamp), tx.Hash, other, amount})
	}
	tw.AppendFooter(table.Row{"", "", "Total", fmt.Sprintf("%d transactions", len(txs))})
	fmt.Fprintln(s.out, tw.Render())
	return nil
}

func (s *Shell) chooseAndList(ctx context.Context, dir Direction) error {
	kind, err := s.chooseWallet()
	if err != nil {
		return err
	}
	return s.ListTransactions(ctx, kind, dir)
}

// Receive shows the address of one wallet with a QR code.
func (s *Shell) Receive(kind WalletKind) error {
	addr, err := s.addressOf(kind)
	if err != nil {
		return err
	}
	qr, err := qrText(addr.Hex())
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, roundBox(kind.String()+" receive address", addr.Hex(), colorGreen))
	fmt.Fprint(s.out, qr)
	fmt.Fprintf(s.out, "Only send %s on the %s zone to this address.\n", types.Symbol, s.zone)
	return nil
}

func (s *Shell) chooseAndReceive() error {
	kind, err := s.chooseWallet()
	if err != nil {
		return err
	}
	return s.Receive(kind)
}

// ShowJournal prints the transfers broadcast from this machine.
func (s *Shell) ShowJournal() error {
	if s.journal == nil {
		fmt.Fprintln(s.out, yellow("\nThe send journal is disabled."))
		return nil
	}
	entries, err := s.journal.List()
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "\nNo transfers have been sent from this machine.")
		return nil
	}

	tw := newTable("Date", "Hash", "To", "Amount", "Status", "Block")
	for _, e := range entries {
		amount := e.Value
		if v, ok := new(big.Int).SetString(e.Value, 10); ok {
			amount = quai(v)
		}
		block := "-"
		if e.BlockNumber > 0 {
			block = fmt.Sprint(e.BlockNumber)
		}
		tw.AppendRow(table.Row{formatTime(e.CreatedAt), e.Hash, e.To, amount, statusText(e.Status), block})
	}
	fmt.Fprintln(s.out, tw.Render())
	return nil
}

func statusText(status wallet.JournalStatus) string {
	switch status {
	case wallet.StatusConfirmed:
		return green(string(status))
	case wallet.StatusFailed:
		return red(string(status))
	}
	return yellow(string(status))
}

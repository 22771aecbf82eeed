package shell

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/Klingon-tech/quai-shadow-wallet/internal/log"
	"github.com/Klingon-tech/quai-shadow-wallet/internal/prompt"
	"github.com/Klingon-tech/quai-shadow-wallet/internal/wallet"
	"github.com/Klingon-tech/quai-shadow-wallet/pkg/types"
)

// SendFromDerived spends from the passphrase-protected wallet to any
// address.
func (s *Shell) SendFromDerived(ctx context.Context) error {
	if err := wallet.CheckTransferSupport(s.chain); err != nil {
		return err
	}
	phrase, err := s.unlock()
	if err != nil {
		return err
	}
	pass, err := s.passphrase()
	if err != nil {
		return err
	}
	if pass == "" {
		fmt.Fprintln(s.out, red("\nBIP-39 passphrase required to spend from the derived wallet."))
		fmt.Fprintln(s.out, "Lock the wallet (option 8) to enter it again.")
		return nil
	}

	from, err := wallet.DeriveAccount(phrase, pass, s.account, s.zone)
	if err != nil {
		return err
	}
	if _, recorded, err := s.addresses(); err == nil && recorded != from.Address {
		fmt.Fprintln(s.out, yellow("Warning: this passphrase does not match the derived wallet created at setup."))
	}
	return s.send(ctx, from, DerivedWallet, nil)
}

// SendToDerived moves funds from the main wallet to the derived wallet
// recorded at setup.
func (s *Shell) SendToDerived(ctx context.Context) error {
	if err := wallet.CheckTransferSupport(s.chain); err != nil {
		return err
	}
	_, derived, err := s.addresses()
	if err != nil {
		return err
	}
	phrase, err := s.unlock()
	if err != nil {
		return err
	}
	from, err := wallet.DeriveAccount(phrase, "", s.account, s.zone)
	if err != nil {
		return err
	}
	return s.send(ctx, from, MainWallet, &derived)
}

// send runs the transfer dialog. A nil to asks for the destination.
func (s *Shell) send(ctx context.Context, from *wallet.Account, kind WalletKind, to *types.Address) error {
	balance, err := s.chain.BalanceAt(ctx, from.Address)
	if err != nil {
		return fmt.Errorf("get balance: %w", err)
	}
	fmt.Fprintln(s.out, roundBox("Sending from "+kind.String(), fmt.Sprintf(
		"%s\nBalance: %s", from.Address.Hex(), green(quai(balance))), colorCyan))
	if balance.Sign() == 0 {
		fmt.Fprintln(s.out, red("This wallet has no balance to send."))
		return nil
	}

	var dest types.Address
	if to != nil {
		dest = *to
		fmt.Fprintf(s.out, "Destination: %s\n", dest.Hex())
	} else {
		if dest, err = s.askAddress(); err != nil {
			return err
		}
	}
	if !types.InZone(dest, s.zone) {
		fmt.Fprintln(s.out, yellow(fmt.Sprintf("Warning: %s is not a %s address.", dest.Hex(), s.zone)))
	}

	value, err := s.askAmount(balance)
	if err != nil {
		return err
	}
	if value.Cmp(balance) > 0 {
		return fmt.Errorf("%w: have %s, need %s", wallet.ErrInsufficientFunds, quai(balance), quai(value))
	}

	ok, err := prompt.Confirm(s.prompt, fmt.Sprintf("Send %s to %s?", quai(value), dest.Hex()), false)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, yellow("Operation cancelled."))
		return nil
	}

	fmt.Fprintln(s.out, "Broadcasting transaction...")
	pending, err := wallet.Transfer(ctx, s.chain, from, dest, value)
	if err != nil {
		return err
	}
	if s.pollInterval > 0 {
		pending.PollInterval = s.pollInterval
	}
	s.journalRecord(pending)
	fmt.Fprintf(s.out, "Transaction sent: %s\n", cyan(pending.Hash.Hex()))
	fmt.Fprintln(s.out, "Waiting for confirmation. Press Ctrl-C twice to quit without waiting.")

	// The transfer is on the network: waiting outlives the first interrupt.
	receipt, err := pending.Wait(context.WithoutCancel(ctx))
	if err != nil {
		if errors.Is(err, wallet.ErrTransferFailed) && receipt != nil {
			s.journalUpdate(pending, wallet.StatusFailed, receipt.BlockNumber)
		}
		return err
	}
	s.journalUpdate(pending, wallet.StatusConfirmed, receipt.BlockNumber)
	fmt.Fprintln(s.out, green(fmt.Sprintf("Transaction confirmed in block %d.", receipt.BlockNumber)))
	return nil
}

func (s *Shell) askAddress() (types.Address, error) {
	for {
		line, err := s.prompt.ReadLine("Destination address: ")
		if err != nil {
			return types.Address{}, err
		}
		addr, err := types.ParseAddress(line)
		if err == nil {
			return addr, nil
		}
		fmt.Fprintln(s.out, red("Invalid address. Please try again."))
	}
}

func (s *Shell) askAmount(max *big.Int) (*big.Int, error) {
	for {
		line, err := s.prompt.ReadLine(fmt.Sprintf("Amount to send (max %s): ", quai(max)))
		if err != nil {
			return nil, err
		}
		v, err := types.ParseQuai(line)
		if err == nil && v.Sign() > 0 {
			return v, nil
		}
		if err == nil {
			err = errors.New("amount must be positive")
		}
		fmt.Fprintln(s.out, red("Invalid amount: "+err.Error()))
	}
}

// Journal failures never abort a send that already reached the network.

func (s *Shell) journalRecord(p *wallet.PendingTransfer) {
	if s.journal == nil {
		return
	}
	err := s.journal.Record(&wallet.JournalEntry{
		Hash:      p.Hash.Hex(),
		From:      p.From.Hex(),
		To:        p.To.Hex(),
		Value:     p.Value.String(),
		Status:    wallet.StatusPending,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Shell.Warn().Err(err).Str("hash", p.Hash.Hex()).Msg("Journal write failed")
	}
}

func (s *Shell) journalUpdate(p *wallet.PendingTransfer, status wallet.JournalStatus, block uint64) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Update(p.Hash.Hex(), status, block); err != nil {
		log.Shell.Warn().Err(err).Str("hash", p.Hash.Hex()).Msg("Journal update failed")
	}
}

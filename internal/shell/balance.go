package shell

import (
	"context"
	"fmt"
	"math/big"

	"golang.org/x/sync/errgroup"
)

// Balance shows the balances of both addresses. The record is read without
// unlocking.
func (s *Shell) Balance(ctx context.Context) error {
	main, derived, err := s.addresses()
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "\nFetching balances...")
	var mainBal, derivedBal *big.Int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.chain.BalanceAt(gctx, main)
		if err != nil {
			return fmt.Errorf("main wallet balance: %w", err)
		}
		mainBal = b
		return nil
	})
	g.Go(func() error {
		b, err := s.chain.BalanceAt(gctx, derived)
		if err != nil {
			return fmt.Errorf("derived wallet balance: %w", err)
		}
		derivedBal = b
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintln(s.out, roundBox("Wallet balances", fmt.Sprintf(
		"%s\n%s\n%s\n\n%s\n%s\n%s",
		bold(MainWallet.String()), main.Hex(), green(quai(mainBal)),
		bold(DerivedWallet.String()), derived.Hex(), green(quai(derivedBal)),
	), colorCyan))
	return nil
}

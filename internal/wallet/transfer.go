package wallet

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/Klingon-tech/quai-shadow-wallet/internal/log"
	"github.com/Klingon-tech/quai-shadow-wallet/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// DefaultPollInterval is how often Wait asks for the receipt.
const DefaultPollInterval = 2 * time.Second

// Chain reads balances and broadcasts signed transactions.
type Chain interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, addr types.Address) (*big.Int, error)
	PendingNonceAt(ctx context.Context, addr types.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, from, to types.Address, value *big.Int) (uint64, error)
	SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error)
	// TransactionReceipt returns nil and no error while the transaction is
	// not yet mined.
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

// EnvelopeChecker is implemented by chains that know whether their endpoint
// accepts EIP-2718 typed transaction envelopes.
type EnvelopeChecker interface {
	AcceptsTypedEnvelopes() bool
}

// CheckTransferSupport returns ErrUnsupportedChain when chain reports that
// it cannot take the transactions Transfer signs. Chains that do not
// implement EnvelopeChecker are assumed to accept them.
func CheckTransferSupport(chain Chain) error {
	if c, ok := chain.(EnvelopeChecker); ok && !c.AcceptsTypedEnvelopes() {
		return ErrUnsupportedChain
	}
	return nil
}

// PendingTransfer is a broadcast transaction awaiting inclusion.
type PendingTransfer struct {
	Hash  common.Hash
	From  types.Address
	To    types.Address
	Value *big.Int

	PollInterval time.Duration

	chain Chain
}

// Transfer signs a value transfer from the account to `to` and broadcasts
// it. The amount is checked against the on-chain balance first and nothing
// is sent if it does not fit.
func Transfer(ctx context.Context, chain Chain, from *Account, to types.Address, value *big.Int) (*PendingTransfer, error) {
	if err := CheckTransferSupport(chain); err != nil {
		return nil, err
	}
	if value == nil || value.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	balance, err := chain.BalanceAt(ctx, from.Address)
	if err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}
	if value.Cmp(balance) > 0 {
		return nil, fmt.Errorf("%w: have %s %s, need %s %s", ErrInsufficientFunds,
			types.FormatQuai(balance), types.Symbol, types.FormatQuai(value), types.Symbol)
	}

	chainID, err := chain.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("get chain id: %w", err)
	}
	nonce, err := chain.PendingNonceAt(ctx, from.Address)
	if err != nil {
		return nil, fmt.Errorf("get nonce: %w", err)
	}
	gasPrice, err := chain.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("get gas price: %w", err)
	}
	tip, err := chain.SuggestGasTipCap(ctx)
	if err != nil {
		log.Wallet.Debug().Err(err).Msg("Priority fee unavailable, using gas price")
		tip = new(big.Int).Set(gasPrice)
	}
	gas, err := chain.EstimateGas(ctx, from.Address, to, value)
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}

	// Fee cap leaves room for the base fee to double before inclusion.
	feeCap := new(big.Int).Mul(gasPrice, big.NewInt(2))
	feeCap.Add(feeCap, tip)

	tx := ethtypes.NewTx(&ethtypes.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &to,
		Value:     value,
	})

	key, err := from.PrivateKey()
	if err != nil {
		return nil, err
	}
	signed, err := ethtypes.SignTx(tx, ethtypes.LatestSignerForChainID(chainID), key)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	raw, err := signed.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}

	hash, err := chain.SendRawTransaction(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("broadcast transaction: %w", err)
	}
	log.Wallet.Info().
		Str("hash", hash.Hex()).
		Str("from", from.Address.Hex()).
		Str("to", to.Hex()).
		Uint64("nonce", nonce).
		Msg("Transaction broadcast")

	return &PendingTransfer{
		Hash:         hash,
		From:         from.Address,
		To:           to,
		Value:        new(big.Int).Set(value),
		PollInterval: DefaultPollInterval,
		chain:        chain,
	}, nil
}

// Wait polls for the receipt until the transaction is mined or ctx is done.
// Receipt lookups that fail are retried on the next tick. A reverted
// transaction returns its receipt together with ErrTransferFailed.
func (p *PendingTransfer) Wait(ctx context.Context) (*types.Receipt, error) {
	interval := p.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		receipt, err := p.chain.TransactionReceipt(ctx, p.Hash)
		switch {
		case err != nil:
			log.Wallet.Warn().Err(err).Str("hash", p.Hash.Hex()).Msg("Receipt lookup failed")
		case receipt != nil:
			if !receipt.Succeeded() {
				return receipt, fmt.Errorf("%w: %s reverted in block %d", ErrTransferFailed, p.Hash.Hex(), receipt.BlockNumber)
			}
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

package rpcclient

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Klingon-tech/quai-shadow-wallet/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Method namespaces. DefaultNamespace is the one Quai nodes serve.
const (
	DefaultNamespace = "quai"
	EthNamespace     = "eth"
)

// ChainClient reads account state and broadcasts transactions through a
// node's JSON-RPC API.
type ChainClient struct {
	rpc       *Client
	namespace string
}

// NewChainClient wraps c. Methods are called as "<namespace>_<name>"; an
// empty namespace selects DefaultNamespace.
func NewChainClient(c *Client, namespace string) *ChainClient {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &ChainClient{rpc: c, namespace: namespace}
}

// AcceptsTypedEnvelopes reports whether sendRawTransaction on this
// namespace takes EIP-2718 typed envelopes. The quai namespace decodes raw
// transactions as protobuf-encoded Quai transactions and does not.
func (c *ChainClient) AcceptsTypedEnvelopes() bool {
	return c.namespace == EthNamespace
}

func (c *ChainClient) method(name string) string {
	return c.namespace + "_" + name
}

func (c *ChainClient) callBig(ctx context.Context, name string, params ...interface{}) (*big.Int, error) {
	var out hexutil.Big
	if err := c.rpc.Call(ctx, c.method(name), params, &out); err != nil {
		return nil, err
	}
	return (*big.Int)(&out), nil
}

// ChainID returns the chain id used for transaction signing.
func (c *ChainClient) ChainID(ctx context.Context) (*big.Int, error) {
	return c.callBig(ctx, "chainId")
}

// BalanceAt returns the latest balance of addr in the smallest unit.
func (c *ChainClient) BalanceAt(ctx context.Context, addr types.Address) (*big.Int, error) {
	return c.callBig(ctx, "getBalance", addr, "latest")
}

// PendingNonceAt returns the next nonce of addr including pending transactions.
func (c *ChainClient) PendingNonceAt(ctx context.Context, addr types.Address) (uint64, error) {
	var out hexutil.Uint64
	if err := c.rpc.Call(ctx, c.method("getTransactionCount"), []interface{}{addr, "pending"}, &out); err != nil {
		return 0, err
	}
	return uint64(out), nil
}

// SuggestGasPrice returns the node's gas price.
func (c *ChainClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return c.callBig(ctx, "gasPrice")
}

// SuggestGasTipCap returns the node's priority fee suggestion.
func (c *ChainClient) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	return c.callBig(ctx, "maxPriorityFeePerGas")
}

type callArgs struct {
	From  common.Address `json:"from"`
	To    common.Address `json:"to"`
	Value *hexutil.Big   `json:"value"`
}

// EstimateGas estimates the gas of a plain value transfer.
func (c *ChainClient) EstimateGas(ctx context.Context, from, to types.Address, value *big.Int) (uint64, error) {
	args := callArgs{From: from, To: to, Value: (*hexutil.Big)(value)}
	var out hexutil.Uint64
	if err := c.rpc.Call(ctx, c.method("estimateGas"), []interface{}{args}, &out); err != nil {
		return 0, err
	}
	return uint64(out), nil
}

// SendRawTransaction broadcasts a signed transaction and returns its hash.
func (c *ChainClient) SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error) {
	var hash common.Hash
	if err := c.rpc.Call(ctx, c.method("sendRawTransaction"), []interface{}{hexutil.Bytes(raw)}, &hash); err != nil {
		return common.Hash{}, err
	}
	if hash == (common.Hash{}) {
		return common.Hash{}, fmt.Errorf("node returned no transaction hash")
	}
	return hash, nil
}

type receiptJSON struct {
	TransactionHash common.Hash    `json:"transactionHash"`
	BlockNumber     hexutil.Uint64 `json:"blockNumber"`
	Status          hexutil.Uint64 `json:"status"`
}

// TransactionReceipt returns the receipt of hash, or nil while it is pending.
func (c *ChainClient) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	var out *receiptJSON
	if err := c.rpc.Call(ctx, c.method("getTransactionReceipt"), []interface{}{hash}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return &types.Receipt{
		TxHash:      out.TransactionHash,
		BlockNumber: uint64(out.BlockNumber),
		Status:      uint64(out.Status),
	}, nil
}

package types

import "github.com/ethereum/go-ethereum/common"

// Receipt is the part of a transaction receipt the wallet cares about.
type Receipt struct {
	TxHash      common.Hash
	BlockNumber uint64
	// Status is 1 for success, 0 for a reverted transaction.
	Status uint64
}

// Succeeded reports whether the transaction executed successfully.
func (r *Receipt) Succeeded() bool {
	return r.Status == 1
}

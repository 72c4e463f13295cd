// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import "math/big"

// Header holds the per-block values the fee history computation reads.
type Header struct {
	Number   uint64
	GasLimit uint64
	GasUsed  uint64
	// Nil for pre-EIP-1559 blocks.
	BaseFee *big.Int
	// Nil for pre-EIP-4844 blocks.
	BlobGasUsed   *uint64
	ExcessBlobGas *uint64
}

// Transaction carries the parts of an executed transaction that feed the
// reward percentile computation. The effective priority fee is assumed to be
// already resolved against the block's base fee by the producer.
type Transaction struct {
	GasUsed     uint64
	PriorityFee *big.Int
}

// Block bundles a header with its executed transactions.
type Block struct {
	header *Header
	txs    []Transaction
}

// NewBlock creates a block. The transaction slice is owned by the block
// afterwards.
func NewBlock(header *Header, txs []Transaction) *Block {
	return &Block{header: header, txs: txs}
}

func (b *Block) Header() *Header { return b.header }

func (b *Block) Transactions() []Transaction { return b.txs }

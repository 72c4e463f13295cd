// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fees

import (
	"encoding/json"
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// FeeHistory is the response body of the fee history endpoint, matching the
// shape of an `eth_feeHistory` JSON-RPC response.
type FeeHistory struct {
	// Base fee per block, plus one extra entry for the block following the
	// newest of the returned range, since it is derivable from the newest
	// block. Zeroes for pre-EIP-1559 blocks.
	BaseFeePerGas []*hexutil.Big
	// gasUsed/gasLimit per block.
	GasUsedRatio []float64
	// Blob base fee per block, with the same extra trailing entry convention
	// as BaseFeePerGas. Zeroes for pre-EIP-4844 blocks.
	BaseFeePerBlobGas []*hexutil.Big
	// Blob gas used ratio per block.
	BlobGasUsedRatio []float64
	// Block number of the oldest block in the returned range.
	OldestBlock hexutil.Uint64
	// Per-block effective priority fees at the requested percentiles.
	// Nil when no percentiles were requested; an all-zero row marks an
	// empty block.
	Reward [][]*hexutil.Big
}

// feeHistoryJSON fixes the wire field names and the omission rules.
// The empty baseFeePerGas/baseFeePerBlobGas/blobGasUsedRatio arrays are
// skipped while gasUsedRatio is always emitted, matching Erigon and Geth.
type feeHistoryJSON struct {
	BaseFeePerGas     []*hexutil.Big   `json:"baseFeePerGas,omitempty"`
	GasUsedRatio      []float64        `json:"gasUsedRatio"`
	BaseFeePerBlobGas []*hexutil.Big   `json:"baseFeePerBlobGas,omitempty"`
	BlobGasUsedRatio  []float64        `json:"blobGasUsedRatio,omitempty"`
	OldestBlock       hexutil.Uint64   `json:"oldestBlock"`
	Reward            [][]*hexutil.Big `json:"reward,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (f *FeeHistory) MarshalJSON() ([]byte, error) {
	out := feeHistoryJSON{
		BaseFeePerGas:     f.BaseFeePerGas,
		GasUsedRatio:      f.GasUsedRatio,
		BaseFeePerBlobGas: f.BaseFeePerBlobGas,
		BlobGasUsedRatio:  f.BlobGasUsedRatio,
		OldestBlock:       f.OldestBlock,
		Reward:            f.Reward,
	}
	if out.GasUsedRatio == nil {
		// gasUsedRatio serializes as [] even when empty
		out.GasUsedRatio = []float64{}
	}
	return json.Marshal(&out)
}

// UnmarshalJSON implements json.Unmarshaler. Omitted optional fields decode
// to empty slices (nil for reward).
func (f *FeeHistory) UnmarshalJSON(data []byte) error {
	var in feeHistoryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*f = FeeHistory{
		BaseFeePerGas:     in.BaseFeePerGas,
		GasUsedRatio:      in.GasUsedRatio,
		BaseFeePerBlobGas: in.BaseFeePerBlobGas,
		BlobGasUsedRatio:  in.BlobGasUsedRatio,
		OldestBlock:       in.OldestBlock,
		Reward:            in.Reward,
	}
	return nil
}

// LatestBlockBaseFee returns the base fee of the newest requested block,
// which is the second last entry of BaseFeePerGas. Nil if the history is
// too short.
func (f *FeeHistory) LatestBlockBaseFee() *big.Int {
	if len(f.BaseFeePerGas) < 2 {
		return nil
	}
	return (*big.Int)(f.BaseFeePerGas[len(f.BaseFeePerGas)-2])
}

// NextBlockBaseFee returns the derived base fee of the block following the
// newest requested block. Nil if the history is empty.
func (f *FeeHistory) NextBlockBaseFee() *big.Int {
	if len(f.BaseFeePerGas) == 0 {
		return nil
	}
	return (*big.Int)(f.BaseFeePerGas[len(f.BaseFeePerGas)-1])
}

// NextBlockBlobBaseFee returns the derived blob base fee of the next block.
// Nil if the history is empty or the value is the zero returned for
// pre-EIP-4844 blocks.
func (f *FeeHistory) NextBlockBlobBaseFee() *big.Int {
	if len(f.BaseFeePerBlobGas) == 0 {
		return nil
	}
	return nonZero(f.BaseFeePerBlobGas[len(f.BaseFeePerBlobGas)-1])
}

// LatestBlockBlobBaseFee returns the blob base fee of the newest requested
// block, with the same zero filtering as NextBlockBlobBaseFee.
func (f *FeeHistory) LatestBlockBlobBaseFee() *big.Int {
	if len(f.BaseFeePerBlobGas) < 2 {
		return nil
	}
	return nonZero(f.BaseFeePerBlobGas[len(f.BaseFeePerBlobGas)-2])
}

func nonZero(fee *hexutil.Big) *big.Int {
	if fee == nil || (*big.Int)(fee).Sign() == 0 {
		return nil
	}
	return (*big.Int)(fee)
}

// TxGasAndReward is one transaction's contribution to a block's reward
// statistics.
type TxGasAndReward struct {
	// Gas consumed by the transaction. Carried through sorts but never
	// part of the ordering key.
	GasUsed uint64
	// Effective priority fee paid by the transaction.
	Reward *big.Int
}

// CompareTxGasAndReward orders by reward only. Transactions paying equal
// tips are ordering-equivalent regardless of their gas used.
func CompareTxGasAndReward(a, b TxGasAndReward) int {
	return a.Reward.Cmp(b.Reward)
}

// SortTxGasAndReward stable-sorts by ascending reward, so equal tips keep
// their original order.
func SortTxGasAndReward(items []TxGasAndReward) {
	slices.SortStableFunc(items, CompareTxGasAndReward)
}

// FeesPriority is the response body of the priority fee endpoint.
type FeesPriority struct {
	MaxPriorityFeePerGas *hexutil.Big `json:"maxPriorityFeePerGas"`
}

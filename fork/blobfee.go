// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fork

import (
	"math/big"

	"github.com/dorlneylon/alloy/chain"
)

const (
	// GasPerBlob is the blob gas consumed by a single blob.
	GasPerBlob = 1 << 17
	// TargetBlobGasPerBlock is the blob gas consumption the excess targets.
	TargetBlobGasPerBlock = 3 * GasPerBlob
	// MaxBlobGasPerBlock caps the blob gas a block may consume.
	MaxBlobGasPerBlock = 6 * GasPerBlob
	// MinBlobBaseFee is the floor of the blob fee market.
	MinBlobBaseFee = 1
	// BlobBaseFeeUpdateFraction controls how fast the blob base fee reacts
	// to excess blob gas.
	BlobBaseFeeUpdateFraction = 3338477
)

// CalcBlobFee computes the blob base fee for a block carrying the given
// excess blob gas.
func CalcBlobFee(excessBlobGas uint64) *big.Int {
	return fakeExponential(
		big.NewInt(MinBlobBaseFee),
		new(big.Int).SetUint64(excessBlobGas),
		big.NewInt(BlobBaseFeeUpdateFraction),
	)
}

// CalcNextExcessBlobGas computes the excess blob gas of the block following
// parent. Nil if the parent is pre-EIP-4844.
func CalcNextExcessBlobGas(parent *chain.Header) *uint64 {
	if parent.ExcessBlobGas == nil || parent.BlobGasUsed == nil {
		return nil
	}
	excess := *parent.ExcessBlobGas + *parent.BlobGasUsed
	if excess < TargetBlobGasPerBlock {
		excess = 0
	} else {
		excess -= TargetBlobGasPerBlock
	}
	return &excess
}

// fakeExponential approximates factor * e ** (numerator / denominator) by
// Taylor expansion, as specified by EIP-4844.
func fakeExponential(factor, numerator, denominator *big.Int) *big.Int {
	var (
		output = new(big.Int)
		accum  = new(big.Int).Mul(factor, denominator)
	)
	for i := 1; accum.Sign() > 0; i++ {
		output.Add(output, accum)

		accum.Mul(accum, numerator)
		accum.Div(accum, denominator)
		accum.Div(accum, big.NewInt(int64(i)))
	}
	return output.Div(output, denominator)
}

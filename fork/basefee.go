// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package fork derives the fee values of the block following the newest
// block of a fee history range.
package fork

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/dorlneylon/alloy/chain"
)

const (
	// ElasticityMultiplier bounds the maximum gas limit an EIP-1559 block may have.
	ElasticityMultiplier = 2
	// BaseFeeChangeDenominator bounds the amount the base fee can change between blocks.
	BaseFeeChangeDenominator = 8
	// InitialBaseFee is the base fee of the first EIP-1559 block.
	InitialBaseFee = 1_000_000_000
)

// CalcNextBaseFee calculates the base fee of the block following parent.
func CalcNextBaseFee(parent *chain.Header) *big.Int {
	// The block following the last pre-EIP-1559 block starts at the initial base fee.
	if parent.BaseFee == nil {
		return new(big.Int).SetUint64(InitialBaseFee)
	}

	var (
		parentGasTarget          = parent.GasLimit / ElasticityMultiplier
		parentGasTargetBig       = new(big.Int).SetUint64(parentGasTarget)
		baseFeeChangeDenominator = new(big.Int).SetUint64(BaseFeeChangeDenominator)
	)
	parentGasUsed := parent.GasUsed
	parentBaseFee := parent.BaseFee

	// If the parent gasUsed is the same as the target, the baseFee remains unchanged.
	if parentGasUsed == parentGasTarget {
		return new(big.Int).Set(parentBaseFee)
	}
	if parentGasUsed > parentGasTarget {
		// If the parent block used more gas than its target, the baseFee should increase.
		// newBaseFee := parentBaseFee + max(1, parentBaseFee * (parentGasUsed - parentGasTarget) / parentGasTarget / baseFeeChangeDenominator)
		gasUsedDelta := new(big.Int).SetUint64(parentGasUsed - parentGasTarget)
		x := new(big.Int).Mul(parentBaseFee, gasUsedDelta)
		y := x.Div(x, parentGasTargetBig)
		baseFeeDelta := math.BigMax(
			x.Div(y, baseFeeChangeDenominator),
			common.Big1,
		)

		return x.Add(parentBaseFee, baseFeeDelta)
	}

	// Otherwise the parent block used less gas than its target, so the baseFee should decrease.
	// newBaseFee := max(0, parentBaseFee - parentBaseFee * (parentGasTarget - parentGasUsed) / parentGasTarget / baseFeeChangeDenominator)
	gasUsedDelta := new(big.Int).SetUint64(parentGasTarget - parentGasUsed)
	x := new(big.Int).Mul(parentBaseFee, gasUsedDelta)
	y := x.Div(x, parentGasTargetBig)
	baseFeeDelta := x.Div(y, baseFeeChangeDenominator)

	return math.BigMax(
		x.Sub(parentBaseFee, baseFeeDelta),
		common.Big0,
	)
}

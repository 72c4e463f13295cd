// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fees

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/dorlneylon/alloy/cache"
	"github.com/dorlneylon/alloy/chain"
	"github.com/dorlneylon/alloy/fork"
)

// Config bundles the limits of the fees endpoints.
type Config struct {
	APIBacktraceLimit  int
	FixedCacheSize     int
	PriorityPercentile int
}

// blockRewards keeps a block's transactions sorted by reward, ready for
// percentile selection with any requested percentiles.
type blockRewards struct {
	items        []TxGasAndReward
	totalGasUsed uint64
}

// FeeCacheEntry holds the per-block values the history is assembled from.
type FeeCacheEntry struct {
	baseFee          *hexutil.Big
	blobBaseFee      *hexutil.Big
	gasUsedRatio     float64
	blobGasUsedRatio float64
	rewards          *blockRewards
}

type FeesData struct {
	repo   *chain.Repository
	cache  *cache.PrioCache
	config Config
}

func newFeesData(repo *chain.Repository, config Config) *FeesData {
	return &FeesData{
		repo:   repo,
		cache:  cache.NewPrioCache(config.FixedCacheSize),
		config: config,
	}
}

func getBaseFee(baseFee *big.Int) *hexutil.Big {
	if baseFee != nil {
		return (*hexutil.Big)(baseFee)
	}
	return (*hexutil.Big)(big.NewInt(0))
}

func getBlobBaseFee(header *chain.Header) *hexutil.Big {
	// zero marks a pre-EIP-4844 block
	if header.ExcessBlobGas == nil {
		return (*hexutil.Big)(big.NewInt(0))
	}
	return (*hexutil.Big)(fork.CalcBlobFee(*header.ExcessBlobGas))
}

func getBlobGasUsedRatio(header *chain.Header) float64 {
	if header.BlobGasUsed == nil {
		return 0
	}
	return float64(*header.BlobGasUsed) / float64(fork.MaxBlobGasPerBlock)
}

// resolveRange assembles the fee history for the blockCount blocks ending at
// the newest block, deriving the trailing next-block entries from the newest
// header. Assumes the boundaries are validated beforehand.
func (fd *FeesData) resolveRange(newest *chain.Block, blockCount uint32, rewardPercentiles []float64) (*FeeHistory, error) {
	newestNumber := newest.Header().Number
	oldestNumber := newestNumber - uint64(blockCount) + 1

	history := &FeeHistory{
		// one extra trailing entry for the next block
		BaseFeePerGas:     make([]*hexutil.Big, blockCount+1),
		GasUsedRatio:      make([]float64, blockCount),
		BaseFeePerBlobGas: make([]*hexutil.Big, blockCount+1),
		BlobGasUsedRatio:  make([]float64, blockCount),
		OldestBlock:       hexutil.Uint64(oldestNumber),
	}
	if rewardPercentiles != nil {
		history.Reward = make([][]*hexutil.Big, blockCount)
	}

	for i := uint32(0); i < blockCount; i++ {
		entry, err := fd.getOrLoadFees(oldestNumber + uint64(i))
		if err != nil {
			return nil, err
		}
		history.BaseFeePerGas[i] = entry.baseFee
		history.GasUsedRatio[i] = entry.gasUsedRatio
		history.BaseFeePerBlobGas[i] = entry.blobBaseFee
		history.BlobGasUsedRatio[i] = entry.blobGasUsedRatio
		if rewardPercentiles != nil {
			history.Reward[i] = calculateRewards(entry.rewards, rewardPercentiles)
		}
	}

	newestHeader := newest.Header()
	history.BaseFeePerGas[blockCount] = (*hexutil.Big)(fork.CalcNextBaseFee(newestHeader))
	if excess := fork.CalcNextExcessBlobGas(newestHeader); excess != nil {
		history.BaseFeePerBlobGas[blockCount] = (*hexutil.Big)(fork.CalcBlobFee(*excess))
	} else {
		history.BaseFeePerBlobGas[blockCount] = (*hexutil.Big)(big.NewInt(0))
	}

	return history, nil
}

// calculateRewards picks the reward at each requested percentile, walking
// the sorted transactions by their share of the block's gas. A nil or empty
// block yields an all-zero row.
func calculateRewards(r *blockRewards, rewardPercentiles []float64) []*hexutil.Big {
	rewards := make([]*hexutil.Big, len(rewardPercentiles))
	if r == nil || len(r.items) == 0 {
		for i := range rewards {
			rewards[i] = (*hexutil.Big)(big.NewInt(0))
		}
		return rewards
	}

	currentTransactionIndex := 0
	cumulativeGasUsed := r.items[0].GasUsed

	for i, p := range rewardPercentiles {
		thresholdGasUsed := uint64(float64(r.totalGasUsed) * p / 100)
		for cumulativeGasUsed < thresholdGasUsed && currentTransactionIndex < len(r.items)-1 {
			currentTransactionIndex++
			cumulativeGasUsed += r.items[currentTransactionIndex].GasUsed
		}
		rewards[i] = (*hexutil.Big)(r.items[currentTransactionIndex].Reward)
	}

	return rewards
}

// pooledRewards gathers the sorted rewards of the blockCount newest blocks
// into a single ascending sequence, for the priority fee suggestion.
func (fd *FeesData) pooledRewards(blockCount uint32) ([]TxGasAndReward, error) {
	best := fd.repo.BestBlock().Header().Number

	var pooled []TxGasAndReward
	for i := uint32(0); i < blockCount; i++ {
		entry, err := fd.getOrLoadFees(best - uint64(i))
		if err != nil {
			return nil, err
		}
		if entry.rewards != nil {
			pooled = append(pooled, entry.rewards.items...)
		}
	}
	SortTxGasAndReward(pooled)
	return pooled, nil
}

func (fd *FeesData) getOrLoadFees(blockNumber uint64) (*FeeCacheEntry, error) {
	fees, _, found := fd.cache.Get(blockNumber)
	if found {
		metricCacheHitCount().Add(1)
		return fees.(*FeeCacheEntry), nil
	}
	metricCacheMissCount().Add(1)

	block, err := fd.repo.GetBlock(blockNumber)
	if err != nil {
		return nil, err
	}

	header := block.Header()
	entry := &FeeCacheEntry{
		baseFee:          getBaseFee(header.BaseFee),
		blobBaseFee:      getBlobBaseFee(header),
		gasUsedRatio:     float64(header.GasUsed) / float64(header.GasLimit),
		blobGasUsedRatio: getBlobGasUsedRatio(header),
		rewards:          newBlockRewards(block),
	}
	fd.cache.Set(header.Number, entry, float64(header.Number))

	return entry, nil
}

func newBlockRewards(block *chain.Block) *blockRewards {
	transactions := block.Transactions()
	if len(transactions) == 0 {
		return nil
	}

	items := make([]TxGasAndReward, len(transactions))
	for i, tx := range transactions {
		items[i] = TxGasAndReward{
			GasUsed: tx.GasUsed,
			Reward:  tx.PriorityFee,
		}
	}
	SortTxGasAndReward(items)

	return &blockRewards{
		items:        items,
		totalGasUsed: block.Header().GasUsed,
	}
}

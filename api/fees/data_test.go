// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fees

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dorlneylon/alloy/chain"
	"github.com/dorlneylon/alloy/fork"
)

func newTestRepo(t *testing.T, blockCount int, txsFor func(num uint64) []chain.Transaction) *chain.Repository {
	var zero uint64
	genesis := chain.NewBlock(&chain.Header{
		Number:        0,
		GasLimit:      30_000_000,
		BaseFee:       big.NewInt(fork.InitialBaseFee),
		BlobGasUsed:   &zero,
		ExcessBlobGas: &zero,
	}, nil)

	repo, err := chain.NewRepository(genesis)
	require.NoError(t, err)

	parent := genesis.Header()
	for i := 1; i <= blockCount; i++ {
		txs := txsFor(uint64(i))
		var gasUsed uint64
		for _, tx := range txs {
			gasUsed += tx.GasUsed
		}

		blobGasUsed := uint64(0)
		header := &chain.Header{
			Number:        uint64(i),
			GasLimit:      30_000_000,
			GasUsed:       gasUsed,
			BaseFee:       fork.CalcNextBaseFee(parent),
			BlobGasUsed:   &blobGasUsed,
			ExcessBlobGas: fork.CalcNextExcessBlobGas(parent),
		}
		require.NoError(t, repo.AddBlock(chain.NewBlock(header, txs)))
		parent = header
	}
	return repo
}

func noTxs(uint64) []chain.Transaction { return nil }

func TestCalculateRewards(t *testing.T) {
	rewards := &blockRewards{
		items: []TxGasAndReward{
			{GasUsed: 100, Reward: big.NewInt(10)},
			{GasUsed: 200, Reward: big.NewInt(20)},
			{GasUsed: 300, Reward: big.NewInt(30)},
		},
		totalGasUsed: 600,
	}

	tests := []struct {
		name        string
		rewards     *blockRewards
		percentiles []float64
		expected    []*hexutil.Big
	}{
		{
			name:        "percentiles walk the gas share",
			rewards:     rewards,
			percentiles: []float64{0, 25, 50, 75, 100},
			expected: []*hexutil.Big{
				bigValue(10), bigValue(20), bigValue(20), bigValue(30), bigValue(30),
			},
		},
		{
			name:        "single percentile",
			rewards:     rewards,
			percentiles: []float64{50},
			expected:    []*hexutil.Big{bigValue(20)},
		},
		{
			name:        "no transactions yields zeroes",
			rewards:     nil,
			percentiles: []float64{25, 75},
			expected:    []*hexutil.Big{bigValue(0), bigValue(0)},
		},
		{
			name:        "empty items yields zeroes",
			rewards:     &blockRewards{},
			percentiles: []float64{50},
			expected:    []*hexutil.Big{bigValue(0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calculateRewards(tt.rewards, tt.percentiles))
		})
	}
}

func TestResolveRange(t *testing.T) {
	repo := newTestRepo(t, 5, func(num uint64) []chain.Transaction {
		return []chain.Transaction{
			{GasUsed: 21_000, PriorityFee: big.NewInt(int64(num) * 100)},
			{GasUsed: 21_000, PriorityFee: big.NewInt(int64(num) * 200)},
		}
	})
	fd := newFeesData(repo, Config{FixedCacheSize: 16})

	newest := repo.BestBlock()
	history, err := fd.resolveRange(newest, 3, nil)
	require.NoError(t, err)

	// base fee arrays carry the extra next-block entry, ratios do not
	assert.Len(t, history.BaseFeePerGas, 4)
	assert.Len(t, history.GasUsedRatio, 3)
	assert.Len(t, history.BaseFeePerBlobGas, 4)
	assert.Len(t, history.BlobGasUsedRatio, 3)
	assert.Nil(t, history.Reward)
	assert.Equal(t, hexutil.Uint64(3), history.OldestBlock)

	newestHeader := newest.Header()
	assert.Equal(t, newestHeader.BaseFee, history.LatestBlockBaseFee())
	assert.Equal(t, fork.CalcNextBaseFee(newestHeader), history.NextBlockBaseFee())

	excess := fork.CalcNextExcessBlobGas(newestHeader)
	require.NotNil(t, excess)
	assert.Equal(t, fork.CalcBlobFee(*excess), (*big.Int)(history.BaseFeePerBlobGas[3]))

	for i, ratio := range history.GasUsedRatio {
		block, err := repo.GetBlock(uint64(3 + i))
		require.NoError(t, err)
		assert.Equal(t, float64(block.Header().GasUsed)/float64(block.Header().GasLimit), ratio)
	}
}

func TestResolveRangeWithRewards(t *testing.T) {
	repo := newTestRepo(t, 3, func(num uint64) []chain.Transaction {
		return []chain.Transaction{
			{GasUsed: 21_000, PriorityFee: big.NewInt(300)},
			{GasUsed: 21_000, PriorityFee: big.NewInt(100)},
			{GasUsed: 21_000, PriorityFee: big.NewInt(200)},
		}
	})
	fd := newFeesData(repo, Config{FixedCacheSize: 16})

	history, err := fd.resolveRange(repo.BestBlock(), 2, []float64{10, 50, 90})
	require.NoError(t, err)

	require.Len(t, history.Reward, 2)
	for _, row := range history.Reward {
		assert.Equal(t, []*hexutil.Big{bigValue(100), bigValue(200), bigValue(300)}, row)
	}
}

func TestResolveRangeGenesisOnly(t *testing.T) {
	repo := newTestRepo(t, 0, noTxs)
	fd := newFeesData(repo, Config{FixedCacheSize: 16})

	history, err := fd.resolveRange(repo.BestBlock(), 1, []float64{50})
	require.NoError(t, err)

	assert.Equal(t, hexutil.Uint64(0), history.OldestBlock)
	assert.Len(t, history.BaseFeePerGas, 2)
	assert.Equal(t, []float64{0}, history.GasUsedRatio)
	assert.Equal(t, [][]*hexutil.Big{{bigValue(0)}}, history.Reward)
}

func TestPooledRewards(t *testing.T) {
	repo := newTestRepo(t, 4, func(num uint64) []chain.Transaction {
		return []chain.Transaction{
			{GasUsed: 21_000, PriorityFee: big.NewInt(int64(num * 10))},
			{GasUsed: 21_000, PriorityFee: big.NewInt(int64(num * 5))},
		}
	})
	fd := newFeesData(repo, Config{FixedCacheSize: 16})

	pooled, err := fd.pooledRewards(3)
	require.NoError(t, err)

	require.Len(t, pooled, 6)
	for i := 1; i < len(pooled); i++ {
		assert.LessOrEqual(t, pooled[i-1].Reward.Cmp(pooled[i].Reward), 0)
	}
	assert.Equal(t, big.NewInt(10), pooled[0].Reward)
	assert.Equal(t, big.NewInt(40), pooled[len(pooled)-1].Reward)
}

func TestGetOrLoadFeesCaches(t *testing.T) {
	repo := newTestRepo(t, 2, noTxs)
	fd := newFeesData(repo, Config{FixedCacheSize: 16})

	first, err := fd.getOrLoadFees(1)
	require.NoError(t, err)
	second, err := fd.getOrLoadFees(1)
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = fd.getOrLoadFees(10)
	assert.True(t, repo.IsNotFound(err))
}

func TestNewBlockRewards(t *testing.T) {
	empty := chain.NewBlock(&chain.Header{Number: 1, GasLimit: 30_000_000}, nil)
	assert.Nil(t, newBlockRewards(empty))

	block := chain.NewBlock(&chain.Header{Number: 1, GasLimit: 30_000_000, GasUsed: 63_000},
		[]chain.Transaction{
			{GasUsed: 21_000, PriorityFee: big.NewInt(30)},
			{GasUsed: 21_000, PriorityFee: big.NewInt(10)},
			{GasUsed: 21_000, PriorityFee: big.NewInt(20)},
		})
	rewards := newBlockRewards(block)
	require.NotNil(t, rewards)
	assert.Equal(t, uint64(63_000), rewards.totalGasUsed)
	assert.Equal(t, big.NewInt(10), rewards.items[0].Reward)
	assert.Equal(t, big.NewInt(20), rewards.items[1].Reward)
	assert.Equal(t, big.NewInt(30), rewards.items[2].Reward)
}

func bigValue(i int64) *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(i))
}

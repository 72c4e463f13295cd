// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dorlneylon/alloy/chain"
)

func newBlock(num uint64) *chain.Block {
	return chain.NewBlock(&chain.Header{
		Number:   num,
		GasLimit: 30_000_000,
		BaseFee:  big.NewInt(1_000_000_000),
	}, nil)
}

func TestNewRepository(t *testing.T) {
	repo, err := chain.NewRepository(newBlock(0))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), repo.BestBlock().Header().Number)

	_, err = chain.NewRepository(newBlock(1))
	assert.Error(t, err)
}

func TestAddBlock(t *testing.T) {
	repo, err := chain.NewRepository(newBlock(0))
	require.NoError(t, err)

	require.NoError(t, repo.AddBlock(newBlock(1)))
	require.NoError(t, repo.AddBlock(newBlock(2)))
	assert.Equal(t, uint64(2), repo.BestBlock().Header().Number)

	// gaps and replays are rejected
	assert.Error(t, repo.AddBlock(newBlock(2)))
	assert.Error(t, repo.AddBlock(newBlock(5)))
}

func TestGetBlock(t *testing.T) {
	repo, err := chain.NewRepository(newBlock(0))
	require.NoError(t, err)
	require.NoError(t, repo.AddBlock(newBlock(1)))

	block, err := repo.GetBlock(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), block.Header().Number)

	_, err = repo.GetBlock(2)
	assert.Error(t, err)
	assert.True(t, repo.IsNotFound(err))
	assert.False(t, repo.IsNotFound(nil))
}

// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package feesclient_test

import (
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dorlneylon/alloy/api/fees"
	"github.com/dorlneylon/alloy/chain"
	"github.com/dorlneylon/alloy/feesclient"
	"github.com/dorlneylon/alloy/fork"
)

func startServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
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
	for i := 1; i <= 4; i++ {
		blobGasUsed := uint64(0)
		header := &chain.Header{
			Number:        uint64(i),
			GasLimit:      30_000_000,
			GasUsed:       21_000,
			BaseFee:       fork.CalcNextBaseFee(parent),
			BlobGasUsed:   &blobGasUsed,
			ExcessBlobGas: fork.CalcNextExcessBlobGas(parent),
		}
		txs := []chain.Transaction{{GasUsed: 21_000, PriorityFee: big.NewInt(3_000_000_000)}}
		require.NoError(t, repo.AddBlock(chain.NewBlock(header, txs)))
		parent = header
	}

	router := mux.NewRouter()
	fees.New(repo, fees.Config{
		APIBacktraceLimit:  1000,
		FixedCacheSize:     128,
		PriorityPercentile: 60,
	}).Mount(router, "/fees")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestFeeHistory(t *testing.T) {
	var hits atomic.Int64
	ts := startServer(t, &hits)
	client := feesclient.New(ts.URL)

	history, err := client.FeeHistory(2, feesclient.BestRevision, []float64{50})
	require.NoError(t, err)

	assert.Equal(t, hexutil.Uint64(3), history.OldestBlock)
	assert.Len(t, history.BaseFeePerGas, 3)
	require.Len(t, history.Reward, 2)
	assert.Equal(t, []*hexutil.Big{(*hexutil.Big)(big.NewInt(3_000_000_000))}, history.Reward[0])
}

func TestFeeHistoryMemoizesNumericRevisions(t *testing.T) {
	var hits atomic.Int64
	ts := startServer(t, &hits)
	client := feesclient.New(ts.URL)

	first, err := client.FeeHistory(2, "3", nil)
	require.NoError(t, err)
	second, err := client.FeeHistory(2, "3", nil)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int64(1), hits.Load())

	// "best" tracks a moving chain and is never memoized
	_, err = client.FeeHistory(2, feesclient.BestRevision, nil)
	require.NoError(t, err)
	_, err = client.FeeHistory(2, feesclient.BestRevision, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), hits.Load())
}

func TestFeeHistoryBadRequest(t *testing.T) {
	var hits atomic.Int64
	ts := startServer(t, &hits)
	client := feesclient.New(ts.URL)

	_, err := client.FeeHistory(0, feesclient.BestRevision, nil)
	assert.ErrorIs(t, err, feesclient.ErrNot200Status)
}

func TestFeeHistoryNotFound(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(ts.Close)
	client := feesclient.New(ts.URL)

	_, err := client.FeeHistory(1, feesclient.BestRevision, nil)
	assert.ErrorIs(t, err, feesclient.ErrNotFound)
}

func TestSuggestedPriorityFee(t *testing.T) {
	var hits atomic.Int64
	ts := startServer(t, &hits)
	client := feesclient.New(ts.URL)

	priority, err := client.SuggestedPriorityFee()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(3_000_000_000), priority)
}

// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dorlneylon/alloy/api"
	"github.com/dorlneylon/alloy/api/fees"
	"github.com/dorlneylon/alloy/chain"
	"github.com/dorlneylon/alloy/fork"
)

func newAPIServer(t *testing.T, opts api.Options) *httptest.Server {
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

	handler := api.New(repo, fees.Config{
		APIBacktraceLimit:  1000,
		FixedCacheSize:     128,
		PriorityPercentile: 60,
	}, opts)

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestAPIRoutes(t *testing.T) {
	ts := newAPIServer(t, api.Options{EnableMetrics: true, EnableReqLogger: true})

	res, err := http.Get(ts.URL + "/fees/history?blockCount=1&newestBlock=best")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "application/json")

	var history fees.FeeHistory
	require.NoError(t, json.NewDecoder(res.Body).Decode(&history))
	assert.Len(t, history.BaseFeePerGas, 2)

	res, err = http.Get(ts.URL + "/fees/priority")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, err = http.Get(ts.URL + "/no-such-path")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestAPICORSPreflight(t *testing.T) {
	ts := newAPIServer(t, api.Options{AllowedOrigins: "example.com"})

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/fees/priority", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "example.com", res.Header.Get("Access-Control-Allow-Origin"))
}

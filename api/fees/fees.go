// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package fees serves EIP-1559/EIP-4844 fee history and priority fee
// suggestions over HTTP, in the wire format of `eth_feeHistory`.
package fees

import (
	"math"
	"math/big"
	"net/http"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/dorlneylon/alloy/api/utils"
	"github.com/dorlneylon/alloy/chain"
)

const (
	// the most blocks the priority fee suggestion looks back at
	priorityBacktraceLimit = 32
	// the most reward percentiles a single request may ask for
	maxRewardPercentiles = 100
)

// minSuggestedPriorityFee floors the priority fee suggestion at 1 gwei.
var minSuggestedPriorityFee = big.NewInt(1_000_000_000)

type Fees struct {
	data *FeesData
}

func New(repo *chain.Repository, config Config) *Fees {
	return &Fees{
		data: newFeesData(repo, config),
	}
}

func (f *Fees) validateGetFeesHistoryParams(req *http.Request) (uint32, *chain.Block, []float64, error) {
	// Validate blockCount
	blockCountParam := req.URL.Query().Get("blockCount")
	blockCount, err := strconv.ParseUint(blockCountParam, 10, 32)
	if err != nil {
		return 0, nil, nil, utils.BadRequest(errors.WithMessage(err, "invalid blockCount, it should represent an integer"))
	}

	if blockCount == 0 {
		return 0, nil, nil, utils.BadRequest(errors.New("invalid blockCount, it should not be 0"))
	}

	// Validate newestBlock
	newestBlock, err := utils.ParseRevision(req.URL.Query().Get("newestBlock"))
	if err != nil {
		return 0, nil, nil, utils.BadRequest(errors.WithMessage(err, "newestBlock"))
	}

	rewardPercentiles, err := parseRewardPercentiles(req.URL.Query().Get("rewardPercentiles"))
	if err != nil {
		return 0, nil, nil, utils.BadRequest(errors.WithMessage(err, "rewardPercentiles"))
	}

	newest, err := utils.GetBlock(newestBlock, f.data.repo)
	if err != nil {
		if f.data.repo.IsNotFound(err) {
			// return 400 for the parameter validation
			return 0, nil, nil, utils.BadRequest(errors.WithMessage(err, "newestBlock"))
		}
		// all other unexpected errors will fall to 500 error
		return 0, nil, nil, err
	}

	bestBlockNumber := f.data.repo.BestBlock().Header().Number
	newestBlockNumber := newest.Header().Number

	// Calculate minAllowedBlock
	minAllowedBlock := uint64(math.Max(0, float64(int64(bestBlockNumber)-int64(f.data.config.APIBacktraceLimit)+1)))
	if newestBlockNumber < minAllowedBlock {
		return 0, nil, nil, utils.BadRequest(errors.New("invalid newestBlock, it is below the minimum allowed block"))
	}

	// Adjust blockCount if the oldest block would fall below the allowed range
	if newestBlockNumber-minAllowedBlock+1 < blockCount {
		blockCount = newestBlockNumber - minAllowedBlock + 1
	}

	return uint32(blockCount), newest, rewardPercentiles, nil
}

func parseRewardPercentiles(param string) ([]float64, error) {
	if param == "" {
		return nil, nil
	}

	parts := strings.Split(param, ",")
	if len(parts) > maxRewardPercentiles {
		return nil, errors.Errorf("too many percentiles, maximum allowed is %d", maxRewardPercentiles)
	}

	percentiles := make([]float64, len(parts))
	for i, part := range parts {
		p, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, errors.WithMessage(err, "invalid percentile value")
		}
		if p < 0 || p > 100 {
			return nil, errors.Errorf("percentile value %v is out of range [0, 100]", p)
		}
		if i > 0 && p < percentiles[i-1] {
			return nil, errors.Errorf("percentile values must be in ascending order, got %v after %v", p, percentiles[i-1])
		}
		percentiles[i] = p
	}
	return percentiles, nil
}

func (f *Fees) handleGetFeesHistory(w http.ResponseWriter, req *http.Request) error {
	blockCount, newest, rewardPercentiles, err := f.validateGetFeesHistoryParams(req)
	if err != nil {
		return err
	}

	history, err := f.data.resolveRange(newest, blockCount, rewardPercentiles)
	if err != nil {
		return err
	}

	return utils.WriteJSON(w, history)
}

func (f *Fees) handleGetPriority(w http.ResponseWriter, _ *http.Request) error {
	bestBlockNumber := f.data.repo.BestBlock().Header().Number
	blockCount := uint32(math.Min(priorityBacktraceLimit, float64(f.data.config.APIBacktraceLimit)))
	blockCount = uint32(math.Min(float64(blockCount), float64(bestBlockNumber+1)))

	pooled, err := f.data.pooledRewards(blockCount)
	if err != nil {
		return err
	}

	priorityFee := minSuggestedPriorityFee
	if len(pooled) > 0 {
		entry := pooled[(len(pooled)-1)*f.data.config.PriorityPercentile/100]
		if entry.Reward.Cmp(minSuggestedPriorityFee) > 0 {
			priorityFee = entry.Reward
		}
	}

	return utils.WriteJSON(w, &FeesPriority{
		MaxPriorityFeePerGas: (*hexutil.Big)(priorityFee),
	})
}

func (f *Fees) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/history").
		Methods(http.MethodGet).
		Name("GET /fees/history").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetFeesHistory))
	sub.Path("/priority").
		Methods(http.MethodGet).
		Name("GET /fees/priority").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetPriority))
}

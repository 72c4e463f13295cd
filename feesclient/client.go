// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package feesclient provides an HTTP client for the fees API. Downstream
// fee estimators should use the FeeHistory accessors rather than re-deriving
// the next-block indexing convention.
package feesclient

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/dorlneylon/alloy/api/fees"
	"github.com/dorlneylon/alloy/cache"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNot200Status = errors.New("not 200 status code")
)

// BestRevision selects the newest block of the remote chain.
const BestRevision = "best"

// memoSize bounds the cache of responses for immutable block ranges.
const memoSize = 1024

// Client talks to a fee history service.
type Client struct {
	url  string
	c    *http.Client
	memo *cache.LRU
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	memo, err := cache.NewLRU(memoSize)
	if err != nil {
		panic(err)
	}
	return &Client{
		url:  strings.TrimSuffix(url, "/"),
		c:    c,
		memo: memo,
	}
}

// FeeHistory retrieves the fee history of blockCount blocks ending at the
// given newest block revision ("best" or a block number). Responses for
// numeric revisions describe immutable ranges and are cached.
func (c *Client) FeeHistory(blockCount uint32, newestBlock string, rewardPercentiles []float64) (*fees.FeeHistory, error) {
	url := c.url + "/fees/history?blockCount=" + strconv.FormatUint(uint64(blockCount), 10) +
		"&newestBlock=" + newestBlock
	if len(rewardPercentiles) > 0 {
		parts := make([]string, len(rewardPercentiles))
		for i, p := range rewardPercentiles {
			parts[i] = strconv.FormatFloat(p, 'f', -1, 64)
		}
		url += "&rewardPercentiles=" + strings.Join(parts, ",")
	}

	load := func(any) (any, error) {
		body, err := c.httpGET(url)
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve fee history - %w", err)
		}
		var history fees.FeeHistory
		if err := json.Unmarshal(body, &history); err != nil {
			return nil, fmt.Errorf("unable to unmarshal fee history - %w", err)
		}
		return &history, nil
	}

	// only numeric revisions are safe to memoize; "best" moves
	if _, err := strconv.ParseUint(newestBlock, 10, 64); err != nil {
		history, err := load(nil)
		if err != nil {
			return nil, err
		}
		return history.(*fees.FeeHistory), nil
	}

	history, err := c.memo.GetOrLoad(url, load)
	if err != nil {
		return nil, err
	}
	return history.(*fees.FeeHistory), nil
}

// SuggestedPriorityFee retrieves the suggested maxPriorityFeePerGas.
func (c *Client) SuggestedPriorityFee() (*big.Int, error) {
	body, err := c.httpGET(c.url + "/fees/priority")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve priority fee - %w", err)
	}

	var priority fees.FeesPriority
	if err := json.Unmarshal(body, &priority); err != nil {
		return nil, fmt.Errorf("unable to unmarshal priority fee - %w", err)
	}
	return (*big.Int)(priority.MaxPriorityFeePerGas), nil
}

func (c *Client) httpGET(url string) ([]byte, error) {
	resp, err := c.c.Get(url)
	if err != nil {
		return nil, fmt.Errorf("http get error - %w", err)
	}
	defer resp.Body.Close()

	return validateResponse(resp)
}

func validateResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read response body - %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: %d - %s", ErrNot200Status, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package solo mints synthetic blocks on an interval, standing in for the
// block-range producer of a real chain, so the fees API has data to serve in
// test and dev deployments.
package solo

import (
	"context"
	"math/big"
	"math/rand"
	"time"

	"github.com/dorlneylon/alloy/chain"
	"github.com/dorlneylon/alloy/co"
	"github.com/dorlneylon/alloy/fork"
	"github.com/dorlneylon/alloy/log"
	"github.com/dorlneylon/alloy/metrics"
)

var (
	logger                = log.WithContext("pkg", "solo")
	metricBestBlockNumber = metrics.LazyLoadGauge("solo_best_block_number")
)

const (
	gasLimit  = 30_000_000
	txGasUsed = 21_000
)

// Options for Solo.
type Options struct {
	BlockInterval time.Duration
	MaxBlockTxs   int
}

// Solo packs a synthetic block per interval.
type Solo struct {
	repo    *chain.Repository
	options Options
}

// New returns Solo instance.
func New(repo *chain.Repository, options Options) *Solo {
	return &Solo{
		repo:    repo,
		options: options,
	}
}

// NewGenesisBlock builds the genesis block of a solo chain, with the fee
// markets of EIP-1559 and EIP-4844 active from the start.
func NewGenesisBlock() *chain.Block {
	var zero uint64
	return chain.NewBlock(&chain.Header{
		Number:        0,
		GasLimit:      gasLimit,
		GasUsed:       0,
		BaseFee:       big.NewInt(fork.InitialBaseFee),
		BlobGasUsed:   &zero,
		ExcessBlobGas: &zero,
	}, nil)
}

// Run runs the packing loop until the context is done.
func (s *Solo) Run(ctx context.Context) error {
	goes := &co.Goes{}

	defer func() {
		<-ctx.Done()
		goes.Wait()
	}()

	logger.Info("prepared to pack blocks", "interval", s.options.BlockInterval)

	goes.Go(func() {
		s.loop(ctx)
	})

	return nil
}

func (s *Solo) loop(ctx context.Context) {
	ticker := time.NewTicker(s.options.BlockInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping interval packing service......")
			return
		case <-ticker.C:
			if err := s.packBlock(); err != nil {
				logger.Error("failed to pack block", "err", err)
			}
		}
	}
}

func (s *Solo) packBlock() error {
	parent := s.repo.BestBlock().Header()

	txs := make([]chain.Transaction, rand.Intn(s.options.MaxBlockTxs+1))
	var gasUsed uint64
	for i := range txs {
		txs[i] = chain.Transaction{
			GasUsed: txGasUsed,
			// 1..3 gwei tips
			PriorityFee: big.NewInt(1_000_000_000 + rand.Int63n(2_000_000_000)),
		}
		gasUsed += txGasUsed
	}

	blobGasUsed := uint64(rand.Intn(4)) * fork.GasPerBlob
	excessBlobGas := fork.CalcNextExcessBlobGas(parent)

	header := &chain.Header{
		Number:        parent.Number + 1,
		GasLimit:      gasLimit,
		GasUsed:       gasUsed,
		BaseFee:       fork.CalcNextBaseFee(parent),
		BlobGasUsed:   &blobGasUsed,
		ExcessBlobGas: excessBlobGas,
	}
	if err := s.repo.AddBlock(chain.NewBlock(header, txs)); err != nil {
		return err
	}

	metricBestBlockNumber().Set(int64(header.Number))
	logger.Debug("new block packed", "number", header.Number, "txs", len(txs), "baseFee", header.BaseFee)
	return nil
}

// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/dorlneylon/alloy/chain"
)

const revBest int64 = -1

// Revision selects a block, either the best one or by number.
type Revision struct {
	val any
}

// ParseRevision parses a query parameter into a block revision.
func ParseRevision(revision string) (*Revision, error) {
	if revision == "" || revision == "best" {
		return &Revision{revBest}, nil
	}
	n, err := strconv.ParseUint(revision, 0, 64)
	if err != nil {
		return nil, errors.WithMessage(err, "invalid block number")
	}
	return &Revision{n}, nil
}

// GetBlock returns the block the revision points at.
func GetBlock(rev *Revision, repo *chain.Repository) (*chain.Block, error) {
	switch val := rev.val.(type) {
	case uint64:
		return repo.GetBlock(val)
	default:
		return repo.BestBlock(), nil
	}
}

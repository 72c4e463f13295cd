// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package chain keeps an append-only in-memory view of the block range the
// fee history APIs serve from. Chain execution and persistence live outside
// this module; blocks arrive here already computed.
package chain

import (
	"sync"

	"github.com/pkg/errors"
)

var errNotFound = errors.New("block not found")

// Repository is the append-only block store backing the fees API.
type Repository struct {
	lock   sync.RWMutex
	blocks []*Block
}

// NewRepository creates a repository seeded with the genesis block.
// The genesis header must carry number 0.
func NewRepository(genesis *Block) (*Repository, error) {
	if genesis.Header().Number != 0 {
		return nil, errors.New("genesis block number must be 0")
	}
	return &Repository{blocks: []*Block{genesis}}, nil
}

// AddBlock appends a block. Its number must directly follow the current best
// block.
func (r *Repository) AddBlock(b *Block) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if want := r.blocks[len(r.blocks)-1].Header().Number + 1; b.Header().Number != want {
		return errors.Errorf("out of order block: have %d, want %d", b.Header().Number, want)
	}
	r.blocks = append(r.blocks, b)
	return nil
}

// BestBlock returns the newest block.
func (r *Repository) BestBlock() *Block {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.blocks[len(r.blocks)-1]
}

// GetBlock returns the block with the given number, or a not-found error.
func (r *Repository) GetBlock(num uint64) (*Block, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if num >= uint64(len(r.blocks)) {
		return nil, errNotFound
	}
	return r.blocks[num], nil
}

// IsNotFound tells whether the error means the requested block is missing.
func (r *Repository) IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

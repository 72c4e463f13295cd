// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"container/heap"
	"sync"
)

// Entry is a cache entry.
type Entry struct {
	Key, Value interface{}
}

// PrioEntry is a prioritized cache entry.
type PrioEntry struct {
	Entry
	Priority float64
}

type prioHeapEntry struct {
	*PrioEntry
	index int
}

type prioHeap []*prioHeapEntry

func (h prioHeap) Len() int            { return len(h) }
func (h prioHeap) Less(i, j int) bool  { return h[i].Priority < h[j].Priority }
func (h prioHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *prioHeap) Push(v interface{}) { e := v.(*prioHeapEntry); e.index = len(*h); *h = append(*h, e) }
func (h *prioHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// PrioCache a cache holding entries with the highest priorities. Once full,
// a set with a higher priority evicts the entry with the lowest one.
type PrioCache struct {
	m     map[interface{}]*prioHeapEntry
	h     prioHeap
	limit int
	lock  sync.Mutex
}

// NewPrioCache creates a priority cache with the given limit.
// The limit should be >0, or it panics.
func NewPrioCache(limit int) *PrioCache {
	if limit < 1 {
		panic("invalid cache limit")
	}
	return &PrioCache{
		m:     make(map[interface{}]*prioHeapEntry),
		limit: limit,
	}
}

// Len returns the count of entries held.
func (pc *PrioCache) Len() int {
	pc.lock.Lock()
	defer pc.lock.Unlock()
	return len(pc.h)
}

// Contains tells whether the key is contained.
func (pc *PrioCache) Contains(key interface{}) bool {
	pc.lock.Lock()
	defer pc.lock.Unlock()
	_, ok := pc.m[key]
	return ok
}

// Set sets the value and priority for the given key. An existing entry is
// overwritten.
func (pc *PrioCache) Set(key, value interface{}, priority float64) {
	pc.lock.Lock()
	defer pc.lock.Unlock()

	if ent, ok := pc.m[key]; ok {
		ent.Value = value
		ent.Priority = priority
		heap.Fix(&pc.h, ent.index)
		return
	}

	ent := &prioHeapEntry{
		PrioEntry: &PrioEntry{
			Entry:    Entry{Key: key, Value: value},
			Priority: priority,
		},
	}
	heap.Push(&pc.h, ent)
	pc.m[key] = ent

	if len(pc.h) > pc.limit {
		evicted := heap.Pop(&pc.h).(*prioHeapEntry)
		delete(pc.m, evicted.Key)
	}
}

// Get retrieves the value and priority for the given key.
func (pc *PrioCache) Get(key interface{}) (interface{}, float64, bool) {
	pc.lock.Lock()
	defer pc.lock.Unlock()

	if ent, ok := pc.m[key]; ok {
		return ent.Value, ent.Priority, true
	}
	return nil, 0, false
}

// Remove removes the entry for the given key and returns it, or nil if
// missing.
func (pc *PrioCache) Remove(key interface{}) *PrioEntry {
	pc.lock.Lock()
	defer pc.lock.Unlock()

	ent, ok := pc.m[key]
	if !ok {
		return nil
	}
	heap.Remove(&pc.h, ent.index)
	delete(pc.m, key)
	return ent.PrioEntry
}

// ForEach iterates all entries in undefined order, until cb returns false.
// Returns whether the iteration completed.
func (pc *PrioCache) ForEach(cb func(*PrioEntry) bool) bool {
	pc.lock.Lock()
	defer pc.lock.Unlock()

	for _, ent := range pc.h {
		if !cb(ent.PrioEntry) {
			return false
		}
	}
	return true
}

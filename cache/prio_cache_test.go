// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dorlneylon/alloy/cache"
)

func TestPrioCache(t *testing.T) {
	c := cache.NewPrioCache(5)

	for i := 0; i < 5; i++ {
		c.Set(i, i, float64(i))
	}
	assert.Equal(t, 5, c.Len())

	// lower priority than everything held, the new entry is evicted at once
	c.Set(100, 100, -1)
	assert.False(t, c.Contains(100))
	assert.Equal(t, 5, c.Len())

	// higher priority evicts the lowest one
	c.Set(101, 101, 100)
	assert.True(t, c.Contains(101))
	assert.False(t, c.Contains(0))

	value, priority, ok := c.Get(101)
	require.True(t, ok)
	assert.Equal(t, 101, value)
	assert.Equal(t, float64(100), priority)

	_, _, ok = c.Get(0)
	assert.False(t, ok)
}

func TestPrioCacheUpdate(t *testing.T) {
	c := cache.NewPrioCache(2)

	c.Set("a", 1, 1)
	c.Set("b", 2, 2)
	// re-setting an existing key updates in place, no eviction
	c.Set("a", 10, 3)
	assert.Equal(t, 2, c.Len())

	value, priority, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, value)
	assert.Equal(t, float64(3), priority)

	// "b" now holds the lowest priority and goes first
	c.Set("c", 3, 5)
	assert.False(t, c.Contains("b"))
	assert.True(t, c.Contains("a"))
}

func TestPrioCacheRemove(t *testing.T) {
	c := cache.NewPrioCache(5)
	c.Set("a", 1, 1)

	ent := c.Remove("a")
	require.NotNil(t, ent)
	assert.Equal(t, "a", ent.Key)
	assert.Equal(t, 1, ent.Value)
	assert.Equal(t, 0, c.Len())

	assert.Nil(t, c.Remove("missing"))
}

func TestPrioCacheEvictsLowest(t *testing.T) {
	c := cache.NewPrioCache(16)

	var highest []float64
	for i := 0; i < 100; i++ {
		priority := rand.Float64()
		c.Set(priority, nil, priority)
		highest = append(highest, priority)
	}
	assert.Equal(t, 16, c.Len())

	// only the 16 highest priorities survive
	count := 0
	complete := c.ForEach(func(ent *cache.PrioEntry) bool {
		count++
		larger := 0
		for _, p := range highest {
			if p > ent.Priority {
				larger++
			}
		}
		assert.Less(t, larger, 16)
		return true
	})
	assert.True(t, complete)
	assert.Equal(t, 16, count)
}

func TestPrioCacheInvalidLimit(t *testing.T) {
	assert.Panics(t, func() { cache.NewPrioCache(0) })
}

func TestLRUGetOrLoad(t *testing.T) {
	c, err := cache.NewLRU(8)
	require.NoError(t, err)

	loads := 0
	loader := func(key interface{}) (interface{}, error) {
		loads++
		return key.(int) * 2, nil
	}

	v, err := c.GetOrLoad(21, loader)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = c.GetOrLoad(21, loader)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, loads)
}

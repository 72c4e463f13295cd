// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fees

import "github.com/dorlneylon/alloy/metrics"

var (
	metricCacheHitCount  = metrics.LazyLoadCounter("fees_block_cache_hit_count")
	metricCacheMissCount = metrics.LazyLoadCounter("fees_block_cache_miss_count")
)

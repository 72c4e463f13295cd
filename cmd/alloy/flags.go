// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"time"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8669",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiBacktraceLimitFlag = cli.IntFlag{
		Name:  "api-backtrace-limit",
		Value: 1000,
		Usage: "limit the distance between newestBlock and the best block for the fees API",
	}
	feeCacheSizeFlag = cli.IntFlag{
		Name:  "fee-cache-size",
		Value: 1024,
		Usage: "number of block fee entries kept in memory",
	}
	priorityPercentileFlag = cli.IntFlag{
		Name:  "priority-percentile",
		Value: 60,
		Usage: "reward percentile used by the priority fee suggestion",
	}
	blockIntervalFlag = cli.DurationFlag{
		Name:  "block-interval",
		Value: time.Second,
		Usage: "interval between packed blocks",
	}
	maxBlockTxsFlag = cli.IntFlag{
		Name:  "max-block-txs",
		Value: 20,
		Usage: "maximum number of synthetic transactions per packed block",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
)

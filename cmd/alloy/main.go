// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/dorlneylon/alloy/api"
	"github.com/dorlneylon/alloy/api/fees"
	"github.com/dorlneylon/alloy/chain"
	"github.com/dorlneylon/alloy/cmd/alloy/solo"
	"github.com/dorlneylon/alloy/log"
	"github.com/dorlneylon/alloy/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Alloy",
		Usage:     "Ethereum fee history service for test & dev",
		Copyright: "2026 Alloy contributors",
		Flags: []cli.Flag{
			apiAddrFlag,
			apiCorsFlag,
			apiBacktraceLimitFlag,
			feeCacheSizeFlag,
			priorityPercentileFlag,
			blockIntervalFlag,
			maxBlockTxsFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			enableAPILogsFlag,
		},
		Action: soloAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func soloAction(ctx *cli.Context) error {
	initLogger(ctx)
	defer func() { logger.Info("exited") }()

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	repo, err := chain.NewRepository(solo.NewGenesisBlock())
	if err != nil {
		return err
	}

	runCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	handler := api.New(repo, fees.Config{
		APIBacktraceLimit:  ctx.Int(apiBacktraceLimitFlag.Name),
		FixedCacheSize:     ctx.Int(feeCacheSizeFlag.Name),
		PriorityPercentile: ctx.Int(priorityPercentileFlag.Name),
	}, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
	})

	listener, err := net.Listen("tcp", ctx.String(apiAddrFlag.Name))
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: handler}
	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("API service stopped", "err", err)
			cancel()
		}
	}()
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		logger.Info("shutting down API service......")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("API service shutdown", "err", err)
		}
	}()
	logger.Info("API service started", "addr", "http://"+listener.Addr().String())

	// blocks until the run context is cancelled and the packer drained
	return solo.New(repo, solo.Options{
		BlockInterval: ctx.Duration(blockIntervalFlag.Name),
		MaxBlockTxs:   ctx.Int(maxBlockTxsFlag.Name),
	}).Run(runCtx)
}

func initLogger(ctx *cli.Context) {
	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, &level)
	} else {
		useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, &level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
}

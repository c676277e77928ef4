// Copyright 2026 The Chainexec Authors
// This file is part of Chainexec.
//
// Chainexec is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Chainexec is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Chainexec. If not, see <http://www.gnu.org/licenses/>.

// Chainexec re-executes a historical block range in bounded batches and fans
// the resulting chain state out to subscribers. Without a real node to read
// from it runs against a built-in deterministic dev chain, which makes it a
// workbench for batch threshold and throughput experiments.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/urfave/cli/v2"

	"github.com/chainexec/chainexec/common"
	"github.com/chainexec/chainexec/eth/backfill"
	"github.com/chainexec/chainexec/eth/backfill/backfilltest"
	"github.com/chainexec/chainexec/eth/ethconfig"
	"github.com/chainexec/chainexec/turbo/logging"
	"github.com/chainexec/chainexec/turbo/shards"
	"github.com/chainexec/chainexec/turbo/trie"
)

var (
	chainBlocksFlag = cli.Uint64Flag{
		Name:  "chain.blocks",
		Usage: "Number of blocks in the generated dev chain",
		Value: 10_000,
	}
	chainTxsFlag = cli.IntFlag{
		Name:  "chain.txs",
		Usage: "Transactions per generated block",
		Value: 5,
	}
	fromFlag = cli.Uint64Flag{
		Name:  "from",
		Usage: "First block of the backfill range",
		Value: 1,
	}
	toFlag = cli.Uint64Flag{
		Name:  "to",
		Usage: "Last block of the backfill range, 0 means chain tip",
	}
	batchBlocksFlag = cli.Uint64Flag{
		Name:  "batch.blocks",
		Usage: "Max blocks per batch, 0 disables the bound",
		Value: ethconfig.Defaults.Sync.BatchBlocks,
	}
	batchGasFlag = cli.Uint64Flag{
		Name:  "batch.gas",
		Usage: "Max cumulative gas per batch, 0 disables the bound",
		Value: ethconfig.Defaults.Sync.BatchGas,
	}
	batchSizeFlag = cli.StringFlag{
		Name:  "batch.size",
		Usage: "Max estimated change set size per batch (e.g. 256MB), 0 disables the bound",
		Value: ethconfig.Defaults.Sync.BatchSize.String(),
	}
	batchDurationFlag = cli.DurationFlag{
		Name:  "batch.duration",
		Usage: "Max wall-clock time per batch, 0 disables the bound",
		Value: ethconfig.Defaults.Sync.BatchDuration,
	}
	parallelismFlag = cli.IntFlag{
		Name:  "parallelism",
		Usage: "Stream windows kept in flight, 0 means one per CPU",
	}
	streamFlag = cli.BoolFlag{
		Name:  "stream",
		Usage: "Use the prefetching stream instead of the plain job",
	}
	pruneReceiptsFlag = cli.BoolFlag{
		Name:  "prune.receipts",
		Usage: "Drop per-transaction receipts from batch outcomes",
	}
)

func main() {
	app := &cli.App{
		Name:   "chainexec",
		Usage:  "batched historical block re-execution",
		Action: run,
		Flags: append([]cli.Flag{
			&chainBlocksFlag, &chainTxsFlag,
			&fromFlag, &toFlag,
			&batchBlocksFlag, &batchGasFlag, &batchSizeFlag, &batchDurationFlag,
			&parallelismFlag, &streamFlag, &pruneReceiptsFlag,
		}, logging.Flags...),
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cliCtx *cli.Context) error {
	logger := logging.SetupLoggerCtx("chainexec", cliCtx)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var batchSize datasize.ByteSize
	if err := batchSize.UnmarshalText([]byte(cliCtx.String(batchSizeFlag.Name))); err != nil {
		return fmt.Errorf("parsing %s: %w", batchSizeFlag.Name, err)
	}
	thresholds := backfill.Thresholds{
		MaxBlocks:        cliCtx.Uint64(batchBlocksFlag.Name),
		MaxCumulativeGas: cliCtx.Uint64(batchGasFlag.Name),
		MaxChangeSetSize: batchSize,
		MaxDuration:      cliCtx.Duration(batchDurationFlag.Name),
	}

	numBlocks := cliCtx.Uint64(chainBlocksFlag.Name)
	logger.Info("[chainexec] building dev chain", "blocks", numBlocks, "txs/block", cliCtx.Int(chainTxsFlag.Name))
	builder, err := backfilltest.NewChainBuilder(8, 1_000_000_000_000)
	if err != nil {
		return err
	}
	provider, err := builder.Build(int(numBlocks), cliCtx.Int(chainTxsFlag.Name))
	if err != nil {
		return fmt.Errorf("building dev chain: %w", err)
	}

	from := cliCtx.Uint64(fromFlag.Name)
	to := cliCtx.Uint64(toFlag.Name)
	if to == 0 {
		to = provider.Tip()
	}

	factory := backfill.NewFactory(backfilltest.TransferExecutorFactory{}, provider, logger).
		WithThresholds(thresholds).
		WithSigner(builder.Signer()).
		WithPrune(ethconfig.Prune{Receipts: cliCtx.Bool(pruneReceiptsFlag.Name)}).
		WithParallelism(cliCtx.Int(parallelismFlag.Name))

	events := shards.NewChainEvents(logger)
	sub, unsubscribe := events.SubscribeChainEvents()
	defer unsubscribe()
	go func() {
		for notification := range sub {
			first, last := notification.New.Range()
			logger.Info("[chainexec] chain committed",
				"from", first, "to", last, "gas", notification.New.Outcome().GasUsed())
		}
	}()

	started := time.Now()
	var totalBlocks, totalGas uint64
	publish := func(chain *shards.Chain) error {
		totalBlocks += uint64(chain.Len())
		totalGas += chain.Outcome().GasUsed()
		return events.NotifyCommit(chain)
	}

	job := factory.BackfillRange(from, to)
	if cliCtx.Bool(streamFlag.Name) {
		stream := job.IntoStream()
		done := make(chan error, 1)
		go func() { done <- stream.Run(ctx) }()
		for chain := range stream.Results() {
			if err := publish(chain); err != nil {
				return err
			}
		}
		if err := <-done; err != nil {
			return err
		}
	} else {
		for {
			chain, err := job.Next(ctx)
			if err != nil {
				return err
			}
			if chain == nil {
				break
			}
			if err := publish(chain); err != nil {
				return err
			}
		}
	}

	// re-execute the tip in isolation and assemble the record a live
	// canonical update would publish
	tipBlock, tipOutput, err := factory.BackfillRange(to, to).IntoSingleBlocks().ExecuteBlock(ctx, to)
	if err != nil {
		return err
	}
	record, err := tipOutput.IntoRecord(tipBlock)
	if err != nil {
		return err
	}
	accounts, err := walkHashedAccounts(record.HashedState())
	if err != nil {
		return err
	}
	logger.Info("[chainexec] tip record",
		"block", record.Block().Number(), "receipts", len(record.Receipts()),
		"hashedAccounts", accounts, "trieUpdates", record.TrieUpdates().Len())

	logger.Info("[chainexec] backfill done",
		"blocks", totalBlocks, "gas", totalGas, "in", time.Since(started))
	return nil
}

// walkHashedAccounts counts the post-state's live accounts in hashed order,
// the prefix of a commitment walk.
func walkHashedAccounts(post *trie.HashedPostState) (int, error) {
	cursor, err := trie.NewMemoryHashedCursorFactory(post).AccountCursor()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, _, ok, err := cursor.Seek(common.Hash{}); ; _, _, ok, err = cursor.Next() {
		if err != nil {
			return 0, err
		}
		if !ok {
			return n, nil
		}
		n++
	}
}

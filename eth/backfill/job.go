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

// Package backfill re-executes historical block ranges in bounded batches.
// The job pulls blocks from a provider, runs them through an executor over a
// state view pinned at the range start, and emits invariant-checked chains
// paired with their execution outcome.
package backfill

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ledgerwatch/log/v3"

	"github.com/chainexec/chainexec/common"
	"github.com/chainexec/chainexec/core/types"
	"github.com/chainexec/chainexec/eth/ethconfig"
	"github.com/chainexec/chainexec/turbo/services"
	"github.com/chainexec/chainexec/turbo/shards"
)

// fetchFunc resolves one block with senders attached. Not-found is an error,
// never (nil, nil).
type fetchFunc func(ctx context.Context, number uint64) (*types.BlockWithSenders, error)

// Job re-executes a block range batch by batch. It is a resumable pull
// iterator: each Next call executes one batch and shrinks the remaining
// range. Not safe for concurrent use.
type Job struct {
	executorFactory services.ExecutorFactory
	provider        services.Provider
	signer          types.Signer
	fetch           fetchFunc
	thresholds      Thresholds
	prune           ethconfig.Prune
	remaining       Range
	parallelism     int
	logger          log.Logger
}

// Remaining returns the not-yet-executed part of the job's range.
func (j *Job) Remaining() Range { return j.remaining }

// Next executes the next batch and returns it as a chain. Returns (nil, nil)
// once the range is exhausted. On error the batch is abandoned and the
// remaining range is left untouched, so a caller may retry.
func (j *Job) Next(ctx context.Context) (*shards.Chain, error) {
	if j.remaining.Empty() {
		return nil, nil
	}
	chain, last, _, err := j.executeBatch(ctx, j.remaining, j.fetch)
	if err != nil {
		return nil, err
	}
	if last == math.MaxUint64 {
		j.remaining = emptyRange
	} else {
		j.remaining = Range{Start: last + 1, End: j.remaining.End}
	}
	return chain, nil
}

// executeBatch runs blocks from r.Start until a threshold closes the batch or
// r is exhausted. The returned last is the highest executed block number;
// gasUsed is the batch total even when receipts are pruned.
func (j *Job) executeBatch(ctx context.Context, r Range, fetch fetchFunc) (chain *shards.Chain, last, gasUsed uint64, err error) {
	batchStart := time.Now()

	view, err := j.provider.StateAt(viewNumberFor(r.Start))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: block %d: %v", ErrStateUnavailable, viewNumberFor(r.Start), err)
	}
	executor := j.executorFactory.Executor(view)

	var (
		blocks        []*types.BlockWithSenders
		receipts      []types.Receipts
		cumulativeGas uint64
		fetchTime     time.Duration
		executionTime time.Duration
	)
	for number := r.Start; ; number++ {
		if err := ctx.Err(); err != nil {
			return nil, 0, 0, err
		}

		fetchStart := time.Now()
		block, err := fetch(ctx, number)
		if err != nil {
			return nil, 0, 0, err
		}
		fetchTime += time.Since(fetchStart)

		executionStart := time.Now()
		result, err := executor.ExecuteBlock(ctx, block)
		if err != nil {
			return nil, 0, 0, &ExecutionError{BlockNumber: number, Err: err}
		}
		executionTime += time.Since(executionStart)

		cumulativeGas += result.GasUsed
		blocks = append(blocks, block)
		if j.prune.Receipts {
			receipts = append(receipts, types.Receipts{})
		} else {
			receipts = append(receipts, result.Receipts)
		}

		last = number
		done := number == r.End ||
			j.thresholds.IsEndOfBatch(uint64(len(blocks)), executor.SizeHint(), cumulativeGas, time.Since(batchStart))
		if done {
			break
		}
	}

	outcome := &shards.ExecutionOutcome{
		FirstBlock: r.Start,
		Receipts:   receipts,
		ChangeSet:  executor.ChangeSet(),
	}
	chain, err = shards.NewChain(blocks, outcome)
	if err != nil {
		return nil, 0, 0, err
	}

	j.logger.Debug("[backfill] executed batch",
		"from", r.Start, "to", last, "blocks", len(blocks), "gas", cumulativeGas,
		"fetch", fetchTime, "execution", executionTime,
		"throughput", common.GasThroughput(cumulativeGas, executionTime))
	return chain, last, cumulativeGas, nil
}

// fetchBlock is the plain fetch path: read from the provider and attach
// senders if the store did not persist them. Sender recovery here takes the
// unchecked path; signatures were validated when the block first entered the
// chain.
func (j *Job) fetchBlock(ctx context.Context, number uint64) (*types.BlockWithSenders, error) {
	block, err := j.provider.BlockWithSenders(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("fetching block %d: %w", number, err)
	}
	if block == nil {
		return nil, fmt.Errorf("%w: block %d", ErrBlockNotFound, number)
	}
	if !block.HasSenders() {
		if err := block.RecoverSendersUnchecked(j.signer); err != nil {
			return nil, err
		}
	}
	return block, nil
}

// viewNumberFor returns the block whose post-state a batch starting at start
// executes on top of.
func viewNumberFor(start uint64) uint64 {
	if start == 0 {
		return 0
	}
	return start - 1
}

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

package backfill

import (
	"context"
	"runtime"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ledgerwatch/log/v3"

	"github.com/chainexec/chainexec/core/types"
	"github.com/chainexec/chainexec/eth/ethconfig"
	"github.com/chainexec/chainexec/turbo/services"
)

// Factory builds backfill jobs sharing one configuration. Configure with the
// With setters, then mint jobs with Backfill or BackfillRange.
type Factory struct {
	executorFactory services.ExecutorFactory
	provider        services.Provider
	signer          types.Signer
	thresholds      Thresholds
	prune           ethconfig.Prune
	parallelism     int
	blockCache      *lru.Cache[uint64, *types.BlockWithSenders]
	logger          log.Logger
}

// NewFactory creates a factory with default thresholds and parallelism. The
// default signer recovers against the test chain config; production callers
// set their own with WithSigner.
func NewFactory(executorFactory services.ExecutorFactory, provider services.Provider, logger log.Logger) *Factory {
	return &Factory{
		executorFactory: executorFactory,
		provider:        provider,
		signer:          types.LatestSigner(types.TestChainConfig),
		thresholds:      ThresholdsFromSync(ethconfig.Defaults.Sync),
		parallelism:     runtime.NumCPU(),
		logger:          logger,
	}
}

// WithThresholds overrides the batch thresholds.
func (f *Factory) WithThresholds(thresholds Thresholds) *Factory {
	f.thresholds = thresholds
	return f
}

// WithPrune sets which execution artifacts jobs retain.
func (f *Factory) WithPrune(prune ethconfig.Prune) *Factory {
	f.prune = prune
	return f
}

// WithParallelism sets how many batches a stream keeps in flight.
func (f *Factory) WithParallelism(parallelism int) *Factory {
	if parallelism > 0 {
		f.parallelism = parallelism
	}
	return f
}

// WithSigner sets the signer used to recover senders on blocks that come out
// of the provider without them.
func (f *Factory) WithSigner(signer types.Signer) *Factory {
	f.signer = signer
	return f
}

// WithBlockCache puts an LRU of recovered blocks in front of the provider,
// shared by all jobs minted afterwards. Overlapping or re-issued ranges then
// skip the fetch and the sender recovery. Size 0 disables it.
func (f *Factory) WithBlockCache(size int) *Factory {
	if size <= 0 {
		f.blockCache = nil
		return f
	}
	cache, err := lru.New[uint64, *types.BlockWithSenders](size)
	if err != nil {
		panic(err) // only fails on size <= 0
	}
	f.blockCache = cache
	return f
}

// Backfill creates a job over the given range.
func (f *Factory) Backfill(r Range) *Job {
	job := &Job{
		executorFactory: f.executorFactory,
		provider:        f.provider,
		signer:          f.signer,
		thresholds:      f.thresholds,
		prune:           f.prune,
		remaining:       r,
		parallelism:     f.parallelism,
		logger:          f.logger,
	}
	job.fetch = job.fetchBlock
	if f.blockCache != nil {
		cache := f.blockCache
		job.fetch = func(ctx context.Context, number uint64) (*types.BlockWithSenders, error) {
			if block, ok := cache.Get(number); ok {
				return block, nil
			}
			block, err := job.fetchBlock(ctx, number)
			if err != nil {
				return nil, err
			}
			cache.Add(number, block)
			return block, nil
		}
	}
	return job
}

// BackfillRange creates a job over the inclusive interval [from, to].
func (f *Factory) BackfillRange(from, to uint64) *Job {
	return f.Backfill(Range{Start: from, End: to})
}

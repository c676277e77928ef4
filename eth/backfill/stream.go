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

	"golang.org/x/sync/errgroup"

	"github.com/chainexec/chainexec/core/types"
	"github.com/chainexec/chainexec/turbo/shards"
)

// Stream overlaps block fetching with execution: blocks are fetched up to
// Parallelism ahead while execution stays strictly sequential, so the
// delivered chains are exactly the batches the plain job would produce, in
// the same order and with the same errors. Only the wall-clock profile
// differs.
type Stream struct {
	job         *Job
	parallelism int
	results     chan *shards.Chain
}

// IntoStream converts the job into a streaming one over its remaining range.
// The original job should not be used afterwards.
func (j *Job) IntoStream() *Stream {
	p := j.parallelism
	if p <= 0 {
		p = runtime.NumCPU()
	}
	return &Stream{
		job:         j,
		parallelism: p,
		results:     make(chan *shards.Chain, p),
	}
}

// Results returns the ordered output channel. Closed when Run returns.
func (s *Stream) Results() <-chan *shards.Chain { return s.results }

// prefetchedBlock carries one fetched block through the lookahead window.
type prefetchedBlock struct {
	number uint64
	block  *types.BlockWithSenders
}

// Run pumps the stream until the range is exhausted, the context is
// cancelled or the job fails. The first error aborts the whole stream; the
// results channel is always closed on return.
func (s *Stream) Run(ctx context.Context) error {
	defer close(s.results)
	r := s.job.remaining
	if r.Empty() {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)

	prefetched := make(chan prefetchedBlock, s.parallelism)
	g.Go(func() error {
		defer close(prefetched)
		return runOrdered(gctx, s.parallelism, r.Len(), func(fctx context.Context, i uint64) (prefetchedBlock, error) {
			block, err := s.job.fetch(fctx, r.Start+i)
			if err != nil {
				return prefetchedBlock{}, err
			}
			return prefetchedBlock{number: r.Start + i, block: block}, nil
		}, prefetched)
	})

	g.Go(func() error {
		sub := *s.job
		sub.fetch = func(fctx context.Context, number uint64) (*types.BlockWithSenders, error) {
			select {
			case f, ok := <-prefetched:
				if ok && f.number == number {
					return f.block, nil
				}
			case <-fctx.Done():
				return nil, fctx.Err()
			}
			// the prefetcher stopped early; refetch directly so its error
			// surfaces at the failing block
			return s.job.fetch(fctx, number)
		}
		for {
			chain, err := sub.Next(gctx)
			if err != nil {
				return err
			}
			if chain == nil {
				return nil
			}
			select {
			case s.results <- chain:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	return g.Wait()
}

// BlockResult pairs one executed block with its output.
type BlockResult struct {
	Block  *types.BlockWithSenders
	Output *BlockOutput
}

// SingleBlockStream executes a range block by block with up to Parallelism
// blocks in flight, each on its own parent-pinned state view. Results are
// delivered strictly in block order.
type SingleBlockStream struct {
	job         *SingleBlockJob
	parallelism int
	results     chan BlockResult
}

// IntoStream converts the per-block job into a streaming one. The original
// job should not be used afterwards.
func (s *SingleBlockJob) IntoStream() *SingleBlockStream {
	p := s.job.parallelism
	if p <= 0 {
		p = runtime.NumCPU()
	}
	return &SingleBlockStream{
		job:         s,
		parallelism: p,
		results:     make(chan BlockResult, p),
	}
}

// Results returns the ordered output channel. Closed when Run returns.
func (s *SingleBlockStream) Results() <-chan BlockResult { return s.results }

// Run pumps the stream until the range is exhausted, the context is
// cancelled or a block fails.
func (s *SingleBlockStream) Run(ctx context.Context) error {
	defer close(s.results)
	r := s.job.Remaining()
	return runOrdered(ctx, s.parallelism, r.Len(), func(gctx context.Context, i uint64) (BlockResult, error) {
		block, output, err := s.job.ExecuteBlock(gctx, r.Start+i)
		if err != nil {
			return BlockResult{}, err
		}
		return BlockResult{Block: block, Output: output}, nil
	}, s.results)
}

// runOrdered runs n tasks with up to parallelism in flight, forwarding their
// results to out in task order. The first failure cancels everything.
func runOrdered[T any](ctx context.Context, parallelism int, n uint64, task func(context.Context, uint64) (T, error), out chan<- T) error {
	g, gctx := errgroup.WithContext(ctx)
	futures := make(chan chan T, parallelism)

	g.Go(func() error {
		defer close(futures)
		for i := uint64(0); i < n; i++ {
			i := i
			future := make(chan T, 1)
			select {
			case futures <- future:
			case <-gctx.Done():
				return gctx.Err()
			}
			g.Go(func() error {
				v, err := task(gctx, i)
				if err != nil {
					return err
				}
				future <- v
				return nil
			})
		}
		return nil
	})

	g.Go(func() error {
		for future := range futures {
			select {
			case v := <-future:
				select {
				case out <- v:
				case <-gctx.Done():
					return gctx.Err()
				}
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	return g.Wait()
}

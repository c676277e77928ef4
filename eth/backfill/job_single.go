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
	"math"

	"github.com/chainexec/chainexec/core/state"
	"github.com/chainexec/chainexec/core/types"
	"github.com/chainexec/chainexec/turbo/shards"
	"github.com/chainexec/chainexec/turbo/trie"
)

// BlockOutput is what executing one block in isolation yields.
type BlockOutput struct {
	Receipts  types.Receipts
	GasUsed   uint64
	ChangeSet *state.ChangeSet
}

// IntoRecord bundles the block with its output as an executed block record:
// the change set is hashed into a post-state, trie updates start empty for a
// consumer that commits the trie itself.
func (o *BlockOutput) IntoRecord(block *types.BlockWithSenders) (*shards.ExecutedBlock, error) {
	outcome := &shards.ExecutionOutcome{
		FirstBlock: block.Number(),
		Receipts:   []types.Receipts{o.Receipts},
		ChangeSet:  o.ChangeSet,
	}
	return shards.NewExecutedBlock(block, outcome, trie.NewHashedPostState(o.ChangeSet), trie.NewUpdates())
}

// SingleBlockJob walks a range one block at a time, each block executed on a
// fresh state view pinned at its parent. Lighter than Job when the consumer
// needs per-block results rather than batches.
type SingleBlockJob struct {
	job *Job
}

// IntoSingleBlocks converts the job into a per-block one over its remaining
// range. The original job should not be used afterwards.
func (j *Job) IntoSingleBlocks() *SingleBlockJob {
	return &SingleBlockJob{job: j}
}

// Remaining returns the not-yet-executed part of the range.
func (s *SingleBlockJob) Remaining() Range { return s.job.remaining }

// Next executes the next block of the range. Returns (nil, nil, nil) once
// the range is exhausted.
func (s *SingleBlockJob) Next(ctx context.Context) (*types.BlockWithSenders, *BlockOutput, error) {
	if s.job.remaining.Empty() {
		return nil, nil, nil
	}
	number := s.job.remaining.Start
	block, output, err := s.ExecuteBlock(ctx, number)
	if err != nil {
		return nil, nil, err
	}
	if number == math.MaxUint64 {
		s.job.remaining = emptyRange
	} else {
		s.job.remaining = Range{Start: number + 1, End: s.job.remaining.End}
	}
	return block, output, nil
}

// ExecuteBlock runs a single block on a state view pinned at its parent,
// independent of the job's remaining range.
func (s *SingleBlockJob) ExecuteBlock(ctx context.Context, number uint64) (*types.BlockWithSenders, *BlockOutput, error) {
	j := s.job
	chain, _, gasUsed, err := j.executeBatch(ctx, Range{Start: number, End: number}, j.fetch)
	if err != nil {
		return nil, nil, err
	}
	output := &BlockOutput{
		Receipts:  chain.ReceiptsByBlockNumber(number),
		GasUsed:   gasUsed,
		ChangeSet: chain.Outcome().ChangeSet,
	}
	return chain.First(), output, nil
}

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

package shards

import (
	"fmt"

	"github.com/chainexec/chainexec/core/state"
	"github.com/chainexec/chainexec/core/types"
)

// Chain couples a contiguous run of executed blocks with their aggregate
// execution outcome. Blocks are ordered by number with no gaps; the outcome's
// first block matches the first block of the run. Read-only after creation.
type Chain struct {
	blocks  []*types.BlockWithSenders
	outcome *ExecutionOutcome
}

// NewChain validates the pairing and returns the chain. The block run must be
// non-empty, contiguous, and aligned with the outcome.
func NewChain(blocks []*types.BlockWithSenders, outcome *ExecutionOutcome) (*Chain, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("chain must contain at least one block")
	}
	if outcome == nil {
		return nil, fmt.Errorf("chain must carry an execution outcome")
	}
	if outcome.FirstBlock != blocks[0].Number() {
		return nil, fmt.Errorf("outcome first block %d does not match chain start %d",
			outcome.FirstBlock, blocks[0].Number())
	}
	if len(outcome.Receipts) != len(blocks) {
		return nil, fmt.Errorf("outcome covers %d blocks, chain has %d",
			len(outcome.Receipts), len(blocks))
	}
	for i := 1; i < len(blocks); i++ {
		if blocks[i].Number() != blocks[i-1].Number()+1 {
			return nil, fmt.Errorf("chain is not contiguous at block %d", blocks[i].Number())
		}
	}
	return &Chain{blocks: blocks, outcome: outcome}, nil
}

// Blocks returns the executed block run. Callers must not mutate it.
func (c *Chain) Blocks() []*types.BlockWithSenders { return c.blocks }

// Outcome returns the aggregate execution outcome.
func (c *Chain) Outcome() *ExecutionOutcome { return c.outcome }

// Len returns the number of blocks in the chain.
func (c *Chain) Len() int { return len(c.blocks) }

// First returns the lowest block of the run.
func (c *Chain) First() *types.BlockWithSenders { return c.blocks[0] }

// Tip returns the highest block of the run.
func (c *Chain) Tip() *types.BlockWithSenders { return c.blocks[len(c.blocks)-1] }

// Range returns the inclusive block-number bounds of the run.
func (c *Chain) Range() (first, last uint64) {
	return c.First().Number(), c.Tip().Number()
}

// ReceiptsByBlockNumber returns the receipts of the given block, or nil.
func (c *Chain) ReceiptsByBlockNumber(number uint64) types.Receipts {
	return c.outcome.ReceiptsByBlockNumber(number)
}

// Append extends the chain with another one that starts right after its tip,
// merging the outcomes. Returns a new chain; both inputs stay valid.
func (c *Chain) Append(other *Chain) (*Chain, error) {
	if other.First().Number() != c.Tip().Number()+1 {
		return nil, fmt.Errorf("cannot append chain starting at %d to chain ending at %d",
			other.First().Number(), c.Tip().Number())
	}
	blocks := make([]*types.BlockWithSenders, 0, len(c.blocks)+len(other.blocks))
	blocks = append(blocks, c.blocks...)
	blocks = append(blocks, other.blocks...)

	receipts := make([]types.Receipts, 0, len(c.outcome.Receipts)+len(other.outcome.Receipts))
	receipts = append(receipts, c.outcome.Receipts...)
	receipts = append(receipts, other.outcome.Receipts...)

	changeSet := state.NewChangeSet()
	changeSet.Merge(c.outcome.ChangeSet)
	changeSet.Merge(other.outcome.ChangeSet)

	return NewChain(blocks, &ExecutionOutcome{
		FirstBlock: c.outcome.FirstBlock,
		Receipts:   receipts,
		ChangeSet:  changeSet,
	})
}

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

	"github.com/chainexec/chainexec/core/types"
	"github.com/chainexec/chainexec/turbo/trie"
)

// ExecutedBlock bundles one executed block with everything derived from
// running it: its outcome, the hashed form of its state diff and the trie
// node updates. All four payloads are shared, never copied; the record and
// everything it points to is immutable once assembled.
type ExecutedBlock struct {
	block       *types.BlockWithSenders
	outcome     *ExecutionOutcome
	hashedState *trie.HashedPostState
	trieUpdates *trie.Updates
}

// NewExecutedBlock assembles a record. The outcome must cover exactly the
// given block.
func NewExecutedBlock(block *types.BlockWithSenders, outcome *ExecutionOutcome,
	hashedState *trie.HashedPostState, trieUpdates *trie.Updates) (*ExecutedBlock, error) {
	if block == nil {
		return nil, fmt.Errorf("executed block record needs a block")
	}
	if outcome == nil || outcome.FirstBlock != block.Number() || len(outcome.Receipts) != 1 {
		return nil, fmt.Errorf("outcome does not cover block %d", block.Number())
	}
	return &ExecutedBlock{
		block:       block,
		outcome:     outcome,
		hashedState: hashedState,
		trieUpdates: trieUpdates,
	}, nil
}

func (e *ExecutedBlock) Block() *types.BlockWithSenders     { return e.block }
func (e *ExecutedBlock) Outcome() *ExecutionOutcome         { return e.outcome }
func (e *ExecutedBlock) HashedState() *trie.HashedPostState { return e.hashedState }
func (e *ExecutedBlock) TrieUpdates() *trie.Updates         { return e.trieUpdates }

// Receipts returns the block's receipts.
func (e *ExecutedBlock) Receipts() types.Receipts {
	return e.outcome.ReceiptsByBlockNumber(e.block.Number())
}

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

// Package shards holds the data shapes shared between the execution pipeline
// and its downstream consumers: executed chains, per-batch outcomes and the
// canonical-state event hub.
package shards

import (
	"github.com/chainexec/chainexec/core/state"
	"github.com/chainexec/chainexec/core/types"
)

// ExecutionResult is what executing a single block yields.
type ExecutionResult struct {
	Receipts types.Receipts
	GasUsed  uint64
}

// ExecutionOutcome is the aggregate result of executing a contiguous run of
// blocks: one receipt list per block, indexed from FirstBlock, and the net
// state diff across the whole run.
type ExecutionOutcome struct {
	FirstBlock uint64
	Receipts   []types.Receipts
	ChangeSet  *state.ChangeSet
}

// ReceiptsByBlockNumber returns the receipts of the given block, or nil when
// the block is outside the outcome.
func (o *ExecutionOutcome) ReceiptsByBlockNumber(number uint64) types.Receipts {
	if number < o.FirstBlock {
		return nil
	}
	idx := number - o.FirstBlock
	if idx >= uint64(len(o.Receipts)) {
		return nil
	}
	return o.Receipts[idx]
}

// GasUsed returns the total gas used across all blocks in the outcome.
func (o *ExecutionOutcome) GasUsed() (total uint64) {
	for _, receipts := range o.Receipts {
		total += receipts.GasUsed()
	}
	return total
}

// Len returns the number of blocks covered by the outcome.
func (o *ExecutionOutcome) Len() int { return len(o.Receipts) }

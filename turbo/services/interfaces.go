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

// Package services defines the capability interfaces the backfill machinery
// is built against. Implementations live with the database and the EVM; the
// consumers only see these bundles.
package services

import (
	"context"

	"github.com/chainexec/chainexec/core/state"
	"github.com/chainexec/chainexec/core/types"
	"github.com/chainexec/chainexec/turbo/shards"
)

// BlockReader serves historical chain data. Not-found is reported as
// (nil, nil), errors mean the backend failed.
type BlockReader interface {
	Header(ctx context.Context, number uint64) (*types.Header, error)
	BlockWithSenders(ctx context.Context, number uint64) (*types.BlockWithSenders, error)
}

// StateProvider opens read-only state views pinned at a block number. The
// view at N observes the post-state of block N.
type StateProvider interface {
	StateAt(number uint64) (state.Reader, error)
}

// Provider bundles everything a backfill run needs from the node.
type Provider interface {
	BlockReader
	StateProvider
}

// BlockExecutor executes blocks one after another on top of a single state
// view, accumulating the change set across calls.
type BlockExecutor interface {
	// ExecuteBlock runs all transactions of the block and returns their
	// receipts and gas total. Senders must already be attached.
	ExecuteBlock(ctx context.Context, block *types.BlockWithSenders) (*shards.ExecutionResult, error)
	// ChangeSet returns the diff accumulated since the executor was created.
	ChangeSet() *state.ChangeSet
	// SizeHint estimates the in-memory footprint of the accumulated state,
	// in bytes.
	SizeHint() uint64
}

// ExecutorFactory creates executors over a given pre-state view.
type ExecutorFactory interface {
	Executor(view state.Reader) BlockExecutor
}

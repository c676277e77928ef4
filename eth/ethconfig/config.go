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

// Package ethconfig contains the configuration of the execution and backfill
// machinery.
package ethconfig

import (
	"runtime"
	"time"

	"github.com/c2h5oh/datasize"

	"github.com/chainexec/chainexec/core/types"
)

// Sync bounds how much work a backfill run accumulates before emitting a
// batch. A zero value disables the corresponding threshold; a batch always
// contains at least one block regardless.
type Sync struct {
	// BatchBlocks caps the number of blocks per batch.
	BatchBlocks uint64
	// BatchGas caps the cumulative gas executed per batch.
	BatchGas uint64
	// BatchSize caps the estimated in-memory change set per batch.
	BatchSize datasize.ByteSize
	// BatchDuration caps the wall-clock time spent on one batch.
	BatchDuration time.Duration
	// StreamParallelism is how many batches a backfill stream keeps in
	// flight. Zero means one per logical CPU.
	StreamParallelism int
}

// Prune controls which execution artifacts are retained.
type Prune struct {
	// Receipts drops per-transaction receipts from batch outcomes, keeping
	// only per-block gas totals. Receipt slots stay present but empty so
	// block indexing is unaffected.
	Receipts bool
}

// Config is the top-level configuration.
type Config struct {
	ChainConfig *types.ChainConfig
	Sync        Sync
	Prune       Prune
}

// Defaults contains the default settings for use on a full node.
var Defaults = Config{
	ChainConfig: types.TestChainConfig,
	Sync: Sync{
		BatchBlocks:       500_000,
		BatchGas:          1_500_000_000_000,
		BatchSize:         256 * datasize.MB,
		BatchDuration:     10 * time.Minute,
		StreamParallelism: runtime.NumCPU(),
	},
}

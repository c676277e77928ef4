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
	"time"

	"github.com/c2h5oh/datasize"

	"github.com/chainexec/chainexec/eth/ethconfig"
)

// Thresholds bounds how much work a single batch accumulates. A zero field
// disables that bound; any satisfied bound closes the batch. The bounds are
// evaluated after each executed block, so a batch always holds at least one.
type Thresholds struct {
	// MaxBlocks caps the number of blocks per batch.
	MaxBlocks uint64
	// MaxCumulativeGas caps the gas executed per batch.
	MaxCumulativeGas uint64
	// MaxChangeSetSize caps the estimated in-memory state diff per batch.
	MaxChangeSetSize datasize.ByteSize
	// MaxDuration caps the wall-clock time spent on one batch.
	MaxDuration time.Duration
}

// ThresholdsFromSync maps a sync configuration onto batch thresholds.
func ThresholdsFromSync(sync ethconfig.Sync) Thresholds {
	return Thresholds{
		MaxBlocks:        sync.BatchBlocks,
		MaxCumulativeGas: sync.BatchGas,
		MaxChangeSetSize: sync.BatchSize,
		MaxDuration:      sync.BatchDuration,
	}
}

// IsEndOfBatch reports whether a batch holding the given totals is complete.
func (t Thresholds) IsEndOfBatch(blocksProcessed, changeSetSize, cumulativeGas uint64, elapsed time.Duration) bool {
	if t.MaxBlocks != 0 && blocksProcessed >= t.MaxBlocks {
		return true
	}
	if t.MaxCumulativeGas != 0 && cumulativeGas >= t.MaxCumulativeGas {
		return true
	}
	if t.MaxChangeSetSize != 0 && changeSetSize >= uint64(t.MaxChangeSetSize) {
		return true
	}
	if t.MaxDuration != 0 && elapsed >= t.MaxDuration {
		return true
	}
	return false
}

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
	"errors"
	"fmt"
)

var (
	// ErrBlockNotFound means the provider has no block at a number inside
	// the requested range.
	ErrBlockNotFound = errors.New("block not found")

	// ErrStateUnavailable means no state view could be opened at the
	// batch's pre-state block.
	ErrStateUnavailable = errors.New("state unavailable")
)

// ExecutionError wraps a block execution failure with the offending block
// number. The batch that hit it is abandoned; partial results are never
// surfaced.
type ExecutionError struct {
	BlockNumber uint64
	Err         error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing block %d: %v", e.BlockNumber, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

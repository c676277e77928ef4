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

import "fmt"

// Range is an inclusive block-number interval. Start > End means empty.
type Range struct {
	Start uint64
	End   uint64
}

// Empty reports whether the range contains no blocks.
func (r Range) Empty() bool { return r.Start > r.End }

// Len returns the number of blocks in the range.
func (r Range) Len() uint64 {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

func (r Range) String() string {
	if r.Empty() {
		return "[empty]"
	}
	return fmt.Sprintf("[%d..%d]", r.Start, r.End)
}

// emptyRange is the canonical exhausted range.
var emptyRange = Range{Start: 1, End: 0}

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

package common

import (
	"fmt"
	"time"
)

// GasThroughput formats gas used over an execution interval as Mgas/s for log
// output. A zero interval reports 0.00 to avoid a division by zero on very
// cheap batches.
func GasThroughput(gas uint64, elapsed time.Duration) string {
	secs := elapsed.Seconds()
	if secs == 0 {
		return "0.00 Mgas/s"
	}
	return fmt.Sprintf("%.2f Mgas/s", float64(gas)/secs/1_000_000)
}

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

// Package u256 holds shared uint256 constants. They must be treated as
// immutable.
package u256

import "github.com/holiman/uint256"

var (
	Num0  = uint256.NewInt(0)
	Num1  = uint256.NewInt(1)
	Num2  = uint256.NewInt(2)
	Num8  = uint256.NewInt(8)
	Num27 = uint256.NewInt(27)
	Num35 = uint256.NewInt(35)
)

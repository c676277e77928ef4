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

// Package length holds byte lengths of the common fixed-size types.
package length

const (
	// Hash is the expected length of a 32-byte hash
	Hash = 32
	// Addr is the expected length of an address
	Addr = 20
	// BlockNum is the expected length of a block number key
	BlockNum = 8
)

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

package types

import "github.com/holiman/uint256"

// ChainConfig carries the subset of chain rules that signature handling
// depends on. A nil activation block means the fork is never active.
type ChainConfig struct {
	ChainID *uint256.Int

	HomesteadBlock *uint64
	EIP155Block    *uint64
}

func (c *ChainConfig) IsHomestead(blockNumber uint64) bool {
	return forked(c.HomesteadBlock, blockNumber)
}

func (c *ChainConfig) IsEIP155(blockNumber uint64) bool {
	return forked(c.EIP155Block, blockNumber)
}

func forked(activation *uint64, blockNumber uint64) bool {
	return activation != nil && *activation <= blockNumber
}

// TestChainConfig has every fork active from genesis; used by dev chains and
// tests.
var TestChainConfig = &ChainConfig{
	ChainID:        uint256.NewInt(1337),
	HomesteadBlock: new(uint64),
	EIP155Block:    new(uint64),
}

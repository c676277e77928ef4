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

package shards

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainexec/chainexec/common"
	"github.com/chainexec/chainexec/core/state"
	"github.com/chainexec/chainexec/core/types"
)

func makeBlock(number uint64) *types.BlockWithSenders {
	block := types.NewBlock(&types.Header{Number: number, GasUsed: number * 1000}, nil)
	return &types.BlockWithSenders{Block: block, Senders: []common.Address{}}
}

func makeChain(t *testing.T, from, to uint64) *Chain {
	t.Helper()
	var blocks []*types.BlockWithSenders
	var receipts []types.Receipts
	for n := from; n <= to; n++ {
		blocks = append(blocks, makeBlock(n))
		receipts = append(receipts, types.Receipts{
			{Status: types.ReceiptStatusSuccessful, GasUsed: n * 1000, BlockNumber: n},
		})
	}
	chain, err := NewChain(blocks, &ExecutionOutcome{
		FirstBlock: from,
		Receipts:   receipts,
		ChangeSet:  state.NewChangeSet(),
	})
	require.NoError(t, err)
	return chain
}

func TestNewChainValidation(t *testing.T) {
	_, err := NewChain(nil, &ExecutionOutcome{})
	assert.Error(t, err)

	blocks := []*types.BlockWithSenders{makeBlock(5)}
	_, err = NewChain(blocks, nil)
	assert.Error(t, err)

	// misaligned first block
	_, err = NewChain(blocks, &ExecutionOutcome{FirstBlock: 6, Receipts: []types.Receipts{nil}})
	assert.Error(t, err)

	// receipt count mismatch
	_, err = NewChain(blocks, &ExecutionOutcome{FirstBlock: 5, Receipts: []types.Receipts{nil, nil}})
	assert.Error(t, err)

	// gap in the run
	gappy := []*types.BlockWithSenders{makeBlock(5), makeBlock(7)}
	_, err = NewChain(gappy, &ExecutionOutcome{FirstBlock: 5, Receipts: []types.Receipts{nil, nil}})
	assert.Error(t, err)
}

func TestChainAccessors(t *testing.T) {
	chain := makeChain(t, 10, 14)
	assert.Equal(t, 5, chain.Len())
	first, last := chain.Range()
	assert.Equal(t, uint64(10), first)
	assert.Equal(t, uint64(14), last)
	assert.Equal(t, uint64(10), chain.First().Number())
	assert.Equal(t, uint64(14), chain.Tip().Number())

	receipts := chain.ReceiptsByBlockNumber(12)
	require.Len(t, receipts, 1)
	assert.Equal(t, uint64(12000), receipts[0].GasUsed)

	assert.Nil(t, chain.ReceiptsByBlockNumber(9))
	assert.Nil(t, chain.ReceiptsByBlockNumber(15))
}

func TestChainAppend(t *testing.T) {
	left := makeChain(t, 1, 3)
	right := makeChain(t, 4, 5)

	joined, err := left.Append(right)
	require.NoError(t, err)
	assert.Equal(t, 5, joined.Len())
	first, last := joined.Range()
	assert.Equal(t, uint64(1), first)
	assert.Equal(t, uint64(5), last)
	require.Len(t, joined.ReceiptsByBlockNumber(5), 1)

	// inputs untouched
	assert.Equal(t, 3, left.Len())
	assert.Equal(t, 2, right.Len())

	// non-adjacent append refused
	_, err = left.Append(makeChain(t, 7, 8))
	assert.Error(t, err)
}

func TestChainAppendMergesChangeSets(t *testing.T) {
	addr := common.HexToAddress("0x0a")

	mk := func(from, to uint64, original, current *state.Account) *Chain {
		cs := state.NewChangeSet()
		cs.TouchAccount(addr, original, current)
		var blocks []*types.BlockWithSenders
		var receipts []types.Receipts
		for n := from; n <= to; n++ {
			blocks = append(blocks, makeBlock(n))
			receipts = append(receipts, types.Receipts{})
		}
		chain, err := NewChain(blocks, &ExecutionOutcome{FirstBlock: from, Receipts: receipts, ChangeSet: cs})
		require.NoError(t, err)
		return chain
	}

	left := mk(1, 1, nil, &state.Account{Nonce: 1, Balance: *uint256.NewInt(10)})
	right := mk(2, 2,
		&state.Account{Nonce: 1, Balance: *uint256.NewInt(10)},
		&state.Account{Nonce: 2, Balance: *uint256.NewInt(20)})

	joined, err := left.Append(right)
	require.NoError(t, err)

	change := joined.Outcome().ChangeSet.Account(addr)
	require.NotNil(t, change)
	assert.Nil(t, change.Original)
	require.NotNil(t, change.Current)
	assert.Equal(t, uint64(2), change.Current.Nonce)
}

func TestExecutionOutcomeGasUsed(t *testing.T) {
	chain := makeChain(t, 1, 3)
	assert.Equal(t, uint64(1000+2000+3000), chain.Outcome().GasUsed())
	assert.Equal(t, 3, chain.Outcome().Len())
}

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainexec/chainexec/core/state"
	"github.com/chainexec/chainexec/core/types"
	"github.com/chainexec/chainexec/turbo/trie"
)

func TestNewExecutedBlock(t *testing.T) {
	block := makeBlock(7)
	outcome := &ExecutionOutcome{
		FirstBlock: 7,
		Receipts:   []types.Receipts{{{Status: types.ReceiptStatusSuccessful, GasUsed: 21000}}},
		ChangeSet:  state.NewChangeSet(),
	}
	hashed := trie.NewHashedPostState(outcome.ChangeSet)
	updates := trie.NewUpdates()

	rec, err := NewExecutedBlock(block, outcome, hashed, updates)
	require.NoError(t, err)
	assert.Same(t, block, rec.Block())
	assert.Same(t, outcome, rec.Outcome())
	assert.Same(t, hashed, rec.HashedState())
	assert.Same(t, updates, rec.TrieUpdates())
	require.Len(t, rec.Receipts(), 1)
	assert.Equal(t, uint64(21000), rec.Receipts()[0].GasUsed)
}

func TestNewExecutedBlockValidation(t *testing.T) {
	block := makeBlock(7)

	_, err := NewExecutedBlock(nil, &ExecutionOutcome{}, nil, nil)
	assert.Error(t, err)

	// outcome must start at the block
	_, err = NewExecutedBlock(block, &ExecutionOutcome{FirstBlock: 8, Receipts: []types.Receipts{{}}}, nil, nil)
	assert.Error(t, err)

	// outcome must cover exactly one block
	_, err = NewExecutedBlock(block, &ExecutionOutcome{FirstBlock: 7, Receipts: []types.Receipts{{}, {}}}, nil, nil)
	assert.Error(t, err)
}

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

// Package backfilltest provides in-memory chain fixtures for backfill tests
// and the CLI demo mode: a block/state provider, a value-transfer executor
// and a builder producing signed chains with deterministic gas accounting.
package backfilltest

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/btree"
	"github.com/holiman/uint256"

	"github.com/chainexec/chainexec/common"
	"github.com/chainexec/chainexec/core/state"
	"github.com/chainexec/chainexec/core/types"
)

type blockEntry struct {
	number uint64
	block  *types.BlockWithSenders
}

// MemoryProvider serves blocks and per-block state snapshots from memory. It
// implements services.Provider. Fault injection and fetch counters are for
// exercising the backfill error taxonomy and the factory's block cache.
type MemoryProvider struct {
	mu     sync.RWMutex
	blocks *btree.BTreeG[blockEntry]
	// post-state of each block, genesis included under 0
	states map[uint64]map[common.Address]*state.Account

	stripSenders  bool
	missing       map[uint64]struct{}
	corruptStates map[uint64]struct{}

	fetchCalls   atomic.Int64
	stateAtCalls atomic.Int64
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		blocks:        btree.NewG(32, func(a, b blockEntry) bool { return a.number < b.number }),
		states:        make(map[uint64]map[common.Address]*state.Account),
		missing:       make(map[uint64]struct{}),
		corruptStates: make(map[uint64]struct{}),
	}
}

// PutBlock stores a block under its number.
func (p *MemoryProvider) PutBlock(block *types.BlockWithSenders) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.blocks.ReplaceOrInsert(blockEntry{number: block.Number(), block: block})
}

// PutState stores the post-state snapshot of the given block.
func (p *MemoryProvider) PutState(number uint64, accounts map[common.Address]*state.Account) {
	snapshot := make(map[common.Address]*state.Account, len(accounts))
	for addr, acc := range accounts {
		snapshot[addr] = acc.Copy()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.states[number] = snapshot
}

// StripSenders makes BlockWithSenders return blocks without recovered
// senders, forcing the job's recovery path.
func (p *MemoryProvider) StripSenders() *MemoryProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stripSenders = true
	return p
}

// DropBlock makes the given block number unavailable.
func (p *MemoryProvider) DropBlock(number uint64) *MemoryProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.missing[number] = struct{}{}
	return p
}

// CorruptState makes StateAt fail for the given block number.
func (p *MemoryProvider) CorruptState(number uint64) *MemoryProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.corruptStates[number] = struct{}{}
	return p
}

// FetchCalls returns how many times BlockWithSenders was called.
func (p *MemoryProvider) FetchCalls() int64 { return p.fetchCalls.Load() }

// StateAtCalls returns how many times StateAt was called.
func (p *MemoryProvider) StateAtCalls() int64 { return p.stateAtCalls.Load() }

// Tip returns the highest stored block number.
func (p *MemoryProvider) Tip() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var tip uint64
	if entry, ok := p.blocks.Max(); ok {
		tip = entry.number
	}
	return tip
}

func (p *MemoryProvider) Header(_ context.Context, number uint64) (*types.Header, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	entry, ok := p.blocks.Get(blockEntry{number: number})
	if !ok {
		return nil, nil
	}
	return entry.block.Header(), nil
}

func (p *MemoryProvider) BlockWithSenders(_ context.Context, number uint64) (*types.BlockWithSenders, error) {
	p.fetchCalls.Add(1)
	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, dropped := p.missing[number]; dropped {
		return nil, nil
	}
	entry, ok := p.blocks.Get(blockEntry{number: number})
	if !ok {
		return nil, nil
	}
	if p.stripSenders && len(entry.block.Transactions()) > 0 {
		return &types.BlockWithSenders{Block: entry.block.Block}, nil
	}
	return entry.block, nil
}

func (p *MemoryProvider) StateAt(number uint64) (state.Reader, error) {
	p.stateAtCalls.Add(1)
	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, corrupt := p.corruptStates[number]; corrupt {
		return nil, fmt.Errorf("state snapshot %d is corrupt", number)
	}
	snapshot, ok := p.states[number]
	if !ok {
		return nil, fmt.Errorf("no state snapshot at block %d", number)
	}
	return &snapshotReader{accounts: snapshot}, nil
}

type snapshotReader struct {
	accounts map[common.Address]*state.Account
}

func (r *snapshotReader) ReadAccountData(address common.Address) (*state.Account, error) {
	return r.accounts[address].Copy(), nil
}

func (r *snapshotReader) ReadAccountStorage(common.Address, common.Hash) (uint256.Int, error) {
	return uint256.Int{}, nil
}

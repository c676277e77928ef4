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

package state

import (
	"github.com/holiman/uint256"

	"github.com/chainexec/chainexec/common"
	"github.com/chainexec/chainexec/common/length"
)

// StorageChange records the before and after values of one storage slot.
type StorageChange struct {
	Original uint256.Int
	Current  uint256.Int
}

// AccountChange records the before and after state of one account, plus any
// touched storage slots. Original is nil when the account did not exist
// before; Current is nil when the account was deleted.
type AccountChange struct {
	Original *Account
	Current  *Account
	Storage  map[common.Hash]*StorageChange
}

// ChangeSet is the net account and storage diff produced by executing one or
// more blocks, prior to being committed. Merging across blocks keeps the
// earliest Original and the latest Current, so the set always describes a
// single before/after transition.
//
// A ChangeSet is not safe for concurrent mutation. Once it leaves the
// executor inside an execution outcome it is read-only.
type ChangeSet struct {
	accounts map[common.Address]*AccountChange
	size     uint64
}

// per-entry size estimates, in bytes: a rough account footprint and a slot's
// key plus two words.
const (
	accountChangeSize = length.Addr + 2*(8+32+length.Hash)
	storageChangeSize = length.Hash + 2*32
)

func NewChangeSet() *ChangeSet {
	return &ChangeSet{accounts: make(map[common.Address]*AccountChange)}
}

// TouchAccount records an account transition. On repeated touches the first
// recorded Original is kept and Current is replaced.
func (cs *ChangeSet) TouchAccount(address common.Address, original, current *Account) {
	ch, ok := cs.accounts[address]
	if !ok {
		ch = &AccountChange{Original: original.Copy()}
		cs.accounts[address] = ch
		cs.size += accountChangeSize
	}
	ch.Current = current.Copy()
}

// TouchStorage records a storage slot transition under the given account. The
// account itself must have been touched already or be touched eventually;
// the set does not enforce an order.
func (cs *ChangeSet) TouchStorage(address common.Address, key common.Hash, original, current uint256.Int) {
	ch, ok := cs.accounts[address]
	if !ok {
		ch = &AccountChange{}
		cs.accounts[address] = ch
		cs.size += accountChangeSize
	}
	if ch.Storage == nil {
		ch.Storage = make(map[common.Hash]*StorageChange)
	}
	sc, ok := ch.Storage[key]
	if !ok {
		sc = &StorageChange{Original: original}
		ch.Storage[key] = sc
		cs.size += storageChangeSize
	}
	sc.Current = current
}

// Merge folds other into cs. Entries only in other are copied; entries in
// both keep cs's Original and take other's Current. other must describe a
// transition that starts where cs ends.
func (cs *ChangeSet) Merge(other *ChangeSet) {
	if other == nil {
		return
	}
	for address, och := range other.accounts {
		ch, ok := cs.accounts[address]
		if !ok {
			ch = &AccountChange{Original: och.Original.Copy()}
			cs.accounts[address] = ch
			cs.size += accountChangeSize
		}
		ch.Current = och.Current.Copy()
		for key, osc := range och.Storage {
			if ch.Storage == nil {
				ch.Storage = make(map[common.Hash]*StorageChange)
			}
			sc, ok := ch.Storage[key]
			if !ok {
				sc = &StorageChange{Original: osc.Original}
				ch.Storage[key] = sc
				cs.size += storageChangeSize
			}
			sc.Current = osc.Current
		}
	}
}

// Account returns the recorded change for address, or nil.
func (cs *ChangeSet) Account(address common.Address) *AccountChange {
	return cs.accounts[address]
}

// Accounts exposes the underlying change map for iteration. Callers must not
// mutate it.
func (cs *ChangeSet) Accounts() map[common.Address]*AccountChange {
	return cs.accounts
}

// Len returns the number of changed accounts.
func (cs *ChangeSet) Len() int { return len(cs.accounts) }

// EstimatedSize returns a rough in-memory footprint of the set in bytes,
// maintained incrementally so batch thresholds can consult it cheaply.
func (cs *ChangeSet) EstimatedSize() uint64 { return cs.size }

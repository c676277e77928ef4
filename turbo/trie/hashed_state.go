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

// Package trie carries the hashed-state material that accompanies executed
// blocks on their way to the commitment layer. The root computation itself is
// an external capability; this package only prepares and transports its
// inputs and outputs.
package trie

import (
	"github.com/holiman/uint256"

	"github.com/chainexec/chainexec/common"
	"github.com/chainexec/chainexec/core/state"
	"github.com/chainexec/chainexec/crypto"
)

// HashedPostState is a post-execution state keyed by hashed addresses and
// hashed storage keys, the form the trie walks in. Deleted accounts map to
// nil. Read-only once built.
type HashedPostState struct {
	accounts map[common.Hash]*state.Account
	storages map[common.Hash]map[common.Hash]uint256.Int
}

// NewHashedPostState derives the hashed form of a change set's after-state.
func NewHashedPostState(cs *state.ChangeSet) *HashedPostState {
	post := &HashedPostState{
		accounts: make(map[common.Hash]*state.Account),
		storages: make(map[common.Hash]map[common.Hash]uint256.Int),
	}
	if cs == nil {
		return post
	}
	for address, change := range cs.Accounts() {
		hashedAddress := crypto.Keccak256Hash(address.Bytes())
		post.accounts[hashedAddress] = change.Current.Copy()
		if len(change.Storage) == 0 {
			continue
		}
		slots := make(map[common.Hash]uint256.Int, len(change.Storage))
		for key, slot := range change.Storage {
			slots[crypto.Keccak256Hash(key.Bytes())] = slot.Current
		}
		post.storages[hashedAddress] = slots
	}
	return post
}

// Account returns the post-state account under its hashed address, plus
// whether the address was touched at all. A touched address with a nil
// account is a deletion.
func (p *HashedPostState) Account(hashedAddress common.Hash) (*state.Account, bool) {
	a, ok := p.accounts[hashedAddress]
	return a, ok
}

// Storage returns the touched slots of the account under its hashed address.
func (p *HashedPostState) Storage(hashedAddress common.Hash) map[common.Hash]uint256.Int {
	return p.storages[hashedAddress]
}

// AccountCount returns the number of touched accounts.
func (p *HashedPostState) AccountCount() int { return len(p.accounts) }

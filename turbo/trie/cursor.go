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

package trie

import (
	"sync"

	"github.com/google/btree"
	"github.com/holiman/uint256"

	"github.com/chainexec/chainexec/common"
	"github.com/chainexec/chainexec/core/state"
)

// HashedAccountCursor walks accounts in hashed-address order.
type HashedAccountCursor interface {
	// Seek positions the cursor at the first entry with key >= hashedAddress
	// and returns it, or ok=false when the range is exhausted.
	Seek(hashedAddress common.Hash) (common.Hash, *state.Account, bool, error)
	// Next advances past the current entry.
	Next() (common.Hash, *state.Account, bool, error)
}

// HashedStorageCursor walks one account's storage in hashed-slot order.
type HashedStorageCursor interface {
	Seek(hashedKey common.Hash) (common.Hash, uint256.Int, bool, error)
	Next() (common.Hash, uint256.Int, bool, error)
}

// HashedCursorFactory opens cursors over a hashed state source.
type HashedCursorFactory interface {
	AccountCursor() (HashedAccountCursor, error)
	StorageCursor(hashedAddress common.Hash) (HashedStorageCursor, error)
}

type accountEntry struct {
	key     common.Hash
	account *state.Account
}

type storageEntry struct {
	key   common.Hash
	value uint256.Int
}

// MemoryHashedCursorFactory serves cursors from an in-memory hashed state and
// records every key a cursor visited. Used by tests and by dry runs of the
// commitment walk, where the visited set tells which part of the state the
// walk actually touched.
type MemoryHashedCursorFactory struct {
	mu       sync.Mutex
	accounts *btree.BTreeG[accountEntry]
	storages map[common.Hash]*btree.BTreeG[storageEntry]

	visitedAccounts map[common.Hash]struct{}
	visitedSlots    map[common.Hash]map[common.Hash]struct{}
}

func NewMemoryHashedCursorFactory(post *HashedPostState) *MemoryHashedCursorFactory {
	f := &MemoryHashedCursorFactory{
		accounts:        btree.NewG(32, func(a, b accountEntry) bool { return a.key.Cmp(b.key) < 0 }),
		storages:        make(map[common.Hash]*btree.BTreeG[storageEntry]),
		visitedAccounts: make(map[common.Hash]struct{}),
		visitedSlots:    make(map[common.Hash]map[common.Hash]struct{}),
	}
	if post == nil {
		return f
	}
	for hashedAddress, account := range post.accounts {
		if account == nil {
			continue
		}
		f.accounts.ReplaceOrInsert(accountEntry{key: hashedAddress, account: account})
		slots := post.storages[hashedAddress]
		if len(slots) == 0 {
			continue
		}
		st := btree.NewG(32, func(a, b storageEntry) bool { return a.key.Cmp(b.key) < 0 })
		for key, value := range slots {
			if value.IsZero() {
				continue
			}
			st.ReplaceOrInsert(storageEntry{key: key, value: value})
		}
		f.storages[hashedAddress] = st
	}
	return f
}

func (f *MemoryHashedCursorFactory) AccountCursor() (HashedAccountCursor, error) {
	return &memoryAccountCursor{factory: f}, nil
}

func (f *MemoryHashedCursorFactory) StorageCursor(hashedAddress common.Hash) (HashedStorageCursor, error) {
	return &memoryStorageCursor{factory: f, hashedAddress: hashedAddress}, nil
}

// VisitedAccounts returns the hashed addresses returned by account cursors so
// far.
func (f *MemoryHashedCursorFactory) VisitedAccounts() map[common.Hash]struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[common.Hash]struct{}, len(f.visitedAccounts))
	for k := range f.visitedAccounts {
		out[k] = struct{}{}
	}
	return out
}

// VisitedSlots returns the hashed slot keys returned by storage cursors for
// the given account.
func (f *MemoryHashedCursorFactory) VisitedSlots(hashedAddress common.Hash) map[common.Hash]struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[common.Hash]struct{}, len(f.visitedSlots[hashedAddress]))
	for k := range f.visitedSlots[hashedAddress] {
		out[k] = struct{}{}
	}
	return out
}

func (f *MemoryHashedCursorFactory) markAccount(key common.Hash) {
	f.mu.Lock()
	f.visitedAccounts[key] = struct{}{}
	f.mu.Unlock()
}

func (f *MemoryHashedCursorFactory) markSlot(hashedAddress, key common.Hash) {
	f.mu.Lock()
	slots, ok := f.visitedSlots[hashedAddress]
	if !ok {
		slots = make(map[common.Hash]struct{})
		f.visitedSlots[hashedAddress] = slots
	}
	slots[key] = struct{}{}
	f.mu.Unlock()
}

type memoryAccountCursor struct {
	factory *MemoryHashedCursorFactory
	current common.Hash
	valid   bool
}

func (c *memoryAccountCursor) Seek(hashedAddress common.Hash) (common.Hash, *state.Account, bool, error) {
	var found *accountEntry
	c.factory.accounts.AscendGreaterOrEqual(accountEntry{key: hashedAddress}, func(e accountEntry) bool {
		found = &e
		return false
	})
	if found == nil {
		c.valid = false
		return common.Hash{}, nil, false, nil
	}
	c.current, c.valid = found.key, true
	c.factory.markAccount(found.key)
	return found.key, found.account, true, nil
}

func (c *memoryAccountCursor) Next() (common.Hash, *state.Account, bool, error) {
	if !c.valid {
		return common.Hash{}, nil, false, nil
	}
	var found *accountEntry
	c.factory.accounts.AscendGreaterOrEqual(accountEntry{key: c.current}, func(e accountEntry) bool {
		if e.key == c.current {
			return true
		}
		found = &e
		return false
	})
	if found == nil {
		c.valid = false
		return common.Hash{}, nil, false, nil
	}
	c.current = found.key
	c.factory.markAccount(found.key)
	return found.key, found.account, true, nil
}

type memoryStorageCursor struct {
	factory       *MemoryHashedCursorFactory
	hashedAddress common.Hash
	current       common.Hash
	valid         bool
}

func (c *memoryStorageCursor) Seek(hashedKey common.Hash) (common.Hash, uint256.Int, bool, error) {
	slots := c.factory.storages[c.hashedAddress]
	if slots == nil {
		c.valid = false
		return common.Hash{}, uint256.Int{}, false, nil
	}
	var found *storageEntry
	slots.AscendGreaterOrEqual(storageEntry{key: hashedKey}, func(e storageEntry) bool {
		found = &e
		return false
	})
	if found == nil {
		c.valid = false
		return common.Hash{}, uint256.Int{}, false, nil
	}
	c.current, c.valid = found.key, true
	c.factory.markSlot(c.hashedAddress, found.key)
	return found.key, found.value, true, nil
}

func (c *memoryStorageCursor) Next() (common.Hash, uint256.Int, bool, error) {
	if !c.valid {
		return common.Hash{}, uint256.Int{}, false, nil
	}
	slots := c.factory.storages[c.hashedAddress]
	if slots == nil {
		c.valid = false
		return common.Hash{}, uint256.Int{}, false, nil
	}
	var found *storageEntry
	slots.AscendGreaterOrEqual(storageEntry{key: c.current}, func(e storageEntry) bool {
		if e.key == c.current {
			return true
		}
		found = &e
		return false
	})
	if found == nil {
		c.valid = false
		return common.Hash{}, uint256.Int{}, false, nil
	}
	c.current = found.key
	c.factory.markSlot(c.hashedAddress, found.key)
	return found.key, found.value, true, nil
}

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

import "github.com/chainexec/chainexec/common"

// Updates is the set of trie nodes produced while committing a hashed
// post-state, keyed by nibble path. Consumers that persist the trie apply
// these instead of recomputing the walk.
type Updates struct {
	nodes   map[string][]byte
	removed map[string]struct{}
}

func NewUpdates() *Updates {
	return &Updates{
		nodes:   make(map[string][]byte),
		removed: make(map[string]struct{}),
	}
}

// Put records a created or updated node at the given path.
func (u *Updates) Put(path []byte, node []byte) {
	k := string(path)
	delete(u.removed, k)
	u.nodes[k] = common.Copy(node)
}

// Delete records a removed node at the given path.
func (u *Updates) Delete(path []byte) {
	k := string(path)
	delete(u.nodes, k)
	u.removed[k] = struct{}{}
}

// Get returns the recorded node at path, or nil.
func (u *Updates) Get(path []byte) []byte {
	return u.nodes[string(path)]
}

// Deleted reports whether the path was recorded as removed.
func (u *Updates) Deleted(path []byte) bool {
	_, ok := u.removed[string(path)]
	return ok
}

// Len returns the number of recorded node writes.
func (u *Updates) Len() int { return len(u.nodes) }

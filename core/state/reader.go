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
)

// Reader is a read-only view of account state pinned at one block. A view
// obtained for a batch is exclusively owned by that batch's execution;
// implementations only need to be safe for use from one goroutine at a time.
type Reader interface {
	// ReadAccountData returns nil without error when the account does not
	// exist. Errors indicate backend failure, not absence.
	ReadAccountData(address common.Address) (*Account, error)
	// ReadAccountStorage returns the zero value for unset slots.
	ReadAccountStorage(address common.Address, key common.Hash) (uint256.Int, error)
}

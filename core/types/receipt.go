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

import "github.com/chainexec/chainexec/common"

const (
	// ReceiptStatusFailed is the status code of a transaction if execution failed.
	ReceiptStatusFailed = uint64(0)

	// ReceiptStatusSuccessful is the status code of a transaction if execution succeeded.
	ReceiptStatusSuccessful = uint64(1)
)

// Log represents a contract log event.
type Log struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
}

// Receipt represents the results of a transaction.
type Receipt struct {
	Status            uint64
	CumulativeGasUsed uint64

	TxHash  common.Hash
	GasUsed uint64
	Logs    []*Log

	BlockNumber      uint64
	TransactionIndex uint
}

// Receipts implements DerivableList for receipts.
type Receipts []*Receipt

// GasUsed returns the total gas used by the receipts.
func (rs Receipts) GasUsed() (total uint64) {
	for _, r := range rs {
		total += r.GasUsed
	}
	return total
}

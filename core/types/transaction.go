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

import (
	"bytes"
	"errors"
	"sync/atomic"

	"github.com/holiman/uint256"

	"github.com/chainexec/chainexec/common"
	"github.com/chainexec/chainexec/crypto"
	"github.com/chainexec/chainexec/rlp"
)

var (
	ErrInvalidSig     = errors.New("invalid transaction v, r, s values")
	ErrInvalidChainId = errors.New("invalid chain id for signer")
)

// Transaction is a legacy transaction. Its signature fields V, R, S are raw
// protocol values: V is 27/28 for unprotected transactions and
// 35+2*chainID{+1} for EIP-155 protected ones.
type Transaction struct {
	Nonce    uint64
	GasPrice *uint256.Int
	GasLimit uint64
	To       *common.Address // nil means contract creation
	Value    *uint256.Int
	Data     []byte
	V, R, S  uint256.Int

	// caches
	hash atomic.Pointer[common.Hash]
	from atomic.Pointer[common.Address]
}

// NewTransaction creates an unsigned value-transfer transaction.
func NewTransaction(nonce uint64, to common.Address, value *uint256.Int, gasLimit uint64, gasPrice *uint256.Int, data []byte) *Transaction {
	return &Transaction{
		Nonce:    nonce,
		GasPrice: gasPrice,
		GasLimit: gasLimit,
		To:       &to,
		Value:    value,
		Data:     data,
	}
}

// Hash returns the transaction hash. The hash is computed on first use and
// cached thereafter.
func (tx *Transaction) Hash() common.Hash {
	if hash := tx.hash.Load(); hash != nil {
		return *hash
	}
	var buf bytes.Buffer
	tx.encodePayload(&buf, nil, true)
	hash := crypto.Keccak256Hash(buf.Bytes())
	tx.hash.Store(&hash)
	return hash
}

// Protected reports whether the transaction is replay-protected per EIP-155.
func (tx *Transaction) Protected() bool {
	if tx.V.IsZero() {
		return false
	}
	v := tx.V.Uint64()
	return tx.V.BitLen() > 8 || (v != 27 && v != 28)
}

// ChainID derives the chain id from the signature's v parameter. It returns
// zero for unprotected transactions.
func (tx *Transaction) ChainID() *uint256.Int {
	return deriveChainID(&tx.V)
}

// WithSignature returns a copy of the transaction carrying the given raw
// [R || S || V] signature, with V encoded the way the signer prescribes.
func (tx *Transaction) WithSignature(signer Signer, sig []byte) (*Transaction, error) {
	r, s, v, err := signer.SignatureValues(tx, sig)
	if err != nil {
		return nil, err
	}
	cpy := &Transaction{
		Nonce:    tx.Nonce,
		GasPrice: tx.GasPrice,
		GasLimit: tx.GasLimit,
		To:       tx.To,
		Value:    tx.Value,
		Data:     tx.Data,
	}
	cpy.R.Set(r)
	cpy.S.Set(s)
	cpy.V.Set(v)
	return cpy, nil
}

// encodePayload writes the RLP list of the transaction fields to w. For
// signing payloads chainID selects between the 6-field legacy form (nil) and
// the 9-field EIP-155 form (chainID, 0, 0 appended). With withSignature the
// raw V, R, S are appended instead, producing the canonical encoding the
// transaction hash covers.
func (tx *Transaction) encodePayload(w *bytes.Buffer, chainID *uint256.Int, withSignature bool) {
	rlp.EncodeList(w, func(payload *bytes.Buffer) {
		rlp.EncodeUint64(payload, tx.Nonce)
		rlp.EncodeString(payload, tx.GasPrice.Bytes())
		rlp.EncodeUint64(payload, tx.GasLimit)
		if tx.To != nil {
			rlp.EncodeString(payload, tx.To.Bytes())
		} else {
			rlp.EncodeString(payload, nil)
		}
		rlp.EncodeString(payload, tx.Value.Bytes())
		rlp.EncodeString(payload, tx.Data)
		if withSignature {
			rlp.EncodeString(payload, tx.V.Bytes())
			rlp.EncodeString(payload, tx.R.Bytes())
			rlp.EncodeString(payload, tx.S.Bytes())
		} else if chainID != nil && !chainID.IsZero() {
			rlp.EncodeString(payload, chainID.Bytes())
			rlp.EncodeUint64(payload, 0)
			rlp.EncodeUint64(payload, 0)
		}
	})
}

// deriveChainID derives the chain id from the given v parameter
func deriveChainID(v *uint256.Int) *uint256.Int {
	if v.IsUint64() {
		v := v.Uint64()
		if v == 27 || v == 28 {
			return new(uint256.Int)
		}
		return new(uint256.Int).SetUint64((v - 35) / 2)
	}
	r := new(uint256.Int).SubUint64(v, 35)
	return r.Rsh(r, 1)
}

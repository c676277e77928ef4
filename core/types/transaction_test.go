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
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainexec/chainexec/common"
)

func TestTransactionProtected(t *testing.T) {
	t.Parallel()
	tx := &Transaction{}
	assert.False(t, tx.Protected())

	tx.V.SetUint64(27)
	assert.False(t, tx.Protected())
	tx.V.SetUint64(28)
	assert.False(t, tx.Protected())

	// chain id 1: v = 37/38
	tx.V.SetUint64(37)
	assert.True(t, tx.Protected())
	tx.V.SetUint64(38)
	assert.True(t, tx.Protected())
}

func TestTransactionChainID(t *testing.T) {
	t.Parallel()
	tx := &Transaction{}
	tx.V.SetUint64(27)
	assert.True(t, tx.ChainID().IsZero())

	tx.V.SetUint64(37)
	assert.Equal(t, uint64(1), tx.ChainID().Uint64())
	tx.V.SetUint64(38)
	assert.Equal(t, uint64(1), tx.ChainID().Uint64())

	// 1337: v = 2*1337 + 35 + recid
	tx.V.SetUint64(2709)
	assert.Equal(t, uint64(1337), tx.ChainID().Uint64())
}

func TestTransactionHashCoversSignature(t *testing.T) {
	t.Parallel()
	signer := LatestSigner(TestChainConfig)
	signed, _ := signedTransferTx(t, signer, 0)

	unsigned := &Transaction{
		Nonce:    signed.Nonce,
		GasPrice: signed.GasPrice,
		GasLimit: signed.GasLimit,
		To:       signed.To,
		Value:    signed.Value,
		Data:     signed.Data,
	}
	assert.NotEqual(t, unsigned.Hash(), signed.Hash())
	// cached on repeat
	assert.Equal(t, signed.Hash(), signed.Hash())
	// distinct from the signing hash
	assert.NotEqual(t, signer.Hash(signed), signed.Hash())
}

func TestWithSignatureKeepsPayloadFields(t *testing.T) {
	t.Parallel()
	signer := NewEIP155Signer(uint256.NewInt(1))
	tx := NewTransaction(3, common.HexToAddress("0xaa"), uint256.NewInt(100), 21000, uint256.NewInt(2), []byte{0x1, 0x2})

	sig := make([]byte, 65)
	sig[31] = 7 // r
	sig[63] = 9 // s
	sig[64] = 1 // recid
	signed, err := tx.WithSignature(signer, sig)
	require.NoError(t, err)

	assert.Equal(t, tx.Nonce, signed.Nonce)
	assert.Equal(t, tx.To, signed.To)
	assert.Equal(t, tx.Value, signed.Value)
	assert.Equal(t, uint64(7), signed.R.Uint64())
	assert.Equal(t, uint64(9), signed.S.Uint64())
	assert.Equal(t, uint64(1+35+2), signed.V.Uint64())
	// the original stays unsigned
	assert.True(t, tx.V.IsZero())
}

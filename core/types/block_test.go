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
	"github.com/chainexec/chainexec/crypto"
)

func TestHeaderHashDeterministic(t *testing.T) {
	t.Parallel()
	header := &Header{
		ParentHash: common.HexToHash("0x01"),
		Coinbase:   common.HexToAddress("0x02"),
		Number:     42,
		GasLimit:   8_000_000,
		GasUsed:    21_000,
		Time:       1234,
	}
	h1 := header.Hash()
	h2 := header.Hash()
	assert.Equal(t, h1, h2)

	other := *header
	other.Number = 43
	assert.NotEqual(t, h1, other.Hash())
}

func TestBlockHashCached(t *testing.T) {
	t.Parallel()
	block := NewBlock(&Header{Number: 7}, nil)
	h := block.Hash()
	assert.Equal(t, block.Header().Hash(), h)
	assert.Equal(t, h, block.Hash())
}

func TestNewBlockNilBody(t *testing.T) {
	t.Parallel()
	block := NewBlock(&Header{Number: 1}, nil)
	require.NotNil(t, block.Body())
	assert.Empty(t, block.Transactions())
}

func signedTransferTx(t *testing.T, signer Signer, nonce uint64) (*Transaction, common.Address) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	tx := NewTransaction(nonce, common.HexToAddress("0x0b0b"), uint256.NewInt(1), 21000, uint256.NewInt(1), nil)
	signed, err := SignTx(tx, signer, key)
	require.NoError(t, err)
	return signed, crypto.PubkeyToAddress(key.PubKey())
}

func TestNewBlockWithSendersLengthMismatch(t *testing.T) {
	t.Parallel()
	signer := LatestSigner(TestChainConfig)
	tx, _ := signedTransferTx(t, signer, 0)
	block := NewBlock(&Header{Number: 1}, &Body{Transactions: []*Transaction{tx}})

	_, err := NewBlockWithSenders(block, nil)
	assert.Error(t, err)

	_, err = NewBlockWithSenders(block, make([]common.Address, 2))
	assert.Error(t, err)
}

func TestRecoverSenders(t *testing.T) {
	t.Parallel()
	signer := LatestSigner(TestChainConfig)
	tx1, from1 := signedTransferTx(t, signer, 0)
	tx2, from2 := signedTransferTx(t, signer, 5)
	block := NewBlock(&Header{Number: 1}, &Body{Transactions: []*Transaction{tx1, tx2}})

	withSenders := &BlockWithSenders{Block: block}
	require.False(t, withSenders.HasSenders())

	require.NoError(t, withSenders.RecoverSenders(signer))
	require.True(t, withSenders.HasSenders())
	assert.Equal(t, []common.Address{from1, from2}, withSenders.Senders)

	// recovery is idempotent
	require.NoError(t, withSenders.RecoverSenders(signer))
	assert.Equal(t, []common.Address{from1, from2}, withSenders.Senders)
}

func TestRecoverSendersUnchecked(t *testing.T) {
	t.Parallel()
	signer := LatestSigner(TestChainConfig)
	tx1, from1 := signedTransferTx(t, signer, 0)
	tx2, from2 := signedTransferTx(t, signer, 1)
	block := NewBlock(&Header{Number: 1}, &Body{Transactions: []*Transaction{tx1, tx2}})

	withSenders := &BlockWithSenders{Block: block}
	require.NoError(t, withSenders.RecoverSendersUnchecked(signer))
	assert.Equal(t, []common.Address{from1, from2}, withSenders.Senders)
}

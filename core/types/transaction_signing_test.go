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
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainexec/chainexec/common"
	"github.com/chainexec/chainexec/crypto"
)

// curve order of secp256k1
var secpN = uint256.MustFromHex("0xfffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")

func signedTestTx(t *testing.T, signer Signer) (*Transaction, common.Address) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	tx := NewTransaction(0, common.HexToAddress("0x0b0b"), uint256.NewInt(10), 21000, uint256.NewInt(1), nil)
	signed, err := SignTx(tx, signer, key)
	require.NoError(t, err)
	return signed, crypto.PubkeyToAddress(key.PubKey())
}

// flipS rewrites the signature to its malleable twin: s' = N - s with the
// other recovery id. Recovers to the same address on the unchecked path and
// fails the low-s check on the strict one.
func flipS(t *testing.T, tx *Transaction, signer Signer) *Transaction {
	t.Helper()
	twin := &Transaction{
		Nonce:    tx.Nonce,
		GasPrice: tx.GasPrice,
		GasLimit: tx.GasLimit,
		To:       tx.To,
		Value:    tx.Value,
		Data:     tx.Data,
	}
	twin.R.Set(&tx.R)
	twin.S.Sub(secpN, &tx.S)

	base := uint256.NewInt(27)
	if tx.Protected() {
		// v = chainID*2 + 35 + recid
		base = new(uint256.Int).Mul(signer.ChainID(), uint256.NewInt(2))
		base.AddUint64(base, 35)
	}
	recid := new(uint256.Int).Sub(&tx.V, base)
	require.True(t, recid.LtUint64(2))
	twin.V.AddUint64(base, 1-recid.Uint64())
	return twin
}

func TestEIP155SignerRoundtrip(t *testing.T) {
	t.Parallel()
	signer := LatestSigner(TestChainConfig)
	tx, want := signedTestTx(t, signer)

	assert.True(t, tx.Protected())
	assert.True(t, tx.ChainID().Eq(TestChainConfig.ChainID))

	got, err := signer.Sender(tx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = signer.SenderUnchecked(tx, new(bytes.Buffer))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestHomesteadSignerRoundtrip(t *testing.T) {
	t.Parallel()
	signer := HomesteadSigner{}
	tx, want := signedTestTx(t, signer)

	assert.False(t, tx.Protected())
	assert.True(t, tx.ChainID().IsZero())

	got, err := signer.Sender(tx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStrictPathRejectsHighS(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name   string
		signer Signer
	}{
		{"eip155", LatestSigner(TestChainConfig)},
		{"homestead", HomesteadSigner{}},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tx, want := signedTestTx(t, tc.signer)
			twin := flipS(t, tx, tc.signer)

			_, err := tc.signer.Sender(twin)
			assert.ErrorIs(t, err, ErrInvalidSig)

			got, err := tc.signer.SenderUnchecked(twin, new(bytes.Buffer))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestFrontierSignerAcceptsHighSOnBothPaths(t *testing.T) {
	t.Parallel()
	signer := FrontierSigner{}
	tx, want := signedTestTx(t, signer)
	twin := flipS(t, tx, signer)

	got, err := signer.Sender(twin)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = signer.SenderUnchecked(twin, nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEIP155SignerRejectsForeignChainID(t *testing.T) {
	t.Parallel()
	tx, _ := signedTestTx(t, NewEIP155Signer(uint256.NewInt(1)))
	other := NewEIP155Signer(uint256.NewInt(2))

	_, err := other.Sender(tx)
	assert.ErrorIs(t, err, ErrInvalidChainId)
	_, err = other.SenderUnchecked(tx, nil)
	assert.ErrorIs(t, err, ErrInvalidChainId)
}

func TestEIP155SignerFallsBackOnUnprotected(t *testing.T) {
	t.Parallel()
	// a homestead-signed tx recovered through an EIP155 signer
	tx, want := signedTestTx(t, HomesteadSigner{})
	signer := LatestSigner(TestChainConfig)

	got, err := signer.Sender(tx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSenderCachedOnTransaction(t *testing.T) {
	t.Parallel()
	signer := LatestSigner(TestChainConfig)
	tx, want := signedTestTx(t, signer)

	got, err := Sender(signer, tx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// second call comes from the cache; a buffer is not even touched
	got, err = SenderUnchecked(signer, tx, nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSharedScratchBufferReuse(t *testing.T) {
	t.Parallel()
	signer := LatestSigner(TestChainConfig)
	buf := new(bytes.Buffer)
	for i := 0; i < 5; i++ {
		tx, want := signedTestTx(t, signer)
		got, err := signer.SenderUnchecked(tx, buf)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestMakeSigner(t *testing.T) {
	t.Parallel()
	homestead := uint64(5)
	eip155 := uint64(10)
	config := &ChainConfig{
		ChainID:        uint256.NewInt(1),
		HomesteadBlock: &homestead,
		EIP155Block:    &eip155,
	}

	assert.True(t, MakeSigner(config, 0).Equal(FrontierSigner{}))
	assert.True(t, MakeSigner(config, 5).Equal(HomesteadSigner{}))
	assert.True(t, MakeSigner(config, 9).Equal(HomesteadSigner{}))
	assert.True(t, MakeSigner(config, 10).Equal(NewEIP155Signer(config.ChainID)))
	assert.True(t, LatestSigner(config).Equal(NewEIP155Signer(config.ChainID)))
}

func TestSignatureValuesVEncoding(t *testing.T) {
	t.Parallel()
	sig := make([]byte, crypto.SignatureLength)
	sig[31] = 1 // r = 1
	sig[63] = 1 // s = 1
	sig[64] = 1 // recid = 1

	_, _, v, err := (FrontierSigner{}).SignatureValues(nil, sig)
	require.NoError(t, err)
	assert.Equal(t, uint64(28), v.Uint64())

	chainID := uint256.NewInt(1337)
	_, _, v, err = NewEIP155Signer(chainID).SignatureValues(nil, sig)
	require.NoError(t, err)
	// v = recid + 35 + 2*chainID
	assert.Equal(t, uint64(1+35+2*1337), v.Uint64())

	_, _, _, err = (FrontierSigner{}).SignatureValues(nil, sig[:64])
	assert.Error(t, err)
}

func TestRecoverPlainRejectsOversizedV(t *testing.T) {
	t.Parallel()
	tx, _ := signedTestTx(t, HomesteadSigner{})
	tx.V.SetUint64(1 << 9)
	_, err := (HomesteadSigner{}).Sender(tx)
	assert.ErrorIs(t, err, ErrInvalidSig)
}

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
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/holiman/uint256"

	"github.com/chainexec/chainexec/common"
	"github.com/chainexec/chainexec/common/u256"
	"github.com/chainexec/chainexec/crypto"
)

// Signer encapsulates transaction signature handling.
//
// Sender is the strict path: it rejects signatures whose s value is in the
// upper half of the curve order (the EIP-2 malleability rule). SenderUnchecked
// omits that check; it exists for transactions that predate the rule's
// enforcement, and takes a reusable scratch buffer because recovery runs on
// the hot path of every block execution. Which path applies to a given
// transaction is selected at the call site, not inferred here.
type Signer interface {
	// Sender returns the sender address of the transaction, enforcing the
	// low-s signature constraint.
	Sender(tx *Transaction) (common.Address, error)
	// SenderUnchecked returns the sender address without the low-s check.
	// buf is scratch space for the signing-payload encoding and may be
	// reused across calls; nil is allowed.
	SenderUnchecked(tx *Transaction, buf *bytes.Buffer) (common.Address, error)

	// SignatureValues returns the raw R, S, V values corresponding to the
	// given signature.
	SignatureValues(tx *Transaction, sig []byte) (r, s, v *uint256.Int, err error)
	// Hash returns the hash to be signed.
	Hash(tx *Transaction) common.Hash
	// HashWithBuffer is Hash with caller-provided scratch space.
	HashWithBuffer(tx *Transaction, buf *bytes.Buffer) common.Hash
	// Equal returns true if the given signer is the same as the receiver.
	Equal(Signer) bool
	// ChainID returns 0 for pre-EIP155 signers.
	ChainID() *uint256.Int
}

// MakeSigner returns a Signer valid for signatures made at the given block
// number under the given chain rules.
func MakeSigner(config *ChainConfig, blockNumber uint64) Signer {
	switch {
	case config.IsEIP155(blockNumber):
		return NewEIP155Signer(config.ChainID)
	case config.IsHomestead(blockNumber):
		return HomesteadSigner{}
	default:
		return FrontierSigner{}
	}
}

// LatestSigner returns the signer for the most recent protocol rules.
func LatestSigner(config *ChainConfig) Signer {
	return NewEIP155Signer(config.ChainID)
}

// SignTx signs the transaction using the given signer and private key.
func SignTx(tx *Transaction, s Signer, prv *secp256k1.PrivateKey) (*Transaction, error) {
	h := s.Hash(tx)
	sig, err := crypto.Sign(h[:], prv)
	if err != nil {
		return nil, err
	}
	return tx.WithSignature(s, sig)
}

// Sender returns the address derived from the signature (V, R, S) using the
// signer's strict recovery path, caching the result on the transaction.
//
// The cache is shared with SenderUnchecked: whichever path runs first wins.
// That is safe because a signature accepted by both paths recovers the same
// address.
func Sender(signer Signer, tx *Transaction) (common.Address, error) {
	if from := tx.from.Load(); from != nil {
		return *from, nil
	}
	addr, err := signer.Sender(tx)
	if err != nil {
		return common.Address{}, err
	}
	tx.from.Store(&addr)
	return addr, nil
}

// SenderUnchecked is Sender without the low-s signature check.
func SenderUnchecked(signer Signer, tx *Transaction, buf *bytes.Buffer) (common.Address, error) {
	if from := tx.from.Load(); from != nil {
		return *from, nil
	}
	addr, err := signer.SenderUnchecked(tx, buf)
	if err != nil {
		return common.Address{}, err
	}
	tx.from.Store(&addr)
	return addr, nil
}

// EIP155Signer implements Signer using the EIP-155 rules.
type EIP155Signer struct {
	chainID, chainIDMul *uint256.Int
}

func NewEIP155Signer(chainID *uint256.Int) EIP155Signer {
	x := new(uint256.Int)
	if chainID != nil {
		x.Set(chainID)
	}
	return EIP155Signer{
		chainID:    x,
		chainIDMul: new(uint256.Int).Mul(x, u256.Num2),
	}
}

func (s EIP155Signer) Equal(s2 Signer) bool {
	eip155, ok := s2.(EIP155Signer)
	return ok && eip155.chainID.Cmp(s.chainID) == 0
}

func (s EIP155Signer) ChainID() *uint256.Int { return s.chainID }

func (s EIP155Signer) Sender(tx *Transaction) (common.Address, error) {
	return s.sender(tx, nil, true)
}

func (s EIP155Signer) SenderUnchecked(tx *Transaction, buf *bytes.Buffer) (common.Address, error) {
	return s.sender(tx, buf, false)
}

func (s EIP155Signer) sender(tx *Transaction, buf *bytes.Buffer, checkLowS bool) (common.Address, error) {
	if !tx.Protected() {
		if checkLowS {
			return HomesteadSigner{}.Sender(tx)
		}
		return HomesteadSigner{}.SenderUnchecked(tx, buf)
	}
	if !tx.ChainID().Eq(s.chainID) {
		return common.Address{}, ErrInvalidChainId
	}
	v := new(uint256.Int).Sub(&tx.V, s.chainIDMul)
	v.Sub(v, u256.Num8)
	if buf == nil {
		buf = new(bytes.Buffer)
	}
	return recoverPlain(s.HashWithBuffer(tx, buf), &tx.R, &tx.S, v, checkLowS)
}

// SignatureValues returns signature values. This signature
// needs to be in the [R || S || V] format where V is 0 or 1.
func (s EIP155Signer) SignatureValues(tx *Transaction, sig []byte) (r, sv, v *uint256.Int, err error) {
	r, sv, v, err = HomesteadSigner{}.SignatureValues(tx, sig)
	if err != nil {
		return nil, nil, nil, err
	}
	if !s.chainID.IsZero() {
		v = uint256.NewInt(uint64(sig[64] + 35))
		v.Add(v, s.chainIDMul)
	}
	return r, sv, v, nil
}

// Hash returns the hash to be signed by the sender.
// It does not uniquely identify the transaction.
func (s EIP155Signer) Hash(tx *Transaction) common.Hash {
	return s.HashWithBuffer(tx, new(bytes.Buffer))
}

func (s EIP155Signer) HashWithBuffer(tx *Transaction, buf *bytes.Buffer) common.Hash {
	buf.Reset()
	tx.encodePayload(buf, s.chainID, false)
	return crypto.Keccak256Hash(buf.Bytes())
}

// HomesteadSigner implements Signer using the homestead rules: no replay
// protection, low-s enforced on the strict path.
type HomesteadSigner struct{ FrontierSigner }

func (hs HomesteadSigner) Equal(s2 Signer) bool {
	_, ok := s2.(HomesteadSigner)
	return ok
}

func (hs HomesteadSigner) Sender(tx *Transaction) (common.Address, error) {
	return recoverPlain(hs.Hash(tx), &tx.R, &tx.S, &tx.V, true)
}

func (hs HomesteadSigner) SenderUnchecked(tx *Transaction, buf *bytes.Buffer) (common.Address, error) {
	if buf == nil {
		buf = new(bytes.Buffer)
	}
	return recoverPlain(hs.HashWithBuffer(tx, buf), &tx.R, &tx.S, &tx.V, false)
}

// FrontierSigner implements the original protocol rules. The low-s rule did
// not exist yet, so the strict and unchecked paths coincide.
type FrontierSigner struct{}

func (fs FrontierSigner) Equal(s2 Signer) bool {
	_, ok := s2.(FrontierSigner)
	return ok
}

func (fs FrontierSigner) ChainID() *uint256.Int { return u256.Num0 }

// SignatureValues returns signature values. This signature
// needs to be in the [R || S || V] format where V is 0 or 1.
func (fs FrontierSigner) SignatureValues(tx *Transaction, sig []byte) (r, s, v *uint256.Int, err error) {
	if len(sig) != crypto.SignatureLength {
		return nil, nil, nil, fmt.Errorf("wrong size for signature: got %d, want %d", len(sig), crypto.SignatureLength)
	}
	r = new(uint256.Int).SetBytes(sig[:32])
	s = new(uint256.Int).SetBytes(sig[32:64])
	v = new(uint256.Int).SetBytes([]byte{sig[64] + 27})
	return r, s, v, nil
}

// Hash returns the hash to be signed by the sender.
// It does not uniquely identify the transaction.
func (fs FrontierSigner) Hash(tx *Transaction) common.Hash {
	return fs.HashWithBuffer(tx, new(bytes.Buffer))
}

func (fs FrontierSigner) HashWithBuffer(tx *Transaction, buf *bytes.Buffer) common.Hash {
	buf.Reset()
	tx.encodePayload(buf, nil, false)
	return crypto.Keccak256Hash(buf.Bytes())
}

func (fs FrontierSigner) Sender(tx *Transaction) (common.Address, error) {
	return recoverPlain(fs.Hash(tx), &tx.R, &tx.S, &tx.V, false)
}

func (fs FrontierSigner) SenderUnchecked(tx *Transaction, buf *bytes.Buffer) (common.Address, error) {
	if buf == nil {
		buf = new(bytes.Buffer)
	}
	return recoverPlain(fs.HashWithBuffer(tx, buf), &tx.R, &tx.S, &tx.V, false)
}

func recoverPlain(sighash common.Hash, r, s, vb *uint256.Int, checkLowS bool) (common.Address, error) {
	if vb.BitLen() > 8 {
		return common.Address{}, ErrInvalidSig
	}
	v := byte(vb.Uint64() - 27)
	if !crypto.ValidateSignatureValues(v, r, s, checkLowS) {
		return common.Address{}, ErrInvalidSig
	}
	// encode the signature in uncompressed format
	rb, sb := r.Bytes(), s.Bytes()
	sig := make([]byte, crypto.SignatureLength)
	copy(sig[32-len(rb):32], rb)
	copy(sig[64-len(sb):64], sb)
	sig[64] = v
	// recover the public key from the signature
	pub, err := crypto.Ecrecover(sighash[:], sig)
	if err != nil {
		return common.Address{}, err
	}
	if len(pub) == 0 || pub[0] != 4 {
		return common.Address{}, errors.New("invalid public key")
	}
	var addr common.Address
	copy(addr[:], crypto.Keccak256(pub[1:])[12:])
	return addr, nil
}

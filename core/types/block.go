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
	"fmt"
	"sync/atomic"

	"github.com/chainexec/chainexec/common"
	"github.com/chainexec/chainexec/crypto"
	"github.com/chainexec/chainexec/rlp"
)

// Header represents a block header.
type Header struct {
	ParentHash common.Hash
	Coinbase   common.Address
	Root       common.Hash // state root after this block
	TxHash     common.Hash
	Number     uint64
	GasLimit   uint64
	GasUsed    uint64
	Time       uint64
	Extra      []byte
}

// Hash returns the block hash of the header, which is the keccak256 hash of
// its RLP encoding.
func (h *Header) Hash() common.Hash {
	var buf bytes.Buffer
	h.encodeRLP(&buf)
	return crypto.Keccak256Hash(buf.Bytes())
}

func (h *Header) encodeRLP(w *bytes.Buffer) {
	rlp.EncodeList(w, func(payload *bytes.Buffer) {
		rlp.EncodeString(payload, h.ParentHash.Bytes())
		rlp.EncodeString(payload, h.Coinbase.Bytes())
		rlp.EncodeString(payload, h.Root.Bytes())
		rlp.EncodeString(payload, h.TxHash.Bytes())
		rlp.EncodeUint64(payload, h.Number)
		rlp.EncodeUint64(payload, h.GasLimit)
		rlp.EncodeUint64(payload, h.GasUsed)
		rlp.EncodeUint64(payload, h.Time)
		rlp.EncodeString(payload, h.Extra)
	})
}

// Body is the collection of a block's payload items. Uncles and withdrawals
// are not modeled here.
type Body struct {
	Transactions []*Transaction
}

// Block represents an entire block in the chain.
type Block struct {
	header *Header
	body   *Body

	// cache of the block hash
	hash atomic.Pointer[common.Hash]
}

// NewBlock creates a block from a header and body. The header is used as is;
// derived fields are the caller's responsibility.
func NewBlock(header *Header, body *Body) *Block {
	if body == nil {
		body = &Body{}
	}
	return &Block{header: header, body: body}
}

func (b *Block) Header() *Header { return b.header }
func (b *Block) Body() *Body     { return b.body }

func (b *Block) Number() uint64           { return b.header.Number }
func (b *Block) GasUsed() uint64          { return b.header.GasUsed }
func (b *Block) GasLimit() uint64         { return b.header.GasLimit }
func (b *Block) Time() uint64             { return b.header.Time }
func (b *Block) Root() common.Hash        { return b.header.Root }
func (b *Block) ParentHash() common.Hash  { return b.header.ParentHash }
func (b *Block) Coinbase() common.Address { return b.header.Coinbase }

func (b *Block) Transactions() []*Transaction { return b.body.Transactions }

// Hash returns the keccak256 hash of b's header. The hash is computed on the
// first call and cached thereafter.
func (b *Block) Hash() common.Hash {
	if hash := b.hash.Load(); hash != nil {
		return *hash
	}
	h := b.header.Hash()
	b.hash.Store(&h)
	return h
}

// BlockWithSenders couples a block with the recovered sender of each of its
// transactions. Senders may be nil when the block came out of a store that
// does not persist them; recovery is then the reader's job.
type BlockWithSenders struct {
	*Block
	Senders []common.Address
}

// NewBlockWithSenders pairs a block with its recovered senders, enforcing
// that every transaction has one.
func NewBlockWithSenders(block *Block, senders []common.Address) (*BlockWithSenders, error) {
	if len(senders) != len(block.Transactions()) {
		return nil, fmt.Errorf("sender count mismatch: %d senders for %d transactions in block %d",
			len(senders), len(block.Transactions()), block.Number())
	}
	return &BlockWithSenders{Block: block, Senders: senders}, nil
}

// HasSenders reports whether senders are attached for every transaction.
func (b *BlockWithSenders) HasSenders() bool {
	return len(b.Senders) == len(b.Transactions())
}

// RecoverSenders attaches senders recovered with the given signer, using the
// strict path. Already attached senders are kept.
func (b *BlockWithSenders) RecoverSenders(signer Signer) error {
	if b.HasSenders() {
		return nil
	}
	senders := make([]common.Address, len(b.Transactions()))
	for i, tx := range b.Transactions() {
		from, err := Sender(signer, tx)
		if err != nil {
			return fmt.Errorf("recovering sender for txn %x in block %d: %w", tx.Hash(), b.Number(), err)
		}
		senders[i] = from
	}
	b.Senders = senders
	return nil
}

// RecoverSendersUnchecked is RecoverSenders without the low-s signature
// check, sharing one scratch buffer across the block's transactions.
func (b *BlockWithSenders) RecoverSendersUnchecked(signer Signer) error {
	if b.HasSenders() {
		return nil
	}
	senders := make([]common.Address, len(b.Transactions()))
	buf := new(bytes.Buffer)
	for i, tx := range b.Transactions() {
		from, err := SenderUnchecked(signer, tx, buf)
		if err != nil {
			return fmt.Errorf("recovering sender for txn %x in block %d: %w", tx.Hash(), b.Number(), err)
		}
		senders[i] = from
	}
	b.Senders = senders
	return nil
}

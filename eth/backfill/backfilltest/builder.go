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

package backfilltest

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/holiman/uint256"

	"github.com/chainexec/chainexec/common"
	"github.com/chainexec/chainexec/core/state"
	"github.com/chainexec/chainexec/core/types"
	"github.com/chainexec/chainexec/crypto"
)

// Coinbase collects the fees of every built block.
var Coinbase = common.HexToAddress("0x00000000000000000000000000000000c01bba5e")

// ChainBuilder produces a chain of signed value-transfer blocks with
// deterministic keys and gas accounting, together with the matching state
// snapshots. Transfers go round-robin between the funded accounts.
type ChainBuilder struct {
	signer   types.Signer
	keys     []*secp256k1.PrivateKey
	addrs    []common.Address
	balances map[common.Address]*state.Account
}

// NewChainBuilder funds numAccounts deterministic accounts with seedBalance
// wei each. Keys are the scalars 1..numAccounts, so runs are reproducible.
func NewChainBuilder(numAccounts int, seedBalance uint64) (*ChainBuilder, error) {
	if numAccounts < 2 {
		return nil, fmt.Errorf("need at least two accounts to transfer between")
	}
	b := &ChainBuilder{
		signer:   types.LatestSigner(types.TestChainConfig),
		balances: make(map[common.Address]*state.Account),
	}
	for i := 0; i < numAccounts; i++ {
		key, err := crypto.HexToECDSA(fmt.Sprintf("%064x", i+1))
		if err != nil {
			return nil, err
		}
		addr := crypto.PubkeyToAddress(key.PubKey())
		b.keys = append(b.keys, key)
		b.addrs = append(b.addrs, addr)
		b.balances[addr] = &state.Account{Balance: *uint256.NewInt(seedBalance)}
	}
	b.balances[Coinbase] = &state.Account{}
	return b, nil
}

// Signer returns the signer the builder signs with.
func (b *ChainBuilder) Signer() types.Signer { return b.signer }

// Addresses returns the funded accounts, coinbase excluded.
func (b *ChainBuilder) Addresses() []common.Address { return b.addrs }

// Build constructs blocks 1..numBlocks with txsPerBlock transfers each and
// loads them, plus the genesis and per-block state snapshots, into a fresh
// provider.
func (b *ChainBuilder) Build(numBlocks, txsPerBlock int) (*MemoryProvider, error) {
	provider := NewMemoryProvider()
	provider.PutState(0, b.balances)

	genesis := types.NewBlock(&types.Header{Number: 0, Coinbase: Coinbase}, nil)
	genesisBlock, err := types.NewBlockWithSenders(genesis, nil)
	if err != nil {
		return nil, err
	}
	provider.PutBlock(genesisBlock)

	parentHash := genesis.Hash()
	gasPrice := uint256.NewInt(1)
	txIndex := 0
	for number := uint64(1); number <= uint64(numBlocks); number++ {
		var (
			txs     []*types.Transaction
			senders []common.Address
		)
		for i := 0; i < txsPerBlock; i++ {
			from := txIndex % len(b.addrs)
			to := (txIndex + 1) % len(b.addrs)
			txIndex++

			sender := b.addrs[from]
			recipient := b.addrs[to]
			value := uint256.NewInt(1)

			tx := types.NewTransaction(b.balances[sender].Nonce, recipient, value, TxGas, gasPrice, nil)
			signed, err := types.SignTx(tx, b.signer, b.keys[from])
			if err != nil {
				return nil, err
			}
			txs = append(txs, signed)
			senders = append(senders, sender)

			// mirror the transfer executor's accounting
			var fee, cost uint256.Int
			fee.Mul(gasPrice, uint256.NewInt(TxGas))
			cost.Add(value, &fee)
			b.balances[sender].Nonce++
			b.balances[sender].Balance.Sub(&b.balances[sender].Balance, &cost)
			b.balances[recipient].Balance.Add(&b.balances[recipient].Balance, value)
			b.balances[Coinbase].Balance.Add(&b.balances[Coinbase].Balance, &fee)
		}

		header := &types.Header{
			ParentHash: parentHash,
			Coinbase:   Coinbase,
			Number:     number,
			GasLimit:   uint64(txsPerBlock+1) * TxGas,
			GasUsed:    uint64(txsPerBlock) * TxGas,
			Time:       number * 12,
		}
		block := types.NewBlock(header, &types.Body{Transactions: txs})
		withSenders, err := types.NewBlockWithSenders(block, senders)
		if err != nil {
			return nil, err
		}
		provider.PutBlock(withSenders)
		provider.PutState(number, b.balances)
		parentHash = block.Hash()
	}
	return provider, nil
}

// TotalBalance sums every account balance in the builder's current state,
// coinbase included. Transfers conserve it.
func (b *ChainBuilder) TotalBalance() *uint256.Int {
	total := new(uint256.Int)
	for _, acc := range b.balances {
		total.Add(total, &acc.Balance)
	}
	return total
}

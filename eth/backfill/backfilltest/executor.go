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
	"context"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/chainexec/chainexec/common"
	"github.com/chainexec/chainexec/core/state"
	"github.com/chainexec/chainexec/core/types"
	"github.com/chainexec/chainexec/turbo/services"
	"github.com/chainexec/chainexec/turbo/shards"
)

// TxGas is the gas cost of one value transfer.
const TxGas uint64 = 21_000

// TransferExecutorFactory builds executors that understand only plain value
// transfers: nonce bump, balance moves, fee to the coinbase, TxGas per
// transaction. Enough to drive every backfill code path with real state
// diffs.
type TransferExecutorFactory struct{}

func (TransferExecutorFactory) Executor(view state.Reader) services.BlockExecutor {
	return &transferExecutor{
		view:      view,
		overlay:   make(map[common.Address]*state.Account),
		changeSet: state.NewChangeSet(),
	}
}

type transferExecutor struct {
	view      state.Reader
	overlay   map[common.Address]*state.Account
	changeSet *state.ChangeSet
}

// account returns the current state of addr, reading through the overlay of
// earlier blocks in the batch.
func (e *transferExecutor) account(addr common.Address) (*state.Account, error) {
	if acc, ok := e.overlay[addr]; ok {
		return acc, nil
	}
	acc, err := e.view.ReadAccountData(addr)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		acc = &state.Account{}
	}
	e.overlay[addr] = acc
	return acc, nil
}

// original returns the pre-batch state of addr for change set recording.
func (e *transferExecutor) original(addr common.Address) (*state.Account, error) {
	if change := e.changeSet.Account(addr); change != nil {
		return change.Original, nil
	}
	return e.view.ReadAccountData(addr)
}

func (e *transferExecutor) touch(addr common.Address) error {
	original, err := e.original(addr)
	if err != nil {
		return err
	}
	e.changeSet.TouchAccount(addr, original, e.overlay[addr])
	return nil
}

func (e *transferExecutor) ExecuteBlock(ctx context.Context, block *types.BlockWithSenders) (*shards.ExecutionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !block.HasSenders() {
		return nil, fmt.Errorf("block %d has no recovered senders", block.Number())
	}

	var (
		receipts      types.Receipts
		cumulativeGas uint64
		cost          uint256.Int
		fee           uint256.Int
	)
	coinbase := block.Coinbase()
	for i, tx := range block.Transactions() {
		sender, err := e.account(block.Senders[i])
		if err != nil {
			return nil, err
		}
		if sender.Nonce != tx.Nonce {
			return nil, fmt.Errorf("nonce mismatch for %s: have %d, want %d",
				block.Senders[i], tx.Nonce, sender.Nonce)
		}
		fee.Mul(tx.GasPrice, uint256.NewInt(TxGas))
		cost.Add(tx.Value, &fee)
		if sender.Balance.Lt(&cost) {
			return nil, fmt.Errorf("insufficient balance for %s in block %d", block.Senders[i], block.Number())
		}

		sender.Nonce++
		sender.Balance.Sub(&sender.Balance, &cost)
		if tx.To == nil {
			return nil, fmt.Errorf("contract creation not supported")
		}
		recipient, err := e.account(*tx.To)
		if err != nil {
			return nil, err
		}
		recipient.Balance.Add(&recipient.Balance, tx.Value)
		miner, err := e.account(coinbase)
		if err != nil {
			return nil, err
		}
		miner.Balance.Add(&miner.Balance, &fee)

		for _, addr := range []common.Address{block.Senders[i], *tx.To, coinbase} {
			if err := e.touch(addr); err != nil {
				return nil, err
			}
		}

		cumulativeGas += TxGas
		receipts = append(receipts, &types.Receipt{
			Status:            types.ReceiptStatusSuccessful,
			CumulativeGasUsed: cumulativeGas,
			TxHash:            tx.Hash(),
			GasUsed:           TxGas,
			BlockNumber:       block.Number(),
			TransactionIndex:  uint(i),
		})
	}

	if got, want := cumulativeGas, block.GasUsed(); got != want {
		return nil, fmt.Errorf("gas used mismatch in block %d: have %d, want %d", block.Number(), got, want)
	}
	return &shards.ExecutionResult{Receipts: receipts, GasUsed: cumulativeGas}, nil
}

func (e *transferExecutor) ChangeSet() *state.ChangeSet { return e.changeSet }

func (e *transferExecutor) SizeHint() uint64 { return e.changeSet.EstimatedSize() }

// FailingExecutorFactory behaves like TransferExecutorFactory until FailAt,
// where ExecuteBlock returns Err.
type FailingExecutorFactory struct {
	FailAt uint64
	Err    error
}

func (f FailingExecutorFactory) Executor(view state.Reader) services.BlockExecutor {
	return &failingExecutor{inner: TransferExecutorFactory{}.Executor(view), failAt: f.FailAt, err: f.Err}
}

type failingExecutor struct {
	inner  services.BlockExecutor
	failAt uint64
	err    error
}

func (f *failingExecutor) ExecuteBlock(ctx context.Context, block *types.BlockWithSenders) (*shards.ExecutionResult, error) {
	if block.Number() == f.failAt {
		return nil, f.err
	}
	return f.inner.ExecuteBlock(ctx, block)
}

func (f *failingExecutor) ChangeSet() *state.ChangeSet { return f.inner.ChangeSet() }

func (f *failingExecutor) SizeHint() uint64 { return f.inner.SizeHint() }

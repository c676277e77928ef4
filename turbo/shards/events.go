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

package shards

import (
	"fmt"
	"sync"

	"github.com/ledgerwatch/log/v3"
)

// NotificationChannelSize is the per-subscriber buffer. A subscriber that
// falls more than this many notifications behind is dropped.
const NotificationChannelSize = 100

// ChainNotification describes a canonical chain-state transition. Exactly one
// shape per event: a commit carries only New, a reorg carries both Old and
// New. Payloads are shared across all subscribers and must not be mutated.
type ChainNotification struct {
	// Old is the chain segment that left the canonical chain. Nil on commits.
	Old *Chain
	// New is the segment that became canonical.
	New *Chain
}

// Reorg reports whether the notification unwound any blocks.
func (n ChainNotification) Reorg() bool { return n.Old != nil }

// Tip returns the new canonical tip carried by the notification.
func (n ChainNotification) Tip() uint64 { return n.New.Tip().Number() }

// ChainEvents fans canonical-state notifications out to subscribers. Sends
// never block: a subscriber whose buffer is full is pruned, its channel
// closed. There is no replay; a new subscriber sees only what happens after
// it subscribed.
type ChainEvents struct {
	mu               sync.Mutex
	id               int
	capacity         int
	chainSubscribers map[int]chan ChainNotification
	logger           log.Logger
}

// NewChainEvents creates the hub with the default subscriber buffer.
func NewChainEvents(logger log.Logger) *ChainEvents {
	return NewChainEventsWithCapacity(logger, NotificationChannelSize)
}

// NewChainEventsWithCapacity creates the hub with a custom subscriber buffer.
func NewChainEventsWithCapacity(logger log.Logger, capacity int) *ChainEvents {
	if capacity <= 0 {
		capacity = NotificationChannelSize
	}
	return &ChainEvents{
		capacity:         capacity,
		chainSubscribers: map[int]chan ChainNotification{},
		logger:           logger,
	}
}

// SubscribeChainEvents registers a subscriber. The returned function removes
// the subscription and closes the channel; it is safe to call more than once.
func (e *ChainEvents) SubscribeChainEvents() (<-chan ChainNotification, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ch := make(chan ChainNotification, e.capacity)
	id := e.id
	e.id++
	e.chainSubscribers[id] = ch
	return ch, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if sub, ok := e.chainSubscribers[id]; ok {
			delete(e.chainSubscribers, id)
			close(sub)
		}
	}
}

// SubscriberCount returns the number of live subscriptions.
func (e *ChainEvents) SubscriberCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.chainSubscribers)
}

// NotifyCommit publishes a commit of new canonical blocks.
func (e *ChainEvents) NotifyCommit(newChain *Chain) error {
	if newChain == nil || newChain.Len() == 0 {
		return fmt.Errorf("commit notification requires a non-empty chain")
	}
	e.send(ChainNotification{New: newChain})
	return nil
}

// NotifyReorg publishes a reorg that replaced old with new.
func (e *ChainEvents) NotifyReorg(oldChain, newChain *Chain) error {
	if oldChain == nil || oldChain.Len() == 0 {
		return fmt.Errorf("reorg notification requires a non-empty old chain")
	}
	if newChain == nil || newChain.Len() == 0 {
		return fmt.Errorf("reorg notification requires a non-empty new chain")
	}
	e.send(ChainNotification{Old: oldChain, New: newChain})
	return nil
}

func (e *ChainEvents) send(notification ChainNotification) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for id, sub := range e.chainSubscribers {
		select {
		case sub <- notification:
		default:
			// subscriber stopped draining, cut it loose
			delete(e.chainSubscribers, id)
			close(sub)
			if e.logger != nil {
				e.logger.Warn("[events] dropping slow chain events subscriber", "id", id)
			}
		}
	}
}

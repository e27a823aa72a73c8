// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"

	"github.com/bitmark-inc/ledgerd/counter"
	"github.com/bitmark-inc/ledgerd/digest"
)

// internal constants
const (
	defaultQueueSize = 100
)

// commands
const (
	CommandNewBlock   = "block"
	CommandTxPoolStat = "txpool"
)

// Message - one broadcast item
type Message struct {
	Command string
	Item    interface{}
}

// NewBlock - a block was committed
type NewBlock struct {
	Height uint64
	Hash   digest.Digest
}

// TxPoolStat - transactions still waiting in the pool after a commit
type TxPoolStat struct {
	TxHashes []digest.Digest
}

// Broadcast - fan out queue
type Broadcast struct {
	sync.RWMutex
	listeners []chan Message
	dropped   counter.Counter
}

// New - create an empty broadcast queue
func New() *Broadcast {
	return &Broadcast{}
}

// Chan - register a listener, size 0 selects the default queue size
func (b *Broadcast) Chan(size int) <-chan Message {
	if size <= 0 {
		size = defaultQueueSize
	}
	c := make(chan Message, size)

	b.Lock()
	b.listeners = append(b.listeners, c)
	b.Unlock()
	return c
}

// Release - remove a listener and close its channel
func (b *Broadcast) Release(listener <-chan Message) {
	b.Lock()
	defer b.Unlock()

	for i, c := range b.listeners {
		if (<-chan Message)(c) == listener {
			close(c)
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Send - queue a message to every listener without waiting
func (b *Broadcast) Send(command string, item interface{}) {
	m := Message{
		Command: command,
		Item:    item,
	}

	b.RLock()
	defer b.RUnlock()

	for _, c := range b.listeners {
		select {
		case c <- m:
		default:
			b.dropped.Increment()
		}
	}
}

// SendNewBlock - announce a committed block
func (b *Broadcast) SendNewBlock(height uint64, hash digest.Digest) {
	b.Send(CommandNewBlock, NewBlock{Height: height, Hash: hash})
}

// SendTxPoolStat - announce the remaining pool contents
func (b *Broadcast) SendTxPoolStat(txHashes []digest.Digest) {
	b.Send(CommandTxPoolStat, TxPoolStat{TxHashes: txHashes})
}

// Dropped - number of messages a full listener did not receive
func (b *Broadcast) Dropped() uint64 {
	return b.dropped.Uint64()
}

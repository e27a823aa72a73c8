// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

const (
	defaultExpiration = 2 * time.Minute
	cleanupInterval   = 1 * time.Minute
)

// decoded blocks and transactions
//
// entities are never rewritten once committed, so entries only expire;
// copies go in and come out so no caller can alter a cached entity
type entityCache struct {
	blocks *cache.Cache
	txs    *cache.Cache
}

func newEntityCache() *entityCache {
	return &entityCache{
		blocks: cache.New(defaultExpiration, cleanupInterval),
		txs:    cache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *entityCache) block(hash digest.Digest) (*blockrecord.Block, bool) {
	if nil == c {
		return nil, false
	}
	obj, found := c.blocks.Get(string(hash[:]))
	if !found {
		return nil, false
	}
	return obj.(*blockrecord.Block).Copy(), true
}

func (c *entityCache) setBlock(b *blockrecord.Block) {
	if nil == c {
		return
	}
	c.blocks.SetDefault(string(b.Hash[:]), b.Copy())
}

func (c *entityCache) tx(hash digest.Digest) (*transactionrecord.Transaction, bool) {
	if nil == c {
		return nil, false
	}
	obj, found := c.txs.Get(string(hash[:]))
	if !found {
		return nil, false
	}
	return obj.(*transactionrecord.Transaction).Copy(), true
}

func (c *entityCache) setTx(hash digest.Digest, tx *transactionrecord.Transaction) {
	if nil == c {
		return
	}
	c.txs.SetDefault(string(hash[:]), tx.Copy())
}

func (c *entityCache) flush() {
	c.blocks.Flush()
	c.txs.Flush()
}

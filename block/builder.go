// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/contract"
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// builder - everything staged for one block, discarded after use
//
// all reads go through one snapshot so validation sees a single
// consistent ledger state
type builder struct {
	view *storage.View

	hash   digest.Digest
	height uint64

	latest    uint64 // height of the newest committed block
	hasLatest bool

	sns    map[digest.Digest]struct{} // spent within this block
	cms    map[digest.Digest]struct{} // committed within this block
	txs    map[digest.Digest]struct{} // transactions within this block
	states []*contract.Result

	// the transaction that caused a rejection, only dropped from the
	// pool when the candidate was assembled from the pool
	offender    digest.Digest
	hasOffender bool
	pooled      bool

	firstCmIdx   uint64
	nextCmIdx    uint64
	update       *merkle.Update
	transactions []*transactionrecord.Transaction
	block        *blockrecord.Block
}

func (p *Pipeline) newBuilder(candidate *blockrecord.Candidate, pooled bool) (*builder, error) {
	view, err := p.store.Snapshot()
	if nil != err {
		return nil, err
	}

	latest, found, err := view.GetLatestBlockHeight()
	if nil != err {
		view.Release()
		return nil, err
	}

	height := uint64(0)
	if found {
		height = latest + 1
	}

	return &builder{
		view:      view,
		hash:      candidate.Hash(),
		height:    height,
		latest:    latest,
		hasLatest: found,
		sns:       make(map[digest.Digest]struct{}),
		cms:       make(map[digest.Digest]struct{}),
		txs:       make(map[digest.Digest]struct{}),
		pooled:    pooled,
	}, nil
}

func (b *builder) release() {
	b.view.Release()
}

// mark the transaction responsible for a rejection
func (b *builder) reject(txHash digest.Digest, err error) error {
	b.offender = txHash
	b.hasOffender = true
	return err
}

// stage - everything for the block goes into one batch
func (b *builder) stage(store *storage.Store) (*storage.Batch, error) {
	batch := store.NewBatch()

	batch.PutBlock(b.block)
	for _, tx := range b.transactions {
		if err := batch.PutTransaction(tx); nil != err {
			return nil, err
		}
	}
	b.update.Each(batch.PutMerkleNode)
	for _, state := range b.states {
		batch.PutCtrState(state.CtrAddr, state.State)
	}
	return batch, nil
}

// check - the candidate as a whole, before any transaction
func (p *Pipeline) check(b *builder, candidate *blockrecord.Candidate, allowEmpty bool) error {
	exists, err := b.view.Has(p.store.Pool.BlockEntity, b.hash[:])
	if nil != err {
		return err
	}
	if exists {
		return fault.DuplicateBlock(b.hash)
	}

	n := len(candidate.Transactions)
	if 0 == n && !allowEmpty {
		return fault.Rejected(fault.ErrEmptyCandidate, b.hash)
	}
	if n > blockrecord.MaximumTransactions {
		return fault.Rejected(fault.ErrInvalidCount, n)
	}
	return nil
}

// assign - give every new commitment the next leaf index, in
// transaction order, and compute the resulting root
func (p *Pipeline) assign(b *builder, candidate *blockrecord.Candidate) (digest.Digest, error) {
	next, err := b.view.GetNextCmIdx()
	if nil != err {
		return digest.Digest{}, err
	}

	b.firstCmIdx = next
	b.update = p.tree.NewUpdate(b.view)
	b.transactions = make([]*transactionrecord.Transaction, len(candidate.Transactions))

	for i, c := range candidate.Transactions {
		b.transactions[i] = transactionrecord.Upgrade(c, next)
		for _, cm := range c.Commitments() {
			if _, err := b.update.InsertLeaf(next, cm); nil != err {
				return digest.Digest{}, err
			}
			next += 1
		}
	}
	b.nextCmIdx = next

	return b.update.Root()
}

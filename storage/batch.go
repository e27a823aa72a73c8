// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
	"github.com/bitmark-inc/ledgerd/util"
)

// Batch - writes staged for one atomic commit
type Batch struct {
	pools  *Pools
	batch  *leveldb.Batch
	blocks []*blockrecord.Block
	txs    []*transactionrecord.Transaction
}

// NewBatch - start staging writes
func (s *Store) NewBatch() *Batch {
	return &Batch{
		pools: &s.Pool,
		batch: new(leveldb.Batch),
	}
}

// Put - stage a key/value bytes pair
func (b *Batch) Put(p *PoolHandle, key []byte, value []byte) {
	b.batch.Put(p.prefixKey(key), value)
}

// Len - number of staged writes
func (b *Batch) Len() int {
	return b.batch.Len()
}

// Commit - apply every staged write at once
//
// either all of the batch is visible to readers afterwards or none of it
func (s *Store) Commit(b *Batch) error {
	s.RLock()
	defer s.RUnlock()

	if nil == s.db {
		return fault.Storage("commit", fault.ErrNotInitialised)
	}

	err := s.db.Write(b.batch, &ldb_opt.WriteOptions{Sync: true})
	if nil != err {
		s.log.Criticalf("batch of: %d writes failed: %s", b.batch.Len(), err)
		return fault.Storage("commit", err)
	}

	for _, block := range b.blocks {
		s.cache.setBlock(block)
	}
	for _, tx := range b.txs {
		s.cache.setTx(tx.Hash(), tx)
	}
	return nil
}

// PutBlock - stage a block entity, its height index and its root
func (b *Batch) PutBlock(block *blockrecord.Block) {
	height := util.ToUint128BE(block.Height)
	b.Put(b.pools.BlockEntity, block.Hash[:], block.Pack())
	b.Put(b.pools.BlockByHeight, height, block.Hash[:])
	b.Put(b.pools.RootSeen, block.MerkleRt[:], height)
	b.blocks = append(b.blocks, block)
}

// PutTransaction - stage a transaction entity and all of its indexes
func (b *Batch) PutTransaction(tx *transactionrecord.Transaction) error {
	packed, err := tx.Pack()
	if nil != err {
		return err
	}

	hash := tx.Hash()
	tag := tx.Type()

	b.Put(b.pools.TxType, hash[:], util.ToVarint64(uint64(tag)))
	switch tag {
	case transactionrecord.MintTag:
		b.Put(b.pools.MintTxEntity, hash[:], packed)
	case transactionrecord.PourTag:
		b.Put(b.pools.PourTxEntity, hash[:], packed)
		for _, sn := range tx.Candidate.(*transactionrecord.PourCandidate).Sns {
			b.Put(b.pools.SnSeen, sn[:], hash[:])
		}
	}

	for i, cm := range tx.Candidate.Commitments() {
		idx := util.ToUint128BE(tx.CmIndexes[i])
		b.Put(b.pools.CmToCmIdx, cm[:], idx)
		b.Put(b.pools.CmIdxToCm, idx, cm[:])
	}

	if base := tx.Candidate.Base(); transactionrecord.CtrDeploy == base.CtrOp() {
		b.Put(b.pools.TxHashByCtrAddr, []byte(base.CtrAddr), hash[:])
	}

	b.txs = append(b.txs, tx)
	return nil
}

// PutMerkleNode - stage a commitment tree node
func (b *Batch) PutMerkleNode(location string, node digest.Digest) {
	b.Put(b.pools.MerkleNode, []byte(location), node[:])
}

// PutCtrState - stage new contract state
func (b *Batch) PutCtrState(ctrAddr string, state []byte) {
	b.Put(b.pools.CtrState, []byte(ctrAddr), state)
}

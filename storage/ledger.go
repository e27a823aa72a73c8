// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
	"github.com/bitmark-inc/ledgerd/util"
)

// all lookups report a missing item as found == false (or a nil
// pointer) with a nil error, errors are reserved for storage and
// integrity failures

func (v *View) getDigest(p *PoolHandle, key []byte) (digest.Digest, bool, error) {
	value, err := v.Get(p, key)
	if nil != err || nil == value {
		return digest.Digest{}, false, err
	}
	var d digest.Digest
	if err := digest.FromBytes(&d, value); nil != err {
		return digest.Digest{}, false, fault.Integrity(p.name, key, err)
	}
	return d, true, nil
}

func (v *View) getIndex(p *PoolHandle, key []byte) (uint64, bool, error) {
	value, err := v.Get(p, key)
	if nil != err || nil == value {
		return 0, false, err
	}
	n, err := util.FromUint128BE(value)
	if nil != err {
		return 0, false, fault.Integrity(p.name, key, err)
	}
	return n, true, nil
}

// GetLatestBlockHeight - height of the newest block
func (v *View) GetLatestBlockHeight() (uint64, bool, error) {
	p := v.store.Pool.BlockByHeight
	last, found, err := p.lastElement(v.reader)
	if nil != err || !found {
		return 0, false, err
	}
	height, err := util.FromUint128BE(last.Key)
	if nil != err {
		return 0, false, fault.Integrity(p.name, last.Key, err)
	}
	return height, true, nil
}

// GetBlockHashByHeight - hash of the block at a height
func (v *View) GetBlockHashByHeight(height uint64) (digest.Digest, bool, error) {
	return v.getDigest(v.store.Pool.BlockByHeight, util.ToUint128BE(height))
}

// GetBlock - block entity, nil if absent
//
// the result belongs to the caller
func (v *View) GetBlock(hash digest.Digest) (*blockrecord.Block, error) {
	if b, ok := v.cache.block(hash); ok {
		return b, nil
	}

	p := v.store.Pool.BlockEntity
	value, err := v.Get(p, hash[:])
	if nil != err || nil == value {
		return nil, err
	}
	b, err := blockrecord.PackedBlock(value).Unpack(hash[:])
	if nil != err {
		return nil, fault.Integrity(p.name, hash[:], err)
	}
	v.cache.setBlock(b)
	return b, nil
}

// GetBlockByHeight - block at a height, nil if absent
func (v *View) GetBlockByHeight(height uint64) (*blockrecord.Block, error) {
	hash, found, err := v.GetBlockHashByHeight(height)
	if nil != err || !found {
		return nil, err
	}
	b, err := v.GetBlock(hash)
	if nil != err {
		return nil, err
	}
	if nil == b {
		// the height index points at a block that is not stored
		return nil, fault.Integrity(v.store.Pool.BlockEntity.name, hash[:], fault.ErrCannotDecodeBlock)
	}
	return b, nil
}

// GetLatestBlock - newest block, nil before genesis
func (v *View) GetLatestBlock() (*blockrecord.Block, error) {
	height, found, err := v.GetLatestBlockHeight()
	if nil != err || !found {
		return nil, err
	}
	return v.GetBlockByHeight(height)
}

// GetLatestBlockHash - hash of the newest block
func (v *View) GetLatestBlockHash() (digest.Digest, bool, error) {
	b, err := v.GetLatestBlock()
	if nil != err || nil == b {
		return digest.Digest{}, false, err
	}
	return b.Hash, true, nil
}

// GetLatestBlockMerkleRt - commitment tree root after the newest block
func (v *View) GetLatestBlockMerkleRt() (digest.Digest, bool, error) {
	b, err := v.GetLatestBlock()
	if nil != err || nil == b {
		return digest.Digest{}, false, err
	}
	return b.MerkleRt, true, nil
}

// GetBlocks - blocks for a list of hashes, absent hashes are skipped
func (v *View) GetBlocks(hashes []digest.Digest) ([]*blockrecord.Block, error) {
	blocks := make([]*blockrecord.Block, 0, len(hashes))
	for _, hash := range hashes {
		b, err := v.GetBlock(hash)
		if nil != err {
			return nil, err
		}
		if nil != b {
			blocks = append(blocks, b)
		}
	}
	return blocks, nil
}

// GetBlockList - up to limit blocks in height order starting at offset
func (v *View) GetBlockList(offset uint64, limit int) ([]*blockrecord.Block, error) {
	if limit <= 0 {
		return nil, fault.ErrInvalidCount
	}

	cursor := v.NewFetchCursor(v.store.Pool.BlockByHeight).Seek(util.ToUint128BE(offset))
	items, err := cursor.Fetch(limit)
	if nil != err {
		return nil, err
	}
	return v.blocksFromIndex(items)
}

// GetAllBlocks - every block in height order
func (v *View) GetAllBlocks() ([]*blockrecord.Block, error) {
	items := make([]Element, 0)
	err := v.NewFetchCursor(v.store.Pool.BlockByHeight).Map(func(key []byte, value []byte) error {
		items = append(items, Element{Key: key, Value: value})
		return nil
	})
	if nil != err {
		return nil, err
	}
	return v.blocksFromIndex(items)
}

func (v *View) blocksFromIndex(items []Element) ([]*blockrecord.Block, error) {
	p := v.store.Pool.BlockByHeight
	blocks := make([]*blockrecord.Block, 0, len(items))
	for _, item := range items {
		var hash digest.Digest
		if err := digest.FromBytes(&hash, item.Value); nil != err {
			return nil, fault.Integrity(p.name, item.Key, err)
		}
		b, err := v.GetBlock(hash)
		if nil != err {
			return nil, err
		}
		if nil == b {
			return nil, fault.Integrity(p.name, item.Key, fault.ErrCannotDecodeBlock)
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// GetTxType - read the discriminant of a committed transaction
func (v *View) GetTxType(hash digest.Digest) (transactionrecord.TagType, bool, error) {
	p := v.store.Pool.TxType
	value, err := v.Get(p, hash[:])
	if nil != err || nil == value {
		return transactionrecord.NullTag, false, err
	}
	tag := transactionrecord.Packed(value).Type()
	if transactionrecord.NullTag == tag {
		return transactionrecord.NullTag, false, fault.Integrity(p.name, hash[:], fault.ErrInvalidTransactionType)
	}
	return tag, true, nil
}

// HasTx - check whether a transaction is committed
func (v *View) HasTx(hash digest.Digest) (bool, error) {
	return v.Has(v.store.Pool.TxType, hash[:])
}

// GetTx - committed transaction, nil if absent
//
// the type column selects the entity column to decode from; the
// result belongs to the caller
func (v *View) GetTx(hash digest.Digest) (*transactionrecord.Transaction, error) {
	if tx, ok := v.cache.tx(hash); ok {
		return tx, nil
	}

	tag, found, err := v.GetTxType(hash)
	if nil != err || !found {
		return nil, err
	}

	var p *PoolHandle
	switch tag {
	case transactionrecord.MintTag:
		p = v.store.Pool.MintTxEntity
	case transactionrecord.PourTag:
		p = v.store.Pool.PourTxEntity
	}

	value, err := v.Get(p, hash[:])
	if nil != err {
		return nil, err
	}
	if nil == value {
		return nil, fault.Integrity(p.name, hash[:], fault.ErrCannotDecodeTransaction)
	}

	tx, err := transactionrecord.Packed(value).Unpack()
	if nil != err {
		return nil, fault.Integrity(p.name, hash[:], err)
	}
	if tag != tx.Type() || hash != tx.Hash() {
		return nil, fault.Integrity(p.name, hash[:], fault.ErrCannotDecodeTransaction)
	}
	v.cache.setTx(hash, tx)
	return tx, nil
}

// GetTxs - transactions for a list of hashes, absent hashes are skipped
func (v *View) GetTxs(hashes []digest.Digest) ([]*transactionrecord.Transaction, error) {
	txs := make([]*transactionrecord.Transaction, 0, len(hashes))
	for _, hash := range hashes {
		tx, err := v.GetTx(hash)
		if nil != err {
			return nil, err
		}
		if nil != tx {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}

// GetCmIdxByCm - leaf index of a commitment
func (v *View) GetCmIdxByCm(cm digest.Digest) (uint64, bool, error) {
	return v.getIndex(v.store.Pool.CmToCmIdx, cm[:])
}

// GetCmByCmIdx - commitment at a leaf index
func (v *View) GetCmByCmIdx(cmIdx uint64) (digest.Digest, bool, error) {
	return v.getDigest(v.store.Pool.CmIdxToCm, util.ToUint128BE(cmIdx))
}

// GetNextCmIdx - the index the next commitment will receive
func (v *View) GetNextCmIdx() (uint64, error) {
	p := v.store.Pool.CmIdxToCm
	last, found, err := p.lastElement(v.reader)
	if nil != err || !found {
		return 0, err
	}
	n, err := util.FromUint128BE(last.Key)
	if nil != err {
		return 0, fault.Integrity(p.name, last.Key, err)
	}
	return n + 1, nil
}

// HasSn - check whether a serial number has been spent
func (v *View) HasSn(sn digest.Digest) (bool, error) {
	return v.Has(v.store.Pool.SnSeen, sn[:])
}

// GetMerkleNode - committed commitment tree node
func (v *View) GetMerkleNode(location string) (digest.Digest, bool, error) {
	return v.getDigest(v.store.Pool.MerkleNode, []byte(location))
}

// GetRootHeight - height of the block whose root this is
func (v *View) GetRootHeight(rt digest.Digest) (uint64, bool, error) {
	return v.getIndex(v.store.Pool.RootSeen, rt[:])
}

// GetCtrState - contract state, nil if absent
func (v *View) GetCtrState(ctrAddr string) ([]byte, error) {
	return v.Get(v.store.Pool.CtrState, []byte(ctrAddr))
}

// GetTxHashByCtrAddr - transaction that deployed a contract
func (v *View) GetTxHashByCtrAddr(ctrAddr string) (digest.Digest, bool, error) {
	return v.getDigest(v.store.Pool.TxHashByCtrAddr, []byte(ctrAddr))
}

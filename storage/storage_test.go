// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
	"github.com/bitmark-inc/ledgerd/util"
)

func TestOpenReadOnly(t *testing.T) {
	s, name := setup(t)
	s.Close()

	r, err := storage.Open(name, storage.ReadOnly)
	require.Nil(t, err, "reopen read only")
	r.Close()

	_, err = storage.Open(name+"-missing", storage.ReadOnly)
	assert.NotNil(t, err, "read only must not create a database")
}

func TestEmptyLedger(t *testing.T) {
	s, _ := setup(t)

	_, found, err := s.GetLatestBlockHeight()
	assert.Nil(t, err)
	assert.False(t, found, "no blocks yet")

	b, err := s.GetLatestBlock()
	assert.Nil(t, err)
	assert.Nil(t, b)

	tx, err := s.GetTx(d("nothing"))
	assert.Nil(t, err, "absent is not an error")
	assert.Nil(t, tx)

	_, found, err = s.GetCmIdxByCm(d("cm"))
	assert.Nil(t, err)
	assert.False(t, found)

	next, err := s.GetNextCmIdx()
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), next)

	blocks, err := s.GetAllBlocks()
	assert.Nil(t, err)
	assert.Equal(t, 0, len(blocks))
}

func TestLedgerRoundTrip(t *testing.T) {
	s, _ := setup(t)

	rt0 := d("root-0")
	mint := makeMint("c1")
	genesis := commitBlock(t, s, 0, 0, rt0, mint)

	rt1 := d("root-1")
	pour := makePour("s1", rt0, "c2", "c3")
	second := commitBlock(t, s, 1, 1, rt1, pour)

	height, found, err := s.GetLatestBlockHeight()
	require.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(1), height)

	b, err := s.GetBlockByHeight(0)
	require.Nil(t, err)
	assert.Equal(t, genesis, b)

	b, err = s.GetBlock(second.Hash)
	require.Nil(t, err)
	assert.Equal(t, second, b)

	hash, found, err := s.GetLatestBlockHash()
	require.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, second.Hash, hash)

	root, found, err := s.GetLatestBlockMerkleRt()
	require.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, rt1, root)

	h, found, err := s.GetRootHeight(rt0)
	require.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(0), h)

	tag, found, err := s.GetTxType(pour.Hash())
	require.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, transactionrecord.PourTag, tag)

	tx, err := s.GetTx(mint.Hash())
	require.Nil(t, err)
	assert.Equal(t, transactionrecord.Upgrade(mint, 0), tx)

	tx, err = s.GetTx(pour.Hash())
	require.Nil(t, err)
	assert.Equal(t, []uint64{1, 2}, tx.CmIndexes)

	for i, cm := range []string{"c1", "c2", "c3"} {
		idx, found, err := s.GetCmIdxByCm(d(cm))
		require.Nil(t, err)
		assert.True(t, found, "cm: %s", cm)
		assert.Equal(t, uint64(i), idx, "cm: %s", cm)

		back, found, err := s.GetCmByCmIdx(uint64(i))
		require.Nil(t, err)
		assert.True(t, found)
		assert.Equal(t, d(cm), back)
	}

	next, err := s.GetNextCmIdx()
	require.Nil(t, err)
	assert.Equal(t, uint64(3), next)

	spent, err := s.HasSn(d("s1"))
	require.Nil(t, err)
	assert.True(t, spent)

	spent, err = s.HasSn(d("s2"))
	require.Nil(t, err)
	assert.False(t, spent)

	txHash, found, err := s.GetTxHashByCtrAddr("ctr-addr")
	require.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, pour.Hash(), txHash)

	txs, err := s.GetTxs([]digest.Digest{mint.Hash(), d("absent"), pour.Hash()})
	require.Nil(t, err)
	assert.Equal(t, 2, len(txs))

	blocks, err := s.GetBlocks([]digest.Digest{second.Hash, d("absent")})
	require.Nil(t, err)
	assert.Equal(t, 1, len(blocks))
}

func TestBlockList(t *testing.T) {
	s, _ := setup(t)

	for h := uint64(0); h < 5; h += 1 {
		commitBlock(t, s, h, h, d(string(rune('a'+h))), makeMint(string(rune('k'+h))))
	}

	blocks, err := s.GetBlockList(1, 3)
	require.Nil(t, err)
	require.Equal(t, 3, len(blocks))
	for i, b := range blocks {
		assert.Equal(t, uint64(i+1), b.Height)
	}

	blocks, err = s.GetBlockList(4, 10)
	require.Nil(t, err)
	assert.Equal(t, 1, len(blocks))

	_, err = s.GetBlockList(0, 0)
	assert.Equal(t, fault.ErrInvalidCount, err)

	all, err := s.GetAllBlocks()
	require.Nil(t, err)
	assert.Equal(t, 5, len(all))
}

func TestCursorPaging(t *testing.T) {
	s, _ := setup(t)

	batch := s.NewBatch()
	for i := 0; i < 10; i += 1 {
		batch.Put(s.Pool.CmIdxToCm, util.ToUint128BE(uint64(i)), []byte{byte(i)})
	}
	require.Nil(t, s.Commit(batch))

	cursor := s.Pool.CmIdxToCm.NewFetchCursor()
	seen := 0
	for {
		items, err := cursor.Fetch(3)
		require.Nil(t, err)
		if 0 == len(items) {
			break
		}
		for _, item := range items {
			assert.Equal(t, []byte{byte(seen)}, item.Value)
			seen += 1
		}
	}
	assert.Equal(t, 10, seen)

	last, found, err := s.Pool.CmIdxToCm.LastElement()
	require.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte{9}, last.Value)

	_, err = cursor.Fetch(0)
	assert.Equal(t, fault.ErrInvalidCount, err)
}

func TestBatchIsAtomic(t *testing.T) {
	s, _ := setup(t)

	batch := s.NewBatch()
	batch.PutMerkleNode("0_0", d("leaf"))
	batch.PutCtrState("ctr", []byte("state"))
	assert.Equal(t, 2, batch.Len())

	// nothing visible before commit
	_, found, err := s.GetMerkleNode("0_0")
	require.Nil(t, err)
	assert.False(t, found)

	require.Nil(t, s.Commit(batch))

	node, found, err := s.GetMerkleNode("0_0")
	require.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, d("leaf"), node)

	state, err := s.GetCtrState("ctr")
	require.Nil(t, err)
	assert.Equal(t, []byte("state"), state)
}

func TestSnapshotIsolation(t *testing.T) {
	s, _ := setup(t)

	commitBlock(t, s, 0, 0, d("rt0"), makeMint("c1"))

	snap, err := s.Snapshot()
	require.Nil(t, err)
	defer snap.Release()

	later := commitBlock(t, s, 1, 1, d("rt1"), makeMint("c2"))

	height, _, err := snap.GetLatestBlockHeight()
	require.Nil(t, err)
	assert.Equal(t, uint64(0), height, "snapshot must not see later blocks")

	b, err := snap.GetBlock(later.Hash)
	require.Nil(t, err)
	assert.Nil(t, b)

	height, _, err = s.GetLatestBlockHeight()
	require.Nil(t, err)
	assert.Equal(t, uint64(1), height)
}

func TestIntegrityFailures(t *testing.T) {
	s, _ := setup(t)

	hash := d("bad")
	batch := s.NewBatch()
	batch.Put(s.Pool.BlockEntity, hash[:], []byte{0x01})
	batch.Put(s.Pool.TxType, hash[:], []byte{0x09})
	batch.Put(s.Pool.CmToCmIdx, hash[:], []byte{0x01, 0x02})
	require.Nil(t, s.Commit(batch))

	_, err := s.GetBlock(hash)
	assert.True(t, fault.IsIntegrity(err), "block: %v", err)

	_, err = s.GetTx(hash)
	assert.True(t, fault.IsIntegrity(err), "tx: %v", err)

	_, _, err = s.GetCmIdxByCm(hash)
	assert.True(t, fault.IsIntegrity(err), "cm index: %v", err)
	assert.False(t, fault.IsStorage(err))
}

func TestClosedStore(t *testing.T) {
	s, _ := setup(t)
	s.Close()

	err := s.Commit(s.NewBatch())
	assert.True(t, fault.IsStorage(err))

	_, err = s.Snapshot()
	assert.True(t, fault.IsStorage(err))
}

func TestCachedEntitiesAreCopies(t *testing.T) {
	s, _ := setup(t)

	pour := makePour("s1", d("root-0"), "c2", "c3")
	block := commitBlock(t, s, 0, 0, d("root-0"), makeMint("c1"), pour)
	expected := *block
	expected.TxHashes = append([]digest.Digest{}, block.TxHashes...)

	// the committed record itself is not cached
	block.TxHashes[0] = d("changed")

	b, err := s.GetBlock(block.Hash)
	require.Nil(t, err)
	require.NotNil(t, b)
	assert.Equal(t, expected.TxHashes, b.TxHashes)

	b.TxHashes[1] = d("changed")
	b.Height = 99

	again, err := s.GetBlock(block.Hash)
	require.Nil(t, err)
	assert.Equal(t, expected.TxHashes, again.TxHashes)
	assert.Equal(t, uint64(0), again.Height)

	tx, err := s.GetTx(pour.Hash())
	require.Nil(t, err)
	require.NotNil(t, tx)

	tx.CmIndexes[0] = 7
	stored := tx.Candidate.(*transactionrecord.PourCandidate)
	stored.Sns[0] = d("changed")
	stored.Data[0] = 0xff

	tx, err = s.GetTx(pour.Hash())
	require.Nil(t, err)
	assert.Equal(t, []uint64{1, 2}, tx.CmIndexes)
	assert.Equal(t, pour, tx.Candidate)
}

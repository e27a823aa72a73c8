// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
	"github.com/bitmark-inc/logger"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "ledgerd-test")
	if nil != err {
		panic(err)
	}

	logging := logger.Configuration{
		Directory: dir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		panic(fmt.Sprintf("logger initialization failed: %s", err))
	}

	result := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(dir)
	os.Exit(result)
}

// a database holding a single block with one mint at index zero
func setupLedger(t *testing.T) (*storage.Store, *merkle.Tree, digest.Digest) {
	name := filepath.Join(t.TempDir(), "dump.leveldb")
	store, err := storage.Open(name, storage.ReadWrite)
	require.Nil(t, err, "storage open error")
	t.Cleanup(store.Close)

	tree, err := merkle.New(4)
	require.Nil(t, err, "merkle tree error")

	cm := digest.Scalar([]byte("genesis-commitment"))
	mint := &transactionrecord.MintCandidate{
		Common: transactionrecord.Common{
			CreatedAt: "20201016000000",
			Data:      []byte("mint"),
			AuthorSig: "author",
		},
		Cm: cm,
	}

	update := tree.NewUpdate(store)
	root, err := update.InsertLeaf(0, cm)
	require.Nil(t, err, "insert leaf error")

	candidate := &blockrecord.Candidate{
		ValidatorSig: "validator",
		Transactions: []transactionrecord.Candidate{mint},
		WitnessSigs:  []string{},
		CreatedAt:    "20201016000001",
	}

	batch := store.NewBatch()
	batch.PutBlock(candidate.Upgrade(0, root))
	require.Nil(t, batch.PutTransaction(transactionrecord.Upgrade(mint, 0)))
	update.Each(batch.PutMerkleNode)
	require.Nil(t, store.Commit(batch), "commit error")

	return store, tree, cm
}

func TestDumpBlock(t *testing.T) {
	store, _, cm := setupLedger(t)

	dump, err := dumpBlock(store, 0)
	require.Nil(t, err, "dump error")
	assert.Equal(t, uint64(0), dump.Block.Height, "wrong height")
	require.Equal(t, 1, len(dump.Transactions), "wrong transaction count")
	assert.Equal(t, []digest.Digest{cm}, dump.Transactions[0].Candidate.Commitments(), "wrong commitment")

	_, err = dumpBlock(store, 1)
	assert.NotNil(t, err, "missing block was dumped")
}

func TestAuthPath(t *testing.T) {
	store, tree, cm := setupLedger(t)

	dump, err := authPath(store, tree, 0)
	require.Nil(t, err, "auth path error")
	assert.Equal(t, cm, dump.Cm, "wrong commitment")
	assert.Equal(t, tree.Depth(), len(dump.Path), "wrong path length")
	assert.True(t, tree.Verify(dump.Root, cm, dump.Path), "path does not reach the root")

	_, err = authPath(store, tree, 1)
	assert.NotNil(t, err, "path for an unused index")
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

type blockDump struct {
	Block        *blockrecord.Block               `json:"block"`
	Transactions []*transactionrecord.Transaction `json:"transactions"`
}

type pathDump struct {
	Index uint64            `json:"index,string"`
	Cm    digest.Digest     `json:"cm"`
	Root  digest.Digest     `json:"root"`
	Path  []merkle.PathNode `json:"path"`
}

// a block and its transactions read from one snapshot
func dumpBlock(store *storage.Store, height uint64) (*blockDump, error) {
	view, err := store.Snapshot()
	if nil != err {
		return nil, err
	}
	defer view.Release()

	b, err := view.GetBlockByHeight(height)
	if nil != err {
		return nil, err
	}
	if nil == b {
		return nil, fmt.Errorf("block: %d not found", height)
	}

	txs, err := view.GetTxs(b.TxHashes)
	if nil != err {
		return nil, err
	}

	return &blockDump{
		Block:        b,
		Transactions: txs,
	}, nil
}

// authentication path of a committed leaf
func authPath(store *storage.Store, tree *merkle.Tree, index uint64) (*pathDump, error) {
	view, err := store.Snapshot()
	if nil != err {
		return nil, err
	}
	defer view.Release()

	cm, found, err := view.GetCmByCmIdx(index)
	if nil != err {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("commitment index: %d not found", index)
	}

	path, err := tree.AuthPath(view, index)
	if nil != err {
		return nil, err
	}
	root, err := tree.Root(view)
	if nil != err {
		return nil, err
	}

	return &pathDump{
		Index: index,
		Cm:    cm,
		Root:  root,
		Path:  path,
	}, nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// GetAuthPath - path from a leaf to the root of the committed tree
//
// the root returned is the one the path leads to
func (p *Pipeline) GetAuthPath(leafIndex uint64) ([]merkle.PathNode, digest.Digest, error) {
	view, err := p.store.Snapshot()
	if nil != err {
		return nil, digest.Digest{}, err
	}
	defer view.Release()

	path, err := p.tree.AuthPath(view, leafIndex)
	if nil != err {
		return nil, digest.Digest{}, err
	}
	root, err := p.tree.Root(view)
	if nil != err {
		return nil, digest.Digest{}, err
	}
	return path, root, nil
}

// GetTxsFromPool - pending transactions for a list of hashes
func (p *Pipeline) GetTxsFromPool(hashes []digest.Digest) []transactionrecord.Candidate {
	return p.pool.GetTxs(hashes)
}

// GetTxPoolDiff - pending transactions a peer does not know about
func (p *Pipeline) GetTxPoolDiff(known []digest.Digest) []digest.Digest {
	return p.pool.Diff(known)
}

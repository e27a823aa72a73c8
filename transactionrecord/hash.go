// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/util"
)

func (c *Common) hashItems(tag TagType) [][]byte {
	return [][]byte{
		util.ToVarint64(uint64(tag)),
		[]byte(c.CreatedAt),
		c.Data,
		[]byte(c.AuthorSig),
		[]byte(c.CtrAddr),
	}
}

// Hash - content hash, the storage key of the transaction
func (m *MintCandidate) Hash() digest.Digest {
	items := m.Common.hashItems(MintTag)
	items = append(items, m.Cm[:], m.V[:], m.K[:], m.S[:])
	return digest.Of(items...)
}

// Hash - content hash, the storage key of the transaction
//
// each list is preceded by its count so that moving an item from one
// list to the next changes the hash
func (p *PourCandidate) Hash() digest.Digest {
	items := p.Common.hashItems(PourTag)
	items = append(items, p.Proof)
	for _, list := range [][]digest.Digest{p.Sns, p.Cms, p.MerkleRts} {
		items = append(items, util.ToVarint64(uint64(len(list))))
		for i := range list {
			items = append(items, list[i][:])
		}
	}
	return digest.Of(items...)
}

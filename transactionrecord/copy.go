// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

// Copy - a transaction sharing no slices with the original
func (tx *Transaction) Copy() *Transaction {
	return &Transaction{
		Candidate: copyCandidate(tx.Candidate),
		CmIndexes: append(tx.CmIndexes[:0:0], tx.CmIndexes...),
	}
}

func copyCandidate(candidate Candidate) Candidate {
	switch c := candidate.(type) {
	case *MintCandidate:
		m := *c
		m.Common = c.Common.copy()
		return &m

	case *PourCandidate:
		p := *c
		p.Common = c.Common.copy()
		p.Proof = append(c.Proof[:0:0], c.Proof...)
		p.Sns = append(c.Sns[:0:0], c.Sns...)
		p.Cms = append(c.Cms[:0:0], c.Cms...)
		p.MerkleRts = append(c.MerkleRts[:0:0], c.MerkleRts...)
		return &p

	default:
		return candidate
	}
}

func (c Common) copy() Common {
	c.Data = append(c.Data[:0:0], c.Data...)
	return c
}

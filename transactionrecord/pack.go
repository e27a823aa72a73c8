// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

// Pack - turn a committed transaction into its entity record
//
// layout: tag, common fields, kind specific fields, leaf indexes
func (tx *Transaction) Pack() (Packed, error) {
	if nil == tx.Candidate {
		return nil, fault.ErrInvalidTransactionType
	}
	if len(tx.CmIndexes) != len(tx.Candidate.Commitments()) {
		return nil, fault.ErrInvalidCount
	}

	tag := tx.Candidate.Type()
	buffer := util.ToVarint64(uint64(tag))
	buffer = tx.Candidate.Base().pack(buffer)

	switch c := tx.Candidate.(type) {
	case *MintCandidate:
		buffer = util.AppendBytes(buffer, c.Cm[:])
		buffer = util.AppendBytes(buffer, c.V[:])
		buffer = util.AppendBytes(buffer, c.K[:])
		buffer = util.AppendBytes(buffer, c.S[:])

	case *PourCandidate:
		buffer = util.AppendBytes(buffer, c.Proof)
		buffer = appendDigests(buffer, c.Sns)
		buffer = appendDigests(buffer, c.Cms)
		buffer = appendDigests(buffer, c.MerkleRts)

	default:
		return nil, fault.ErrInvalidTransactionType
	}

	buffer = util.AppendUint64(buffer, uint64(len(tx.CmIndexes)))
	for _, idx := range tx.CmIndexes {
		buffer = util.AppendUint64(buffer, idx)
	}
	return buffer, nil
}

func (c *Common) pack(buffer []byte) []byte {
	buffer = util.AppendString(buffer, c.CreatedAt)
	buffer = util.AppendBytes(buffer, c.Data)
	buffer = util.AppendString(buffer, c.AuthorSig)
	return util.AppendString(buffer, c.CtrAddr)
}

func appendDigests(buffer []byte, list []digest.Digest) []byte {
	buffer = util.AppendUint64(buffer, uint64(len(list)))
	for i := range list {
		buffer = util.AppendBytes(buffer, list[i][:])
	}
	return buffer
}

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

// Type - tag of a packed record without decoding the rest
func (record Packed) Type() TagType {
	tag, n := util.FromVarint64(record)
	if 0 == n || tag <= uint64(NullTag) || tag >= uint64(InvalidTag) {
		return NullTag
	}
	return TagType(tag)
}

// Unpack - turn a record into a transaction
func (record Packed) Unpack() (*Transaction, error) {
	r := util.NewReader(record)
	tag := TagType(r.Uint64())
	if nil != r.Err() {
		return nil, r.Err()
	}

	var common Common
	common.unpack(r)

	var candidate Candidate
	switch tag {
	case MintTag:
		m := &MintCandidate{Common: common}
		r.Fixed(m.Cm[:])
		r.Fixed(m.V[:])
		r.Fixed(m.K[:])
		r.Fixed(m.S[:])
		candidate = m

	case PourTag:
		p := &PourCandidate{Common: common}
		p.Proof = r.Bytes()
		p.Sns = readDigests(r)
		p.Cms = readDigests(r)
		p.MerkleRts = readDigests(r)
		candidate = p

	default:
		return nil, fault.ErrInvalidTransactionType
	}

	n := r.Count()
	indexes := make([]uint64, n)
	for i := 0; i < n; i += 1 {
		indexes[i] = r.Uint64()
	}
	if err := r.Finish(); nil != err {
		return nil, err
	}
	if n != len(candidate.Commitments()) {
		return nil, fault.ErrCannotDecodeTransaction
	}

	return &Transaction{
		Candidate: candidate,
		CmIndexes: indexes,
	}, nil
}

func (c *Common) unpack(r *util.Reader) {
	c.CreatedAt = r.String()
	c.Data = r.Bytes()
	c.AuthorSig = r.String()
	c.CtrAddr = r.String()
}

func readDigests(r *util.Reader) []digest.Digest {
	n := r.Count()
	if 0 == n {
		return nil
	}
	list := make([]digest.Digest, n)
	for i := 0; i < n; i += 1 {
		r.Fixed(list[i][:])
	}
	return list
}

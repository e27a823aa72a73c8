// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

// Pack - turn a block into its entity record
//
// the hash is the key of the record and is not repeated in the value
func (b *Block) Pack() PackedBlock {
	buffer := util.AppendString(nil, b.ValidatorSig)

	buffer = util.AppendUint64(buffer, uint64(len(b.WitnessSigs)))
	for _, s := range b.WitnessSigs {
		buffer = util.AppendString(buffer, s)
	}

	buffer = util.AppendUint64(buffer, uint64(len(b.TxHashes)))
	for i := range b.TxHashes {
		buffer = util.AppendBytes(buffer, b.TxHashes[i][:])
	}

	buffer = util.AppendString(buffer, b.CreatedAt)
	buffer = util.AppendUint64(buffer, b.Height)
	buffer = util.AppendBytes(buffer, b.MerkleRt[:])
	return buffer
}

// Unpack - turn an entity record back into a block
//
// the recomputed hash must match the key the record was stored under
func (record PackedBlock) Unpack(key []byte) (*Block, error) {
	b := &Block{}
	if err := digest.FromBytes(&b.Hash, key); nil != err {
		return nil, err
	}

	r := util.NewReader(record)
	b.ValidatorSig = r.String()

	n := r.Count()
	if n > 0 {
		b.WitnessSigs = make([]string, n)
		for i := 0; i < n; i += 1 {
			b.WitnessSigs[i] = r.String()
		}
	}

	n = r.Count()
	if n > MaximumTransactions {
		return nil, fault.ErrCannotDecodeBlock
	}
	if n > 0 {
		b.TxHashes = make([]digest.Digest, n)
		for i := 0; i < n; i += 1 {
			r.Fixed(b.TxHashes[i][:])
		}
	}

	b.CreatedAt = r.String()
	b.Height = r.Uint64()
	r.Fixed(b.MerkleRt[:])

	if err := r.Finish(); nil != err {
		return nil, err
	}
	if b.ComputedHash() != b.Hash {
		return nil, fault.ErrCannotDecodeBlock
	}
	return b, nil
}

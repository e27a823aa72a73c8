// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

func makeCandidate(validator string) *blockrecord.Candidate {
	mint := &transactionrecord.MintCandidate{
		Common: transactionrecord.Common{
			CreatedAt: "20201016000000",
			Data:      []byte("data"),
			AuthorSig: "author",
		},
		Cm: digest.NewDigest([]byte("cm")),
	}
	return &blockrecord.Candidate{
		ValidatorSig: validator,
		Transactions: []transactionrecord.Candidate{mint},
		WitnessSigs:  []string{"w1", "w2"},
		CreatedAt:    "20201016000001",
	}
}

func TestCandidateHash(t *testing.T) {
	a := makeCandidate("validator")
	b := makeCandidate("validator")
	assert.Equal(t, a.Hash(), b.Hash(), "identical candidates must hash the same")

	c := makeCandidate("other")
	assert.NotEqual(t, a.Hash(), c.Hash())

	b.WitnessSigs = []string{"w1"}
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestUpgrade(t *testing.T) {
	c := makeCandidate("validator")
	rt := digest.NewDigest([]byte("root"))

	b := c.Upgrade(5, rt)
	assert.Equal(t, c.Hash(), b.Hash)
	assert.Equal(t, uint64(5), b.Height)
	assert.Equal(t, rt, b.MerkleRt)
	assert.Equal(t, []digest.Digest{c.Transactions[0].Hash()}, b.TxHashes)
	assert.Equal(t, b.Hash, b.ComputedHash())
}

// ensures that pack->unpack returns the same original value
func TestPackBlock(t *testing.T) {
	b := makeCandidate("validator").Upgrade(12, digest.NewDigest([]byte("root")))

	packed := b.Pack()
	unpacked, err := packed.Unpack(b.Hash[:])
	require.Nil(t, err, "unpack error")
	assert.Equal(t, b, unpacked)
}

func TestUnpackBlockErrors(t *testing.T) {
	b := makeCandidate("validator").Upgrade(1, digest.Digest{})
	packed := b.Pack()

	_, err := packed.Unpack(b.Hash[:4])
	assert.Equal(t, fault.ErrWrongDigestLength, err)

	other := digest.NewDigest([]byte("other"))
	_, err = packed.Unpack(other[:])
	assert.Equal(t, fault.ErrCannotDecodeBlock, err, "hash must match key")

	_, err = packed[:len(packed)-1].Unpack(b.Hash[:])
	assert.Equal(t, fault.ErrTruncatedRecord, err)
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
	"github.com/bitmark-inc/ledgerd/util"
)

// maximum transactions in a block
const (
	MaximumTransactions = 10000
)

// PackedBlock - packed records are just a byte slice
type PackedBlock []byte

// Candidate - proposed block as produced by consensus
type Candidate struct {
	ValidatorSig string                        `json:"validatorSig"`
	Transactions []transactionrecord.Candidate `json:"transactions"`
	WitnessSigs  []string                      `json:"witnessSigs"`
	CreatedAt    string                        `json:"createdAt"`
}

// Block - the stored block entity
type Block struct {
	Hash         digest.Digest   `json:"hash"`
	ValidatorSig string          `json:"validatorSig"`
	WitnessSigs  []string        `json:"witnessSigs"`
	TxHashes     []digest.Digest `json:"txHashes"`
	CreatedAt    string          `json:"createdAt"`
	Height       uint64          `json:"height,string"`
	MerkleRt     digest.Digest   `json:"merkleRt"`
}

// TxHashes - hashes of the candidate transactions in block order
func (c *Candidate) TxHashes() []digest.Digest {
	hashes := make([]digest.Digest, len(c.Transactions))
	for i, tx := range c.Transactions {
		hashes[i] = tx.Hash()
	}
	return hashes
}

// Hash - block hash, identical candidates have identical hashes
func (c *Candidate) Hash() digest.Digest {
	return computeHash(c.ValidatorSig, c.CreatedAt, c.TxHashes(), c.WitnessSigs)
}

// Upgrade - produce the block record once height and root are known
func (c *Candidate) Upgrade(height uint64, merkleRt digest.Digest) *Block {
	txHashes := c.TxHashes()
	return &Block{
		Hash:         computeHash(c.ValidatorSig, c.CreatedAt, txHashes, c.WitnessSigs),
		ValidatorSig: c.ValidatorSig,
		WitnessSigs:  c.WitnessSigs,
		TxHashes:     txHashes,
		CreatedAt:    c.CreatedAt,
		Height:       height,
		MerkleRt:     merkleRt,
	}
}

// ComputedHash - recompute the hash from the stored fields
func (b *Block) ComputedHash() digest.Digest {
	return computeHash(b.ValidatorSig, b.CreatedAt, b.TxHashes, b.WitnessSigs)
}

func computeHash(validatorSig string, createdAt string, txHashes []digest.Digest, witnessSigs []string) digest.Digest {
	items := make([][]byte, 0, 4+len(txHashes)+len(witnessSigs))
	items = append(items, []byte(validatorSig), []byte(createdAt))

	items = append(items, util.ToVarint64(uint64(len(txHashes))))
	for i := range txHashes {
		items = append(items, txHashes[i][:])
	}

	items = append(items, util.ToVarint64(uint64(len(witnessSigs))))
	for _, s := range witnessSigs {
		items = append(items, []byte(s))
	}
	return digest.Of(items...)
}

// Copy - a block sharing no slices with the original
func (b *Block) Copy() *Block {
	c := *b
	c.WitnessSigs = append(b.WitnessSigs[:0:0], b.WitnessSigs...)
	c.TxHashes = append(b.TxHashes[:0:0], b.TxHashes...)
	return &c
}

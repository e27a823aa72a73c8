// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"bytes"

	"github.com/bitmark-inc/ledgerd/digest"
)

// TagType - type code for transactions
type TagType uint64

// enumerate the possible transaction record types
// this is encoded a Varint64 at start of "Packed" and is the value
// of the transaction type column
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	MintTag = TagType(iota) // issue one coin
	PourTag = TagType(iota) // spend coins and issue new ones

	// this item must be last
	InvalidTag = TagType(iota)
)

func (t TagType) String() string {
	switch t {
	case MintTag:
		return "mint"
	case PourTag:
		return "pour"
	default:
		return "invalid"
	}
}

// CtrOp - what a transaction asks of the contract processor
type CtrOp int

// contract operations
const (
	CtrNone   CtrOp = iota // no contract address
	CtrDeploy              // payload is a contract module
	CtrCall                // payload is a request to an existing contract
)

// WasmMagic - first bytes of a contract module
var WasmMagic = []byte{0x00, 0x61, 0x73, 0x6d}

// Packed - packed records are just a byte slice
type Packed []byte

// Candidate - a transaction not yet assigned to a block
type Candidate interface {
	Type() TagType
	Hash() digest.Digest
	Base() *Common
	Commitments() []digest.Digest
	Check() error
}

// Common - fields shared by all transaction kinds
type Common struct {
	CreatedAt string `json:"createdAt"`
	Data      []byte `json:"data"`
	AuthorSig string `json:"authorSig"`
	CtrAddr   string `json:"ctrAddr"`
}

// CtrOp - classify the contract operation of a transaction
func (c *Common) CtrOp() CtrOp {
	if "" == c.CtrAddr {
		return CtrNone
	}
	if bytes.HasPrefix(c.Data, WasmMagic) {
		return CtrDeploy
	}
	return CtrCall
}

// MintCandidate - issue exactly one new coin
type MintCandidate struct {
	Common
	Cm digest.Digest `json:"cm"`
	V  [32]byte      `json:"v"`
	K  [32]byte      `json:"k"`
	S  [32]byte      `json:"s"`
}

// PourCandidate - spend old coins through their serial numbers and
// create new coins, justified by a zero-knowledge proof
type PourCandidate struct {
	Common
	Proof     []byte          `json:"proof"`
	Sns       []digest.Digest `json:"sns"`
	Cms       []digest.Digest `json:"cms"`
	MerkleRts []digest.Digest `json:"merkleRts"`
}

// Transaction - a committed transaction
//
// CmIndexes holds the leaf index assigned to each commitment, in
// the same order as the candidate's commitments
type Transaction struct {
	Candidate Candidate `json:"candidate"`
	CmIndexes []uint64  `json:"cmIndexes"`
}

// Type - record tag
func (m *MintCandidate) Type() TagType { return MintTag }

// Type - record tag
func (p *PourCandidate) Type() TagType { return PourTag }

// Base - shared fields
func (m *MintCandidate) Base() *Common { return &m.Common }

// Base - shared fields
func (p *PourCandidate) Base() *Common { return &p.Common }

// Commitments - the single new coin
func (m *MintCandidate) Commitments() []digest.Digest {
	return []digest.Digest{m.Cm}
}

// Commitments - the new coins
func (p *PourCandidate) Commitments() []digest.Digest {
	return p.Cms
}

// PublicInputs - values the proof is verified against: roots, then
// serial numbers, then commitments
func (p *PourCandidate) PublicInputs() []digest.Digest {
	inputs := make([]digest.Digest, 0, len(p.MerkleRts)+len(p.Sns)+len(p.Cms))
	inputs = append(inputs, p.MerkleRts...)
	inputs = append(inputs, p.Sns...)
	inputs = append(inputs, p.Cms...)
	return inputs
}

// Upgrade - attach assigned leaf indexes, first commitment gets firstIndex
func Upgrade(candidate Candidate, firstIndex uint64) *Transaction {
	n := len(candidate.Commitments())
	indexes := make([]uint64, n)
	for i := 0; i < n; i += 1 {
		indexes[i] = firstIndex + uint64(i)
	}
	return &Transaction{
		Candidate: candidate,
		CmIndexes: indexes,
	}
}

// Hash - content hash of the underlying candidate
func (tx *Transaction) Hash() digest.Digest {
	return tx.Candidate.Hash()
}

// Type - tag of the underlying candidate
func (tx *Transaction) Type() TagType {
	return tx.Candidate.Type()
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/fault"
)

// byte sizes for various fields
const (
	maxDataLength      = 1 << 22
	maxSignatureLength = 1024
	maxProofLength     = 1 << 16
	maxListLength      = 256
)

func (c *Common) check() error {
	if "" == c.CreatedAt {
		return fault.ErrIncompleteTransaction
	}
	if len(c.Data) > maxDataLength || len(c.AuthorSig) > maxSignatureLength {
		return fault.ErrIncompleteTransaction
	}
	return nil
}

// Check - structural validation of a mint
func (m *MintCandidate) Check() error {
	if err := m.Common.check(); nil != err {
		return err
	}
	if m.Cm.IsZero() {
		return fault.ErrIncompleteTransaction
	}
	if !m.Cm.IsScalar() {
		return fault.ErrNonCanonicalField
	}
	return nil
}

// Check - structural validation of a pour
//
// semantic checks (spent serial numbers, root freshness, the proof)
// need ledger state and are made when the block is written
func (p *PourCandidate) Check() error {
	if err := p.Common.check(); nil != err {
		return err
	}
	if 0 == len(p.Proof) || len(p.Proof) > maxProofLength {
		return fault.ErrIncompleteTransaction
	}
	if 0 == len(p.Sns) || 0 == len(p.MerkleRts) {
		return fault.ErrIncompleteTransaction
	}
	if len(p.Sns) > maxListLength || len(p.Cms) > maxListLength || len(p.MerkleRts) > maxListLength {
		return fault.ErrInvalidCount
	}
	if hasZero(p.Sns) || hasZero(p.Cms) || hasZero(p.MerkleRts) {
		return fault.ErrIncompleteTransaction
	}

	if !allScalar(p.Sns) || !allScalar(p.Cms) || !allScalar(p.MerkleRts) {
		return fault.ErrNonCanonicalField
	}
	if hasRepeat(p.Sns) {
		return fault.ErrDuplicateSerialNumber
	}
	if hasRepeat(p.Cms) {
		return fault.ErrDuplicateCommitment
	}
	return nil
}

func allScalar(list []digest.Digest) bool {
	for _, d := range list {
		if !d.IsScalar() {
			return false
		}
	}
	return true
}

func hasRepeat(list []digest.Digest) bool {
	seen := make(map[digest.Digest]struct{}, len(list))
	for _, d := range list {
		if _, ok := seen[d]; ok {
			return true
		}
		seen[d] = struct{}{}
	}
	return false
}

func hasZero(list []digest.Digest) bool {
	for _, d := range list {
		if d.IsZero() {
			return true
		}
	}
	return false
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"github.com/bitmark-inc/ledgerd/contract"
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// validate - checks for one transaction, in block order
//
// serial numbers spent and commitments added earlier in the same
// block count as already in the ledger
func (p *Pipeline) validate(b *builder, tx transactionrecord.Candidate) error {
	txHash := tx.Hash()

	if err := tx.Check(); nil != err {
		return b.reject(txHash, fault.Rejected(err, txHash))
	}

	if _, ok := b.txs[txHash]; ok {
		return b.reject(txHash, fault.Rejected(fault.ErrTransactionAlreadyExists, txHash))
	}
	committed, err := b.view.HasTx(txHash)
	if nil != err {
		return err
	}
	if committed {
		return b.reject(txHash, fault.Rejected(fault.ErrTransactionAlreadyCommitted, txHash))
	}
	b.txs[txHash] = struct{}{}

	cms := tx.Commitments()
	for _, cm := range cms {
		if _, ok := b.cms[cm]; ok {
			return b.reject(txHash, fault.DuplicateCommitment(cm))
		}
		_, found, err := b.view.GetCmIdxByCm(cm)
		if nil != err {
			return err
		}
		if found {
			return b.reject(txHash, fault.DuplicateCommitment(cm))
		}
	}

	switch t := tx.(type) {
	case *transactionrecord.MintCandidate:
		// a mint spends nothing

	case *transactionrecord.PourCandidate:
		for _, sn := range t.Sns {
			if _, ok := b.sns[sn]; ok {
				return b.reject(txHash, fault.DoubleSpend(sn))
			}
			spent, err := b.view.HasSn(sn)
			if nil != err {
				return err
			}
			if spent {
				return b.reject(txHash, fault.DoubleSpend(sn))
			}
		}

		for _, rt := range t.MerkleRts {
			fresh, err := p.isFreshRoot(b, rt)
			if nil != err {
				return err
			}
			if !fresh {
				return b.reject(txHash, fault.StaleOrUnknownRoot(rt))
			}
		}

		ok, err := p.verifier.Verify(t.Proof, t.PublicInputs())
		if nil != err {
			p.log.Errorf("verifier error: %s", err)
			return b.reject(txHash, fault.Rejected(fault.ErrProofVerifierFailed, txHash))
		}
		if !ok {
			return b.reject(txHash, fault.InvalidProof(txHash))
		}

		for _, sn := range t.Sns {
			b.sns[sn] = struct{}{}
		}

	default:
		return b.reject(txHash, fault.Rejected(fault.ErrInvalidTransactionType, txHash))
	}

	for _, cm := range cms {
		b.cms[cm] = struct{}{}
	}

	result, err := contract.Apply(p.processor, tx)
	if nil != err {
		return b.reject(txHash, err)
	}
	if nil != result {
		b.states = append(b.states, result)
	}
	return nil
}

// isFreshRoot - root was produced by one of the last rootWindow blocks
func (p *Pipeline) isFreshRoot(b *builder, rt digest.Digest) (bool, error) {
	if !b.hasLatest {
		return false, nil
	}
	height, found, err := b.view.GetRootHeight(rt)
	if nil != err || !found {
		return false, err
	}
	if 0 == p.rootWindow {
		return true, nil
	}
	return b.latest-height < p.rootWindow, nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"context"
	"errors"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/fault"
)

// WriteBlock - validate and commit one block
//
// with a nil candidate one is requested from consensus over the
// current pool.  The results are:
//
//	nil, nil                    nothing to do
//	nil, fault.ValidationError  candidate rejected, ledger unchanged
//	nil, other error            storage or integrity failure
//	hash, nil                   block committed
func (p *Pipeline) WriteBlock(ctx context.Context, candidate *blockrecord.Candidate) (*digest.Digest, error) {
	if err := p.writer.Acquire(ctx, 1); nil != err {
		return nil, err
	}
	defer p.writer.Release(1)

	pooled := false
	if nil == candidate {
		var err error
		candidate, err = p.assemble(ctx)
		if nil != err || nil == candidate {
			return nil, err
		}
		pooled = true
	}

	block, err := p.commit(candidate, nil, false, pooled)
	if nil != err {
		return nil, err
	}
	return &block.Hash, nil
}

// InsertGenesis - commit the first block of an empty ledger
//
// returns nil, nil when a block at height zero already exists
func (p *Pipeline) InsertGenesis(ctx context.Context, candidate *blockrecord.Candidate) (*digest.Digest, error) {
	if err := p.writer.Acquire(ctx, 1); nil != err {
		return nil, err
	}
	defer p.writer.Release(1)

	_, found, err := p.store.GetBlockHashByHeight(0)
	if nil != err {
		return nil, err
	}
	if found {
		p.log.Debug("genesis already present")
		return nil, nil
	}

	block, err := p.commit(candidate, nil, true, false)
	if nil != err {
		return nil, err
	}
	p.log.Infof("genesis: %v", block.Hash)
	return &block.Hash, nil
}

func (p *Pipeline) assemble(ctx context.Context) (*blockrecord.Candidate, error) {
	pending := p.pool.All()
	if 0 == len(pending) {
		p.empty.Increment()
		return nil, nil
	}

	p.log.Debugf("assemble from: %d pending", len(pending))

	candidate, err := p.consensus.Assemble(ctx, pending)
	if errors.Is(err, fault.ErrConsensusDeclined) || (nil == err && nil == candidate) {
		p.empty.Increment()
		return nil, nil
	}
	if nil != err {
		p.log.Warnf("consensus error: %s", err)
		p.rejected.Increment()
		return nil, fault.Rejected(err, nil)
	}
	return candidate, nil
}

// commit - validate a candidate, stage it into one batch and commit
//
// expected is the block as received from a peer, nil for a locally
// assembled one; pooled is set when the candidate came from the pool;
// the writer must be held
func (p *Pipeline) commit(candidate *blockrecord.Candidate, expected *blockrecord.Block, allowEmpty bool, pooled bool) (*blockrecord.Block, error) {
	b, err := p.newBuilder(candidate, pooled)
	if nil != err {
		p.log.Criticalf("snapshot error: %s", err)
		return nil, err
	}
	defer b.release()

	if err := p.validateBlock(b, candidate, expected, allowEmpty); nil != err {
		return nil, p.failed(b, err)
	}

	batch, err := b.stage(p.store)
	if nil != err {
		return nil, p.failed(b, err)
	}

	// from here on the block is not abandoned
	if err := p.store.Commit(batch); nil != err {
		return nil, p.failed(b, err)
	}

	remaining := p.pool.Remove(candidate.Transactions)
	p.bus.SendNewBlock(b.height, b.hash)
	p.bus.SendTxPoolStat(remaining)
	p.committed.Increment()

	p.log.Infof("committed height: %d  hash: %v  txs: %d  cm: [%d, %d)  pool: %d",
		b.height, b.hash, len(candidate.Transactions), b.firstCmIdx, b.nextCmIdx, len(remaining))

	return b.block, nil
}

func (p *Pipeline) validateBlock(b *builder, candidate *blockrecord.Candidate, expected *blockrecord.Block, allowEmpty bool) error {
	if nil != expected {
		if expected.Hash != b.hash {
			return fault.Rejected(fault.ErrBlockDigestDoesNotMatch, expected.Hash)
		}
		if expected.Height != b.height {
			return fault.Rejected(fault.ErrBlockHeightMismatch, expected.Height)
		}
	}

	if err := p.check(b, candidate, allowEmpty); nil != err {
		return err
	}

	for _, tx := range candidate.Transactions {
		if err := p.validate(b, tx); nil != err {
			return err
		}
	}

	root, err := p.assign(b, candidate)
	if nil != err {
		return err
	}
	if nil != expected && expected.MerkleRt != root {
		return fault.Rejected(fault.ErrMerkleRootDoesNotMatch, expected.MerkleRt)
	}

	b.block = candidate.Upgrade(b.height, root)
	return nil
}

// failed - log and count a failure, drop the offending transaction
// from the pool when the pool supplied it
func (p *Pipeline) failed(b *builder, err error) error {
	if !fault.IsValidation(err) {
		p.log.Criticalf("block: %v  height: %d  error: %s", b.hash, b.height, err)
		return err
	}

	p.rejected.Increment()
	p.log.Warnf("rejected block: %v  height: %d  reason: %s", b.hash, b.height, err)

	if b.hasOffender && b.pooled {
		p.pool.Reject(b.offender)
	}
	return err
}

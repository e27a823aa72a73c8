// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"context"
	"sort"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// Received - a block and its transactions as delivered by a peer
type Received struct {
	Block        *blockrecord.Block
	Transactions []transactionrecord.Candidate
}

// WriteBlocks - re-validate and commit blocks received from peers
//
// blocks are taken in height order; a block that does not follow the
// current latest block is skipped.  Stops at the first failure and
// returns the number of blocks committed before it
func (p *Pipeline) WriteBlocks(ctx context.Context, received []Received) (int, error) {
	if err := p.writer.Acquire(ctx, 1); nil != err {
		return 0, err
	}
	defer p.writer.Release(1)

	items := make([]Received, 0, len(received))
	for _, r := range received {
		if nil != r.Block {
			items = append(items, r)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Block.Height < items[j].Block.Height
	})

	n := 0
	for _, item := range items {
		next, err := p.nextHeight()
		if nil != err {
			return n, err
		}
		if item.Block.Height != next {
			p.log.Debugf("skip height: %d  expected: %d", item.Block.Height, next)
			continue
		}

		candidate := &blockrecord.Candidate{
			ValidatorSig: item.Block.ValidatorSig,
			Transactions: item.Transactions,
			WitnessSigs:  item.Block.WitnessSigs,
			CreatedAt:    item.Block.CreatedAt,
		}

		// a peer's genesis may be empty
		if _, err := p.commit(candidate, item.Block, 0 == next, false); nil != err {
			return n, err
		}
		n += 1
	}
	return n, nil
}

func (p *Pipeline) nextHeight() (uint64, error) {
	latest, found, err := p.store.GetLatestBlockHeight()
	if nil != err || !found {
		return 0, err
	}
	return latest + 1, nil
}

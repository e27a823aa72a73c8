// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consensus

import (
	"context"
	"time"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// format of the block creation time stamp
const createdAtFormat = "20060102150405"

// Consensus - decides which pending transactions form the next block
//
// a nil candidate with a nil error means there is nothing to do; an
// error of ErrConsensusDeclined is treated the same way by the caller
type Consensus interface {
	Assemble(ctx context.Context, pending []transactionrecord.Candidate) (*blockrecord.Candidate, error)
}

// FIFO - takes the oldest pending transactions in arrival order
type FIFO struct {
	validatorSig string
	maximum      int
	now          func() time.Time
}

// NewFIFO - create an assembler that signs with the given validator
// signature and takes at most maximum transactions per block
func NewFIFO(validatorSig string, maximum int) *FIFO {
	if maximum <= 0 || maximum > blockrecord.MaximumTransactions {
		maximum = blockrecord.MaximumTransactions
	}
	return &FIFO{
		validatorSig: validatorSig,
		maximum:      maximum,
		now:          time.Now,
	}
}

// Assemble - pending is expected in arrival order
func (f *FIFO) Assemble(ctx context.Context, pending []transactionrecord.Candidate) (*blockrecord.Candidate, error) {
	if err := ctx.Err(); nil != err {
		return nil, err
	}

	if 0 == len(pending) {
		return nil, nil
	}

	n := len(pending)
	if n > f.maximum {
		n = f.maximum
	}

	txs := make([]transactionrecord.Candidate, n)
	copy(txs, pending[:n])

	return &blockrecord.Candidate{
		ValidatorSig: f.validatorSig,
		Transactions: txs,
		WitnessSigs:  []string{},
		CreatedAt:    f.now().UTC().Format(createdAtFormat),
	}, nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package genesis

import (
	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/chain"
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// data embedded into a genesis block
type sourceData struct {
	createdAt string // UTC, 20060102150405
	message   string
	validator string
}

var sources = map[string]sourceData{
	chain.Bitmark: {
		createdAt: "20151228021311",
		message:   "DOWN the RABBIT hole",
		validator: "acRQJLJtHH61bfoQydREnvXDQ4Tt2BLmGbP1UbcFpJouJSM5hG",
	},
	chain.Testing: {
		createdAt: "20141128093715",
		message:   "Bitmark Testing Genesis Block",
		validator: "fHrBioy1AMn86jJj1rk5j5rokqQhz8hABmccHjfxp9JkAF1dJz",
	},
	chain.Local: {
		createdAt: "20200101000000",
		message:   "Bitmark Local Genesis Block",
		validator: "local",
	},
}

// Candidate - the genesis block of a chain
//
// it holds one mint of a coin that nobody can spend: the commitment
// is a plain hash of the chain message, not a coin commitment
func Candidate(chainName string) (*blockrecord.Candidate, error) {
	source, ok := sources[chainName]
	if !ok {
		return nil, fault.ErrUnsupportedChain
	}

	mint := &transactionrecord.MintCandidate{
		Common: transactionrecord.Common{
			CreatedAt: source.createdAt,
			Data:      []byte(source.message),
			AuthorSig: source.validator,
		},
		Cm: digest.Scalar([]byte(chainName), []byte(source.message)),
	}

	return &blockrecord.Candidate{
		ValidatorSig: source.validator,
		Transactions: []transactionrecord.Candidate{mint},
		WitnessSigs:  []string{},
		CreatedAt:    source.createdAt,
	}, nil
}

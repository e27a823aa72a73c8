// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir_test

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
	"github.com/bitmark-inc/logger"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "reservoir-test")
	if nil != err {
		panic(err)
	}

	logging := logger.Configuration{
		Directory: dir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		panic(fmt.Sprintf("logger initialization failed: %s", err))
	}

	result := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(dir)
	os.Exit(result)
}

// ledger stand-in holding a set of committed hashes
type fakeLedger struct {
	sync.Mutex
	committed map[digest.Digest]bool
	fail      bool
}

var errLedger = errors.New("ledger unavailable")

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		committed: make(map[digest.Digest]bool),
	}
}

func (l *fakeLedger) HasTx(hash digest.Digest) (bool, error) {
	l.Lock()
	defer l.Unlock()
	if l.fail {
		return false, errLedger
	}
	return l.committed[hash], nil
}

func makeMint(n int) *transactionrecord.MintCandidate {
	return &transactionrecord.MintCandidate{
		Common: transactionrecord.Common{
			CreatedAt: "20201016000000",
			Data:      []byte(fmt.Sprintf("mint-%d", n)),
			AuthorSig: "author",
		},
		Cm: digest.Scalar([]byte(fmt.Sprintf("cm-%d", n))),
	}
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	consensusmocks "github.com/bitmark-inc/ledgerd/consensus/mocks"
	contractmocks "github.com/bitmark-inc/ledgerd/contract/mocks"
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/messagebus"
	"github.com/bitmark-inc/ledgerd/proof"
	proofmocks "github.com/bitmark-inc/ledgerd/proof/mocks"
	"github.com/bitmark-inc/ledgerd/reservoir"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
	"github.com/bitmark-inc/logger"
)

const testDepth = 4

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "block-test")
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

// everything a pipeline test needs
type fixture struct {
	store     *storage.Store
	tree      *merkle.Tree
	pool      *reservoir.Reservoir
	bus       *messagebus.Broadcast
	events    <-chan messagebus.Message
	consensus *consensusmocks.MockConsensus
	verifier  *proofmocks.MockVerifier
	processor *contractmocks.MockProcessor
	pipeline  *Pipeline
}

type option func(*Config)

func withRootWindow(n uint64) option {
	return func(c *Config) { c.RootWindow = n }
}

func withVerifier(v proof.Verifier) option {
	return func(c *Config) { c.Verifier = v }
}

func withoutProcessor() option {
	return func(c *Config) { c.Processor = nil }
}

func setup(t *testing.T, options ...option) *fixture {
	ctl := gomock.NewController(t)
	t.Cleanup(ctl.Finish)

	store, err := storage.Open(filepath.Join(t.TempDir(), "test.leveldb"), storage.ReadWrite)
	require.Nil(t, err, "storage open error")
	t.Cleanup(store.Close)

	tree, err := merkle.New(testDepth)
	require.Nil(t, err, "tree error")

	pool, err := reservoir.New(store, time.Hour, time.Hour)
	require.Nil(t, err, "pool error")

	f := &fixture{
		store:     store,
		tree:      tree,
		pool:      pool,
		bus:       messagebus.New(),
		consensus: consensusmocks.NewMockConsensus(ctl),
		verifier:  proofmocks.NewMockVerifier(ctl),
		processor: contractmocks.NewMockProcessor(ctl),
	}
	f.events = f.bus.Chan(100)

	config := Config{
		Store:      store,
		Tree:       tree,
		Pool:       pool,
		Bus:        f.bus,
		Consensus:  f.consensus,
		Verifier:   f.verifier,
		Processor:  f.processor,
		RootWindow: 8,
	}
	for _, o := range options {
		o(&config)
	}

	f.pipeline, err = New(config)
	require.Nil(t, err, "pipeline error")
	t.Cleanup(f.pipeline.Stop)

	return f
}

func d(s string) digest.Digest {
	return digest.Scalar([]byte(s))
}

func makeMint(cm string) *transactionrecord.MintCandidate {
	return &transactionrecord.MintCandidate{
		Common: transactionrecord.Common{
			CreatedAt: "20201016000000",
			Data:      []byte("mint " + cm),
			AuthorSig: "author",
		},
		Cm: d(cm),
	}
}

func makePour(rt digest.Digest, sn string, cms ...string) *transactionrecord.PourCandidate {
	p := &transactionrecord.PourCandidate{
		Common: transactionrecord.Common{
			CreatedAt: "20201016000001",
			Data:      []byte("pour " + sn),
			AuthorSig: "author",
		},
		Proof:     []byte("proof " + sn),
		Sns:       []digest.Digest{d(sn)},
		MerkleRts: []digest.Digest{rt},
	}
	for _, cm := range cms {
		p.Cms = append(p.Cms, d(cm))
	}
	return p
}

func makeCandidate(createdAt string, txs ...transactionrecord.Candidate) *blockrecord.Candidate {
	return &blockrecord.Candidate{
		ValidatorSig: "validator",
		Transactions: txs,
		WitnessSigs:  []string{"witness"},
		CreatedAt:    createdAt,
	}
}

// next message from the bus or fail
func nextEvent(t *testing.T, events <-chan messagebus.Message) messagebus.Message {
	select {
	case m := <-events:
		return m
	case <-time.After(time.Second):
		require.FailNow(t, "no event")
	}
	return messagebus.Message{}
}

func latestHeight(t *testing.T, s *storage.Store) uint64 {
	height, found, err := s.GetLatestBlockHeight()
	require.Nil(t, err, "height error")
	require.True(t, found, "no blocks")
	return height
}

func latestRoot(t *testing.T, s *storage.Store) digest.Digest {
	rt, found, err := s.GetLatestBlockMerkleRt()
	require.Nil(t, err, "root error")
	require.True(t, found, "no blocks")
	return rt
}

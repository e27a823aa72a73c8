// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/bitmark-inc/ledgerd/background"
	"github.com/bitmark-inc/ledgerd/consensus"
	"github.com/bitmark-inc/ledgerd/contract"
	"github.com/bitmark-inc/ledgerd/counter"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/messagebus"
	"github.com/bitmark-inc/ledgerd/proof"
	"github.com/bitmark-inc/ledgerd/reservoir"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/logger"
)

// Config - collaborators of a pipeline
//
// Processor may be nil when no contract engine is available, then
// any transaction that addresses a contract is rejected
type Config struct {
	Store     *storage.Store
	Tree      *merkle.Tree
	Pool      *reservoir.Reservoir
	Bus       *messagebus.Broadcast
	Consensus consensus.Consensus
	Verifier  proof.Verifier
	Processor contract.Processor

	// number of recent block roots a pour may refer to, 0 accepts
	// any root the ledger has ever produced
	RootWindow uint64
}

// Statistics - pipeline counters
type Statistics struct {
	Committed uint64 `json:"committed"`
	Rejected  uint64 `json:"rejected"`
	Empty     uint64 `json:"empty"`
}

// Pipeline - the only writer of the ledger
type Pipeline struct {
	sync.Mutex // protects background

	log *logger.L

	store      *storage.Store
	tree       *merkle.Tree
	pool       *reservoir.Reservoir
	bus        *messagebus.Broadcast
	consensus  consensus.Consensus
	verifier   proof.Verifier
	processor  contract.Processor
	rootWindow uint64

	// held from validation to commit of a block
	writer *semaphore.Weighted

	committed counter.Counter
	rejected  counter.Counter
	empty     counter.Counter

	background *background.T
}

// New - create a pipeline
func New(config Config) (*Pipeline, error) {
	log := logger.New("block")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	if nil == config.Store || nil == config.Tree || nil == config.Pool ||
		nil == config.Bus || nil == config.Consensus || nil == config.Verifier {
		log.Critical("pipeline is missing a collaborator")
		return nil, fault.ErrNotInitialised
	}

	if nil == config.Processor {
		log.Warn("no contract processor: contract transactions will be rejected")
	}
	log.Infof("tree depth: %d  root window: %d", config.Tree.Depth(), config.RootWindow)

	return &Pipeline{
		log:        log,
		store:      config.Store,
		tree:       config.Tree,
		pool:       config.Pool,
		bus:        config.Bus,
		consensus:  config.Consensus,
		verifier:   config.Verifier,
		processor:  config.Processor,
		rootWindow: config.RootWindow,
		writer:     semaphore.NewWeighted(1),
	}, nil
}

// Statistics - snapshot of the counters
func (p *Pipeline) Statistics() Statistics {
	return Statistics{
		Committed: p.committed.Uint64(),
		Rejected:  p.rejected.Uint64(),
		Empty:     p.empty.Uint64(),
	}
}

// Start - build a block from the pool every interval
func (p *Pipeline) Start(interval time.Duration) {
	p.Lock()
	defer p.Unlock()

	if nil != p.background {
		return
	}

	p.log.Infof("start builder, interval: %s", interval)

	processes := background.Processes{
		&background.Periodic{
			Interval: interval,
			Tick:     build(interval),
		},
	}
	p.background = background.Start(processes, p)
}

// Stop - stop the builder and wait for a block in progress
func (p *Pipeline) Stop() {
	p.Lock()
	b := p.background
	p.background = nil
	p.Unlock()

	b.Stop()

	p.log.Info("stopped")
	p.log.Flush()
}

// a tick that is still waiting for the writer when the next one is
// due gives up
func build(interval time.Duration) func(args interface{}) {
	return func(args interface{}) {
		p := args.(*Pipeline)

		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()

		hash, err := p.WriteBlock(ctx, nil)
		switch {
		case nil == err && nil == hash:
			p.log.Trace("nothing to do")
		case nil == err:
			p.log.Debugf("built: %v", hash)
		case fault.IsValidation(err):
			// already logged with its reason
		case context.DeadlineExceeded == err:
			p.log.Debug("writer busy")
		default:
			p.log.Criticalf("build error: %s", err)
		}
	}
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/ledgerd/background"
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
	"github.com/bitmark-inc/logger"
)

// defaults
const (
	DefaultExpiry         = 2 * time.Hour
	DefaultRejectedExpiry = 10 * time.Minute
	minimumExpiryCycle    = time.Second
)

// CommitChecker - answers whether a transaction is already in the ledger
type CommitChecker interface {
	HasTx(hash digest.Digest) (bool, error)
}

type entry struct {
	hash      digest.Digest
	candidate transactionrecord.Candidate
	sequence  uint64
	expires   time.Time
}

// Reservoir - the transaction pool
type Reservoir struct {
	sync.RWMutex

	log      *logger.L
	ledger   CommitChecker
	entries  map[digest.Digest]*entry
	sequence uint64
	expiry   time.Duration

	rejected   *cache.Cache
	background *background.T
}

// New - create an empty pool
//
// expiry is how long a candidate may wait before it is dropped,
// rejectedExpiry is how long a rejected hash is refused
func New(ledger CommitChecker, expiry time.Duration, rejectedExpiry time.Duration) (*Reservoir, error) {
	log := logger.New("reservoir")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	if rejectedExpiry <= 0 {
		rejectedExpiry = DefaultRejectedExpiry
	}

	return &Reservoir{
		log:      log,
		ledger:   ledger,
		entries:  make(map[digest.Digest]*entry),
		expiry:   expiry,
		rejected: cache.New(rejectedExpiry, rejectedExpiry),
	}, nil
}

// Start - run the expiry loop in the background
func (r *Reservoir) Start() {
	r.Lock()
	defer r.Unlock()

	if nil != r.background {
		return
	}

	cycle := r.expiry / 4
	if cycle < minimumExpiryCycle {
		cycle = minimumExpiryCycle
	}

	r.log.Infof("start expiry, cycle: %s", cycle)

	// list of background processes to start
	processes := background.Processes{
		&background.Periodic{
			Interval: cycle,
			Tick:     expire,
		},
	}
	r.background = background.Start(processes, r)
}

// Stop - stop the background loop
func (r *Reservoir) Stop() {
	r.Lock()
	b := r.background
	r.background = nil
	r.Unlock()

	b.Stop()

	r.log.Info("stopped")
	r.log.Flush()
}

func expire(args interface{}) {
	r := args.(*Reservoir)
	if n := r.Expire(time.Now()); n > 0 {
		r.log.Infof("expired: %d", n)
	}
}

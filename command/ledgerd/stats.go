// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"runtime"
	"time"

	"github.com/bitmark-inc/ledgerd/block"
	"github.com/bitmark-inc/ledgerd/messagebus"
	"github.com/bitmark-inc/logger"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// memoryStats - periodic memory and pipeline report
type memoryStats struct{}

func (*memoryStats) Run(args interface{}, shutdown <-chan struct{}) {

	log := logger.New("memory")
	pipeline := args.(*block.Pipeline)

	ticker := time.NewTicker(statsDelay)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
		}

		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		text, err := json.Marshal(m)
		if nil != err {
			log.Errorf("marshal error: %s", err)
		} else {
			log.Infof("stats: %s", text)
		}
		a := m.Alloc / mega
		t := m.TotalAlloc / mega
		s := m.Sys / mega
		log.Warnf("allocated: %d M  cumulative: %d M  OS virtual: %d M", a, t, s)

		statistics := pipeline.Statistics()
		log.Infof("blocks committed: %d  rejected: %d  empty: %d", statistics.Committed, statistics.Rejected, statistics.Empty)
	}
}

// eventLogger - record each bus message
type eventLogger struct {
	bus    *messagebus.Broadcast
	events <-chan messagebus.Message
}

func newEventLogger(bus *messagebus.Broadcast) *eventLogger {
	return &eventLogger{
		bus:    bus,
		events: bus.Chan(0),
	}
}

func (e *eventLogger) Run(args interface{}, shutdown <-chan struct{}) {

	log := logger.New("events")
	defer e.bus.Release(e.events)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item := <-e.events:
			switch m := item.Item.(type) {
			case messagebus.NewBlock:
				log.Infof("new block: %d  hash: %s", m.Height, m.Hash)
			case messagebus.TxPoolStat:
				log.Debugf("pool: %d transactions waiting", len(m.TxHashes))
			default:
				log.Warnf("unexpected message: %q", item.Command)
			}
		}
	}
	if dropped := e.bus.Dropped(); dropped > 0 {
		log.Warnf("messages dropped: %d", dropped)
	}
}

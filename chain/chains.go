// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"time"
)

// names of all chains
const (
	Bitmark = "bitmark"
	Testing = "testing"
	Local   = "local"
)

// Parameters - per chain ledger defaults
type Parameters struct {
	TreeDepth     int           // commitment tree depth
	RootWindow    uint64        // recent roots a pour may refer to
	BlockInterval time.Duration // how often a block is built
}

var parameters = map[string]Parameters{
	Bitmark: {
		TreeDepth:     32,
		RootWindow:    8,
		BlockInterval: 10 * time.Second,
	},
	Testing: {
		TreeDepth:     32,
		RootWindow:    8,
		BlockInterval: 5 * time.Second,
	},
	Local: {
		TreeDepth:     16,
		RootWindow:    8,
		BlockInterval: time.Second,
	},
}

// Valid - validate a chain name
func Valid(name string) bool {
	_, ok := parameters[name]
	return ok
}

// Defaults - parameters of a chain, false for an unknown chain
func Defaults(name string) (Parameters, bool) {
	p, ok := parameters[name]
	return p, ok
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reservoir - the pool of transaction candidates waiting to
// be assembled into a block
//
// the pool has its own lock so network inserts never wait for a block
// commit, candidates that fail structural checks are refused on entry
// and candidates that a block commit found to be permanently invalid
// are remembered for a while so they cannot be resubmitted at once
package reservoir

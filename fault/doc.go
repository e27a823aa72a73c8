// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Three outcomes matter to callers of the ledger:
//
//	validation - the candidate block is rejected, the node continues
//	storage    - the underlying database failed, the node should stop
//	integrity  - a stored record failed to unpack, the node should stop
package fault

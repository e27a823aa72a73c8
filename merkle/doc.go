// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle - fixed depth commitment tree
//
// leaves are coin commitments in insertion order, the node at
// (height, index) has children (height-1, 2*index) and
// (height-1, 2*index+1), the root is (depth, 0)
//
// nodes are read through a NodeReader (normally the ledger store)
// and all writes go to an Update which holds the new nodes in memory
// until the caller persists them as part of a block
package merkle

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk ledger
//
// This maintains a LevelDB database split into a series of column
// families.  Each family is defined by a prefix byte that is obtained
// from the prefix tag in the struct defining the available pools.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++       = concatenation of byte data
// 3. height   = big endian u128 (16 bytes)
// 4. cmIdx    = big endian u128 (16 bytes)
// 5. hash     = 32 byte SHA3-256 content digest
// 6. cm/sn/rt = 32 byte values
// 7. location = merkle node address as text "{height}_{index}"
//
// Blocks:
//
//	H ++ height                - block hash at height
//	                             data: hash
//	B ++ hash                  - block entity
//	                             data: packed block record
//	R ++ merkle root           - height of the block that produced the root
//	                             data: height
//
// Transactions:
//
//	Y ++ tx hash               - transaction type discriminant
//	                             data: tag (varint)
//	M ++ tx hash               - mint transaction entity
//	                             data: packed transaction record
//	P ++ tx hash               - pour transaction entity
//	                             data: packed transaction record
//
// Coins:
//
//	C ++ cm                    - leaf index of a commitment
//	                             data: cmIdx
//	I ++ cmIdx                 - commitment at a leaf index
//	                             data: cm
//	S ++ sn                    - spent serial numbers
//	                             data: hash of the spending transaction
//	N ++ location              - commitment tree nodes
//	                             data: 32 byte node value
//
// Contracts:
//
//	A ++ contract address      - transaction that last addressed the contract
//	                             data: tx hash
//	Q ++ contract address      - contract state
//	                             data: opaque state blob
//
// all writes belonging to one block are collected in a Batch and
// applied with a single database write
package storage

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockrecord - block candidates and committed block records
//
// a candidate is what consensus hands to the commit pipeline, a block
// is what the ledger stores once the candidate has been applied
package blockrecord

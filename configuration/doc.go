// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// most of base Lua is available such as reading files to set key data
// and getenv to extract environment supplied items.  The file must
// return a table, e.g.
//
//	local M = {}
//	M.data_directory = "."
//	M.chain = "local"
//	M.ledger = { tree_depth = 20, root_window = 8 }
//	return M
package configuration

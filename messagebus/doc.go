// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - broadcast of ledger events to any number of
// listeners, a slow listener loses messages rather than blocking the
// sender
package messagebus

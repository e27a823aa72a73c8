// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"strconv"
	"strings"

	"github.com/bitmark-inc/ledgerd/fault"
)

// Location - textual node address "{height}_{index}" used as the storage key
func Location(height int, index uint64) string {
	return strconv.Itoa(height) + "_" + strconv.FormatUint(index, 10)
}

// ParseLocation - inverse of Location
func ParseLocation(location string) (int, uint64, error) {
	s := strings.SplitN(location, "_", 2)
	if 2 != len(s) {
		return 0, 0, fault.ErrInvalidMerkleLocation
	}
	height, err := strconv.Atoi(s[0])
	if nil != err || height < 0 || height > MaximumDepth {
		return 0, 0, fault.ErrInvalidMerkleLocation
	}
	index, err := strconv.ParseUint(s[1], 10, 64)
	if nil != err {
		return 0, 0, fault.ErrInvalidMerkleLocation
	}
	return height, index, nil
}

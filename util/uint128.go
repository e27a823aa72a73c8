// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/fault"
)

// Uint128Length - bytes in a persisted height or commitment index
const Uint128Length = 16

// ToUint128BE - big endian 128 bit encoding of a 64 bit value
//
// heights and commitment indexes are persisted as u128 so that any
// reader of the database sees fixed width keys that sort numerically
func ToUint128BE(value uint64) []byte {
	buffer := make([]byte, Uint128Length)
	binary.BigEndian.PutUint64(buffer[8:], value)
	return buffer
}

// FromUint128BE - decode a value written by ToUint128BE
//
// values that do not fit in 64 bits cannot have been written by this
// program and are reported as a wrong length
func FromUint128BE(buffer []byte) (uint64, error) {
	if Uint128Length != len(buffer) {
		return 0, fault.ErrWrongIndexLength
	}
	if 0 != binary.BigEndian.Uint64(buffer[:8]) {
		return 0, fault.ErrWrongIndexLength
	}
	return binary.BigEndian.Uint64(buffer[8:]), nil
}

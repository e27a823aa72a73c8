// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

func TestRecordReadBack(t *testing.T) {
	buffer := util.AppendUint64(nil, 300)
	buffer = util.AppendString(buffer, "created-at")
	buffer = util.AppendBytes(buffer, []byte{1, 2, 3})
	buffer = util.AppendBytes(buffer, []byte{9, 8})

	r := util.NewReader(buffer)
	assert.Equal(t, uint64(300), r.Uint64(), "wrong number")
	assert.Equal(t, "created-at", r.String(), "wrong string")
	assert.Equal(t, []byte{1, 2, 3}, r.Bytes(), "wrong bytes")

	fixed := [2]byte{}
	r.Fixed(fixed[:])
	assert.Equal(t, [2]byte{9, 8}, fixed, "wrong fixed field")
	assert.Nil(t, r.Finish(), "record should be fully consumed")
}

func TestRecordTruncated(t *testing.T) {
	buffer := util.AppendBytes(nil, []byte{1, 2, 3, 4})

	r := util.NewReader(buffer[:3])
	assert.Nil(t, r.Bytes(), "truncated field should be nil")
	assert.Equal(t, fault.ErrTruncatedRecord, r.Err(), "wrong error")
	assert.Equal(t, uint64(0), r.Uint64(), "reads after an error return zero")

	r = util.NewReader(append(buffer, 0x00))
	r.Bytes()
	assert.Equal(t, fault.ErrTruncatedRecord, r.Finish(), "trailing bytes must be an error")

	fixed := [3]byte{}
	r = util.NewReader(buffer)
	r.Fixed(fixed[:])
	assert.Equal(t, fault.ErrTruncatedRecord, r.Err(), "length mismatch must be an error")
}

func TestUint128(t *testing.T) {
	encoded := util.ToUint128BE(0x0102)
	assert.Equal(t, 16, len(encoded), "wrong length")
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x01, 0x02}, encoded, "wrong encoding")

	value, err := util.FromUint128BE(encoded)
	assert.Nil(t, err, "unexpected error")
	assert.Equal(t, uint64(0x0102), value, "wrong value")

	encoded[0] = 1
	_, err = util.FromUint128BE(encoded)
	assert.Equal(t, fault.ErrWrongIndexLength, err, "high half must be zero")

	_, err = util.FromUint128BE(encoded[:8])
	assert.Equal(t, fault.ErrWrongIndexLength, err, "short buffer must be rejected")
}

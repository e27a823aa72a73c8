// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/bitmark-inc/ledgerd/fault"
)

// limits applied when reading variable length fields
const (
	maximumFieldLength = 1 << 24
	maximumListCount   = 1 << 16
)

// AppendBytes - append a length prefixed byte slice
func AppendBytes(buffer []byte, data []byte) []byte {
	buffer = AppendVarint64(buffer, uint64(len(data)))
	return append(buffer, data...)
}

// AppendString - append a length prefixed string
func AppendString(buffer []byte, s string) []byte {
	buffer = AppendVarint64(buffer, uint64(len(s)))
	return append(buffer, s...)
}

// AppendUint64 - append a varint value
func AppendUint64(buffer []byte, value uint64) []byte {
	return AppendVarint64(buffer, value)
}

// Reader - sequential decoder for records built with the Append functions
//
// the first failure is remembered and all later reads return zero
// values, so a record can be read completely and checked once
type Reader struct {
	buffer []byte
	offset int
	err    error
}

// NewReader - start reading a packed record
func NewReader(buffer []byte) *Reader {
	return &Reader{buffer: buffer}
}

// Err - first error encountered
func (r *Reader) Err() error {
	return r.err
}

// Remaining - count of unread bytes
func (r *Reader) Remaining() int {
	return len(r.buffer) - r.offset
}

// Uint64 - read a varint value
func (r *Reader) Uint64() uint64 {
	if nil != r.err {
		return 0
	}
	value, n := FromVarint64(r.buffer[r.offset:])
	if 0 == n {
		r.err = fault.ErrTruncatedRecord
		return 0
	}
	r.offset += n
	return value
}

// Count - read a list length
func (r *Reader) Count() int {
	if nil != r.err {
		return 0
	}
	n, size := ClippedVarint64(r.buffer[r.offset:], 0, maximumListCount)
	if 0 == size {
		r.err = fault.ErrTruncatedRecord
		return 0
	}
	r.offset += size
	return n
}

// Bytes - read a length prefixed field, result is a copy and an
// empty field reads as nil
func (r *Reader) Bytes() []byte {
	if nil != r.err {
		return nil
	}
	length, n := ClippedVarint64(r.buffer[r.offset:], 0, maximumFieldLength)
	if 0 == n || r.offset+n+length > len(r.buffer) {
		r.err = fault.ErrTruncatedRecord
		return nil
	}
	r.offset += n
	if 0 == length {
		return nil
	}
	data := make([]byte, length)
	copy(data, r.buffer[r.offset:r.offset+length])
	r.offset += length
	return data
}

// Fixed - read exactly len(into) bytes that were length prefixed
func (r *Reader) Fixed(into []byte) {
	data := r.Bytes()
	if nil != r.err {
		return
	}
	if len(data) != len(into) {
		r.err = fault.ErrTruncatedRecord
		return
	}
	copy(into, data)
}

// String - read a length prefixed string
func (r *Reader) String() string {
	return string(r.Bytes())
}

// Finish - error if anything remains unread
func (r *Reader) Finish() error {
	if nil == r.err && 0 != r.Remaining() {
		r.err = fault.ErrTruncatedRecord
	}
	return r.err
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package digest - the 32 byte hash used for commitments, serial
// numbers, merkle nodes, transaction ids and block ids
package digest

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

// Length - number of bytes in the digest
const Length = 32

// Digest - raw 32 byte array, persisted as is
//
// to convert to bytes just use d[:]
type Digest [Length]byte

// Zero - the all zero digest
var Zero Digest

// NewDigest - SHA3-256 of a byte slice
func NewDigest(record []byte) Digest {
	return sha3.Sum256(record)
}

// Of - SHA3-256 over a sequence of length prefixed items
//
// prefixing each item keeps ("ab", "c") distinct from ("a", "bc")
func Of(items ...[]byte) Digest {
	h := sha3.New256()
	for _, item := range items {
		h.Write(util.ToVarint64(uint64(len(item))))
		h.Write(item)
	}
	d := Digest{}
	h.Sum(d[:0])
	return d
}

// IsZero - true for the all zero digest
func (digest Digest) IsZero() bool {
	return digest == Zero
}

// String - hex text for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - hex text for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<digest:" + hex.EncodeToString(digest[:]) + ">"
}

// Scan - convert a hex representation to a digest for use by the format package scan routines
func (digest *Digest) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
	})
	if nil != err {
		return err
	}
	return digest.UnmarshalText(token)
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(digest)))
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if Length != hex.DecodedLen(len(s)) {
		return fault.ErrWrongDigestLength
	}
	buffer := make([]byte, Length)
	if _, err := hex.Decode(buffer, s); nil != err {
		return err
	}
	copy(digest[:], buffer)
	return nil
}

// FromBytes - convert and validate a binary byte slice to a digest
func FromBytes(digest *Digest, buffer []byte) error {
	if Length != len(buffer) {
		return fault.ErrWrongDigestLength
	}
	copy(digest[:], buffer)
	return nil
}

// FromHex - parse hex text, for configuration and tests
func FromHex(s string) (Digest, error) {
	d := Digest{}
	err := d.UnmarshalText([]byte(s))
	return d, err
}

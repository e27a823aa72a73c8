// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/fault"
)

func TestScanFmt(t *testing.T) {
	stringDigest := "00000000440b921e1b77c6c0487ae5616de67f788f44ae2a5af6e2194d16b6f8"

	var d digest.Digest
	n, err := fmt.Sscan(stringDigest, &d)
	if nil != err {
		t.Fatalf("hex to digest error: %v", err)
	}
	if 1 != n {
		t.Fatalf("scanned %d items expected to scan 1", n)
	}

	assert.Equal(t, byte(0x00), d[0], "first byte")
	assert.Equal(t, byte(0xf8), d[31], "last byte")
	assert.Equal(t, stringDigest, fmt.Sprintf("%s", d), "string form")
	assert.Equal(t, "<digest:"+stringDigest+">", fmt.Sprintf("%#v", d), "go string form")
}

func TestDigest(t *testing.T) {
	// printf '%s' 'hello world' | sha3sum -a 256
	expected, err := digest.FromHex("644bcc7e564373040999aac89e7622f3ca71fba1d972fd94a31c3bfbf24e3938")
	assert.Nil(t, err, "unexpected error")
	assert.Equal(t, expected, digest.NewDigest([]byte("hello world")), "wrong SHA3-256")
}

func TestOfIsPrefixed(t *testing.T) {
	a := digest.Of([]byte("ab"), []byte("c"))
	b := digest.Of([]byte("a"), []byte("bc"))
	assert.NotEqual(t, a, b, "item boundaries must change the digest")
	assert.Equal(t, a, digest.Of([]byte("ab"), []byte("c")), "digest must be deterministic")
}

func TestFromBytes(t *testing.T) {
	var d digest.Digest
	assert.Equal(t, fault.ErrWrongDigestLength, digest.FromBytes(&d, []byte{1, 2}), "short slice")
	assert.True(t, d.IsZero(), "digest must be untouched")

	buffer := make([]byte, digest.Length)
	buffer[3] = 7
	assert.Nil(t, digest.FromBytes(&d, buffer), "unexpected error")
	assert.Equal(t, byte(7), d[3], "copy failed")

	text, _ := d.MarshalText()
	var back digest.Digest
	assert.Nil(t, back.UnmarshalText(text), "unexpected error")
	assert.Equal(t, d, back, "text form did not read back")
}

func TestScalar(t *testing.T) {
	// BN254 scalar field modulus
	modulus, err := digest.FromHex("30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000001")
	assert.Nil(t, err, "unexpected error")

	below, err := digest.FromHex("30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000000")
	assert.Nil(t, err, "unexpected error")

	assert.True(t, digest.Zero.IsScalar(), "zero is in the field")
	assert.True(t, below.IsScalar(), "modulus - 1 is in the field")
	assert.False(t, modulus.IsScalar(), "modulus is not canonical")

	// 49 + modulus aliases 49 inside the field
	alias := modulus
	alias[31] += 49
	assert.False(t, alias.IsScalar(), "aliased value is not canonical")

	all := digest.Digest{}
	for i := range all {
		all[i] = 0xff
	}
	assert.False(t, all.IsScalar(), "2^256-1 is not canonical")

	for _, s := range []string{"a", "b", "hello world", "cm-1"} {
		d := digest.Scalar([]byte(s))
		assert.True(t, d.IsScalar(), "scalar of %q not canonical", s)
		assert.Equal(t, d, digest.Scalar([]byte(s)), "scalar of %q not deterministic", s)
	}
	assert.NotEqual(t, digest.Scalar([]byte("ab"), []byte("c")), digest.Scalar([]byte("a"), []byte("bc")), "items not separated")
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// IsScalar - true when the digest is the canonical big-endian
// encoding of a BN254 scalar field element, i.e. less than the modulus
//
// a proof only sees its inputs modulo the field, so a value and the
// same value plus the modulus verify alike; only the canonical form
// may be stored
func (digest Digest) IsScalar() bool {
	var e fr.Element
	return nil == e.SetBytesCanonical(digest[:])
}

// Scalar - hash of the items reduced into the BN254 scalar field
func Scalar(items ...[]byte) Digest {
	d := Of(items...)
	var e fr.Element
	e.SetBytes(d[:])
	return Digest(e.Bytes())
}

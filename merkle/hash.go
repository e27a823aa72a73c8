// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"

	"github.com/bitmark-inc/ledgerd/digest"
)

// Combine - two-to-one hash of a pair of sibling nodes
//
// both inputs are reduced into the BN254 scalar field so that the
// same value is computed inside a proving circuit
func Combine(left digest.Digest, right digest.Digest) digest.Digest {
	l := canonical(left)
	r := canonical(right)

	h := mimc.NewMiMC()
	h.Write(l[:])
	h.Write(r[:])

	var result digest.Digest
	copy(result[:], h.Sum(nil))
	return result
}

func canonical(d digest.Digest) [fr.Bytes]byte {
	var e fr.Element
	e.SetBytes(d[:])
	return e.Bytes()
}

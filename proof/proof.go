// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof

import (
	"bytes"
	"io"
	"os"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"

	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/logger"
)

// Verifier - checks a zero-knowledge proof against its public inputs
//
// false with a nil error is an invalid proof; a non-nil error means
// the verifier itself could not run
type Verifier interface {
	Verify(proof []byte, publicInputs []digest.Digest) (bool, error)
}

// Groth16 - verifier for serialised BN254 groth16 proofs
type Groth16 struct {
	log *logger.L
	vk  groth16.VerifyingKey
}

// NewGroth16 - read a serialised verifying key
func NewGroth16(r io.Reader) (*Groth16, error) {
	log := logger.New("proof")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	vk := groth16.NewVerifyingKey(ecc.BN254)
	n, err := vk.ReadFrom(r)
	if nil != err {
		log.Errorf("read verifying key error: %s", err)
		return nil, err
	}
	log.Infof("verifying key: %d bytes, public inputs: %d", n, vk.NbPublicWitness())

	return &Groth16{
		log: log,
		vk:  vk,
	}, nil
}

// LoadGroth16 - read the verifying key from a file
func LoadGroth16(fileName string) (*Groth16, error) {
	f, err := os.Open(fileName)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	return NewGroth16(f)
}

// Verify - a malformed proof is reported as invalid, not as an error
//
// every public input must already be a canonical field element, a
// value at or above the modulus is invalid rather than reduced
func (g *Groth16) Verify(proofBytes []byte, publicInputs []digest.Digest) (bool, error) {
	if len(publicInputs) != g.vk.NbPublicWitness() {
		g.log.Debugf("public input count: %d  expected: %d", len(publicInputs), g.vk.NbPublicWitness())
		return false, nil
	}

	p := groth16.NewProof(ecc.BN254)
	if _, err := p.ReadFrom(bytes.NewReader(proofBytes)); nil != err {
		g.log.Debugf("malformed proof: %s", err)
		return false, nil
	}

	values := make([]fr.Element, len(publicInputs))
	for i, input := range publicInputs {
		if err := values[i].SetBytesCanonical(input[:]); nil != err {
			g.log.Debugf("public input: %d  value: %s  not in field", i, input)
			return false, nil
		}
	}

	w, err := publicWitness(values)
	if nil != err {
		g.log.Errorf("build witness error: %s", err)
		return false, err
	}

	if err := groth16.Verify(p, g.vk, w); nil != err {
		g.log.Debugf("verify: %s", err)
		return false, nil
	}
	return true, nil
}

// public witness holding the values in the order given
func publicWitness(inputs []fr.Element) (witness.Witness, error) {
	w, err := witness.New(ecc.BN254.ScalarField())
	if nil != err {
		return nil, err
	}

	values := make(chan any, len(inputs))
	for _, e := range inputs {
		values <- e
	}
	close(values)

	if err := w.Fill(len(inputs), 0, values); nil != err {
		return nil, err
	}
	return w, nil
}

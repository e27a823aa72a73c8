// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/logger"
)

// public inputs are declared in the same order as a pour:
// root, serial number, commitment
type pourCircuit struct {
	Rt     frontend.Variable `gnark:",public"`
	Sn     frontend.Variable `gnark:",public"`
	Cm     frontend.Variable `gnark:",public"`
	Secret frontend.Variable
}

func (c *pourCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(api.Add(c.Rt, c.Sn, c.Secret), c.Cm)
	return nil
}

type fixture struct {
	vk    []byte
	proof []byte
}

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "proof-test")
	if nil != err {
		panic(err)
	}

	config := logger.Configuration{
		Directory: dir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(config); nil != err {
		panic(err)
	}

	rc := m.Run()

	logger.Finalise()
	os.RemoveAll(dir)
	os.Exit(rc)
}

func small(n byte) digest.Digest {
	var d digest.Digest
	d[len(d)-1] = n
	return d
}

func makeFixture(t *testing.T) fixture {
	var circuit pourCircuit
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit)
	require.Nil(t, err, "compile")

	pk, vk, err := groth16.Setup(ccs)
	require.Nil(t, err, "setup")

	assignment := pourCircuit{Rt: 1, Sn: 2, Cm: 6, Secret: 3}
	w, err := frontend.NewWitness(&assignment, ecc.BN254.ScalarField())
	require.Nil(t, err, "witness")

	p, err := groth16.Prove(ccs, pk, w)
	require.Nil(t, err, "prove")

	var f fixture
	buffer := new(bytes.Buffer)
	_, err = vk.WriteTo(buffer)
	require.Nil(t, err, "write verifying key")
	f.vk = buffer.Bytes()

	buffer = new(bytes.Buffer)
	_, err = p.WriteTo(buffer)
	require.Nil(t, err, "write proof")
	f.proof = buffer.Bytes()

	return f
}

func TestGroth16(t *testing.T) {
	f := makeFixture(t)

	v, err := NewGroth16(bytes.NewReader(f.vk))
	require.Nil(t, err, "read verifying key")

	ok, err := v.Verify(f.proof, []digest.Digest{small(1), small(2), small(6)})
	assert.Nil(t, err, "wrong error")
	assert.True(t, ok, "valid proof rejected")

	ok, err = v.Verify(f.proof, []digest.Digest{small(1), small(2), small(7)})
	assert.Nil(t, err, "wrong error")
	assert.False(t, ok, "proof accepted with wrong commitment")

	ok, err = v.Verify(f.proof, []digest.Digest{small(1), small(2)})
	assert.Nil(t, err, "wrong error")
	assert.False(t, ok, "proof accepted with missing input")

	ok, err = v.Verify([]byte("not a proof"), []digest.Digest{small(1), small(2), small(6)})
	assert.Nil(t, err, "wrong error")
	assert.False(t, ok, "malformed proof accepted")

	ok, err = v.Verify(nil, []digest.Digest{small(1), small(2), small(6)})
	assert.Nil(t, err, "wrong error")
	assert.False(t, ok, "empty proof accepted")
}

func TestLoadGroth16(t *testing.T) {
	f := makeFixture(t)

	fileName := filepath.Join(t.TempDir(), "verifying.key")
	require.Nil(t, os.WriteFile(fileName, f.vk, 0600), "write key file")

	v, err := LoadGroth16(fileName)
	require.Nil(t, err, "load verifying key")

	ok, err := v.Verify(f.proof, []digest.Digest{small(1), small(2), small(6)})
	assert.Nil(t, err, "wrong error")
	assert.True(t, ok, "valid proof rejected")

	_, err = LoadGroth16(filepath.Join(t.TempDir(), "missing.key"))
	assert.NotNil(t, err, "missing key file accepted")

	_, err = NewGroth16(bytes.NewReader([]byte("garbage")))
	assert.NotNil(t, err, "garbage verifying key accepted")
}

// the same value plus the field modulus
func aliased(t *testing.T, d digest.Digest) digest.Digest {
	modulus := fr.Modulus().Bytes()
	require.Equal(t, digest.Length, len(modulus), "modulus length")

	carry := 0
	for i := digest.Length - 1; i >= 0; i -= 1 {
		n := int(d[i]) + int(modulus[i]) + carry
		d[i] = byte(n)
		carry = n >> 8
	}
	require.Equal(t, 0, carry, "alias overflow")
	return d
}

func TestGroth16NonCanonicalInput(t *testing.T) {
	f := makeFixture(t)

	v, err := NewGroth16(bytes.NewReader(f.vk))
	require.Nil(t, err, "read verifying key")

	ok, err := v.Verify(f.proof, []digest.Digest{small(1), aliased(t, small(2)), small(6)})
	assert.Nil(t, err, "wrong error")
	assert.False(t, ok, "proof accepted with aliased serial number")

	ok, err = v.Verify(f.proof, []digest.Digest{aliased(t, small(1)), small(2), small(6)})
	assert.Nil(t, err, "wrong error")
	assert.False(t, ok, "proof accepted with aliased root")

	ok, err = v.Verify(f.proof, []digest.Digest{small(1), small(2), small(6)})
	assert.Nil(t, err, "wrong error")
	assert.True(t, ok, "valid proof rejected")
}

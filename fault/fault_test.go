// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/fault"
)

// each ledger error belongs to exactly one class
func TestClasses(t *testing.T) {
	classes := map[string]func(error) bool{
		"exists":    fault.IsErrExists,
		"invalid":   fault.IsErrInvalid,
		"length":    fault.IsErrLength,
		"not found": fault.IsErrNotFound,
		"process":   fault.IsErrProcess,
		"record":    fault.IsErrRecord,
		"storage":   fault.IsErrStorage,
	}

	errorList := []struct {
		err   error
		class string
	}{
		{fault.ErrDuplicateBlock, "exists"},
		{fault.ErrTransactionAlreadyCommitted, "exists"},
		{fault.ErrDoubleSpend, "invalid"},
		{fault.ErrStaleOrUnknownRoot, "invalid"},
		{fault.ErrDuplicateCommitment, "invalid"},
		{fault.ErrNonCanonicalField, "invalid"},
		{fault.ErrWrongDigestLength, "length"},
		{fault.ErrWrongIndexLength, "length"},
		{fault.ErrNotInitialised, "not found"},
		{fault.ErrConsensusDeclined, "process"},
		{fault.ErrProofVerifierFailed, "process"},
		{fault.ErrCannotDecodeBlock, "record"},
		{fault.ErrTruncatedRecord, "record"},
		{fault.ErrStorage, "storage"},
	}

	for _, e := range errorList {
		for name, is := range classes {
			assert.Equal(t, name == e.class, is(e.err), "%q in class %q", e.err, name)
		}
	}
}

type item string

func (i item) String() string { return string(i) }

func TestOutcomes(t *testing.T) {
	rejected := fault.DoubleSpend(item("abcd"))
	assert.True(t, fault.IsValidation(rejected), "double spend is a validation error")
	assert.True(t, errors.Is(rejected, fault.ErrDoubleSpend), "wrong reason")
	assert.False(t, fault.IsStorage(rejected), "double spend is not a storage error")
	assert.Equal(t, "serial number already spent: abcd", rejected.Error(), "wrong message")

	underlying := errors.New("disk on fire")
	storage := fault.Storage("write", underlying)
	assert.True(t, fault.IsStorage(storage), "wrapped error is a storage error")
	assert.True(t, errors.Is(storage, underlying), "underlying error lost")
	assert.False(t, fault.IsValidation(storage), "storage error is not a validation error")
	assert.Equal(t, storage, fault.Storage("again", storage), "storage error wrapped twice")
	assert.Nil(t, fault.Storage("write", nil), "nil must stay nil")

	corrupt := fault.Integrity("BlockEntity", []byte{1, 2}, fault.ErrTruncatedRecord)
	assert.True(t, fault.IsIntegrity(corrupt), "wrapped record error is an integrity error")
	assert.True(t, fault.IsIntegrity(fault.ErrCannotDecodeBlock), "record error is an integrity error")
	assert.False(t, fault.IsIntegrity(rejected), "validation error is not an integrity error")
}

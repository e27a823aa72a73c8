// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
)

// ValidationError - a candidate block was rejected
//
// Reason is one of the error instances above so that callers can use
// errors.Is(err, fault.ErrDoubleSpend) etc.  Item holds the offending
// value (serial number, root, block hash...) as text.
type ValidationError struct {
	Reason error
	Item   string
}

func (e *ValidationError) Error() string {
	if "" == e.Item {
		return e.Reason.Error()
	}
	return e.Reason.Error() + ": " + e.Item
}

func (e *ValidationError) Unwrap() error { return e.Reason }

// Rejected - wrap a reason and the offending item
func Rejected(reason error, item interface{}) error {
	if nil == item {
		return &ValidationError{Reason: reason}
	}
	return &ValidationError{
		Reason: reason,
		Item:   fmt.Sprintf("%v", item),
	}
}

func DoubleSpend(sn fmt.Stringer) error         { return Rejected(ErrDoubleSpend, sn) }
func StaleOrUnknownRoot(rt fmt.Stringer) error  { return Rejected(ErrStaleOrUnknownRoot, rt) }
func InvalidProof(txHash fmt.Stringer) error    { return Rejected(ErrInvalidProof, txHash) }
func DuplicateBlock(hash fmt.Stringer) error    { return Rejected(ErrDuplicateBlock, hash) }
func CapacityExceeded(leafIndex uint64) error   { return Rejected(ErrCapacityExceeded, leafIndex) }
func DuplicateCommitment(cm fmt.Stringer) error { return Rejected(ErrDuplicateCommitment, cm) }

// IsValidation - candidate was rejected, node may continue
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// StorageFailure - the database could not be read or written
type StorageFailure struct {
	Op  string
	Err error
}

func (e *StorageFailure) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrStorage, e.Op, e.Err)
}

func (e *StorageFailure) Unwrap() []error { return []error{ErrStorage, e.Err} }

// Storage - wrap a database error, nil stays nil
func Storage(op string, err error) error {
	if nil == err {
		return nil
	}
	var already *StorageFailure
	if errors.As(err, &already) {
		return err
	}
	return &StorageFailure{Op: op, Err: err}
}

// IsStorage - infrastructure failure, node should stop
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}

// IntegrityFailure - a stored record does not unpack into its expected shape
type IntegrityFailure struct {
	Column string
	Key    []byte
	Err    error
}

func (e *IntegrityFailure) Error() string {
	return fmt.Sprintf("corrupt record in %s key: %x: %s", e.Column, e.Key, e.Err)
}

func (e *IntegrityFailure) Unwrap() error { return e.Err }

// Integrity - wrap an unpack error with its location
func Integrity(column string, key []byte, err error) error {
	if nil == err {
		return nil
	}
	return &IntegrityFailure{Column: column, Key: key, Err: err}
}

// IsIntegrity - store corruption or schema mismatch, node should stop
func IsIntegrity(err error) bool {
	var f *IntegrityFailure
	if errors.As(err, &f) {
		return true
	}
	var r RecordError
	return errors.As(err, &r)
}

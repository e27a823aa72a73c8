// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError
type StorageError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised          = ExistsError("already initialised")
	ErrBlockAlreadyExists          = ExistsError("block already exists")
	ErrBlockDigestDoesNotMatch     = InvalidError("block digest does not match")
	ErrBlockHeightMismatch         = InvalidError("block height mismatch")
	ErrCannotDecodeBlock           = RecordError("cannot decode block")
	ErrCannotDecodeTransaction     = RecordError("cannot decode transaction")
	ErrCapacityExceeded            = InvalidError("commitment tree capacity exceeded")
	ErrConfigurationNotTable       = InvalidError("configuration did not return a table")
	ErrConsensusDeclined           = ProcessError("consensus declined to assemble a block")
	ErrContractProcessorMissing    = ProcessError("contract processor is not configured")
	ErrContractInvocationFailed    = ProcessError("contract invocation failed")
	ErrDoubleSpend                 = InvalidError("serial number already spent")
	ErrDuplicateBlock              = ExistsError("duplicate block")
	ErrDuplicateCommitment         = InvalidError("commitment already exists")
	ErrDuplicateSerialNumber       = InvalidError("serial number repeated within block")
	ErrEmptyCandidate              = InvalidError("block candidate has no transactions")
	ErrIncompleteTransaction       = InvalidError("transaction candidate is missing required fields")
	ErrInvalidCount                = InvalidError("invalid count")
	ErrInvalidCursor               = InvalidError("invalid cursor")
	ErrInvalidDepth                = InvalidError("invalid tree depth")
	ErrInvalidLoggerChannel        = InvalidError("invalid logger channel")
	ErrInvalidMerkleLocation       = InvalidError("invalid merkle node location")
	ErrInvalidProof                = InvalidError("proof verification failed")
	ErrInvalidStructPointer        = InvalidError("invalid struct pointer")
	ErrInvalidTransactionType      = RecordError("invalid transaction type")
	ErrMerkleRootDoesNotMatch      = InvalidError("merkle root does not match")
	ErrNonCanonicalField           = InvalidError("value is not a canonical field element")
	ErrNotInitialised              = NotFoundError("not initialised")
	ErrProofVerifierFailed         = ProcessError("proof verifier failed")
	ErrStaleOrUnknownRoot          = InvalidError("merkle root is stale or unknown")
	ErrStorage                     = StorageError("storage failure")
	ErrTransactionAlreadyCommitted = ExistsError("transaction already committed")
	ErrTransactionAlreadyExists    = ExistsError("transaction already exists in pool")
	ErrTransactionRejected         = ExistsError("transaction was recently rejected")
	ErrTruncatedRecord             = RecordError("truncated record")
	ErrUnsupportedChain            = InvalidError("unsupported chain")
	ErrWrongDigestLength           = LengthError("wrong digest length")
	ErrWrongIndexLength            = LengthError("wrong index length")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }
func (e StorageError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
func IsErrStorage(e error) bool  { _, ok := e.(StorageError); return ok }

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"fmt"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// Processor - executes contract modules outside of the ledger
//
// wasm is nil for a call to an existing contract; the returned state
// is stored verbatim under the contract address
type Processor interface {
	Invoke(ctrAddr string, wasm []byte, request []byte) ([]byte, error)
}

// Result - new state of one contract
type Result struct {
	CtrAddr string
	State   []byte
}

// Apply - send a transaction's payload to the processor
//
// a transaction without a contract address returns nil; any processor
// failure is reported as a rejection of the transaction
func Apply(processor Processor, tx transactionrecord.Candidate) (*Result, error) {
	base := tx.Base()

	var wasm, request []byte
	switch base.CtrOp() {
	case transactionrecord.CtrNone:
		return nil, nil
	case transactionrecord.CtrDeploy:
		wasm = base.Data
	default:
		request = base.Data
	}

	if nil == processor {
		return nil, fault.Rejected(fault.ErrContractProcessorMissing, base.CtrAddr)
	}

	state, err := processor.Invoke(base.CtrAddr, wasm, request)
	if nil != err {
		return nil, fault.Rejected(fault.ErrContractInvocationFailed, fmt.Sprintf("%s: %s", base.CtrAddr, err))
	}

	return &Result{
		CtrAddr: base.CtrAddr,
		State:   state,
	}, nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/ledgerd/fault"
)

// reader - the read operations shared by the database and its snapshots
type reader interface {
	Get(key []byte, ro *ldb_opt.ReadOptions) ([]byte, error)
	Has(key []byte, ro *ldb_opt.ReadOptions) (bool, error)
	NewIterator(slice *ldb_util.Range, ro *ldb_opt.ReadOptions) iterator.Iterator
}

// PoolHandle - one column family
type PoolHandle struct {
	name   string
	prefix byte
	limit  []byte
	db     *leveldb.DB
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// Name - column family name, used in error reports
func (p *PoolHandle) Name() string {
	return p.name
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// the whole key range of the pool
func (p *PoolHandle) maxRange() ldb_util.Range {
	return ldb_util.Range{
		Start: []byte{p.prefix}, // Start of key range, included in the range
		Limit: p.limit,          // Limit of key range, excluded from the range
	}
}

// Get - read the latest value for a given key
//
// a missing key is not an error: the result is nil
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	return p.get(p.db, key)
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	return p.has(p.db, key)
}

// LastElement - get the last element in a pool
func (p *PoolHandle) LastElement() (Element, bool, error) {
	return p.lastElement(p.db)
}

func (p *PoolHandle) get(r reader, key []byte) ([]byte, error) {
	value, err := r.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	if nil != err {
		return nil, fault.Storage("get "+p.name, err)
	}
	return value, nil
}

func (p *PoolHandle) has(r reader, key []byte) (bool, error) {
	found, err := r.Has(p.prefixKey(key), nil)
	if nil != err {
		return false, fault.Storage("has "+p.name, err)
	}
	return found, nil
}

func (p *PoolHandle) lastElement(r reader) (Element, bool, error) {
	maxRange := p.maxRange()

	iter := r.NewIterator(&maxRange, nil)

	found := false
	result := Element{}
	if iter.Last() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		result.Key = dataKey
		result.Value = dataValue
		found = true
	}
	iter.Release()
	err := iter.Error()
	if nil != err {
		return Element{}, false, fault.Storage("last "+p.name, err)
	}
	return result, found, nil
}

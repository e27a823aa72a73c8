// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/ledgerd/fault"
)

// View - typed read access to the ledger
//
// a View from Snapshot sees the database exactly as it was when the
// snapshot was taken, so several reads always describe the same set
// of committed blocks
type View struct {
	store    *Store
	reader   reader
	cache    *entityCache
	snapshot *leveldb.Snapshot
}

// Snapshot - point in time view, must be released after use
func (s *Store) Snapshot() (*View, error) {
	s.RLock()
	defer s.RUnlock()

	if nil == s.db {
		return nil, fault.Storage("snapshot", fault.ErrNotInitialised)
	}
	snapshot, err := s.db.GetSnapshot()
	if nil != err {
		return nil, fault.Storage("snapshot", err)
	}

	// the entity cache may hold items committed after the snapshot
	return &View{
		store:    s,
		reader:   snapshot,
		snapshot: snapshot,
	}, nil
}

// Release - free a snapshot, harmless on the latest view
func (v *View) Release() {
	if nil != v.snapshot {
		v.snapshot.Release()
		v.snapshot = nil
	}
}

// Get - raw read of one column family
func (v *View) Get(p *PoolHandle, key []byte) ([]byte, error) {
	return p.get(v.reader, key)
}

// Has - raw existence check in one column family
func (v *View) Has(p *PoolHandle, key []byte) (bool, error) {
	return p.has(v.reader, key)
}

// NewFetchCursor - cursor over one column family as seen by this view
func (v *View) NewFetchCursor(p *PoolHandle) *FetchCursor {
	return p.newFetchCursor(v.reader)
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/logger"
)

// Pools - the column families of the ledger
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type Pools struct {
	BlockByHeight   *PoolHandle `prefix:"H"`
	BlockEntity     *PoolHandle `prefix:"B"`
	RootSeen        *PoolHandle `prefix:"R"`
	TxType          *PoolHandle `prefix:"Y"`
	MintTxEntity    *PoolHandle `prefix:"M"`
	PourTxEntity    *PoolHandle `prefix:"P"`
	CmToCmIdx       *PoolHandle `prefix:"C"`
	CmIdxToCm       *PoolHandle `prefix:"I"`
	SnSeen          *PoolHandle `prefix:"S"`
	MerkleNode      *PoolHandle `prefix:"N"`
	TxHashByCtrAddr *PoolHandle `prefix:"A"`
	CtrState        *PoolHandle `prefix:"Q"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentLedgerDBVersion = 0x100
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Store - an open ledger database
//
// reads through the embedded View always see the latest committed
// state, use Snapshot for several reads that must agree with each other
type Store struct {
	sync.RWMutex
	*View

	log   *logger.L
	db    *leveldb.DB
	Pool  Pools
	cache *entityCache
}

// Open - open up the database connection
func Open(database string, readOnly bool) (*Store, error) {
	log := logger.New("storage")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	db, version, err := getDB(database, readOnly)
	if nil != err {
		return nil, fault.Storage("open", err)
	}

	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	// ensure no database downgrade
	if version > currentLedgerDBVersion {
		log.Criticalf("ledger database version: %d > current version: %d", version, currentLedgerDBVersion)
		return nil, fmt.Errorf("ledger database version: %d > current version: %d", version, currentLedgerDBVersion)
	}

	if 0 == version {
		if readOnly {
			return nil, fault.ErrNotInitialised
		}
		// database was empty so tag as current version
		err = putVersion(db, currentLedgerDBVersion)
		if nil != err {
			return nil, fault.Storage("version", err)
		}
	}

	s := &Store{
		log:   log,
		db:    db,
		cache: newEntityCache(),
	}

	err = s.setupPools()
	if nil != err {
		return nil, err
	}
	s.View = &View{
		store:  s,
		reader: db,
		cache:  s.cache,
	}

	log.Infof("opened: %q  version: 0x%x  read only: %t", database, currentLedgerDBVersion, readOnly)

	ok = true // prevent db close
	return s, nil
}

// scan each field of the pools struct and give it a prefix
func (s *Store) setupPools() error {

	// this will be a struct type
	poolType := reflect.TypeOf(s.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&s.Pool).Elem()

	seen := make(map[byte]string)
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo.Name, prefixTag)
		}

		prefix := prefixTag[0]
		if other, ok := seen[prefix]; ok {
			return fmt.Errorf("pool: %v has same prefix as: %v", fieldInfo.Name, other)
		}
		seen[prefix] = fieldInfo.Name

		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			name:   fieldInfo.Name,
			prefix: prefix,
			limit:  limit,
			db:     s.db,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

// Close - close the database connection
func (s *Store) Close() {
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return
	}
	s.log.Info("closing…")
	s.db.Close()
	s.db = nil
	s.cache.flush()
	s.log.Flush()
}

// return:
//
//	database handle
//	version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}

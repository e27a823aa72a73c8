// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/ledgerd/chain"
	"github.com/bitmark-inc/ledgerd/util"
	"github.com/bitmark-inc/logger"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultBitmarkDatabase  = chain.Bitmark + ".leveldb"
	defaultTestingDatabase  = chain.Testing + ".leveldb"
	defaultLocalDatabase    = chain.Local + ".leveldb"

	defaultVerifyingKeyFile = "verifying.key"
	defaultValidator        = "ledgerd"

	defaultLogDirectory = "log"
	defaultLogFile      = "ledgerd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultPoolExpiry     = 2 * 60 * 60 // seconds
	defaultRejectedExpiry = 10 * 60     // seconds

	// marks a value the file did not set
	unset = -1
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		"main":            "info",
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - where the ledger is stored
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// LedgerType - block building and validation settings
//
// times are in seconds; zero or absent values take the chain default
type LedgerType struct {
	TreeDepth           int    `gluamapper:"tree_depth" json:"tree_depth"`
	RootWindow          int    `gluamapper:"root_window" json:"root_window"`
	BlockInterval       int    `gluamapper:"block_interval" json:"block_interval"`
	MaximumTransactions int    `gluamapper:"maximum_transactions" json:"maximum_transactions"`
	PoolExpiry          int    `gluamapper:"pool_expiry" json:"pool_expiry"`
	RejectedExpiry      int    `gluamapper:"rejected_expiry" json:"rejected_expiry"`
	VerifyingKey        string `gluamapper:"verifying_key" json:"verifying_key"`
	Validator           string `gluamapper:"validator" json:"validator"`
}

// Configuration - the whole file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string               `gluamapper:"pidfile" json:"pidfile"`
	Chain         string               `gluamapper:"chain" json:"chain"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Ledger        LedgerType           `gluamapper:"ledger" json:"ledger"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// GetConfiguration - will read decode and verify the configuration
func GetConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Chain:         chain.Bitmark,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultBitmarkDatabase,
		},

		Ledger: LedgerType{
			TreeDepth:      unset,
			RootWindow:     unset,
			BlockInterval:  unset,
			PoolExpiry:     defaultPoolExpiry,
			RejectedExpiry: defaultRejectedExpiry,
			VerifyingKey:   defaultVerifyingKeyFile,
			Validator:      defaultValidator,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	// if any test mode and the database file was not specified
	// switch to appropriate default.  Abort if then chain name is
	// not recognised.
	options.Chain = strings.ToLower(options.Chain)
	parameters, ok := chain.Defaults(options.Chain)
	if !ok {
		return nil, fmt.Errorf("chain: %q is not supported", options.Chain)
	}

	// if database was not changed from default
	if options.Database.Name == defaultBitmarkDatabase {
		switch options.Chain {
		case chain.Bitmark:
			// already correct default
		case chain.Testing:
			options.Database.Name = defaultTestingDatabase
		case chain.Local:
			options.Database.Name = defaultLocalDatabase
		}
	}

	if err := options.Ledger.applyDefaults(parameters); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Ledger.VerifyingKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.PidFile {
		options.PidFile = util.EnsureAbsolute(options.DataDirectory, options.PidFile)
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("files: %q is not plain name", *f[0])
		}
	}

	return options, nil
}

// fill unset values from the chain and reject impossible ones
func (l *LedgerType) applyDefaults(parameters chain.Parameters) error {
	if l.TreeDepth <= 0 {
		l.TreeDepth = parameters.TreeDepth
	}
	if l.RootWindow < 0 {
		l.RootWindow = int(parameters.RootWindow)
	}
	if l.BlockInterval <= 0 {
		l.BlockInterval = int(parameters.BlockInterval / time.Second)
	}
	if l.PoolExpiry <= 0 {
		l.PoolExpiry = defaultPoolExpiry
	}
	if l.RejectedExpiry <= 0 {
		l.RejectedExpiry = defaultRejectedExpiry
	}
	if l.MaximumTransactions < 0 {
		return fmt.Errorf("ledger: maximum_transactions: %d is negative", l.MaximumTransactions)
	}
	if "" == l.Validator {
		l.Validator = defaultValidator
	}
	return nil
}

// Interval - time between block builds
func (l *LedgerType) Interval() time.Duration {
	return time.Duration(l.BlockInterval) * time.Second
}

// PoolExpiryDuration - how long a transaction may wait in the pool
func (l *LedgerType) PoolExpiryDuration() time.Duration {
	return time.Duration(l.PoolExpiry) * time.Second
}

// RejectedExpiryDuration - how long a rejected transaction is refused
func (l *LedgerType) RejectedExpiryDuration() time.Duration {
	return time.Duration(l.RejectedExpiry) * time.Second
}

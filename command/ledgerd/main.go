// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/ledgerd/background"
	"github.com/bitmark-inc/ledgerd/block"
	"github.com/bitmark-inc/ledgerd/configuration"
	"github.com/bitmark-inc/ledgerd/consensus"
	"github.com/bitmark-inc/ledgerd/genesis"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/messagebus"
	"github.com/bitmark-inc/ledgerd/proof"
	"github.com/bitmark-inc/ledgerd/reservoir"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/logger"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "define", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'D'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// extra globals visible to the configuration script
	variables := make(map[string]string)
	for _, d := range options["define"] {
		kv := strings.SplitN(d, "=", 2)
		if 2 != len(kv) || "" == kv[0] {
			exitwithstatus.Message("%s: define: %q is not of the form NAME=VALUE", program, d)
		}
		variables[kv[0]] = kv[1]
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile, variables)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	ledger := theConfiguration.Ledger

	// the ledger database
	log.Info("initialise storage")
	if err := os.MkdirAll(theConfiguration.Database.Directory, 0700); nil != err {
		log.Criticalf("database directory: %q  error: %s", theConfiguration.Database.Directory, err)
		exitwithstatus.Message("database directory: %q  error: %s", theConfiguration.Database.Directory, err)
	}
	store, err := storage.Open(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer store.Close()

	tree, err := merkle.New(ledger.TreeDepth)
	if nil != err {
		log.Criticalf("merkle tree depth: %d  error: %s", ledger.TreeDepth, err)
		exitwithstatus.Message("merkle tree depth: %d  error: %s", ledger.TreeDepth, err)
	}

	// these commands only read the database
	if len(arguments) > 0 && processDataCommand(log, arguments, store, tree) {
		return
	}

	log.Info("initialise proof verifier")
	verifier, err := proof.LoadGroth16(ledger.VerifyingKey)
	if nil != err {
		log.Criticalf("verifying key: %q  error: %s", ledger.VerifyingKey, err)
		exitwithstatus.Message("verifying key: %q  error: %s", ledger.VerifyingKey, err)
	}

	log.Info("initialise reservoir")
	pool, err := reservoir.New(store, ledger.PoolExpiryDuration(), ledger.RejectedExpiryDuration())
	if nil != err {
		log.Criticalf("reservoir initialise error: %s", err)
		exitwithstatus.Message("reservoir initialise error: %s", err)
	}
	pool.Start()
	defer pool.Stop()

	bus := messagebus.New()

	log.Info("initialise block pipeline")
	pipeline, err := block.New(block.Config{
		Store:      store,
		Tree:       tree,
		Pool:       pool,
		Bus:        bus,
		Consensus:  consensus.NewFIFO(ledger.Validator, ledger.MaximumTransactions),
		Verifier:   verifier,
		RootWindow: uint64(ledger.RootWindow),
	})
	if nil != err {
		log.Criticalf("block pipeline initialise error: %s", err)
		exitwithstatus.Message("block pipeline initialise error: %s", err)
	}

	candidate, err := genesis.Candidate(theConfiguration.Chain)
	if nil != err {
		log.Criticalf("genesis error: %s", err)
		exitwithstatus.Message("genesis error: %s", err)
	}
	hash, err := pipeline.InsertGenesis(context.Background(), candidate)
	if nil != err {
		log.Criticalf("insert genesis error: %s", err)
		exitwithstatus.Message("insert genesis error: %s", err)
	}
	if nil != hash {
		log.Infof("genesis block: %s", hash)
	}

	// processes that report on the running system
	processes := background.Processes{
		newEventLogger(bus),
	}
	if len(options["memory-stats"]) > 0 {
		processes = append(processes, &memoryStats{})
	}
	reporters := background.Start(processes, pipeline)
	defer reporters.Stop()

	pipeline.Start(ledger.Interval())
	defer pipeline.Stop()

	// wait for CTRL-C before shutting down to allow manual testing
	if len(options["quiet"]) == 0 {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if len(options["quiet"]) == 0 {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}

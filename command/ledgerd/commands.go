// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/ledgerd/configuration"
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/logger"
)

// setup command handler
// commands that need neither the configuration nor the database
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "block", "b", "blocks", "list", "tx", "t", "auth-path", "path":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [--define=NAME=VALUE...] [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  block S [E [FILE]]         (b)      - dump block(s) as a JSON structures to stdout/file\n")
		fmt.Printf("\n")

		fmt.Printf("  blocks OFFSET [LIMIT]      (list)   - list block headers starting at a height\n")
		fmt.Printf("\n")

		fmt.Printf("  tx HASH...                 (t)      - dump committed transactions\n")
		fmt.Printf("\n")

		fmt.Printf("  auth-path INDEX            (path)   - authentication path of a commitment index\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *configuration.Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the ledger database is open so these commands can read it
func processDataCommand(log *logger.L, arguments []string, store *storage.Store, tree *merkle.Tree) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "block", "b":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing block number argument")
		}

		n, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("error in block number: %s", err)
		}

		output := "-"

		// optional end range
		nEnd := n
		if len(arguments) > 1 {

			nEnd, err = strconv.ParseUint(arguments[1], 10, 64)
			if nil != err {
				exitwithstatus.Message("error in ending block number: %s", err)
			}
			if nEnd < n {
				exitwithstatus.Message("error: invalid ending block number: %d must not be less than %d", nEnd, n)
			}
		}

		if len(arguments) > 2 {
			output = strings.TrimSpace(arguments[2])
		}
		fd := os.Stdout

		if output != "" && output != "-" {
			fd, err = os.Create(output)
			if nil != err {
				exitwithstatus.Message("error: creating: %q error: %s", output, err)
			}
		}

		fmt.Fprintf(fd, "[\n")
		for ; n <= nEnd; n += 1 {
			block, err := dumpBlock(store, n)
			if nil != err {
				exitwithstatus.Message("dump block error: %s", err)
			}
			s, err := json.MarshalIndent(block, "  ", "  ")
			if nil != err {
				exitwithstatus.Message("dump block JSON error: %s", err)
			}

			fmt.Fprintf(fd, "  %s,\n", s)
		}
		fmt.Fprintf(fd, "{}]\n")
		fd.Close()

	case "blocks", "list":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing offset argument")
		}
		offset, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("error in offset: %s", err)
		}
		limit := 10
		if len(arguments) > 1 {
			limit, err = strconv.Atoi(arguments[1])
			if nil != err || limit <= 0 {
				exitwithstatus.Message("error in limit: %q", arguments[1])
			}
		}
		blocks, err := store.GetBlockList(offset, limit)
		if nil != err {
			exitwithstatus.Message("block list error: %s", err)
		}
		printJSON(blocks)

	case "tx", "t":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing transaction hash argument")
		}
		hashes := make([]digest.Digest, 0, len(arguments))
		for _, s := range arguments {
			hash, err := digest.FromHex(s)
			if nil != err {
				exitwithstatus.Message("transaction hash: %q  error: %s", s, err)
			}
			hashes = append(hashes, hash)
		}
		txs, err := store.GetTxs(hashes)
		if nil != err {
			exitwithstatus.Message("transaction read error: %s", err)
		}
		printJSON(txs)

	case "auth-path", "path":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing commitment index argument")
		}
		index, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("error in commitment index: %s", err)
		}
		path, err := authPath(store, tree, index)
		if nil != err {
			exitwithstatus.Message("auth path error: %s", err)
		}
		log.Infof("auth path for: %d  root: %s", index, path.Root)
		printJSON(path)

	default:
		exitwithstatus.Message("error: no such command: %q", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

// print out a JSON value
func printJSON(item interface{}) {
	b, err := json.MarshalIndent(item, "", "  ")
	if nil != err {
		exitwithstatus.Message("JSON error: %s", err)
	}
	fmt.Printf("%s\n", b)
}

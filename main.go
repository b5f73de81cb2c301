// btczview - BitcoinZ wallet front-end for the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	"github.com/jeranaias/btczview/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	var err error
	switch cmd {
	case cli.CmdView:
		err = cli.HandleView(args)
	case cli.CmdServe:
		err = cli.HandleServe(args)
	case cli.CmdConsole:
		err = cli.HandleConsole(args)
	case cli.CmdReplay:
		err = cli.HandleReplay(args)
	case cli.CmdFormat:
		err = cli.HandleFormat(args)
	case cli.CmdConfig:
		err = cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		if args.Unknown != "" {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args.Unknown)
			cli.PrintUsage()
			os.Exit(cli.ExitUsageError)
		}
		cli.PrintUsage()
	}
	cli.HandleErrorAndExit(err, args.JSON)
}

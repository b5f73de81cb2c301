// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the command handlers for
// btczview.
//
// # Commands
//
//   - view: the terminal front-end (default); falls back to serve without a TTY
//   - serve: headless; bridge events go to stdout as JSON lines
//   - console: interactive host-call console against a running view
//   - replay: replays a session recorded by the journal
//   - format: prints the markup a message body formats to
//   - config: show, get, set, keys, path, validate, init
//
// # Wiring
//
// NewRuntime builds the timeline controller, panels and dispatcher for a
// config and, when enabled, opens the journal as a dispatcher observer and
// bridge sink. StartServer binds the host transport.
//
// # Usage
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdView:
//	    err = cli.HandleView(args)
//	// ...
//	}
package cli

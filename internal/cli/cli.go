// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdView Command = iota
	CmdServe
	CmdConsole
	CmdReplay
	CmdFormat
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdView:
		return "view"
	case CmdServe:
		return "serve"
	case CmdConsole:
		return "console"
	case CmdReplay:
		return "replay"
	case CmdFormat:
		return "format"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds the parsed command line.
type Args struct {
	// Global flags
	ConfigPath string
	Verbose    bool
	JSON       bool
	Addr       string
	Token      string
	NoServer   bool

	// Subcommand is the first argument after the command (config get, ...).
	Subcommand string

	// Raw is everything after the command, flags included.
	Raw []string

	// Unknown is set when the command word was not recognized.
	Unknown string
}

const usageText = `btczview %s - BitcoinZ wallet front-end for the terminal

USAGE:
    btczview [global flags] [command] [args]

COMMANDS:
    view                 Open the terminal view (default)
    serve                Run headless; events are written to stdout as JSON lines
    console              Send host calls to a running view
    replay [session]     Replay a recorded session
    format [text...]     Print the HTML a message body formats to
    config <sub>         show | get <key> | set <key> <value> | keys | path | validate | init
    version              Show version information
    help                 Show this help

GLOBAL FLAGS:
    -c, --config <path>  Config file (default ~/.btczview/config.toml)
    --addr <host:port>   Host transport address
    --token <token>      Bearer token for the host transport
    --no-server          Do not start the host transport (view only)
    -v, --verbose        Verbose logging
    --json               JSON output where supported

REPLAY FLAGS:
    --list               List recorded sessions
    --speed <x>          Replay speed; 0 replays without delays (default 1)
    --html               Print the final cards as HTML instead of opening the view

FORMAT FLAGS:
    --text               Print the visible text instead of HTML

EXAMPLES:
    btczview
    btczview serve --addr 127.0.0.1:9000
    btczview console
    btczview format 'see https://btcz.rocks :)'
    btczview replay --speed 4
    btczview config set ui.theme light

ENVIRONMENT:
    BTCZVIEW_ADDR, BTCZVIEW_TOKEN, BTCZVIEW_NO_SERVER, BTCZVIEW_THEME,
    BTCZVIEW_CURRENCY, BTCZVIEW_JOURNAL, BTCZVIEW_VERBOSE, NO_COLOR, FORCE_COLOR
`

// PrintUsage prints the help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("btczview version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
	fmt.Printf("  Go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv, the arguments without the program name.
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsed := parseGlobalFlags(argv)
	if len(remaining) == 0 {
		return CmdView, parsed
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Raw = remaining
	parsed.Subcommand = NewArgParser(remaining).Subcommand()

	switch cmd {
	case "view", "tui":
		return CmdView, parsed
	case "serve", "headless":
		return CmdServe, parsed
	case "console", "call":
		return CmdConsole, parsed
	case "replay":
		return CmdReplay, parsed
	case "format", "fmt":
		return CmdFormat, parsed
	case "config", "cfg":
		return CmdConfig, parsed
	case "version", "--version":
		return CmdVersion, parsed
	case "help", "-h", "--help":
		return CmdHelp, parsed
	default:
		parsed.Unknown = cmd
		return CmdHelp, parsed
	}
}

// parseGlobalFlags extracts global flags from args and returns the rest.
// Global flags may appear before or after the command.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsed Args

	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, hasValue := strings.Cut(arg, "=")

		takeValue := func(dst *string) {
			if hasValue {
				*dst = value
			} else if i+1 < len(args) {
				i++
				*dst = args[i]
			}
		}

		switch name {
		case "-c", "--config":
			takeValue(&parsed.ConfigPath)
		case "--addr":
			takeValue(&parsed.Addr)
		case "--token":
			takeValue(&parsed.Token)
		case "--no-server":
			parsed.NoServer = true
		case "-v", "--verbose":
			parsed.Verbose = true
		case "--json":
			parsed.JSON = true
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining, parsed
}

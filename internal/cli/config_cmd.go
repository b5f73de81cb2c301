// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/btczview/internal/config"
)

const configUsage = "btczview config <show|get|set|keys|path|validate|init>"

// HandleConfig manages the config file.
func HandleConfig(args Args) error {
	return runConfig(args, os.Stdout)
}

func runConfig(args Args, out io.Writer) error {
	p := NewArgParser(args.Raw, "force")
	path := args.ConfigPath
	if path == "" {
		var err error
		if path, err = config.ConfigPath(); err != nil {
			return err
		}
	}
	path = config.ExpandPath(path)

	switch sub := p.Subcommand(); sub {
	case "", "show":
		cfg, _, err := LoadConfig(args)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, cfg.String())

	case "get":
		key := p.Positional(1)
		if key == "" {
			return ErrMissingArgument("key", "btczview config get <key>")
		}
		cfg, _, err := LoadConfig(args)
		if err != nil {
			return err
		}
		v, err := cfg.Get(key)
		if err != nil {
			return &UsageError{Message: err.Error(), Usage: "btczview config get <key>  (list keys with: btczview config keys)"}
		}
		fmt.Fprintln(out, v)

	case "set":
		key, value := p.Positional(1), p.Positional(2)
		if key == "" || p.PositionalCount() < 3 {
			return ErrMissingArgument("key and value", "btczview config set <key> <value>")
		}
		// Set edits the file alone; env and flag overrides are not saved.
		cfg := config.Default()
		if _, err := os.Stat(path); err == nil {
			if cfg, err = config.LoadFromPath(path); err != nil {
				return err
			}
		}
		if err := cfg.Set(key, value); err != nil {
			return &UsageError{Message: err.Error(), Usage: "btczview config set <key> <value>"}
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.SaveTo(cfg, path); err != nil {
			return &CommandError{Command: "config", Action: "save", Err: err}
		}
		fmt.Fprintf(out, "%s %s = %s\n", SuccessStyle.Render("set"), key, value)

	case "keys":
		for _, k := range config.GetAllKeys() {
			fmt.Fprintln(out, k)
		}

	case "path":
		fmt.Fprintln(out, path)

	case "validate":
		if _, err := config.LoadFromPath(path); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n", SuccessStyle.Render("valid"), path)

	case "init":
		if _, err := os.Stat(path); err == nil && !p.BoolFlag("force") {
			return &CommandError{Command: "config", Action: "init", Err: fmt.Errorf("%s exists (use --force)", path)}
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := config.SaveTo(config.Default(), path); err != nil {
			return &CommandError{Command: "config", Action: "init", Err: err}
		}
		fmt.Fprintf(out, "%s %s\n", SuccessStyle.Render("wrote"), path)

	default:
		return &UsageError{Message: "unknown config command: " + sub, Usage: configUsage}
	}
	return nil
}

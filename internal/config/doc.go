// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for btczview.
//
// Configuration is TOML with built-in defaults, environment variable
// overrides and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ChatConfig: Timeline timings, unread tolerance, placeholder
//   - UIConfig: Theme and key guard lists
//   - ServerConfig: Host transport address, token and rate limit
//   - Watcher: Hot reload of the config file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (BTCZVIEW_*)
//   - ~/.btczview/config.toml, or the --config path
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	chat := timeline.New(timeline.Options{Timings: cfg.Chat.Timings()})
package config

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/btczview/internal/panels"
	"github.com/jeranaias/btczview/internal/timeline"
	"github.com/jeranaias/btczview/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete btczview configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	Chat    ChatConfig    `toml:"chat" json:"chat"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	Server  ServerConfig  `toml:"server" json:"server"`
	Journal JournalConfig `toml:"journal" json:"journal"`
	Chart   ChartConfig   `toml:"chart" json:"chart"`
	Log     LogConfig     `toml:"log" json:"log"`
}

// ChatConfig contains message timeline settings. Durations are in
// milliseconds.
type ChatConfig struct {
	ToastMs      int `toml:"toast_ms" json:"toast_ms"`
	EditFlashMs  int `toml:"edit_flash_ms" json:"edit_flash_ms"`
	FailedHoldMs int `toml:"failed_hold_ms" json:"failed_hold_ms"`
	FailedFadeMs int `toml:"failed_fade_ms" json:"failed_fade_ms"`
	// UnreadTolerance is in lines.
	UnreadTolerance int  `toml:"unread_tolerance" json:"unread_tolerance"`
	ShowPlaceholder bool `toml:"show_placeholder" json:"show_placeholder"`
}

// Timings converts the millisecond settings.
func (c ChatConfig) Timings() timeline.Timings {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	return timeline.Timings{
		Toast:      ms(c.ToastMs),
		EditFlash:  ms(c.EditFlashMs),
		FailedHold: ms(c.FailedHoldMs),
		FailedFade: ms(c.FailedFadeMs),
	}
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme is "dark", "light" or "auto"
	Theme string `toml:"theme" json:"theme"`
	// CopyKeys pass the key guard in the Messages view
	CopyKeys []string `toml:"copy_keys" json:"copy_keys"`
	// QuitKeys always pass
	QuitKeys []string `toml:"quit_keys" json:"quit_keys"`
	// NavKeys switch views and scroll
	NavKeys []string `toml:"nav_keys" json:"nav_keys"`
	Mouse   bool     `toml:"mouse" json:"mouse"`
}

// KeyGuard builds the key guard for these lists.
func (c UIConfig) KeyGuard() timeline.KeyGuard {
	return timeline.NewKeyGuard(c.CopyKeys, c.QuitKeys, c.NavKeys)
}

// ServerConfig contains the host transport settings.
type ServerConfig struct {
	Enabled    bool    `toml:"enabled" json:"enabled"`
	Addr       string  `toml:"addr" json:"addr"`
	Token      string  `toml:"token" json:"token"`
	RatePerSec float64 `toml:"rate_per_sec" json:"rate_per_sec"`
	Burst      int     `toml:"burst" json:"burst"`
}

// JournalConfig contains session journal settings.
type JournalConfig struct {
	Enabled bool   `toml:"enabled" json:"enabled"`
	Path    string `toml:"path" json:"path"`
	// KeepSessions prunes older sessions on start; 0 keeps all.
	KeepSessions int `toml:"keep_sessions" json:"keep_sessions"`
}

// ChartConfig contains price chart settings.
type ChartConfig struct {
	Currency    string `toml:"currency" json:"currency"`
	Placeholder string `toml:"placeholder" json:"placeholder"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	File    string `toml:"file" json:"file"`
	Verbose bool   `toml:"verbose" json:"verbose"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with the default values.
func Default() *Config {
	t := timeline.DefaultTimings()
	return &Config{
		Version: "1",
		Chat: ChatConfig{
			ToastMs:         int(t.Toast.Milliseconds()),
			EditFlashMs:     int(t.EditFlash.Milliseconds()),
			FailedHoldMs:    int(t.FailedHold.Milliseconds()),
			FailedFadeMs:    int(t.FailedFade.Milliseconds()),
			UnreadTolerance: 1,
			ShowPlaceholder: true,
		},
		UI: UIConfig{
			Theme:    "dark",
			CopyKeys: []string{"ctrl+c", "ctrl+insert"},
			QuitKeys: []string{"ctrl+q"},
			NavKeys:  []string{"tab", "shift+tab", "pgup", "pgdown", "home", "end"},
			Mouse:    true,
		},
		Server: ServerConfig{
			Enabled:    true,
			Addr:       "127.0.0.1:8791",
			RatePerSec: 50,
			Burst:      100,
		},
		Journal: JournalConfig{
			Enabled: false,
			Path:    "~/.btczview/journal.db",
		},
		Chart: ChartConfig{
			Currency:    "USD",
			Placeholder: panels.DefaultChartMessage,
		},
		Log: LogConfig{
			File: "~/.btczview/btczview.log",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the btczview configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".btczview"), nil
}

// ConfigPath returns the path to the default config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ExpandPath replaces a leading "~" with the home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads the default config file, falling back to defaults when it
// does not exist. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads a TOML file over the defaults, applies environment
// overrides and validates the result.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the config to the default path.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config as TOML atomically. The file may hold the
// server token, so it is created owner-only.
func SaveTo(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# btczview configuration file")
	fmt.Fprintln(&buf, "")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every field and returns all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	for _, d := range []struct {
		field string
		ms    int
	}{
		{"chat.toast_ms", c.Chat.ToastMs},
		{"chat.edit_flash_ms", c.Chat.EditFlashMs},
		{"chat.failed_hold_ms", c.Chat.FailedHoldMs},
		{"chat.failed_fade_ms", c.Chat.FailedFadeMs},
	} {
		if d.ms <= 0 || d.ms > 60000 {
			add(d.field, "must be between 1 and 60000, got %d", d.ms)
		}
	}
	if c.Chat.UnreadTolerance < 0 {
		add("chat.unread_tolerance", "cannot be negative")
	}

	switch strings.ToLower(c.UI.Theme) {
	case "dark", "light", "auto":
	default:
		add("ui.theme", "invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme)
	}
	if len(c.UI.QuitKeys) == 0 {
		add("ui.quit_keys", "at least one quit key is required")
	}

	if c.Server.Enabled {
		if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
			add("server.addr", "invalid address '%s': %v", c.Server.Addr, err)
		}
		if c.Server.RatePerSec <= 0 {
			add("server.rate_per_sec", "must be positive")
		}
		if c.Server.Burst < 1 {
			add("server.burst", "must be at least 1")
		}
	}

	if c.Journal.Enabled && c.Journal.Path == "" {
		add("journal.path", "required when the journal is enabled")
	}
	if c.Journal.KeepSessions < 0 {
		add("journal.keep_sessions", "cannot be negative")
	}

	if len(c.Chart.Currency) < 2 || len(c.Chart.Currency) > 5 {
		add("chart.currency", "invalid currency code '%s'", c.Chart.Currency)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - BTCZVIEW_ADDR: overrides server.addr
//   - BTCZVIEW_TOKEN: overrides server.token
//   - BTCZVIEW_NO_SERVER: set to "1" or "true" to disable the server
//   - BTCZVIEW_THEME: overrides ui.theme
//   - BTCZVIEW_CURRENCY: overrides chart.currency
//   - BTCZVIEW_JOURNAL: path; enables the journal
//   - BTCZVIEW_VERBOSE: set to "1" or "true" for verbose logging
func (c *Config) ApplyEnvOverrides() {
	if addr := os.Getenv("BTCZVIEW_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if token := os.Getenv("BTCZVIEW_TOKEN"); token != "" {
		c.Server.Token = token
	}
	if v := os.Getenv("BTCZVIEW_NO_SERVER"); v != "" {
		c.Server.Enabled = !truthy(v)
	}
	if theme := os.Getenv("BTCZVIEW_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if currency := os.Getenv("BTCZVIEW_CURRENCY"); currency != "" {
		c.Chart.Currency = strings.ToUpper(currency)
	}
	if path := os.Getenv("BTCZVIEW_JOURNAL"); path != "" {
		c.Journal.Enabled = true
		c.Journal.Path = path
	}
	if v := os.Getenv("BTCZVIEW_VERBOSE"); v != "" {
		c.Log.Verbose = truthy(v)
	}
}

func truthy(v string) bool {
	v = strings.ToLower(v)
	return v == "1" || v == "true" || v == "yes"
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// field walks a dot-notation key ("chat.toast_ms") to its struct field.
func (c *Config) field(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		name := normalizeFieldName(part)
		f := v.FieldByNameFunc(func(n string) bool { return strings.EqualFold(n, name) })
		if !f.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return f, nil
		}
		if f.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = f
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// Get retrieves a configuration value using dot notation.
func (c *Config) Get(key string) (any, error) {
	f, err := c.field(key)
	if err != nil {
		return nil, err
	}
	return f.Interface(), nil
}

// Set sets a configuration value using dot notation. String values are
// converted to the field's type; lists are comma-separated.
func (c *Config) Set(key string, value any) error {
	f, err := c.field(key)
	if err != nil {
		return err
	}
	if !f.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(f, value)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

func setFieldValue(field reflect.Value, value any) error {
	if s, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(s)
			return nil
		case reflect.Int, reflect.Int64:
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(n)
			return nil
		case reflect.Float64:
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(f)
			return nil
		case reflect.Bool:
			field.SetBool(truthy(s))
			return nil
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				var list []string
				for _, item := range strings.Split(s, ",") {
					if item = strings.TrimSpace(item); item != "" {
						list = append(list, item)
					}
				}
				field.Set(reflect.ValueOf(list))
				return nil
			}
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	var keys []string
	var walk func(prefix string, t reflect.Type)
	walk = func(prefix string, t reflect.Type) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := strings.Split(f.Tag.Get("toml"), ",")[0]
			if name == "" || name == "-" {
				continue
			}
			if f.Type.Kind() == reflect.Struct {
				walk(prefix+name+".", f.Type)
				continue
			}
			keys = append(keys, prefix+name)
		}
	}
	walk("", reflect.TypeOf(Config{}))
	return keys
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	clone := *c
	clone.UI.CopyKeys = append([]string(nil), c.UI.CopyKeys...)
	clone.UI.QuitKeys = append([]string(nil), c.UI.QuitKeys...)
	clone.UI.NavKeys = append([]string(nil), c.UI.NavKeys...)
	return &clone
}

// String returns the config as JSON with the server token redacted.
func (c *Config) String() string {
	safe := c.Clone()
	if safe.Server.Token != "" {
		safe.Server.Token = "[REDACTED]"
	}
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}

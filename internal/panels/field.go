// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panels

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// =============================================================================
// FIELDS
// =============================================================================

// Placeholder is shown for missing values.
const Placeholder = "--"

// Text colors used by the market view.
const (
	ColorUp      = "#00d48f"
	ColorDown    = "#ed3a3a"
	ColorNeutral = "#e6eef6"
)

// Field is one displayed value.
type Field struct {
	Text  string
	Color string // empty for the default text color
}

func orDash(v string) string {
	if v == "" {
		return Placeholder
	}
	return v
}

// withUnit renders "v unit", or "-- unit" when v is empty.
func withUnit(v, unit string) string {
	return orDash(v) + " " + unit
}

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseFloatPrefix parses the leading number of s the way a lenient UI
// would, ignoring trailing units such as "%".
func parseFloatPrefix(s string) (float64, bool) {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	return v, err == nil
}

// signColor colors a change figure by its sign.
func signColor(v string) string {
	n, ok := parseFloatPrefix(v)
	switch {
	case v == "" || !ok:
		return ColorNeutral
	case n >= 0:
		return ColorUp
	default:
		return ColorDown
	}
}

// panel is the shared lock and change hook of every view.
type panel struct {
	mu       sync.Mutex
	onChange func()
}

func (p *panel) update(fn func()) {
	p.mu.Lock()
	fn()
	p.mu.Unlock()
	if p.onChange != nil {
		p.onChange()
	}
}

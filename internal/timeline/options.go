// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package timeline

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/btczview/internal/bridge"
	"github.com/jeranaias/btczview/internal/card"
	"github.com/jeranaias/btczview/internal/markup"
	"github.com/jeranaias/btczview/internal/sched"
)

// =============================================================================
// TIMINGS
// =============================================================================

// Timings are the durations of the deferred effects.
type Timings struct {
	Toast      time.Duration // toast visible time
	EditFlash  time.Duration // highlight after an edit
	FailedHold time.Duration // failed card shown before fading
	FailedFade time.Duration // fade before removal
}

// DefaultTimings returns the stock durations.
func DefaultTimings() Timings {
	return Timings{
		Toast:      1500 * time.Millisecond,
		EditFlash:  500 * time.Millisecond,
		FailedHold: 2000 * time.Millisecond,
		FailedFade: 400 * time.Millisecond,
	}
}

// =============================================================================
// COLLABORATORS
// =============================================================================

// Clipboard receives copied message text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

// WriteAll copies text to the system clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Measurer reports the height of a card at a given width.
type Measurer interface {
	Height(v card.View, width int) int
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(v card.View, width int) int

// Height calls f.
func (f MeasurerFunc) Height(v card.View, width int) int { return f(v, width) }

// LineMeasurer estimates card height in terminal lines: a header line, the
// wrapped reply snippet and body, an optional status label and the action
// row.
type LineMeasurer struct{}

// Height implements Measurer.
func (LineMeasurer) Height(v card.View, width int) int {
	h := 2
	if v.ReplyHeader != "" {
		h += 1 + wrappedLines(markup.Text(v.ReplyHTML), width)
	}
	h += wrappedLines(markup.Text(v.BodyHTML), width)
	if v.Editing || v.Replying {
		h++
	}
	return h
}

func wrappedLines(text string, width int) int {
	if width <= 0 {
		width = 80
	}
	n := 0
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		w := runewidth.StringWidth(line)
		n += max(1, (w+width-1)/width)
	}
	return n
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options configure a Controller. Zero values select defaults.
type Options struct {
	Scheduler sched.Scheduler
	Pipeline  *markup.Pipeline
	Bridge    bridge.Sink
	Clipboard Clipboard
	Measurer  Measurer
	Timings   Timings

	// UnreadTolerance is how far content may exceed the viewport before
	// the unread indicator shows.
	UnreadTolerance int

	// Placeholder shows the empty-state element until the first card.
	Placeholder bool

	// OnChange is called after every state change, outside the lock.
	OnChange func()
}

func (o *Options) setDefaults() {
	if o.Scheduler == nil {
		o.Scheduler = sched.Real{}
	}
	if o.Pipeline == nil {
		o.Pipeline = markup.Default()
	}
	if o.Bridge == nil {
		o.Bridge = bridge.Discard
	}
	if o.Clipboard == nil {
		o.Clipboard = SystemClipboard{}
	}
	if o.Measurer == nil {
		o.Measurer = LineMeasurer{}
	}
	def := DefaultTimings()
	if o.Timings.Toast <= 0 {
		o.Timings.Toast = def.Toast
	}
	if o.Timings.EditFlash <= 0 {
		o.Timings.EditFlash = def.EditFlash
	}
	if o.Timings.FailedHold <= 0 {
		o.Timings.FailedHold = def.FailedHold
	}
	if o.Timings.FailedFade <= 0 {
		o.Timings.FailedFade = def.FailedFade
	}
	if o.UnreadTolerance < 0 {
		o.UnreadTolerance = 0
	}
}

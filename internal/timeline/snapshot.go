// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package timeline

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/jeranaias/btczview/internal/card"
)

// =============================================================================
// TOAST
// =============================================================================

// ShowToast shows text in the toast slot and hides it after the toast
// duration. A newer toast replaces the text and restarts the timer.
func (c *Controller) ShowToast(text string) {
	c.do(func() bool {
		c.toast = text
		c.toastShown = true
		c.toastTimers.AfterKey("toast", c.opts.Timings.Toast, func() {
			c.do(func() bool {
				c.toastShown = false
				return true
			})
		})
		return true
	})
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is a consistent copy of the timeline for drawing.
type Snapshot struct {
	Cards   []card.View
	Heights []int

	ScrollTop    int
	ScrollHeight int
	ClientHeight int
	Width        int

	Unread       bool
	Placeholder  bool
	Toast        string
	ToastVisible bool

	EditingTimestamp  string
	ReplyingTimestamp string
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Cards:        make([]card.View, len(c.cards)),
		Heights:      make([]int, len(c.cards)),
		ScrollTop:    c.scrollTop,
		ClientHeight: c.clientHeight,
		Width:        c.width,
		Unread:       c.unread,
		Placeholder:  c.placeholder,
		Toast:        c.toast,
		ToastVisible: c.toastShown,
	}
	for i, cd := range c.cards {
		s.Cards[i] = cd.View()
		s.Heights[i] = c.opts.Measurer.Height(s.Cards[i], c.width)
		s.ScrollHeight += s.Heights[i]
		if cd.Editing() {
			s.EditingTimestamp = cd.Timestamp()
		}
		if cd.Replying() {
			s.ReplyingTimestamp = cd.Timestamp()
		}
	}
	return s
}

// Len returns the number of cards.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cards)
}

// Find returns the view of the first card with the timestamp.
func (c *Controller) Find(ts string) (card.View, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cd := c.find(ts); cd != nil {
		return cd.View(), true
	}
	return card.View{}, false
}

// PlaceholderText is the content of the empty-state element.
const PlaceholderText = "No messages yet"

// HTML renders the chat container, unread label and toast.
func (s Snapshot) HTML() string {
	var b strings.Builder
	b.WriteString(`<div id="chatContainer">`)
	if s.Placeholder {
		b.WriteString(`<div id="chatPlaceholder" style="display:block">` + PlaceholderText + `</div>`)
	}
	for _, v := range s.Cards {
		b.WriteString(v.HTML())
	}
	b.WriteString(`</div>`)

	b.WriteString(`<div id="unreadLabel" style="display:` + display(s.Unread) + `">New messages</div>`)

	class := "toast"
	if s.ToastVisible {
		class += " show"
	}
	b.WriteString(`<div id="toast" class="` + class + `">` + html.EscapeString(s.Toast) + `</div>`)
	return b.String()
}

func display(on bool) string {
	if on {
		return "block"
	}
	return "none"
}

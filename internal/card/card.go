// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package card

import (
	"strings"

	"github.com/jeranaias/btczview/internal/markup"
	"github.com/jeranaias/btczview/internal/model"
	"github.com/jeranaias/btczview/internal/sched"
)

// =============================================================================
// CARD
// =============================================================================

// Card is one rendered message. It is not safe for concurrent use; the
// timeline controller owns every card and serializes access.
type Card struct {
	rec   model.MessageRecord
	state model.CardState

	editing  bool
	replying bool
	flash    bool
	fading   bool

	buttons []Button

	body      string
	replyHTML string
	replyAt   bool

	format   func(string) string
	timers   *sched.Group
	detached bool
}

// Timestamp returns the identity key of the card.
func (c *Card) Timestamp() string { return c.rec.Timestamp }

// Record returns the record as it currently stands, including edits.
func (c *Card) Record() model.MessageRecord { return c.rec }

// State returns the delivery state.
func (c *Card) State() model.CardState { return c.state }

// Editing reports whether the card is in edit mode.
func (c *Card) Editing() bool { return c.editing }

// Replying reports whether the card is in reply mode.
func (c *Card) Replying() bool { return c.replying }

// Detached reports whether the card has been removed from its timeline.
func (c *Card) Detached() bool { return c.detached }

// Timers returns the task group bound to the card's lifetime.
func (c *Card) Timers() *sched.Group { return c.timers }

// Body returns the formatted body fragment.
func (c *Card) Body() string { return c.body }

// CopyText returns the text placed on the clipboard by the Copy button.
func (c *Card) CopyText() string {
	return markup.Text(c.body)
}

// Buttons returns a copy of the action row.
func (c *Card) Buttons() []Button {
	return append([]Button(nil), c.buttons...)
}

// Button returns the button of the given kind.
func (c *Card) Button(kind ButtonKind) (Button, bool) {
	for _, b := range c.buttons {
		if b.Kind == kind {
			return b, true
		}
	}
	return Button{}, false
}

func (c *Card) button(kind ButtonKind) *Button {
	for i := range c.buttons {
		if c.buttons[i].Kind == kind {
			return &c.buttons[i]
		}
	}
	return nil
}

// =============================================================================
// MUTATION
// =============================================================================

// SetState changes the delivery state.
func (c *Card) SetState(s model.CardState) { c.state = s }

// SetEditing enters or leaves edit mode. The Edit button flips to Cancel
// and back; leaving the mode clears any host lock on it.
func (c *Card) SetEditing(on bool) {
	c.editing = on
	if b := c.button(ButtonEdit); b != nil {
		b.Cancel = on
		if !on {
			b.Disabled = false
		}
	}
}

// SetReplying enters or leaves reply mode.
func (c *Card) SetReplying(on bool) {
	c.replying = on
	if b := c.button(ButtonReply); b != nil {
		b.Cancel = on
		if !on {
			b.Disabled = false
		}
	}
}

// SetLocked locks or unlocks every button. A card is locked while another
// card holds edit or reply mode.
func (c *Card) SetLocked(on bool) {
	for i := range c.buttons {
		c.buttons[i].Locked = on
		if !on {
			c.buttons[i].Disabled = false
		}
	}
}

// SetCancelDisabled disables or enables the Cancel button, if the card has
// one showing. It reports whether a Cancel button was found.
func (c *Card) SetCancelDisabled(on bool) bool {
	for i := range c.buttons {
		if c.buttons[i].Cancel {
			c.buttons[i].Disabled = on
			return true
		}
	}
	return false
}

// SetContent replaces the raw content and re-formats the body. The raw
// content becomes the source for later edits.
func (c *Card) SetContent(raw string) {
	c.rec.Content = raw
	c.body = c.format(raw)
}

// SetEdited records the edit timestamp. Blank values leave any existing
// edited tag untouched.
func (c *Card) SetEdited(ts string) {
	if strings.TrimSpace(ts) != "" {
		c.rec.EditedTimestamp = ts
	}
}

// RefreshReply re-renders the reply block in its @username form.
func (c *Card) RefreshReply() {
	if !c.rec.HasReply() {
		return
	}
	c.replyHTML = c.format(c.rec.RepliedContent)
	c.replyAt = true
}

// EnsureActions fills an empty action row by the author rule and reports
// whether it did.
func (c *Card) EnsureActions() bool {
	if len(c.buttons) > 0 {
		return false
	}
	c.buttons = ActionsFor(c.rec)
	return true
}

// SetFlash toggles the edit highlight.
func (c *Card) SetFlash(on bool) { c.flash = on }

// SetFading marks the card as fading out before removal.
func (c *Card) SetFading(on bool) { c.fading = on }

// Detach cancels the card's timers and marks it removed.
func (c *Card) Detach() {
	c.detached = true
	c.timers.Cancel()
}

// =============================================================================
// VIEW
// =============================================================================

// View returns an immutable copy of everything needed to draw the card.
func (c *Card) View() View {
	v := View{
		Record:   c.rec,
		State:    c.state,
		Editing:  c.editing,
		Replying: c.replying,
		Flash:    c.flash,
		Fading:   c.fading,
		Buttons:  c.Buttons(),
		BodyHTML: c.body,
		Links:    markup.Links(c.body),
	}
	if c.rec.HasReply() {
		v.ReplyHTML = c.replyHTML
		v.ReplyHeader = c.rec.RepliedUsername
		if c.replyAt {
			v.ReplyHeader = "@" + c.rec.RepliedUsername
		}
	}
	return v
}

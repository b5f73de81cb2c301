// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package card

import "github.com/jeranaias/btczview/internal/model"

// =============================================================================
// BUTTONS
// =============================================================================

// ButtonKind identifies an action button.
type ButtonKind int

const (
	ButtonEdit ButtonKind = iota
	ButtonReply
	ButtonCopy
)

// String returns the button's resting title.
func (k ButtonKind) String() string {
	switch k {
	case ButtonEdit:
		return "Edit"
	case ButtonReply:
		return "Reply"
	default:
		return "Copy"
	}
}

// Button is one entry of a card's action row.
type Button struct {
	Kind ButtonKind

	// Cancel is set while the owning card is in the mode this button
	// toggles; the button then reads "Cancel".
	Cancel bool

	// Locked is set while another card holds edit or reply mode.
	Locked bool

	// Disabled is set by the host while a send is in flight.
	Disabled bool
}

// Title returns the visible label.
func (b Button) Title() string {
	if b.Cancel {
		return "Cancel"
	}
	return b.Kind.String()
}

// Icon returns the Font Awesome class of the button glyph.
func (b Button) Icon() string {
	if b.Cancel {
		return "fa-solid fa-xmark"
	}
	switch b.Kind {
	case ButtonEdit:
		return "fa-solid fa-pen"
	case ButtonReply:
		return "fa-solid fa-reply"
	default:
		return "fa-solid fa-copy"
	}
}

// Enabled reports whether a click on the button is acted on.
func (b Button) Enabled() bool {
	return !b.Locked && !b.Disabled
}

// ActionsFor returns the action row for an author: Edit and Copy for the
// local user, Reply and Copy for anyone else.
func ActionsFor(rec model.MessageRecord) []Button {
	if rec.IsOwn() {
		return []Button{{Kind: ButtonEdit}, {Kind: ButtonCopy}}
	}
	return []Button{{Kind: ButtonReply}, {Kind: ButtonCopy}}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package timeline

import (
	"fmt"
	"log"

	"github.com/jeranaias/btczview/internal/bridge"
	"github.com/jeranaias/btczview/internal/card"
)

// =============================================================================
// EDIT / REPLY MODE
// =============================================================================

// ToggleEdit handles a click on a card's Edit (or Cancel) button. Entering
// edit mode locks every other card and sends an edit event with the raw
// content; leaving it unlocks all cards and sends cancelEdit.
func (c *Controller) ToggleEdit(ts string) error {
	return c.toggleMode(ts, card.ButtonEdit)
}

// ToggleReply handles a click on a card's Reply (or Cancel) button.
func (c *Controller) ToggleReply(ts string) error {
	return c.toggleMode(ts, card.ButtonReply)
}

func (c *Controller) toggleMode(ts string, kind card.ButtonKind) error {
	var err error
	c.do(func() bool {
		cd, e := c.usableButton(ts, kind)
		if e != nil {
			err = e
			return false
		}

		editing := kind == card.ButtonEdit
		active := cd.Replying()
		if editing {
			active = cd.Editing()
		}

		if active {
			if editing {
				cd.SetEditing(false)
				c.emit(bridge.Simple(bridge.ActionCancelEdit))
			} else {
				cd.SetReplying(false)
				c.emit(bridge.Simple(bridge.ActionCancelReply))
			}
			c.unlockAll()
			return true
		}

		if holder := c.modeHolder(); holder != nil && holder != cd {
			err = fmt.Errorf("%w: held by %s", ErrActionsLocked, holder.Timestamp())
			return false
		}

		if editing {
			cd.SetEditing(true)
			content := cd.Record().Content
			if content == "" {
				content = cd.CopyText()
			}
			c.emit(bridge.Edit(content, ts))
		} else {
			cd.SetReplying(true)
			c.emit(bridge.Reply(ts))
		}
		c.lockOthers(cd)
		c.centerOn(cd)
		return true
	})
	return err
}

// usableButton finds the card and checks that its button accepts clicks.
func (c *Controller) usableButton(ts string, kind card.ButtonKind) (*card.Card, error) {
	cd := c.find(ts)
	if cd == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ts)
	}
	btn, ok := cd.Button(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", ErrNoButton, kind, ts)
	}
	if btn.Locked {
		return nil, ErrActionsLocked
	}
	if btn.Disabled {
		return nil, ErrButtonDisabled
	}
	return cd, nil
}

// CancelEdit leaves edit mode on whichever card holds it. It is the host's
// call and sends no bridge event.
func (c *Controller) CancelEdit() {
	c.do(func() bool {
		for _, cd := range c.cards {
			if cd.Editing() {
				cd.SetEditing(false)
				c.unlockAll()
				return true
			}
		}
		return false
	})
}

// CancelReply leaves reply mode on whichever card holds it.
func (c *Controller) CancelReply() {
	c.do(func() bool {
		for _, cd := range c.cards {
			if cd.Replying() {
				cd.SetReplying(false)
				c.unlockAll()
				return true
			}
		}
		return false
	})
}

// SetCancelEditDisabled disables or re-enables the Cancel button of the
// card in edit mode. The host uses it while an edit is being sent.
func (c *Controller) SetCancelEditDisabled(disabled bool) {
	c.do(func() bool {
		for _, cd := range c.cards {
			if cd.Editing() {
				return cd.SetCancelDisabled(disabled)
			}
		}
		return false
	})
}

// SetCancelReplyDisabled is SetCancelEditDisabled for reply mode.
func (c *Controller) SetCancelReplyDisabled(disabled bool) {
	c.do(func() bool {
		for _, cd := range c.cards {
			if cd.Replying() {
				return cd.SetCancelDisabled(disabled)
			}
		}
		return false
	})
}

// =============================================================================
// COPY
// =============================================================================

// Copy places the card's text on the clipboard and shows a toast.
func (c *Controller) Copy(ts string) error {
	var text string
	var err error
	c.do(func() bool {
		cd, e := c.usableButton(ts, card.ButtonCopy)
		if e != nil {
			err = e
			return false
		}
		text = cd.CopyText()
		return false
	})
	if err != nil {
		return err
	}

	if err := c.opts.Clipboard.WriteAll(text); err != nil {
		log.Printf("COPY_FAILED | ts=%s error=%v", ts, err)
		return fmt.Errorf("copy message: %w", err)
	}
	c.ShowToast(CopiedToast)
	return nil
}

// =============================================================================
// CLICK DISPATCH
// =============================================================================

// Target is what a click landed on.
type Target int

const (
	TargetNone Target = iota
	TargetButton
	TargetLink
)

// Click is a resolved pointer click inside the chat container.
type Click struct {
	Timestamp string
	Target    Target
	Button    card.ButtonKind
	URL       string
}

// Click dispatches a click. A button consumes the click, so chat-level link
// handling never sees it; a click on a link span sends urlClicked.
func (c *Controller) Click(ev Click) error {
	switch ev.Target {
	case TargetButton:
		switch ev.Button {
		case card.ButtonEdit:
			return c.ToggleEdit(ev.Timestamp)
		case card.ButtonReply:
			return c.ToggleReply(ev.Timestamp)
		default:
			return c.Copy(ev.Timestamp)
		}
	case TargetLink:
		if ev.URL == "" {
			return nil
		}
		c.do(func() bool {
			c.emit(bridge.URLClicked(ev.URL))
			return false
		})
	}
	return nil
}

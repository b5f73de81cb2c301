// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package timeline

import (
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/jeranaias/btczview/internal/bridge"
	"github.com/jeranaias/btczview/internal/card"
	"github.com/jeranaias/btczview/internal/model"
	"github.com/jeranaias/btczview/internal/sched"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrActionsLocked is returned when a card's buttons are locked because
	// another card holds edit or reply mode.
	ErrActionsLocked = errors.New("timeline: actions locked by another card")

	// ErrNotFound is returned when no live card has the timestamp.
	ErrNotFound = errors.New("timeline: message not found")

	// ErrNoButton is returned when the card has no button of that kind.
	ErrNoButton = errors.New("timeline: card has no such button")

	// ErrButtonDisabled is returned when the host has disabled the button.
	ErrButtonDisabled = errors.New("timeline: button disabled")
)

// CopiedToast is shown after a successful copy.
const CopiedToast = "Copied!"

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the chat timeline.
type Controller struct {
	opts    Options
	builder *card.Builder

	mu     sync.Mutex
	cards  []*card.Card
	outbox []bridge.Event

	scrollTop    int
	clientHeight int
	width        int
	unread       bool
	placeholder  bool

	toast       string
	toastShown  bool
	toastTimers *sched.Group
}

// New returns an empty controller.
func New(opts Options) *Controller {
	opts.setDefaults()
	return &Controller{
		opts:        opts,
		builder:     card.NewBuilder(opts.Pipeline, opts.Scheduler),
		placeholder: opts.Placeholder,
		toastTimers: sched.NewGroup(opts.Scheduler),
	}
}

// do runs fn under the lock, then delivers queued bridge events and the
// change notification with the lock released.
func (c *Controller) do(fn func() bool) {
	c.mu.Lock()
	changed := fn()
	events := c.outbox
	c.outbox = nil
	c.mu.Unlock()

	for _, e := range events {
		c.opts.Bridge.Send(e)
	}
	if changed && c.opts.OnChange != nil {
		c.opts.OnChange()
	}
}

func (c *Controller) emit(e bridge.Event) {
	c.outbox = append(c.outbox, e)
}

// =============================================================================
// LOOKUP (lock held)
// =============================================================================

func (c *Controller) indexOf(target *card.Card) int {
	for i, cd := range c.cards {
		if cd == target {
			return i
		}
	}
	return -1
}

func (c *Controller) find(ts string) *card.Card {
	for _, cd := range c.cards {
		if cd.Timestamp() == ts {
			return cd
		}
	}
	return nil
}

func (c *Controller) findSending(ts string) *card.Card {
	for _, cd := range c.cards {
		if cd.State() == model.StateSending && cd.Timestamp() == ts {
			return cd
		}
	}
	return nil
}

// modeHolder returns the card in edit or reply mode, if any.
func (c *Controller) modeHolder() *card.Card {
	for _, cd := range c.cards {
		if cd.Editing() || cd.Replying() {
			return cd
		}
	}
	return nil
}

func (c *Controller) lockOthers(except *card.Card) {
	for _, cd := range c.cards {
		if cd != except {
			cd.SetLocked(true)
		}
	}
}

func (c *Controller) unlockAll() {
	for _, cd := range c.cards {
		cd.SetLocked(false)
	}
}

// adopt prepares a card that is about to join the timeline. New cards are
// locked if some other card already holds a mode.
func (c *Controller) adopt(cd *card.Card) {
	c.placeholder = false
	if c.modeHolder() != nil {
		cd.SetLocked(true)
	}
}

// remove detaches cd and drops it from the list. Removing the card that
// holds edit or reply mode releases the other cards.
func (c *Controller) remove(cd *card.Card) bool {
	i := c.indexOf(cd)
	if i < 0 {
		return false
	}
	held := cd.Editing() || cd.Replying()
	c.cards = append(c.cards[:i], c.cards[i+1:]...)
	cd.Detach()
	if held {
		c.unlockAll()
	}
	c.clampScroll()
	return true
}

// =============================================================================
// POPULATION
// =============================================================================

// Append adds a confirmed message at the end.
func (c *Controller) Append(rec model.MessageRecord) {
	c.do(func() bool {
		cd := c.builder.Build(rec, true)
		c.adopt(cd)
		c.cards = append(c.cards, cd)
		return true
	})
}

// InsertAt inserts a confirmed message before the card at index. Indexes
// below zero prepend, indexes at or past the end append. The scroll offset
// moves by the change in content height so the visible cards stay put.
func (c *Controller) InsertAt(index int, rec model.MessageRecord) {
	c.do(func() bool {
		cd := c.builder.Build(rec, true)
		c.adopt(cd)

		oldTop := c.scrollTop
		oldHeight := c.scrollHeight()

		index = max(0, min(index, len(c.cards)))
		c.cards = append(c.cards, nil)
		copy(c.cards[index+1:], c.cards[index:])
		c.cards[index] = cd

		c.setScroll(oldTop + c.scrollHeight() - oldHeight)
		return true
	})
}

// AddPending appends an optimistic message without actions and scrolls it
// into view. A blank author becomes the local user.
func (c *Controller) AddPending(rec model.MessageRecord) {
	if strings.TrimSpace(rec.Username) == "" {
		rec.Username = "You"
	}
	if rec.UserType == "" {
		rec.UserType = model.UserYou
	}
	c.do(func() bool {
		cd := c.builder.Build(rec, false)
		cd.SetState(model.StateSending)
		c.adopt(cd)
		c.cards = append(c.cards, cd)
		c.setScroll(c.maxScroll())
		return true
	})
}

// MarkSent replaces the pending card with a confirmed one carrying the same
// content, gift and reply data. It reports whether a pending card matched.
func (c *Controller) MarkSent(ts string) bool {
	found := false
	c.do(func() bool {
		pending := c.findSending(ts)
		if pending == nil {
			log.Printf("PENDING_NOT_FOUND | op=markSent ts=%s", ts)
			return false
		}
		found = true

		sent := c.builder.Build(pending.Record(), true)
		switch holder := c.modeHolder(); {
		case holder == pending:
			// The confirmed card keeps the mode entered on the draft.
			sent.SetEditing(pending.Editing())
			sent.SetReplying(pending.Replying())
			for _, b := range pending.Buttons() {
				if b.Cancel && b.Disabled {
					sent.SetCancelDisabled(true)
				}
			}
		case holder != nil:
			sent.SetLocked(true)
		}
		c.cards[c.indexOf(pending)] = sent
		pending.Detach()
		return true
	})
	return found
}

// MarkFailed flags the pending card as failed, fades it after the hold
// time and removes it after the fade. It reports whether a pending card
// matched.
func (c *Controller) MarkFailed(ts string) bool {
	found := false
	c.do(func() bool {
		cd := c.findSending(ts)
		if cd == nil {
			log.Printf("PENDING_NOT_FOUND | op=markFailed ts=%s", ts)
			return false
		}
		found = true
		cd.SetState(model.StateFailed)

		t := c.opts.Timings
		cd.Timers().After(t.FailedHold, func() {
			c.do(func() bool {
				if cd.Detached() {
					return false
				}
				cd.SetFading(true)
				cd.Timers().After(t.FailedFade, func() {
					c.do(func() bool {
						return c.remove(cd)
					})
				})
				return true
			})
		})
		return true
	})
	return found
}

// Edit replaces the content of every card with the timestamp, updates the
// edited tag, flashes the card and re-renders its reply block. A pending
// card without actions gets its action row. Misses are logged and ignored.
func (c *Controller) Edit(ts, content, editedTs string) bool {
	found := false
	c.do(func() bool {
		for _, cd := range c.cards {
			if cd.Timestamp() != ts || cd.Detached() {
				continue
			}
			found = true
			cd.SetContent(content)
			cd.SetEdited(editedTs)
			cd.RefreshReply()
			if cd.EnsureActions() {
				if h := c.modeHolder(); h != nil && h != cd {
					cd.SetLocked(true)
				}
			}

			cd.SetFlash(true)
			target := cd
			cd.Timers().AfterKey("flash", c.opts.Timings.EditFlash, func() {
				c.do(func() bool {
					if target.Detached() {
						return false
					}
					target.SetFlash(false)
					return true
				})
			})
		}
		if !found {
			log.Printf("MESSAGE_NOT_FOUND | op=edit ts=%s", ts)
		}
		return found
	})
	return found
}

// Clear removes every card and resets the scroll position. The placeholder
// goes too; RestorePlaceholder brings it back.
func (c *Controller) Clear() {
	c.do(func() bool {
		for _, cd := range c.cards {
			cd.Detach()
		}
		c.cards = nil
		c.scrollTop = 0
		c.unread = false
		c.placeholder = false
		return true
	})
}

// RestorePlaceholder shows the empty-state element.
func (c *Controller) RestorePlaceholder() {
	c.do(func() bool {
		c.placeholder = true
		return true
	})
}

// Close cancels every pending deferred effect. The controller must not be
// used afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cd := range c.cards {
		cd.Timers().Cancel()
	}
	c.toastTimers.Cancel()
}

// SetTimings replaces the deferred-effect durations. Timers already running
// keep their deadline; zero fields keep the current value.
func (c *Controller) SetTimings(t Timings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := &c.opts.Timings
	if t.Toast > 0 {
		cur.Toast = t.Toast
	}
	if t.EditFlash > 0 {
		cur.EditFlash = t.EditFlash
	}
	if t.FailedHold > 0 {
		cur.FailedHold = t.FailedHold
	}
	if t.FailedFade > 0 {
		cur.FailedFade = t.FailedFade
	}
}

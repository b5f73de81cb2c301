// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package timeline

import (
	"github.com/jeranaias/btczview/internal/bridge"
	"github.com/jeranaias/btczview/internal/card"
)

// =============================================================================
// SCROLL MODEL (lock held)
// =============================================================================

func (c *Controller) height(cd *card.Card) int {
	return c.opts.Measurer.Height(cd.View(), c.width)
}

func (c *Controller) scrollHeight() int {
	total := 0
	for _, cd := range c.cards {
		total += c.height(cd)
	}
	return total
}

func (c *Controller) maxScroll() int {
	return max(0, c.scrollHeight()-c.clientHeight)
}

// setScroll moves the scroll position, clamped to the content. A change
// that lands on an edge sends the matching scroll event.
func (c *Controller) setScroll(top int) {
	limit := c.maxScroll()
	top = max(0, min(top, limit))
	if top == c.scrollTop {
		return
	}
	c.scrollTop = top
	if top >= limit {
		c.emit(bridge.Simple(bridge.ActionScrolledToBottom))
	}
	if top == 0 {
		c.emit(bridge.Simple(bridge.ActionScrolledToTop))
	}
}

func (c *Controller) clampScroll() {
	c.setScroll(c.scrollTop)
}

// centerOn scrolls so cd sits in the middle of the viewport.
func (c *Controller) centerOn(cd *card.Card) {
	offset := 0
	for _, other := range c.cards {
		if other == cd {
			break
		}
		offset += c.height(other)
	}
	c.setScroll(offset - (c.clientHeight-c.height(cd))/2)
}

// =============================================================================
// SCROLL OPERATIONS
// =============================================================================

// SetViewport records the visible area of the chat container.
func (c *Controller) SetViewport(width, height int) {
	c.do(func() bool {
		if width == c.width && height == c.clientHeight {
			return false
		}
		c.width = width
		c.clientHeight = max(0, height)
		c.clampScroll()
		return true
	})
}

// ScrollBy moves the scroll position by delta, as a wheel or key would.
func (c *Controller) ScrollBy(delta int) {
	c.do(func() bool {
		old := c.scrollTop
		c.setScroll(old + delta)
		return c.scrollTop != old
	})
}

// ScrollTo sets the scroll position.
func (c *Controller) ScrollTo(top int) {
	c.do(func() bool {
		old := c.scrollTop
		c.setScroll(top)
		return c.scrollTop != old
	})
}

// ScrollToBottom scrolls to the end of the content.
func (c *Controller) ScrollToBottom() {
	c.do(func() bool {
		old := c.scrollTop
		c.setScroll(c.maxScroll())
		return c.scrollTop != old
	})
}

// UnreadVisibility shows the unread indicator when the content exceeds the
// viewport by more than the tolerance. Otherwise it hides the indicator and
// tells the host the user is caught up. It returns the new visibility.
func (c *Controller) UnreadVisibility() bool {
	visible := false
	c.do(func() bool {
		visible = c.scrollHeight() > c.clientHeight+c.opts.UnreadTolerance
		c.unread = visible
		if !visible {
			c.emit(bridge.Simple(bridge.ActionScrolledToBottom))
		}
		return true
	})
	return visible
}

// HideUnreadLabel hides the unread indicator.
func (c *Controller) HideUnreadLabel() {
	c.do(func() bool {
		if !c.unread {
			return false
		}
		c.unread = false
		return true
	})
}

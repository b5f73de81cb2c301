// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package card

import (
	"github.com/jeranaias/btczview/internal/markup"
	"github.com/jeranaias/btczview/internal/model"
	"github.com/jeranaias/btczview/internal/sched"
)

// Builder creates cards from message records.
type Builder struct {
	pipeline  *markup.Pipeline
	scheduler sched.Scheduler
}

// NewBuilder returns a builder formatting with p and binding card timers to
// s. Nil arguments select the default pipeline and the real clock.
func NewBuilder(p *markup.Pipeline, s sched.Scheduler) *Builder {
	if p == nil {
		p = markup.Default()
	}
	if s == nil {
		s = sched.Real{}
	}
	return &Builder{pipeline: p, scheduler: s}
}

// Build renders rec. With includeActions false the action row is left
// empty, as for optimistic pending messages.
func (b *Builder) Build(rec model.MessageRecord, includeActions bool) *Card {
	c := &Card{
		rec:    rec,
		format: b.pipeline.Format,
		timers: sched.NewGroup(b.scheduler),
	}
	c.body = c.format(rec.Content)
	if rec.HasReply() {
		c.replyHTML = c.format(rec.RepliedContent)
	}
	if includeActions {
		c.buttons = ActionsFor(rec)
	}
	return c
}

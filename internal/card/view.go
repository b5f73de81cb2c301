// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package card

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/jeranaias/btczview/internal/model"
)

// =============================================================================
// VIEW
// =============================================================================

// Background colors applied to the card element.
const (
	EditingBackground  = "rgba(255, 238, 0, 0.1)"
	ReplyingBackground = "rgba(0, 255, 255, 0.1)"
	FlashBackground    = "rgba(255, 255, 0, 0.1)"
)

// View is a snapshot of a card for drawing.
type View struct {
	Record   model.MessageRecord
	State    model.CardState
	Editing  bool
	Replying bool
	Flash    bool
	Fading   bool
	Buttons  []Button

	BodyHTML    string
	ReplyHTML   string
	ReplyHeader string
	Links       []string
}

// Classes returns the class list of the card element.
func (v View) Classes() []string {
	classes := []string{"message", string(v.Record.UserType)}
	if v.State != model.StateSent {
		classes = append(classes, v.State.String())
	}
	if v.Editing {
		classes = append(classes, "editing")
	}
	if v.Replying {
		classes = append(classes, "replying")
	}
	if v.Record.HasReply() {
		classes = append(classes, "replyed")
	}
	if v.Fading {
		classes = append(classes, "fade-out")
	}
	return classes
}

// Background returns the highlight color, or "" for none. A flash wins over
// the mode colors while it lasts.
func (v View) Background() string {
	switch {
	case v.Flash:
		return FlashBackground
	case v.Editing:
		return EditingBackground
	case v.Replying:
		return ReplyingBackground
	}
	return ""
}

// HTML renders the card element.
func (v View) HTML() string {
	rec := v.Record
	var b strings.Builder

	var style []string
	if bg := v.Background(); bg != "" {
		style = append(style, "background:"+bg+";")
	}
	if v.Fading {
		style = append(style, "opacity:0; transform:scale(0.95);")
	}
	fmt.Fprintf(&b, `<div class="%s" data-original-content="%s"`,
		strings.Join(v.Classes(), " "), html.EscapeString(rec.Content))
	if len(style) > 0 {
		fmt.Fprintf(&b, ` style="%s"`, strings.Join(style, " "))
	}
	b.WriteString(">")

	// Header
	b.WriteString(`<div class="message-header">`)
	fmt.Fprintf(&b, `<span class="username">%s</span>`, html.EscapeString(rec.Username))
	b.WriteString(`<div class="header-right">`)
	tsStyle := ` style="margin-left:30px;"`
	if rec.HasGift() {
		fmt.Fprintf(&b, `<span class="gift-tag" style="margin-left:30px;"><i class="fa-solid fa-gift"></i> %s</span>`,
			html.EscapeString(rec.GiftLabel()))
		tsStyle = ""
	}
	ts := html.EscapeString(rec.Timestamp)
	fmt.Fprintf(&b, `<span class="timestamp"%s data-ts="%s">%s`, tsStyle, ts, ts)
	if rec.IsEdited() {
		fmt.Fprintf(&b, ` <span class="edited-tag" data-tooltip="Edited on %s">(edited)</span>`,
			html.EscapeString(rec.EditedTimestamp))
	}
	b.WriteString(`</span></div></div>`)

	// Reply reference
	if v.ReplyHeader != "" {
		b.WriteString(`<div class="replied-block-wrapper"><i class="fa-solid fa-arrow-turn-down reply-icon"></i>`)
		fmt.Fprintf(&b, `<div class="replied-block"><div class="replied-user">%s</div><div class="replied-snippet">%s</div></div>`,
			html.EscapeString(v.ReplyHeader), v.ReplyHTML)
		b.WriteString(`</div>`)
	}

	fmt.Fprintf(&b, `<div class="message-content">%s</div>`, v.BodyHTML)
	fmt.Fprintf(&b, `<div class="editing-label" style="display:%s">editing...</div>`, display(v.Editing))
	fmt.Fprintf(&b, `<div class="replying-label" style="display:%s">replying...</div>`, display(v.Replying))

	b.WriteString(`<div class="message-actions">`)
	for _, btn := range v.Buttons {
		b.WriteString(buttonHTML(btn))
	}
	b.WriteString(`</div></div>`)
	return b.String()
}

func buttonHTML(btn Button) string {
	attrs := ""
	if !btn.Enabled() {
		attrs += " disabled"
	}
	if btn.Locked {
		attrs += ` style="opacity:0.5; pointer-events:none;"`
	}
	return fmt.Sprintf(`<button title="%s"%s><i class="%s"></i></button>`, btn.Title(), attrs, btn.Icon())
}

func display(on bool) string {
	if on {
		return "block"
	}
	return "none"
}

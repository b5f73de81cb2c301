// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package card

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/btczview/internal/model"
	"github.com/jeranaias/btczview/internal/sched"
)

func newBuilder() (*Builder, *sched.Manual) {
	clock := sched.NewManual()
	return NewBuilder(nil, clock), clock
}

func record(username, content, ts string) model.MessageRecord {
	return model.MessageRecord{
		UserType:  model.ParseUserType(username),
		Username:  username,
		Content:   content,
		Timestamp: ts,
	}
}

// =============================================================================
// ACTION ROW
// =============================================================================

func TestActionsFor(t *testing.T) {
	tests := []struct {
		username string
		want     []ButtonKind
	}{
		{"You", []ButtonKind{ButtonEdit, ButtonCopy}},
		{"you", []ButtonKind{ButtonEdit, ButtonCopy}},
		{"YOU", []ButtonKind{ButtonEdit, ButtonCopy}},
		{"alice", []ButtonKind{ButtonReply, ButtonCopy}},
		{"yours", []ButtonKind{ButtonReply, ButtonCopy}},
	}

	for _, tt := range tests {
		var got []ButtonKind
		for _, b := range ActionsFor(record(tt.username, "x", "t")) {
			got = append(got, b.Kind)
		}
		assert.Equal(t, tt.want, got, "username %q", tt.username)
	}
}

func TestBuild_WithoutActions(t *testing.T) {
	b, _ := newBuilder()
	c := b.Build(record("You", "pending", "t1"), false)
	assert.Empty(t, c.Buttons())
	assert.Contains(t, c.View().HTML(), `<div class="message-actions"></div>`)
}

func TestButton_Title(t *testing.T) {
	assert.Equal(t, "Edit", Button{Kind: ButtonEdit}.Title())
	assert.Equal(t, "Cancel", Button{Kind: ButtonReply, Cancel: true}.Title())
	assert.Equal(t, "fa-solid fa-xmark", Button{Kind: ButtonEdit, Cancel: true}.Icon())
	assert.False(t, Button{Locked: true}.Enabled())
	assert.False(t, Button{Disabled: true}.Enabled())
}

// =============================================================================
// RENDERING
// =============================================================================

func TestBuild_GiftTag(t *testing.T) {
	b, _ := newBuilder()
	tests := []struct {
		amount string
		want   bool
	}{
		{"", false},
		{"0", false},
		{"0.0001", false},
		{"0.00011", true},
		{"5", true},
		{"abc", false},
	}
	for _, tt := range tests {
		rec := record("alice", "hi", "t1")
		rec.Amount = tt.amount
		out := b.Build(rec, true).View().HTML()
		assert.Equal(t, tt.want, strings.Contains(out, `class="gift-tag"`), "amount %q", tt.amount)
	}
}

func TestBuild_ReplyBlock(t *testing.T) {
	b, _ := newBuilder()

	rec := record("alice", "sure", "t2")
	rec.RepliedUsername = "bob"
	rec.RepliedContent = "**lunch?**"
	v := b.Build(rec, true).View()
	assert.Equal(t, "bob", v.ReplyHeader)
	assert.Equal(t, "<b>lunch?</b>", v.ReplyHTML)
	assert.Contains(t, v.HTML(), `<div class="replied-user">bob</div>`)
	assert.Contains(t, v.Classes(), "replyed")

	rec.RepliedUsername = ""
	v = b.Build(rec, true).View()
	assert.Empty(t, v.ReplyHeader)
	assert.NotContains(t, v.HTML(), "replied-block")

	rec.RepliedUsername = "bob"
	rec.RepliedContent = "   "
	assert.NotContains(t, b.Build(rec, true).View().HTML(), "replied-block")
}

func TestView_HTML(t *testing.T) {
	b, _ := newBuilder()
	rec := record("<alice>", "hello :)", "10:30")
	rec.EditedTimestamp = "10:31"
	out := b.Build(rec, true).View().HTML()

	assert.True(t, strings.HasPrefix(out, `<div class="message other" data-original-content="hello :)">`), out)
	assert.Contains(t, out, `<span class="username">&lt;alice&gt;</span>`)
	assert.Contains(t, out, `<span class="timestamp" style="margin-left:30px;" data-ts="10:30">10:30`)
	assert.Contains(t, out, `data-tooltip="Edited on 10:31">(edited)</span>`)
	assert.Contains(t, out, `<div class="message-content">hello <span class="emoji">😊</span></div>`)
	assert.Contains(t, out, `<button title="Reply"><i class="fa-solid fa-reply"></i></button>`)
	assert.Contains(t, out, `<div class="editing-label" style="display:none">`)
}

func TestView_Background(t *testing.T) {
	assert.Equal(t, "", View{}.Background())
	assert.Equal(t, EditingBackground, View{Editing: true}.Background())
	assert.Equal(t, ReplyingBackground, View{Replying: true}.Background())
	assert.Equal(t, FlashBackground, View{Editing: true, Flash: true}.Background())
}

// =============================================================================
// MUTATION
// =============================================================================

func TestCard_EditingToggle(t *testing.T) {
	b, _ := newBuilder()
	c := b.Build(record("You", "draft", "t3"), true)

	c.SetEditing(true)
	btn, ok := c.Button(ButtonEdit)
	require.True(t, ok)
	assert.True(t, btn.Cancel)
	assert.True(t, c.SetCancelDisabled(true))
	btn, _ = c.Button(ButtonEdit)
	assert.False(t, btn.Enabled())

	html := c.View().HTML()
	assert.Contains(t, html, `<button title="Cancel" disabled><i class="fa-solid fa-xmark"></i></button>`)
	assert.Contains(t, html, `<div class="editing-label" style="display:block">`)

	c.SetEditing(false)
	btn, _ = c.Button(ButtonEdit)
	assert.False(t, btn.Cancel)
	assert.True(t, btn.Enabled())
	assert.False(t, c.SetCancelDisabled(true))
}

func TestCard_Locked(t *testing.T) {
	b, _ := newBuilder()
	c := b.Build(record("alice", "x", "t4"), true)

	c.SetLocked(true)
	for _, btn := range c.Buttons() {
		assert.False(t, btn.Enabled())
	}
	assert.Contains(t, c.View().HTML(), `style="opacity:0.5; pointer-events:none;"`)

	c.SetLocked(false)
	for _, btn := range c.Buttons() {
		assert.True(t, btn.Enabled())
	}
}

func TestCard_SetContent(t *testing.T) {
	b, _ := newBuilder()
	c := b.Build(record("You", "old", "t5"), true)

	c.SetContent("new & **bold**")
	assert.Equal(t, "new & **bold**", c.Record().Content)
	assert.Equal(t, "new &amp; <b>bold</b>", c.Body())
	assert.Equal(t, "new & bold", c.CopyText())

	c.SetEdited("  ")
	assert.False(t, c.Record().IsEdited())
	c.SetEdited("t6")
	assert.Equal(t, "t6", c.Record().EditedTimestamp)
}

func TestCard_RefreshReply(t *testing.T) {
	b, _ := newBuilder()
	rec := record("You", "x", "t7")
	rec.RepliedUsername = "bob"
	rec.RepliedContent = "hi"
	c := b.Build(rec, false)

	c.RefreshReply()
	assert.Equal(t, "@bob", c.View().ReplyHeader)
}

func TestCard_EnsureActions(t *testing.T) {
	b, _ := newBuilder()
	c := b.Build(record("You", "x", "t8"), false)

	assert.True(t, c.EnsureActions())
	assert.False(t, c.EnsureActions())
	_, ok := c.Button(ButtonEdit)
	assert.True(t, ok)
}

func TestCard_DetachCancelsTimers(t *testing.T) {
	b, clock := newBuilder()
	c := b.Build(record("You", "x", "t9"), true)

	fired := false
	c.Timers().After(time.Second, func() { fired = true })
	c.Detach()
	clock.Advance(time.Minute)

	assert.False(t, fired)
	assert.True(t, c.Detached())
}

func TestView_Links(t *testing.T) {
	b, _ := newBuilder()
	v := b.Build(record("alice", "see https://a.io and https://b.io/x.gif", "t10"), true).View()
	assert.Equal(t, []string{"https://a.io", "https://b.io/x.gif"}, v.Links)
}

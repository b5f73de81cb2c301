// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/btczview/internal/bridge"
	"github.com/jeranaias/btczview/internal/card"
	"github.com/jeranaias/btczview/internal/model"
	"github.com/jeranaias/btczview/internal/panels"
	"github.com/jeranaias/btczview/internal/sched"
	"github.com/jeranaias/btczview/internal/timeline"
	"github.com/jeranaias/btczview/internal/ui/components"
	"github.com/jeranaias/btczview/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

type fakeClipboard struct{ text string }

func (f *fakeClipboard) WriteAll(text string) error {
	f.text = text
	return nil
}

type fixture struct {
	m     Model
	chat  *timeline.Controller
	set   *panels.Set
	rec   *bridge.Recorder
	clip  *fakeClipboard
	clock *sched.Manual
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		rec:   &bridge.Recorder{},
		clip:  &fakeClipboard{},
		clock: sched.NewManual(),
	}
	renderer := components.NewCardRenderer(styles.NewTheme(styles.ModeDark))
	f.chat = timeline.New(timeline.Options{
		Scheduler:       f.clock,
		Bridge:          f.rec,
		Clipboard:       f.clip,
		Measurer:        renderer,
		UnreadTolerance: 1,
		Placeholder:     true,
	})
	f.set = panels.New(panels.Options{Scheduler: f.clock, Location: time.UTC})
	t.Cleanup(func() {
		f.chat.Close()
		f.set.Close()
	})
	guard := timeline.NewKeyGuard(
		[]string{"ctrl+c"},
		[]string{"ctrl+q"},
		[]string{"tab", "shift+tab", "pgup", "pgdown", "home", "end"},
	)
	f.m = New(Options{Chat: f.chat, Panels: f.set, Renderer: renderer, Guard: guard})
	f.send(tea.WindowSizeMsg{Width: 80, Height: 24})
	return f
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	next, cmd := f.m.Update(msg)
	f.m = next.(Model)
	return cmd
}

func own(content, ts string) model.MessageRecord {
	return model.MessageRecord{UserType: model.UserYou, Username: "You", Content: content, Timestamp: ts}
}

func other(content, ts string) model.MessageRecord {
	return model.MessageRecord{UserType: model.UserOther, Username: "bob", Content: content, Timestamp: ts}
}

// regionCell returns the screen cell of the first region of card ts that
// matches pred.
func (f *fixture) regionCell(t *testing.T, ts string, pred func(components.Region) bool) (int, int) {
	t.Helper()
	for _, p := range f.m.placed {
		if p.ts != ts {
			continue
		}
		for _, r := range p.card.Regions {
			if pred(r) {
				return r.Col, p.top + r.Line - f.m.vp.YOffset + 1
			}
		}
	}
	t.Fatalf("no matching region on card %s", ts)
	return 0, 0
}

func isButton(kind card.ButtonKind) func(components.Region) bool {
	return func(r components.Region) bool {
		return r.Target == timeline.TargetButton && r.Button == kind
	}
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// =============================================================================
// FILTER
// =============================================================================

func TestFilter(t *testing.T) {
	f := newFixture(t)
	guard := timeline.NewKeyGuard([]string{"ctrl+c"}, []string{"ctrl+q"}, []string{"tab"})
	filter := Filter(guard)

	home := f.m
	home.tab = TabHome

	tests := []struct {
		name string
		m    tea.Model
		msg  tea.Msg
		pass bool
	}{
		{"letter dropped", f.m, runes("a"), false},
		{"quit passes", f.m, key(tea.KeyCtrlQ), true},
		{"nav passes", home, key(tea.KeyTab), true},
		{"copy in messages", f.m, key(tea.KeyCtrlC), true},
		{"copy elsewhere", home, key(tea.KeyCtrlC), false},
		{"right click dropped", f.m, tea.MouseMsg{Type: tea.MouseRight}, false},
		{"left click passes", f.m, tea.MouseMsg{Type: tea.MouseLeft}, true},
		{"resize passes", f.m, tea.WindowSizeMsg{Width: 1, Height: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter(tt.m, tt.msg)
			if tt.pass {
				assert.Equal(t, tt.msg, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

// =============================================================================
// KEYS
// =============================================================================

func TestTabKeys(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, TabMessages, f.m.Tab())

	f.send(key(tea.KeyTab))
	assert.Equal(t, TabHome, f.m.Tab())
	f.send(key(tea.KeyTab))
	f.send(key(tea.KeyTab))
	f.send(key(tea.KeyTab))
	assert.Equal(t, TabMessages, f.m.Tab())

	f.send(key(tea.KeyShiftTab))
	assert.Equal(t, TabWallet, f.m.Tab())
}

func TestQuitKey(t *testing.T) {
	f := newFixture(t)
	cmd := f.send(key(tea.KeyCtrlQ))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestCopyKey_CopiesNewestCard(t *testing.T) {
	f := newFixture(t)
	f.chat.Append(other("first", "a"))
	f.chat.Append(other("second", "b"))
	f.send(RefreshMsg{})

	f.send(key(tea.KeyCtrlC))
	assert.Equal(t, "second", f.clip.text)
	assert.Contains(t, f.m.View(), timeline.CopiedToast)
}

func TestScrollKeys(t *testing.T) {
	f := newFixture(t)
	for i := range 20 {
		f.chat.Append(other(fmt.Sprintf("message %d", i), fmt.Sprintf("t%02d", i)))
	}
	f.send(RefreshMsg{})
	require.Greater(t, f.m.snap.ScrollHeight, f.m.chatHeight())

	f.send(key(tea.KeyEnd))
	bottom := f.chat.Snapshot().ScrollTop
	assert.Positive(t, bottom)
	assert.Equal(t, bottom, f.m.vp.YOffset)

	f.send(key(tea.KeyPgUp))
	assert.Equal(t, max(bottom-f.m.chatHeight(), 0), f.chat.Snapshot().ScrollTop)

	f.send(key(tea.KeyHome))
	assert.Zero(t, f.chat.Snapshot().ScrollTop)
	assert.Equal(t, 1, f.rec.Count(bridge.ActionScrolledToTop))
}

// =============================================================================
// MOUSE
// =============================================================================

func TestClick_EditButton(t *testing.T) {
	f := newFixture(t)
	f.chat.Append(own("hello", "a"))
	f.send(RefreshMsg{})

	x, y := f.regionCell(t, "a", isButton(card.ButtonEdit))
	f.send(tea.MouseMsg{X: x, Y: y, Type: tea.MouseLeft})

	assert.Equal(t, "a", f.chat.Snapshot().EditingTimestamp)
	assert.Equal(t, 1, f.rec.Count(bridge.ActionEdit))
	assert.Contains(t, f.m.View(), "editing…")
}

func TestClick_LockedButtonShowsNotice(t *testing.T) {
	f := newFixture(t)
	f.chat.Append(own("one", "a"))
	f.chat.Append(own("two", "b"))
	require.NoError(t, f.chat.ToggleEdit("a"))
	f.send(RefreshMsg{})

	x, y := f.regionCell(t, "b", isButton(card.ButtonEdit))
	f.send(tea.MouseMsg{X: x, Y: y, Type: tea.MouseLeft})

	assert.Equal(t, "a", f.chat.Snapshot().EditingTimestamp)
	assert.Equal(t, "Finish the current edit or reply first", f.m.notice)
}

func TestClick_CopyButton(t *testing.T) {
	f := newFixture(t)
	f.chat.Append(other("copy me", "a"))
	f.send(RefreshMsg{})

	x, y := f.regionCell(t, "a", isButton(card.ButtonCopy))
	f.send(tea.MouseMsg{X: x, Y: y, Type: tea.MouseLeft})

	assert.Equal(t, "copy me", f.clip.text)
	assert.Equal(t, "a", f.m.focus)
}

func TestHoverAndClickLink(t *testing.T) {
	f := newFixture(t)
	f.chat.Append(other("see https://example.com/x now", "a"))
	f.send(RefreshMsg{})

	x, y := f.regionCell(t, "a", func(r components.Region) bool { return r.Target == timeline.TargetLink })
	f.send(tea.MouseMsg{X: x, Y: y, Type: tea.MouseMotion})
	assert.Equal(t, "https://example.com/x", f.m.hover)

	f.send(tea.MouseMsg{X: x, Y: y, Type: tea.MouseLeft})
	events := f.rec.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, bridge.URLClicked("https://example.com/x"), events[len(events)-1])

	f.send(tea.MouseMsg{X: 0, Y: 0, Type: tea.MouseMotion})
	assert.Empty(t, f.m.hover)
}

func TestClick_TabBar(t *testing.T) {
	f := newFixture(t)
	col := 0
	for tab := TabMessages; tab < TabMining; tab++ {
		col += len(tab.String()) + 2*tabPadding
	}
	f.send(tea.MouseMsg{X: col + 1, Y: 0, Type: tea.MouseLeft})
	assert.Equal(t, TabMining, f.m.Tab())
}

func TestClick_UnreadLabel(t *testing.T) {
	f := newFixture(t)
	for i := range 20 {
		f.chat.Append(other(fmt.Sprintf("message %d", i), fmt.Sprintf("t%02d", i)))
	}
	require.True(t, f.chat.UnreadVisibility())
	f.send(RefreshMsg{})
	assert.Contains(t, f.m.View(), UnreadText)

	f.send(tea.MouseMsg{X: 79, Y: 23, Type: tea.MouseLeft})
	snap := f.chat.Snapshot()
	assert.False(t, snap.Unread)
	assert.Equal(t, snap.ScrollHeight-snap.ClientHeight, snap.ScrollTop)
}

func TestWheelScroll(t *testing.T) {
	f := newFixture(t)
	for i := range 20 {
		f.chat.Append(other(fmt.Sprintf("message %d", i), fmt.Sprintf("t%02d", i)))
	}
	f.send(RefreshMsg{})
	f.send(tea.MouseMsg{Type: tea.MouseWheelDown})
	assert.Equal(t, wheelStep, f.chat.Snapshot().ScrollTop)
	f.send(tea.MouseMsg{Type: tea.MouseWheelUp})
	assert.Zero(t, f.chat.Snapshot().ScrollTop)
}

// =============================================================================
// VIEW
// =============================================================================

func TestView_Placeholder(t *testing.T) {
	f := newFixture(t)
	assert.Contains(t, f.m.View(), PlaceholderText)

	f.chat.Clear()
	f.send(RefreshMsg{})
	assert.NotContains(t, f.m.View(), PlaceholderText)

	f.chat.RestorePlaceholder()
	f.send(RefreshMsg{})
	assert.Contains(t, f.m.View(), PlaceholderText)
}

func TestView_Panels(t *testing.T) {
	f := newFixture(t)
	f.set.Market.SetBTCZPrice("$0.00004")
	f.set.Mining.SetHashrate("1200")
	f.set.Wallet.SetBalances("10", "4", "6")

	f.send(key(tea.KeyTab))
	assert.Contains(t, f.m.View(), "$0.00004")
	assert.Contains(t, f.m.View(), panels.DefaultChartMessage[:10])

	f.send(key(tea.KeyTab))
	assert.Contains(t, f.m.View(), "1200 Sol/s")

	f.send(key(tea.KeyTab))
	view := f.m.View()
	assert.Contains(t, view, "Transparent")
	assert.Contains(t, view, "6")
}

func TestView_SendingSpinner(t *testing.T) {
	f := newFixture(t)
	f.chat.AddPending(own("on its way", "p"))
	f.send(RefreshMsg{})
	assert.True(t, f.m.sending())
	assert.Contains(t, f.m.View(), "sending")

	f.chat.MarkSent("p")
	f.send(RefreshMsg{})
	assert.False(t, f.m.sending())
	assert.NotContains(t, f.m.View(), "sending")
}

func TestView_Size(t *testing.T) {
	f := newFixture(t)
	f.chat.Append(other(strings.Repeat("long line ", 30), "a"))
	f.send(RefreshMsg{})
	assert.Len(t, strings.Split(f.m.View(), "\n"), 24)
}

func TestTabAt(t *testing.T) {
	tests := []struct {
		x    int
		want Tab
		ok   bool
	}{
		{0, TabMessages, true},
		{len("Messages") + 2*tabPadding, TabHome, true},
		{1000, 0, false},
	}
	for _, tt := range tests {
		got, ok := tabAt(tt.x)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("tabAt(%d) = %v, %v; want %v, %v", tt.x, got, ok, tt.want, tt.ok)
		}
	}
}

// =============================================================================
// NOTIFIER
// =============================================================================

type chanSender chan tea.Msg

func (c chanSender) Send(msg tea.Msg) { c <- msg }

func TestNotifier_Coalesces(t *testing.T) {
	f := newFixture(t)
	sent := make(chanSender, 8)
	n := &Notifier{}
	f.m.notifier = n

	n.Notify() // not attached: dropped
	n.Attach(sent)
	n.Notify()
	n.Notify()

	require.Equal(t, RefreshMsg{}, <-sent)
	select {
	case <-sent:
		t.Fatal("second notification was not coalesced")
	case <-time.After(20 * time.Millisecond):
	}

	f.send(RefreshMsg{})
	n.Notify()
	require.Equal(t, RefreshMsg{}, <-sent)
}

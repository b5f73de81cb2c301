// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package host

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/btczview/internal/bridge"
	"github.com/jeranaias/btczview/internal/card"
	"github.com/jeranaias/btczview/internal/model"
	"github.com/jeranaias/btczview/internal/panels"
	"github.com/jeranaias/btczview/internal/sched"
	"github.com/jeranaias/btczview/internal/timeline"
)

type fixture struct {
	d      *Dispatcher
	chat   *timeline.Controller
	panels *panels.Set
	clock  *sched.Manual
	rec    *bridge.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{clock: sched.NewManual(), rec: &bridge.Recorder{}}
	f.chat = timeline.New(timeline.Options{
		Scheduler: f.clock,
		Bridge:    f.rec,
		Measurer:  timeline.MeasurerFunc(func(card.View, int) int { return 10 }),
	})
	f.chat.SetViewport(80, 20)
	f.panels = panels.New(panels.Options{Scheduler: f.clock, Location: time.UTC})
	f.d = New(f.chat, f.panels, "")
	t.Cleanup(func() {
		f.chat.Close()
		f.panels.Close()
	})
	return f
}

func (f *fixture) call(t *testing.T, data string) {
	t.Helper()
	require.NoError(t, f.d.DispatchJSON([]byte(data)))
}

func TestChatCalls(t *testing.T) {
	f := newFixture(t)

	f.call(t, `{"method":"addMessage","params":{"user_type":"other","username":"alice","content":"hi","timestamp":"1","amount":0.5}}`)
	f.call(t, `{"method":"addMessage","params":{"user_type":"you","username":"You","content":"yo","timestamp":"3"}}`)
	f.call(t, `{"method":"insertMessage","params":{"index":1,"username":"bob","content":"mid","timestamp":"2"}}`)
	require.Equal(t, 3, f.chat.Len())

	snap := f.chat.Snapshot()
	assert.Equal(t, "2", snap.Cards[1].Record.Timestamp)
	assert.Equal(t, "0.5", snap.Cards[0].Record.Amount)
	assert.True(t, snap.Cards[0].Record.HasGift())
	assert.Equal(t, model.UserYou, snap.Cards[2].Record.UserType)

	f.call(t, `{"method":"editMessage","params":{"timestamp":"3","content":"edited","edited_timestamp":"4"}}`)
	v, ok := f.chat.Find("3")
	require.True(t, ok)
	assert.Equal(t, "edited", v.Record.Content)

	f.call(t, `{"method":"clearChat"}`)
	assert.Zero(t, f.chat.Len())
}

func TestPendingCalls(t *testing.T) {
	f := newFixture(t)

	f.call(t, `{"method":"addPendingMessage","params":{"content":"hello","timestamp":"9"}}`)
	v, ok := f.chat.Find("9")
	require.True(t, ok)
	assert.Equal(t, model.StateSending, v.State)
	assert.Equal(t, "You", v.Record.Username)

	f.call(t, `{"method":"markMessageAsSent","params":{"timestamp":"9"}}`)
	v, _ = f.chat.Find("9")
	assert.Equal(t, model.StateSent, v.State)

	f.call(t, `{"method":"addPendingMessage","params":{"content":"oops","timestamp":"10"}}`)
	f.call(t, `{"method":"markMessageAsFailed","params":{"timestamp":"10"}}`)
	f.clock.Advance(timeline.DefaultTimings().FailedHold + timeline.DefaultTimings().FailedFade)
	_, ok = f.chat.Find("10")
	assert.False(t, ok)
}

func TestModeCalls(t *testing.T) {
	f := newFixture(t)
	f.call(t, `{"method":"addMessage","params":{"username":"You","content":"mine","timestamp":"1"}}`)
	require.NoError(t, f.chat.ToggleEdit("1"))

	f.call(t, `{"method":"disableCancelEditButton"}`)
	v, _ := f.chat.Find("1")
	require.NotEmpty(t, v.Buttons)
	assert.Equal(t, card.ButtonEdit, v.Buttons[0].Kind)
	assert.True(t, v.Buttons[0].Disabled)

	f.call(t, `{"method":"enableCancelEditButton"}`)
	f.call(t, `{"method":"cancelEdit"}`)
	assert.Empty(t, f.chat.Snapshot().EditingTimestamp)
}

func TestPanelCalls(t *testing.T) {
	f := newFixture(t)

	f.call(t, `{"method":"setBTCZPrice","params":{"value":"$0.0001"}}`)
	f.call(t, `{"method":"setChange24h","params":{"value":-3.2}}`)
	f.call(t, `{"method":"setVolume","params":{"value":null}}`)
	f.call(t, `{"method":"setHashrate"}`)
	f.call(t, `{"method":"setBalances","params":{"total":"3","transparent":"1","shielded":"2"}}`)
	f.call(t, `{"method":"setUnconfirmedBalance","params":{"value":"0.1"}}`)

	m := f.panels.Market.View()
	assert.Equal(t, "$0.0001", m.Price.Text)
	assert.Equal(t, "-3.2", m.Change24h.Text)
	assert.Equal(t, panels.ColorDown, m.Change24h.Color)
	assert.Equal(t, "--", m.Volume.Text)
	assert.Equal(t, "-- Sol/s", f.panels.Mining.View().Hashrate)

	w := f.panels.Wallet.View()
	assert.Equal(t, "3", w.Total)
	assert.True(t, w.UnconfirmedShown)
}

func TestGenerateData(t *testing.T) {
	f := newFixture(t)

	f.call(t, `{"method":"generateData","params":{"prices":[[0,0.00012],{"t":3600000,"p":0.00013}]}}`)
	v := f.panels.Chart.View()
	assert.Equal(t, "BTCZ/USD", v.Label)
	assert.Equal(t, []string{"0:00", "1:00"}, v.Labels)

	f.call(t, `{"method":"generateData","params":{"prices":[],"currency":"EUR"}}`)
	assert.True(t, f.panels.Chart.View().Failed)
}

func TestDispatchErrors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		data string
		want error
	}{
		{"not json", `{`, ErrBadParams},
		{"no method", `{"params":{}}`, ErrBadParams},
		{"unknown", `{"method":"eval"}`, ErrUnknownMethod},
		{"missing timestamp", `{"method":"addMessage","params":{"content":"x"}}`, ErrBadParams},
		{"missing index", `{"method":"insertMessage","params":{"timestamp":"1"}}`, ErrBadParams},
		{"object value", `{"method":"setVolume","params":{"value":{}}}`, ErrBadParams},
		{"params not object", `{"method":"markMessageAsSent","params":[1]}`, ErrBadParams},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.d.DispatchJSON([]byte(tt.data))
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestObserveAndMethods(t *testing.T) {
	f := newFixture(t)
	var seen []string
	f.d.Observe = func(c Call) { seen = append(seen, c.Method) }

	c, err := NewCall("showToast", map[string]string{"value": "hey"})
	require.NoError(t, err)
	require.NoError(t, f.d.Dispatch(c))
	_ = f.d.Dispatch(Call{Method: "nope"})

	assert.Equal(t, []string{"showToast"}, seen)
	assert.Equal(t, "hey", f.chat.Snapshot().Toast)

	methods := f.d.Methods()
	assert.Contains(t, methods, "addMessage")
	assert.Contains(t, methods, "setUnconfirmedBalance")
	assert.Len(t, methods, 37)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package bridge

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{"edit", Edit("hello", "12:00"), `{"action":"edit","content":"hello","timestamp":"12:00"}`},
		{"edit empty content", Edit("", "12:00"), `{"action":"edit","content":"","timestamp":"12:00"}`},
		{"reply", Reply("12:01"), `{"action":"reply","timestamp":"12:01"}`},
		{"url", URLClicked("https://a.io"), `{"action":"urlClicked","url":"https://a.io"}`},
		{"cancel edit", Simple(ActionCancelEdit), `{"action":"cancelEdit"}`},
		{"cancel reply", Simple(ActionCancelReply), `{"action":"cancelReply"}`},
		{"bottom", Simple(ActionScrolledToBottom), `{"action":"scrolledToBottom"}`},
		{"top", Simple(ActionScrolledToTop), `{"action":"scrolledToTop"}`},
		{"stray payload dropped", Event{Action: ActionCancelEdit, URL: "x"}, `{"action":"cancelEdit"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.ev)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestEvent_UnmarshalJSON(t *testing.T) {
	var e Event
	require.NoError(t, json.Unmarshal([]byte(`{"action":"reply","timestamp":"t1"}`), &e))
	assert.Equal(t, Reply("t1"), e)

	assert.Error(t, json.Unmarshal([]byte(`{"timestamp":"t1"}`), &e))
}

func TestAction_Known(t *testing.T) {
	assert.True(t, ActionScrolledToTop.Known())
	assert.False(t, Action("explode").Known())
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf)
	s.Send(Reply("a"))
	s.Send(Simple(ActionCancelReply))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"action":"cancelReply"}`, lines[1])
}

func TestHub_FanOut(t *testing.T) {
	rec := &Recorder{}
	h := NewHub(rec)
	sub := h.Subscribe(4)
	require.Equal(t, 1, h.Subscribers())

	h.Send(URLClicked("https://a.io"))

	assert.Equal(t, []Event{URLClicked("https://a.io")}, rec.Events())
	select {
	case e := <-sub.C:
		assert.Equal(t, ActionURLClicked, e.Action)
	default:
		t.Fatal("subscriber did not receive event")
	}

	h.Unsubscribe(sub)
	h.Unsubscribe(sub)
	assert.Zero(t, h.Subscribers())
	_, open := <-sub.C
	assert.False(t, open)
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe(1)

	h.Send(Simple(ActionScrolledToTop))
	h.Send(Simple(ActionScrolledToBottom))
	h.Send(Simple(ActionScrolledToBottom))

	assert.Equal(t, uint64(2), h.Dropped())
	e := <-sub.C
	assert.Equal(t, ActionScrolledToTop, e.Action)
}

func TestRecorder_Count(t *testing.T) {
	rec := &Recorder{}
	h := NewHub()
	h.Attach(rec)
	h.Send(Simple(ActionScrolledToBottom))
	h.Send(Simple(ActionScrolledToBottom))
	h.Send(Simple(ActionScrolledToTop))

	assert.Equal(t, 2, rec.Count(ActionScrolledToBottom))
	rec.Reset()
	assert.Empty(t, rec.Events())
}

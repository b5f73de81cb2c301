// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sched

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManual_RunsInDueOrder(t *testing.T) {
	m := NewManual()
	var order []string
	m.AfterFunc(300*time.Millisecond, func() { order = append(order, "c") })
	m.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	m.AfterFunc(100*time.Millisecond, func() { order = append(order, "b") })

	m.Advance(99 * time.Millisecond)
	assert.Empty(t, order)

	m.Advance(time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)

	m.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 1099*time.Millisecond+time.Millisecond, m.Now())
}

func TestManual_ChainedTasks(t *testing.T) {
	m := NewManual()
	var fired []time.Duration
	m.AfterFunc(2*time.Second, func() {
		fired = append(fired, m.Now())
		m.AfterFunc(400*time.Millisecond, func() {
			fired = append(fired, m.Now())
		})
	})

	m.Advance(3 * time.Second)
	assert.Equal(t, []time.Duration{2 * time.Second, 2400 * time.Millisecond}, fired)
	assert.Zero(t, m.Pending())
}

func TestManual_Stop(t *testing.T) {
	m := NewManual()
	ran := false
	task := m.AfterFunc(time.Second, func() { ran = true })

	assert.True(t, task.Stop())
	assert.False(t, task.Stop())
	m.Advance(2 * time.Second)
	assert.False(t, ran)
}

func TestGroup_CancelStopsPending(t *testing.T) {
	m := NewManual()
	g := NewGroup(m)
	var n int
	g.After(time.Second, func() { n++ })
	g.After(2*time.Second, func() { n++ })
	require.Equal(t, 2, g.Pending())

	m.Advance(time.Second)
	assert.Equal(t, 1, n)

	g.Cancel()
	m.Advance(time.Hour)
	assert.Equal(t, 1, n)
	assert.True(t, g.Canceled())

	g.After(time.Millisecond, func() { n++ })
	m.Advance(time.Second)
	assert.Equal(t, 1, n, "cancelled group must not accept new tasks")
}

func TestGroup_AfterKeyReplaces(t *testing.T) {
	m := NewManual()
	g := NewGroup(m)
	var hits []string
	g.AfterKey("flash", 500*time.Millisecond, func() { hits = append(hits, "first") })
	m.Advance(300 * time.Millisecond)
	g.AfterKey("flash", 500*time.Millisecond, func() { hits = append(hits, "second") })

	m.Advance(300 * time.Millisecond)
	assert.Empty(t, hits)

	m.Advance(200 * time.Millisecond)
	assert.Equal(t, []string{"second"}, hits)
	assert.Zero(t, g.Pending())
}

func TestGroup_StopKey(t *testing.T) {
	m := NewManual()
	g := NewGroup(m)
	ran := false
	g.AfterKey("k", time.Second, func() { ran = true })

	assert.True(t, g.StopKey("k"))
	assert.False(t, g.StopKey("k"))
	m.Advance(time.Minute)
	assert.False(t, ran)
}

func TestGroup_Real(t *testing.T) {
	g := NewGroup(Real{})
	var n atomic.Int32
	done := make(chan struct{})
	g.After(time.Millisecond, func() {
		n.Add(1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not fire")
	}
	assert.Equal(t, int32(1), n.Load())
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sched

import (
	"sync"
	"time"
)

// Group is a set of tasks owned by one object. The zero value is not usable;
// create groups with NewGroup.
type Group struct {
	s Scheduler

	mu       sync.Mutex
	next     uint64
	tasks    map[uint64]Task
	keyed    map[string]uint64
	canceled bool
}

// NewGroup returns an empty group scheduling on s.
func NewGroup(s Scheduler) *Group {
	return &Group{
		s:     s,
		tasks: make(map[uint64]Task),
		keyed: make(map[string]uint64),
	}
}

// After schedules f unless the group has been cancelled. f does not run if
// the group is cancelled before it fires.
func (g *Group) After(d time.Duration, f func()) {
	g.schedule("", d, f)
}

// AfterKey is like After but first stops any pending task scheduled under
// the same key, so only the latest one fires.
func (g *Group) AfterKey(key string, d time.Duration, f func()) {
	g.schedule(key, d, f)
}

func (g *Group) schedule(key string, d time.Duration, f func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.canceled {
		return
	}
	if key != "" {
		if prev, ok := g.keyed[key]; ok {
			if t := g.tasks[prev]; t != nil {
				t.Stop()
			}
			delete(g.tasks, prev)
		}
	}

	g.next++
	id := g.next
	if key != "" {
		g.keyed[key] = id
	}
	g.tasks[id] = g.s.AfterFunc(d, func() {
		g.mu.Lock()
		_, live := g.tasks[id]
		delete(g.tasks, id)
		if key != "" && g.keyed[key] == id {
			delete(g.keyed, key)
		}
		run := live && !g.canceled
		g.mu.Unlock()
		if run {
			f()
		}
	})
}

// StopKey stops the pending task under key, if any.
func (g *Group) StopKey(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, ok := g.keyed[key]
	if !ok {
		return false
	}
	delete(g.keyed, key)
	t := g.tasks[id]
	delete(g.tasks, id)
	return t != nil && t.Stop()
}

// Cancel stops every pending task and rejects future ones.
func (g *Group) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.canceled = true
	for id, t := range g.tasks {
		t.Stop()
		delete(g.tasks, id)
	}
	clear(g.keyed)
}

// Canceled reports whether Cancel has been called.
func (g *Group) Canceled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.canceled
}

// Pending returns the number of tasks waiting to fire.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.tasks)
}

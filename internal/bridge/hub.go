// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package bridge

import (
	"encoding/json"
	"io"
	"log"
	"sync"

	"github.com/google/uuid"
)

// =============================================================================
// SINKS
// =============================================================================

// Sink receives outbound events. Send must not block for long and has no
// return value; the channel is fire-and-forget.
type Sink interface {
	Send(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Send calls f(e).
func (f SinkFunc) Send(e Event) { f(e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// WriterSink writes one JSON object per line.
type WriterSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriterSink returns a sink encoding events to w as NDJSON.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{enc: json.NewEncoder(w)}
}

// Send encodes e. Write errors are logged and otherwise ignored.
func (s *WriterSink) Send(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(e); err != nil {
		log.Printf("BRIDGE_WRITE_FAILED | action=%s error=%v", e.Action, err)
	}
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Send appends e.
func (r *Recorder) Send(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Count returns how many recorded events have action a.
func (r *Recorder) Count(a Action) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Action == a {
			n++
		}
	}
	return n
}

// Reset clears the recorder.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// =============================================================================
// HUB
// =============================================================================

// DefaultBuffer is the per-subscriber queue length.
const DefaultBuffer = 64

// Subscription is a live event feed.
type Subscription struct {
	ID string
	C  <-chan Event

	ch chan Event
}

// Hub fans events out to sinks and subscribers.
type Hub struct {
	mu    sync.RWMutex
	sinks []Sink
	subs  map[string]*Subscription

	dropped uint64
}

// NewHub returns a hub with the given static sinks.
func NewHub(sinks ...Sink) *Hub {
	return &Hub{
		sinks: append([]Sink(nil), sinks...),
		subs:  make(map[string]*Subscription),
	}
}

// Attach adds a static sink.
func (h *Hub) Attach(s Sink) {
	h.mu.Lock()
	h.sinks = append(h.sinks, s)
	h.mu.Unlock()
}

// Subscribe registers a buffered subscriber. buf <= 0 uses DefaultBuffer.
func (h *Hub) Subscribe(buf int) *Subscription {
	if buf <= 0 {
		buf = DefaultBuffer
	}
	ch := make(chan Event, buf)
	sub := &Subscription{ID: uuid.NewString(), C: ch, ch: ch}

	h.mu.Lock()
	h.subs[sub.ID] = sub
	h.mu.Unlock()
	return sub
}

// Unsubscribe removes the subscriber and closes its channel.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub.ID]; !ok {
		return
	}
	delete(h.subs, sub.ID)
	close(sub.ch)
}

// Subscribers returns the number of live subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Dropped returns how many subscriber deliveries were skipped because the
// subscriber's queue was full.
func (h *Hub) Dropped() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}

// Send offers e to every subscriber without blocking, then delivers it to
// every sink.
func (h *Hub) Send(e Event) {
	h.mu.RLock()
	sinks := h.sinks
	var full int
	for _, sub := range h.subs {
		select {
		case sub.ch <- e:
		default:
			full++
			log.Printf("BRIDGE_DROP | sub=%s action=%s", sub.ID, e.Action)
		}
	}
	h.mu.RUnlock()

	if full > 0 {
		h.mu.Lock()
		h.dropped += uint64(full)
		h.mu.Unlock()
	}
	for _, s := range sinks {
		s.Send(e)
	}
}

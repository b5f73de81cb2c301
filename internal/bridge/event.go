// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package bridge

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// ACTIONS
// =============================================================================

// Action names an outbound user intent.
type Action string

const (
	ActionEdit             Action = "edit"
	ActionCancelEdit       Action = "cancelEdit"
	ActionReply            Action = "reply"
	ActionCancelReply      Action = "cancelReply"
	ActionURLClicked       Action = "urlClicked"
	ActionScrolledToBottom Action = "scrolledToBottom"
	ActionScrolledToTop    Action = "scrolledToTop"
)

// Known reports whether a is one of the recognized actions.
func (a Action) Known() bool {
	switch a {
	case ActionEdit, ActionCancelEdit, ActionReply, ActionCancelReply,
		ActionURLClicked, ActionScrolledToBottom, ActionScrolledToTop:
		return true
	}
	return false
}

// =============================================================================
// EVENT
// =============================================================================

// Event is one outbound message. Only the fields meaningful for Action are
// serialized.
type Event struct {
	Action    Action
	Content   string
	Timestamp string
	URL       string
}

// Edit is sent when a card enters edit mode.
func Edit(content, timestamp string) Event {
	return Event{Action: ActionEdit, Content: content, Timestamp: timestamp}
}

// Reply is sent when a card enters reply mode.
func Reply(timestamp string) Event {
	return Event{Action: ActionReply, Timestamp: timestamp}
}

// URLClicked is sent when a link span is clicked.
func URLClicked(url string) Event {
	return Event{Action: ActionURLClicked, URL: url}
}

// Simple builds an event that carries no payload.
func Simple(a Action) Event {
	return Event{Action: a}
}

// MarshalJSON writes the action plus its payload fields.
func (e Event) MarshalJSON() ([]byte, error) {
	switch e.Action {
	case ActionEdit:
		return json.Marshal(struct {
			Action    Action `json:"action"`
			Content   string `json:"content"`
			Timestamp string `json:"timestamp"`
		}{e.Action, e.Content, e.Timestamp})
	case ActionReply:
		return json.Marshal(struct {
			Action    Action `json:"action"`
			Timestamp string `json:"timestamp"`
		}{e.Action, e.Timestamp})
	case ActionURLClicked:
		return json.Marshal(struct {
			Action Action `json:"action"`
			URL    string `json:"url"`
		}{e.Action, e.URL})
	default:
		return json.Marshal(struct {
			Action Action `json:"action"`
		}{e.Action})
	}
}

// UnmarshalJSON accepts the wire shape written by MarshalJSON.
func (e *Event) UnmarshalJSON(data []byte) error {
	var wire struct {
		Action    Action `json:"action"`
		Content   string `json:"content"`
		Timestamp string `json:"timestamp"`
		URL       string `json:"url"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Action == "" {
		return fmt.Errorf("bridge: event without action")
	}
	*e = Event{Action: wire.Action, Content: wire.Content, Timestamp: wire.Timestamp, URL: wire.URL}
	return nil
}

// String formats the event for logs.
func (e Event) String() string {
	switch e.Action {
	case ActionEdit:
		return fmt.Sprintf("%s ts=%s len=%d", e.Action, e.Timestamp, len(e.Content))
	case ActionReply:
		return fmt.Sprintf("%s ts=%s", e.Action, e.Timestamp)
	case ActionURLClicked:
		return fmt.Sprintf("%s url=%s", e.Action, e.URL)
	default:
		return string(e.Action)
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package timeline implements the chat timeline controller.
//
// A Controller owns the ordered list of message cards and every piece of
// state around it: the scroll position, the unread indicator, the toast,
// the empty-state placeholder and the single edit/reply mode slot. All
// operations are serialized by one mutex, including the callbacks of the
// deferred effects (toast hide, edit flash, failed-message removal), which
// are bound to the card or controller that scheduled them and cancelled
// with it.
//
// # Card lifecycle
//
//	sending --MarkSent--> sent
//	sending --MarkFailed--> failed --hold--> fading --fade--> removed
//	idle <--ToggleEdit/CancelEdit--> editing
//	idle <--ToggleReply/CancelReply--> replying
//
// At most one card may be editing and at most one replying. While a card
// holds either mode every button on every other card is locked, and asking
// another card to enter a mode fails with ErrActionsLocked.
//
// # Scroll model
//
// Heights come from a Measurer in abstract units (terminal lines in the
// TUI). ScrollHeight is the sum of card heights; ClientHeight is set by
// the view with SetViewport.
package timeline

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package card builds message cards, the visual unit of the chat timeline.
//
// A Card holds one MessageRecord plus its UI-only state: delivery state,
// editing and replying flags, the highlight flash, and the action row. The
// body and reply snippet are formatted once through the markup pipeline and
// re-formatted when the content changes.
//
// Cards are created by a Builder and mutated only by the timeline
// controller, which serializes access. Rendering goes through View, an
// immutable copy that can be drawn as the HTML fragment the host expects or
// as a terminal block.
package card

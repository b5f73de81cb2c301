// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components renders message cards and panels as terminal text.

Cards are drawn line by line so that the caller can hit-test mouse clicks:
every RenderedCard carries the Regions of its action buttons and link spans,
addressed by line and display column.

Prose is rendered with glamour, fenced code with chroma. Both results are
cached per width, so measuring a card for the timeline and drawing it cost a
single render.
*/
package components

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the btczview terminal
front-end.

# Color System (colors.go)

All colors use Lip Gloss AdaptiveColor so that light and dark terminals get a
readable variant:

	Gold     - Brand accent, gift tags, own messages
	Cyan     - Links, replying highlight, other users
	Emerald  - Price increases, confirmed balances
	Rose     - Price decreases, failed sends
	Amber    - Editing highlight, warnings

# Theme System (theme.go)

Theme bundles the lipgloss styles used by the card renderer, the tab bar and
the auxiliary panels:

	theme := styles.NewTheme(styles.ModeAuto)
	header := theme.Username(model.UserYou).Render("alice")

The mode may force a dark or light palette; auto asks the terminal.
*/
package styles

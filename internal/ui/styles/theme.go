// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/btczview/internal/model"
)

// Theme modes accepted by NewTheme.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// TAB BAR AND STATUS LINE
	// ==========================================================================

	TabBar      lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	StatusBar   lipgloss.Style
	StatusLink  lipgloss.Style
	StatusHint  lipgloss.Style
	Toast       lipgloss.Style
	UnreadLabel lipgloss.Style
	Placeholder lipgloss.Style

	// ==========================================================================
	// MESSAGE CARD
	// ==========================================================================

	Card          lipgloss.Style
	CardEditing   lipgloss.Style
	CardReplying  lipgloss.Style
	CardFlash     lipgloss.Style
	OwnName       lipgloss.Style
	OtherName     lipgloss.Style
	Timestamp     lipgloss.Style
	EditedTag     lipgloss.Style
	GiftTag       lipgloss.Style
	ReplyQuote    lipgloss.Style
	ReplyHeader   lipgloss.Style
	Sending       lipgloss.Style
	Failed        lipgloss.Style
	Faded         lipgloss.Style
	Button        lipgloss.Style
	ButtonLocked  lipgloss.Style
	ButtonCancel  lipgloss.Style
	ModeLabel     lipgloss.Style
	CodeBlock     lipgloss.Style
	CodeLangBadge lipgloss.Style

	// ==========================================================================
	// PANELS
	// ==========================================================================

	PanelBox   lipgloss.Style
	PanelTitle lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	Up         lipgloss.Style
	Down       lipgloss.Style
}

// NewTheme creates a theme for mode. ModeDark and ModeLight force the
// adaptive palette; anything else asks the terminal.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()
	isDark := termenv.HasDarkBackground()
	switch mode {
	case ModeDark:
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case ModeLight:
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.TabBar = lipgloss.NewStyle().Background(SurfaceDim)
	t.Tab = lipgloss.NewStyle().Foreground(TextSecondary).Background(SurfaceDim).Padding(0, 2)
	t.TabActive = t.Tab.Foreground(Gold).Bold(true).Underline(true)
	t.StatusBar = lipgloss.NewStyle().Foreground(TextSecondary).Background(SurfaceDim)
	t.StatusLink = lipgloss.NewStyle().Foreground(Cyan).Background(SurfaceDim).Underline(true)
	t.StatusHint = lipgloss.NewStyle().Foreground(TextMuted).Background(SurfaceDim)
	t.Toast = lipgloss.NewStyle().Foreground(TextInverse).Background(Emerald).Bold(true).Padding(0, 2)
	t.UnreadLabel = lipgloss.NewStyle().Foreground(TextInverse).Background(Cyan).Bold(true).Padding(0, 1)
	t.Placeholder = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

	base := lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).BorderTop(false).BorderRight(false).BorderBottom(false).
		PaddingLeft(1)
	t.Card = base.BorderForeground(Overlay)
	t.CardEditing = base.BorderForeground(Amber)
	t.CardReplying = base.BorderForeground(Cyan)
	t.CardFlash = base.BorderForeground(Gold)

	t.OwnName = lipgloss.NewStyle().Foreground(Gold).Bold(true)
	t.OtherName = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.Timestamp = lipgloss.NewStyle().Foreground(TextMuted)
	t.EditedTag = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	t.GiftTag = lipgloss.NewStyle().Foreground(Gold)
	t.ReplyQuote = lipgloss.NewStyle().Foreground(TextSecondary).
		BorderStyle(lipgloss.NormalBorder()).BorderLeft(true).
		BorderTop(false).BorderRight(false).BorderBottom(false).
		BorderForeground(OverlayDim).PaddingLeft(1)
	t.ReplyHeader = lipgloss.NewStyle().Foreground(Cyan)
	t.Sending = lipgloss.NewStyle().Foreground(TextMuted)
	t.Failed = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.Faded = lipgloss.NewStyle().Foreground(TextMuted).Faint(true)
	t.Button = lipgloss.NewStyle().Foreground(TextSecondary)
	t.ButtonLocked = lipgloss.NewStyle().Foreground(OverlayDim).Faint(true)
	t.ButtonCancel = lipgloss.NewStyle().Foreground(Rose)
	t.ModeLabel = lipgloss.NewStyle().Foreground(Amber).Italic(true)
	t.CodeBlock = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.CodeLangBadge = lipgloss.NewStyle().Foreground(TextMuted).Background(OverlayDim).Padding(0, 1).Bold(true)

	t.PanelBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.PanelTitle = lipgloss.NewStyle().Foreground(Gold).Bold(true)
	t.Label = lipgloss.NewStyle().Foreground(TextSecondary)
	t.Value = lipgloss.NewStyle().Foreground(TextPrimary).Bold(true)
	t.Up = lipgloss.NewStyle().Foreground(Emerald)
	t.Down = lipgloss.NewStyle().Foreground(Rose)
}

// Username returns the name style for an author.
func (t *Theme) Username(u model.UserType) lipgloss.Style {
	if u == model.UserYou {
		return t.OwnName
	}
	return t.OtherName
}

// Hex returns a foreground style for a "#rrggbb" color.
func Hex(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// String describes the detected capabilities, for logs.
func (t *Theme) String() string {
	return fmt.Sprintf("dark=%t truecolor=%t profile=%d", t.IsDark, t.HasTrueColor, t.ColorProfile)
}

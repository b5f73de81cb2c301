// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/jeranaias/btczview/internal/model"
)

func TestNewTheme_ForcedModes(t *testing.T) {
	tests := []struct {
		mode string
		dark bool
	}{
		{ModeDark, true},
		{ModeLight, false},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			theme := NewTheme(tt.mode)
			if theme.IsDark != tt.dark {
				t.Errorf("NewTheme(%q).IsDark = %v, want %v", tt.mode, theme.IsDark, tt.dark)
			}
			if !strings.Contains(theme.String(), "dark=") {
				t.Errorf("String() = %q", theme.String())
			}
		})
	}
}

func TestTheme_Username(t *testing.T) {
	theme := NewTheme(ModeDark)
	own := theme.Username(model.UserYou).Render("me")
	other := theme.Username(model.UserOther).Render("bob")
	if !strings.Contains(own, "me") || !strings.Contains(other, "bob") {
		t.Errorf("username styles dropped text: %q %q", own, other)
	}
}

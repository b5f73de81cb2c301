// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jeranaias/btczview/internal/ui/styles"
)

// =============================================================================
// CODE BLOCK RENDERER
// =============================================================================

// codeChrome is the width taken by the box border, padding and line number
// gutter around a code line.
const codeChrome = 4 + 5

// renderCode draws a fenced code block no wider than width. Long lines are
// truncated; the code is never reflowed.
func renderCode(th *styles.Theme, code string, width int) []string {
	language := detectLanguage(code)
	formatter := "terminal256"
	if th.HasTrueColor {
		formatter = "terminal16m"
	}
	lines := strings.Split(highlightCode(code, language, formatter), "\n")
	if n := strings.Count(code, "\n") + 1; len(lines) > n {
		lines = lines[:n]
	}

	lineNumStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(4).
		Align(lipgloss.Right).
		MarginRight(1)

	avail := max(width-codeChrome, 8)
	rendered := make([]string, 0, len(lines)+1)
	if language != "" {
		rendered = append(rendered, th.CodeLangBadge.Render(strings.ToLower(language)))
	}
	for i, line := range lines {
		rendered = append(rendered, lineNumStyle.Render(fmt.Sprint(i+1))+ansi.Truncate(line, avail, "…"))
	}
	return strings.Split(th.CodeBlock.Render(strings.Join(rendered, "\n")), "\n")
}

// highlightCode applies syntax highlighting to code using the chroma library.
// The original text is returned when highlighting fails.
func highlightCode(code, language, formatterName string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get(formatterName)
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}

// detectLanguage names the language of code, or "" when chroma cannot tell.
func detectLanguage(code string) string {
	lexer := lexers.Analyse(code)
	if lexer != nil {
		return lexer.Config().Name
	}
	return ""
}

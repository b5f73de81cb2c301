// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"log"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/btczview/internal/card"
	"github.com/jeranaias/btczview/internal/markup"
	"github.com/jeranaias/btczview/internal/model"
	"github.com/jeranaias/btczview/internal/timeline"
	"github.com/jeranaias/btczview/internal/ui/styles"
)

// =============================================================================
// REGIONS
// =============================================================================

// Region is a clickable span of a rendered card, addressed by line and
// display column relative to the card's first line.
type Region struct {
	Line   int
	Col    int
	Width  int
	Target timeline.Target
	Button card.ButtonKind
	URL    string
}

// Contains reports whether the cell (line, col) lies in r.
func (r Region) Contains(line, col int) bool {
	return line == r.Line && col >= r.Col && col < r.Col+r.Width
}

// RenderedCard is a card drawn as terminal lines.
type RenderedCard struct {
	Lines   []string
	Regions []Region
}

// Height is the number of lines the card occupies, separator included.
func (rc RenderedCard) Height() int { return len(rc.Lines) }

// Hit returns the region under (line, col). Buttons win over links.
func (rc RenderedCard) Hit(line, col int) (Region, bool) {
	var link *Region
	for i := range rc.Regions {
		r := rc.Regions[i]
		if !r.Contains(line, col) {
			continue
		}
		if r.Target == timeline.TargetButton {
			return r, true
		}
		if link == nil {
			link = &rc.Regions[i]
		}
	}
	if link != nil {
		return *link, true
	}
	return Region{}, false
}

// =============================================================================
// CARD RENDERER
// =============================================================================

// cardChrome is the width taken by the card's left border and padding.
const cardChrome = 2

// glamourMargin is the document margin glamour adds on both sides.
const glamourMargin = 4

// maxCached bounds the prose cache; it is dropped wholesale when full.
const maxCached = 512

type proseKey struct {
	text  string
	width int
}

// CardRenderer draws card views. It is safe for concurrent use; the
// timeline measures cards from host goroutines while the program draws.
type CardRenderer struct {
	theme *styles.Theme

	mu        sync.Mutex
	glamStyle string
	renderers map[int]*glamour.TermRenderer
	prose     map[proseKey][]string
}

// NewCardRenderer creates a renderer for theme.
func NewCardRenderer(theme *styles.Theme) *CardRenderer {
	glamStyle := "dark"
	if !theme.IsDark {
		glamStyle = "light"
	}
	return &CardRenderer{
		theme:     theme,
		glamStyle: glamStyle,
		renderers: make(map[int]*glamour.TermRenderer),
		prose:     make(map[proseKey][]string),
	}
}

// SetTheme switches the theme and drops every cached render.
func (r *CardRenderer) SetTheme(theme *styles.Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.theme = theme
	r.glamStyle = "dark"
	if !theme.IsDark {
		r.glamStyle = "light"
	}
	r.renderers = make(map[int]*glamour.TermRenderer)
	r.prose = make(map[proseKey][]string)
}

// Theme returns the current theme.
func (r *CardRenderer) Theme() *styles.Theme {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.theme
}

// Height implements timeline.Measurer. It equals the line count of Render.
func (r *CardRenderer) Height(v card.View, width int) int {
	return r.Render(v, width, "").Height()
}

// Render draws v at width columns. spin is the current spinner frame shown
// on sending cards.
func (r *CardRenderer) Render(v card.View, width int, spin string) RenderedCard {
	th := r.Theme()
	inner := max(width-cardChrome, 10)

	var lines []string
	var regions []Region

	lines = append(lines, ansi.Truncate(header(th, v, spin), inner, "…"))

	if v.ReplyHeader != "" {
		lines = append(lines, ansi.Truncate(th.ReplyHeader.Render(v.ReplyHeader), inner, "…"))
		quote := ansi.Wordwrap(markup.Text(v.ReplyHTML), max(inner-2, 4), " ")
		for _, l := range strings.Split(strings.TrimRight(quote, "\n"), "\n") {
			lines = append(lines, th.ReplyQuote.Render(l))
		}
	}

	bodyStart := len(lines)
	lines = append(lines, r.body(th, v.Record.Content, inner)...)
	regions = append(regions, linkRegions(lines[bodyStart:], bodyStart, v.Links)...)

	if v.Editing {
		lines = append(lines, th.ModeLabel.Render("editing…"))
	} else if v.Replying {
		lines = append(lines, th.ModeLabel.Render("replying…"))
	}

	if len(v.Buttons) > 0 {
		row, btnRegions := buttonRow(th, v.Buttons, len(lines))
		lines = append(lines, row)
		regions = append(regions, btnRegions...)
	}

	if v.Fading {
		for i, l := range lines {
			lines[i] = th.Faded.Render(ansi.Strip(l))
		}
	}

	box := th.Card
	switch {
	case v.Editing:
		box = th.CardEditing
	case v.Replying:
		box = th.CardReplying
	case v.Flash:
		box = th.CardFlash
	}
	out := strings.Split(box.Render(strings.Join(lines, "\n")), "\n")
	for i := range regions {
		regions[i].Col += cardChrome
	}
	out = append(out, "")
	return RenderedCard{Lines: out, Regions: regions}
}

func header(th *styles.Theme, v card.View, spin string) string {
	rec := v.Record
	parts := []string{th.Username(rec.UserType).Render(rec.Username)}
	if rec.HasGift() {
		parts = append(parts, th.GiftTag.Render("🎁 "+rec.GiftLabel()))
	}
	parts = append(parts, th.Timestamp.Render(rec.Timestamp))
	if rec.IsEdited() {
		parts = append(parts, th.EditedTag.Render("(edited "+rec.EditedTimestamp+")"))
	}
	switch v.State {
	case model.StateSending:
		parts = append(parts, th.Sending.Render(strings.TrimSpace(spin+" sending")))
	case model.StateFailed:
		parts = append(parts, th.Failed.Render("✗ failed to send"))
	}
	return strings.Join(parts, " ")
}

// body renders raw content: prose through glamour, fenced code through
// chroma.
func (r *CardRenderer) body(th *styles.Theme, raw string, width int) []string {
	var lines []string
	for _, seg := range markup.SplitFenced(raw) {
		if seg.Code {
			lines = append(lines, renderCode(th, seg.Text, width)...)
			continue
		}
		lines = append(lines, r.renderProse(markup.Plain(seg.Text), width)...)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func (r *CardRenderer) renderProse(text string, width int) []string {
	key := proseKey{text: text, width: width}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.prose[key]; ok {
		return cached
	}

	out, err := r.termRenderer(width).Render(text)
	if err != nil {
		log.Printf("PROSE_RENDER_FAILED | width=%d error=%v", width, err)
		out = ansi.Wordwrap(text, width, " ")
	}
	lines := trimBlank(strings.Split(out, "\n"))
	var wrapped []string
	for _, l := range lines {
		// glamour pads lines with styled spaces; only real text is wrapped
		if ansi.StringWidth(strings.TrimRight(ansi.Strip(l), " ")) <= width {
			wrapped = append(wrapped, ansi.Truncate(l, width, ""))
			continue
		}
		wrapped = append(wrapped, strings.Split(ansi.Hardwrap(l, width, true), "\n")...)
	}
	if len(wrapped) == 0 {
		wrapped = []string{""}
	}

	if len(r.prose) >= maxCached {
		r.prose = make(map[proseKey][]string)
	}
	r.prose[key] = wrapped
	return wrapped
}

// termRenderer returns the glamour renderer for width. Callers hold r.mu.
func (r *CardRenderer) termRenderer(width int) *glamour.TermRenderer {
	if tr, ok := r.renderers[width]; ok {
		return tr
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.glamStyle),
		glamour.WithWordWrap(max(width-glamourMargin, 10)),
		glamour.WithEmoji(),
	)
	if err != nil {
		// Only reachable with a bad style name.
		log.Printf("GLAMOUR_INIT_FAILED | style=%s error=%v", r.glamStyle, err)
		tr, _ = glamour.NewTermRenderer(glamour.WithWordWrap(width))
	}
	r.renderers[width] = tr
	return tr
}

func buttonRow(th *styles.Theme, buttons []card.Button, line int) (string, []Region) {
	var b strings.Builder
	var regions []Region
	col := 0
	for i, btn := range buttons {
		if i > 0 {
			b.WriteString(" ")
			col++
		}
		label := "[" + buttonGlyph(btn) + " " + btn.Title() + "]"
		style := th.Button
		switch {
		case !btn.Enabled():
			style = th.ButtonLocked
		case btn.Cancel:
			style = th.ButtonCancel
		}
		b.WriteString(style.Render(label))
		w := runewidth.StringWidth(label)
		regions = append(regions, Region{
			Line:   line,
			Col:    col,
			Width:  w,
			Target: timeline.TargetButton,
			Button: btn.Kind,
		})
		col += w
	}
	return b.String(), regions
}

func buttonGlyph(b card.Button) string {
	if b.Cancel {
		return "✕"
	}
	switch b.Kind {
	case card.ButtonEdit:
		return "✎"
	case card.ButtonReply:
		return "↩"
	default:
		return "⧉"
	}
}

// linkRegions finds every visible occurrence of each link on lines.
func linkRegions(lines []string, offset int, links []string) []Region {
	var regions []Region
	for i, l := range lines {
		plain := ansi.Strip(l)
		for _, url := range links {
			from := 0
			for {
				idx := strings.Index(plain[from:], url)
				if idx < 0 {
					break
				}
				at := from + idx
				regions = append(regions, Region{
					Line:   offset + i,
					Col:    runewidth.StringWidth(plain[:at]),
					Width:  runewidth.StringWidth(url),
					Target: timeline.TargetLink,
					URL:    url,
				})
				from = at + len(url)
			}
		}
	}
	return regions
}

func trimBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(ansi.Strip(lines[0])) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(ansi.Strip(lines[len(lines)-1])) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

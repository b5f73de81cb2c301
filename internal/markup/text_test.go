// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"a & b\nc", "a & b\nc"},
		{"Hello **world**", "Hello world"},
		{"- one\n- two", "one\ntwo\n"},
		{"<not a tag>", "<not a tag>"},
	}

	for _, tt := range tests {
		if got := Text(Format(tt.raw)); got != tt.want {
			t.Errorf("Text(Format(%q)) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestLinks(t *testing.T) {
	got := Links(Format("go https://a.io and ftp://b.org/x"))
	assert.Equal(t, []string{"https://a.io", "ftp://b.org/x"}, got)

	assert.Empty(t, Links(Format("no links here")))
}

func TestLinks_DecodesAmpersands(t *testing.T) {
	got := Links(Format("https://a.io/?x=1&y=2"))
	assert.Equal(t, []string{"https://a.io/?x=1&y=2"}, got)
}

func TestSplitFenced(t *testing.T) {
	segs := SplitFenced("hi\n```go\nfmt.Println()\n```\nbye")
	assert.Equal(t, []Segment{
		{Text: "hi\n"},
		{Code: true, Text: "go\nfmt.Println()"},
		{Text: "\nbye"},
	}, segs)

	assert.Empty(t, SplitFenced(""))
	assert.Equal(t, []Segment{{Text: "only prose"}}, SplitFenced("only prose"))
}

func TestPlain(t *testing.T) {
	got := Plain("smile :) `keep :)` http://x.io:3")
	assert.Equal(t, "smile 😊 `keep :)` http://x.io:3", got)
}

func TestIsEmoji(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'😀', true},
		{'🚀', true},
		{'☀', true},
		{'©', true},
		{'a', false},
		{'#', false},
		{'7', false},
		{'é', false},
	}
	for _, tt := range tests {
		if got := IsEmoji(tt.r); got != tt.want {
			t.Errorf("IsEmoji(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestEmoticonTable(t *testing.T) {
	assert.Len(t, Emoticons, 91)
	assert.Equal(t, ":)", Emoticons[0].Token)

	seen := make(map[string]bool)
	for _, e := range Emoticons {
		assert.False(t, seen[e.Token], "duplicate token %q", e.Token)
		seen[e.Token] = true
	}
}

func TestReplaceEmoticons_Sequential(t *testing.T) {
	// T_T is replaced before (T_T) is tried, so the parentheses survive.
	assert.Equal(t, "(😭)", ReplaceEmoticons("(T_T)"))
	assert.Equal(t, "a.b*c", ReplaceEmoticons("a.b*c"))
}

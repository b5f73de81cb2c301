// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/btczview/internal/markup"
)

// FormatResult is the --json output of the format command.
type FormatResult struct {
	Raw   string   `json:"raw"`
	HTML  string   `json:"html"`
	Text  string   `json:"text"`
	Links []string `json:"links,omitempty"`
}

// HandleFormat prints the markup a message body formats to. The body is
// the positional arguments joined by spaces, or stdin when there are none.
func HandleFormat(args Args) error {
	return runFormat(args, os.Stdin, os.Stdout)
}

func runFormat(args Args, in io.Reader, out io.Writer) error {
	p := NewArgParser(args.Raw, "text")

	var raw string
	if words := p.PositionalFrom(0); len(words) > 0 && !(len(words) == 1 && words[0] == "-") {
		raw = strings.Join(words, " ")
	} else {
		if in == os.Stdin && IsTTY() {
			return ErrMissingArgument("text", "btczview format [--text] <text...>")
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return &CommandError{Command: "format", Action: "read stdin", Err: err}
		}
		raw = strings.TrimSuffix(string(data), "\n")
	}

	html := markup.Format(raw)
	switch {
	case args.JSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(FormatResult{Raw: raw, HTML: html, Text: markup.Text(html), Links: markup.Links(html)})
	case p.BoolFlag("text"):
		fmt.Fprintln(out, markup.Text(html))
	default:
		fmt.Fprintln(out, html)
	}
	return nil
}

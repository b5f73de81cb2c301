// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/btczview/internal/config"
	"github.com/jeranaias/btczview/internal/host"
	"github.com/jeranaias/btczview/internal/server"
	"github.com/jeranaias/btczview/internal/util"
)

// =============================================================================
// CONSOLE CLIENT
// =============================================================================

// ConsoleClient sends host calls to a running view.
type ConsoleClient struct {
	base  string
	token string
	http  *http.Client
}

// NewConsoleClient creates a client for the transport at addr.
func NewConsoleClient(addr, token string) *ConsoleClient {
	base := addr
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &ConsoleClient{
		base:  strings.TrimRight(base, "/"),
		token: token,
		http:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *ConsoleClient) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Addr: c.base, Err: err}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("%s: %s", resp.Status, apiErr.Error.Message)
		}
		return nil, errors.New(resp.Status)
	}
	return data, nil
}

// Call posts c to /v1/call.
func (c *ConsoleClient) Call(ctx context.Context, call host.Call) error {
	body, err := json.Marshal(call)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, "/v1/call", body)
	return err
}

// Health fetches /health.
func (c *ConsoleClient) Health(ctx context.Context) (server.HealthResponse, error) {
	var h server.HealthResponse
	data, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return h, err
	}
	return h, json.Unmarshal(data, &h)
}

// Snapshot fetches the timeline markup.
func (c *ConsoleClient) Snapshot(ctx context.Context) (string, error) {
	data, err := c.do(ctx, http.MethodGet, "/v1/snapshot", nil)
	return string(data), err
}

// =============================================================================
// LINE SYNTAX
// =============================================================================

// ParseConsoleLine turns one console line into a host call:
//
//	{"method":"clearChat"}          full envelope
//	clearChat                       method without params
//	addMessage {"username":"bob"}   method with JSON params
//	setBalance 12.5                 method with {"value": "12.5"}
func ParseConsoleLine(line string) (host.Call, error) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "{") {
		return host.ParseCall([]byte(line))
	}
	method, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch {
	case method == "":
		return host.Call{}, errors.New("empty line")
	case rest == "":
		return host.NewCall(method, nil)
	case json.Valid([]byte(rest)) && (rest[0] == '{' || rest[0] == '['):
		return host.Call{Method: method, Params: json.RawMessage(rest)}, nil
	default:
		return host.NewCall(method, map[string]string{"value": rest})
	}
}

// =============================================================================
// REPL
// =============================================================================

const consoleHelp = `Enter a host call per line:
    clearChat
    addMessage {"username":"alice","content":"hi :)","timestamp":"10:00","user_type":"other"}
    setBalance 12.5
Commands: :health  :snapshot  :methods  :quit`

// HandleConsole runs an interactive console against a running view.
func HandleConsole(args Args) error {
	cfg, _, err := LoadConfig(args)
	if err != nil {
		return err
	}
	client := NewConsoleClient(cfg.Server.Addr, cfg.Server.Token)

	ctx := context.Background()
	h, err := client.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Println(TitleStyle.Render("btczview console"))
	fmt.Println(RenderKeyValue("Address", cfg.Server.Addr))
	fmt.Println(RenderKeyValue("Messages", fmt.Sprint(h.Messages)))
	fmt.Println(DimStyle.Render(consoleHelp))
	fmt.Println()

	methods := host.MethodNames()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(in string) []string {
		var out []string
		for _, m := range append(methods, ":health", ":snapshot", ":methods", ":quit") {
			if strings.HasPrefix(m, in) {
				out = append(out, m)
			}
		}
		return out
	})

	historyPath := consoleHistoryPath()
	if f, err := os.Open(historyPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer saveConsoleHistory(line, historyPath)

	for {
		input, err := line.Prompt("btcz> ")
		if err != nil {
			// Ctrl+C, Ctrl+D or a closed terminal
			fmt.Println()
			return nil
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		switch input {
		case ":quit", ":q", "exit":
			return nil
		case ":methods":
			fmt.Println(strings.Join(methods, "\n"))
			continue
		case ":health":
			h, err := client.Health(ctx)
			if err != nil {
				DisplayError(err, false)
				continue
			}
			out, _ := json.MarshalIndent(h, "", "  ")
			fmt.Println(string(out))
			continue
		case ":snapshot":
			html, err := client.Snapshot(ctx)
			if err != nil {
				DisplayError(err, false)
				continue
			}
			fmt.Println(html)
			continue
		}

		call, err := ParseConsoleLine(input)
		if err != nil {
			DisplayError(err, false)
			continue
		}
		if err := client.Call(ctx, call); err != nil {
			DisplayError(err, false)
			continue
		}
		fmt.Println(SuccessStyle.Render("ok"))
	}
}

func consoleHistoryPath() string {
	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "console_history")
}

// saveConsoleHistory writes the history owner-only.
func saveConsoleHistory(line *liner.State, path string) {
	var buf bytes.Buffer
	if _, err := line.WriteHistory(&buf); err != nil {
		return
	}
	_ = util.AtomicWriteFile(path, buf.Bytes(), 0600)
}

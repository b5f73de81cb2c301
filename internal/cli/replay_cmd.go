// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jeranaias/btczview/internal/config"
	"github.com/jeranaias/btczview/internal/journal"
)

const replayUsage = "btczview replay [session] [--list] [--speed x] [--html]"

// HandleReplay lists sessions or replays one through a fresh view.
func HandleReplay(args Args) error {
	cfg, cfgPath, err := LoadConfig(args)
	if err != nil {
		return err
	}
	p := NewArgParser(args.Raw, "list", "html")

	j, err := journal.Open(config.ExpandPath(cfg.Journal.Path))
	if err != nil {
		return &CommandError{Command: "replay", Action: "open journal", Err: err}
	}
	defer j.Close()
	ctx := context.Background()

	if p.BoolFlag("list") {
		sessions, err := j.Sessions(ctx)
		if err != nil {
			return err
		}
		return printSessions(os.Stdout, sessions, args.JSON)
	}

	html := p.BoolFlag("html") || !CanRunTUI()
	defSpeed := 1.0
	if html {
		defSpeed = 0
	}
	speed, err := p.FlagFloat("speed", defSpeed)
	if err != nil {
		return &UsageError{Message: err.Error(), Usage: replayUsage}
	}
	if speed < 0 {
		return &UsageError{Message: "--speed must not be negative", Usage: replayUsage}
	}

	id := p.Subcommand()
	if id == "" {
		if id, err = j.Latest(ctx); err != nil {
			return err
		}
	}

	// A replay neither records itself nor competes for the transport.
	cfg.Server.Enabled = false
	opts := RuntimeOptions{NoJournal: true}

	if html {
		log.SetOutput(os.Stderr)
		rt, err := NewRuntime(ctx, cfg, opts)
		if err != nil {
			return err
		}
		defer rt.Close()
		res, err := j.Replay(ctx, id, rt.Dispatcher, speed)
		if err != nil {
			return err
		}
		fmt.Println(rt.Chat.Snapshot().HTML())
		fmt.Fprintf(os.Stderr, "%s dispatched=%d failed=%d\n", DimStyle.Render("replay "+id), res.Dispatched, res.Failed)
		return nil
	}

	return runView(cfg, cfgPath, opts, func(ctx context.Context, rt *Runtime) {
		res, err := j.Replay(ctx, id, rt.Dispatcher, speed)
		if err != nil {
			log.Printf("REPLAY_FAILED | session=%s error=%v", id, err)
			return
		}
		rt.Chat.ShowToast(fmt.Sprintf("Replayed %d calls", res.Dispatched))
	})
}

func printSessions(w io.Writer, sessions []journal.Session, jsonMode bool) error {
	if jsonMode {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sessions)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(w, DimStyle.Render("No recorded sessions."))
		return nil
	}
	fmt.Fprintln(w, TitleStyle.Render("Recorded sessions"))
	for _, s := range sessions {
		fmt.Fprintf(w, "%s  %s  %-6s %s\n",
			ValueStyle.Render(s.ID),
			s.StartedAt.Format("2006-01-02 15:04:05"),
			s.Label,
			DimStyle.Render(fmt.Sprintf("%d calls, %d events", s.Calls, s.Events)))
	}
	return nil
}

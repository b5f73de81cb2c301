// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jeranaias/btczview/internal/bridge"
	"github.com/jeranaias/btczview/internal/host"
)

// maxCallLine bounds one host call read from stdin.
const maxCallLine = 1 << 20

// HandleServe runs without a screen. Bridge events are written to stdout
// as JSON lines; host calls arrive over the transport and, when stdin is
// not a terminal, as JSON lines on stdin.
func HandleServe(args Args) error {
	cfg, _, err := LoadConfig(args)
	if err != nil {
		return err
	}
	log.SetOutput(os.Stderr)
	configureLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := NewRuntime(ctx, cfg, RuntimeOptions{
		Sinks: []bridge.Sink{bridge.NewWriterSink(os.Stdout)},
		Label: "serve",
	})
	if err != nil {
		return err
	}
	defer rt.Close()
	if err := rt.StartServer(); err != nil {
		return err
	}

	stdinDone := make(chan error, 1)
	if !IsTTY() {
		go func() { stdinDone <- readCalls(ctx, os.Stdin, rt.Dispatcher) }()
	} else if rt.Server == nil {
		return &UsageError{Message: "serve needs the host transport or calls on stdin", Usage: "btczview serve [--addr host:port]"}
	}

	log.Printf("SERVE_START | server=%t journal=%t", rt.Server != nil, rt.Journal != nil)
	select {
	case <-ctx.Done():
		log.Printf("SERVE_STOP | reason=signal")
	case err := <-rt.ServeErr():
		if err != nil {
			return &NetworkError{Addr: cfg.Server.Addr, Err: err}
		}
	case err := <-stdinDone:
		if err != nil {
			return &CommandError{Command: "serve", Action: "read stdin", Err: err}
		}
		if rt.Server == nil {
			log.Printf("SERVE_STOP | reason=eof")
			return nil
		}
		// The transport keeps serving after stdin closes.
		select {
		case <-ctx.Done():
		case err := <-rt.ServeErr():
			if err != nil {
				return &NetworkError{Addr: cfg.Server.Addr, Err: err}
			}
		}
	}
	return nil
}

// readCalls dispatches one JSON host call per line until EOF. A bad call
// is reported on stderr and skipped.
func readCalls(ctx context.Context, r io.Reader, d *host.Dispatcher) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxCallLine)
	line := 0
	for sc.Scan() {
		line++
		if ctx.Err() != nil {
			return nil
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := d.DispatchJSON([]byte(text)); err != nil {
			fmt.Fprintf(os.Stderr, "line %d: %v\n", line, err)
		}
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

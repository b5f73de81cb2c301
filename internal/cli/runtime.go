// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/btczview/internal/bridge"
	"github.com/jeranaias/btczview/internal/config"
	"github.com/jeranaias/btczview/internal/host"
	"github.com/jeranaias/btczview/internal/journal"
	"github.com/jeranaias/btczview/internal/markup"
	"github.com/jeranaias/btczview/internal/panels"
	"github.com/jeranaias/btczview/internal/sched"
	"github.com/jeranaias/btczview/internal/server"
	"github.com/jeranaias/btczview/internal/timeline"
)

// =============================================================================
// CONFIG
// =============================================================================

// LoadConfig loads the config named by --config, or the default file, and
// applies the command-line overrides. It returns the path it read.
func LoadConfig(args Args) (*config.Config, string, error) {
	path := args.ConfigPath
	var (
		cfg *config.Config
		err error
	)
	if path == "" {
		if path, err = config.ConfigPath(); err != nil {
			return nil, "", err
		}
		cfg, err = config.Load()
	} else {
		path = config.ExpandPath(path)
		cfg, err = config.LoadFromPath(path)
	}
	if err != nil {
		return nil, path, err
	}

	if args.Addr != "" {
		cfg.Server.Addr = args.Addr
	}
	if args.Token != "" {
		cfg.Server.Token = args.Token
	}
	if args.NoServer {
		cfg.Server.Enabled = false
	}
	if args.Verbose {
		cfg.Log.Verbose = true
	}
	return cfg, path, nil
}

// configureLogging sets the log flags for the verbosity.
func configureLogging(cfg *config.Config) {
	if cfg.Log.Verbose {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
		return
	}
	log.SetFlags(log.LstdFlags)
}

// =============================================================================
// RUNTIME
// =============================================================================

// RuntimeOptions select how the components are wired.
type RuntimeOptions struct {
	// Measurer sizes cards; nil counts wrapped text lines.
	Measurer timeline.Measurer
	// OnChange is called after every timeline or panel change.
	OnChange func()
	// Sinks receive every bridge event in addition to subscribers.
	Sinks []bridge.Sink
	// Label names the journal session.
	Label string
	// NoJournal skips the journal even when the config enables it.
	NoJournal bool
}

// Runtime is the wired set of components behind every command.
type Runtime struct {
	Config     *config.Config
	Hub        *bridge.Hub
	Chat       *timeline.Controller
	Panels     *panels.Set
	Dispatcher *host.Dispatcher
	Journal    *journal.Journal
	Server     *server.Server

	serveErr chan error
}

// NewRuntime wires the timeline, panels and dispatcher for cfg. The host
// transport is not started; see StartServer.
func NewRuntime(ctx context.Context, cfg *config.Config, opts RuntimeOptions) (*Runtime, error) {
	hub := bridge.NewHub(opts.Sinks...)
	clock := sched.Real{}

	chat := timeline.New(timeline.Options{
		Scheduler:       clock,
		Pipeline:        markup.Default(),
		Bridge:          hub,
		Measurer:        opts.Measurer,
		Timings:         cfg.Chat.Timings(),
		UnreadTolerance: cfg.Chat.UnreadTolerance,
		Placeholder:     cfg.Chat.ShowPlaceholder,
		OnChange:        opts.OnChange,
	})
	set := panels.New(panels.Options{
		Scheduler:    clock,
		ChartMessage: cfg.Chart.Placeholder,
		Location:     time.Local,
		OnChange:     opts.OnChange,
	})
	rt := &Runtime{
		Config:     cfg,
		Hub:        hub,
		Chat:       chat,
		Panels:     set,
		Dispatcher: host.New(chat, set, cfg.Chart.Currency),
	}

	if cfg.Journal.Enabled && !opts.NoJournal {
		if err := rt.openJournal(ctx, opts.Label); err != nil {
			rt.Close()
			return nil, err
		}
	}
	return rt, nil
}

func (rt *Runtime) openJournal(ctx context.Context, label string) error {
	path := config.ExpandPath(rt.Config.Journal.Path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create journal directory: %w", err)
	}
	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	id, err := j.Begin(ctx, label)
	if err != nil {
		j.Close()
		return err
	}
	if keep := rt.Config.Journal.KeepSessions; keep > 0 {
		if n, err := j.Prune(ctx, keep); err != nil {
			log.Printf("JOURNAL_PRUNE_FAILED | keep=%d error=%v", keep, err)
		} else if n > 0 {
			log.Printf("JOURNAL_PRUNED | sessions=%d", n)
		}
	}

	rt.Journal = j
	rt.Dispatcher.Observe = j.Observe
	rt.Hub.Attach(j)
	log.Printf("JOURNAL_OPEN | path=%s session=%s", path, id)
	return nil
}

// StartServer starts the host transport when the config enables it. The
// listener is bound before returning so an address in use fails here.
func (rt *Runtime) StartServer() error {
	if !rt.Config.Server.Enabled {
		return nil
	}
	s := server.New(server.Config{
		Addr:       rt.Config.Server.Addr,
		Token:      rt.Config.Server.Token,
		RatePerSec: rt.Config.Server.RatePerSec,
		Burst:      rt.Config.Server.Burst,
	}, rt.Dispatcher, rt.Chat, rt.Hub)

	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return &NetworkError{Addr: s.Addr(), Err: err}
	}
	rt.Server = s
	rt.serveErr = make(chan error, 1)
	go func() {
		rt.serveErr <- s.Serve(ln)
	}()
	return nil
}

// ServeErr reports a transport that stopped on its own. It is nil without
// a server.
func (rt *Runtime) ServeErr() <-chan error {
	return rt.serveErr
}

// Close stops the transport, cancels pending effects and closes the
// journal.
func (rt *Runtime) Close() error {
	var errs []error
	if rt.Server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, rt.Server.Shutdown(ctx))
		cancel()
	}
	rt.Chat.Close()
	rt.Panels.Close()
	if rt.Journal != nil {
		errs = append(errs, rt.Journal.Close())
	}
	return errors.Join(errs...)
}

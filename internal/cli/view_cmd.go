// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/btczview/internal/config"
	"github.com/jeranaias/btczview/internal/ui/app"
	"github.com/jeranaias/btczview/internal/ui/components"
	"github.com/jeranaias/btczview/internal/ui/styles"
)

// HandleView opens the terminal view. Without a terminal it falls back to
// headless mode so the host process still gets its transport.
func HandleView(args Args) error {
	if !CanRunTUI() {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("No terminal attached; running headless."))
		return HandleServe(args)
	}
	cfg, cfgPath, err := LoadConfig(args)
	if err != nil {
		return err
	}
	return runView(cfg, cfgPath, RuntimeOptions{Label: "view"}, nil)
}

// runView runs the program until the user quits. start, when set, runs in
// its own goroutine once the program is wired; its context ends with the
// program.
func runView(cfg *config.Config, cfgPath string, rtOpts RuntimeOptions, start func(context.Context, *Runtime)) error {
	// The view owns the screen, so logs go to a file.
	logPath := config.ExpandPath(cfg.Log.File)
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return &CommandError{Command: "view", Action: "create log directory", Err: err}
	}
	logFile, err := tea.LogToFile(logPath, "btczview")
	if err != nil {
		return &CommandError{Command: "view", Action: "open log", Err: err}
	}
	defer logFile.Close()
	configureLogging(cfg)

	theme := styles.NewTheme(cfg.UI.Theme)
	renderer := components.NewCardRenderer(theme)
	notifier := &app.Notifier{}

	ctx, cancel := context.WithCancel(context.Background())

	rtOpts.Measurer = renderer
	rtOpts.OnChange = notifier.Notify
	rt, err := NewRuntime(ctx, cfg, rtOpts)
	if err != nil {
		cancel()
		return err
	}
	defer rt.Close()
	defer cancel()
	if err := rt.StartServer(); err != nil {
		return err
	}

	guard := cfg.UI.KeyGuard()
	m := app.New(app.Options{
		Chat:     rt.Chat,
		Panels:   rt.Panels,
		Renderer: renderer,
		Guard:    guard,
		Notifier: notifier,
	})

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithFilter(app.Filter(guard)),
	}
	if cfg.UI.Mouse {
		// All-motion reporting is needed for link hover.
		opts = append(opts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(m, opts...)
	notifier.Attach(p)

	if w := watchConfig(cfgPath, rt, p); w != nil {
		defer w.Close()
	}
	if errc := rt.ServeErr(); errc != nil {
		go func() {
			if err := <-errc; err != nil {
				log.Printf("SERVER_STOPPED | error=%v", err)
			}
		}()
	}
	if start != nil {
		go start(ctx, rt)
	}

	log.Printf("VIEW_START | theme=%s server=%t journal=%t", theme, rt.Server != nil, rt.Journal != nil)
	if _, err := p.Run(); err != nil {
		return &CommandError{Command: "view", Action: "run", Err: err}
	}
	log.Printf("VIEW_EXIT | cards=%d", rt.Chat.Len())
	return nil
}

// watchConfig hot-reloads the theme and the timeline durations. Keys and
// the transport keep their startup settings. A missing config file is not
// watched.
func watchConfig(path string, rt *Runtime, p *tea.Program) *config.Watcher {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	w, err := config.Watch(path, config.DefaultDebounce, func(cfg *config.Config) {
		rt.Chat.SetTimings(cfg.Chat.Timings())
		p.Send(app.ThemeMsg{Theme: styles.NewTheme(cfg.UI.Theme)})
		log.Printf("CONFIG_RELOADED | path=%s theme=%s", path, cfg.UI.Theme)
	})
	if err != nil {
		log.Printf("CONFIG_WATCH_FAILED | path=%s error=%v", path, err)
		return nil
	}
	return w
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panels

import (
	"time"

	"github.com/jeranaias/btczview/internal/sched"
)

// Set groups the auxiliary views.
type Set struct {
	Market *Market
	Mining *Mining
	Wallet *Wallet
	Chart  *Chart
}

// Options configure a Set.
type Options struct {
	Scheduler    sched.Scheduler
	ChartMessage string
	Location     *time.Location
	OnChange     func()
}

// New returns all views in their placeholder state.
func New(opts Options) *Set {
	return &Set{
		Market: NewMarket(opts.OnChange),
		Mining: NewMining(opts.OnChange),
		Wallet: NewWallet(opts.Scheduler, opts.OnChange),
		Chart:  NewChart(opts.ChartMessage, opts.Location, opts.OnChange),
	}
}

// Close cancels pending effects.
func (s *Set) Close() {
	s.Wallet.Close()
}

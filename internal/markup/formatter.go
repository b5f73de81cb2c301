// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"errors"
	"fmt"
)

// =============================================================================
// PIPELINE
// =============================================================================

// ErrStageOrder is returned when a stage is placed before a stage it requires.
var ErrStageOrder = errors.New("markup: stage order violated")

// ErrDuplicateStage is returned when two stages share a name.
var ErrDuplicateStage = errors.New("markup: duplicate stage")

// Stage is one named rewrite step.
type Stage struct {
	// Name identifies the stage in errors and tests.
	Name string

	// After lists stages that must already have run. A listed stage that is
	// absent from the pipeline is an error too.
	After []string

	// Apply rewrites the unprotected text of its input.
	Apply func(string) string
}

// Pipeline is an ordered, validated list of stages.
type Pipeline struct {
	stages []Stage
}

// NewPipeline validates ordering constraints and returns the pipeline.
func NewPipeline(stages ...Stage) (*Pipeline, error) {
	seen := make(map[string]bool, len(stages))
	for i, st := range stages {
		if st.Name == "" || st.Apply == nil {
			return nil, fmt.Errorf("markup: stage %d is incomplete", i)
		}
		if seen[st.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStage, st.Name)
		}
		for _, dep := range st.After {
			if !seen[dep] {
				return nil, fmt.Errorf("%w: %s must run after %s", ErrStageOrder, st.Name, dep)
			}
		}
		seen[st.Name] = true
	}
	return &Pipeline{stages: stages}, nil
}

// MustPipeline is like NewPipeline but panics on error.
func MustPipeline(stages ...Stage) *Pipeline {
	p, err := NewPipeline(stages...)
	if err != nil {
		panic(err)
	}
	return p
}

// Names returns the stage names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, st := range p.stages {
		names[i] = st.Name
	}
	return names
}

// Format runs every stage over raw and returns the HTML fragment.
// Empty input yields an empty string.
func (p *Pipeline) Format(raw string) string {
	if raw == "" {
		return ""
	}
	out := raw
	for _, st := range p.stages {
		out = st.Apply(out)
	}
	return unwrap(out)
}

// =============================================================================
// DEFAULT PIPELINE
// =============================================================================

// Stage names of the default pipeline.
const (
	StageUnescape   = "unescape"
	StageEscape     = "escape"
	StageFencedCode = "fenced-code"
	StageInlineCode = "inline-code"
	StageBold       = "bold"
	StageQuoteBox   = "quote-box"
	StageBulletList = "bullet-list"
	StageLinks      = "links"
	StageEmoticons  = "emoticons"
	StageEmoji      = "emoji"
	StageNewlines   = "newlines"
)

// DefaultStages returns the chat formatting stages in their required order.
func DefaultStages() []Stage {
	return []Stage{
		{Name: StageUnescape, Apply: unescapeStage},
		{Name: StageEscape, After: []string{StageUnescape}, Apply: escapeHTML},
		{Name: StageFencedCode, After: []string{StageEscape}, Apply: fencedCodeStage},
		{Name: StageInlineCode, After: []string{StageFencedCode}, Apply: inlineCodeStage},
		{Name: StageBold, After: []string{StageInlineCode}, Apply: boldStage},
		{Name: StageQuoteBox, After: []string{StageInlineCode}, Apply: quoteBoxStage},
		{Name: StageBulletList, After: []string{StageFencedCode}, Apply: bulletListStage},
		{Name: StageLinks, After: []string{StageFencedCode, StageInlineCode}, Apply: linksStage},
		{Name: StageEmoticons, After: []string{StageFencedCode, StageInlineCode, StageLinks}, Apply: emoticonStage},
		{Name: StageEmoji, After: []string{StageEmoticons}, Apply: emojiStage},
		{Name: StageNewlines, After: []string{StageBulletList, StageFencedCode}, Apply: newlineStage},
	}
}

var defaultPipeline = MustPipeline(DefaultStages()...)

// Default returns the shared chat formatting pipeline.
func Default() *Pipeline {
	return defaultPipeline
}

// Format converts raw chat text to an HTML fragment with the default pipeline.
func Format(raw string) string {
	return defaultPipeline.Format(raw)
}

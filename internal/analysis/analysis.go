// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis defines the analyzer role of an active-learning loop:
// compare newly measured experiment data against the seed data collected
// so far.
package analysis

import "github.com/pdiddy/elastic-tutorial/internal/frame"

// Result summarizes one analysis pass. NewSeed, when set, replaces the
// seed data for the next iteration.
type Result struct {
	Summary map[string]any
	NewSeed *frame.Frame
}

// Analyzer compares new experiment data against seed data.
type Analyzer interface {
	Analyze(newExperimentData, seedData *frame.Frame) (*Result, error)
}

// SimpleAnalyzer is a placeholder analyzer with no behavior.
type SimpleAnalyzer struct{}

var _ Analyzer = (*SimpleAnalyzer)(nil)

// NewSimpleAnalyzer returns a SimpleAnalyzer. Construction does nothing.
func NewSimpleAnalyzer() *SimpleAnalyzer {
	return &SimpleAnalyzer{}
}

// Analyze does nothing: it returns no result and no error for any input,
// including nil frames.
func (a *SimpleAnalyzer) Analyze(newExperimentData, seedData *frame.Frame) (*Result, error) {
	return nil, nil
}

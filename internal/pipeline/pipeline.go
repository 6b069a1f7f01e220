// Copyright 2026 The tbl-radar-chart Authors
// SPDX-License-Identifier: MIT

// Package pipeline orchestrates one extension session: it reacts to the
// host's data-changed and resize notifications, runs the
// normalize-resolve-aggregate-render pipeline, and owns the session cache.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/andrew-jp/tbl-radar-chart/internal/encodings"
	"github.com/andrew-jp/tbl-radar-chart/internal/host"
	"github.com/andrew-jp/tbl-radar-chart/internal/pivot"
	"github.com/andrew-jp/tbl-radar-chart/internal/radar"
	"github.com/andrew-jp/tbl-radar-chart/internal/table"
)

// State is the session's position in its lifecycle. Data-changed events are
// valid from any state; resize is honored only from Ready.
type State int

const (
	// StateEmpty is the initial state, before any update has run.
	StateEmpty State = iota

	// StateLoading means an update pipeline is in flight.
	StateLoading

	// StateReady means the cache holds renderable chart data.
	StateReady

	// StateNeedsFields means the update finished but category or values are
	// unassigned; the user sees an inline warning instead of a chart.
	StateNeedsFields

	// StateFailed means the last update aborted on a host-call failure.
	StateFailed
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateNeedsFields:
		return "needs-fields"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// WarnAssignFields is the inline message shown when the worksheet has no
// category or no value fields assigned.
const WarnAssignFields = "Assign a category field and at least one value field to draw the radar chart."

// Session owns the state for one extension lifetime. All host-derived state
// lives here, not in any package-level cache, and the chart cache is
// replaced wholesale on each successful update, never mutated in place.
type Session struct {
	worksheet host.Worksheet
	renderer  radar.Renderer
	logger    *slog.Logger

	mu      sync.Mutex
	state   State
	gen     uint64
	cache   radar.ChartData
	warning string
}

// NewSession creates a session bound to a worksheet and a render surface.
func NewSession(ws host.Worksheet, r radar.Renderer) *Session {
	id := uuid.NewString()
	return &Session{
		worksheet: ws,
		renderer:  r,
		logger:    slog.Default().With("session", id),
	}
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Warning returns the inline warning message, or "" when none applies.
func (s *Session) Warning() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warning
}

// ChartData returns a copy of the cached chart data.
func (s *Session) ChartData() radar.ChartData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return radar.Clone(s.cache)
}

// HandleDataChanged runs the full update pipeline: fetch rows and the visual
// specification concurrently, resolve encodings, aggregate, cache, render.
// Either host call failing aborts the whole update with no partial-data
// render. A newer data-changed event supersedes an in-flight one: the stale
// result is discarded instead of racing the cache.
func (s *Session) HandleDataChanged(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state = StateLoading
	s.mu.Unlock()

	s.logger.Debug("update started", "generation", gen)

	rows, spec, err := s.fetch(ctx)
	if err != nil {
		s.conclude(gen, StateFailed, radar.ChartData{}, "")
		return err
	}

	enc, err := encodings.Resolve(spec)
	if err != nil {
		s.conclude(gen, StateFailed, radar.ChartData{}, "")
		return fmt.Errorf("resolve encodings: %w", err)
	}

	category, ok := enc.Category()
	valueNames := enc.ValueNames()
	if !ok || len(valueNames) == 0 {
		// Expected state, not an error: the user has not finished assigning
		// fields. Short-circuit before aggregation, never a partial chart.
		if s.conclude(gen, StateNeedsFields, radar.ChartData{}, WarnAssignFields) {
			s.logger.Info("fields unassigned", "haveCategory", ok, "valueFields", len(valueNames))
		}
		return nil
	}

	agg := pivot.Aggregate(rows, category.Name, valueNames)
	data := radar.Build(agg)

	if !s.conclude(gen, StateReady, data, "") {
		s.logger.Debug("stale update discarded", "generation", gen)
		return nil
	}

	s.logger.Info("update complete",
		"rows", len(rows), "labels", len(data.Labels), "series", len(data.Datasets))
	return s.renderer.Render(radar.Clone(data))
}

// fetch issues the two asynchronous host calls concurrently and joins on
// both; if either fails the other's result is dropped.
func (s *Session) fetch(ctx context.Context) ([]table.NamedRow, host.VisualSpecification, error) {
	var (
		rows []table.NamedRow
		spec host.VisualSpecification
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reader, err := s.worksheet.GetSummaryReader(ctx)
		if err != nil {
			return fmt.Errorf("get summary data: %w", err)
		}
		rows, err = table.Normalize(ctx, reader)
		return err
	})
	g.Go(func() error {
		var err error
		spec, err = s.worksheet.GetVisualSpecification(ctx)
		if err != nil {
			return fmt.Errorf("get visual specification: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, host.VisualSpecification{}, err
	}
	return rows, spec, nil
}

// conclude commits the outcome of the update with generation gen. It returns
// false when a newer update superseded this one, in which case nothing is
// committed.
func (s *Session) conclude(gen uint64, state State, data radar.ChartData, warning string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.state = state
	s.cache = data
	s.warning = warning
	return true
}

// HandleResize redraws the chart from the session cache. No host calls, no
// re-aggregation: the renderer receives a copy of exactly what the last
// update produced. Outside Ready the event is ignored.
func (s *Session) HandleResize() error {
	s.mu.Lock()
	if s.state != StateReady {
		state := s.state
		s.mu.Unlock()
		s.logger.Debug("resize ignored", "state", state)
		return nil
	}
	data := radar.Clone(s.cache)
	s.mu.Unlock()

	return s.renderer.Render(data)
}

// PromoteSeries brings the selected series to the front with extra emphasis
// and redraws. The aggregation behind the cache is untouched; only the
// display order and widths change.
func (s *Session) PromoteSeries(index int) error {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return nil
	}
	s.cache = radar.Promote(s.cache, index)
	data := radar.Clone(s.cache)
	s.mu.Unlock()

	s.logger.Debug("series promoted", "index", index)
	return s.renderer.Render(data)
}

// Copyright 2026 The tbl-radar-chart Authors
// SPDX-License-Identifier: MIT

// Package hosttest provides scripted in-memory implementations of the host
// interfaces. Tests program pages, specifications, and failures up front,
// then assert on call counters afterwards.
package hosttest

import (
	"context"
	"sync/atomic"

	"github.com/andrew-jp/tbl-radar-chart/internal/host"
)

// Worksheet is a test double for host.Worksheet. When a function field is
// non-nil the double calls it; otherwise it serves the scripted Pages and
// Spec. Call counters track host traffic so tests can assert that cached
// paths issue no new host calls.
type Worksheet struct {
	Pages []host.Page
	Spec  host.VisualSpecification

	// SummaryErr fails GetSummaryReader; SpecErr fails GetVisualSpecification.
	SummaryErr error
	SpecErr    error

	GetSummaryReaderFn       func(ctx context.Context) (host.DataReader, error)
	GetVisualSpecificationFn func(ctx context.Context) (host.VisualSpecification, error)

	summaryCalls int64
	specCalls    int64

	// Readers holds every reader handed out, so tests can check Release.
	Readers []*Reader
}

var _ host.Worksheet = (*Worksheet)(nil)

// GetSummaryReader returns a Reader over the scripted pages.
func (w *Worksheet) GetSummaryReader(ctx context.Context) (host.DataReader, error) {
	atomic.AddInt64(&w.summaryCalls, 1)
	if w.GetSummaryReaderFn != nil {
		return w.GetSummaryReaderFn(ctx)
	}
	if w.SummaryErr != nil {
		return nil, w.SummaryErr
	}
	r := &Reader{Pages: w.Pages}
	w.Readers = append(w.Readers, r)
	return r, nil
}

// GetVisualSpecification returns the scripted specification.
func (w *Worksheet) GetVisualSpecification(ctx context.Context) (host.VisualSpecification, error) {
	atomic.AddInt64(&w.specCalls, 1)
	if w.GetVisualSpecificationFn != nil {
		return w.GetVisualSpecificationFn(ctx)
	}
	if w.SpecErr != nil {
		return host.VisualSpecification{}, w.SpecErr
	}
	return w.Spec, nil
}

// SummaryCalls returns how many times GetSummaryReader was invoked.
func (w *Worksheet) SummaryCalls() int { return int(atomic.LoadInt64(&w.summaryCalls)) }

// SpecCalls returns how many times GetVisualSpecification was invoked.
func (w *Worksheet) SpecCalls() int { return int(atomic.LoadInt64(&w.specCalls)) }

// Reader is a test double for host.DataReader serving fixed pages.
type Reader struct {
	Pages []host.Page

	// FailAt makes GetPage fail at the given index with FailErr.
	FailAt  int
	FailErr error

	GetPageFn func(ctx context.Context, index int) (host.Page, error)

	pageCalls    int64
	releaseCalls int64
}

var _ host.DataReader = (*Reader)(nil)

// PageCount returns the number of scripted pages.
func (r *Reader) PageCount() int { return len(r.Pages) }

// GetPage returns the scripted page at index, or the scripted failure.
func (r *Reader) GetPage(ctx context.Context, index int) (host.Page, error) {
	atomic.AddInt64(&r.pageCalls, 1)
	if r.GetPageFn != nil {
		return r.GetPageFn(ctx, index)
	}
	if r.FailErr != nil && index == r.FailAt {
		return host.Page{}, r.FailErr
	}
	return r.Pages[index], nil
}

// Release records the release call.
func (r *Reader) Release() { atomic.AddInt64(&r.releaseCalls, 1) }

// PageCalls returns how many times GetPage was invoked.
func (r *Reader) PageCalls() int { return int(atomic.LoadInt64(&r.pageCalls)) }

// ReleaseCalls returns how many times Release was invoked.
func (r *Reader) ReleaseCalls() int { return int(atomic.LoadInt64(&r.releaseCalls)) }

// Cell builds a DataValue whose display string and value are both set.
func Cell(formatted string, value any) host.DataValue {
	return host.DataValue{Value: value, FormattedValue: formatted}
}

// TextCell builds a DataValue for a plain string field.
func TextCell(s string) host.DataValue {
	return host.DataValue{Value: s, FormattedValue: s}
}

// NumberCell builds a DataValue for a numeric field, formatting the number
// the way the host's default locale would.
func NumberCell(v float64, formatted string) host.DataValue {
	return host.DataValue{Value: v, FormattedValue: formatted}
}

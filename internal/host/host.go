// Copyright 2026 The tbl-radar-chart Authors
// SPDX-License-Identifier: MIT

// Package host defines the contract with the hosting analytics application.
//
// The extension never talks to the host runtime directly; it consumes two
// read operations (summary data and the active visual specification) and
// reacts to notifications delivered by whoever owns the session. Everything
// here is an interface or a plain value type so tests and offline snapshots
// can stand in for a live host.
package host

import "context"

// DataValue is a single cell as the host exposes it: a display string plus
// the underlying value, which is numeric only for numeric fields.
type DataValue struct {
	Value          any    `json:"value"`
	FormattedValue string `json:"formattedValue"`
}

// Column describes one column of a summary data page.
type Column struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
}

// Page is one page of summary data. Data is row-major; each cell position
// corresponds to the column with the same index.
type Page struct {
	Columns []Column      `json:"columns"`
	Data    [][]DataValue `json:"data"`
}

// DataReader reads paginated summary data from the host. Callers must invoke
// Release exactly once when they are done, whether or not reading succeeded;
// the host ties paging resources to the reader's lifetime.
type DataReader interface {
	// PageCount returns the number of pages available.
	PageCount() int

	// GetPage fetches the page at the given index.
	GetPage(ctx context.Context, index int) (Page, error)

	// Release frees the paging resources held by the host for this reader.
	Release()
}

// FieldDescriptor identifies a data field assigned to an encoding slot.
type FieldDescriptor struct {
	Name string `json:"name"`
}

// Encoding is one entry of a marks specification's encoding list. Field may
// be bound to a single field, a list of fields, or nothing at all.
type Encoding struct {
	ID    string          `json:"id"`
	Field FieldAttachment `json:"field"`
}

// MarksSpecification holds the encoding list for one candidate mark type.
type MarksSpecification struct {
	Encodings []Encoding `json:"encodings"`
}

// VisualSpecification is the host's description of the worksheet's visual
// state: a set of candidate marks specifications and the index of the
// active one.
type VisualSpecification struct {
	MarksSpecifications           []MarksSpecification `json:"marksSpecifications"`
	ActiveMarksSpecificationIndex int                  `json:"activeMarksSpecificationIndex"`
}

// Worksheet is the read surface the extension needs from the host. Both
// calls are asynchronous host round-trips; implementations must honor
// context cancellation where they can.
type Worksheet interface {
	// GetSummaryReader returns a reader over the worksheet's current
	// summary data. The caller owns the reader and must Release it.
	GetSummaryReader(ctx context.Context) (DataReader, error)

	// GetVisualSpecification returns the worksheet's current
	// field-to-encoding mapping.
	GetVisualSpecification(ctx context.Context) (VisualSpecification, error)
}

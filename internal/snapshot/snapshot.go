// Copyright 2026 The tbl-radar-chart Authors
// SPDX-License-Identifier: MIT

// Package snapshot provides offline host.Worksheet implementations backed by
// files on disk: a saved JSON worksheet snapshot, or an xlsx workbook sheet.
// Sources re-read the file on every host call, so a data-changed event
// observes the file's current contents the way a live host call would.
package snapshot

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/andrew-jp/tbl-radar-chart/internal/host"
)

// Options configure how a snapshot file maps onto the host contract.
type Options struct {
	// Sheet selects the workbook sheet; empty means the first sheet.
	// Ignored for JSON snapshots.
	Sheet string

	// PageSize is the number of rows per summary data page for workbook
	// sources. Zero means DefaultPageSize.
	PageSize int

	// Category overrides (or, for workbooks, supplies) the field assigned
	// to the category slot.
	Category string

	// Values overrides (or supplies) the fields assigned to the values slot.
	Values []string
}

// DefaultPageSize is the page size used when Options.PageSize is zero.
const DefaultPageSize = 1000

// Source is a file-backed worksheet. Format is decided by extension:
// .json loads a saved snapshot, .xlsx opens a workbook sheet.
type Source struct {
	path string
	opts Options
	load func() ([]host.Page, host.VisualSpecification, error)
}

var _ host.Worksheet = (*Source)(nil)

// Open prepares a source for the given file. The file is read lazily on
// each host call; Open only validates the format.
func Open(path string, o Options) (*Source, error) {
	s := &Source{path: path, opts: o}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		s.load = func() ([]host.Page, host.VisualSpecification, error) {
			return readJSON(path, o)
		}
	case ".xlsx":
		s.load = func() ([]host.Page, host.VisualSpecification, error) {
			return readWorkbook(path, o)
		}
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q (want .json or .xlsx)", filepath.Ext(path))
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Source) Path() string { return s.path }

// GetSummaryReader re-reads the file and returns a reader over its pages.
func (s *Source) GetSummaryReader(_ context.Context) (host.DataReader, error) {
	pages, _, err := s.load()
	if err != nil {
		return nil, err
	}
	return &pageReader{pages: pages}, nil
}

// GetVisualSpecification re-reads the file and returns its specification.
func (s *Source) GetVisualSpecification(_ context.Context) (host.VisualSpecification, error) {
	_, spec, err := s.load()
	if err != nil {
		return host.VisualSpecification{}, err
	}
	return spec, nil
}

// pageReader serves in-memory pages. Release is a no-op: the file handle is
// already closed by the time pages exist, but the contract still requires a
// release call from the consumer.
type pageReader struct {
	pages []host.Page
}

var _ host.DataReader = (*pageReader)(nil)

func (r *pageReader) PageCount() int { return len(r.pages) }

func (r *pageReader) GetPage(_ context.Context, index int) (host.Page, error) {
	if index < 0 || index >= len(r.pages) {
		return host.Page{}, fmt.Errorf("page %d out of range (have %d)", index, len(r.pages))
	}
	return r.pages[index], nil
}

func (r *pageReader) Release() {}

// specFromOptions synthesizes a visual specification from explicit field
// assignments. Unset assignments stay unbound, which the pipeline surfaces
// as the assign-fields warning.
func specFromOptions(o Options) host.VisualSpecification {
	category := host.NoField()
	if o.Category != "" {
		category = host.SingleField(host.FieldDescriptor{Name: o.Category})
	}

	values := host.NoField()
	if len(o.Values) > 0 {
		fields := make([]host.FieldDescriptor, len(o.Values))
		for i, name := range o.Values {
			fields[i] = host.FieldDescriptor{Name: name}
		}
		values = host.FieldList(fields)
	}

	return host.VisualSpecification{
		MarksSpecifications: []host.MarksSpecification{{
			Encodings: []host.Encoding{
				{ID: "category", Field: category},
				{ID: "values", Field: values},
			},
		}},
	}
}

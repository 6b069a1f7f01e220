// Copyright 2026 The tbl-radar-chart Authors
// SPDX-License-Identifier: MIT

package snapshot

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/andrew-jp/tbl-radar-chart/internal/host"
)

// jsonSnapshot is the on-disk shape of a saved worksheet snapshot: the
// visual specification plus the summary data pages, exactly as the host
// reported them.
type jsonSnapshot struct {
	VisualSpecification host.VisualSpecification `json:"visualSpecification"`
	Pages               []host.Page              `json:"pages"`
}

// readJSON loads a saved worksheet snapshot. Category/Values options, when
// set, replace the snapshot's own encoding assignments.
func readJSON(path string, o Options) ([]host.Page, host.VisualSpecification, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided snapshot path
	if err != nil {
		return nil, host.VisualSpecification{}, fmt.Errorf("read snapshot: %w", err)
	}

	var snap jsonSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, host.VisualSpecification{}, fmt.Errorf("parse snapshot %q: %w", path, err)
	}

	spec := snap.VisualSpecification
	if o.Category != "" || len(o.Values) > 0 {
		spec = overrideSpec(spec, o)
	}
	return snap.Pages, spec, nil
}

// overrideSpec replaces the snapshot's category/values assignments with the
// explicitly requested fields, leaving other slots alone.
func overrideSpec(spec host.VisualSpecification, o Options) host.VisualSpecification {
	synth := specFromOptions(o)
	if len(spec.MarksSpecifications) == 0 {
		return synth
	}

	idx := spec.ActiveMarksSpecificationIndex
	if idx < 0 || idx >= len(spec.MarksSpecifications) {
		return synth
	}

	replaced := map[string]host.FieldAttachment{}
	if o.Category != "" {
		replaced["category"] = host.SingleField(host.FieldDescriptor{Name: o.Category})
	}
	if len(o.Values) > 0 {
		fields := make([]host.FieldDescriptor, len(o.Values))
		for i, name := range o.Values {
			fields[i] = host.FieldDescriptor{Name: name}
		}
		replaced["values"] = host.FieldList(fields)
	}

	active := spec.MarksSpecifications[idx]
	encodings := make([]host.Encoding, 0, len(active.Encodings))
	for _, enc := range active.Encodings {
		if attachment, ok := replaced[enc.ID]; ok {
			enc.Field = attachment
			delete(replaced, enc.ID)
		}
		encodings = append(encodings, enc)
	}
	// Slots requested but absent from the snapshot are appended.
	for _, id := range []string{"category", "values"} {
		if attachment, ok := replaced[id]; ok {
			encodings = append(encodings, host.Encoding{ID: id, Field: attachment})
		}
	}

	out := spec
	out.MarksSpecifications = make([]host.MarksSpecification, len(spec.MarksSpecifications))
	copy(out.MarksSpecifications, spec.MarksSpecifications)
	out.MarksSpecifications[idx] = host.MarksSpecification{Encodings: encodings}
	return out
}

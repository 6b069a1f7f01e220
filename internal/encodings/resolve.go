// Copyright 2026 The tbl-radar-chart Authors
// SPDX-License-Identifier: MIT

// Package encodings resolves the host's visual specification into the
// extension's slot-to-fields mapping.
package encodings

import (
	"fmt"

	"github.com/andrew-jp/tbl-radar-chart/internal/host"
)

// Encoding slot IDs defined by the extension manifest.
const (
	SlotCategory = "category"
	SlotValues   = "values"
)

// Map holds the resolved encodings: slot ID to the ordered fields assigned
// to it. A slot is present only when at least one field is assigned; absent
// slots are missing keys, never empty slices.
type Map map[string][]host.FieldDescriptor

// Resolve reads the active marks specification and normalizes every encoding
// entry's field attachment into the canonical ordered form. Unassigned slots
// are omitted. An active index outside the candidate list is a host contract
// violation and returns an error.
func Resolve(spec host.VisualSpecification) (Map, error) {
	idx := spec.ActiveMarksSpecificationIndex
	if idx < 0 || idx >= len(spec.MarksSpecifications) {
		return nil, fmt.Errorf("active marks specification index %d out of range (have %d)",
			idx, len(spec.MarksSpecifications))
	}

	m := make(Map)
	for _, enc := range spec.MarksSpecifications[idx].Encodings {
		fields := enc.Field.Fields()
		if len(fields) == 0 {
			continue
		}
		m[enc.ID] = append(m[enc.ID], fields...)
	}
	return m, nil
}

// Category returns the first field assigned to the category slot.
func (m Map) Category() (host.FieldDescriptor, bool) {
	fields := m[SlotCategory]
	if len(fields) == 0 {
		return host.FieldDescriptor{}, false
	}
	return fields[0], true
}

// Values returns the fields assigned to the values slot, in order.
func (m Map) Values() []host.FieldDescriptor {
	return m[SlotValues]
}

// ValueNames returns the names of the value fields, in order.
func (m Map) ValueNames() []string {
	fields := m.Values()
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

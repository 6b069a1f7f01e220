// Copyright 2026 The tbl-radar-chart Authors
// SPDX-License-Identifier: MIT

package host

import (
	"encoding/json"
	"fmt"
)

// FieldAttachment is the field binding of an encoding slot. The host
// represents it three ways (a single field object, an array of fields, or
// null), so it is modeled as a tagged variant that downstream code only
// ever sees through Fields(), which returns the canonical ordered form.
type FieldAttachment struct {
	fields []FieldDescriptor
}

// SingleField returns an attachment bound to exactly one field.
func SingleField(f FieldDescriptor) FieldAttachment {
	return FieldAttachment{fields: []FieldDescriptor{f}}
}

// FieldList returns an attachment bound to the given fields in order.
// An empty or nil list is equivalent to NoField().
func FieldList(fs []FieldDescriptor) FieldAttachment {
	if len(fs) == 0 {
		return FieldAttachment{}
	}
	fields := make([]FieldDescriptor, len(fs))
	copy(fields, fs)
	return FieldAttachment{fields: fields}
}

// NoField returns an unbound attachment.
func NoField() FieldAttachment {
	return FieldAttachment{}
}

// Fields returns the attached field descriptors in order. It returns nil
// when the slot is unbound.
func (a FieldAttachment) Fields() []FieldDescriptor {
	if len(a.fields) == 0 {
		return nil
	}
	out := make([]FieldDescriptor, len(a.fields))
	copy(out, a.fields)
	return out
}

// IsEmpty reports whether no field is attached.
func (a FieldAttachment) IsEmpty() bool {
	return len(a.fields) == 0
}

// UnmarshalJSON accepts the host's three wire forms: a field object, an
// array of field objects, or null.
func (a *FieldAttachment) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = FieldAttachment{}
		return nil
	}

	switch data[0] {
	case '[':
		var fs []FieldDescriptor
		if err := json.Unmarshal(data, &fs); err != nil {
			return fmt.Errorf("field attachment list: %w", err)
		}
		*a = FieldList(fs)
	case '{':
		var f FieldDescriptor
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("field attachment: %w", err)
		}
		*a = SingleField(f)
	default:
		return fmt.Errorf("field attachment: unexpected JSON value %q", string(data))
	}
	return nil
}

// MarshalJSON writes the canonical forms: null for unbound, a single object
// for one field, an array otherwise.
func (a FieldAttachment) MarshalJSON() ([]byte, error) {
	switch len(a.fields) {
	case 0:
		return []byte("null"), nil
	case 1:
		return json.Marshal(a.fields[0])
	default:
		return json.Marshal(a.fields)
	}
}

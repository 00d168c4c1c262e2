/*
NAME
  table.go

DESCRIPTION
  table.go implements the declarative parser table: an ordered, named set of
  bit-field definitions over a little-endian word vector, with precomputed
  getters/setters and merge-with-override semantics for building header
  variant lattices (see vdif.Header). Modeled on revid/config's declarative
  variable-table pattern (Name + closures), generalized from CLI variables to
  packed bit fields.

LICENSE
  Copyright (c) 2026 The Baseband Authors. All rights reserved.
  Use of this source code is governed by a BSD-style license that can be
  found in the LICENSE file.
*/

package bitfield

import (
	"github.com/pkg/errors"

	"github.com/vlbi-go/baseband"
)

// Field describes one named bit field: Width bits starting at bit LSB of
// word Word (word 0 is the lowest-address word). Default, if non-nil, is
// the value written when a setter is invoked with no explicit value.
type Field struct {
	Name    string
	Word    int
	LSB     int
	Width   int
	Default *uint64
}

func (f Field) mask() uint64 {
	return (uint64(1) << uint(f.Width)) - 1
}

// Table is an ordered, case-sensitive mapping from field name to Field
// definition. Tables are immutable once built; Merge returns a new Table.
type Table struct {
	fields []Field
	index  map[string]int
}

// NewTable validates and builds a Table from an ordered list of fields.
// Width must be in [1,32] and LSB+Width must not exceed 32; a repeated name
// within a single call is an error (use Merge to override by name across
// tables).
func NewTable(fields ...Field) (Table, error) {
	t := Table{index: make(map[string]int, len(fields))}
	for _, f := range fields {
		if f.Width < 1 || f.Width > 32 {
			return Table{}, errors.Errorf("bitfield: field %q has invalid width %d", f.Name, f.Width)
		}
		if f.LSB < 0 || f.LSB+f.Width > 32 {
			return Table{}, errors.Errorf("bitfield: field %q does not fit in its word (lsb=%d width=%d)", f.Name, f.LSB, f.Width)
		}
		if f.Default != nil && *f.Default&f.mask() != *f.Default {
			return Table{}, errors.Errorf("bitfield: field %q default %d does not fit in %d bits", f.Name, *f.Default, f.Width)
		}
		if _, dup := t.index[f.Name]; dup {
			return Table{}, errors.Errorf("bitfield: duplicate field name %q", f.Name)
		}
		t.index[f.Name] = len(t.fields)
		t.fields = append(t.fields, f)
	}
	return t, nil
}

// Merge returns a new Table with every field of t, in t's order, followed by
// every field of child not already present in t; a child field whose name
// repeats one in t replaces that field's definition in place, keeping its
// original position. Merge is associative, with the empty Table as a left
// identity.
func (t Table) Merge(child Table) Table {
	out := Table{
		fields: make([]Field, len(t.fields)),
		index:  make(map[string]int, len(t.fields)+len(child.fields)),
	}
	copy(out.fields, t.fields)
	for name, i := range t.index {
		out.index[name] = i
	}
	for _, f := range child.fields {
		if i, ok := out.index[f.Name]; ok {
			out.fields[i] = f
			continue
		}
		out.index[f.Name] = len(out.fields)
		out.fields = append(out.fields, f)
	}
	return out
}

// Names returns the field names in table order.
func (t Table) Names() []string {
	names := make([]string, len(t.fields))
	for i, f := range t.fields {
		names[i] = f.Name
	}
	return names
}

// Field returns the definition for name and whether it is present.
func (t Table) Field(name string) (Field, bool) {
	i, ok := t.index[name]
	if !ok {
		return Field{}, false
	}
	return t.fields[i], true
}

// Defaults returns the default value for name, and whether one is defined.
func (t Table) Defaults(name string) (uint64, bool) {
	f, ok := t.Field(name)
	if !ok || f.Default == nil {
		return 0, false
	}
	return *f.Default, true
}

// WordCount returns one more than the highest word index referenced by any
// field, i.e. the minimum word-vector length this table can address.
func (t Table) WordCount() int {
	max := 0
	for _, f := range t.fields {
		if f.Word+1 > max {
			max = f.Word + 1
		}
	}
	return max
}

// Get returns the named field's value from words. For Width==32 and LSB==0
// it returns the whole word; otherwise it returns the masked, shifted bits.
func (t Table) Get(words []uint32, name string) (uint64, error) {
	f, ok := t.index[name]
	if !ok {
		return 0, errors.Errorf("bitfield: unknown field %q", name)
	}
	return get(words, t.fields[f])
}

func get(words []uint32, f Field) (uint64, error) {
	if f.Word >= len(words) {
		return 0, errors.Errorf("bitfield: field %q references word %d, only %d present", f.Name, f.Word, len(words))
	}
	w := uint64(words[f.Word])
	if f.Width == 32 {
		return w, nil
	}
	return (w >> uint(f.LSB)) & f.mask(), nil
}

// GetBool returns the named field as a boolean; the field must have
// Width==1.
func (t Table) GetBool(words []uint32, name string) (bool, error) {
	f, ok := t.index[name]
	if !ok {
		return false, errors.Errorf("bitfield: unknown field %q", name)
	}
	if t.fields[f].Width != 1 {
		return false, errors.Errorf("bitfield: field %q has width %d, not a bool field", name, t.fields[f].Width)
	}
	v, err := get(words, t.fields[f])
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// Set returns a copy of words with the named field replaced by value. It
// fails with ErrFieldOverflow if value does not fit within the field's
// width, leaving words untouched.
func (t Table) Set(words []uint32, name string, value uint64) ([]uint32, error) {
	f, ok := t.index[name]
	if !ok {
		return nil, errors.Errorf("bitfield: unknown field %q", name)
	}
	return set(words, t.fields[f], value)
}

// SetBool is the boolean counterpart of Set.
func (t Table) SetBool(words []uint32, name string, value bool) ([]uint32, error) {
	var v uint64
	if value {
		v = 1
	}
	return t.Set(words, name, v)
}

// SetDefault writes the named field's default value into words. It fails
// with ErrMissingValue if the field has no default.
func (t Table) SetDefault(words []uint32, name string) ([]uint32, error) {
	def, ok := t.Defaults(name)
	if !ok {
		return nil, errors.Wrapf(baseband.ErrMissingValue, "field %q has no default", name)
	}
	return t.Set(words, name, def)
}

func set(words []uint32, f Field, value uint64) ([]uint32, error) {
	if f.Word >= len(words) {
		return nil, errors.Errorf("bitfield: field %q references word %d, only %d present", f.Name, f.Word, len(words))
	}
	mask := f.mask()
	if value&mask != value {
		return nil, errors.Wrapf(baseband.ErrFieldOverflow, "field %q: value %d does not fit in %d bits", f.Name, value, f.Width)
	}
	out := make([]uint32, len(words))
	copy(out, words)
	if f.Width == 32 {
		out[f.Word] = uint32(value)
		return out, nil
	}
	shifted := mask << uint(f.LSB)
	w := uint64(out[f.Word])
	w = (w &^ shifted) | (value << uint(f.LSB))
	out[f.Word] = uint32(w)
	return out, nil
}

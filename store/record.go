// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"fmt"
	"maps"
	"slices"

	"github.com/jinzhu/copier"

	"cogentcore.org/recordpanel/base/errors"
)

// Record is a mutable record with a stable id and named fields.
// Fields are modified through [Store.Set] so that the store can
// notify its listeners.
type Record struct {
	id     string
	fields map[string]any
}

// NewRecord returns a new record with the given id and a deep copy
// of the given fields.
func NewRecord(id string, fields map[string]any) *Record {
	r := &Record{id: id, fields: make(map[string]any, len(fields))}
	if len(fields) > 0 {
		errors.Log(copier.CopyWithOption(&r.fields, fields, copier.Option{DeepCopy: true}))
	}
	return r
}

// ID returns the id of the record.
func (r *Record) ID() string {
	return r.id
}

// Get returns the value of the given field, or nil.
func (r *Record) Get(field string) any {
	return r.fields[field]
}

// Has returns whether the record has the given field.
func (r *Record) Has(field string) bool {
	_, ok := r.fields[field]
	return ok
}

// Fields returns the field names of the record in sorted order.
func (r *Record) Fields() []string {
	return slices.Sorted(maps.Keys(r.fields))
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	return NewRecord(r.id, r.fields)
}

// set sets the given field, returning whether the value changed.
func (r *Record) set(field string, value any) bool {
	if old, ok := r.fields[field]; ok && fmt.Sprint(old) == fmt.Sprint(value) {
		return false
	}
	r.fields[field] = value
	return true
}

func (r *Record) String() string {
	return fmt.Sprintf("Record(%q)", r.id)
}

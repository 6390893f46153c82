// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store provides an in-memory, optionally grouped and filterable
// record collection that delivers change notifications to its listeners.
// It implements [recordpanel.Collection], [recordpanel.GroupKeyer] and
// [recordpanel.Observable].
package store

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"cogentcore.org/recordpanel/recordpanel"
)

// Store is an ordered collection of [Record]s. If GroupField is set
// the store is grouped by the value of that field, and groups are
// ordered by key using locale-aware collation. A Store is not safe
// for concurrent use.
type Store struct {

	// groupField is the field records are grouped by, or "".
	groupField string

	records []*Record

	// indexes maps a record id to its position in records.
	indexes map[string]int

	filters   []recordpanel.Filter
	listeners []recordpanel.Listener
	collator  *collate.Collator
}

// New returns a new empty [Store], grouped by the given field
// or flat if groupField is "".
func New(groupField string) *Store {
	return &Store{
		groupField: groupField,
		indexes:    make(map[string]int),
		collator:   collate.New(language.Und),
	}
}

// AddListener registers the given listener for change notifications.
func (st *Store) AddListener(l recordpanel.Listener) {
	st.listeners = append(st.listeners, l)
}

// GroupField returns the field the store is grouped by, or "".
func (st *Store) GroupField() string {
	return st.groupField
}

// IsGrouped returns whether the store is grouped.
func (st *Store) IsGrouped() bool {
	return st.groupField != ""
}

// GroupKey returns the group key of the given record.
func (st *Store) GroupKey(rec recordpanel.Record) string {
	v := rec.Get(st.groupField)
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Groups returns the groups of the store ordered by key, each with its
// records in store order. Filtered-out records are included.
func (st *Store) Groups() []recordpanel.RecordGroup {
	if !st.IsGrouped() {
		return nil
	}
	var keys []string
	members := make(map[string][]recordpanel.Record)
	for _, r := range st.records {
		k := st.GroupKey(r)
		if _, ok := members[k]; !ok {
			keys = append(keys, k)
		}
		members[k] = append(members[k], r)
	}
	st.collator.SortStrings(keys)
	gs := make([]recordpanel.RecordGroup, len(keys))
	for i, k := range keys {
		gs[i] = recordpanel.RecordGroup{Key: k, Records: members[k]}
	}
	return gs
}

// Records returns all records in store order.
func (st *Store) Records() []recordpanel.Record {
	res := make([]recordpanel.Record, len(st.records))
	for i, r := range st.records {
		res[i] = r
	}
	return res
}

// Count returns the number of records.
func (st *Store) Count() int {
	return len(st.records)
}

// ByID returns the record with the given id, bypassing filters.
func (st *Store) ByID(id string) (recordpanel.Record, bool) {
	r := st.Get(id)
	if r == nil {
		return nil, false
	}
	return r, true
}

// Get returns the record with the given id, or nil.
func (st *Store) Get(id string) *Record {
	idx, ok := st.indexes[id]
	if !ok {
		return nil
	}
	return st.records[idx]
}

// IndexOf returns the position of the record with the given id, or -1.
func (st *Store) IndexOf(id string) int {
	idx, ok := st.indexes[id]
	if !ok {
		return -1
	}
	return idx
}

// IsVisible returns whether the record with the given id exists and
// matches every active filter.
func (st *Store) IsVisible(id string) bool {
	r := st.Get(id)
	if r == nil {
		return false
	}
	return st.matches(r)
}

func (st *Store) matches(r *Record) bool {
	for _, f := range st.filters {
		if !f.Match(r) {
			return false
		}
	}
	return true
}

// Visible returns the records that match every active filter, in order.
func (st *Store) Visible() []*Record {
	var res []*Record
	for _, r := range st.records {
		if st.matches(r) {
			res = append(res, r)
		}
	}
	return res
}

// IsFiltered returns whether any filter is active.
func (st *Store) IsFiltered() bool {
	return len(st.filters) > 0
}

func (st *Store) reindex() {
	clear(st.indexes)
	for i, r := range st.records {
		st.indexes[r.id] = i
	}
}

// Load replaces the contents of the store with the given records and
// notifies a full load. Records with duplicate ids are rejected and
// the load is reported as failed.
func (st *Store) Load(recs ...*Record) error {
	for _, l := range st.listeners {
		l.OnBeforeLoad()
	}
	seen := make(map[string]bool, len(recs))
	for _, r := range recs {
		if seen[r.id] {
			st.notifyLoad(false)
			return fmt.Errorf("store.Load: duplicate record id %q", r.id)
		}
		seen[r.id] = true
	}
	st.records = slices.Clone(recs)
	st.reindex()
	st.notifyLoad(true)
	return nil
}

// Fail notifies a failed load without changing the contents.
func (st *Store) Fail(err error) {
	slog.Warn("store load failed", "err", err)
	for _, l := range st.listeners {
		l.OnBeforeLoad()
	}
	st.notifyLoad(false)
}

func (st *Store) notifyLoad(ok bool) {
	recs := st.Records()
	for _, l := range st.listeners {
		l.OnLoad(recs, ok)
	}
}

// Add appends the given records.
func (st *Store) Add(recs ...*Record) error {
	return st.Insert(len(st.records), recs...)
}

// Insert inserts the given records at the given index and notifies
// the addition. It fails without changes if any id is already present.
func (st *Store) Insert(index int, recs ...*Record) error {
	if len(recs) == 0 {
		return nil
	}
	if index < 0 || index > len(st.records) {
		return fmt.Errorf("store.Insert: index %d out of range [0, %d]", index, len(st.records))
	}
	seen := make(map[string]bool, len(recs))
	for _, r := range recs {
		if _, ok := st.indexes[r.id]; ok || seen[r.id] {
			return fmt.Errorf("store.Insert: record %q already exists", r.id)
		}
		seen[r.id] = true
	}
	st.records = slices.Insert(st.records, index, recs...)
	st.reindex()
	added := make([]recordpanel.Record, len(recs))
	for i, r := range recs {
		added[i] = r
	}
	for _, l := range st.listeners {
		l.OnAdd(added, index)
	}
	return nil
}

// Remove removes the records with the given ids and notifies the
// removal. Unknown ids are ignored. It returns the number removed.
func (st *Store) Remove(ids ...string) int {
	first := -1
	var removed []recordpanel.Record
	for _, id := range ids {
		idx, ok := st.indexes[id]
		if !ok {
			continue
		}
		if first < 0 || idx < first {
			first = idx
		}
		removed = append(removed, st.records[idx])
		st.records = slices.Delete(st.records, idx, idx+1)
		st.reindex()
	}
	if len(removed) == 0 {
		return 0
	}
	for _, l := range st.listeners {
		l.OnRemove(removed, first, false)
	}
	return len(removed)
}

// Set sets one field of the record with the given id and notifies
// the update if the value changed.
func (st *Store) Set(id, field string, value any) error {
	return st.SetFields(id, map[string]any{field: value})
}

// SetFields sets several fields of the record with the given id and
// notifies one update listing the fields whose value changed.
// Changing the group field is not supported, since the grouping of
// a presented record is fixed when it is added.
func (st *Store) SetFields(id string, fields map[string]any) error {
	r := st.Get(id)
	if r == nil {
		return fmt.Errorf("store.Set: no record %q", id)
	}
	if st.IsGrouped() {
		if _, ok := fields[st.groupField]; ok {
			return fmt.Errorf("store.Set: cannot change group field %q", st.groupField)
		}
	}
	var changed []string
	for _, f := range slices.Sorted(maps.Keys(fields)) {
		if r.set(f, fields[f]) {
			changed = append(changed, f)
		}
	}
	if len(changed) == 0 {
		return nil
	}
	for _, l := range st.listeners {
		l.OnUpdate(r, recordpanel.Edit, changed)
	}
	return nil
}

// AddFilter adds the given filter and notifies the filter change.
func (st *Store) AddFilter(f recordpanel.Filter) {
	st.SetFilters(append(slices.Clone(st.filters), f)...)
}

// SetFilters replaces the active filters and notifies the filter change.
func (st *Store) SetFilters(fs ...recordpanel.Filter) {
	st.filters = fs
	for _, l := range st.listeners {
		l.OnFilterChange(slices.Clone(st.filters))
	}
}

// ClearFilters removes every filter and notifies the filter change.
func (st *Store) ClearFilters() {
	st.SetFilters()
}

var (
	_ recordpanel.Collection = (*Store)(nil)
	_ recordpanel.GroupKeyer = (*Store)(nil)
	_ recordpanel.Observable = (*Store)(nil)
)

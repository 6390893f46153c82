// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recordpanel

// Record is an externally owned entity with a stable unique id
// and a mapping from field name to value. The panel never modifies
// records; it only reads their fields.
type Record interface {

	// ID returns the stable unique identifier of the record.
	ID() string

	// Get returns the current value of the given field,
	// or nil if the record has no such field.
	Get(field string) any
}

// RecordGroup is one partition of a grouped [Collection]:
// the group key and its member records in collection order.
type RecordGroup struct {
	Key     string
	Records []Record
}

// Collection is the record collection that a [Panel] presents.
// Its grouping mode must not change for the lifetime of the panel.
type Collection interface {

	// IsGrouped returns whether the collection partitions its
	// records by a group key.
	IsGrouped() bool

	// Groups returns the current groups in their native order,
	// including records that are currently filtered out.
	// It is only consulted in grouped mode.
	Groups() []RecordGroup

	// Records returns all records in collection order,
	// including records that are currently filtered out.
	Records() []Record

	// Count returns the number of records in the collection.
	Count() int

	// ByID returns the record with the given id, bypassing filters.
	ByID(id string) (Record, bool)

	// IsVisible returns whether the record with the given id is
	// present in the filtered view of the collection.
	IsVisible(id string) bool
}

// GroupKeyer is implemented by grouped collections that can resolve
// the group key of a single record. Added records are then placed in
// their groups without regrouping the whole collection.
type GroupKeyer interface {
	GroupKey(rec Record) string
}

// Observable is implemented by collections that deliver change
// notifications to listeners. A [Panel] registers itself on
// construction when its collection is Observable.
type Observable interface {
	AddListener(l Listener)
}

// Listener receives the change notifications of a [Collection].
// [Panel] implements Listener.
type Listener interface {
	OnBeforeLoad()
	OnLoad(records []Record, ok bool)
	OnAdd(records []Record, index int)
	OnRemove(records []Record, index int, isMove bool)
	OnUpdate(rec Record, op Operation, fields []string)
	OnFilterChange(filters []Filter)
}

// Filter is one filter of a [Collection]; a record is in the
// filtered view if every active filter matches it.
type Filter interface {
	Match(rec Record) bool
}

// Operation is the kind of record update being notified.
type Operation int32

const (
	// Edit is an in-place field edit that is not yet committed.
	Edit Operation = iota

	// Commit is a committed edit.
	Commit

	// Reject is a reverted edit.
	Reject
)

func (op Operation) String() string {
	switch op {
	case Edit:
		return "edit"
	case Commit:
		return "commit"
	case Reject:
		return "reject"
	}
	return "unknown"
}

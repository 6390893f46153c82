// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recordpanel

import "slices"

// FieldIndex maps each record field to the affordances that depend
// on it, in configuration order. It is built once per panel
// configuration and never modified afterward.
type FieldIndex struct {

	// fields maps a field name to its dependent affordances.
	fields map[string][]*Affordance

	// order is the configuration position of each affordance.
	order map[*Affordance]int
}

// NewFieldIndex returns a new [FieldIndex] for the given affordances.
// An affordance with no fields binds nothing. A field listed twice
// by the same affordance is indexed once.
func NewFieldIndex(afs []*Affordance) *FieldIndex {
	fi := &FieldIndex{
		fields: make(map[string][]*Affordance),
		order:  make(map[*Affordance]int, len(afs)),
	}
	for i, af := range afs {
		fi.order[af] = i
		for _, f := range af.Fields {
			deps := fi.fields[f]
			if slices.Contains(deps, af) {
				continue
			}
			fi.fields[f] = append(deps, af)
		}
	}
	return fi
}

// Lookup returns the affordances that depend on the given field,
// or nil if there are none. The returned slice must not be modified.
func (fi *FieldIndex) Lookup(field string) []*Affordance {
	return fi.fields[field]
}

// Affected returns the distinct affordances that depend on any of the
// given fields, in configuration order.
func (fi *FieldIndex) Affected(fields []string) []*Affordance {
	var res []*Affordance
	for _, f := range fields {
		for _, af := range fi.fields[f] {
			if !slices.Contains(res, af) {
				res = append(res, af)
			}
		}
	}
	if len(res) > 1 {
		slices.SortFunc(res, func(a, b *Affordance) int {
			return fi.order[a] - fi.order[b]
		})
	}
	return res
}

// NumFields returns the number of distinct fields that have dependents.
func (fi *FieldIndex) NumFields() int {
	return len(fi.fields)
}

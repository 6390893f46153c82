// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"fmt"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"cogentcore.org/recordpanel/recordpanel"
)

// FieldFilter matches records whose field value equals Value,
// comparing printed representations.
type FieldFilter struct {
	Field string
	Value any
}

// Match implements [recordpanel.Filter].
func (ff FieldFilter) Match(rec recordpanel.Record) bool {
	return fmt.Sprint(rec.Get(ff.Field)) == fmt.Sprint(ff.Value)
}

// DefaultSimilarity is the default threshold of a [SimilarFilter].
const DefaultSimilarity = 0.6

// SimilarFilter matches records whose field value contains Query or is
// at least Threshold similar to it (Levenshtein similarity, ignoring case).
type SimilarFilter struct {
	Field     string
	Query     string
	Threshold float64
}

// Match implements [recordpanel.Filter].
func (sf SimilarFilter) Match(rec recordpanel.Record) bool {
	v := rec.Get(sf.Field)
	if v == nil {
		return false
	}
	s := strings.ToLower(fmt.Sprint(v))
	q := strings.ToLower(sf.Query)
	if q == "" || strings.Contains(s, q) {
		return true
	}
	th := sf.Threshold
	if th <= 0 {
		th = DefaultSimilarity
	}
	return strutil.Similarity(s, q, metrics.NewLevenshtein()) >= th
}

// FuncFilter adapts a function to a [recordpanel.Filter].
type FuncFilter func(rec recordpanel.Record) bool

// Match implements [recordpanel.Filter].
func (ff FuncFilter) Match(rec recordpanel.Record) bool {
	return ff(rec)
}

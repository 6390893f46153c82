// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recordpanel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "cogentcore.org/recordpanel/recordpanel"
)

func affordanceIDs(afs []*Affordance) []string {
	ids := make([]string, len(afs))
	for i, af := range afs {
		ids[i] = af.ID
	}
	return ids
}

func TestFieldIndex(t *testing.T) {
	afs := []*Affordance{
		{ID: "status", Fields: Fields("status")},
		{ID: "owner", Fields: Fields("owner", "status", "owner")},
		{ID: "none"},
		{ID: "name", Fields: Fields("name")},
	}
	fi := NewFieldIndex(afs)

	assert.Equal(t, 3, fi.NumFields())
	assert.Equal(t, []string{"status", "owner"}, affordanceIDs(fi.Lookup("status")))
	assert.Equal(t, []string{"owner"}, affordanceIDs(fi.Lookup("owner")))
	assert.Empty(t, fi.Lookup("color"))

	assert.Equal(t, []string{"status", "owner", "name"}, affordanceIDs(fi.Affected([]string{"name", "owner", "status"})))
	assert.Empty(t, fi.Affected([]string{"color"}))
	assert.Empty(t, fi.Affected(nil))
}

func TestPrimaryField(t *testing.T) {
	af := &Affordance{Fields: Fields("owner", "status")}
	assert.Equal(t, "owner", af.PrimaryField())
	assert.Equal(t, "", (&Affordance{}).PrimaryField())
}

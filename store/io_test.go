// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "cogentcore.org/recordpanel/store"
)

func TestOpen(t *testing.T) {
	for _, fn := range []string{"testdata/records.yaml", "testdata/records.toml", "testdata/records.json"} {
		t.Run(fn, func(t *testing.T) {
			recs, err := Open(fn)
			require.NoError(t, err)
			require.Len(t, recs, 2)
			assert.Equal(t, "Geology", recs[0].Get("name"))
			assert.Equal(t, "Hydrology", recs[1].Get("name"))
			assert.NotEmpty(t, recs[0].ID())
		})
	}
}

func TestOpenNumericIDs(t *testing.T) {
	recs, err := Open("testdata/records.toml")
	require.NoError(t, err)
	assert.Equal(t, "1", recs[0].ID())
	assert.Equal(t, "2", recs[1].ID())
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader(`{"records": [{"name": "no id"}]}`), JSON)
	assert.ErrorContains(t, err, `has no "id" field`)

	_, err = Read(strings.NewReader(`{`), JSON)
	assert.Error(t, err)

	_, err = FormatFromFilename("records.csv")
	assert.Error(t, err)

	recs, err := Read(strings.NewReader(""), YAML)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestLoadFile(t *testing.T) {
	st := New("group")
	rc := &recorder{}
	st.AddListener(rc)
	require.NoError(t, st.LoadFile("testdata/records.yaml"))
	assert.Equal(t, 2, st.Count())
	assert.Len(t, st.Groups(), 2)

	assert.Error(t, st.LoadFile("testdata/missing.yaml"))
	assert.Equal(t, 2, st.Count())
	assert.Equal(t, []string{"beforeload", "load r1,r2", "beforeload", "load failed"}, rc.log)
}

// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a records file.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// IDField is the field that holds the id of each record in a file.
const IDField = "id"

// FormatFromFilename returns the format implied by the file extension.
func FormatFromFilename(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return "", fmt.Errorf("store: unsupported records file extension %q", filepath.Ext(filename))
}

// file is the layout of a records file: a list of field maps under
// the "records" key, each holding an [IDField].
type file struct {
	Records []map[string]any `json:"records" yaml:"records" toml:"records"`
}

// Read decodes records in the given format from r.
func Read(r io.Reader, format Format) ([]*Record, error) {
	var f file
	var err error
	switch format {
	case JSON:
		err = json.NewDecoder(r).Decode(&f)
	case YAML:
		err = yaml.NewDecoder(r).Decode(&f)
	case TOML:
		err = toml.NewDecoder(r).Decode(&f)
	default:
		return nil, fmt.Errorf("store: unsupported format %q", format)
	}
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("store: decoding %s records: %w", format, err)
	}
	recs := make([]*Record, 0, len(f.Records))
	for i, fields := range f.Records {
		idv, ok := fields[IDField]
		if !ok || idv == nil {
			return nil, fmt.Errorf("store: record %d has no %q field", i, IDField)
		}
		recs = append(recs, NewRecord(fmt.Sprint(idv), fields))
	}
	return recs, nil
}

// Open reads the records in the given file, with the format
// determined by the file extension.
func Open(filename string) ([]*Record, error) {
	format, err := FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return Read(fp, format)
}

// LoadFile reads the records in the given file and loads them into
// the store, notifying a full load. A read error is notified as a
// failed load and returned.
func (st *Store) LoadFile(filename string) error {
	recs, err := Open(filename)
	if err != nil {
		st.Fail(err)
		return err
	}
	return st.Load(recs...)
}

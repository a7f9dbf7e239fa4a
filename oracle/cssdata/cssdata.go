/*
Package cssdata provides a table of CSS properties and their enumerable
values, implementing oracle.Oracle.

The default table is compiled into the binary from a YAML file. Clients
may load their own table with Load.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cssdata

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/npillmayer/cssed/oracle"
	"gopkg.in/yaml.v3"
)

//go:embed properties.yaml
var defaultTable []byte

// ErrTable is returned for malformed property tables.
var ErrTable = errors.New("malformed property table")

// Property is an entry of a property table.
type Property struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values,omitempty"`
}

// Table is a list of properties in completion order. It implements
// oracle.Oracle.
type Table struct {
	props []Property
	index map[string]int
}

var _ oracle.Oracle = (*Table)(nil)

type tableFile struct {
	Properties []Property `yaml:"properties"`
}

// Load reads a property table in YAML format.
func Load(r io.Reader) (*Table, error) {
	var f tableFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTable, err)
	}
	return New(f.Properties)
}

// New creates a table from a list of properties. Property names must be
// unique and non-empty.
func New(props []Property) (*Table, error) {
	t := &Table{props: props, index: make(map[string]int, len(props))}
	for i, p := range props {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("%w: property #%d has no name", ErrTable, i)
		}
		if _, dup := t.index[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate property %q", ErrTable, p.Name)
		}
		t.index[p.Name] = i
	}
	return t, nil
}

var std struct {
	once  sync.Once
	table *Table
}

// Default returns the built-in table.
func Default() *Table {
	std.once.Do(func() {
		t, err := Load(strings.NewReader(string(defaultTable)))
		if err != nil {
			panic(err) // compiled-in data is broken
		}
		std.table = t
	})
	return std.table
}

// Len returns the number of properties in the table.
func (t *Table) Len() int {
	return len(t.props)
}

// IsKnownProperty is part of interface oracle.Oracle.
func (t *Table) IsKnownProperty(name string) bool {
	_, ok := t.index[name]
	return ok
}

// CompletionsForProperty is part of interface oracle.Oracle.
func (t *Table) CompletionsForProperty(prefix string) []string {
	var names []string
	for _, p := range t.props {
		if strings.HasPrefix(p.Name, prefix) {
			names = append(names, p.Name)
		}
	}
	return names
}

// LegalValues is part of interface oracle.Oracle.
func (t *Table) LegalValues(name string) ([]string, bool) {
	i, ok := t.index[name]
	if !ok || len(t.props[i].Values) == 0 {
		return nil, false
	}
	values := make([]string, len(t.props[i].Values))
	copy(values, t.props[i].Values)
	return values, true
}

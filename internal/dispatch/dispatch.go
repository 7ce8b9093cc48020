/*
Copyright 2023 Alexander Bartolomey (github@alexanderbartolomey.de)

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package dispatch implements table-driven parsing of named fields into a target value.
//
// A Table holds entries mapping a field name, scoped by a parent id, to a Parser that
// converts the textual value and writes it into the target. Both the configuration file
// parser and the flow data importer are built on top of it.
package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned by Dispatch for names without a table entry in the
	// current scope
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidValue is returned by parsers for values that cannot be converted
	ErrInvalidValue = errors.New("invalid value")
)

// TopLevel is the parent id of entries that are not nested in any block
const TopLevel = 0

// Parser converts value and stores it in target. Parsers of optional fields are
// responsible for setting their presence flags.
type Parser[T any] func(value string, target *T) error

type Entry[T any] struct {
	Name     string
	Id       int
	ParentId int
	Parse    Parser[T]
}

type entryKey struct {
	name     string
	parentId int
}

type Table[T any] struct {
	entries []Entry[T]
	index   map[entryKey]int
}

// NewTable builds a lookup table. Later entries with the same name and parent id shadow
// earlier ones.
func NewTable[T any](entries ...Entry[T]) *Table[T] {
	t := &Table[T]{
		entries: entries,
		index:   make(map[entryKey]int, len(entries)),
	}
	for i, e := range entries {
		t.index[entryKey{e.Name, e.ParentId}] = i
	}
	return t
}

// Lookup finds the entry called name within the scope of parentId. Names are matched
// exactly.
func (t *Table[T]) Lookup(name string, parentId int) (Entry[T], bool) {
	i, ok := t.index[entryKey{name, parentId}]
	if !ok {
		return Entry[T]{}, false
	}
	return t.entries[i], true
}

// Entries returns the table's entries in declaration order
func (t *Table[T]) Entries() []Entry[T] {
	out := make([]Entry[T], len(t.entries))
	copy(out, t.entries)
	return out
}

// Dispatch parses value into target using the entry called name in the scope of parentId.
// Unknown names yield an error wrapping ErrUnknownField, parser failures are wrapped with
// the field's name. Entries without a parser accept any value.
func (t *Table[T]) Dispatch(name string, value string, parentId int, target *T) error {
	e, ok := t.Lookup(name, parentId)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	if e.Parse == nil {
		return nil
	}
	if err := e.Parse(value, target); err != nil {
		return fmt.Errorf("failed to parse %s, %w", name, err)
	}
	return nil
}

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

// Package hashtable implements a fixed-width associative store from arbitrary byte keys to
// values. Each of the 256 buckets holds a binary search tree ordered by key length first and
// key bytes second, so colliding keys never form a chain.
//
// Every table carries exactly one Ownership policy, fixed when the table is created. The
// policy decides whether values are stored by reference or cloned on insert, and how
// replaced or freed values are released.
package hashtable

import (
	"bytes"
	"sync"
)

const buckets = 256

// Ownership decides how a Table takes ownership of values put into it
type Ownership[V any] interface {
	// Clone returns the value to store for v
	Clone(v V) V
	// Drop releases a value that is replaced or freed
	Drop(v V)
}

// ByReference stores values as given and never releases them
type ByReference[V any] struct{}

func (ByReference[V]) Clone(v V) V { return v }

func (ByReference[V]) Drop(V) {}

// OwnershipFuncs adapts a pair of optional functions to Ownership. A nil CloneFunc stores
// values by reference, a nil DropFunc does not release anything.
type OwnershipFuncs[V any] struct {
	CloneFunc func(V) V
	DropFunc  func(V)
}

func (o OwnershipFuncs[V]) Clone(v V) V {
	if o.CloneFunc == nil {
		return v
	}
	return o.CloneFunc(v)
}

func (o OwnershipFuncs[V]) Drop(v V) {
	if o.DropFunc != nil {
		o.DropFunc(v)
	}
}

type node[V any] struct {
	key   []byte
	value V

	left  *node[V]
	right *node[V]
}

// Table is safe for concurrent use
type Table[V any] struct {
	mu sync.RWMutex

	own     Ownership[V]
	buckets [buckets]*node[V]
	size    int
}

// New creates an empty table with the given ownership policy. A nil policy stores values by
// reference.
func New[V any](own Ownership[V]) *Table[V] {
	if own == nil {
		own = ByReference[V]{}
	}
	return &Table[V]{own: own}
}

// Add puts value under key into t. If t is nil, a new table is created with the ownership
// policy own, which is then fixed for all subsequent inserts. For an existing table, own is
// ignored. Add returns the table the value was put into.
func Add[V any](t *Table[V], key []byte, value V, own Ownership[V]) *Table[V] {
	if t == nil {
		t = New(own)
	}
	t.Put(key, value)
	return t
}

// Hash computes the bucket index of key
func Hash(key []byte) uint8 {
	var h uint8
	for i, b := range key {
		h ^= b + uint8(i)
	}
	return h
}

// compare orders keys by length first and by content second
func compare(a, b []byte) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return bytes.Compare(a, b)
}

// Put inserts or replaces the value stored for key. A replaced value is dropped by the
// table's ownership policy before the new one is installed. The key is copied.
func (t *Table[V]) Put(key []byte, value V) {
	t.mu.Lock()
	defer t.mu.Unlock()

	slot := &t.buckets[Hash(key)]
	for *slot != nil {
		n := *slot
		c := compare(key, n.key)
		switch {
		case c == 0:
			t.own.Drop(n.value)
			n.value = t.own.Clone(value)
			return
		case c < 0:
			slot = &n.left
		default:
			slot = &n.right
		}
	}

	*slot = &node[V]{
		key:   bytes.Clone(key),
		value: t.own.Clone(value),
	}
	t.size++
}

// Get returns the value stored for key. Get never modifies the table.
func (t *Table[V]) Get(key []byte) (V, bool) {
	var zero V
	if t == nil {
		return zero, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	n := t.buckets[Hash(key)]
	for n != nil {
		c := compare(key, n.key)
		switch {
		case c == 0:
			return n.value, true
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}
	return zero, false
}

// Len returns the number of keys in the table
func (t *Table[V]) Len() int {
	if t == nil {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// Range calls fn for every entry in bucket order, and in key order within a bucket, until
// fn returns false. fn must not modify the table.
func (t *Table[V]) Range(fn func(key []byte, value V) bool) {
	if t == nil {
		return
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, root := range t.buckets {
		if !walk(root, fn) {
			return
		}
	}
}

func walk[V any](n *node[V], fn func([]byte, V) bool) bool {
	if n == nil {
		return true
	}
	if !walk(n.left, fn) {
		return false
	}
	if !fn(n.key, n.value) {
		return false
	}
	return walk(n.right, fn)
}

// Free drops every value in the table and leaves it empty
func (t *Table[V]) Free() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, root := range t.buckets {
		t.free(root)
		t.buckets[i] = nil
	}
	t.size = 0
}

func (t *Table[V]) free(n *node[V]) {
	if n == nil {
		return
	}
	t.free(n.left)
	t.free(n.right)
	t.own.Drop(n.value)
	n.left, n.right = nil, nil
}

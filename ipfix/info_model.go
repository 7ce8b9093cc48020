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

package ipfix

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"
)

// InfoModel is a set of information elements addressable by name and by FieldKey. It is
// safe for concurrent use.
type InfoModel struct {
	mu     sync.RWMutex
	byKey  map[FieldKey]*InformationElement
	byName map[string]*InformationElement
}

func NewInfoModel() *InfoModel {
	return &InfoModel{
		byKey:  make(map[FieldKey]*InformationElement),
		byName: make(map[string]*InformationElement),
	}
}

// Add registers ie, resolving its constructor from the abstract data type if unset.
// Registering the same key again replaces the element, registering a known name under a
// different key fails.
func (m *InfoModel) Add(ie InformationElement) error {
	if ie.Constructor == nil {
		c, err := LookupConstructor(ie.Type)
		if err != nil {
			return fmt.Errorf("information element %s: %w", ie.Name, err)
		}
		ie.Constructor = c
	}
	if ie.Type == "" {
		ie.Type = ie.Constructor().Type()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.byName[ie.Name]; ok && prev.Key() != ie.Key() {
		return fmt.Errorf("%w %s, registered as %s", ErrDuplicateElement, ie.Name, prev.Key())
	}
	if prev, ok := m.byKey[ie.Key()]; ok {
		delete(m.byName, prev.Name)
	}
	el := ie.Clone()
	m.byKey[el.Key()] = el
	m.byName[el.Name] = el
	return nil
}

// AddAll registers all elements, stopping at the first error
func (m *InfoModel) AddAll(ies []InformationElement) error {
	for _, ie := range ies {
		if err := m.Add(ie); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns a copy of the element registered under name
func (m *InfoModel) Lookup(name string) (*InformationElement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ie, ok := m.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownElement, name)
	}
	return ie.Clone(), nil
}

func (m *InfoModel) LookupKey(key FieldKey) (*InformationElement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ie, ok := m.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrUnknownElement, key)
	}
	return ie.Clone(), nil
}

func (m *InfoModel) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byKey)
}

//go:embed hack/information-elements.yaml
var defaultRegistry []byte

var defaultModel struct {
	once  sync.Once
	model *InfoModel
	err   error
}

// DefaultInfoModel returns the model built from the embedded registry. It is built once
// per process and shared by all callers, which must not modify it.
func DefaultInfoModel() (*InfoModel, error) {
	defaultModel.once.Do(func() {
		ies, err := ReadYAML(bytes.NewReader(defaultRegistry))
		if err != nil {
			defaultModel.err = fmt.Errorf("failed to read information element registry: %w", err)
			return
		}
		m := NewInfoModel()
		if err := m.AddAll(ies); err != nil {
			defaultModel.err = err
			return
		}
		defaultModel.model = m
	})
	return defaultModel.model, defaultModel.err
}

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
	"fmt"
	"sort"
	"sync"
)

// FieldSpec names an information element of a template. A non-zero Length selects a
// reduced-length encoding.
type FieldSpec struct {
	Name   string
	Length uint16
}

// Session holds the templates of one observation domain of an exporting process together
// with the number of data records exported so far, which is the sequence number of the
// next message.
type Session struct {
	mu sync.Mutex

	model               *InfoModel
	observationDomainId uint32

	nextTemplateId uint16
	templates      map[uint16]*TemplateRecord

	sequenceNumber uint32
}

func NewSession(model *InfoModel, observationDomainId uint32) *Session {
	return &Session{
		model:               model,
		observationDomainId: observationDomainId,
		nextTemplateId:      MinDataSetId,
		templates:           make(map[uint16]*TemplateRecord),
	}
}

func (s *Session) ObservationDomainId() uint32 {
	return s.observationDomainId
}

// AddTemplate registers a template of the given fields in order and returns its id
func (s *Session) AddTemplate(specs ...FieldSpec) (uint16, error) {
	if len(specs) == 0 {
		return 0, ErrEmptyTemplate
	}
	fields := make([]Field, 0, len(specs))
	for _, spec := range specs {
		ie, err := s.model.Lookup(spec.Name)
		if err != nil {
			return 0, err
		}
		fields = append(fields, NewFieldBuilder(ie).SetLength(spec.Length).Complete())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextTemplateId
	if id < MinDataSetId {
		return 0, fmt.Errorf("template ids of observation domain %d exhausted", s.observationDomainId)
	}
	s.nextTemplateId++
	s.templates[id] = &TemplateRecord{TemplateId: id, Fields: fields}
	return id, nil
}

func (s *Session) Template(id uint16) (*TemplateRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.templates[id]
	if !ok {
		return nil, templateNotFound(s.observationDomainId, id)
	}
	return t, nil
}

// Templates returns all templates ordered by id
func (s *Session) Templates() []*TemplateRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*TemplateRecord, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TemplateId < out[j].TemplateId })
	return out
}

// NewRecord returns an empty data record of template id
func (s *Session) NewRecord(id uint16) (*DataRecord, error) {
	t, err := s.Template(id)
	if err != nil {
		return nil, err
	}
	fields := make([]Field, 0, len(t.Fields))
	for _, f := range t.Fields {
		fields = append(fields, f.Clone())
	}
	return &DataRecord{TemplateId: id, Fields: fields}, nil
}

func (s *Session) SequenceNumber() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sequenceNumber
}

// advance accounts for n exported data records. The counter wraps modulo 2^32.
func (s *Session) advance(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequenceNumber += uint32(n)
}

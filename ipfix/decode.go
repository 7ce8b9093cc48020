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
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/zoomoid/nvipfix/iana/version"
)

type templateKey struct {
	observationDomainId uint32
	templateId          uint16
}

// Decoder reads messages in the form written by a Buffer. Templates are learned from
// template sets and kept per observation domain, such that data sets may refer to
// templates of earlier messages. Options template sets are skipped.
type Decoder struct {
	model *InfoModel

	mu        sync.Mutex
	templates map[templateKey]*TemplateRecord
}

func NewDecoder(model *InfoModel) *Decoder {
	return &Decoder{
		model:     model,
		templates: make(map[templateKey]*TemplateRecord),
	}
}

// Decode parses exactly one message from b
func (d *Decoder) Decode(b []byte) (msg *Message, err error) {
	defer func() {
		if err != nil {
			DecoderErrors.Inc()
			return
		}
		DecodedMessages.Inc()
	}()

	if len(b) < messageHeaderLength {
		return nil, fmt.Errorf("%w: %d bytes are too short for a message header", ErrMalformedMessage, len(b))
	}
	msg = &Message{
		Version:             version.ProtocolVersion(binary.BigEndian.Uint16(b[0:])),
		Length:              binary.BigEndian.Uint16(b[2:]),
		ExportTime:          binary.BigEndian.Uint32(b[4:]),
		SequenceNumber:      binary.BigEndian.Uint32(b[8:]),
		ObservationDomainId: binary.BigEndian.Uint32(b[12:]),
	}
	if msg.Version != version.IPFIX {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedMessage, msg.Version)
	}
	if int(msg.Length) < messageHeaderLength || int(msg.Length) > len(b) {
		return nil, fmt.Errorf("%w: message length %d, found %d bytes", ErrMalformedMessage, msg.Length, len(b))
	}

	payload := b[messageHeaderLength:msg.Length]
	for len(payload) > 0 {
		if len(payload) < setHeaderLength {
			return nil, fmt.Errorf("%w: trailing %d bytes", ErrMalformedMessage, len(payload))
		}
		h := SetHeader{
			Id:     binary.BigEndian.Uint16(payload[0:]),
			Length: binary.BigEndian.Uint16(payload[2:]),
		}
		if int(h.Length) < setHeaderLength || int(h.Length) > len(payload) {
			return nil, fmt.Errorf("%w: set %d has length %d", ErrMalformedMessage, h.Id, h.Length)
		}
		body := payload[setHeaderLength:h.Length]
		payload = payload[h.Length:]

		var s *Set
		switch {
		case h.Id == TemplateSetId:
			s, err = d.decodeTemplateSet(msg.ObservationDomainId, body)
		case h.Id == OptionsTemplateSetId:
			continue
		case h.Id >= MinDataSetId:
			s, err = d.decodeDataSet(msg.ObservationDomainId, h.Id, body)
		default:
			err = fmt.Errorf("%w: reserved set id %d", ErrMalformedMessage, h.Id)
		}
		if err != nil {
			return nil, err
		}
		s.Length = h.Length
		msg.Sets = append(msg.Sets, s)
	}
	return msg, nil
}

func (d *Decoder) decodeTemplateSet(odid uint32, b []byte) (*Set, error) {
	s := newSet(TemplateSetId)
	// anything shorter than a template record header is padding
	for len(b) >= 4 {
		tr := &TemplateRecord{TemplateId: binary.BigEndian.Uint16(b[0:])}
		count := int(binary.BigEndian.Uint16(b[2:]))
		b = b[4:]
		if tr.TemplateId < MinDataSetId {
			return nil, fmt.Errorf("%w: template id %d", ErrMalformedMessage, tr.TemplateId)
		}
		for i := 0; i < count; i++ {
			f, n, err := d.decodeSpecifier(b)
			if err != nil {
				return nil, fmt.Errorf("template %d, field %d: %w", tr.TemplateId, i, err)
			}
			tr.Fields = append(tr.Fields, f)
			b = b[n:]
		}

		d.mu.Lock()
		if count == 0 {
			// template withdrawal
			delete(d.templates, templateKey{odid, tr.TemplateId})
		} else {
			d.templates[templateKey{odid, tr.TemplateId}] = tr
		}
		d.mu.Unlock()
		s.add(tr)
	}
	return s, nil
}

func (d *Decoder) decodeSpecifier(b []byte) (Field, int, error) {
	if len(b) < 4 {
		return nil, 0, fmt.Errorf("%w: truncated field specifier", ErrMalformedMessage)
	}
	key := FieldKey{Id: binary.BigEndian.Uint16(b[0:])}
	length := binary.BigEndian.Uint16(b[2:])
	n := 4
	if key.Id&penMask != 0 {
		if len(b) < 8 {
			return nil, 0, fmt.Errorf("%w: truncated enterprise number", ErrMalformedMessage)
		}
		key.Id &^= penMask
		key.EnterpriseId = binary.BigEndian.Uint32(b[4:])
		n = 8
	}

	ie, err := d.model.LookupKey(key)
	if err != nil {
		return nil, 0, err
	}
	f := NewFieldBuilder(ie).SetLength(length).Complete()
	if f.Length() != length {
		return nil, 0, fmt.Errorf("%w: %s cannot be encoded in %d bytes", ErrMalformedMessage, ie.Name, length)
	}
	return f, n, nil
}

func (d *Decoder) decodeDataSet(odid uint32, id uint16, b []byte) (*Set, error) {
	d.mu.Lock()
	tr, ok := d.templates[templateKey{odid, id}]
	d.mu.Unlock()
	if !ok {
		return nil, templateNotFound(odid, id)
	}

	s := newSet(id)
	length := tr.DataLength()
	for length > 0 && len(b) >= length {
		dr := &DataRecord{TemplateId: id, Fields: make([]Field, 0, len(tr.Fields))}
		for _, tf := range tr.Fields {
			f := tf.Clone()
			l := int(f.Length())
			if err := f.Value().Decode(b[:l]); err != nil {
				return nil, fmt.Errorf("data set %d, field %s: %w", id, f.Name(), err)
			}
			dr.Fields = append(dr.Fields, f)
			b = b[l:]
		}
		s.add(dr)
	}
	return s, nil
}

// TemplateRecords returns the records of a template set
func (s *Set) TemplateRecords() []*TemplateRecord {
	var out []*TemplateRecord
	for _, r := range s.records {
		if tr, ok := r.(*TemplateRecord); ok {
			out = append(out, tr)
		}
	}
	return out
}

// DataRecords returns the records of a data set
func (s *Set) DataRecords() []*DataRecord {
	var out []*DataRecord
	for _, r := range s.records {
		if dr, ok := r.(*DataRecord); ok {
			out = append(out, dr)
		}
	}
	return out
}

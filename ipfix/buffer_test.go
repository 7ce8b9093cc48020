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
	"errors"
	"testing"
	"time"
)

// writes records every Write call separately
type writes [][]byte

func (w *writes) Write(b []byte) (int, error) {
	*w = append(*w, append([]byte(nil), b...))
	return len(b), nil
}

var exportTime = time.Unix(0x65000000, 0)

func newTestSession(t *testing.T, specs ...FieldSpec) (*Session, uint16) {
	t.Helper()
	m, err := DefaultInfoModel()
	if err != nil {
		t.Fatal(err)
	}
	s := NewSession(m, 1)
	id, err := s.AddTemplate(specs...)
	if err != nil {
		t.Fatal(err)
	}
	return s, id
}

func TestBufferEmit(t *testing.T) {
	s, id := newTestSession(t, FieldSpec{Name: "sourceTransportPort"}, FieldSpec{Name: "latencyMicroseconds"})
	if id != 256 {
		t.Fatalf("expected first template id 256, found %d", id)
	}

	w := &writes{}
	buf := NewBuffer(s, w, WithClock(func() time.Time { return exportTime }))
	if err := buf.AppendTemplates(); err != nil {
		t.Fatal(err)
	}
	rec, err := s.NewRecord(id)
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.Set("sourceTransportPort", uint16(8080)); err != nil {
		t.Fatal(err)
	}
	if err := rec.Set("latencyMicroseconds", uint64(1000)); err != nil {
		t.Fatal(err)
	}
	if err := buf.Append(rec); err != nil {
		t.Fatal(err)
	}
	if err := buf.Emit(); err != nil {
		t.Fatal(err)
	}

	want := []byte{
		// message header
		0x00, 0x0a, 0x00, 0x32, 0x65, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
		// template set
		0x00, 0x02, 0x00, 0x14, 0x01, 0x00, 0x00, 0x02,
		0x00, 0x07, 0x00, 0x02,
		0x80, 0x01, 0x00, 0x08, 0x00, 0x00, 0xb8, 0x13,
		// data set
		0x01, 0x00, 0x00, 0x0e, 0x1f, 0x90,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03, 0xe8,
	}
	if len(*w) != 1 {
		t.Fatalf("expected a single write, found %d", len(*w))
	}
	if !bytes.Equal((*w)[0], want) {
		t.Errorf("expected\n%x\nfound\n%x", want, (*w)[0])
	}
	if s.SequenceNumber() != 1 {
		t.Errorf("expected sequence number 1, found %d", s.SequenceNumber())
	}

	// nothing pending
	if err := buf.Emit(); err != nil || len(*w) != 1 {
		t.Errorf("expected empty emit to be a no-op, found %d writes, %v", len(*w), err)
	}
}

func TestBufferSplitsMessages(t *testing.T) {
	s, id := newTestSession(t, FieldSpec{Name: "exportedMessageTotalCount"}, FieldSpec{Name: "vlanId"})

	w := &writes{}
	// header, one set header and two records of 10 bytes
	buf := NewBuffer(s, w, WithMaxMessageSize(40))
	for i := 0; i < 3; i++ {
		rec, _ := s.NewRecord(id)
		if err := rec.Set("vlanId", i); err != nil {
			t.Fatal(err)
		}
		if err := buf.Append(rec); err != nil {
			t.Fatal(err)
		}
	}
	if len(*w) != 1 || len((*w)[0]) != 40 {
		t.Fatalf("expected a full message to be emitted, found %d writes", len(*w))
	}
	if buf.Pending() != 1 {
		t.Errorf("expected 1 pending record, found %d", buf.Pending())
	}
	if err := buf.Emit(); err != nil {
		t.Fatal(err)
	}

	second := (*w)[1]
	if seq := uint32(second[8])<<24 | uint32(second[9])<<16 | uint32(second[10])<<8 | uint32(second[11]); seq != 2 {
		t.Errorf("expected second message to carry sequence number 2, found %d", seq)
	}
}

func TestBufferErrors(t *testing.T) {
	s, id := newTestSession(t, FieldSpec{Name: "tcpControlBits", Length: 1})
	buf := NewBuffer(s, &writes{}, WithMaxMessageSize(20))

	rec, _ := s.NewRecord(id)
	if err := rec.Set("vlanId", 1); !errors.Is(err, ErrUnknownElement) {
		t.Errorf("expected ErrUnknownElement, found %v", err)
	}
	if err := rec.Set("tcpControlBits", 0x100); !errors.Is(err, ErrIllegalValue) {
		t.Errorf("expected ErrIllegalValue for reduced-length field, found %v", err)
	}
	if err := buf.Append(rec); !errors.Is(err, ErrMessageTooLarge) {
		t.Errorf("expected ErrMessageTooLarge, found %v", err)
	}

	if err := buf.Append(&DataRecord{TemplateId: 999}); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, found %v", err)
	}
	if err := buf.Append(&DataRecord{TemplateId: id}); !errors.Is(err, ErrRecordMismatch) {
		t.Errorf("expected ErrRecordMismatch, found %v", err)
	}
	if _, err := s.AddTemplate(); !errors.Is(err, ErrEmptyTemplate) {
		t.Errorf("expected ErrEmptyTemplate, found %v", err)
	}
}

func TestDataRecordClone(t *testing.T) {
	s, id := newTestSession(t, FieldSpec{Name: "vlanId"})
	rec, _ := s.NewRecord(id)
	_ = rec.Set("vlanId", 10)

	c := rec.Clone()
	_ = rec.Set("vlanId", 20)
	v, ok := c.Get("vlanId")
	if !ok || v.Value() != uint16(10) {
		t.Errorf("expected clone to keep value 10, found %v", v)
	}
}

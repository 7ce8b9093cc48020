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
	"errors"
	"net/netip"
	"testing"
	"time"
)

func TestDecodeEmittedMessage(t *testing.T) {
	s, id := newTestSession(t,
		FieldSpec{Name: "sourceIPv4Address"},
		FieldSpec{Name: "sourceTransportPort"},
		FieldSpec{Name: "initiatorOctets", Length: 4},
		FieldSpec{Name: "latencyMicroseconds"},
		FieldSpec{Name: "flowStartSeconds"},
	)

	w := &writes{}
	buf := NewBuffer(s, w, WithClock(func() time.Time { return exportTime }))
	if err := buf.AppendTemplates(); err != nil {
		t.Fatal(err)
	}
	for _, port := range []uint16{80, 443} {
		rec, _ := s.NewRecord(id)
		for name, v := range map[string]any{
			"sourceIPv4Address":   "10.0.0.1",
			"sourceTransportPort": port,
			"initiatorOctets":     uint64(1500),
			"latencyMicroseconds": uint64(250),
			"flowStartSeconds":    exportTime,
		} {
			if err := rec.Set(name, v); err != nil {
				t.Fatal(err)
			}
		}
		if err := buf.Append(rec); err != nil {
			t.Fatal(err)
		}
	}
	if err := buf.Emit(); err != nil {
		t.Fatal(err)
	}

	m, _ := DefaultInfoModel()
	d := NewDecoder(m)
	msg, err := d.Decode((*w)[0])
	if err != nil {
		t.Fatal(err)
	}
	if msg.ObservationDomainId != 1 || msg.ExportTime != uint32(exportTime.Unix()) || int(msg.Length) != len((*w)[0]) {
		t.Errorf("unexpected header %+v", msg)
	}
	if len(msg.Sets) != 2 {
		t.Fatalf("expected a template set and a data set, found %d sets", len(msg.Sets))
	}

	templates := msg.Sets[0].TemplateRecords()
	if len(templates) != 1 || templates[0].TemplateId != id || templates[0].FieldCount() != 5 {
		t.Fatalf("unexpected template set %v", templates)
	}
	if f := templates[0].Fields[2]; f.Name() != "initiatorOctets" || f.Length() != 4 {
		t.Errorf("expected reduced-length initiatorOctets, found %s", f)
	}
	if f := templates[0].Fields[3]; f.PEN() != 47123 {
		t.Errorf("expected enterprise-specific latencyMicroseconds, found %s", f)
	}

	records := msg.Sets[1].DataRecords()
	if len(records) != 2 {
		t.Fatalf("expected 2 data records, found %d", len(records))
	}
	checks := map[string]interface{}{
		"sourceIPv4Address":   netip.MustParseAddr("10.0.0.1"),
		"initiatorOctets":     uint64(1500),
		"latencyMicroseconds": uint64(250),
		"flowStartSeconds":    exportTime.UTC(),
	}
	for name, want := range checks {
		v, ok := records[1].Get(name)
		if !ok {
			t.Fatalf("expected field %s", name)
		}
		if v.Value() != want {
			t.Errorf("%s: expected %v, found %v", name, want, v.Value())
		}
	}
	if v, _ := records[1].Get("sourceTransportPort"); v.Value() != uint16(443) {
		t.Errorf("expected port 443, found %v", v)
	}
}

func TestDecodeTemplatesAcrossMessages(t *testing.T) {
	s, id := newTestSession(t, FieldSpec{Name: "vlanId"})
	w := &writes{}
	buf := NewBuffer(s, w)

	_ = buf.AppendTemplates()
	if err := buf.Emit(); err != nil {
		t.Fatal(err)
	}
	rec, _ := s.NewRecord(id)
	_ = rec.Set("vlanId", 10)
	_ = buf.Append(rec)
	if err := buf.Emit(); err != nil {
		t.Fatal(err)
	}

	m, _ := DefaultInfoModel()
	d := NewDecoder(m)
	if _, err := d.Decode((*w)[1]); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound before the template is known, found %v", err)
	}
	if _, err := d.Decode((*w)[0]); err != nil {
		t.Fatal(err)
	}
	msg, err := d.Decode((*w)[1])
	if err != nil {
		t.Fatal(err)
	}
	if msg.SequenceNumber != 0 || len(msg.Sets) != 1 || len(msg.Sets[0].DataRecords()) != 1 {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestDecodeMalformed(t *testing.T) {
	m, _ := DefaultInfoModel()
	header := func(version, length uint16) []byte {
		b := appendUint16(nil, version)
		b = appendUint16(b, length)
		return append(b, make([]byte, 12)...)
	}

	tests := []struct {
		name    string
		payload []byte
	}{
		{name: "short header", payload: []byte{0x00, 0x0a}},
		{name: "netflow v9", payload: header(9, 16)},
		{name: "length beyond payload", payload: header(10, 32)},
		{name: "truncated set header", payload: append(header(10, 18), 0x00, 0x02)},
		{name: "set length beyond message", payload: append(header(10, 20), 0x01, 0x00, 0x00, 0x10)},
		{name: "reserved set id", payload: append(header(10, 20), 0x00, 0x05, 0x00, 0x04)},
		{name: "unknown element", payload: append(header(10, 28), 0x00, 0x02, 0x00, 0x0c, 0x01, 0x00, 0x00, 0x01, 0x7f, 0xff, 0x00, 0x04)},
		{name: "oversized field", payload: append(header(10, 28), 0x00, 0x02, 0x00, 0x0c, 0x01, 0x00, 0x00, 0x01, 0x00, 0x07, 0x00, 0x04)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDecoder(m).Decode(tt.payload); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

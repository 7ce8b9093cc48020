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

package dispatch

import (
	"errors"
	"testing"
)

type target struct {
	name  string
	port  uint16
	count uint64
	small uint8
	id    uint32
}

func newTestTable() *Table[target] {
	return NewTable(
		Entry[target]{Name: "name", Id: 1, Parse: String(func(t *target) *string { return &t.name })},
		Entry[target]{Name: "block", Id: 2},
		Entry[target]{Name: "port", Id: 3, ParentId: 2, Parse: Uint16(func(t *target) *uint16 { return &t.port })},
		Entry[target]{Name: "count", Id: 4, Parse: Uint64(func(t *target) *uint64 { return &t.count })},
		Entry[target]{Name: "small", Id: 5, Parse: Uint8(func(t *target) *uint8 { return &t.small })},
		Entry[target]{Name: "id", Id: 6, Parse: Uint32(func(t *target) *uint32 { return &t.id })},
	)
}

func TestDispatch(t *testing.T) {
	table := newTestTable()
	var v target

	steps := []struct {
		name, value string
		parent      int
	}{
		{"name", "foo", TopLevel},
		{"port", "4739", 2},
		{"count", "0x10", TopLevel},
		{"small", "010", TopLevel},
		{"id", "4294967295", TopLevel},
	}
	for _, s := range steps {
		if err := table.Dispatch(s.name, s.value, s.parent, &v); err != nil {
			t.Fatalf("dispatching %s: %v", s.name, err)
		}
	}

	want := target{name: "foo", port: 4739, count: 16, small: 8, id: 4294967295}
	if v != want {
		t.Errorf("expected %+v, found %+v", want, v)
	}
}

func TestDispatchScopes(t *testing.T) {
	table := newTestTable()
	var v target

	if err := table.Dispatch("port", "1", TopLevel, &v); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected nested field to be unknown at top level, found %v", err)
	}
	if err := table.Dispatch("nope", "1", TopLevel, &v); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, found %v", err)
	}
	if err := table.Dispatch("block", "anything", TopLevel, &v); err != nil {
		t.Errorf("expected entry without parser to accept value, found %v", err)
	}

	e, ok := table.Lookup("port", 2)
	if !ok || e.Id != 3 {
		t.Errorf("expected port entry with id 3, found %+v", e)
	}
	if n := len(table.Entries()); n != 6 {
		t.Errorf("expected 6 entries, found %d", n)
	}
}

func TestDispatchInvalidValues(t *testing.T) {
	table := newTestTable()
	var v target

	for _, tc := range []struct{ name, value string }{
		{"small", "256"},
		{"port", "-1"},
		{"count", "abc"},
		{"id", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			parent := TopLevel
			if tc.name == "port" {
				parent = 2
			}
			if err := table.Dispatch(tc.name, tc.value, parent, &v); !errors.Is(err, ErrInvalidValue) {
				t.Errorf("expected ErrInvalidValue for %q, found %v", tc.value, err)
			}
		})
	}
	if v != (target{}) {
		t.Errorf("expected failed parses to leave target untouched, found %+v", v)
	}
}

func TestParseIPv4(t *testing.T) {
	v, err := ParseIPv4("10.0.0.1")
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x0A000001 {
		t.Errorf("expected 0x0A000001, found %#x", v)
	}

	for _, s := range []string{"10.0.0", "10.0.0.256", "a.b.c.d", "", "1.2.3.4.5"} {
		if _, err := ParseIPv4(s); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue for %q, found %v", s, err)
		}
	}
}

func TestParseSigned(t *testing.T) {
	for s, want := range map[string]int64{"250": 250, "-250": -250, "0x10": 16, "-0x10": -16, "+7": 7} {
		v, err := ParseSigned(s, 64)
		if err != nil || v != want {
			t.Errorf("ParseSigned(%q): expected %d, found %d (%v)", s, want, v, err)
		}
	}
	for _, s := range []string{"", "12us", "9223372036854775808", "--1"} {
		if _, err := ParseSigned(s, 64); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue for %q, found %v", s, err)
		}
	}
}

func TestParseMAC(t *testing.T) {
	mac, err := ParseMAC("aa:bb:cc:00:11:ff")
	if err != nil {
		t.Fatal(err)
	}
	if mac != [6]byte{0xaa, 0xbb, 0xcc, 0x00, 0x11, 0xff} {
		t.Errorf("unexpected mac %x", mac)
	}

	for _, s := range []string{"aa:bb:cc:00:11", "aa:bb:cc:00:11:gg", "aabbcc001122", "aa:bb:cc:00:11:ff:00"} {
		if _, err := ParseMAC(s); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue for %q, found %v", s, err)
		}
	}
}

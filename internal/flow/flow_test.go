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

package flow

import (
	"testing"
)

func TestAppend(t *testing.T) {
	var l *List
	if l.Len() != 0 || l.Back() != nil || l.Records() != nil {
		t.Fatal("expected nil list to be empty")
	}

	r := Record{VlanId: 10, Protocol: ProtocolTCP}
	l = Append(l, r)
	if l == nil || l.Len() != 1 {
		t.Fatal("expected Append to create a list with one record")
	}

	r.VlanId = 20
	if l.At(0).VlanId != 10 {
		t.Error("expected list to own a copy of the record")
	}

	Append(l, r)
	if l.Len() != 2 || l.Back().VlanId != 20 {
		t.Errorf("expected second record to be at the back, found %+v", l.Back())
	}
	if rs := l.Records(); rs[0].VlanId != 10 || rs[1].VlanId != 20 {
		t.Errorf("expected insertion order, found %+v", rs)
	}

	l.Free()
	if l.Len() != 0 {
		t.Errorf("expected empty list after Free, found %d records", l.Len())
	}
}

func TestLayer2SegmentId(t *testing.T) {
	if v := Layer2SegmentId(OverlayVxLAN, 5000); v != 0x0100000000001388 {
		t.Errorf("expected 0x0100000000001388, found %#x", v)
	}
	if v := Layer2SegmentId(OverlayVxLAN, 0xFF00000000000001); v != 0x0100000000000001 {
		t.Errorf("expected overlay byte of the id to be masked, found %#x", v)
	}
}

func TestAddresses(t *testing.T) {
	ip := IPv4Address{Value: 0x0A000001, HasValue: true}
	if s := ip.String(); s != "10.0.0.1" {
		t.Errorf("expected 10.0.0.1, found %s", s)
	}
	if (IPv4Address{}).Addr().IsValid() {
		t.Error("expected absent address to be invalid")
	}

	mac := MacAddress{Octets: [6]byte{0xaa, 0xbb, 0xcc, 0, 1, 2}, HasValue: true}
	if s := mac.String(); s != "aa:bb:cc:00:01:02" {
		t.Errorf("expected aa:bb:cc:00:01:02, found %s", s)
	}
	if s := (MacAddress{}).String(); s != "<none>" {
		t.Errorf("expected <none>, found %s", s)
	}
}

func TestConnectionState(t *testing.T) {
	for s, want := range map[string]TCPControlBits{"fin": TCPFlagFIN, "rst": TCPFlagRST, "syn": TCPFlagSYN, "est": TCPFlagACK} {
		if got, ok := ConnectionState(s); !ok || got != want {
			t.Errorf("ConnectionState(%q): expected %#x, found %#x", s, want, got)
		}
	}
	if _, ok := ConnectionState("EST"); ok {
		t.Error("expected states to be matched case-sensitively")
	}
}

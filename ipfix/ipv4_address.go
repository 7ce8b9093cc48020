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
	"io"
	"net"
	"net/netip"
)

type IPv4Address struct {
	value [4]byte
}

func NewIPv4Address() DataType {
	return &IPv4Address{}
}

func (t *IPv4Address) String() string {
	return netip.AddrFrom4(t.value).String()
}

func (*IPv4Address) Type() string {
	return "ipv4Address"
}

func (t *IPv4Address) Value() interface{} {
	return netip.AddrFrom4(t.value)
}

// SetValue accepts a uint32 holding the first octet in its most significant byte, a
// netip.Addr or net.IP of an IPv4 address, or its textual form
func (t *IPv4Address) SetValue(v any) error {
	switch a := v.(type) {
	case uint32:
		binary.BigEndian.PutUint32(t.value[:], a)
	case [4]byte:
		t.value = a
	case netip.Addr:
		if !a.Unmap().Is4() {
			return illegalValue(v, t)
		}
		t.value = a.Unmap().As4()
	case net.IP:
		ip4 := a.To4()
		if ip4 == nil {
			return illegalValue(v, t)
		}
		copy(t.value[:], ip4)
	case string:
		addr, err := netip.ParseAddr(a)
		if err != nil {
			return illegalValue(v, t)
		}
		return t.SetValue(addr)
	default:
		return illegalValue(v, t)
	}
	return nil
}

func (t *IPv4Address) Length() uint16 {
	return t.DefaultLength()
}

func (*IPv4Address) DefaultLength() uint16 {
	return 4
}

func (t *IPv4Address) SetLength(uint16) DataType {
	return t
}

func (*IPv4Address) IsReducedLength() bool {
	return false
}

func (t *IPv4Address) Clone() DataType {
	return &IPv4Address{value: t.value}
}

func (t *IPv4Address) Encode(w io.Writer) (int, error) {
	return w.Write(t.value[:])
}

func (t *IPv4Address) Decode(b []byte) error {
	if len(b) != 4 {
		return shortValue(b, t)
	}
	copy(t.value[:], b)
	return nil
}

var _ DataTypeConstructor = NewIPv4Address
var _ DataType = &IPv4Address{}

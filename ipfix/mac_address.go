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
	"io"
	"net"
)

type MacAddress struct {
	value [6]byte
}

func NewMacAddress() DataType {
	return &MacAddress{}
}

func (t *MacAddress) String() string {
	return net.HardwareAddr(t.value[:]).String()
}

func (*MacAddress) Type() string {
	return "macAddress"
}

func (t *MacAddress) Value() interface{} {
	return net.HardwareAddr(t.value[:])
}

// SetValue accepts a [6]byte, or a 6 byte long slice or net.HardwareAddr
func (t *MacAddress) SetValue(v any) error {
	switch b := v.(type) {
	case [6]byte:
		t.value = b
	case net.HardwareAddr:
		if len(b) != 6 {
			return illegalValue(v, t)
		}
		copy(t.value[:], b)
	case []byte:
		if len(b) != 6 {
			return illegalValue(v, t)
		}
		copy(t.value[:], b)
	case string:
		hw, err := net.ParseMAC(b)
		if err != nil || len(hw) != 6 {
			return illegalValue(v, t)
		}
		copy(t.value[:], hw)
	default:
		return illegalValue(v, t)
	}
	return nil
}

func (t *MacAddress) Length() uint16 {
	return t.DefaultLength()
}

func (*MacAddress) DefaultLength() uint16 {
	return 6
}

func (t *MacAddress) SetLength(uint16) DataType {
	return t
}

func (*MacAddress) IsReducedLength() bool {
	return false
}

func (t *MacAddress) Clone() DataType {
	return &MacAddress{value: t.value}
}

func (t *MacAddress) Encode(w io.Writer) (int, error) {
	return w.Write(t.value[:])
}

func (t *MacAddress) Decode(b []byte) error {
	if len(b) != 6 {
		return shortValue(b, t)
	}
	copy(t.value[:], b)
	return nil
}

var _ DataTypeConstructor = NewMacAddress
var _ DataType = &MacAddress{}

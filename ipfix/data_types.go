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
	"io"
	"math"
)

// DataType is an IPFIX abstract data type holding a single value
type DataType interface {
	fmt.Stringer

	// Type returns the abstract data type name as used in the IANA registry
	Type() string

	// Length returns the encoded length of the value, which is smaller than
	// DefaultLength for reduced-length encodings
	Length() uint16

	// DefaultLength returns the length defined by RFC 7011 for the type
	DefaultLength() uint16

	// Encode writes the value in network byte order
	Encode(io.Writer) (int, error)
	// Decode reads a value of exactly Length() bytes in network byte order
	Decode([]byte) error

	Value() interface{}

	// SetValue stores v if it is representable in the type and its current length
	SetValue(v any) error

	// SetLength switches the type to reduced-length encoding for lengths in
	// [1, DefaultLength()). Other lengths restore the default length.
	SetLength(uint16) DataType

	IsReducedLength() bool

	Clone() DataType
}

// DataTypeConstructor creates a zero-valued DataType
type DataTypeConstructor func() DataType

var constructors = map[string]DataTypeConstructor{
	"unsigned8":       NewUnsigned8,
	"unsigned16":      NewUnsigned16,
	"unsigned32":      NewUnsigned32,
	"unsigned64":      NewUnsigned64,
	"macAddress":      NewMacAddress,
	"dateTimeSeconds": NewDateTimeSeconds,
	"ipv4Address":     NewIPv4Address,
}

// LookupConstructor returns the constructor of the abstract data type called name
func LookupConstructor(name string) (DataTypeConstructor, error) {
	c, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownDataType, name)
	}
	return c, nil
}

// unsignedValue converts any Go integer to uint64 if it is non-negative and fits into the
// given number of bytes
func unsignedValue(v any, length uint16) (uint64, bool) {
	var u uint64
	switch n := v.(type) {
	case uint8:
		u = uint64(n)
	case uint16:
		u = uint64(n)
	case uint32:
		u = uint64(n)
	case uint64:
		u = n
	case uint:
		u = uint64(n)
	case int:
		if n < 0 {
			return 0, false
		}
		u = uint64(n)
	case int64:
		if n < 0 {
			return 0, false
		}
		u = uint64(n)
	case float64:
		if n < 0 || n > math.MaxUint64 || n != math.Trunc(n) {
			return 0, false
		}
		u = uint64(n)
	default:
		return 0, false
	}
	if length < 8 && u >= 1<<(8*length) {
		return 0, false
	}
	return u, true
}

// encodeUnsigned writes the length least significant bytes of v in network byte order,
// which is the reduced-length encoding of RFC 7011, section 6.2
func encodeUnsigned(w io.Writer, v uint64, length uint16) (int, error) {
	b := binary.BigEndian.AppendUint64(make([]byte, 0, 8), v)
	return w.Write(b[8-length:])
}

func decodeUnsigned(b []byte, length uint16) (uint64, error) {
	if len(b) != int(length) {
		return 0, fmt.Errorf("%w: expected %d bytes, found %d", ErrMalformedMessage, length, len(b))
	}
	var u uint64
	for _, c := range b {
		u = u<<8 | uint64(c)
	}
	return u, nil
}

func reducedLength(length uint16, defaultLength uint16) uint16 {
	if length > 0 && length < defaultLength {
		return length
	}
	return defaultLength
}

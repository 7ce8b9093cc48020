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
	"io"
)

// Field is an information element bound to a template, optionally carrying a value
type Field interface {
	fmt.Stringer

	Id() uint16
	Name() string
	// PEN returns the private enterprise number, 0 for IANA elements
	PEN() uint32
	Type() string
	Length() uint16

	// Value returns the field's value, which is the zero value of its data type if none
	// has been set
	Value() DataType
	SetValue(v any) error

	Encode(io.Writer) (int, error)

	// Clone returns a copy of the field without its value
	Clone() Field
	Prototype() *InformationElement
}

// encodeSpecifier writes the field specifier of f as it appears in template records
func encodeSpecifier(b []byte, f Field) []byte {
	if f.PEN() != 0 {
		b = appendUint16(b, penMask|f.Id())
		b = appendUint16(b, f.Length())
		return appendUint32(b, f.PEN())
	}
	b = appendUint16(b, f.Id())
	return appendUint16(b, f.Length())
}

func specifierLength(f Field) int {
	if f.PEN() != 0 {
		return 8
	}
	return 4
}

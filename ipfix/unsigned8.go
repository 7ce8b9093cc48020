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

type Unsigned8 struct {
	value  uint8
	length uint16
}

func NewUnsigned8() DataType {
	return &Unsigned8{length: 1}
}

func (t *Unsigned8) String() string {
	return fmt.Sprintf("%d", t.value)
}

func (*Unsigned8) Type() string {
	return "unsigned8"
}

func (t *Unsigned8) Value() interface{} {
	return t.value
}

func (t *Unsigned8) SetValue(v any) error {
	u, ok := unsignedValue(v, t.Length())
	if !ok {
		return illegalValue(v, t)
	}
	t.value = uint8(u)
	return nil
}

func (t *Unsigned8) Length() uint16 {
	return reducedLength(t.length, t.DefaultLength())
}

func (*Unsigned8) DefaultLength() uint16 {
	return 1
}

func (t *Unsigned8) SetLength(length uint16) DataType {
	t.length = reducedLength(length, t.DefaultLength())
	return t
}

func (t *Unsigned8) IsReducedLength() bool {
	return t.Length() < t.DefaultLength()
}

func (t *Unsigned8) Clone() DataType {
	return &Unsigned8{
		value:  t.value,
		length: t.length,
	}
}

func (t *Unsigned8) Encode(w io.Writer) (int, error) {
	return encodeUnsigned(w, uint64(t.value), t.Length())
}

func (t *Unsigned8) Decode(b []byte) error {
	u, err := decodeUnsigned(b, t.Length())
	if err != nil {
		return err
	}
	t.value = uint8(u)
	return nil
}

var _ DataTypeConstructor = NewUnsigned8
var _ DataType = &Unsigned8{}

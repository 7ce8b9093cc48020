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

type Unsigned32 struct {
	value  uint32
	length uint16
}

func NewUnsigned32() DataType {
	return &Unsigned32{length: 4}
}

func (t *Unsigned32) String() string {
	return fmt.Sprintf("%d", t.value)
}

func (*Unsigned32) Type() string {
	return "unsigned32"
}

func (t *Unsigned32) Value() interface{} {
	return t.value
}

func (t *Unsigned32) SetValue(v any) error {
	u, ok := unsignedValue(v, t.Length())
	if !ok {
		return illegalValue(v, t)
	}
	t.value = uint32(u)
	return nil
}

func (t *Unsigned32) Length() uint16 {
	return reducedLength(t.length, t.DefaultLength())
}

func (*Unsigned32) DefaultLength() uint16 {
	return 4
}

func (t *Unsigned32) SetLength(length uint16) DataType {
	t.length = reducedLength(length, t.DefaultLength())
	return t
}

func (t *Unsigned32) IsReducedLength() bool {
	return t.Length() < t.DefaultLength()
}

func (t *Unsigned32) Clone() DataType {
	return &Unsigned32{
		value:  t.value,
		length: t.length,
	}
}

func (t *Unsigned32) Encode(w io.Writer) (int, error) {
	return encodeUnsigned(w, uint64(t.value), t.Length())
}

func (t *Unsigned32) Decode(b []byte) error {
	u, err := decodeUnsigned(b, t.Length())
	if err != nil {
		return err
	}
	t.value = uint32(u)
	return nil
}

var _ DataTypeConstructor = NewUnsigned32
var _ DataType = &Unsigned32{}

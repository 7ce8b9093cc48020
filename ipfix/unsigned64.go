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

type Unsigned64 struct {
	value  uint64
	length uint16
}

func NewUnsigned64() DataType {
	return &Unsigned64{length: 8}
}

func (t *Unsigned64) String() string {
	return fmt.Sprintf("%d", t.value)
}

func (*Unsigned64) Type() string {
	return "unsigned64"
}

func (t *Unsigned64) Value() interface{} {
	return t.value
}

func (t *Unsigned64) SetValue(v any) error {
	u, ok := unsignedValue(v, t.Length())
	if !ok {
		return illegalValue(v, t)
	}
	t.value = uint64(u)
	return nil
}

func (t *Unsigned64) Length() uint16 {
	return reducedLength(t.length, t.DefaultLength())
}

func (*Unsigned64) DefaultLength() uint16 {
	return 8
}

func (t *Unsigned64) SetLength(length uint16) DataType {
	t.length = reducedLength(length, t.DefaultLength())
	return t
}

func (t *Unsigned64) IsReducedLength() bool {
	return t.Length() < t.DefaultLength()
}

func (t *Unsigned64) Clone() DataType {
	return &Unsigned64{
		value:  t.value,
		length: t.length,
	}
}

func (t *Unsigned64) Encode(w io.Writer) (int, error) {
	return encodeUnsigned(w, uint64(t.value), t.Length())
}

func (t *Unsigned64) Decode(b []byte) error {
	u, err := decodeUnsigned(b, t.Length())
	if err != nil {
		return err
	}
	t.value = uint64(u)
	return nil
}

var _ DataTypeConstructor = NewUnsigned64
var _ DataType = &Unsigned64{}

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
	"time"
)

// DateTimeSeconds holds seconds since the UNIX epoch. Values before the epoch or beyond
// 2106 are not representable.
type DateTimeSeconds struct {
	value uint32
}

func NewDateTimeSeconds() DataType {
	return &DateTimeSeconds{}
}

func (t *DateTimeSeconds) String() string {
	return time.Unix(int64(t.value), 0).UTC().Format(time.RFC3339)
}

func (*DateTimeSeconds) Type() string {
	return "dateTimeSeconds"
}

func (t *DateTimeSeconds) Value() interface{} {
	return time.Unix(int64(t.value), 0).UTC()
}

// SetValue accepts a time.Time, or an integer number of seconds
func (t *DateTimeSeconds) SetValue(v any) error {
	if ts, ok := v.(time.Time); ok {
		s := ts.Unix()
		if s < 0 || s > int64(^uint32(0)) {
			return illegalValue(v, t)
		}
		t.value = uint32(s)
		return nil
	}
	u, ok := unsignedValue(v, t.DefaultLength())
	if !ok {
		return illegalValue(v, t)
	}
	t.value = uint32(u)
	return nil
}

func (t *DateTimeSeconds) Length() uint16 {
	return t.DefaultLength()
}

func (*DateTimeSeconds) DefaultLength() uint16 {
	return 4
}

// SetLength is a no-op, time types are not reduced-length encodable
func (t *DateTimeSeconds) SetLength(uint16) DataType {
	return t
}

func (*DateTimeSeconds) IsReducedLength() bool {
	return false
}

func (t *DateTimeSeconds) Clone() DataType {
	return &DateTimeSeconds{value: t.value}
}

func (t *DateTimeSeconds) Encode(w io.Writer) (int, error) {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, t.value)
	return w.Write(b)
}

func (t *DateTimeSeconds) Decode(b []byte) error {
	if len(b) != 4 {
		return shortValue(b, t)
	}
	t.value = binary.BigEndian.Uint32(b)
	return nil
}

var _ DataTypeConstructor = NewDateTimeSeconds
var _ DataType = &DateTimeSeconds{}
var _ fmt.Stringer = &DateTimeSeconds{}

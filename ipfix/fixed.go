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

type FixedLengthField struct {
	id   uint16
	name string
	pen  uint32

	value       DataType
	constructor DataTypeConstructor

	prototype *InformationElement
}

var _ Field = &FixedLengthField{}

func (f *FixedLengthField) String() string {
	if f.value == nil {
		return fmt.Sprintf("%s(%d)[%d]", f.name, f.id, f.Length())
	}
	return fmt.Sprintf("%s(%d)[%d]{%s}", f.name, f.id, f.Length(), f.value)
}

func (f *FixedLengthField) Id() uint16 {
	return f.id
}

func (f *FixedLengthField) Name() string {
	return f.name
}

func (f *FixedLengthField) PEN() uint32 {
	return f.pen
}

func (f *FixedLengthField) Type() string {
	return f.Value().Type()
}

func (f *FixedLengthField) Length() uint16 {
	if f.value == nil {
		return f.constructor().Length()
	}
	return f.value.Length()
}

func (f *FixedLengthField) Value() DataType {
	if f.value == nil {
		f.value = f.constructor()
	}
	return f.value
}

// SetValue stores v in the field's data type. A DataType of the field's type and length
// is stored as is. The field keeps its previous value if v is not representable.
func (f *FixedLengthField) SetValue(v any) error {
	dt := f.constructor()
	if value, ok := v.(DataType); ok {
		if value.Type() != dt.Type() || value.Length() != dt.Length() {
			return fmt.Errorf("field %s: %w", f.name, illegalValue(v, dt))
		}
		f.value = value
		return nil
	}
	if err := dt.SetValue(v); err != nil {
		return fmt.Errorf("field %s: %w", f.name, err)
	}
	f.value = dt
	return nil
}

func (f *FixedLengthField) Encode(w io.Writer) (int, error) {
	return f.Value().Encode(w)
}

func (f *FixedLengthField) Clone() Field {
	return &FixedLengthField{
		id:          f.id,
		name:        f.name,
		pen:         f.pen,
		constructor: f.constructor,
		prototype:   f.prototype,
	}
}

func (f *FixedLengthField) Prototype() *InformationElement {
	return f.prototype
}

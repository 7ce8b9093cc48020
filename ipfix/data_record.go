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

// DataRecord holds one value per field of its template
type DataRecord struct {
	TemplateId uint16
	Fields     []Field
}

var _ record = &DataRecord{}

func (dr *DataRecord) String() string {
	return fmt.Sprintf("<id=%d>%v", dr.TemplateId, dr.Fields)
}

// Set stores v in the field called name
func (dr *DataRecord) Set(name string, v any) error {
	for _, f := range dr.Fields {
		if f.Name() == name {
			return f.SetValue(v)
		}
	}
	return fmt.Errorf("%w %q in template %d", ErrUnknownElement, name, dr.TemplateId)
}

// Get returns the value of the field called name
func (dr *DataRecord) Get(name string) (DataType, bool) {
	for _, f := range dr.Fields {
		if f.Name() == name {
			return f.Value(), true
		}
	}
	return nil, false
}

func (dr *DataRecord) Length() int {
	n := 0
	for _, f := range dr.Fields {
		n += int(f.Length())
	}
	return n
}

func (dr *DataRecord) Encode(w io.Writer) (n int, err error) {
	for _, f := range dr.Fields {
		m, err := f.Encode(w)
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Clone copies the record including its values
func (dr *DataRecord) Clone() *DataRecord {
	fields := make([]Field, 0, len(dr.Fields))
	for _, f := range dr.Fields {
		c := f.Clone()
		_ = c.SetValue(f.Value().Clone())
		fields = append(fields, c)
	}
	return &DataRecord{TemplateId: dr.TemplateId, Fields: fields}
}

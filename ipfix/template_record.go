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

// TemplateRecord describes the layout of the data records of one template id
type TemplateRecord struct {
	TemplateId uint16
	Fields     []Field
}

var _ record = &TemplateRecord{}

func (tr *TemplateRecord) String() string {
	sl := make([]string, 0, len(tr.Fields))
	for _, f := range tr.Fields {
		sl = append(sl, f.String())
	}
	return fmt.Sprintf("<id=%d,len=%d>%v", tr.TemplateId, len(tr.Fields), sl)
}

func (tr *TemplateRecord) FieldCount() uint16 {
	return uint16(len(tr.Fields))
}

// Length returns the encoded length of the template record
func (tr *TemplateRecord) Length() int {
	n := 4
	for _, f := range tr.Fields {
		n += specifierLength(f)
	}
	return n
}

// DataLength returns the encoded length of every data record of this template
func (tr *TemplateRecord) DataLength() int {
	n := 0
	for _, f := range tr.Fields {
		n += int(f.Length())
	}
	return n
}

func (tr *TemplateRecord) Encode(w io.Writer) (int, error) {
	b := make([]byte, 0, tr.Length())
	b = appendUint16(b, tr.TemplateId)
	b = appendUint16(b, tr.FieldCount())
	for _, f := range tr.Fields {
		b = encodeSpecifier(b, f)
	}
	return w.Write(b)
}

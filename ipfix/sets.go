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
)

const (
	// TemplateSetId is the set id of template sets
	TemplateSetId uint16 = 2
	// OptionsTemplateSetId is the set id of options template sets, which this package
	// does not produce
	OptionsTemplateSetId uint16 = 3
	// MinDataSetId is the smallest template id, and thereby data set id
	MinDataSetId uint16 = 256

	setHeaderLength = 4
)

type record interface {
	Length() int
	Encode(io.Writer) (int, error)
}

type SetHeader struct {
	// 2 for template sets, and the template id for data sets
	Id uint16

	// Length including the header
	Length uint16
}

// Set is a template set or a data set of records sharing a template id
type Set struct {
	SetHeader

	records []record
}

func newSet(id uint16) *Set {
	return &Set{SetHeader: SetHeader{Id: id, Length: setHeaderLength}}
}

func (s *Set) add(r record) {
	s.records = append(s.records, r)
	s.Length += uint16(r.Length())
}

func (s *Set) Len() int {
	return len(s.records)
}

func (s *Set) Encode(w io.Writer) (n int, err error) {
	b := make([]byte, 0, setHeaderLength)
	b = appendUint16(b, s.Id)
	b = appendUint16(b, s.Length)
	n, err = w.Write(b)
	if err != nil {
		return n, err
	}
	for _, r := range s.records {
		m, err := r.Encode(w)
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

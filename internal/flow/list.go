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

package flow

// List is an ordered batch of records. It owns copies of everything appended to it.
type List struct {
	records []Record
}

// Append copies r to the end of l and returns l. A nil list is created on first append.
func Append(l *List, r Record) *List {
	if l == nil {
		l = &List{}
	}
	l.records = append(l.records, r)
	return l
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.records)
}

// At returns a pointer to the i-th record, which stays valid until the next Append or Free
func (l *List) At(i int) *Record {
	return &l.records[i]
}

// Back returns the most recently appended record, or nil for an empty list
func (l *List) Back() *Record {
	if l.Len() == 0 {
		return nil
	}
	return &l.records[len(l.records)-1]
}

// Records returns the records in insertion order. The slice aliases the list.
func (l *List) Records() []Record {
	if l == nil {
		return nil
	}
	return l.records
}

// Free releases all records
func (l *List) Free() {
	if l == nil {
		return
	}
	l.records = nil
}

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

// Package semantics enumerates the data type semantics an information element can carry,
// as registered in the IANA "IPFIX Information Element Semantics" subregistry.
package semantics

import (
	"encoding"
	"fmt"
)

type Semantic uint8

const (
	Undefined Semantic = iota
	Default
	Quantity
	TotalCounter
	DeltaCounter
	Identifier
	Flags
	List
	SNMPCounter
	SNMPGauge
)

var names = [...]string{
	Undefined:    "",
	Default:      "default",
	Quantity:     "quantity",
	TotalCounter: "totalCounter",
	DeltaCounter: "deltaCounter",
	Identifier:   "identifier",
	Flags:        "flags",
	List:         "list",
	SNMPCounter:  "snmpCounter",
	SNMPGauge:    "snmpGauge",
}

func (s Semantic) String() string {
	if int(s) < len(names) {
		return names[s]
	}
	return "unassigned"
}

// Counter reports whether values of the element accumulate over time
func (s Semantic) Counter() bool {
	return s == TotalCounter || s == DeltaCounter || s == SNMPCounter
}

// Parse returns Undefined for unknown names
func Parse(name string) Semantic {
	for i, n := range names {
		if i > 0 && n == name {
			return Semantic(i)
		}
	}
	return Undefined
}

func (s Semantic) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Semantic) UnmarshalText(in []byte) error {
	*s = Parse(string(in))
	return nil
}

var _ fmt.Stringer = Semantic(0)
var _ encoding.TextMarshaler = Semantic(0)
var _ encoding.TextUnmarshaler = (*Semantic)(nil)

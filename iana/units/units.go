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

// Package units enumerates the units of information elements, as registered in the IANA
// "IPFIX Information Element Units" subregistry.
package units

import (
	"fmt"
)

type Unit string

const (
	None           Unit = "none"
	Bits           Unit = "bits"
	Octets         Unit = "octets"
	Packets        Unit = "packets"
	Flows          Unit = "flows"
	Seconds        Unit = "seconds"
	Milliseconds   Unit = "milliseconds"
	Microseconds   Unit = "microseconds"
	Nanoseconds    Unit = "nanoseconds"
	FourOctetWords Unit = "4-octet words"
	Messages       Unit = "messages"
	Hops           Unit = "hops"
	Entries        Unit = "entries"
	Frames         Unit = "frames"
	Ports          Unit = "ports"
	Inferred       Unit = "inferred"
)

var known = map[Unit]struct{}{
	None: {}, Bits: {}, Octets: {}, Packets: {}, Flows: {}, Seconds: {}, Milliseconds: {},
	Microseconds: {}, Nanoseconds: {}, FourOctetWords: {}, Messages: {}, Hops: {},
	Entries: {}, Frames: {}, Ports: {}, Inferred: {},
}

// UnmarshalText rejects units that are not part of the registry. An empty text yields None.
func (u *Unit) UnmarshalText(in []byte) error {
	if len(in) == 0 {
		*u = None
		return nil
	}
	v := Unit(in)
	if _, ok := known[v]; !ok {
		return fmt.Errorf("unassigned unit %q", in)
	}
	*u = v
	return nil
}

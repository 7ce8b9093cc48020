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
	"io"

	"github.com/zoomoid/nvipfix/iana/version"
)

const messageHeaderLength = 16

// Message is an IPFIX message as defined in RFC 7011, section 3.1
type Message struct {
	Version             version.ProtocolVersion
	Length              uint16
	ExportTime          uint32
	SequenceNumber      uint32
	ObservationDomainId uint32
	Sets                []*Set
}

func (p *Message) Encode(w io.Writer) (int, error) {
	b := make([]byte, 0, messageHeaderLength)
	b = appendUint16(b, uint16(p.Version))
	b = appendUint16(b, p.Length)
	b = appendUint32(b, p.ExportTime)
	b = appendUint32(b, p.SequenceNumber)
	b = appendUint32(b, p.ObservationDomainId)

	nh, err := w.Write(b)
	if err != nil {
		return nh, err
	}

	var nb int
	for _, s := range p.Sets {
		ns, err := s.Encode(w)
		nb += ns
		if err != nil {
			return nh + nb, err
		}
	}
	return nh + nb, nil
}

func appendUint16(b []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(b, v)
}

func appendUint32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}

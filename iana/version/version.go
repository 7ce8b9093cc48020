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

// Package version holds the protocol versions found in the header of export messages.
package version

import (
	"errors"
	"strings"
)

var (
	ErrUnknownProtocolVersion = errors.New("unknown protocol version")
)

type ProtocolVersion uint16

const (
	// NetFlowV9 shares the message layout of IPFIX's predecessor and is only recognized
	// to produce a meaningful error
	NetFlowV9 ProtocolVersion = 9

	IPFIX ProtocolVersion = 10
)

func (p ProtocolVersion) String() string {
	switch p {
	case IPFIX:
		return "IPFIX"
	case NetFlowV9:
		return "NetFlowV9"
	default:
		return "Unknown"
	}
}

// Exportable reports whether messages of this version can be produced
func (p ProtocolVersion) Exportable() bool {
	return p == IPFIX
}

func (p ProtocolVersion) MarshalText() ([]byte, error) {
	if p != IPFIX && p != NetFlowV9 {
		return nil, ErrUnknownProtocolVersion
	}
	return []byte(p.String()), nil
}

func (p *ProtocolVersion) UnmarshalText(in []byte) error {
	switch strings.ToLower(string(in)) {
	case "ipfix":
		*p = IPFIX
	case "netflowv9":
		*p = NetFlowV9
	default:
		return ErrUnknownProtocolVersion
	}
	return nil
}

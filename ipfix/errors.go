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
	"errors"
	"fmt"
)

var (
	// ErrTemplateNotFound is returned for template ids unknown to a session
	ErrTemplateNotFound = errors.New("template not found")
	// ErrUnknownElement is returned by InfoModel lookups for names or keys that are not
	// registered
	ErrUnknownElement = errors.New("unknown information element")
	// ErrDuplicateElement is returned when registering a name twice with different keys
	ErrDuplicateElement = errors.New("duplicate information element")
	// ErrUnknownDataType is returned for abstract data types without an encoder
	ErrUnknownDataType = errors.New("unknown data type")
	// ErrIllegalValue is returned by SetValue for values that are not representable in
	// the data type
	ErrIllegalValue = errors.New("illegal value for data type")
	// ErrRecordMismatch is returned when appending a record that does not match its
	// template
	ErrRecordMismatch = errors.New("record does not match template")
	// ErrMessageTooLarge is returned when a single record does not fit into a message
	ErrMessageTooLarge = errors.New("record exceeds maximum message size")
	// ErrMalformedMessage is returned by the Decoder for messages violating RFC 7011
	ErrMalformedMessage = errors.New("malformed IPFIX message")
	// ErrEmptyTemplate is returned for templates without fields
	ErrEmptyTemplate = errors.New("template has no fields")
)

func templateNotFound(observationDomainId uint32, templateId uint16) error {
	return fmt.Errorf("%w for %d in observation domain %d", ErrTemplateNotFound, templateId, observationDomainId)
}

func illegalValue(v any, t DataType) error {
	return fmt.Errorf("%w: %T (%v) cannot be stored in %s", ErrIllegalValue, v, v, t.Type())
}

func shortValue(b []byte, t DataType) error {
	return fmt.Errorf("%w: %s requires %d bytes, found %d", ErrMalformedMessage, t.Type(), t.Length(), len(b))
}

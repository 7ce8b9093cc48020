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

package dispatch

import (
	"fmt"
	"strconv"

	"github.com/zoomoid/nvipfix/internal/strtok"
)

// ParseUnsigned parses an unsigned integer of at most bitSize bits. The base is derived from
// the prefix: "0x" is hexadecimal, a leading "0" octal, everything else decimal.
func ParseUnsigned(s string, bitSize int) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, bitSize)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidValue, s, err)
	}
	return v, nil
}

// ParseSigned is ParseUnsigned for signed integers, accepting a leading sign
func ParseSigned(s string, bitSize int) (int64, error) {
	v, err := strconv.ParseInt(s, 0, bitSize)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidValue, s, err)
	}
	return v, nil
}

// ParseIPv4 parses a dotted quad into its 32 bit value, first octet in the most significant
// byte
func ParseIPv4(s string) (uint32, error) {
	octets, _ := strtok.Split(s, ".")
	if len(octets) != 4 {
		return 0, fmt.Errorf("%w ipv4 address %q", ErrInvalidValue, s)
	}
	var v uint32
	for _, o := range octets {
		b, err := strconv.ParseUint(o, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("%w ipv4 address %q", ErrInvalidValue, s)
		}
		v = v<<8 | uint32(b)
	}
	return v, nil
}

// ParseMAC parses six colon-separated hexadecimal octets
func ParseMAC(s string) ([6]byte, error) {
	var mac [6]byte
	octets, _ := strtok.Split(s, ":")
	if len(octets) != len(mac) {
		return mac, fmt.Errorf("%w mac address %q", ErrInvalidValue, s)
	}
	for i, o := range octets {
		b, err := strconv.ParseUint(o, 16, 8)
		if err != nil {
			return mac, fmt.Errorf("%w mac address %q", ErrInvalidValue, s)
		}
		mac[i] = byte(b)
	}
	return mac, nil
}

func unsigned[T any, U uint8 | uint16 | uint32 | uint64](bitSize int, field func(*T) *U) Parser[T] {
	return func(value string, target *T) error {
		v, err := ParseUnsigned(value, bitSize)
		if err != nil {
			return err
		}
		*field(target) = U(v)
		return nil
	}
}

func Uint8[T any](field func(*T) *uint8) Parser[T] {
	return unsigned(8, field)
}

func Uint16[T any](field func(*T) *uint16) Parser[T] {
	return unsigned(16, field)
}

func Uint32[T any](field func(*T) *uint32) Parser[T] {
	return unsigned(32, field)
}

func Uint64[T any](field func(*T) *uint64) Parser[T] {
	return unsigned(64, field)
}

// String stores the value verbatim
func String[T any](field func(*T) *string) Parser[T] {
	return func(value string, target *T) error {
		*field(target) = value
		return nil
	}
}

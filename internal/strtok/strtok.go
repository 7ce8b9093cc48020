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

// Package strtok implements the small set of string tokenizing helpers used by the
// configuration parser and the flow data importer.
package strtok

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidArgument is returned for an empty delimiter set
	ErrInvalidArgument = errors.New("invalid argument")
)

// Split splits text at every rune contained in delims. Runs of consecutive delimiters never
// produce empty tokens, and a trailing run of non-delimiters always yields a final token.
// Splitting the empty string yields no tokens.
func Split(text string, delims string) ([]string, error) {
	if delims == "" {
		return nil, ErrInvalidArgument
	}
	if text == "" {
		return nil, nil
	}

	var tokens []string
	start := -1
	for i, r := range text {
		if strings.ContainsRune(delims, r) {
			if start >= 0 {
				tokens = append(tokens, text[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, text[start:])
	}
	return tokens, nil
}

// Trim strips leading and trailing runs of characters in cutset from the string pointed to
// by text and stores the result back into it.
func Trim(text *string, cutset string) {
	if text == nil {
		return
	}
	*text = TrimCopy(*text, cutset)
}

// TrimCopy returns text without leading and trailing runs of characters in cutset
func TrimCopy(text string, cutset string) string {
	if cutset == "" {
		return text
	}
	return strings.Trim(text, cutset)
}

// ContainsOnly reports whether every rune of text is part of charset. The empty string
// trivially contains only characters of any charset.
func ContainsOnly(text string, charset string) bool {
	for _, r := range text {
		if !strings.ContainsRune(charset, r) {
			return false
		}
	}
	return true
}

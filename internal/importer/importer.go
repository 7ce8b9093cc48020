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

// Package importer reads flow records from the JSON-like connection statistics documents
// produced by the switch API and its debug dumps:
//
//	{"data": [{"vlan": 10, "src-ip": "10.0.0.1", "dst-ip": "10.0.0.2", "proto": 6}, ...]}
//
// The document is not parsed as JSON. Records are located by splitting on brackets and
// braces, and every "name: value" pair is dispatched by name into a flow.Record.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/zoomoid/nvipfix/internal/dispatch"
	"github.com/zoomoid/nvipfix/internal/flow"
	"github.com/zoomoid/nvipfix/internal/log"
	"github.com/zoomoid/nvipfix/internal/strtok"
)

var (
	ErrMalformedInput = errors.New("unable to tokenize data file")
	ErrNoData         = errors.New("no \"data\" array in data file")
)

const (
	dataKey = "data"

	keyCutset   = "{}\r\n\t \":"
	pairCutset  = " \t\r\n\""
	chunkCutset = ",} \t\r\n"
)

// Import reads all of r and parses it with Parse
func Import(ctx context.Context, r io.Reader) (*flow.List, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return Parse(ctx, string(b))
}

func ImportFile(ctx context.Context, path string) (*flow.List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open data file: %w", err)
	}
	defer f.Close()
	return Import(ctx, f)
}

// Parse extracts the records of the "data" array of text. Unknown names and invalid values
// are logged and skipped. A document without brackets or without a "data" array yields an
// error and no records. An empty array yields a nil list.
func Parse(ctx context.Context, text string) (*flow.List, error) {
	logger := log.FromContext(ctx, "component", "importer")

	tokens, _ := strtok.Split(text, "[]")
	if len(tokens) < 2 {
		logger.Error(ErrMalformedInput, "failed to import data")
		return nil, ErrMalformedInput
	}

	for i := 0; i < len(tokens)-1; i++ {
		if key(tokens[i]) != dataKey {
			continue
		}

		var list *flow.List
		chunks, _ := strtok.Split(tokens[i+1], "{")
		for _, chunk := range chunks {
			chunk = strtok.TrimCopy(chunk, chunkCutset)
			if chunk == "" {
				continue
			}
			list = flow.Append(list, parseRecord(logger, chunk))
			ImportedRecords.Inc()
		}
		logger.V(1).Info("imported data", "records", list.Len())
		return list, nil
	}

	logger.Error(ErrNoData, "failed to import data")
	return nil, ErrNoData
}

// key returns the name preceding a bracket, which is the last member of token
func key(token string) string {
	if i := strings.LastIndexByte(token, ','); i >= 0 {
		token = token[i+1:]
	}
	return strtok.TrimCopy(token, keyCutset)
}

func parseRecord(logger logr.Logger, chunk string) flow.Record {
	var r flow.Record
	fields, _ := strtok.Split(chunk, ",")
	for _, field := range fields {
		name, value, ok := pair(field)
		if !ok {
			continue
		}
		if _, known := items.Lookup(name, dispatch.TopLevel); !known {
			UnknownFields.Inc()
			logger.Info("unknown item", "name", name)
			continue
		}
		if err := items.Dispatch(name, value, dispatch.TopLevel, &r); err != nil {
			InvalidValues.Inc()
			logger.Info("skipping invalid value", "name", name, "value", value, "error", err.Error())
		}
	}
	return r
}

// pair splits field at its first ':' into a trimmed name and value. Fields that do not
// consist of exactly two non-empty parts are dropped.
func pair(field string) (name, value string, ok bool) {
	parts, _ := strtok.Split(strings.Replace(field, ":", "\v", 1), "\v")
	if len(parts) != 2 {
		return "", "", false
	}
	name, value = strtok.TrimCopy(parts[0], pairCutset), strtok.TrimCopy(parts[1], pairCutset)
	return name, value, name != "" && value != ""
}

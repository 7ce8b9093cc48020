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

// Command nvipfix exports the connection statistics of a switch to IPFIX collectors.
//
// Invoked with a time window, it exports the connections of that window once, read either
// from the switch API or from a data file. "nvipfix start" runs the export periodically
// until it receives SIGINT or SIGTERM, "nvipfix stop" signals a running instance.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/zoomoid/nvipfix/internal/config"
	"github.com/zoomoid/nvipfix/internal/exporter"
	"github.com/zoomoid/nvipfix/internal/flow"
	"github.com/zoomoid/nvipfix/internal/importer"
	"github.com/zoomoid/nvipfix/internal/log"
	"github.com/zoomoid/nvipfix/internal/nvapi"
)

const version = "0.0.1"

// loadConfig reads the configuration once per process
var loadConfig = config.Shared

const (
	exitOK = iota
	exitArgs
	exitConfig
	exitData
	exitStartDaemon
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout io.Writer) int {
	logger := log.FromContext(ctx)

	cmd, err := parseArgs(args)
	if err != nil {
		if len(args) > 0 {
			logger.Error(err, "invalid arguments")
		}
		fmt.Fprint(stdout, usage())
		return exitArgs
	}

	switch cmd.mode {
	case modeVersion:
		fmt.Fprintf(stdout, "nvipfix %s\n", version)
		return exitOK
	case modeStop:
		return stopDaemon(ctx, pidFile())
	case modeStart:
		return startDaemon(ctx, pidFile())
	}

	store, err := loadConfig(ctx, config.Path())
	if err != nil {
		logger.Error(err, "failed to load configuration", "path", config.Path())
		return exitConfig
	}
	exp, err := newExporter(store)
	if err != nil {
		logger.Error(err, "failed to create exporter")
		return exitConfig
	}
	defer exp.Close()

	var records *flow.List
	if cmd.dataFile != "" {
		records, err = importer.ImportFile(ctx, cmd.dataFile)
	} else {
		var src *nvapi.HTTPSource
		src, err = nvapi.NewHTTPSource(*store.Switch())
		if errors.Is(err, nvapi.ErrNoSwitchHost) {
			logger.Error(err, "no data source")
			return exitConfig
		}
		if err == nil {
			records, err = src.Records(ctx, cmd.start, cmd.end)
		}
	}
	if err != nil {
		logger.Error(err, "failed to read records")
		return exitData
	}
	defer records.Free()

	if err := exp.ExportAll(ctx, store.Collectors(), records, cmd.start, cmd.end); err != nil {
		logger.Error(err, "export failed")
	}
	return exitOK
}

func newExporter(store *config.Store) (*exporter.Exporter, error) {
	return exporter.New(exporter.WithObservationDomainId(store.ObservationDomainId()))
}

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

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zoomoid/nvipfix/internal/datetime"
)

var errUsage = errors.New("invalid arguments")

type mode int

const (
	modeExport mode = iota
	modeStart
	modeStop
	modeVersion
)

type command struct {
	mode mode

	// dataFile replaces the switch API as the source of records if set
	dataFile string
	start    datetime.Datetime
	end      datetime.Datetime
}

// parseArgs accepts
//
//	[-f<datafile>] <start_ts> <end_ts>
//	start | stop | version
//
// where timestamps are local ISO 8601 datetimes. The data file may also be given as a
// separate argument following -f.
func parseArgs(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, errUsage
	}
	switch args[0] {
	case "start":
		return command{mode: modeStart}, nil
	case "stop":
		return command{mode: modeStop}, nil
	case "version", "--version", "-v":
		return command{mode: modeVersion}, nil
	}

	cmd := command{mode: modeExport}
	if strings.HasPrefix(args[0], "-f") {
		cmd.dataFile = args[0][2:]
		args = args[1:]
		if cmd.dataFile == "" && len(args) > 0 {
			cmd.dataFile, args = args[0], args[1:]
		}
		if cmd.dataFile == "" {
			return command{}, fmt.Errorf("%w: -f requires a data file", errUsage)
		}
	}

	if len(args) != 2 {
		return command{}, fmt.Errorf("%w: expected <start_ts> <end_ts>", errUsage)
	}
	cmd.start, cmd.end = datetime.ParseISO8601(args[0]), datetime.ParseISO8601(args[1])
	if !cmd.start.HasValue || !cmd.end.HasValue {
		return command{}, fmt.Errorf("%w: timestamps must be YYYY-MM-DDTHH:MM:SS", errUsage)
	}
	return cmd, nil
}

func usage() string {
	return fmt.Sprintf(`nvipfix %s
Usage: nvipfix [[-f<datafile>] <start_ts> <end_ts>] [start|stop|version]
	datafile - JSON file (for debug purpose)
	start_ts/end_ts - ISO 8601 datetime (YYYY-MM-DDTHH:MM:SS)
`, version)
}

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

package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"strings"

	"github.com/go-logr/logr"
	"github.com/zoomoid/nvipfix/internal/datetime"
	"github.com/zoomoid/nvipfix/internal/dispatch"
	"github.com/zoomoid/nvipfix/internal/log"
	"github.com/zoomoid/nvipfix/internal/strtok"
)

// maxLineLength bounds a single configuration line including its line break
const maxLineLength = 4096

const (
	settingSwitch = iota + 1
	settingSwitchHost
	settingSwitchLogin
	settingSwitchPassword
	settingCollector
	settingCollectorIPAddress
	settingCollectorHostname
	settingTransport
	settingTransportPort
	settingDSCP
	settingExportInterval
	settingMetricsAddress
	settingObservationDomainId
)

// state is the target all settings are dispatched into
type state struct {
	switchInfo     SwitchInfo
	collector      Collector
	exportInterval datetime.Timespan
	metricsAddress string

	observationDomainId    uint32
	hasObservationDomainId bool
}

var settings = dispatch.NewTable(
	dispatch.Entry[state]{Name: "switch", Id: settingSwitch,
		Parse: dispatch.String(func(s *state) *string { return &s.switchInfo.Name })},
	dispatch.Entry[state]{Name: "switch-nvapi-host", Id: settingSwitchHost,
		Parse: dispatch.String(func(s *state) *string { return &s.switchInfo.Host })},
	dispatch.Entry[state]{Name: "switch-nvapi-login", Id: settingSwitchLogin,
		Parse: dispatch.String(func(s *state) *string { return &s.switchInfo.Login })},
	dispatch.Entry[state]{Name: "switch-nvapi-password", Id: settingSwitchPassword,
		Parse: dispatch.String(func(s *state) *string { return &s.switchInfo.Password })},
	dispatch.Entry[state]{Name: "export-interval", Id: settingExportInterval,
		Parse: parseExportInterval},
	dispatch.Entry[state]{Name: "metrics-address", Id: settingMetricsAddress,
		Parse: dispatch.String(func(s *state) *string { return &s.metricsAddress })},
	dispatch.Entry[state]{Name: "observation-domain-id", Id: settingObservationDomainId,
		Parse: parseObservationDomainId},

	dispatch.Entry[state]{Name: "collector", Id: settingCollector,
		Parse: dispatch.String(func(s *state) *string { return &s.collector.Name })},
	dispatch.Entry[state]{Name: "collector-ip-address", Id: settingCollectorIPAddress, ParentId: settingCollector,
		Parse: parseCollectorIPAddress},
	dispatch.Entry[state]{Name: "collector-hostname", Id: settingCollectorHostname, ParentId: settingCollector,
		Parse: dispatch.String(func(s *state) *string { return &s.collector.Hostname })},
	dispatch.Entry[state]{Name: "transport", Id: settingTransport, ParentId: settingCollector,
		Parse: parseTransport},
	dispatch.Entry[state]{Name: "transport-port", Id: settingTransportPort, ParentId: settingCollector,
		Parse: parsePort},
	dispatch.Entry[state]{Name: "dscp", Id: settingDSCP, ParentId: settingCollector,
		Parse: parseDSCP},
)

func parseCollectorIPAddress(value string, s *state) error {
	v, err := dispatch.ParseIPv4(value)
	if err != nil {
		return err
	}
	s.collector.IPAddress = netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
	return nil
}

func parseTransport(value string, s *state) error {
	t, err := ParseTransport(value)
	if err != nil {
		return err
	}
	s.collector.Transport = t
	return nil
}

func parsePort(value string, s *state) error {
	if _, err := dispatch.ParseUnsigned(value, 16); err != nil {
		return err
	}
	s.collector.Port = value
	return nil
}

func parseDSCP(value string, s *state) error {
	v, err := dispatch.ParseUnsigned(value, 8)
	if err != nil {
		return err
	}
	if v > 63 {
		return fmt.Errorf("%w dscp %d, must be at most 63", dispatch.ErrInvalidValue, v)
	}
	s.collector.DSCP = uint8(v)
	return nil
}

func parseExportInterval(value string, s *state) error {
	v, err := dispatch.ParseUnsigned(value, 32)
	if err != nil {
		return err
	}
	if v == 0 {
		return fmt.Errorf("%w export interval 0", dispatch.ErrInvalidValue)
	}
	s.exportInterval = datetime.TimespanFromSeconds(int64(v))
	return nil
}

func parseObservationDomainId(value string, s *state) error {
	v, err := dispatch.ParseUnsigned(value, 32)
	if err != nil {
		return err
	}
	s.observationDomainId, s.hasObservationDomainId = uint32(v), true
	return nil
}

type parser struct {
	logger logr.Logger
	store  *Store
	state  state

	parentId int
	// id of the most recently recognized setting, opened as a block by '{'
	lastId int
}

// Parse reads a configuration from r. Malformed lines, unknown settings and invalid
// collectors are logged and skipped. Only read errors and overlong lines abort parsing.
func Parse(ctx context.Context, r io.Reader) (*Store, error) {
	p := &parser{
		logger: log.FromContext(ctx, "component", "config"),
		store:  &Store{},
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 512), maxLineLength)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		p.parseLine(lineNo, sc.Text())
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			err = fmt.Errorf("%w at line %d, limit is %d bytes", ErrLineTooLong, lineNo+1, maxLineLength)
			p.logger.Error(err, "failed to parse configuration")
			return nil, err
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if p.parentId != dispatch.TopLevel {
		p.logger.Error(ErrUnterminatedBlock, "unterminated block at end of configuration", "line", lineNo)
	}

	p.store.switchInfo = p.state.switchInfo
	p.store.exportInterval = p.state.exportInterval
	p.store.metricsAddress = p.state.metricsAddress
	p.store.observationDomainId = DefaultObservationDomainId
	if p.state.hasObservationDomainId {
		p.store.observationDomainId = p.state.observationDomainId
	}
	return p.store, nil
}

func (p *parser) parseLine(lineNo int, text string) {
	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}
	tokens, _ := strtok.Split(text, " \t\n\r")
	if len(tokens) == 0 {
		return
	}

	words := 0
	for _, t := range tokens {
		if t != "{" && t != "}" {
			words++
		}
	}
	if words > 2 {
		p.logger.Error(ErrBadLine, "skipping malformed line", "line", lineNo, "text", strings.TrimSpace(text))
		return
	}

	var (
		entry dispatch.Entry[state]
		known bool
		index int
	)
	for _, t := range tokens {
		switch t {
		case "{":
			p.parentId = p.lastId
		case "}":
			if p.parentId == settingCollector {
				p.commit(lineNo)
			}
			p.parentId = dispatch.TopLevel
		default:
			index++
			if index == 1 {
				entry, known = settings.Lookup(t, p.parentId)
				if !known {
					p.logger.Error(dispatch.ErrUnknownField, "unknown setting", "line", lineNo, "setting", t)
					continue
				}
				p.lastId = entry.Id
				if entry.Id == settingCollector {
					p.state.collector = Collector{}
					p.parentId = settingCollector
				}
				continue
			}
			if !known {
				continue
			}
			if err := settings.Dispatch(entry.Name, t, entry.ParentId, &p.state); err != nil {
				p.logger.Error(err, "invalid value", "line", lineNo, "setting", entry.Name)
			}
		}
	}
}

func (p *parser) commit(lineNo int) {
	c := p.state.collector
	p.state.collector = Collector{}
	if err := p.store.addCollector(c); err != nil {
		p.logger.Error(err, "rejecting collector", "line", lineNo)
		return
	}
	p.logger.V(1).Info("added collector", "collector", c.Name, "line", lineNo)
}

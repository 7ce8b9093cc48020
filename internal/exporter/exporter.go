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

// Package exporter sends flow records to IPFIX collectors.
//
// Every collector gets a session of its own on first use, holding its templates, its
// connection and the running totals of exported messages and records. Sessions are cached
// under the collector's key for the lifetime of the Exporter and reused by every later
// export to the same collector.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/go-logr/logr"
	"github.com/zoomoid/nvipfix/internal/config"
	"github.com/zoomoid/nvipfix/internal/datetime"
	"github.com/zoomoid/nvipfix/internal/flow"
	"github.com/zoomoid/nvipfix/internal/hashtable"
	"github.com/zoomoid/nvipfix/internal/log"
	"github.com/zoomoid/nvipfix/ipfix"
)

const (
	// DefaultObservationDomainId is used for all sessions unless configured otherwise
	DefaultObservationDomainId = config.DefaultObservationDomainId

	epochYear  = 1970
	epochMonth = 1
)

// dataFields is the layout of exported flow records. Order and names are part of the
// wire format collectors depend on.
var dataFields = []ipfix.FieldSpec{
	{Name: "flowStartSeconds"},
	{Name: "flowEndSeconds"},
	{Name: "layer2SegmentId"},
	{Name: "transportOctetDeltaCount"},
	{Name: "initiatorOctets"},
	{Name: "responderOctets"},
	{Name: "latencyMicroseconds"},
	{Name: "flowDurationMilliseconds"},
	{Name: "ingressInterface"},
	{Name: "egressInterface"},
	{Name: "vlanId"},
	{Name: "ethernetType"},
	{Name: "sourceIPv4Address"},
	{Name: "destinationIPv4Address"},
	{Name: "sourceTransportPort"},
	{Name: "destinationTransportPort"},
	{Name: "sourceMacAddress"},
	{Name: "destinationMacAddress"},
	{Name: "protocolIdentifier"},
	{Name: "tcpControlBits", Length: 1},
}

var statsFields = []ipfix.FieldSpec{
	{Name: "exportedMessageTotalCount"},
	{Name: "exportedFlowRecordTotalCount"},
}

// Counters are the running totals of a collector
type Counters struct {
	// Messages counts export invocations
	Messages uint64
	// Records counts exported flow records
	Records uint64
}

// CollectorStatus describes a cached collector session
type CollectorStatus struct {
	Name      string `json:"name"`
	Key       string `json:"key"`
	Address   string `json:"address"`
	Transport string `json:"transport"`
	Messages  uint64 `json:"messages"`
	Records   uint64 `json:"records"`
}

type collectorState struct {
	mu sync.Mutex

	collector     config.Collector
	session       *ipfix.Session
	dataTemplate  uint16
	statsTemplate uint16
	conn          net.Conn
	buffer        *ipfix.Buffer

	counters Counters
}

func (s *collectorState) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
	Sessions.Dec()
}

type Exporter struct {
	// mu serializes get-or-create of collector states
	mu     sync.Mutex
	states *hashtable.Table[*collectorState]

	model               *ipfix.InfoModel
	dial                DialFunc
	observationDomainId uint32
}

type Option func(*Exporter)

// WithDialer replaces the function used to connect to collectors
func WithDialer(dial DialFunc) Option {
	return func(e *Exporter) {
		e.dial = dial
	}
}

// WithObservationDomainId sets the observation domain of all sessions
func WithObservationDomainId(id uint32) Option {
	return func(e *Exporter) {
		e.observationDomainId = id
	}
}

// WithInfoModel replaces the default information model
func WithInfoModel(m *ipfix.InfoModel) Option {
	return func(e *Exporter) {
		e.model = m
	}
}

func New(opts ...Option) (*Exporter, error) {
	e := &Exporter{
		dial:                Dial,
		observationDomainId: DefaultObservationDomainId,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.model == nil {
		m, err := ipfix.DefaultInfoModel()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInfoModel, err)
		}
		e.model = m
	}
	e.states = hashtable.New[*collectorState](hashtable.OwnershipFuncs[*collectorState]{
		DropFunc: func(s *collectorState) { s.close() },
	})
	return e, nil
}

// sessionKey identifies the session of c. Collectors sharing an address but using
// different transports get separate sessions.
func sessionKey(c config.Collector) []byte {
	return []byte(c.Key() + "/" + c.Network().String())
}

// state returns the cached state of c, creating it on first use. Nothing is cached if
// creation fails.
func (e *Exporter) state(ctx context.Context, logger logr.Logger, c config.Collector) (*collectorState, error) {
	key := sessionKey(c)

	e.mu.Lock()
	defer e.mu.Unlock()
	if s, ok := e.states.Get(key); ok {
		return s, nil
	}

	if e.model.Len() == 0 {
		return nil, fmt.Errorf("%w: information model is empty", ErrSession)
	}
	session := ipfix.NewSession(e.model, e.observationDomainId)
	dataTemplate, err := session.AddTemplate(dataFields...)
	if err != nil {
		return nil, fmt.Errorf("%w for flow records: %w", ErrTemplate, err)
	}
	statsTemplate, err := session.AddTemplate(statsFields...)
	if err != nil {
		return nil, fmt.Errorf("%w for export statistics: %w", ErrTemplate, err)
	}
	conn, err := e.dial(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrTransport, c.Address(), err)
	}

	s := &collectorState{
		collector:     c,
		session:       session,
		dataTemplate:  dataTemplate,
		statsTemplate: statsTemplate,
		conn:          conn,
		buffer:        ipfix.NewBuffer(session, conn, ipfix.WithMaxMessageSize(maxMessageSize(c))),
	}
	e.states.Put(key, s)
	Sessions.Inc()
	logger.V(1).Info("created session", "address", c.Address(), "transport", c.Network().String())
	return s, nil
}

// Export sends records to c. Records without start or end time are stamped with the
// window's bounds. Records that cannot be encoded are logged and skipped. The collector's
// message total grows by one and its record total by the number of exported records, and
// both totals are sent after the records.
func (e *Exporter) Export(ctx context.Context, c config.Collector, records *flow.List, start, end datetime.Datetime) error {
	if !start.HasValue || !end.HasValue {
		return fmt.Errorf("%w: export window requires start and end", ErrInvalidArguments)
	}
	logger := log.FromContext(ctx, "component", "exporter", "collector", c.Name, "key", c.Key())

	s, err := e.state(ctx, logger, c)
	if err != nil {
		ExportErrors.WithLabelValues(c.Name, "session").Inc()
		logger.Error(err, "failed to establish session")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return fmt.Errorf("%w %s: session closed", ErrTransport, c.Address())
	}
	deadline, _ := ctx.Deadline()
	_ = s.conn.SetWriteDeadline(deadline)

	if err := s.buffer.AppendTemplates(); err != nil {
		ExportErrors.WithLabelValues(c.Name, "template").Inc()
		return fmt.Errorf("%w: %w", ErrTemplate, err)
	}

	startSeconds := start.SecondsSinceEpoch(epochYear, epochMonth)
	endSeconds := end.SecondsSinceEpoch(epochYear, epochMonth)

	var exported uint64
	for i := 0; i < records.Len(); i++ {
		r := records.At(i)
		rec, err := s.dataRecord(r, startSeconds, endSeconds)
		if err == nil {
			err = s.buffer.Append(rec)
		}
		if err != nil {
			ExportErrors.WithLabelValues(c.Name, "record").Inc()
			logger.Error(err, "skipping record", "source", r.SourceIP.String(), "sourcePort", r.SourcePort,
				"destination", r.DestinationIP.String(), "destinationPort", r.DestinationPort)
			continue
		}
		exported++
	}

	s.counters.Messages++
	s.counters.Records += exported
	ExportedMessages.WithLabelValues(c.Name).Inc()
	ExportedRecords.WithLabelValues(c.Name).Add(float64(exported))

	if err := s.appendStats(); err != nil {
		ExportErrors.WithLabelValues(c.Name, "stats").Inc()
		logger.Error(err, "failed to append export statistics")
	}
	if err := s.buffer.Emit(); err != nil {
		ExportErrors.WithLabelValues(c.Name, "emit").Inc()
		return fmt.Errorf("%w %s: %w", ErrTransport, c.Address(), err)
	}

	logger.V(1).Info("exported records", "records", exported, "messagesTotal", s.counters.Messages,
		"recordsTotal", s.counters.Records)
	return nil
}

func (s *collectorState) dataRecord(r *flow.Record, startSeconds, endSeconds uint32) (*ipfix.DataRecord, error) {
	rec, err := s.session.NewRecord(s.dataTemplate)
	if err != nil {
		return nil, err
	}

	flowStart, flowEnd := startSeconds, endSeconds
	if r.FlowStart.HasValue {
		flowStart = r.FlowStart.SecondsSinceEpoch(epochYear, epochMonth)
	}
	if r.FlowEnd.HasValue {
		flowEnd = r.FlowEnd.SecondsSinceEpoch(epochYear, epochMonth)
	}

	values := []struct {
		name  string
		value any
	}{
		{"flowStartSeconds", flowStart},
		{"flowEndSeconds", flowEnd},
		{"layer2SegmentId", r.Layer2SegmentId},
		{"transportOctetDeltaCount", r.TransportOctetDeltaCount},
		{"initiatorOctets", r.InitiatorOctets},
		{"responderOctets", r.ResponderOctets},
		{"latencyMicroseconds", nonNegative(r.Latency.Microseconds())},
		{"flowDurationMilliseconds", uint32(nonNegative(r.FlowDuration.Milliseconds()))},
		{"ingressInterface", r.IngressInterface},
		{"egressInterface", r.EgressInterface},
		{"vlanId", r.VlanId},
		{"ethernetType", uint16(r.EthernetType)},
		{"sourceIPv4Address", r.SourceIP.Value},
		{"destinationIPv4Address", r.DestinationIP.Value},
		{"sourceTransportPort", r.SourcePort},
		{"destinationTransportPort", r.DestinationPort},
		{"sourceMacAddress", r.SourceMac.Octets},
		{"destinationMacAddress", r.DestinationMac.Octets},
		{"protocolIdentifier", uint8(r.Protocol)},
		{"tcpControlBits", uint8(r.TCPControlBits)},
	}
	for _, v := range values {
		if err := rec.Set(v.name, v.value); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func (s *collectorState) appendStats() error {
	rec, err := s.session.NewRecord(s.statsTemplate)
	if err != nil {
		return err
	}
	if err := rec.Set("exportedMessageTotalCount", s.counters.Messages); err != nil {
		return err
	}
	if err := rec.Set("exportedFlowRecordTotalCount", s.counters.Records); err != nil {
		return err
	}
	return s.buffer.Append(rec)
}

func nonNegative(v int64) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}

// ExportAll exports records to every collector in order. A failing collector does not
// stop the export to the others, all errors are joined.
func (e *Exporter) ExportAll(ctx context.Context, collectors []config.Collector, records *flow.List, start, end datetime.Datetime) error {
	logger := log.FromContext(ctx, "component", "exporter")
	if len(collectors) == 0 {
		logger.Info("no collector(s) defined")
		return nil
	}
	if records.Len() == 0 {
		logger.Info("no data", "start", start.String(), "end", end.String())
	}

	var errs []error
	for _, c := range collectors {
		if err := e.Export(ctx, c, records, start, end); err != nil {
			errs = append(errs, fmt.Errorf("collector %s: %w", c.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Counters returns the running totals of c, if a session for it exists
func (e *Exporter) Counters(c config.Collector) (Counters, bool) {
	s, ok := e.states.Get(sessionKey(c))
	if !ok {
		return Counters{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters, true
}

// Snapshot describes all cached sessions
func (e *Exporter) Snapshot() []CollectorStatus {
	var out []CollectorStatus
	e.states.Range(func(_ []byte, s *collectorState) bool {
		s.mu.Lock()
		out = append(out, CollectorStatus{
			Name:      s.collector.Name,
			Key:       s.collector.Key(),
			Address:   s.collector.Address(),
			Transport: s.collector.Network().String(),
			Messages:  s.counters.Messages,
			Records:   s.counters.Records,
		})
		s.mu.Unlock()
		return true
	})
	return out
}

// Close drops all sessions and closes their connections. The Exporter remains usable and
// creates new sessions on the next export.
func (e *Exporter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.states.Free()
	return nil
}

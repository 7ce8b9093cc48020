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

// Package config reads the nvipfix configuration file.
//
// The file is line oriented. Top-level settings are written as "name value", and
// collectors as blocks:
//
//	switch leaf01
//	switch-nvapi-host 10.0.0.10
//	collector main {
//	    collector-ip-address 192.168.0.2
//	    transport tcp
//	    transport-port 9992
//	}
//
// Everything after a '#' is ignored.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/zoomoid/nvipfix/internal/datetime"
)

const (
	// DefaultPath is used when NVIPFIX_CONFIG is not set
	DefaultPath = "nvipfix.config"

	// DefaultExportInterval is the daemon's export period if export-interval is not set
	DefaultExportInterval = time.Second

	// DefaultObservationDomainId is used in exported messages if observation-domain-id is
	// not set
	DefaultObservationDomainId uint32 = 1
)

var (
	ErrLineTooLong        = errors.New("configuration line too long")
	ErrBadLine            = errors.New("bad configuration")
	ErrMissingAddress     = errors.New("collector requires collector-ip-address or collector-hostname")
	ErrUnterminatedBlock  = errors.New("'}' expected")
	ErrInvalidTransport   = errors.New("invalid transport")
	ErrDuplicateCollector = errors.New("duplicate collector")
)

// Path returns the configuration file path from NVIPFIX_CONFIG, or DefaultPath
func Path() string {
	if p, ok := os.LookupEnv("NVIPFIX_CONFIG"); ok && p != "" {
		return p
	}
	return DefaultPath
}

// Store is a parsed configuration. It is not modified after parsing.
type Store struct {
	mu sync.RWMutex

	switchInfo SwitchInfo
	// most recently parsed first
	collectors []Collector

	exportInterval      datetime.Timespan
	metricsAddress      string
	observationDomainId uint32
}

// Switch returns a fresh copy of the switch identity on every call
func (s *Store) Switch() *SwitchInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sw := s.switchInfo
	return &sw
}

// Collectors returns a copy of the configured collectors. The order is the reverse of the
// order in the file.
func (s *Store) Collectors() []Collector {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Collector, len(s.collectors))
	copy(out, s.collectors)
	return out
}

// ExportInterval returns the configured daemon export period
func (s *Store) ExportInterval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d := s.exportInterval.Duration(); d > 0 {
		return d
	}
	return DefaultExportInterval
}

// MetricsAddress returns the listen address of the metrics endpoint, if configured
func (s *Store) MetricsAddress() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metricsAddress
}

// ObservationDomainId returns the observation domain of exported messages
func (s *Store) ObservationDomainId() uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.observationDomainId
}

func (s *Store) addCollector(c Collector) error {
	if !c.IPAddress.IsValid() && c.Hostname == "" {
		return fmt.Errorf("%w, collector %q", ErrMissingAddress, c.Name)
	}
	if c.Port == "" {
		c.Port = DefaultPort
	}
	if c.Transport == TransportUndefined {
		c.Transport = TransportUDP
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.collectors {
		if other.Key() == c.Key() && other.Network() == c.Network() {
			return fmt.Errorf("%w %q, %s over %s is already used by %q", ErrDuplicateCollector, c.Name, c.Key(), c.Network(), other.Name)
		}
	}
	s.collectors = append([]Collector{c}, s.collectors...)
	return nil
}

// Load parses the configuration file at path
func Load(ctx context.Context, path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	defer f.Close()
	return Parse(ctx, f)
}

var shared struct {
	once  sync.Once
	store *Store
	err   error
}

// Shared loads the configuration at path exactly once per process and returns the same
// result to every caller. The path of later calls is ignored.
func Shared(ctx context.Context, path string) (*Store, error) {
	shared.once.Do(func() {
		shared.store, shared.err = Load(ctx, path)
	})
	return shared.store, shared.err
}

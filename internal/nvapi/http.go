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

package nvapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zoomoid/nvipfix/internal/config"
	"github.com/zoomoid/nvipfix/internal/datetime"
	"github.com/zoomoid/nvipfix/internal/flow"
	"github.com/zoomoid/nvipfix/internal/importer"
	"github.com/zoomoid/nvipfix/internal/log"
)

const (
	connectionStatsPath = "vRest/connection-stats"

	defaultTimeout = 30 * time.Second
	// maxBodySize bounds the statistics document read from the switch
	maxBodySize = 64 << 20
)

// HTTPSource reads connection statistics from the switch's REST API
type HTTPSource struct {
	base     *url.URL
	login    string
	password string
	client   *http.Client
}

var _ Source = &HTTPSource{}

type HTTPOption func(*HTTPSource)

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		s.client = c
	}
}

// NewHTTPSource creates a source for the switch described by sw. A host without scheme is
// reached over https.
func NewHTTPSource(sw config.SwitchInfo, opts ...HTTPOption) (*HTTPSource, error) {
	if sw.Host == "" {
		return nil, ErrNoSwitchHost
	}
	host := sw.Host
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid switch-nvapi-host %q: %w", sw.Host, err)
	}

	s := &HTTPSource{
		base:     base,
		login:    sw.Login,
		password: sw.Password,
		client:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Records requests the connections of [start, end] and imports the response body
func (s *HTTPSource) Records(ctx context.Context, start, end datetime.Datetime) (*flow.List, error) {
	logger := log.FromContext(ctx, "component", "nvapi", "host", s.base.Host)

	u := s.base.JoinPath(connectionStatsPath)
	q := u.Query()
	q.Set("start-time", start.String())
	q.Set("end-time", end.String())
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if s.login != "" {
		req.SetBasicAuth(s.login, s.password)
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("%w as %q: %s", ErrAuth, s.login, res.Status)
	case res.StatusCode < 200 || res.StatusCode > 299:
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("unexpected response from switch api: %s", res.Status)
	}

	logger.V(1).Info("fetched connection statistics", "start", start.String(), "end", end.String())
	return importer.Import(ctx, io.LimitReader(res.Body, maxBodySize))
}

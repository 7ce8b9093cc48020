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
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/zoomoid/nvipfix/internal/config"
	"github.com/zoomoid/nvipfix/internal/datetime"
	"github.com/zoomoid/nvipfix/internal/flow"
	"github.com/zoomoid/nvipfix/internal/log"
)

func init() {
	log.SetLogger(logr.Discard())
}

var (
	windowStart = datetime.Datetime{Year: 2024, Month: 3, Day: 15, Hours: 10, Minutes: 30, HasValue: true}
	windowEnd   = datetime.Datetime{Year: 2024, Month: 3, Day: 15, Hours: 10, Minutes: 31, HasValue: true}
)

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vRest/connection-stats" {
			http.NotFound(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if s, e := r.URL.Query().Get("start-time"), r.URL.Query().Get("end-time"); s != "2024-03-15T10:30:00" || e != "2024-03-15T10:31:00" {
			http.Error(w, "bad window "+s+" "+e, http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"data": [{"vlan": 10, "proto": 6}, {"vlan": 11, "proto": 17}]}`))
	}))
	defer srv.Close()

	t.Run("records", func(t *testing.T) {
		src, err := NewHTTPSource(config.SwitchInfo{Host: srv.URL, Login: "admin", Password: "secret"})
		if err != nil {
			t.Fatal(err)
		}
		list, err := src.Records(context.Background(), windowStart, windowEnd)
		if err != nil {
			t.Fatal(err)
		}
		if list.Len() != 2 || list.At(1).Protocol != flow.ProtocolUDP {
			t.Errorf("unexpected records %+v", list.Records())
		}
	})

	t.Run("authentication", func(t *testing.T) {
		src, _ := NewHTTPSource(config.SwitchInfo{Host: srv.URL, Login: "admin", Password: "wrong"})
		if _, err := src.Records(context.Background(), windowStart, windowEnd); !errors.Is(err, ErrAuth) {
			t.Errorf("expected ErrAuth, found %v", err)
		}
	})

	t.Run("connect", func(t *testing.T) {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatal(err)
		}
		addr := l.Addr().String()
		l.Close()

		src, _ := NewHTTPSource(config.SwitchInfo{Host: "http://" + addr},
			WithHTTPClient(&http.Client{Timeout: time.Second}))
		if _, err := src.Records(context.Background(), windowStart, windowEnd); !errors.Is(err, ErrConnect) {
			t.Errorf("expected ErrConnect, found %v", err)
		}
	})
}

func TestNewHTTPSource(t *testing.T) {
	if _, err := NewHTTPSource(config.SwitchInfo{}); !errors.Is(err, ErrNoSwitchHost) {
		t.Errorf("expected ErrNoSwitchHost, found %v", err)
	}
	src, err := NewHTTPSource(config.SwitchInfo{Host: "10.0.0.10"})
	if err != nil {
		t.Fatal(err)
	}
	if src.base.Scheme != "https" || src.base.Host != "10.0.0.10" {
		t.Errorf("expected https://10.0.0.10, found %s", src.base)
	}
}

type fakeStreamer struct {
	stats []ConnStat
	err   error
}

func (f *fakeStreamer) ConnStats(_ context.Context, _, _ datetime.Datetime, fn func(ConnStat) error) error {
	for _, c := range f.stats {
		if err := fn(c); err != nil {
			return err
		}
	}
	return f.err
}

func TestStreamSource(t *testing.T) {
	started := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	stat := ConnStat{
		VlanId:           10,
		VxlanId:          5000,
		ClientSwitchPort: 17,
		ServerSwitchPort: 33,
		ToS:              46 << 2,
		Protocol:         6,
		EtherType:        0x0800,
		State:            "est",
		ClientMac:        net.HardwareAddr{0xaa, 0xbb, 0xcc, 0, 0, 1},
		ClientIP:         netip.MustParseAddr("::ffff:10.0.0.1"),
		ServerIP:         netip.MustParseAddr("10.0.0.2"),
		ClientPort:       49152,
		ServerPort:       443,
		BytesSent:        100,
		BytesReceived:    200,
		TotalBytes:       300,
		Started:          started.UnixMilli(),
		DurationNs:       int64(1500 * time.Millisecond),
		LatencyNs:        int64(250 * time.Microsecond),
	}

	list, err := NewStreamSource(&fakeStreamer{stats: []ConnStat{stat, {}}}).Records(context.Background(), windowStart, windowEnd)
	if err != nil {
		t.Fatal(err)
	}
	if list.Len() != 2 {
		t.Fatalf("expected 2 records, found %d", list.Len())
	}

	r := list.At(0)
	if r.DSCP != 46 || r.TCPControlBits != flow.TCPFlagACK || r.Layer2SegmentId != flow.Layer2SegmentId(flow.OverlayVxLAN, 5000) {
		t.Errorf("unexpected record %+v", r)
	}
	if r.InitiatorOctets != 100 || r.ResponderOctets != 200 || r.TransportOctetDeltaCount != 300 {
		t.Errorf("unexpected octet counters %+v", r)
	}
	if r.SourceIP.String() != "10.0.0.1" || r.DestinationIP.String() != "10.0.0.2" {
		t.Errorf("unexpected addresses %s %s", r.SourceIP, r.DestinationIP)
	}
	if !r.SourceMac.HasValue || r.DestinationMac.HasValue {
		t.Errorf("expected only the source mac address, found %s %s", r.SourceMac, r.DestinationMac)
	}
	if !r.FlowStart.Time().Equal(started) || r.FlowEnd.HasValue {
		t.Errorf("expected flow start %s and no flow end, found %s %s", started, r.FlowStart, r.FlowEnd)
	}
	if r.FlowDuration.Milliseconds() != 1500 || r.Latency.Microseconds() != 250 {
		t.Errorf("unexpected timespans %s %s", r.FlowDuration, r.Latency)
	}

	if empty := list.At(1); empty.SourceIP.HasValue || empty.FlowStart.HasValue || empty.Layer2SegmentId != 0 {
		t.Errorf("expected zero connection to yield absent fields, found %+v", empty)
	}

	failing := &fakeStreamer{stats: []ConnStat{stat}, err: errors.New("stream reset")}
	if list, err := NewStreamSource(failing).Records(context.Background(), windowStart, windowEnd); err == nil || list != nil {
		t.Errorf("expected stream error and no records, found %v", err)
	}
}

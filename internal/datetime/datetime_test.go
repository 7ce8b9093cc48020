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

package datetime

import (
	"testing"
	"time"
)

func withLocation(t *testing.T, loc *time.Location) {
	t.Helper()
	prev := SetLocation(loc)
	t.Cleanup(func() { SetLocation(prev) })
}

func TestParseISO8601(t *testing.T) {
	d := ParseISO8601("2024-03-15T10:30:00")
	want := Datetime{Year: 2024, Month: 3, Day: 15, Hours: 10, Minutes: 30, Seconds: 0, TZOffset: TimespanFromSeconds(0), HasValue: true}
	if d != want {
		t.Fatalf("expected %+v, found %+v", want, d)
	}

	// leading zeros are decimal, not octal
	if d := ParseISO8601("2024-08-09T08:09:09"); !d.HasValue || d.Month != 8 || d.Day != 9 || d.Hours != 8 {
		t.Errorf("expected 2024-08-09T08:09:09, found %+v", d)
	}

	for _, s := range []string{
		"garbage",
		"",
		"2024-03-15",
		"2024-03-15T10:30",
		"2024-03T10:30:00",
		"2024-03-15Tab:30:00",
		"2024-03-15T10:30:00:01",
	} {
		t.Run(s, func(t *testing.T) {
			if d := ParseISO8601(s); d.HasValue {
				t.Errorf("expected no value for %q, found %+v", s, d)
			}
		})
	}
}

func TestCTimeRoundTrip(t *testing.T) {
	locations := []*time.Location{
		time.UTC,
		time.FixedZone("UTC+2", 2*60*60),
		time.FixedZone("UTC-5:30", -(5*60*60 + 30*60)),
	}
	dates := []Datetime{
		ParseISO8601("2024-03-15T10:30:00"),
		ParseISO8601("2000-02-29T23:59:59"),
		ParseISO8601("1999-12-31T00:00:00"),
		ParseISO8601("2038-01-19T03:14:07"),
	}

	for _, loc := range locations {
		t.Run(loc.String(), func(t *testing.T) {
			withLocation(t, loc)
			_, wantOffset := time.Now().In(loc).Zone()

			for _, d := range dates {
				got := FromCTime(d.CTime())
				if got.Year != d.Year || got.Month != d.Month || got.Day != d.Day ||
					got.Hours != d.Hours || got.Minutes != d.Minutes || got.Seconds != d.Seconds {
					t.Errorf("expected %s, found %s", d, got)
				}
				if s := got.TZOffset.Seconds(); s != int64(wantOffset) {
					t.Errorf("expected offset %ds, found %ds", wantOffset, s)
				}
			}
		})
	}
}

func TestCTimeAbsent(t *testing.T) {
	var d *Datetime
	if c := d.CTime(); c != -1 {
		t.Errorf("expected -1 for nil datetime, found %d", c)
	}
	if c := (&Datetime{}).CTime(); c != -1 {
		t.Errorf("expected -1 for absent datetime, found %d", c)
	}
}

func TestCTimeUTC(t *testing.T) {
	withLocation(t, time.UTC)
	d := ParseISO8601("1970-01-02T00:00:00")
	if c := d.CTime(); c != 86400 {
		t.Errorf("expected 86400, found %d", c)
	}
}

func TestAddTimespan(t *testing.T) {
	withLocation(t, time.UTC)

	d := ParseISO8601("2024-02-28T23:59:30")
	sec := d.AddTimespan(TimespanFromMicroseconds(90_999_999))

	want := ParseISO8601("2024-02-29T00:01:00")
	if sec != want.CTime() {
		t.Errorf("expected %d, found %d", want.CTime(), sec)
	}
	if d.Day != 29 || d.Month != 2 || d.Hours != 0 || d.Minutes != 1 || d.Seconds != 0 {
		t.Errorf("expected fields to be normalized to %s, found %s", want, d)
	}

	neg := ParseISO8601("2024-03-01T00:00:10")
	neg.AddTimespan(TimespanFromSeconds(-20))
	if neg.String() != "2024-02-29T23:59:50" {
		t.Errorf("expected 2024-02-29T23:59:50, found %s", neg)
	}

	var absent Datetime
	if r := absent.AddTimespan(TimespanFromSeconds(1)); r != -1 {
		t.Errorf("expected -1 for absent datetime, found %d", r)
	}
}

func TestSecondsSinceEpoch(t *testing.T) {
	withLocation(t, time.FixedZone("UTC+1", 60*60))

	d := ParseISO8601("1970-01-01T01:00:00")
	if s := d.SecondsSinceEpoch(1970, 1); s != 3600 {
		t.Errorf("expected 3600, found %d", s)
	}

	d = ParseISO8601("2024-03-15T10:30:00")
	if s := d.SecondsSinceEpoch(2024, 3); s != 14*86400+10*3600+30*60 {
		t.Errorf("expected %d, found %d", 14*86400+10*3600+30*60, s)
	}

	if s := (&Datetime{}).SecondsSinceEpoch(1970, 1); s != 0 {
		t.Errorf("expected 0 for absent datetime, found %d", s)
	}
}

func TestTimespanAccessors(t *testing.T) {
	ts := TimespanFromMicroseconds(125_500_250)
	cases := []struct {
		name string
		fn   func(*Timespan) int64
		want int64
	}{
		{"minutes", (*Timespan).Minutes, 2},
		{"seconds", (*Timespan).Seconds, 125},
		{"milliseconds", (*Timespan).Milliseconds, 125_500},
		{"microseconds", (*Timespan).Microseconds, 125_500_250},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(&ts); got != tc.want {
				t.Errorf("expected %d, found %d", tc.want, got)
			}
			if got := tc.fn(nil); got != 0 {
				t.Errorf("expected 0 for nil timespan, found %d", got)
			}
			if got := tc.fn(&Timespan{Micros: 42}); got != 0 {
				t.Errorf("expected 0 for absent timespan, found %d", got)
			}
		})
	}

	if d := TimespanFromDuration(1500 * time.Millisecond).Duration(); d != 1500*time.Millisecond {
		t.Errorf("expected 1.5s, found %s", d)
	}
}

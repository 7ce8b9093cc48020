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

// Package datetime converts between broken-down local calendar times, microsecond
// timespans and epoch seconds.
//
// All conversions that depend on the local time zone are serialized by a package-level
// mutex, and use the location set with SetLocation (time.Local by default).
package datetime

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/zoomoid/nvipfix/internal/strtok"
)

var (
	conversionMu sync.Mutex
	location     = time.Local
)

// SetLocation replaces the location used as "local time" by all conversions. It returns
// the previous location.
func SetLocation(loc *time.Location) *time.Location {
	conversionMu.Lock()
	defer conversionMu.Unlock()
	prev := location
	if loc == nil {
		loc = time.Local
	}
	location = loc
	return prev
}

// Datetime is a broken-down calendar time together with the UTC offset it was observed
// with. Month and Day are 1-based.
type Datetime struct {
	Year         int
	Month        int
	Day          int
	Hours        int
	Minutes      int
	Seconds      int
	Milliseconds int

	TZOffset Timespan

	HasValue bool
}

// ParseISO8601 parses exactly YYYY-MM-DDTHH:MM:SS. Any other shape yields a Datetime with
// HasValue unset. The result has no sub-second part and a zero UTC offset.
func ParseISO8601(s string) Datetime {
	parts, _ := strtok.Split(s, "T")
	if len(parts) != 2 {
		return Datetime{}
	}
	date, _ := strtok.Split(parts[0], "-")
	if len(date) != 3 {
		return Datetime{}
	}
	clock, _ := strtok.Split(parts[1], ":")
	if len(clock) != 3 {
		return Datetime{}
	}

	var v [6]int
	for i, p := range append(date, clock...) {
		n, err := strconv.ParseUint(p, 10, 31)
		if err != nil {
			return Datetime{}
		}
		v[i] = int(n)
	}

	return Datetime{
		Year:     v[0],
		Month:    v[1],
		Day:      v[2],
		Hours:    v[3],
		Minutes:  v[4],
		Seconds:  v[5],
		TZOffset: TimespanFromSeconds(0),
		HasValue: true,
	}
}

// CTime interprets the fields as local wall clock time and returns the epoch seconds of
// that instant. Out-of-range fields are normalized. A nil or absent Datetime yields -1.
func (d *Datetime) CTime() int64 {
	if d == nil || !d.HasValue {
		return -1
	}
	conversionMu.Lock()
	defer conversionMu.Unlock()
	return d.local().Unix()
}

// local must be called with conversionMu held
func (d *Datetime) local() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Hours, d.Minutes, d.Seconds, d.Milliseconds*int(time.Millisecond), location)
}

// FromCTime decomposes epoch seconds into local time fields. The UTC offset is the
// difference between the local fields read as UTC and the instant itself.
func FromCTime(sec int64) Datetime {
	conversionMu.Lock()
	defer conversionMu.Unlock()
	return fromInstant(time.Unix(sec, 0))
}

// FromTime is FromCTime with millisecond precision
func FromTime(t time.Time) Datetime {
	conversionMu.Lock()
	defer conversionMu.Unlock()
	return fromInstant(t)
}

func Now() Datetime {
	return FromTime(time.Now())
}

// fromInstant must be called with conversionMu held
func fromInstant(t time.Time) Datetime {
	l := t.In(location)
	asUTC := time.Date(l.Year(), l.Month(), l.Day(), l.Hour(), l.Minute(), l.Second(), 0, time.UTC)
	offset := asUTC.Unix() - t.Unix()

	return Datetime{
		Year:         l.Year(),
		Month:        int(l.Month()),
		Day:          l.Day(),
		Hours:        l.Hour(),
		Minutes:      l.Minute(),
		Seconds:      l.Second(),
		Milliseconds: l.Nanosecond() / int(time.Millisecond),
		TZOffset:     TimespanFromSeconds(offset),
		HasValue:     true,
	}
}

// AddTimespan adds the whole seconds of ts to d, normalizes the result in local time and
// stores it back into d. It returns the new epoch seconds, or -1 for an absent Datetime.
func (d *Datetime) AddTimespan(ts Timespan) int64 {
	if d == nil || !d.HasValue {
		return -1
	}
	conversionMu.Lock()
	defer conversionMu.Unlock()

	shifted := *d
	shifted.Seconds += int(ts.Seconds())
	t := shifted.local()

	*d = fromInstant(t)
	return t.Unix()
}

// SecondsSinceEpoch returns the seconds elapsed between local midnight of the first day of
// the given epoch month and d, truncated to 32 bits. Absent values count as 0.
func (d *Datetime) SecondsSinceEpoch(epochYear int, epochMonth int) uint32 {
	if d == nil || !d.HasValue {
		return 0
	}
	conversionMu.Lock()
	defer conversionMu.Unlock()

	epoch := time.Date(epochYear, time.Month(epochMonth), 1, 0, 0, 0, 0, location)
	return uint32(d.local().Unix() - epoch.Unix())
}

// Time returns the instant described by d in local time, or the zero time
func (d Datetime) Time() time.Time {
	if !d.HasValue {
		return time.Time{}
	}
	conversionMu.Lock()
	defer conversionMu.Unlock()
	return d.local()
}

func (d Datetime) String() string {
	if !d.HasValue {
		return "<none>"
	}
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", d.Year, d.Month, d.Day, d.Hours, d.Minutes, d.Seconds)
}

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
	"fmt"
	"time"
)

// Timespan is a signed duration with microsecond resolution. A zero Timespan carries no
// value.
type Timespan struct {
	Micros   int64
	HasValue bool
}

func TimespanFromMicroseconds(us int64) Timespan {
	return Timespan{Micros: us, HasValue: true}
}

func TimespanFromSeconds(s int64) Timespan {
	return Timespan{Micros: s * int64(time.Second/time.Microsecond), HasValue: true}
}

func TimespanFromDuration(d time.Duration) Timespan {
	return Timespan{Micros: d.Microseconds(), HasValue: true}
}

// The unit accessors below return 0 for a nil or absent Timespan instead of signaling the
// absence. Callers that need to distinguish must check HasValue themselves.

func (t *Timespan) Minutes() int64 {
	if t == nil || !t.HasValue {
		return 0
	}
	return t.Micros / int64(time.Minute/time.Microsecond)
}

func (t *Timespan) Seconds() int64 {
	if t == nil || !t.HasValue {
		return 0
	}
	return t.Micros / int64(time.Second/time.Microsecond)
}

func (t *Timespan) Milliseconds() int64 {
	if t == nil || !t.HasValue {
		return 0
	}
	return t.Micros / int64(time.Millisecond/time.Microsecond)
}

func (t *Timespan) Microseconds() int64 {
	if t == nil || !t.HasValue {
		return 0
	}
	return t.Micros
}

// Duration converts the timespan into a time.Duration, which is 0 for an absent timespan
func (t Timespan) Duration() time.Duration {
	if !t.HasValue {
		return 0
	}
	return time.Duration(t.Micros) * time.Microsecond
}

func (t Timespan) String() string {
	if !t.HasValue {
		return "<none>"
	}
	return fmt.Sprintf("%dus", t.Micros)
}

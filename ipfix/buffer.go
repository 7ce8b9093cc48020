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

package ipfix

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/zoomoid/nvipfix/iana/version"
)

const (
	// DefaultMaxMessageSize keeps messages within a single unfragmented datagram on
	// common path MTUs
	DefaultMaxMessageSize = 1420

	// MaxMessageSize is the largest length representable in a message header
	MaxMessageSize = 65535
)

// Buffer collects records into a message for a session and writes it on Emit. A Buffer is
// not safe for concurrent use.
type Buffer struct {
	session *Session
	w       io.Writer

	maxSize int
	now     func() time.Time

	sets    []*Set
	length  int
	records int
}

type BufferOption func(*Buffer)

// WithMaxMessageSize limits the length of emitted messages. Appending a record that does
// not fit emits the pending message first.
func WithMaxMessageSize(n int) BufferOption {
	return func(b *Buffer) {
		if n > MaxMessageSize {
			n = MaxMessageSize
		}
		b.maxSize = n
	}
}

// WithClock sets the source of message export times
func WithClock(now func() time.Time) BufferOption {
	return func(b *Buffer) {
		b.now = now
	}
}

func NewBuffer(session *Session, w io.Writer, opts ...BufferOption) *Buffer {
	b := &Buffer{
		session: session,
		w:       w,
		maxSize: DefaultMaxMessageSize,
		now:     time.Now,
		length:  messageHeaderLength,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AppendTemplates adds all templates of the session to the pending message
func (b *Buffer) AppendTemplates() error {
	for _, t := range b.session.Templates() {
		if err := b.add(TemplateSetId, t); err != nil {
			return err
		}
	}
	return nil
}

// Append adds a data record to the pending message
func (b *Buffer) Append(rec *DataRecord) error {
	t, err := b.session.Template(rec.TemplateId)
	if err != nil {
		return err
	}
	if len(rec.Fields) != len(t.Fields) || rec.Length() != t.DataLength() {
		return fmt.Errorf("%w %d", ErrRecordMismatch, rec.TemplateId)
	}
	if err := b.add(rec.TemplateId, rec); err != nil {
		return err
	}
	b.records++
	return nil
}

func (b *Buffer) add(setId uint16, r record) error {
	need := r.Length()
	last := b.last()
	if last == nil || last.Id != setId {
		need += setHeaderLength
	}
	if messageHeaderLength+setHeaderLength+r.Length() > b.maxSize {
		EncoderErrors.Inc()
		return fmt.Errorf("%w, %d bytes", ErrMessageTooLarge, r.Length())
	}
	if b.length+need > b.maxSize {
		if err := b.Emit(); err != nil {
			return err
		}
		last, need = nil, r.Length()+setHeaderLength
	}
	if last == nil || last.Id != setId {
		last = newSet(setId)
		b.sets = append(b.sets, last)
	}
	last.add(r)
	b.length += need

	if setId == TemplateSetId {
		EncodedRecords.WithLabelValues("template").Inc()
	} else {
		EncodedRecords.WithLabelValues("data").Inc()
	}
	return nil
}

func (b *Buffer) last() *Set {
	if len(b.sets) == 0 {
		return nil
	}
	return b.sets[len(b.sets)-1]
}

// Pending returns the number of data records in the pending message
func (b *Buffer) Pending() int {
	return b.records
}

// Emit writes the pending message with a single call to Write. Emitting an empty buffer
// is a no-op. The pending message is discarded even if writing fails, in which case its
// data records do not count towards the sequence number.
func (b *Buffer) Emit() error {
	if len(b.sets) == 0 {
		return nil
	}
	defer b.reset()

	msg := &Message{
		Version:             version.IPFIX,
		Length:              uint16(b.length),
		ExportTime:          uint32(b.now().Unix()),
		SequenceNumber:      b.session.SequenceNumber(),
		ObservationDomainId: b.session.ObservationDomainId(),
		Sets:                b.sets,
	}

	var buf bytes.Buffer
	buf.Grow(b.length)
	if _, err := msg.Encode(&buf); err != nil {
		EncoderErrors.Inc()
		return err
	}
	n, err := b.w.Write(buf.Bytes())
	if err != nil {
		EncoderErrors.Inc()
		return fmt.Errorf("failed to write message: %w", err)
	}
	b.session.advance(b.records)
	EncodedMessages.Inc()
	EncodedBytes.Add(float64(n))
	return nil
}

func (b *Buffer) reset() {
	b.sets = nil
	b.length = messageHeaderLength
	b.records = 0
}

// Copyright 2024-2026 The fmtkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package trace counts construction and solve events.
//
// A [Collector] is injected explicitly wherever instrumentation is wanted and
// defaults to a no-op; there is no process-wide sink. [Counts] accumulates
// totals in memory, and [NewLogCollector] streams events through a leveled
// logger for debugging solver behavior.
package trace

import (
	"io"

	"github.com/charmbracelet/log"
)

const (
	// FragmentBuilt counts fragments created by a builder.
	FragmentBuilt Event = iota
	// EagerPin counts fragments that self-pinned before search.
	EagerPin
	// CandidateEnqueued counts partial solutions pushed onto the frontier.
	CandidateEnqueued
	// CandidatePopped counts partial solutions taken off the frontier.
	CandidatePopped
	// SolutionFound counts complete legal solutions considered.
	SolutionFound

	eventCount
)

// Event identifies one countable occurrence.
type Event uint8

// String implements [fmt.Stringer].
func (e Event) String() string {
	switch e {
	case FragmentBuilt:
		return "fragment built"
	case EagerPin:
		return "eager pin"
	case CandidateEnqueued:
		return "candidate enqueued"
	case CandidatePopped:
		return "candidate popped"
	case SolutionFound:
		return "solution found"
	default:
		return "unknown event"
	}
}

// Collector receives counted events. Implementations need not be safe for
// concurrent use; the layout engine is single-threaded.
type Collector interface {
	Count(event Event)
}

// Nop returns a collector that discards everything.
func Nop() Collector { return nopCollector{} }

type nopCollector struct{}

func (nopCollector) Count(Event) {}

// Counts accumulates event totals in memory. The zero value is ready to use.
type Counts struct {
	counts [eventCount]uint64
}

// Count implements [Collector].
func (c *Counts) Count(event Event) {
	if int(event) < len(c.counts) {
		c.counts[event]++
	}
}

// Get returns the total for one event.
func (c *Counts) Get(event Event) uint64 {
	if int(event) >= len(c.counts) {
		return 0
	}
	return c.counts[event]
}

// NewLogCollector returns a collector that logs every event at debug level.
func NewLogCollector(w io.Writer) Collector {
	return &logCollector{
		logger: log.NewWithOptions(w, log.Options{
			Level: log.DebugLevel,
		}),
	}
}

type logCollector struct {
	logger *log.Logger
}

// Count implements [Collector].
func (c *logCollector) Count(event Event) {
	c.logger.Debug("layout event", "event", event.String())
}

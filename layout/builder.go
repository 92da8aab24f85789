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

package layout

import (
	"github.com/fmtkit/fmtkit/trace"
)

// Builder constructs fragments, reporting each construction to an optional
// [trace.Collector].
type Builder struct {
	collector trace.Collector
}

// NewBuilder returns a builder. A nil collector counts nothing.
func NewBuilder(collector trace.Collector) *Builder {
	if collector == nil {
		collector = trace.Nop()
	}
	return &Builder{collector: collector}
}

// Text returns a leaf fragment that renders text literally. Embedded
// newlines become hard breaks.
func (b *Builder) Text(text string) *Text {
	b.collector.Count(trace.FragmentBuilt)
	return newText(text)
}

// Seq returns a stateless concatenation of children.
func (b *Builder) Seq(children ...Fragment) *Seq {
	b.collector.Count(trace.FragmentBuilt)
	return newSeq(children)
}

// List returns a delimited, comma-separated list of elements.
func (b *Builder) List(open, close string, elements ...Fragment) *List {
	b.collector.Count(trace.FragmentBuilt)
	return newList(open, close, elements)
}

// Infix returns an operand sequence joined by operator.
func (b *Builder) Infix(operator string, operands ...Fragment) *Infix {
	b.collector.Count(trace.FragmentBuilt)
	return newInfix(operator, operands)
}

// Chain returns a dotted call chain. Panics if calls is empty: a receiver
// with no calls is never wrapped in a chain.
func (b *Builder) Chain(target Fragment, calls []Call, opts ...ChainOption) *Chain {
	b.collector.Count(trace.FragmentBuilt)
	var config chainConfig
	for _, opt := range opts {
		opt(&config)
	}
	return newChain(target, calls, config.cascade, config.policy)
}

type chainConfig struct {
	cascade bool
	policy  TargetPolicy
}

// ChainOption configures [Builder.Chain].
type ChainOption func(*chainConfig)

// Cascade marks the chain as a sequence of operations on one receiver
// without repeating the receiver. Cascades split at cost zero and indent
// with [IndentCascade].
func Cascade() ChainOption {
	return func(c *chainConfig) { c.cascade = true }
}

// WithTargetPolicy selects the chain's target-breaking policy.
func WithTargetPolicy(policy TargetPolicy) ChainOption {
	return func(c *chainConfig) { c.policy = policy }
}

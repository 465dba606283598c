// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for matrix construction.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state; random fills draw from a
//     seeded generator unless the caller supplies a Source.
//   - No dead switches: each option impacts New and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - Fill applies to stored positions inside the shape only; storage slots
//     outside the shape (full-storage triangular layouts, band corners) stay
//     zero so kernels that read whole columns see structural zeros.
//   - FillNone skips the fill pass entirely. A freshly allocated buffer is
//     zero anyway; Wrap (mapped files) relies on FillNone to keep existing data.
package matrix

import (
	"math"
	"math/rand/v2"
)

// ---------- Fill modes ----------

// Fill selects how New initializes a matrix.
type Fill uint8

const (
	FillNone   Fill = iota // leave the buffer untouched
	FillZero               // every stored element = 0
	FillOne                // every stored element = 1
	FillValue              // every stored element = WithValue(v)
	FillRandom             // every stored element = max * U[0,1)
	FillUnit               // zero, then the diagonal = 1
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultFill is the fill used when no fill option is given.
	DefaultFill = FillZero

	// DefaultFillValue is the value used by FillValue when WithValue is absent.
	DefaultFillValue = 0.0

	// DefaultRandomMax scales FillRandom draws: values lie in [0, max).
	DefaultRandomMax = 1.0

	// DefaultSeed seeds the PCG generator behind FillRandom.
	DefaultSeed uint64 = 0x5eed
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicFillInvalid      = "matrix: WithFill: unknown fill mode"
	panicValueInvalid     = "matrix: WithValue: value must be finite"
	panicRandomMaxInvalid = "matrix: WithRandom: max must be finite and > 0"
	panicSourceNil        = "matrix: WithSource: source must be non-nil"
)

// Source is the random contract of FillRandom: Float64 returns a value in [0,1).
// *rand.Rand from math/rand and math/rand/v2 both satisfy it.
type Source interface {
	Float64() float64
}

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	fill      Fill    // DefaultFill
	value     float64 // DefaultFillValue
	randomMax float64 // DefaultRandomMax
	seed      uint64  // DefaultSeed
	src       Source  // nil ⇒ PCG(seed)
}

// Fill returns the effective fill mode.
func (o Options) Fill() Fill { return o.fill }

// Value returns the FillValue constant.
func (o Options) Value() float64 { return o.value }

// RandomMax returns the FillRandom scale.
func (o Options) RandomMax() float64 { return o.randomMax }

// ---------- Constructors (WithX) ----------

// WithFill selects the fill mode.
// Panics on an unknown mode.
func WithFill(f Fill) Option {
	if f > FillUnit {
		panic(panicFillInvalid)
	}

	return func(o *Options) { o.fill = f }
}

// WithValue fills with the constant v (implies FillValue).
// Panics when v is NaN or ±Inf.
func WithValue(v float64) Option {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic(panicValueInvalid)
	}

	return func(o *Options) {
		o.fill = FillValue
		o.value = v
	}
}

// WithRandom fills with max*U[0,1) (implies FillRandom). The max-magnitude
// argument is optional and defaults to DefaultRandomMax.
//
// Notes:
//   - Integer element types truncate the draw toward zero.
//
// Complexity:
//   - Time O(1), Space O(1).
func WithRandom(maxValue ...float64) Option {
	m := DefaultRandomMax
	if len(maxValue) > 0 {
		m = maxValue[0]
	}
	if math.IsNaN(m) || math.IsInf(m, 0) || m <= 0 {
		panic(panicRandomMaxInvalid)
	}

	return func(o *Options) {
		o.fill = FillRandom
		o.randomMax = m
	}
}

// WithSource replaces the random generator used by FillRandom.
func WithSource(src Source) Option {
	if src == nil {
		panic(panicSourceNil)
	}

	return func(o *Options) { o.src = src }
}

// WithSeed reseeds the default PCG generator (ignored when WithSource is set).
func WithSeed(seed uint64) Option {
	return func(o *Options) { o.seed = seed }
}

// NewMatrixOptions returns the effective configuration for opts.
// Stable for a given sequence of opts; mostly useful in tests.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// defaultOptions returns the documented defaults (single source of truth).
func defaultOptions() Options {
	return Options{
		fill:      DefaultFill,
		value:     DefaultFillValue,
		randomMax: DefaultRandomMax,
		seed:      DefaultSeed,
	}
}

// gatherOptions applies user-provided Option setters on top of defaults and
// finalizes derived invariants.
//
// Implementation:
//   - Stage 1: start from defaultOptions().
//   - Stage 2: apply setters in order (last-writer-wins).
//   - Stage 3: finalizeOptions.
//
// Complexity:
//   - Time O(k), Space O(1) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}
	finalizeOptions(&o)

	return o
}

// finalizeOptions enforces derived invariants in exactly one place.
// A random fill without an explicit Source gets a PCG generator seeded from
// o.seed, so two New calls with the same options produce the same matrix.
func finalizeOptions(o *Options) {
	if o.src == nil && o.fill == FillRandom {
		o.src = rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15))
	}
}

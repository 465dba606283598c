// SPDX-License-Identifier: MIT
// Package matrix: half-open index ranges and their intersection.
//
// Purpose:
//   - Describe the contiguous window of logically non-zero indices of a row,
//     column or vector.
//   - Intersect two windows so that dot products only touch the overlap.
//
// Determinism & Performance:
//   - All operations are O(1) and allocation-free.

package matrix

import "iter"

// Span is the half-open ascending index range [Lo, Hi).
// A Span with Hi <= Lo is empty; MakeSpan never produces an inverted one.
type Span struct {
	Lo int // first index
	Hi int // one past the last index
}

// MakeSpan returns [lo, hi), clamping hi up to lo so the result is never inverted.
func MakeSpan(lo, hi int) Span {
	if hi < lo {
		hi = lo
	}

	return Span{Lo: lo, Hi: hi}
}

// Len returns the number of indices in s.
func (s Span) Len() int {
	if s.Hi <= s.Lo {
		return 0
	}

	return s.Hi - s.Lo
}

// Empty reports whether s holds no index.
func (s Span) Empty() bool { return s.Hi <= s.Lo }

// Contains reports whether i lies in s.
func (s Span) Contains(i int) bool { return i >= s.Lo && i < s.Hi }

// All yields the indices of s in ascending order.
func (s Span) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := s.Lo; i < s.Hi; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// Intersection is the overlap of two spans plus the alignment each side needs.
//
// DropA (DropB) is the number of leading elements of the first (second) span
// that fall before the overlap; a contiguous buffer holding the first span
// starts the overlap at position DropA.
type Intersection struct {
	Span
	DropA int
	DropB int
}

// Intersect computes the overlap of a and b.
//
// Implementation:
//   - Stage 1: i0 = max(a.Lo, b.Lo), i1 = min(a.Hi, b.Hi).
//   - Stage 2: clamp to empty when i1 <= i0.
//   - Stage 3: drops are the distances from each Lo to i0.
//
// Complexity:
//   - Time O(1), Space O(1).
func Intersect(a, b Span) Intersection {
	lo := max(a.Lo, b.Lo)
	hi := min(a.Hi, b.Hi)

	return Intersection{
		Span:  MakeSpan(lo, hi),
		DropA: lo - a.Lo,
		DropB: lo - b.Lo,
	}
}

// Hull returns the smallest span covering both a and b; an empty side is ignored.
func Hull(a, b Span) Span {
	switch {
	case a.Empty():
		return b
	case b.Empty():
		return a
	default:
		return Span{Lo: min(a.Lo, b.Lo), Hi: max(a.Hi, b.Hi)}
	}
}

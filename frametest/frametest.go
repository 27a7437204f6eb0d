// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package frametest compares two frame streams in lockstep: typically a
stimulus under test against an independent reference implementation
configured with the same parameters and seed. Comparison is exact:
pixels must be bit-identical and params equal.
*/
package frametest

import (
	"fmt"

	"github.com/CompCogNeuro/vstim/stimuli"
)

// Source is any stream of frames
type Source interface {
	Next() stimuli.Frame
}

// FrameFunc adapts a function to a Source, for writing reference streams as closures
type FrameFunc func() stimuli.Frame

func (ff FrameFunc) Next() stimuli.Frame { return ff() }

// Mismatch describes the first difference between two streams
type Mismatch struct {

	// index of the first differing frame
	Index int

	// frames from each stream at Index
	A, B stimuli.Frame

	// first differing pixel, -1 if the pixels are equal or differ in shape
	Row, Col int
}

func (mm *Mismatch) String() string {
	ar, ac := mm.A.Dims()
	br, bc := mm.B.Dims()
	switch {
	case ar != br || ac != bc:
		return fmt.Sprintf("frame %d: shape %dx%d != %dx%d", mm.Index, ar, ac, br, bc)
	case mm.Row >= 0:
		return fmt.Sprintf("frame %d: pixel (%d, %d) %v != %v", mm.Index, mm.Row, mm.Col, mm.A.Pixels.At(mm.Row, mm.Col), mm.B.Pixels.At(mm.Row, mm.Col))
	}
	return fmt.Sprintf("frame %d: params %v != %v", mm.Index, mm.A.Params, mm.B.Params)
}

// Compare pulls up to n frames from each stream and returns the first
// mismatch, or nil if all n frames are equal. Both streams are advanced
// by the same number of frames, stopping at the first mismatch.
func Compare(a, b Source, n int) *Mismatch {
	for i := 0; i < n; i++ {
		fa := a.Next()
		fb := b.Next()
		if fa.Equal(fb) {
			continue
		}
		mm := &Mismatch{Index: i, A: fa, B: fb, Row: -1, Col: -1}
		mm.Row, mm.Col = firstDiff(fa, fb)
		return mm
	}
	return nil
}

// FramesEqual returns true if the first n frames of both streams are equal
func FramesEqual(a, b Source, n int) bool {
	return Compare(a, b, n) == nil
}

// firstDiff returns the first pixel that differs, or -1, -1
func firstDiff(a, b stimuli.Frame) (row, col int) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return -1, -1
	}
	for r := 0; r < ar; r++ {
		for c := 0; c < ac; c++ {
			if a.Pixels.At(r, c) != b.Pixels.At(r, c) {
				return r, c
			}
		}
	}
	return -1, -1
}

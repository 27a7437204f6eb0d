// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stimuli

import (
	"gonum.org/v1/gonum/mat"
)

// Null is a blank screen at background luminance, used to record
// spontaneous activity.
type Null struct {
	Base

	blank Frame
}

// NewNull returns a blank stimulus with the given parameters
func NewNull(bs Base) (*Null, error) {
	nl := &Null{Base: bs}
	if err := nl.Validate(); err != nil {
		return nil, err
	}
	sh := nl.Sheet()
	if err := sh.Validate(); err != nil {
		return nil, err
	}
	rows, cols := sh.Shape()
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = nl.BackgroundLuminance
	}
	nl.blank = Frame{Pixels: mat.NewDense(rows, cols, data), Params: []float64{0}}
	return nl, nil
}

// Next returns the same blank frame every time
func (nl *Null) Next() Frame { return nl.blank }

var _ VisualStimulus = (*Null)(nil)

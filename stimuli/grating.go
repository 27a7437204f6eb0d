// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stimuli

import (
	"math"

	"github.com/CompCogNeuro/vstim/sheetcoords"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// GratingParams are the parameters of a sinusoidal grating
type GratingParams struct {

	// orientation of the grating bars in radians
	Orientation float64 `desc:"orientation of the grating bars in radians"`

	// spatial frequency in cycles per degree
	SpatialFrequency float64 `desc:"spatial frequency in cycles per degree"`

	// temporal frequency in Hz -- the phase advances 2 pi TemporalFrequency per second
	TemporalFrequency float64 `desc:"temporal frequency in Hz -- the phase advances 2 pi TemporalFrequency per second"`

	// Michelson contrast in percent
	Contrast float64 `min:"0" max:"100" desc:"Michelson contrast in percent"`
}

func (gp *GratingParams) Defaults() {
	gp.Orientation = 0
	gp.SpatialFrequency = 0.8
	gp.TemporalFrequency = 2
	gp.Contrast = 100
}

// FullfieldDriftingSinusoidalGrating covers the whole visual field with a
// sinusoidal grating drifting orthogonally to its bars.
type FullfieldDriftingSinusoidalGrating struct {
	Base

	// grating parameters
	Grating GratingParams `desc:"grating parameters"`

	phase float64
	sheet *sheetcoords.Sheet
}

// NewFullfieldDriftingSinusoidalGrating returns a grating starting at phase 0
func NewFullfieldDriftingSinusoidalGrating(bs Base, gp GratingParams) (*FullfieldDriftingSinusoidalGrating, error) {
	gr := &FullfieldDriftingSinusoidalGrating{Base: bs, Grating: gp}
	if err := gr.Validate(); err != nil {
		return nil, err
	}
	if gp.Contrast < 0 || gp.Contrast > 100 {
		return nil, errors.Wrapf(ErrConfiguration, "contrast %g must be within 0..100", gp.Contrast)
	}
	gr.sheet = gr.Sheet()
	if err := gr.sheet.Validate(); err != nil {
		return nil, err
	}
	return gr, nil
}

// Phase returns the phase of the next frame
func (gr *FullfieldDriftingSinusoidalGrating) Phase() float64 { return gr.phase }

// Next renders the grating at the current phase, then advances the
// phase by one frame. Params holds the rendered phase.
func (gr *FullfieldDriftingSinusoidalGrating) Next() Frame {
	rows, cols := gr.sheet.Shape()
	gp := &gr.Grating
	bg := gr.BackgroundLuminance
	offset := bg * (100 - gp.Contrast) / 100
	scale := 2 * bg * gp.Contrast / 100
	sin, cos := math.Sincos(gp.Orientation)
	freq := 2 * math.Pi * gp.SpatialFrequency
	pix := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x, y := gr.sheet.MatrixToSheet(r, c)
			yr := -x*sin + y*cos
			pix.Set(r, c, offset+scale*(0.5+0.5*math.Sin(freq*yr+gr.phase)))
		}
	}
	fr := Frame{Pixels: pix, Params: []float64{gr.phase}}
	gr.phase += 2 * math.Pi * (gr.FrameDuration / 1000) * gp.TemporalFrequency
	return fr
}

var _ VisualStimulus = (*FullfieldDriftingSinusoidalGrating)(nil)

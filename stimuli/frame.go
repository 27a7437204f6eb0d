// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stimuli

import (
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Frame is one rendered stimulus frame: a luminance matrix (rows = Y
// from the top, cols = X from the left) and a list of per-frame
// parameters, e.g., the grating phase. Frames handed out by a stimulus
// must be treated as read-only, as held frames share their matrix.
type Frame struct {

	// luminance values in cd/m^2
	Pixels *mat.Dense

	// per-frame stimulus parameters
	Params []float64
}

// Dims returns the rows and columns of the frame
func (fr Frame) Dims() (rows, cols int) {
	if fr.Pixels == nil {
		return 0, 0
	}
	return fr.Pixels.Dims()
}

// Equal returns true if both frames have bit-identical pixels and equal params
func (fr Frame) Equal(o Frame) bool {
	if fr.Pixels == nil || o.Pixels == nil {
		return fr.Pixels == o.Pixels && floats.Equal(fr.Params, o.Params)
	}
	ar, ac := fr.Pixels.Dims()
	br, bc := o.Pixels.Dims()
	if ar != br || ac != bc {
		return false
	}
	return mat.Equal(fr.Pixels, o.Pixels) && floats.Equal(fr.Params, o.Params)
}

// Clone returns a deep copy that does not share storage with fr
func (fr Frame) Clone() Frame {
	cp := Frame{Params: append([]float64(nil), fr.Params...)}
	if fr.Pixels != nil {
		cp.Pixels = mat.DenseCopyOf(fr.Pixels)
	}
	return cp
}

// Values returns the pixel values in row-major order, sharing storage
// with the frame
func (fr Frame) Values() []float64 {
	if fr.Pixels == nil {
		return nil
	}
	return fr.Pixels.RawMatrix().Data
}

// Stats returns the mean, minimum and maximum luminance
func (fr Frame) Stats() (mean, min, max float64) {
	vals := fr.Values()
	if len(vals) == 0 {
		return 0, 0, 0
	}
	return stat.Mean(vals, nil), floats.Min(vals), floats.Max(vals)
}

// Image renders the frame as 8-bit grey levels, mapping 0 to black and
// maxLum to white. Values outside that range are clipped.
func (fr Frame) Image(maxLum float64) *image.Gray {
	rows, cols := fr.Dims()
	img := image.NewGray(image.Rect(0, 0, cols, rows))
	if maxLum <= 0 {
		return img
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := math.Round(255 * fr.Pixels.At(y, x) / maxLum)
			img.SetGray(x, y, color.Gray{Y: uint8(math.Max(0, math.Min(255, v)))})
		}
	}
	return img
}

// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package randfield samples random luminance fields on a lattice laid over a
sheet: sparse fields with a single black or white spot on a mid-gray
background, and dense fields where every lattice cell is independently
black, gray or white.

Field values are computed in [0, 1] with 0.5 as the background, then
mapped to Offset + Scale*v, so a stimulus with background luminance L
uses Scale = 2L and Offset = 0.
*/
package randfield

import (
	"math"

	"github.com/CompCogNeuro/vstim/sheetcoords"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// ErrConfiguration is returned when the field parameters cannot
// produce a lattice.
var ErrConfiguration = errors.New("randfield: invalid field configuration")

// Source is the random stream consumed by a sampler.
// mtrand.RandomState implements it.
type Source interface {
	// RandInt returns a value in [low, high)
	RandInt(low, high int) int
}

// Sampler produces one new random field per call
type Sampler interface {
	Sample(src Source) (*mat.Dense, error)
}

// Params are the geometry and output mapping shared by all fields
type Params struct {

	// region of the sheet rendered into the field
	Bounds sheetcoords.Bounds `desc:"region of the sheet rendered into the field"`

	// pixels per unit distance along X
	XDensity float64 `desc:"pixels per unit distance along X"`

	// pixels per unit distance along Y
	YDensity float64 `desc:"pixels per unit distance along Y"`

	// lattice cells per unit distance -- clamped to the pixel density
	GridDensity float64 `desc:"lattice cells per unit distance -- clamped to the pixel density"`

	// multiplier applied to field values in [0, 1]
	Scale float64 `desc:"multiplier applied to field values in [0, 1]"`

	// added after scaling
	Offset float64 `desc:"added after scaling"`
}

func (fp *Params) Defaults() {
	fp.Bounds = sheetcoords.Radius(0.5)
	fp.XDensity = 10
	fp.YDensity = 10
	fp.GridDensity = 10
	fp.Scale = 1
	fp.Offset = 0
}

// Lattice is the layout of grid cells over the pixel matrix
type Lattice struct {

	// pixel matrix rows
	Rows int `desc:"pixel matrix rows"`

	// pixel matrix columns
	Cols int `desc:"pixel matrix columns"`

	// number of lattice cells along X
	NX int `desc:"number of lattice cells along X"`

	// number of lattice cells along Y
	NY int `desc:"number of lattice cells along Y"`

	// pixels per lattice cell along X
	CellX int `desc:"pixels per lattice cell along X"`

	// pixels per lattice cell along Y
	CellY int `desc:"pixels per lattice cell along Y"`
}

// Lattice computes the cell layout for these params, clamping the grid
// density to the pixel density if needed.
func (fp *Params) Lattice() (Lattice, error) {
	var lt Lattice
	sh := &sheetcoords.Sheet{Bounds: fp.Bounds, XDensity: fp.XDensity, YDensity: fp.YDensity}
	if err := sh.Validate(); err != nil {
		return lt, errors.Wrap(ErrConfiguration, err.Error())
	}
	if !(fp.GridDensity > 0) {
		return lt, errors.Wrapf(ErrConfiguration, "grid density %g must be positive", fp.GridDensity)
	}
	gd := fp.GridDensity
	if maxd := math.Min(fp.XDensity, fp.YDensity); gd > maxd {
		log.WithFields(log.Fields{"grid_density": gd, "max": maxd}).Warn("randfield: decreasing grid density to pixel density")
		gd = maxd
	}
	lt.Rows, lt.Cols = sh.Shape()
	width := sh.XStep() * float64(lt.Cols)
	height := sh.YStep() * float64(lt.Rows)
	lt.NX = int(math.Round(width * gd))
	lt.NY = int(math.Round(height * gd))
	if lt.NX <= 0 || lt.NY <= 0 {
		return lt, errors.Wrapf(ErrConfiguration, "grid density %g too small for %v", gd, fp.Bounds)
	}
	lt.CellX = max(int(math.Round(float64(lt.Cols)/float64(lt.NX))), 1)
	lt.CellY = max(int(math.Round(float64(lt.Rows)/float64(lt.NY))), 1)
	return lt, nil
}

// NewField returns a Rows x Cols field filled with the background value 0.5
func (lt *Lattice) NewField() *mat.Dense {
	data := make([]float64, lt.Rows*lt.Cols)
	for i := range data {
		data[i] = 0.5
	}
	return mat.NewDense(lt.Rows, lt.Cols, data)
}

// FillRect sets the h x w block of pixels starting at (row, col) to v,
// clipped to the field.
func (lt *Lattice) FillRect(fld *mat.Dense, row, col, h, w int, v float64) {
	re := min(row+h, lt.Rows)
	ce := min(col+w, lt.Cols)
	for r := max(row, 0); r < re; r++ {
		for c := max(col, 0); c < ce; c++ {
			fld.Set(r, c, v)
		}
	}
}

// FillCell sets lattice cell (cy, cx) to v
func (lt *Lattice) FillCell(fld *mat.Dense, cy, cx int, v float64) {
	lt.FillRect(fld, cy*lt.CellY, cx*lt.CellX, lt.CellY, lt.CellX, v)
}

// Map applies the Offset + Scale*v output mapping in place
func (fp *Params) Map(fld *mat.Dense) {
	fld.Apply(func(_, _ int, v float64) float64 {
		return v*fp.Scale + fp.Offset
	}, fld)
}

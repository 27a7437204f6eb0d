// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sheetcoords maps continuous sheet coordinates (degrees of visual
angle, centered on the origin) onto the pixel matrix used to render a
visual stimulus.

Rows of the matrix run from the top of the sheet downward, and columns
run from left to right, so matrix element (0, 0) is the top-left pixel.
*/
package sheetcoords

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// ErrBounds is returned for bounds or densities that do not describe
// a non-empty pixel matrix.
var ErrBounds = errors.New("sheetcoords: invalid bounds or density")

// Bounds is an axis-aligned box in sheet coordinates
type Bounds struct {

	// left edge
	Left float64 `desc:"left edge"`

	// bottom edge
	Bottom float64 `desc:"bottom edge"`

	// right edge
	Right float64 `desc:"right edge"`

	// top edge
	Top float64 `desc:"top edge"`
}

// NewBounds returns bounds of the given size centered on the origin
func NewBounds(sizeX, sizeY float64) Bounds {
	return Bounds{Left: -sizeX / 2, Bottom: -sizeY / 2, Right: sizeX / 2, Top: sizeY / 2}
}

// Radius returns square bounds extending r in every direction from the origin
func Radius(r float64) Bounds {
	return Bounds{Left: -r, Bottom: -r, Right: r, Top: r}
}

// Width is the horizontal extent
func (bb Bounds) Width() float64 { return bb.Right - bb.Left }

// Height is the vertical extent
func (bb Bounds) Height() float64 { return bb.Top - bb.Bottom }

// Center returns the center point of the bounds
func (bb Bounds) Center() (x, y float64) {
	return 0.5 * (bb.Left + bb.Right), 0.5 * (bb.Bottom + bb.Top)
}

// Validate returns an error if the bounds are empty or inverted
func (bb Bounds) Validate() error {
	if !(bb.Width() > 0) || !(bb.Height() > 0) {
		return errors.Wrapf(ErrBounds, "extent %gx%g must be positive", bb.Width(), bb.Height())
	}
	return nil
}

func (bb Bounds) String() string {
	return fmt.Sprintf("lbrt(%g, %g, %g, %g)", bb.Left, bb.Bottom, bb.Right, bb.Top)
}

// Sheet is a region of sheet coordinates sampled at a given density
type Sheet struct {

	// region of sheet coordinates covered by the matrix
	Bounds Bounds `desc:"region of sheet coordinates covered by the matrix"`

	// number of matrix columns per unit sheet distance
	XDensity float64 `desc:"number of matrix columns per unit sheet distance"`

	// number of matrix rows per unit sheet distance
	YDensity float64 `desc:"number of matrix rows per unit sheet distance"`
}

// New returns a Sheet with the same density along both axes
func New(bb Bounds, density float64) *Sheet {
	return &Sheet{Bounds: bb, XDensity: density, YDensity: density}
}

// Validate returns an error wrapping ErrBounds if the sheet would
// produce an empty matrix.
func (sh *Sheet) Validate() error {
	if err := sh.Bounds.Validate(); err != nil {
		return err
	}
	if !(sh.XDensity > 0) || !(sh.YDensity > 0) {
		return errors.Wrapf(ErrBounds, "density %g, %g must be positive", sh.XDensity, sh.YDensity)
	}
	rows, cols := sh.Shape()
	if rows <= 0 || cols <= 0 {
		return errors.Wrapf(ErrBounds, "%v at density %g, %g has no pixels", sh.Bounds, sh.XDensity, sh.YDensity)
	}
	return nil
}

// XStep is the sheet distance covered by one column
func (sh *Sheet) XStep() float64 { return 1 / sh.XDensity }

// YStep is the sheet distance covered by one row
func (sh *Sheet) YStep() float64 { return 1 / sh.YDensity }

// Shape returns the number of rows and columns of the matrix.
// Edges are rounded half up, so a sheet 10 units wide at density 5
// has exactly 50 columns.
func (sh *Sheet) Shape() (rows, cols int) {
	cols = int(math.Floor(sh.Bounds.Width()*sh.XDensity + 0.5))
	rows = int(math.Floor(sh.Bounds.Height()*sh.YDensity + 0.5))
	return
}

// SheetToMatrix converts sheet coordinates into continuous matrix
// coordinates (not rounded to a pixel index)
func (sh *Sheet) SheetToMatrix(x, y float64) (row, col float64) {
	col = (x - sh.Bounds.Left) * sh.XDensity
	row = (sh.Bounds.Top - y) * sh.YDensity
	return
}

// SheetToMatrixIndex returns the pixel containing the given sheet point
func (sh *Sheet) SheetToMatrixIndex(x, y float64) (row, col int) {
	r, c := sh.SheetToMatrix(x, y)
	return int(math.Floor(r)), int(math.Floor(c))
}

// MatrixToSheet returns the sheet coordinates of the center of pixel (row, col)
func (sh *Sheet) MatrixToSheet(row, col int) (x, y float64) {
	x = sh.Bounds.Left + (float64(col)+0.5)*sh.XStep()
	y = sh.Bounds.Top - (float64(row)+0.5)*sh.YStep()
	return
}

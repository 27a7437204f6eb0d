// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randfield

import (
	"gonum.org/v1/gonum/mat"
)

// SparseField draws a single black or white spot, one lattice cell in
// size, on a background of 0.5.
type SparseField struct {
	Params

	// if true, the spot is aligned to the lattice -- otherwise it is placed at a random pixel offset
	Grid bool `desc:"if true, the spot is aligned to the lattice -- otherwise it is placed at a random pixel offset"`

	lat *Lattice
}

// Init computes the lattice for the current params.
// Call again after changing params.
func (sf *SparseField) Init() error {
	lt, err := sf.Lattice()
	if err != nil {
		return err
	}
	sf.lat = &lt
	return nil
}

func (sf *SparseField) lattice() (*Lattice, error) {
	if sf.lat == nil {
		if err := sf.Init(); err != nil {
			return nil, err
		}
	}
	return sf.lat, nil
}

// Sample draws a new field. Draw order is spot row, spot column, then
// spot polarity.
func (sf *SparseField) Sample(src Source) (*mat.Dense, error) {
	lt, err := sf.lattice()
	if err != nil {
		return nil, err
	}
	fld := lt.NewField()
	if sf.Grid {
		cy := src.RandInt(0, lt.NY)
		cx := src.RandInt(0, lt.NX)
		z := src.RandInt(0, 2)
		lt.FillCell(fld, cy, cx, float64(z))
	} else {
		row := src.RandInt(0, lt.Rows-lt.CellY+1)
		col := src.RandInt(0, lt.Cols-lt.CellX+1)
		z := src.RandInt(0, 2)
		lt.FillRect(fld, row, col, lt.CellY, lt.CellX, float64(z))
	}
	sf.Map(fld)
	return fld, nil
}

var _ Sampler = (*SparseField)(nil)

// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randfield

import (
	"gonum.org/v1/gonum/mat"
)

// DenseField sets every lattice cell independently to 0, 0.5 or 1.
// Placement is always on the lattice.
type DenseField struct {
	Params

	lat *Lattice
}

// Init computes the lattice for the current params.
// Call again after changing params.
func (df *DenseField) Init() error {
	lt, err := df.Lattice()
	if err != nil {
		return err
	}
	df.lat = &lt
	return nil
}

func (df *DenseField) lattice() (*Lattice, error) {
	if df.lat == nil {
		if err := df.Init(); err != nil {
			return nil, err
		}
	}
	return df.lat, nil
}

// Sample draws a new field, one draw per lattice cell in row-major order
func (df *DenseField) Sample(src Source) (*mat.Dense, error) {
	lt, err := df.lattice()
	if err != nil {
		return nil, err
	}
	fld := lt.NewField()
	for cy := 0; cy < lt.NY; cy++ {
		for cx := 0; cx < lt.NX; cx++ {
			z := src.RandInt(-1, 2)
			lt.FillCell(fld, cy, cx, 0.5*float64(z+1))
		}
	}
	df.Map(fld)
	return fld, nil
}

var _ Sampler = (*DenseField)(nil)

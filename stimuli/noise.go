// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stimuli

import (
	"math"

	"github.com/CompCogNeuro/vstim/mtrand"
	"github.com/CompCogNeuro/vstim/randfield"
	"github.com/CompCogNeuro/vstim/sheetcoords"
	"github.com/goki/ki/kit"
	"github.com/pkg/errors"
)

// NoiseTypes are the kinds of noise stimuli
type NoiseTypes int32

//go:generate stringer -type=NoiseTypes

var KiT_NoiseTypes = kit.Enums.AddEnum(NoiseTypesN, kit.NotBitFlag, nil)

func (ev NoiseTypes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *NoiseTypes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Sparse noise has one black or white spot per image
	Sparse NoiseTypes = iota

	// Dense noise sets every grid cell independently
	Dense

	NoiseTypesN
)

// NoiseConfig has the parameters of sparse and dense noise
type NoiseConfig struct {

	// number of grid cells across the width of the stimulus -- must be a positive integer
	GridSize float64 `desc:"number of grid cells across the width of the stimulus -- must be a positive integer"`

	// sparse only: if true, spots are aligned to the grid -- otherwise placed at random pixel offsets
	Grid bool `desc:"sparse only: if true, spots are aligned to the grid -- otherwise placed at random pixel offsets"`

	// background luminance in cd/m^2 -- noise ranges from 0 to twice this value
	BackgroundLuminance float64 `desc:"background luminance in cd/m^2 -- noise ranges from 0 to twice this value"`

	// how long each sampled image is held, in ms -- must be a whole number of frames
	TimePerImage float64 `desc:"how long each sampled image is held, in ms -- must be a whole number of frames"`

	// duration of one frame in ms
	FrameDuration float64 `desc:"duration of one frame in ms"`

	// total presentation time in ms -- only used to compute the number of frames to present
	Duration float64 `desc:"total presentation time in ms -- only used to compute the number of frames to present"`

	// seed of the noise sequence
	ExperimentSeed uint32 `desc:"seed of the noise sequence"`
}

func (nc *NoiseConfig) Defaults() {
	nc.GridSize = 11
	nc.Grid = false
	nc.BackgroundLuminance = 50
	nc.TimePerImage = 2
	nc.FrameDuration = 1
	nc.Duration = 100
	nc.ExperimentSeed = 0
}

// FramesPerImage returns TimePerImage / FrameDuration, with an error
// wrapping ErrInvalidConfiguration unless it is a positive integer.
func (nc *NoiseConfig) FramesPerImage() (int, error) {
	if !(nc.FrameDuration > 0) || !(nc.TimePerImage > 0) {
		return 0, errors.Wrapf(ErrInvalidConfiguration, "time per image %g and frame duration %g must be positive", nc.TimePerImage, nc.FrameDuration)
	}
	ratio := nc.TimePerImage / nc.FrameDuration
	n := math.Round(ratio)
	if n < 1 || math.Abs(ratio-n) > 1e-9*n {
		return 0, errors.Wrapf(ErrInvalidConfiguration, "time per image %g / frame duration %g = %g", nc.TimePerImage, nc.FrameDuration, ratio)
	}
	return int(n), nil
}

// ValidateGridSize returns an error wrapping ErrValue unless GridSize is
// a positive, finite integer. Values like 0.9999999999 are rejected.
func (nc *NoiseConfig) ValidateGridSize() error {
	if !(nc.GridSize > 0) || math.IsInf(nc.GridSize, 0) || nc.GridSize != math.Trunc(nc.GridSize) {
		return errors.Wrapf(ErrValue, "grid size %v", nc.GridSize)
	}
	return nil
}

// noise is the frame-holding logic shared by sparse and dense noise
type noise struct {
	Base

	// noise parameters
	Config NoiseConfig `desc:"noise parameters"`

	field          randfield.Sampler
	rs             *mtrand.RandomState
	framesPerImage int
	left           int
	held           Frame
}

// init validates everything and sets up the random state; fld is the
// field sampler, which must already hold the field params.
func (ns *noise) init(geom Geometry, cfg NoiseConfig, fld randfield.Sampler, initFld func() error) error {
	ns.Geometry = geom
	ns.Config = cfg
	ns.FrameDuration = cfg.FrameDuration
	ns.Duration = cfg.Duration
	ns.BackgroundLuminance = cfg.BackgroundLuminance
	fpi, err := cfg.FramesPerImage()
	if err != nil {
		return err
	}
	if err := cfg.ValidateGridSize(); err != nil {
		return err
	}
	if err := ns.Validate(); err != nil {
		return err
	}
	if err := initFld(); err != nil {
		return err
	}
	ns.field = fld
	ns.framesPerImage = fpi
	ns.rs = mtrand.New(cfg.ExperimentSeed)
	ns.left = 0
	return nil
}

// fieldParams maps the stimulus parameters onto the random field.
// Noise fields are square, SizeX on a side: SizeY is not used.
func fieldParams(geom *Geometry, cfg *NoiseConfig) randfield.Params {
	return randfield.Params{
		Bounds:      sheetcoords.Radius(geom.SizeX / 2),
		XDensity:    geom.Density,
		YDensity:    geom.Density,
		GridDensity: cfg.GridSize / geom.SizeX,
		Scale:       2 * cfg.BackgroundLuminance,
		Offset:      0,
	}
}

// Next returns the held image, sampling a new one every FramesPerImage frames
func (ns *noise) Next() Frame {
	if ns.left == 0 {
		pix, err := ns.field.Sample(ns.rs)
		if err != nil {
			panic(err) // lattice is validated at construction
		}
		ns.held = Frame{Pixels: pix, Params: []float64{0}}
		ns.left = ns.framesPerImage
	}
	ns.left--
	return ns.held
}

// FramesPerImage is the number of consecutive frames sharing one image
func (ns *noise) FramesPerImage() int { return ns.framesPerImage }

// SparseNoise presents a single black or white spot on the background,
// moving to a new random location every TimePerImage ms. The field is
// square, SizeX on a side, centered on the origin.
type SparseNoise struct {
	noise
	fld randfield.SparseField
}

// NewSparseNoise returns sparse noise, validating all parameters:
// ErrInvalidConfiguration for timing, ErrValue for the grid size, and
// ErrConfiguration for geometry.
func NewSparseNoise(geom Geometry, cfg NoiseConfig) (*SparseNoise, error) {
	sn := &SparseNoise{}
	sn.fld.Params = fieldParams(&geom, &cfg)
	sn.fld.Grid = cfg.Grid
	if err := sn.init(geom, cfg, &sn.fld, sn.fld.Init); err != nil {
		return nil, err
	}
	return sn, nil
}

// DenseNoise presents a full grid of independent black, gray and white
// cells, resampled every TimePerImage ms.
type DenseNoise struct {
	noise
	fld randfield.DenseField
}

// NewDenseNoise returns dense noise, validating as NewSparseNoise.
// Dense noise is always on the grid, so cfg.Grid must be false.
func NewDenseNoise(geom Geometry, cfg NoiseConfig) (*DenseNoise, error) {
	if cfg.Grid {
		return nil, errors.Wrap(ErrConfiguration, "dense noise does not take a grid flag")
	}
	dn := &DenseNoise{}
	dn.fld.Params = fieldParams(&geom, &cfg)
	if err := dn.init(geom, cfg, &dn.fld, dn.fld.Init); err != nil {
		return nil, err
	}
	return dn, nil
}

// NewNoise returns noise of the given type
func NewNoise(typ NoiseTypes, geom Geometry, cfg NoiseConfig) (VisualStimulus, error) {
	switch typ {
	case Sparse:
		return NewSparseNoise(geom, cfg)
	case Dense:
		cfg.Grid = false
		return NewDenseNoise(geom, cfg)
	}
	return nil, errors.Wrapf(ErrNotImplemented, "noise type %v", typ)
}

// Compile-time check that noise implements VisualStimulus
var (
	_ VisualStimulus = (*SparseNoise)(nil)
	_ VisualStimulus = (*DenseNoise)(nil)
)

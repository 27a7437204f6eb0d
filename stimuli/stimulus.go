// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stimuli provides visual stimuli that render luminance frames on
demand: sparse and dense noise for receptive field mapping, full-field
drifting sinusoidal gratings for orientation tuning, and a blank Null
stimulus for spontaneous activity.

Every stimulus is a pull-based, unbounded frame stream: callers decide
how many frames to take, usually Duration / FrameDuration. Randomized
stimuli own a seeded mtrand.RandomState, so the same parameters and seed
always produce the same frames.
*/
package stimuli

import (
	"fmt"
	"math"

	"github.com/CompCogNeuro/vstim/sheetcoords"
	"github.com/pkg/errors"
)

// VisualStimulus is a stream of frames presented to the visual field of a model
type VisualStimulus interface {
	// Next returns the next frame. The stream never ends.
	Next() Frame

	// Transparent reports whether frames should be alpha-blended over a
	// background layer.
	Transparent() bool

	// StimBase returns the shared stimulus parameters
	StimBase() *Base
}

// Geometry is the position and extent of a stimulus in degrees of visual angle
type Geometry struct {

	// width of the stimulus
	SizeX float64 `desc:"width of the stimulus"`

	// height of the stimulus
	SizeY float64 `desc:"height of the stimulus"`

	// horizontal center of the stimulus in the visual field
	LocationX float64 `desc:"horizontal center of the stimulus in the visual field"`

	// vertical center of the stimulus in the visual field
	LocationY float64 `desc:"vertical center of the stimulus in the visual field"`

	// pixels per degree
	Density float64 `desc:"pixels per degree"`
}

func (gm *Geometry) Defaults() {
	gm.SizeX = 11
	gm.SizeY = 11
	gm.LocationX = 0
	gm.LocationY = 0
	gm.Density = 10
}

// Validate returns an error wrapping ErrConfiguration for a non-positive extent or density
func (gm *Geometry) Validate() error {
	if !(gm.SizeX > 0) || !(gm.SizeY > 0) {
		return errors.Wrapf(ErrConfiguration, "stimulus size %gx%g must be positive", gm.SizeX, gm.SizeY)
	}
	if !(gm.Density > 0) {
		return errors.Wrapf(ErrConfiguration, "density %g must be positive", gm.Density)
	}
	return nil
}

// Bounds returns the sheet bounds of the rendered frame, centered on the origin
func (gm *Geometry) Bounds() sheetcoords.Bounds {
	return sheetcoords.NewBounds(gm.SizeX, gm.SizeY)
}

// Sheet returns the sheet coordinate system of the rendered frame
func (gm *Geometry) Sheet() *sheetcoords.Sheet {
	return sheetcoords.New(gm.Bounds(), gm.Density)
}

// Base holds the parameters shared by all stimuli. It does not produce
// frames itself: concrete stimuli embed it and implement Next.
type Base struct {
	Geometry

	// duration of one frame in ms
	FrameDuration float64 `desc:"duration of one frame in ms"`

	// total presentation time in ms
	Duration float64 `desc:"total presentation time in ms"`

	// background luminance in cd/m^2 -- the midpoint of the luminance range
	BackgroundLuminance float64 `desc:"background luminance in cd/m^2 -- the midpoint of the luminance range"`

	// trial number, for repeated presentations
	Trial int `desc:"trial number, for repeated presentations"`
}

// StimBase returns bs, so that embedding types satisfy VisualStimulus
func (bs *Base) StimBase() *Base { return bs }

// Transparent is always false: frames are opaque luminance fields that
// fully replace the background.
func (bs *Base) Transparent() bool { return false }

// Validate checks geometry, frame duration and luminance
func (bs *Base) Validate() error {
	if err := bs.Geometry.Validate(); err != nil {
		return err
	}
	if !(bs.FrameDuration > 0) {
		return errors.Wrapf(ErrConfiguration, "frame duration %g must be positive", bs.FrameDuration)
	}
	if bs.Duration < 0 {
		return errors.Wrapf(ErrConfiguration, "duration %g must not be negative", bs.Duration)
	}
	if !(bs.BackgroundLuminance >= 0) {
		return errors.Wrapf(ErrConfiguration, "background luminance %g must not be negative", bs.BackgroundLuminance)
	}
	return nil
}

// DurationFrames returns the number of whole frames in Duration
func (bs *Base) DurationFrames() int {
	if !(bs.FrameDuration > 0) {
		return 0
	}
	return int(math.Floor(bs.Duration/bs.FrameDuration + 1e-9))
}

func (bs *Base) String() string {
	return fmt.Sprintf("%gx%g@(%g,%g) d=%g fd=%g dur=%g bg=%g trial=%d", bs.SizeX, bs.SizeY, bs.LocationX, bs.LocationY, bs.Density, bs.FrameDuration, bs.Duration, bs.BackgroundLuminance, bs.Trial)
}

// Frames pulls the next n frames from st
func Frames(st VisualStimulus, n int) []Frame {
	frs := make([]Frame, n)
	for i := range frs {
		frs[i] = st.Next()
	}
	return frs
}

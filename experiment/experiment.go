// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package experiment assembles stimuli into experimental protocols and
presents them to a model: spontaneous activity on a blank screen,
orientation tuning with full-field drifting gratings, and receptive field
mapping with sparse or dense noise.

The model itself is external: anything implementing Model can receive
the frames, e.g., the stimenv environment driving a network simulation.
*/
package experiment

import (
	"github.com/CompCogNeuro/vstim/stimuli"
	"github.com/pkg/errors"
)

// ErrExperiment is returned for experiment parameters that cannot produce stimuli
var ErrExperiment = errors.New("experiment: invalid experiment parameters")

// Experiment is a named protocol producing a list of stimuli
type Experiment interface {
	// Name of the experiment, for records and logs
	Name() string

	// Stimuli returns the stimuli to present, in order, rendered for the
	// visual field of the model
	Stimuli(mg *ModelGeometry) ([]stimuli.VisualStimulus, error)
}

// Model receives stimulus frames: the simulation under test
type Model interface {
	// Present shows all frames of one stimulus to the model
	Present(st stimuli.VisualStimulus, frames []stimuli.Frame) error
}

// ModelFunc adapts a function to a Model
type ModelFunc func(st stimuli.VisualStimulus, frames []stimuli.Frame) error

func (mf ModelFunc) Present(st stimuli.VisualStimulus, frames []stimuli.Frame) error {
	return mf(st, frames)
}

// ModelGeometry is the visual field of a model, shared by all stimuli
// presented to it.
type ModelGeometry struct {

	// extent, location and density of the visual field
	Geom stimuli.Geometry `view:"inline" desc:"extent, location and density of the visual field"`

	// duration of one frame in ms
	FrameDuration float64 `desc:"duration of one frame in ms"`

	// background luminance in cd/m^2
	BackgroundLuminance float64 `desc:"background luminance in cd/m^2"`
}

func (mg *ModelGeometry) Defaults() {
	mg.Geom.Defaults()
	mg.FrameDuration = 7
	mg.BackgroundLuminance = 50
}

// Base returns stimulus parameters covering the visual field for duration ms
func (mg *ModelGeometry) Base(duration float64, trial int) stimuli.Base {
	return stimuli.Base{
		Geometry:            mg.Geom,
		FrameDuration:       mg.FrameDuration,
		Duration:            duration,
		BackgroundLuminance: mg.BackgroundLuminance,
		Trial:               trial,
	}
}

// NoiseConfig returns noise parameters for the visual field
func (mg *ModelGeometry) NoiseConfig(gridSize float64, grid bool, timePerImage, duration float64, seed uint32) stimuli.NoiseConfig {
	return stimuli.NoiseConfig{
		GridSize:            gridSize,
		Grid:                grid,
		BackgroundLuminance: mg.BackgroundLuminance,
		TimePerImage:        timePerImage,
		FrameDuration:       mg.FrameDuration,
		Duration:            duration,
		ExperimentSeed:      seed,
	}
}

// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package experiment

import (
	"math"

	"github.com/CompCogNeuro/vstim/stimuli"
	"github.com/pkg/errors"
)

// MeasureSpontaneousActivity presents a blank screen at background luminance
type MeasureSpontaneousActivity struct {

	// presentation time in ms
	Duration float64 `desc:"presentation time in ms"`
}

func (ms *MeasureSpontaneousActivity) Defaults() {
	ms.Duration = 147 * 7
}

func (ms *MeasureSpontaneousActivity) Name() string { return "SpontaneousActivity" }

func (ms *MeasureSpontaneousActivity) Stimuli(mg *ModelGeometry) ([]stimuli.VisualStimulus, error) {
	nl, err := stimuli.NewNull(mg.Base(ms.Duration, 0))
	if err != nil {
		return nil, err
	}
	return []stimuli.VisualStimulus{nl}, nil
}

// MeasureOrientationTuningFullfield presents full-field drifting gratings
// at evenly spaced orientations over [0, pi), for each contrast and trial.
type MeasureOrientationTuningFullfield struct {

	// number of orientations -- orientation k is k*pi/NumOrientations
	NumOrientations int `min:"1" desc:"number of orientations -- orientation k is k*pi/NumOrientations"`

	// spatial frequency in cycles per degree
	SpatialFrequency float64 `desc:"spatial frequency in cycles per degree"`

	// temporal frequency in Hz
	TemporalFrequency float64 `desc:"temporal frequency in Hz"`

	// presentation time of each grating in ms
	GratingDuration float64 `desc:"presentation time of each grating in ms"`

	// contrasts in percent, each presented at all orientations
	Contrasts []float64 `desc:"contrasts in percent, each presented at all orientations"`

	// number of repetitions of the whole set
	NumTrials int `min:"1" desc:"number of repetitions of the whole set"`
}

func (mo *MeasureOrientationTuningFullfield) Defaults() {
	mo.NumOrientations = 8
	mo.SpatialFrequency = 0.8
	mo.TemporalFrequency = 2
	mo.GratingDuration = 148 * 7
	mo.Contrasts = []float64{100}
	mo.NumTrials = 10
}

func (mo *MeasureOrientationTuningFullfield) Name() string { return "OrientationTuningFullfield" }

// Orientation returns the orientation of index k, in radians
func (mo *MeasureOrientationTuningFullfield) Orientation(k int) float64 {
	return math.Pi * float64(k) / float64(mo.NumOrientations)
}

// Stimuli returns gratings ordered by contrast, then trial, then orientation
func (mo *MeasureOrientationTuningFullfield) Stimuli(mg *ModelGeometry) ([]stimuli.VisualStimulus, error) {
	if mo.NumOrientations < 1 || mo.NumTrials < 1 {
		return nil, errors.Wrapf(ErrExperiment, "%d orientations and %d trials must be positive", mo.NumOrientations, mo.NumTrials)
	}
	sts := make([]stimuli.VisualStimulus, 0, len(mo.Contrasts)*mo.NumTrials*mo.NumOrientations)
	for _, c := range mo.Contrasts {
		for tr := 0; tr < mo.NumTrials; tr++ {
			for k := 0; k < mo.NumOrientations; k++ {
				gp := stimuli.GratingParams{
					Orientation:       mo.Orientation(k),
					SpatialFrequency:  mo.SpatialFrequency,
					TemporalFrequency: mo.TemporalFrequency,
					Contrast:          c,
				}
				gr, err := stimuli.NewFullfieldDriftingSinusoidalGrating(mg.Base(mo.GratingDuration, tr), gp)
				if err != nil {
					return nil, err
				}
				sts = append(sts, gr)
			}
		}
	}
	return sts, nil
}

// MeasureNoise maps receptive fields with sparse or dense noise. All
// trials use the same seed, so they repeat the same image sequence.
type MeasureNoise struct {

	// sparse or dense noise
	Type stimuli.NoiseTypes `desc:"sparse or dense noise"`

	// how long each image is held in ms -- must be a whole number of frames
	TimePerImage float64 `desc:"how long each image is held in ms -- must be a whole number of frames"`

	// number of images per trial
	TotalNumberOfImages int `desc:"number of images per trial"`

	// number of grid cells across the visual field
	GridSize float64 `desc:"number of grid cells across the visual field"`

	// sparse only: align spots to the grid
	Grid bool `desc:"sparse only: align spots to the grid"`

	// number of repetitions
	NumTrials int `min:"1" desc:"number of repetitions"`

	// seed of the noise sequence
	ExperimentSeed uint32 `desc:"seed of the noise sequence"`
}

func (mn *MeasureNoise) Defaults() {
	mn.Type = stimuli.Sparse
	mn.TimePerImage = 7
	mn.TotalNumberOfImages = 50
	mn.GridSize = 11
	mn.Grid = true
	mn.NumTrials = 1
	mn.ExperimentSeed = 0
}

func (mn *MeasureNoise) Name() string { return mn.Type.String() + "Noise" }

// Duration is the presentation time of one trial in ms
func (mn *MeasureNoise) Duration() float64 {
	return float64(mn.TotalNumberOfImages) * mn.TimePerImage
}

func (mn *MeasureNoise) Stimuli(mg *ModelGeometry) ([]stimuli.VisualStimulus, error) {
	if mn.NumTrials < 1 || mn.TotalNumberOfImages < 1 {
		return nil, errors.Wrapf(ErrExperiment, "%d trials of %d images must be positive", mn.NumTrials, mn.TotalNumberOfImages)
	}
	cfg := mg.NoiseConfig(mn.GridSize, mn.Grid, mn.TimePerImage, mn.Duration(), mn.ExperimentSeed)
	if mn.Type == stimuli.Dense {
		cfg.Grid = false
	}
	sts := make([]stimuli.VisualStimulus, mn.NumTrials)
	for tr := range sts {
		st, err := stimuli.NewNoise(mn.Type, mg.Geom, cfg)
		if err != nil {
			return nil, err
		}
		st.StimBase().Trial = tr
		sts[tr] = st
	}
	return sts, nil
}

// NewMeasureSparse returns sparse noise mapping with default parameters
func NewMeasureSparse() *MeasureNoise {
	mn := &MeasureNoise{}
	mn.Defaults()
	return mn
}

// NewMeasureDense returns dense noise mapping with default parameters
func NewMeasureDense() *MeasureNoise {
	mn := &MeasureNoise{}
	mn.Defaults()
	mn.Type = stimuli.Dense
	mn.Grid = false
	return mn
}

var (
	_ Experiment = (*MeasureSpontaneousActivity)(nil)
	_ Experiment = (*MeasureOrientationTuningFullfield)(nil)
	_ Experiment = (*MeasureNoise)(nil)
)

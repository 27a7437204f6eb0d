// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package experiment

import (
	"context"
	"fmt"

	"github.com/CompCogNeuro/vstim/stimuli"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Record summarizes one presented stimulus
type Record struct {

	// experiment name
	Experiment string

	// index of the stimulus within the experiment
	Stim int

	// trial number of the stimulus
	Trial int

	// number of frames presented
	Frames int

	// mean luminance over all frames
	MeanLum float64

	// minimum luminance over all frames
	MinLum float64

	// maximum luminance over all frames
	MaxLum float64
}

func (rc *Record) String() string {
	return fmt.Sprintf("%s[%d] trial %d: %d frames, lum %.4g [%.4g, %.4g]", rc.Experiment, rc.Stim, rc.Trial, rc.Frames, rc.MeanLum, rc.MinLum, rc.MaxLum)
}

// Controller presents the stimuli of experiments to a model, in order
type Controller struct {

	// visual field of the model
	Geom ModelGeometry `desc:"visual field of the model"`
}

// NewController returns a controller for the given visual field
func NewController(mg ModelGeometry) *Controller {
	return &Controller{Geom: mg}
}

// Run builds the stimuli of each experiment and presents
// DurationFrames frames of each one to the model. The context is checked
// between stimuli. Records of all stimuli presented so far are returned
// along with any error.
func (ec *Controller) Run(ctx context.Context, md Model, exps ...Experiment) ([]Record, error) {
	var recs []Record
	for _, ex := range exps {
		sts, err := ex.Stimuli(&ec.Geom)
		if err != nil {
			return recs, errors.Wrapf(err, "experiment %s", ex.Name())
		}
		log.WithFields(log.Fields{"experiment": ex.Name(), "stimuli": len(sts)}).Info("starting experiment")
		for si, st := range sts {
			if err := ctx.Err(); err != nil {
				return recs, err
			}
			frs := stimuli.Frames(st, st.StimBase().DurationFrames())
			if err := md.Present(st, frs); err != nil {
				return recs, errors.Wrapf(err, "experiment %s stimulus %d", ex.Name(), si)
			}
			rc := Summarize(frs)
			rc.Experiment = ex.Name()
			rc.Stim = si
			rc.Trial = st.StimBase().Trial
			log.WithFields(log.Fields{"experiment": rc.Experiment, "stim": si, "frames": rc.Frames}).Debug("presented stimulus")
			recs = append(recs, rc)
		}
	}
	return recs, nil
}

// Summarize computes the frame count and luminance statistics of frames
func Summarize(frs []stimuli.Frame) Record {
	rc := Record{Frames: len(frs)}
	if len(frs) == 0 {
		return rc
	}
	means := make([]float64, len(frs))
	mins := make([]float64, len(frs))
	maxs := make([]float64, len(frs))
	for i, fr := range frs {
		means[i], mins[i], maxs[i] = fr.Stats()
	}
	rc.MeanLum = stat.Mean(means, nil)
	rc.MinLum = floats.Min(mins)
	rc.MaxLum = floats.Max(maxs)
	return rc
}

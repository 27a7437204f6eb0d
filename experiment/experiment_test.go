// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package experiment

import (
	"context"
	"math"
	"testing"

	"github.com/CompCogNeuro/vstim/stimuli"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGeom() ModelGeometry {
	var mg ModelGeometry
	mg.Defaults()
	mg.Geom.SizeX = 4
	mg.Geom.SizeY = 4
	mg.Geom.Density = 5
	return mg
}

func TestSpontaneous(t *testing.T) {
	mg := testGeom()
	ms := &MeasureSpontaneousActivity{}
	ms.Defaults()
	sts, err := ms.Stimuli(&mg)
	require.NoError(t, err)
	require.Len(t, sts, 1)
	assert.Equal(t, 147, sts[0].StimBase().DurationFrames())
	_, ok := sts[0].(*stimuli.Null)
	assert.True(t, ok)
}

func TestOrientationTuning(t *testing.T) {
	mg := testGeom()
	mo := &MeasureOrientationTuningFullfield{}
	mo.Defaults()
	mo.NumOrientations = 4
	mo.NumTrials = 2
	mo.Contrasts = []float64{50, 100}
	sts, err := mo.Stimuli(&mg)
	require.NoError(t, err)
	require.Len(t, sts, 16)
	for i, st := range sts {
		gr := st.(*stimuli.FullfieldDriftingSinusoidalGrating)
		k := i % 4
		assert.InDelta(t, float64(k)*math.Pi/4, gr.Grating.Orientation, 1e-12)
		assert.Equal(t, (i/4)%2, gr.Trial)
		assert.Equal(t, []float64{50, 100}[i/8], gr.Grating.Contrast)
	}

	mo.NumOrientations = 0
	_, err = mo.Stimuli(&mg)
	assert.True(t, errors.Is(err, ErrExperiment))

	mo.NumOrientations = 2
	mo.Contrasts = []float64{120}
	_, err = mo.Stimuli(&mg)
	assert.True(t, errors.Is(err, stimuli.ErrConfiguration))
}

func TestNoiseTrialsRepeat(t *testing.T) {
	mg := testGeom()
	for _, mn := range []*MeasureNoise{NewMeasureSparse(), NewMeasureDense()} {
		mn.GridSize = 4
		mn.NumTrials = 3
		mn.TimePerImage = 14
		mn.TotalNumberOfImages = 10
		sts, err := mn.Stimuli(&mg)
		require.NoError(t, err)
		require.Len(t, sts, 3)
		assert.Equal(t, 140.0, mn.Duration())
		a := stimuli.Frames(sts[0], sts[0].StimBase().DurationFrames())
		b := stimuli.Frames(sts[2], sts[2].StimBase().DurationFrames())
		require.Len(t, a, 20)
		for i := range a {
			assert.True(t, a[i].Equal(b[i]), "%s frame %d", mn.Name(), i)
		}
		assert.Equal(t, 2, sts[2].StimBase().Trial)
	}
	assert.Equal(t, "SparseNoise", NewMeasureSparse().Name())
	assert.Equal(t, "DenseNoise", NewMeasureDense().Name())
}

func TestNoiseErrors(t *testing.T) {
	mg := testGeom()
	mn := NewMeasureSparse()
	mn.TimePerImage = 10
	_, err := mn.Stimuli(&mg)
	assert.True(t, errors.Is(err, stimuli.ErrInvalidConfiguration), "%v", err)

	mn = NewMeasureDense()
	mn.GridSize = 2.5
	_, err = mn.Stimuli(&mg)
	assert.True(t, errors.Is(err, stimuli.ErrValue), "%v", err)

	mn.GridSize = 4
	mn.NumTrials = 0
	_, err = mn.Stimuli(&mg)
	assert.True(t, errors.Is(err, ErrExperiment), "%v", err)
}

func TestControllerRun(t *testing.T) {
	ms := &MeasureSpontaneousActivity{Duration: 70}
	mo := &MeasureOrientationTuningFullfield{}
	mo.Defaults()
	mo.NumOrientations = 2
	mo.NumTrials = 1
	mo.GratingDuration = 35
	mn := NewMeasureSparse()
	mn.GridSize = 4
	mn.TotalNumberOfImages = 3

	var presented []int
	md := ModelFunc(func(st stimuli.VisualStimulus, frs []stimuli.Frame) error {
		presented = append(presented, len(frs))
		return nil
	})
	ec := NewController(testGeom())
	recs, err := ec.Run(context.Background(), md, ms, mo, mn)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 5, 5, 3}, presented)
	require.Len(t, recs, 4)
	assert.Equal(t, "SpontaneousActivity", recs[0].Experiment)
	assert.Equal(t, 50.0, recs[0].MeanLum)
	assert.Equal(t, 50.0, recs[0].MinLum)
	assert.Equal(t, 50.0, recs[0].MaxLum)
	assert.Equal(t, 1, recs[2].Stim)
	assert.GreaterOrEqual(t, recs[1].MinLum, 0.0)
	assert.LessOrEqual(t, recs[1].MaxLum, 100.0)
	assert.Equal(t, "SparseNoise", recs[3].Experiment)
	// every sparse image has one black or white spot
	assert.True(t, recs[3].MinLum == 0 || recs[3].MaxLum == 100)
	assert.Contains(t, recs[0].String(), "SpontaneousActivity[0]")
}

func TestControllerStops(t *testing.T) {
	ms := &MeasureSpontaneousActivity{Duration: 14}
	mo := &MeasureOrientationTuningFullfield{}
	mo.Defaults()
	mo.NumOrientations = 4
	mo.NumTrials = 1
	mo.GratingDuration = 14

	ctx, cancel := context.WithCancel(context.Background())
	n := 0
	md := ModelFunc(func(st stimuli.VisualStimulus, frs []stimuli.Frame) error {
		n++
		if n == 2 {
			cancel()
		}
		return nil
	})
	ec := NewController(testGeom())
	recs, err := ec.Run(ctx, md, ms, mo)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, recs, 2)

	fail := errors.New("model failure")
	md = ModelFunc(func(st stimuli.VisualStimulus, frs []stimuli.Frame) error { return fail })
	_, err = ec.Run(context.Background(), md, ms)
	assert.True(t, errors.Is(err, fail))
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Record{}, Summarize(nil))
}

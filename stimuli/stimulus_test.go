// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stimuli_test

import (
	"math"
	"testing"

	"github.com/CompCogNeuro/vstim/stimuli"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// flash is a minimal stimulus built on Base
type flash struct {
	stimuli.Base
}

func (fl *flash) Next() stimuli.Frame {
	return stimuli.Frame{Pixels: mat.NewDense(1, 1, []float64{fl.BackgroundLuminance}), Params: []float64{0}}
}

func defaultBase() stimuli.Base {
	var bs stimuli.Base
	bs.Geometry.Defaults()
	bs.FrameDuration = 1
	bs.Duration = 100
	bs.BackgroundLuminance = 50
	return bs
}

func TestTransparent(t *testing.T) {
	bs := defaultBase()
	geom, cfg := noiseSetup(10, 5)
	cfg.GridSize = 10
	sn, err := stimuli.NewSparseNoise(geom, cfg)
	require.NoError(t, err)
	dn, err := stimuli.NewDenseNoise(geom, cfg)
	require.NoError(t, err)
	nl, err := stimuli.NewNull(bs)
	require.NoError(t, err)
	var gp stimuli.GratingParams
	gp.Defaults()
	gr, err := stimuli.NewFullfieldDriftingSinusoidalGrating(bs, gp)
	require.NoError(t, err)

	for _, st := range []stimuli.VisualStimulus{sn, dn, nl, gr, &flash{Base: bs}} {
		assert.False(t, st.Transparent(), "%T", st)
		assert.NotNil(t, st.StimBase())
	}
}

func TestBase(t *testing.T) {
	bs := defaultBase()
	require.NoError(t, bs.Validate())
	assert.Equal(t, 100, bs.DurationFrames())
	bs.FrameDuration = 7
	assert.Equal(t, 14, bs.DurationFrames())
	bs.Duration = 0.3
	bs.FrameDuration = 0.1
	assert.Equal(t, 3, bs.DurationFrames())

	bs = defaultBase()
	bs.FrameDuration = 0
	assert.True(t, errors.Is(bs.Validate(), stimuli.ErrConfiguration))
	bs = defaultBase()
	bs.SizeY = -1
	assert.True(t, errors.Is(bs.Validate(), stimuli.ErrConfiguration))
	bs = defaultBase()
	bs.BackgroundLuminance = -1
	assert.True(t, errors.Is(bs.Validate(), stimuli.ErrConfiguration))

	fl := &flash{Base: defaultBase()}
	frs := stimuli.Frames(fl, 3)
	assert.Len(t, frs, 3)
	assert.Contains(t, fl.String(), "bg=50")
}

func TestNull(t *testing.T) {
	bs := defaultBase()
	bs.SizeY = 5
	nl, err := stimuli.NewNull(bs)
	require.NoError(t, err)
	fr := nl.Next()
	rows, cols := fr.Dims()
	assert.Equal(t, 50, rows)
	assert.Equal(t, 110, cols)
	mean, min, max := fr.Stats()
	assert.Equal(t, 50.0, mean)
	assert.Equal(t, 50.0, min)
	assert.Equal(t, 50.0, max)
	assert.True(t, fr.Equal(nl.Next()))

	bs.Density = -1
	_, err = stimuli.NewNull(bs)
	assert.True(t, errors.Is(err, stimuli.ErrConfiguration))
}

func TestGrating(t *testing.T) {
	bs := defaultBase()
	var gp stimuli.GratingParams
	gp.Defaults()
	gr, err := stimuli.NewFullfieldDriftingSinusoidalGrating(bs, gp)
	require.NoError(t, err)

	f0 := gr.Next()
	rows, cols := f0.Dims()
	require.Equal(t, 110, rows)
	require.Equal(t, 110, cols)
	assert.Equal(t, []float64{0}, f0.Params)
	_, min, max := f0.Stats()
	assert.GreaterOrEqual(t, min, 0.0)
	assert.LessOrEqual(t, max, 100.0)
	assert.Greater(t, max-min, 90.0)

	// horizontal bars: every row is constant
	for r := 0; r < rows; r++ {
		for c := 1; c < cols; c++ {
			assert.Equal(t, f0.Pixels.At(r, 0), f0.Pixels.At(r, c))
		}
	}

	step := 2 * math.Pi * 0.001 * gp.TemporalFrequency
	f1 := gr.Next()
	assert.InDelta(t, step, f1.Params[0], 1e-12)
	assert.InDelta(t, 2*step, gr.Phase(), 1e-12)
	assert.False(t, f0.Equal(f1))

	// vertical bars: every column is constant
	gp.Orientation = math.Pi / 2
	vg, err := stimuli.NewFullfieldDriftingSinusoidalGrating(bs, gp)
	require.NoError(t, err)
	fv := vg.Next()
	for c := 0; c < cols; c++ {
		assert.InDelta(t, fv.Pixels.At(0, c), fv.Pixels.At(rows-1, c), 1e-9)
	}
}

func TestGratingContrast(t *testing.T) {
	bs := defaultBase()
	var gp stimuli.GratingParams
	gp.Defaults()
	gp.Contrast = 0
	gr, err := stimuli.NewFullfieldDriftingSinusoidalGrating(bs, gp)
	require.NoError(t, err)
	mean, min, max := gr.Next().Stats()
	assert.Equal(t, 50.0, mean)
	assert.Equal(t, 50.0, min)
	assert.Equal(t, 50.0, max)

	gp.Contrast = 50
	gr, err = stimuli.NewFullfieldDriftingSinusoidalGrating(bs, gp)
	require.NoError(t, err)
	_, min, max = gr.Next().Stats()
	assert.GreaterOrEqual(t, min, 25.0-1e-9)
	assert.LessOrEqual(t, max, 75.0+1e-9)

	gp.Contrast = 150
	_, err = stimuli.NewFullfieldDriftingSinusoidalGrating(bs, gp)
	assert.True(t, errors.Is(err, stimuli.ErrConfiguration))
}

func TestFrame(t *testing.T) {
	fr := stimuli.Frame{Pixels: mat.NewDense(2, 3, []float64{0, 25, 50, 75, 100, 150}), Params: []float64{0}}
	cp := fr.Clone()
	assert.True(t, fr.Equal(cp))
	cp.Pixels.Set(0, 0, 1)
	assert.False(t, fr.Equal(cp))
	assert.Equal(t, 0.0, fr.Pixels.At(0, 0))

	cp = fr.Clone()
	cp.Params[0] = 1
	assert.False(t, fr.Equal(cp))

	other := stimuli.Frame{Pixels: mat.NewDense(3, 2, fr.Values()), Params: []float64{0}}
	assert.False(t, fr.Equal(other))
	assert.True(t, stimuli.Frame{}.Equal(stimuli.Frame{}))

	mean, min, max := fr.Stats()
	assert.Equal(t, 400.0/6, mean)
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 150.0, max)

	img := fr.Image(100)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	assert.Equal(t, uint8(0), img.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(128), img.GrayAt(2, 0).Y)
	assert.Equal(t, uint8(255), img.GrayAt(1, 1).Y)
	assert.Equal(t, uint8(255), img.GrayAt(2, 1).Y)
}

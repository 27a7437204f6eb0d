// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stimenv

import (
	"testing"

	"github.com/CompCogNeuro/vstim/stimuli"
	"github.com/emer/emergent/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBase(dur float64) stimuli.Base {
	var bs stimuli.Base
	bs.Geometry.Defaults()
	bs.SizeX = 4
	bs.SizeY = 3
	bs.Density = 5
	bs.FrameDuration = 10
	bs.Duration = dur
	bs.BackgroundLuminance = 40
	return bs
}

func testEnv(t *testing.T) *Env {
	nl, err := stimuli.NewNull(testBase(30))
	require.NoError(t, err)
	var gp stimuli.GratingParams
	gp.Defaults()
	gr, err := stimuli.NewFullfieldDriftingSinusoidalGrating(testBase(20), gp)
	require.NoError(t, err)
	ev := &Env{Nm: "test", Stimuli: []stimuli.VisualStimulus{nl, gr}}
	ev.Defaults()
	require.NoError(t, ev.Validate())
	ev.Init(2)
	return ev
}

func TestEnvCounters(t *testing.T) {
	ev := testEnv(t)
	type step struct {
		epoch, trial int
		epochChg     bool
	}
	exp := []step{{0, 0, false}, {0, 1, false}, {0, 2, false}, {1, 0, true}, {1, 1, false}}
	for i, st := range exp {
		require.True(t, ev.Step(), "step %d", i)
		cur, _, chg := ev.Counter(env.Epoch)
		assert.Equal(t, st.epoch, cur, "step %d", i)
		assert.Equal(t, st.epochChg, chg, "step %d", i)
		cur, _, _ = ev.Counter(env.Trial)
		assert.Equal(t, st.trial, cur, "step %d", i)
	}
	assert.False(t, ev.Step())
	run, _, _ := ev.Counter(env.Run)
	assert.Equal(t, 2, run)
	assert.Equal(t, 2, ev.NStim)
	assert.Equal(t, []env.TimeScales{env.Run, env.Epoch, env.Trial}, ev.Counters())
	cur, prv, chg := ev.Counter(env.Tick)
	assert.Equal(t, -1, cur)
	assert.Equal(t, -1, prv)
	assert.False(t, chg)
}

func TestEnvStates(t *testing.T) {
	ev := testEnv(t)
	require.True(t, ev.Step())

	img := ev.State("Image")
	require.NotNil(t, img)
	assert.Equal(t, []int{15, 20}, img.Shapes())
	for i := 0; i < img.Len(); i++ {
		assert.InDelta(t, 0.5, img.FloatVal1D(i), 1e-6)
	}
	assert.Equal(t, 80.0, ev.MaxLum())

	lgn := ev.State("LGN")
	require.NotNil(t, lgn)
	assert.Equal(t, ev.Vis.OutShape(), lgn.Shapes())
	assert.Equal(t, 2, lgn.Dim(0))
	on := ev.State("LGNon")
	assert.Equal(t, ev.Vis.OutShape()[1:], on.Shapes())
	assert.Equal(t, ev.Vis.OutShape()[1:], ev.State("LGNoff").Shapes())
	assert.Nil(t, ev.State("Reward"))

	els := ev.States()
	require.Len(t, els, 5)
	assert.Equal(t, "Image", els[0].Name)
	assert.Equal(t, []int{15, 20}, els[0].Shape)
	assert.Nil(t, ev.Actions())

	// move on to the grating, whose phase is in Params
	for i := 0; i < 4; i++ {
		require.True(t, ev.Step())
	}
	prm := ev.State("Params")
	require.Equal(t, 1, prm.Len())
	assert.Greater(t, prm.FloatVal1D(0), 0.0)
	assert.Contains(t, ev.String(), "stim 1 frame 1")
}

func TestEnvPresent(t *testing.T) {
	ev := &Env{Nm: "model"}
	ev.Defaults()
	ev.Init(0)
	assert.False(t, ev.Step())
	assert.Equal(t, "none", ev.String())
	assert.Error(t, ev.Present(nil, nil))

	nl, err := stimuli.NewNull(testBase(30))
	require.NoError(t, err)
	for p := 0; p < 2; p++ {
		require.NoError(t, ev.Present(nl, stimuli.Frames(nl, 3)))
		n := 0
		for ev.Step() {
			n++
		}
		assert.Equal(t, 3, n)
		assert.Equal(t, p, ev.Epoch.Cur)
	}
}

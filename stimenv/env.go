// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stimenv presents visual stimuli to a network as an emergent
env.Env: each Step shows the next frame of the current stimulus, as raw
luminance and as LGN on / off DoG responses.
*/
package stimenv

import (
	"fmt"

	"github.com/CompCogNeuro/vstim/experiment"
	"github.com/CompCogNeuro/vstim/stimuli"
	"github.com/chewxy/math32"
	"github.com/emer/emergent/env"
	"github.com/emer/etable/etensor"
	"github.com/pkg/errors"
)

// Env steps through the frames of a list of stimuli. Epoch is the
// stimulus index, and Trial the frame within the stimulus.
type Env struct {
	Nm      string                   `desc:"name of this environment"`
	Dsc     string                   `desc:"description of this environment"`
	Stimuli []stimuli.VisualStimulus `view:"-" desc:"stimuli presented in order by Step -- more can be shown with Present"`
	Vis     Vis                      `desc:"visual processing params"`
	Stim    stimuli.VisualStimulus   `view:"-" desc:"current stimulus"`
	Frames  []stimuli.Frame          `view:"-" desc:"frames of the current stimulus"`
	Frame   stimuli.Frame            `view:"-" desc:"current frame"`
	Image   etensor.Float32          `view:"no-inline" desc:"current frame luminance, normalized so the background is .5"`
	Params  etensor.Float64          `view:"no-inline" desc:"per-frame parameters of the current frame"`
	Run     env.Ctr                  `view:"inline" desc:"current run of model as provided during Init"`
	Epoch   env.Ctr                  `view:"inline" desc:"index of the current stimulus"`
	Trial   env.Ctr                  `view:"inline" desc:"frame within the current stimulus"`
	NStim   int                      `inactive:"+" desc:"number of stimuli presented since Init"`
	nextIdx int
}

func (ev *Env) Name() string { return ev.Nm }
func (ev *Env) Desc() string { return ev.Dsc }

func (ev *Env) Defaults() {
	ev.Vis.Defaults()
}

func (ev *Env) Validate() error {
	for i, st := range ev.Stimuli {
		if err := st.StimBase().Validate(); err != nil {
			return errors.Wrapf(err, "stimenv: %v stimulus %d", ev.Nm, i)
		}
	}
	return nil
}

func (ev *Env) Counters() []env.TimeScales {
	return []env.TimeScales{env.Run, env.Epoch, env.Trial}
}

func (ev *Env) States() env.Elements {
	rows, cols := ev.Frame.Dims()
	els := env.Elements{
		{"Image", []int{rows, cols}, []string{"Y", "X"}},
		{"LGN", ev.Vis.OutShape(), []string{"Polarity", "Y", "X"}},
		{"LGNon", ev.Vis.OutShape()[1:], []string{"Y", "X"}},
		{"LGNoff", ev.Vis.OutShape()[1:], []string{"Y", "X"}},
		{"Params", []int{len(ev.Frame.Params)}, []string{"N"}},
	}
	return els
}

func (ev *Env) State(element string) etensor.Tensor {
	switch element {
	case "Image":
		return &ev.Image
	case "LGN":
		return &ev.Vis.OutTsr
	case "LGNon":
		return ev.Vis.OutTsr.SubSpace([]int{0})
	case "LGNoff":
		return ev.Vis.OutTsr.SubSpace([]int{1})
	case "Params":
		return &ev.Params
	}
	return nil
}

func (ev *Env) Actions() env.Elements {
	return nil
}

func (ev *Env) Init(run int) {
	ev.Run.Scale = env.Run
	ev.Epoch.Scale = env.Epoch
	ev.Trial.Scale = env.Trial
	ev.Run.Init()
	ev.Epoch.Init()
	ev.Trial.Init()
	ev.Run.Cur = run
	ev.Trial.Cur = -1 // init state -- key so that first Step() = 0
	ev.Trial.Max = 0
	ev.NStim = 0
	ev.nextIdx = 0
	ev.Stim = nil
	ev.Frames = nil
}

// Present makes st the current stimulus with the given frames, which
// the following Steps show in order.
func (ev *Env) Present(st stimuli.VisualStimulus, frames []stimuli.Frame) error {
	if st == nil {
		return errors.Errorf("stimenv: %v Present called with nil stimulus", ev.Nm)
	}
	ev.Stim = st
	ev.Frames = frames
	ev.Epoch.Set(ev.NStim)
	ev.NStim++
	ev.Trial.Max = len(frames)
	ev.Trial.Cur = -1
	return nil
}

// NextStim presents the next stimulus from Stimuli, for DurationFrames
// frames. Returns false when there are no more.
func (ev *Env) NextStim() bool {
	if ev.nextIdx >= len(ev.Stimuli) {
		return false
	}
	st := ev.Stimuli[ev.nextIdx]
	ev.nextIdx++
	return ev.Present(st, stimuli.Frames(st, st.StimBase().DurationFrames())) == nil
}

// Step shows the next frame, moving on to the next stimulus in Stimuli
// when the current one is done. Returns false when all frames are shown.
func (ev *Env) Step() bool {
	if ev.Trial.Cur >= 0 {
		ev.Epoch.Same() // stays changed on the first frame of a stimulus
	}
	for ev.Trial.Cur+1 >= len(ev.Frames) {
		if !ev.NextStim() {
			return false
		}
	}
	ev.Trial.Incr()
	ev.SetFrame(ev.Frames[ev.Trial.Cur])
	return true
}

// SetFrame sets all states from the given frame
func (ev *Env) SetFrame(fr stimuli.Frame) {
	ev.Frame = fr
	rows, cols := fr.Dims()
	ev.Image.SetShape([]int{rows, cols}, nil, []string{"Y", "X"})
	maxLum := ev.MaxLum()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := float32(fr.Pixels.At(r, c) / maxLum)
			ev.Image.Set([]int{r, c}, math32.Min(1, math32.Max(0, v)))
		}
	}
	ev.Params.SetShape([]int{len(fr.Params)}, nil, []string{"N"})
	copy(ev.Params.Values, fr.Params)
	ev.Vis.Filter(fr.Image(maxLum))
}

// MaxLum is the luminance mapped to 1: twice the background of the
// current stimulus, or 1 for a black background.
func (ev *Env) MaxLum() float64 {
	if ev.Stim != nil {
		if bg := ev.Stim.StimBase().BackgroundLuminance; bg > 0 {
			return 2 * bg
		}
	}
	return 1
}

func (ev *Env) Action(element string, input etensor.Tensor) {
	// nop
}

func (ev *Env) Counter(scale env.TimeScales) (cur, prv int, chg bool) {
	switch scale {
	case env.Run:
		return ev.Run.Query()
	case env.Epoch:
		return ev.Epoch.Query()
	case env.Trial:
		return ev.Trial.Query()
	}
	return -1, -1, false
}

// String returns the current stimulus and frame
func (ev *Env) String() string {
	if ev.Stim == nil {
		return "none"
	}
	return fmt.Sprintf("stim %d frame %d: %v", ev.Epoch.Cur, ev.Trial.Cur, ev.Stim.StimBase())
}

// Compile-time check that implements Env interface
var _ env.Env = (*Env)(nil)

var _ experiment.Model = (*Env)(nil)

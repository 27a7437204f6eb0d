// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/emer/emergent/params"
)

// ParamSets is the default set of parameters -- Base is always applied, and others can be optionally
// selected to apply on top of that
var ParamSets = params.Sets{
	{Name: "Base", Desc: "sparse noise on a 11 deg visual field, one image per 7 ms frame", Sheets: params.Sheets{
		"Sim": &params.Sheet{
			{Sel: "Sim", Desc: "visual field of the model",
				Params: params.Params{
					"Sim.Experiment":               "Sparse",
					"Sim.Geom.Geom.SizeX":          "11",
					"Sim.Geom.Geom.SizeY":          "11",
					"Sim.Geom.Geom.Density":        "10",
					"Sim.Geom.FrameDuration":       "7",
					"Sim.Geom.BackgroundLuminance": "50",
				}},
		},
	}},
	{Name: "SparseGrid", Desc: "sparse noise with spots aligned to an 11 x 11 grid", Sheets: params.Sheets{
		"Sim": &params.Sheet{
			{Sel: "Sim", Desc: "grid-aligned spots",
				Params: params.Params{
					"Sim.Experiment":                "Sparse",
					"Sim.Noise.Grid":                "true",
					"Sim.Noise.GridSize":            "11",
					"Sim.Noise.TimePerImage":        "14",
					"Sim.Noise.TotalNumberOfImages": "100",
				}},
		},
	}},
	{Name: "Dense", Desc: "dense noise on an 11 x 11 grid", Sheets: params.Sheets{
		"Sim": &params.Sheet{
			{Sel: "Sim", Desc: "every cell black, gray or white",
				Params: params.Params{
					"Sim.Experiment":                "Dense",
					"Sim.Noise.Grid":                "false",
					"Sim.Noise.GridSize":            "11",
					"Sim.Noise.TimePerImage":        "14",
					"Sim.Noise.TotalNumberOfImages": "100",
				}},
		},
	}},
	{Name: "Tuning", Desc: "full-field drifting gratings at 8 orientations", Sheets: params.Sheets{
		"Sim": &params.Sheet{
			{Sel: "Sim", Desc: "orientation tuning curves",
				Params: params.Params{
					"Sim.Experiment":               "Tuning",
					"Sim.Tuning.NumOrientations":   "8",
					"Sim.Tuning.SpatialFrequency":  "0.8",
					"Sim.Tuning.TemporalFrequency": "2",
					"Sim.Tuning.GratingDuration":   "1036", // 148 frames
					"Sim.Tuning.NumTrials":         "2",
				}},
		},
	}},
	{Name: "Spontaneous", Desc: "blank screen at background luminance", Sheets: params.Sheets{
		"Sim": &params.Sheet{
			{Sel: "Sim", Desc: "spontaneous activity",
				Params: params.Params{
					"Sim.Experiment":     "Spontaneous",
					"Sim.Spont.Duration": "1029",
				}},
		},
	}},
}

// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
vstim runs visual stimulation experiments: sparse and dense noise for
receptive field mapping, full-field drifting gratings for orientation
tuning, and a blank screen for spontaneous activity. Every frame is
passed through the LGN DoG filtering of the stimulus environment and
logged, optionally along with PNG images of the frames.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/CompCogNeuro/vstim/experiment"
	"github.com/CompCogNeuro/vstim/stimenv"
	"github.com/CompCogNeuro/vstim/stimuli"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/chewxy/math32"
	"github.com/emer/emergent/params"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/gi/gi"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func main() {
	TheSim.New()
	TheSim.Config()
	if err := TheSim.CmdArgs(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// LogPrec is precision for saving float values in logs
const LogPrec = 4

// Sim holds the experiment configuration, the stimulus environment
// and the logs.
type Sim struct {
	Experiment string                                       `desc:"which experiment to run: Spontaneous, Tuning, Sparse or Dense"`
	Geom       experiment.ModelGeometry                     `view:"inline" desc:"visual field of the model"`
	Spont      experiment.MeasureSpontaneousActivity        `desc:"spontaneous activity parameters"`
	Tuning     experiment.MeasureOrientationTuningFullfield `desc:"orientation tuning parameters"`
	Noise      experiment.MeasureNoise                      `desc:"sparse and dense noise parameters -- Type is set from Experiment"`
	Env        stimenv.Env                                  `desc:"stimulus environment, filtering each frame"`
	FrameLog   *etable.Table                                `view:"no-inline" desc:"one row per presented frame"`
	StimLog    *etable.Table                                `view:"no-inline" desc:"one row per presented stimulus"`
	Params     params.Sets                                  `view:"no-inline" desc:"full collection of param sets"`
	ParamSet   string                                       `desc:"which set of *additional* parameters to use -- always applies Base and optionaly this next if set"`
	Tag        string                                       `desc:"extra tag string to add to any file names output from sim"`
	Dir        string                                       `desc:"directory for output files"`
	SavePNG    bool                                         `desc:"save every frame as a PNG image"`

	FrameFile    *os.File `view:"-" desc:"frame log file"`
	LogSetParams bool     `view:"-" desc:"if true, print message for all params that are set"`
	curExp       string
}

// TheSim is the overall state for this simulation
var TheSim Sim

// New creates new blank elements and initializes defaults
func (ss *Sim) New() {
	ss.FrameLog = &etable.Table{}
	ss.StimLog = &etable.Table{}
	ss.Params = ParamSets
	ss.Dir = "."
	ss.Defaults()
}

func (ss *Sim) Defaults() {
	ss.Experiment = "Sparse"
	ss.Geom.Defaults()
	ss.Spont.Defaults()
	ss.Tuning.Defaults()
	ss.Noise.Defaults()
	ss.Env.Defaults()
}

////////////////////////////////////////////////////////////////////////////////////////////
// 		Configs

// Config configures all the elements using the standard functions
func (ss *Sim) Config() {
	ss.ConfigEnv()
	ss.ConfigFrameLog(ss.FrameLog)
	ss.ConfigStimLog(ss.StimLog)
}

func (ss *Sim) ConfigEnv() {
	ss.Env.Nm = "VStim"
	ss.Env.Dsc = "visual stimuli presented by the experiment controller"
	ss.Env.Init(0)
}

// Init applies the params and resets the environment and logs
func (ss *Sim) Init() error {
	if err := ss.SetParams("", ss.LogSetParams); err != nil {
		return err
	}
	ss.Env.Init(0)
	ss.FrameLog.SetNumRows(0)
	ss.StimLog.SetNumRows(0)
	return nil
}

// CurExperiment returns the experiment selected by Experiment
func (ss *Sim) CurExperiment() (experiment.Experiment, error) {
	switch ss.Experiment {
	case "Spontaneous":
		return &ss.Spont, nil
	case "Tuning":
		return &ss.Tuning, nil
	case "Sparse", "Dense":
		if err := ss.Noise.Type.FromString(ss.Experiment); err != nil {
			return nil, err
		}
		return &ss.Noise, nil
	}
	return nil, errors.Errorf("vstim: unknown experiment %q", ss.Experiment)
}

// Run presents the current experiment, logging every frame and stimulus
func (ss *Sim) Run(ctx context.Context) error {
	ex, err := ss.CurExperiment()
	if err != nil {
		return err
	}
	ss.curExp = ex.Name()
	ec := experiment.NewController(ss.Geom)
	recs, err := ec.Run(ctx, ss, ex)
	for i := range recs {
		ss.LogStim(ss.StimLog, &recs[i])
	}
	return err
}

// Present implements experiment.Model: steps the environment through
// all frames of the stimulus
func (ss *Sim) Present(st stimuli.VisualStimulus, frames []stimuli.Frame) error {
	if err := ss.Env.Present(st, frames); err != nil {
		return err
	}
	for ss.Env.Step() {
		ss.LogFrame(ss.FrameLog)
		if ss.SavePNG {
			if err := ss.SaveFrame(); err != nil {
				return err
			}
		}
	}
	return nil
}

// SaveFrame saves the current frame as a PNG image
func (ss *Sim) SaveFrame() error {
	ev := &ss.Env
	fnm := filepath.Join(ss.Dir, fmt.Sprintf("%s_%s_%03d_%04d.png", ss.RunName(), ss.curExp, ev.Epoch.Cur, ev.Trial.Cur))
	if err := imgio.Save(fnm, ev.Frame.Image(ev.MaxLum()), imgio.PNGEncoder()); err != nil {
		return errors.Wrapf(err, "saving frame %s", fnm)
	}
	return nil
}

/////////////////////////////////////////////////////////////////////////
//   Params setting

// ParamsName returns name of current set of parameters
func (ss *Sim) ParamsName() string {
	if ss.ParamSet == "" {
		return "Base"
	}
	return ss.ParamSet
}

// SetParams sets the params for "Base" and then current ParamSet.
// If sheet is empty, then it applies all avail sheets, otherwise just the named sheet
// if setMsg = true then we output a message for each param that was set.
func (ss *Sim) SetParams(sheet string, setMsg bool) error {
	if sheet == "" {
		// this is important for catching typos and ensuring that all sheets can be used
		ss.Params.ValidateSheets([]string{"Sim"})
	}
	err := ss.SetParamsSet("Base", sheet, setMsg)
	if ss.ParamSet != "" && ss.ParamSet != "Base" {
		err = ss.SetParamsSet(ss.ParamSet, sheet, setMsg)
	}
	return err
}

// SetParamsSet sets the params for given params.Set name.
// If sheet is empty, then it applies all avail sheets
// otherwise just the named sheet
// if setMsg = true then we output a message for each param that was set.
func (ss *Sim) SetParamsSet(setNm string, sheet string, setMsg bool) error {
	pset, err := ss.Params.SetByNameTry(setNm)
	if err != nil {
		return err
	}
	if sheet == "" || sheet == "Sim" {
		simp, ok := pset.Sheets["Sim"]
		if ok {
			simp.Apply(ss, setMsg)
		}
	}
	return err
}

////////////////////////////////////////////////////////////////////////////////////////////
// 		Logging

// RunName returns a name for this run that combines Tag and Params -- add this to
// any file names that are saved.
func (ss *Sim) RunName() string {
	if ss.Tag != "" {
		return ss.Tag + "_" + ss.ParamsName()
	} else {
		return ss.ParamsName()
	}
}

// LogFileName returns default log file name
func (ss *Sim) LogFileName(lognm string) string {
	return filepath.Join(ss.Dir, "VStim_"+ss.RunName()+"_"+lognm+".csv")
}

// LogFrame adds the current frame of the environment to the FrameLog table
func (ss *Sim) LogFrame(dt *etable.Table) {
	ev := &ss.Env
	row := dt.Rows
	dt.SetNumRows(row + 1)

	mean, min, max := ev.Frame.Stats()
	prm := 0.0
	if len(ev.Frame.Params) > 0 {
		prm = ev.Frame.Params[0]
	}
	dt.SetCellString("Experiment", row, ss.curExp)
	dt.SetCellFloat("Stim", row, float64(ev.Epoch.Cur))
	dt.SetCellFloat("Trial", row, float64(ev.Stim.StimBase().Trial))
	dt.SetCellFloat("Frame", row, float64(ev.Trial.Cur))
	dt.SetCellFloat("Param", row, prm)
	dt.SetCellFloat("MeanLum", row, mean)
	dt.SetCellFloat("MinLum", row, min)
	dt.SetCellFloat("MaxLum", row, max)
	dt.SetCellFloat("LGNMean", row, float64(tensorMean(&ev.Vis.OutTsr)))

	if ss.FrameFile != nil {
		if row == 0 {
			dt.WriteCSVHeaders(ss.FrameFile, etable.Tab)
		}
		dt.WriteCSVRow(ss.FrameFile, row, etable.Tab, true)
	}
}

// tensorMean is the mean of the finite values of tsr
func tensorMean(tsr *etensor.Float32) float32 {
	sum := float32(0)
	n := 0
	for _, v := range tsr.Values {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float32(n)
}

func (ss *Sim) ConfigFrameLog(dt *etable.Table) {
	dt.SetMetaData("name", "FrameLog")
	dt.SetMetaData("desc", "Record of every presented frame")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))

	sch := etable.Schema{
		{"Experiment", etensor.STRING, nil, nil},
		{"Stim", etensor.INT64, nil, nil},
		{"Trial", etensor.INT64, nil, nil},
		{"Frame", etensor.INT64, nil, nil},
		{"Param", etensor.FLOAT64, nil, nil},
		{"MeanLum", etensor.FLOAT64, nil, nil},
		{"MinLum", etensor.FLOAT64, nil, nil},
		{"MaxLum", etensor.FLOAT64, nil, nil},
		{"LGNMean", etensor.FLOAT64, nil, nil},
	}
	dt.SetFromSchema(sch, 0)
}

// LogStim adds a stimulus record to the StimLog table
func (ss *Sim) LogStim(dt *etable.Table, rc *experiment.Record) {
	row := dt.Rows
	dt.SetNumRows(row + 1)

	dt.SetCellString("Experiment", row, rc.Experiment)
	dt.SetCellFloat("Stim", row, float64(rc.Stim))
	dt.SetCellFloat("Trial", row, float64(rc.Trial))
	dt.SetCellFloat("Frames", row, float64(rc.Frames))
	dt.SetCellFloat("MeanLum", row, rc.MeanLum)
	dt.SetCellFloat("MinLum", row, rc.MinLum)
	dt.SetCellFloat("MaxLum", row, rc.MaxLum)
}

func (ss *Sim) ConfigStimLog(dt *etable.Table) {
	dt.SetMetaData("name", "StimLog")
	dt.SetMetaData("desc", "Summary of each presented stimulus")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))

	dt.SetFromSchema(etable.Schema{
		{"Experiment", etensor.STRING, nil, nil},
		{"Stim", etensor.INT64, nil, nil},
		{"Trial", etensor.INT64, nil, nil},
		{"Frames", etensor.INT64, nil, nil},
		{"MeanLum", etensor.FLOAT64, nil, nil},
		{"MinLum", etensor.FLOAT64, nil, nil},
		{"MaxLum", etensor.FLOAT64, nil, nil},
	}, 0)
}

// CmdArgs parses the command line, runs the selected experiment and saves the logs
func (ss *Sim) CmdArgs(args []string) error {
	var saveFrameLog bool
	var note string
	fs := flag.NewFlagSet("vstim", flag.ContinueOnError)
	fs.StringVar(&ss.ParamSet, "params", "", "ParamSet name to use -- must be valid name as listed in compiled-in params or loaded params")
	fs.StringVar(&ss.Tag, "tag", "", "extra tag to add to file names saved from this run")
	fs.StringVar(&note, "note", "", "user note -- describe the run params etc")
	fs.StringVar(&ss.Dir, "dir", ".", "directory for log files and images")
	fs.BoolVar(&ss.LogSetParams, "setparams", false, "if true, print a record of each parameter that is set")
	fs.BoolVar(&ss.SavePNG, "png", false, "if true, save every frame as a PNG image")
	fs.BoolVar(&saveFrameLog, "framelog", true, "if true, save frame log to file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := ss.Init(); err != nil {
		return err
	}

	if note != "" {
		log.WithField("note", note).Info("run note")
	}
	if ss.ParamSet != "" {
		log.WithField("params", ss.ParamSet).Info("using ParamSet")
	}

	if saveFrameLog {
		var err error
		fnm := ss.LogFileName("frm")
		ss.FrameFile, err = os.Create(fnm)
		if err != nil {
			log.WithError(err).Error("could not create frame log")
			ss.FrameFile = nil
		} else {
			log.WithField("file", fnm).Info("saving frame log")
			defer ss.FrameFile.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := ss.Run(ctx)
	fnm := ss.LogFileName("stim")
	if serr := ss.StimLog.SaveCSV(gi.FileName(fnm), etable.Tab, etable.Headers); serr != nil {
		log.WithError(serr).Error("could not save stimulus log")
	} else {
		log.WithFields(log.Fields{"file": fnm, "stimuli": ss.StimLog.Rows}).Info("saved stimulus log")
	}
	return err
}

// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stimenv

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/emer/etable/etensor"
	"github.com/emer/vision/dog"
	"github.com/emer/vision/vfilter"
)

// Vis does LGN-like DoG filtering on stimulus frames
type Vis struct {
	ClipToFit bool            `desc:"if true, and input image is larger than target image size, central region is clipped out as the input -- otherwise image is sized to target size"`
	DoG       dog.Filter      `desc:"LGN DoG filter parameters"`
	Geom      vfilter.Geom    `inactive:"+" view:"inline" desc:"geometry of input, output"`
	ImgSize   image.Point     `desc:"target image size to use -- images will be rescaled to this size"`
	DoGTsr    etensor.Float32 `view:"no-inline" desc:"DoG filter tensor"`
	Img       image.Image     `view:"-" desc:"current input image"`
	ImgTsr    etensor.Float32 `view:"no-inline" desc:"input image as tensor, padded for filtering"`
	OutTsr    etensor.Float32 `view:"no-inline" desc:"DoG filter output tensor: on / off polarity x Y x X"`
}

func (vi *Vis) Defaults() {
	vi.ClipToFit = false
	vi.DoG.Defaults()
	sz := 12
	spc := 2
	vi.DoG.SetSize(sz, spc)
	// note: first arg is border -- Geom sets border to .5 * filter size
	vi.Geom.Set(image.Point{0, 0}, image.Point{spc, spc}, image.Point{sz, sz})
	vi.ImgSize = image.Point{32, 32}
	vi.Geom.SetSize(vi.ImgSize.Add(vi.Geom.Border.Mul(2)))
	vi.DoG.ToTensor(&vi.DoGTsr)
	vi.ImgTsr.SetMetaData("grid-fill", "1")
}

// SetImage sets current image for processing
func (vi *Vis) SetImage(img image.Image) {
	vi.Img = img
	insz := vi.Geom.In
	ibd := img.Bounds()
	isz := ibd.Size()
	if vi.ClipToFit && isz.X > insz.X && isz.Y > insz.Y {
		st := isz.Sub(insz).Div(2).Add(ibd.Min)
		ed := st.Add(insz)
		vi.Img = clone.AsRGBA(img).SubImage(image.Rectangle{Min: st, Max: ed})
		vfilter.RGBToGrey(vi.Img, &vi.ImgTsr, 0, false)
		return
	}
	if isz != vi.ImgSize {
		vi.Img = transform.Resize(vi.Img, vi.ImgSize.X, vi.ImgSize.Y, transform.Linear)
	}
	vfilter.RGBToGrey(vi.Img, &vi.ImgTsr, vi.Geom.FiltRt.X, false) // pad for filt, bot zero
	vfilter.WrapPad(&vi.ImgTsr, vi.Geom.FiltRt.X)
}

// LGNDoG runs DoG filtering on the current image
func (vi *Vis) LGNDoG() {
	flt := vi.DoG.FilterTensor(&vi.DoGTsr, dog.Net)
	vfilter.Conv1(&vi.Geom, flt, &vi.ImgTsr, &vi.OutTsr, vi.DoG.Gain)
	// log norm is generally good it seems for dogs
	vfilter.TensorLogNorm(&vi.OutTsr, 0) // 0 = renorm all, 1 = renorm within each on / off separately
}

// Filter is overall method to run filters on given image
func (vi *Vis) Filter(img image.Image) {
	vi.SetImage(img)
	vi.LGNDoG()
}

// OutShape is the shape of the filter output: polarity, Y, X
func (vi *Vis) OutShape() []int {
	return []int{2, vi.Geom.Out.Y, vi.Geom.Out.X}
}

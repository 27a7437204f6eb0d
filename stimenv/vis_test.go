// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stimenv

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisClipToFit(t *testing.T) {
	var vi Vis
	vi.Defaults()
	vi.ClipToFit = true
	in := vi.Geom.In
	big := image.NewGray(image.Rect(0, 0, in.X+20, in.Y+10))
	vi.Filter(big)
	// central region of the input size, not resized
	assert.Equal(t, in, vi.Img.Bounds().Size())
	assert.Equal(t, image.Point{10, 5}, vi.Img.Bounds().Min)
	assert.Equal(t, []int{in.Y, in.X}, vi.ImgTsr.Shapes())
	assert.Equal(t, vi.OutShape(), vi.OutTsr.Shapes())
}

func TestVisResize(t *testing.T) {
	for _, clip := range []bool{false, true} {
		var vi Vis
		vi.Defaults()
		vi.ClipToFit = clip
		// smaller than the input size, so always resized
		vi.Filter(image.NewGray(image.Rect(0, 0, 15, 20)))
		assert.Equal(t, vi.ImgSize, vi.Img.Bounds().Size(), "clip %v", clip)
		pad := vi.Geom.FiltRt.X
		assert.Equal(t, []int{vi.ImgSize.Y + 2*pad, vi.ImgSize.X + 2*pad}, vi.ImgTsr.Shapes(), "clip %v", clip)
		assert.Equal(t, vi.OutShape(), vi.OutTsr.Shapes(), "clip %v", clip)
	}
}

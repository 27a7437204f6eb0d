// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package vstim generates reproducible visual stimuli for simulated visual
systems, and runs the standard experiments that use them.

The packages, from the bottom up:

  - sheetcoords maps continuous visual-field coordinates onto pixel matrices.
  - mtrand is a seeded Mersenne Twister stream with the same draws as
    numpy's RandomState, so stimuli match the Python reference tools.
  - randfield samples sparse and dense random luminance fields on a lattice.
  - stimuli has the frame streams: SparseNoise, DenseNoise,
    FullfieldDriftingSinusoidalGrating and Null.
  - frametest compares two frame streams frame by frame.
  - experiment builds stimulus protocols and presents them to a model.
  - stimenv is an emergent env.Env showing frames and their LGN DoG responses.

The vstim command in cmd/vstim runs an experiment and logs every frame.
*/
package vstim

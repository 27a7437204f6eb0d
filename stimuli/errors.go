// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stimuli

import (
	"github.com/CompCogNeuro/vstim/randfield"
	"github.com/pkg/errors"
)

var (
	// ErrConfiguration is returned for non-positive geometry or density,
	// or field parameters that cannot produce a lattice.
	ErrConfiguration = randfield.ErrConfiguration

	// ErrInvalidConfiguration is returned when the time per image is not
	// a whole number of frames.
	ErrInvalidConfiguration = errors.New("stimuli: time per image must be a whole number of frames")

	// ErrValue is returned for a grid size that is not a positive integer.
	ErrValue = errors.New("stimuli: grid size must be a positive integer")

	// ErrNotImplemented is returned for stimulus types with no frame generator.
	ErrNotImplemented = errors.New("stimuli: not implemented")
)

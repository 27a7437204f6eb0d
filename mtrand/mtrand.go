// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package mtrand provides RandomState, a seeded Mersenne Twister stream whose
draws are bit-compatible with the legacy numpy.random.RandomState seeded
with a scalar integer.

Compatibility covers the draw order as well as the values: RandInt uses
masked rejection sampling on 32-bit outputs, and RandomSample builds a
53-bit double from two 32-bit outputs. Stimuli generated from the same
seed therefore match frames generated by the scientific-Python stimulus
libraries pixel for pixel.
*/
package mtrand

import (
	"fmt"

	"gonum.org/v1/gonum/mathext/prng"
)

// RandomState is a seeded MT19937 stream.
// It is not safe for concurrent use; each stimulus owns its own.
type RandomState struct {
	seed uint32
	mt   *prng.MT19937
}

// New returns a RandomState seeded with init_genrand(seed)
func New(seed uint32) *RandomState {
	rs := &RandomState{mt: prng.NewMT19937()}
	rs.Seed(seed)
	return rs
}

// Seed resets the stream to the start of the sequence for seed
func (rs *RandomState) Seed(seed uint32) {
	rs.seed = seed
	rs.mt.Seed(uint64(seed))
}

// InitialSeed returns the seed the stream was last reset with
func (rs *RandomState) InitialSeed() uint32 { return rs.seed }

// Uint32 returns the next raw 32-bit output
func (rs *RandomState) Uint32() uint32 { return rs.mt.Uint32() }

// RandomSample returns a float64 in [0, 1) with 53 bits of randomness,
// consuming two 32-bit outputs.
func (rs *RandomState) RandomSample() float64 {
	a := rs.mt.Uint32() >> 5
	b := rs.mt.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) / 9007199254740992.0
}

// Uniform returns a float64 in [low, high)
func (rs *RandomState) Uniform(low, high float64) float64 {
	return low + (high-low)*rs.RandomSample()
}

// RandInt returns an int in [low, high). An empty range of one value
// consumes no randomness. It panics if high <= low or the range does
// not fit in 32 bits.
func (rs *RandomState) RandInt(low, high int) int {
	if high <= low {
		panic(fmt.Sprintf("mtrand: RandInt low >= high: %d >= %d", low, high))
	}
	rng := uint64(high - low - 1)
	if rng > 0xFFFFFFFF {
		panic(fmt.Sprintf("mtrand: RandInt range %d exceeds 32 bits", rng+1))
	}
	if rng == 0 {
		return low
	}
	mask := uint32(mask(rng))
	r := uint32(rng)
	for {
		v := rs.mt.Uint32() & mask
		if v <= r {
			return low + int(v)
		}
	}
}

// RandInts fills a new slice of n values from RandInt(low, high), in order
func (rs *RandomState) RandInts(low, high, n int) []int {
	vals := make([]int, n)
	for i := range vals {
		vals[i] = rs.RandInt(low, high)
	}
	return vals
}

// MarshalBinary saves the full generator state
func (rs *RandomState) MarshalBinary() ([]byte, error) {
	return rs.mt.MarshalBinary()
}

// UnmarshalBinary restores generator state saved by MarshalBinary.
// The initial seed is not part of the saved state.
func (rs *RandomState) UnmarshalBinary(data []byte) error {
	if rs.mt == nil {
		rs.mt = prng.NewMT19937()
	}
	return rs.mt.UnmarshalBinary(data)
}

// mask returns the smallest all-ones bit pattern covering v
func mask(v uint64) uint64 {
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	return v
}

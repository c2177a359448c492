// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package wfdb emits signals and annotations in the WFDB-style interchange
// format: a format 212 packed signal file, a text header and a binary
// annotation file.
package wfdb

import "math"

const (
	// Channels is the fixed channel count of the packed signal file.
	Channels = 3

	// Gain is the assumed ADC gain in integer counts per millivolt. It is
	// a reverse-engineered constant, not derived from any header field,
	// and must match the gain written to the header for round-trip
	// fidelity.
	Gain = 200
)

// Quantize converts a physical signal in millivolts to integer ADC counts
// at the fixed gain, rounding to nearest.
func Quantize(signal []float64) []int16 {
	counts := make([]int16, len(signal))
	for i, v := range signal {
		counts[i] = int16(int32(math.Round(v * Gain)))
	}
	return counts
}

// Pack212 packs two signed samples into three bytes using WFDB format 212:
// the 24-bit word (odd<<12)|even serialized little-endian. Each sample is
// masked to its low 12 bits, so values outside [-2048, 2047] wrap modulo
// 4096 rather than clamp. The wrap is lossy and deliberate.
func Pack212(even, odd int16) [3]byte {
	e := uint32(uint16(even)) & 0x0FFF
	o := uint32(uint16(odd)) & 0x0FFF
	w := o<<12 | e
	return [3]byte{byte(w), byte(w >> 8), byte(w >> 16)}
}

// Unpack212 is the inverse of Pack212, sign-extending each 12-bit value.
func Unpack212(b [3]byte) (even, odd int16) {
	w := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	return signExtend12(w & 0x0FFF), signExtend12(w >> 12)
}

func signExtend12(v uint32) int16 {
	if v&0x0800 != 0 {
		v |= 0xF000
	}
	return int16(uint16(v))
}

// NormalizeFrameCount returns the number of samples that survive shape
// normalization for a raw sample count n: duplicate-pad to an even count,
// truncate to whole frames of Channels samples, then drop a final unpaired
// frame. The result is always a multiple of 2*Channels.
func NormalizeFrameCount(n int) int {
	if n%2 != 0 {
		n++
	}
	frames := n / Channels
	if frames%2 != 0 {
		frames--
	}
	return frames * Channels
}

// NormalizeFrames applies the shape normalization to counts, duplicating
// the final sample when the count is odd. Trailing samples that do not
// fill an even number of frames are dropped silently, never padded.
func NormalizeFrames(counts []int16) []int16 {
	if len(counts)%2 != 0 {
		counts = append(counts[:len(counts):len(counts)], counts[len(counts)-1])
	}
	return counts[:NormalizeFrameCount(len(counts))]
}

// PackSignal normalizes counts and packs them with Pack212. For each pair
// of consecutive frames the three bytes of channel 0 are emitted first,
// then channel 1, then channel 2; pairs follow each other in order. This
// byte order is the contract downstream decoders rely on.
func PackSignal(counts []int16) (data []byte, frames int) {
	counts = NormalizeFrames(counts)
	frames = len(counts) / Channels

	data = make([]byte, 0, frames/2*Channels*3)
	for k := 0; k+2*Channels <= len(counts); k += 2 * Channels {
		for ch := 0; ch < Channels; ch++ {
			b := Pack212(counts[k+ch], counts[k+Channels+ch])
			data = append(data, b[0], b[1], b[2])
		}
	}
	return data, frames
}

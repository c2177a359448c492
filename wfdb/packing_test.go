// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package wfdb_test

import (
	"testing"

	"github.com/OpenPSG/holter/wfdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPack212RoundTrip(t *testing.T) {
	for even := int16(-2048); even <= 2047; even += 3 {
		for odd := int16(-2048); odd <= 2047; odd += 37 {
			e, o := wfdb.Unpack212(wfdb.Pack212(even, odd))
			if e != even || o != odd {
				t.Fatalf("round trip (%d, %d) gave (%d, %d)", even, odd, e, o)
			}
		}
	}
}

func TestPack212Layout(t *testing.T) {
	// (2<<12)|1 = 0x002001, serialized little-endian.
	assert.Equal(t, [3]byte{0x01, 0x20, 0x00}, wfdb.Pack212(1, 2))
}

func TestPack212WrapsOutOfRange(t *testing.T) {
	// One past the signed 12-bit maximum wraps to the minimum; the
	// masking is modular, not saturating.
	assert.Equal(t, wfdb.Pack212(-2048, 0), wfdb.Pack212(2048, 0))
	assert.Equal(t, wfdb.Pack212(0, -1), wfdb.Pack212(0, 4095))

	even, _ := wfdb.Unpack212(wfdb.Pack212(2048, 0))
	assert.Equal(t, int16(-2048), even)
}

func TestNormalizeFrameCount(t *testing.T) {
	expected := []int{0, 0, 0, 0, 0, 6, 6, 6, 6, 6, 6, 12, 12, 12}
	for n, want := range expected {
		assert.Equalf(t, want, wfdb.NormalizeFrameCount(n), "n=%d", n)
	}
}

func TestNormalizeFramesDuplicatesFinalSample(t *testing.T) {
	got := wfdb.NormalizeFrames([]int16{1, 2, 3, 4, 5})
	assert.Equal(t, []int16{1, 2, 3, 4, 5, 5}, got)
}

func TestNormalizeFramesDropsUnpairedFrame(t *testing.T) {
	// 10 samples: 3 whole frames, the third has no pairing partner.
	got := wfdb.NormalizeFrames([]int16{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	assert.Equal(t, []int16{1, 2, 3, 4, 5, 6}, got)
}

func TestPackSignalByteOrder(t *testing.T) {
	data, frames := wfdb.PackSignal([]int16{1, 2, 3, 4, 5, 6})
	require.Equal(t, 2, frames)

	var want []byte
	for ch := int16(1); ch <= 3; ch++ {
		b := wfdb.Pack212(ch, ch+3)
		want = append(want, b[0], b[1], b[2])
	}
	assert.Equal(t, want, data)
}

func TestQuantizeRoundsToNearest(t *testing.T) {
	counts := wfdb.Quantize([]float64{0, 0.005, -0.005, 0.003, 1.0})
	assert.Equal(t, []int16{0, 1, -1, 1, 200}, counts)
}

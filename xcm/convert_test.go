// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package xcm_test

import (
	"context"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/OpenPSG/holter/xcm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertFlatSignal(t *testing.T) {
	// 600 zero samples: a full trio minus the annotation file, since a
	// flat signal has no beats.
	data := make([]byte, 1200)
	dir := t.TempDir()
	in := filepath.Join(dir, "flat.xcm")
	require.NoError(t, os.WriteFile(in, data, 0o644))

	out := filepath.Join(dir, "out")
	artifacts, err := xcm.Convert(context.Background(), in, out, xcm.Options{SampleType: xcm.Int16})
	require.NoError(t, err)

	assert.Equal(t, 200, artifacts.Frames)
	assert.Empty(t, artifacts.AnnotationPath)

	dat, err := os.ReadFile(filepath.Join(out, "flat.dat"))
	require.NoError(t, err)
	assert.Len(t, dat, 900) // 100 frame pairs, 3 channels, 3 bytes

	hdr, err := os.ReadFile(filepath.Join(out, "flat.hea"))
	require.NoError(t, err)
	assert.Contains(t, string(hdr), "flat 3 200 256\n")
}

func TestConvertDetectsBeats(t *testing.T) {
	// An in-band 5 Hz tone passes the filter untouched and produces
	// periodic maxima, so at least one beat annotation must come out.
	const fs = 256.0
	samples := make([]int16, 1024)
	for i := range samples {
		samples[i] = int16(math.Round(2000 * math.Sin(2*math.Pi*5*float64(i)/fs)))
	}
	data := make([]byte, 0, 2*len(samples))
	for _, s := range samples {
		data = binary.LittleEndian.AppendUint16(data, uint16(s))
	}

	dir := t.TempDir()
	in := filepath.Join(dir, "tone.xcm")
	require.NoError(t, os.WriteFile(in, data, 0o644))

	artifacts, err := xcm.Convert(context.Background(), in, filepath.Join(dir, "out"),
		xcm.Options{SampleType: xcm.Int16, SampleRate: 256})
	require.NoError(t, err)
	require.NotEmpty(t, artifacts.AnnotationPath)

	atr, err := os.ReadFile(artifacts.AnnotationPath)
	require.NoError(t, err)
	assert.Greater(t, len(atr), 2)
	assert.Equal(t, []byte{0x00, 0x00}, atr[len(atr)-2:])
}

func TestConvertMisalignedInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.xcm")
	require.NoError(t, os.WriteFile(in, []byte{1, 2, 3}, 0o644))

	_, err := xcm.Convert(context.Background(), in, dir, xcm.Options{SampleType: xcm.Int16})
	require.ErrorIs(t, err, xcm.ErrBufferMisaligned)
}

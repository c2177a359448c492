// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package xcm

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/OpenPSG/holter/wfdb"
	"github.com/rs/zerolog"
)

// Convert reads the XCM recording at path, band-passes it and writes the
// interchange trio into outDir. Detected R peaks are recorded as normal
// beat annotations; when none are found no annotation file is written.
//
// As with the binary Holter converter, the context carries the logger
// only and each call owns its own state.
func Convert(ctx context.Context, path, outDir string, opts Options) (*wfdb.Artifacts, error) {
	raw, err := ReadFile(path, opts)
	if err != nil {
		return nil, err
	}

	fs := opts.SampleRate
	if fs <= 0 {
		fs = DefaultSampleRate
	}

	signal := make([]float64, len(raw))
	for i, code := range raw {
		signal[i] = code * lsbMillivolts
	}
	filtered := Preprocess(signal, float64(fs))

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	artifacts, err := wfdb.WriteRecord(outDir, base, filtered, fs)
	if err != nil {
		return nil, err
	}

	peaks := DetectRPeaks(filtered, float64(fs))
	anns := make([]wfdb.Annotation, len(peaks))
	for i, p := range peaks {
		anns[i] = wfdb.Annotation{Sample: p, Symbol: 'N'}
	}
	artifacts.AnnotationPath, err = wfdb.WriteAnnotations(outDir, base, anns, fs)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("record", base).
		Int("sample_rate", fs).
		Int("frames", artifacts.Frames).
		Int("beats", len(peaks)).
		Msg("converted recording")

	return artifacts, nil
}

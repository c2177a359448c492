// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package holter

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenPSG/holter/wfdb"
	"github.com/rs/zerolog"
)

// Convert decodes the recording at path and writes the interchange trio
// into outDir, with filenames derived from the recording's base name. The
// annotation file is only written when the footer yields at least one
// valid annotation.
//
// Each call owns its own state; callers may run any number of conversions
// concurrently as long as they write to distinct output directories. The
// context is used for logger scoping only, there are no internal
// suspension points to cancel.
func Convert(ctx context.Context, path, outDir string) (*wfdb.Artifacts, error) {
	rec, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	artifacts, err := wfdb.WriteRecord(outDir, base, rec.Signal, rec.SampleRate)
	if err != nil {
		return nil, err
	}

	anns := ExtractAnnotations(rec.Footer)
	artifacts.AnnotationPath, err = wfdb.WriteAnnotations(outDir, base, anns, rec.SampleRate)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("record", base).
		Int("sample_rate", rec.SampleRate).
		Int("frames", artifacts.Frames).
		Int("annotations", len(anns)).
		Msg("converted recording")
	for _, p := range []string{artifacts.SignalPath, artifacts.HeaderPath, artifacts.AnnotationPath} {
		if p == "" {
			continue
		}
		if fi, err := os.Stat(p); err == nil {
			logger.Debug().Str("file", filepath.Base(p)).Int64("bytes", fi.Size()).Msg("wrote")
		}
	}

	return artifacts, nil
}

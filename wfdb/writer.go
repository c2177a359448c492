// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package wfdb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Artifacts lists the interchange files produced for one record.
type Artifacts struct {
	SignalPath     string // <base>.dat
	HeaderPath     string // <base>.hea
	AnnotationPath string // <base>.atr, empty when no annotation file was written
	Frames         int    // per-channel sample count after shape normalization
}

// WriteRecord quantizes a physical signal in millivolts, packs it into
// format 212 and writes <base>.dat and <base>.hea into dir, creating dir
// if needed. The header carries one record line followed by one line per
// channel:
//
//	<base> 3 <frames> <rate>
//	ECG 212 1 0 <channel*3> 200 0 mV
//
// Only I/O failures are returned; the packing itself cannot fail.
func WriteRecord(dir, base string, signal []float64, rate int) (*Artifacts, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating output directory: %w", err)
	}

	data, frames := PackSignal(Quantize(signal))

	artifacts := &Artifacts{
		SignalPath: filepath.Join(dir, base+".dat"),
		HeaderPath: filepath.Join(dir, base+".hea"),
		Frames:     frames,
	}

	if err := os.WriteFile(artifacts.SignalPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("error writing signal file: %w", err)
	}

	var hdr strings.Builder
	fmt.Fprintf(&hdr, "%s %d %d %d\n", base, Channels, frames, rate)
	for ch := 0; ch < Channels; ch++ {
		fmt.Fprintf(&hdr, "ECG 212 1 0 %d %d 0 mV\n", ch*3, Gain)
	}
	if err := os.WriteFile(artifacts.HeaderPath, []byte(hdr.String()), 0o644); err != nil {
		return nil, fmt.Errorf("error writing header file: %w", err)
	}

	return artifacts, nil
}

// WriteAnnotations writes <base>.atr into dir and returns its path. When
// anns is empty no file is written and the returned path is empty; the
// absence of an annotation file is a valid, expected outcome.
func WriteAnnotations(dir, base string, anns []Annotation, rate int) (string, error) {
	if len(anns) == 0 {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}

	path := filepath.Join(dir, base+".atr")
	if err := os.WriteFile(path, EncodeAnnotations(anns, rate), 0o644); err != nil {
		return "", fmt.Errorf("error writing annotation file: %w", err)
	}
	return path, nil
}

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
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// ErrFileTooSmall is returned when a recording is shorter than the fixed
// header and footer blocks combined.
var ErrFileTooSmall = errors.New("holter: file too small")

// Decode parses a raw recording into its header, physical signal and footer.
//
// The first HeaderSize bytes are kept verbatim, the last FooterSize bytes
// hold the annotation block, and the region in between is interpreted as
// little-endian signed 16-bit ADC codes (a trailing odd byte is ignored).
// Codes are converted to millivolts at the fixed LSBMillivolts scale; no
// amplitude validation or filtering happens here.
//
// The only failure mode is the size precondition. A malformed but
// well-sized input decodes into a signal that may be physically
// meaningless, but it is never rejected.
func Decode(data []byte) (*Record, error) {
	if len(data) < HeaderSize+FooterSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrFileTooSmall, len(data), HeaderSize+FooterSize)
	}

	header := data[:HeaderSize]
	footer := data[len(data)-FooterSize:]
	raw := data[HeaderSize : len(data)-FooterSize]

	signal := make([]float64, len(raw)/2)
	for i := range signal {
		code := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		signal[i] = float64(code) * LSBMillivolts
	}

	// The declared rate lives at header offset 2. Anything outside the
	// plausible range is replaced with the default rather than rejected.
	rate := int(binary.LittleEndian.Uint16(header[2:4]))
	if rate < MinSampleRate || rate > MaxSampleRate {
		rate = DefaultSampleRate
	}

	return &Record{
		Header:     header,
		Footer:     footer,
		Signal:     signal,
		SampleRate: rate,
	}, nil
}

// DecodeFile reads and decodes the recording at path.
func DecodeFile(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading recording: %w", err)
	}
	return Decode(data)
}

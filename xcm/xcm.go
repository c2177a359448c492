// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package xcm converts XCM-format ECG exports into the WFDB-style
// interchange trio. The XCM layout is looser than the binary Holter
// format: an optional header to skip, followed by a flat little-endian
// sample array of either 8 or 16 bits. Beat positions are not stored in
// the file, so the converter detects R peaks itself and records them as
// normal beat annotations.
package xcm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// SampleType selects the width of the raw XCM samples.
type SampleType int

const (
	Int8 SampleType = iota
	Int16
)

func (t SampleType) size() int {
	if t == Int16 {
		return 2
	}
	return 1
}

// Options configure how an XCM file is interpreted. The zero value reads
// headerless 8-bit samples at the default rate.
type Options struct {
	HeaderSize int        // Bytes to skip before the sample array
	SampleType SampleType // Raw sample width, little-endian
	SampleRate int        // Sample rate in Hz; DefaultSampleRate when zero
}

// DefaultSampleRate is assumed when the caller does not know the device's
// configured rate. XCM files carry no rate field.
const DefaultSampleRate = 256

// lsbMillivolts converts a raw ADC code to millivolts, the same assumed
// 1 LSB = 1 µV scale used for the binary Holter format.
const lsbMillivolts = 0.001

// ErrBufferMisaligned is returned when the sample region's length is not a
// multiple of the sample width.
var ErrBufferMisaligned = errors.New("xcm: buffer length is not a multiple of the sample width")

// ReadFile loads the XCM recording at path and returns the raw ADC codes
// as floats, ready for preprocessing.
func ReadFile(path string, opts Options) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading recording: %w", err)
	}
	return decode(data, opts)
}

func decode(data []byte, opts Options) ([]float64, error) {
	if opts.HeaderSize >= len(data) {
		data = nil
	} else if opts.HeaderSize > 0 {
		data = data[opts.HeaderSize:]
	}

	width := opts.SampleType.size()
	if len(data)%width != 0 {
		return nil, fmt.Errorf("%w: %d bytes, sample width %d", ErrBufferMisaligned, len(data), width)
	}

	signal := make([]float64, len(data)/width)
	switch opts.SampleType {
	case Int16:
		for i := range signal {
			signal[i] = float64(int16(binary.LittleEndian.Uint16(data[2*i:])))
		}
	default:
		for i := range signal {
			signal[i] = float64(int8(data[i]))
		}
	}
	return signal, nil
}

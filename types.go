// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package holter decodes proprietary binary Holter ECG recordings and
// re-encodes them into the WFDB-style three-file interchange format
// (packed signal, text header, binary annotations) consumed by the
// downstream analysis tooling.
package holter

const (
	// HeaderSize is the fixed size of the vendor header block.
	HeaderSize = 512

	// FooterSize is the fixed size of the trailing annotation block.
	FooterSize = 1024

	// MinSampleRate and MaxSampleRate bound the declared sample rates
	// considered plausible. The rate field is reverse engineered, so the
	// range is a guard rather than a documented part of the format.
	MinSampleRate = 100
	MaxSampleRate = 1000

	// DefaultSampleRate substitutes a declared rate outside the
	// plausible range.
	DefaultSampleRate = 256

	// LSBMillivolts converts a raw ADC code to millivolts, assuming
	// 1 LSB = 1 µV.
	LSBMillivolts = 0.001
)

// Record is a single decoded Holter recording.
type Record struct {
	Header     []byte    // First HeaderSize bytes of the file, verbatim
	Footer     []byte    // Last FooterSize bytes of the file, verbatim
	Signal     []float64 // Physical signal in millivolts
	SampleRate int       // Effective sample rate in Hz
}

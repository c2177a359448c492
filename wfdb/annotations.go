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
	"bytes"
	"fmt"
)

// Annotation marks a single event at a sample position within a record.
type Annotation struct {
	Sample int  // Sample position within the record
	Symbol rune // WFDB annotation symbol, e.g. 'N' for a normal beat
}

// MIT annotation typecodes for the standard WFDB symbol set.
var symbolCodes = map[rune]byte{
	'N': 1, 'L': 2, 'R': 3, 'a': 4, 'V': 5, 'F': 6, 'J': 7, 'A': 8,
	'S': 9, 'E': 10, 'j': 11, '/': 12, 'Q': 13, '~': 14, '|': 16,
	's': 18, 'T': 19, '*': 20, 'D': 21, '"': 22, '=': 23, 'p': 24,
	'B': 25, '^': 26, 't': 27, '+': 28, 'u': 29, '?': 30, '!': 31,
	'[': 32, ']': 33, 'e': 34, 'n': 35, '@': 36, 'x': 37, 'f': 38,
	'(': 39, ')': 40, 'r': 41,
}

// Pseudo-annotation typecodes.
const (
	codeNote = 22 // comment annotation
	codeSkip = 59 // long interval escape
	codeAux  = 63 // auxiliary string
)

// maxInterval is the largest sample interval a single annotation word can
// carry in its low 10 bits.
const maxInterval = 1023

// EncodeAnnotations renders annotations into the MIT annotation wire
// format: a sequence of little-endian 16-bit words holding a 6-bit
// typecode and a 10-bit sample interval from the previous annotation.
// Intervals beyond 10 bits are escaped with a SKIP pseudo-annotation whose
// 32-bit interval follows in PDP-11 byte order. When rate is positive a
// time-resolution note is emitted at sample zero so readers can recover
// the sample rate. The stream ends with a zero word.
//
// Annotations must be sorted by ascending sample position. Symbols without
// a standard typecode encode as 'N'.
func EncodeAnnotations(anns []Annotation, rate int) []byte {
	var buf bytes.Buffer

	if rate > 0 {
		writeWord(&buf, codeNote, 0)
		aux := fmt.Sprintf("## time resolution: %d", rate)
		writeWord(&buf, codeAux, len(aux))
		buf.WriteString(aux)
		if len(aux)%2 != 0 {
			buf.WriteByte(0)
		}
	}

	prev := 0
	for _, ann := range anns {
		code, ok := symbolCodes[ann.Symbol]
		if !ok {
			code = symbolCodes['N']
		}

		interval := ann.Sample - prev
		prev = ann.Sample

		if interval > maxInterval {
			writeWord(&buf, codeSkip, 0)
			buf.WriteByte(byte(interval >> 16))
			buf.WriteByte(byte(interval >> 24))
			buf.WriteByte(byte(interval))
			buf.WriteByte(byte(interval >> 8))
			interval = 0
		}
		writeWord(&buf, code, interval)
	}

	// End-of-stream marker.
	buf.Write([]byte{0, 0})
	return buf.Bytes()
}

func writeWord(buf *bytes.Buffer, code byte, interval int) {
	w := uint16(code)<<10 | uint16(interval&maxInterval)
	buf.WriteByte(byte(w))
	buf.WriteByte(byte(w >> 8))
}

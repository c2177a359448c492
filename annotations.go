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
	"sort"
	"unicode"

	"github.com/OpenPSG/holter/wfdb"
)

// slotSize is the fixed width of one footer annotation slot.
const slotSize = 4

// ExtractAnnotations parses the footer annotation block into an ordered,
// strictly monotone annotation stream.
//
// The footer is partitioned into 4-byte slots: a little-endian uint16
// sample position followed by a symbol byte (the fourth byte is unused).
// A zero position marks an empty slot. Symbols that are not printable,
// non-whitespace characters decode as 'N'; the vendor's annotation
// vocabulary is unknown, so this is a lossy best-effort mapping.
//
// Records are stable-sorted by position and then filtered to strictly
// increasing positions, discarding duplicates and regressions outright.
// An empty stream is a valid result, not an error.
func ExtractAnnotations(footer []byte) []wfdb.Annotation {
	anns := make([]wfdb.Annotation, 0, len(footer)/slotSize)
	for off := 0; off+slotSize <= len(footer); off += slotSize {
		pos := int(binary.LittleEndian.Uint16(footer[off : off+2]))
		if pos == 0 {
			continue
		}
		sym := rune(footer[off+2])
		if !unicode.IsPrint(sym) || unicode.IsSpace(sym) {
			sym = 'N'
		}
		anns = append(anns, wfdb.Annotation{Sample: pos, Symbol: sym})
	}

	sort.SliceStable(anns, func(i, j int) bool { return anns[i].Sample < anns[j].Sample })

	clean := anns[:0]
	last := -1
	for _, ann := range anns {
		if ann.Sample > last {
			clean = append(clean, ann)
			last = ann.Sample
		}
	}
	return clean
}

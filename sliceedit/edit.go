// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

// Package sliceedit extends the functionalities of rsc.io/edit to
// implement eficient buffered replacements in byte slices.
// All edits refer to positions in the original data, so replacement text
// is never scanned again.
package sliceedit

import (
	"bytes"

	"rsc.io/edit"
)

// A Buffer is a queue of edits to apply to a given byte slice.
type Buffer struct {
	ed  *edit.Buffer
	buf []byte
}

// NewBuffer returns a new buffer to accumulate changes to an initial data slice.
// The caller must not modify data until the Buffer is done being used.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{
		ed:  edit.NewBuffer(data),
		buf: data,
	}
}

// ReplacePairs queues, in a single scan of the data, the replacement of the
// old strings with the new ones. pairs is a list of old, new pairs, like
// strings.NewReplacer. At a given position the first matching old string wins,
// so the queued edits never overlap. It panics with an odd number of arguments.
func (b *Buffer) ReplacePairs(pairs ...string) {
	if len(pairs)%2 == 1 {
		panic("sliceedit: odd argument count in ReplacePairs")
	}

	for pos := 0; pos < len(b.buf); {
		matched := false
		for i := 0; i < len(pairs); i += 2 {
			old := pairs[i]
			if len(old) == 0 || !bytes.HasPrefix(b.buf[pos:], []byte(old)) {
				continue
			}
			b.ed.Replace(pos, pos+len(old), pairs[i+1])
			pos += len(old)
			matched = true
			break
		}
		if !matched {
			pos++
		}
	}
}

// String returns a string containing the original data
// with the queued edits applied.
func (b *Buffer) String() string {
	return b.ed.String()
}

// ReplaceString applies ReplacePairs to s in one call.
func ReplaceString(s string, pairs ...string) string {
	b := NewBuffer([]byte(s))
	b.ReplacePairs(pairs...)
	return b.String()
}

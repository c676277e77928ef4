// Copyright 2026 The Chainexec Authors
// This file is part of Chainexec.
//
// Chainexec is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Chainexec is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Chainexec. If not, see <http://www.gnu.org/licenses/>.

package rlp

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func encoded(f func(w *bytes.Buffer)) string {
	var buf bytes.Buffer
	f(&buf)
	return hex.EncodeToString(buf.Bytes())
}

func TestEncodeString(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		in   string
		want string
	}{
		{"", "80"},
		{"\x00", "00"},
		{"\x7f", "7f"},
		{"\x80", "8180"},
		{"dog", "83646f67"},
		// 55 bytes, the single-byte header boundary
		{strings.Repeat("a", 55), "b7" + strings.Repeat("61", 55)},
		{strings.Repeat("a", 56), "b838" + strings.Repeat("61", 56)},
	} {
		got := encoded(func(w *bytes.Buffer) { EncodeString(w, []byte(tc.in)) })
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestEncodeUint64(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		in   uint64
		want string
	}{
		{0, "80"},
		{1, "01"},
		{15, "0f"},
		{127, "7f"},
		{128, "8180"},
		{256, "820100"},
		{1024, "820400"},
		{0xffffff, "83ffffff"},
		{0xffffffffffffffff, "88ffffffffffffffff"},
	} {
		got := encoded(func(w *bytes.Buffer) { EncodeUint64(w, tc.in) })
		assert.Equal(t, tc.want, got, "input %d", tc.in)
	}
}

func TestEncodeList(t *testing.T) {
	t.Parallel()

	got := encoded(func(w *bytes.Buffer) {
		EncodeList(w, func(*bytes.Buffer) {})
	})
	assert.Equal(t, "c0", got)

	// [ "cat", "dog" ]
	got = encoded(func(w *bytes.Buffer) {
		EncodeList(w, func(payload *bytes.Buffer) {
			EncodeString(payload, []byte("cat"))
			EncodeString(payload, []byte("dog"))
		})
	})
	assert.Equal(t, "c88363617483646f67", got)

	// nested: [ [], [[]] ]
	got = encoded(func(w *bytes.Buffer) {
		EncodeList(w, func(payload *bytes.Buffer) {
			EncodeList(payload, func(*bytes.Buffer) {})
			EncodeList(payload, func(inner *bytes.Buffer) {
				EncodeList(inner, func(*bytes.Buffer) {})
			})
		})
	})
	assert.Equal(t, "c3c0c1c0", got)

	// long list payload gets a length-of-length header
	got = encoded(func(w *bytes.Buffer) {
		EncodeList(w, func(payload *bytes.Buffer) {
			for i := 0; i < 20; i++ {
				EncodeString(payload, []byte("abc"))
			}
		})
	})
	assert.Equal(t, "f850"+strings.Repeat("83616263", 20), got)
}

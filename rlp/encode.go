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

// Package rlp implements the subset of RLP encoding needed for hashing:
// strings, unsigned integers and lists. No reflection, no decoding.
package rlp

import (
	"bytes"
	"encoding/binary"
	"math/bits"
)

const (
	// EmptyStringCode is the RLP encoding of an empty string.
	EmptyStringCode = 0x80
	// EmptyListCode is the RLP encoding of an empty list.
	EmptyListCode = 0xc0
)

// EncodeString writes the RLP encoding of s to w.
func EncodeString(w *bytes.Buffer, s []byte) {
	switch {
	case len(s) == 1 && s[0] < EmptyStringCode:
		w.WriteByte(s[0])
	case len(s) <= 55:
		w.WriteByte(EmptyStringCode + byte(len(s)))
		w.Write(s)
	default:
		encodeLength(w, 0xb7, uint64(len(s)))
		w.Write(s)
	}
}

// EncodeUint64 writes the RLP encoding of i to w: the big-endian byte
// representation with leading zeros stripped, as a string. Zero encodes as the
// empty string.
func EncodeUint64(w *bytes.Buffer, i uint64) {
	if i == 0 {
		w.WriteByte(EmptyStringCode)
		return
	}
	if i < EmptyStringCode {
		w.WriteByte(byte(i))
		return
	}
	n := uint64Len(i)
	w.WriteByte(EmptyStringCode + byte(n))
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], i)
	w.Write(b[8-n:])
}

// EncodeList writes the RLP encoding of a list to w. The encode callback must
// write the encodings of the list payload items into the buffer it is given.
func EncodeList(w *bytes.Buffer, encode func(payload *bytes.Buffer)) {
	var payload bytes.Buffer
	encode(&payload)
	if payload.Len() <= 55 {
		w.WriteByte(EmptyListCode + byte(payload.Len()))
	} else {
		encodeLength(w, 0xf7, uint64(payload.Len()))
	}
	w.Write(payload.Bytes())
}

func encodeLength(w *bytes.Buffer, offset byte, length uint64) {
	n := uint64Len(length)
	w.WriteByte(offset + byte(n))
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], length)
	w.Write(b[8-n:])
}

func uint64Len(i uint64) int {
	return (bits.Len64(i) + 7) / 8
}

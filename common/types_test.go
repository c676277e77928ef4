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

package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHashSetBytesCropsLeft(t *testing.T) {
	t.Parallel()
	var h Hash
	h.SetBytes([]byte{0x01, 0x02})
	assert.Equal(t, byte(0x01), h[30])
	assert.Equal(t, byte(0x02), h[31])

	long := make([]byte, 40)
	long[7] = 0xaa // cropped away
	long[8] = 0xbb // first kept byte
	h.SetBytes(long)
	assert.Equal(t, byte(0xbb), h[0])
}

func TestHexRoundtrip(t *testing.T) {
	t.Parallel()
	h := HexToHash("0x00000000000000000000000000000000000000000000000000000000000000ff")
	assert.Equal(t, byte(0xff), h[31])
	assert.Equal(t, "0x00000000000000000000000000000000000000000000000000000000000000ff", h.Hex())

	a := HexToAddress("0xff00000000000000000000000000000000000001")
	assert.Equal(t, byte(0xff), a[0])
	assert.Equal(t, "0xff00000000000000000000000000000000000001", a.Hex())
}

func TestFromHex(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []byte{0x01, 0x02}, FromHex("0x0102"))
	assert.Equal(t, []byte{0x01, 0x02}, FromHex("0102"))
	// odd length gets a leading zero
	assert.Equal(t, []byte{0x01, 0x02}, FromHex("0x102"))
	assert.Empty(t, FromHex(""))
}

func TestHashCmp(t *testing.T) {
	t.Parallel()
	a := HexToHash("0x01")
	b := HexToHash("0x02")
	assert.Negative(t, a.Cmp(b))
	assert.Positive(t, b.Cmp(a))
	assert.Zero(t, a.Cmp(a))
}

func TestCopy(t *testing.T) {
	t.Parallel()
	assert.Nil(t, Copy(nil))

	src := []byte{1, 2, 3}
	dst := Copy(src)
	assert.Equal(t, src, dst)
	dst[0] = 9
	assert.Equal(t, byte(1), src[0])
}

func TestGasThroughput(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "0.00 Mgas/s", GasThroughput(1_000_000, 0))
	assert.Equal(t, "1.00 Mgas/s", GasThroughput(1_000_000, time.Second))
	assert.Equal(t, "2.50 Mgas/s", GasThroughput(5_000_000, 2*time.Second))
}

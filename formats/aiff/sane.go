// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"encoding/binary"
	"math"
)

// SANEToFloat64 converts an 80-bit extended precision float, as stored in
// the COMM chunk, to a float64. The mantissa is truncated, not rounded.
func SANEToFloat64(b [10]byte) float64 {
	return saneToFloat64(
		binary.BigEndian.Uint32(b[0:4]),
		binary.BigEndian.Uint32(b[4:8]),
		binary.BigEndian.Uint16(b[8:10]),
	)
}

// saneToFloat64 repacks the sign, the low ten exponent bits and the top
// 52 fraction bits into IEEE double layout. The explicit integer bit of the
// extended format is dropped.
func saneToFloat64(l1, l2 uint32, s1 uint16) float64 {
	hi := ((l1 << 4) & 0x3ff00000) | (l1 & 0xc0000000)
	hi |= (l1 << 5) & 0xffff0
	hi |= (l2 >> 27) & 0x1f

	lo := (l2 << 5) & 0xffffffe0
	lo |= uint32(s1>>11) & 0x1f

	return math.Float64frombits(uint64(hi)<<32 | uint64(lo))
}

// SPDX-License-Identifier: EPL-2.0

// Package utils holds the sample level arithmetic shared by the conversion
// stage: scaling between integer PCM and float32, and interpolation.
package utils

// Int16ToFloat32 scales a signed 16-bit sample into [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// Uint8ToFloat32 scales an unsigned 8-bit sample (silence at 0x80) into [-1, 1).
func Uint8ToFloat32(v uint8) float32 {
	return float32(int(v)-128) / 128.0
}

// Float32ToInt16 is the inverse of Int16ToFloat32, clamping out of range input.
// Values produced by Int16ToFloat32 map back exactly.
func Float32ToInt16(x float32) int16 {
	v := x * 32768.0
	if v > 32767 {
		v = 32767
	} else if v < -32768 {
		v = -32768
	}

	return int16(v)
}

// Float32ToUint8 is the inverse of Uint8ToFloat32, clamping out of range input.
func Float32ToUint8(x float32) uint8 {
	v := x*128.0 + 128.0
	if v > 255 {
		v = 255
	} else if v < 0 {
		v = 0
	}

	return uint8(v)
}

// CubicInterpolate performs cubic interpolation
// x is the fractional position between y1 and y2 (0 <= x <= 1)
// y0, y1, y2, y3 are four consecutive samples
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	// Catmull-Rom spline
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}

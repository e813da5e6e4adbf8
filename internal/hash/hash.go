// Package hash provides the kernel's seedless integer hash.
//
// The mixing sequence is fixed: procedural patterns and per-pixel jitter
// are regression-tested against its exact output, so nothing here may
// change bit-wise.
package hash

import "math/bits"

// initial is the state every word starts from.
const initial uint32 = 0xdeadbeef + (2 << 2) + 13

// Int2D mixes two integers into one. It is deterministic and order
// sensitive: Int2D(x, y) and Int2D(y, x) generally differ. All arithmetic
// wraps modulo 2^32. Not suitable for anything cryptographic.
func Int2D(kx, ky uint32) uint32 {
	a, b, c := initial, initial, initial
	a += kx
	b += ky

	c ^= b
	c -= bits.RotateLeft32(b, 14)
	a ^= c
	a -= bits.RotateLeft32(c, 11)
	b ^= a
	b -= bits.RotateLeft32(a, 25)
	c ^= b
	c -= bits.RotateLeft32(b, 16)
	a ^= c
	a -= bits.RotateLeft32(c, 4)
	b ^= a
	b -= bits.RotateLeft32(a, 14)
	c ^= b
	c -= bits.RotateLeft32(b, 24)

	return c
}

// Int2DSigned hashes signed lattice coordinates by their two's-complement
// bits, so Int2DSigned(-1, 0) == Int2D(0xffffffff, 0).
func Int2DSigned(x, y int32) uint32 {
	return Int2D(uint32(x), uint32(y))
}

// Int2DFloat maps Int2D onto [0, 1) using its top 24 bits, which a
// float32 holds exactly.
func Int2DFloat(kx, ky uint32) float32 {
	return float32(Int2D(kx, ky)>>8) * (1.0 / (1 << 24))
}

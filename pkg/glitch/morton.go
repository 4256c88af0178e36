package glitch

// part1By1 spreads the low 16 bits of v so that a zero bit sits between
// every pair of original bits.
func part1By1(v uint32) uint32 {
	v &= 0x0000ffff
	v = (v | (v << 8)) & 0x00ff00ff
	v = (v | (v << 4)) & 0x0f0f0f0f
	v = (v | (v << 2)) & 0x33333333
	v = (v | (v << 1)) & 0x55555555
	return v
}

// compact1By1 is the inverse of part1By1: it gathers the even bits of v into
// the low 16 bits.
func compact1By1(v uint32) uint32 {
	v &= 0x55555555
	v = (v | (v >> 1)) & 0x33333333
	v = (v | (v >> 2)) & 0x0f0f0f0f
	v = (v | (v >> 4)) & 0x00ff00ff
	v = (v | (v >> 8)) & 0x0000ffff
	return v
}

// mortonEncode interleaves x (even bits) and y (odd bits) into a Z-order code.
func mortonEncode(x, y uint32) uint32 {
	return part1By1(x) | part1By1(y)<<1
}

// mortonDecode splits a Z-order code back into x and y.
func mortonDecode(code uint32) (x, y uint32) {
	return compact1By1(code), compact1By1(code >> 1)
}

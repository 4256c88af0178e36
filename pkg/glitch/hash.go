package glitch

// hash2 mixes two integer coordinates into a well-distributed 32-bit value.
// It stands in for a random number generator wherever a transform needs
// reproducible "random" corruption: the same (x,y) always yields the same
// value.
func hash2(x, y int) uint32 {
	h := uint32(x)*0x27d4eb2d ^ uint32(y)*0x165667b1
	h ^= h >> 15
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// hashFloat maps hash2(x,y) onto [0,1).
func hashFloat(x, y int) float64 {
	return float64(hash2(x, y)>>8) / float64(1<<24)
}

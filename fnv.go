package transcode

import "hash/fnv"

// FNV32 returns the 32-bit FNV-1 hash of data (multiply, then xor each byte).
func FNV32(data []byte) uint32 {
	h := fnv.New32()
	_, _ = h.Write(data)
	return h.Sum32()
}

// FNV64 returns the 64-bit FNV-1 hash of data.
func FNV64(data []byte) uint64 {
	h := fnv.New64()
	_, _ = h.Write(data)
	return h.Sum64()
}

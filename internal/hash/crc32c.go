package hash

import "hash/crc32"

// crc32cTable is pre-computed for CRC32-Castagnoli polynomial.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// Route maps key onto one of n buckets. The same key always maps to the same
// bucket for a given n. n <= 1 always yields 0.
func Route(key string, n int) int {
	if n <= 1 {
		return 0
	}
	return int(CRC32C([]byte(key)) % uint32(n))
}

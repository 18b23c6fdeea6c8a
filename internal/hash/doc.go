// Package hash provides hashing helpers used for routing work by key.
//
// All hashing uses CRC32-Castagnoli (CRC32C), which Go accelerates in hardware
// on x86 (SSE4.2) and ARM (CRC extension).
//
//	checksum := hash.CRC32C(data)
//	worker := hash.Route("model-42", numWorkers)
package hash

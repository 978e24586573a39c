// Package codec provides a binary interchange encoding for fact batches:
// a little-endian header, fixed 24-byte records, optional LZ4 or ZSTD block
// compression and a CRC32C trailer. It operates on byte slices only; where
// the bytes travel is the caller's business.
package codec

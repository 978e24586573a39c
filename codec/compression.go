package codec

import (
	"encoding/binary"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the payload block compression algorithm.
type Compression uint8

const (
	// CompressionNone stores the payload as-is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio).
	CompressionZSTD Compression = 2
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// compressPayload applies the requested compression. When compression does
// not shrink the payload the batch is written uncompressed, and the
// effective compression tag is returned for the header.
func compressPayload(payload []byte, comp Compression) ([]byte, Compression, error) {
	if comp == CompressionNone || len(payload) == 0 {
		return payload, CompressionNone, nil
	}

	var compressed []byte
	switch comp {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(payload)))
		n, err := lz4.CompressBlock(payload, buf, nil)
		if err != nil {
			return nil, 0, err
		}
		if n == 0 || n >= len(payload) {
			return payload, CompressionNone, nil
		}
		compressed = buf[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(payload, nil)
		zstdEncoderPool.Put(enc)
		if len(compressed) >= len(payload) {
			return payload, CompressionNone, nil
		}
	default:
		return nil, 0, ErrUnknownCompression
	}

	out := make([]byte, 0, 4+len(compressed))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	out = append(out, compressed...)
	return out, comp, nil
}

// decompressPayload reverses compressPayload according to the header tag.
func decompressPayload(payload []byte, comp Compression) ([]byte, error) {
	switch comp {
	case CompressionNone:
		return payload, nil
	case CompressionLZ4:
		if len(payload) < 4 {
			return nil, ErrTruncated
		}
		size := binary.LittleEndian.Uint32(payload)
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(payload[4:], out)
		if err != nil {
			return nil, err
		}
		return out[:n], nil
	case CompressionZSTD:
		if len(payload) < 4 {
			return nil, ErrTruncated
		}
		size := binary.LittleEndian.Uint32(payload)
		dec := getZstdDecoder()
		out, err := dec.DecodeAll(payload[4:], make([]byte, 0, size))
		zstdDecoderPool.Put(dec)
		if err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, ErrUnknownCompression
	}
}

package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/factgo/fact"
	"github.com/hupe1980/factgo/internal/hash"
)

// Batch layout:
//
//	[Magic:4][Version:1][Compression:1][Reserved:2][Count:4]
//	[Payload: Count*24 bytes, possibly block-compressed]
//	[CRC32C:4 over header+payload]
//
// A compressed payload is prefixed with its uncompressed size (4 bytes).
const (
	magic      = uint32(0x46414354) // "FACT"
	version    = uint8(1)
	headerSize = 12
)

var (
	// ErrBadMagic means the input does not start with a fact batch.
	ErrBadMagic = errors.New("codec: bad magic")
	// ErrUnsupportedVersion means the batch was written by a newer encoder.
	ErrUnsupportedVersion = errors.New("codec: unsupported version")
	// ErrChecksumMismatch means the batch was corrupted.
	ErrChecksumMismatch = errors.New("codec: checksum mismatch")
	// ErrTruncated means the input ends before the declared content.
	ErrTruncated = errors.New("codec: truncated input")
	// ErrUnknownCompression means the compression tag is not recognized.
	ErrUnknownCompression = errors.New("codec: unknown compression")
)

// Options configures an Encoder.
type Options struct {
	// Compression selects the payload block compression.
	Compression Compression
}

// Encoder encodes fact batches.
type Encoder struct {
	opts Options
}

// NewEncoder creates an Encoder. Batches are uncompressed unless an option
// says otherwise.
func NewEncoder(optFns ...func(*Options)) *Encoder {
	opts := Options{Compression: CompressionNone}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Encoder{opts: opts}
}

// WithCompression selects the payload compression.
func WithCompression(c Compression) func(*Options) {
	return func(o *Options) { o.Compression = c }
}

// Encode serializes the facts into a standalone batch.
func (e *Encoder) Encode(facts []fact.Fact) ([]byte, error) {
	payload := make([]byte, 0, len(facts)*fact.EncodedSize)
	var err error
	for _, f := range facts {
		payload, err = f.AppendBinary(payload)
		if err != nil {
			return nil, err
		}
	}

	comp := e.opts.Compression
	payload, comp, err = compressPayload(payload, comp)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, headerSize+len(payload)+4)
	out = binary.LittleEndian.AppendUint32(out, magic)
	out = append(out, version, byte(comp), 0, 0)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(facts)))
	out = append(out, payload...)
	out = binary.LittleEndian.AppendUint32(out, hash.CRC32C(out))
	return out, nil
}

// Decode parses a batch produced by Encode, verifying the checksum before
// touching the payload.
func Decode(data []byte) ([]fact.Fact, error) {
	if len(data) < headerSize+4 {
		return nil, ErrTruncated
	}
	if binary.LittleEndian.Uint32(data) != magic {
		return nil, ErrBadMagic
	}
	if data[4] != version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[4])
	}
	comp := Compression(data[5])
	count := binary.LittleEndian.Uint32(data[8:])

	body, trailer := data[:len(data)-4], data[len(data)-4:]
	if binary.LittleEndian.Uint32(trailer) != hash.CRC32C(body) {
		return nil, ErrChecksumMismatch
	}

	payload, err := decompressPayload(body[headerSize:], comp)
	if err != nil {
		return nil, err
	}
	if len(payload) != int(count)*fact.EncodedSize {
		return nil, fmt.Errorf("%w: %d facts declared, %d payload bytes", ErrTruncated, count, len(payload))
	}

	facts := make([]fact.Fact, count)
	for i := range facts {
		if err := facts[i].UnmarshalBinary(payload[i*fact.EncodedSize:]); err != nil {
			return nil, err
		}
	}
	return facts, nil
}

package fact

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodedSize is the binary encoding size of one fact, identical to its
// in-memory size.
const EncodedSize = 24

// AppendBinary appends the little-endian encoding of f to b.
// Layout: [ID:4][Start:4][End:4][Confidence:4][Object:8].
func (f Fact) AppendBinary(b []byte) ([]byte, error) {
	b = binary.LittleEndian.AppendUint32(b, uint32(f.ID))
	b = binary.LittleEndian.AppendUint32(b, f.Subject.Start)
	b = binary.LittleEndian.AppendUint32(b, f.Subject.End)
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f.Confidence))
	b = binary.LittleEndian.AppendUint64(b, f.word)
	return b, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (f Fact) MarshalBinary() ([]byte, error) {
	return f.AppendBinary(make([]byte, 0, EncodedSize))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (f *Fact) UnmarshalBinary(data []byte) error {
	if len(data) < EncodedSize {
		return fmt.Errorf("fact: short encoding: %d bytes", len(data))
	}
	f.ID = ID(binary.LittleEndian.Uint32(data))
	f.Subject.Start = binary.LittleEndian.Uint32(data[4:])
	f.Subject.End = binary.LittleEndian.Uint32(data[8:])
	f.Confidence = math.Float32frombits(binary.LittleEndian.Uint32(data[12:]))
	f.word = binary.LittleEndian.Uint64(data[16:])
	return nil
}

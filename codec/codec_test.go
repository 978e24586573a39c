package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/factgo/fact"
	"github.com/hupe1980/factgo/span"
)

func sampleFacts(n int) []fact.Fact {
	out := make([]fact.Fact, n)
	for i := range out {
		start := uint32(i * 13)
		f := fact.New(span.New(start, start+7),
			fact.Predicate(1+i%9), float32(i%5)/5, fact.StringRef(uint32(i)))
		out[i] = f.WithID(fact.ID(i + 1))
	}
	return out
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, comp := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(compName(comp), func(t *testing.T) {
			facts := sampleFacts(100)

			data, err := NewEncoder(WithCompression(comp)).Encode(facts)
			require.NoError(t, err)

			got, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, facts, got)
		})
	}
}

func compName(c Compression) string {
	switch c {
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return "none"
	}
}

func TestEncodeEmptyBatch(t *testing.T) {
	data, err := NewEncoder().Encode(nil)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	data, err := NewEncoder().Encode(sampleFacts(3))
	require.NoError(t, err)

	data[0] ^= 0xff
	_, err = Decode(data)
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestDecodeRejectsCorruption(t *testing.T) {
	data, err := NewEncoder().Encode(sampleFacts(3))
	require.NoError(t, err)

	data[len(data)/2] ^= 0x01
	_, err = Decode(data)
	require.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestDecodeRejectsTruncation(t *testing.T) {
	data, err := NewEncoder().Encode(sampleFacts(3))
	require.NoError(t, err)

	_, err = Decode(data[:8])
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeRejectsFutureVersion(t *testing.T) {
	data, err := NewEncoder().Encode(sampleFacts(1))
	require.NoError(t, err)

	data[4] = 99
	_, err = Decode(data)
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestCompressionFallsBackWhenIncompressible(t *testing.T) {
	// A single fact cannot be shrunk; the header must say so.
	data, err := NewEncoder(WithCompression(CompressionLZ4)).Encode(sampleFacts(1))
	require.NoError(t, err)
	assert.Equal(t, byte(CompressionNone), data[5])

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func BenchmarkEncode(b *testing.B) {
	facts := sampleFacts(1000)
	enc := NewEncoder(WithCompression(CompressionLZ4))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := enc.Encode(facts); err != nil {
			b.Fatal(err)
		}
	}
}

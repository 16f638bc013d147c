package store

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCompressor(t *testing.T) *ZstdCompression {
	t.Helper()
	c, cleanup, err := NewZstdCompressor()
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return c.(*ZstdCompression)
}

func TestZstdCompression_Roundtrip(t *testing.T) {
	c := newTestCompressor(t)

	original := []byte(`[{"id":1,"name":"金閣寺","kind":"寺社","lat":35.03,"lng":135.72,"status":"active"}]`)
	compressed, err := c.Compress(original)
	require.NoError(t, err)
	assert.NotEqual(t, original, compressed)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestZstdCompression_EmptyData(t *testing.T) {
	c := newTestCompressor(t)

	compressed, err := c.Compress([]byte{})
	require.NoError(t, err)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Empty(t, decompressed)
}

func TestZstdCompression_LargeData(t *testing.T) {
	c := newTestCompressor(t)

	original := bytes.Repeat([]byte(`{"name":"sight","kind":"自然"},`), 50_000)
	compressed, err := c.Compress(original)
	require.NoError(t, err)
	// Repetitive data should compress well
	assert.Less(t, len(compressed), len(original)/2)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestZstdCompression_DecompressInvalidData(t *testing.T) {
	c := newTestCompressor(t)

	_, err := c.Decompress([]byte("not valid zstd data"))
	assert.Error(t, err)
}

func TestZstdCompression_DecompressRandomBytes(t *testing.T) {
	c := newTestCompressor(t)

	_, err := c.Decompress([]byte{0xff, 0xfe, 0xfd, 0xfc, 0x00, 0x01})
	assert.Error(t, err)
}

package wire_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/necauqua/jdwp/internal/wire"
)

func TestPrimitiveRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	w := wire.NewWriter(buf)
	w.Uint8(0xAB)
	w.Int8(-5)
	w.Uint16(0xBEEF)
	w.Int16(-1000)
	w.Uint32(0xDEADBEEF)
	w.Int32(-123456)
	w.Uint64(0xFFEEDDCCBBAA0011)
	w.Int64(-9_000_000_000)
	w.Float32(3.25)
	w.Float64(-2.5e10)
	w.Bool(true)
	w.Bool(false)
	w.Data([]byte("hello"))
	require.NoError(t, w.Error())

	r := wire.NewReader(buf)
	assert.Equal(t, uint8(0xAB), r.Uint8())
	assert.Equal(t, int8(-5), r.Int8())
	assert.Equal(t, uint16(0xBEEF), r.Uint16())
	assert.Equal(t, int16(-1000), r.Int16())
	assert.Equal(t, uint32(0xDEADBEEF), r.Uint32())
	assert.Equal(t, int32(-123456), r.Int32())
	assert.Equal(t, uint64(0xFFEEDDCCBBAA0011), r.Uint64())
	assert.Equal(t, int64(-9_000_000_000), r.Int64())
	assert.Equal(t, float32(3.25), r.Float32())
	assert.Equal(t, -2.5e10, r.Float64())
	assert.True(t, r.Bool())
	assert.False(t, r.Bool())
	got := make([]byte, 5)
	r.Data(got)
	assert.Equal(t, "hello", string(got))
	require.NoError(t, r.Error())
}

func TestReadUintWriteUintWidths(t *testing.T) {
	for _, bits := range []int{8, 16, 32, 64} {
		buf := &bytes.Buffer{}
		w := wire.NewWriter(buf)
		wire.WriteUint(w, bits, 0x42)
		require.NoError(t, w.Error())

		r := wire.NewReader(buf)
		assert.Equal(t, uint64(0x42), wire.ReadUint(r, bits))
		require.NoError(t, r.Error())
	}
}

func TestReadUintInvalidWidth(t *testing.T) {
	r := wire.NewReader(bytes.NewReader(nil))
	wire.ReadUint(r, 24)
	var invalid *wire.InvalidWidthError
	assert.ErrorAs(t, r.Error(), &invalid)
}

func TestShortReadSticksError(t *testing.T) {
	r := wire.NewReader(bytes.NewReader([]byte{0x01}))
	r.Uint32()
	require.Error(t, r.Error())
	assert.ErrorIs(t, r.Error(), io.ErrUnexpectedEOF)
	// Once in an error state, further reads are no-ops returning zero.
	assert.Equal(t, uint8(0), r.Uint8())
}

func TestWriteErrorSticks(t *testing.T) {
	w := wire.NewWriter(&limitedWriter{limit: 1})
	w.Uint8(1)
	w.Uint8(2)
	require.Error(t, w.Error())
}

type limitedWriter struct{ limit int }

func (l *limitedWriter) Write(p []byte) (int, error) {
	if l.limit <= 0 {
		return 0, io.ErrShortWrite
	}
	l.limit -= len(p)
	return len(p), nil
}

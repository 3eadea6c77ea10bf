// Package wire implements the big-endian primitive codec that every JDWP
// value is built out of. It knows nothing about JDWP shapes; it only reads
// and writes fixed-width integers and raw byte runs over a stream, with a
// sticky first-error so a long decode doesn't need an error check after
// every field.
package wire

import (
	"encoding/binary"
	"io"
	"math"
)

// Reader decodes big-endian primitives from a byte stream.
type Reader interface {
	io.Reader
	// Data reads len(p) bytes, filling p in their entirety.
	Data(p []byte)
	Bool() bool
	Int8() int8
	Uint8() uint8
	Int16() int16
	Uint16() uint16
	Int32() int32
	Uint32() uint32
	Int64() int64
	Uint64() uint64
	Float32() float32
	Float64() float64
	// Error returns the error that stopped reading, or nil if reading has
	// not failed. Once set, every subsequent read is a no-op returning a
	// zero value.
	Error() error
	SetError(error)
	// Remaining reports how many bytes are left unread, when the
	// underlying stream is able to say so (a reply already buffered in
	// memory, as opposed to a live connection whose peer hasn't finished
	// writing yet). ok is false when the stream can't answer.
	Remaining() (n int, ok bool)
}

// Writer encodes big-endian primitives to a byte stream.
type Writer interface {
	Data(p []byte)
	Bool(bool)
	Int8(int8)
	Uint8(uint8)
	Int16(int16)
	Uint16(uint16)
	Int32(int32)
	Uint32(uint32)
	Int64(int64)
	Uint64(uint64)
	Float32(float32)
	Float64(float64)
	Error() error
	SetError(error)
}

// ReadUint reads an unsigned integer of bits ∈ {8,16,32,64} from r, widening
// the result to uint64. Used to read the five runtime-width JDWP id kinds.
func ReadUint(r Reader, bits int) uint64 {
	switch bits {
	case 8:
		return uint64(r.Uint8())
	case 16:
		return uint64(r.Uint16())
	case 32:
		return uint64(r.Uint32())
	case 64:
		return r.Uint64()
	default:
		r.SetError(&InvalidWidthError{Bits: bits})
		return 0
	}
}

// WriteUint writes the low bits of v as an unsigned integer of the given
// width ∈ {8,16,32,64}.
func WriteUint(w Writer, bits int, v uint64) {
	switch bits {
	case 8:
		w.Uint8(uint8(v))
	case 16:
		w.Uint16(uint16(v))
	case 32:
		w.Uint32(uint32(v))
	case 64:
		w.Uint64(v)
	default:
		w.SetError(&InvalidWidthError{Bits: bits})
	}
}

// InvalidWidthError reports an id width outside of {8,16,32,64} bits.
type InvalidWidthError struct{ Bits int }

func (e *InvalidWidthError) Error() string {
	return "wire: unsupported integer width"
}

type reader struct {
	r   io.Reader
	tmp [8]byte
	err error
}

// NewReader wraps r as a big-endian primitive Reader.
func NewReader(r io.Reader) Reader { return &reader{r: r} }

func (r *reader) Read(p []byte) (int, error) { return r.r.Read(p) }

func (r *reader) Error() error     { return r.err }
func (r *reader) SetError(e error) {
	if r.err == nil {
		r.err = e
	}
}

// lenReader is satisfied by *bytes.Reader, among others: anything that
// already holds its whole contents in memory and can say how much of it is
// left.
type lenReader interface {
	Len() int
}

func (r *reader) Remaining() (int, bool) {
	lr, ok := r.r.(lenReader)
	if !ok {
		return 0, false
	}
	return lr.Len(), true
}

func (r *reader) Data(p []byte) {
	if r.err != nil {
		return
	}
	_, r.err = io.ReadFull(r.r, p)
}

func (r *reader) fill(n int) []byte {
	if r.err != nil {
		return r.tmp[:n]
	}
	_, r.err = io.ReadFull(r.r, r.tmp[:n])
	return r.tmp[:n]
}

func (r *reader) Bool() bool   { return r.Uint8() != 0 }
func (r *reader) Int8() int8   { return int8(r.Uint8()) }
func (r *reader) Uint8() uint8 {
	if r.err != nil {
		return 0
	}
	return r.fill(1)[0]
}
func (r *reader) Int16() int16   { return int16(r.Uint16()) }
func (r *reader) Uint16() uint16 {
	if r.err != nil {
		return 0
	}
	return binary.BigEndian.Uint16(r.fill(2))
}
func (r *reader) Int32() int32   { return int32(r.Uint32()) }
func (r *reader) Uint32() uint32 {
	if r.err != nil {
		return 0
	}
	return binary.BigEndian.Uint32(r.fill(4))
}
func (r *reader) Int64() int64   { return int64(r.Uint64()) }
func (r *reader) Uint64() uint64 {
	if r.err != nil {
		return 0
	}
	return binary.BigEndian.Uint64(r.fill(8))
}
func (r *reader) Float32() float32 {
	return math.Float32frombits(r.Uint32())
}
func (r *reader) Float64() float64 {
	return math.Float64frombits(r.Uint64())
}

type writer struct {
	w   io.Writer
	tmp [8]byte
	err error
}

// NewWriter wraps w as a big-endian primitive Writer.
func NewWriter(w io.Writer) Writer { return &writer{w: w} }

func (w *writer) Error() error     { return w.err }
func (w *writer) SetError(e error) {
	if w.err == nil {
		w.err = e
	}
}

func (w *writer) Data(p []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(p)
	if err != nil {
		w.err = err
	} else if n != len(p) {
		w.err = io.ErrShortWrite
	}
}

func (w *writer) Bool(v bool) {
	if v {
		w.Uint8(1)
	} else {
		w.Uint8(0)
	}
}
func (w *writer) Int8(v int8) { w.Uint8(uint8(v)) }
func (w *writer) Uint8(v uint8) {
	w.tmp[0] = v
	w.Data(w.tmp[:1])
}
func (w *writer) Int16(v int16) { w.Uint16(uint16(v)) }
func (w *writer) Uint16(v uint16) {
	binary.BigEndian.PutUint16(w.tmp[:2], v)
	w.Data(w.tmp[:2])
}
func (w *writer) Int32(v int32) { w.Uint32(uint32(v)) }
func (w *writer) Uint32(v uint32) {
	binary.BigEndian.PutUint32(w.tmp[:4], v)
	w.Data(w.tmp[:4])
}
func (w *writer) Int64(v int64) { w.Uint64(uint64(v)) }
func (w *writer) Uint64(v uint64) {
	binary.BigEndian.PutUint64(w.tmp[:8], v)
	w.Data(w.tmp[:8])
}
func (w *writer) Float32(v float32) { w.Uint32(math.Float32bits(v)) }
func (w *writer) Float64(v float64) { w.Uint64(math.Float64bits(v)) }

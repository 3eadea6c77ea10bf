package jdwp

import (
	"bytes"
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/necauqua/jdwp/internal/wire"
)

// widths is every id width the wire protocol allows (§3: negotiated at
// VirtualMachine.IDSizes time, fixed for the life of a connection).
var widths = []int32{1, 2, 4, 8}

func connWithIDSize(w int32) *Connection {
	return &Connection{idSizes: IDSizes{
		FieldIDSize:         w,
		MethodIDSize:        w,
		ObjectIDSize:        w,
		ReferenceTypeIDSize: w,
		FrameIDSize:         w,
	}}
}

// maxForWidth is the largest value representable in w bytes, used so a
// round trip at a narrower width would actually notice truncation if the
// codec picked the wrong width for a given field.
func maxForWidth(w int32) uint64 {
	if w >= 8 {
		return ^uint64(0)
	}
	return uint64(1)<<(uint(w)*8) - 1
}

func assertRoundTrip(t *testing.T, c *Connection, v interface{}) {
	t.Helper()
	b := &bytes.Buffer{}
	w := wire.NewWriter(b)
	require.NoError(t, c.encode(w, reflect.ValueOf(v)))
	require.NoError(t, w.Error())

	out := reflect.New(reflect.TypeOf(v))
	r := wire.NewReader(bytes.NewReader(b.Bytes()))
	require.NoError(t, c.decode(r, out.Elem()))
	require.NoError(t, r.Error())

	assert.Equal(t, v, out.Elem().Interface())
}

// §8 item 1: round-trip on every one of the five id kinds, across every
// negotiated width, catches a field written at the wrong width even when
// two unrelated id kinds happen to share a byte count on a given
// connection (the whole reason each kind is its own Go type, see ids.go).
func TestRoundTripIDKindsAcrossWidths(t *testing.T) {
	for _, w := range widths {
		w := w
		t.Run(widthName(w), func(t *testing.T) {
			c := connWithIDSize(w)
			max := maxForWidth(w)

			assertRoundTrip(t, c, ObjectID(max))
			assertRoundTrip(t, c, ThreadID(max))
			assertRoundTrip(t, c, ThreadGroupID(max))
			assertRoundTrip(t, c, StringID(max))
			assertRoundTrip(t, c, ClassLoaderID(max))
			assertRoundTrip(t, c, ClassObjectID(max))
			assertRoundTrip(t, c, ArrayID(max))

			assertRoundTrip(t, c, ReferenceTypeID(max))
			assertRoundTrip(t, c, ClassID(max))
			assertRoundTrip(t, c, InterfaceID(max))
			assertRoundTrip(t, c, ArrayTypeID(max))

			assertRoundTrip(t, c, MethodID(max))
			assertRoundTrip(t, c, FieldID(max))
			assertRoundTrip(t, c, FrameID(max))
		})
	}
}

func widthName(w int32) string {
	return []string{0: "w0", 1: "w1", 2: "w2", 3: "w3", 4: "w4", 5: "w5", 6: "w6", 7: "w7", 8: "w8"}[w]
}

// Struct and slice types built out of those ids round-trip too, at every
// width, since a struct field's width is chosen independently of its
// siblings (Location mixes a ReferenceTypeID and a MethodID, which may
// legitimately negotiate different widths on the same connection).
func TestRoundTripCompositeTypes(t *testing.T) {
	for _, w := range widths {
		w := w
		t.Run(widthName(w), func(t *testing.T) {
			c := connWithIDSize(w)
			max := maxForWidth(w)

			assertRoundTrip(t, c, Location{
				Type:   Class,
				Class:  ReferenceTypeID(max),
				Method: MethodID(max),
				Index:  0xDEADBEEFCAFEBABE, // code index is always 8 bytes, id-size independent.
			})
			assertRoundTrip(t, c, TaggedObjectID{Type: TagThread, Object: ObjectID(max)})
			assertRoundTrip(t, c, TaggedReferenceTypeID{Kind: Array, ID: ReferenceTypeID(max)})
			assertRoundTrip(t, c, SlotValue{Slot: 3, Value: ObjectID(max)})
			assertRoundTrip(t, c, SlotRequest{Slot: 3, Tag: TagObject})
			assertRoundTrip(t, c, []ThreadID{ThreadID(max), 0, 1})
			assertRoundTrip(t, c, VariableTable{
				ArgCount: 1,
				Slots: []FrameVariable{
					{CodeIndex: 0, Name: "this", Signature: "Lfoo/Bar;", Length: 10, Slot: 0},
				},
			})
		})
	}
}

// FieldValue's Value is UntaggedValue: written without a leading tag since
// ClassType/ObjectReference.SetValues already establish the field's type
// from context. Unlike Value it's write-only — decoding it
// generically would require already knowing the target type, which is
// exactly what SetValues doesn't carry on the wire — so only encode is
// exercised here.
func TestFieldValueEncodesUntagged(t *testing.T) {
	c := connWithIDSize(2)
	b := &bytes.Buffer{}
	w := wire.NewWriter(b)
	require.NoError(t, c.encode(w, reflect.ValueOf(FieldValue{Field: FieldID(0xBEEF), Value: int32(-7)})))

	r := wire.NewReader(bytes.NewReader(b.Bytes()))
	assert.Equal(t, uint64(0xBEEF), wire.ReadUint(r, 16))
	assert.Equal(t, int32(-7), r.Int32())
	require.NoError(t, r.Error())
}

// Value's tagged-union encoding round-trips for every primitive and
// object-id variant valueTag recognises (§4.3). TagVoid carries no payload
// and decodes to a nil Value, so it's exercised directly against a
// hand-built Void byte below instead.
func TestRoundTripTaggedValue(t *testing.T) {
	c := connWithIDSize(8)

	cases := []Value{
		byte(0xFE),
		Char(0x4e2d),
		float32(3.5),
		float64(-2.25),
		int32(-100),
		int16(-5),
		int64(1 << 40),
		true,
		false,
		StringID(0x1122334455667788),
		ObjectID(42),
		ThreadID(7),
		ThreadGroupID(8),
		ClassLoaderID(9),
		ClassObjectID(10),
		ArrayID(11),
	}
	for _, v := range cases {
		assertRoundTrip(t, c, v)

		// Through a Value-typed slot, as a Value struct field is encoded, so
		// the leading tag byte is written and read back too.
		b := &bytes.Buffer{}
		require.NoError(t, c.encode(wire.NewWriter(b), reflect.ValueOf(&v).Elem()))
		tag, err := valueTag(v)
		require.NoError(t, err)
		assert.Equal(t, byte(tag), b.Bytes()[0])
		var got Value
		require.NoError(t, c.decode(wire.NewReader(bytes.NewReader(b.Bytes())), reflect.ValueOf(&got).Elem()))
		assert.Equal(t, v, got)
	}

	// TagVoid: a reply with just the 1-byte 'V' tag decodes to the zero
	// value of the target field's type and consumes nothing further.
	var got Value
	r := wire.NewReader(bytes.NewReader([]byte{byte(TagVoid)}))
	require.NoError(t, c.decode(r, reflect.ValueOf(&got).Elem()))
	assert.Nil(t, got)
}

// ArrayRegion decodes itself off the wire (its element type depends on the
// Tag byte, which can't be known from a static Go field type), so it's
// exercised through decodeFrom directly rather than the generic codec.
func TestArrayRegionDecodePerTag(t *testing.T) {
	c := connWithIDSize(4)

	t.Run("byte", func(t *testing.T) {
		b := &bytes.Buffer{}
		w := wire.NewWriter(b)
		w.Uint8(uint8(TagByte))
		w.Uint32(3)
		w.Data([]byte{1, 2, 3})
		var a ArrayRegion
		require.NoError(t, a.decodeFrom(c, wire.NewReader(bytes.NewReader(b.Bytes()))))
		assert.Equal(t, TagByte, a.Tag)
		assert.Equal(t, []byte{1, 2, 3}, a.Values)
	})

	t.Run("int", func(t *testing.T) {
		b := &bytes.Buffer{}
		w := wire.NewWriter(b)
		w.Uint8(uint8(TagInt))
		w.Uint32(2)
		w.Int32(-1)
		w.Int32(100)
		var a ArrayRegion
		require.NoError(t, a.decodeFrom(c, wire.NewReader(bytes.NewReader(b.Bytes()))))
		assert.Equal(t, TagInt, a.Tag)
		assert.Equal(t, []int32{-1, 100}, a.Values)
	})

	t.Run("object elements carry their own width", func(t *testing.T) {
		b := &bytes.Buffer{}
		w := wire.NewWriter(b)
		w.Uint8(uint8(TagObject))
		w.Uint32(1)
		w.Uint8(uint8(TagThread))
		w.Uint32(0xAABBCCDD) // 4-byte object id, matching c's negotiated width.
		var a ArrayRegion
		require.NoError(t, a.decodeFrom(c, wire.NewReader(bytes.NewReader(b.Bytes()))))
		assert.Equal(t, TagObject, a.Tag)
		require.Equal(t, []TaggedObjectID{{Type: TagThread, Object: ObjectID(0xAABBCCDD)}}, a.Values)
	})

	t.Run("unknown tag", func(t *testing.T) {
		b := &bytes.Buffer{}
		w := wire.NewWriter(b)
		w.Uint8(0xFF)
		w.Uint32(0)
		var a ArrayRegion
		err := a.decodeFrom(c, wire.NewReader(bytes.NewReader(b.Bytes())))
		require.Error(t, err)
		var jerr *Error
		require.ErrorAs(t, err, &jerr)
		assert.Equal(t, UnexpectedTag, jerr.Kind)
	})

	// §4.3: a count claiming far more elements than the payload could
	// possibly hold is rejected before the make([]byte, count) it would
	// otherwise drive, rather than attempting a multi-gigabyte allocation.
	t.Run("lying count rejected before allocating", func(t *testing.T) {
		b := &bytes.Buffer{}
		w := wire.NewWriter(b)
		w.Uint8(uint8(TagByte))
		w.Uint32(0xFFFFFFFF) // no packet on Earth carries four billion bytes here.
		var a ArrayRegion
		err := a.decodeFrom(c, wire.NewReader(bytes.NewReader(b.Bytes())))
		require.Error(t, err)
		var jerr *Error
		require.ErrorAs(t, err, &jerr)
		assert.Equal(t, ShortRead, jerr.Kind)
	})
}

// The event-modifier kinds that wrap a bare id (ThreadOnly, ClassOnly,
// InstanceOnly) must respect the connection's negotiated width exactly
// like any other id field, even though their dynamic Go type is their own
// named type rather than ThreadID/ReferenceTypeID/ObjectID themselves.
func TestEventModifierIDWidthsRespected(t *testing.T) {
	for _, w := range widths {
		w := w
		t.Run(widthName(w), func(t *testing.T) {
			c := connWithIDSize(w)
			max := maxForWidth(w)

			encodeModifier := func(mod EventModifier) []byte {
				b := &bytes.Buffer{}
				wr := wire.NewWriter(b)
				// Encoded through an EventModifier-typed slot, as the
				// elements of a []EventModifier are, so modKind is written.
				require.NoError(t, c.encode(wr, reflect.ValueOf(&mod).Elem()))
				return b.Bytes()
			}

			// byte 0 is the modKind tag; the id follows at exactly w bytes.
			thread := encodeModifier(ThreadOnlyEventModifier(max))
			require.Len(t, thread, 1+int(w))
			assert.Equal(t, uint8(3), thread[0])

			class := encodeModifier(ClassOnlyEventModifier(max))
			require.Len(t, class, 1+int(w))
			assert.Equal(t, uint8(4), class[0])

			instance := encodeModifier(InstanceOnlyEventModifier(max))
			require.Len(t, instance, 1+int(w))
			assert.Equal(t, uint8(11), instance[0])

			r := wire.NewReader(bytes.NewReader(thread[1:]))
			assert.Equal(t, max, wire.ReadUint(r, int(w)*8))
		})
	}
}

// §8 item 3: the 11-byte packet header frames and parses back losslessly,
// and any truncated prefix is rejected as InvalidPacket rather than
// yielding a partially-populated packet.
func TestFramerTotality(t *testing.T) {
	cmd := cmdPacket{
		id:     42,
		flags:  0,
		cmdSet: cmdSetVirtualMachine,
		cmdID:  1,
		data:   []byte{1, 2, 3, 4},
	}
	b := &bytes.Buffer{}
	require.NoError(t, cmd.write(wire.NewWriter(b)))

	full := b.Bytes()
	c := &Connection{r: wire.NewReader(bytes.NewReader(full))}
	got, err := c.readPacket()
	require.NoError(t, err)
	parsed, ok := got.(cmdPacket)
	require.True(t, ok)
	assert.Equal(t, cmd, parsed)

	reply := replyPacket{id: 7, err: ErrInvalidObject, data: []byte{9, 9}}
	rb := &bytes.Buffer{}
	w := wire.NewWriter(rb)
	w.Uint32(uint32(11 + len(reply.data)))
	w.Uint32(uint32(reply.id))
	w.Uint8(uint8(packetIsReply))
	w.Uint16(uint16(reply.err))
	w.Data(reply.data)
	c2 := &Connection{r: wire.NewReader(bytes.NewReader(rb.Bytes()))}
	got2, err := c2.readPacket()
	require.NoError(t, err)
	parsedReply, ok := got2.(replyPacket)
	require.True(t, ok)
	assert.Equal(t, reply, parsedReply)

	// A prefix with at least one byte but fewer than the 11-byte header
	// promises a packet that never fully arrives: InvalidPacket, with the
	// underlying ShortRead as its Cause.
	// n == 0 is the other case, a clean io.EOF with no packet started yet,
	// which readPacket leaves unwrapped so recv's shutdown check still
	// sees a bare io.EOF.
	for n := 1; n < 11; n++ {
		c3 := &Connection{r: wire.NewReader(bytes.NewReader(full[:n]))}
		_, err := c3.readPacket()
		require.Error(t, err)
		var jerr *Error
		require.ErrorAsf(t, err, &jerr, "n=%d", n)
		assert.Equalf(t, InvalidPacket, jerr.Kind, "n=%d", n)
	}
	c0 := &Connection{r: wire.NewReader(bytes.NewReader(full[:0]))}
	_, err = c0.readPacket()
	require.ErrorIs(t, err, io.EOF)

	// A declared length under the 11-byte header minimum is rejected
	// outright, even when enough bytes happen to follow it.
	short := &bytes.Buffer{}
	sw := wire.NewWriter(short)
	sw.Uint32(5)
	sw.Data(make([]byte, 20))
	c4 := &Connection{r: wire.NewReader(bytes.NewReader(short.Bytes()))}
	_, err = c4.readPacket()
	require.Error(t, err)
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, InvalidPacket, jerr.Kind)
}

// Malformed UTF-8 in a length-prefixed string reply is rejected rather
// than silently accepted as a Go string (§4.1).
func TestDecodeInvalidUTF8Rejected(t *testing.T) {
	c := connWithIDSize(8)
	b := &bytes.Buffer{}
	w := wire.NewWriter(b)
	w.Uint32(2)
	w.Data([]byte{0xff, 0xfe}) // not valid UTF-8.
	var s string
	err := c.decode(wire.NewReader(bytes.NewReader(b.Bytes())), reflect.ValueOf(&s).Elem())
	require.Error(t, err)
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, InvalidUTF8, jerr.Kind)
}

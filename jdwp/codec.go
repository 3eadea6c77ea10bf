// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jdwp

import (
	"reflect"
	"unicode/utf8"

	"github.com/necauqua/jdwp/internal/wire"
)

var (
	eventModifierType = reflect.TypeOf((*EventModifier)(nil)).Elem()
	valueType         = reflect.TypeOf((*Value)(nil)).Elem()
	eventType         = reflect.TypeOf((*Event)(nil)).Elem()
)

func unbox(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Interface {
		return v.Elem()
	}
	return v
}

// encode writes v to w using the JDWP wire encoding. Every struct field's
// encoding is chosen by its static Go type (the five id kinds, EventModifier
// and Value get special handling; everything else falls through to a
// reflect.Kind switch). Every "can't happen" branch here returns an *Error
// instead of panicking so a caller holding the connection mutex never takes
// the whole client down.
func (c *Connection) encode(w wire.Writer, v reflect.Value) error {
	t := v.Type()
	o := v.Interface()

	switch t {
	case eventModifierType:
		mod, ok := o.(EventModifier)
		if !ok {
			return &Error{Kind: UnexpectedTag}
		}
		w.Uint8(mod.modKind())

	case valueType:
		tag, err := valueTag(o)
		if err != nil {
			return err
		}
		w.Uint8(uint8(tag))
		if tag == TagVoid {
			return w.Error()
		}
	}

	switch o := o.(type) {
	case ReferenceTypeID, ClassID, InterfaceID, ArrayTypeID:
		wire.WriteUint(w, int(c.idSizes.ReferenceTypeIDSize)*8, unbox(v).Uint())

	case MethodID:
		wire.WriteUint(w, int(c.idSizes.MethodIDSize)*8, unbox(v).Uint())

	case FieldID:
		wire.WriteUint(w, int(c.idSizes.FieldIDSize)*8, unbox(v).Uint())

	case ObjectID, ThreadID, ThreadGroupID, StringID, ClassLoaderID, ClassObjectID, ArrayID:
		wire.WriteUint(w, int(c.idSizes.ObjectIDSize)*8, unbox(v).Uint())

	case FrameID:
		wire.WriteUint(w, int(c.idSizes.FrameIDSize)*8, unbox(v).Uint())

	// EventModifier variants that wrap a bare id rather than a struct
	// carrying one: their dynamic type is their own named type (not ThreadID
	// etc.), so they don't hit the id cases above and need their own,
	// otherwise they'd fall through to the generic fixed-width Uint64 case
	// below and ignore the negotiated id size entirely.
	case ThreadOnlyEventModifier:
		wire.WriteUint(w, int(c.idSizes.ObjectIDSize)*8, uint64(o))

	case ClassOnlyEventModifier:
		wire.WriteUint(w, int(c.idSizes.ReferenceTypeIDSize)*8, uint64(o))

	case InstanceOnlyEventModifier:
		wire.WriteUint(w, int(c.idSizes.ObjectIDSize)*8, uint64(o))

	case []byte:
		w.Uint32(uint32(len(o)))
		w.Data(o)

	default:
		switch t.Kind() {
		case reflect.Ptr, reflect.Interface:
			if v.IsNil() {
				return &Error{Kind: UnexpectedTag}
			}
			return c.encode(w, v.Elem())
		case reflect.String:
			w.Uint32(uint32(v.Len()))
			w.Data([]byte(v.String()))
		case reflect.Uint8:
			w.Uint8(uint8(v.Uint()))
		case reflect.Uint16:
			w.Uint16(uint16(v.Uint()))
		case reflect.Uint32:
			w.Uint32(uint32(v.Uint()))
		case reflect.Uint64:
			w.Uint64(v.Uint())
		case reflect.Int8:
			w.Int8(int8(v.Int()))
		case reflect.Int16:
			w.Int16(int16(v.Int()))
		case reflect.Int32, reflect.Int:
			w.Int32(int32(v.Int()))
		case reflect.Int64:
			w.Int64(v.Int())
		case reflect.Float32:
			w.Float32(float32(v.Float()))
		case reflect.Float64:
			w.Float64(v.Float())
		case reflect.Bool:
			w.Bool(v.Bool())
		case reflect.Struct:
			for i, count := 0, v.NumField(); i < count; i++ {
				if err := c.encode(w, v.Field(i)); err != nil {
					return err
				}
			}
		case reflect.Slice:
			count := v.Len()
			w.Uint32(uint32(count))
			for i := 0; i < count; i++ {
				if err := c.encode(w, v.Index(i)); err != nil {
					return err
				}
			}
		default:
			return &Error{Kind: UnexpectedTag}
		}
	}
	return w.Error()
}

func valueTag(o interface{}) (Tag, error) {
	switch o.(type) {
	case ArrayID:
		return TagArray, nil
	case byte:
		return TagByte, nil
	case Char:
		return TagChar, nil
	case ObjectID:
		return TagObject, nil
	case float32:
		return TagFloat, nil
	case float64:
		return TagDouble, nil
	case int, int32:
		return TagInt, nil
	case int16:
		return TagShort, nil
	case int64:
		return TagLong, nil
	case nil:
		return TagVoid, nil
	case bool:
		return TagBoolean, nil
	case StringID:
		return TagString, nil
	case ThreadID:
		return TagThread, nil
	case ThreadGroupID:
		return TagThreadGroup, nil
	case ClassLoaderID:
		return TagClassLoader, nil
	case ClassObjectID:
		return TagClassObject, nil
	default:
		return 0, &Error{Kind: UnexpectedTag}
	}
}

var tagType = map[Tag]reflect.Type{
	TagArray:       reflect.TypeOf(ArrayID(0)),
	TagByte:        reflect.TypeOf(byte(0)),
	TagChar:        reflect.TypeOf(Char(0)),
	TagObject:      reflect.TypeOf(ObjectID(0)),
	TagFloat:       reflect.TypeOf(float32(0)),
	TagDouble:      reflect.TypeOf(float64(0)),
	TagInt:         reflect.TypeOf(int32(0)),
	TagShort:       reflect.TypeOf(int16(0)),
	TagLong:        reflect.TypeOf(int64(0)),
	TagBoolean:     reflect.TypeOf(false),
	TagString:      reflect.TypeOf(StringID(0)),
	TagThread:      reflect.TypeOf(ThreadID(0)),
	TagThreadGroup: reflect.TypeOf(ThreadGroupID(0)),
	TagClassLoader: reflect.TypeOf(ClassLoaderID(0)),
	TagClassObject: reflect.TypeOf(ClassObjectID(0)),
}

// checkCount rejects a length-prefixed count that could not possibly be
// backed by the bytes actually left in r: count elements of at least
// minSize bytes each would read past the declared packet payload. A reader
// that can't report how much is left (the live connection reader, which
// doesn't know how much more its peer intends to write) is let through
// uninspected; the io.ReadFull calls that follow still fail cleanly on a
// genuinely short stream, just without pre-empting the allocation.
func checkCount(r wire.Reader, count, minSize int) error {
	if count < 0 {
		return &Error{Kind: InvalidPacket}
	}
	if n, ok := r.Remaining(); ok && int64(count)*int64(minSize) > int64(n) {
		return &Error{Kind: ShortRead}
	}
	return nil
}

// rawReply is implemented by reply shapes the generic reflection-based
// decode can't express, because their wire layout depends on a value read
// from the stream rather than on static Go field types alone.
// Connection.call checks for it before falling back to decode.
type rawReply interface {
	decodeFrom(c *Connection, r wire.Reader) error
}

func (a *ArrayRegion) decodeFrom(c *Connection, r wire.Reader) error {
	tag := Tag(r.Uint8())
	count := int(r.Uint32())
	if err := r.Error(); err != nil {
		return err
	}
	if err := checkCount(r, count, 1); err != nil {
		return err
	}
	switch tag {
	case TagByte:
		vs := make([]byte, count)
		for i := range vs {
			vs[i] = r.Uint8()
		}
		a.Values = vs
	case TagBoolean:
		vs := make([]bool, count)
		for i := range vs {
			vs[i] = r.Bool()
		}
		a.Values = vs
	case TagChar:
		vs := make([]Char, count)
		for i := range vs {
			vs[i] = Char(r.Uint16())
		}
		a.Values = vs
	case TagShort:
		vs := make([]int16, count)
		for i := range vs {
			vs[i] = r.Int16()
		}
		a.Values = vs
	case TagInt:
		vs := make([]int32, count)
		for i := range vs {
			vs[i] = r.Int32()
		}
		a.Values = vs
	case TagLong:
		vs := make([]int64, count)
		for i := range vs {
			vs[i] = r.Int64()
		}
		a.Values = vs
	case TagFloat:
		vs := make([]float32, count)
		for i := range vs {
			vs[i] = r.Float32()
		}
		a.Values = vs
	case TagDouble:
		vs := make([]float64, count)
		for i := range vs {
			vs[i] = r.Float64()
		}
		a.Values = vs
	case TagArray, TagObject, TagString, TagThread, TagThreadGroup, TagClassLoader, TagClassObject:
		vs := make([]TaggedObjectID, count)
		for i := range vs {
			if err := c.decode(r, reflect.ValueOf(&vs[i])); err != nil {
				return err
			}
		}
		a.Values = vs
	default:
		return &Error{Kind: UnexpectedTag, Tag: uint8(tag)}
	}
	a.Tag = tag
	return r.Error()
}

// decode reads v from r using the JDWP wire encoding, the mirror of encode.
func (c *Connection) decode(r wire.Reader, v reflect.Value) error {
	switch v.Type() {
	case eventType:
		var kind EventKind
		if err := c.decode(r, reflect.ValueOf(&kind)); err != nil {
			return err
		}
		ev := kind.event()
		if ev == nil {
			return &Error{Kind: UnexpectedTag, Tag: byte(kind)}
		}
		data := reflect.ValueOf(ev).Elem()
		for i, count := 0, data.NumField(); i < count; i++ {
			if err := c.decode(r, data.Field(i)); err != nil {
				return err
			}
		}
		v.Set(data)
		return r.Error()

	case valueType:
		tag := Tag(r.Uint8())
		if tag == TagVoid {
			v.Set(reflect.New(v.Type()).Elem())
			return r.Error()
		}
		ty, ok := tagType[tag]
		if !ok {
			return &Error{Kind: UnexpectedTag, Tag: uint8(tag)}
		}
		data := reflect.New(ty).Elem()
		if err := c.decode(r, data); err != nil {
			return err
		}
		v.Set(data)
		return r.Error()
	}

	t := v.Type()
	o := v.Interface()
	switch o.(type) {
	case ReferenceTypeID, ClassID, InterfaceID, ArrayTypeID:
		v.Set(reflect.ValueOf(wire.ReadUint(r, int(c.idSizes.ReferenceTypeIDSize)*8)).Convert(t))

	case MethodID:
		v.Set(reflect.ValueOf(wire.ReadUint(r, int(c.idSizes.MethodIDSize)*8)).Convert(t))

	case FieldID:
		v.Set(reflect.ValueOf(wire.ReadUint(r, int(c.idSizes.FieldIDSize)*8)).Convert(t))

	case ObjectID, ThreadID, ThreadGroupID, StringID, ClassLoaderID, ClassObjectID, ArrayID:
		v.Set(reflect.ValueOf(wire.ReadUint(r, int(c.idSizes.ObjectIDSize)*8)).Convert(t))

	case FrameID:
		v.Set(reflect.ValueOf(wire.ReadUint(r, int(c.idSizes.FrameIDSize)*8)).Convert(t))

	default:
		switch t.Kind() {
		case reflect.Ptr, reflect.Interface:
			if v.IsNil() {
				return &Error{Kind: UnexpectedTag}
			}
			return c.decode(r, v.Elem())
		case reflect.String:
			n := int(r.Uint32())
			if r.Error() != nil {
				return r.Error()
			}
			if err := checkCount(r, n, 1); err != nil {
				return err
			}
			data := make([]byte, n)
			r.Data(data)
			if r.Error() != nil {
				return r.Error()
			}
			if !utf8.Valid(data) {
				return &Error{Kind: InvalidUTF8}
			}
			v.Set(reflect.ValueOf(string(data)).Convert(t))
		case reflect.Bool:
			v.Set(reflect.ValueOf(r.Bool()).Convert(t))
		case reflect.Uint8:
			v.Set(reflect.ValueOf(r.Uint8()).Convert(t))
		case reflect.Uint16:
			v.Set(reflect.ValueOf(r.Uint16()).Convert(t))
		case reflect.Uint32:
			v.Set(reflect.ValueOf(r.Uint32()).Convert(t))
		case reflect.Uint64:
			v.Set(reflect.ValueOf(r.Uint64()).Convert(t))
		case reflect.Int8:
			v.Set(reflect.ValueOf(r.Int8()).Convert(t))
		case reflect.Int16:
			v.Set(reflect.ValueOf(r.Int16()).Convert(t))
		case reflect.Int32, reflect.Int:
			v.Set(reflect.ValueOf(r.Int32()).Convert(t))
		case reflect.Int64:
			v.Set(reflect.ValueOf(r.Int64()).Convert(t))
		case reflect.Float32:
			v.Set(reflect.ValueOf(r.Float32()).Convert(t))
		case reflect.Float64:
			v.Set(reflect.ValueOf(r.Float64()).Convert(t))
		case reflect.Struct:
			for i, count := 0, v.NumField(); i < count; i++ {
				if err := c.decode(r, v.Field(i)); err != nil {
					return err
				}
			}
		case reflect.Slice:
			count := int(r.Uint32())
			if r.Error() != nil {
				return r.Error()
			}
			if err := checkCount(r, count, 1); err != nil {
				return err
			}
			slice := reflect.MakeSlice(t, count, count)
			for i := 0; i < count; i++ {
				if err := c.decode(r, slice.Index(i)); err != nil {
					return err
				}
			}
			v.Set(slice)
		default:
			return &Error{Kind: UnexpectedTag}
		}
	}
	return r.Error()
}

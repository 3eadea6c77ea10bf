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

import "sort"

// Char is JDWP's 16-bit UTF-16 code unit, distinct from any of Go's own
// character types so the codec can tell it apart from a plain int16 field.
type Char uint16

// TaggedObjectID is a type-and-object-id pair, used wherever JDWP returns
// an object reference whose concrete kind isn't already known from context
// (monitor references, exception objects, 'this' references, ...).
type TaggedObjectID struct {
	Type   Tag
	Object ObjectID
}

func (t TaggedObjectID) AsObjectID() ObjectID { return t.Object }

// TaggedReferenceTypeID is a type-and-reference-type-id pair, used wherever
// JDWP returns a reference type whose concrete kind (class/interface/array)
// isn't already implied by the surrounding command.
type TaggedReferenceTypeID struct {
	Kind TypeTag
	ID   ReferenceTypeID
}

func (t TaggedReferenceTypeID) AsReferenceTypeID() ReferenceTypeID { return t.ID }

// Location describes a single code location: the kind of type it belongs
// to, the declaring reference type, the method, and a 64-bit index into
// the method's code.
type Location struct {
	Type   TypeTag
	Class  ReferenceTypeID
	Method MethodID
	Index  uint64
}

// FrameVariable describes one local variable slot of a method, as returned
// by Method.VariableTable.
type FrameVariable struct {
	CodeIndex uint64
	Name      string
	Signature string
	Length    int32
	Slot      int32
}

// VariableTable is the full set of local variable slots for a method.
type VariableTable struct {
	ArgCount int32
	Slots    []FrameVariable
}

// ArgumentSlots returns the slots that could be method arguments: those
// accessible at code index 0 with a non-zero length, sorted by slot index.
func (v *VariableTable) ArgumentSlots() []FrameVariable {
	r := []FrameVariable{}
	for _, slot := range v.Slots {
		if slot.CodeIndex == 0 && slot.Length > 0 {
			r = append(r, slot)
		}
	}
	sort.Slice(r, func(i, j int) bool {
		return r[i].Slot < r[j].Slot
	})
	return r
}

// UntaggedValue is a JDWP value encoded without a leading Tag byte: used
// wherever the wire format already establishes the value's type from
// context (ClassType.SetValues and ObjectReference.SetValues write the
// field's declared type, not a runtime tag; StackFrame.SetValues sends the
// tagged SlotValue instead). It carries the same Go value shapes as Value; being a distinct
// defined interface keeps the codec's dispatch on static field type working
// the same way Value's does, minus the tag byte.
type UntaggedValue interface{}

// FieldValue pairs a field with the untagged value to store into it, used
// by ClassType.SetValues and ObjectReference.SetValues.
type FieldValue struct {
	Field FieldID
	Value UntaggedValue
}

// SlotValue pairs a stack frame slot index with the tagged value to store
// into it, used by StackFrame.SetValues.
type SlotValue struct {
	Slot  int32
	Value Value
}

// SlotRequest names a stack frame slot and the tag the caller expects its
// value to be decoded as, used by StackFrame.GetValues.
type SlotRequest struct {
	Slot int32
	Tag  Tag
}

// ArrayRegion is a contiguous run of array component values, as returned by
// ArrayReference.GetValues. Values holds a Go slice whose element type
// depends on Tag: []byte for TagByte, []bool for TagBoolean, []Char for
// TagChar, []int16/int32/int64/float32/float64 for the other primitives,
// and []TaggedObjectID for every object-kind tag (arrays of objects carry a
// tag per element, since elements can be different runtime subtypes). This
// can't be expressed by the generic reflection codec, whose dispatch is on
// static Go field type, because the element type here is only known once
// the Tag byte itself has been read off the wire — so ArrayRegion decodes
// itself directly off a wire.Reader instead.
type ArrayRegion struct {
	Tag    Tag
	Values interface{}
}

package jdwp

import "fmt"

// The five JDWP id kinds are each a distinct nominal type wrapping the same
// uint64 representation, per §9's design note: this keeps a FieldID from
// ever being written at ObjectID width even when both happen to negotiate
// the same byte count on a given connection, because the codec dispatches
// on static Go type, not on a runtime-carried width tag.

// ObjectID identifies an object instance. ThreadID, ThreadGroupID,
// StringID, ClassLoaderID, ClassObjectID and ArrayID all share its wire
// width and can be safely widened to it.
type ObjectID uint64

// ReferenceTypeID identifies a reference type (class, interface or array).
// ClassID, InterfaceID and ArrayTypeID share its wire width.
type ReferenceTypeID uint64

// MethodID identifies a single method of a class or interface.
type MethodID uint64

// FieldID identifies a single field of a class or interface.
type FieldID uint64

// FrameID identifies a single stack frame of a suspended thread.
type FrameID uint64

// ThreadID identifies a thread object.
type ThreadID uint64

// ThreadGroupID identifies a thread group object.
type ThreadGroupID uint64

// StringID identifies a string object.
type StringID uint64

// ClassLoaderID identifies a class loader object.
type ClassLoaderID uint64

// ClassObjectID identifies a java.lang.Class instance.
type ClassObjectID uint64

// ClassID identifies a class reference type.
type ClassID uint64

// InterfaceID identifies an interface reference type.
type InterfaceID uint64

// ArrayTypeID identifies an array reference type.
type ArrayTypeID uint64

// ArrayID identifies an array object.
type ArrayID uint64

// RequestID identifies an event request registered with EventRequest.Set.
type RequestID uint32

// ObjectKind is implemented by every ObjectID subtype, letting callers
// widen a specific object kind back to the generic ObjectID it shares wire
// width with.
type ObjectKind interface {
	AsObjectID() ObjectID
}

func (i ObjectID) AsObjectID() ObjectID      { return i }
func (i ThreadID) AsObjectID() ObjectID      { return ObjectID(i) }
func (i ThreadGroupID) AsObjectID() ObjectID { return ObjectID(i) }
func (i StringID) AsObjectID() ObjectID      { return ObjectID(i) }
func (i ClassLoaderID) AsObjectID() ObjectID { return ObjectID(i) }
func (i ClassObjectID) AsObjectID() ObjectID { return ObjectID(i) }
func (i ArrayID) AsObjectID() ObjectID       { return ObjectID(i) }

// ReferenceKind is implemented by every ReferenceTypeID subtype.
type ReferenceKind interface {
	AsReferenceTypeID() ReferenceTypeID
}

func (i ReferenceTypeID) AsReferenceTypeID() ReferenceTypeID { return i }
func (i ClassID) AsReferenceTypeID() ReferenceTypeID         { return ReferenceTypeID(i) }
func (i InterfaceID) AsReferenceTypeID() ReferenceTypeID     { return ReferenceTypeID(i) }
func (i ArrayTypeID) AsReferenceTypeID() ReferenceTypeID     { return ReferenceTypeID(i) }

// IsNull reports whether id is the wire value 0. §9's open question on
// whether a zero reference-type id means "null" or "unknown" is resolved
// by preserving the byte exactly and exposing this predicate rather than
// collapsing the two meanings: callers that need to disambiguate inspect
// the surrounding reply shape.
func (i ObjectID) IsNull() bool        { return i == 0 }
func (i ReferenceTypeID) IsNull() bool { return i == 0 }
func (i ThreadID) IsNull() bool        { return i == 0 }
func (i ThreadGroupID) IsNull() bool   { return i == 0 }
func (i StringID) IsNull() bool        { return i == 0 }
func (i ClassLoaderID) IsNull() bool   { return i == 0 }
func (i ClassObjectID) IsNull() bool   { return i == 0 }
func (i ArrayID) IsNull() bool         { return i == 0 }
func (i ClassID) IsNull() bool         { return i == 0 }
func (i InterfaceID) IsNull() bool     { return i == 0 }
func (i ArrayTypeID) IsNull() bool     { return i == 0 }
func (i MethodID) IsNull() bool        { return i == 0 }
func (i FieldID) IsNull() bool         { return i == 0 }
func (i FrameID) IsNull() bool         { return i == 0 }

func (i ObjectID) String() string        { return fmt.Sprintf("ObjectID(%d)", uint64(i)) }
func (i ReferenceTypeID) String() string { return fmt.Sprintf("ReferenceTypeID(%d)", uint64(i)) }
func (i MethodID) String() string        { return fmt.Sprintf("MethodID(%d)", uint64(i)) }
func (i FieldID) String() string         { return fmt.Sprintf("FieldID(%d)", uint64(i)) }
func (i FrameID) String() string         { return fmt.Sprintf("FrameID(%d)", uint64(i)) }
func (i ThreadID) String() string        { return fmt.Sprintf("ThreadID(%d)", uint64(i)) }
func (i ThreadGroupID) String() string   { return fmt.Sprintf("ThreadGroupID(%d)", uint64(i)) }
func (i StringID) String() string        { return fmt.Sprintf("StringID(%d)", uint64(i)) }
func (i ClassLoaderID) String() string   { return fmt.Sprintf("ClassLoaderID(%d)", uint64(i)) }
func (i ClassObjectID) String() string   { return fmt.Sprintf("ClassObjectID(%d)", uint64(i)) }
func (i ClassID) String() string         { return fmt.Sprintf("ClassID(%d)", uint64(i)) }
func (i InterfaceID) String() string     { return fmt.Sprintf("InterfaceID(%d)", uint64(i)) }
func (i ArrayTypeID) String() string     { return fmt.Sprintf("ArrayTypeID(%d)", uint64(i)) }
func (i ArrayID) String() string         { return fmt.Sprintf("ArrayID(%d)", uint64(i)) }
func (i RequestID) String() string       { return fmt.Sprintf("RequestID(%d)", uint32(i)) }

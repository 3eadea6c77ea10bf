package jdwp

import "fmt"

// Tag is the 1-byte discriminator prefixing every JDWP tagged value. The
// numbering matches the ASCII letter JDWP itself uses for each primitive
// (e.g. 'I' for int); see also original_source/src/spec/constants.rs.
type Tag uint8

const (
	TagArray       Tag = 91  // '['
	TagByte        Tag = 66  // 'B'
	TagChar        Tag = 67  // 'C'
	TagObject      Tag = 76  // 'L'
	TagFloat       Tag = 70  // 'F'
	TagDouble      Tag = 68  // 'D'
	TagInt         Tag = 73  // 'I'
	TagLong        Tag = 74  // 'J'
	TagShort       Tag = 83  // 'S'
	TagVoid        Tag = 86  // 'V'
	TagBoolean     Tag = 90  // 'Z'
	TagString      Tag = 115 // 's'
	TagThread      Tag = 116 // 't'
	TagThreadGroup Tag = 103 // 'g'
	TagClassLoader Tag = 108 // 'l'
	TagClassObject Tag = 99  // 'c'
)

func (t Tag) String() string {
	switch t {
	case TagArray:
		return "Array"
	case TagByte:
		return "Byte"
	case TagChar:
		return "Char"
	case TagObject:
		return "Object"
	case TagFloat:
		return "Float"
	case TagDouble:
		return "Double"
	case TagInt:
		return "Int"
	case TagLong:
		return "Long"
	case TagShort:
		return "Short"
	case TagVoid:
		return "Void"
	case TagBoolean:
		return "Boolean"
	case TagString:
		return "String"
	case TagThread:
		return "Thread"
	case TagThreadGroup:
		return "ThreadGroup"
	case TagClassLoader:
		return "ClassLoader"
	case TagClassObject:
		return "ClassObject"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// Value is a JDWP tagged value: a Go value of one of byte, Char, float32,
// float64, int32, int64, int16, bool, nil (void, the tag alone with no
// payload) or one of the seven object-id kinds, always encoded and decoded
// with a leading Tag byte. It
// is a defined (not aliased) empty interface so the codec can recognise a
// struct field's static type as "this one needs tag-prefixing" purely from
// reflection on the field's declared type, without inspecting its value.
type Value interface{}

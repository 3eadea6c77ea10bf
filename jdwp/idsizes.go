package jdwp

// IDSizes holds the five negotiated id widths, in bytes, for a connection.
// It is read exactly once via the VirtualMachine.IDSizes command right
// after the handshake and is immutable for the life of the connection —
// every subsequent encode/decode reads it without locking.
type IDSizes struct {
	FieldIDSize         int32
	MethodIDSize        int32
	ObjectIDSize        int32
	ReferenceTypeIDSize int32
	FrameIDSize         int32
}

// defaultIDSizes matches what every JVM implementation in practice
// negotiates (8-byte ids); Open uses it until the IDSizes reply arrives.
var defaultIDSizes = IDSizes{
	FieldIDSize:         8,
	MethodIDSize:        8,
	ObjectIDSize:        8,
	ReferenceTypeIDSize: 8,
	FrameIDSize:         8,
}

func validWidth(bytes int32) bool {
	switch bytes {
	case 1, 2, 4, 8:
		return true
	default:
		return false
	}
}

// validate returns InvalidIDSize if any of the five widths read off the
// wire is outside of {1,2,4,8}.
func (s IDSizes) validate() error {
	for _, w := range []int32{s.FieldIDSize, s.MethodIDSize, s.ObjectIDSize, s.ReferenceTypeIDSize, s.FrameIDSize} {
		if !validWidth(w) {
			return &Error{Kind: InvalidIDSize, Bits: int(w)}
		}
	}
	return nil
}

package jdwp

import (
	"bytes"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/necauqua/jdwp/internal/wire"
)

// handlerFunc answers one incoming command packet's body with a reply
// payload and JDWP error code.
type handlerFunc func(set cmdSet, id cmdID, body []byte) (data []byte, errCode ErrorCode)

// newTestConnection opens a Connection over an in-memory net.Pipe, with a
// background goroutine standing in for the target VM: it performs the
// handshake, answers VirtualMachine.IDSizes with 8-byte ids and
// VirtualMachine.Version with a fixed fake description (both of which Open
// issues synchronously before returning), and dispatches every other
// command to handle.
func newTestConnection(t *testing.T, handle handlerFunc) *Connection {
	t.Helper()
	client, server := net.Pipe()
	go runFakeServer(server, handle)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Open(ctx, client, WithRequestTimeout(2*time.Second))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Dispose() })
	return c
}

// fakeVersion is the Version every fake server in this package's tests
// answers VirtualMachine.Version with, since Open fetches it unconditionally
// as part of the handshake. TestVersionGoldenVector checks the exact bytes
// this decodes from.
var fakeVersion = Version{
	Description: "Fake JVM Debug Interface",
	JDWPMajor:   1,
	JDWPMinor:   6,
	VMVersion:   "11.0.2",
	VMName:      "Fake VM",
}

func fakeVersionBytes() []byte {
	b := &bytes.Buffer{}
	w := wire.NewWriter(b)
	str := func(s string) {
		w.Uint32(uint32(len(s)))
		w.Data([]byte(s))
	}
	str(fakeVersion.Description)
	w.Int32(fakeVersion.JDWPMajor)
	w.Int32(fakeVersion.JDWPMinor)
	str(fakeVersion.VMVersion)
	str(fakeVersion.VMName)
	return b.Bytes()
}

func runFakeServer(conn net.Conn, handle handlerFunc) {
	defer conn.Close()

	buf := make([]byte, len(handshake))
	if _, err := io.ReadFull(conn, buf); err != nil {
		return
	}
	if _, err := conn.Write(handshake); err != nil {
		return
	}

	r := wire.NewReader(conn)
	w := wire.NewWriter(conn)
	for {
		length := r.Uint32()
		if r.Error() != nil {
			return
		}
		id := r.Uint32()
		r.Uint8() // flags: every packet from a client is a command.
		set := cmdSet(r.Uint8())
		cid := cmdID(r.Uint8())
		body := make([]byte, length-11)
		r.Data(body)
		if r.Error() != nil {
			return
		}

		var data []byte
		errCode := ErrNone
		switch {
		case set == cmdSetVirtualMachine && cid == 7:
			b := &bytes.Buffer{}
			bw := wire.NewWriter(b)
			for i := 0; i < 5; i++ {
				bw.Uint32(8)
			}
			data = b.Bytes()
		case set == cmdSetVirtualMachine && cid == 1:
			data = fakeVersionBytes()
		case handle != nil:
			data, errCode = handle(set, cid, body)
		}

		w.Uint32(uint32(11 + len(data)))
		w.Uint32(id)
		w.Uint8(uint8(packetIsReply))
		w.Uint16(uint16(errCode))
		w.Data(data)
		if w.Error() != nil {
			return
		}
	}
}

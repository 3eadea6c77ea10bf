package jdwp

import (
	"bytes"
	"context"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/necauqua/jdwp/internal/wire"
)

// Golden-vector coverage (§8 item 2): a hand-crafted VirtualMachine.Version
// reply decodes to the expected Version. Open issues Version synchronously
// as part of the handshake (§4.6), so the value is already cached on the
// Connection by the time newTestConnection returns it; a second live call
// through GetVersion must agree with that cached value byte for byte.
func TestVersionGoldenVector(t *testing.T) {
	c := newTestConnection(t, nil)

	assert.Equal(t, fakeVersion, c.Version())

	v, err := c.GetVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fakeVersion, v)
	assert.NotEmpty(t, v.Description)
	assert.GreaterOrEqual(t, v.JDWPMajor, int32(1))
	assert.GreaterOrEqual(t, v.JDWPMinor, int32(4))
}

// §8 item 6: ClassesBySignature("LBasic;") returns exactly one class entry
// whose reference-type kind is class and whose status includes initialized.
func TestClassesBySignatureSingleMatch(t *testing.T) {
	c := newTestConnection(t, func(set cmdSet, id cmdID, body []byte) ([]byte, ErrorCode) {
		if set != cmdSetVirtualMachine || id != 2 {
			t.Fatalf("unexpected command %d.%d", set, id)
		}
		r := wire.NewReader(bytes.NewReader(body))
		n := r.Uint32()
		sig := make([]byte, n)
		r.Data(sig)
		assert.Equal(t, "LBasic;", string(sig))

		b := &bytes.Buffer{}
		w := wire.NewWriter(b)
		w.Uint32(1)
		w.Uint8(uint8(Class))
		w.Uint64(0xCAFE) // 8-byte reference type id, per the handshake's negotiated width.
		w.Int32(int32(StatusPrepared | StatusInitialized | StatusVerified))
		return b.Bytes(), ErrNone
	})

	classes, err := c.GetClassesBySignature(context.Background(), "LBasic;")
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, Class, classes[0].Type.Kind)
	assert.Equal(t, ReferenceTypeID(0xCAFE), classes[0].Type.ID)
	assert.True(t, classes[0].Status&StatusInitialized != 0)
}

// §8 item 6 (AllThreads): every thread id returned has a non-empty name.
func TestAllThreadsHaveNames(t *testing.T) {
	c := newTestConnection(t, func(set cmdSet, id cmdID, body []byte) ([]byte, ErrorCode) {
		switch {
		case set == cmdSetVirtualMachine && id == 4:
			b := &bytes.Buffer{}
			w := wire.NewWriter(b)
			w.Uint32(2)
			w.Uint64(1)
			w.Uint64(2)
			return b.Bytes(), ErrNone
		case set == cmdSetThreadReference && id == 1:
			r := wire.NewReader(bytes.NewReader(body))
			threadID := r.Uint64()
			name := map[uint64]string{1: "main", 2: "Finalizer"}[threadID]
			b := &bytes.Buffer{}
			w := wire.NewWriter(b)
			w.Uint32(uint32(len(name)))
			w.Data([]byte(name))
			return b.Bytes(), ErrNone
		}
		t.Fatalf("unexpected command %d.%d", set, id)
		return nil, ErrNone
	})

	threads, err := c.GetAllThreads(context.Background())
	require.NoError(t, err)
	require.Len(t, threads, 2)
	for _, th := range threads {
		name, err := c.GetThreadName(context.Background(), th)
		require.NoError(t, err)
		assert.NotEmpty(t, name)
	}
}

// §8 item 6 (Suspend/Resume): suspending an already-suspended thread
// increases its suspend count by one, and a matching resume decreases it.
func TestSuspendResumeCount(t *testing.T) {
	count := int32(0)
	c := newTestConnection(t, func(set cmdSet, id cmdID, body []byte) ([]byte, ErrorCode) {
		switch {
		case set == cmdSetThreadReference && id == 2: // Suspend
			count++
			return nil, ErrNone
		case set == cmdSetThreadReference && id == 3: // Resume
			count--
			return nil, ErrNone
		case set == cmdSetThreadReference && id == 12: // SuspendCount
			b := &bytes.Buffer{}
			w := wire.NewWriter(b)
			w.Int32(count)
			return b.Bytes(), ErrNone
		}
		t.Fatalf("unexpected command %d.%d", set, id)
		return nil, ErrNone
	})

	ctx := context.Background()
	require.NoError(t, c.Suspend(ctx, ThreadID(1)))
	before, err := c.GetSuspendCount(ctx, ThreadID(1))
	require.NoError(t, err)

	require.NoError(t, c.Suspend(ctx, ThreadID(1)))
	after, err := c.GetSuspendCount(ctx, ThreadID(1))
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	require.NoError(t, c.Resume(ctx, ThreadID(1)))
	final, err := c.GetSuspendCount(ctx, ThreadID(1))
	require.NoError(t, err)
	assert.Equal(t, after-1, final)
}

// A non-zero reply error code surfaces as a typed Remote error, not a
// decoded reply (§4.6).
func TestRemoteErrorSurfacesErrorCode(t *testing.T) {
	c := newTestConnection(t, func(set cmdSet, id cmdID, body []byte) ([]byte, ErrorCode) {
		return nil, ErrInvalidObject
	})

	_, err := c.GetThreadName(context.Background(), ThreadID(99999))
	require.Error(t, err)
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, Remote, jerr.Kind)
	assert.Equal(t, ErrInvalidObject, jerr.Code)
}

// A reply longer than the shape it decodes into is TrailingBytes (§7).
func TestTrailingBytesRejected(t *testing.T) {
	c := newTestConnection(t, func(set cmdSet, id cmdID, body []byte) ([]byte, ErrorCode) {
		b := &bytes.Buffer{}
		w := wire.NewWriter(b)
		w.Uint32(2)
		w.Uint64(1)
		w.Uint64(2)
		w.Uint8(0xFF) // one byte more than a []ThreadID reply should ever carry.
		return b.Bytes(), ErrNone
	})

	_, err := c.GetAllThreads(context.Background())
	require.Error(t, err)
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, TrailingBytes, jerr.Kind)
}

// GetCapabilitiesNew decodes its full 32-boolean reply, including the
// trailing reserved padding, without tripping over unexported struct
// fields (the reflection codec needs every field it walks to be settable).
func TestGetCapabilitiesNew(t *testing.T) {
	c := newTestConnection(t, func(set cmdSet, id cmdID, body []byte) ([]byte, ErrorCode) {
		if set != cmdSetVirtualMachine || id != 17 {
			t.Fatalf("unexpected command %d.%d", set, id)
		}
		b := &bytes.Buffer{}
		w := wire.NewWriter(b)
		for i := 0; i < 32; i++ {
			w.Bool(i == 0 || i == 31) // first (CanWatchFieldModification) and last (Reserved11) set.
		}
		return b.Bytes(), ErrNone
	})

	caps, err := c.GetCapabilitiesNew(context.Background())
	require.NoError(t, err)
	assert.True(t, caps.CanWatchFieldModification)
	assert.False(t, caps.CanWatchFieldAccess)
	assert.False(t, caps.CanForceEarlyReturn)
	assert.True(t, caps.Reserved11)
	assert.False(t, caps.Reserved10)
}

// A reply shorter than the shape it decodes into is ShortRead, not a bare
// io.ErrUnexpectedEOF leaking out of the wire package (§4.1, §7).
func TestShortReadRejected(t *testing.T) {
	c := newTestConnection(t, func(set cmdSet, id cmdID, body []byte) ([]byte, ErrorCode) {
		b := &bytes.Buffer{}
		w := wire.NewWriter(b)
		w.Uint32(2) // claims two thread ids...
		w.Uint64(1) // ...but only one is actually on the wire.
		return b.Bytes(), ErrNone
	})

	_, err := c.GetAllThreads(context.Background())
	require.Error(t, err)
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, ShortRead, jerr.Kind)
}

// §4.3: a reply claiming a count wildly larger than anything the packet
// could carry must fail cleanly rather than drive reflect.MakeSlice into a
// multi-gigabyte allocation. TestShortReadRejected above covers the benign
// small-overcount case; this is the adversarial lying-length one.
func TestLyingCountRejected(t *testing.T) {
	c := newTestConnection(t, func(set cmdSet, id cmdID, body []byte) ([]byte, ErrorCode) {
		b := &bytes.Buffer{}
		w := wire.NewWriter(b)
		w.Uint32(0xFFFFFFFF) // claims four billion thread ids on a near-empty reply.
		return b.Bytes(), ErrNone
	})

	_, err := c.GetAllThreads(context.Background())
	require.Error(t, err)
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, ShortRead, jerr.Kind)
}

// §6: IDSizes, Version, Capabilities and CapabilitiesNew are all accessible
// as cached values once the handshake completes. IDSizes and Version are
// populated synchronously by Open; Capabilities and CapabilitiesNew are
// fetched lazily on first use and memoized after that.
func TestCachedValuesAfterHandshake(t *testing.T) {
	var capsCalls, capsNewCalls int
	c := newTestConnection(t, func(set cmdSet, id cmdID, body []byte) ([]byte, ErrorCode) {
		if set != cmdSetVirtualMachine {
			t.Fatalf("unexpected command %d.%d", set, id)
		}
		b := &bytes.Buffer{}
		w := wire.NewWriter(b)
		switch id {
		case 12:
			capsCalls++
			for i := 0; i < 7; i++ {
				w.Bool(i == 0)
			}
		case 17:
			capsNewCalls++
			for i := 0; i < 32; i++ {
				w.Bool(i == 0)
			}
		default:
			t.Fatalf("unexpected command %d.%d", set, id)
		}
		return b.Bytes(), ErrNone
	})

	assert.Equal(t, IDSizes{FieldIDSize: 8, MethodIDSize: 8, ObjectIDSize: 8, ReferenceTypeIDSize: 8, FrameIDSize: 8}, c.IDSizes())
	assert.Equal(t, fakeVersion, c.Version())

	ctx := context.Background()
	caps1, err := c.Capabilities(ctx)
	require.NoError(t, err)
	caps2, err := c.Capabilities(ctx)
	require.NoError(t, err)
	assert.Equal(t, caps1, caps2)
	assert.Equal(t, 1, capsCalls, "Capabilities should only hit the wire once")

	new1, err := c.CapabilitiesNew(ctx)
	require.NoError(t, err)
	new2, err := c.CapabilitiesNew(ctx)
	require.NoError(t, err)
	assert.Equal(t, new1, new2)
	assert.Equal(t, 1, capsNewCalls, "CapabilitiesNew should only hit the wire once")
}

// §8 item 6: a top-level thread group's Children lists exactly the child
// threads and groups the target VM reports, preserving which id went in
// which of the two returned slices.
func TestThreadGroupChildren(t *testing.T) {
	c := newTestConnection(t, func(set cmdSet, id cmdID, body []byte) ([]byte, ErrorCode) {
		if set != cmdSetThreadGroupReference || id != 3 {
			t.Fatalf("unexpected command %d.%d", set, id)
		}
		r := wire.NewReader(bytes.NewReader(body))
		assert.Equal(t, uint64(0x1), r.Uint64())

		b := &bytes.Buffer{}
		w := wire.NewWriter(b)
		w.Uint32(2)
		w.Uint64(10)
		w.Uint64(11)
		w.Uint32(1)
		w.Uint64(20)
		return b.Bytes(), ErrNone
	})

	children, err := c.GetThreadGroupChildren(context.Background(), ThreadGroupID(1))
	require.NoError(t, err)
	assert.Equal(t, []ThreadID{10, 11}, children.ChildThreads)
	assert.Equal(t, []ThreadGroupID{20}, children.ChildGroups)
}

// §8 item 6: EventRequest.Set for ClassPrepare round-trips a RequestID, and
// the composite event it triggers decodes back into the requester's own id.
func TestSetEventClassPrepareThenCompositeEvent(t *testing.T) {
	var writeMu sync.Mutex
	client, server := net.Pipe()
	srv := &recordingServer{}
	go runRecordingServer(server, srv, func(set cmdSet, id cmdID, body []byte) ([]byte, ErrorCode) {
		if set != cmdSetEventRequest || id != 1 {
			t.Errorf("unexpected command %d.%d", set, id)
			return nil, ErrNone
		}
		b := &bytes.Buffer{}
		w := wire.NewWriter(b)
		w.Uint32(99) // RequestID
		return b.Bytes(), ErrNone
	}, &writeMu)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Open(ctx, client)
	require.NoError(t, err)
	t.Cleanup(func() { c.Dispose() })

	reqID, err := c.SetEvent(ctx, ClassPrepare, SuspendAll)
	require.NoError(t, err)
	assert.Equal(t, RequestID(99), reqID)

	body := &bytes.Buffer{}
	bw := wire.NewWriter(body)
	bw.Uint8(uint8(SuspendAll))
	bw.Uint32(1)
	bw.Uint8(uint8(ClassPrepare))
	bw.Uint32(uint32(reqID))
	bw.Uint64(1) // ThreadID, 8 bytes per the negotiated ObjectIDSize.
	bw.Uint8(uint8(Class))
	bw.Uint64(0x77) // ReferenceTypeID
	bw.Uint32(uint32(len("LFoo;")))
	bw.Data([]byte("LFoo;"))
	bw.Int32(int32(StatusPrepared | StatusVerified))

	writeMu.Lock()
	wr := wire.NewWriter(server)
	wr.Uint32(uint32(11 + body.Len()))
	wr.Uint32(1)
	wr.Uint8(0)
	wr.Uint8(uint8(cmdSetEvent))
	wr.Uint8(uint8(cmdCompositeEvent))
	wr.Data(body.Bytes())
	writeMu.Unlock()

	select {
	case set := <-c.Events():
		require.Len(t, set.Events, 1)
		ev, ok := set.Events[0].(EventClassPrepare)
		require.True(t, ok)
		assert.Equal(t, reqID, ev.Request)
		assert.Equal(t, "LFoo;", ev.Signature)
		assert.Equal(t, ReferenceTypeID(0x77), ev.ClassType)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ClassPrepare event")
	}
}

// §8 item 7: a request that never gets a reply within the configured
// timeout fails with Timeout. IDSizes is the very first request Open
// issues, so a server that performs the handshake and then goes silent
// demonstrates the same deadline applies to it.
func TestRequestTimeout(t *testing.T) {
	client, server := net.Pipe()
	t.Cleanup(func() { server.Close() })
	go func() {
		buf := make([]byte, len(handshake))
		_, _ = io.ReadFull(server, buf)
		_, _ = server.Write(handshake)
		// Never answer another packet. Keep reading so the client's write
		// completes over the unbuffered pipe and only the reply wait remains.
		_, _ = io.Copy(io.Discard, server)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := Open(ctx, client, WithRequestTimeout(50*time.Millisecond))
	require.Error(t, err)
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, Timeout, jerr.Kind)
}

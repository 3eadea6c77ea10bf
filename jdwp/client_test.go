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
	"golang.org/x/sync/errgroup"

	"github.com/necauqua/jdwp/internal/wire"
)

// recordingServer is a fake target VM that performs the handshake and the
// IDSizes exchange like runFakeServer, but also records every incoming
// packet id (for the id-uniqueness property, §8 item 4) and lets the test
// push composite event packets on its own schedule (for the event-ordering
// property, §8 item 6), independent of the client's request/reply traffic.
type recordingServer struct {
	mu  sync.Mutex
	ids []packetID
}

func (s *recordingServer) record(id packetID) {
	s.mu.Lock()
	s.ids = append(s.ids, id)
	s.mu.Unlock()
}

func (s *recordingServer) recorded() []packetID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]packetID(nil), s.ids...)
}

// runRecordingServer mirrors runFakeServer's handshake/IDSizes/dispatch
// loop, but every reply is written under writeMu so that the test's
// goroutine pushing unsolicited events can't interleave a partial packet
// with a reply packet on the wire.
func runRecordingServer(conn net.Conn, srv *recordingServer, handle handlerFunc, writeMu *sync.Mutex) {
	defer conn.Close()

	buf := make([]byte, len(handshake))
	if _, err := io.ReadFull(conn, buf); err != nil {
		return
	}
	if _, err := conn.Write(handshake); err != nil {
		return
	}

	r := wire.NewReader(conn)
	for {
		length := r.Uint32()
		if r.Error() != nil {
			return
		}
		id := r.Uint32()
		r.Uint8() // flags
		set := cmdSet(r.Uint8())
		cid := cmdID(r.Uint8())
		body := make([]byte, length-11)
		r.Data(body)
		if r.Error() != nil {
			return
		}
		srv.record(packetID(id))

		// Dispatch off the read loop so a handler that blocks (simulating a
		// target VM that never replies) doesn't stall reading of every other
		// concurrently in-flight request.
		go func(id uint32, set cmdSet, cid cmdID, body []byte) {
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

			writeMu.Lock()
			defer writeMu.Unlock()
			w := wire.NewWriter(conn)
			w.Uint32(uint32(11 + len(data)))
			w.Uint32(id)
			w.Uint8(uint8(packetIsReply))
			w.Uint16(uint16(errCode))
			w.Data(data)
		}(id, set, cid, body)
	}
}

func pushEvent(conn net.Conn, writeMu *sync.Mutex, packetIDSeq *uint32, set EventKind, signature string) error {
	body := &bytes.Buffer{}
	bw := wire.NewWriter(body)
	bw.Uint8(uint8(SuspendNone))
	bw.Uint32(1)
	bw.Uint8(uint8(set))
	bw.Uint32(0) // RequestID
	bw.Uint32(uint32(len(signature)))
	bw.Data([]byte(signature))

	writeMu.Lock()
	defer writeMu.Unlock()
	w := wire.NewWriter(conn)
	w.Uint32(uint32(11 + body.Len()))
	*packetIDSeq++
	w.Uint32(*packetIDSeq)
	w.Uint8(0) // command packet
	w.Uint8(uint8(cmdSetEvent))
	w.Uint8(uint8(cmdCompositeEvent))
	w.Data(body.Bytes())
	return w.Error()
}

// §8 item 4/5: under N concurrent Send calls, every wire packet observed by
// the mock reader has a distinct id, and each caller gets back the reply
// derived from its own request (CreateString echoes a marker derived from
// the string it was given).
func TestConcurrentSendIDUniquenessAndReplyRouting(t *testing.T) {
	client, server := net.Pipe()
	srv := &recordingServer{}
	go runRecordingServer(server, srv, func(set cmdSet, id cmdID, body []byte) ([]byte, ErrorCode) {
		if set != cmdSetVirtualMachine || id != 11 {
			t.Errorf("unexpected command %d.%d", set, id)
			return nil, ErrNone
		}
		r := wire.NewReader(bytes.NewReader(body))
		n := r.Uint32()
		s := make([]byte, n)
		r.Data(s)

		var marker uint64
		for _, b := range s {
			marker = marker*31 + uint64(b)
		}
		b := &bytes.Buffer{}
		w := wire.NewWriter(b)
		w.Uint64(marker)
		return b.Bytes(), ErrNone
	}, &sync.Mutex{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Open(ctx, client)
	require.NoError(t, err)
	t.Cleanup(func() { c.Dispose() })

	const n = 32
	g, gctx := errgroup.WithContext(context.Background())
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			s := string(rune('a' + i%26))
			var want uint64
			for _, b := range []byte(s) {
				want = want*31 + uint64(b)
			}
			got, err := c.CreateString(gctx, s)
			if err != nil {
				return err
			}
			if StringID(want) != got {
				t.Errorf("CreateString(%q): got marker %d, want %d", s, got, want)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	ids := srv.recorded()
	seen := make(map[packetID]bool, len(ids))
	for _, id := range ids {
		assert.False(t, seen[id], "packet id %d observed twice", id)
		seen[id] = true
	}
	assert.GreaterOrEqual(t, len(ids), n)
}

// §8 item 6: composite events pushed by the target VM arrive on Events() in
// the exact order they were sent on the wire.
func TestEventOrdering(t *testing.T) {
	client, server := net.Pipe()
	srv := &recordingServer{}
	writeMu := &sync.Mutex{}
	go runRecordingServer(server, srv, nil, writeMu)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Open(ctx, client)
	require.NoError(t, err)
	t.Cleanup(func() { c.Dispose() })

	signatures := []string{"LOne;", "LTwo;", "LThree;", "LFour;", "LFive;"}
	var seq uint32
	for _, sig := range signatures {
		require.NoError(t, pushEvent(server, writeMu, &seq, ClassUnload, sig))
	}

	var got []string
	for i := 0; i < len(signatures); i++ {
		select {
		case set := <-c.Events():
			require.Len(t, set.Events, 1)
			ev, ok := set.Events[0].(EventClassUnload)
			require.True(t, ok)
			got = append(got, ev.Signature)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
	assert.Equal(t, signatures, got)
}

// §8 item 7: closing the transport fails every in-flight Send with
// ConnectionClosed within a bounded time.
func TestCloseFailsInFlightSends(t *testing.T) {
	client, server := net.Pipe()
	srv := &recordingServer{}
	blocked := make(chan struct{})
	go runRecordingServer(server, srv, func(set cmdSet, id cmdID, body []byte) ([]byte, ErrorCode) {
		<-blocked // never reply; the test closes the server conn instead.
		return nil, ErrNone
	}, &sync.Mutex{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Open(ctx, client, WithRequestTimeout(10*time.Second))
	require.NoError(t, err)
	t.Cleanup(func() { c.Dispose() })

	const n = 8
	g, gctx := errgroup.WithContext(context.Background())
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := c.CreateString(gctx, "blocked")
			var jerr *Error
			if !assertErrorAsKind(err, &jerr, ConnectionClosed) {
				return err
			}
			return nil
		})
	}

	time.Sleep(50 * time.Millisecond) // let every CreateString register its reply slot.
	require.NoError(t, server.Close())
	close(blocked)

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight sends did not fail promptly after close")
	}
}

func assertErrorAsKind(err error, target **Error, kind Kind) bool {
	if err == nil {
		return false
	}
	jerr, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = jerr
	return jerr.Kind == kind
}

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

// Package jdwp implements a client for the Java Debug Wire Protocol.
package jdwp

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"reflect"
	"sync"
	"time"

	"github.com/necauqua/jdwp/internal/crashsafe"
	"github.com/necauqua/jdwp/internal/wire"
)

var handshake = []byte("JDWP-Handshake")

const (
	defaultRequestTimeout     = 120 * time.Second
	defaultEventQueueCapacity = 64
)

// Option configures a Connection created by Dial or Open.
type Option func(*options)

type options struct {
	requestTimeout     time.Duration
	eventQueueCapacity int
	logger             *slog.Logger
}

func defaultOptions() options {
	return options{
		requestTimeout:     defaultRequestTimeout,
		eventQueueCapacity: defaultEventQueueCapacity,
		logger:             slog.Default(),
	}
}

// WithRequestTimeout bounds how long a single command waits for its reply
// before failing with a Timeout error. The default is 120 seconds.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) { o.requestTimeout = d }
}

// WithEventQueueCapacity sets how many composite event sets are buffered
// before the oldest is dropped to make room for the newest, per §4.7. The
// default is 64.
func WithEventQueueCapacity(n int) Option {
	return func(o *options) { o.eventQueueCapacity = n }
}

// WithLogger sets the logger used for events that have no caller to report
// to directly: unexpected replies, unknown command packets, composite-event
// decode failures, and a receive loop stopped by a read error. Dropped
// composite events are counted (see DroppedEvents), not logged. The default
// is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Connection is a single client-side JDWP session: one TCP (or otherwise
// reliable, ordered) stream carrying a request/reply exchange in each
// direction plus an unsolicited stream of composite events. A Connection is
// safe for concurrent use by multiple goroutines.
type Connection struct {
	w       wire.Writer
	r       wire.Reader
	flush   func() error
	closer  io.Closer
	idSizes IDSizes
	version Version
	opts    options
	metrics *metrics

	writeMu      sync.Mutex
	nextPacketID packetID

	repliesMu sync.Mutex
	replies   map[packetID]chan replyPacket

	capsMu          sync.Mutex
	capabilities    *CapabilitiesReply
	capabilitiesNew *CapabilitiesNewReply

	events *eventQueue

	closeOnce sync.Once
	closed    chan struct{}
	closeErr  error
}

// IDSizes returns the five id widths negotiated with the target VM. It is
// populated during Open and immutable thereafter, so it needs no locking.
func (c *Connection) IDSizes() IDSizes { return c.idSizes }

// Version returns the JDWP implementation and target VM description
// fetched during Open. Like IDSizes it is set once before the connection
// is handed back to the caller and read without locking after that.
func (c *Connection) Version() Version { return c.version }

// Capabilities returns the target VM's original 7-flag capability set,
// fetching it from the target VM on the first call and returning the
// cached value on every call after that.
func (c *Connection) Capabilities(ctx context.Context) (CapabilitiesReply, error) {
	c.capsMu.Lock()
	defer c.capsMu.Unlock()
	if c.capabilities != nil {
		return *c.capabilities, nil
	}
	rep, err := c.GetCapabilities(ctx)
	if err != nil {
		return CapabilitiesReply{}, err
	}
	c.capabilities = &rep
	return rep, nil
}

// CapabilitiesNew returns the full JDWP 1.4+ capability set, fetching it
// from the target VM on the first call and returning the cached value on
// every call after that.
func (c *Connection) CapabilitiesNew(ctx context.Context) (CapabilitiesNewReply, error) {
	c.capsMu.Lock()
	defer c.capsMu.Unlock()
	if c.capabilitiesNew != nil {
		return *c.capabilitiesNew, nil
	}
	rep, err := c.GetCapabilitiesNew(ctx)
	if err != nil {
		return CapabilitiesNewReply{}, err
	}
	c.capabilitiesNew = &rep
	return rep, nil
}

// Dial connects to addr (host:port, as printed by a target VM's
// -agentlib:jdwp=server=y,address=... listener) and performs the JDWP
// handshake and id-size exchange.
func Dial(ctx context.Context, addr string, opts ...Option) (*Connection, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, wrapErr(ConnectionClosed, err)
	}
	c, err := Open(ctx, conn, opts...)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// Open performs the JDWP handshake over an already-established stream,
// starts the background receive loop, and then issues the IDSizes and
// Version commands synchronously so the connection is Ready (idSizes valid
// and Version cached) before it is handed back to the caller.
func Open(ctx context.Context, conn io.ReadWriteCloser, opts ...Option) (*Connection, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := exchangeHandshakes(conn); err != nil {
		return nil, err
	}

	buf := bufio.NewWriterSize(conn, 1024)
	c := &Connection{
		r:       wire.NewReader(conn),
		w:       wire.NewWriter(buf),
		flush:   buf.Flush,
		closer:  conn,
		idSizes: defaultIDSizes,
		opts:    o,
		metrics: newMetrics(),
		replies: map[packetID]chan replyPacket{},
		events:  newEventQueue(o.eventQueueCapacity),
		closed:  make(chan struct{}),
	}

	// ctx bounds only Open itself; the receive loop keeps running after it
	// is done, until Dispose or a read error.
	crashsafe.Go(func() { c.recv(context.WithoutCancel(ctx)) })

	idSizes, err := Call(ctx, c, cmdIDSizes, struct{}{})
	if err != nil {
		c.Dispose()
		return nil, err
	}
	if err := idSizes.validate(); err != nil {
		c.Dispose()
		return nil, err
	}
	c.idSizes = idSizes

	version, err := Call(ctx, c, cmdVirtualMachineVersion, struct{}{})
	if err != nil {
		c.Dispose()
		return nil, err
	}
	c.version = version

	return c, nil
}

func exchangeHandshakes(conn io.ReadWriter) error {
	if _, err := conn.Write(handshake); err != nil {
		return wrapErr(WriteFailed, err)
	}
	ok, err := expectBytes(conn, handshake)
	if err != nil {
		return wrapErr(HandshakeFailed, err)
	}
	if !ok {
		return &Error{Kind: HandshakeFailed}
	}
	return nil
}

func expectBytes(r io.Reader, expected []byte) (bool, error) {
	got := make([]byte, len(expected))
	for len(expected) > 0 {
		n, err := r.Read(got)
		if err != nil {
			return false, err
		}
		for i := 0; i < n; i++ {
			if got[i] != expected[i] {
				return false, nil
			}
		}
		got, expected = got[n:], expected[n:]
	}
	return true, nil
}

// Dispose closes the underlying transport and fails every outstanding
// request with ConnectionClosed. It is safe to call more than once.
func (c *Connection) Dispose() error {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.closeErr = c.closer.Close()
		c.repliesMu.Lock()
		for id, ch := range c.replies {
			close(ch)
			delete(c.replies, id)
		}
		c.repliesMu.Unlock()
	})
	return c.closeErr
}

// Events returns the channel composite event sets are delivered on. Reading
// from it is the only way to observe events; callers that don't need to
// observe all of them can read selectively and rely on the bounded,
// drop-oldest queue described in §4.7 rather than blocking the receive loop.
func (c *Connection) Events() <-chan EventSet { return c.events.ch }

// DroppedEvents reports how many composite event sets have been discarded
// because Events() wasn't drained quickly enough.
func (c *Connection) DroppedEvents() uint64 { return c.events.Dropped() }

// call sends req for the given command set and id and blocks for the
// matching reply, decoding it into out (which may be nil for replies with
// no meaningful payload).
func (c *Connection) call(ctx context.Context, set cmdSet, id cmdID, req, out interface{}) error {
	ctx, span := traceCall(ctx, set, id)
	defer span.End()

	select {
	case <-c.closed:
		return &Error{Kind: ConnectionClosed}
	default:
	}

	data := &bytes.Buffer{}
	if req != nil {
		e := wire.NewWriter(data)
		if err := c.encode(e, reflect.ValueOf(req)); err != nil {
			return err
		}
	}

	pid, replyCh := c.registerReply()
	p := cmdPacket{id: pid, cmdSet: set, cmdID: id, data: data.Bytes()}

	c.writeMu.Lock()
	err := p.write(c.w)
	if err == nil {
		err = c.flush()
	}
	c.writeMu.Unlock()
	if err != nil {
		c.unregisterReply(pid)
		return wrapErr(WriteFailed, err)
	}

	c.metrics.requestsInflight.Inc()
	defer c.metrics.requestsInflight.Dec()

	timeout := c.opts.requestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case reply, ok := <-replyCh:
		if !ok {
			c.metrics.requestsTotal.WithLabelValues("closed").Inc()
			return &Error{Kind: ConnectionClosed}
		}
		if reply.err != ErrNone {
			c.metrics.requestsTotal.WithLabelValues("remote_error").Inc()
			return &Error{Kind: Remote, Code: reply.err}
		}
		if out == nil {
			c.metrics.requestsTotal.WithLabelValues("ok").Inc()
			return nil
		}
		r := bytes.NewReader(reply.data)
		d := wire.NewReader(r)
		if rr, ok := out.(rawReply); ok {
			if err := rr.decodeFrom(c, d); err != nil {
				c.metrics.requestsTotal.WithLabelValues("decode_error").Inc()
				return mapShortRead(err)
			}
		} else if err := c.decode(d, reflect.ValueOf(out)); err != nil {
			c.metrics.requestsTotal.WithLabelValues("decode_error").Inc()
			return mapShortRead(err)
		}
		if r.Len() != 0 {
			c.metrics.requestsTotal.WithLabelValues("trailing_bytes").Inc()
			return &Error{Kind: TrailingBytes}
		}
		c.metrics.requestsTotal.WithLabelValues("ok").Inc()
		return nil
	case <-ctx.Done():
		c.unregisterReply(pid)
		c.metrics.requestsTotal.WithLabelValues("cancelled").Inc()
		return &Error{Kind: Cancelled, Cause: ctx.Err()}
	case <-timer.C:
		c.unregisterReply(pid)
		c.metrics.requestsTotal.WithLabelValues("timeout").Inc()
		return &Error{Kind: Timeout}
	case <-c.closed:
		c.metrics.requestsTotal.WithLabelValues("closed").Inc()
		return &Error{Kind: ConnectionClosed}
	}
}

func (c *Connection) registerReply() (packetID, chan replyPacket) {
	ch := make(chan replyPacket, 1)
	c.repliesMu.Lock()
	id := c.nextPacketID
	c.nextPacketID++
	c.replies[id] = ch
	c.repliesMu.Unlock()
	return id, ch
}

func (c *Connection) unregisterReply(id packetID) {
	c.repliesMu.Lock()
	delete(c.replies, id)
	c.repliesMu.Unlock()
}

func (c *Connection) logf(format string, args ...interface{}) {
	c.opts.logger.Warn(fmt.Sprintf(format, args...))
}

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
	"bytes"
	"context"
	"io"
	"reflect"

	"github.com/necauqua/jdwp/internal/wire"
)

// recv decodes every incoming reply or command packet, routing replies to
// their waiting call() and composite events to the event queue. It runs on
// its own goroutine (started by Open, wrapped in crashsafe.Go) for the
// lifetime of the connection and returns on ctx cancellation, a closed
// connection, or a transport error.
func (c *Connection) recv(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		default:
		}

		packet, err := c.readPacket()
		if err != nil {
			select {
			case <-c.closed:
			case <-ctx.Done():
			default:
				if err != io.EOF {
					c.logf("jdwp: read loop stopped: %v", err)
				}
				c.Dispose()
			}
			return
		}

		switch p := packet.(type) {
		case replyPacket:
			c.repliesMu.Lock()
			ch, ok := c.replies[p.id]
			delete(c.replies, p.id)
			c.repliesMu.Unlock()
			if !ok {
				c.logf("jdwp: unexpected reply for packet %d", p.id)
				continue
			}
			ch <- p

		case cmdPacket:
			if p.cmdSet != cmdSetEvent || p.cmdID != cmdCompositeEvent {
				c.logf("jdwp: received unknown command packet %+v", p)
				continue
			}
			d := wire.NewReader(bytes.NewReader(p.data))
			var set EventSet
			if err := c.decode(d, reflect.ValueOf(&set)); err != nil {
				c.logf("jdwp: failed to decode composite event: %v", err)
				continue
			}
			for _, ev := range set.Events {
				_, span := traceEvent(ctx, ev.Kind())
				span.End()
			}
			c.events.push(set)
			c.metrics.eventQueueDepth.Set(float64(c.events.depth()))
			c.metrics.eventsDroppedTotal.Set(float64(c.events.Dropped()))
		}
	}
}

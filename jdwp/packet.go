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
	"io"

	"github.com/necauqua/jdwp/internal/wire"
)

type packetID uint32

type packetFlags uint8

const packetIsReply = packetFlags(0x80)

// cmdPacket is an outgoing (or, for event callbacks, incoming) command
// packet: the 11-byte JDWP header described in §4.5, followed by the
// command's own encoded payload.
//
// struct cmdPacket {
//   length uint32       4 bytes
//   id     packetID     4 bytes
//   flags  packetFlags  1 byte
//   cmdSet cmdSet        1 byte
//   cmd    cmdID        1 byte
//   data   []byte       N bytes
// }
//
// struct replyPacket {
//   length uint32       4 bytes
//   id     packetID     4 bytes
//   flags  packetFlags  1 byte
//   err    ErrorCode    2 bytes
//   data   []byte       N bytes
// }
type cmdPacket struct {
	id     packetID
	flags  packetFlags
	cmdSet cmdSet
	cmdID  cmdID
	data   []byte
}

func (p cmdPacket) write(w wire.Writer) error {
	w.Uint32(11 + uint32(len(p.data)))
	w.Uint32(uint32(p.id))
	w.Uint8(uint8(p.flags))
	w.Uint8(uint8(p.cmdSet))
	w.Uint8(uint8(p.cmdID))
	w.Data(p.data)
	return w.Error()
}

type replyPacket struct {
	id   packetID
	err  ErrorCode
	data []byte
}

// readPacket reads and demultiplexes a single incoming packet off c.r,
// returning either a cmdPacket (an unsolicited composite event) or a
// replyPacket. A malformed header (declared length under the 11-byte
// minimum) is reported as InvalidPacket rather than silently read past. A
// clean io.EOF before any byte of a new packet arrives means the peer
// closed the stream and is returned as is; a read that fails partway
// through a packet is InvalidPacket too, with the mapped ShortRead (or
// other read error) as its Cause.
func (c *Connection) readPacket() (interface{}, error) {
	length := c.r.Uint32()
	if err := c.r.Error(); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, truncatedPacket(err)
	}
	if length < 11 {
		return nil, &Error{Kind: InvalidPacket}
	}
	id := packetID(c.r.Uint32())
	flags := packetFlags(c.r.Uint8())
	if flags&packetIsReply != 0 {
		out := replyPacket{
			id:  id,
			err: ErrorCode(c.r.Uint16()),
		}
		out.data = make([]byte, length-11)
		c.r.Data(out.data)
		return out, truncatedPacket(c.r.Error())
	}
	out := cmdPacket{
		id:     id,
		flags:  flags,
		cmdSet: cmdSet(c.r.Uint8()),
		cmdID:  cmdID(c.r.Uint8()),
	}
	out.data = make([]byte, length-11)
	c.r.Data(out.data)
	return out, truncatedPacket(c.r.Error())
}

// truncatedPacket reports a read error partway through a packet as
// InvalidPacket, keeping the mapShortRead form of err as its Cause.
func truncatedPacket(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: InvalidPacket, Cause: mapShortRead(err)}
}

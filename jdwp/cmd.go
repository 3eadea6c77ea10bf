package jdwp

import "context"

// cmdID is the command-set-local command number; paired with a cmdSet it
// addresses one JDWP request/reply shape.
type cmdID uint8

// Command names a single JDWP request/reply pair, carrying the Go types of
// its request and reply as type parameters: a declarative command table
// checked by the compiler, rather than a bag of loosely-typed
// c.get(cmdSet, id, req, &out) calls.
type Command[Req, Rep any] struct {
	set cmdSet
	id  cmdID
}

func newCommand[Req, Rep any](set cmdSet, id cmdID) Command[Req, Rep] {
	return Command[Req, Rep]{set: set, id: id}
}

// Call sends req over c and blocks for the matching reply, decoding it into
// a Rep. The context governs only the wait for the reply; the request
// itself is always written in full once the connection's write lock is
// acquired.
func Call[Req, Rep any](ctx context.Context, c *Connection, cmd Command[Req, Rep], req Req) (Rep, error) {
	var rep Rep
	err := c.call(ctx, cmd.set, cmd.id, req, &rep)
	return rep, err
}

// CallNoReply is Call for commands whose reply carries no data beyond the
// JDWP header (e.g. EventRequest.Clear).
func CallNoReply[Req any](ctx context.Context, c *Connection, cmd Command[Req, struct{}], req Req) error {
	return c.call(ctx, cmd.set, cmd.id, req, nil)
}

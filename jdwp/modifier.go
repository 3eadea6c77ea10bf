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

import "context"

const cmdCompositeEvent = cmdID(100)

var (
	cmdEventRequestSet                = newCommand[setEventRequest, RequestID](cmdSetEventRequest, 1)
	cmdEventRequestClear               = newCommand[clearEventRequest, struct{}](cmdSetEventRequest, 2)
	cmdEventRequestClearAllBreakpoints = newCommand[struct{}, struct{}](cmdSetEventRequest, 3)
)

type setEventRequest struct {
	Kind          EventKind
	SuspendPolicy SuspendPolicy
	Modifiers     []EventModifier
}

type clearEventRequest struct {
	Kind EventKind
	ID   RequestID
}

// SetEvent requests that the target VM raise events of the given kind,
// subject to every modifier, suspending threads per policy when it does.
func (c *Connection) SetEvent(ctx context.Context, kind EventKind, policy SuspendPolicy, modifiers ...EventModifier) (RequestID, error) {
	return Call(ctx, c, cmdEventRequestSet, setEventRequest{
		Kind:          kind,
		SuspendPolicy: policy,
		Modifiers:     modifiers,
	})
}

// ClearEvent cancels a previously set event request.
func (c *Connection) ClearEvent(ctx context.Context, kind EventKind, id RequestID) error {
	return CallNoReply(ctx, c, cmdEventRequestClear, clearEventRequest{Kind: kind, ID: id})
}

// ClearAllBreakpoints removes every breakpoint event request currently set,
// regardless of which client or thread created it.
func (c *Connection) ClearAllBreakpoints(ctx context.Context) error {
	return CallNoReply(ctx, c, cmdEventRequestClearAllBreakpoints, struct{}{})
}

// EventModifier is the interface implemented by all event modifier types:
// filters narrowing which occurrences of a requested EventKind actually
// raise an event. See
// http://docs.oracle.com/javase/1.5.0/docs/guide/jpda/jdwp/jdwp-protocol.html#JDWP_EventRequest_Set
// for the semantics of each. The catalog is the full 12 kinds JDWP defines,
// including Conditional and SourceNameMatch, per
// original_source/src/spec/modifier.rs.
type EventModifier interface {
	modKind() uint8
}

// CountEventModifier limits the number of times an event fires: with a
// count of 2, only the second occurrence actually raises the event.
type CountEventModifier int32

// ConditionalEventModifier restricts an event to firing only when the
// referenced expression watchpoint (itself a RequestID from a prior
// request) evaluates true. Reserved for future use by the JDWP spec itself;
// no known JVM implements it, but the wire shape is well defined.
type ConditionalEventModifier RequestID

// ThreadOnlyEventModifier filters events to those raised on the specified thread.
type ThreadOnlyEventModifier ThreadID

// ClassOnlyEventModifier filters events to those associated with the
// specified class, including its subclasses.
type ClassOnlyEventModifier ReferenceTypeID

// ClassMatchEventModifier filters events to those whose class name matches
// the pattern, which may be an exact name or use a single leading or
// trailing '*' wildcard, e.g. "java.lang.String", "*.String", "java.lang.*".
type ClassMatchEventModifier string

// ClassExcludeEventModifier filters events to those whose class name does
// not match the pattern. See ClassMatchEventModifier for pattern syntax.
type ClassExcludeEventModifier string

// LocationOnlyEventModifier filters events to those that originate at
// exactly the specified location. Used by Breakpoint requests.
type LocationOnlyEventModifier Location

// ExceptionOnlyEventModifier filters exception events; usable only with
// EventKind Exception.
type ExceptionOnlyEventModifier struct {
	ExceptionOrNull ReferenceTypeID // zero value means "any exception type".
	Caught          bool
	Uncaught        bool
}

// FieldOnlyEventModifier filters events to those on the specified field.
// Usable only with FieldAccess and FieldModification events.
type FieldOnlyEventModifier struct {
	Type  ReferenceTypeID
	Field FieldID
}

// StepEventModifier filters step events to those satisfying the given size
// and depth. Usable only with SingleStep events.
type StepEventModifier struct {
	Thread ThreadID
	Size   StepSize
	Depth  StepDepth
}

// InstanceOnlyEventModifier filters events to those with the specified
// 'this' object.
type InstanceOnlyEventModifier ObjectID

// SourceNameMatchEventModifier filters class prepare events to those whose
// source file name matches the pattern (same wildcard rules as
// ClassMatchEventModifier). Since JDWP 1.6.
type SourceNameMatchEventModifier string

func (CountEventModifier) modKind() uint8            { return 1 }
func (ConditionalEventModifier) modKind() uint8      { return 2 }
func (ThreadOnlyEventModifier) modKind() uint8       { return 3 }
func (ClassOnlyEventModifier) modKind() uint8        { return 4 }
func (ClassMatchEventModifier) modKind() uint8       { return 5 }
func (ClassExcludeEventModifier) modKind() uint8     { return 6 }
func (LocationOnlyEventModifier) modKind() uint8     { return 7 }
func (ExceptionOnlyEventModifier) modKind() uint8    { return 8 }
func (FieldOnlyEventModifier) modKind() uint8        { return 9 }
func (StepEventModifier) modKind() uint8             { return 10 }
func (InstanceOnlyEventModifier) modKind() uint8     { return 11 }
func (SourceNameMatchEventModifier) modKind() uint8  { return 12 }

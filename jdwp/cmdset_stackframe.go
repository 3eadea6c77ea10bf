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

// The StackFrame command set (16): GetValues, SetValues, ThisObject and
// PopFrames. Note the actual JDWP command set number is 16, distinct from
// cmdSetThreadReference.
var (
	cmdStackFrameGetValues  = newCommand[stackFrameGetValuesRequest, []Value](cmdSetStackFrame, 1)
	cmdStackFrameSetValues  = newCommand[stackFrameSetValuesRequest, struct{}](cmdSetStackFrame, 2)
	cmdStackFrameThisObject = newCommand[stackFrameRequest, TaggedObjectID](cmdSetStackFrame, 3)
	cmdStackFramePopFrames  = newCommand[stackFrameRequest, struct{}](cmdSetStackFrame, 4)
)

type stackFrameRequest struct {
	Thread ThreadID
	Frame  FrameID
}

type stackFrameGetValuesRequest struct {
	Thread ThreadID
	Frame  FrameID
	Slots  []SlotRequest
}

type stackFrameSetValuesRequest struct {
	Thread ThreadID
	Frame  FrameID
	Slots  []SlotValue
}

// GetThisObject returns the 'this' reference for the specified thread and
// stack frame, or a zero TaggedObjectID for a static method's frame.
func (c *Connection) GetThisObject(ctx context.Context, thread ThreadID, frame FrameID) (TaggedObjectID, error) {
	return Call(ctx, c, cmdStackFrameThisObject, stackFrameRequest{Thread: thread, Frame: frame})
}

// GetFrameValues returns the values of the given local variable slots of
// the specified thread's frame.
func (c *Connection) GetFrameValues(ctx context.Context, thread ThreadID, frame FrameID, slots []SlotRequest) ([]Value, error) {
	return Call(ctx, c, cmdStackFrameGetValues, stackFrameGetValuesRequest{Thread: thread, Frame: frame, Slots: slots})
}

// SetFrameValues sets the values of local variable slots of the specified
// thread's frame.
func (c *Connection) SetFrameValues(ctx context.Context, thread ThreadID, frame FrameID, slots []SlotValue) error {
	return CallNoReply(ctx, c, cmdStackFrameSetValues, stackFrameSetValuesRequest{Thread: thread, Frame: frame, Slots: slots})
}

// PopFrames pops the given frame and every frame above it off thread's
// stack, leaving it suspended just before the popped frame's invocation.
// Requires the CanPopFrames capability.
func (c *Connection) PopFrames(ctx context.Context, thread ThreadID, frame FrameID) error {
	return CallNoReply(ctx, c, cmdStackFramePopFrames, stackFrameRequest{Thread: thread, Frame: frame})
}

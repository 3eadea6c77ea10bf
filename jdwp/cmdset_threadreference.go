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

// The ThreadReference command set (11), all 14 commands, numbered per
// original_source/src/spec/commands.rs.
var (
	cmdThreadReferenceName                       = newCommand[ThreadID, string](cmdSetThreadReference, 1)
	cmdThreadReferenceSuspend                    = newCommand[ThreadID, struct{}](cmdSetThreadReference, 2)
	cmdThreadReferenceResume                     = newCommand[ThreadID, struct{}](cmdSetThreadReference, 3)
	cmdThreadReferenceStatus                     = newCommand[ThreadID, threadStatusReply](cmdSetThreadReference, 4)
	cmdThreadReferenceThreadGroup                = newCommand[ThreadID, ThreadGroupID](cmdSetThreadReference, 5)
	cmdThreadReferenceFrames                      = newCommand[threadFramesRequest, []FrameInfo](cmdSetThreadReference, 6)
	cmdThreadReferenceFrameCount                 = newCommand[ThreadID, uint32](cmdSetThreadReference, 7)
	cmdThreadReferenceOwnedMonitors               = newCommand[ThreadID, []TaggedObjectID](cmdSetThreadReference, 8)
	cmdThreadReferenceCurrentContendedMonitor    = newCommand[ThreadID, TaggedObjectID](cmdSetThreadReference, 9)
	cmdThreadReferenceStop                        = newCommand[threadStopRequest, struct{}](cmdSetThreadReference, 10)
	cmdThreadReferenceInterrupt                   = newCommand[ThreadID, struct{}](cmdSetThreadReference, 11)
	cmdThreadReferenceSuspendCount                = newCommand[ThreadID, uint32](cmdSetThreadReference, 12)
	cmdThreadReferenceOwnedMonitorsStackDepthInfo = newCommand[ThreadID, []MonitorStackDepthInfo](cmdSetThreadReference, 13)
	cmdThreadReferenceForceEarlyReturn            = newCommand[forceEarlyReturnRequest, struct{}](cmdSetThreadReference, 14)
)

type threadStatusReply struct {
	Status        ThreadStatus
	SuspendStatus SuspendStatus
}

// FrameInfo describes a single stack frame: its id and current location.
type FrameInfo struct {
	Frame    FrameID
	Location Location
}

type threadFramesRequest struct {
	Thread     ThreadID
	StartFrame uint32
	Length     int32
}

type threadStopRequest struct {
	Thread    ThreadID
	Throwable TaggedObjectID
}

// MonitorStackDepthInfo pairs an owned monitor with the stack depth of the
// frame that entered it; Depth is -1 when the depth could not be determined.
type MonitorStackDepthInfo struct {
	Monitor TaggedObjectID
	Depth   int32
}

type forceEarlyReturnRequest struct {
	Thread ThreadID
	Value  Value
}

// GetThreadName returns the thread's name.
func (c *Connection) GetThreadName(ctx context.Context, thread ThreadID) (string, error) {
	return Call(ctx, c, cmdThreadReferenceName, thread)
}

// Suspend suspends the specified thread.
func (c *Connection) Suspend(ctx context.Context, id ThreadID) error {
	return CallNoReply(ctx, c, cmdThreadReferenceSuspend, id)
}

// Resume resumes the specified thread.
func (c *Connection) Resume(ctx context.Context, id ThreadID) error {
	return CallNoReply(ctx, c, cmdThreadReferenceResume, id)
}

// GetThreadStatus returns the thread's current run and suspend state.
func (c *Connection) GetThreadStatus(ctx context.Context, thread ThreadID) (ThreadStatus, SuspendStatus, error) {
	rep, err := Call(ctx, c, cmdThreadReferenceStatus, thread)
	return rep.Status, rep.SuspendStatus, err
}

// GetThreadGroup returns the thread group the thread belongs to.
func (c *Connection) GetThreadGroup(ctx context.Context, thread ThreadID) (ThreadGroupID, error) {
	return Call(ctx, c, cmdThreadReferenceThreadGroup, thread)
}

// GetFrames returns up to length stack frames of thread, starting at
// startFrame (0 is the current frame); length < 0 means every remaining frame.
func (c *Connection) GetFrames(ctx context.Context, thread ThreadID, startFrame uint32, length int32) ([]FrameInfo, error) {
	return Call(ctx, c, cmdThreadReferenceFrames, threadFramesRequest{Thread: thread, StartFrame: startFrame, Length: length})
}

// GetFrameCount returns the number of stack frames thread currently has.
func (c *Connection) GetFrameCount(ctx context.Context, thread ThreadID) (uint32, error) {
	return Call(ctx, c, cmdThreadReferenceFrameCount, thread)
}

// GetOwnedMonitors returns the monitors owned by thread. Requires the
// CanGetOwnedMonitorInfo capability.
func (c *Connection) GetOwnedMonitors(ctx context.Context, thread ThreadID) ([]TaggedObjectID, error) {
	return Call(ctx, c, cmdThreadReferenceOwnedMonitors, thread)
}

// GetOwnedMonitorsStackDepthInfo is GetOwnedMonitors plus the stack depth
// each monitor was entered at. Requires the CanGetMonitorFrameInfo capability.
func (c *Connection) GetOwnedMonitorsStackDepthInfo(ctx context.Context, thread ThreadID) ([]MonitorStackDepthInfo, error) {
	return Call(ctx, c, cmdThreadReferenceOwnedMonitorsStackDepthInfo, thread)
}

// GetCurrentContendedMonitor returns the monitor thread is waiting to
// enter, or a zero TaggedObjectID if it isn't waiting on one. Requires the
// CanGetCurrentContendedMonitor capability.
func (c *Connection) GetCurrentContendedMonitor(ctx context.Context, thread ThreadID) (TaggedObjectID, error) {
	return Call(ctx, c, cmdThreadReferenceCurrentContendedMonitor, thread)
}

// Stop causes thread to throw throwable asynchronously.
func (c *Connection) Stop(ctx context.Context, thread ThreadID, throwable TaggedObjectID) error {
	return CallNoReply(ctx, c, cmdThreadReferenceStop, threadStopRequest{Thread: thread, Throwable: throwable})
}

// Interrupt interrupts the specified thread.
func (c *Connection) Interrupt(ctx context.Context, thread ThreadID) error {
	return CallNoReply(ctx, c, cmdThreadReferenceInterrupt, thread)
}

// GetSuspendCount returns the number of pending suspends on thread (the
// number of Suspend calls minus the number of Resume calls).
func (c *Connection) GetSuspendCount(ctx context.Context, thread ThreadID) (uint32, error) {
	return Call(ctx, c, cmdThreadReferenceSuspendCount, thread)
}

// ForceEarlyReturn forces a method to return early with value, without
// executing any remaining bytecode. Requires the CanForceEarlyReturn capability.
func (c *Connection) ForceEarlyReturn(ctx context.Context, thread ThreadID, value Value) error {
	return CallNoReply(ctx, c, cmdThreadReferenceForceEarlyReturn, forceEarlyReturnRequest{Thread: thread, Value: value})
}

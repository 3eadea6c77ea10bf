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

// Event is the interface implemented by all events raised by the VM. Its 20
// implementations cover every EventKind except UserDefined and
// VMDisconnect (an ExceptionCatch kind decodes into EventException),
// including FramePop, ClassLoad, MethodExitWithReturnValue and the four
// monitor events, grounded on the
// Rust Event<D> enum in original_source/src/spec/event.rs.
type Event interface {
	request() RequestID
	Kind() EventKind
}

// EventVMStart represents an event raised when the virtual machine is started.
type EventVMStart struct {
	Request RequestID
	Thread  ThreadID
}

// EventVMDeath represents an event raised when the virtual machine is stopped.
type EventVMDeath struct {
	Request RequestID
}

// EventSingleStep represents an event raised when a single-step has been completed.
type EventSingleStep struct {
	Request  RequestID
	Thread   ThreadID
	Location Location
}

// EventBreakpoint represents an event raised when a breakpoint has been hit.
type EventBreakpoint struct {
	Request  RequestID
	Thread   ThreadID
	Location Location
}

// EventFramePop represents an event raised when a stack frame previously
// requested via StackFrame.PopFrames is popped.
type EventFramePop struct {
	Request  RequestID
	Thread   ThreadID
	Location Location
}

// EventMethodEntry represents an event raised when a method has been entered.
type EventMethodEntry struct {
	Request  RequestID
	Thread   ThreadID
	Location Location
}

// EventMethodExit represents an event raised when a method has been exited.
type EventMethodExit struct {
	Request  RequestID
	Thread   ThreadID
	Location Location
}

// EventMethodExitWithReturnValue is EventMethodExit plus the value the
// method returned.
type EventMethodExitWithReturnValue struct {
	Request     RequestID
	Thread      ThreadID
	Location    Location
	ReturnValue Value
}

// EventMonitorContendedEnter represents an event raised when a thread
// attempts to enter a monitor already held by another thread.
type EventMonitorContendedEnter struct {
	Request  RequestID
	Thread   ThreadID
	Object   TaggedObjectID
	Location Location
}

// EventMonitorContendedEntered represents an event raised when a thread
// enters a monitor after waiting for another thread to release it.
type EventMonitorContendedEntered struct {
	Request  RequestID
	Thread   ThreadID
	Object   TaggedObjectID
	Location Location
}

// EventMonitorWait represents an event raised when a thread is about to
// wait on a monitor object.
type EventMonitorWait struct {
	Request   RequestID
	Thread    ThreadID
	Object    TaggedObjectID
	Location  Location
	TimeoutMS int64
}

// EventMonitorWaited represents an event raised when a thread finishes
// waiting on a monitor object.
type EventMonitorWaited struct {
	Request  RequestID
	Thread   ThreadID
	Object   TaggedObjectID
	Location Location
	TimedOut bool
}

// EventException represents an event raised when an exception is thrown.
type EventException struct {
	Request       RequestID
	Thread        ThreadID
	Location      Location
	Exception     TaggedObjectID
	CatchLocation Location
}

// EventThreadStart represents an event raised when a new thread is started.
type EventThreadStart struct {
	Request RequestID
	Thread  ThreadID
}

// EventThreadDeath represents an event raised when a thread is stopped.
type EventThreadDeath struct {
	Request RequestID
	Thread  ThreadID
}

// EventClassPrepare represents an event raised when a class enters the prepared state.
type EventClassPrepare struct {
	Request   RequestID
	Thread    ThreadID
	ClassKind TypeTag
	ClassType ReferenceTypeID
	Signature string
	Status    ClassStatus
}

// EventClassUnload represents an event raised when a class is unloaded.
type EventClassUnload struct {
	Request   RequestID
	Signature string
}

// EventClassLoad represents an event raised when a class enters the loaded
// state, before verification and preparation.
type EventClassLoad struct {
	Request   RequestID
	Thread    ThreadID
	ClassKind TypeTag
	ClassType ReferenceTypeID
	Signature string
	Status    ClassStatus
}

// EventFieldAccess represents an event raised when a field is accessed.
type EventFieldAccess struct {
	Request   RequestID
	Thread    ThreadID
	Location  Location
	FieldKind TypeTag
	FieldType ReferenceTypeID
	Field     FieldID
	Object    TaggedObjectID
}

// EventFieldModification represents an event raised when a field is modified.
type EventFieldModification struct {
	Request   RequestID
	Thread    ThreadID
	Location  Location
	FieldKind TypeTag
	FieldType ReferenceTypeID
	Field     FieldID
	Object    TaggedObjectID
	NewValue  Value
}

func (e EventVMStart) request() RequestID                     { return e.Request }
func (e EventVMDeath) request() RequestID                     { return e.Request }
func (e EventSingleStep) request() RequestID                  { return e.Request }
func (e EventBreakpoint) request() RequestID                  { return e.Request }
func (e EventFramePop) request() RequestID                    { return e.Request }
func (e EventMethodEntry) request() RequestID                 { return e.Request }
func (e EventMethodExit) request() RequestID                  { return e.Request }
func (e EventMethodExitWithReturnValue) request() RequestID   { return e.Request }
func (e EventMonitorContendedEnter) request() RequestID       { return e.Request }
func (e EventMonitorContendedEntered) request() RequestID     { return e.Request }
func (e EventMonitorWait) request() RequestID                 { return e.Request }
func (e EventMonitorWaited) request() RequestID               { return e.Request }
func (e EventException) request() RequestID                   { return e.Request }
func (e EventThreadStart) request() RequestID                 { return e.Request }
func (e EventThreadDeath) request() RequestID                 { return e.Request }
func (e EventClassPrepare) request() RequestID                { return e.Request }
func (e EventClassUnload) request() RequestID                 { return e.Request }
func (e EventClassLoad) request() RequestID                   { return e.Request }
func (e EventFieldAccess) request() RequestID                 { return e.Request }
func (e EventFieldModification) request() RequestID           { return e.Request }

func (EventVMStart) Kind() EventKind                     { return VMStart }
func (EventVMDeath) Kind() EventKind                     { return VMDeath }
func (EventSingleStep) Kind() EventKind                  { return SingleStep }
func (EventBreakpoint) Kind() EventKind                  { return Breakpoint }
func (EventFramePop) Kind() EventKind                    { return FramePop }
func (EventMethodEntry) Kind() EventKind                 { return MethodEntry }
func (EventMethodExit) Kind() EventKind                  { return MethodExit }
func (EventMethodExitWithReturnValue) Kind() EventKind   { return MethodExitWithReturnValue }
func (EventMonitorContendedEnter) Kind() EventKind       { return MonitorContendedEnter }
func (EventMonitorContendedEntered) Kind() EventKind     { return MonitorContendedEntered }
func (EventMonitorWait) Kind() EventKind                 { return MonitorWait }
func (EventMonitorWaited) Kind() EventKind               { return MonitorWaited }
func (EventException) Kind() EventKind                   { return Exception }
func (EventThreadStart) Kind() EventKind                 { return ThreadStart }
func (EventThreadDeath) Kind() EventKind                 { return ThreadDeath }
func (EventClassPrepare) Kind() EventKind                { return ClassPrepare }
func (EventClassUnload) Kind() EventKind                 { return ClassUnload }
func (EventClassLoad) Kind() EventKind                   { return ClassLoad }
func (EventFieldAccess) Kind() EventKind                 { return FieldAccess }
func (EventFieldModification) Kind() EventKind           { return FieldModification }

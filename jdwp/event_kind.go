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

import "fmt"

// EventKind represents the type of event to set, or being raised. The
// catalog is the full 23 kinds from the JDWP specification, cross-checked
// against original_source/src/spec/constants.rs.
type EventKind uint8

const (
	// SingleStep is the kind of event raised when a single-step has been completed.
	SingleStep = EventKind(1)
	// Breakpoint is the kind of event raised when a breakpoint has been hit.
	Breakpoint = EventKind(2)
	// FramePop is the kind of event raised when a stack-frame is popped.
	FramePop = EventKind(3)
	// Exception is the kind of event raised when an exception is thrown.
	Exception = EventKind(4)
	// UserDefined is the kind of event raised when a user-defind event is fired.
	UserDefined = EventKind(5)
	// ThreadStart is the kind of event raised when a new thread is started.
	ThreadStart = EventKind(6)
	// ThreadDeath is the kind of event raised when a thread is stopped.
	ThreadDeath = EventKind(7)
	// ClassPrepare is the kind of event raised when a class enters the prepared state.
	ClassPrepare = EventKind(8)
	// ClassUnload is the kind of event raised when a class is unloaded.
	ClassUnload = EventKind(9)
	// ClassLoad is the kind of event raised when a class enters the loaded state.
	ClassLoad = EventKind(10)
	// FieldAccess is the kind of event raised when a field is accessed.
	FieldAccess = EventKind(20)
	// FieldModification is the kind of event raised when a field is modified.
	FieldModification = EventKind(21)
	// ExceptionCatch is the kind of event raised when an exception is caught.
	ExceptionCatch = EventKind(30)
	// MethodEntry is the kind of event raised when a method has been entered.
	MethodEntry = EventKind(40)
	// MethodExit is the kind of event raised when a method has been exited.
	MethodExit = EventKind(41)
	// MethodExitWithReturnValue is MethodExit plus the value the method
	// returned. Since JDWP 1.6.
	MethodExitWithReturnValue = EventKind(42)
	// MonitorContendedEnter is raised when a thread attempts to enter a
	// monitor already held by another thread. Since JDWP 1.6.
	MonitorContendedEnter = EventKind(43)
	// MonitorContendedEntered is raised when a thread enters a monitor
	// after waiting for another thread to release it. Since JDWP 1.6.
	MonitorContendedEntered = EventKind(44)
	// MonitorWait is raised when a thread is about to wait on a monitor
	// object. Since JDWP 1.6.
	MonitorWait = EventKind(45)
	// MonitorWaited is raised when a thread finishes waiting on a monitor
	// object. Since JDWP 1.6.
	MonitorWaited = EventKind(46)
	// VMStart is the kind of event raised when the virtual machine is initialized.
	VMStart = EventKind(90)
	// VMDeath is the kind of event raised when the virtual machine is shutdown.
	VMDeath = EventKind(99)
	// VMDisconnect is the JDWP kind for a lost connection to the target VM.
	// The target never sends it, and no Event type in this package has it.
	VMDisconnect = EventKind(100)
)

func (k EventKind) String() string {
	switch k {
	case SingleStep:
		return "SingleStep"
	case Breakpoint:
		return "Breakpoint"
	case FramePop:
		return "FramePop"
	case Exception:
		return "Exception"
	case UserDefined:
		return "UserDefined"
	case ThreadStart:
		return "ThreadStart"
	case ThreadDeath:
		return "ThreadDeath"
	case ClassPrepare:
		return "ClassPrepare"
	case ClassUnload:
		return "ClassUnload"
	case ClassLoad:
		return "ClassLoad"
	case FieldAccess:
		return "FieldAccess"
	case FieldModification:
		return "FieldModification"
	case ExceptionCatch:
		return "ExceptionCatch"
	case MethodEntry:
		return "MethodEntry"
	case MethodExit:
		return "MethodExit"
	case MethodExitWithReturnValue:
		return "MethodExitWithReturnValue"
	case MonitorContendedEnter:
		return "MonitorContendedEnter"
	case MonitorContendedEntered:
		return "MonitorContendedEntered"
	case MonitorWait:
		return "MonitorWait"
	case MonitorWaited:
		return "MonitorWaited"
	case VMStart:
		return "VMStart"
	case VMDeath:
		return "VMDeath"
	case VMDisconnect:
		return "VMDisconnect"
	default:
		return fmt.Sprintf("EventKind<%d>", int(k))
	}
}

// event returns a default-initialized Event of the specified kind, or nil
// for a kind this catalog doesn't recognise (the caller turns that into an
// UnexpectedTag error rather than decoding garbage into it).
func (k EventKind) event() Event {
	switch k {
	case SingleStep:
		return &EventSingleStep{}
	case Breakpoint:
		return &EventBreakpoint{}
	case FramePop:
		return &EventFramePop{}
	case Exception:
		return &EventException{}
	case ThreadStart:
		return &EventThreadStart{}
	case ThreadDeath:
		return &EventThreadDeath{}
	case ClassPrepare:
		return &EventClassPrepare{}
	case ClassUnload:
		return &EventClassUnload{}
	case ClassLoad:
		return &EventClassLoad{}
	case FieldAccess:
		return &EventFieldAccess{}
	case FieldModification:
		return &EventFieldModification{}
	case ExceptionCatch:
		return &EventException{}
	case MethodEntry:
		return &EventMethodEntry{}
	case MethodExit:
		return &EventMethodExit{}
	case MethodExitWithReturnValue:
		return &EventMethodExitWithReturnValue{}
	case MonitorContendedEnter:
		return &EventMonitorContendedEnter{}
	case MonitorContendedEntered:
		return &EventMonitorContendedEntered{}
	case MonitorWait:
		return &EventMonitorWait{}
	case MonitorWaited:
		return &EventMonitorWaited{}
	case VMStart:
		return &EventVMStart{}
	case VMDeath:
		return &EventVMDeath{}
	default:
		return nil
	}
}

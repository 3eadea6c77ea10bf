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

// The VirtualMachine command set (1), all 21 commands (including
// TopLevelThreadGroups, Capabilities, ClassPaths, DisposeObjects,
// HoldEvents, ReleaseEvents, CapabilitiesNew, RedefineClasses,
// SetDefaultStratum, AllClassesWithGeneric, InstanceCounts), numbered per
// original_source/src/spec/commands.rs.
var (
	cmdVirtualMachineVersion               = newCommand[struct{}, Version](cmdSetVirtualMachine, 1)
	cmdVirtualMachineClassesBySignature    = newCommand[classesBySignatureRequest, classesBySignatureReply](cmdSetVirtualMachine, 2)
	cmdVirtualMachineAllClasses            = newCommand[struct{}, []ClassInfo](cmdSetVirtualMachine, 3)
	cmdVirtualMachineAllThreads            = newCommand[struct{}, []ThreadID](cmdSetVirtualMachine, 4)
	cmdVirtualMachineTopLevelThreadGroups  = newCommand[struct{}, []ThreadGroupID](cmdSetVirtualMachine, 5)
	cmdVirtualMachineDispose               = newCommand[struct{}, struct{}](cmdSetVirtualMachine, 6)
	cmdIDSizes                             = newCommand[struct{}, IDSizes](cmdSetVirtualMachine, 7)
	cmdVirtualMachineSuspend               = newCommand[struct{}, struct{}](cmdSetVirtualMachine, 8)
	cmdVirtualMachineResume                = newCommand[struct{}, struct{}](cmdSetVirtualMachine, 9)
	cmdVirtualMachineExit                  = newCommand[exitRequest, struct{}](cmdSetVirtualMachine, 10)
	cmdVirtualMachineCreateString          = newCommand[createStringRequest, StringID](cmdSetVirtualMachine, 11)
	cmdVirtualMachineCapabilities          = newCommand[struct{}, CapabilitiesReply](cmdSetVirtualMachine, 12)
	cmdVirtualMachineClassPaths            = newCommand[struct{}, ClassPathsReply](cmdSetVirtualMachine, 13)
	cmdVirtualMachineDisposeObjects        = newCommand[disposeObjectsRequest, struct{}](cmdSetVirtualMachine, 14)
	cmdVirtualMachineHoldEvents            = newCommand[struct{}, struct{}](cmdSetVirtualMachine, 15)
	cmdVirtualMachineReleaseEvents         = newCommand[struct{}, struct{}](cmdSetVirtualMachine, 16)
	cmdVirtualMachineCapabilitiesNew       = newCommand[struct{}, CapabilitiesNewReply](cmdSetVirtualMachine, 17)
	cmdVirtualMachineRedefineClasses       = newCommand[redefineClassesRequest, struct{}](cmdSetVirtualMachine, 18)
	cmdVirtualMachineSetDefaultStratum     = newCommand[setDefaultStratumRequest, struct{}](cmdSetVirtualMachine, 19)
	cmdVirtualMachineAllClassesWithGeneric = newCommand[struct{}, []GenericClassInfo](cmdSetVirtualMachine, 20)
	cmdVirtualMachineInstanceCounts        = newCommand[instanceCountsRequest, []int64](cmdSetVirtualMachine, 21)
)

// Version describes the JDWP implementation and target VM.
type Version struct {
	Description string
	JDWPMajor   int32
	JDWPMinor   int32
	VMVersion   string
	VMName      string
}

type classesBySignatureRequest struct {
	Signature string
}

type classesBySignatureReply struct {
	Classes []ClassBySignature
}

// ClassBySignature is one match returned by GetClassesBySignature: more than
// one entry means two or more class loaders loaded a class of that name.
type ClassBySignature struct {
	Type   TaggedReferenceTypeID
	Status ClassStatus
}

// ClassInfo describes one reference type loaded in the target VM.
type ClassInfo struct {
	Type      TaggedReferenceTypeID
	Signature string
	Status    ClassStatus
}

func (c ClassInfo) ClassID() ClassID { return ClassID(c.Type.ID) }

// GenericClassInfo is ClassInfo plus the generic signature, empty when the
// type has none.
type GenericClassInfo struct {
	Type             TaggedReferenceTypeID
	Signature        string
	GenericSignature string
	Status           ClassStatus
}

type exitRequest struct {
	ExitCode int32
}

type createStringRequest struct {
	String string
}

// CapabilitiesReply is the original 7-flag VirtualMachine.Capabilities
// reply; CapabilitiesNewReply embeds it since the newer command's reply
// shares this exact prefix.
type CapabilitiesReply struct {
	CanWatchFieldModification     bool
	CanWatchFieldAccess           bool
	CanGetBytecodes               bool
	CanGetSyntheticAttribute      bool
	CanGetOwnedMonitorInfo        bool
	CanGetCurrentContendedMonitor bool
	CanGetMonitorInfo             bool
}

// CapabilitiesNewReply adds every capability flag introduced after JDWP 1.4.
// The trailing reserved fields carry no meaning but still have to be read
// off the wire to keep the decoder's byte offset correct; they're exported
// (despite being otherwise useless to callers) because the reflection-based
// codec calls Value.Interface/Value.Set on every struct field it walks, and
// both panic on an unexported field. original_source/src/spec/commands.rs
// defines 11 of them (_reserved_22 through _reserved_32).
type CapabilitiesNewReply struct {
	CapabilitiesReply
	CanRedefineClasses               bool
	CanAddMethod                     bool
	CanUnrestrictedlyRedefineClasses bool
	CanPopFrames                     bool
	CanUseInstanceFilters            bool
	CanGetSourceDebugExtension       bool
	CanRequestVMDeathEvent           bool
	CanSetDefaultStratum             bool
	CanGetInstanceInfo               bool
	CanRequestMonitorEvents          bool
	CanGetMonitorFrameInfo           bool
	CanUseSourceNameFilters          bool
	CanGetConstantPool               bool
	CanForceEarlyReturn              bool
	Reserved1                        bool
	Reserved2                        bool
	Reserved3                        bool
	Reserved4                        bool
	Reserved5                        bool
	Reserved6                        bool
	Reserved7                        bool
	Reserved8                        bool
	Reserved9                        bool
	Reserved10                       bool
	Reserved11                       bool
}

// ClassPathsReply is the target VM's classpath and bootclasspath.
type ClassPathsReply struct {
	BaseDir        string
	ClassPaths     []string
	BootClassPaths []string
}

// ObjectRefCount pairs an object id with a reference count to release, for
// DisposeObjects.
type ObjectRefCount struct {
	Object   ObjectID
	RefCount int32
}

type disposeObjectsRequest struct {
	Requests []ObjectRefCount
}

// ClassDefinition is one new class body for RedefineClasses.
type ClassDefinition struct {
	Type      ReferenceTypeID
	ClassFile []byte
}

type redefineClassesRequest struct {
	Classes []ClassDefinition
}

type setDefaultStratumRequest struct {
	StratumID string
}

type instanceCountsRequest struct {
	ReferenceTypes []ReferenceTypeID
}

// GetVersion issues a fresh VirtualMachine.Version request. Open already
// fetches this once during the handshake and caches it; most callers want
// Connection.Version instead of paying for another round trip.
func (c *Connection) GetVersion(ctx context.Context) (Version, error) {
	return Call(ctx, c, cmdVirtualMachineVersion, struct{}{})
}

// GetClassesBySignature returns every loaded reference type whose JNI
// signature matches signature, e.g. "Ljava/lang/String;".
func (c *Connection) GetClassesBySignature(ctx context.Context, signature string) ([]ClassBySignature, error) {
	rep, err := Call(ctx, c, cmdVirtualMachineClassesBySignature, classesBySignatureRequest{Signature: signature})
	return rep.Classes, err
}

// GetAllClasses returns every reference type currently loaded in the target VM.
func (c *Connection) GetAllClasses(ctx context.Context) ([]ClassInfo, error) {
	return Call(ctx, c, cmdVirtualMachineAllClasses, struct{}{})
}

// GetAllClassesWithGeneric is GetAllClasses plus each type's generic signature.
func (c *Connection) GetAllClassesWithGeneric(ctx context.Context) ([]GenericClassInfo, error) {
	return Call(ctx, c, cmdVirtualMachineAllClassesWithGeneric, struct{}{})
}

// GetAllThreads returns every thread currently running in the target VM.
func (c *Connection) GetAllThreads(ctx context.Context) ([]ThreadID, error) {
	return Call(ctx, c, cmdVirtualMachineAllThreads, struct{}{})
}

// GetTopLevelThreadGroups returns the thread groups with no parent group.
func (c *Connection) GetTopLevelThreadGroups(ctx context.Context) ([]ThreadGroupID, error) {
	return Call(ctx, c, cmdVirtualMachineTopLevelThreadGroups, struct{}{})
}

// DisposeVM invalidates this connection's mirror of the target VM,
// cancelling every event request and resuming every thread it suspended.
func (c *Connection) DisposeVM(ctx context.Context) error {
	return CallNoReply(ctx, c, cmdVirtualMachineDispose, struct{}{})
}

// SuspendAll suspends every thread in the target VM.
func (c *Connection) SuspendAll(ctx context.Context) error {
	return CallNoReply(ctx, c, cmdVirtualMachineSuspend, struct{}{})
}

// ResumeAll resumes execution after SuspendAll or after an event suspended
// the target VM.
func (c *Connection) ResumeAll(ctx context.Context) error {
	return CallNoReply(ctx, c, cmdVirtualMachineResume, struct{}{})
}

// Exit terminates the target VM with the given exit code.
func (c *Connection) Exit(ctx context.Context, exitCode int32) error {
	return CallNoReply(ctx, c, cmdVirtualMachineExit, exitRequest{ExitCode: exitCode})
}

// CreateString creates a new java.lang.String in the target VM holding s
// and returns its object id.
func (c *Connection) CreateString(ctx context.Context, s string) (StringID, error) {
	return Call(ctx, c, cmdVirtualMachineCreateString, createStringRequest{String: s})
}

// GetCapabilities issues a fresh VirtualMachine.Capabilities request,
// bypassing whatever Connection.Capabilities has cached.
func (c *Connection) GetCapabilities(ctx context.Context) (CapabilitiesReply, error) {
	return Call(ctx, c, cmdVirtualMachineCapabilities, struct{}{})
}

// GetCapabilitiesNew issues a fresh VirtualMachine.CapabilitiesNew request,
// bypassing whatever Connection.CapabilitiesNew has cached.
func (c *Connection) GetCapabilitiesNew(ctx context.Context) (CapabilitiesNewReply, error) {
	return Call(ctx, c, cmdVirtualMachineCapabilitiesNew, struct{}{})
}

// GetClassPaths retrieves the classpath and bootclasspath of the target VM.
func (c *Connection) GetClassPaths(ctx context.Context) (ClassPathsReply, error) {
	return Call(ctx, c, cmdVirtualMachineClassPaths, struct{}{})
}

// DisposeObjects releases a batch of object references held on behalf of
// this connection; see ObjectRefCount for semantics.
func (c *Connection) DisposeObjects(ctx context.Context, requests []ObjectRefCount) error {
	return CallNoReply(ctx, c, cmdVirtualMachineDisposeObjects, disposeObjectsRequest{Requests: requests})
}

// HoldEvents tells the target VM to stop sending events until ReleaseEvents.
func (c *Connection) HoldEvents(ctx context.Context) error {
	return CallNoReply(ctx, c, cmdVirtualMachineHoldEvents, struct{}{})
}

// ReleaseEvents resumes event delivery after HoldEvents.
func (c *Connection) ReleaseEvents(ctx context.Context) error {
	return CallNoReply(ctx, c, cmdVirtualMachineReleaseEvents, struct{}{})
}

// RedefineClasses installs new class bodies in the target VM. Requires the
// CanRedefineClasses capability.
func (c *Connection) RedefineClasses(ctx context.Context, classes []ClassDefinition) error {
	return CallNoReply(ctx, c, cmdVirtualMachineRedefineClasses, redefineClassesRequest{Classes: classes})
}

// SetDefaultStratum sets the default stratum used to interpret source
// locations, or clears it if stratumID is empty. Requires the
// CanSetDefaultStratum capability.
func (c *Connection) SetDefaultStratum(ctx context.Context, stratumID string) error {
	return CallNoReply(ctx, c, cmdVirtualMachineSetDefaultStratum, setDefaultStratumRequest{StratumID: stratumID})
}

// GetInstanceCounts returns, for each reference type in types, the number
// of reachable instances. Requires the CanGetInstanceInfo capability.
func (c *Connection) GetInstanceCounts(ctx context.Context, types []ReferenceTypeID) ([]int64, error) {
	return Call(ctx, c, cmdVirtualMachineInstanceCounts, instanceCountsRequest{ReferenceTypes: types})
}

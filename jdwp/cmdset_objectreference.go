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

// The ObjectReference command set (9), including MonitorInfo,
// ReferringObjects and the collection commands. Command id 4 does not
// exist (numbering jumps 3 -> 5, per original_source/src/spec/commands.rs).
var (
	cmdObjectReferenceReferenceType    = newCommand[ObjectID, TaggedReferenceTypeID](cmdSetObjectReference, 1)
	cmdObjectReferenceGetValues         = newCommand[objectReferenceGetValuesRequest, []Value](cmdSetObjectReference, 2)
	cmdObjectReferenceSetValues         = newCommand[objectReferenceSetValuesRequest, struct{}](cmdSetObjectReference, 3)
	cmdObjectReferenceMonitorInfo       = newCommand[ObjectID, MonitorInfo](cmdSetObjectReference, 5)
	cmdObjectReferenceInvokeMethod      = newCommand[objectReferenceInvokeMethodRequest, InvokeResult](cmdSetObjectReference, 6)
	cmdObjectReferenceDisableCollection = newCommand[ObjectID, struct{}](cmdSetObjectReference, 7)
	cmdObjectReferenceEnableCollection  = newCommand[ObjectID, struct{}](cmdSetObjectReference, 8)
	cmdObjectReferenceIsCollected       = newCommand[ObjectID, bool](cmdSetObjectReference, 9)
	cmdObjectReferenceReferringObjects  = newCommand[referringObjectsRequest, []TaggedObjectID](cmdSetObjectReference, 10)
)

type objectReferenceGetValuesRequest struct {
	Object ObjectID
	Fields []FieldID
}

type objectReferenceSetValuesRequest struct {
	Object ObjectID
	Values []FieldValue
}

type objectReferenceInvokeMethodRequest struct {
	Object  ObjectID
	Thread  ThreadID
	Class   ClassID
	Method  MethodID
	Args    []Value
	Options InvokeOptions
}

type referringObjectsRequest struct {
	Object       ObjectID
	MaxReferrers uint32
}

// MonitorInfo describes the owner and waiters of an object's monitor.
// Requires the CanGetMonitorInfo capability.
type MonitorInfo struct {
	Owner      ThreadID
	EntryCount int32
	Waiters    []ThreadID
}

// GetObjectType returns the reference type of the specified object.
func (c *Connection) GetObjectType(ctx context.Context, object ObjectID) (TaggedReferenceTypeID, error) {
	return Call(ctx, c, cmdObjectReferenceReferenceType, object)
}

// GetFieldValues returns the values of the given instance fields of obj.
func (c *Connection) GetFieldValues(ctx context.Context, obj ObjectID, fields ...FieldID) ([]Value, error) {
	return Call(ctx, c, cmdObjectReferenceGetValues, objectReferenceGetValuesRequest{Object: obj, Fields: fields})
}

// SetFieldValues sets the values of instance fields of obj.
func (c *Connection) SetFieldValues(ctx context.Context, obj ObjectID, values []FieldValue) error {
	return CallNoReply(ctx, c, cmdObjectReferenceSetValues, objectReferenceSetValuesRequest{Object: obj, Values: values})
}

// GetMonitorInfo returns the owner and waiters of object's monitor.
// Requires the CanGetMonitorInfo capability.
func (c *Connection) GetMonitorInfo(ctx context.Context, object ObjectID) (MonitorInfo, error) {
	return Call(ctx, c, cmdObjectReferenceMonitorInfo, object)
}

// InvokeMethod invokes an instance method of object on thread, resolving
// virtual dispatch relative to class unless options has InvokeNonvirtual
// set. A thrown exception is reported through the result, not as an error.
func (c *Connection) InvokeMethod(ctx context.Context, object ObjectID, class ClassID, method MethodID, thread ThreadID, options InvokeOptions, args ...Value) (InvokeResult, error) {
	return Call(ctx, c, cmdObjectReferenceInvokeMethod, objectReferenceInvokeMethodRequest{
		Object: object, Thread: thread, Class: class, Method: method, Args: args, Options: options,
	})
}

// DisableGC disables garbage collection for the specified object.
func (c *Connection) DisableGC(ctx context.Context, object ObjectID) error {
	return CallNoReply(ctx, c, cmdObjectReferenceDisableCollection, object)
}

// EnableGC re-enables garbage collection for the specified object.
func (c *Connection) EnableGC(ctx context.Context, object ObjectID) error {
	return CallNoReply(ctx, c, cmdObjectReferenceEnableCollection, object)
}

// IsCollected reports whether object has been garbage collected.
func (c *Connection) IsCollected(ctx context.Context, object ObjectID) (bool, error) {
	return Call(ctx, c, cmdObjectReferenceIsCollected, object)
}

// GetReferringObjects returns up to maxReferrers objects that directly
// reference object; maxReferrers == 0 means no limit. Requires the
// CanGetInstanceInfo capability.
func (c *Connection) GetReferringObjects(ctx context.Context, object ObjectID, maxReferrers uint32) ([]TaggedObjectID, error) {
	return Call(ctx, c, cmdObjectReferenceReferringObjects, referringObjectsRequest{Object: object, MaxReferrers: maxReferrers})
}

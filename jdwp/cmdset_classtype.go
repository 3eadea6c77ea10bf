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

// The ClassType command set (3): Superclass, SetValues, InvokeMethod and
// NewInstance, per original_source/src/spec/commands.rs's class_type module.
var (
	cmdClassTypeSuperclass  = newCommand[ClassID, ClassID](cmdSetClassType, 1)
	cmdClassTypeSetValues   = newCommand[classTypeSetValuesRequest, struct{}](cmdSetClassType, 2)
	cmdClassTypeInvokeMethod = newCommand[classTypeInvokeMethodRequest, InvokeResult](cmdSetClassType, 3)
	cmdClassTypeNewInstance  = newCommand[classTypeInvokeMethodRequest, NewInstanceResult](cmdSetClassType, 4)
)

// NewInstanceResult is the reply shape of ClassType.NewInstance (ArrayType's
// NewInstance has its own reply type): exactly one of NewObject
// or Exception is non-null. Check Exception.Object.IsNull() for success.
type NewInstanceResult struct {
	NewObject TaggedObjectID
	Exception TaggedObjectID
}

type classTypeSetValuesRequest struct {
	Class  ClassID
	Values []FieldValue
}

type classTypeInvokeMethodRequest struct {
	Class   ClassID
	Thread  ThreadID
	Method  MethodID
	Args    []Value
	Options InvokeOptions
}

// GetSuperclass returns the superclass of class, or the zero ClassID for
// java.lang.Object.
func (c *Connection) GetSuperclass(ctx context.Context, class ClassID) (ClassID, error) {
	return Call(ctx, c, cmdClassTypeSuperclass, class)
}

// SetStaticFieldValues sets the values of static fields on class.
func (c *Connection) SetStaticFieldValues(ctx context.Context, class ClassID, values []FieldValue) error {
	return CallNoReply(ctx, c, cmdClassTypeSetValues, classTypeSetValuesRequest{Class: class, Values: values})
}

// InvokeStaticMethod invokes a static method of class on thread. A thrown
// exception is reported through the result, not as an error: check
// InvokeResult.Exception.Object.IsNull().
func (c *Connection) InvokeStaticMethod(ctx context.Context, class ClassID, thread ThreadID, method MethodID, options InvokeOptions, args ...Value) (InvokeResult, error) {
	return Call(ctx, c, cmdClassTypeInvokeMethod, classTypeInvokeMethodRequest{
		Class: class, Thread: thread, Method: method, Args: args, Options: options,
	})
}

// NewInstance invokes class's constructor method on thread, returning the
// newly constructed object. A thrown exception is reported through the
// result: check NewInstanceResult.Exception.Object.IsNull().
func (c *Connection) NewInstance(ctx context.Context, class ClassID, thread ThreadID, method MethodID, options InvokeOptions, args ...Value) (NewInstanceResult, error) {
	return Call(ctx, c, cmdClassTypeNewInstance, classTypeInvokeMethodRequest{
		Class: class, Thread: thread, Method: method, Args: args, Options: options,
	})
}

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
	"context"
	"fmt"
)

// GetClassBySignature returns the single loaded class matching signature.
// If there are zero or more than one match, it returns an error.
func (c *Connection) GetClassBySignature(ctx context.Context, signature string) (ClassBySignature, error) {
	classes, err := c.GetClassesBySignature(ctx, signature)
	if err != nil {
		return ClassBySignature{}, err
	}
	if len(classes) != 1 {
		return ClassBySignature{}, fmt.Errorf("%d classes found with the signature %q", len(classes), signature)
	}
	return classes[0], nil
}

// GetLocationMethodName returns the name of the method a location belongs to.
func (c *Connection) GetLocationMethodName(ctx context.Context, l Location) (string, error) {
	methods, err := c.GetMethods(ctx, l.Class)
	if err != nil {
		return "", err
	}
	method := methods.FindByID(l.Method)
	if method == nil {
		return "", fmt.Errorf("method not found with id %v", l.Method)
	}
	return method.Name, nil
}

// GetClassMethod looks up the method with the specified name and signature on class.
func (c *Connection) GetClassMethod(ctx context.Context, class ClassID, name, signature string) (Method, error) {
	methods, err := c.GetMethods(ctx, ReferenceTypeID(class))
	if err != nil {
		return Method{}, err
	}
	method := methods.FindBySignature(name, signature)
	if method == nil {
		return Method{}, fmt.Errorf("method %q%s not found", name, signature)
	}
	return *method, nil
}

// WaitForClassPrepare blocks until a class whose name matches pattern is
// prepared, suspending every thread when it does, and returns the thread
// that triggered the prepare event.
func (c *Connection) WaitForClassPrepare(ctx context.Context, pattern string) (ThreadID, error) {
	reqID, err := c.SetEvent(ctx, ClassPrepare, SuspendAll, ClassMatchEventModifier(pattern))
	if err != nil {
		return 0, err
	}
	defer c.ClearEvent(ctx, ClassPrepare, reqID)

	for {
		select {
		case events, ok := <-c.Events():
			if !ok {
				return 0, &Error{Kind: ConnectionClosed}
			}
			for _, ev := range events.Events {
				if e, ok := ev.(EventClassPrepare); ok && e.Request == reqID {
					return e.Thread, nil
				}
			}
		case <-ctx.Done():
			return 0, &Error{Kind: Cancelled, Cause: ctx.Err()}
		}
	}
}

// WaitForMethodEntry blocks until the given method on class is entered and
// returns the method entry event, resuming every other observed entry event
// along the way. All threads are left suspended when it returns.
func (c *Connection) WaitForMethodEntry(ctx context.Context, class ClassID, method MethodID) (EventMethodEntry, error) {
	reqID, err := c.SetEvent(ctx, MethodEntry, SuspendAll, ClassOnlyEventModifier(ReferenceTypeID(class)))
	if err != nil {
		return EventMethodEntry{}, err
	}
	defer c.ClearEvent(ctx, MethodEntry, reqID)

	for {
		select {
		case events, ok := <-c.Events():
			if !ok {
				return EventMethodEntry{}, &Error{Kind: ConnectionClosed}
			}
			for _, ev := range events.Events {
				e, ok := ev.(EventMethodEntry)
				if !ok || e.Request != reqID {
					continue
				}
				if e.Location.Method == method {
					return e, nil
				}
				if err := c.ResumeAll(ctx); err != nil {
					return EventMethodEntry{}, err
				}
			}
		case <-ctx.Done():
			return EventMethodEntry{}, &Error{Kind: Cancelled, Cause: ctx.Err()}
		}
	}
}

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

// The InterfaceType command set (5): a single command, InvokeMethod, added
// in JDWP 1.8 for invoking static interface methods.
var cmdInterfaceTypeInvokeMethod = newCommand[interfaceTypeInvokeMethodRequest, InvokeResult](cmdSetInterfaceType, 1)

type interfaceTypeInvokeMethodRequest struct {
	Interface InterfaceID
	Thread    ThreadID
	Method    MethodID
	Args      []Value
	Options   InvokeOptions
}

// InvokeStaticInterfaceMethod invokes a static method of an interface type
// on thread. Since JDWP 1.8.
func (c *Connection) InvokeStaticInterfaceMethod(ctx context.Context, iface InterfaceID, thread ThreadID, method MethodID, options InvokeOptions, args ...Value) (InvokeResult, error) {
	return Call(ctx, c, cmdInterfaceTypeInvokeMethod, interfaceTypeInvokeMethodRequest{
		Interface: iface, Thread: thread, Method: method, Args: args, Options: options,
	})
}

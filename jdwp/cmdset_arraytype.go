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

// The ArrayType command set (4): a single command, NewInstance.
var cmdArrayTypeNewInstance = newCommand[arrayTypeNewInstanceRequest, arrayTypeNewInstanceReply](cmdSetArrayType, 1)

type arrayTypeNewInstanceRequest struct {
	ArrayType ArrayTypeID
	Length    int32
}

type arrayTypeNewInstanceReply struct {
	Tag      Tag
	NewArray ArrayID
}

// NewArrayInstance creates a new array object of arrayType with the given
// length.
func (c *Connection) NewArrayInstance(ctx context.Context, arrayType ArrayTypeID, length int32) (ArrayID, error) {
	rep, err := Call(ctx, c, cmdArrayTypeNewInstance, arrayTypeNewInstanceRequest{ArrayType: arrayType, Length: length})
	return rep.NewArray, err
}

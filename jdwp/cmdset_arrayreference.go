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

// The ArrayReference command set (13): Length, GetValues and SetValues.
var (
	cmdArrayReferenceLength    = newCommand[ArrayID, uint32](cmdSetArrayReference, 1)
	cmdArrayReferenceGetValues = newCommand[arrayReferenceGetValuesRequest, ArrayRegion](cmdSetArrayReference, 2)
	cmdArrayReferenceSetValues = newCommand[arrayReferenceSetValuesRequest, struct{}](cmdSetArrayReference, 3)
)

type arrayReferenceGetValuesRequest struct {
	Array       ArrayID
	FirstIndex  uint32
	Length      uint32
}

type arrayReferenceSetValuesRequest struct {
	Array      ArrayID
	FirstIndex uint32
	// Values is a concrete Go slice (e.g. []int32, []ObjectID) matching the
	// array's component type; encode's existing interface-unboxing dispatch
	// writes it as a plain count-prefixed sequence, with no wrapper needed.
	Values interface{}
}

// GetArrayLength returns the length of the specified array.
func (c *Connection) GetArrayLength(ctx context.Context, id ArrayID) (uint32, error) {
	return Call(ctx, c, cmdArrayReferenceLength, id)
}

// GetArrayValues returns length consecutive component values of array
// starting at firstIndex.
func (c *Connection) GetArrayValues(ctx context.Context, array ArrayID, firstIndex, length uint32) (ArrayRegion, error) {
	return Call(ctx, c, cmdArrayReferenceGetValues, arrayReferenceGetValuesRequest{
		Array: array, FirstIndex: firstIndex, Length: length,
	})
}

// SetArrayValues sets consecutive component values of array starting at
// firstIndex. values must be a Go slice whose element type matches the
// array's component type.
func (c *Connection) SetArrayValues(ctx context.Context, array ArrayID, firstIndex uint32, values interface{}) error {
	return CallNoReply(ctx, c, cmdArrayReferenceSetValues, arrayReferenceSetValuesRequest{
		Array: array, FirstIndex: firstIndex, Values: values,
	})
}

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

// The Method command set (6): LineTable, VariableTable, Bytecodes,
// IsObsolete and VariableTableWithGeneric.
var (
	cmdMethodLineTable              = newCommand[methodRequest, LineTable](cmdSetMethod, 1)
	cmdMethodVariableTable          = newCommand[methodRequest, VariableTable](cmdSetMethod, 2)
	cmdMethodBytecodes              = newCommand[methodRequest, []byte](cmdSetMethod, 3)
	cmdMethodIsObsolete              = newCommand[methodRequest, bool](cmdSetMethod, 4)
	cmdMethodVariableTableWithGeneric = newCommand[methodRequest, VariableTableWithGeneric](cmdSetMethod, 5)
)

type methodRequest struct {
	Class  ReferenceTypeID
	Method MethodID
}

// LineTableLine maps a range of bytecode indices to a source line number.
type LineTableLine struct {
	CodeIndex  uint64
	LineNumber uint32
}

// LineTable maps a method's bytecode index range to source line numbers.
type LineTable struct {
	Start uint64
	End   uint64
	Lines []LineTableLine
}

// FrameVariableWithGeneric is FrameVariable plus its generic signature.
type FrameVariableWithGeneric struct {
	CodeIndex        uint64
	Name             string
	Signature        string
	GenericSignature string
	Length           int32
	Slot             int32
}

// VariableTableWithGeneric is VariableTable plus each slot's generic signature.
type VariableTableWithGeneric struct {
	ArgCount int32
	Slots    []FrameVariableWithGeneric
}

// GetLineTable returns the mapping from bytecode index to source line
// number for the given method.
func (c *Connection) GetLineTable(ctx context.Context, class ReferenceTypeID, method MethodID) (LineTable, error) {
	return Call(ctx, c, cmdMethodLineTable, methodRequest{Class: class, Method: method})
}

// GetVariableTable returns all of the local variables declared by the given method.
func (c *Connection) GetVariableTable(ctx context.Context, class ReferenceTypeID, method MethodID) (VariableTable, error) {
	return Call(ctx, c, cmdMethodVariableTable, methodRequest{Class: class, Method: method})
}

// GetVariableTableWithGeneric is GetVariableTable plus each slot's generic signature.
func (c *Connection) GetVariableTableWithGeneric(ctx context.Context, class ReferenceTypeID, method MethodID) (VariableTableWithGeneric, error) {
	return Call(ctx, c, cmdMethodVariableTableWithGeneric, methodRequest{Class: class, Method: method})
}

// GetBytecodes returns the method's bytecode instructions. Requires the
// CanGetBytecodes capability.
func (c *Connection) GetBytecodes(ctx context.Context, class ReferenceTypeID, method MethodID) ([]byte, error) {
	return Call(ctx, c, cmdMethodBytecodes, methodRequest{Class: class, Method: method})
}

// IsObsolete reports whether the method has been replaced by a class
// redefinition that did not retain its original bytecode.
func (c *Connection) IsObsolete(ctx context.Context, class ReferenceTypeID, method MethodID) (bool, error) {
	return Call(ctx, c, cmdMethodIsObsolete, methodRequest{Class: class, Method: method})
}

// The Field command set (8) defines no commands; the JDWP specification
// reserves it for field-scoped operations ReferenceType.GetValues and
// ObjectReference.{GetValues,SetValues} already cover.

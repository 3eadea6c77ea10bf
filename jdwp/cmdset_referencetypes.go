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

// The ReferenceType command set (2), all 18 commands (Signature, Fields,
// Methods, GetValues, Interfaces, ClassLoader, Modifiers, SourceFile,
// NestedTypes, Status, ClassObject, SourceDebugExtension,
// SignatureWithGeneric, FieldsWithGeneric, MethodsWithGeneric, Instances,
// ClassFileVersion, ConstantPool), numbered per
// original_source/src/spec/commands.rs.
var (
	cmdReferenceTypeSignature              = newCommand[ReferenceTypeID, string](cmdSetReferenceType, 1)
	cmdReferenceTypeClassLoader             = newCommand[ReferenceTypeID, ClassLoaderID](cmdSetReferenceType, 2)
	cmdReferenceTypeModifiers               = newCommand[ReferenceTypeID, ModBits](cmdSetReferenceType, 3)
	cmdReferenceTypeFields                  = newCommand[ReferenceTypeID, Fields](cmdSetReferenceType, 4)
	cmdReferenceTypeMethods                 = newCommand[ReferenceTypeID, Methods](cmdSetReferenceType, 5)
	cmdReferenceTypeGetValues                = newCommand[referenceTypeGetValuesRequest, []Value](cmdSetReferenceType, 6)
	cmdReferenceTypeSourceFile              = newCommand[ReferenceTypeID, string](cmdSetReferenceType, 7)
	cmdReferenceTypeNestedTypes             = newCommand[ReferenceTypeID, []TaggedReferenceTypeID](cmdSetReferenceType, 8)
	cmdReferenceTypeStatus                  = newCommand[ReferenceTypeID, ClassStatus](cmdSetReferenceType, 9)
	cmdReferenceTypeInterfaces               = newCommand[ReferenceTypeID, []InterfaceID](cmdSetReferenceType, 10)
	cmdReferenceTypeClassObject             = newCommand[ReferenceTypeID, ClassObjectID](cmdSetReferenceType, 11)
	cmdReferenceTypeSourceDebugExtension    = newCommand[ReferenceTypeID, string](cmdSetReferenceType, 12)
	cmdReferenceTypeSignatureWithGeneric    = newCommand[ReferenceTypeID, SignatureWithGeneric](cmdSetReferenceType, 13)
	cmdReferenceTypeFieldsWithGeneric       = newCommand[ReferenceTypeID, []FieldWithGeneric](cmdSetReferenceType, 14)
	cmdReferenceTypeMethodsWithGeneric      = newCommand[ReferenceTypeID, []MethodWithGeneric](cmdSetReferenceType, 15)
	cmdReferenceTypeInstances               = newCommand[referenceTypeInstancesRequest, []TaggedObjectID](cmdSetReferenceType, 16)
	cmdReferenceTypeClassFileVersion        = newCommand[ReferenceTypeID, ClassFileVersion](cmdSetReferenceType, 17)
	cmdReferenceTypeConstantPool            = newCommand[ReferenceTypeID, ConstantPool](cmdSetReferenceType, 18)
)

// Field describes a single field of a class or interface.
type Field struct {
	ID        FieldID
	Name      string
	Signature string
	ModBits   ModBits
}

// Fields is a collection of fields, mirroring Methods.
type Fields []Field

// FindByName returns the field named name in l, or nil if there is none.
func (l Fields) FindByName(name string) *Field {
	for _, f := range l {
		if f.Name == name {
			return &f
		}
	}
	return nil
}

// FindByID returns the field with the matching identifier in l, or nil.
func (l Fields) FindByID(id FieldID) *Field {
	for _, f := range l {
		if f.ID == id {
			return &f
		}
	}
	return nil
}

// FieldWithGeneric is Field plus its generic signature, empty when the
// field's declared type has none.
type FieldWithGeneric struct {
	ID               FieldID
	Name             string
	Signature        string
	GenericSignature string
	ModBits          ModBits
}

// MethodWithGeneric is Method plus its generic signature.
type MethodWithGeneric struct {
	ID               MethodID
	Name             string
	Signature        string
	GenericSignature string
	ModBits          ModBits
}

// SignatureWithGeneric is a type signature plus its generic signature, empty
// when the type is not generic.
type SignatureWithGeneric struct {
	Signature        string
	GenericSignature string
}

// ClassFileVersion is the major/minor version recorded in a class's
// compiled .class file.
type ClassFileVersion struct {
	MajorVersion uint32
	MinorVersion uint32
}

// ConstantPool is the raw constant pool of a class file, encoded per the
// Java class file format.
type ConstantPool struct {
	Count uint32
	Bytes []byte
}

type referenceTypeGetValuesRequest struct {
	Ty     ReferenceTypeID
	Fields []FieldID
}

type referenceTypeInstancesRequest struct {
	Ty           ReferenceTypeID
	MaxInstances int32
}

// GetTypeSignature returns the Java type signature for the specified type.
func (c *Connection) GetTypeSignature(ctx context.Context, ty ReferenceTypeID) (string, error) {
	return Call(ctx, c, cmdReferenceTypeSignature, ty)
}

// GetTypeSignatureWithGeneric is GetTypeSignature plus the generic signature.
func (c *Connection) GetTypeSignatureWithGeneric(ctx context.Context, ty ReferenceTypeID) (SignatureWithGeneric, error) {
	return Call(ctx, c, cmdReferenceTypeSignatureWithGeneric, ty)
}

// GetClassLoader returns the class loader that loaded ty, or the zero
// ClassLoaderID for the bootstrap loader.
func (c *Connection) GetClassLoader(ctx context.Context, ty ReferenceTypeID) (ClassLoaderID, error) {
	return Call(ctx, c, cmdReferenceTypeClassLoader, ty)
}

// GetModifiers returns the modifier bits declared on ty.
func (c *Connection) GetModifiers(ctx context.Context, ty ReferenceTypeID) (ModBits, error) {
	return Call(ctx, c, cmdReferenceTypeModifiers, ty)
}

// GetFields returns all the fields declared on ty.
func (c *Connection) GetFields(ctx context.Context, ty ReferenceTypeID) (Fields, error) {
	return Call(ctx, c, cmdReferenceTypeFields, ty)
}

// GetFieldsWithGeneric is GetFields plus each field's generic signature.
func (c *Connection) GetFieldsWithGeneric(ctx context.Context, ty ReferenceTypeID) ([]FieldWithGeneric, error) {
	return Call(ctx, c, cmdReferenceTypeFieldsWithGeneric, ty)
}

// GetMethods returns all the methods declared on ty.
func (c *Connection) GetMethods(ctx context.Context, ty ReferenceTypeID) (Methods, error) {
	return Call(ctx, c, cmdReferenceTypeMethods, ty)
}

// GetMethodsWithGeneric is GetMethods plus each method's generic signature.
func (c *Connection) GetMethodsWithGeneric(ctx context.Context, ty ReferenceTypeID) ([]MethodWithGeneric, error) {
	return Call(ctx, c, cmdReferenceTypeMethodsWithGeneric, ty)
}

// GetStaticFieldValues returns the values of the requested static fields of ty.
func (c *Connection) GetStaticFieldValues(ctx context.Context, ty ReferenceTypeID, fields ...FieldID) ([]Value, error) {
	return Call(ctx, c, cmdReferenceTypeGetValues, referenceTypeGetValuesRequest{Ty: ty, Fields: fields})
}

// GetSourceFile returns the name of the source file ty was compiled from.
func (c *Connection) GetSourceFile(ctx context.Context, ty ReferenceTypeID) (string, error) {
	return Call(ctx, c, cmdReferenceTypeSourceFile, ty)
}

// GetSourceDebugExtension returns the SourceDebugExtension attribute of ty.
// Requires the CanGetSourceDebugExtension capability.
func (c *Connection) GetSourceDebugExtension(ctx context.Context, ty ReferenceTypeID) (string, error) {
	return Call(ctx, c, cmdReferenceTypeSourceDebugExtension, ty)
}

// GetNestedTypes returns the immediate nested types of ty.
func (c *Connection) GetNestedTypes(ctx context.Context, ty ReferenceTypeID) ([]TaggedReferenceTypeID, error) {
	return Call(ctx, c, cmdReferenceTypeNestedTypes, ty)
}

// GetStatus returns the current class status of ty.
func (c *Connection) GetStatus(ctx context.Context, ty ReferenceTypeID) (ClassStatus, error) {
	return Call(ctx, c, cmdReferenceTypeStatus, ty)
}

// GetImplemented returns all the direct interfaces implemented by ty.
func (c *Connection) GetImplemented(ctx context.Context, ty ReferenceTypeID) ([]InterfaceID, error) {
	return Call(ctx, c, cmdReferenceTypeInterfaces, ty)
}

// GetClassObject returns the java.lang.Class instance mirroring ty.
func (c *Connection) GetClassObject(ctx context.Context, ty ReferenceTypeID) (ClassObjectID, error) {
	return Call(ctx, c, cmdReferenceTypeClassObject, ty)
}

// GetInstances returns up to maxInstances objects of ty currently reachable
// in the target VM; maxInstances <= 0 means no limit. Requires the
// CanGetInstanceInfo capability.
func (c *Connection) GetInstances(ctx context.Context, ty ReferenceTypeID, maxInstances int32) ([]TaggedObjectID, error) {
	return Call(ctx, c, cmdReferenceTypeInstances, referenceTypeInstancesRequest{Ty: ty, MaxInstances: maxInstances})
}

// GetClassFileVersion returns the major/minor version of ty's class file.
func (c *Connection) GetClassFileVersion(ctx context.Context, ty ReferenceTypeID) (ClassFileVersion, error) {
	return Call(ctx, c, cmdReferenceTypeClassFileVersion, ty)
}

// GetConstantPool returns ty's raw constant pool. Requires the
// CanGetConstantPool capability.
func (c *Connection) GetConstantPool(ctx context.Context, ty ReferenceTypeID) (ConstantPool, error) {
	return Call(ctx, c, cmdReferenceTypeConstantPool, ty)
}

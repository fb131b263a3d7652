/*
 * WasmTypes - WebAssembly type section resolution and validation
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sema

import (
	"fmt"
	"strings"

	"github.com/onflow/wasmtypes/ast"
	"github.com/onflow/wasmtypes/common"
	"github.com/onflow/wasmtypes/errors"
)

// StorageType is the semantic representation of a type that can be stored
// in a struct field or an array element: a value type, or one of the
// packed types, which only exist in storage positions
type StorageType interface {
	fmt.Stringer
	isStorageType()
}

// ValueType is the semantic representation of a type a value can have:
// a number type, the vector type, or a reference type
type ValueType interface {
	StorageType
	isValueType()
}

// HeapType is the semantic representation of the target of a reference type:
// either one of the abstract heap types, or a declared type
type HeapType interface {
	fmt.Stringer
	isHeapType()
}

// NumberType

type NumberType struct {
	Kind ast.NumberTypeKind
}

var I32Type = &NumberType{Kind: ast.NumberTypeKindI32}
var I64Type = &NumberType{Kind: ast.NumberTypeKindI64}
var F32Type = &NumberType{Kind: ast.NumberTypeKindF32}
var F64Type = &NumberType{Kind: ast.NumberTypeKindF64}

var _ ValueType = &NumberType{}

func (*NumberType) isStorageType() {}

func (*NumberType) isValueType() {}

func (t *NumberType) String() string {
	return t.Kind.Keyword()
}

// NumberTypeForKind returns the singleton number type for the given kind
func NumberTypeForKind(kind ast.NumberTypeKind) *NumberType {
	switch kind {
	case ast.NumberTypeKindI32:
		return I32Type
	case ast.NumberTypeKindI64:
		return I64Type
	case ast.NumberTypeKindF32:
		return F32Type
	case ast.NumberTypeKindF64:
		return F64Type
	}

	panic(errors.NewUnreachableError())
}

// VectorType

type VectorType struct{}

var V128Type = &VectorType{}

var _ ValueType = &VectorType{}

func (*VectorType) isStorageType() {}

func (*VectorType) isValueType() {}

func (t *VectorType) String() string {
	return "v128"
}

// PackedType

type PackedType struct {
	Kind ast.PackedTypeKind
}

var I8Type = &PackedType{Kind: ast.PackedTypeKindI8}
var I16Type = &PackedType{Kind: ast.PackedTypeKindI16}

var _ StorageType = &PackedType{}

func (*PackedType) isStorageType() {}

func (t *PackedType) String() string {
	return t.Kind.Keyword()
}

// PackedTypeForKind returns the singleton packed type for the given kind
func PackedTypeForKind(kind ast.PackedTypeKind) *PackedType {
	switch kind {
	case ast.PackedTypeKindI8:
		return I8Type
	case ast.PackedTypeKindI16:
		return I16Type
	}

	panic(errors.NewUnreachableError())
}

// AbstractHeapType

type AbstractHeapType struct {
	Kind ast.AbstractHeapTypeKind
}

var AnyHeapType = &AbstractHeapType{Kind: ast.AbstractHeapTypeKindAny}
var EqHeapType = &AbstractHeapType{Kind: ast.AbstractHeapTypeKindEq}
var I31HeapType = &AbstractHeapType{Kind: ast.AbstractHeapTypeKindI31}
var StructHeapType = &AbstractHeapType{Kind: ast.AbstractHeapTypeKindStruct}
var ArrayHeapType = &AbstractHeapType{Kind: ast.AbstractHeapTypeKindArray}
var NoneHeapType = &AbstractHeapType{Kind: ast.AbstractHeapTypeKindNone}
var FuncHeapType = &AbstractHeapType{Kind: ast.AbstractHeapTypeKindFunc}
var NoFuncHeapType = &AbstractHeapType{Kind: ast.AbstractHeapTypeKindNoFunc}
var ExternHeapType = &AbstractHeapType{Kind: ast.AbstractHeapTypeKindExtern}
var NoExternHeapType = &AbstractHeapType{Kind: ast.AbstractHeapTypeKindNoExtern}

var _ HeapType = &AbstractHeapType{}

func (*AbstractHeapType) isHeapType() {}

func (t *AbstractHeapType) String() string {
	return t.Kind.Keyword()
}

// AbstractHeapTypeForKind returns the singleton heap type for the given kind
func AbstractHeapTypeForKind(kind ast.AbstractHeapTypeKind) *AbstractHeapType {
	switch kind {
	case ast.AbstractHeapTypeKindAny:
		return AnyHeapType
	case ast.AbstractHeapTypeKindEq:
		return EqHeapType
	case ast.AbstractHeapTypeKindI31:
		return I31HeapType
	case ast.AbstractHeapTypeKindStruct:
		return StructHeapType
	case ast.AbstractHeapTypeKindArray:
		return ArrayHeapType
	case ast.AbstractHeapTypeKindNone:
		return NoneHeapType
	case ast.AbstractHeapTypeKindFunc:
		return FuncHeapType
	case ast.AbstractHeapTypeKindNoFunc:
		return NoFuncHeapType
	case ast.AbstractHeapTypeKindExtern:
		return ExternHeapType
	case ast.AbstractHeapTypeKindNoExtern:
		return NoExternHeapType
	}

	panic(errors.NewUnreachableError())
}

// ConcreteHeapType is a reference to a declared type, by its resolved index
// in the type section. References that were written with a symbolic name
// are resolved to their index during checking.
type ConcreteHeapType struct {
	Index ast.TypeIndex
}

var _ HeapType = &ConcreteHeapType{}

func (*ConcreteHeapType) isHeapType() {}

func (t *ConcreteHeapType) String() string {
	return fmt.Sprint(t.Index)
}

// InvalidType represents a type reference that failed to resolve.
// It is the result of checking failing and
// can't be expressed in modules.
type InvalidType struct{}

var _ HeapType = &InvalidType{}

func (*InvalidType) isHeapType() {}

func (*InvalidType) String() string {
	return "<<invalid>>"
}

// ReferenceType

type ReferenceType struct {
	Nullable bool
	Heap     HeapType
}

var _ ValueType = &ReferenceType{}

func (*ReferenceType) isStorageType() {}

func (*ReferenceType) isValueType() {}

func (t *ReferenceType) String() string {
	var sb strings.Builder
	sb.WriteString("(ref ")
	if t.Nullable {
		sb.WriteString("null ")
	}
	sb.WriteString(t.Heap.String())
	sb.WriteByte(')')
	return sb.String()
}

// FieldType is the type of a struct field or an array element:
// a storage type, plus a mutability flag
type FieldType struct {
	Mutable bool
	Type    StorageType
}

func (t FieldType) String() string {
	if t.Mutable {
		return fmt.Sprintf("(mut %s)", t.Type)
	}
	return t.Type.String()
}

// CompositeType is the semantic representation of the structure
// of a declared type
type CompositeType interface {
	fmt.Stringer
	isCompositeType()
	CompositeKind() common.CompositeKind
}

// FunctionType

type FunctionType struct {
	Parameters []ValueType
	Results    []ValueType
}

var _ CompositeType = &FunctionType{}

func (*FunctionType) isCompositeType() {}

func (*FunctionType) CompositeKind() common.CompositeKind {
	return common.CompositeKindFunction
}

func (t *FunctionType) String() string {
	var sb strings.Builder
	sb.WriteString("(func")
	for _, parameter := range t.Parameters {
		sb.WriteString(" (param ")
		sb.WriteString(parameter.String())
		sb.WriteByte(')')
	}
	for _, result := range t.Results {
		sb.WriteString(" (result ")
		sb.WriteString(result.String())
		sb.WriteByte(')')
	}
	sb.WriteByte(')')
	return sb.String()
}

// StructType

type StructType struct {
	Fields []FieldType
}

var _ CompositeType = &StructType{}

func (*StructType) isCompositeType() {}

func (*StructType) CompositeKind() common.CompositeKind {
	return common.CompositeKindStruct
}

func (t *StructType) String() string {
	var sb strings.Builder
	sb.WriteString("(struct")
	for _, field := range t.Fields {
		sb.WriteString(" (field ")
		sb.WriteString(field.String())
		sb.WriteByte(')')
	}
	sb.WriteByte(')')
	return sb.String()
}

// ArrayType

type ArrayType struct {
	Element FieldType
}

var _ CompositeType = &ArrayType{}

func (*ArrayType) isCompositeType() {}

func (*ArrayType) CompositeKind() common.CompositeKind {
	return common.CompositeKindArray
}

func (t *ArrayType) String() string {
	return fmt.Sprintf("(array %s)", t.Element)
}

// SupertypeEdge records the declared supertype of a type:
// the resolved index of the supertype, and the reference
// as it was written in the declaration
type SupertypeEdge struct {
	Index     ast.TypeIndex
	Reference ast.TypeReference
}

// DefType is a fully resolved type declaration.
//
// The composite structure has all symbolic references replaced
// by resolved type indices. The canonical ID is assigned once the
// declaration's recursion group has been canonicalized, and is only
// meaningful for declarations that checked successfully.
type DefType struct {
	Declaration   *ast.TypeDeclaration
	Composite     CompositeType
	Supertype     *SupertypeEdge
	Identifier    string
	Index         ast.TypeIndex
	GroupIndex    int
	RelativeIndex uint32
	IsFinal       bool
	CanonicalID   CanonicalTypeID
}

func NewDefType(
	memoryGauge common.MemoryGauge,
	declaration *ast.TypeDeclaration,
	index ast.TypeIndex,
	groupIndex int,
	relativeIndex uint32,
) *DefType {
	common.UseMemory(memoryGauge, common.DefTypeMemoryUsage)

	var identifier string
	if declaration.Identifier != nil {
		identifier = declaration.Identifier.Identifier
	}

	return &DefType{
		Declaration:   declaration,
		Identifier:    identifier,
		Index:         index,
		GroupIndex:    groupIndex,
		RelativeIndex: relativeIndex,
		IsFinal:       declaration.IsFinal(),
	}
}

// Description returns the name of the type if it has one, e.g. `$pair`,
// or its numeric index otherwise
func (t *DefType) Description() string {
	return typeDescription(t.Identifier, t.Index)
}

func (t *DefType) String() string {
	if t.Composite == nil {
		return t.Description()
	}
	return fmt.Sprintf("%s = %s", t.Description(), t.Composite)
}

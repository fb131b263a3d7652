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

package ast

import (
	"encoding/json"

	"github.com/turbolent/prettier"

	"github.com/onflow/wasmtypes/common"
	"github.com/onflow/wasmtypes/errors"
)

// StorageType is a type which may occur in a struct field or array element:
// either a ValueType, or one of the packed types i8 and i16
type StorageType interface {
	HasPosition
	json.Marshaler
	Doc() prettier.Doc
	String() string
	isStorageType()
}

// ValueType is a type which a value may have:
// a number type, the vector type, or a reference type
type ValueType interface {
	StorageType
	isValueType()
}

// HeapType is the target of a reference type:
// either one of the abstract heap types, e.g. `any` or `eq`,
// or a reference to a type declaration
type HeapType interface {
	HasPosition
	json.Marshaler
	Doc() prettier.Doc
	String() string
	isHeapType()
}

// NumberTypeKind

type NumberTypeKind uint

const (
	NumberTypeKindUnknown NumberTypeKind = iota
	NumberTypeKindI32
	NumberTypeKindI64
	NumberTypeKindF32
	NumberTypeKindF64
)

func (k NumberTypeKind) Keyword() string {
	switch k {
	case NumberTypeKindI32:
		return "i32"
	case NumberTypeKindI64:
		return "i64"
	case NumberTypeKindF32:
		return "f32"
	case NumberTypeKindF64:
		return "f64"
	}

	panic(errors.NewUnreachableError())
}

func (k NumberTypeKind) String() string {
	switch k {
	case NumberTypeKindUnknown:
		return "NumberTypeKindUnknown"
	case NumberTypeKindI32:
		return "NumberTypeKindI32"
	case NumberTypeKindI64:
		return "NumberTypeKindI64"
	case NumberTypeKindF32:
		return "NumberTypeKindF32"
	case NumberTypeKindF64:
		return "NumberTypeKindF64"
	}

	panic(errors.NewUnreachableError())
}

func (k NumberTypeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// NumberType is one of the numeric types i32, i64, f32, and f64

type NumberType struct {
	Kind NumberTypeKind
	Range
}

var _ ValueType = &NumberType{}

func NewNumberType(
	memoryGauge common.MemoryGauge,
	kind NumberTypeKind,
	typeRange Range,
) *NumberType {
	common.UseMemory(memoryGauge, common.ValueTypeMemoryUsage)
	return &NumberType{
		Kind:  kind,
		Range: typeRange,
	}
}

func (*NumberType) isStorageType() {}

func (*NumberType) isValueType() {}

func (t *NumberType) Doc() prettier.Doc {
	return prettier.Text(t.Kind.Keyword())
}

func (t *NumberType) String() string {
	return Prettier(t)
}

func (t *NumberType) MarshalJSON() ([]byte, error) {
	type Alias NumberType
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "NumberType",
		Alias: (*Alias)(t),
	})
}

// VectorType is the 128-bit vector type v128

type VectorType struct {
	Range
}

var _ ValueType = &VectorType{}

func NewVectorType(
	memoryGauge common.MemoryGauge,
	typeRange Range,
) *VectorType {
	common.UseMemory(memoryGauge, common.ValueTypeMemoryUsage)
	return &VectorType{
		Range: typeRange,
	}
}

func (*VectorType) isStorageType() {}

func (*VectorType) isValueType() {}

const vectorTypeKeywordDoc = prettier.Text("v128")

func (t *VectorType) Doc() prettier.Doc {
	return vectorTypeKeywordDoc
}

func (t *VectorType) String() string {
	return Prettier(t)
}

func (t *VectorType) MarshalJSON() ([]byte, error) {
	type Alias VectorType
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "VectorType",
		Alias: (*Alias)(t),
	})
}

// PackedTypeKind

type PackedTypeKind uint

const (
	PackedTypeKindUnknown PackedTypeKind = iota
	PackedTypeKindI8
	PackedTypeKindI16
)

func (k PackedTypeKind) Keyword() string {
	switch k {
	case PackedTypeKindI8:
		return "i8"
	case PackedTypeKindI16:
		return "i16"
	}

	panic(errors.NewUnreachableError())
}

func (k PackedTypeKind) String() string {
	switch k {
	case PackedTypeKindUnknown:
		return "PackedTypeKindUnknown"
	case PackedTypeKindI8:
		return "PackedTypeKindI8"
	case PackedTypeKindI16:
		return "PackedTypeKindI16"
	}

	panic(errors.NewUnreachableError())
}

func (k PackedTypeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// PackedType is one of the packed storage types i8 and i16.
// Packed types may only occur in struct fields and array elements,
// not as value types

type PackedType struct {
	Kind PackedTypeKind
	Range
}

var _ StorageType = &PackedType{}

func NewPackedType(
	memoryGauge common.MemoryGauge,
	kind PackedTypeKind,
	typeRange Range,
) *PackedType {
	common.UseMemory(memoryGauge, common.ValueTypeMemoryUsage)
	return &PackedType{
		Kind:  kind,
		Range: typeRange,
	}
}

func (*PackedType) isStorageType() {}

func (t *PackedType) Doc() prettier.Doc {
	return prettier.Text(t.Kind.Keyword())
}

func (t *PackedType) String() string {
	return Prettier(t)
}

func (t *PackedType) MarshalJSON() ([]byte, error) {
	type Alias PackedType
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "PackedType",
		Alias: (*Alias)(t),
	})
}

// AbstractHeapTypeKind

type AbstractHeapTypeKind uint

const (
	AbstractHeapTypeKindUnknown AbstractHeapTypeKind = iota
	AbstractHeapTypeKindAny
	AbstractHeapTypeKindEq
	AbstractHeapTypeKindI31
	AbstractHeapTypeKindStruct
	AbstractHeapTypeKindArray
	AbstractHeapTypeKindNone
	AbstractHeapTypeKindFunc
	AbstractHeapTypeKindNoFunc
	AbstractHeapTypeKindExtern
	AbstractHeapTypeKindNoExtern
)

func (k AbstractHeapTypeKind) Keyword() string {
	switch k {
	case AbstractHeapTypeKindAny:
		return "any"
	case AbstractHeapTypeKindEq:
		return "eq"
	case AbstractHeapTypeKindI31:
		return "i31"
	case AbstractHeapTypeKindStruct:
		return "struct"
	case AbstractHeapTypeKindArray:
		return "array"
	case AbstractHeapTypeKindNone:
		return "none"
	case AbstractHeapTypeKindFunc:
		return "func"
	case AbstractHeapTypeKindNoFunc:
		return "nofunc"
	case AbstractHeapTypeKindExtern:
		return "extern"
	case AbstractHeapTypeKindNoExtern:
		return "noextern"
	}

	panic(errors.NewUnreachableError())
}

func (k AbstractHeapTypeKind) String() string {
	switch k {
	case AbstractHeapTypeKindUnknown:
		return "AbstractHeapTypeKindUnknown"
	case AbstractHeapTypeKindAny:
		return "AbstractHeapTypeKindAny"
	case AbstractHeapTypeKindEq:
		return "AbstractHeapTypeKindEq"
	case AbstractHeapTypeKindI31:
		return "AbstractHeapTypeKindI31"
	case AbstractHeapTypeKindStruct:
		return "AbstractHeapTypeKindStruct"
	case AbstractHeapTypeKindArray:
		return "AbstractHeapTypeKindArray"
	case AbstractHeapTypeKindNone:
		return "AbstractHeapTypeKindNone"
	case AbstractHeapTypeKindFunc:
		return "AbstractHeapTypeKindFunc"
	case AbstractHeapTypeKindNoFunc:
		return "AbstractHeapTypeKindNoFunc"
	case AbstractHeapTypeKindExtern:
		return "AbstractHeapTypeKindExtern"
	case AbstractHeapTypeKindNoExtern:
		return "AbstractHeapTypeKindNoExtern"
	}

	panic(errors.NewUnreachableError())
}

func (k AbstractHeapTypeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// AbstractHeapType is one of the pre-declared heap types,
// e.g. `any`, `eq`, or `none`

type AbstractHeapType struct {
	Kind AbstractHeapTypeKind
	Range
}

var _ HeapType = &AbstractHeapType{}

func NewAbstractHeapType(
	memoryGauge common.MemoryGauge,
	kind AbstractHeapTypeKind,
	typeRange Range,
) *AbstractHeapType {
	common.UseMemory(memoryGauge, common.ValueTypeMemoryUsage)
	return &AbstractHeapType{
		Kind:  kind,
		Range: typeRange,
	}
}

func (*AbstractHeapType) isHeapType() {}

func (t *AbstractHeapType) Doc() prettier.Doc {
	return prettier.Text(t.Kind.Keyword())
}

func (t *AbstractHeapType) String() string {
	return Prettier(t)
}

func (t *AbstractHeapType) MarshalJSON() ([]byte, error) {
	type Alias AbstractHeapType
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "AbstractHeapType",
		Alias: (*Alias)(t),
	})
}

// ConcreteHeapType refers to a type declaration of the type section,
// by symbolic name or by index

type ConcreteHeapType struct {
	Reference TypeReference
}

var _ HeapType = &ConcreteHeapType{}

func NewConcreteHeapType(
	memoryGauge common.MemoryGauge,
	reference TypeReference,
) *ConcreteHeapType {
	common.UseMemory(memoryGauge, common.ValueTypeMemoryUsage)
	return &ConcreteHeapType{
		Reference: reference,
	}
}

func (*ConcreteHeapType) isHeapType() {}

func (t *ConcreteHeapType) StartPosition() Position {
	return t.Reference.StartPosition()
}

func (t *ConcreteHeapType) EndPosition(memoryGauge common.MemoryGauge) Position {
	return t.Reference.EndPosition(memoryGauge)
}

func (t *ConcreteHeapType) Doc() prettier.Doc {
	return t.Reference.Doc()
}

func (t *ConcreteHeapType) String() string {
	return Prettier(t)
}

func (t *ConcreteHeapType) MarshalJSON() ([]byte, error) {
	type Alias ConcreteHeapType
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "ConcreteHeapType",
		Range: NewUnmeteredRangeFromPositioned(t),
		Alias: (*Alias)(t),
	})
}

// ReferenceType is a reference to a heap type,
// either nullable, e.g. `(ref null $t)`, or non-null, e.g. `(ref $t)`

type ReferenceType struct {
	Nullable bool
	Type     HeapType `json:"ReferencedType"`
	Range
}

var _ ValueType = &ReferenceType{}

func NewReferenceType(
	memoryGauge common.MemoryGauge,
	nullable bool,
	heapType HeapType,
	typeRange Range,
) *ReferenceType {
	common.UseMemory(memoryGauge, common.ValueTypeMemoryUsage)
	return &ReferenceType{
		Nullable: nullable,
		Type:     heapType,
		Range:    typeRange,
	}
}

func (*ReferenceType) isStorageType() {}

func (*ReferenceType) isValueType() {}

const referenceTypeKeywordDoc = prettier.Text("(ref")

const referenceTypeNullKeywordDoc = prettier.Text("null")

func (t *ReferenceType) Doc() prettier.Doc {
	doc := prettier.Concat{
		referenceTypeKeywordDoc,
	}
	if t.Nullable {
		doc = append(
			doc,
			prettier.Space,
			referenceTypeNullKeywordDoc,
		)
	}
	return append(
		doc,
		prettier.Space,
		t.Type.Doc(),
		prettier.Text(")"),
	)
}

func (t *ReferenceType) String() string {
	return Prettier(t)
}

func (t *ReferenceType) MarshalJSON() ([]byte, error) {
	type Alias ReferenceType
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "ReferenceType",
		Alias: (*Alias)(t),
	})
}

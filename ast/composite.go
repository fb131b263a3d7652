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
)

// CompositeType is the structure of a type declaration:
// a function, struct, or array type
type CompositeType interface {
	HasPosition
	json.Marshaler
	Doc() prettier.Doc
	String() string
	CompositeKind() common.CompositeKind
	isCompositeType()
}

// FieldType

// FieldType is the type of a struct field or array element:
// a storage type, optionally mutable
type FieldType struct {
	Mutable bool
	Type    StorageType `json:"StorageType"`
	Range
}

func NewFieldType(
	memoryGauge common.MemoryGauge,
	mutable bool,
	storageType StorageType,
	typeRange Range,
) *FieldType {
	common.UseMemory(memoryGauge, common.FieldTypeMemoryUsage)
	return &FieldType{
		Mutable: mutable,
		Type:    storageType,
		Range:   typeRange,
	}
}

const fieldTypeMutKeywordDoc = prettier.Text("(mut")

func (t *FieldType) Doc() prettier.Doc {
	if !t.Mutable {
		return t.Type.Doc()
	}
	return prettier.Concat{
		fieldTypeMutKeywordDoc,
		prettier.Space,
		t.Type.Doc(),
		prettier.Text(")"),
	}
}

func (t *FieldType) String() string {
	return Prettier(t)
}

func (t *FieldType) MarshalJSON() ([]byte, error) {
	type Alias FieldType
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "FieldType",
		Alias: (*Alias)(t),
	})
}

// FunctionType

// FunctionType declares the parameter and result types of a function

type FunctionType struct {
	Parameters []ValueType `json:",omitempty"`
	Results    []ValueType `json:",omitempty"`
	Range
}

var _ CompositeType = &FunctionType{}

func NewFunctionType(
	memoryGauge common.MemoryGauge,
	parameters []ValueType,
	results []ValueType,
	typeRange Range,
) *FunctionType {
	common.UseMemory(memoryGauge, common.FunctionTypeMemoryUsage)
	return &FunctionType{
		Parameters: parameters,
		Results:    results,
		Range:      typeRange,
	}
}

func (*FunctionType) isCompositeType() {}

func (*FunctionType) CompositeKind() common.CompositeKind {
	return common.CompositeKindFunction
}

const functionTypeKeywordDoc = prettier.Text("(func")

const functionTypeParamKeywordDoc = prettier.Text("(param")

const functionTypeResultKeywordDoc = prettier.Text("(result")

func (t *FunctionType) Doc() prettier.Doc {
	var inner prettier.Concat
	for _, parameter := range t.Parameters {
		inner = append(
			inner,
			prettier.Line{},
			prettier.Concat{
				functionTypeParamKeywordDoc,
				prettier.Space,
				parameter.Doc(),
				prettier.Text(")"),
			},
		)
	}
	for _, result := range t.Results {
		inner = append(
			inner,
			prettier.Line{},
			prettier.Concat{
				functionTypeResultKeywordDoc,
				prettier.Space,
				result.Doc(),
				prettier.Text(")"),
			},
		)
	}

	if len(inner) == 0 {
		return prettier.Text("(func)")
	}

	return prettier.Group{
		Doc: prettier.Concat{
			functionTypeKeywordDoc,
			prettier.Indent{
				Doc: inner,
			},
			prettier.Text(")"),
		},
	}
}

func (t *FunctionType) String() string {
	return Prettier(t)
}

func (t *FunctionType) MarshalJSON() ([]byte, error) {
	type Alias FunctionType
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "FunctionType",
		Alias: (*Alias)(t),
	})
}

// StructType

// StructType declares the fields of a struct

type StructType struct {
	Fields []*FieldType `json:",omitempty"`
	Range
}

var _ CompositeType = &StructType{}

func NewStructType(
	memoryGauge common.MemoryGauge,
	fields []*FieldType,
	typeRange Range,
) *StructType {
	common.UseMemory(memoryGauge, common.StructTypeMemoryUsage)
	return &StructType{
		Fields: fields,
		Range:  typeRange,
	}
}

func (*StructType) isCompositeType() {}

func (*StructType) CompositeKind() common.CompositeKind {
	return common.CompositeKindStruct
}

const structTypeKeywordDoc = prettier.Text("(struct")

const structTypeFieldKeywordDoc = prettier.Text("(field")

func (t *StructType) Doc() prettier.Doc {
	if len(t.Fields) == 0 {
		return prettier.Text("(struct)")
	}

	var inner prettier.Concat
	for _, field := range t.Fields {
		inner = append(
			inner,
			prettier.Line{},
			prettier.Concat{
				structTypeFieldKeywordDoc,
				prettier.Space,
				field.Doc(),
				prettier.Text(")"),
			},
		)
	}

	return prettier.Group{
		Doc: prettier.Concat{
			structTypeKeywordDoc,
			prettier.Indent{
				Doc: inner,
			},
			prettier.Text(")"),
		},
	}
}

func (t *StructType) String() string {
	return Prettier(t)
}

func (t *StructType) MarshalJSON() ([]byte, error) {
	type Alias StructType
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "StructType",
		Alias: (*Alias)(t),
	})
}

// ArrayType

// ArrayType declares the element type of an array

type ArrayType struct {
	Element *FieldType
	Range
}

var _ CompositeType = &ArrayType{}

func NewArrayType(
	memoryGauge common.MemoryGauge,
	element *FieldType,
	typeRange Range,
) *ArrayType {
	common.UseMemory(memoryGauge, common.ArrayTypeMemoryUsage)
	return &ArrayType{
		Element: element,
		Range:   typeRange,
	}
}

func (*ArrayType) isCompositeType() {}

func (*ArrayType) CompositeKind() common.CompositeKind {
	return common.CompositeKindArray
}

const arrayTypeKeywordDoc = prettier.Text("(array")

func (t *ArrayType) Doc() prettier.Doc {
	return prettier.Concat{
		arrayTypeKeywordDoc,
		prettier.Space,
		t.Element.Doc(),
		prettier.Text(")"),
	}
}

func (t *ArrayType) String() string {
	return Prettier(t)
}

func (t *ArrayType) MarshalJSON() ([]byte, error) {
	type Alias ArrayType
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "ArrayType",
		Alias: (*Alias)(t),
	})
}

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
	"strconv"

	"github.com/turbolent/prettier"

	"github.com/onflow/wasmtypes/common"
)

// TypeIndex is the index of a type declaration in a type section,
// counting all declarations of all groups, in order of declaration
type TypeIndex uint32

// TypeReference refers to another type declaration,
// either by symbolic name or by numeric index
type TypeReference interface {
	HasPosition
	json.Marshaler
	Doc() prettier.Doc
	String() string
	isTypeReference()
}

// NamedTypeReference

// NamedTypeReference refers to a type declaration by its symbolic name,
// e.g. `$pair`
type NamedTypeReference struct {
	Identifier Identifier
}

var _ TypeReference = &NamedTypeReference{}

func NewNamedTypeReference(
	memoryGauge common.MemoryGauge,
	identifier Identifier,
) *NamedTypeReference {
	common.UseMemory(memoryGauge, common.TypeReferenceMemoryUsage)
	return &NamedTypeReference{
		Identifier: identifier,
	}
}

func (*NamedTypeReference) isTypeReference() {}

func (r *NamedTypeReference) StartPosition() Position {
	return r.Identifier.StartPosition()
}

func (r *NamedTypeReference) EndPosition(memoryGauge common.MemoryGauge) Position {
	return r.Identifier.EndPosition(memoryGauge)
}

func (r *NamedTypeReference) Doc() prettier.Doc {
	return prettier.Text("$" + r.Identifier.Identifier)
}

func (r *NamedTypeReference) String() string {
	return Prettier(r)
}

func (r *NamedTypeReference) MarshalJSON() ([]byte, error) {
	type Alias NamedTypeReference
	return json.Marshal(&struct {
		*Alias
		Type string
		Range
	}{
		Type:  "NamedTypeReference",
		Range: NewUnmeteredRangeFromPositioned(r),
		Alias: (*Alias)(r),
	})
}

// IndexedTypeReference

// IndexedTypeReference refers to a type declaration by its position
// in the type section, e.g. `2`
type IndexedTypeReference struct {
	Index TypeIndex
	Range
}

var _ TypeReference = &IndexedTypeReference{}

func NewIndexedTypeReference(
	memoryGauge common.MemoryGauge,
	index TypeIndex,
	astRange Range,
) *IndexedTypeReference {
	common.UseMemory(memoryGauge, common.TypeReferenceMemoryUsage)
	return &IndexedTypeReference{
		Index: index,
		Range: astRange,
	}
}

func (*IndexedTypeReference) isTypeReference() {}

func (r *IndexedTypeReference) Doc() prettier.Doc {
	return prettier.Text(strconv.FormatUint(uint64(r.Index), 10))
}

func (r *IndexedTypeReference) String() string {
	return Prettier(r)
}

func (r *IndexedTypeReference) MarshalJSON() ([]byte, error) {
	type Alias IndexedTypeReference
	return json.Marshal(&struct {
		*Alias
		Type string
	}{
		Type:  "IndexedTypeReference",
		Alias: (*Alias)(r),
	})
}

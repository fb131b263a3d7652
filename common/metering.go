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

package common

import (
	"github.com/onflow/wasmtypes/errors"
)

type MemoryUsage struct {
	Kind   MemoryKind
	Amount uint64
}

type MemoryGauge interface {
	MeterMemory(usage MemoryUsage) error
}

func UseMemory(gauge MemoryGauge, usage MemoryUsage) {
	if gauge == nil {
		return
	}

	err := gauge.MeterMemory(usage)
	if err != nil {
		panic(errors.MemoryError{Err: err})
	}
}

func NewConstantMemoryUsage(kind MemoryKind) MemoryUsage {
	return MemoryUsage{
		Kind:   kind,
		Amount: 1,
	}
}

var (
	IdentifierMemoryUsage      = NewConstantMemoryUsage(MemoryKindIdentifier)
	TypeReferenceMemoryUsage   = NewConstantMemoryUsage(MemoryKindTypeReference)
	ValueTypeMemoryUsage       = NewConstantMemoryUsage(MemoryKindValueType)
	FieldTypeMemoryUsage       = NewConstantMemoryUsage(MemoryKindFieldType)
	FunctionTypeMemoryUsage    = NewConstantMemoryUsage(MemoryKindFunctionType)
	StructTypeMemoryUsage      = NewConstantMemoryUsage(MemoryKindStructType)
	ArrayTypeMemoryUsage       = NewConstantMemoryUsage(MemoryKindArrayType)
	SubtypeClauseMemoryUsage   = NewConstantMemoryUsage(MemoryKindSubtypeClause)
	TypeDeclarationMemoryUsage = NewConstantMemoryUsage(MemoryKindTypeDeclaration)
	RecGroupMemoryUsage        = NewConstantMemoryUsage(MemoryKindRecGroup)
	TypeSectionMemoryUsage     = NewConstantMemoryUsage(MemoryKindTypeSection)

	DefTypeMemoryUsage        = NewConstantMemoryUsage(MemoryKindDefType)
	CanonicalGroupMemoryUsage = NewConstantMemoryUsage(MemoryKindCanonicalGroup)
	TypeTableMemoryUsage      = NewConstantMemoryUsage(MemoryKindTypeTable)

	PositionMemoryUsage = NewConstantMemoryUsage(MemoryKindPosition)
	RangeMemoryUsage    = NewConstantMemoryUsage(MemoryKindRange)
)

func NewRawStringMemoryUsage(length int) MemoryUsage {
	return MemoryUsage{
		Kind:   MemoryKindRawString,
		Amount: uint64(length) + 1,
	}
}

// NewShapeMemoryUsage returns the memory usage
// for encoding a canonical shape of the given byte length
func NewShapeMemoryUsage(length int) MemoryUsage {
	return MemoryUsage{
		Kind:   MemoryKindCanonicalShape,
		Amount: uint64(length) + 1,
	}
}

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

// MemoryKind is a type of memory that is tracked by the memory gauge
type MemoryKind uint

const (
	MemoryKindUnknown MemoryKind = iota

	// AST nodes

	MemoryKindIdentifier
	MemoryKindTypeReference
	MemoryKindValueType
	MemoryKindFieldType
	MemoryKindFunctionType
	MemoryKindStructType
	MemoryKindArrayType
	MemoryKindSubtypeClause
	MemoryKindTypeDeclaration
	MemoryKindRecGroup
	MemoryKindTypeSection
	MemoryKindPosition
	MemoryKindRange

	// Semantic values

	MemoryKindDefType
	MemoryKindCanonicalGroup
	MemoryKindCanonicalShape
	MemoryKindTypeTable

	MemoryKindRawString

	MemoryKindLast
)

func (k MemoryKind) String() string {
	switch k {
	case MemoryKindUnknown:
		return "Unknown"
	case MemoryKindIdentifier:
		return "Identifier"
	case MemoryKindTypeReference:
		return "TypeReference"
	case MemoryKindValueType:
		return "ValueType"
	case MemoryKindFieldType:
		return "FieldType"
	case MemoryKindFunctionType:
		return "FunctionType"
	case MemoryKindStructType:
		return "StructType"
	case MemoryKindArrayType:
		return "ArrayType"
	case MemoryKindSubtypeClause:
		return "SubtypeClause"
	case MemoryKindTypeDeclaration:
		return "TypeDeclaration"
	case MemoryKindRecGroup:
		return "RecGroup"
	case MemoryKindTypeSection:
		return "TypeSection"
	case MemoryKindPosition:
		return "Position"
	case MemoryKindRange:
		return "Range"
	case MemoryKindDefType:
		return "DefType"
	case MemoryKindCanonicalGroup:
		return "CanonicalGroup"
	case MemoryKindCanonicalShape:
		return "CanonicalShape"
	case MemoryKindTypeTable:
		return "TypeTable"
	case MemoryKindRawString:
		return "RawString"
	}

	return "?"
}

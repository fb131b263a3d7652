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

// IdenticalStorageTypes returns true when the two storage types are the
// same type. References to declared types are compared by canonical
// identity, so references to iso-recursively equivalent declarations
// are identical.
func (t *TypeTable) IdenticalStorageTypes(source, target StorageType) bool {
	switch source := source.(type) {
	case *NumberType:
		target, ok := target.(*NumberType)
		return ok && source.Kind == target.Kind

	case *VectorType:
		_, ok := target.(*VectorType)
		return ok

	case *PackedType:
		target, ok := target.(*PackedType)
		return ok && source.Kind == target.Kind

	case *ReferenceType:
		target, ok := target.(*ReferenceType)
		return ok &&
			source.Nullable == target.Nullable &&
			t.IdenticalHeapTypes(source.Heap, target.Heap)
	}

	return false
}

// IdenticalValueTypes returns true when the two value types are the same type
func (t *TypeTable) IdenticalValueTypes(source, target ValueType) bool {
	return t.IdenticalStorageTypes(source, target)
}

func (t *TypeTable) IdenticalHeapTypes(source, target HeapType) bool {
	switch source := source.(type) {
	case *AbstractHeapType:
		target, ok := target.(*AbstractHeapType)
		return ok && source.Kind == target.Kind

	case *ConcreteHeapType:
		target, ok := target.(*ConcreteHeapType)
		return ok && t.TypesIdentical(source.Index, target.Index)
	}

	return false
}

// IdenticalFieldTypes returns true when the two field types are the same
// type with the same mutability
func (t *TypeTable) IdenticalFieldTypes(source, target FieldType) bool {
	return source.Mutable == target.Mutable &&
		t.IdenticalStorageTypes(source.Type, target.Type)
}

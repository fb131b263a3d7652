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
	"github.com/fxamacker/cbor/v2"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/sha3"

	"github.com/onflow/wasmtypes/ast"
	"github.com/onflow/wasmtypes/common"
	"github.com/onflow/wasmtypes/errors"
)

// canonicalEncMode
//
// See https://github.com/fxamacker/cbor:
// "For best performance, reuse EncMode and DecMode after creating them."
var canonicalEncMode = func() cbor.EncMode {
	options := cbor.CanonicalEncOptions()
	encMode, err := options.EncMode()
	if err != nil {
		panic(err)
	}
	return encMode
}()

// The storage type codes used in canonical shapes.
// The codes are part of the fingerprint input, never reorder them.
const (
	shapeCodeI32 uint8 = iota
	shapeCodeI64
	shapeCodeF32
	shapeCodeF64
	shapeCodeV128
	shapeCodeI8
	shapeCodeI16
	shapeCodeRefAny
	shapeCodeRefEq
	shapeCodeRefI31
	shapeCodeRefStruct
	shapeCodeRefArray
	shapeCodeRefNone
	shapeCodeRefFunc
	shapeCodeRefNoFunc
	shapeCodeRefExtern
	shapeCodeRefNoExtern
	shapeCodeRefConcrete
)

func shapeCodeForAbstractHeapTypeKind(kind ast.AbstractHeapTypeKind) uint8 {
	switch kind {
	case ast.AbstractHeapTypeKindAny:
		return shapeCodeRefAny
	case ast.AbstractHeapTypeKindEq:
		return shapeCodeRefEq
	case ast.AbstractHeapTypeKindI31:
		return shapeCodeRefI31
	case ast.AbstractHeapTypeKindStruct:
		return shapeCodeRefStruct
	case ast.AbstractHeapTypeKindArray:
		return shapeCodeRefArray
	case ast.AbstractHeapTypeKindNone:
		return shapeCodeRefNone
	case ast.AbstractHeapTypeKindFunc:
		return shapeCodeRefFunc
	case ast.AbstractHeapTypeKindNoFunc:
		return shapeCodeRefNoFunc
	case ast.AbstractHeapTypeKindExtern:
		return shapeCodeRefExtern
	case ast.AbstractHeapTypeKindNoExtern:
		return shapeCodeRefNoExtern
	}

	panic(errors.NewUnreachableError())
}

// referenceShape identifies a referenced declaration independently of its
// position in the type section: a member of the group being fingerprinted
// by its relative position, a declaration of an earlier group by the
// canonical identity of its target
type referenceShape struct {
	_ struct{} `cbor:",toarray"`

	Rec         bool
	Relative    uint32
	Fingerprint []byte
	Canonical   uint32
}

// storageShape flattens a storage or value type
type storageShape struct {
	_ struct{} `cbor:",toarray"`

	Code     uint8
	Nullable bool
	Target   *referenceShape
}

type fieldShape struct {
	_ struct{} `cbor:",toarray"`

	Mutable bool
	Storage storageShape
}

// typeShape flattens one declaration of a recursion group, including its
// subtype clause. Two groups are canonically equal exactly when their
// declarations produce equal shapes in the same order.
type typeShape struct {
	_ struct{} `cbor:",toarray"`

	Final      bool
	Supertype  *referenceShape
	Kind       uint8
	Parameters []storageShape
	Results    []storageShape
	Fields     []fieldShape
	Element    *fieldShape
}

// canonicalizeGroups assigns a canonical identity to every declaration of
// every intact recursion group, in declaration order.
//
// Identity assignment is bottom-up: by the time a group is fingerprinted,
// the targets of all its cross-group references carry their final
// identity, so the fingerprint is independent of where the group and its
// dependencies appear in the section.
func (checker *Checker) canonicalizeGroups() []attribute.KeyValue {
	groups := checker.Table.Groups()

	canonicalized := 0

	for _, group := range groups {
		if checker.groupHasTaintedMember(group) {
			continue
		}

		checker.canonicalizeGroup(group)
		canonicalized++
	}

	return []attribute.KeyValue{
		attribute.Int("groups", len(groups)),
		attribute.Int("canonicalized", canonicalized),
	}
}

func (checker *Checker) groupHasTaintedMember(group *GroupInfo) bool {
	for offset := uint32(0); offset < group.Count; offset++ {
		if checker.isTainted(group.First + ast.TypeIndex(offset)) {
			return true
		}
	}
	return false
}

func (checker *Checker) canonicalizeGroup(group *GroupInfo) {
	shapes := make([]typeShape, 0, group.Count)

	for offset := uint32(0); offset < group.Count; offset++ {
		index := group.First + ast.TypeIndex(offset)
		shapes = append(
			shapes,
			checker.declarationShape(group, checker.Table.DefType(index)),
		)
	}

	encoded, err := canonicalEncMode.Marshal(shapes)
	if err != nil {
		panic(errors.NewUnexpectedErrorFromCause(err))
	}

	common.UseMemory(checker.memoryGauge, common.NewShapeMemoryUsage(len(encoded)))

	canonical := checker.registry.Intern(
		checker.memoryGauge,
		GroupFingerprint(sha3.Sum256(encoded)),
		group.Count,
	)
	group.Canonical = canonical

	for offset := uint32(0); offset < group.Count; offset++ {
		index := group.First + ast.TypeIndex(offset)
		checker.Table.DefType(index).CanonicalID = CanonicalTypeID{
			Group: canonical,
			Index: offset,
		}
	}
}

func (checker *Checker) declarationShape(group *GroupInfo, defType *DefType) typeShape {
	shape := typeShape{
		Final: defType.IsFinal,
		Kind:  uint8(defType.Composite.CompositeKind()),
	}

	supertype := defType.Supertype
	if supertype != nil {
		shape.Supertype = checker.referenceTypeShape(group, supertype.Index)
	}

	switch composite := defType.Composite.(type) {
	case *FunctionType:
		if len(composite.Parameters) > 0 {
			shape.Parameters = make([]storageShape, 0, len(composite.Parameters))
			for _, parameter := range composite.Parameters {
				shape.Parameters = append(
					shape.Parameters,
					checker.storageTypeShape(group, parameter),
				)
			}
		}
		if len(composite.Results) > 0 {
			shape.Results = make([]storageShape, 0, len(composite.Results))
			for _, result := range composite.Results {
				shape.Results = append(
					shape.Results,
					checker.storageTypeShape(group, result),
				)
			}
		}

	case *StructType:
		if len(composite.Fields) > 0 {
			shape.Fields = make([]fieldShape, 0, len(composite.Fields))
			for _, field := range composite.Fields {
				shape.Fields = append(
					shape.Fields,
					checker.fieldTypeShape(group, field),
				)
			}
		}

	case *ArrayType:
		elementShape := checker.fieldTypeShape(group, composite.Element)
		shape.Element = &elementShape

	default:
		panic(errors.NewUnreachableError())
	}

	return shape
}

func (checker *Checker) fieldTypeShape(group *GroupInfo, fieldType FieldType) fieldShape {
	return fieldShape{
		Mutable: fieldType.Mutable,
		Storage: checker.storageTypeShape(group, fieldType.Type),
	}
}

func (checker *Checker) storageTypeShape(group *GroupInfo, storageType StorageType) storageShape {
	switch storageType := storageType.(type) {
	case *NumberType:
		switch storageType.Kind {
		case ast.NumberTypeKindI32:
			return storageShape{Code: shapeCodeI32}
		case ast.NumberTypeKindI64:
			return storageShape{Code: shapeCodeI64}
		case ast.NumberTypeKindF32:
			return storageShape{Code: shapeCodeF32}
		case ast.NumberTypeKindF64:
			return storageShape{Code: shapeCodeF64}
		}

	case *VectorType:
		return storageShape{Code: shapeCodeV128}

	case *PackedType:
		switch storageType.Kind {
		case ast.PackedTypeKindI8:
			return storageShape{Code: shapeCodeI8}
		case ast.PackedTypeKindI16:
			return storageShape{Code: shapeCodeI16}
		}

	case *ReferenceType:
		switch heapType := storageType.Heap.(type) {
		case *AbstractHeapType:
			return storageShape{
				Code:     shapeCodeForAbstractHeapTypeKind(heapType.Kind),
				Nullable: storageType.Nullable,
			}

		case *ConcreteHeapType:
			return storageShape{
				Code:     shapeCodeRefConcrete,
				Nullable: storageType.Nullable,
				Target:   checker.referenceTypeShape(group, heapType.Index),
			}
		}
	}

	panic(errors.NewUnreachableError())
}

func (checker *Checker) referenceTypeShape(
	group *GroupInfo,
	target ast.TypeIndex,
) *referenceShape {

	if group.Contains(target) {
		return &referenceShape{
			Rec:      true,
			Relative: uint32(target - group.First),
		}
	}

	// cross-group targets are always canonicalized already:
	// a group that references a skipped group is itself skipped
	canonicalID := checker.Table.DefType(target).CanonicalID
	if !canonicalID.Exists() {
		panic(errors.NewUnreachableError())
	}

	return &referenceShape{
		Fingerprint: canonicalID.Group.Fingerprint[:],
		Canonical:   canonicalID.Index,
	}
}

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
	"go.opentelemetry.io/otel/attribute"

	"github.com/onflow/wasmtypes/ast"
	"github.com/onflow/wasmtypes/errors"
)

// resolveDeclarations binds the declared type names and resolves every
// type reference, group by group in declaration order.
//
// A symbolic name is visible in the group that declares it and in all
// later groups. The declarations of a group are mutually visible, so all
// names of a group are bound before any of its bodies are resolved.
func (checker *Checker) resolveDeclarations() []attribute.KeyValue {

	checker.collectDeclarationsByName()

	index := ast.TypeIndex(0)

	for groupIndex, group := range checker.Section.Groups {
		first := index

		for relativeIndex, declaration := range group.Declarations {
			defType := NewDefType(
				checker.memoryGauge,
				declaration,
				index,
				groupIndex,
				uint32(relativeIndex),
			)
			checker.Table.appendDefType(defType)

			if declaration.Identifier != nil {
				checker.declareTypeName(defType, declaration.Identifier)
			}

			index++
		}

		checker.Table.appendGroup(&GroupInfo{
			Index:    groupIndex,
			First:    first,
			Count:    uint32(len(group.Declarations)),
			Explicit: group.Explicit,
		})

		for memberIndex := first; memberIndex < index; memberIndex++ {
			checker.resolveDeclaration(checker.Table.DefType(memberIndex))
		}
	}

	return []attribute.KeyValue{
		attribute.Int("declarations", checker.Table.Count()),
		attribute.Int("groups", len(checker.Table.Groups())),
	}
}

// collectDeclarationsByName records the first declaration of each name,
// across all groups. Unlike the scoped bindings of the table, the mapping
// also covers names that are only bound later.
func (checker *Checker) collectDeclarationsByName() {
	declarationsByName := map[string]*ast.TypeDeclaration{}

	for _, group := range checker.Section.Groups {
		for _, declaration := range group.Declarations {
			identifier := declaration.Identifier
			if identifier == nil {
				continue
			}

			name := identifier.Identifier
			if _, ok := declarationsByName[name]; ok {
				continue
			}
			declarationsByName[name] = declaration
		}
	}

	checker.declarationsByName = declarationsByName
}

// declareTypeName binds the declared name to the declaration index.
// When the name is already bound, the earlier binding wins and the
// redeclaration is invalid.
func (checker *Checker) declareTypeName(defType *DefType, identifier *ast.Identifier) {
	name := identifier.Identifier

	previous, ok := checker.Table.nameIndex(name)
	if ok {
		var previousPos *ast.Position
		previousDefType := checker.Table.DefType(previous)
		if previousDefType != nil && previousDefType.Declaration.Identifier != nil {
			previousPos = &previousDefType.Declaration.Identifier.Pos
		}

		checker.report(
			&RedeclarationError{
				Name:        name,
				Pos:         identifier.Pos,
				PreviousPos: previousPos,
			},
		)
		checker.markFailed(defType.Index)
		return
	}

	checker.Table.bindName(name, defType.Index)
	checker.visibleNames = append(checker.visibleNames, name)
}

// resolveDeclaration resolves the composite body and the supertype
// of a single declaration
func (checker *Checker) resolveDeclaration(defType *DefType) {
	declaration := defType.Declaration

	defType.Composite = checker.convertCompositeType(
		defType.Index,
		declaration.Composite,
	)

	sub := declaration.Sub
	if sub == nil || sub.Supertype == nil {
		return
	}

	target, ok := checker.resolveReference(defType.Index, sub.Supertype, true)
	if !ok {
		return
	}

	defType.Supertype = &SupertypeEdge{
		Index:     target,
		Reference: sub.Supertype,
	}
}

// resolveReference resolves a type reference to a declaration index and
// records the reference edge.
//
// Symbolic names resolve against the names bound so far, i.e. the
// declarations of the current and all earlier groups. Numeric indices
// are recorded as-is and validated against the group layering
// in a later pass.
func (checker *Checker) resolveReference(
	index ast.TypeIndex,
	reference ast.TypeReference,
	isSupertype bool,
) (ast.TypeIndex, bool) {

	switch reference := reference.(type) {
	case *ast.NamedTypeReference:
		name := reference.Identifier.Identifier

		target, ok := checker.Table.nameIndex(name)
		if !ok {
			checker.report(
				&NotDeclaredError{
					Name:             name,
					Available:        checker.visibleNames,
					LaterDeclaration: checker.declarationsByName[name],
					Pos:              reference.Identifier.Pos,
				},
			)
			checker.markFailed(index)
			return 0, false
		}

		checker.recordReference(index, reference, target, isSupertype)
		return target, true

	case *ast.IndexedTypeReference:
		checker.recordReference(index, reference, reference.Index, isSupertype)
		return reference.Index, true
	}

	panic(errors.NewUnreachableError())
}

func (checker *Checker) convertCompositeType(
	index ast.TypeIndex,
	composite ast.CompositeType,
) CompositeType {
	switch composite := composite.(type) {
	case *ast.FunctionType:
		return checker.convertFunctionType(index, composite)

	case *ast.StructType:
		return checker.convertStructType(index, composite)

	case *ast.ArrayType:
		return checker.convertArrayType(index, composite)
	}

	panic(errors.NewUnreachableError())
}

func (checker *Checker) convertFunctionType(
	index ast.TypeIndex,
	functionType *ast.FunctionType,
) *FunctionType {
	var parameters []ValueType
	if len(functionType.Parameters) > 0 {
		parameters = make([]ValueType, 0, len(functionType.Parameters))
		for _, parameter := range functionType.Parameters {
			parameters = append(
				parameters,
				checker.convertValueType(index, parameter),
			)
		}
	}

	var results []ValueType
	if len(functionType.Results) > 0 {
		results = make([]ValueType, 0, len(functionType.Results))
		for _, result := range functionType.Results {
			results = append(
				results,
				checker.convertValueType(index, result),
			)
		}
	}

	return &FunctionType{
		Parameters: parameters,
		Results:    results,
	}
}

func (checker *Checker) convertStructType(
	index ast.TypeIndex,
	structType *ast.StructType,
) *StructType {
	var fields []FieldType
	if len(structType.Fields) > 0 {
		fields = make([]FieldType, 0, len(structType.Fields))
		for _, field := range structType.Fields {
			fields = append(
				fields,
				checker.convertFieldType(index, field),
			)
		}
	}

	return &StructType{
		Fields: fields,
	}
}

func (checker *Checker) convertArrayType(
	index ast.TypeIndex,
	arrayType *ast.ArrayType,
) *ArrayType {
	return &ArrayType{
		Element: checker.convertFieldType(index, arrayType.Element),
	}
}

func (checker *Checker) convertFieldType(
	index ast.TypeIndex,
	fieldType *ast.FieldType,
) FieldType {
	return FieldType{
		Mutable: fieldType.Mutable,
		Type:    checker.convertStorageType(index, fieldType.Type),
	}
}

func (checker *Checker) convertStorageType(
	index ast.TypeIndex,
	storageType ast.StorageType,
) StorageType {
	switch storageType := storageType.(type) {
	case *ast.NumberType:
		return NumberTypeForKind(storageType.Kind)

	case *ast.VectorType:
		return V128Type

	case *ast.PackedType:
		return PackedTypeForKind(storageType.Kind)

	case *ast.ReferenceType:
		return checker.convertReferenceType(index, storageType)
	}

	panic(errors.NewUnreachableError())
}

func (checker *Checker) convertValueType(
	index ast.TypeIndex,
	valueType ast.ValueType,
) ValueType {
	switch valueType := valueType.(type) {
	case *ast.NumberType:
		return NumberTypeForKind(valueType.Kind)

	case *ast.VectorType:
		return V128Type

	case *ast.ReferenceType:
		return checker.convertReferenceType(index, valueType)
	}

	panic(errors.NewUnreachableError())
}

func (checker *Checker) convertReferenceType(
	index ast.TypeIndex,
	referenceType *ast.ReferenceType,
) *ReferenceType {
	return &ReferenceType{
		Nullable: referenceType.Nullable,
		Heap:     checker.convertHeapType(index, referenceType.Type),
	}
}

func (checker *Checker) convertHeapType(
	index ast.TypeIndex,
	heapType ast.HeapType,
) HeapType {
	switch heapType := heapType.(type) {
	case *ast.AbstractHeapType:
		return AbstractHeapTypeForKind(heapType.Kind)

	case *ast.ConcreteHeapType:
		target, ok := checker.resolveReference(index, heapType.Reference, false)
		if !ok {
			return &InvalidType{}
		}
		return &ConcreteHeapType{
			Index: target,
		}
	}

	panic(errors.NewUnreachableError())
}

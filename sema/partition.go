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
)

// partitionReferences validates the group layering of every reference:
// a reference must point at a declared index, in the current or an
// earlier recursion group. References resolved from symbolic names
// always satisfy both conditions, references written as numeric indices
// can violate them.
//
// The pass also records the referrers of each declaration, which drive
// taint propagation: invalidity flows only along legal references.
func (checker *Checker) partitionReferences() []attribute.KeyValue {
	count := checker.Table.Count()

	referenceCount := 0

	for index := 0; index < count; index++ {
		typeIndex := ast.TypeIndex(index)
		group := checker.Table.GroupOf(typeIndex)

		for _, edge := range checker.references[typeIndex] {
			referenceCount++

			if !checker.checkReferenceEdge(typeIndex, group, edge) {
				continue
			}

			checker.referrers[edge.target] = append(
				checker.referrers[edge.target],
				typeIndex,
			)
		}
	}

	return []attribute.KeyValue{
		attribute.Int("references", referenceCount),
	}
}

func (checker *Checker) checkReferenceEdge(
	index ast.TypeIndex,
	group *GroupInfo,
	edge referenceEdge,
) bool {
	count := checker.Table.Count()

	if int(edge.target) >= count {
		checker.report(
			&UnknownTypeIndexError{
				Index: edge.target,
				Count: count,
				Range: ast.NewUnmeteredRangeFromPositioned(edge.reference),
			},
		)
		checker.markFailed(index)
		return false
	}

	if group != nil && edge.target >= group.First+ast.TypeIndex(group.Count) {
		targetDefType := checker.Table.DefType(edge.target)

		checker.report(
			&ForwardReferenceError{
				ReferencedIndex:       edge.target,
				ReferencedName:        targetDefType.Identifier,
				ReferencedDeclaration: targetDefType.Declaration,
				Range:                 ast.NewUnmeteredRangeFromPositioned(edge.reference),
			},
		)
		checker.markFailed(index)
		return false
	}

	return true
}

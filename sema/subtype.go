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

	"go.opentelemetry.io/otel/attribute"

	"github.com/onflow/wasmtypes/ast"
	"github.com/onflow/wasmtypes/errors"
)

// supertypeDepthLimit is the maximum length of a declared supertype chain.
// The limit follows the WebAssembly implementation limits.
const supertypeDepthLimit = 63

// groupCheckResult collects the outcome of checking one recursion group,
// so that groups checked concurrently report exactly like groups
// checked in declaration order
type groupCheckResult struct {
	errors  []error
	failed  []ast.TypeIndex
	tainted []taintRecord
}

// checkSubtypes validates every declared subtype relationship.
//
// Groups are checked in declaration order, or concurrently when
// configured. A group is only ever checked after all groups it
// references, and the errors are reported in declaration order in
// both modes, so the diagnostics are identical either way.
func (checker *Checker) checkSubtypes() []attribute.KeyValue {
	groups := checker.Table.Groups()

	results := make([]*groupCheckResult, len(groups))

	workers := checker.Config.ConcurrentGroupChecks
	concurrent := workers > 1 && len(groups) > 1
	if concurrent {
		checker.checkGroupsConcurrently(groups, results, workers)
	} else {
		for i, group := range groups {
			result := checker.checkGroupSubtypes(group)
			results[i] = result
			checker.applyGroupCheckState(result)
		}
	}

	checked := 0
	for _, result := range results {
		if result == nil {
			continue
		}
		checked++

		for _, err := range result.errors {
			checker.report(err)
		}
	}

	return []attribute.KeyValue{
		attribute.Int("groups", len(groups)),
		attribute.Int("checked", checked),
		attribute.Bool("concurrent", concurrent),
	}
}

// applyGroupCheckState applies the failure and taint state of a checked
// group, so that the checks of later groups see it
func (checker *Checker) applyGroupCheckState(result *groupCheckResult) {
	if result == nil {
		return
	}

	for _, index := range result.failed {
		checker.markFailed(index)
	}

	for _, record := range result.tainted {
		checker.tainted.Set(uint(record.index))
		checker.skipCauses[record.index] = record.cause
	}
}

// checkGroupSubtypes checks the declared supertypes of all members of a
// recursion group, in declaration order. The result is only collected,
// not applied: concurrent checks of independent groups must not observe
// each other.
func (checker *Checker) checkGroupSubtypes(group *GroupInfo) *groupCheckResult {
	if checker.groupHasTaintedMember(group) {
		// invalidated by a structural error, nothing left to check
		return nil
	}

	result := &groupCheckResult{}

	// invalidated tracks members that failed or were skipped while
	// checking this group, keyed by the root cause,
	// before the result is applied to the checker
	invalidated := map[ast.TypeIndex]ast.TypeIndex{}

	for offset := uint32(0); offset < group.Count; offset++ {
		index := group.First + ast.TypeIndex(offset)
		defType := checker.Table.DefType(index)

		// a declaration that depends on a failed declaration
		// is not checked, with or without a subtype clause
		cause, tainted := checker.findTaintedDependency(index, invalidated)
		if tainted {
			invalidated[index] = cause
			result.tainted = append(result.tainted, taintRecord{
				index: index,
				cause: cause,
			})
			continue
		}

		err := checker.checkDeclaredSupertype(defType, group)
		if err == nil {
			continue
		}

		result.errors = append(result.errors, err)
		result.failed = append(result.failed, index)
		invalidated[index] = index
	}

	return result
}

// findTaintedDependency returns the root cause of the first invalidated
// dependency of the declaration, in reference order
func (checker *Checker) findTaintedDependency(
	index ast.TypeIndex,
	invalidated map[ast.TypeIndex]ast.TypeIndex,
) (ast.TypeIndex, bool) {

	for _, edge := range checker.references[index] {
		target := edge.target

		if checker.isTainted(target) {
			return checker.taintRoot(target), true
		}

		if cause, ok := invalidated[target]; ok {
			return cause, true
		}
	}

	return 0, false
}

// checkDeclaredSupertype checks the declared supertype of a declaration:
// the supertype must be declared strictly before the subtype, must not
// be final, the subtype chain must stay within the depth limit, and the
// structures of the two types must be compatible.
// At most one error is reported per declaration.
func (checker *Checker) checkDeclaredSupertype(
	defType *DefType,
	group *GroupInfo,
) error {
	supertype := defType.Supertype
	if supertype == nil {
		return nil
	}

	target := supertype.Index
	referenceRange := ast.NewUnmeteredRangeFromPositioned(supertype.Reference)

	if target == defType.Index {
		return &CyclicSupertypeError{
			Index: defType.Index,
			Name:  defType.Identifier,
			Range: referenceRange,
		}
	}

	if target > defType.Index {
		// the reference itself is legal, because the supertype is a
		// member of the same group, but the subtype relation
		// additionally requires the supertype to be declared first
		if chain, cyclic := checker.supertypeChainReaches(target, defType.Index, group); cyclic {
			return &CyclicSupertypeError{
				Index: defType.Index,
				Name:  defType.Identifier,
				Chain: chain,
				Range: referenceRange,
			}
		}

		superDefType := checker.Table.DefType(target)
		return &ForwardSupertypeError{
			SupertypeIndex:       target,
			SupertypeName:        superDefType.Identifier,
			SupertypeDeclaration: superDefType.Declaration,
			Range:                referenceRange,
		}
	}

	superDefType := checker.Table.DefType(target)

	if superDefType.IsFinal {
		return &FinalSupertypeError{
			SupertypeIndex:       target,
			SupertypeName:        superDefType.Identifier,
			SupertypeDeclaration: superDefType.Declaration,
			Range:                referenceRange,
		}
	}

	depth := checker.supertypeDepth(defType)
	if depth > supertypeDepthLimit {
		return &SupertypeDepthLimitError{
			Index: defType.Index,
			Name:  defType.Identifier,
			Depth: depth,
			Limit: supertypeDepthLimit,
			Range: referenceRange,
		}
	}

	detail, ok := checker.checkCompositeSubtype(defType.Composite, superDefType.Composite)
	if !ok {
		return &IncompatibleSubtypeError{
			SubtypeIndex:         defType.Index,
			SubtypeName:          defType.Identifier,
			SupertypeIndex:       target,
			SupertypeName:        superDefType.Identifier,
			Detail:               detail,
			SupertypeDeclaration: superDefType.Declaration,
			Range:                referenceRange,
		}
	}

	return nil
}

// supertypeChainReaches follows declared supertypes from the given
// declaration and reports whether the chain reaches the target,
// together with the chain descriptions. The chain cannot leave the
// recursion group and come back, references to earlier groups
// only go backwards.
func (checker *Checker) supertypeChainReaches(
	from ast.TypeIndex,
	target ast.TypeIndex,
	group *GroupInfo,
) ([]string, bool) {

	visited := make(map[ast.TypeIndex]struct{}, group.Count)

	chain := []string{
		checker.Table.DefType(target).Description(),
	}

	current := from
	for group.Contains(current) {
		if _, ok := visited[current]; ok {
			return nil, false
		}
		visited[current] = struct{}{}

		defType := checker.Table.DefType(current)
		chain = append(chain, defType.Description())

		if current == target {
			return chain, true
		}

		supertype := defType.Supertype
		if supertype == nil {
			return nil, false
		}
		current = supertype.Index
	}

	return nil, false
}

// supertypeDepth returns the length of the declared supertype chain of
// the declaration. A declaration without a supertype has depth zero.
// The ancestors have already been checked, so the walk is bounded.
func (checker *Checker) supertypeDepth(defType *DefType) int {
	depth := 0
	current := defType
	for current.Supertype != nil {
		depth++
		if depth > supertypeDepthLimit {
			break
		}
		current = checker.Table.DefType(current.Supertype.Index)
	}
	return depth
}

// checkCompositeSubtype checks the structure of a declared subtype
// against its supertype. On failure, the detail describes the first
// incompatibility.
func (checker *Checker) checkCompositeSubtype(
	source CompositeType,
	target CompositeType,
) (detail string, ok bool) {

	sourceKind := source.CompositeKind()
	targetKind := target.CompositeKind()
	if sourceKind != targetKind {
		return fmt.Sprintf(
			"a %s cannot be a subtype of a %s",
			sourceKind.Name(),
			targetKind.Name(),
		), false
	}

	switch source := source.(type) {
	case *FunctionType:
		return checker.checkFunctionSubtype(source, target.(*FunctionType))

	case *StructType:
		return checker.checkStructSubtype(source, target.(*StructType))

	case *ArrayType:
		return checker.checkArraySubtype(source, target.(*ArrayType))
	}

	panic(errors.NewUnreachableError())
}

func (checker *Checker) checkFunctionSubtype(source, target *FunctionType) (string, bool) {
	table := checker.Table

	if len(source.Parameters) != len(target.Parameters) {
		return fmt.Sprintf(
			"expected %d parameters, found %d",
			len(target.Parameters),
			len(source.Parameters),
		), false
	}

	if len(source.Results) != len(target.Results) {
		return fmt.Sprintf(
			"expected %d results, found %d",
			len(target.Results),
			len(source.Results),
		), false
	}

	for i, sourceParameter := range source.Parameters {
		targetParameter := target.Parameters[i]
		if !table.IdenticalValueTypes(sourceParameter, targetParameter) {
			return fmt.Sprintf(
				"parameter %d must match the supertype's parameter exactly: expected `%s`, found `%s`",
				i,
				targetParameter,
				sourceParameter,
			), false
		}
	}

	for i, sourceResult := range source.Results {
		targetResult := target.Results[i]
		if !table.IdenticalValueTypes(sourceResult, targetResult) {
			return fmt.Sprintf(
				"result %d must match the supertype's result exactly: expected `%s`, found `%s`",
				i,
				targetResult,
				sourceResult,
			), false
		}
	}

	return "", true
}

func (checker *Checker) checkStructSubtype(source, target *StructType) (string, bool) {
	if len(source.Fields) < len(target.Fields) {
		return fmt.Sprintf(
			"the subtype must redeclare all %d fields of the supertype, found only %d",
			len(target.Fields),
			len(source.Fields),
		), false
	}

	for i, targetField := range target.Fields {
		sourceField := source.Fields[i]
		if !checker.Table.IdenticalFieldTypes(sourceField, targetField) {
			return fmt.Sprintf(
				"field %d must match the supertype's field exactly: expected `%s`, found `%s`",
				i,
				targetField,
				sourceField,
			), false
		}
	}

	return "", true
}

func (checker *Checker) checkArraySubtype(source, target *ArrayType) (string, bool) {
	sourceElement := source.Element
	targetElement := target.Element

	if sourceElement.Mutable != targetElement.Mutable &&
		checker.Table.IdenticalStorageTypes(sourceElement.Type, targetElement.Type) {

		if targetElement.Mutable {
			return "a mutable element cannot become immutable in a subtype", false
		}
		return "an immutable element cannot become mutable in a subtype", false
	}

	if !checker.Table.IdenticalFieldTypes(sourceElement, targetElement) {
		return fmt.Sprintf(
			"the element type must match the supertype's element type exactly: expected `%s`, found `%s`",
			targetElement,
			sourceElement,
		), false
	}

	return "", true
}

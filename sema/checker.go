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
	"github.com/bits-and-blooms/bitset"

	"github.com/onflow/wasmtypes/ast"
	"github.com/onflow/wasmtypes/common"
	"github.com/onflow/wasmtypes/errors"
)

// referenceEdge is one use of another declared type in a declaration,
// either in the composite body or in the subtype clause
type referenceEdge struct {
	reference ast.TypeReference
	target    ast.TypeIndex
	supertype bool
}

// taintRecord marks a declaration as invalidated
// by the failure of another declaration
type taintRecord struct {
	index ast.TypeIndex
	cause ast.TypeIndex
}

// Checker performs the semantic analysis of a type section:
// it resolves symbolic type references, validates the layering of
// recursion groups, assigns canonical identities to the declarations
// of intact groups, and checks all declared subtype relationships.
//
// The result of the analysis is the Table.
type Checker struct {
	Section  *ast.TypeSection
	Location common.Location
	Config   *Config
	Table    *TypeTable

	memoryGauge common.MemoryGauge
	registry    *CanonicalRegistry
	errors      []error

	// references holds the outgoing reference edges of each declaration
	references [][]referenceEdge
	// referrers holds, for each declaration,
	// the declarations that refer to it through a legal edge
	referrers [][]ast.TypeIndex

	// failed marks declarations that reported an error of their own.
	// tainted additionally marks declarations that depend on a failure,
	// directly or transitively
	failed  *bitset.BitSet
	tainted *bitset.BitSet
	// skipCauses records, for each tainted but not failed declaration,
	// the failed declaration that invalidated it
	skipCauses map[ast.TypeIndex]ast.TypeIndex

	// visibleNames are the names bound so far, in binding order,
	// for suggestions in errors
	visibleNames []string
	// declarationsByName maps each declared name to its first declaration,
	// wherever it appears, for errors that point at a binding
	// that is not (yet) in scope
	declarationsByName map[string]*ast.TypeDeclaration

	isChecked bool
}

func NewChecker(
	section *ast.TypeSection,
	location common.Location,
	memoryGauge common.MemoryGauge,
	config *Config,
) (*Checker, error) {

	if section == nil {
		return nil, errors.NewDefaultUserError("missing type section")
	}

	if location == nil {
		return nil, errors.NewDefaultUserError("missing location")
	}

	if config == nil {
		config = &Config{}
	}

	registry := config.CanonicalRegistry
	if registry == nil {
		registry = NewCanonicalRegistry()
	}

	declarationCount := section.DeclarationCount()
	groupCount := len(section.Groups)

	checker := &Checker{
		Section:     section,
		Location:    location,
		Config:      config,
		Table:       NewTypeTable(memoryGauge, location, declarationCount, groupCount),
		memoryGauge: memoryGauge,
		registry:    registry,
		references:  make([][]referenceEdge, declarationCount),
		referrers:   make([][]ast.TypeIndex, declarationCount),
		failed:      bitset.New(uint(declarationCount)),
		tainted:     bitset.New(uint(declarationCount)),
		skipCauses:  map[ast.TypeIndex]ast.TypeIndex{},
	}

	return checker, nil
}

func (checker *Checker) IsChecked() bool {
	return checker.isChecked
}

type stopChecking struct{}

func (checker *Checker) Check() error {
	if !checker.IsChecked() {
		checker.errors = nil
		check := func() {
			if checker.Config.ErrorShortCircuitingEnabled {
				defer func() {
					switch recovered := recover().(type) {
					case stopChecking:
						// checking should stop
						break
					case nil:
						// nothing was recovered
						break
					default:
						// re-panic what was recovered
						panic(recovered)
					}
				}()
			}

			checker.checkSection()
		}
		check()
		checker.isChecked = true
	}
	err := checker.CheckerError()
	if err != nil {
		return err
	}
	return nil
}

// checkSection runs the checking passes in order.
//
// Resolution and partitioning find the structural errors. A structural
// error invalidates the whole recursion group and all its dependents,
// so canonicalization and subtype checking only see intact groups.
func (checker *Checker) checkSection() {
	checker.runPass(tracingPassResolve, checker.resolveDeclarations)
	checker.runPass(tracingPassPartition, checker.partitionReferences)

	checker.propagateTaint()

	checker.runPass(tracingPassCanonicalize, checker.canonicalizeGroups)
	checker.runPass(tracingPassSubtype, checker.checkSubtypes)

	checker.reportSkippedDeclarations()
	checker.markValidDeclarations()
}

func (checker *Checker) CheckerError() *CheckerError {
	if len(checker.errors) > 0 {
		return &CheckerError{
			Location: checker.Location,
			Errors:   checker.errors,
		}
	}
	return nil
}

func (checker *Checker) report(err error) {
	if err == nil {
		return
	}

	checker.errors = append(checker.errors, err)
	if checker.Config.ErrorShortCircuitingEnabled {
		panic(stopChecking{})
	}
}

// markFailed records that the declaration at the given index
// reported an error. Failed declarations seed taint propagation.
func (checker *Checker) markFailed(index ast.TypeIndex) {
	checker.failed.Set(uint(index))
	checker.tainted.Set(uint(index))
}

func (checker *Checker) isTainted(index ast.TypeIndex) bool {
	return checker.tainted.Test(uint(index))
}

// recordReference records the use of the type at the target index
// in the declaration at the given index
func (checker *Checker) recordReference(
	index ast.TypeIndex,
	reference ast.TypeReference,
	target ast.TypeIndex,
	isSupertype bool,
) {
	checker.references[index] = append(
		checker.references[index],
		referenceEdge{
			reference: reference,
			target:    target,
			supertype: isSupertype,
		},
	)
}

// propagateTaint spreads invalidity from the failed declarations:
// to all members of their recursion group, because the group is the
// unit of canonicalization, and to all their referrers, transitively
func (checker *Checker) propagateTaint() {
	var queue []taintRecord

	for i, ok := checker.failed.NextSet(0); ok; i, ok = checker.failed.NextSet(i + 1) {
		index := ast.TypeIndex(i)
		queue = append(queue, taintRecord{
			index: index,
			cause: index,
		})
	}

	for len(queue) > 0 {
		record := queue[0]
		queue = queue[1:]

		group := checker.Table.GroupOf(record.index)
		if group != nil {
			for offset := uint32(0); offset < group.Count; offset++ {
				member := group.First + ast.TypeIndex(offset)
				queue = checker.enqueueTainted(queue, member, record.cause)
			}
		}

		for _, referrer := range checker.referrers[record.index] {
			queue = checker.enqueueTainted(queue, referrer, record.cause)
		}
	}
}

// enqueueTainted taints the declaration at the given index and schedules
// it for further propagation. An already tainted declaration keeps its
// original cause.
func (checker *Checker) enqueueTainted(
	queue []taintRecord,
	index ast.TypeIndex,
	cause ast.TypeIndex,
) []taintRecord {
	if checker.isTainted(index) {
		return queue
	}

	checker.tainted.Set(uint(index))
	checker.skipCauses[index] = cause

	return append(queue, taintRecord{
		index: index,
		cause: cause,
	})
}

// taintRoot returns the failed declaration that originally invalidated
// the declaration at the given index
func (checker *Checker) taintRoot(index ast.TypeIndex) ast.TypeIndex {
	if cause, ok := checker.skipCauses[index]; ok {
		return cause
	}
	return index
}

// reportSkippedDeclarations reports one error for each declaration that
// was invalidated by the failure of another declaration.
// The errors are reported in declaration order, after all other errors.
func (checker *Checker) reportSkippedDeclarations() {
	for i, ok := checker.tainted.NextSet(0); ok; i, ok = checker.tainted.NextSet(i + 1) {
		if checker.failed.Test(i) {
			continue
		}

		index := ast.TypeIndex(i)

		defType := checker.Table.DefType(index)
		if defType == nil {
			continue
		}

		cause := checker.taintRoot(index)

		var causeName string
		var causeDeclaration *ast.TypeDeclaration
		causeDefType := checker.Table.DefType(cause)
		if causeDefType != nil {
			causeName = causeDefType.Identifier
			causeDeclaration = causeDefType.Declaration
		}

		checker.report(
			&SkippedDeclarationError{
				Index:            index,
				Name:             defType.Identifier,
				CauseIndex:       cause,
				CauseName:        causeName,
				CauseDeclaration: causeDeclaration,
				Range:            ast.NewUnmeteredRangeFromPositioned(defType.Declaration),
			},
		)
	}
}

// markValidDeclarations records every fully checked declaration in the table
func (checker *Checker) markValidDeclarations() {
	count := checker.Table.Count()
	for index := 0; index < count; index++ {
		typeIndex := ast.TypeIndex(index)
		if checker.isTainted(typeIndex) {
			continue
		}
		checker.Table.markValid(typeIndex)
	}
}

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
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/onflow/wasmtypes/ast"
	"github.com/onflow/wasmtypes/common"
	"github.com/onflow/wasmtypes/errors"
	"github.com/onflow/wasmtypes/pretty"
)

// typeDescription returns a human-readable description of a type declaration:
// the symbolic name if one is bound, e.g. `$pair`, or the numeric index otherwise
func typeDescription(name string, index ast.TypeIndex) string {
	if name != "" {
		return "$" + name
	}
	return fmt.Sprint(index)
}

// CheckerError

type CheckerError struct {
	Location common.Location
	Codes    map[common.Location][]byte
	Errors   []error
}

var _ errors.UserError = CheckerError{}
var _ errors.ParentError = CheckerError{}

func (CheckerError) IsUserError() {}

func (e CheckerError) Error() string {
	var sb strings.Builder
	sb.WriteString("Checking failed:\n")
	codes := e.Codes
	if codes == nil {
		codes = map[common.Location][]byte{}
	}
	printErr := pretty.NewErrorPrettyPrinter(&sb, false).
		PrettyPrintError(e, e.Location, codes)
	if printErr != nil {
		panic(printErr)
	}
	sb.WriteString(errors.ErrorPrompt)
	return sb.String()
}

func (e CheckerError) ChildErrors() []error {
	return e.Errors
}

func (e CheckerError) Unwrap() []error {
	return e.Errors
}

// SemanticError

type SemanticError interface {
	errors.UserError
	ast.HasPosition
	isSemanticError()
}

// RedeclarationError

type RedeclarationError struct {
	PreviousPos *ast.Position
	Name        string
	Pos         ast.Position
}

var _ SemanticError = &RedeclarationError{}
var _ errors.UserError = &RedeclarationError{}
var _ errors.ErrorNotes = &RedeclarationError{}

func (*RedeclarationError) isSemanticError() {}

func (*RedeclarationError) IsUserError() {}

func (e *RedeclarationError) Error() string {
	return fmt.Sprintf(
		"cannot redeclare type: `$%s` is already declared",
		e.Name,
	)
}

func (e *RedeclarationError) StartPosition() ast.Position {
	return e.Pos
}

func (e *RedeclarationError) EndPosition(memoryGauge common.MemoryGauge) ast.Position {
	length := len(e.Name)
	return e.Pos.Shifted(memoryGauge, length-1)
}

func (e *RedeclarationError) ErrorNotes() []errors.ErrorNote {
	if e.PreviousPos == nil || e.PreviousPos.Line < 1 {
		return nil
	}

	previousStartPos := *e.PreviousPos
	length := len(e.Name)
	previousEndPos := previousStartPos.Shifted(nil, length-1)

	return []errors.ErrorNote{
		&RedeclarationNote{
			Range: ast.NewUnmeteredRange(
				previousStartPos,
				previousEndPos,
			),
		},
	}
}

// RedeclarationNote

type RedeclarationNote struct {
	ast.Range
}

func (n RedeclarationNote) Message() string {
	return "previously declared here"
}

// NotDeclaredError

type NotDeclaredError struct {
	Name             string
	Available        []string
	LaterDeclaration *ast.TypeDeclaration
	Pos              ast.Position
}

var _ SemanticError = &NotDeclaredError{}
var _ errors.UserError = &NotDeclaredError{}
var _ errors.SecondaryError = &NotDeclaredError{}
var _ errors.ErrorNotes = &NotDeclaredError{}

func (*NotDeclaredError) isSemanticError() {}

func (*NotDeclaredError) IsUserError() {}

func (e *NotDeclaredError) Error() string {
	return fmt.Sprintf(
		"cannot find type in this scope: `$%s`",
		e.Name,
	)
}

func (e *NotDeclaredError) SecondaryError() string {
	if e.LaterDeclaration != nil {
		return "bound by a later recursion group"
	}

	closestName := e.findClosestName()
	if closestName != "" {
		return fmt.Sprintf("did you mean `$%s`?", closestName)
	}

	return "not found in this scope"
}

// findClosestName searches the names declared up to the point of the failing
// reference, and finds the name with the smallest edit distance from the name
// the reference used. In cases of typos, this should provide a helpful hint.
func (e *NotDeclaredError) findClosestName() (closestName string) {
	nameRunes := []rune(e.Name)

	closestDistance := len(e.Name)

	sortedNames := make([]string, len(e.Available))
	copy(sortedNames, e.Available)
	sort.Strings(sortedNames)

	for _, name := range sortedNames {
		distance := levenshtein.DistanceForStrings(
			nameRunes,
			[]rune(name),
			levenshtein.DefaultOptions,
		)

		// Don't update the closest name if the distance is greater than one already found,
		// or if the edits required would involve a complete replacement of the name's text
		if distance < closestDistance && distance < len(name) {
			closestName = name
			closestDistance = distance
		}
	}

	return
}

func (e *NotDeclaredError) StartPosition() ast.Position {
	return e.Pos
}

func (e *NotDeclaredError) EndPosition(memoryGauge common.MemoryGauge) ast.Position {
	length := len(e.Name)
	return e.Pos.Shifted(memoryGauge, length-1)
}

func (e *NotDeclaredError) ErrorNotes() []errors.ErrorNote {
	declaration := e.LaterDeclaration
	if declaration == nil || declaration.Identifier == nil {
		return nil
	}

	return []errors.ErrorNote{
		&LaterDeclarationNote{
			Range: ast.NewUnmeteredRangeFromPositioned(declaration.Identifier),
		},
	}
}

// LaterDeclarationNote

type LaterDeclarationNote struct {
	ast.Range
}

func (n LaterDeclarationNote) Message() string {
	return "declared here, in a later recursion group"
}

// UnknownTypeIndexError

type UnknownTypeIndexError struct {
	Index ast.TypeIndex
	Count int
	ast.Range
}

var _ SemanticError = &UnknownTypeIndexError{}
var _ errors.UserError = &UnknownTypeIndexError{}
var _ errors.SecondaryError = &UnknownTypeIndexError{}

func (*UnknownTypeIndexError) isSemanticError() {}

func (*UnknownTypeIndexError) IsUserError() {}

func (e *UnknownTypeIndexError) Error() string {
	return fmt.Sprintf(
		"invalid type index: `%d`",
		e.Index,
	)
}

func (e *UnknownTypeIndexError) SecondaryError() string {
	if e.Count == 1 {
		return "the type section only declares 1 type"
	}
	return fmt.Sprintf(
		"the type section only declares %d types",
		e.Count,
	)
}

// ForwardReferenceError

type ForwardReferenceError struct {
	ReferencedIndex       ast.TypeIndex
	ReferencedName        string
	ReferencedDeclaration *ast.TypeDeclaration
	ast.Range
}

var _ SemanticError = &ForwardReferenceError{}
var _ errors.UserError = &ForwardReferenceError{}
var _ errors.SecondaryError = &ForwardReferenceError{}
var _ errors.ErrorNotes = &ForwardReferenceError{}
var _ errors.HasDocumentationLink = &ForwardReferenceError{}

func (*ForwardReferenceError) isSemanticError() {}

func (*ForwardReferenceError) IsUserError() {}

func (e *ForwardReferenceError) Error() string {
	return fmt.Sprintf(
		"invalid reference to type `%s` in a later recursion group",
		typeDescription(e.ReferencedName, e.ReferencedIndex),
	)
}

func (e *ForwardReferenceError) SecondaryError() string {
	return "types may only refer to earlier recursion groups, or to members of their own group"
}

func (e *ForwardReferenceError) ErrorNotes() []errors.ErrorNote {
	if e.ReferencedDeclaration == nil {
		return nil
	}

	return []errors.ErrorNote{
		&ReferencedDeclarationNote{
			Range: ast.NewUnmeteredRangeFromPositioned(e.ReferencedDeclaration),
		},
	}
}

func (*ForwardReferenceError) DocumentationLink() string {
	return "https://webassembly.github.io/gc/core/valid/types.html"
}

// ReferencedDeclarationNote

type ReferencedDeclarationNote struct {
	ast.Range
}

func (n ReferencedDeclarationNote) Message() string {
	return "the referenced type is declared here"
}

// ForwardSupertypeError

type ForwardSupertypeError struct {
	SupertypeIndex       ast.TypeIndex
	SupertypeName        string
	SupertypeDeclaration *ast.TypeDeclaration
	ast.Range
}

var _ SemanticError = &ForwardSupertypeError{}
var _ errors.UserError = &ForwardSupertypeError{}
var _ errors.SecondaryError = &ForwardSupertypeError{}
var _ errors.ErrorNotes = &ForwardSupertypeError{}
var _ errors.HasDocumentationLink = &ForwardSupertypeError{}

func (*ForwardSupertypeError) isSemanticError() {}

func (*ForwardSupertypeError) IsUserError() {}

func (e *ForwardSupertypeError) Error() string {
	return fmt.Sprintf(
		"invalid supertype: `%s` is declared after its subtype",
		typeDescription(e.SupertypeName, e.SupertypeIndex),
	)
}

func (e *ForwardSupertypeError) SecondaryError() string {
	return "a supertype must be declared before its subtypes"
}

func (e *ForwardSupertypeError) ErrorNotes() []errors.ErrorNote {
	if e.SupertypeDeclaration == nil {
		return nil
	}

	return []errors.ErrorNote{
		&SupertypeDeclarationNote{
			Range: ast.NewUnmeteredRangeFromPositioned(e.SupertypeDeclaration),
		},
	}
}

func (*ForwardSupertypeError) DocumentationLink() string {
	return "https://webassembly.github.io/gc/core/valid/types.html"
}

// SupertypeDeclarationNote

type SupertypeDeclarationNote struct {
	ast.Range
}

func (n SupertypeDeclarationNote) Message() string {
	return "the supertype is declared here"
}

// FinalSupertypeError

type FinalSupertypeError struct {
	SupertypeIndex       ast.TypeIndex
	SupertypeName        string
	SupertypeDeclaration *ast.TypeDeclaration
	ast.Range
}

var _ SemanticError = &FinalSupertypeError{}
var _ errors.UserError = &FinalSupertypeError{}
var _ errors.SecondaryError = &FinalSupertypeError{}
var _ errors.ErrorNotes = &FinalSupertypeError{}
var _ errors.HasDocumentationLink = &FinalSupertypeError{}

func (*FinalSupertypeError) isSemanticError() {}

func (*FinalSupertypeError) IsUserError() {}

func (e *FinalSupertypeError) Error() string {
	return fmt.Sprintf(
		"cannot declare a subtype of final type `%s`",
		typeDescription(e.SupertypeName, e.SupertypeIndex),
	)
}

func (e *FinalSupertypeError) SecondaryError() string {
	return "final types may not have subtypes; declare the supertype with `sub` instead of `sub final`"
}

func (e *FinalSupertypeError) ErrorNotes() []errors.ErrorNote {
	declaration := e.SupertypeDeclaration
	if declaration == nil {
		return nil
	}

	var noteRange ast.Range
	if declaration.Sub != nil {
		noteRange = declaration.Sub.Range
	} else {
		noteRange = ast.NewUnmeteredRangeFromPositioned(declaration)
	}

	return []errors.ErrorNote{
		&FinalDeclarationNote{
			Range: noteRange,
		},
	}
}

func (*FinalSupertypeError) DocumentationLink() string {
	return "https://webassembly.github.io/gc/core/valid/matching.html"
}

// FinalDeclarationNote

type FinalDeclarationNote struct {
	ast.Range
}

func (n FinalDeclarationNote) Message() string {
	return "declared final here"
}

// IncompatibleSubtypeError

type IncompatibleSubtypeError struct {
	SubtypeIndex         ast.TypeIndex
	SubtypeName          string
	SupertypeIndex       ast.TypeIndex
	SupertypeName        string
	Detail               string
	SupertypeDeclaration *ast.TypeDeclaration
	ast.Range
}

var _ SemanticError = &IncompatibleSubtypeError{}
var _ errors.UserError = &IncompatibleSubtypeError{}
var _ errors.SecondaryError = &IncompatibleSubtypeError{}
var _ errors.ErrorNotes = &IncompatibleSubtypeError{}
var _ errors.HasDocumentationLink = &IncompatibleSubtypeError{}

func (*IncompatibleSubtypeError) isSemanticError() {}

func (*IncompatibleSubtypeError) IsUserError() {}

func (e *IncompatibleSubtypeError) Error() string {
	return fmt.Sprintf(
		"type `%s` is not a valid subtype of `%s`",
		typeDescription(e.SubtypeName, e.SubtypeIndex),
		typeDescription(e.SupertypeName, e.SupertypeIndex),
	)
}

func (e *IncompatibleSubtypeError) SecondaryError() string {
	if e.Detail == "" {
		return "the structures of the two types are incompatible"
	}
	return e.Detail
}

func (e *IncompatibleSubtypeError) ErrorNotes() []errors.ErrorNote {
	if e.SupertypeDeclaration == nil {
		return nil
	}

	return []errors.ErrorNote{
		&SupertypeDeclarationNote{
			Range: ast.NewUnmeteredRangeFromPositioned(e.SupertypeDeclaration),
		},
	}
}

func (*IncompatibleSubtypeError) DocumentationLink() string {
	return "https://webassembly.github.io/gc/core/valid/matching.html"
}

// CyclicSupertypeError

type CyclicSupertypeError struct {
	Index ast.TypeIndex
	Name  string
	Chain []string
	ast.Range
}

var _ SemanticError = &CyclicSupertypeError{}
var _ errors.UserError = &CyclicSupertypeError{}
var _ errors.SecondaryError = &CyclicSupertypeError{}

func (*CyclicSupertypeError) isSemanticError() {}

func (*CyclicSupertypeError) IsUserError() {}

func (e *CyclicSupertypeError) Error() string {
	return fmt.Sprintf(
		"cyclic supertype declaration for type `%s`",
		typeDescription(e.Name, e.Index),
	)
}

func (e *CyclicSupertypeError) SecondaryError() string {
	if len(e.Chain) < 2 {
		return "the type is declared as its own supertype"
	}
	return fmt.Sprintf(
		"supertype chain: %s",
		strings.Join(e.Chain, " -> "),
	)
}

// SupertypeDepthLimitError

type SupertypeDepthLimitError struct {
	Index ast.TypeIndex
	Name  string
	Depth int
	Limit int
	ast.Range
}

var _ SemanticError = &SupertypeDepthLimitError{}
var _ errors.UserError = &SupertypeDepthLimitError{}
var _ errors.SecondaryError = &SupertypeDepthLimitError{}
var _ errors.HasDocumentationLink = &SupertypeDepthLimitError{}

func (*SupertypeDepthLimitError) isSemanticError() {}

func (*SupertypeDepthLimitError) IsUserError() {}

func (e *SupertypeDepthLimitError) Error() string {
	return fmt.Sprintf(
		"supertype chain of type `%s` is too deep",
		typeDescription(e.Name, e.Index),
	)
}

func (e *SupertypeDepthLimitError) SecondaryError() string {
	return fmt.Sprintf(
		"depth %d exceeds the limit of %d",
		e.Depth,
		e.Limit,
	)
}

func (*SupertypeDepthLimitError) DocumentationLink() string {
	return "https://webassembly.github.io/gc/core/appendix/implementation.html"
}

// SkippedDeclarationError

type SkippedDeclarationError struct {
	Index            ast.TypeIndex
	Name             string
	CauseIndex       ast.TypeIndex
	CauseName        string
	CauseDeclaration *ast.TypeDeclaration
	ast.Range
}

var _ SemanticError = &SkippedDeclarationError{}
var _ errors.UserError = &SkippedDeclarationError{}
var _ errors.SecondaryError = &SkippedDeclarationError{}
var _ errors.ErrorNotes = &SkippedDeclarationError{}

func (*SkippedDeclarationError) isSemanticError() {}

func (*SkippedDeclarationError) IsUserError() {}

func (e *SkippedDeclarationError) Error() string {
	return fmt.Sprintf(
		"type `%s` was skipped due to a prior error",
		typeDescription(e.Name, e.Index),
	)
}

func (e *SkippedDeclarationError) SecondaryError() string {
	return fmt.Sprintf(
		"depends on `%s`, which failed to check",
		typeDescription(e.CauseName, e.CauseIndex),
	)
}

func (e *SkippedDeclarationError) ErrorNotes() []errors.ErrorNote {
	if e.CauseDeclaration == nil {
		return nil
	}

	return []errors.ErrorNote{
		&FailedDeclarationNote{
			Range: ast.NewUnmeteredRangeFromPositioned(e.CauseDeclaration),
		},
	}
}

// FailedDeclarationNote

type FailedDeclarationNote struct {
	ast.Range
}

func (n FailedDeclarationNote) Message() string {
	return "the type that failed to check is declared here"
}

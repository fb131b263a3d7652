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

	"github.com/turbolent/prettier"

	"github.com/onflow/wasmtypes/common"
)

// RecGroup

// RecGroup is a group of type declarations which may refer to each other,
// e.g. `(rec (type $a ...) (type $b ...))`.
//
// A type declaration outside of a `rec` block forms an implicit group
// with just the one declaration
type RecGroup struct {
	Declarations []*TypeDeclaration `json:",omitempty"`
	Explicit     bool
	Range
}

func NewRecGroup(
	memoryGauge common.MemoryGauge,
	explicit bool,
	declarations []*TypeDeclaration,
	groupRange Range,
) *RecGroup {
	common.UseMemory(memoryGauge, common.RecGroupMemoryUsage)
	return &RecGroup{
		Declarations: declarations,
		Explicit:     explicit,
		Range:        groupRange,
	}
}

const recGroupKeywordDoc = prettier.Text("(rec")

func (g *RecGroup) Doc() prettier.Doc {
	if !g.Explicit && len(g.Declarations) == 1 {
		return g.Declarations[0].Doc()
	}

	if len(g.Declarations) == 0 {
		return prettier.Text("(rec)")
	}

	var inner prettier.Concat
	for _, declaration := range g.Declarations {
		inner = append(
			inner,
			prettier.Line{},
			declaration.Doc(),
		)
	}

	return prettier.Group{
		Doc: prettier.Concat{
			recGroupKeywordDoc,
			prettier.Indent{
				Doc: inner,
			},
			prettier.Text(")"),
		},
	}
}

func (g *RecGroup) String() string {
	return Prettier(g)
}

func (g *RecGroup) MarshalJSON() ([]byte, error) {
	type Alias RecGroup
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "RecGroup",
		Alias: (*Alias)(g),
	})
}

// TypeSection

// TypeSection is the sequence of all recursion groups of a module
type TypeSection struct {
	Groups []*RecGroup `json:",omitempty"`
	Range
}

func NewTypeSection(
	memoryGauge common.MemoryGauge,
	groups []*RecGroup,
	sectionRange Range,
) *TypeSection {
	common.UseMemory(memoryGauge, common.TypeSectionMemoryUsage)
	return &TypeSection{
		Groups: groups,
		Range:  sectionRange,
	}
}

// DeclarationCount returns the total number of type declarations,
// counting the declarations of all groups
func (s *TypeSection) DeclarationCount() int {
	var count int
	for _, group := range s.Groups {
		count += len(group.Declarations)
	}
	return count
}

func (s *TypeSection) Doc() prettier.Doc {
	var doc prettier.Concat
	for i, group := range s.Groups {
		if i > 0 {
			doc = append(doc, prettier.HardLine{})
		}
		doc = append(doc, group.Doc())
	}
	return doc
}

func (s *TypeSection) String() string {
	return Prettier(s)
}

func (s *TypeSection) MarshalJSON() ([]byte, error) {
	type Alias TypeSection
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "TypeSection",
		Alias: (*Alias)(s),
	})
}

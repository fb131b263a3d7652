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

// SubtypeClause

// SubtypeClause declares the subtyping behavior of a type declaration:
// an optional supertype, and whether the declared type is final,
// e.g. `sub final $super`.
//
// A declaration without a subtype clause is final and has no supertype
type SubtypeClause struct {
	IsFinal   bool
	Supertype TypeReference `json:",omitempty"`
	Range
}

func NewSubtypeClause(
	memoryGauge common.MemoryGauge,
	isFinal bool,
	supertype TypeReference,
	clauseRange Range,
) *SubtypeClause {
	common.UseMemory(memoryGauge, common.SubtypeClauseMemoryUsage)
	return &SubtypeClause{
		IsFinal:   isFinal,
		Supertype: supertype,
		Range:     clauseRange,
	}
}

func (c *SubtypeClause) MarshalJSON() ([]byte, error) {
	type Alias SubtypeClause
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "SubtypeClause",
		Alias: (*Alias)(c),
	})
}

// TypeDeclaration

// TypeDeclaration declares a type: a function, struct, or array type,
// optionally named, and optionally subtyping another type declaration,
// e.g. `(type $pair (sub $point (struct (field i32) (field i32))))`
type TypeDeclaration struct {
	Identifier *Identifier    `json:",omitempty"`
	Sub        *SubtypeClause `json:",omitempty"`
	Composite  CompositeType
	Range
}

func NewTypeDeclaration(
	memoryGauge common.MemoryGauge,
	identifier *Identifier,
	sub *SubtypeClause,
	composite CompositeType,
	declarationRange Range,
) *TypeDeclaration {
	common.UseMemory(memoryGauge, common.TypeDeclarationMemoryUsage)
	return &TypeDeclaration{
		Identifier: identifier,
		Sub:        sub,
		Composite:  composite,
		Range:      declarationRange,
	}
}

func (d *TypeDeclaration) CompositeKind() common.CompositeKind {
	return d.Composite.CompositeKind()
}

// IsFinal returns whether the declared type may not be subtyped
// by a later declaration
func (d *TypeDeclaration) IsFinal() bool {
	if d.Sub == nil {
		return true
	}
	return d.Sub.IsFinal
}

const typeDeclarationKeywordDoc = prettier.Text("(type")

const subtypeClauseKeywordDoc = prettier.Text("(sub")

const subtypeClauseFinalKeywordDoc = prettier.Text("final")

func (d *TypeDeclaration) Doc() prettier.Doc {
	inner := d.Composite.Doc()

	if d.Sub != nil {
		sub := prettier.Concat{
			subtypeClauseKeywordDoc,
		}
		if d.Sub.IsFinal {
			sub = append(
				sub,
				prettier.Space,
				subtypeClauseFinalKeywordDoc,
			)
		}
		if d.Sub.Supertype != nil {
			sub = append(
				sub,
				prettier.Space,
				d.Sub.Supertype.Doc(),
			)
		}
		inner = append(
			sub,
			prettier.Space,
			inner,
			prettier.Text(")"),
		)
	}

	doc := prettier.Concat{
		typeDeclarationKeywordDoc,
	}
	if d.Identifier != nil {
		doc = append(
			doc,
			prettier.Space,
			prettier.Text("$"+d.Identifier.Identifier),
		)
	}
	return prettier.Group{
		Doc: append(
			doc,
			prettier.Space,
			inner,
			prettier.Text(")"),
		),
	}
}

func (d *TypeDeclaration) String() string {
	return Prettier(d)
}

func (d *TypeDeclaration) MarshalJSON() ([]byte, error) {
	type Alias TypeDeclaration
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "TypeDeclaration",
		Alias: (*Alias)(d),
	})
}

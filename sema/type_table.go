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
	"github.com/onflow/wasmtypes/common/bimap"
)

// GroupInfo describes one recursion group of the type section:
// the contiguous index range [First, First+Count) of its declarations,
// whether the group was written with an explicit `rec` bracket,
// and, once assigned, its canonical form
type GroupInfo struct {
	Canonical *CanonicalGroup
	Index     int
	First     ast.TypeIndex
	Count     uint32
	Explicit  bool
}

// Contains returns true if the declaration with the given index
// is a member of the group
func (g *GroupInfo) Contains(index ast.TypeIndex) bool {
	return index >= g.First &&
		uint32(index-g.First) < g.Count
}

// TypeTable is the resolved form of a type section:
// all declarations in declaration order, their recursion groups,
// the symbolic name bindings, and per-declaration validity.
//
// The table is immutable once checking completes.
type TypeTable struct {
	Location common.Location
	defTypes []*DefType
	names    *bimap.BiMap[string, ast.TypeIndex]
	groups   []*GroupInfo
	valid    *bitset.BitSet
}

func NewTypeTable(
	memoryGauge common.MemoryGauge,
	location common.Location,
	declarationCount int,
	groupCount int,
) *TypeTable {
	common.UseMemory(memoryGauge, common.TypeTableMemoryUsage)

	return &TypeTable{
		Location: location,
		defTypes: make([]*DefType, 0, declarationCount),
		names:    bimap.NewBiMap[string, ast.TypeIndex](),
		groups:   make([]*GroupInfo, 0, groupCount),
		valid:    bitset.New(uint(declarationCount)),
	}
}

// Count returns the number of declarations in the table
func (t *TypeTable) Count() int {
	return len(t.defTypes)
}

// DefType returns the resolved declaration with the given index,
// or nil if the index is out of range
func (t *TypeTable) DefType(index ast.TypeIndex) *DefType {
	if int(index) >= len(t.defTypes) {
		return nil
	}
	return t.defTypes[index]
}

// DefTypes returns all resolved declarations, in declaration order
func (t *TypeTable) DefTypes() []*DefType {
	return t.defTypes
}

// ByName returns the resolved declaration bound to the given symbolic name
func (t *TypeTable) ByName(name string) (*DefType, bool) {
	index, ok := t.names.Get(name)
	if !ok {
		return nil, false
	}
	return t.defTypes[index], true
}

// NameOf returns the symbolic name bound to the given index, if any
func (t *TypeTable) NameOf(index ast.TypeIndex) (string, bool) {
	return t.names.GetInverse(index)
}

// Groups returns the recursion groups, in declaration order
func (t *TypeTable) Groups() []*GroupInfo {
	return t.groups
}

// GroupOf returns the recursion group containing the declaration
// with the given index, or nil if the index is out of range
func (t *TypeTable) GroupOf(index ast.TypeIndex) *GroupInfo {
	defType := t.DefType(index)
	if defType == nil {
		return nil
	}
	return t.groups[defType.GroupIndex]
}

// IsValid returns true if the declaration with the given index
// passed all checks
func (t *TypeTable) IsValid(index ast.TypeIndex) bool {
	return t.valid.Test(uint(index))
}

// Valid returns true if every declaration in the table passed all checks
func (t *TypeTable) Valid() bool {
	return t.valid.Count() == uint(len(t.defTypes))
}

// CanonicalTypeID returns the canonical identity of the declaration
// with the given index. The second result is false if the identity
// was never assigned, i.e. the declaration's group failed to check.
func (t *TypeTable) CanonicalTypeID(index ast.TypeIndex) (CanonicalTypeID, bool) {
	defType := t.DefType(index)
	if defType == nil || !defType.CanonicalID.Exists() {
		return CanonicalTypeID{}, false
	}
	return defType.CanonicalID, true
}

// TypesIdentical returns true if the declarations with the given indices
// are iso-recursively equivalent, i.e. share one canonical identity.
// Declarations without an assigned identity compare unequal to everything,
// including themselves.
func (t *TypeTable) TypesIdentical(a, b ast.TypeIndex) bool {
	aID, ok := t.CanonicalTypeID(a)
	if !ok {
		return false
	}
	bID, ok := t.CanonicalTypeID(b)
	if !ok {
		return false
	}
	return aID == bID
}

func (t *TypeTable) appendDefType(defType *DefType) {
	t.defTypes = append(t.defTypes, defType)
}

func (t *TypeTable) appendGroup(group *GroupInfo) {
	t.groups = append(t.groups, group)
}

func (t *TypeTable) bindName(name string, index ast.TypeIndex) {
	t.names.Insert(name, index)
}

func (t *TypeTable) nameIndex(name string) (ast.TypeIndex, bool) {
	return t.names.Get(name)
}

func (t *TypeTable) markValid(index ast.TypeIndex) {
	t.valid.Set(uint(index))
}

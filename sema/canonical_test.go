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
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/wasmtypes/ast"
	. "github.com/onflow/wasmtypes/test_utils/common_utils"
)

func TestCanonicalIdentity(t *testing.T) {

	t.Parallel()

	type identityTest struct {
		name      string
		section   *ast.TypeSection
		identical [][2]ast.TypeIndex
		distinct  [][2]ast.TypeIndex
	}

	tests := []identityTest{
		{
			name: "identical singletons",
			section: testSection(
				testSingleton(testDecl("a", testFunc(nil, nil))),
				testSingleton(testDecl("b", testFunc(nil, nil))),
			),
			identical: [][2]ast.TypeIndex{{0, 1}},
		},
		{
			name: "implicit and explicit singleton",
			section: testSection(
				testSingleton(testDecl("a", testStruct(testField(false, testI32())))),
				testGroup(testDecl("b", testStruct(testField(false, testI32())))),
			),
			identical: [][2]ast.TypeIndex{{0, 1}},
		},
		{
			name: "different arity",
			section: testSection(
				testSingleton(testDecl("a", testFunc(nil, nil))),
				testSingleton(testDecl("b", testFunc(
					[]ast.ValueType{testI32()},
					nil,
				))),
			),
			distinct: [][2]ast.TypeIndex{{0, 1}},
		},
		{
			name: "finality differs",
			section: testSection(
				testSingleton(testDecl("a", testFunc(nil, nil))),
				testSingleton(testOpenDecl("b", testFunc(nil, nil))),
			),
			distinct: [][2]ast.TypeIndex{{0, 1}},
		},
		{
			name: "supertype presence differs",
			section: testSection(
				testSingleton(testOpenDecl("a", testFunc(nil, nil))),
				testSingleton(testSubDecl("b", testNamed("a"), testFunc(nil, nil))),
				testSingleton(testOpenDecl("c", testFunc(nil, nil))),
			),
			identical: [][2]ast.TypeIndex{{0, 2}},
			distinct:  [][2]ast.TypeIndex{{0, 1}},
		},
		{
			name: "different supertypes",
			section: testSection(
				testSingleton(testOpenDecl("a", testFunc(nil, nil))),
				testSingleton(testSubDecl("b", testNamed("a"), testFunc(nil, nil))),
				testSingleton(testSubDecl("c", testNamed("a"), testFunc(nil, nil))),
				testSingleton(testSubDecl("d", testNamed("b"), testFunc(nil, nil))),
			),
			identical: [][2]ast.TypeIndex{{1, 2}},
			distinct:  [][2]ast.TypeIndex{{1, 3}},
		},
		{
			name: "member order matters",
			section: testSection(
				testGroup(
					testDecl("f1", testFunc(nil, nil)),
					testDecl("s1", testStruct()),
				),
				testGroup(
					testDecl("s2", testStruct()),
					testDecl("f2", testFunc(nil, nil)),
				),
			),
			distinct: [][2]ast.TypeIndex{{0, 3}, {1, 2}},
		},
		{
			name: "relative references make names irrelevant",
			section: testSection(
				testGroup(
					testDecl("x", testStruct(
						testField(false, testRef(testNamed("y"))),
					)),
					testDecl("y", testFunc(nil, nil)),
				),
				testGroup(
					testDecl("u", testStruct(
						testField(false, testRef(testNamed("v"))),
					)),
					testDecl("v", testFunc(nil, nil)),
				),
			),
			identical: [][2]ast.TypeIndex{{0, 2}, {1, 3}},
		},
		{
			name: "self reference is position invariant",
			section: testSection(
				testSingleton(testDecl("s", testStruct(
					testField(false, testRef(testNamed("s"))),
				))),
				testSingleton(testDecl("pad", testFunc(nil, nil))),
				testSingleton(testDecl("t", testStruct(
					testField(false, testRef(testNamed("t"))),
				))),
				testSingleton(testDecl("u", testStruct(
					testField(false, testRef(testIndexed(3))),
				))),
			),
			identical: [][2]ast.TypeIndex{{0, 2}, {0, 3}},
		},
		{
			name: "cross-group references are replaced by canonical identities",
			section: testSection(
				testSingleton(testDecl("a", testFunc(nil, nil))),
				testSingleton(testDecl("b", testStruct(
					testField(false, testRef(testNamed("a"))),
				))),
				testSingleton(testDecl("a2", testFunc(nil, nil))),
				testSingleton(testDecl("b2", testStruct(
					testField(false, testRef(testNamed("a2"))),
				))),
			),
			identical: [][2]ast.TypeIndex{{0, 2}, {1, 3}},
		},
		{
			name: "distinct cross-group targets",
			section: testSection(
				testSingleton(testDecl("a", testFunc(nil, nil))),
				testSingleton(testDecl("b", testStruct(
					testField(false, testRef(testNamed("a"))),
				))),
				testSingleton(testDecl("a2", testFunc(
					[]ast.ValueType{testI32()},
					nil,
				))),
				testSingleton(testDecl("b2", testStruct(
					testField(false, testRef(testNamed("a2"))),
				))),
			),
			distinct: [][2]ast.TypeIndex{{0, 2}, {1, 3}},
		},
		{
			name: "reference nullability matters",
			section: testSection(
				testSingleton(testDecl("a", testFunc(nil, nil))),
				testSingleton(testDecl("b", testStruct(
					testField(false, testRef(testIndexed(0))),
				))),
				testSingleton(testDecl("c", testStruct(
					testField(false, &ast.ReferenceType{
						Type: &ast.ConcreteHeapType{
							Reference: testIndexed(0),
						},
					}),
				))),
			),
			distinct: [][2]ast.TypeIndex{{1, 2}},
		},
	}

	test := func(test identityTest) {
		t.Run(test.name, func(t *testing.T) {

			t.Parallel()

			checker, err := testCheck(t, test.section)
			require.NoError(t, err)

			table := checker.Table

			for _, pair := range test.identical {
				assert.True(t,
					table.TypesIdentical(pair[0], pair[1]),
					"types %d and %d should be identical",
					pair[0],
					pair[1],
				)
			}

			for _, pair := range test.distinct {
				assert.False(t,
					table.TypesIdentical(pair[0], pair[1]),
					"types %d and %d should be distinct",
					pair[0],
					pair[1],
				)
			}
		})
	}

	for _, identityTest := range tests {
		test(identityTest)
	}
}

func TestCanonicalTypeID(t *testing.T) {

	t.Parallel()

	t.Run("unassigned", func(t *testing.T) {

		t.Parallel()

		var id CanonicalTypeID
		assert.False(t, id.Exists())
		assert.Equal(t, "unassigned", id.String())
		assert.Equal(t, "unassigned", id.TypeID())
	})

	t.Run("assigned", func(t *testing.T) {

		t.Parallel()

		section := testSection(
			testSingleton(testDecl("a", testFunc(nil, nil))),
		)

		checker, err := testCheck(t, section)
		require.NoError(t, err)

		id, ok := checker.Table.CanonicalTypeID(0)
		require.True(t, ok)
		assert.True(t, id.Exists())
		assert.Equal(t, uint32(1), id.Group.Size)
		assert.True(t, strings.HasSuffix(id.String(), "/1[0]"))

		// the type ID carries the full fingerprint,
		// the String form only an abbreviation
		typeID := id.TypeID()
		assert.True(t, strings.HasSuffix(typeID, "/1[0]"))
		assert.Len(t, typeID, 2*len(id.Group.Fingerprint)+len("/1[0]"))
	})
}

func TestCanonicalRegistrySharing(t *testing.T) {

	t.Parallel()

	registry := NewCanonicalRegistry()

	newSection := func() *ast.TypeSection {
		return testSection(
			testSingleton(testDecl("a", testFunc(nil, nil))),
			testSingleton(testDecl("b", testStruct(
				testField(false, testRef(testNamed("a"))),
			))),
		)
	}

	check := func() *TypeTable {
		checker, err := NewChecker(
			newSection(),
			TestLocation,
			nil,
			&Config{
				CanonicalRegistry: registry,
			},
		)
		require.NoError(t, err)
		require.NoError(t, checker.Check())
		return checker.Table
	}

	table1 := check()
	table2 := check()

	// both checkers resolved the same two groups,
	// so the registry interned each of them once
	assert.Equal(t, 2, registry.Size())

	for index := ast.TypeIndex(0); index < 2; index++ {
		id1, ok := table1.CanonicalTypeID(index)
		require.True(t, ok)
		id2, ok := table2.CanonicalTypeID(index)
		require.True(t, ok)

		assert.Same(t, id1.Group, id2.Group)
		assert.Equal(t, id1.Index, id2.Index)
	}
}

func TestCanonicalIdentityProperties(t *testing.T) {

	t.Parallel()

	properties := gopter.NewProperties(nil)

	genNumberKind := gen.OneConstOf(
		ast.NumberTypeKindI32,
		ast.NumberTypeKindI64,
		ast.NumberTypeKindF32,
		ast.NumberTypeKindF64,
	)

	genKinds := gen.SliceOf(genNumberKind)

	// genSmallKinds keeps the shape space small, so that shapes collide
	genSmallKinds := gen.SliceOfN(2, gen.OneConstOf(
		ast.NumberTypeKindI32,
		ast.NumberTypeKindI64,
	))

	numberFunc := func(paramKinds, resultKinds []ast.NumberTypeKind) *ast.FunctionType {
		parameters := make([]ast.ValueType, 0, len(paramKinds))
		for _, kind := range paramKinds {
			parameters = append(parameters, &ast.NumberType{Kind: kind})
		}
		results := make([]ast.ValueType, 0, len(resultKinds))
		for _, kind := range resultKinds {
			results = append(results, &ast.NumberType{Kind: kind})
		}
		return testFunc(parameters, results)
	}

	check := func(registry *CanonicalRegistry, section *ast.TypeSection) (*TypeTable, bool) {
		checker, err := NewChecker(
			section,
			TestLocation,
			nil,
			&Config{
				CanonicalRegistry: registry,
			},
		)
		if err != nil {
			return nil, false
		}
		if checker.Check() != nil {
			return nil, false
		}
		return checker.Table, true
	}

	properties.Property("equal shapes are assigned equal identities", prop.ForAll(
		func(paramKinds, resultKinds []ast.NumberTypeKind) bool {
			section := testSection(
				testSingleton(testDecl("a", numberFunc(paramKinds, resultKinds))),
				testSingleton(testDecl("b", numberFunc(paramKinds, resultKinds))),
			)

			table, ok := check(NewCanonicalRegistry(), section)
			return ok && table.TypesIdentical(0, 1)
		},
		genKinds,
		genKinds,
	))

	properties.Property("identity is position invariant", prop.ForAll(
		func(paramKinds []ast.NumberTypeKind, padding int) bool {
			registry := NewCanonicalRegistry()

			front := testSection(
				testSingleton(testDecl("a", numberFunc(paramKinds, nil))),
			)

			// the same declaration, shifted by padding groups
			// of a different kind
			groups := make([]*ast.RecGroup, 0, padding+1)
			for i := 0; i < padding; i++ {
				fields := make([]*ast.FieldType, 0, i+1)
				for j := 0; j <= i; j++ {
					fields = append(fields, testField(false, testI32()))
				}
				groups = append(groups,
					testSingleton(testDecl("", testStruct(fields...))),
				)
			}
			groups = append(groups,
				testSingleton(testDecl("a", numberFunc(paramKinds, nil))),
			)
			shifted := testSection(groups...)

			frontTable, ok := check(registry, front)
			if !ok {
				return false
			}
			shiftedTable, ok := check(registry, shifted)
			if !ok {
				return false
			}

			frontID, ok := frontTable.CanonicalTypeID(0)
			if !ok {
				return false
			}
			shiftedID, ok := shiftedTable.CanonicalTypeID(ast.TypeIndex(padding))
			if !ok {
				return false
			}

			return frontID.Group == shiftedID.Group &&
				frontID.Index == shiftedID.Index
		},
		genKinds,
		gen.IntRange(1, 3),
	))

	properties.Property("identity is symmetric", prop.ForAll(
		func(kindsA, kindsB []ast.NumberTypeKind) bool {
			section := testSection(
				testSingleton(testDecl("a", numberFunc(kindsA, nil))),
				testSingleton(testDecl("b", numberFunc(kindsB, nil))),
			)

			table, ok := check(NewCanonicalRegistry(), section)
			return ok &&
				table.TypesIdentical(0, 1) == table.TypesIdentical(1, 0)
		},
		genSmallKinds,
		genSmallKinds,
	))

	properties.Property("identity is transitive", prop.ForAll(
		func(kindsA, kindsB, kindsC []ast.NumberTypeKind) bool {
			section := testSection(
				testSingleton(testDecl("a", numberFunc(kindsA, nil))),
				testSingleton(testDecl("b", numberFunc(kindsB, nil))),
				testSingleton(testDecl("c", numberFunc(kindsC, nil))),
			)

			table, ok := check(NewCanonicalRegistry(), section)
			if !ok {
				return false
			}

			if table.TypesIdentical(0, 1) && table.TypesIdentical(1, 2) {
				return table.TypesIdentical(0, 2)
			}
			return true
		},
		genSmallKinds,
		genSmallKinds,
		genSmallKinds,
	))

	properties.Property("repeated runs produce the same fingerprint", prop.ForAll(
		func(paramKinds, resultKinds []ast.NumberTypeKind) bool {
			section := testSection(
				testSingleton(testDecl("a", numberFunc(paramKinds, resultKinds))),
			)

			// independent registries, so the fingerprints
			// are computed twice
			table1, ok := check(NewCanonicalRegistry(), section)
			if !ok {
				return false
			}
			table2, ok := check(NewCanonicalRegistry(), section)
			if !ok {
				return false
			}

			id1, ok := table1.CanonicalTypeID(0)
			if !ok {
				return false
			}
			id2, ok := table2.CanonicalTypeID(0)
			if !ok {
				return false
			}

			return id1.Group.Fingerprint == id2.Group.Fingerprint
		},
		genKinds,
		genKinds,
	))

	properties.TestingRun(t)
}

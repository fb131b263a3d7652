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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turbolent/prettier"
)

func TestFieldType_MarshalJSON(t *testing.T) {

	t.Parallel()

	field := &FieldType{
		Mutable: true,
		Type: &PackedType{
			Kind: PackedTypeKindI16,
			Range: Range{
				StartPos: Position{Offset: 5, Line: 2, Column: 5},
				EndPos:   Position{Offset: 7, Line: 2, Column: 7},
			},
		},
		Range: Range{
			StartPos: Position{Offset: 1, Line: 2, Column: 1},
			EndPos:   Position{Offset: 8, Line: 2, Column: 8},
		},
	}

	actual, err := json.Marshal(field)
	require.NoError(t, err)

	assert.JSONEq(t,
		// language=json
		`
        {
            "Type": "FieldType",
            "Mutable": true,
            "StorageType": {
                "Type": "PackedType",
                "Kind": "PackedTypeKindI16",
                "StartPos": {"Offset": 5, "Line": 2, "Column": 5},
                "EndPos": {"Offset": 7, "Line": 2, "Column": 7}
            },
            "StartPos": {"Offset": 1, "Line": 2, "Column": 1},
            "EndPos": {"Offset": 8, "Line": 2, "Column": 8}
        }
        `,
		string(actual),
	)
}

func TestFieldType_Doc(t *testing.T) {

	t.Parallel()

	t.Run("immutable", func(t *testing.T) {

		t.Parallel()

		field := &FieldType{
			Type: &NumberType{
				Kind: NumberTypeKindI32,
			},
		}

		assert.Equal(t,
			prettier.Text("i32"),
			field.Doc(),
		)

		assert.Equal(t,
			"i32",
			field.String(),
		)
	})

	t.Run("mutable", func(t *testing.T) {

		t.Parallel()

		field := &FieldType{
			Mutable: true,
			Type: &NumberType{
				Kind: NumberTypeKindI32,
			},
		}

		assert.Equal(t,
			prettier.Concat{
				prettier.Text("(mut"),
				prettier.Text(" "),
				prettier.Text("i32"),
				prettier.Text(")"),
			},
			field.Doc(),
		)

		assert.Equal(t,
			"(mut i32)",
			field.String(),
		)
	})
}

func TestFunctionType_MarshalJSON(t *testing.T) {

	t.Parallel()

	t.Run("empty", func(t *testing.T) {

		t.Parallel()

		ty := &FunctionType{
			Range: Range{
				StartPos: Position{Offset: 1, Line: 2, Column: 3},
				EndPos:   Position{Offset: 4, Line: 5, Column: 6},
			},
		}

		actual, err := json.Marshal(ty)
		require.NoError(t, err)

		assert.JSONEq(t,
			// language=json
			`
            {
                "Type": "FunctionType",
                "StartPos": {"Offset": 1, "Line": 2, "Column": 3},
                "EndPos": {"Offset": 4, "Line": 5, "Column": 6}
            }
            `,
			string(actual),
		)
	})

	t.Run("with parameters and results", func(t *testing.T) {

		t.Parallel()

		ty := &FunctionType{
			Parameters: []ValueType{
				&NumberType{
					Kind: NumberTypeKindI32,
					Range: Range{
						StartPos: Position{Offset: 13, Line: 1, Column: 13},
						EndPos:   Position{Offset: 15, Line: 1, Column: 15},
					},
				},
			},
			Results: []ValueType{
				&NumberType{
					Kind: NumberTypeKindI64,
					Range: Range{
						StartPos: Position{Offset: 26, Line: 1, Column: 26},
						EndPos:   Position{Offset: 28, Line: 1, Column: 28},
					},
				},
			},
			Range: Range{
				StartPos: Position{Offset: 6, Line: 1, Column: 6},
				EndPos:   Position{Offset: 30, Line: 1, Column: 30},
			},
		}

		actual, err := json.Marshal(ty)
		require.NoError(t, err)

		assert.JSONEq(t,
			// language=json
			`
            {
                "Type": "FunctionType",
                "Parameters": [
                    {
                        "Type": "NumberType",
                        "Kind": "NumberTypeKindI32",
                        "StartPos": {"Offset": 13, "Line": 1, "Column": 13},
                        "EndPos": {"Offset": 15, "Line": 1, "Column": 15}
                    }
                ],
                "Results": [
                    {
                        "Type": "NumberType",
                        "Kind": "NumberTypeKindI64",
                        "StartPos": {"Offset": 26, "Line": 1, "Column": 26},
                        "EndPos": {"Offset": 28, "Line": 1, "Column": 28}
                    }
                ],
                "StartPos": {"Offset": 6, "Line": 1, "Column": 6},
                "EndPos": {"Offset": 30, "Line": 1, "Column": 30}
            }
            `,
			string(actual),
		)
	})
}

func TestFunctionType_Doc(t *testing.T) {

	t.Parallel()

	t.Run("empty", func(t *testing.T) {

		t.Parallel()

		ty := &FunctionType{}

		assert.Equal(t,
			prettier.Text("(func)"),
			ty.Doc(),
		)
	})

	t.Run("with parameter and result", func(t *testing.T) {

		t.Parallel()

		ty := &FunctionType{
			Parameters: []ValueType{
				&NumberType{
					Kind: NumberTypeKindI32,
				},
			},
			Results: []ValueType{
				&NumberType{
					Kind: NumberTypeKindI64,
				},
			},
		}

		assert.Equal(t,
			prettier.Group{
				Doc: prettier.Concat{
					prettier.Text("(func"),
					prettier.Indent{
						Doc: prettier.Concat{
							prettier.Line{},
							prettier.Concat{
								prettier.Text("(param"),
								prettier.Text(" "),
								prettier.Text("i32"),
								prettier.Text(")"),
							},
							prettier.Line{},
							prettier.Concat{
								prettier.Text("(result"),
								prettier.Text(" "),
								prettier.Text("i64"),
								prettier.Text(")"),
							},
						},
					},
					prettier.Text(")"),
				},
			},
			ty.Doc(),
		)
	})
}

func TestFunctionType_String(t *testing.T) {

	t.Parallel()

	t.Run("empty", func(t *testing.T) {

		t.Parallel()

		ty := &FunctionType{}

		require.Equal(t,
			"(func)",
			ty.String(),
		)
	})

	t.Run("with parameters and result", func(t *testing.T) {

		t.Parallel()

		ty := &FunctionType{
			Parameters: []ValueType{
				&NumberType{
					Kind: NumberTypeKindI32,
				},
				&NumberType{
					Kind: NumberTypeKindI64,
				},
			},
			Results: []ValueType{
				&NumberType{
					Kind: NumberTypeKindF32,
				},
			},
		}

		require.Equal(t,
			"(func (param i32) (param i64) (result f32))",
			ty.String(),
		)
	})
}

func TestStructType_MarshalJSON(t *testing.T) {

	t.Parallel()

	t.Run("empty", func(t *testing.T) {

		t.Parallel()

		ty := &StructType{
			Range: Range{
				StartPos: Position{Offset: 1, Line: 2, Column: 3},
				EndPos:   Position{Offset: 4, Line: 5, Column: 6},
			},
		}

		actual, err := json.Marshal(ty)
		require.NoError(t, err)

		assert.JSONEq(t,
			// language=json
			`
            {
                "Type": "StructType",
                "StartPos": {"Offset": 1, "Line": 2, "Column": 3},
                "EndPos": {"Offset": 4, "Line": 5, "Column": 6}
            }
            `,
			string(actual),
		)
	})

	t.Run("with field", func(t *testing.T) {

		t.Parallel()

		ty := &StructType{
			Fields: []*FieldType{
				{
					Type: &NumberType{
						Kind: NumberTypeKindI32,
						Range: Range{
							StartPos: Position{Offset: 15, Line: 1, Column: 15},
							EndPos:   Position{Offset: 17, Line: 1, Column: 17},
						},
					},
					Range: Range{
						StartPos: Position{Offset: 15, Line: 1, Column: 15},
						EndPos:   Position{Offset: 17, Line: 1, Column: 17},
					},
				},
			},
			Range: Range{
				StartPos: Position{Offset: 6, Line: 1, Column: 6},
				EndPos:   Position{Offset: 19, Line: 1, Column: 19},
			},
		}

		actual, err := json.Marshal(ty)
		require.NoError(t, err)

		assert.JSONEq(t,
			// language=json
			`
            {
                "Type": "StructType",
                "Fields": [
                    {
                        "Type": "FieldType",
                        "Mutable": false,
                        "StorageType": {
                            "Type": "NumberType",
                            "Kind": "NumberTypeKindI32",
                            "StartPos": {"Offset": 15, "Line": 1, "Column": 15},
                            "EndPos": {"Offset": 17, "Line": 1, "Column": 17}
                        },
                        "StartPos": {"Offset": 15, "Line": 1, "Column": 15},
                        "EndPos": {"Offset": 17, "Line": 1, "Column": 17}
                    }
                ],
                "StartPos": {"Offset": 6, "Line": 1, "Column": 6},
                "EndPos": {"Offset": 19, "Line": 1, "Column": 19}
            }
            `,
			string(actual),
		)
	})
}

func TestStructType_Doc(t *testing.T) {

	t.Parallel()

	t.Run("empty", func(t *testing.T) {

		t.Parallel()

		ty := &StructType{}

		assert.Equal(t,
			prettier.Text("(struct)"),
			ty.Doc(),
		)
	})

	t.Run("with field", func(t *testing.T) {

		t.Parallel()

		ty := &StructType{
			Fields: []*FieldType{
				{
					Mutable: true,
					Type: &NumberType{
						Kind: NumberTypeKindI32,
					},
				},
			},
		}

		assert.Equal(t,
			prettier.Group{
				Doc: prettier.Concat{
					prettier.Text("(struct"),
					prettier.Indent{
						Doc: prettier.Concat{
							prettier.Line{},
							prettier.Concat{
								prettier.Text("(field"),
								prettier.Text(" "),
								prettier.Concat{
									prettier.Text("(mut"),
									prettier.Text(" "),
									prettier.Text("i32"),
									prettier.Text(")"),
								},
								prettier.Text(")"),
							},
						},
					},
					prettier.Text(")"),
				},
			},
			ty.Doc(),
		)
	})
}

func TestStructType_String(t *testing.T) {

	t.Parallel()

	ty := &StructType{
		Fields: []*FieldType{
			{
				Type: &NumberType{
					Kind: NumberTypeKindI32,
				},
			},
			{
				Mutable: true,
				Type: &NumberType{
					Kind: NumberTypeKindI64,
				},
			},
		},
	}

	require.Equal(t,
		"(struct (field i32) (field (mut i64)))",
		ty.String(),
	)
}

func TestArrayType_MarshalJSON(t *testing.T) {

	t.Parallel()

	ty := &ArrayType{
		Element: &FieldType{
			Mutable: true,
			Type: &NumberType{
				Kind: NumberTypeKindI64,
				Range: Range{
					StartPos: Position{Offset: 17, Line: 1, Column: 17},
					EndPos:   Position{Offset: 19, Line: 1, Column: 19},
				},
			},
			Range: Range{
				StartPos: Position{Offset: 12, Line: 1, Column: 12},
				EndPos:   Position{Offset: 20, Line: 1, Column: 20},
			},
		},
		Range: Range{
			StartPos: Position{Offset: 5, Line: 1, Column: 5},
			EndPos:   Position{Offset: 21, Line: 1, Column: 21},
		},
	}

	actual, err := json.Marshal(ty)
	require.NoError(t, err)

	assert.JSONEq(t,
		// language=json
		`
        {
            "Type": "ArrayType",
            "Element": {
                "Type": "FieldType",
                "Mutable": true,
                "StorageType": {
                    "Type": "NumberType",
                    "Kind": "NumberTypeKindI64",
                    "StartPos": {"Offset": 17, "Line": 1, "Column": 17},
                    "EndPos": {"Offset": 19, "Line": 1, "Column": 19}
                },
                "StartPos": {"Offset": 12, "Line": 1, "Column": 12},
                "EndPos": {"Offset": 20, "Line": 1, "Column": 20}
            },
            "StartPos": {"Offset": 5, "Line": 1, "Column": 5},
            "EndPos": {"Offset": 21, "Line": 1, "Column": 21}
        }
        `,
		string(actual),
	)
}

func TestArrayType_Doc(t *testing.T) {

	t.Parallel()

	ty := &ArrayType{
		Element: &FieldType{
			Type: &PackedType{
				Kind: PackedTypeKindI8,
			},
		},
	}

	assert.Equal(t,
		prettier.Concat{
			prettier.Text("(array"),
			prettier.Text(" "),
			prettier.Text("i8"),
			prettier.Text(")"),
		},
		ty.Doc(),
	)

	assert.Equal(t,
		"(array i8)",
		ty.String(),
	)
}

func TestArrayType_String(t *testing.T) {

	t.Parallel()

	ty := &ArrayType{
		Element: &FieldType{
			Mutable: true,
			Type: &NumberType{
				Kind: NumberTypeKindI32,
			},
		},
	}

	require.Equal(t,
		"(array (mut i32))",
		ty.String(),
	)
}

func TestSubtypeClause_MarshalJSON(t *testing.T) {

	t.Parallel()

	clause := &SubtypeClause{
		Supertype: &NamedTypeReference{
			Identifier: Identifier{
				Identifier: "point",
				Pos:        Position{Offset: 15, Line: 1, Column: 15},
			},
		},
		Range: Range{
			StartPos: Position{Offset: 10, Line: 1, Column: 10},
			EndPos:   Position{Offset: 30, Line: 1, Column: 30},
		},
	}

	actual, err := json.Marshal(clause)
	require.NoError(t, err)

	assert.JSONEq(t,
		// language=json
		`
        {
            "Type": "SubtypeClause",
            "IsFinal": false,
            "Supertype": {
                "Type": "NamedTypeReference",
                "Identifier": {
                    "Identifier": "point",
                    "StartPos": {"Offset": 15, "Line": 1, "Column": 15},
                    "EndPos": {"Offset": 19, "Line": 1, "Column": 19}
                },
                "StartPos": {"Offset": 15, "Line": 1, "Column": 15},
                "EndPos": {"Offset": 19, "Line": 1, "Column": 19}
            },
            "StartPos": {"Offset": 10, "Line": 1, "Column": 10},
            "EndPos": {"Offset": 30, "Line": 1, "Column": 30}
        }
        `,
		string(actual),
	)
}

func TestTypeDeclaration_MarshalJSON(t *testing.T) {

	t.Parallel()

	t.Run("anonymous", func(t *testing.T) {

		t.Parallel()

		decl := &TypeDeclaration{
			Composite: &StructType{
				Range: Range{
					StartPos: Position{Offset: 6, Line: 1, Column: 6},
					EndPos:   Position{Offset: 13, Line: 1, Column: 13},
				},
			},
			Range: Range{
				StartPos: Position{Offset: 0, Line: 1, Column: 0},
				EndPos:   Position{Offset: 14, Line: 1, Column: 14},
			},
		}

		actual, err := json.Marshal(decl)
		require.NoError(t, err)

		assert.JSONEq(t,
			// language=json
			`
            {
                "Type": "TypeDeclaration",
                "Composite": {
                    "Type": "StructType",
                    "StartPos": {"Offset": 6, "Line": 1, "Column": 6},
                    "EndPos": {"Offset": 13, "Line": 1, "Column": 13}
                },
                "StartPos": {"Offset": 0, "Line": 1, "Column": 0},
                "EndPos": {"Offset": 14, "Line": 1, "Column": 14}
            }
            `,
			string(actual),
		)
	})

	t.Run("named with subtype clause", func(t *testing.T) {

		t.Parallel()

		decl := &TypeDeclaration{
			Identifier: &Identifier{
				Identifier: "a",
				Pos:        Position{Offset: 7, Line: 1, Column: 7},
			},
			Sub: &SubtypeClause{
				IsFinal: true,
				Range: Range{
					StartPos: Position{Offset: 9, Line: 1, Column: 9},
					EndPos:   Position{Offset: 26, Line: 1, Column: 26},
				},
			},
			Composite: &FunctionType{
				Range: Range{
					StartPos: Position{Offset: 20, Line: 1, Column: 20},
					EndPos:   Position{Offset: 25, Line: 1, Column: 25},
				},
			},
			Range: Range{
				StartPos: Position{Offset: 0, Line: 1, Column: 0},
				EndPos:   Position{Offset: 27, Line: 1, Column: 27},
			},
		}

		actual, err := json.Marshal(decl)
		require.NoError(t, err)

		assert.JSONEq(t,
			// language=json
			`
            {
                "Type": "TypeDeclaration",
                "Identifier": {
                    "Identifier": "a",
                    "StartPos": {"Offset": 7, "Line": 1, "Column": 7},
                    "EndPos": {"Offset": 7, "Line": 1, "Column": 7}
                },
                "Sub": {
                    "Type": "SubtypeClause",
                    "IsFinal": true,
                    "StartPos": {"Offset": 9, "Line": 1, "Column": 9},
                    "EndPos": {"Offset": 26, "Line": 1, "Column": 26}
                },
                "Composite": {
                    "Type": "FunctionType",
                    "StartPos": {"Offset": 20, "Line": 1, "Column": 20},
                    "EndPos": {"Offset": 25, "Line": 1, "Column": 25}
                },
                "StartPos": {"Offset": 0, "Line": 1, "Column": 0},
                "EndPos": {"Offset": 27, "Line": 1, "Column": 27}
            }
            `,
			string(actual),
		)
	})
}

func TestTypeDeclaration_IsFinal(t *testing.T) {

	t.Parallel()

	t.Run("without subtype clause", func(t *testing.T) {

		t.Parallel()

		decl := &TypeDeclaration{
			Composite: &FunctionType{},
		}

		assert.True(t, decl.IsFinal())
	})

	t.Run("with open subtype clause", func(t *testing.T) {

		t.Parallel()

		decl := &TypeDeclaration{
			Sub:       &SubtypeClause{},
			Composite: &FunctionType{},
		}

		assert.False(t, decl.IsFinal())
	})

	t.Run("with final subtype clause", func(t *testing.T) {

		t.Parallel()

		decl := &TypeDeclaration{
			Sub: &SubtypeClause{
				IsFinal: true,
			},
			Composite: &FunctionType{},
		}

		assert.True(t, decl.IsFinal())
	})
}

func TestTypeDeclaration_Doc(t *testing.T) {

	t.Parallel()

	t.Run("anonymous", func(t *testing.T) {

		t.Parallel()

		decl := &TypeDeclaration{
			Composite: &StructType{},
		}

		assert.Equal(t,
			prettier.Group{
				Doc: prettier.Concat{
					prettier.Text("(type"),
					prettier.Text(" "),
					prettier.Text("(struct)"),
					prettier.Text(")"),
				},
			},
			decl.Doc(),
		)
	})

	t.Run("named with final subtype clause", func(t *testing.T) {

		t.Parallel()

		decl := &TypeDeclaration{
			Identifier: &Identifier{
				Identifier: "a",
			},
			Sub: &SubtypeClause{
				IsFinal: true,
			},
			Composite: &FunctionType{},
		}

		assert.Equal(t,
			prettier.Group{
				Doc: prettier.Concat{
					prettier.Text("(type"),
					prettier.Text(" "),
					prettier.Text("$a"),
					prettier.Text(" "),
					prettier.Concat{
						prettier.Text("(sub"),
						prettier.Text(" "),
						prettier.Text("final"),
						prettier.Text(" "),
						prettier.Text("(func)"),
						prettier.Text(")"),
					},
					prettier.Text(")"),
				},
			},
			decl.Doc(),
		)
	})
}

func TestTypeDeclaration_String(t *testing.T) {

	t.Parallel()

	t.Run("anonymous", func(t *testing.T) {

		t.Parallel()

		decl := &TypeDeclaration{
			Composite: &ArrayType{
				Element: &FieldType{
					Type: &NumberType{
						Kind: NumberTypeKindI32,
					},
				},
			},
		}

		require.Equal(t,
			"(type (array i32))",
			decl.String(),
		)
	})

	t.Run("named final", func(t *testing.T) {

		t.Parallel()

		decl := &TypeDeclaration{
			Identifier: &Identifier{
				Identifier: "a",
			},
			Sub: &SubtypeClause{
				IsFinal: true,
			},
			Composite: &FunctionType{},
		}

		require.Equal(t,
			"(type $a (sub final (func)))",
			decl.String(),
		)
	})

	t.Run("named with supertype", func(t *testing.T) {

		t.Parallel()

		decl := &TypeDeclaration{
			Identifier: &Identifier{
				Identifier: "b",
			},
			Sub: &SubtypeClause{
				Supertype: &NamedTypeReference{
					Identifier: Identifier{
						Identifier: "a",
					},
				},
			},
			Composite: &StructType{},
		}

		require.Equal(t,
			"(type $b (sub $a (struct)))",
			decl.String(),
		)
	})

	t.Run("with indexed supertype", func(t *testing.T) {

		t.Parallel()

		decl := &TypeDeclaration{
			Sub: &SubtypeClause{
				Supertype: &IndexedTypeReference{
					Index: 0,
				},
			},
			Composite: &FunctionType{},
		}

		require.Equal(t,
			"(type (sub 0 (func)))",
			decl.String(),
		)
	})
}

func TestRecGroup_MarshalJSON(t *testing.T) {

	t.Parallel()

	group := &RecGroup{
		Explicit: true,
		Declarations: []*TypeDeclaration{
			{
				Composite: &FunctionType{
					Range: Range{
						StartPos: Position{Offset: 11, Line: 1, Column: 11},
						EndPos:   Position{Offset: 16, Line: 1, Column: 16},
					},
				},
				Range: Range{
					StartPos: Position{Offset: 5, Line: 1, Column: 5},
					EndPos:   Position{Offset: 17, Line: 1, Column: 17},
				},
			},
		},
		Range: Range{
			StartPos: Position{Offset: 0, Line: 1, Column: 0},
			EndPos:   Position{Offset: 18, Line: 1, Column: 18},
		},
	}

	actual, err := json.Marshal(group)
	require.NoError(t, err)

	assert.JSONEq(t,
		// language=json
		`
        {
            "Type": "RecGroup",
            "Explicit": true,
            "Declarations": [
                {
                    "Type": "TypeDeclaration",
                    "Composite": {
                        "Type": "FunctionType",
                        "StartPos": {"Offset": 11, "Line": 1, "Column": 11},
                        "EndPos": {"Offset": 16, "Line": 1, "Column": 16}
                    },
                    "StartPos": {"Offset": 5, "Line": 1, "Column": 5},
                    "EndPos": {"Offset": 17, "Line": 1, "Column": 17}
                }
            ],
            "StartPos": {"Offset": 0, "Line": 1, "Column": 0},
            "EndPos": {"Offset": 18, "Line": 1, "Column": 18}
        }
        `,
		string(actual),
	)
}

func TestRecGroup_Doc(t *testing.T) {

	t.Parallel()

	t.Run("implicit singleton", func(t *testing.T) {

		t.Parallel()

		decl := &TypeDeclaration{
			Composite: &FunctionType{},
		}

		group := &RecGroup{
			Declarations: []*TypeDeclaration{decl},
		}

		assert.Equal(t,
			decl.Doc(),
			group.Doc(),
		)
	})

	t.Run("explicit empty", func(t *testing.T) {

		t.Parallel()

		group := &RecGroup{
			Explicit: true,
		}

		assert.Equal(t,
			prettier.Text("(rec)"),
			group.Doc(),
		)
	})

	t.Run("explicit singleton", func(t *testing.T) {

		t.Parallel()

		decl := &TypeDeclaration{
			Composite: &FunctionType{},
		}

		group := &RecGroup{
			Explicit:     true,
			Declarations: []*TypeDeclaration{decl},
		}

		assert.Equal(t,
			prettier.Group{
				Doc: prettier.Concat{
					prettier.Text("(rec"),
					prettier.Indent{
						Doc: prettier.Concat{
							prettier.Line{},
							decl.Doc(),
						},
					},
					prettier.Text(")"),
				},
			},
			group.Doc(),
		)
	})
}

func TestRecGroup_String(t *testing.T) {

	t.Parallel()

	group := &RecGroup{
		Explicit: true,
		Declarations: []*TypeDeclaration{
			{
				Identifier: &Identifier{
					Identifier: "a",
				},
				Composite: &FunctionType{},
			},
			{
				Identifier: &Identifier{
					Identifier: "b",
				},
				Composite: &StructType{},
			},
		},
	}

	require.Equal(t,
		"(rec (type $a (func)) (type $b (struct)))",
		group.String(),
	)
}

func TestTypeSection_MarshalJSON(t *testing.T) {

	t.Parallel()

	section := &TypeSection{
		Range: Range{
			StartPos: Position{Offset: 0, Line: 1, Column: 0},
			EndPos:   Position{Offset: 0, Line: 1, Column: 0},
		},
	}

	actual, err := json.Marshal(section)
	require.NoError(t, err)

	assert.JSONEq(t,
		// language=json
		`
        {
            "Type": "TypeSection",
            "StartPos": {"Offset": 0, "Line": 1, "Column": 0},
            "EndPos": {"Offset": 0, "Line": 1, "Column": 0}
        }
        `,
		string(actual),
	)
}

func TestTypeSection_DeclarationCount(t *testing.T) {

	t.Parallel()

	t.Run("empty", func(t *testing.T) {

		t.Parallel()

		section := &TypeSection{}

		assert.Equal(t, 0, section.DeclarationCount())
	})

	t.Run("multiple groups", func(t *testing.T) {

		t.Parallel()

		section := &TypeSection{
			Groups: []*RecGroup{
				{
					Declarations: []*TypeDeclaration{
						{
							Composite: &FunctionType{},
						},
					},
				},
				{
					Explicit: true,
					Declarations: []*TypeDeclaration{
						{
							Composite: &StructType{},
						},
						{
							Composite: &ArrayType{
								Element: &FieldType{
									Type: &NumberType{
										Kind: NumberTypeKindI32,
									},
								},
							},
						},
					},
				},
			},
		}

		assert.Equal(t, 3, section.DeclarationCount())
	})
}

func TestTypeSection_String(t *testing.T) {

	t.Parallel()

	section := &TypeSection{
		Groups: []*RecGroup{
			{
				Declarations: []*TypeDeclaration{
					{
						Identifier: &Identifier{
							Identifier: "a",
						},
						Composite: &FunctionType{},
					},
				},
			},
			{
				Declarations: []*TypeDeclaration{
					{
						Identifier: &Identifier{
							Identifier: "b",
						},
						Composite: &StructType{},
					},
				},
			},
		},
	}

	require.Equal(t,
		"(type $a (func))\n(type $b (struct))",
		section.String(),
	)
}

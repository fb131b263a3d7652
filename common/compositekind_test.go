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

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompositeKind_Name(t *testing.T) {

	t.Parallel()

	names := map[CompositeKind]string{
		CompositeKindFunction: "function",
		CompositeKindStruct:   "struct",
		CompositeKindArray:    "array",
	}

	for _, kind := range AllCompositeKinds {
		assert.Equal(t, names[kind], kind.Name())
	}

	assert.Panics(t, func() {
		_ = CompositeKindUnknown.Name()
	})
}

func TestCompositeKind_Keyword(t *testing.T) {

	t.Parallel()

	keywords := map[CompositeKind]string{
		CompositeKindFunction: "func",
		CompositeKindStruct:   "struct",
		CompositeKindArray:    "array",
	}

	for _, kind := range AllCompositeKinds {
		assert.Equal(t, keywords[kind], kind.Keyword())
	}
}

func TestCompositeKind_MarshalJSON(t *testing.T) {

	t.Parallel()

	actual, err := CompositeKindStruct.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t,
		`"CompositeKindStruct"`,
		string(actual),
	)
}

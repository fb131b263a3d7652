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
	"encoding/json"

	"github.com/onflow/wasmtypes/errors"
)

// CompositeKind is the kind of a composite type definition:
// a function, struct, or array type
type CompositeKind uint

const (
	CompositeKindUnknown CompositeKind = iota
	CompositeKindFunction
	CompositeKindStruct
	CompositeKindArray
)

var AllCompositeKinds = []CompositeKind{
	CompositeKindFunction,
	CompositeKindStruct,
	CompositeKindArray,
}

func (k CompositeKind) Name() string {
	switch k {
	case CompositeKindFunction:
		return "function"
	case CompositeKindStruct:
		return "struct"
	case CompositeKindArray:
		return "array"
	}

	panic(errors.NewUnreachableError())
}

func (k CompositeKind) Keyword() string {
	switch k {
	case CompositeKindFunction:
		return "func"
	case CompositeKindStruct:
		return "struct"
	case CompositeKindArray:
		return "array"
	}

	panic(errors.NewUnreachableError())
}

func (k CompositeKind) String() string {
	switch k {
	case CompositeKindUnknown:
		return "CompositeKindUnknown"
	case CompositeKindFunction:
		return "CompositeKindFunction"
	case CompositeKindStruct:
		return "CompositeKindStruct"
	case CompositeKindArray:
		return "CompositeKindArray"
	}

	panic(errors.NewUnreachableError())
}

func (k CompositeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

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

// Walk traverses the AST in depth-first order:
// it calls f for the given element,
// and then recursively for each of its child elements, in source order
func Walk(element HasPosition, f func(HasPosition)) {
	f(element)

	switch element := element.(type) {
	case *TypeSection:
		for _, group := range element.Groups {
			Walk(group, f)
		}

	case *RecGroup:
		for _, declaration := range element.Declarations {
			Walk(declaration, f)
		}

	case *TypeDeclaration:
		if element.Sub != nil {
			Walk(element.Sub, f)
		}
		Walk(element.Composite, f)

	case *SubtypeClause:
		if element.Supertype != nil {
			Walk(element.Supertype, f)
		}

	case *FunctionType:
		for _, parameter := range element.Parameters {
			Walk(parameter, f)
		}
		for _, result := range element.Results {
			Walk(result, f)
		}

	case *StructType:
		for _, field := range element.Fields {
			Walk(field, f)
		}

	case *ArrayType:
		Walk(element.Element, f)

	case *FieldType:
		Walk(element.Type, f)

	case *ReferenceType:
		Walk(element.Type, f)

	case *ConcreteHeapType:
		Walk(element.Reference, f)
	}
}

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
	"fmt"
)

// Location describes the origin of a type section,
// e.g. the path of the module it was loaded from.
//
// Locations are used as keys in maps and must be comparable.
type Location interface {
	fmt.Stringer
	// Description returns a human-readable form of the location,
	// used in error messages
	Description() string
}

// StringLocation is a Location of an arbitrary string, e.g. a module path
type StringLocation string

var _ Location = StringLocation("")

func NewStringLocation(gauge MemoryGauge, id string) StringLocation {
	UseMemory(gauge, NewRawStringMemoryUsage(len(id)))
	return StringLocation(id)
}

func (l StringLocation) String() string {
	return string(l)
}

func (l StringLocation) Description() string {
	return string(l)
}

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

// Config contains the checker configurations that are safe to be re-used
// across checkers. The zero value is usable.
type Config struct {
	// CanonicalRegistry interns canonical groups.
	// Sharing one registry across checkers makes structurally equal groups
	// from different type sections compare identical.
	// When nil, the checker creates its own registry.
	CanonicalRegistry *CanonicalRegistry
	// OnRecordTrace is triggered when a checking pass finishes
	OnRecordTrace OnRecordTraceFunc
	// ConcurrentGroupChecks is the number of goroutines used for
	// subtype validation. Values below 2 keep the check sequential.
	// Diagnostics are identical either way.
	ConcurrentGroupChecks int
	// ErrorShortCircuitingEnabled stops checking at the first error.
	// When checking stops early, no declaration is marked valid.
	ErrorShortCircuitingEnabled bool
}

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
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// OnRecordTraceFunc is a function that records a trace.
type OnRecordTraceFunc func(
	checker *Checker,
	operationName string,
	duration time.Duration,
	attrs []attribute.KeyValue,
)

const (
	tracingPassPrefix = "pass."

	tracingPassResolve      = tracingPassPrefix + "resolve"
	tracingPassPartition    = tracingPassPrefix + "partition"
	tracingPassCanonicalize = tracingPassPrefix + "canonicalize"
	tracingPassSubtype      = tracingPassPrefix + "subtype"
)

// runPass runs one checking pass, reporting its duration and attributes
// when tracing is enabled
func (checker *Checker) runPass(
	operationName string,
	pass func() []attribute.KeyValue,
) {
	onRecordTrace := checker.Config.OnRecordTrace
	if onRecordTrace == nil {
		pass()
		return
	}

	start := time.Now()
	attrs := pass()
	onRecordTrace(
		checker,
		operationName,
		time.Since(start),
		attrs,
	)
}

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
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/onflow/wasmtypes/common"
)

// GroupFingerprint is the canonical identity of a recursion group:
// a digest of the group's shape, with references into the group itself
// replaced by relative positions, and references to earlier groups
// replaced by their canonical identities.
//
// Two recursion groups have the same fingerprint if and only if
// they declare the same number of types, with the same structures,
// in the same order.
type GroupFingerprint [32]byte

func (f GroupFingerprint) String() string {
	return hex.EncodeToString(f[:8])
}

// CanonicalGroup is the canonical form of a recursion group.
// All recursion groups with the same fingerprint share one CanonicalGroup,
// interned in a CanonicalRegistry.
type CanonicalGroup struct {
	Fingerprint GroupFingerprint
	Size        uint32
}

func (g *CanonicalGroup) String() string {
	return fmt.Sprintf("%s/%d", g.Fingerprint, g.Size)
}

// CanonicalTypeID is the canonical identity of a declared type:
// a canonical group, and the position of the type within it.
//
// Two declared types are identical if and only if
// their canonical type IDs are equal.
type CanonicalTypeID struct {
	Group *CanonicalGroup
	Index uint32
}

// Exists returns true if the ID has been assigned,
// i.e. the declaration's group has been canonicalized
func (id CanonicalTypeID) Exists() bool {
	return id.Group != nil
}

func (id CanonicalTypeID) String() string {
	if !id.Exists() {
		return "unassigned"
	}
	return fmt.Sprintf("%s[%d]", id.Group, id.Index)
}

// TypeID returns a stable textual identity for the type,
// using the full group fingerprint.
// Two declared types have the same type ID if and only if they are identical
func (id CanonicalTypeID) TypeID() string {
	if !id.Exists() {
		return "unassigned"
	}
	return fmt.Sprintf(
		"%s/%d[%d]",
		hex.EncodeToString(id.Group.Fingerprint[:]),
		id.Group.Size,
		id.Index,
	)
}

// CanonicalRegistry interns canonical groups by fingerprint.
// A registry may be shared by multiple checkers, so that structurally
// equal groups from different type sections compare identical.
// It is safe for concurrent use.
type CanonicalRegistry struct {
	mutex  sync.Mutex
	groups map[GroupFingerprint]*CanonicalGroup
}

func NewCanonicalRegistry() *CanonicalRegistry {
	return &CanonicalRegistry{
		groups: map[GroupFingerprint]*CanonicalGroup{},
	}
}

// Intern returns the canonical group for the given fingerprint,
// creating it on first use
func (r *CanonicalRegistry) Intern(
	memoryGauge common.MemoryGauge,
	fingerprint GroupFingerprint,
	size uint32,
) *CanonicalGroup {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	group, ok := r.groups[fingerprint]
	if !ok {
		common.UseMemory(memoryGauge, common.CanonicalGroupMemoryUsage)
		group = &CanonicalGroup{
			Fingerprint: fingerprint,
			Size:        size,
		}
		r.groups[fingerprint] = group
	}
	return group
}

// Size returns the number of distinct canonical groups interned so far
func (r *CanonicalRegistry) Size() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return len(r.groups)
}

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
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/onflow/wasmtypes/ast"
	"github.com/onflow/wasmtypes/common/deps"
	"github.com/onflow/wasmtypes/errors"
)

// checkGroupsConcurrently checks the recursion groups on multiple
// goroutines.
//
// The groups are scheduled in waves over their dependency graph:
// a group is only checked after the state of every group it references
// has been applied, and the state of a wave is applied in declaration
// order before the next wave starts. Every check therefore observes
// exactly the state it would observe in declaration order.
func (checker *Checker) checkGroupsConcurrently(
	groups []*GroupInfo,
	results []*groupCheckResult,
	workers int,
) {
	nodes := make([]*deps.Node, len(groups))
	for i, group := range groups {
		nodes[i] = deps.NewNode(group, deps.NewMapNodeSet)
	}

	indegrees := make([]int, len(groups))

	for i, group := range groups {
		dependencies := checker.groupDependencies(group, nodes)
		nodes[i].SetDependencies(dependencies...)
		indegrees[i] = len(dependencies)
	}

	var wave []int
	for i, indegree := range indegrees {
		if indegree == 0 {
			wave = append(wave, i)
		}
	}

	for len(wave) > 0 {
		var g errgroup.Group
		g.SetLimit(workers)

		for _, groupIndex := range wave {
			g.Go(func() error {
				results[groupIndex] = checker.checkGroupSubtypes(groups[groupIndex])
				return nil
			})
		}

		// the tasks only collect results
		_ = g.Wait()

		for _, groupIndex := range wave {
			checker.applyGroupCheckState(results[groupIndex])
		}

		var next []int
		for _, groupIndex := range wave {
			err := nodes[groupIndex].ForEachDependent(func(dependent *deps.Node) error {
				dependentGroup := dependent.Value.(*GroupInfo)
				indegrees[dependentGroup.Index]--
				if indegrees[dependentGroup.Index] == 0 {
					next = append(next, dependentGroup.Index)
				}
				return nil
			})
			if err != nil {
				panic(errors.NewUnexpectedErrorFromCause(err))
			}
		}
		sort.Ints(next)
		wave = next
	}
}

// groupDependencies returns the nodes of the distinct earlier groups
// referenced by any member of the group. References to the group itself
// and illegal references are no scheduling constraints: forward and
// unknown references have already invalidated the whole group.
func (checker *Checker) groupDependencies(
	group *GroupInfo,
	nodes []*deps.Node,
) []*deps.Node {

	var dependencies []*deps.Node
	seen := map[int]struct{}{}

	for offset := uint32(0); offset < group.Count; offset++ {
		index := group.First + ast.TypeIndex(offset)

		for _, edge := range checker.references[index] {
			targetGroup := checker.Table.GroupOf(edge.target)
			if targetGroup == nil || targetGroup.Index >= group.Index {
				continue
			}

			if _, ok := seen[targetGroup.Index]; ok {
				continue
			}
			seen[targetGroup.Index] = struct{}{}

			dependencies = append(dependencies, nodes[targetGroup.Index])
		}
	}

	return dependencies
}

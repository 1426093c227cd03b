// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package depgraph implements C5, the Dependency Analyzer (spec.md §4.5):
// edges from each message to the local messages and enums its Named field
// types reference, followed by
// depth-first cycle detection over the finalized Symbol Table.
package depgraph

import (
	"strings"

	"github.com/truewebber/swift-protoparser-sub001/ast"
	"github.com/truewebber/swift-protoparser-sub001/reporter"
	"github.com/truewebber/swift-protoparser-sub001/resolve"
	"github.com/truewebber/swift-protoparser-sub001/symtab"
	"github.com/truewebber/swift-protoparser-sub001/verrors"
)

// BuildGraph walks every message registered in st.Symbols and, for each
// Named-type field (including a map field's Named value type), resolves
// the reference locally and records an edge via st.AddDependencyEdge.
// Imported types resolve to no edge: they are graph leaves (spec.md §4.5).
func BuildGraph(st *symtab.State, pkg string) {
	for _, fqn := range st.Symbols.Keys() {
		def, ok := st.Symbols.Lookup(fqn)
		if !ok || def.Kind != symtab.DefMessage {
			continue
		}
		scopes := ancestorScopes(fqn, pkg)
		for _, f := range def.Message.Fields {
			t := namedTypeOf(f.Type)
			if t == nil {
				continue
			}
			target, ok := resolve.ResolveLocal(st, t.Name, pkg, scopes)
			if !ok {
				continue
			}
			st.AddDependencyEdge(fqn, target)
		}
	}
}

// namedTypeOf returns the Named type a field's declared type ultimately
// references: itself if Kind == KindNamed, or its map value if that is
// Named. Map keys are always scalar (spec.md §4.3) and so never contribute
// an edge.
func namedTypeOf(t *ast.Type) *ast.Type {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case ast.KindNamed:
		return t
	case ast.KindMap:
		if t.MapValue != nil && t.MapValue.Kind == ast.KindNamed {
			return t.MapValue
		}
	}
	return nil
}

// ancestorScopes reconstructs the enclosing-message-scope list spec.md
// §4.2 step 4a needs, innermost first, for the message whose FQN and
// package are given. The innermost entry is the message itself, matching
// the coordinator's step 7 scope push happening before a message's own
// fields are resolved.
func ancestorScopes(fqn, pkg string) []string {
	nested := fqn
	if pkg != "" {
		nested = strings.TrimPrefix(fqn, pkg+".")
	}
	parts := strings.Split(nested, ".")
	scopes := make([]string, len(parts))
	for i := range parts {
		depth := len(parts) - i
		suffix := strings.Join(parts[:depth], ".")
		if pkg != "" {
			scopes[i] = pkg + "." + suffix
		} else {
			scopes[i] = suffix
		}
	}
	return scopes
}

// DetectCycles runs the depth-first traversal of spec.md §4.5 rooted at
// every Symbol Table key in insertion order, reporting the first cycle
// found via h. It returns after the first reported cycle if h chooses to
// stop (reporter.Handler's fail-fast contract), or after exhausting every
// root otherwise.
func DetectCycles(h *reporter.Handler, st *symtab.State) error {
	visited := map[string]bool{}
	onStack := map[string]bool{}
	var stack []string

	var visit func(node string) error
	visit = func(node string) error {
		if visited[node] {
			return nil
		}
		if onStack[node] {
			path := cyclePath(stack, node)
			return h.HandleErrorf(ast.SourcePos{}, "%w", &verrors.CyclicDependency{Path: path})
		}
		onStack[node] = true
		stack = append(stack, node)
		for _, next := range st.Deps[node] {
			if err := visit(next); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		onStack[node] = false
		visited[node] = true
		return nil
	}

	for _, root := range st.Symbols.Keys() {
		if err := visit(root); err != nil {
			return err
		}
	}
	return nil
}

// cyclePath returns the ordered FQN list from revisited's position on
// stack through the end of stack, with revisited appended again at the
// end, exactly as spec.md §4.5 defines a reported cycle's path.
func cyclePath(stack []string, revisited string) []string {
	start := 0
	for i, n := range stack {
		if n == revisited {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	path = append(path, stack[start:]...)
	path = append(path, revisited)
	return path
}

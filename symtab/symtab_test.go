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

package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truewebber/swift-protoparser-sub001/ast"
)

func TestSymbolTableDefineAndLookup(t *testing.T) {
	t.Parallel()

	st := NewSymbolTable()
	m := &ast.Message{Name: "Foo"}

	_, ok := st.Define("pkg.Foo", &Definition{Kind: DefMessage, FQN: "pkg.Foo", Message: m})
	require.True(t, ok)

	def, found := st.Lookup("pkg.Foo")
	require.True(t, found)
	assert.Equal(t, DefMessage, def.Kind)
	assert.Same(t, m, def.Message)

	assert.True(t, st.Has("pkg.Foo"))
	assert.False(t, st.Has("pkg.Bar"))
}

func TestSymbolTableDuplicateDefine(t *testing.T) {
	t.Parallel()

	st := NewSymbolTable()
	first := &Definition{Kind: DefMessage, FQN: "pkg.Foo", Pos: ast.SourcePos{Line: 1}}
	_, ok := st.Define("pkg.Foo", first)
	require.True(t, ok)

	existing, ok := st.Define("pkg.Foo", &Definition{Kind: DefMessage, FQN: "pkg.Foo", Pos: ast.SourcePos{Line: 5}})
	assert.False(t, ok)
	require.NotNil(t, existing)
	assert.Equal(t, 1, existing.Pos.Line)
}

func TestSymbolTableKeysPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	st := NewSymbolTable()
	order := []string{"z.Last", "a.First", "m.Middle"}
	for _, fqn := range order {
		_, ok := st.Define(fqn, &Definition{Kind: DefMessage, FQN: fqn})
		require.True(t, ok)
	}
	assert.Equal(t, order, st.Keys())
}

func TestSymbolTableLookupPrefix(t *testing.T) {
	t.Parallel()

	st := NewSymbolTable()
	for _, fqn := range []string{"foo.bar.A", "foo.bar.B", "foo.baz.C", "other.D"} {
		_, ok := st.Define(fqn, &Definition{Kind: DefMessage, FQN: fqn})
		require.True(t, ok)
	}
	matches := st.LookupPrefix("foo.bar")
	assert.Len(t, matches, 2)
}

func TestStateScopeStack(t *testing.T) {
	t.Parallel()

	st := NewState("test.proto", nil)
	_, ok := st.CurrentScope()
	assert.False(t, ok)
	assert.Empty(t, st.EnclosingFQNs())

	st.PushScope("pkg.Outer", &ast.Message{Name: "Outer"})
	st.PushScope("pkg.Outer.Inner", &ast.Message{Name: "Inner"})

	scope, ok := st.CurrentScope()
	require.True(t, ok)
	assert.Equal(t, "pkg.Outer.Inner", scope.FQN)

	assert.Equal(t, []string{"pkg.Outer.Inner", "pkg.Outer"}, st.EnclosingFQNs())

	st.PopScope()
	scope, ok = st.CurrentScope()
	require.True(t, ok)
	assert.Equal(t, "pkg.Outer", scope.FQN)

	st.PopScope()
	_, ok = st.CurrentScope()
	assert.False(t, ok)
}

func TestStateAddDependencyEdgeDedups(t *testing.T) {
	t.Parallel()

	st := NewState("test.proto", nil)
	st.AddDependencyEdge("A", "B")
	st.AddDependencyEdge("A", "B")
	st.AddDependencyEdge("A", "C")

	assert.Equal(t, []string{"B", "C"}, st.Deps["A"])
}

func TestStateReset(t *testing.T) {
	t.Parallel()

	st := NewState("a.proto", ImportedTypes{"Empty": "google/protobuf/empty.proto"})
	st.Package = "pkg"
	_, ok := st.Symbols.Define("pkg.Foo", &Definition{Kind: DefMessage, FQN: "pkg.Foo"})
	require.True(t, ok)
	st.PushScope("pkg.Foo", &ast.Message{Name: "Foo"})
	st.AddDependencyEdge("pkg.Foo", "pkg.Bar")

	st.Reset("b.proto", nil)

	assert.Equal(t, "b.proto", st.FileName)
	assert.Equal(t, "", st.Package)
	assert.False(t, st.Symbols.Has("pkg.Foo"))
	_, ok = st.CurrentScope()
	assert.False(t, ok)
	assert.Empty(t, st.Deps)
	assert.NotNil(t, st.Imported)
}

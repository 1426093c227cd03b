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

package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truewebber/swift-protoparser-sub001/symtab"
	"github.com/truewebber/swift-protoparser-sub001/verrors"
)

func TestResolveLeadingDot(t *testing.T) {
	t.Parallel()
	st := symtab.NewState("test.proto", nil)
	_, ok := st.Symbols.Define("foo.Bar", &symtab.Definition{Kind: symtab.DefMessage, FQN: "foo.Bar"})
	require.True(t, ok)

	res, err := Resolve(st, ".foo.Bar", "foo", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "foo.Bar", res.FQN)

	_, err = Resolve(st, ".foo.Missing", "foo", nil, "")
	require.Error(t, err)
	var undef *verrors.UndefinedType
	assert.ErrorAs(t, err, &undef)
}

func TestResolveQualifiedCrossPackage(t *testing.T) {
	t.Parallel()
	st := symtab.NewState("test.proto", symtab.ImportedTypes{"Empty": "google/protobuf/empty.proto"})
	st.Package = "mattis.dev.v1"

	res, err := Resolve(st, "google.protobuf.Empty", st.Package, nil, "")
	require.NoError(t, err)
	assert.True(t, res.FromImport)
	assert.Equal(t, "google.protobuf.Empty", res.FQN)
	assert.Equal(t, ".google.protobuf.Empty", Canonical("google.protobuf.Empty", res.FQN))
}

func TestResolveQualifiedLocalPackagePrefix(t *testing.T) {
	t.Parallel()
	st := symtab.NewState("test.proto", nil)
	st.Package = "mattis.dev.v1"
	for _, fqn := range []string{"mattis.dev.v1.Outer", "mattis.dev.v1.Outer.Inner"} {
		_, ok := st.Symbols.Define(fqn, &symtab.Definition{Kind: symtab.DefMessage, FQN: fqn})
		require.True(t, ok)
	}

	res, err := Resolve(st, "Outer.Inner", st.Package, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "mattis.dev.v1.Outer.Inner", res.FQN)
}

func TestResolveBareSearchOrder(t *testing.T) {
	t.Parallel()
	st := symtab.NewState("test.proto", symtab.ImportedTypes{"Leaf": "other.proto"})
	st.Package = "pkg"
	for _, fqn := range []string{"pkg.Scope.Leaf", "pkg.Leaf", "Leaf"} {
		_, ok := st.Symbols.Define(fqn, &symtab.Definition{Kind: symtab.DefMessage, FQN: fqn})
		require.True(t, ok)
	}

	// Innermost scope wins over package and root.
	res, err := Resolve(st, "Leaf", st.Package, []string{"pkg.Scope"}, "")
	require.NoError(t, err)
	assert.Equal(t, "pkg.Scope.Leaf", res.FQN)

	// Without a matching scope, package wins over root.
	res, err = Resolve(st, "Leaf", st.Package, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "pkg.Leaf", res.FQN)
}

func TestResolveBareFallsBackToImport(t *testing.T) {
	t.Parallel()
	st := symtab.NewState("test.proto", symtab.ImportedTypes{"Imported": "dep.proto"})
	st.Package = "pkg"

	res, err := Resolve(st, "Imported", st.Package, nil, "")
	require.NoError(t, err)
	assert.True(t, res.FromImport)
	assert.Equal(t, "Imported", res.FQN)
}

func TestResolveUndefined(t *testing.T) {
	t.Parallel()
	st := symtab.NewState("test.proto", nil)
	_, err := Resolve(st, "Nope", "", nil, "message Foo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nope")
	assert.Contains(t, err.Error(), "message Foo")
}

func TestCanonicalForms(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".pkg.Foo", Canonical(".pkg.Foo", "pkg.Foo"))
	assert.Equal(t, ".pkg.Foo", Canonical("Foo", "pkg.Foo"))
	assert.Equal(t, ".google.protobuf.Empty", Canonical("google.protobuf.Empty", "google.protobuf.Empty"))
}

func TestResolveLocalSkipsImports(t *testing.T) {
	t.Parallel()
	st := symtab.NewState("test.proto", symtab.ImportedTypes{"Empty": "google/protobuf/empty.proto"})
	st.Package = "pkg"

	_, ok := ResolveLocal(st, "google.protobuf.Empty", st.Package, nil)
	assert.False(t, ok)

	_, ok = st.Symbols.Define("pkg.Local", &symtab.Definition{Kind: symtab.DefMessage, FQN: "pkg.Local"})
	require.True(t, ok)
	fqn, ok := ResolveLocal(st, "Local", st.Package, nil)
	require.True(t, ok)
	assert.Equal(t, "pkg.Local", fqn)
}

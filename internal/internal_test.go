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

package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldNumberInRange(t *testing.T) {
	t.Parallel()

	assert.True(t, FieldNumberInRange(1))
	assert.True(t, FieldNumberInRange(536_870_911))
	assert.True(t, FieldNumberInRange(18_999))
	assert.True(t, FieldNumberInRange(20_000))
	assert.False(t, FieldNumberInRange(0))
	assert.False(t, FieldNumberInRange(536_870_912))
	assert.False(t, FieldNumberInRange(19_000))
	assert.False(t, FieldNumberInRange(19_999))
}

func TestIsFieldName(t *testing.T) {
	t.Parallel()

	assert.True(t, IsFieldName("foo_bar"))
	assert.True(t, IsFieldName("_foo"))
	assert.False(t, IsFieldName(""))
	assert.False(t, IsFieldName("Foo"))
	assert.False(t, IsFieldName("1foo"))
	assert.False(t, IsFieldName("foo-bar"))
}

func TestIsUpperCamelName(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUpperCamelName("Foo"))
	assert.True(t, IsUpperCamelName("FooBar2"))
	assert.False(t, IsUpperCamelName("foo"))
	assert.False(t, IsUpperCamelName(""))
}

func TestIsScreamingSnakeCase(t *testing.T) {
	t.Parallel()

	assert.True(t, IsScreamingSnakeCase("FOO_BAR"))
	assert.True(t, IsScreamingSnakeCase("FOO_BAR_BAZ"))
	assert.False(t, IsScreamingSnakeCase("FOO"))
	assert.False(t, IsScreamingSnakeCase("M"))
	assert.False(t, IsScreamingSnakeCase("Foo"))
	assert.False(t, IsScreamingSnakeCase("123"))
	assert.False(t, IsScreamingSnakeCase(""))
}

func TestIsPackageComponent(t *testing.T) {
	t.Parallel()

	assert.True(t, IsPackageComponent("foo_bar2"))
	assert.False(t, IsPackageComponent("Foo"))
	assert.False(t, IsPackageComponent("2foo"))
	assert.False(t, IsPackageComponent(""))
}

func TestIsEnumValueName(t *testing.T) {
	t.Parallel()

	assert.True(t, IsEnumValueName("FOO_BAR"))
	assert.True(t, IsEnumValueName("_FOO"))
	assert.False(t, IsEnumValueName("Foo"))
	assert.False(t, IsEnumValueName("foo"))
}

func TestIsMethodName(t *testing.T) {
	t.Parallel()

	assert.True(t, IsMethodName("Get"))
	assert.True(t, IsMethodName("get"))
	assert.False(t, IsMethodName("1Get"))
}

func TestJSONName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "fooBar", JSONName("foo_bar"))
	assert.Equal(t, "foo", JSONName("foo"))
	assert.Equal(t, "fooBarBaz", JSONName("foo_bar_baz"))
}

func TestCapitalizeFirst(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Metadata", CapitalizeFirst("metadata"))
	assert.Equal(t, "Metadata", CapitalizeFirst("Metadata"))
	assert.Equal(t, "", CapitalizeFirst(""))
}

func TestPackableAndMapKeyScalars(t *testing.T) {
	t.Parallel()

	assert.True(t, PackableScalars["int32"])
	assert.False(t, PackableScalars["string"])
	assert.False(t, PackableScalars["bytes"])

	assert.True(t, MapKeyScalars["string"])
	assert.True(t, MapKeyScalars["int64"])
	assert.False(t, MapKeyScalars["float"])
	assert.False(t, MapKeyScalars["double"])
	assert.False(t, MapKeyScalars["bytes"])
}

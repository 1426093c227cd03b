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

package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truewebber/swift-protoparser-sub001/ast"
	"github.com/truewebber/swift-protoparser-sub001/reporter"
	"github.com/truewebber/swift-protoparser-sub001/symtab"
	"github.com/truewebber/swift-protoparser-sub001/verrors"
)

func TestValidateKnownOption(t *testing.T) {
	t.Parallel()
	st := symtab.NewState("test.proto", nil)
	opts := []*ast.Option{{Name: "deprecated", Value: &ast.OptionValue{Kind: ast.ValBool, Bool: true}}}
	require.NoError(t, Validate(reporter.NewHandler(nil, nil), st, TargetMessage, opts))
}

func TestValidateUnknownOption(t *testing.T) {
	t.Parallel()
	st := symtab.NewState("test.proto", nil)
	opts := []*ast.Option{{Name: "not_a_real_option", Value: &ast.OptionValue{Kind: ast.ValBool, Bool: true}}}
	err := Validate(reporter.NewHandler(nil, nil), st, TargetMessage, opts)
	require.Error(t, err)
	var unk *verrors.UnknownOption
	assert.ErrorAs(t, err, &unk)
}

func TestValidateWrongShape(t *testing.T) {
	t.Parallel()
	st := symtab.NewState("test.proto", nil)
	opts := []*ast.Option{{Name: "deprecated", Value: &ast.OptionValue{Kind: ast.ValString, Str: "yes"}}}
	err := Validate(reporter.NewHandler(nil, nil), st, TargetMessage, opts)
	require.Error(t, err)
	var invVal *verrors.InvalidOptionValue
	assert.ErrorAs(t, err, &invVal)
}

func TestValidateIdentifierOptionMustBeRecognized(t *testing.T) {
	t.Parallel()
	st := symtab.NewState("test.proto", nil)
	opts := []*ast.Option{{Name: "optimize_for", Value: &ast.OptionValue{Kind: ast.ValIdentifier, Ident: "NOT_A_MODE"}}}
	err := Validate(reporter.NewHandler(nil, nil), st, TargetFile, opts)
	require.Error(t, err)

	opts = []*ast.Option{{Name: "optimize_for", Value: &ast.OptionValue{Kind: ast.ValIdentifier, Ident: "CODE_SIZE"}}}
	require.NoError(t, Validate(reporter.NewHandler(nil, nil), st, TargetFile, opts))
}

func TestValidateDuplicateOption(t *testing.T) {
	t.Parallel()
	st := symtab.NewState("test.proto", nil)
	opts := []*ast.Option{
		{Name: "deprecated", Value: &ast.OptionValue{Kind: ast.ValBool, Bool: true}},
		{Name: "deprecated", Value: &ast.OptionValue{Kind: ast.ValBool, Bool: false}},
	}
	err := Validate(reporter.NewHandler(nil, nil), st, TargetMessage, opts)
	require.Error(t, err)
	var dup *verrors.DuplicateOption
	assert.ErrorAs(t, err, &dup)
}

func TestValidateCustomOptionSyntacticCheck(t *testing.T) {
	t.Parallel()
	st := symtab.NewState("test.proto", nil)
	opts := []*ast.Option{{
		Name:      "(my.pkg.ext)",
		Custom:    true,
		PathParts: []string{"my.pkg.ext"},
		Value:     &ast.OptionValue{Kind: ast.ValString, Str: "v"},
	}}
	require.NoError(t, Validate(reporter.NewHandler(nil, nil), st, TargetField, opts))
}

func TestValidateCustomOptionBadIdentifier(t *testing.T) {
	t.Parallel()
	st := symtab.NewState("test.proto", nil)
	opts := []*ast.Option{{
		Name:      "(1bad)",
		Custom:    true,
		PathParts: []string{"1bad"},
		Value:     &ast.OptionValue{Kind: ast.ValString, Str: "v"},
	}}
	err := Validate(reporter.NewHandler(nil, nil), st, TargetField, opts)
	require.Error(t, err)
	var nameErr *verrors.InvalidOptionName
	assert.ErrorAs(t, err, &nameErr)
}

func TestValidateCustomOptionKnownExtensionTypeChecked(t *testing.T) {
	t.Parallel()
	st := symtab.NewState("test.proto", nil)
	_, ok := st.Symbols.Define("my_ext", &symtab.Definition{Kind: symtab.DefMessage, FQN: "my_ext"})
	require.True(t, ok)

	badValue := &ast.Option{
		Name:      "(my_ext)",
		Custom:    true,
		PathParts: []string{"my_ext"},
		Value:     &ast.OptionValue{Kind: ast.ValString, Str: "not a message literal"},
	}
	err := Validate(reporter.NewHandler(nil, nil), st, TargetField, []*ast.Option{badValue})
	require.Error(t, err)
	var invVal *verrors.InvalidOptionValue
	assert.ErrorAs(t, err, &invVal)

	goodValue := &ast.Option{
		Name:      "(my_ext)",
		Custom:    true,
		PathParts: []string{"my_ext"},
		Value:     &ast.OptionValue{Kind: ast.ValMap, MapKeys: []string{"field"}, MapValues: []*ast.OptionValue{{Kind: ast.ValString, Str: "v"}}},
	}
	require.NoError(t, Validate(reporter.NewHandler(nil, nil), st, TargetField, []*ast.Option{goodValue}))
}

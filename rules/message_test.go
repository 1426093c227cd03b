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

package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truewebber/swift-protoparser-sub001/ast"
	"github.com/truewebber/swift-protoparser-sub001/verrors"
)

func TestValidateMessageNameRules(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateMessageName(newHandler(), &ast.Message{Name: "Good"}))

	err := ValidateMessageName(newHandler(), &ast.Message{Name: "bad"})
	require.Error(t, err)
	var nameErr *verrors.InvalidMessageName
	assert.ErrorAs(t, err, &nameErr)

	err = ValidateMessageName(newHandler(), &ast.Message{Name: "ALL_CAPS"})
	require.Error(t, err)
	assert.ErrorAs(t, err, &nameErr)
}

func TestValidateMessageReservedOverlap(t *testing.T) {
	t.Parallel()
	m := &ast.Message{
		Name: "M",
		Reserved: []*ast.ReservedRange{
			{Start: 1, End: 5},
			{Start: 4, End: 8},
		},
	}
	err := ValidateMessage(newHandler(), m)
	require.Error(t, err)
}

func TestValidateMessageReservedBadRange(t *testing.T) {
	t.Parallel()
	m := &ast.Message{Name: "M", Reserved: []*ast.ReservedRange{{Start: 5, End: 1}}}
	err := ValidateMessage(newHandler(), m)
	require.Error(t, err)
}

func TestValidateMessageDuplicateReservedName(t *testing.T) {
	t.Parallel()
	m := &ast.Message{Name: "M", ReservedNames: []*ast.ReservedName{{Name: "old"}, {Name: "old"}}}
	err := ValidateMessage(newHandler(), m)
	require.Error(t, err)
}

func TestValidateMessageNestedNameUniqueness(t *testing.T) {
	t.Parallel()
	m := &ast.Message{
		Name: "M",
		Messages: []*ast.Message{
			{Name: "Inner"},
			{Name: "Inner"},
		},
	}
	err := ValidateMessage(newHandler(), m)
	require.Error(t, err)
	var dup *verrors.DuplicateNestedTypeName
	assert.ErrorAs(t, err, &dup)
}

func TestValidateMessageNestedNameUniquenessAcrossMessageAndEnum(t *testing.T) {
	t.Parallel()
	m := &ast.Message{
		Name:     "M",
		Messages: []*ast.Message{{Name: "Shared"}},
		Enums:    []*ast.Enum{{Name: "Shared", Values: []*ast.EnumValue{{Name: "X", Number: 0}}}},
	}
	err := ValidateMessage(newHandler(), m)
	require.Error(t, err)
	var dup *verrors.DuplicateNestedTypeName
	assert.ErrorAs(t, err, &dup)
}

func TestValidateMessageEmptyOneof(t *testing.T) {
	t.Parallel()
	m := &ast.Message{
		Name:   "M",
		Oneofs: []*ast.Oneof{{Name: "choice"}},
	}
	err := ValidateMessage(newHandler(), m)
	require.Error(t, err)
	var empty *verrors.EmptyOneof
	assert.ErrorAs(t, err, &empty)
}

func TestValidateMessageExtensionRangeForbidden(t *testing.T) {
	t.Parallel()
	m := &ast.Message{
		Name:            "M",
		ExtensionRanges: []*ast.ReservedRange{{Start: 100, End: 200}},
	}
	err := ValidateMessage(newHandler(), m)
	require.Error(t, err)
}

func TestValidateMessageFieldsAccumulateAcrossMessage(t *testing.T) {
	t.Parallel()
	m := &ast.Message{
		Name: "M",
		Fields: []*ast.Field{
			scalarField("a", 1, ast.Int32),
			scalarField("a", 2, ast.Int32), // duplicate name
		},
	}
	err := ValidateMessage(newHandler(), m)
	require.Error(t, err)
	var dup *verrors.DuplicateFieldName
	assert.ErrorAs(t, err, &dup)
}

func TestValidateMessageClean(t *testing.T) {
	t.Parallel()
	m := &ast.Message{
		Name: "Clean",
		Fields: []*ast.Field{
			scalarField("a", 1, ast.Int32),
			scalarField("b", 2, ast.String),
		},
		Reserved:      []*ast.ReservedRange{{Start: 10, End: 12}},
		ReservedNames: []*ast.ReservedName{{Name: "old_field"}},
	}
	require.NoError(t, ValidateMessageName(newHandler(), m))
	require.NoError(t, ValidateMessage(newHandler(), m))
}

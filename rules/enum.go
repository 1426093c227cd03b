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
	"github.com/truewebber/swift-protoparser-sub001/ast"
	"github.com/truewebber/swift-protoparser-sub001/internal"
	"github.com/truewebber/swift-protoparser-sub001/reporter"
	"github.com/truewebber/swift-protoparser-sub001/verrors"
)

// ValidateEnum enforces spec.md §4.8's enum rules.
func ValidateEnum(h *reporter.Handler, e *ast.Enum) error {
	if !internal.IsUpperCamelName(e.Name) {
		return h.HandleErrorf(e.NamePos, "%w", &verrors.InvalidEnumName{Name: e.Name})
	}
	if len(e.Values) == 0 {
		return h.HandleErrorf(e.Pos, "%w", &verrors.EmptyEnum{Enum: e.Name})
	}
	if e.Values[0].Number != 0 {
		if err := h.HandleErrorf(e.Values[0].NumberPos, "%w", &verrors.FirstEnumValueNotZero{Enum: e.Name}); err != nil {
			return err
		}
	}

	allowAlias := false
	for _, o := range e.Options {
		if o.Name == "allow_alias" && o.Value != nil && o.Value.Kind == ast.ValBool {
			allowAlias = o.Value.Bool
		}
	}

	seenNames := map[string]bool{}
	seenNumbers := map[int32]bool{}
	for _, v := range e.Values {
		if !internal.IsEnumValueName(v.Name) {
			if err := h.HandleErrorf(v.NamePos, "%w", &verrors.InvalidEnumValueName{Name: v.Name}); err != nil {
				return err
			}
		}
		if seenNames[v.Name] {
			if err := h.HandleErrorf(v.NamePos, "%w", &verrors.DuplicateEnumValue{Enum: e.Name, Name: v.Name}); err != nil {
				return err
			}
		} else {
			seenNames[v.Name] = true
		}
		if seenNumbers[v.Number] && !allowAlias {
			if err := h.HandleErrorf(v.NumberPos, "%w", &verrors.DuplicateEnumValue{Enum: e.Name, Number: v.Number}); err != nil {
				return err
			}
		}
		seenNumbers[v.Number] = true
	}
	return nil
}

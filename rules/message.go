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

// ValidateMessageName checks a message name against spec.md §4.4: legal
// identifier charset, and not SCREAMING_SNAKE_CASE.
func ValidateMessageName(h *reporter.Handler, m *ast.Message) error {
	if !internal.IsUpperCamelName(m.Name) || internal.IsScreamingSnakeCase(m.Name) {
		return h.HandleErrorf(m.NamePos, "%w", &verrors.InvalidMessageName{Name: m.Name})
	}
	return nil
}

// ValidateMessage enforces every rule of spec.md §4.4 that is local to one
// message (not counting nested message/enum validation, which the
// coordinator drives recursively with its own scope push/pop).
func ValidateMessage(h *reporter.Handler, m *ast.Message) error {
	if err := validateExtensionRangesForbidden(h, m); err != nil {
		return err
	}
	if err := validateReserved(h, m); err != nil {
		return err
	}
	if err := validateNestedNameUniqueness(h, m); err != nil {
		return err
	}
	if err := validateOneofs(h, m); err != nil {
		return err
	}
	if err := validateFields(h, m); err != nil {
		return err
	}
	return nil
}

func validateExtensionRangesForbidden(h *reporter.Handler, m *ast.Message) error {
	if len(m.ExtensionRanges) == 0 {
		return nil
	}
	return h.HandleErrorf(m.ExtensionRanges[0].Pos, "%w",
		&verrors.Custom{Message: "message " + m.Name + " declares an extension range, which proto3 does not support"})
}

func validateReserved(h *reporter.Handler, m *ast.Message) error {
	seenNumbers := map[int]bool{}
	for _, r := range m.Reserved {
		if !internal.FieldNumberInRange(r.Start) || !internal.FieldNumberInRange(r.End) {
			if err := h.HandleErrorf(r.Pos, "%w", &verrors.InvalidFieldNumber{Number: r.Start, Reason: "reserved range out of bounds"}); err != nil {
				return err
			}
			continue
		}
		if r.Start > r.End {
			if err := h.HandleErrorf(r.Pos, "%w", &verrors.Custom{Message: "reserved range start must not exceed end"}); err != nil {
				return err
			}
			continue
		}
		for n := r.Start; n <= r.End; n++ {
			if seenNumbers[n] {
				if err := h.HandleErrorf(r.Pos, "%w", &verrors.Custom{Message: "reserved number overlaps another reserved entry"}); err != nil {
					return err
				}
				break
			}
			seenNumbers[n] = true
		}
	}

	seenNames := map[string]bool{}
	for _, n := range m.ReservedNames {
		if seenNames[n.Name] {
			if err := h.HandleErrorf(n.Pos, "%w", &verrors.Custom{Message: "reserved name " + n.Name + " is declared more than once"}); err != nil {
				return err
			}
			continue
		}
		seenNames[n.Name] = true
	}
	return nil
}

func validateNestedNameUniqueness(h *reporter.Handler, m *ast.Message) error {
	seen := map[string]bool{}
	for _, nested := range m.Messages {
		if seen[nested.Name] {
			if err := h.HandleErrorf(nested.NamePos, "%w", &verrors.DuplicateNestedTypeName{Parent: m.Name, Name: nested.Name}); err != nil {
				return err
			}
			continue
		}
		seen[nested.Name] = true
	}
	for _, e := range m.Enums {
		if seen[e.Name] {
			if err := h.HandleErrorf(e.NamePos, "%w", &verrors.DuplicateNestedTypeName{Parent: m.Name, Name: e.Name}); err != nil {
				return err
			}
			continue
		}
		seen[e.Name] = true
	}
	return nil
}

func validateOneofs(h *reporter.Handler, m *ast.Message) error {
	for i, o := range m.Oneofs {
		if len(ast.OneofFields(m, i)) == 0 {
			if err := h.HandleErrorf(o.Pos, "%w", &verrors.EmptyOneof{Name: o.Name}); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateFields(h *reporter.Handler, m *ast.Message) error {
	reserved := newReservedSet(m)
	seenNames := map[string]bool{}
	seenNumbers := map[int]bool{}
	for _, f := range m.Fields {
		if err := ValidateField(h, m.Name, f, reserved, seenNames, seenNumbers); err != nil {
			return err
		}
	}
	return nil
}

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

// Package rules holds the closed set of rule validators described in
// spec.md §4.3-§4.4, §4.6, §4.8: one file per AST category, all sharing
// the symtab.State and calling into the resolve package for type lookups.
package rules

import (
	"github.com/truewebber/swift-protoparser-sub001/ast"
	"github.com/truewebber/swift-protoparser-sub001/internal"
	"github.com/truewebber/swift-protoparser-sub001/reporter"
	"github.com/truewebber/swift-protoparser-sub001/verrors"
)

// reservedSet's ranges and names are computed once per message and reused
// across all of its fields.
type reservedSet struct {
	ranges []*ast.ReservedRange
	names  map[string]bool
}

func newReservedSet(m *ast.Message) reservedSet {
	names := make(map[string]bool, len(m.ReservedNames))
	for _, n := range m.ReservedNames {
		names[n.Name] = true
	}
	return reservedSet{ranges: m.Reserved, names: names}
}

func (r reservedSet) hasNumber(n int) bool {
	for _, rr := range r.ranges {
		if n >= rr.Start && n <= rr.End {
			return true
		}
	}
	return false
}

// ValidateField enforces spec.md §4.3 for a single field. seen tracks
// field names and numbers already used elsewhere in the message
// (including by other oneof members), so callers must validate fields in
// source order and accumulate into the same seen maps across a message's
// Fields slice.
func ValidateField(h *reporter.Handler, messageName string, f *ast.Field, reserved reservedSet, seenNames map[string]bool, seenNumbers map[int]bool) error {
	if err := validateFieldNumber(h, messageName, f, reserved, seenNumbers); err != nil {
		return err
	}
	if err := validateFieldName(h, messageName, f, reserved, seenNames); err != nil {
		return err
	}
	if err := validateFieldType(h, f); err != nil {
		return err
	}
	if f.InOneof() {
		if err := validateOneofMemberShape(h, f); err != nil {
			return err
		}
	}
	if err := validatePackedOption(h, f); err != nil {
		return err
	}
	return nil
}

func validateFieldNumber(h *reporter.Handler, messageName string, f *ast.Field, reserved reservedSet, seen map[int]bool) error {
	if !internal.FieldNumberInRange(f.Number) {
		reason := "must be between 1 and 536,870,911"
		if f.Number >= internal.ReservedFieldNumberStart && f.Number <= internal.ReservedFieldNumberEnd {
			reason = "19000-19999 is reserved for protobuf implementation internals"
		}
		return h.HandleErrorf(f.NumberPos, "%w", &verrors.InvalidFieldNumber{Number: f.Number, Reason: reason})
	}
	if seen[f.Number] {
		return h.HandleErrorf(f.NumberPos, "%w", &verrors.DuplicateMessageFieldNumber{Message: messageName, Number: f.Number})
	}
	if reserved.hasNumber(f.Number) {
		return h.HandleErrorf(f.NumberPos, "%w", &verrors.ReservedFieldName{Message: messageName, Number: f.Number})
	}
	seen[f.Number] = true
	return nil
}

func validateFieldName(h *reporter.Handler, messageName string, f *ast.Field, reserved reservedSet, seen map[string]bool) error {
	if !internal.IsFieldName(f.Name) {
		return h.HandleErrorf(f.NamePos, "%w", &verrors.InvalidFieldName{Name: f.Name})
	}
	if reserved.names[f.Name] {
		return h.HandleErrorf(f.NamePos, "%w", &verrors.ReservedFieldName{Message: messageName, Field: f.Name})
	}
	if seen[f.Name] {
		return h.HandleErrorf(f.NamePos, "%w", &verrors.DuplicateFieldName{Message: messageName, Name: f.Name})
	}
	seen[f.Name] = true
	return nil
}

func validateFieldType(h *reporter.Handler, f *ast.Field) error {
	if f.Type == nil || f.Type.Kind != ast.KindMap {
		return nil
	}
	return validateMapType(h, f)
}

func validateMapType(h *reporter.Handler, f *ast.Field) error {
	t := f.Type
	if !internal.MapKeyScalars[t.MapKey.String()] {
		if err := h.HandleErrorf(t.Pos, "%w", &verrors.InvalidMapKeyType{KeyType: t.MapKey.String()}); err != nil {
			return err
		}
	}
	if t.MapValue.IsMap() {
		if err := h.HandleErrorf(t.Pos, "%w", &verrors.InvalidMapValueType{ValueType: "map"}); err != nil {
			return err
		}
	}
	if f.Label == ast.LabelRepeated {
		if err := h.HandleErrorf(f.Pos, "%w", &verrors.RepeatedMapField{Field: f.Name}); err != nil {
			return err
		}
	}
	if f.Label == ast.LabelOptional {
		if err := h.HandleErrorf(f.Pos, "%w", &verrors.OptionalMapField{Field: f.Name}); err != nil {
			return err
		}
	}
	return nil
}

func validateOneofMemberShape(h *reporter.Handler, f *ast.Field) error {
	if f.Label == ast.LabelRepeated {
		return h.HandleErrorf(f.Pos, "%w", &verrors.RepeatedOneof{Field: f.Name})
	}
	if f.Label == ast.LabelOptional {
		return h.HandleErrorf(f.Pos, "%w", &verrors.OptionalOneof{Field: f.Name})
	}
	if f.Type.IsMap() {
		return h.HandleErrorf(f.Pos, "%w", &verrors.InvalidMapValueType{ValueType: "map field in oneof"})
	}
	return nil
}

func validatePackedOption(h *reporter.Handler, f *ast.Field) error {
	var packed *ast.Option
	for _, o := range f.Options {
		if o.Name == "packed" {
			packed = o
			break
		}
	}
	if packed == nil {
		return nil
	}
	if f.Label != ast.LabelRepeated {
		return h.HandleErrorf(packed.Pos, "%w", &verrors.UnpackableFieldType{Field: f.Name, Type: f.Type.String()})
	}
	switch f.Type.Kind {
	case ast.KindScalar:
		if !internal.PackableScalars[f.Type.Scalar.String()] {
			return h.HandleErrorf(packed.Pos, "%w", &verrors.UnpackableFieldType{Field: f.Name, Type: f.Type.String()})
		}
	case ast.KindNamed:
		// Resolution happens later; whether a Named type is an enum (packable)
		// or a message (not) can only be known once it's resolved. The
		// re-sweep in the coordinator (spec.md §4.1 step 10) revisits this
		// once the symbol table is final; see rules.ValidatePackedNamedType.
	case ast.KindMap:
		return h.HandleErrorf(packed.Pos, "%w", &verrors.UnpackableFieldType{Field: f.Name, Type: f.Type.String()})
	}
	return nil
}

// ValidatePackedNamedType completes the packed-option check for a field
// whose type is Named, once def is known to be a message or an enum
// (spec.md §4.3's packed rule extends to "enums").
func ValidatePackedNamedType(h *reporter.Handler, f *ast.Field, isMessage bool) error {
	packed := false
	for _, o := range f.Options {
		if o.Name == "packed" {
			packed = true
			break
		}
	}
	if !packed || f.Type.Kind != ast.KindNamed {
		return nil
	}
	if isMessage {
		return h.HandleErrorf(f.Pos, "%w", &verrors.UnpackableFieldType{Field: f.Name, Type: f.Type.Name})
	}
	return nil
}

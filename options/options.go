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

// Package options implements C4, the Option Validator (spec.md §4.7): a
// small typed language of well-known options per target, plus syntactic
// and (when possible) type checking of custom options.
package options

import (
	"strings"

	"github.com/truewebber/swift-protoparser-sub001/ast"
	"github.com/truewebber/swift-protoparser-sub001/internal"
	"github.com/truewebber/swift-protoparser-sub001/reporter"
	"github.com/truewebber/swift-protoparser-sub001/symtab"
	"github.com/truewebber/swift-protoparser-sub001/verrors"
)

// Target names one of the option-bearing AST node kinds the recognized-name
// table in spec.md §4.7 is keyed by.
type Target int

const (
	TargetFile Target = iota
	TargetMessage
	TargetField
	TargetEnum
	TargetEnumValue
	TargetService
	TargetMethod
)

func (t Target) String() string {
	switch t {
	case TargetFile:
		return "file"
	case TargetMessage:
		return "message"
	case TargetField:
		return "field"
	case TargetEnum:
		return "enum"
	case TargetEnumValue:
		return "enum value"
	case TargetService:
		return "service"
	case TargetMethod:
		return "method"
	default:
		return "option"
	}
}

// shape describes the value a well-known option must carry.
type shape struct {
	kind    ast.OptionValueKind
	idents  map[string]bool // valid only when kind == ValIdentifier
}

func stringShape() shape  { return shape{kind: ast.ValString} }
func boolShape() shape    { return shape{kind: ast.ValBool} }
func identShape(values ...string) shape {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return shape{kind: ast.ValIdentifier, idents: set}
}

// recognized is the closed table of spec.md §4.7's "Recognized options by
// target" list.
var recognized = map[Target]map[string]shape{
	TargetFile: {
		"java_package":            stringShape(),
		"java_outer_classname":    stringShape(),
		"java_multiple_files":     boolShape(),
		"optimize_for":            identShape("SPEED", "CODE_SIZE", "LITE_RUNTIME"),
		"cc_enable_arenas":        boolShape(),
		"go_package":              stringShape(),
		"cc_generic_services":     boolShape(),
		"java_generic_services":   boolShape(),
		"py_generic_services":     boolShape(),
		"objc_class_prefix":       stringShape(),
		"csharp_namespace":        stringShape(),
		"swift_prefix":            stringShape(),
		"php_class_prefix":        stringShape(),
		"php_namespace":           stringShape(),
		"php_metadata_namespace":  stringShape(),
		"ruby_package":            stringShape(),
	},
	TargetMessage: {
		"message_set_wire_format":         boolShape(),
		"no_standard_descriptor_accessor": boolShape(),
		"deprecated":                      boolShape(),
		"map_entry":                       boolShape(),
	},
	TargetField: {
		"ctype":      identShape("STRING", "CORD", "STRING_PIECE"),
		"packed":     boolShape(),
		"jstype":     identShape("JS_NORMAL", "JS_STRING", "JS_NUMBER"),
		"lazy":       boolShape(),
		"deprecated": boolShape(),
		"weak":       boolShape(),
		"json_name":  stringShape(),
	},
	TargetEnum: {
		"allow_alias": boolShape(),
		"deprecated":  boolShape(),
	},
	TargetEnumValue: {
		"deprecated": boolShape(),
	},
	TargetService: {
		"deprecated": boolShape(),
	},
	TargetMethod: {
		"deprecated":        boolShape(),
		"idempotency_level": identShape("IDEMPOTENCY_UNKNOWN", "NO_SIDE_EFFECTS", "IDEMPOTENT"),
	},
}

// Validate enforces spec.md §4.7 over opts, all attached to the same
// target (e.g. all of one message's Options). st is consulted to type
// check custom options whose extension has a Symbol Table entry; when no
// such entry exists, the option is left for the descriptor builder to
// carry through as an uninterpreted option, per spec.md §4.7's explicit
// "not an error" carve-out.
func Validate(h *reporter.Handler, st *symtab.State, target Target, opts []*ast.Option) error {
	seen := map[string]bool{}
	table := recognized[target]
	for _, o := range opts {
		if seen[o.Name] {
			if err := h.HandleErrorf(o.Pos, "%w", &verrors.DuplicateOption{Name: o.Name}); err != nil {
				return err
			}
			continue
		}
		seen[o.Name] = true

		if o.Custom {
			if err := validateCustom(h, st, o); err != nil {
				return err
			}
			continue
		}

		want, ok := table[o.Name]
		if !ok {
			if err := h.HandleErrorf(o.Pos, "%w", &verrors.UnknownOption{Name: o.Name, Target: target.String()}); err != nil {
				return err
			}
			continue
		}
		if err := validateShape(h, o, want); err != nil {
			return err
		}
	}
	return nil
}

func validateShape(h *reporter.Handler, o *ast.Option, want shape) error {
	if o.Value == nil || o.Value.Kind != want.kind {
		return h.HandleErrorf(o.Pos, "%w", &verrors.InvalidOptionValue{Option: o.Name, Reason: "value has the wrong type for this option"})
	}
	if want.kind == ast.ValIdentifier && !want.idents[o.Value.Ident] {
		return h.HandleErrorf(o.Pos, "%w", &verrors.InvalidOptionValue{Option: o.Name, Reason: "unrecognized value " + o.Value.Ident})
	}
	return nil
}

// validateCustom enforces spec.md §4.7(c): every path component of a
// custom option `(dotted.name)[.subfield...]` must be a legal identifier.
// If the extension's base name has a Symbol Table entry (it was declared
// as a message in this file, the only way an extension-like definition
// can appear in a proto3-only Symbol Table), its value is type-checked as
// a message-literal map; otherwise the option is uninterpreted and passes
// unconditionally, matching the builder's uninterpreted_option fallback.
func validateCustom(h *reporter.Handler, st *symtab.State, o *ast.Option) error {
	for _, part := range o.PathParts {
		for _, component := range strings.Split(part, ".") {
			if !internal.IsPlainIdentifier(component) {
				return h.HandleErrorf(o.Pos, "%w", &verrors.InvalidOptionName{Name: o.Name})
			}
		}
	}
	if len(o.PathParts) == 0 {
		return nil
	}
	def, ok := st.Symbols.Lookup(o.PathParts[0])
	if !ok || def.Kind != symtab.DefMessage {
		return nil
	}
	if o.Value == nil || o.Value.Kind != ast.ValMap {
		return h.HandleErrorf(o.Pos, "%w", &verrors.InvalidOptionValue{Option: o.Name, Reason: "custom option extension " + o.PathParts[0] + " expects a message literal"})
	}
	return nil
}

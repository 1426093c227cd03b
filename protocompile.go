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

// Package protocompile implements C6, the Coordinator (spec.md §4.1): the
// single entry point that drives every rule validator, the reference
// resolver, the dependency analyzer and, on success, the descriptor
// builder, in the fixed pass order the specification requires.
package protocompile

import (
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/truewebber/swift-protoparser-sub001/ast"
	"github.com/truewebber/swift-protoparser-sub001/depgraph"
	"github.com/truewebber/swift-protoparser-sub001/descriptor"
	"github.com/truewebber/swift-protoparser-sub001/options"
	"github.com/truewebber/swift-protoparser-sub001/reporter"
	"github.com/truewebber/swift-protoparser-sub001/resolve"
	"github.com/truewebber/swift-protoparser-sub001/rules"
	"github.com/truewebber/swift-protoparser-sub001/symtab"
	"github.com/truewebber/swift-protoparser-sub001/verrors"
)

// Options configures a Validate call (spec.md §6). It has no import-path
// setting: types from other files reach Validate through its imported
// argument.
type Options struct {
	// GenerateSourceInfo mirrors the `generateSourceInfo` knob. Its zero
	// value leaves source info off; the CLI's --source-info flag defaults
	// to true.
	GenerateSourceInfo bool

	// ErrorReporter/WarningReporter let a caller observe every error and
	// warning as it's produced. A nil ErrorReporter gets fail-fast
	// behavior (the first error stops validation); this is the core's
	// contractual default (spec.md §7).
	ErrorReporter   reporter.ErrorReporter
	WarningReporter reporter.WarningReporter
}

// Result is returned on a successful Validate call: the File together with
// the Symbol Table and Dependency Set the Descriptor Builder, or any other
// downstream consumer, needs (spec.md §6's "Output on success"). File is
// the caller's AST, not a copy: validation writes each resolved type name
// into the Resolved field of its Named type, or into an RPC's
// ResolvedInput/ResolvedOutput.
type Result struct {
	File       *ast.File
	Symbols    *symtab.SymbolTable
	Deps       map[string][]string
	Descriptor *descriptorpb.FileDescriptorProto
}

// Validate runs the ten-step pass order of spec.md §4.1 over f, using
// imported to resolve cross-file references (spec.md §6's import resolver
// contract). On success it also runs the Descriptor Builder, since
// producing a descriptor is the whole point of a validated file.
func Validate(f *ast.File, imported symtab.ImportedTypes, opts Options) (*Result, error) {
	h := reporter.NewHandler(opts.ErrorReporter, opts.WarningReporter)
	st := symtab.NewState(f.Name, imported)

	// Step 1: reset state; record the file's package.
	st.Package = f.Package

	// Step 2: syntax.
	if err := rules.ValidateSyntax(h, f); err != nil {
		return nil, err
	}

	// Step 3: package name.
	if err := rules.ValidatePackage(h, f); err != nil {
		return nil, err
	}
	if err := rules.ValidateImports(h, f); err != nil {
		return nil, err
	}

	// Step 4: file options.
	if err := options.Validate(h, st, options.TargetFile, f.Options); err != nil {
		return nil, err
	}

	// Step 5: register every top-level and nested message/enum.
	if err := registerAll(h, st, f); err != nil {
		return nil, err
	}

	// Step 6: validate enums.
	for _, e := range f.Enums {
		if err := validateEnum(h, st, e); err != nil {
			return nil, err
		}
	}
	for _, m := range f.Messages {
		if err := validateNestedEnums(h, st, m); err != nil {
			return nil, err
		}
	}

	// Step 7: validate messages, depth-first, with scope push/pop.
	for _, m := range f.Messages {
		if err := validateMessageTree(h, st, m); err != nil {
			return nil, err
		}
	}

	// Step 8: services.
	for _, s := range f.Services {
		if err := rules.ValidateService(h, s); err != nil {
			return nil, err
		}
		if err := rules.ResolveRPCTypes(h, st, s); err != nil {
			return nil, err
		}
		if err := options.Validate(h, st, options.TargetService, s.Options); err != nil {
			return nil, err
		}
		for _, rpc := range s.RPCs {
			if err := options.Validate(h, st, options.TargetMethod, rpc.Options); err != nil {
				return nil, err
			}
		}
	}

	// Step 9: dependency graph + cycle detection.
	depgraph.BuildGraph(st, f.Package)
	if err := depgraph.DetectCycles(h, st); err != nil {
		return nil, err
	}

	// Step 10: re-sweep fields' Named types (deferred packed check).
	if err := resweep(h, st, f); err != nil {
		return nil, err
	}

	if h.Error() != nil {
		return nil, h.Error()
	}

	fd := descriptor.Build(f, st, f.Package, descriptor.Options{GenerateSourceInfo: opts.GenerateSourceInfo})
	return &Result{File: f, Symbols: st.Symbols, Deps: st.Deps, Descriptor: fd}, nil
}

func registerAll(h *reporter.Handler, st *symtab.State, f *ast.File) error {
	for _, m := range f.Messages {
		if err := registerMessage(h, st, m, qualify(f.Package, m.Name)); err != nil {
			return err
		}
	}
	for _, e := range f.Enums {
		if err := registerEnum(h, st, e, qualify(f.Package, e.Name)); err != nil {
			return err
		}
	}
	return nil
}

func registerMessage(h *reporter.Handler, st *symtab.State, m *ast.Message, fqn string) error {
	if existing, ok := st.Symbols.Define(fqn, &symtab.Definition{Kind: symtab.DefMessage, FQN: fqn, Message: m, Pos: m.Pos}); !ok {
		if err := h.HandleErrorf(m.NamePos, "%w", dupTypeErr(fqn, existing.Pos)); err != nil {
			return err
		}
	}
	for _, nested := range m.Messages {
		if err := registerMessage(h, st, nested, fqn+"."+nested.Name); err != nil {
			return err
		}
	}
	for _, e := range m.Enums {
		if err := registerEnum(h, st, e, fqn+"."+e.Name); err != nil {
			return err
		}
	}
	return nil
}

func registerEnum(h *reporter.Handler, st *symtab.State, e *ast.Enum, fqn string) error {
	if existing, ok := st.Symbols.Define(fqn, &symtab.Definition{Kind: symtab.DefEnum, FQN: fqn, Enum: e, Pos: e.Pos}); !ok {
		return h.HandleErrorf(e.NamePos, "%w", dupTypeErr(fqn, existing.Pos))
	}
	return nil
}

func validateEnum(h *reporter.Handler, st *symtab.State, e *ast.Enum) error {
	if err := rules.ValidateEnum(h, e); err != nil {
		return err
	}
	if err := options.Validate(h, st, options.TargetEnum, e.Options); err != nil {
		return err
	}
	for _, v := range e.Values {
		if err := options.Validate(h, st, options.TargetEnumValue, v.Options); err != nil {
			return err
		}
	}
	return nil
}

// validateNestedEnums validates every enum directly or transitively nested
// inside m, driven by ast.WalkEnums's pre-order traversal (spec.md §4.1
// step 6's "nested as encountered in step 7" ordering).
func validateNestedEnums(h *reporter.Handler, st *symtab.State, m *ast.Message) error {
	var firstErr error
	ast.WalkEnums(m, func(e *ast.Enum) {
		if firstErr != nil {
			return
		}
		if err := validateEnum(h, st, e); err != nil {
			firstErr = err
		}
	})
	return firstErr
}

// validateMessageTree validates m and, recursively, every nested message,
// pushing and popping a scope around each (spec.md §4.1 step 7).
func validateMessageTree(h *reporter.Handler, st *symtab.State, m *ast.Message) error {
	fqn, _ := currentFQN(st, m)
	st.PushScope(fqn, m)
	defer st.PopScope()

	if err := rules.ValidateMessageName(h, m); err != nil {
		return err
	}
	if err := rules.ValidateMessage(h, m); err != nil {
		return err
	}
	if err := options.Validate(h, st, options.TargetMessage, m.Options); err != nil {
		return err
	}
	for _, f := range m.Fields {
		if err := options.Validate(h, st, options.TargetField, f.Options); err != nil {
			return err
		}
	}
	if err := resolveFieldTypes(h, st, m); err != nil {
		return err
	}

	for _, nested := range m.Messages {
		if err := validateMessageTree(h, st, nested); err != nil {
			return err
		}
	}
	return nil
}

// currentFQN returns the FQN a message was registered under, derived from
// its enclosing scope stack (empty at top level) and the file's package.
func currentFQN(st *symtab.State, m *ast.Message) (string, bool) {
	if scope, ok := st.CurrentScope(); ok {
		return scope.FQN + "." + m.Name, true
	}
	return qualify(st.Package, m.Name), false
}

// resolveFieldTypes resolves every Named field type of m (including a map
// field's Named value type) against the Symbol Table, recording the
// resolution on the AST node. Dependency edges are recorded later, by
// depgraph.BuildGraph.
func resolveFieldTypes(h *reporter.Handler, st *symtab.State, m *ast.Message) error {
	scopes := st.EnclosingFQNs()
	for _, f := range m.Fields {
		t := f.Type
		if t == nil {
			continue
		}
		named := t
		if t.Kind == ast.KindMap {
			named = t.MapValue
		}
		if named == nil || named.Kind != ast.KindNamed {
			continue
		}
		res, err := resolve.Resolve(st, named.Name, st.Package, scopes, "message "+m.Name)
		if err != nil {
			if e := h.HandleErrorf(named.Pos, "%w", err); e != nil {
				return e
			}
			continue
		}
		named.Resolved = res.FQN
	}
	return nil
}

// resweep implements spec.md §4.1 step 10 for fields: for each field whose
// Named type resolved to a definition in this file, it completes the
// deferred packed-option check (see rules.ValidatePackedNamedType). It does
// not resolve any reference again; fields whose type did not resolve or
// resolved to an imported type are skipped, and RPC types are not revisited.
func resweep(h *reporter.Handler, st *symtab.State, f *ast.File) error {
	var firstErr error
	recheck := func(m *ast.Message) {
		if firstErr != nil {
			return
		}
		for _, field := range m.Fields {
			named := field.Type
			if named != nil && named.Kind == ast.KindMap {
				named = named.MapValue
			}
			if named == nil || named.Kind != ast.KindNamed {
				continue
			}
			if named.Resolved == "" {
				continue // already reported during resolveFieldTypes
			}
			def, ok := st.Symbols.Lookup(named.Resolved)
			if !ok {
				continue // imported type: not locally re-verifiable
			}
			if err := rules.ValidatePackedNamedType(h, field, def.Kind == symtab.DefMessage); err != nil {
				firstErr = err
				return
			}
		}
	}
	for _, m := range f.Messages {
		ast.WalkMessages(m, recheck)
		if firstErr != nil {
			return firstErr
		}
	}
	// RPC input/output types have nothing left to re-check here: step 5
	// registers every message and enum before step 8 resolves any RPC
	// type, so there is no forward-reference window for them to fall
	// into in the first place.
	return nil
}

func dupTypeErr(fqn string, previous ast.SourcePos) *verrors.DuplicateTypeName {
	return &verrors.DuplicateTypeName{FQN: fqn, Previous: previous.String()}
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

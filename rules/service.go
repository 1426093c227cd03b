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
	"github.com/truewebber/swift-protoparser-sub001/resolve"
	"github.com/truewebber/swift-protoparser-sub001/symtab"
	"github.com/truewebber/swift-protoparser-sub001/verrors"
)

// ValidateService enforces spec.md §4.8's structural rules (name and
// method-name charset/uniqueness). Resolution of RPC input/output types
// is done separately by ResolveRPCTypes, since it needs the symbol table.
func ValidateService(h *reporter.Handler, s *ast.Service) error {
	if !internal.IsUpperCamelName(s.Name) {
		return h.HandleErrorf(s.NamePos, "%w", &verrors.InvalidServiceName{Name: s.Name})
	}
	seen := map[string]bool{}
	for _, rpc := range s.RPCs {
		if !internal.IsMethodName(rpc.Name) {
			if err := h.HandleErrorf(rpc.NamePos, "%w", &verrors.InvalidMethodName{Name: rpc.Name}); err != nil {
				return err
			}
		}
		if seen[rpc.Name] {
			if err := h.HandleErrorf(rpc.NamePos, "%w", &verrors.DuplicateMethodName{Service: s.Name, Name: rpc.Name}); err != nil {
				return err
			}
			continue
		}
		seen[rpc.Name] = true
	}
	return nil
}

// ResolveRPCTypes resolves every method's input and output type reference
// against the symbol table (spec.md §4.8, "input and output type
// references are resolved via C3"). RPC types have no enclosing message,
// so the bare-name search only checks the package and root scopes.
func ResolveRPCTypes(h *reporter.Handler, st *symtab.State, s *ast.Service) error {
	for _, rpc := range s.RPCs {
		in, err := resolve.Resolve(st, rpc.InputType, st.Package, nil, "service "+s.Name)
		if err != nil {
			if e := h.HandleErrorf(rpc.InputPos, "%w", err); e != nil {
				return e
			}
		} else {
			rpc.ResolvedInput = in.FQN
		}

		out, err := resolve.Resolve(st, rpc.OutputType, st.Package, nil, "service "+s.Name)
		if err != nil {
			if e := h.HandleErrorf(rpc.OutputPos, "%w", err); e != nil {
				return e
			}
		} else {
			rpc.ResolvedOutput = out.FQN
		}
	}
	return nil
}

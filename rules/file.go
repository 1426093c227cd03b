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
	"strings"

	"github.com/truewebber/swift-protoparser-sub001/ast"
	"github.com/truewebber/swift-protoparser-sub001/internal"
	"github.com/truewebber/swift-protoparser-sub001/reporter"
	"github.com/truewebber/swift-protoparser-sub001/verrors"
)

// ValidateSyntax enforces spec.md §4.1 step 2 / §4.6: only "proto3" is
// accepted.
func ValidateSyntax(h *reporter.Handler, f *ast.File) error {
	if f.Syntax != "proto3" {
		return h.HandleErrorf(f.SyntaxPos, "%w", &verrors.InvalidSyntaxVersion{Got: f.Syntax})
	}
	return nil
}

// ValidatePackage enforces spec.md §4.6: a present package must be
// non-empty, dot-separated, with no leading/trailing dot or "..", and
// every component matching [a-z][a-z0-9_]*.
func ValidatePackage(h *reporter.Handler, f *ast.File) error {
	if f.Package == "" {
		return nil
	}
	pkg := f.Package
	if strings.HasPrefix(pkg, ".") || strings.HasSuffix(pkg, ".") || strings.Contains(pkg, "..") {
		return h.HandleErrorf(f.PackagePos, "%w", &verrors.InvalidPackageName{Name: pkg, Reason: "must not have a leading/trailing dot or an empty component"})
	}
	for _, part := range strings.Split(pkg, ".") {
		if !internal.IsPackageComponent(part) {
			return h.HandleErrorf(f.PackagePos, "%w", &verrors.InvalidPackageName{Name: pkg, Reason: "component " + part + " is not a legal identifier"})
		}
	}
	return nil
}

// ValidateImports enforces spec.md §4.6: a non-empty path with no "..",
// a modifier in {plain, public, weak}, and weak+public rejected (a single
// import carries only one modifier in this AST, so the only way to
// violate "weak+public" is a caller setting an invalid ImportModifier
// value).
func ValidateImports(h *reporter.Handler, f *ast.File) error {
	for _, imp := range f.Imports {
		if imp.Path == "" {
			if err := h.HandleErrorf(imp.Pos, "%w", &verrors.InvalidImport{Path: imp.Path, Reason: "import path must not be empty"}); err != nil {
				return err
			}
			continue
		}
		if strings.Contains(imp.Path, "..") {
			if err := h.HandleErrorf(imp.Pos, "%w", &verrors.InvalidImport{Path: imp.Path, Reason: `path must not contain ".."`}); err != nil {
				return err
			}
			continue
		}
		switch imp.Modifier {
		case ast.ImportPlain, ast.ImportPublic, ast.ImportWeak:
		default:
			if err := h.HandleErrorf(imp.Pos, "%w", &verrors.InvalidImport{Path: imp.Path, Reason: "unknown import modifier"}); err != nil {
				return err
			}
		}
	}
	return nil
}

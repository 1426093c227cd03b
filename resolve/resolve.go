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

// Package resolve implements C3, proto3 name resolution (spec.md §4.2).
package resolve

import (
	"strings"

	"github.com/truewebber/swift-protoparser-sub001/symtab"
	"github.com/truewebber/swift-protoparser-sub001/verrors"
)

// Result is the outcome of a successful resolution.
type Result struct {
	// FQN is the fully qualified name the reference resolved to (no
	// leading dot). For a dotted, non-leading-dotted reference resolved
	// via import, this is the reference's dotted path verbatim, per the
	// cross-package rule: such a reference is never locally defined, so
	// there's no FQN to walk to independently of what was written.
	FQN string
	// FromImport is true if the reference was resolved only via the
	// Imported-Types table (so depgraph must treat it as a graph leaf,
	// spec.md §4.5).
	FromImport bool
}

// Canonical returns the descriptor-level type name for a reference R that
// resolved to FQN (spec.md §4.2 "Canonical form emitted to the
// descriptor"). It does not re-resolve anything; Resolve must have
// already succeeded.
func Canonical(ref string, fqn string) string {
	switch {
	case strings.HasPrefix(ref, "."):
		return "." + strings.TrimPrefix(ref, ".")
	case strings.Contains(ref, "."):
		// Cross-package rule: a dotted, non-leading-dotted reference is
		// left exactly as written, absolute.
		return "." + ref
	default:
		return "." + fqn
	}
}

// Resolve implements the algorithm of spec.md §4.2 for a reference R
// appearing inside the message whose FQN is enclosingFQNs[0] (empty if R
// appears where there is no enclosing message, e.g. an RPC type). pkg is
// the file's package ("" if none). enclosingFQNs lists every ancestor
// message scope FQN, innermost first (symtab.State.EnclosingFQNs()).
//
// Imported-Types is consulted as the final fallback, both for bare names
// (spec.md §4.2 step 4d, explicit) and, by necessity, for qualified
// cross-package names: a reference like "google.protobuf.Empty" is never
// locally defined (Symbol Table only holds the current file's own
// definitions), yet spec.md invariant 5 and scenario S1 require it to
// resolve successfully. A qualified reference whose first component
// resolves neither under the package nor at the root therefore falls back
// to checking whether its final component is a known imported simple
// name; if so, it is trusted verbatim as the cross-package rule already
// trusts its canonical form verbatim. A reference whose first component
// does resolve locally gets no such fallback.
func Resolve(st *symtab.State, ref string, pkg string, enclosingFQNs []string, referencedIn string) (Result, error) {
	return resolve(st, ref, pkg, enclosingFQNs, referencedIn, true)
}

// ResolveLocal is the variant depgraph uses (spec.md §4.5): it resolves a
// reference the same way, but never consults Imported-Types. ok is false,
// with no error, when the reference is (or appears to be) an imported
// type; depgraph then simply adds no edge for it, since resolvability was
// already confirmed elsewhere.
func ResolveLocal(st *symtab.State, ref string, pkg string, enclosingFQNs []string) (fqn string, ok bool) {
	res, err := resolve(st, ref, pkg, enclosingFQNs, "", false)
	if err != nil || res.FromImport {
		return "", false
	}
	return res.FQN, true
}

func resolve(st *symtab.State, ref string, pkg string, enclosingFQNs []string, referencedIn string, allowImports bool) (Result, error) {
	if strings.HasPrefix(ref, ".") {
		fqn := strings.TrimPrefix(ref, ".")
		if st.Symbols.Has(fqn) {
			return Result{FQN: fqn}, nil
		}
		return Result{}, &verrors.UndefinedType{Ref: ref, ReferencedIn: referencedIn}
	}

	parts := strings.Split(ref, ".")
	if len(parts) >= 2 {
		return resolveQualified(st, ref, parts, pkg, referencedIn, allowImports)
	}
	return resolveBare(st, ref, pkg, enclosingFQNs, referencedIn, allowImports)
}

func resolveQualified(st *symtab.State, ref string, parts []string, pkg, referencedIn string, allowImports bool) (Result, error) {
	first := parts[0]
	var base string
	switch {
	case pkg != "" && st.Symbols.Has(pkg+"."+first):
		base = pkg + "." + first
	case st.Symbols.Has(first):
		base = first
	default:
		if allowImports {
			if _, ok := st.Imported[parts[len(parts)-1]]; ok {
				return Result{FQN: ref, FromImport: true}, nil
			}
		}
		return Result{}, &verrors.UndefinedType{Ref: first, ReferencedIn: referencedIn}
	}

	prefix := base
	for _, part := range parts[1:] {
		prefix = prefix + "." + part
		if !st.Symbols.Has(prefix) {
			return Result{}, &verrors.UndefinedType{Ref: prefix, ReferencedIn: referencedIn}
		}
	}
	return Result{FQN: prefix}, nil
}

func resolveBare(st *symtab.State, ref string, pkg string, enclosingFQNs []string, referencedIn string, allowImports bool) (Result, error) {
	for _, scope := range enclosingFQNs {
		candidate := scope + "." + ref
		if st.Symbols.Has(candidate) {
			return Result{FQN: candidate}, nil
		}
	}
	if pkg != "" {
		candidate := pkg + "." + ref
		if st.Symbols.Has(candidate) {
			return Result{FQN: candidate}, nil
		}
	}
	if st.Symbols.Has(ref) {
		return Result{FQN: ref}, nil
	}
	if allowImports {
		if _, ok := st.Imported[ref]; ok {
			return Result{FQN: ref, FromImport: true}, nil
		}
	}
	return Result{}, &verrors.UndefinedType{Ref: ref, ReferencedIn: referencedIn}
}

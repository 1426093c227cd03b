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

// Package internal holds numeric-range and identifier-charset constants
// shared by the rule validators. These are pure character-class tests, no
// locale-aware predicates (spec.md §9 design note).
package internal

const (
	MinFieldNumber           = 1
	MaxFieldNumber           = 536_870_911
	ReservedFieldNumberStart = 19_000
	ReservedFieldNumberEnd   = 19_999 // inclusive
)

// FieldNumberInRange reports whether n is a legal, non-reserved-range
// field number (spec.md §3.3 invariant 7 / §4.3).
func FieldNumberInRange(n int) bool {
	if n < MinFieldNumber || n > MaxFieldNumber {
		return false
	}
	return n < ReservedFieldNumberStart || n > ReservedFieldNumberEnd
}

// isLower reports whether r is an ASCII lowercase letter.
func isLower(r byte) bool { return r >= 'a' && r <= 'z' }

// isUpper reports whether r is an ASCII uppercase letter.
func isUpper(r byte) bool { return r >= 'A' && r <= 'Z' }

func isDigit(r byte) bool { return r >= '0' && r <= '9' }

func isAlpha(r byte) bool { return isLower(r) || isUpper(r) }

// IsFieldName reports whether s matches [a-z_][a-zA-Z0-9_]* (spec.md §4.3).
func IsFieldName(s string) bool {
	if s == "" {
		return false
	}
	if !(isLower(s[0]) || s[0] == '_') {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(isAlpha(c) || isDigit(c) || c == '_') {
			return false
		}
	}
	return true
}

// IsUpperCamelName reports whether s matches [A-Z][a-zA-Z0-9_]* (message,
// enum, service, method names per spec.md §4.4/§4.8).
func IsUpperCamelName(s string) bool {
	if s == "" || !isUpper(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(isAlpha(c) || isDigit(c) || c == '_') {
			return false
		}
	}
	return true
}

// IsMethodName reports whether s matches [A-Za-z][a-zA-Z0-9_]* (spec.md
// §4.8, looser than message/enum names: either case may start it).
func IsMethodName(s string) bool {
	if s == "" || !isAlpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(isAlpha(c) || isDigit(c) || c == '_') {
			return false
		}
	}
	return true
}

// IsEnumValueName reports whether s matches [A-Z_][A-Z0-9_]* (spec.md §4.8).
func IsEnumValueName(s string) bool {
	if s == "" {
		return false
	}
	if !(isUpper(s[0]) || s[0] == '_') {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(isUpper(c) || isDigit(c) || c == '_') {
			return false
		}
	}
	return true
}

// IsScreamingSnakeCase reports whether s looks like SCREAMING_SNAKE_CASE:
// every letter is uppercase and it has at least two `_`-separated segments,
// each containing a letter or digit (e.g. "FOO_BAR", not a single-word name
// like "M" or "R"). Message names must not look like this (spec.md §4.4).
func IsScreamingSnakeCase(s string) bool {
	segments := 0
	segHasContent := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isLower(c) {
			return false
		}
		if c == '_' {
			if segHasContent {
				segments++
				segHasContent = false
			}
			continue
		}
		segHasContent = true
	}
	if segHasContent {
		segments++
	}
	return segments >= 2
}

// IsPackageComponent reports whether s matches [a-z][a-z0-9_]*, the
// charset for one dot-separated package component (spec.md §4.6).
func IsPackageComponent(s string) bool {
	if s == "" || !isLower(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(isLower(c) || isDigit(c) || c == '_') {
			return false
		}
	}
	return true
}

// IsPlainIdentifier reports whether s matches [A-Za-z_][A-Za-z0-9_]*, the
// charset used for option names and custom-option path components.
func IsPlainIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if !(isAlpha(s[0]) || s[0] == '_') {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(isAlpha(c) || isDigit(c) || c == '_') {
			return false
		}
	}
	return true
}

// PackableScalars is the set of scalar kinds (by name) that support the
// `packed` option when repeated (spec.md §4.3).
var PackableScalars = map[string]bool{
	"int32": true, "int64": true, "uint32": true, "uint64": true,
	"sint32": true, "sint64": true, "fixed32": true, "fixed64": true,
	"sfixed32": true, "sfixed64": true, "float": true, "double": true,
	"bool": true,
}

// MapKeyScalars is the set of scalar kinds (by name) permitted as a map
// key type (spec.md §4.3): every scalar except double, float, and bytes.
var MapKeyScalars = map[string]bool{
	"int32": true, "int64": true, "uint32": true, "uint64": true,
	"sint32": true, "sint64": true, "fixed32": true, "fixed64": true,
	"sfixed32": true, "sfixed64": true, "bool": true, "string": true,
}

// JSONName derives the default JSON name for a field (lowerCamelCase of
// its proto name), per SPEC_FULL.md §8.
func JSONName(fieldName string) string {
	out := make([]byte, 0, len(fieldName))
	upperNext := false
	for i := 0; i < len(fieldName); i++ {
		c := fieldName[i]
		if c == '_' {
			upperNext = true
			continue
		}
		if upperNext && isLower(c) {
			c -= 'a' - 'A'
			upperNext = false
		}
		out = append(out, c)
	}
	return string(out)
}

// CapitalizeFirst uppercases the first ASCII letter of s, leaving the
// rest unchanged (used to derive a map entry message's name from its
// field name, spec.md §4.9.2).
func CapitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	if isLower(s[0]) {
		return string(s[0]-('a'-'A')) + s[1:]
	}
	return s
}

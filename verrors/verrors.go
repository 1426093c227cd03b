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

// Package verrors holds the closed taxonomy of ValidationError variants
// from spec.md §7. Each is a concrete Go type carrying only its semantic
// payload; callers attach a source position with reporter.Error/Errorf at
// the point the violation is reported.
package verrors

import (
	"fmt"
	"strings"
)

// InvalidSyntaxVersion is reported when a file's syntax is not "proto3".
type InvalidSyntaxVersion struct{ Got string }

func (e *InvalidSyntaxVersion) Error() string {
	return fmt.Sprintf("unsupported syntax %q: only proto3 is accepted", e.Got)
}

// InvalidPackageName is reported for a malformed package declaration.
type InvalidPackageName struct {
	Name   string
	Reason string
}

func (e *InvalidPackageName) Error() string {
	return fmt.Sprintf("invalid package name %q: %s", e.Name, e.Reason)
}

// InvalidImport is reported for a malformed import declaration.
type InvalidImport struct {
	Path   string
	Reason string
}

func (e *InvalidImport) Error() string {
	return fmt.Sprintf("invalid import %q: %s", e.Path, e.Reason)
}

// CircularImport is reported when a file transitively imports itself.
// (Import-graph construction belongs to the external resolver; the core
// only surfaces this if asked to validate a cycle it can see directly.)
type CircularImport struct{ Path []string }

func (e *CircularImport) Error() string {
	return fmt.Sprintf("circular import: %s", strings.Join(e.Path, " -> "))
}

// InvalidMessageName is reported for a message name violating the
// identifier charset or casing rule.
type InvalidMessageName struct{ Name string }

func (e *InvalidMessageName) Error() string {
	return fmt.Sprintf("invalid message name %q", e.Name)
}

// InvalidEnumName is reported for an enum name violating the identifier
// charset.
type InvalidEnumName struct{ Name string }

func (e *InvalidEnumName) Error() string {
	return fmt.Sprintf("invalid enum name %q", e.Name)
}

// InvalidEnumValueName is reported for an enum value name violating the
// identifier charset.
type InvalidEnumValueName struct{ Name string }

func (e *InvalidEnumValueName) Error() string {
	return fmt.Sprintf("invalid enum value name %q", e.Name)
}

// InvalidServiceName is reported for a service name violating the
// identifier charset.
type InvalidServiceName struct{ Name string }

func (e *InvalidServiceName) Error() string {
	return fmt.Sprintf("invalid service name %q", e.Name)
}

// InvalidMethodName is reported for an RPC method name violating the
// identifier charset.
type InvalidMethodName struct{ Name string }

func (e *InvalidMethodName) Error() string {
	return fmt.Sprintf("invalid method name %q", e.Name)
}

// InvalidFieldName is reported for a field name violating the identifier
// charset.
type InvalidFieldName struct{ Name string }

func (e *InvalidFieldName) Error() string {
	return fmt.Sprintf("invalid field name %q", e.Name)
}

// InvalidOptionName is reported for an option whose name is not a legal
// identifier (or, for custom options, whose dotted path segments aren't).
type InvalidOptionName struct{ Name string }

func (e *InvalidOptionName) Error() string {
	return fmt.Sprintf("invalid option name %q", e.Name)
}

// DuplicateTypeName is reported when two definitions share a fully
// qualified name (invariant 1 of spec.md §3.3).
type DuplicateTypeName struct {
	FQN      string
	Previous string // human-readable location of the earlier definition
}

func (e *DuplicateTypeName) Error() string {
	return fmt.Sprintf("%q is already defined (previous definition at %s)", e.FQN, e.Previous)
}

// DuplicateNestedTypeName is reported when a message declares two nested
// messages/enums with the same name.
type DuplicateNestedTypeName struct {
	Parent string
	Name   string
}

func (e *DuplicateNestedTypeName) Error() string {
	return fmt.Sprintf("%q already declares a nested type named %q", e.Parent, e.Name)
}

// DuplicateFieldName is reported when a message declares two fields (or
// oneof members) with the same name.
type DuplicateFieldName struct {
	Message string
	Name    string
}

func (e *DuplicateFieldName) Error() string {
	return fmt.Sprintf("field name %q is already used in message %q", e.Name, e.Message)
}

// DuplicateMessageFieldNumber is reported when two fields of a message
// share a number.
type DuplicateMessageFieldNumber struct {
	Message string
	Number  int
}

func (e *DuplicateMessageFieldNumber) Error() string {
	return fmt.Sprintf("field number %d is already used in message %q", e.Number, e.Message)
}

// DuplicateEnumValue is reported when two values of an enum (without
// allow_alias) share a number, or ever share a name.
type DuplicateEnumValue struct {
	Enum   string
	Number int32
	Name   string
}

func (e *DuplicateEnumValue) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("enum value name %q is already used in enum %q", e.Name, e.Enum)
	}
	return fmt.Sprintf("enum value %d is already used in enum %q (set allow_alias to permit aliases)", e.Number, e.Enum)
}

// DuplicateMethodName is reported when a service declares two methods
// with the same name.
type DuplicateMethodName struct {
	Service string
	Name    string
}

func (e *DuplicateMethodName) Error() string {
	return fmt.Sprintf("method name %q is already used in service %q", e.Name, e.Service)
}

// DuplicateOption is reported when the same option is set twice on one
// target.
type DuplicateOption struct{ Name string }

func (e *DuplicateOption) Error() string {
	return fmt.Sprintf("option %q is already set", e.Name)
}

// InvalidFieldNumber is reported for a field number outside
// [1, 536_870_911] \ [19000, 19999].
type InvalidFieldNumber struct {
	Number int
	Reason string
}

func (e *InvalidFieldNumber) Error() string {
	return fmt.Sprintf("invalid field number %d: %s", e.Number, e.Reason)
}

// ReservedFieldName is reported when a field uses a number or name that
// the message has reserved.
type ReservedFieldName struct {
	Message string
	Field   string
	Number  int
}

func (e *ReservedFieldName) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("field %q in message %q uses a reserved name", e.Field, e.Message)
	}
	return fmt.Sprintf("field number %d in message %q is reserved", e.Number, e.Message)
}

// InvalidMapKeyType is reported for a map field whose key type is not one
// of the permitted integral/bool/string scalars.
type InvalidMapKeyType struct{ KeyType string }

func (e *InvalidMapKeyType) Error() string {
	return fmt.Sprintf("invalid map key type %q", e.KeyType)
}

// InvalidMapValueType is reported for a map field whose value type is
// itself a map, and for a map field declared inside a oneof.
type InvalidMapValueType struct{ ValueType string }

func (e *InvalidMapValueType) Error() string {
	return fmt.Sprintf("invalid map value type %q", e.ValueType)
}

// RepeatedMapField is reported for a map field also marked repeated.
type RepeatedMapField struct{ Field string }

func (e *RepeatedMapField) Error() string {
	return fmt.Sprintf("map field %q must not be repeated", e.Field)
}

// OptionalMapField is reported for a map field also marked optional.
type OptionalMapField struct{ Field string }

func (e *OptionalMapField) Error() string {
	return fmt.Sprintf("map field %q must not be optional", e.Field)
}

// RepeatedOneof is reported for a oneof member field marked repeated.
type RepeatedOneof struct{ Field string }

func (e *RepeatedOneof) Error() string {
	return fmt.Sprintf("oneof field %q must not be repeated", e.Field)
}

// OptionalOneof is reported for a oneof member field marked optional.
type OptionalOneof struct{ Field string }

func (e *OptionalOneof) Error() string {
	return fmt.Sprintf("oneof field %q must not be optional", e.Field)
}

// EmptyOneof is reported for a oneof declared with no member fields.
type EmptyOneof struct{ Name string }

func (e *EmptyOneof) Error() string {
	return fmt.Sprintf("oneof %q must have at least one field", e.Name)
}

// UnpackableFieldType is reported when `packed` is set on a field whose
// type cannot be packed.
type UnpackableFieldType struct {
	Field string
	Type  string
}

func (e *UnpackableFieldType) Error() string {
	return fmt.Sprintf("field %q of type %s cannot be packed", e.Field, e.Type)
}

// FirstEnumValueNotZero is reported when an enum's first value is not 0.
type FirstEnumValueNotZero struct{ Enum string }

func (e *FirstEnumValueNotZero) Error() string {
	return fmt.Sprintf("first value of enum %q must be 0", e.Enum)
}

// EmptyEnum is reported when an enum declares no values.
type EmptyEnum struct{ Enum string }

func (e *EmptyEnum) Error() string {
	return fmt.Sprintf("enum %q must declare at least one value", e.Enum)
}

// InvalidOptionValue is reported when an option's value does not match
// its expected shape (spec.md §4.7).
type InvalidOptionValue struct {
	Option string
	Reason string
}

func (e *InvalidOptionValue) Error() string {
	return fmt.Sprintf("invalid value for option %q: %s", e.Option, e.Reason)
}

// UnknownOption is reported for a non-custom option name not recognized
// for its target.
type UnknownOption struct {
	Name   string
	Target string
}

func (e *UnknownOption) Error() string {
	return fmt.Sprintf("unknown option %q for %s", e.Name, e.Target)
}

// UndefinedType is reported when a Named type reference cannot be
// resolved (spec.md §4.2).
type UndefinedType struct {
	Ref          string
	ReferencedIn string
}

func (e *UndefinedType) Error() string {
	if e.ReferencedIn != "" {
		return fmt.Sprintf("%s: unknown type %q", e.ReferencedIn, e.Ref)
	}
	return fmt.Sprintf("unknown type %q", e.Ref)
}

// CyclicDependency is reported when the message->message dependency graph
// contains a cycle (spec.md §4.5). Path's first and last elements are the
// same FQN, the node at which the cycle was detected.
type CyclicDependency struct{ Path []string }

func (e *CyclicDependency) Error() string {
	return fmt.Sprintf("cyclic dependency detected: %s", strings.Join(e.Path, " -> "))
}

// Custom wraps a condition that doesn't fit the closed taxonomy.
type Custom struct{ Message string }

func (e *Custom) Error() string { return e.Message }

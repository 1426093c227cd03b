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

// Package ast defines the tree the validator consumes. It intentionally
// has nothing to do with lexing or parsing: callers (a parser, a
// descriptor-proto-to-AST bridge, or a test) build these values directly.
package ast

import "fmt"

// SourcePos is a 1-based line/column location in a proto source file.
type SourcePos struct {
	Filename string
	Line     int
	Col      int
}

func (p SourcePos) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Col)
}

// IsZero reports whether the position carries no location information.
func (p SourcePos) IsZero() bool {
	return p.Line == 0 && p.Col == 0
}

// Comments holds the verbatim leading/trailing comment text attached to a
// node, passed through unmodified by the descriptor builder (spec.md §4.9.6).
type Comments struct {
	Leading  []string
	Trailing []string
}

// ImportModifier distinguishes plain, public, and weak imports.
type ImportModifier int

const (
	ImportPlain ImportModifier = iota
	ImportPublic
	ImportWeak
)

func (m ImportModifier) String() string {
	switch m {
	case ImportPublic:
		return "public"
	case ImportWeak:
		return "weak"
	default:
		return "plain"
	}
}

// Import is one entry in a File's import list.
type Import struct {
	Path     string
	Modifier ImportModifier
	Pos      SourcePos
}

// File is the root of the AST: one compilation unit.
type File struct {
	// Name is the file's resolved path, used only for error messages; it is
	// not interpreted by the validator.
	Name string

	Syntax    string
	SyntaxPos SourcePos

	Package    string
	PackagePos SourcePos

	Imports  []*Import
	Options  []*Option
	Messages []*Message
	Enums    []*Enum
	Services []*Service

	Comments Comments
}

// Label is a field's cardinality.
type Label int

const (
	LabelSingular Label = iota
	LabelRepeated
	LabelOptional
)

func (l Label) String() string {
	switch l {
	case LabelRepeated:
		return "repeated"
	case LabelOptional:
		return "optional"
	default:
		return "singular"
	}
}

// ScalarKind enumerates the proto3 scalar types.
type ScalarKind int

const (
	Double ScalarKind = iota
	Float
	Int32
	Int64
	UInt32
	UInt64
	SInt32
	SInt64
	Fixed32
	Fixed64
	SFixed32
	SFixed64
	Bool
	String
	Bytes
)

var scalarNames = map[ScalarKind]string{
	Double: "double", Float: "float", Int32: "int32", Int64: "int64",
	UInt32: "uint32", UInt64: "uint64", SInt32: "sint32", SInt64: "sint64",
	Fixed32: "fixed32", Fixed64: "fixed64", SFixed32: "sfixed32", SFixed64: "sfixed64",
	Bool: "bool", String: "string", Bytes: "bytes",
}

func (s ScalarKind) String() string {
	if n, ok := scalarNames[s]; ok {
		return n
	}
	return "unknown"
}

// TypeKind discriminates the tagged Type sum.
type TypeKind int

const (
	KindScalar TypeKind = iota
	KindNamed
	KindMap
)

// Type is the tagged sum described in spec.md §3.1: Scalar(S), Named(path),
// or Map(key, value).
type Type struct {
	Kind TypeKind

	// Valid when Kind == KindScalar.
	Scalar ScalarKind

	// Valid when Kind == KindNamed. Name is exactly as written in source:
	// it may be bare, dotted, or leading-dotted. Resolved is populated by
	// the reference resolver once the reference has been looked up.
	Name     string
	Resolved string

	// Valid when Kind == KindMap.
	MapKey   ScalarKind
	MapValue *Type

	Pos SourcePos
}

func ScalarType(s ScalarKind) *Type {
	return &Type{Kind: KindScalar, Scalar: s}
}

func NamedType(name string, pos SourcePos) *Type {
	return &Type{Kind: KindNamed, Name: name, Pos: pos}
}

func MapType(key ScalarKind, value *Type, pos SourcePos) *Type {
	return &Type{Kind: KindMap, MapKey: key, MapValue: value, Pos: pos}
}

func (t *Type) IsMap() bool {
	return t != nil && t.Kind == KindMap
}

func (t *Type) String() string {
	switch t.Kind {
	case KindScalar:
		return t.Scalar.String()
	case KindNamed:
		return t.Name
	case KindMap:
		return fmt.Sprintf("map<%s,%s>", t.MapKey, t.MapValue)
	default:
		return "<invalid type>"
	}
}

// Field is a message or oneof field.
type Field struct {
	Name      string
	NamePos   SourcePos
	Number    int
	NumberPos SourcePos
	Type      *Type
	Label     Label

	// OneofIndex is the index into the parent message's Oneofs slice, or -1
	// if this field does not belong to a oneof.
	OneofIndex int

	Options []*Option
	Pos     SourcePos

	Comments Comments
}

func (f *Field) InOneof() bool { return f.OneofIndex >= 0 }

// ReservedRange is a single reserved number (Start == End) or a closed
// range of reserved numbers.
type ReservedRange struct {
	Start, End int
	Pos        SourcePos
}

// ReservedName is a single reserved field name.
type ReservedName struct {
	Name string
	Pos  SourcePos
}

// Oneof groups a set of mutually-exclusive fields. Member fields live in
// the owning Message's Fields slice (each with OneofIndex set); Oneof
// itself only carries the group's own name and options, mirroring how a
// real descriptor stores oneofs versus fields.
type Oneof struct {
	Name    string
	NamePos SourcePos
	Options []*Option
	Pos     SourcePos

	Comments Comments
}

// Message is a proto3 message definition, possibly nested.
type Message struct {
	Name    string
	NamePos SourcePos

	Fields   []*Field
	Oneofs   []*Oneof
	Messages []*Message
	Enums    []*Enum

	Reserved      []*ReservedRange
	ReservedNames []*ReservedName

	// ExtensionRanges is non-empty only on malformed proto3 input; proto3
	// never declares extension ranges (SPEC_FULL.md §8), so a populated
	// slice here is itself an error condition, not something to translate.
	ExtensionRanges []*ReservedRange

	Options []*Option
	Pos     SourcePos

	Comments Comments
}

// EnumValue is a single named/numbered member of an Enum.
type EnumValue struct {
	Name      string
	NamePos   SourcePos
	Number    int32
	NumberPos SourcePos
	Options   []*Option
	Pos       SourcePos

	Comments Comments
}

// Enum is a proto3 enum definition, possibly nested.
type Enum struct {
	Name    string
	NamePos SourcePos
	Values  []*EnumValue
	Options []*Option
	Pos     SourcePos

	Comments Comments
}

// RPC is a single method of a Service.
type RPC struct {
	Name      string
	NamePos   SourcePos
	InputType string
	InputPos  SourcePos

	OutputType string
	OutputPos  SourcePos

	ClientStreaming bool
	ServerStreaming bool

	// ResolvedInput/ResolvedOutput are populated by the reference resolver.
	ResolvedInput  string
	ResolvedOutput string

	Options []*Option
	Pos     SourcePos

	Comments Comments
}

// Service is a proto3 service definition.
type Service struct {
	Name    string
	NamePos SourcePos
	RPCs    []*RPC
	Options []*Option
	Pos     SourcePos

	Comments Comments
}

// OptionValueKind discriminates the tagged OptionValue sum.
type OptionValueKind int

const (
	ValString OptionValueKind = iota
	ValNumber
	ValIdentifier
	ValBool
	ValArray
	ValMap
)

// OptionValue is the typed value language described in spec.md §3.1/§4.7.
type OptionValue struct {
	Kind OptionValueKind

	Str   string
	Num   float64
	Ident string
	Bool  bool
	Array []*OptionValue
	// MapKeys/MapValues hold field-name -> value pairs for a message-literal value,
	// in source order (order matters for reporting the first offending
	// entry, per §7's "earliest source position" propagation policy).
	MapKeys   []string
	MapValues []*OptionValue

	Pos SourcePos
}

// Option is either a plain well-known option (Name has no dot, no
// parens) or a custom option `(dotted.name)[.subfield...]`.
type Option struct {
	// Name is the option's simple name for well-known options (e.g.
	// "deprecated"), or the full textual name as written, including
	// parens, for custom options (e.g. "(my.pkg.ext).field").
	Name string

	// Custom is true for options written with a parenthesized extension
	// name.
	Custom bool

	// PathParts is the dotted path for custom options: PathParts[0] is the
	// parenthesized extension name (without parens), subsequent entries
	// are subfield accesses.
	PathParts []string

	Value *OptionValue
	Pos   SourcePos
}

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

// Package astbridge adapts a compiled google.protobuf FileDescriptorProto
// (the output of protoc/buf, or of this module's own descriptor builder)
// back into an *ast.File. Lexing and parsing proto3 source text are
// deliberately out of scope for this module (spec.md §1's "deliberately
// out of scope" list), so the CLI front-end exercises the validator
// against real proto artifacts it already understands the wire shape of,
// rather than against a hand-rolled source parser.
//
// The reconstruction is structural, not exhaustive: it recovers names,
// numbers, types, labels, oneof membership, reserved ranges/names and
// service shapes faithfully, but does not reconstruct descriptor-level
// recognized options back into ast.Option form (a descriptor's options
// were already valid when it was produced, so round-tripping them adds
// nothing to a re-validation pass). Custom/uninterpreted options are
// likewise not recovered.
package astbridge

import (
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/truewebber/swift-protoparser-sub001/ast"
	"github.com/truewebber/swift-protoparser-sub001/symtab"
)

// FromDescriptor reconstructs an *ast.File from fd.
func FromDescriptor(fd *descriptorpb.FileDescriptorProto) *ast.File {
	f := &ast.File{
		Name:    fd.GetName(),
		Syntax:  fd.GetSyntax(),
		Package: fd.GetPackage(),
	}
	if f.Syntax == "" {
		f.Syntax = "proto3"
	}

	public := map[int32]bool{}
	for _, i := range fd.GetPublicDependency() {
		public[i] = true
	}
	weak := map[int32]bool{}
	for _, i := range fd.GetWeakDependency() {
		weak[i] = true
	}
	for i, dep := range fd.GetDependency() {
		mod := ast.ImportPlain
		switch {
		case public[int32(i)]:
			mod = ast.ImportPublic
		case weak[int32(i)]:
			mod = ast.ImportWeak
		}
		f.Imports = append(f.Imports, &ast.Import{Path: dep, Modifier: mod})
	}

	for _, dp := range fd.GetMessageType() {
		f.Messages = append(f.Messages, messageFrom(dp))
	}
	for _, ed := range fd.GetEnumType() {
		f.Enums = append(f.Enums, enumFrom(ed))
	}
	for _, sd := range fd.GetService() {
		f.Services = append(f.Services, serviceFrom(sd))
	}
	return f
}

func messageFrom(dp *descriptorpb.DescriptorProto) *ast.Message {
	m := &ast.Message{Name: dp.GetName()}

	mapEntries := map[string]*descriptorpb.DescriptorProto{}
	for _, nt := range dp.GetNestedType() {
		if nt.GetOptions().GetMapEntry() {
			mapEntries[nt.GetName()] = nt
			continue
		}
		m.Messages = append(m.Messages, messageFrom(nt))
	}

	for _, oe := range dp.GetOneofDecl() {
		m.Oneofs = append(m.Oneofs, &ast.Oneof{Name: oe.GetName()})
	}

	for _, fld := range dp.GetField() {
		if entry, ok := mapEntryFor(fld, mapEntries); ok {
			m.Fields = append(m.Fields, mapFieldFrom(fld, entry))
			continue
		}
		m.Fields = append(m.Fields, fieldFrom(fld))
	}

	for _, ed := range dp.GetEnumType() {
		m.Enums = append(m.Enums, enumFrom(ed))
	}

	for _, rr := range dp.GetReservedRange() {
		m.Reserved = append(m.Reserved, &ast.ReservedRange{Start: int(rr.GetStart()), End: int(rr.GetEnd()) - 1})
	}
	for _, n := range dp.GetReservedName() {
		m.ReservedNames = append(m.ReservedNames, &ast.ReservedName{Name: n})
	}
	for _, er := range dp.GetExtensionRange() {
		m.ExtensionRanges = append(m.ExtensionRanges, &ast.ReservedRange{Start: int(er.GetStart()), End: int(er.GetEnd()) - 1})
	}
	return m
}

// mapEntryFor reports whether fld's declared type is one of the message's
// own synthesized map-entry nested types, returning that entry's
// DescriptorProto if so.
func mapEntryFor(fld *descriptorpb.FieldDescriptorProto, entries map[string]*descriptorpb.DescriptorProto) (*descriptorpb.DescriptorProto, bool) {
	if fld.GetType() != descriptorpb.FieldDescriptorProto_TYPE_MESSAGE {
		return nil, false
	}
	name := stripLeadingDot(fld.GetTypeName())
	simple := name
	if i := strings.LastIndex(name, "."); i >= 0 {
		simple = name[i+1:]
	}
	entry, ok := entries[simple]
	return entry, ok
}

func mapFieldFrom(fld *descriptorpb.FieldDescriptorProto, entry *descriptorpb.DescriptorProto) *ast.Field {
	var keyScalar ast.ScalarKind
	var valueType *ast.Type
	for _, ef := range entry.GetField() {
		switch ef.GetNumber() {
		case 1:
			keyScalar = scalarFrom(ef.GetType())
		case 2:
			valueType = typeFrom(ef)
		}
	}
	return &ast.Field{
		Name:       fld.GetName(),
		Number:     int(fld.GetNumber()),
		Type:       ast.MapType(keyScalar, valueType, ast.SourcePos{}),
		Label:      ast.LabelSingular,
		OneofIndex: -1,
	}
}

func fieldFrom(fld *descriptorpb.FieldDescriptorProto) *ast.Field {
	f := &ast.Field{
		Name:       fld.GetName(),
		Number:     int(fld.GetNumber()),
		Type:       typeFrom(fld),
		OneofIndex: -1,
	}
	switch {
	case fld.GetProto3Optional():
		f.Label = ast.LabelOptional
	case fld.GetLabel() == descriptorpb.FieldDescriptorProto_LABEL_REPEATED:
		f.Label = ast.LabelRepeated
	default:
		f.Label = ast.LabelSingular
	}
	if fld.OneofIndex != nil && !fld.GetProto3Optional() {
		f.OneofIndex = int(fld.GetOneofIndex())
	}
	return f
}

func typeFrom(fld *descriptorpb.FieldDescriptorProto) *ast.Type {
	switch fld.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		return ast.NamedType(stripLeadingDot(fld.GetTypeName()), ast.SourcePos{})
	default:
		return ast.ScalarType(scalarFrom(fld.GetType()))
	}
}

func scalarFrom(t descriptorpb.FieldDescriptorProto_Type) ast.ScalarKind {
	switch t {
	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		return ast.Double
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		return ast.Float
	case descriptorpb.FieldDescriptorProto_TYPE_INT64:
		return ast.Int64
	case descriptorpb.FieldDescriptorProto_TYPE_UINT64:
		return ast.UInt64
	case descriptorpb.FieldDescriptorProto_TYPE_INT32:
		return ast.Int32
	case descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		return ast.Fixed64
	case descriptorpb.FieldDescriptorProto_TYPE_FIXED32:
		return ast.Fixed32
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return ast.Bool
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		return ast.String
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		return ast.Bytes
	case descriptorpb.FieldDescriptorProto_TYPE_UINT32:
		return ast.UInt32
	case descriptorpb.FieldDescriptorProto_TYPE_SFIXED32:
		return ast.SFixed32
	case descriptorpb.FieldDescriptorProto_TYPE_SFIXED64:
		return ast.SFixed64
	case descriptorpb.FieldDescriptorProto_TYPE_SINT32:
		return ast.SInt32
	case descriptorpb.FieldDescriptorProto_TYPE_SINT64:
		return ast.SInt64
	default:
		return ast.String
	}
}

func enumFrom(ed *descriptorpb.EnumDescriptorProto) *ast.Enum {
	e := &ast.Enum{Name: ed.GetName()}
	for _, v := range ed.GetValue() {
		e.Values = append(e.Values, &ast.EnumValue{Name: v.GetName(), Number: v.GetNumber()})
	}
	return e
}

func serviceFrom(sd *descriptorpb.ServiceDescriptorProto) *ast.Service {
	s := &ast.Service{Name: sd.GetName()}
	for _, md := range sd.GetMethod() {
		s.RPCs = append(s.RPCs, &ast.RPC{
			Name:            md.GetName(),
			InputType:       stripLeadingDot(md.GetInputType()),
			OutputType:      stripLeadingDot(md.GetOutputType()),
			ClientStreaming: md.GetClientStreaming(),
			ServerStreaming: md.GetServerStreaming(),
		})
	}
	return s
}

func stripLeadingDot(s string) string {
	return strings.TrimPrefix(s, ".")
}

// ImportedTypesFromSet builds the Imported-Types table spec.md §6 requires
// the caller to populate before validation: every top-level message and
// enum name of every file in set other than target, mapped to that file's
// path. This is a simplification of "every symbol reachable through
// transitively public imports" (it does not walk the public-import
// closure), adequate for a CLI that validates one file against its
// directly supplied dependency set.
func ImportedTypesFromSet(set []*descriptorpb.FileDescriptorProto, target string) symtab.ImportedTypes {
	out := symtab.ImportedTypes{}
	for _, fd := range set {
		if fd.GetName() == target {
			continue
		}
		for _, m := range fd.GetMessageType() {
			out[m.GetName()] = fd.GetName()
		}
		for _, e := range fd.GetEnumType() {
			out[e.GetName()] = fd.GetName()
		}
	}
	return out
}

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

// Package descriptor implements C7, the Descriptor Builder (spec.md
// §4.9): a pure translation from a validated *ast.File into a
// google.protobuf FileDescriptorProto. It assumes the file already passed
// the rule validators; it performs no semantic checks of its own.
package descriptor

import (
	"sort"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/truewebber/swift-protoparser-sub001/ast"
	"github.com/truewebber/swift-protoparser-sub001/internal"
	"github.com/truewebber/swift-protoparser-sub001/resolve"
	"github.com/truewebber/swift-protoparser-sub001/symtab"
)

// Field numbers within FileDescriptorProto and its children, as fixed by
// descriptor.proto. Source-code-info paths are built from these (spec.md
// §4.9.6).
const (
	fileMessageTypeField = 4
	fileEnumTypeField    = 5
	fileServiceField     = 6

	messageFieldField      = 2
	messageNestedTypeField = 3
	messageEnumTypeField   = 4

	serviceMethodField = 2
)

// Options configures the translation; GenerateSourceInfo mirrors the
// `generateSourceInfo` configuration knob of spec.md §6.
type Options struct {
	GenerateSourceInfo bool
}

// Build translates f into a FileDescriptorProto, using st to look up
// whether a Named reference resolved to a message or an enum (needed to
// pick TYPE_MESSAGE vs TYPE_ENUM) and pkg as the file's declared package.
func Build(f *ast.File, st *symtab.State, pkg string, opts Options) *descriptorpb.FileDescriptorProto {
	b := &builder{st: st, pkg: pkg, opts: opts}

	fd := &descriptorpb.FileDescriptorProto{
		Name:   proto.String(f.Name),
		Syntax: proto.String("proto3"),
	}
	if pkg != "" {
		fd.Package = proto.String(pkg)
	}

	for i, imp := range f.Imports {
		fd.Dependency = append(fd.Dependency, imp.Path)
		switch imp.Modifier {
		case ast.ImportPublic:
			fd.PublicDependency = append(fd.PublicDependency, int32(i))
		case ast.ImportWeak:
			fd.WeakDependency = append(fd.WeakDependency, int32(i))
		}
	}

	fd.Options = buildFileOptions(f.Options)

	for i, m := range f.Messages {
		fd.MessageType = append(fd.MessageType, b.buildMessage(m, qualify(pkg, m.Name)))
		if opts.GenerateSourceInfo {
			b.walkMessageSourceInfo(m, []int32{fileMessageTypeField, int32(i)})
		}
	}
	for i, e := range f.Enums {
		fd.EnumType = append(fd.EnumType, buildEnum(e))
		if opts.GenerateSourceInfo {
			b.addLocation([]int32{fileEnumTypeField, int32(i)}, e.Comments)
		}
	}
	for i, s := range f.Services {
		fd.Service = append(fd.Service, buildService(s))
		if opts.GenerateSourceInfo {
			b.walkServiceSourceInfo(s, []int32{fileServiceField, int32(i)})
		}
	}

	if opts.GenerateSourceInfo {
		fd.SourceCodeInfo = &descriptorpb.SourceCodeInfo{Location: b.locations}
	}
	return fd
}

// builder accumulates the state needed across the recursive translation:
// the Symbol Table (to tell messages from enums) and, optionally, the
// flattened source-code-info location list.
type builder struct {
	st        *symtab.State
	pkg       string
	opts      Options
	locations []*descriptorpb.SourceCodeInfo_Location
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// buildMessage translates m, whose fully qualified name is fqn, into a
// DescriptorProto. Map fields synthesize their entry message inline, per
// spec.md §4.9.2.
func (b *builder) buildMessage(m *ast.Message, fqn string) *descriptorpb.DescriptorProto {
	dp := &descriptorpb.DescriptorProto{Name: proto.String(m.Name)}

	for _, o := range m.Oneofs {
		dp.OneofDecl = append(dp.OneofDecl, &descriptorpb.OneofDescriptorProto{Name: proto.String(o.Name)})
	}

	for _, f := range m.Fields {
		if f.Type != nil && f.Type.Kind == ast.KindMap {
			entryName := internal.CapitalizeFirst(f.Name) + "Entry"
			dp.NestedType = append(dp.NestedType, buildMapEntry(entryName, f.Type))
			dp.Field = append(dp.Field, b.buildMapField(f, entryName))
			continue
		}
		dp.Field = append(dp.Field, b.buildField(f))
	}

	for _, nested := range m.Messages {
		dp.NestedType = append(dp.NestedType, b.buildMessage(nested, fqn+"."+nested.Name))
	}
	for _, e := range m.Enums {
		dp.EnumType = append(dp.EnumType, buildEnum(e))
	}

	dp.ReservedRange = compressReservedRanges(m.Reserved)
	for _, n := range m.ReservedNames {
		dp.ReservedName = append(dp.ReservedName, n.Name)
	}

	dp.Options = buildMessageOptions(m.Options)
	return dp
}

// buildMapEntry synthesizes the `map_entry = true` nested message spec.md
// §4.9.2 requires for a map<K,V> field.
func buildMapEntry(name string, mapType *ast.Type) *descriptorpb.DescriptorProto {
	keyField := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String("key"),
		Number: proto.Int32(1),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   scalarDescriptorType(mapType.MapKey).Enum(),
	}
	valueField := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String("value"),
		Number: proto.Int32(2),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
	}
	if mapType.MapValue.Kind == ast.KindScalar {
		valueField.Type = scalarDescriptorType(mapType.MapValue.Scalar).Enum()
	} else {
		valueField.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
		valueField.TypeName = proto.String(resolve.Canonical(mapType.MapValue.Name, mapType.MapValue.Resolved))
	}
	return &descriptorpb.DescriptorProto{
		Name:    proto.String(name),
		Field:   []*descriptorpb.FieldDescriptorProto{keyField, valueField},
		Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
	}
}

// buildMapField rewrites the original map field declaration per spec.md
// §4.9.2(b): repeated message referencing its synthesized entry type.
func (b *builder) buildMapField(f *ast.Field, entryName string) *descriptorpb.FieldDescriptorProto {
	fp := &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(f.Name),
		Number:   proto.Int32(int32(f.Number)),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
		TypeName: proto.String("." + entryName),
		JsonName: proto.String(jsonNameOf(f)),
	}
	return fp
}

func (b *builder) buildField(f *ast.Field) *descriptorpb.FieldDescriptorProto {
	fp := &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(f.Name),
		Number:   proto.Int32(int32(f.Number)),
		JsonName: proto.String(jsonNameOf(f)),
	}

	switch f.Label {
	case ast.LabelRepeated:
		fp.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	case ast.LabelOptional:
		fp.Label = descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum()
		fp.Proto3Optional = proto.Bool(true)
	default:
		fp.Label = descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum()
	}

	if f.InOneof() {
		fp.OneofIndex = proto.Int32(int32(f.OneofIndex))
	}

	switch f.Type.Kind {
	case ast.KindScalar:
		fp.Type = scalarDescriptorType(f.Type.Scalar).Enum()
	case ast.KindNamed:
		fqn := f.Type.Resolved
		fp.TypeName = proto.String(resolve.Canonical(f.Type.Name, fqn))
		if def, ok := b.st.Symbols.Lookup(fqn); ok && def.Kind == symtab.DefEnum {
			fp.Type = descriptorpb.FieldDescriptorProto_TYPE_ENUM.Enum()
		} else {
			fp.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
		}
	}

	fp.Options = buildFieldOptions(f.Options)
	return fp
}

// jsonNameOf returns an explicit json_name option's value if set, else the
// derived default (spec.md §4.9's descriptor contract, SPEC_FULL.md §8).
func jsonNameOf(f *ast.Field) string {
	for _, o := range f.Options {
		if !o.Custom && o.Name == "json_name" && o.Value != nil && o.Value.Kind == ast.ValString {
			return o.Value.Str
		}
	}
	return internal.JSONName(f.Name)
}

func buildEnum(e *ast.Enum) *descriptorpb.EnumDescriptorProto {
	ep := &descriptorpb.EnumDescriptorProto{Name: proto.String(e.Name)}
	for _, v := range e.Values {
		ep.Value = append(ep.Value, &descriptorpb.EnumValueDescriptorProto{
			Name:    proto.String(v.Name),
			Number:  proto.Int32(v.Number),
			Options: buildEnumValueOptions(v.Options),
		})
	}
	ep.Options = buildEnumOptions(e.Options)
	return ep
}

func buildService(s *ast.Service) *descriptorpb.ServiceDescriptorProto {
	sp := &descriptorpb.ServiceDescriptorProto{Name: proto.String(s.Name)}
	for _, rpc := range s.RPCs {
		sp.Method = append(sp.Method, &descriptorpb.MethodDescriptorProto{
			Name:            proto.String(rpc.Name),
			InputType:       proto.String(resolve.Canonical(rpc.InputType, rpc.ResolvedInput)),
			OutputType:      proto.String(resolve.Canonical(rpc.OutputType, rpc.ResolvedOutput)),
			ClientStreaming: proto.Bool(rpc.ClientStreaming),
			ServerStreaming: proto.Bool(rpc.ServerStreaming),
			Options:         buildMethodOptions(rpc.Options),
		})
	}
	sp.Options = buildServiceOptions(s.Options)
	return sp
}

func scalarDescriptorType(s ast.ScalarKind) descriptorpb.FieldDescriptorProto_Type {
	switch s {
	case ast.Double:
		return descriptorpb.FieldDescriptorProto_TYPE_DOUBLE
	case ast.Float:
		return descriptorpb.FieldDescriptorProto_TYPE_FLOAT
	case ast.Int32:
		return descriptorpb.FieldDescriptorProto_TYPE_INT32
	case ast.Int64:
		return descriptorpb.FieldDescriptorProto_TYPE_INT64
	case ast.UInt32:
		return descriptorpb.FieldDescriptorProto_TYPE_UINT32
	case ast.UInt64:
		return descriptorpb.FieldDescriptorProto_TYPE_UINT64
	case ast.SInt32:
		return descriptorpb.FieldDescriptorProto_TYPE_SINT32
	case ast.SInt64:
		return descriptorpb.FieldDescriptorProto_TYPE_SINT64
	case ast.Fixed32:
		return descriptorpb.FieldDescriptorProto_TYPE_FIXED32
	case ast.Fixed64:
		return descriptorpb.FieldDescriptorProto_TYPE_FIXED64
	case ast.SFixed32:
		return descriptorpb.FieldDescriptorProto_TYPE_SFIXED32
	case ast.SFixed64:
		return descriptorpb.FieldDescriptorProto_TYPE_SFIXED64
	case ast.Bool:
		return descriptorpb.FieldDescriptorProto_TYPE_BOOL
	case ast.String:
		return descriptorpb.FieldDescriptorProto_TYPE_STRING
	case ast.Bytes:
		return descriptorpb.FieldDescriptorProto_TYPE_BYTES
	default:
		return descriptorpb.FieldDescriptorProto_TYPE_STRING
	}
}

// compressReservedRanges implements spec.md §4.9.4: a sorted, uniqued
// sequence of reserved numbers is compressed into maximal contiguous
// ranges, with an exclusive end.
func compressReservedRanges(ranges []*ast.ReservedRange) []*descriptorpb.DescriptorProto_ReservedRange {
	if len(ranges) == 0 {
		return nil
	}
	numSet := map[int]bool{}
	for _, r := range ranges {
		for n := r.Start; n <= r.End; n++ {
			numSet[n] = true
		}
	}
	nums := make([]int, 0, len(numSet))
	for n := range numSet {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	var out []*descriptorpb.DescriptorProto_ReservedRange
	i := 0
	for i < len(nums) {
		start := nums[i]
		end := start
		for i+1 < len(nums) && nums[i+1] == end+1 {
			i++
			end = nums[i]
		}
		out = append(out, &descriptorpb.DescriptorProto_ReservedRange{
			Start: proto.Int32(int32(start)),
			End:   proto.Int32(int32(end + 1)),
		})
		i++
	}
	return out
}

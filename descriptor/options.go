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

package descriptor

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/truewebber/swift-protoparser-sub001/ast"
)

// uninterpretedOption converts an option the recognized-option tables
// don't (or can't) consume into the descriptor's uninterpreted_option
// representation, per spec.md §4.9.5.
func uninterpretedOption(o *ast.Option) *descriptorpb.UninterpretedOption {
	u := &descriptorpb.UninterpretedOption{}
	if o.Custom {
		for i, part := range o.PathParts {
			u.Name = append(u.Name, &descriptorpb.UninterpretedOption_NamePart{
				NamePart:    proto.String(part),
				IsExtension: proto.Bool(i == 0),
			})
		}
	} else {
		u.Name = append(u.Name, &descriptorpb.UninterpretedOption_NamePart{
			NamePart:    proto.String(o.Name),
			IsExtension: proto.Bool(false),
		})
	}
	if o.Value == nil {
		return u
	}
	switch o.Value.Kind {
	case ast.ValString:
		u.StringValue = []byte(o.Value.Str)
	case ast.ValIdentifier:
		u.IdentifierValue = proto.String(o.Value.Ident)
	case ast.ValBool:
		if o.Value.Bool {
			u.IdentifierValue = proto.String("true")
		} else {
			u.IdentifierValue = proto.String("false")
		}
	case ast.ValNumber:
		if o.Value.Num >= 0 {
			u.PositiveIntValue = proto.Uint64(uint64(o.Value.Num))
		} else {
			u.NegativeIntValue = proto.Int64(int64(o.Value.Num))
		}
		u.DoubleValue = proto.Float64(o.Value.Num)
	}
	return u
}

func buildFileOptions(opts []*ast.Option) *descriptorpb.FileOptions {
	if len(opts) == 0 {
		return nil
	}
	fo := &descriptorpb.FileOptions{}
	for _, o := range opts {
		if o.Custom || o.Value == nil {
			fo.UninterpretedOption = append(fo.UninterpretedOption, uninterpretedOption(o))
			continue
		}
		switch o.Name {
		case "java_package":
			fo.JavaPackage = proto.String(o.Value.Str)
		case "java_outer_classname":
			fo.JavaOuterClassname = proto.String(o.Value.Str)
		case "java_multiple_files":
			fo.JavaMultipleFiles = proto.Bool(o.Value.Bool)
		case "optimize_for":
			fo.OptimizeFor = optimizeModeValue(o.Value.Ident).Enum()
		case "cc_enable_arenas":
			fo.CcEnableArenas = proto.Bool(o.Value.Bool)
		case "go_package":
			fo.GoPackage = proto.String(o.Value.Str)
		case "cc_generic_services":
			fo.CcGenericServices = proto.Bool(o.Value.Bool)
		case "java_generic_services":
			fo.JavaGenericServices = proto.Bool(o.Value.Bool)
		case "py_generic_services":
			fo.PyGenericServices = proto.Bool(o.Value.Bool)
		case "objc_class_prefix":
			fo.ObjcClassPrefix = proto.String(o.Value.Str)
		case "csharp_namespace":
			fo.CsharpNamespace = proto.String(o.Value.Str)
		case "swift_prefix":
			fo.SwiftPrefix = proto.String(o.Value.Str)
		case "php_class_prefix":
			fo.PhpClassPrefix = proto.String(o.Value.Str)
		case "php_namespace":
			fo.PhpNamespace = proto.String(o.Value.Str)
		case "php_metadata_namespace":
			fo.PhpMetadataNamespace = proto.String(o.Value.Str)
		case "ruby_package":
			fo.RubyPackage = proto.String(o.Value.Str)
		default:
			fo.UninterpretedOption = append(fo.UninterpretedOption, uninterpretedOption(o))
		}
	}
	return fo
}

func optimizeModeValue(ident string) descriptorpb.FileOptions_OptimizeMode {
	switch ident {
	case "CODE_SIZE":
		return descriptorpb.FileOptions_CODE_SIZE
	case "LITE_RUNTIME":
		return descriptorpb.FileOptions_LITE_RUNTIME
	default:
		return descriptorpb.FileOptions_SPEED
	}
}

func buildMessageOptions(opts []*ast.Option) *descriptorpb.MessageOptions {
	if len(opts) == 0 {
		return nil
	}
	mo := &descriptorpb.MessageOptions{}
	for _, o := range opts {
		if o.Custom || o.Value == nil {
			mo.UninterpretedOption = append(mo.UninterpretedOption, uninterpretedOption(o))
			continue
		}
		switch o.Name {
		case "message_set_wire_format":
			mo.MessageSetWireFormat = proto.Bool(o.Value.Bool)
		case "no_standard_descriptor_accessor":
			mo.NoStandardDescriptorAccessor = proto.Bool(o.Value.Bool)
		case "deprecated":
			mo.Deprecated = proto.Bool(o.Value.Bool)
		case "map_entry":
			mo.MapEntry = proto.Bool(o.Value.Bool)
		default:
			mo.UninterpretedOption = append(mo.UninterpretedOption, uninterpretedOption(o))
		}
	}
	return mo
}

// buildFieldOptions builds FieldOptions from f's option list, skipping
// json_name: that recognized option populates FieldDescriptorProto.JsonName
// directly rather than FieldOptions (spec.md §4.9.5's "recognized options
// populate typed descriptor fields" covers both cases, just on different
// messages).
func buildFieldOptions(opts []*ast.Option) *descriptorpb.FieldOptions {
	var fo *descriptorpb.FieldOptions
	ensure := func() *descriptorpb.FieldOptions {
		if fo == nil {
			fo = &descriptorpb.FieldOptions{}
		}
		return fo
	}
	for _, o := range opts {
		if !o.Custom && o.Name == "json_name" {
			continue
		}
		if o.Custom || o.Value == nil {
			ensure().UninterpretedOption = append(ensure().UninterpretedOption, uninterpretedOption(o))
			continue
		}
		switch o.Name {
		case "ctype":
			ensure().Ctype = ctypeValue(o.Value.Ident).Enum()
		case "packed":
			ensure().Packed = proto.Bool(o.Value.Bool)
		case "jstype":
			ensure().Jstype = jstypeValue(o.Value.Ident).Enum()
		case "lazy":
			ensure().Lazy = proto.Bool(o.Value.Bool)
		case "deprecated":
			ensure().Deprecated = proto.Bool(o.Value.Bool)
		case "weak":
			ensure().Weak = proto.Bool(o.Value.Bool)
		default:
			ensure().UninterpretedOption = append(ensure().UninterpretedOption, uninterpretedOption(o))
		}
	}
	return fo
}

func ctypeValue(ident string) descriptorpb.FieldOptions_CType {
	switch ident {
	case "CORD":
		return descriptorpb.FieldOptions_CORD
	case "STRING_PIECE":
		return descriptorpb.FieldOptions_STRING_PIECE
	default:
		return descriptorpb.FieldOptions_STRING
	}
}

func jstypeValue(ident string) descriptorpb.FieldOptions_JSType {
	switch ident {
	case "JS_STRING":
		return descriptorpb.FieldOptions_JS_STRING
	case "JS_NUMBER":
		return descriptorpb.FieldOptions_JS_NUMBER
	default:
		return descriptorpb.FieldOptions_JS_NORMAL
	}
}

func buildEnumOptions(opts []*ast.Option) *descriptorpb.EnumOptions {
	if len(opts) == 0 {
		return nil
	}
	eo := &descriptorpb.EnumOptions{}
	for _, o := range opts {
		if o.Custom || o.Value == nil {
			eo.UninterpretedOption = append(eo.UninterpretedOption, uninterpretedOption(o))
			continue
		}
		switch o.Name {
		case "allow_alias":
			eo.AllowAlias = proto.Bool(o.Value.Bool)
		case "deprecated":
			eo.Deprecated = proto.Bool(o.Value.Bool)
		default:
			eo.UninterpretedOption = append(eo.UninterpretedOption, uninterpretedOption(o))
		}
	}
	return eo
}

func buildEnumValueOptions(opts []*ast.Option) *descriptorpb.EnumValueOptions {
	if len(opts) == 0 {
		return nil
	}
	vo := &descriptorpb.EnumValueOptions{}
	for _, o := range opts {
		if o.Custom || o.Value == nil {
			vo.UninterpretedOption = append(vo.UninterpretedOption, uninterpretedOption(o))
			continue
		}
		if o.Name == "deprecated" {
			vo.Deprecated = proto.Bool(o.Value.Bool)
			continue
		}
		vo.UninterpretedOption = append(vo.UninterpretedOption, uninterpretedOption(o))
	}
	return vo
}

func buildServiceOptions(opts []*ast.Option) *descriptorpb.ServiceOptions {
	if len(opts) == 0 {
		return nil
	}
	so := &descriptorpb.ServiceOptions{}
	for _, o := range opts {
		if o.Custom || o.Value == nil {
			so.UninterpretedOption = append(so.UninterpretedOption, uninterpretedOption(o))
			continue
		}
		if o.Name == "deprecated" {
			so.Deprecated = proto.Bool(o.Value.Bool)
			continue
		}
		so.UninterpretedOption = append(so.UninterpretedOption, uninterpretedOption(o))
	}
	return so
}

func buildMethodOptions(opts []*ast.Option) *descriptorpb.MethodOptions {
	if len(opts) == 0 {
		return nil
	}
	mo := &descriptorpb.MethodOptions{}
	for _, o := range opts {
		if o.Custom || o.Value == nil {
			mo.UninterpretedOption = append(mo.UninterpretedOption, uninterpretedOption(o))
			continue
		}
		switch o.Name {
		case "deprecated":
			mo.Deprecated = proto.Bool(o.Value.Bool)
		case "idempotency_level":
			mo.IdempotencyLevel = idempotencyLevelValue(o.Value.Ident).Enum()
		default:
			mo.UninterpretedOption = append(mo.UninterpretedOption, uninterpretedOption(o))
		}
	}
	return mo
}

func idempotencyLevelValue(ident string) descriptorpb.MethodOptions_IdempotencyLevel {
	switch ident {
	case "NO_SIDE_EFFECTS":
		return descriptorpb.MethodOptions_NO_SIDE_EFFECTS
	case "IDEMPOTENT":
		return descriptorpb.MethodOptions_IDEMPOTENT
	default:
		return descriptorpb.MethodOptions_IDEMPOTENCY_UNKNOWN
	}
}

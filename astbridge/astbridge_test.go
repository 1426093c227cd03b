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

package astbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	protocompile "github.com/truewebber/swift-protoparser-sub001"
	"github.com/truewebber/swift-protoparser-sub001/ast"
)

func TestFromDescriptorScalarFieldsAndLabels(t *testing.T) {
	t.Parallel()
	fd := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("f.proto"),
		Package: proto.String("pkg"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("M"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{
						Name: proto.String("a"), Number: proto.Int32(1),
						Type: descriptorpb.FieldDescriptorProto_TYPE_INT32.Enum(),
						Label: descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
					},
					{
						Name: proto.String("b"), Number: proto.Int32(2),
						Type: descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
						Label: descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
					},
					{
						Name: proto.String("c"), Number: proto.Int32(3),
						Type: descriptorpb.FieldDescriptorProto_TYPE_BOOL.Enum(),
						Label: descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
						Proto3Optional: proto.Bool(true),
					},
				},
			},
		},
	}

	f := FromDescriptor(fd)
	require.Len(t, f.Messages, 1)
	m := f.Messages[0]
	require.Len(t, m.Fields, 3)

	assert.Equal(t, ast.LabelSingular, m.Fields[0].Label)
	assert.Equal(t, ast.Int32, m.Fields[0].Type.Scalar)
	assert.Equal(t, -1, m.Fields[0].OneofIndex)

	assert.Equal(t, ast.LabelRepeated, m.Fields[1].Label)
	assert.Equal(t, ast.String, m.Fields[1].Type.Scalar)

	assert.Equal(t, ast.LabelOptional, m.Fields[2].Label)
}

func TestFromDescriptorMapFieldReconstructsMapType(t *testing.T) {
	t.Parallel()
	fd := &descriptorpb.FileDescriptorProto{
		Name: proto.String("f.proto"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Req"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{
						Name: proto.String("metadata"), Number: proto.Int32(1),
						Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
						TypeName: proto.String(".MetadataEntry"),
						Label:    descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
					},
				},
				NestedType: []*descriptorpb.DescriptorProto{
					{
						Name:    proto.String("MetadataEntry"),
						Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
						Field: []*descriptorpb.FieldDescriptorProto{
							{Name: proto.String("key"), Number: proto.Int32(1), Type: descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum()},
							{Name: proto.String("value"), Number: proto.Int32(2), Type: descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum()},
						},
					},
				},
			},
		},
	}

	f := FromDescriptor(fd)
	m := f.Messages[0]
	require.Empty(t, m.Messages, "map-entry nested type must not be reconstructed as a plain nested message")
	require.Len(t, m.Fields, 1)
	field := m.Fields[0]
	require.True(t, field.Type.IsMap())
	assert.Equal(t, ast.String, field.Type.MapKey)
	assert.Equal(t, ast.String, field.Type.MapValue.Scalar)
}

func TestFromDescriptorReservedRangesConvertToInclusiveEnd(t *testing.T) {
	t.Parallel()
	fd := &descriptorpb.FileDescriptorProto{
		Name: proto.String("f.proto"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("M"),
				ReservedRange: []*descriptorpb.DescriptorProto_ReservedRange{
					{Start: proto.Int32(2), End: proto.Int32(6)},
				},
				ReservedName: []string{"old_field"},
			},
		},
	}

	f := FromDescriptor(fd)
	m := f.Messages[0]
	require.Len(t, m.Reserved, 1)
	assert.Equal(t, 2, m.Reserved[0].Start)
	assert.Equal(t, 5, m.Reserved[0].End)
	require.Len(t, m.ReservedNames, 1)
	assert.Equal(t, "old_field", m.ReservedNames[0].Name)
}

func TestFromDescriptorServiceStreamingFlags(t *testing.T) {
	t.Parallel()
	fd := &descriptorpb.FileDescriptorProto{
		Name: proto.String("f.proto"),
		Service: []*descriptorpb.ServiceDescriptorProto{
			{
				Name: proto.String("S"),
				Method: []*descriptorpb.MethodDescriptorProto{
					{
						Name: proto.String("Stream"), InputType: proto.String(".pkg.Req"), OutputType: proto.String(".pkg.Resp"),
						ClientStreaming: proto.Bool(true), ServerStreaming: proto.Bool(true),
					},
				},
			},
		},
	}

	f := FromDescriptor(fd)
	require.Len(t, f.Services, 1)
	rpc := f.Services[0].RPCs[0]
	assert.Equal(t, "pkg.Req", rpc.InputType)
	assert.Equal(t, "pkg.Resp", rpc.OutputType)
	assert.True(t, rpc.ClientStreaming)
	assert.True(t, rpc.ServerStreaming)
}

func TestImportedTypesFromSetExcludesTarget(t *testing.T) {
	t.Parallel()
	set := []*descriptorpb.FileDescriptorProto{
		{
			Name:        proto.String("dep.proto"),
			MessageType: []*descriptorpb.DescriptorProto{{Name: proto.String("Dep")}},
		},
		{
			Name:        proto.String("target.proto"),
			MessageType: []*descriptorpb.DescriptorProto{{Name: proto.String("Local")}},
		},
	}

	imported := ImportedTypesFromSet(set, "target.proto")
	assert.Equal(t, "dep.proto", imported["Dep"])
	_, ok := imported["Local"]
	assert.False(t, ok)
}

// TestRoundTripDescriptorToASTToDescriptor builds a descriptor, reconstructs
// an AST from it, re-validates that AST, and checks the rebuilt descriptor
// carries the same map expansion and field shape as the original.
func TestRoundTripDescriptorToASTToDescriptor(t *testing.T) {
	t.Parallel()
	original := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("round.proto"),
		Package: proto.String("pkg"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Widget"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{
						Name: proto.String("id"), Number: proto.Int32(1),
						Type: descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
						Label: descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
					},
					{
						Name: proto.String("tags"), Number: proto.Int32(2),
						Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
						TypeName: proto.String(".TagsEntry"),
						Label:    descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
					},
				},
				NestedType: []*descriptorpb.DescriptorProto{
					{
						Name:    proto.String("TagsEntry"),
						Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
						Field: []*descriptorpb.FieldDescriptorProto{
							{Name: proto.String("key"), Number: proto.Int32(1), Type: descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum()},
							{Name: proto.String("value"), Number: proto.Int32(2), Type: descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum()},
						},
					},
				},
			},
		},
	}

	f := FromDescriptor(original)
	imported := ImportedTypesFromSet([]*descriptorpb.FileDescriptorProto{original}, original.GetName())

	res, err := protocompile.Validate(f, imported, protocompile.Options{})
	require.NoError(t, err)

	rebuilt := res.Descriptor
	require.Len(t, rebuilt.MessageType, 1)
	widget := rebuilt.MessageType[0]
	require.Len(t, widget.NestedType, 1)
	assert.Equal(t, "TagsEntry", widget.NestedType[0].GetName())
	assert.True(t, widget.NestedType[0].GetOptions().GetMapEntry())
	require.Len(t, widget.Field, 2)
	assert.Equal(t, "id", widget.Field[0].GetName())
	assert.Equal(t, "tags", widget.Field[1].GetName())
	assert.Equal(t, descriptorpb.FieldDescriptorProto_LABEL_REPEATED, widget.Field[1].GetLabel())
}

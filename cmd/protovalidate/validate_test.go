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

package main

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

func TestMain(m *testing.M) {
	logger = zap.NewNop()
	os.Exit(m.Run())
}

func TestValidateSetAllClean(t *testing.T) {
	t.Parallel()
	set := &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{
			{
				Name:   proto.String("a.proto"),
				Syntax: proto.String("proto3"),
				MessageType: []*descriptorpb.DescriptorProto{
					{
						Name: proto.String("M"),
						Field: []*descriptorpb.FieldDescriptorProto{
							{
								Name: proto.String("x"), Number: proto.Int32(1),
								Type:  descriptorpb.FieldDescriptorProto_TYPE_INT32.Enum(),
								Label: descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
							},
						},
					},
				},
			},
		},
	}

	assert.True(t, validateSet(context.Background(), set, false))
}

func TestValidateSetReportsFailure(t *testing.T) {
	t.Parallel()
	set := &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{
			{
				Name:   proto.String("bad.proto"),
				Syntax: proto.String("proto3"),
				EnumType: []*descriptorpb.EnumDescriptorProto{
					{
						Name: proto.String("E"),
						Value: []*descriptorpb.EnumValueDescriptorProto{
							{Name: proto.String("A"), Number: proto.Int32(1)},
						},
					},
				},
			},
		},
	}

	assert.False(t, validateSet(context.Background(), set, false))
}

func TestLoadDescriptorSetMissingFile(t *testing.T) {
	t.Parallel()
	_, err := loadDescriptorSet("/nonexistent/path/does-not-exist.binpb")
	require.Error(t, err)
}

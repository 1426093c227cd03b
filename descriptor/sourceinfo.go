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
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/truewebber/swift-protoparser-sub001/ast"
)

// addLocation appends one SourceCodeInfo_Location for path carrying the
// leading and trailing comments; it records no span.
func (b *builder) addLocation(path []int32, comments ast.Comments) {
	loc := &descriptorpb.SourceCodeInfo_Location{
		Path: append([]int32(nil), path...),
	}
	if len(comments.Leading) > 0 {
		s := joinLines(comments.Leading)
		loc.LeadingComments = &s
	}
	if len(comments.Trailing) > 0 {
		s := joinLines(comments.Trailing)
		loc.TrailingComments = &s
	}
	b.locations = append(b.locations, loc)
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

// walkMessageSourceInfo emits locations for m and everything nested inside
// it, at path (m's own coordinate vector within its parent).
func (b *builder) walkMessageSourceInfo(m *ast.Message, path []int32) {
	b.addLocation(path, m.Comments)

	for i, f := range m.Fields {
		fieldPath := append(append([]int32(nil), path...), messageFieldField, int32(i))
		b.addLocation(fieldPath, f.Comments)
	}
	// buildMessage places one synthesized entry per map field ahead of the
	// declared nested messages in NestedType.
	mapEntries := 0
	for _, f := range m.Fields {
		if f.Type != nil && f.Type.Kind == ast.KindMap {
			mapEntries++
		}
	}
	for i, nested := range m.Messages {
		nestedPath := append(append([]int32(nil), path...), messageNestedTypeField, int32(mapEntries+i))
		b.walkMessageSourceInfo(nested, nestedPath)
	}
	for i, e := range m.Enums {
		enumPath := append(append([]int32(nil), path...), messageEnumTypeField, int32(i))
		b.addLocation(enumPath, e.Comments)
	}
}

// walkServiceSourceInfo emits locations for s and its methods.
func (b *builder) walkServiceSourceInfo(s *ast.Service, path []int32) {
	b.addLocation(path, s.Comments)
	for i, rpc := range s.RPCs {
		methodPath := append(append([]int32(nil), path...), serviceMethodField, int32(i))
		b.addLocation(methodPath, rpc.Comments)
	}
}

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

package ast

// WalkMessages invokes fn for m and, recursively, for every message nested
// (at any depth) inside m, in source order. fn is called on a message
// before its nested messages (pre-order), matching the order the
// coordinator pushes/pops scopes in (spec.md §4.1 step 7).
func WalkMessages(m *Message, fn func(*Message)) {
	if m == nil {
		return
	}
	fn(m)
	for _, nested := range m.Messages {
		WalkMessages(nested, fn)
	}
}

// WalkEnums invokes fn for every enum directly or transitively nested
// inside m, in source order.
func WalkEnums(m *Message, fn func(*Enum)) {
	if m == nil {
		return
	}
	for _, e := range m.Enums {
		fn(e)
	}
	for _, nested := range m.Messages {
		WalkEnums(nested, fn)
	}
}

// OneofFields returns the fields of m that belong to the oneof at the
// given index, in source order.
func OneofFields(m *Message, oneofIndex int) []*Field {
	var fields []*Field
	for _, f := range m.Fields {
		if f.OneofIndex == oneofIndex {
			fields = append(fields, f)
		}
	}
	return fields
}

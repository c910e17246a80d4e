/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package member

import (
	"errors"
	"fmt"
	"strings"
)

// TagKey is the struct tag key read by Catalog.
const TagKey = "problem"

// Role is the part of the body a member contributes to.
type Role int

const (
	// RoleDetail members are joined into the "detail" member.
	RoleDetail Role = iota + 1
	// RoleInstance members provide the "instance" member.
	RoleInstance
	// RoleExtension members become one named extension each.
	RoleExtension
	// RoleExtensions members are maps whose entries are inlined as
	// extensions.
	RoleExtensions
)

func (r Role) String() string {
	switch r {
	case RoleDetail:
		return "detail"
	case RoleInstance:
		return "instance"
	case RoleExtension:
		return "extension"
	case RoleExtensions:
		return "extensions"
	}
	return "unknown"
}

// ErrInvalidTag is returned for tags that do not follow the grammar
//
//	detail | instance | extension[,<name>] | extensions
var ErrInvalidTag = errors.New("dproblem: invalid problem tag")

// Tag is a parsed `problem:"..."` tag.
type Tag struct {
	Role Role
	// Name is the explicit extension name, empty when not given.
	Name string
}

// ParseTag parses a tag value. Surrounding spaces are ignored.
func ParseTag(s string) (Tag, error) {
	role, name, hasName := strings.Cut(strings.TrimSpace(s), ",")
	role = strings.TrimSpace(role)
	name = strings.TrimSpace(name)

	var t Tag
	switch role {
	case "detail":
		t.Role = RoleDetail
	case "instance":
		t.Role = RoleInstance
	case "extension":
		t.Role = RoleExtension
	case "extensions":
		t.Role = RoleExtensions
	default:
		return Tag{}, fmt.Errorf("%w: %q", ErrInvalidTag, s)
	}
	if hasName {
		if t.Role != RoleExtension || name == "" {
			return Tag{}, fmt.Errorf("%w: %q", ErrInvalidTag, s)
		}
		t.Name = name
	}
	return t, nil
}

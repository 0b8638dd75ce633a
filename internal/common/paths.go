// Copyright 2024 mocktree Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import (
	"strings"
)

// Separator is the only path separator the virtual tree understands.
const Separator = "/"

// IsAbs reports whether path is rooted.
func IsAbs(path string) bool {
	return strings.HasPrefix(path, Separator)
}

// SplitPath splits a path into its non-empty components.
// Doubled, leading and trailing separators produce no empty components.
// "." and ".." are ordinary names here.
func SplitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, Separator) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// CollapseSlashes replaces every run of separators with a single one.
func CollapseSlashes(path string) string {
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", Separator)
	}
	return path
}

// TrimTrailingSlashes strips all trailing separators.
func TrimTrailingSlashes(path string) string {
	return strings.TrimRight(path, Separator)
}

// NormalizeAbs returns path as a rooted path with single separators and no
// trailing separator. The root itself is "/".
func NormalizeAbs(path string) string {
	return Separator + strings.Join(SplitPath(path), Separator)
}

// JoinPath joins a directory and a relative path into a normalized absolute path.
func JoinPath(dir, rel string) string {
	return NormalizeAbs(dir + Separator + rel)
}

// Absolute resolves path against base unless it is already rooted.
func Absolute(base, path string) string {
	if IsAbs(path) {
		return NormalizeAbs(path)
	}
	return JoinPath(base, path)
}

// ParentPath returns the parent of a normalized absolute path.
// The parent of a top-level entry is "/"; the root has no parent and yields "".
func ParentPath(abs string) string {
	if abs == Separator || abs == "" {
		return ""
	}
	i := strings.LastIndex(abs, Separator)
	if i <= 0 {
		return Separator
	}
	return abs[:i]
}

// BaseName returns the last component of path after trailing separators are stripped.
func BaseName(path string) string {
	path = TrimTrailingSlashes(path)
	if i := strings.LastIndex(path, Separator); i >= 0 {
		return path[i+1:]
	}
	return path
}

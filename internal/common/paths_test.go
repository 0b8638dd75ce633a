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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAbs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty", "", false},
		{"root", "/", true},
		{"rooted", "/foo", true},
		{"double_root", "//foo", true},
		{"relative", "foo/bar", false},
		{"dot", ".", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsAbs(tt.input), "IsAbs(%q)", tt.input)
		})
	}
}

func TestSplitPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		// Empty and root
		{"empty", "", nil},
		{"root", "/", nil},
		{"double_root", "//", nil},

		// Single component
		{"simple", "foo", []string{"foo"}},
		{"leading_slash", "/foo", []string{"foo"}},
		{"trailing_slash", "foo/", []string{"foo"}},

		// Multiple components
		{"two_parts", "foo/bar", []string{"foo", "bar"}},
		{"three_parts_both_slashes", "/foo/bar/baz/", []string{"foo", "bar", "baz"}},
		{"double_slash", "foo//bar", []string{"foo", "bar"}},

		// Dots are names, not navigation
		{"dot_middle", "foo/./bar", []string{"foo", ".", "bar"}},
		{"dotdot", "foo/../bar", []string{"foo", "..", "bar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SplitPath(tt.input), "SplitPath(%q)", tt.input)
		})
	}
}

func TestCollapseSlashes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"single", "/a/b", "/a/b"},
		{"double", "/a//b", "/a/b"},
		{"triple", "///a///b///", "/a/b/"},
		{"relative", "a//b", "a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CollapseSlashes(tt.input), "CollapseSlashes(%q)", tt.input)
		})
	}
}

func TestTrimTrailingSlashes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"none", "/a/b", "/a/b"},
		{"one", "/a/b/", "/a/b"},
		{"many", "/a/b///", "/a/b"},
		{"root", "/", ""},
		{"relative", "test/", "test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TrimTrailingSlashes(tt.input), "TrimTrailingSlashes(%q)", tt.input)
		})
	}
}

func TestNormalizeAbs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "/"},
		{"root", "/", "/"},
		{"relative", "a/b", "/a/b"},
		{"rooted", "/a/b", "/a/b"},
		{"trailing", "/a/b/", "/a/b"},
		{"doubled", "//a//b//", "/a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeAbs(tt.input), "NormalizeAbs(%q)", tt.input)
		})
	}
}

func TestJoinPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dir  string
		rel  string
		want string
	}{
		{"root_dir", "/", "a", "/a"},
		{"nested", "/a/b", "c.txt", "/a/b/c.txt"},
		{"dir_trailing_slash", "/a/b/", "c", "/a/b/c"},
		{"rel_trailing_slash", "/a", "b/", "/a/b"},
		{"multi_segment", "/a", "b/c", "/a/b/c"},
		{"empty_rel", "/a", "", "/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, JoinPath(tt.dir, tt.rel), "JoinPath(%q, %q)", tt.dir, tt.rel)
		})
	}
}

func TestAbsolute(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/x/y", Absolute("/a/b", "/x//y"))
	assert.Equal(t, "/a/b/err.txt", Absolute("/a/b", "err.txt"))
	assert.Equal(t, "/a/b/sub/err.txt", Absolute("/a/b", "sub/err.txt"))
}

func TestParentPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"root", "/", ""},
		{"top_level", "/a", "/"},
		{"nested", "/a/b", "/a"},
		{"deep", "/a/b/c.txt", "/a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParentPath(tt.input), "ParentPath(%q)", tt.input)
		})
	}
}

func TestBaseName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"root", "/", ""},
		{"simple", "foo", "foo"},
		{"leading_slash", "/foo", "foo"},
		{"trailing_slash", "locator/", "locator"},
		{"nested", "/a/b/c.txt", "c.txt"},
		{"relative_nested", "sub/err.txt", "err.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BaseName(tt.input), "BaseName(%q)", tt.input)
		})
	}
}

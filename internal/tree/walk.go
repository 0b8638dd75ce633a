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

package tree

import (
	"errors"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"mocktree/internal/common"
)

// SkipDir can be returned by a WalkFunc to skip the directory's children.
var SkipDir = errors.New("skip this directory")

// WalkFunc is called for every visited node. depth is 0 for the start node.
type WalkFunc func(n *Node, depth int) error

type WalkOption func(*walkOptions)

type walkOptions struct {
	patterns []string
	ignore   *ignore.GitIgnore
}

// WithIgnore skips entries matching any of the gitignore-style patterns.
// Patterns are matched against paths relative to the start node. Repeated
// options add to the pattern list.
func WithIgnore(patterns ...string) WalkOption {
	return func(o *walkOptions) {
		o.patterns = append(o.patterns, patterns...)
	}
}

// Walk visits start and every existing node below it depth-first, in listing
// order. A name listed twice is visited once.
func Walk(start *Node, resolve Resolver, fn WalkFunc, opts ...WalkOption) error {
	var o walkOptions
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.patterns) > 0 {
		o.ignore = ignore.CompileIgnoreLines(o.patterns...)
	}
	err := walk(start, start.AbsolutePath(), 0, resolve, fn, &o)
	if errors.Is(err, SkipDir) {
		return nil
	}
	return err
}

func walk(n *Node, base string, depth int, resolve Resolver, fn WalkFunc, o *walkOptions) error {
	if err := fn(n, depth); err != nil {
		return err
	}
	if !n.IsDir() {
		return nil
	}

	dir := n.AbsolutePath()
	seen := make(map[string]bool)
	for _, name := range n.List() {
		// an empty name refers back to dir itself
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		child := resolve(common.JoinPath(dir, name))
		if !child.Exists() || o.ignored(base, child) {
			continue
		}
		if err := walk(child, base, depth+1, resolve, fn, o); err != nil {
			if errors.Is(err, SkipDir) {
				continue
			}
			return err
		}
	}
	return nil
}

func (o *walkOptions) ignored(base string, n *Node) bool {
	if o.ignore == nil {
		return false
	}
	rel := strings.TrimPrefix(n.AbsolutePath(), base)
	rel = strings.TrimPrefix(rel, common.Separator)
	if n.IsDir() {
		rel += common.Separator
	}
	return o.ignore.MatchesPath(rel)
}

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

// Package mocktree builds in-memory mock filesystem trees for tests.
//
// A tree is declared through a builder whose cursor moves as directories are
// added, then frozen into a Resolver that answers path queries:
//
//	resolve := mocktree.New().
//		Directory("/Users/localuser/project").
//		Mark("proj").
//		Directory("locator/").
//		Files("a.txt", "b.txt").
//		Restore("proj").
//		Directory("target/").
//		Cwd("/Users/localuser/project/target/").
//		MustBuild()
//
//	resolve("/Users/localuser/project/locator").List() // [a.txt b.txt]
//	resolve("locator").AbsolutePath()                  // /Users/localuser/project/locator
//	resolve("missing.txt").Exists()                    // false
//
// Relative queries are joined to the working directory, except that a bare
// name declared earlier resolves to its most recent declaration. ".." is an
// ordinary name, not a step up. The resolver never fails. Paths that were not declared resolve to nodes
// that report Exists() == false.
package mocktree

import (
	"mocktree/internal/common"
	"mocktree/internal/fixture"
	"mocktree/internal/tree"
)

type (
	Node               = tree.Node
	FileType           = tree.FileType
	Builder            = tree.Builder
	Chain              = tree.Chain
	Resolver           = tree.Resolver
	StepError          = tree.StepError
	ConfigurationError = tree.ConfigurationError
	PathError          = tree.PathError
	WalkFunc           = tree.WalkFunc
	WalkOption         = tree.WalkOption
	Fixture            = fixture.Fixture
	Step               = fixture.Step
)

const (
	FileTypeFile      = tree.FileTypeFile
	FileTypeDirectory = tree.FileTypeDirectory
)

var (
	ErrConfiguration  = common.ErrConfiguration
	ErrInvalidPath    = common.ErrInvalidPath
	ErrInvalidFixture = common.ErrInvalidFixture

	SkipDir = tree.SkipDir
)

// New starts a fluent declaration.
func New() *Chain { return tree.New() }

// NewBuilder returns a builder with explicit error returns per operation.
func NewBuilder() *Builder { return tree.NewBuilder() }

// Walk visits the existing nodes under start depth-first in declaration order.
func Walk(start *Node, resolve Resolver, fn WalkFunc, opts ...WalkOption) error {
	return tree.Walk(start, resolve, fn, opts...)
}

// WithIgnore hides entries matching gitignore-style patterns from Walk.
func WithIgnore(patterns ...string) WalkOption { return tree.WithIgnore(patterns...) }

// ParseFixture builds the tree declared by a YAML fixture document.
func ParseFixture(data []byte) (Resolver, error) {
	f, err := fixture.Parse(data)
	if err != nil {
		return nil, err
	}
	resolve, _, err := f.Build()
	return resolve, err
}

// LoadFixture builds the tree declared by the YAML fixture at path.
func LoadFixture(path string) (Resolver, error) {
	f, err := fixture.Load(path)
	if err != nil {
		return nil, err
	}
	resolve, _, err := f.Build()
	return resolve, err
}

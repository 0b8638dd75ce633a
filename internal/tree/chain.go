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

import "fmt"

// StepError identifies the chained call that failed. Steps are numbered from 1.
type StepError struct {
	Step int
	Op   string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Step, e.Op, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Chain is a fluent front end for Builder. The first failing call is
// remembered and every later call is skipped; Build reports it.
//
//	resolve := tree.New().
//		Directory("/Users/localuser/project").Mark("proj").
//		Directory("locator/").Files("a.txt", "b.txt").
//		Restore("proj").Directory("target/").
//		Cwd("/Users/localuser/project/target/").
//		MustBuild()
type Chain struct {
	b    *Builder
	step int
	err  error
}

// New starts a chain over a fresh Builder.
func New() *Chain {
	return &Chain{b: NewBuilder()}
}

func (c *Chain) do(op string, fn func() error) *Chain {
	c.step++
	if c.err != nil {
		return c
	}
	if err := fn(); err != nil {
		c.err = &StepError{Step: c.step, Op: op, Err: err}
	}
	return c
}

func (c *Chain) Directory(path string) *Chain {
	return c.do("directory", func() error { return c.b.Directory(path) })
}

func (c *Chain) Directories(paths ...string) *Chain {
	return c.do("directories", func() error { return c.b.Directories(paths...) })
}

func (c *Chain) File(path string) *Chain {
	return c.do("file", func() error { return c.b.File(path) })
}

func (c *Chain) Files(paths ...string) *Chain {
	return c.do("files", func() error { return c.b.Files(paths...) })
}

func (c *Chain) Mark(name string) *Chain {
	return c.do("mark", func() error { c.b.Mark(name); return nil })
}

func (c *Chain) Restore(name string) *Chain {
	return c.do("restore", func() error { return c.b.Restore(name) })
}

func (c *Chain) Up() *Chain {
	return c.do("up", c.b.Up)
}

func (c *Chain) Cwd(path string) *Chain {
	return c.do("cwd", func() error { return c.b.Cwd(path) })
}

// Err returns the first error recorded by the chain.
func (c *Chain) Err() error { return c.err }

// Builder exposes the underlying builder.
func (c *Chain) Builder() *Builder { return c.b }

// Build finalizes the tree unless an earlier step failed.
func (c *Chain) Build() (Resolver, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.b.Build()
}

// MustBuild is like Build but panics on error. It is meant for test setup.
func (c *Chain) MustBuild() Resolver {
	resolve, err := c.Build()
	if err != nil {
		panic(err)
	}
	return resolve
}

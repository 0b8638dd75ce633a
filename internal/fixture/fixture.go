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

// Package fixture reads tree declarations from YAML documents and replays
// them onto a tree.Builder.
//
// A fixture lists builder steps in order, one operation per step:
//
//	cwd: /Users/localuser/project/target/
//	ignore: ["*.tmp"]
//	steps:
//	  - directory: /Users/localuser/project
//	  - mark: proj
//	  - directory: locator/
//	  - files: [a.txt, b.txt]
//	  - restore: proj
//	  - up: true
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"mocktree/internal/common"
	"mocktree/internal/tree"
)

// Step is one builder operation. Exactly one field must be set.
type Step struct {
	Directory   string   `yaml:"directory,omitempty"`
	Directories []string `yaml:"directories,omitempty"`
	File        string   `yaml:"file,omitempty"`
	Files       []string `yaml:"files,omitempty"`
	Mark        string   `yaml:"mark,omitempty"`
	Restore     string   `yaml:"restore,omitempty"`
	Up          bool     `yaml:"up,omitempty"`
}

// Op returns the name of the operation the step holds.
func (s Step) Op() (string, error) {
	var ops []string
	if s.Directory != "" {
		ops = append(ops, "directory")
	}
	if len(s.Directories) > 0 {
		ops = append(ops, "directories")
	}
	if s.File != "" {
		ops = append(ops, "file")
	}
	if len(s.Files) > 0 {
		ops = append(ops, "files")
	}
	if s.Mark != "" {
		ops = append(ops, "mark")
	}
	if s.Restore != "" {
		ops = append(ops, "restore")
	}
	if s.Up {
		ops = append(ops, "up")
	}

	switch len(ops) {
	case 0:
		return "", fmt.Errorf("%w: step has no operation", common.ErrInvalidFixture)
	case 1:
		return ops[0], nil
	default:
		return "", fmt.Errorf("%w: step has several operations %v", common.ErrInvalidFixture, ops)
	}
}

func (s Step) apply(b *tree.Builder, op string) error {
	switch op {
	case "directory":
		return b.Directory(s.Directory)
	case "directories":
		return b.Directories(s.Directories...)
	case "file":
		return b.File(s.File)
	case "files":
		return b.Files(s.Files...)
	case "mark":
		b.Mark(s.Mark)
		return nil
	case "restore":
		return b.Restore(s.Restore)
	case "up":
		return b.Up()
	}
	return fmt.Errorf("%w: unknown operation %q", common.ErrInvalidFixture, op)
}

// Fixture is a complete tree declaration.
type Fixture struct {
	Cwd    string   `yaml:"cwd"`
	Ignore []string `yaml:"ignore,omitempty"`
	Steps  []Step   `yaml:"steps"`
}

// Parse decodes and validates a fixture. Unknown keys are rejected.
func Parse(data []byte) (*Fixture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", common.ErrInvalidFixture)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidFixture, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses the fixture at path.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Validate checks that every step holds exactly one operation.
func (f *Fixture) Validate() error {
	for i, s := range f.Steps {
		if _, err := s.Op(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// Apply replays the steps onto b and sets the working directory when the
// fixture names one.
func (f *Fixture) Apply(b *tree.Builder) error {
	for i, s := range f.Steps {
		op, err := s.Op()
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if err := s.apply(b, op); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, op, err)
		}
	}
	if f.Cwd != "" {
		if err := b.Cwd(f.Cwd); err != nil {
			return fmt.Errorf("cwd: %w", err)
		}
	}
	log.WithField("tree", b.ID()).Debugf("[Fixture.Apply] steps=%d cwd=%q", len(f.Steps), f.Cwd)
	return nil
}

// Build replays the fixture onto a new builder and finalizes it.
func (f *Fixture) Build() (tree.Resolver, *tree.Builder, error) {
	b := tree.NewBuilder()
	if err := f.Apply(b); err != nil {
		return nil, nil, err
	}
	resolve, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return resolve, b, nil
}

// WalkOptions returns the walk options implied by the fixture's ignore list.
func (f *Fixture) WalkOptions() []tree.WalkOption {
	if len(f.Ignore) == 0 {
		return nil
	}
	return []tree.WalkOption{tree.WithIgnore(f.Ignore...)}
}


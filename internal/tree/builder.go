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
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"mocktree/internal/common"
)

type phase int

const (
	phaseConstructing phase = iota
	phaseQuerying
)

// Resolver maps a path to its node. Absolute paths are taken as given,
// relative paths are resolved against the working directory and "." names the
// working directory itself. A path that was never declared yields a
// non-existent file node, which is registered so later calls for the same
// string return the same node.
type Resolver func(path string) *Node

// Builder constructs a tree through a movable cursor and answers queries once
// Build has been called.
type Builder struct {
	id  string
	log *log.Entry

	root      *Node
	canon     map[string]*Node // absolute path -> canonical node
	lookup    map[string]*Node // literal resolver argument -> node
	bookmarks map[string]*Node
	cursor    *Node // nil means root level

	cwd    string
	cwdSet bool
	phase  phase
	inodes uint64
}

// NewBuilder returns an empty builder with its cursor at root level.
func NewBuilder() *Builder {
	id := uuid.New().String()
	b := &Builder{
		id:        id,
		log:       log.WithField("tree", id),
		canon:     make(map[string]*Node),
		lookup:    make(map[string]*Node),
		bookmarks: make(map[string]*Node),
	}
	b.root = &Node{path: common.Separator, dir: true, abs: common.Separator}
	b.root.self = b.root
	b.root.rec = b.newRecord(true)
	b.canon[common.Separator] = b.root
	return b
}

// ID returns the identifier used to tag this tree's log lines.
func (b *Builder) ID() string { return b.id }

// Root returns the implicit "/" directory listing every root-level name.
func (b *Builder) Root() *Node { return b.root }

// Cursor returns the node new relative declarations attach under, or nil at
// root level.
func (b *Builder) Cursor() *Node { return b.cursor }

// WorkingDirectory returns the stored working directory.
func (b *Builder) WorkingDirectory() string { return b.cwd }

func (b *Builder) newRecord(exists bool) *record {
	b.inodes++
	return &record{ino: b.inodes, exists: exists}
}

// Cwd sets the working directory used to resolve relative queries. Trailing
// separators are stripped. It may be called only once.
func (b *Builder) Cwd(path string) error {
	if b.cwdSet {
		return &ConfigurationError{
			Op:  "cwd",
			Msg: fmt.Sprintf("working directory already set to %q, cannot set %q", b.cwd, path),
		}
	}
	b.cwd = common.TrimTrailingSlashes(path)
	b.cwdSet = true
	b.log.Debugf("[Builder.Cwd] cwd=%q", b.cwd)
	return nil
}

// Mark saves the cursor under name, replacing any earlier bookmark of that name.
func (b *Builder) Mark(name string) {
	b.bookmarks[name] = b.cursor
	b.log.Tracef("[Builder.Mark] name=%q cursor=%v", name, b.cursor)
}

// Restore moves the cursor to a bookmark saved with Mark.
func (b *Builder) Restore(name string) error {
	n, ok := b.bookmarks[name]
	if !ok {
		return &ConfigurationError{Op: "restore", Msg: fmt.Sprintf("bookmark %q was never set", name)}
	}
	b.cursor = n
	b.log.Tracef("[Builder.Restore] name=%q cursor=%v", name, b.cursor)
	return nil
}

// Up moves the cursor to its parent.
func (b *Builder) Up() error {
	if b.cursor == nil || b.cursor.parent == nil {
		return &ConfigurationError{Op: "up", Msg: "cannot go up from a root-level directory"}
	}
	b.cursor = b.cursor.parent
	return nil
}

// Directory declares one directory; see Directories.
func (b *Builder) Directory(path string) error {
	return b.Directories(path)
}

// Directories declares each path as a directory under the current cursor.
// Paths in one call are siblings of each other; afterwards the cursor is the
// node of the last path. Multi-segment paths create every segment.
func (b *Builder) Directories(paths ...string) error {
	base := b.cursor
	last := b.cursor
	for _, p := range paths {
		n, err := b.insert(base, true, p)
		if err != nil {
			return err
		}
		last = n
	}
	b.cursor = last
	return nil
}

// File declares one file; see Files.
func (b *Builder) File(path string) error {
	return b.Files(path)
}

// Files declares each name as a file under the current cursor. The cursor
// does not move. A name may start with "/" to place the file at root level
// but may contain no other separator.
func (b *Builder) Files(paths ...string) error {
	for _, p := range paths {
		if _, err := b.insert(b.cursor, false, p); err != nil {
			return err
		}
	}
	return nil
}

// Build ends construction and returns the resolver for the tree. The working
// directory must have been set.
func (b *Builder) Build() (Resolver, error) {
	if !b.cwdSet {
		return nil, &ConfigurationError{Op: "build", Msg: "no working directory was set"}
	}
	if b.phase != phaseQuerying {
		b.phase = phaseQuerying
		b.log.Debugf("[Builder.Build] locations=%d cwd=%q", len(b.canon), b.cwd)
	}
	return b.resolve, nil
}

func (b *Builder) insert(parent *Node, dir bool, raw string) (*Node, error) {
	op := "file"
	if dir {
		op = "directory"
	}

	rel := raw
	if common.IsAbs(raw) {
		parent = nil
		rel = strings.TrimLeft(raw, common.Separator)
	}
	if !dir && strings.Contains(rel, common.Separator) {
		return nil, &PathError{Op: op, Path: raw, Msg: "file name must not contain '/'"}
	}

	segments := common.SplitPath(rel)
	if len(segments) == 0 {
		return b.attachEmpty(parent, dir), nil
	}

	n := parent
	for i, seg := range segments {
		n = b.attach(n, dir, seg, i == len(segments)-1)
	}
	return n, nil
}

// owner returns the node whose listing receives names declared under parent.
func (b *Builder) owner(parent *Node) *Node {
	if parent == nil {
		return b.root
	}
	return parent
}

// attachEmpty declares a node with an empty name under parent. It has no
// location of its own (its absolute path is its parent's), so it is its own
// canonical node and is reachable only through the "" key.
func (b *Builder) attachEmpty(parent *Node, dir bool) *Node {
	constructing := b.phase == phaseConstructing

	n := &Node{path: "", parent: parent, dir: dir}
	n.self = n
	n.rec = b.newRecord(constructing)
	if constructing {
		b.owner(parent).rec.children = append(b.owner(parent).rec.children, "")
	}
	b.lookup[""] = n

	b.log.Debugf("[Builder.attachEmpty] under=%q dir=%v", n.AbsolutePath(), dir)
	return n
}

// attach creates the handle for one segment under parent and links it to the
// canonical node of its absolute location, creating that location if needed.
// During construction the segment is added to the parent's listing when the
// location is new or when it is the declared (final) segment; intermediate
// segments of an already known prefix are not listed again. The handle is
// registered under its bare segment so the resolver finds it by that name.
func (b *Builder) attach(parent *Node, dir bool, segment string, final bool) *Node {
	constructing := b.phase == phaseConstructing

	n := &Node{path: segment, parent: parent, dir: dir}
	abs := n.AbsolutePath()

	self, ok := b.canon[abs]
	if !ok {
		self = n
		if parent != nil {
			self = &Node{path: abs, parent: parent, dir: dir, abs: abs}
		}
		self.self = self
		self.rec = b.newRecord(constructing)
		b.canon[abs] = self
	} else if constructing {
		self.rec.exists = true
	}
	n.self = self
	n.rec = self.rec

	if constructing && (!ok || final) {
		b.owner(parent).rec.children = append(b.owner(parent).rec.children, segment)
	}
	// last declaration of a name wins
	b.lookup[segment] = n

	b.log.Debugf("[Builder.attach] segment=%q abs=%q dir=%v exists=%v", segment, abs, dir, n.Exists())
	return n
}

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

// Package server exposes a built tree over the network as a read-only NFSv3
// export, so a declared layout can be mounted and browsed with ordinary tools.
package server

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"
	"time"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/helper/chroot"
	log "github.com/sirupsen/logrus"
	nfsfile "github.com/willscott/go-nfs/file"

	"mocktree/internal/common"
	"mocktree/internal/tree"
)

// BillyAdapter adapts a tree resolver to the Billy filesystem interface.
// Only metadata is served: nodes have no content and nothing can be changed.
type BillyAdapter struct {
	mu      sync.Mutex // resolver calls register lookups and are not safe for concurrent use
	resolve tree.Resolver
	modTime time.Time
	uid     uint32
	gid     uint32
}

// NewBillyAdapter creates a Billy adapter over resolve. The resolver must come
// from a built tree.
func NewBillyAdapter(resolve tree.Resolver) *BillyAdapter {
	return &BillyAdapter{
		resolve: resolve,
		modTime: time.Now(),
		uid:     uint32(os.Getuid()),
		gid:     uint32(os.Getgid()),
	}
}

// lookup resolves filename as an absolute location. Billy paths are relative
// to the export root, and an empty path names the root itself.
func (b *BillyAdapter) lookup(filename string) *tree.Node {
	abs := path.Join(common.Separator, filename)
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.resolve(abs)
}

func (b *BillyAdapter) info(name string, n *tree.Node) *FileInfo {
	return &FileInfo{name: name, node: n, modTime: b.modTime, uid: b.uid, gid: b.gid}
}

func (b *BillyAdapter) Stat(filename string) (os.FileInfo, error) {
	n := b.lookup(filename)
	if !n.Exists() {
		return nil, &os.PathError{Op: "stat", Path: filename, Err: fs.ErrNotExist}
	}
	return b.info(path.Base(path.Join(common.Separator, filename)), n), nil
}

// Lstat is Stat: trees have no symlinks.
func (b *BillyAdapter) Lstat(filename string) (os.FileInfo, error) {
	return b.Stat(filename)
}

// ReadDir lists the children of dirname in declaration order. Names declared
// more than once are reported once and empty names are left out.
func (b *BillyAdapter) ReadDir(dirname string) ([]os.FileInfo, error) {
	dir := b.lookup(dirname)
	if !dir.Exists() {
		return nil, &os.PathError{Op: "readdir", Path: dirname, Err: fs.ErrNotExist}
	}
	if !dir.IsDir() {
		return nil, &os.PathError{Op: "readdir", Path: dirname, Err: common.ErrNotDir}
	}

	abs := dir.AbsolutePath()
	seen := make(map[string]bool)
	var result []os.FileInfo
	for _, name := range dir.List() {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		child := b.lookup(common.JoinPath(abs, name))
		if !child.Exists() {
			continue
		}
		result = append(result, b.info(name, child))
	}
	log.Tracef("[BillyAdapter.ReadDir] %s entries=%d", abs, len(result))
	return result, nil
}

func (b *BillyAdapter) Open(filename string) (billy.File, error) {
	return b.OpenFile(filename, os.O_RDONLY, 0)
}

// OpenFile always fails. Existing files report ErrNoContent, writes report
// ErrReadOnly.
func (b *BillyAdapter) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_TRUNC|os.O_APPEND) != 0 {
		return nil, &os.PathError{Op: "open", Path: filename, Err: common.ErrReadOnly}
	}
	n := b.lookup(filename)
	if !n.Exists() {
		return nil, &os.PathError{Op: "open", Path: filename, Err: fs.ErrNotExist}
	}
	return nil, &os.PathError{Op: "open", Path: filename, Err: common.ErrNoContent}
}

func (b *BillyAdapter) Create(filename string) (billy.File, error) {
	return nil, &os.PathError{Op: "create", Path: filename, Err: common.ErrReadOnly}
}

func (b *BillyAdapter) Rename(oldpath, newpath string) error {
	return &os.PathError{Op: "rename", Path: oldpath, Err: common.ErrReadOnly}
}

func (b *BillyAdapter) Remove(filename string) error {
	return &os.PathError{Op: "remove", Path: filename, Err: common.ErrReadOnly}
}

func (b *BillyAdapter) TempFile(dir, prefix string) (billy.File, error) {
	return nil, &os.PathError{Op: "tempfile", Path: dir, Err: common.ErrReadOnly}
}

func (b *BillyAdapter) MkdirAll(filename string, perm os.FileMode) error {
	return &os.PathError{Op: "mkdir", Path: filename, Err: common.ErrReadOnly}
}

func (b *BillyAdapter) Symlink(target, link string) error {
	return &os.PathError{Op: "symlink", Path: link, Err: common.ErrReadOnly}
}

func (b *BillyAdapter) Readlink(link string) (string, error) {
	return "", &os.PathError{Op: "readlink", Path: link, Err: os.ErrInvalid}
}

func (b *BillyAdapter) Join(elem ...string) string {
	return path.Join(elem...)
}

// Chroot returns a view rooted at the directory p.
func (b *BillyAdapter) Chroot(p string) (billy.Filesystem, error) {
	fi, err := b.Stat(p)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, &os.PathError{Op: "chroot", Path: p, Err: common.ErrNotDir}
	}
	return chroot.New(b, b.Join(b.Root(), p)), nil
}

func (b *BillyAdapter) Root() string {
	return common.Separator
}

func (b *BillyAdapter) Capabilities() billy.Capability {
	return billy.ReadCapability
}

// FileInfo describes one node. Sizes are zero since nodes carry no content.
type FileInfo struct {
	name    string
	node    *tree.Node
	modTime time.Time
	uid     uint32
	gid     uint32
}

func (fi *FileInfo) Name() string       { return fi.name }
func (fi *FileInfo) Size() int64        { return 0 }
func (fi *FileInfo) ModTime() time.Time { return fi.modTime }
func (fi *FileInfo) IsDir() bool        { return fi.node.IsDir() }

// Node returns the tree node behind the entry.
func (fi *FileInfo) Node() *tree.Node { return fi.node }

func (fi *FileInfo) Mode() os.FileMode {
	if fi.node.IsDir() {
		return os.ModeDir | 0555
	}
	return 0444
}

// Sys returns the go-nfs attribute record. go-nfs only recognizes
// file.FileInfo, and the inode becomes the NFS file id.
func (fi *FileInfo) Sys() interface{} {
	return &nfsfile.FileInfo{
		Nlink:  1,
		UID:    fi.uid,
		GID:    fi.gid,
		Fileid: fi.node.Inode(),
	}
}

func (fi *FileInfo) String() string {
	return fmt.Sprintf("%s %s", fi.Mode(), fi.node.AbsolutePath())
}

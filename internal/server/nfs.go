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

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	nfs "github.com/willscott/go-nfs"
	nfshelper "github.com/willscott/go-nfs/helpers"

	"mocktree/internal/tree"
	"mocktree/internal/util"
)

// handleCacheSize bounds the number of NFS file handles kept by the caching handler.
const handleCacheSize = 65536

// NFSServer wraps the go-nfs server around a BillyAdapter.
type NFSServer struct {
	share    string
	listener net.Listener
	server   *nfs.Server
	cancel   context.CancelFunc

	mu       sync.Mutex
	closed   bool
	shutdown sync.Once
}

// NewNFSServer creates an NFS server exporting the tree behind resolve.
func NewNFSServer(resolve tree.Resolver) *NFSServer {
	// go-nfs keeps its own logger; follow the process log level
	if log.IsLevelEnabled(log.TraceLevel) {
		nfs.Log.SetLevel(nfs.TraceLevel)
	} else if log.IsLevelEnabled(log.DebugLevel) {
		nfs.Log.SetLevel(nfs.DebugLevel)
	}
	handler := nfshelper.NewNullAuthHandler(NewBillyAdapter(resolve))
	cacheHelper := nfshelper.NewCachingHandler(handler, handleCacheSize)

	ctx, cancel := context.WithCancel(context.Background())
	return &NFSServer{
		share:  "mocktree-" + uuid.New().String()[:8],
		server: &nfs.Server{Handler: cacheHelper, Context: ctx},
		cancel: cancel,
	}
}

// ShareName identifies this export in logs and mount hints.
func (s *NFSServer) ShareName() string { return s.share }

// Listen binds addr, retrying while a previous process still holds it.
func (s *NFSServer) Listen(ctx context.Context, addr string) error {
	listener, err := util.RetryWithResult(ctx, func() (net.Listener, error) {
		return net.Listen("tcp", addr)
	}, util.ListenRetryOptions(ctx)...)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
	log.Debugf("[NFSServer.Listen] share=%s addr=%s", s.share, listener.Addr())
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *NFSServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve answers NFS requests until Shutdown. It returns nil after a
// shutdown and the accept error otherwise.
func (s *NFSServer) Serve() error {
	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()
	if listener == nil {
		return errors.New("nfs server: Serve called before Listen")
	}

	err := s.server.Serve(listener)
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed || errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and cancels in-flight handlers. It is
// safe to call more than once.
func (s *NFSServer) Shutdown() {
	s.shutdown.Do(func() {
		s.mu.Lock()
		s.closed = true
		listener := s.listener
		s.mu.Unlock()

		if listener != nil {
			listener.Close()
		}
		s.cancel()
		log.Debugf("[NFSServer.Shutdown] share=%s", s.share)
	})
}

// MountHint returns a mount command for the bound address.
func (s *NFSServer) MountHint(mountPath string) string {
	addr, ok := s.Addr().(*net.TCPAddr)
	if !ok {
		return ""
	}
	return fmt.Sprintf("mount -t nfs -o port=%d,mountport=%d,vers=3,tcp,nolock %s:/ %s",
		addr.Port, addr.Port, addr.IP, mountPath)
}

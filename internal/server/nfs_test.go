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
	"net"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"mocktree/internal/tree"
	"mocktree/internal/util"
)

func TestNFSServerLifecycle(t *testing.T) {
	g := NewWithT(t)

	resolve := tree.New().Directory("/srv").Files("a.txt").Cwd("/srv").MustBuild()
	srv := NewNFSServer(resolve)
	g.Expect(srv.ShareName()).To(HavePrefix("mocktree-"))
	g.Expect(srv.Addr()).To(BeNil())
	g.Expect(srv.MountHint("/mnt/x")).To(BeEmpty())

	g.Expect(srv.Listen(context.Background(), "127.0.0.1:0")).To(Succeed())
	addr := srv.Addr().String()
	g.Expect(addr).To(HavePrefix("127.0.0.1:"))
	g.Expect(srv.MountHint("/mnt/x")).To(And(
		ContainSubstring("127.0.0.1:/ /mnt/x"),
		ContainSubstring("port="+addr[strings.LastIndex(addr, ":")+1:]),
	))

	done := make(chan error, 1)
	go func() { done <- srv.Serve() }()

	g.Expect(util.WaitForListener(context.Background(), util.DefaultPollConfig(), addr)).To(Succeed())

	srv.Shutdown()
	srv.Shutdown()
	g.Eventually(done, 5*time.Second).Should(Receive(BeNil()))
}

func TestNFSServerServeBeforeListen(t *testing.T) {
	g := NewWithT(t)

	srv := NewNFSServer(tree.New().Cwd("/").MustBuild())
	g.Expect(srv.Serve()).To(MatchError(ContainSubstring("before Listen")))
}

func TestNFSServerListenAddrInUse(t *testing.T) {
	g := NewWithT(t)

	held, err := net.Listen("tcp", "127.0.0.1:0")
	g.Expect(err).NotTo(HaveOccurred())
	defer held.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	srv := NewNFSServer(tree.New().Cwd("/").MustBuild())
	err = srv.Listen(ctx, held.Addr().String())
	g.Expect(err).To(MatchError(ContainSubstring("failed to listen")))
}

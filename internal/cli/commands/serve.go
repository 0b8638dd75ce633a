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

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mocktree/internal/server"
	"mocktree/internal/util"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve <fixture>",
	Short: "Export a declared tree over NFS",
	Long: `Export the tree declared by a fixture as a read-only NFSv3 share, until
interrupted. Directory listings and attributes are served; file contents are
not available.

The listen address comes from --addr, then serve_addr in settings.yaml.`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from settings)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	resolve, _, err := loadTree(args[0])
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" && settings != nil {
		addr = settings.ServeAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewNFSServer(resolve)
	if err := srv.Listen(ctx, addr); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve() }()

	if err := util.WaitForListener(ctx, util.DefaultPollConfig(), srv.Addr().String()); err != nil {
		srv.Shutdown()
		<-errCh
		return fmt.Errorf("server did not come up on %s: %w", srv.Addr(), err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s on %s\n", successStyle.Render("Serving"), srv.ShareName(), srv.Addr())
	fmt.Fprintf(out, "%s %s\n", label("Mount"), srv.MountHint("/mnt/mocktree"))

	select {
	case <-ctx.Done():
		log.Infof("[serve] %v, shutting down", context.Cause(ctx))
	case err := <-errCh:
		srv.Shutdown()
		return err
	}

	srv.Shutdown()
	return <-errCh
}

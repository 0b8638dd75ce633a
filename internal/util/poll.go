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

package util

import (
	"context"
	"net"
	"time"
)

const (
	defaultPollTimeout  = 5 * time.Second
	defaultPollInterval = 50 * time.Millisecond
)

// PollConfig bounds how long and how often a wait checks its condition.
// Zero fields fall back to the defaults.
type PollConfig struct {
	Timeout  time.Duration
	Interval time.Duration
}

// DefaultPollConfig is what serve uses while the NFS listener comes up.
func DefaultPollConfig() PollConfig {
	return PollConfig{Timeout: defaultPollTimeout, Interval: defaultPollInterval}
}

// PollUntil checks condition immediately and then on every interval until it
// holds, ctx ends, or the timeout passes. The context error is returned in
// the latter two cases.
func PollUntil(ctx context.Context, cfg PollConfig, condition func() bool) error {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultPollTimeout
	}
	if cfg.Interval == 0 {
		cfg.Interval = defaultPollInterval
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	if condition() {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if condition() {
				return nil
			}
		}
	}
}

// WaitForListener polls until a TCP connection to addr succeeds.
func WaitForListener(ctx context.Context, cfg PollConfig, addr string) error {
	return PollUntil(ctx, cfg, func() bool {
		conn, err := net.DialTimeout("tcp", addr, cfg.Interval)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	})
}

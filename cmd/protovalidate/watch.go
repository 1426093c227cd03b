// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// watchCmd re-validates a compiled FileDescriptorSet every time it is
// rewritten on disk; events for other files in its directory are
// ignored. It exists for the
// same reason spoke's sprocket watcher does: re-running a CLI tool by
// hand after every edit to a generated artifact is the thing a code
// reviewer does not want to keep doing (SPEC_FULL.md's DOMAIN STACK entry
// for fsnotify).
func watchCmd() *cobra.Command {
	var genSourceInfo bool

	cmd := &cobra.Command{
		Use:   "watch <descriptor-set-file>",
		Short: "Re-validate a compiled FileDescriptorSet whenever it changes on disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			return runWatch(cmd.Context(), path, genSourceInfo)
		},
	}
	cmd.Flags().BoolVar(&genSourceInfo, "source-info", true, "populate source_code_info on the rebuilt descriptor")
	return cmd
}

func runWatch(ctx context.Context, path string, genSourceInfo bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	// Validate once up front so the first pass doesn't wait on an edit.
	revalidate(path, genSourceInfo)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			revalidate(path, genSourceInfo)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(werr))
		}
	}
}

func revalidate(path string, genSourceInfo bool) {
	set, err := loadDescriptorSet(path)
	if err != nil {
		logger.Error("reload failed", zap.String("file", path), zap.Error(err))
		return
	}
	if validateSet(context.Background(), set, genSourceInfo) {
		logger.Info("revalidated clean", zap.String("file", path))
	}
}

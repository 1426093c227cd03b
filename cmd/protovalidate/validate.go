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
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	protocompile "github.com/truewebber/swift-protoparser-sub001"
	"github.com/truewebber/swift-protoparser-sub001/astbridge"
)

func validateCmd() *cobra.Command {
	var genSourceInfo bool

	cmd := &cobra.Command{
		Use:   "validate <descriptor-set-file>...",
		Short: "Validate every file in one or more compiled FileDescriptorSets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, path := range args {
				set, err := loadDescriptorSet(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if !validateSet(cmd.Context(), set, genSourceInfo) {
					failed = true
				}
			}
			if failed {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&genSourceInfo, "source-info", true, "populate source_code_info on the rebuilt descriptor")
	return cmd
}

func loadDescriptorSet(path string) (*descriptorpb.FileDescriptorSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	set := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(raw, set); err != nil {
		return nil, fmt.Errorf("unmarshal FileDescriptorSet: %w", err)
	}
	return set, nil
}

// validateSet validates every file in set concurrently, each against an
// independent Validation State built from the rest of the set's top-level
// symbols (spec.md §5: "one coordinator ≍ one state"). It reports true iff
// every file validated cleanly.
func validateSet(ctx context.Context, set *descriptorpb.FileDescriptorSet, genSourceInfo bool) bool {
	files := set.GetFile()
	results := make([]error, len(files))

	g, _ := errgroup.WithContext(ctx)
	for i, fd := range files {
		i, fd := i, fd
		g.Go(func() error {
			astFile := astbridge.FromDescriptor(fd)
			imported := astbridge.ImportedTypesFromSet(files, fd.GetName())
			_, err := protocompile.Validate(astFile, imported, protocompile.Options{GenerateSourceInfo: genSourceInfo})
			results[i] = err
			return nil
		})
	}
	_ = g.Wait()

	ok := true
	for i, err := range results {
		name := files[i].GetName()
		if err != nil {
			logger.Error("validation failed", zap.String("file", name), zap.Error(err))
			ok = false
			continue
		}
		logger.Info("validated", zap.String("file", name))
	}
	return ok
}

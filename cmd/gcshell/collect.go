// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run a collection, reclaiming every unreachable allocation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		before := s.heap.Used()
		if err := s.heap.Collect(); err != nil {
			return fmt.Errorf("collect: %w", err)
		}
		after := s.heap.Used()
		fmt.Fprintf(cmd.OutOrStdout(), "used %d -> %d bytes (reclaimed %d)\n", before, after, before-after)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"
)

var heapSizeFlag int

var rootCmd = &cobra.Command{
	Use:   "gcshell",
	Short: "An interactive console over the heap package's collector",
	Long: `gcshell allocates values on a heap.Heap, runs collections, and
inspects what a collection kept alive. Run a subcommand directly for a
one-shot action, or "gcshell repl" for an interactive session where
names persist across lines.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if theSession != nil {
			return nil
		}
		return openSession(heapSizeFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&heapSizeFlag, "heap-size", 1<<20,
		"bytes to reserve for the heap (split into two semi-spaces)")
}

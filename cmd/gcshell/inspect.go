// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <name>",
	Short: "Print a bound value's kind and contents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		if _, err := s.lookup(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], describeName(s, args[0]))
		return nil
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop <name>",
	Short: "Release a name's global root without forcing a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		g, err := s.lookup(args[0])
		if err != nil {
			return err
		}
		g.Release()
		delete(s.names, args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "dropped %s (reclaimed on the next collect)\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd, dropCmd)
}

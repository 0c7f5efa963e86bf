// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print heap occupancy and bound names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "used: %d bytes\n", s.heap.Used())
		fmt.Fprintf(out, "bound names: %d\n", len(s.names))

		names := s.sortedNames()
		if len(names) == 0 {
			return nil
		}
		t := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, name := range names {
			fmt.Fprintf(t, "%s\t%s\n", name, describeName(s, name))
		}
		return t.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

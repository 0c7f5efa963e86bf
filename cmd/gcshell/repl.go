// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session; names bound here persist until exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := currentSession(); err != nil {
			return err
		}
		return runRepl(cmd)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// runRepl drives the same command tree rootCmd uses for one-shot
// invocations, line by line, the way a shell built on cobra
// subcommands naturally would: each line is tokenized and dispatched
// through rootCmd itself, so "alloc", "collect", "stats", "inspect"
// and "drop" all behave identically whether typed here or passed on
// the process's own argv.
func runRepl(cmd *cobra.Command) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "gc> ",
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("start readline: %w", err)
	}
	defer rl.Close()

	out := cmd.OutOrStdout()
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			return nil
		}

		rootCmd.SetArgs(fields)
		if err := rootCmd.Execute(); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

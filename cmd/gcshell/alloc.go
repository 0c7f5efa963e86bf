// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RubberDuckEng/vmgc/heap"
)

var allocCmd = &cobra.Command{
	Use:   "alloc",
	Short: "Allocate a value on the heap and bind it to a name",
}

var allocNumCmd = &cobra.Command{
	Use:   "num <name> <value>",
	Short: "Allocate a float64",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("parse %q as a number: %w", args[1], err)
		}
		s, err := currentSession()
		if err != nil {
			return err
		}
		scope := heap.NewHandleScope(s.heap)
		defer scope.Close()
		s.bind(args[0], scope.CreateNum(f).EraseType())
		fmt.Fprintf(cmd.OutOrStdout(), "%s = num %v\n", args[0], f)
		return nil
	},
}

var allocBoolCmd = &cobra.Command{
	Use:   "bool <name> <value>",
	Short: "Allocate a bool",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("parse %q as a bool: %w", args[1], err)
		}
		s, err := currentSession()
		if err != nil {
			return err
		}
		scope := heap.NewHandleScope(s.heap)
		defer scope.Close()
		s.bind(args[0], scope.CreateBool(b).EraseType())
		fmt.Fprintf(cmd.OutOrStdout(), "%s = bool %v\n", args[0], b)
		return nil
	},
}

var allocStrCmd = &cobra.Command{
	Use:   "str <name> <value...>",
	Short: "Allocate a native string",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		scope := heap.NewHandleScope(s.heap)
		defer scope.Close()
		str, err := scope.Str(strings.Join(args[1:], " "))
		if err != nil {
			return fmt.Errorf("allocate string: %w", err)
		}
		s.bind(args[0], str.EraseType())
		fmt.Fprintf(cmd.OutOrStdout(), "%s = str %q\n", args[0], string(*str.AsRef()))
		return nil
	},
}

var allocListCmd = &cobra.Command{
	Use:   "list <name>",
	Short: "Allocate an empty List",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		scope := heap.NewHandleScope(s.heap)
		defer scope.Close()
		l, err := heap.Take[anyList, *anyList](scope, anyList{})
		if err != nil {
			return fmt.Errorf("allocate list: %w", err)
		}
		s.bind(args[0], l.EraseType())
		fmt.Fprintf(cmd.OutOrStdout(), "%s = list[0]\n", args[0])
		return nil
	},
}

var allocMapCmd = &cobra.Command{
	Use:   "map <name>",
	Short: "Allocate an empty Map",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		scope := heap.NewHandleScope(s.heap)
		defer scope.Close()
		m, err := heap.Take[anyMap, *anyMap](scope, anyMap{})
		if err != nil {
			return fmt.Errorf("allocate map: %w", err)
		}
		s.bind(args[0], m.EraseType())
		fmt.Fprintf(cmd.OutOrStdout(), "%s = map[0 entries]\n", args[0])
		return nil
	},
}

var allocPushCmd = &cobra.Command{
	Use:   "push <list-name> <value-name>",
	Short: "Append a bound value to a bound list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		listG, err := s.lookup(args[0])
		if err != nil {
			return err
		}
		valueG, err := s.lookup(args[1])
		if err != nil {
			return err
		}
		scope := heap.NewHandleScope(s.heap)
		defer scope.Close()
		list, err := heap.TryAs[*anyList](heap.FromGlobal(scope, listG))
		if err != nil {
			return fmt.Errorf("%s is not a list: %w", args[0], err)
		}
		list.Push(heap.FromGlobal(scope, valueG))
		fmt.Fprintf(cmd.OutOrStdout(), "%s = list[%d]\n", args[0], list.Len())
		return nil
	},
}

func init() {
	allocCmd.AddCommand(allocNumCmd, allocBoolCmd, allocStrCmd, allocListCmd, allocMapCmd, allocPushCmd)
	rootCmd.AddCommand(allocCmd)
}

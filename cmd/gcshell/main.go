// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gcshell is an interactive console for the heap package: it
// allocates values, runs collections, and inspects the result of
// both, against one running Heap held in the process.
//
// Run "gcshell help" for the command tree, or "gcshell repl" to drive
// it interactively with line history.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gcshell: %v\n", err)
		os.Exit(1)
	}
}

// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jiwonkim00/uheap/heap"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "uheap",
		Short: "exercise and inspect the boundary-tag allocator",
	}

	root.AddCommand(stressCmd())
	root.AddCommand(benchCmd())
	root.AddCommand(checkCmd())
	return root
}

// parsePolicy maps a -policy flag value to a heap.Policy, the way a
// cobra-driven tool ordinarily maps a string flag to an enum.
func parsePolicy(s string) (heap.Policy, error) {
	switch s {
	case "implicit":
		return heap.Implicit, nil
	case "explicit":
		return heap.Explicit, nil
	default:
		return 0, fmt.Errorf("unknown policy %q, want implicit or explicit", s)
	}
}

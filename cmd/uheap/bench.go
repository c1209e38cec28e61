// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jiwonkim00/uheap/heap"
)

// benchCmd times allocate+free batches across a small size profile,
// one line per (policy, size) pair, the timing-loop-over-a-size-sweep
// shape of db_bench/main_test.go's BenchmarkMem adapted from testing.B
// to a plain wall-clock loop since this runs as a CLI, not `go test`.
func benchCmd() *cobra.Command {
	var (
		policy string
		count  int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "time allocate/free batches across a size profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePolicy(policy)
			if err != nil {
				return err
			}

			for _, size := range []int{16, 64, 256, 1024, 4096} {
				h := heap.New(heap.NewMemProvider())
				if err := h.Initialize(heap.Options{Policy: p}); err != nil {
					return err
				}

				ptrs := make([]heap.Ptr, count)
				t0 := time.Now()
				for i := 0; i < count; i++ {
					ptr, err := h.Allocate(size)
					if err != nil {
						return fmt.Errorf("allocate(%d): %w", size, err)
					}
					ptrs[i] = ptr
				}
				for _, ptr := range ptrs {
					h.Free(ptr)
				}
				d := time.Since(t0)

				fmt.Printf("policy=%-8s size=%5d count=%8d elapsed=%-14s %.0f ns/op\n",
					p, size, count, d, float64(d.Nanoseconds())/float64(2*count))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "implicit", "free-block search policy: implicit or explicit")
	cmd.Flags().IntVar(&count, "count", 10000, "number of allocate/free pairs per size")
	return cmd
}

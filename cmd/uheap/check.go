// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/jiwonkim00/uheap/heap"
)

// checkCmd builds a heap (over a file segment if -f is given, in
// memory otherwise), runs a scripted allocate/free workload, and
// prints heap.Check's report — the uheap analogue of dbm/crash's
// build-then-Verify diagnostic, minus the process-kill/reopen cycle
// since the allocator carries no durability contract to exercise.
func checkCmd() *cobra.Command {
	var (
		policy string
		file   string
		rounds int
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "run a workload then report heap.Check's structural summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePolicy(policy)
			if err != nil {
				return err
			}

			var provider heap.Provider
			if file != "" {
				f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
				if err != nil {
					return fmt.Errorf("open %s: %w", file, err)
				}
				defer f.Close()
				defer os.Remove(file)

				fp, err := heap.NewFileProvider(f)
				if err != nil {
					return err
				}
				defer fp.Close()
				provider = fp
			} else {
				provider = heap.NewMemProvider()
			}

			h := heap.New(provider)
			if err := h.Initialize(heap.Options{Policy: p}); err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(1))
			var alive []heap.Ptr
			for i := 0; i < rounds; i++ {
				if len(alive) == 0 || rng.Intn(2) == 0 {
					ptr, err := h.Allocate(1 + rng.Intn(512))
					if err != nil {
						return err
					}
					alive = append(alive, ptr)
					continue
				}

				idx := rng.Intn(len(alive))
				h.Free(alive[idx])
				alive[idx] = alive[len(alive)-1]
				alive = alive[:len(alive)-1]
			}

			fmt.Println(h.Check())
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "implicit", "free-block search policy: implicit or explicit")
	cmd.Flags().StringVarP(&file, "file", "f", "", "back the heap with this file instead of memory")
	cmd.Flags().IntVar(&rounds, "rounds", 5000, "number of allocate/free operations to run before reporting")
	return cmd
}

// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/jiwonkim00/uheap/heap"
)

// stressCmd drives a randomized allocate/realloc/free workload against
// an in-memory heap, the uheap analogue of lab/1/main.go's FLT-kind
// comparison driver: grow a live-object set, shrink it back down, and
// report what it cost.
func stressCmd() *cobra.Command {
	var (
		policy   string
		maxAlive int
		maxSize  int
		rounds   int
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "run a randomized allocate/free/resize workload",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePolicy(policy)
			if err != nil {
				return err
			}

			h := heap.New(heap.NewMemProvider())
			if err := h.Initialize(heap.Options{Policy: p}); err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(seed))
			alive := map[heap.Ptr]int{}
			var totalAlloc, totalFree, totalResize int

			t0 := time.Now()
			for i := 0; i < rounds; i++ {
				switch {
				case len(alive) < maxAlive && (len(alive) == 0 || rng.Intn(2) == 0):
					n := 1 + rng.Intn(maxSize)
					ptr, err := h.Allocate(n)
					if err != nil {
						return fmt.Errorf("allocate: %w", err)
					}
					alive[ptr] = n
					totalAlloc++

				case len(alive) > 0 && rng.Intn(4) == 0:
					for ptr, n := range alive {
						newN := 1 + rng.Intn(maxSize)
						newPtr, err := h.Resize(ptr, newN)
						if err != nil {
							return fmt.Errorf("resize: %w", err)
						}
						delete(alive, ptr)
						alive[newPtr] = newN
						totalResize++
						_ = n
						break
					}

				case len(alive) > 0:
					for ptr := range alive {
						h.Free(ptr)
						delete(alive, ptr)
						totalFree++
						break
					}
				}
			}

			st := h.Check()
			fmt.Printf("policy=%s rounds=%d alloc=%d free=%d resize=%d live=%d elapsed=%s\n",
				p, rounds, totalAlloc, totalFree, totalResize, len(alive), time.Since(t0))
			fmt.Println(st)
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "implicit", "free-block search policy: implicit or explicit")
	cmd.Flags().IntVar(&maxAlive, "max-alive", 256, "maximum number of simultaneously live blocks")
	cmd.Flags().IntVar(&maxSize, "max-size", 4096, "maximum payload size requested")
	cmd.Flags().IntVar(&rounds, "rounds", 100000, "number of operations to perform")
	cmd.Flags().Int64Var(&seed, "seed", 1, "PRNG seed")
	return cmd
}

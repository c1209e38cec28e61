// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command uheap drives a heap.Heap from the command line: stress
// exercises allocate/free/resize under a randomized workload, bench
// times allocation batches across a size profile, and check walks a
// freshly built heap through heap.Check and prints its report.
package main

import (
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	if err := rootCmd().Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

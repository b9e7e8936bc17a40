/*
 * Copyright 2025 The ringbuffer Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"fmt"
	"os"
)

// barrier synchronizes the start of a benchmark run over a pipe. It
// works identically for goroutine observers (both ends in-process) and
// process observers (one end inherited by the child), so the producer
// can release every observer with a single broadcast after all of them
// report ready.
type barrier struct {
	r *os.File
	w *os.File
}

func newBarrier() (*barrier, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("barrier pipe: %w", err)
	}
	return &barrier{r: r, w: w}, nil
}

// barrierFromFiles rebuilds a barrier around inherited pipe ends.
// Either end may be nil when the peer holds it.
func barrierFromFiles(r, w *os.File) *barrier {
	return &barrier{r: r, w: w}
}

// Wait blocks until n bytes have been signalled.
func (b *barrier) Wait(n int) error {
	buf := make([]byte, 1)
	for i := 0; i < n; i++ {
		if _, err := b.r.Read(buf); err != nil {
			return fmt.Errorf("barrier wait: %w", err)
		}
	}
	return nil
}

// Signal posts n bytes to the barrier.
func (b *barrier) Signal(n int) error {
	for i := 0; i < n; i++ {
		if _, err := b.w.Write([]byte{'z'}); err != nil {
			return fmt.Errorf("barrier signal: %w", err)
		}
	}
	return nil
}

// Close closes whichever ends this side holds.
func (b *barrier) Close() {
	if b.r != nil {
		b.r.Close()
	}
	if b.w != nil {
		b.w.Close()
	}
}

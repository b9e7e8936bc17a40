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

// Package ringbuffer provides a single-producer/multiple-observer,
// fixed-capacity, lock-free ring buffer in shared memory, for
// low-latency inter-process broadcast of fixed-size records such as
// market-data ticks.
//
// Observers do not consume: each one independently steps through
// whatever items are currently live in the ring. The producer never
// blocks and never coordinates with observers; when it laps a slow
// observer it simply overwrites the oldest slots. A lapped observer
// detects this on its next positions load and jumps forward past the
// oldest live item, reporting the skipped run through Gaps.
//
// The only synchronization is a single 64-bit atomic word in the ring
// header that packs the (first, last) item counters. The producer
// publishes each item with one store of that word; observers bracket
// every slot copy with loads of it and retry when the copy may have
// been torn by an overwrite. There are no locks, no channels and no
// OS-level waits anywhere on the data path.
//
// Item types must be fixed-layout and pointer-free: the ring transports
// raw bytes between processes, so pointers, slices, maps, strings,
// channels, funcs and interfaces are rejected at construction.
package ringbuffer

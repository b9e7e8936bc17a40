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

package ringbuffer

import "errors"

// All errors surface at construction or attach time. Once a handle
// exists, steady-state operations cannot fail: Get blocks rather than
// erroring, and data loss under overwrite is reported through Gaps,
// not through an error.
var (
	// ErrInvalidCapacity indicates a capacity that is zero, larger than
	// MaxUint32, or not a power of two.
	ErrInvalidCapacity = errors.New("ringbuffer: capacity must be a power of two in [1, 1<<32)")

	// ErrInvalidItemType indicates an item type that cannot travel
	// through shared memory: zero-sized, or containing pointers, maps,
	// chans, slices, strings, funcs or interfaces.
	ErrInvalidItemType = errors.New("ringbuffer: item type must be fixed-size and pointer-free")

	// ErrInvalidFixup indicates an underflow fixup of zero.
	ErrInvalidFixup = errors.New("ringbuffer: underflow fixup must be at least 1")

	// ErrCacheLine indicates the OS reports an L1 data cache line larger
	// than the compiled-in 64-byte slot alignment, which would break the
	// slot layout across processes.
	ErrCacheLine = errors.New("ringbuffer: system cache line size exceeds the expected 64 bytes")

	// ErrItemTooLarge indicates a slot stride above the system page size.
	ErrItemTooLarge = errors.New("ringbuffer: item does not fit in a system page")

	// ErrVersionMismatch indicates a ring written by an incompatible
	// protocol version.
	ErrVersionMismatch = errors.New("ringbuffer: stored ring version is incompatible with this implementation")

	// ErrItemSizeMismatch indicates the stored item size differs from
	// the attaching handle's item type.
	ErrItemSizeMismatch = errors.New("ringbuffer: stored item size does not match the observer item type")
)

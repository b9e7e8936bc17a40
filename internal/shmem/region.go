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

// Package shmem provides named, process-shared memory regions backed by
// memory-mapped files. A region is a contiguous byte span with a stable
// address for the lifetime of the handle; u64-aligned atomics inside it
// carry the usual acquire/release visibility across processes.
package shmem

import (
	"errors"
	"os"
	"unsafe"
)

// Mode is the access mode of a mapped region.
type Mode int

const (
	// ReadWrite maps the region for reading and writing.
	ReadWrite Mode = iota
	// ReadOnly maps the region for reading only.
	ReadOnly
)

// ErrUnsupported is returned on platforms without shared memory support.
var ErrUnsupported = errors.New("shmem: shared memory regions are not supported on this platform")

// Platform-specific hook, set by an init in the platform file.
var unmapRegion func([]byte) error

// Region is a mapped shared memory region identified by a name.
// The mapping stays byte-stable until Close.
type Region struct {
	name string
	file *os.File
	data []byte
	mode Mode
}

// Name returns the name the region was created or opened with.
func (r *Region) Name() string {
	return r.name
}

// Bytes returns the mapped byte span.
func (r *Region) Bytes() []byte {
	return r.data
}

// Base returns the base address of the mapping.
func (r *Region) Base() unsafe.Pointer {
	return unsafe.Pointer(&r.data[0])
}

// Size returns the size of the mapping in bytes.
func (r *Region) Size() int {
	return len(r.data)
}

// Mode returns the access mode of the mapping.
func (r *Region) Mode() Mode {
	return r.mode
}

// Close unmaps the region and closes the backing file. It does not
// unlink the name; see Remove. Close is safe to call more than once.
func (r *Region) Close() error {
	var firstErr error

	if r.data != nil {
		if err := unmapRegion(r.data); err != nil && firstErr == nil {
			firstErr = err
		}
		r.data = nil
	}

	if r.file != nil {
		if err := r.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		r.file = nil
	}

	return firstErr
}

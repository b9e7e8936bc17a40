//go:build !unix

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

package shmem

func init() {
	unmapRegion = func([]byte) error { return nil }
}

// Create is not supported on this platform.
func Create(name string, size int) (*Region, error) {
	return nil, ErrUnsupported
}

// Open is not supported on this platform.
func Open(name string) (*Region, error) {
	return nil, ErrUnsupported
}

// Remove is not supported on this platform.
func Remove(name string) error {
	return ErrUnsupported
}

// Exists reports false on platforms without shared memory support.
func Exists(name string) bool {
	return false
}

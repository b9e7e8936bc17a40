//go:build unix

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

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

func init() {
	unmapRegion = munmapImpl
}

// filePrefix namespaces region files so Remove cannot touch unrelated files.
const filePrefix = "ringbuffer_"

// Create creates a new shared memory region of the given size. It fails
// if a region with the same name already exists.
func Create(name string, size int) (*Region, error) {
	path := regionPath(name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("shmem: create region %s: %w", path, err)
	}

	cleanup := func() {
		file.Close()
		os.Remove(path)
	}

	if err := file.Truncate(int64(size)); err != nil {
		cleanup()
		return nil, fmt.Errorf("shmem: resize region %s: %w", path, err)
	}

	data, err := unix.Mmap(int(file.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("shmem: mmap region %s: %w", path, err)
	}

	return &Region{
		name: name,
		file: file,
		data: data,
		mode: ReadWrite,
	}, nil
}

// Open maps an existing shared memory region read-only. It fails with an
// error satisfying errors.Is(err, fs.ErrNotExist) if the name is absent.
func Open(name string) (*Region, error) {
	path := regionPath(name)

	file, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("shmem: open region %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("shmem: stat region %s: %w", path, err)
	}

	data, err := unix.Mmap(int(file.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("shmem: mmap region %s: %w", path, err)
	}

	return &Region{
		name: name,
		file: file,
		data: data,
		mode: ReadOnly,
	}, nil
}

// Remove unlinks a named region from the file system. Mappings held by
// live handles stay valid until they are closed.
func Remove(name string) error {
	var lastErr error
	for _, path := range regionPaths(name) {
		if err := os.Remove(path); err == nil {
			return nil
		} else if !os.IsNotExist(err) {
			lastErr = err
		}
	}

	if lastErr != nil {
		return lastErr
	}
	return os.ErrNotExist
}

// Exists reports whether a region with the given name exists.
func Exists(name string) bool {
	for _, path := range regionPaths(name) {
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	return false
}

// regionPath returns the preferred backing path for a region name.
func regionPath(name string) string {
	if isDevShmAvailable() {
		return filepath.Join("/dev/shm", filePrefix+name)
	}
	return filepath.Join(os.TempDir(), filePrefix+name)
}

// regionPaths returns every path a region with this name may live at.
func regionPaths(name string) []string {
	return []string{
		filepath.Join("/dev/shm", filePrefix+name),
		filepath.Join(os.TempDir(), filePrefix+name),
	}
}

// isDevShmAvailable checks if /dev/shm is available and a directory.
func isDevShmAvailable() bool {
	info, err := os.Stat("/dev/shm")
	if err != nil {
		return false
	}
	return info.IsDir()
}

// munmapImpl unmaps a memory-mapped region.
func munmapImpl(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	if err := unix.Munmap(data); err != nil {
		return fmt.Errorf("shmem: munmap: %w", err)
	}
	return nil
}

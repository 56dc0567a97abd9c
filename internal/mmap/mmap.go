// Copyright 2025 The unreal-git-names Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package mmap provides read-only memory-mapped access to whole files.
// Package parsing wants the complete buffer with no copies or read
// loops; on platforms without mmap support Open falls back to reading
// the file into memory behind the same API.
package mmap

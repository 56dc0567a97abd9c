// Copyright 2025 The unreal-git-names Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package unrealnames

// Version is reported by the command line tools.
const Version = "v1.2.0"

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geom provides the small set of value types shared by the
// compositor and its surface backends: float and integer rectangles,
// points, sizes and 4x4 transforms.
//
// Float geometry uses float32 throughout, matching the precision of
// GPU-side layer coordinates.
package geom

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package native provides a GPU surface backend on gogpu/wgpu HAL devices.
//
// Each compositor backing store is a HAL texture. Layers paint into a CPU
// staging image through the same draw context the CPU backend uses, and the
// image is uploaded with Queue.WriteTexture when painting finishes. Hosts
// bind Surface.View in their own composite pass; CompositeShaderSource is a
// ready-made WGSL shader for that pass.
//
// Importing the package registers the backend as "native" with priority
// 100. It becomes available once a device is installed:
//
//	native.SetDeviceProvider(app) // any gpucontext.DeviceProvider
//	c, err := compositor.New(compositor.WithBackendName(native.Name))
//
// Supported surface formats are RGBA8Unorm and BGRA8Unorm.
package native

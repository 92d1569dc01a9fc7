// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the device layer the planeshift compositor draws
// with.
//
// Device is a small GL-style command surface: named textures,
// renderbuffers and framebuffers, a viewport and scissor, fixed-function
// depth and blend state, textured quads and pixel readback. Framebuffer
// coordinates follow GL conventions, with the origin at the bottom-left
// and rows growing upward.
//
// # Key Principle
//
// A compositor RECEIVES its device from the host application, it does NOT
// create one. The host's window (gpucontext.WindowProvider) decides the
// framebuffer size and its device (gpucontext.DeviceProvider) decides the
// surface format.
//
// # Implementations
//
//   - SoftwareDevice: CPU reference device with exact integer blending
//   - NullDeviceHandle: DeviceHandle for headless hosts with no GPU
//
// # Usage
//
//	dev, err := render.NewSoftwareDevice(800, 600, gputypes.TextureFormatRGBA8Unorm)
//	if err != nil {
//	    return err
//	}
//	tex, _ := dev.CreateTexture(render.DefaultTextureDescriptor(64, 64, gputypes.TextureFormatRGBA8Unorm))
//	_ = dev.UploadTexture(tex, image.Rect(0, 0, 64, 64), pixels)
//
//	_ = dev.BindFramebuffer(render.DefaultFramebuffer)
//	dev.SetState(render.State{Blend: true, BlendSrc: render.BlendOne, BlendDst: render.BlendOneMinusSrcAlpha})
//	_ = dev.DrawQuad(render.Quad{Texture: tex, Transform: f32.Aff3{1, 0, -0.5, 0, 1, -0.5}})
//
//	rows, _ := dev.ReadPixels(image.Rect(0, 0, 800, 600))
//
// # Thread Safety
//
// SoftwareDevice serializes all calls with an internal mutex. Textures it
// returns share that mutex for their gpucontext update methods.
package render

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

func TestNullDeviceHandle(t *testing.T) {
	var handle DeviceHandle = NullDeviceHandle{}

	if handle.Device() != nil {
		t.Error("NullDeviceHandle.Device() should return nil")
	}
	if handle.Queue() != nil {
		t.Error("NullDeviceHandle.Queue() should return nil")
	}
	if handle.Adapter() != nil {
		t.Error("NullDeviceHandle.Adapter() should return nil")
	}
	if handle.SurfaceFormat() != gputypes.TextureFormatUndefined {
		t.Error("NullDeviceHandle.SurfaceFormat() should return Undefined")
	}
	if got := handle.AdapterInfo().Type; got != gpucontext.AdapterTypeSoftware {
		t.Errorf("AdapterInfo().Type = %v, want Software", got)
	}
}

func TestTextureDescriptorDefault(t *testing.T) {
	desc := DefaultTextureDescriptor(256, 128, gputypes.TextureFormatRGBA8Unorm)

	if desc.Width != 256 {
		t.Errorf("Width = %d, want 256", desc.Width)
	}
	if desc.Height != 128 {
		t.Errorf("Height = %d, want 128", desc.Height)
	}
	if desc.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format = %v, want RGBA8Unorm", desc.Format)
	}
	if desc.Usage&TextureUsageTextureBinding == 0 {
		t.Error("Usage should include TextureBinding")
	}
	if desc.Usage&TextureUsageRenderAttachment == 0 {
		t.Error("Usage should include RenderAttachment")
	}
}

func TestTextureUsageFlags(t *testing.T) {
	flags := []TextureUsage{
		TextureUsageCopySrc,
		TextureUsageCopyDst,
		TextureUsageTextureBinding,
		TextureUsageRenderAttachment,
	}
	var seen TextureUsage
	for _, f := range flags {
		if seen&f != 0 {
			t.Errorf("flag %d overlaps earlier flags", f)
		}
		seen |= f
	}
}

func TestZeroStateIsFreshContext(t *testing.T) {
	var s State
	if s.DepthTest || s.DepthWrite || s.Blend {
		t.Errorf("zero State = %+v, want everything disabled", s)
	}
	if s.DepthFunc != CompareAlways {
		t.Errorf("zero DepthFunc = %v, want CompareAlways", s.DepthFunc)
	}
}

package shaders

import (
	"strings"
	"testing"
)

func TestShaderSourcesNonEmpty(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"mipmap", MipMapCompute},
		{"overlay_solid", OverlaySolid},
		{"overlay_text", OverlayText},
		{"overlay_preview", OverlayPreview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.source == "" {
				t.Errorf("%s shader source is empty", tt.name)
			}
			if len(tt.source) < 100 {
				t.Errorf("%s shader source suspiciously short: %d bytes", tt.name, len(tt.source))
			}
		})
	}
}

func TestShaderSourcesContainExpectedContent(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		required []string
	}{
		{
			name:   "mipmap",
			source: MipMapCompute,
			required: []string{
				"@compute",
				"@workgroup_size(8, 8)",
				"computeMipMap",
				"texture_storage_2d<rgba8unorm, write>",
				"textureLoad",
				"textureStore",
				"@builtin(global_invocation_id)",
			},
		},
		{
			name:   "overlay_solid",
			source: OverlaySolid,
			required: []string{
				"@vertex",
				"@fragment",
				"vs_main",
				"fs_main",
				"mat4x4<f32>",
				"var<uniform>",
			},
		},
		{
			name:   "overlay_text",
			source: OverlayText,
			required: []string{
				"@vertex",
				"@fragment",
				"texture_2d<f32>",
				"sampler",
				"textureSample",
				"atlasTexture",
			},
		},
		{
			name:   "overlay_preview",
			source: OverlayPreview,
			required: []string{
				"@vertex",
				"@fragment",
				"texture_2d<f32>",
				"textureSample",
				"previewTexture",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, req := range tt.required {
				if !strings.Contains(tt.source, req) {
					t.Errorf("%s shader missing required element: %q", tt.name, req)
				}
			}
		})
	}
}

func TestMipMapShaderBindings(t *testing.T) {
	// The compute bind group layout depends on these exact bindings.
	if !strings.Contains(MipMapCompute, "@group(0) @binding(0) var previousMipLevel: texture_2d<f32>") {
		t.Error("mipmap shader missing sampled texture at binding 0")
	}
	if !strings.Contains(MipMapCompute, "@group(0) @binding(1) var nextMipLevel: texture_storage_2d<rgba8unorm, write>") {
		t.Error("mipmap shader missing storage texture at binding 1")
	}
}

package scene

import (
	_ "embed"

	"github.com/Carmen-Shannon/vignette-go/engine/mesh"
	"github.com/Carmen-Shannon/vignette-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed shaders/scene.wgsl
var sceneWGSL string

// PipelineKey identifies the scene's render pipeline in the renderer's cache.
const PipelineKey = "scene"

// FrameBindGroupLayout returns the layout descriptor for @group(0): the
// per-frame uniform block (view, projection, camera, light).
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the frame uniform layout
func FrameBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Uniforms Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: GPUFrameUniformsSize,
				},
			},
		},
	}
}

// DrawBindGroupLayout returns the layout descriptor for @group(1): the
// per-draw uniform block, bound with a dynamic offset into the shared draw
// uniform buffer.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the draw uniform layout
func DrawBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Draw Uniforms Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: true,
					MinBindingSize:   GPUDrawUniformsSize,
				},
			},
		},
	}
}

// TextureBindGroupLayout returns the layout descriptor for @group(2): one
// texture view and sampler pair. Every texture unit's bind group uses this
// layout, as does the registry's fallback.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the texture layout
func TextureBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Texture Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}

// VertexShader returns the scene's vertex shader with its bind group layouts
// and vertex buffer layout declared.
//
// Returns:
//   - shader.Shader: the vertex shader stage
func VertexShader() shader.Shader {
	return shader.NewShader(
		"scene_vs",
		shader.ShaderTypeVertex,
		sceneWGSL,
		shader.WithBindGroupLayout(0, FrameBindGroupLayout()),
		shader.WithBindGroupLayout(1, DrawBindGroupLayout()),
		shader.WithVertexLayouts(mesh.VertexBufferLayout()),
	)
}

// FragmentShader returns the scene's fragment shader with its bind group
// layouts declared.
//
// Returns:
//   - shader.Shader: the fragment shader stage
func FragmentShader() shader.Shader {
	return shader.NewShader(
		"scene_fs",
		shader.ShaderTypeFragment,
		sceneWGSL,
		shader.WithBindGroupLayout(0, FrameBindGroupLayout()),
		shader.WithBindGroupLayout(1, DrawBindGroupLayout()),
		shader.WithBindGroupLayout(2, TextureBindGroupLayout()),
	)
}

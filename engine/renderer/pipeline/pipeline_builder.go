package pipeline

import (
	"github.com/Carmen-Shannon/vignette-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option applied to a pipeline during construction via NewPipeline.
type PipelineBuilderOption func(*pipeline)

// WithVertexShader sets the vertex shader for the pipeline.
//
// Parameters:
//   - s: the vertex shader
//
// Returns:
//   - PipelineBuilderOption: a function that applies the vertex shader option to a pipeline
func WithVertexShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexShader = s
	}
}

// WithFragmentShader sets the fragment shader for the pipeline.
//
// Parameters:
//   - s: the fragment shader
//
// Returns:
//   - PipelineBuilderOption: a function that applies the fragment shader option to a pipeline
func WithFragmentShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.fragmentShader = s
	}
}

// WithDepthTestEnabled toggles depth testing for the pipeline.
//
// Parameters:
//   - enabled: true to enable depth testing
//
// Returns:
//   - PipelineBuilderOption: a function that applies the depth test option to a pipeline
func WithDepthTestEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled = enabled
	}
}

// WithDepthWriteEnabled toggles depth buffer writes for the pipeline.
//
// Parameters:
//   - enabled: true to enable depth writes
//
// Returns:
//   - PipelineBuilderOption: a function that applies the depth write option to a pipeline
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWriteEnabled = enabled
	}
}

// WithBlendEnabled toggles alpha blending for the pipeline.
//
// Parameters:
//   - enabled: true to enable blending
//
// Returns:
//   - PipelineBuilderOption: a function that applies the blend option to a pipeline
func WithBlendEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendEnabled = enabled
	}
}

// WithCullMode sets the face culling mode for the pipeline.
//
// Parameters:
//   - mode: the cull mode (none, front, or back)
//
// Returns:
//   - PipelineBuilderOption: a function that applies the cull mode option to a pipeline
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology sets the primitive topology for the pipeline.
//
// Parameters:
//   - topology: the primitive topology
//
// Returns:
//   - PipelineBuilderOption: a function that applies the topology option to a pipeline
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithFrontFace sets the winding order considered front-facing.
//
// Parameters:
//   - frontFace: the front face winding order
//
// Returns:
//   - PipelineBuilderOption: a function that applies the front face option to a pipeline
func WithFrontFace(frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = frontFace
	}
}

// WithBlendState sets the blend state used when blending is enabled.
//
// Parameters:
//   - blendState: the blend state
//
// Returns:
//   - PipelineBuilderOption: a function that applies the blend state option to a pipeline
func WithBlendState(blendState *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendState = blendState
	}
}

package pipeline

import (
	"github.com/Carmen-Shannon/vignette-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the underlying WebGPU render pipeline object and the configuration
// used to create it.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	// vertexShader and fragmentShader are required before the pipeline can be registered.
	vertexShader, fragmentShader shader.Shader

	// renderPipeline is the created GPU pipeline, nil until registered with the Renderer.
	renderPipeline *wgpu.RenderPipeline

	// The following properties configure the pipeline during creation and can be
	// toggled with the builder options.

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline defines the interface for a GPU render pipeline (vertex + fragment
// shaders) and the configuration state required to create it, including depth,
// blend, cull, and topology settings.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader for the specified stage if it exists, nil otherwise.
	//
	// Parameters:
	//   - shaderType: the shader stage to retrieve (vertex or fragment)
	//
	// Returns:
	//   - shader.Shader: the shader for the stage, or nil if not set
	Shader(shaderType shader.ShaderType) shader.Shader

	// RenderPipeline returns the created GPU render pipeline, or nil if the pipeline
	// has not been registered with the Renderer.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU pipeline or nil
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline stores the created GPU render pipeline.
	// Called by the Renderer during registration.
	//
	// Parameters:
	//   - p: the created GPU pipeline
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth testing is enabled
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth writing is enabled
	DepthWriteEnabled() bool

	// BlendEnabled returns whether alpha blending is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if blending is enabled
	BlendEnabled() bool

	// BlendState returns the blend state used when blending is enabled.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state
	BlendState() *wgpu.BlendState

	// CullMode returns the face culling mode for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the topology
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the winding order considered front-facing.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color channel write mask for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the write mask
	WriteMask() wgpu.ColorWriteMask
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a new render Pipeline with the given key and options.
// Defaults: depth test and write enabled, back-face culling, triangle list
// topology, counter-clockwise front faces, full color write mask, standard
// alpha blending state (applied only when blending is enabled).
//
// Parameters:
//   - key: the unique identifier for this pipeline
//   - options: variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance
func NewPipeline(key string, options ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       key,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeBack,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	}
	return nil
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

package scene

// GPUFrameUniforms is the per-frame uniform block at @group(0) @binding(0).
// Field order, types, and padding must match the WGSL FrameUniforms struct exactly.
type GPUFrameUniforms struct {
	View           [16]float32 // column-major view matrix
	Projection     [16]float32 // column-major projection matrix
	CameraPosition [4]float32  // world-space camera position, w unused
	LightDirection [4]float32  // world-space direction the light travels, w unused
	LightColor     [4]float32  // directional light color, w unused
	AmbientColor   [4]float32  // ambient light color, w unused
}

// GPUFrameUniformsSize is the byte size of GPUFrameUniforms.
const GPUFrameUniformsSize = 192

// GPUDrawUniforms is the per-draw uniform block at @group(1) @binding(0),
// selected per draw via a dynamic offset. Field order, types, and padding must
// match the WGSL DrawUniforms struct exactly.
type GPUDrawUniforms struct {
	Model            [16]float32 // column-major model matrix
	Color            [4]float32  // flat color used when UseTexture is 0
	MaterialDiffuse  [4]float32  // material diffuse reflectivity, w unused
	MaterialSpecular [4]float32  // material specular reflectivity, w holds shininess
	UVScale          [2]float32  // texture coordinate multiplier
	UseTexture       uint32      // 1 to sample the bound texture, 0 to use Color
	UseLighting      uint32      // 1 to apply the lighting model, 0 for unlit
}

// GPUDrawUniformsSize is the byte size of GPUDrawUniforms.
const GPUDrawUniformsSize = 128

// DrawUniformStride is the byte spacing between per-draw uniform slots in the
// shared draw uniform buffer. WebGPU requires dynamic offsets to be multiples
// of 256.
const DrawUniformStride = 256

// MaxDrawsPerFrame caps the number of draw uniform slots available between
// RenderScene calls, sizing the shared draw uniform buffer.
const MaxDrawsPerFrame = 256

package mesh

import "github.com/cogentcore/webgpu/wgpu"

// GPUVertex is the vertex layout shared by all shape meshes.
// Field order and types must match the vertex shader inputs exactly.
type GPUVertex struct {
	Position [3]float32 // @location(0)
	Normal   [3]float32 // @location(1)
	TexCoord [2]float32 // @location(2)
}

// GPUVertexSize is the byte stride of one GPUVertex.
const GPUVertexSize = 32

// VertexBufferLayout returns the wgpu vertex buffer layout describing GPUVertex
// for render pipeline creation.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout for vertex buffer slot 0
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: GPUVertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         0,
				ShaderLocation: 0,
			},
			{
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         12,
				ShaderLocation: 1,
			},
			{
				Format:         wgpu.VertexFormatFloat32x2,
				Offset:         24,
				ShaderLocation: 2,
			},
		},
	}
}

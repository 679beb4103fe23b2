package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderBuilderOption is a functional option used to configure a shader during construction.
type ShaderBuilderOption func(*shader)

// WithEntryPoint overrides the default entry point function name for this shader stage.
//
// Parameters:
//   - name: the WGSL entry point function name
//
// Returns:
//   - ShaderBuilderOption: a function that applies the entry point option to a shader
func WithEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = name
	}
}

// WithBindGroupLayout declares the bind group layout descriptor for a group index.
// The descriptor must match the @group declarations in the WGSL source.
//
// Parameters:
//   - group: the bind group index
//   - desc: the layout descriptor for the group
//
// Returns:
//   - ShaderBuilderOption: a function that applies the layout option to a shader
func WithBindGroupLayout(group int, desc wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.bindGroupLayoutDescriptors[group] = desc
	}
}

// WithVertexLayouts declares the vertex buffer layouts consumed by a vertex shader.
//
// Parameters:
//   - layouts: the vertex buffer layouts, in buffer slot order
//
// Returns:
//   - ShaderBuilderOption: a function that applies the vertex layout option to a shader
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts = layouts
	}
}

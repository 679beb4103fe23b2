package scene

import (
	"github.com/Carmen-Shannon/vignette-go/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// Device is the subset of the renderer the scene manager drives directly:
// uniform bind group setup, uniform uploads, and draw encoding.
// The renderer.Renderer interface satisfies it.
type Device interface {
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error
	WriteBuffers(writes []bind_group_provider.BufferWrite)
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, firstIndex, indexCount uint32, bindGroups []bind_group_provider.BindGroupProvider, dynamicOffsets map[int][]uint32) error
}

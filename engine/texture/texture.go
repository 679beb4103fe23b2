// Package texture provides a tag-addressed registry of GPU textures.
//
// Each registered texture occupies one texture unit, assigned in registration
// order starting at 0, and owns a bind group pairing its texture view with a
// sampler. The registry also maintains an internal 1x1 white fallback texture
// used for untextured draws; the fallback does not occupy a unit and does not
// count against the registry capacity.
package texture

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/vignette-go/common"
	"github.com/Carmen-Shannon/vignette-go/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// MaxTextureUnits is the maximum number of textures the registry can hold.
const MaxTextureUnits = 16

var (
	// ErrRegistryFull is returned when registering a texture would exceed MaxTextureUnits.
	ErrRegistryFull = errors.New("texture registry is full")

	// ErrDuplicateTag is returned when registering a texture under a tag that is already taken.
	ErrDuplicateTag = errors.New("texture tag already registered")

	// ErrNotFound is returned when looking up a tag that has not been registered.
	ErrNotFound = errors.New("texture tag not found")
)

// Device is the subset of the renderer used to create GPU texture resources.
// The renderer.Renderer interface satisfies it.
type Device interface {
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error
}

// entry holds one registered texture: its staging pixels until BindAll, and
// its bind group provider afterwards.
type entry struct {
	tag      string
	unit     int
	staging  common.TextureStagingData
	provider bind_group_provider.BindGroupProvider
}

// registry is the implementation of the Registry interface.
type registry struct {
	device Device

	entries map[string]*entry
	order   []string

	defaultSampler common.SamplerStagingData

	// fallback is the internal white texture bound for untextured draws.
	// It owns the bind group layout shared by all per-unit bind groups.
	fallback bind_group_provider.BindGroupProvider
	bound    bool
}

// Registry defines the interface for the texture registry.
//
// Textures are registered by tag via Load or Add, then uploaded to the GPU in
// one pass via BindAll. Lookups by tag resolve to the texture unit assigned at
// registration time.
type Registry interface {
	// Load decodes an image file and registers it under the given tag.
	// The image is flipped vertically during decode so texture coordinates
	// start at the bottom-left.
	//
	// Parameters:
	//   - tag: the unique tag to register the texture under
	//   - path: the path to the image file on disk
	//
	// Returns:
	//   - error: ErrDuplicateTag, ErrRegistryFull, or a decode error
	Load(tag, path string) error

	// Add registers already-decoded pixel data under the given tag.
	// The texture is assigned the next free unit in registration order.
	//
	// Parameters:
	//   - tag: the unique tag to register the texture under
	//   - staging: the RGBA pixel data and dimensions
	//
	// Returns:
	//   - error: ErrDuplicateTag or ErrRegistryFull
	Add(tag string, staging common.TextureStagingData) error

	// BindAll uploads every registered texture to the GPU and creates one bind
	// group per texture unit, plus the internal fallback bind group. All bind
	// groups share a single layout created from the descriptor. Must be called
	// before Provider or ProviderByUnit; textures registered after BindAll are
	// not bound until the next BindAll.
	//
	// Parameters:
	//   - descriptor: the bind group layout descriptor pairing a texture view with a sampler
	//
	// Returns:
	//   - error: an error if GPU resource creation fails
	BindAll(descriptor wgpu.BindGroupLayoutDescriptor) error

	// Unit resolves a tag to its assigned texture unit.
	//
	// Parameters:
	//   - tag: the tag to resolve
	//
	// Returns:
	//   - int: the texture unit, or -1 when not found
	//   - error: ErrNotFound when the tag is not registered
	Unit(tag string) (int, error)

	// Provider returns the bind group provider for a registered tag.
	//
	// Parameters:
	//   - tag: the tag to resolve
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider, or nil when not found
	//   - error: ErrNotFound when the tag is not registered
	Provider(tag string) (bind_group_provider.BindGroupProvider, error)

	// ProviderByUnit returns the bind group provider for a texture unit,
	// or nil when the unit is out of range.
	//
	// Parameters:
	//   - unit: the texture unit assigned at registration time
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider or nil
	ProviderByUnit(unit int) bind_group_provider.BindGroupProvider

	// FallbackProvider returns the bind group provider for the internal white
	// texture, or nil before BindAll.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the fallback provider or nil
	FallbackProvider() bind_group_provider.BindGroupProvider

	// Tags returns the registered tags in unit order.
	//
	// Returns:
	//   - []string: the tags in registration order
	Tags() []string

	// Len returns the number of registered textures, excluding the fallback.
	//
	// Returns:
	//   - int: the number of registered textures
	Len() int

	// Release releases all GPU resources held by the registry and clears it.
	Release()
}

var _ Registry = &registry{}

// NewRegistry creates a new texture Registry backed by the given device.
//
// Parameters:
//   - device: the GPU device used to create texture resources
//   - options: variadic list of RegistryOption functions to configure the registry
//
// Returns:
//   - Registry: a new Registry instance
func NewRegistry(device Device, options ...RegistryOption) Registry {
	r := &registry{
		device:  device,
		entries: make(map[string]*entry),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *registry) Load(tag, path string) error {
	img, err := common.DecodeImageFile(path)
	if err != nil {
		return fmt.Errorf("load texture %q: %w", tag, err)
	}
	return r.Add(tag, img.Staging())
}

func (r *registry) Add(tag string, staging common.TextureStagingData) error {
	if _, exists := r.entries[tag]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
	}
	if len(r.order) >= MaxTextureUnits {
		return fmt.Errorf("%w: capacity %d reached", ErrRegistryFull, MaxTextureUnits)
	}

	r.entries[tag] = &entry{
		tag:     tag,
		unit:    len(r.order),
		staging: staging,
	}
	r.order = append(r.order, tag)
	return nil
}

func (r *registry) BindAll(descriptor wgpu.BindGroupLayoutDescriptor) error {
	// The fallback is bound first and owns the layout shared by every
	// per-unit bind group.
	fallback := bind_group_provider.NewBindGroupProvider("Texture Fallback")
	if err := r.device.InitTextureView(fallback, 0, whiteStagingData()); err != nil {
		return fmt.Errorf("bind fallback texture: %w", err)
	}
	if err := r.device.InitSampler(fallback, 1, r.defaultSampler); err != nil {
		return fmt.Errorf("bind fallback texture: %w", err)
	}
	if err := r.device.InitBindGroup(fallback, descriptor, nil, nil); err != nil {
		return fmt.Errorf("bind fallback texture: %w", err)
	}
	r.fallback = fallback

	for _, tag := range r.order {
		e := r.entries[tag]
		provider := bind_group_provider.NewBindGroupProvider(
			"Texture "+tag,
			bind_group_provider.WithBindGroupLayout(fallback.BindGroupLayout()),
		)
		if err := r.device.InitTextureView(provider, 0, e.staging); err != nil {
			return fmt.Errorf("bind texture %q: %w", tag, err)
		}
		if err := r.device.InitSampler(provider, 1, r.defaultSampler); err != nil {
			return fmt.Errorf("bind texture %q: %w", tag, err)
		}
		if err := r.device.InitBindGroup(provider, descriptor, nil, nil); err != nil {
			return fmt.Errorf("bind texture %q: %w", tag, err)
		}
		e.provider = provider
	}

	r.bound = true
	return nil
}

func (r *registry) Unit(tag string) (int, error) {
	e, exists := r.entries[tag]
	if !exists {
		return -1, fmt.Errorf("%w: %q", ErrNotFound, tag)
	}
	return e.unit, nil
}

func (r *registry) Provider(tag string) (bind_group_provider.BindGroupProvider, error) {
	e, exists := r.entries[tag]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, tag)
	}
	return e.provider, nil
}

func (r *registry) ProviderByUnit(unit int) bind_group_provider.BindGroupProvider {
	if unit < 0 || unit >= len(r.order) {
		return nil
	}
	return r.entries[r.order[unit]].provider
}

func (r *registry) FallbackProvider() bind_group_provider.BindGroupProvider {
	return r.fallback
}

func (r *registry) Tags() []string {
	tags := make([]string, len(r.order))
	copy(tags, r.order)
	return tags
}

func (r *registry) Len() int {
	return len(r.order)
}

func (r *registry) Release() {
	for _, tag := range r.order {
		e := r.entries[tag]
		if e.provider != nil {
			// The layout is owned by the fallback provider; clear it so it
			// is not released once per unit.
			e.provider.SetBindGroupLayout(nil)
			e.provider.Release()
		}
	}
	if r.fallback != nil {
		r.fallback.Release()
		r.fallback = nil
	}
	r.entries = make(map[string]*entry)
	r.order = nil
	r.bound = false
}

// whiteStagingData returns a 1x1 opaque white pixel used as the fallback
// texture for untextured draws.
func whiteStagingData() common.TextureStagingData {
	return common.TextureStagingData{
		Pixels: []byte{0xFF, 0xFF, 0xFF, 0xFF},
		Width:  1,
		Height: 1,
	}
}

// Package scene manages the 3D still-life scene: it prepares GPU resources
// for the texture, material, and mesh registries, tracks the current draw
// state (transform, color or texture, material, lighting), and walks the
// declarative placement tables each frame to emit draw calls.
package scene

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/vignette-go/common"
	"github.com/Carmen-Shannon/vignette-go/engine/material"
	"github.com/Carmen-Shannon/vignette-go/engine/mesh"
	"github.com/Carmen-Shannon/vignette-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/vignette-go/engine/texture"
)

// manager is the implementation of the Manager interface.
type manager struct {
	mu *sync.Mutex

	device    Device
	textures  texture.Registry
	materials material.Registry
	meshes    mesh.Library

	textureRefs []TextureRef
	objects     []Object
	stubs       []Stub

	// decodePool runs image decodes in parallel during PrepareScene. Decoded
	// results are slotted by manifest index so registration order stays
	// deterministic regardless of completion order.
	decodePool    worker.DynamicWorkerPool
	decodeWorkers int

	frameProvider bind_group_provider.BindGroupProvider
	drawProvider  bind_group_provider.BindGroupProvider

	// frame holds the per-frame uniforms; draw holds the current draw state
	// snapshotted into a uniform slot on every Draw.
	frame       GPUFrameUniforms
	draw        GPUDrawUniforms
	textureUnit int

	// slot is the next free draw uniform slot; reset at the top of RenderScene.
	slot int

	prepared bool
}

// Manager defines the interface for the scene manager.
//
// The flow mirrors immediate-mode scene APIs: setters mutate the current draw
// state, and Draw snapshots that state into a per-draw uniform slot before
// encoding the draw. RenderScene drives the whole placement table through that
// flow in deterministic order.
type Manager interface {
	// PrepareScene loads every GPU resource the scene needs: textures are
	// decoded in parallel and registered in manifest order, meshes are
	// generated and uploaded, and the uniform bind groups are created.
	// Must be called once before RenderScene.
	//
	// Parameters:
	//   - ctx: cancels outstanding texture decodes when done
	//
	// Returns:
	//   - error: an error if any resource fails to load
	PrepareScene(ctx context.Context) error

	// RenderScene walks the placement tables and emits one draw per placement
	// part, in table order. Draw uniform slots are reset at the start, so the
	// emitted sequence is identical every frame for unchanged tables.
	//
	// Returns:
	//   - error: an error if a placement references unknown resources or the
	//     per-frame draw budget is exhausted
	RenderScene() error

	// SetViewProjection sets the view and projection matrices for the frame.
	//
	// Parameters:
	//   - view: the column-major view matrix (16 floats)
	//   - projection: the column-major projection matrix (16 floats)
	SetViewProjection(view, projection []float32)

	// SetCameraPosition sets the world-space camera position used for
	// specular highlights.
	//
	// Parameters:
	//   - position: the camera position
	SetCameraPosition(position [3]float32)

	// SetLighting configures the directional light for the frame.
	//
	// Parameters:
	//   - direction: the world-space direction the light travels
	//   - color: the directional light color
	//   - ambient: the ambient light color
	SetLighting(direction, color, ambient [3]float32)

	// SetLightingEnabled toggles the lighting model for subsequent draws.
	// Disabled draws output their base color or texture unmodified.
	//
	// Parameters:
	//   - enabled: true to light subsequent draws
	SetLightingEnabled(enabled bool)

	// SetTransform sets the model transform for subsequent draws. The model
	// matrix is composed as translation * rotZ * rotY * rotX * scale, with
	// rotations in degrees.
	//
	// Parameters:
	//   - scale: the per-axis scale factors
	//   - rotationDeg: the per-axis rotation angles in degrees
	//   - position: the world-space translation
	SetTransform(scale, rotationDeg, position [3]float32)

	// SetColor sets a flat color for subsequent draws and unbinds any texture.
	//
	// Parameters:
	//   - r, g, b, a: the color components in [0, 1]
	SetColor(r, g, b, a float32)

	// SetTexture binds a registered texture for subsequent draws. When the tag
	// is unknown the current draw state is left untouched.
	//
	// Parameters:
	//   - tag: the texture tag to bind
	//
	// Returns:
	//   - error: texture.ErrNotFound when the tag is not registered
	SetTexture(tag string) error

	// SetUVScale sets the texture coordinate multiplier for subsequent draws.
	//
	// Parameters:
	//   - u, v: the scale factors per axis
	SetUVScale(u, v float32)

	// SetMaterial applies a registered material to subsequent draws. When the
	// material registry is empty this is a no-op, so unlit scenes can skip
	// material setup entirely.
	//
	// Parameters:
	//   - tag: the material tag to apply
	//
	// Returns:
	//   - error: material.ErrNotFound when the registry is non-empty and the tag is unknown
	SetMaterial(tag string) error

	// Draw snapshots the current draw state into the next uniform slot and
	// encodes one draw call per selected index range of the shape.
	//
	// Parameters:
	//   - shape: the shape to draw
	//   - selection: the part selection; the zero Selection draws the whole mesh
	//
	// Returns:
	//   - error: an error if the shape is not loaded, the selection does not
	//     apply, or the per-frame draw budget is exhausted
	Draw(shape mesh.Shape, selection mesh.Selection) error

	// Objects returns the placement tables rendered by RenderScene.
	//
	// Returns:
	//   - []Object: the objects in draw order
	Objects() []Object

	// Stubs returns the scene objects that are declared but not yet modeled.
	//
	// Returns:
	//   - []Stub: the unmodeled objects
	Stubs() []Stub

	// Release releases all GPU resources held by the scene and its registries.
	Release()
}

var _ Manager = &manager{}

// NewManager creates a new scene Manager over the given device and registries.
// Without options, the manager renders the default showcase tables.
//
// Parameters:
//   - device: the GPU device used for uniform setup and draw encoding
//   - textures: the texture registry
//   - materials: the material registry
//   - meshes: the mesh library
//   - options: variadic list of ManagerOption functions to configure the manager
//
// Returns:
//   - Manager: a new Manager instance
func NewManager(device Device, textures texture.Registry, materials material.Registry, meshes mesh.Library, options ...ManagerOption) Manager {
	m := &manager{
		mu:            &sync.Mutex{},
		device:        device,
		textures:      textures,
		materials:     materials,
		meshes:        meshes,
		textureRefs:   DefaultTextures(),
		objects:       DefaultObjects(),
		stubs:         DefaultStubs(),
		decodeWorkers: max(runtime.NumCPU()-1, 1),
		frameProvider: bind_group_provider.NewBindGroupProvider("Frame Uniforms"),
		drawProvider:  bind_group_provider.NewBindGroupProvider("Draw Uniforms"),
		textureUnit:   -1,
		draw: GPUDrawUniforms{
			Color:       [4]float32{1, 1, 1, 1},
			UVScale:     [2]float32{1, 1},
			UseLighting: 1,
		},
	}
	common.Identity(m.draw.Model[:])
	common.Identity(m.frame.View[:])
	common.Identity(m.frame.Projection[:])

	for _, opt := range options {
		opt(m)
	}

	// Initialize the decode pool after options so WithDecodeWorkers can
	// override the default.
	m.decodePool = worker.NewDynamicWorkerPool(m.decodeWorkers, 64, 1*time.Second)

	return m
}

func (m *manager) PrepareScene(ctx context.Context) error {
	start := time.Now()

	// Phase 1: parallel decode. Each manifest entry decodes on the pool and
	// lands in its own slot; a WaitGroup provides the barrier.
	images := make([]*common.DecodedImage, len(m.textureRefs))
	decodeErrs := make([]error, len(m.textureRefs))

	var wg sync.WaitGroup
	for i, ref := range m.textureRefs {
		wg.Add(1)
		m.decodePool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				if ctx.Err() != nil {
					decodeErrs[i] = ctx.Err()
					return nil, nil
				}
				img, err := common.DecodeImageFile(ref.Path)
				images[i], decodeErrs[i] = img, err
				return nil, nil
			},
		})
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}

	// Phase 2: sequential registration in manifest order keeps texture unit
	// assignment deterministic. A bad image costs that texture, not the
	// scene; placements referencing it fall back to their flat color.
	for i, ref := range m.textureRefs {
		if decodeErrs[i] != nil {
			log.Printf("scene: skipping texture %q: %v", ref.Tag, decodeErrs[i])
			continue
		}
		if err := m.textures.Add(ref.Tag, images[i].Staging()); err != nil {
			return err
		}
	}
	if err := m.textures.BindAll(TextureBindGroupLayout()); err != nil {
		return err
	}

	if err := m.meshes.Load(m.referencedShapes()...); err != nil {
		return err
	}

	if err := m.device.InitBindGroup(m.frameProvider, FrameBindGroupLayout(), nil, nil); err != nil {
		return fmt.Errorf("init frame uniforms: %w", err)
	}
	drawBufferSize := map[int]uint64{0: MaxDrawsPerFrame * DrawUniformStride}
	if err := m.device.InitBindGroup(m.drawProvider, DrawBindGroupLayout(), nil, drawBufferSize); err != nil {
		return fmt.Errorf("init draw uniforms: %w", err)
	}

	m.prepared = true
	log.Printf("scene: prepared %d textures, %d materials, %d objects in %s",
		m.textures.Len(), m.materials.Len(), len(m.objects), time.Since(start).Round(time.Millisecond))
	return nil
}

// referencedShapes collects every shape the placement tables use, deduplicated
// in first-reference order.
func (m *manager) referencedShapes() []mesh.Shape {
	seen := make(map[mesh.Shape]bool)
	var shapes []mesh.Shape
	for _, obj := range m.objects {
		for _, p := range obj.Placements {
			if !seen[p.Shape] {
				seen[p.Shape] = true
				shapes = append(shapes, p.Shape)
			}
		}
	}
	return shapes
}

func (m *manager) RenderScene() error {
	m.mu.Lock()
	if !m.prepared {
		m.mu.Unlock()
		return fmt.Errorf("scene not prepared")
	}
	frame := m.frame
	m.device.WriteBuffers([]bind_group_provider.BufferWrite{
		{
			Provider: m.frameProvider,
			Binding:  0,
			Data:     common.StructToBytes(&frame),
		},
	})
	m.slot = 0
	// Per-draw state starts every frame from the same defaults; only the
	// lighting toggle survives across frames.
	common.Identity(m.draw.Model[:])
	m.draw.Color = [4]float32{1, 1, 1, 1}
	m.draw.UVScale = [2]float32{1, 1}
	m.draw.MaterialDiffuse = [4]float32{}
	m.draw.MaterialSpecular = [4]float32{}
	m.draw.UseTexture = 0
	m.textureUnit = -1
	m.mu.Unlock()

	for _, obj := range m.objects {
		for _, p := range obj.Placements {
			if err := m.renderPlacement(p); err != nil {
				return fmt.Errorf("render %s: %w", obj.Name, err)
			}
		}
	}
	return nil
}

// renderPlacement applies one placement's appearance state and draws it.
func (m *manager) renderPlacement(p Placement) error {
	m.SetTransform(p.Scale, p.RotationDeg, p.Position)

	// Stage the full appearance so nothing carries over from the previous
	// placement. Textured placements keep the flat color staged here as
	// their stand-in when the texture is absent from the registry.
	color := p.Color
	if color == ([4]float32{}) {
		color = [4]float32{1, 1, 1, 1}
	}
	m.SetColor(color[0], color[1], color[2], color[3])

	if p.TextureTag != "" {
		if err := m.SetTexture(p.TextureTag); err != nil && !errors.Is(err, texture.ErrNotFound) {
			return err
		}
	}

	uv := p.UVScale
	if uv == ([2]float32{}) {
		uv = [2]float32{1, 1}
	}
	m.SetUVScale(uv[0], uv[1])

	if p.MaterialTag != "" {
		if err := m.SetMaterial(p.MaterialTag); err != nil {
			return err
		}
	}

	return m.Draw(p.Shape, p.Selection)
}

func (m *manager) SetViewProjection(view, projection []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy(m.frame.View[:], view)
	copy(m.frame.Projection[:], projection)
}

func (m *manager) SetCameraPosition(position [3]float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frame.CameraPosition = [4]float32{position[0], position[1], position[2], 1}
}

func (m *manager) SetLighting(direction, color, ambient [3]float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frame.LightDirection = [4]float32{direction[0], direction[1], direction[2], 0}
	m.frame.LightColor = [4]float32{color[0], color[1], color[2], 0}
	m.frame.AmbientColor = [4]float32{ambient[0], ambient[1], ambient[2], 0}
}

func (m *manager) SetLightingEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if enabled {
		m.draw.UseLighting = 1
	} else {
		m.draw.UseLighting = 0
	}
}

func (m *manager) SetTransform(scale, rotationDeg, position [3]float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	common.ComposeTransform(m.draw.Model[:], scale, rotationDeg, position)
}

func (m *manager) SetColor(r, g, b, a float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draw.Color = [4]float32{r, g, b, a}
	m.draw.UseTexture = 0
	m.textureUnit = -1
}

func (m *manager) SetTexture(tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	unit, err := m.textures.Unit(tag)
	if err != nil {
		// Leave the current draw state untouched on unknown tags.
		return err
	}
	m.textureUnit = unit
	m.draw.UseTexture = 1
	return nil
}

func (m *manager) SetUVScale(u, v float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draw.UVScale = [2]float32{u, v}
}

func (m *manager) SetMaterial(tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.materials.Len() == 0 {
		return nil
	}
	mat, err := m.materials.Find(tag)
	if err != nil {
		return err
	}
	m.draw.MaterialDiffuse = [4]float32{mat.DiffuseColor[0], mat.DiffuseColor[1], mat.DiffuseColor[2], 0}
	m.draw.MaterialSpecular = [4]float32{mat.SpecularColor[0], mat.SpecularColor[1], mat.SpecularColor[2], mat.Shininess}
	return nil
}

func (m *manager) Draw(shape mesh.Shape, selection mesh.Selection) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	meshProvider, err := m.meshes.Provider(shape)
	if err != nil {
		return err
	}
	ranges, err := m.meshes.Ranges(shape, selection)
	if err != nil {
		return err
	}

	if m.slot >= MaxDrawsPerFrame {
		return fmt.Errorf("draw uniform slots exhausted (max %d per frame)", MaxDrawsPerFrame)
	}
	slot := m.slot
	m.slot++

	uniforms := m.draw
	m.device.WriteBuffers([]bind_group_provider.BufferWrite{
		{
			Provider: m.drawProvider,
			Binding:  0,
			Offset:   uint64(slot) * DrawUniformStride,
			Data:     common.StructToBytes(&uniforms),
		},
	})

	textureProvider := m.textures.FallbackProvider()
	if m.draw.UseTexture == 1 {
		if p := m.textures.ProviderByUnit(m.textureUnit); p != nil {
			textureProvider = p
		}
	}

	bindGroups := []bind_group_provider.BindGroupProvider{
		m.frameProvider,
		m.drawProvider,
		textureProvider,
	}
	offsets := map[int][]uint32{1: {uint32(slot) * DrawUniformStride}}

	for _, rng := range ranges {
		if rng.Count == 0 {
			continue
		}
		if err := m.device.DrawCall(PipelineKey, meshProvider, rng.First, rng.Count, bindGroups, offsets); err != nil {
			return err
		}
	}
	return nil
}

func (m *manager) Objects() []Object {
	m.mu.Lock()
	defer m.mu.Unlock()
	objects := make([]Object, len(m.objects))
	copy(objects, m.objects)
	for i := range objects {
		placements := make([]Placement, len(objects[i].Placements))
		copy(placements, objects[i].Placements)
		objects[i].Placements = placements
	}
	return objects
}

func (m *manager) Stubs() []Stub {
	m.mu.Lock()
	defer m.mu.Unlock()
	stubs := make([]Stub, len(m.stubs))
	copy(stubs, m.stubs)
	return stubs
}

func (m *manager) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.textures.Release()
	m.meshes.Release()
	m.frameProvider.Release()
	m.drawProvider.Release()
	m.prepared = false
}

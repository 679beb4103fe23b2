package scene

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Carmen-Shannon/vignette-go/common"
	"github.com/Carmen-Shannon/vignette-go/engine/material"
	"github.com/Carmen-Shannon/vignette-go/engine/mesh"
	"github.com/Carmen-Shannon/vignette-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/vignette-go/engine/texture"
	"github.com/cogentcore/webgpu/wgpu"
)

type writeRecord struct {
	label   string
	binding int
	offset  uint64
	data    []byte
}

type drawRecord struct {
	pipelineKey string
	meshLabel   string
	first       uint32
	count       uint32
	bindLabels  []string
	offsets     []uint32
}

// fakeDevice satisfies scene.Device, texture.Device, and mesh.BufferInitializer,
// recording every call so tests can assert on the emitted sequence.
type fakeDevice struct {
	binds  []string
	writes []writeRecord
	draws  []drawRecord
}

func (d *fakeDevice) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	provider.SetTextureView(bindingKey, &wgpu.TextureView{})
	return nil
}

func (d *fakeDevice) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	provider.SetSampler(bindingKey, &wgpu.Sampler{})
	return nil
}

func (d *fakeDevice) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	d.binds = append(d.binds, provider.Label())
	if provider.BindGroupLayout() == nil {
		provider.SetBindGroupLayout(&wgpu.BindGroupLayout{})
	}
	provider.SetBindGroup(&wgpu.BindGroup{})
	return nil
}

func (d *fakeDevice) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	provider.SetIndexCount(indexCount)
	return nil
}

func (d *fakeDevice) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	for _, w := range writes {
		data := make([]byte, len(w.Data))
		copy(data, w.Data)
		d.writes = append(d.writes, writeRecord{
			label:   w.Provider.Label(),
			binding: w.Binding,
			offset:  w.Offset,
			data:    data,
		})
	}
}

func (d *fakeDevice) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, firstIndex, indexCount uint32, bindGroups []bind_group_provider.BindGroupProvider, dynamicOffsets map[int][]uint32) error {
	rec := drawRecord{
		pipelineKey: pipelineKey,
		meshLabel:   meshProvider.Label(),
		first:       firstIndex,
		count:       indexCount,
	}
	for _, bg := range bindGroups {
		rec.bindLabels = append(rec.bindLabels, bg.Label())
	}
	for _, off := range dynamicOffsets[1] {
		rec.offsets = append(rec.offsets, off)
	}
	d.draws = append(d.draws, rec)
	return nil
}

// testSource serves small fixed geometry for every shape the default tables use.
type testSource struct{}

func (testSource) Mesh(shape mesh.Shape) (mesh.Data, error) {
	switch shape {
	case mesh.Box:
		return mesh.Data{
			Vertices: make([]mesh.GPUVertex, 24),
			Indices:  make([]uint32, 36),
			BoxSides: map[mesh.BoxSide]mesh.IndexRange{
				mesh.BoxSideFront:  {First: 0, Count: 6},
				mesh.BoxSideBack:   {First: 6, Count: 6},
				mesh.BoxSideLeft:   {First: 12, Count: 6},
				mesh.BoxSideRight:  {First: 18, Count: 6},
				mesh.BoxSideTop:    {First: 24, Count: 6},
				mesh.BoxSideBottom: {First: 30, Count: 6},
			},
		}, nil
	case mesh.Cylinder:
		return mesh.Data{
			Vertices:       make([]mesh.GPUVertex, 40),
			Indices:        make([]uint32, 120),
			CylinderTop:    mesh.IndexRange{First: 0, Count: 30},
			CylinderSides:  mesh.IndexRange{First: 30, Count: 60},
			CylinderBottom: mesh.IndexRange{First: 90, Count: 30},
		}, nil
	default:
		return mesh.Data{
			Vertices: make([]mesh.GPUVertex, 4),
			Indices:  make([]uint32, 6),
		}, nil
	}
}

// writeTestTextures encodes one small PNG per default texture tag into a temp
// directory and returns the matching manifest.
func writeTestTextures(t *testing.T) []TextureRef {
	t.Helper()
	dir := t.TempDir()

	refs := DefaultTextures()
	for i := range refs {
		img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
		for y := range 2 {
			for x := range 2 {
				img.Set(x, y, color.NRGBA{R: uint8(40 * i), G: uint8(x * 200), B: uint8(y * 200), A: 255})
			}
		}
		path := filepath.Join(dir, refs[i].Tag+".png")
		f, err := os.Create(path)
		if err != nil {
			t.Fatalf("create %s: %v", path, err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatalf("encode %s: %v", path, err)
		}
		if err := f.Close(); err != nil {
			t.Fatalf("close %s: %v", path, err)
		}
		refs[i].Path = path
	}
	return refs
}

func newTestManager(t *testing.T, options ...ManagerOption) (Manager, *fakeDevice) {
	t.Helper()

	device := &fakeDevice{}
	textures := texture.NewRegistry(device)
	materials := material.NewRegistry(material.WithMaterials(material.Defaults()...))
	meshes := mesh.NewLibrary(device, testSource{})

	options = append([]ManagerOption{
		WithTextures(writeTestTextures(t)),
		WithDecodeWorkers(2),
	}, options...)

	m := NewManager(device, textures, materials, meshes, options...)
	if err := m.PrepareScene(context.Background()); err != nil {
		t.Fatalf("PrepareScene returned error: %v", err)
	}
	return m, device
}

func TestPrepareSceneRegistersResources(t *testing.T) {
	device := &fakeDevice{}
	textures := texture.NewRegistry(device)
	materials := material.NewRegistry(material.WithMaterials(material.Defaults()...))
	meshes := mesh.NewLibrary(device, testSource{})

	m := NewManager(device, textures, materials, meshes,
		WithTextures(writeTestTextures(t)),
		WithDecodeWorkers(3),
	)
	if err := m.PrepareScene(context.Background()); err != nil {
		t.Fatalf("PrepareScene returned error: %v", err)
	}

	// Texture units follow manifest order regardless of decode completion order.
	wantTags := []string{"marble", "gold", "emblem", "blue_glass", "perfume"}
	for want, tag := range wantTags {
		unit, err := textures.Unit(tag)
		if err != nil {
			t.Fatalf("Unit(%q) returned error: %v", tag, err)
		}
		if unit != want {
			t.Errorf("Unit(%q) = %d, want %d", tag, unit, want)
		}
	}

	for _, shape := range DefaultShapes() {
		if !meshes.Loaded(shape) {
			t.Errorf("shape %s not loaded by PrepareScene", shape)
		}
	}

	// Frame and draw uniform bind groups are created.
	var haveFrame, haveDraw bool
	for _, label := range device.binds {
		switch label {
		case "Frame Uniforms":
			haveFrame = true
		case "Draw Uniforms":
			haveDraw = true
		}
	}
	if !haveFrame || !haveDraw {
		t.Errorf("uniform bind groups not initialized; init calls = %v", device.binds)
	}
}

func TestRenderSceneIsDeterministic(t *testing.T) {
	m, device := newTestManager(t)

	if err := m.RenderScene(); err != nil {
		t.Fatalf("first RenderScene returned error: %v", err)
	}
	firstDraws := device.draws
	firstWrites := device.writes
	device.draws = nil
	device.writes = nil

	if err := m.RenderScene(); err != nil {
		t.Fatalf("second RenderScene returned error: %v", err)
	}

	if !reflect.DeepEqual(firstDraws, device.draws) {
		t.Error("draw sequences differ between frames")
	}
	if !reflect.DeepEqual(firstWrites, device.writes) {
		t.Error("uniform writes differ between frames")
	}

	// Uniform slots reset each frame, so the first placement reuses offset 0.
	if len(device.draws) == 0 || len(device.draws[0].offsets) != 1 || device.draws[0].offsets[0] != 0 {
		t.Errorf("first draw of second frame should use offset 0, got %+v", device.draws[0])
	}
}

func TestRenderSceneDrawAndSlotCounts(t *testing.T) {
	m, device := newTestManager(t)

	if err := m.RenderScene(); err != nil {
		t.Fatalf("RenderScene returned error: %v", err)
	}

	// 14 placements across the default tables; multi-part placements emit one
	// draw call per index range: the cologne cap body covers 2 ranges and the
	// perfume cap body covers 5 box sides, for 19 draw calls total.
	if len(device.draws) != 19 {
		t.Errorf("draw calls = %d, want 19", len(device.draws))
	}

	// One frame uniform write plus one draw uniform write per placement.
	var frameWrites, drawWrites int
	for _, w := range device.writes {
		switch w.label {
		case "Frame Uniforms":
			frameWrites++
		case "Draw Uniforms":
			drawWrites++
		}
	}
	if frameWrites != 1 {
		t.Errorf("frame uniform writes = %d, want 1", frameWrites)
	}
	if drawWrites != 14 {
		t.Errorf("draw uniform writes = %d, want 14", drawWrites)
	}

	// Every draw runs the scene pipeline with the three bind groups in order.
	for i, rec := range device.draws {
		if rec.pipelineKey != PipelineKey {
			t.Fatalf("draw %d pipeline = %q, want %q", i, rec.pipelineKey, PipelineKey)
		}
		if len(rec.bindLabels) != 3 || rec.bindLabels[0] != "Frame Uniforms" || rec.bindLabels[1] != "Draw Uniforms" {
			t.Fatalf("draw %d bind groups = %v", i, rec.bindLabels)
		}
	}
}

func TestSetColorClearsTexture(t *testing.T) {
	m, device := newTestManager(t)

	if err := m.SetTexture("gold"); err != nil {
		t.Fatalf("SetTexture returned error: %v", err)
	}
	m.SetColor(1, 0, 0, 1)

	device.draws = nil
	if err := m.Draw(mesh.Plane, mesh.Selection{}); err != nil {
		t.Fatalf("Draw returned error: %v", err)
	}

	if len(device.draws) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(device.draws))
	}
	if got := device.draws[0].bindLabels[2]; got != "Texture Fallback" {
		t.Errorf("texture bind group = %q, want fallback after SetColor", got)
	}
}

func TestSetTextureUnknownLeavesStateUntouched(t *testing.T) {
	m, device := newTestManager(t)

	if err := m.SetTexture("gold"); err != nil {
		t.Fatalf("SetTexture returned error: %v", err)
	}
	if err := m.SetTexture("missing"); !errors.Is(err, texture.ErrNotFound) {
		t.Fatalf("SetTexture(missing) error = %v, want texture.ErrNotFound", err)
	}

	device.draws = nil
	if err := m.Draw(mesh.Plane, mesh.Selection{}); err != nil {
		t.Fatalf("Draw returned error: %v", err)
	}
	if got := device.draws[0].bindLabels[2]; got != "Texture gold" {
		t.Errorf("texture bind group = %q, want previous binding to survive a failed SetTexture", got)
	}
}

func TestSetMaterialEmptyRegistryIsNoop(t *testing.T) {
	device := &fakeDevice{}
	textures := texture.NewRegistry(device)
	materials := material.NewRegistry()
	meshes := mesh.NewLibrary(device, testSource{})

	m := NewManager(device, textures, materials, meshes,
		WithTextures(writeTestTextures(t)),
	)
	if err := m.PrepareScene(context.Background()); err != nil {
		t.Fatalf("PrepareScene returned error: %v", err)
	}

	if err := m.SetMaterial("anything"); err != nil {
		t.Errorf("SetMaterial on empty registry = %v, want nil", err)
	}
}

func TestSetMaterialUnknownTag(t *testing.T) {
	m, _ := newTestManager(t)

	if err := m.SetMaterial("missing"); !errors.Is(err, material.ErrNotFound) {
		t.Errorf("SetMaterial(missing) error = %v, want material.ErrNotFound", err)
	}
}

func TestStubsAreDeclaredButNotDrawn(t *testing.T) {
	m, device := newTestManager(t)

	stubs := m.Stubs()
	wantNames := []string{"necklace box", "ring box", "white vow book", "brown vow book"}
	if len(stubs) != len(wantNames) {
		t.Fatalf("Stubs() returned %d entries, want %d", len(stubs), len(wantNames))
	}
	for i, want := range wantNames {
		if stubs[i].Name != want {
			t.Errorf("Stubs()[%d].Name = %q, want %q", i, stubs[i].Name, want)
		}
	}

	// Stubs contribute no placements, so the draw count is exactly the
	// placement-table total.
	if err := m.RenderScene(); err != nil {
		t.Fatalf("RenderScene returned error: %v", err)
	}
	if len(device.draws) != 19 {
		t.Errorf("draw calls = %d, want 19 (stubs draw nothing)", len(device.draws))
	}
}

// A texture that fails to decode costs that texture, not the scene: the
// manifest entry is skipped and placements referencing the tag draw flat
// through the fallback bind group.
func TestPrepareSceneSkipsBadTexture(t *testing.T) {
	refs := writeTestTextures(t)
	refs = append(refs, TextureRef{Tag: "missing", Path: filepath.Join(t.TempDir(), "absent.png")})

	device := &fakeDevice{}
	textures := texture.NewRegistry(device)
	materials := material.NewRegistry(material.WithMaterials(material.Defaults()...))
	meshes := mesh.NewLibrary(device, testSource{})

	m := NewManager(device, textures, materials, meshes,
		WithTextures(refs),
		WithObjects([]Object{{
			Name: "orphan",
			Placements: []Placement{{
				Shape:      mesh.Sphere,
				Scale:      [3]float32{1, 1, 1},
				TextureTag: "missing",
			}},
		}}),
		WithDecodeWorkers(2),
	)

	if err := m.PrepareScene(context.Background()); err != nil {
		t.Fatalf("PrepareScene returned error: %v", err)
	}
	if _, err := textures.Unit("missing"); !errors.Is(err, texture.ErrNotFound) {
		t.Fatalf("Unit(missing) error = %v, want texture.ErrNotFound", err)
	}

	if err := m.RenderScene(); err != nil {
		t.Fatalf("RenderScene returned error: %v", err)
	}
	if len(device.draws) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(device.draws))
	}
	if got := device.draws[0].bindLabels[2]; got != "Texture Fallback" {
		t.Errorf("texture bind = %q, want the fallback bind group", got)
	}
}

// Appearance staged at the end of one frame must not leak into the first
// draw of the next: the table's uniforms come out byte-identical every frame
// even though the last placement before it staged the foliage green.
func TestDrawStateResetsBetweenFrames(t *testing.T) {
	m, device := newTestManager(t)

	firstDrawWrite := func() writeRecord {
		t.Helper()
		for _, w := range device.writes {
			if w.label == "Draw Uniforms" {
				return w
			}
		}
		t.Fatal("no draw uniform write recorded")
		return writeRecord{}
	}

	if err := m.RenderScene(); err != nil {
		t.Fatalf("first RenderScene returned error: %v", err)
	}
	frame1 := firstDrawWrite()
	device.writes = nil

	if err := m.RenderScene(); err != nil {
		t.Fatalf("second RenderScene returned error: %v", err)
	}
	frame2 := firstDrawWrite()

	if !reflect.DeepEqual(frame1.data, frame2.data) {
		t.Error("first draw uniforms differ between frames")
	}
}

// Objects and Stubs hand out copies; a caller mutating the returned slices
// must not reach the manager's own placement tables.
func TestObjectsAndStubsReturnCopies(t *testing.T) {
	m, _ := newTestManager(t)

	objects := m.Objects()
	objects[0].Name = "tampered"
	objects[0].Placements[0].Shape = mesh.Torus

	stubs := m.Stubs()
	stubs[0].Name = "tampered"

	fresh := m.Objects()
	if fresh[0].Name != "table" {
		t.Errorf("Objects()[0].Name = %q after caller mutation, want %q", fresh[0].Name, "table")
	}
	if fresh[0].Placements[0].Shape != mesh.Plane {
		t.Error("Objects()[0].Placements[0].Shape changed by caller mutation")
	}
	if got := m.Stubs()[0].Name; got != "necklace box" {
		t.Errorf("Stubs()[0].Name = %q after caller mutation, want %q", got, "necklace box")
	}
}

// Material and appearance setters must land verbatim in the staged draw
// uniforms written for the next Draw.
func TestDrawUniformsCarryStagedState(t *testing.T) {
	m, device := newTestManager(t)

	scale := [3]float32{1, 2, 3}
	rotation := [3]float32{0, 45, 0}
	position := [3]float32{5, 6, 7}
	m.SetTransform(scale, rotation, position)
	m.SetColor(0.5, 0.25, 0.75, 1)
	m.SetUVScale(2, 3)
	if err := m.SetMaterial("gold"); err != nil {
		t.Fatalf("SetMaterial returned error: %v", err)
	}
	if err := m.Draw(mesh.Sphere, mesh.Selection{}); err != nil {
		t.Fatalf("Draw returned error: %v", err)
	}

	var gold material.Material
	for _, mat := range material.Defaults() {
		if mat.Tag == "gold" {
			gold = mat
		}
	}

	var want GPUDrawUniforms
	common.ComposeTransform(want.Model[:], scale, rotation, position)
	want.Color = [4]float32{0.5, 0.25, 0.75, 1}
	want.MaterialDiffuse = [4]float32{gold.DiffuseColor[0], gold.DiffuseColor[1], gold.DiffuseColor[2], 0}
	want.MaterialSpecular = [4]float32{gold.SpecularColor[0], gold.SpecularColor[1], gold.SpecularColor[2], gold.Shininess}
	want.UVScale = [2]float32{2, 3}
	want.UseTexture = 0
	want.UseLighting = 1

	last := device.writes[len(device.writes)-1]
	if last.label != "Draw Uniforms" {
		t.Fatalf("last write went to %q, want the draw uniform buffer", last.label)
	}
	if !reflect.DeepEqual(last.data, []byte(common.StructToBytes(&want))) {
		t.Errorf("draw uniforms do not match the staged state")
	}
}

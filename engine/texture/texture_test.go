package texture

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/vignette-go/common"
	"github.com/Carmen-Shannon/vignette-go/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeDevice records resource initialization calls without touching the GPU.
type fakeDevice struct {
	textureLabels []string
	samplerLabels []string
	bindLabels    []string
}

func (d *fakeDevice) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	d.textureLabels = append(d.textureLabels, provider.Label())
	provider.SetTextureView(bindingKey, &wgpu.TextureView{})
	return nil
}

func (d *fakeDevice) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	d.samplerLabels = append(d.samplerLabels, provider.Label())
	provider.SetSampler(bindingKey, &wgpu.Sampler{})
	return nil
}

func (d *fakeDevice) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	d.bindLabels = append(d.bindLabels, provider.Label())
	if provider.BindGroupLayout() == nil {
		provider.SetBindGroupLayout(&wgpu.BindGroupLayout{})
	}
	provider.SetBindGroup(&wgpu.BindGroup{})
	return nil
}

func stagingPixel() common.TextureStagingData {
	return common.TextureStagingData{Pixels: []byte{1, 2, 3, 4}, Width: 1, Height: 1}
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "texture.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return path
}

func TestLoadDecodesImageFile(t *testing.T) {
	r := NewRegistry(&fakeDevice{})

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	path := writePNG(t, img)

	if err := r.Load("marble", path); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	unit, err := r.Unit("marble")
	if err != nil {
		t.Fatalf("Unit(marble) returned error: %v", err)
	}
	if unit != 0 {
		t.Errorf("Unit(marble) = %d, want 0", unit)
	}
}

func TestLoadRejectsUnsupportedChannelCount(t *testing.T) {
	r := NewRegistry(&fakeDevice{})

	path := writePNG(t, image.NewGray(image.Rect(0, 0, 2, 2)))

	if err := r.Load("gray", path); err == nil {
		t.Fatal("Load of a single-channel image should fail")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d after rejected Load, want 0", r.Len())
	}
	if _, err := r.Unit("gray"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Unit(gray) error = %v, want ErrNotFound", err)
	}
}

func TestAddAssignsUnitsInRegistrationOrder(t *testing.T) {
	r := NewRegistry(&fakeDevice{})

	tags := []string{"marble", "gold", "emblem", "blue_glass", "perfume"}
	for _, tag := range tags {
		if err := r.Add(tag, stagingPixel()); err != nil {
			t.Fatalf("Add(%q) returned error: %v", tag, err)
		}
	}

	for want, tag := range tags {
		unit, err := r.Unit(tag)
		if err != nil {
			t.Fatalf("Unit(%q) returned error: %v", tag, err)
		}
		if unit != want {
			t.Errorf("Unit(%q) = %d, want %d", tag, unit, want)
		}
	}

	got := r.Tags()
	if len(got) != len(tags) {
		t.Fatalf("Tags() returned %d tags, want %d", len(got), len(tags))
	}
	for i := range tags {
		if got[i] != tags[i] {
			t.Errorf("Tags()[%d] = %q, want %q", i, got[i], tags[i])
		}
	}
}

func TestAddRejectsDuplicateTag(t *testing.T) {
	r := NewRegistry(&fakeDevice{})

	if err := r.Add("marble", stagingPixel()); err != nil {
		t.Fatalf("first Add returned error: %v", err)
	}
	err := r.Add("marble", stagingPixel())
	if !errors.Is(err, ErrDuplicateTag) {
		t.Fatalf("duplicate Add error = %v, want ErrDuplicateTag", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d after rejected duplicate, want 1", r.Len())
	}
}

func TestAddRejectsWhenFull(t *testing.T) {
	r := NewRegistry(&fakeDevice{})

	for i := range MaxTextureUnits {
		if err := r.Add(fmt.Sprintf("tex%d", i), stagingPixel()); err != nil {
			t.Fatalf("Add %d returned error: %v", i, err)
		}
	}
	err := r.Add("overflow", stagingPixel())
	if !errors.Is(err, ErrRegistryFull) {
		t.Fatalf("Add beyond capacity error = %v, want ErrRegistryFull", err)
	}
	if r.Len() != MaxTextureUnits {
		t.Errorf("Len() = %d, want %d", r.Len(), MaxTextureUnits)
	}
}

func TestUnitUnknownTag(t *testing.T) {
	r := NewRegistry(&fakeDevice{})

	unit, err := r.Unit("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Unit(missing) error = %v, want ErrNotFound", err)
	}
	if unit != -1 {
		t.Errorf("Unit(missing) = %d, want -1", unit)
	}

	if _, err := r.Provider("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Provider(missing) error = %v, want ErrNotFound", err)
	}
}

func TestBindAllBindsFallbackAndUnitsInOrder(t *testing.T) {
	device := &fakeDevice{}
	r := NewRegistry(device)

	for _, tag := range []string{"marble", "gold"} {
		if err := r.Add(tag, stagingPixel()); err != nil {
			t.Fatalf("Add(%q) returned error: %v", tag, err)
		}
	}

	if err := r.BindAll(wgpu.BindGroupLayoutDescriptor{}); err != nil {
		t.Fatalf("BindAll returned error: %v", err)
	}

	wantOrder := []string{"Texture Fallback", "Texture marble", "Texture gold"}
	if len(device.bindLabels) != len(wantOrder) {
		t.Fatalf("bind group calls = %v, want %v", device.bindLabels, wantOrder)
	}
	for i, want := range wantOrder {
		if device.bindLabels[i] != want {
			t.Errorf("bind group call %d = %q, want %q", i, device.bindLabels[i], want)
		}
	}

	fallback := r.FallbackProvider()
	if fallback == nil {
		t.Fatal("FallbackProvider() = nil after BindAll")
	}

	for unit, tag := range []string{"marble", "gold"} {
		provider, err := r.Provider(tag)
		if err != nil {
			t.Fatalf("Provider(%q) returned error: %v", tag, err)
		}
		if provider == nil {
			t.Fatalf("Provider(%q) = nil after BindAll", tag)
		}
		if r.ProviderByUnit(unit) != provider {
			t.Errorf("ProviderByUnit(%d) does not match Provider(%q)", unit, tag)
		}
		if provider.BindGroupLayout() != fallback.BindGroupLayout() {
			t.Errorf("provider %q does not share the fallback bind group layout", tag)
		}
	}

	if r.ProviderByUnit(-1) != nil || r.ProviderByUnit(2) != nil {
		t.Error("ProviderByUnit out of range should return nil")
	}
}

func TestReleaseClearsRegistry(t *testing.T) {
	r := NewRegistry(&fakeDevice{})

	if err := r.Add("marble", stagingPixel()); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	r.Release()

	if r.Len() != 0 {
		t.Errorf("Len() = %d after Release, want 0", r.Len())
	}
	if r.FallbackProvider() != nil {
		t.Error("FallbackProvider() should be nil after Release")
	}
	if _, err := r.Unit("marble"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Unit after Release error = %v, want ErrNotFound", err)
	}
}

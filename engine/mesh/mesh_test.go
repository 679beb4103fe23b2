package mesh

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/vignette-go/engine/renderer/bind_group_provider"
)

// fakeInitializer records mesh uploads without touching the GPU.
type fakeInitializer struct {
	uploads []string
}

func (f *fakeInitializer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	f.uploads = append(f.uploads, provider.Label())
	provider.SetIndexCount(indexCount)
	return nil
}

// fakeSource serves canned geometry and counts generation calls.
type fakeSource struct {
	calls map[Shape]int
}

func (f *fakeSource) Mesh(shape Shape) (Data, error) {
	if f.calls == nil {
		f.calls = make(map[Shape]int)
	}
	f.calls[shape]++

	switch shape {
	case Box:
		return Data{
			Vertices: make([]GPUVertex, 24),
			Indices:  make([]uint32, 36),
			BoxSides: map[BoxSide]IndexRange{
				BoxSideFront:  {First: 0, Count: 6},
				BoxSideBack:   {First: 6, Count: 6},
				BoxSideLeft:   {First: 12, Count: 6},
				BoxSideRight:  {First: 18, Count: 6},
				BoxSideTop:    {First: 24, Count: 6},
				BoxSideBottom: {First: 30, Count: 6},
			},
		}, nil
	case Cylinder, TaperedCylinder:
		return Data{
			Vertices:       make([]GPUVertex, 40),
			Indices:        make([]uint32, 120),
			CylinderTop:    IndexRange{First: 0, Count: 30},
			CylinderSides:  IndexRange{First: 30, Count: 60},
			CylinderBottom: IndexRange{First: 90, Count: 30},
		}, nil
	default:
		return Data{
			Vertices: make([]GPUVertex, 4),
			Indices:  make([]uint32, 6),
		}, nil
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	init := &fakeInitializer{}
	source := &fakeSource{}
	lib := NewLibrary(init, source)

	if err := lib.Load(Plane, Box); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if err := lib.Load(Plane, Box, Plane); err != nil {
		t.Fatalf("second Load returned error: %v", err)
	}

	if source.calls[Plane] != 1 || source.calls[Box] != 1 {
		t.Errorf("generation calls = %v, want exactly one per shape", source.calls)
	}
	if len(init.uploads) != 2 {
		t.Errorf("uploads = %v, want exactly one per shape", init.uploads)
	}
	if !lib.Loaded(Plane) || !lib.Loaded(Box) {
		t.Error("Loaded should report true for loaded shapes")
	}
	if lib.Loaded(Torus) {
		t.Error("Loaded should report false for shapes never loaded")
	}
}

func TestProviderNotLoaded(t *testing.T) {
	lib := NewLibrary(&fakeInitializer{}, &fakeSource{})

	if _, err := lib.Provider(Sphere); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Provider error = %v, want ErrNotLoaded", err)
	}
	if _, err := lib.Ranges(Sphere, Selection{}); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Ranges error = %v, want ErrNotLoaded", err)
	}
}

func TestRangesFullMesh(t *testing.T) {
	lib := NewLibrary(&fakeInitializer{}, &fakeSource{})
	if err := lib.Load(Plane); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	ranges, err := lib.Ranges(Plane, Selection{})
	if err != nil {
		t.Fatalf("Ranges returned error: %v", err)
	}
	if len(ranges) != 1 || ranges[0] != (IndexRange{First: 0, Count: 6}) {
		t.Errorf("Ranges = %v, want one range covering all 6 indices", ranges)
	}
}

func TestRangesBoxSides(t *testing.T) {
	lib := NewLibrary(&fakeInitializer{}, &fakeSource{})
	if err := lib.Load(Box); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	sel := Selection{BoxSides: []BoxSide{BoxSideTop, BoxSideFront}}
	ranges, err := lib.Ranges(Box, sel)
	if err != nil {
		t.Fatalf("Ranges returned error: %v", err)
	}
	want := []IndexRange{{First: 24, Count: 6}, {First: 0, Count: 6}}
	if len(ranges) != len(want) {
		t.Fatalf("Ranges = %v, want %v", ranges, want)
	}
	for i := range want {
		if ranges[i] != want[i] {
			t.Errorf("Ranges[%d] = %v, want %v", i, ranges[i], want[i])
		}
	}
}

func TestRangesCylinderParts(t *testing.T) {
	lib := NewLibrary(&fakeInitializer{}, &fakeSource{})
	if err := lib.Load(Cylinder); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	tests := []struct {
		name  string
		parts CylinderParts
		want  []IndexRange
	}{
		{
			name:  "sides and bottom",
			parts: CylinderParts{Sides: true, Bottom: true},
			want:  []IndexRange{{First: 30, Count: 60}, {First: 90, Count: 30}},
		},
		{
			name:  "top only",
			parts: CylinderParts{Top: true},
			want:  []IndexRange{{First: 0, Count: 30}},
		},
		{
			name:  "none selected",
			parts: CylinderParts{},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranges, err := lib.Ranges(Cylinder, Selection{Cylinder: &tt.parts})
			if err != nil {
				t.Fatalf("Ranges returned error: %v", err)
			}
			if len(ranges) != len(tt.want) {
				t.Fatalf("Ranges = %v, want %v", ranges, tt.want)
			}
			for i := range tt.want {
				if ranges[i] != tt.want[i] {
					t.Errorf("Ranges[%d] = %v, want %v", i, ranges[i], tt.want[i])
				}
			}
		})
	}
}

func TestRangesSelectionMismatch(t *testing.T) {
	lib := NewLibrary(&fakeInitializer{}, &fakeSource{})
	if err := lib.Load(Plane, Box); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if _, err := lib.Ranges(Plane, Selection{BoxSides: []BoxSide{BoxSideTop}}); err == nil {
		t.Error("side selection on a plane should return an error")
	}
	if _, err := lib.Ranges(Box, Selection{Cylinder: &CylinderParts{Top: true}}); err == nil {
		t.Error("cylinder selection on a box should return an error")
	}
}

package material

import (
	"errors"
	"testing"
)

func TestRegisterAndFind(t *testing.T) {
	r := NewRegistry()

	want := Material{
		Tag:           "gold",
		DiffuseColor:  [3]float32{0.75, 0.61, 0.23},
		SpecularColor: [3]float32{0.63, 0.56, 0.37},
		Shininess:     52.0,
	}
	if err := r.Register(want); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	got, err := r.Find("gold")
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if got != want {
		t.Errorf("Find(gold) = %+v, want %+v", got, want)
	}
}

func TestRegisterRejectsDuplicateTag(t *testing.T) {
	r := NewRegistry()

	first := Material{Tag: "glass", Shininess: 85}
	if err := r.Register(first); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	err := r.Register(Material{Tag: "glass", Shininess: 1})
	if !errors.Is(err, ErrDuplicateTag) {
		t.Fatalf("duplicate Register error = %v, want ErrDuplicateTag", err)
	}

	// The original registration must be untouched.
	got, err := r.Find("glass")
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if got != first {
		t.Errorf("Find(glass) = %+v after rejected duplicate, want %+v", got, first)
	}
}

func TestFindUnknownTag(t *testing.T) {
	r := NewRegistry()

	got, err := r.Find("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Find(missing) error = %v, want ErrNotFound", err)
	}
	if got != (Material{}) {
		t.Errorf("Find(missing) = %+v, want zero Material", got)
	}
}

func TestTagsPreserveRegistrationOrder(t *testing.T) {
	r := NewRegistry(WithMaterials(Defaults()...))

	want := []string{"glass", "gold", "marble", "paper", "velvet", "foliage"}
	got := r.Tags()
	if len(got) != len(want) {
		t.Fatalf("Tags() returned %d tags, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tags()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if r.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", r.Len(), len(want))
	}
}

func TestWithMaterialsSkipsDuplicates(t *testing.T) {
	r := NewRegistry(WithMaterials(
		Material{Tag: "gold", Shininess: 52},
		Material{Tag: "gold", Shininess: 1},
	))

	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	got, err := r.Find("gold")
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if got.Shininess != 52 {
		t.Errorf("Find(gold).Shininess = %v, want 52 (first registration wins)", got.Shininess)
	}
}

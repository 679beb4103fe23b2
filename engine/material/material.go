// Package material provides a tag-addressed registry of surface materials
// used by the lighting model.
package material

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateTag is returned when registering a material under a tag that is already taken.
	ErrDuplicateTag = errors.New("material tag already registered")

	// ErrNotFound is returned when looking up a tag that has not been registered.
	ErrNotFound = errors.New("material tag not found")
)

// Material describes the lighting response of a surface: the diffuse and
// specular reflectivity per color channel, and the shininess exponent
// controlling the tightness of specular highlights.
type Material struct {
	Tag           string
	DiffuseColor  [3]float32
	SpecularColor [3]float32
	Shininess     float32
}

// registry is the implementation of the Registry interface.
type registry struct {
	materials map[string]Material
	order     []string
}

// Registry defines the interface for the material registry.
type Registry interface {
	// Register adds a material to the registry under its Tag.
	//
	// Parameters:
	//   - m: the material to register; m.Tag must be unique
	//
	// Returns:
	//   - error: ErrDuplicateTag when the tag is already registered
	Register(m Material) error

	// Find retrieves a registered material by tag.
	//
	// Parameters:
	//   - tag: the tag to look up
	//
	// Returns:
	//   - Material: the registered material, or the zero Material when not found
	//   - error: ErrNotFound when the tag is not registered
	Find(tag string) (Material, error)

	// Tags returns the registered tags in registration order.
	//
	// Returns:
	//   - []string: the tags in registration order
	Tags() []string

	// Len returns the number of registered materials.
	//
	// Returns:
	//   - int: the number of registered materials
	Len() int
}

var _ Registry = &registry{}

// NewRegistry creates a new material Registry with the given options.
//
// Parameters:
//   - options: variadic list of RegistryOption functions to configure the registry
//
// Returns:
//   - Registry: a new Registry instance
func NewRegistry(options ...RegistryOption) Registry {
	r := &registry{
		materials: make(map[string]Material),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *registry) Register(m Material) error {
	if _, exists := r.materials[m.Tag]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTag, m.Tag)
	}
	r.materials[m.Tag] = m
	r.order = append(r.order, m.Tag)
	return nil
}

func (r *registry) Find(tag string) (Material, error) {
	m, exists := r.materials[tag]
	if !exists {
		return Material{}, fmt.Errorf("%w: %q", ErrNotFound, tag)
	}
	return m, nil
}

func (r *registry) Tags() []string {
	tags := make([]string, len(r.order))
	copy(tags, r.order)
	return tags
}

func (r *registry) Len() int {
	return len(r.order)
}

// Defaults returns the stock material set used by the showcase scene.
//
// Returns:
//   - []Material: the default materials in registration order
func Defaults() []Material {
	return []Material{
		{
			Tag:           "glass",
			DiffuseColor:  [3]float32{0.2, 0.3, 0.4},
			SpecularColor: [3]float32{0.9, 0.9, 0.95},
			Shininess:     85.0,
		},
		{
			Tag:           "gold",
			DiffuseColor:  [3]float32{0.75, 0.61, 0.23},
			SpecularColor: [3]float32{0.63, 0.56, 0.37},
			Shininess:     52.0,
		},
		{
			Tag:           "marble",
			DiffuseColor:  [3]float32{0.55, 0.55, 0.55},
			SpecularColor: [3]float32{0.7, 0.7, 0.7},
			Shininess:     30.0,
		},
		{
			Tag:           "paper",
			DiffuseColor:  [3]float32{0.9, 0.9, 0.85},
			SpecularColor: [3]float32{0.1, 0.1, 0.1},
			Shininess:     4.0,
		},
		{
			Tag:           "velvet",
			DiffuseColor:  [3]float32{0.3, 0.2, 0.25},
			SpecularColor: [3]float32{0.05, 0.05, 0.05},
			Shininess:     2.0,
		},
		{
			Tag:           "foliage",
			DiffuseColor:  [3]float32{0.25, 0.45, 0.3},
			SpecularColor: [3]float32{0.12, 0.18, 0.12},
			Shininess:     8.0,
		},
	}
}

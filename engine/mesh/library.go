package mesh

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/vignette-go/common"
	"github.com/Carmen-Shannon/vignette-go/engine/renderer/bind_group_provider"
)

// ErrNotLoaded is returned when drawing a shape that has not been loaded into the library.
var ErrNotLoaded = errors.New("mesh not loaded")

// BufferInitializer is the subset of the renderer used to upload mesh geometry.
// The renderer.Renderer interface satisfies it.
type BufferInitializer interface {
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error
}

// libraryEntry pairs a shape's geometry with its uploaded GPU buffers.
type libraryEntry struct {
	data     Data
	provider bind_group_provider.BindGroupProvider
}

// library is the implementation of the Library interface.
type library struct {
	initializer BufferInitializer
	source      Source
	entries     map[Shape]*libraryEntry
}

// Library defines the interface for the mesh library. Shapes are generated by
// the Source and uploaded once; repeated loads of the same shape are no-ops.
type Library interface {
	// Load generates and uploads the given shapes. Shapes already loaded are
	// skipped, so Load is safe to call repeatedly.
	//
	// Parameters:
	//   - shapes: the shapes to load
	//
	// Returns:
	//   - error: an error if generation or upload fails
	Load(shapes ...Shape) error

	// Loaded reports whether a shape has been loaded.
	//
	// Parameters:
	//   - shape: the shape to check
	//
	// Returns:
	//   - bool: true when the shape is loaded
	Loaded(shape Shape) bool

	// Provider returns the bind group provider holding a shape's vertex and
	// index buffers.
	//
	// Parameters:
	//   - shape: the shape to resolve
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider, or nil when not loaded
	//   - error: ErrNotLoaded when the shape has not been loaded
	Provider(shape Shape) (bind_group_provider.BindGroupProvider, error)

	// Ranges resolves a selection to the index ranges to draw for a shape.
	// A zero Selection yields one range covering the whole index buffer.
	//
	// Parameters:
	//   - shape: the shape to resolve
	//   - selection: the part selection to apply
	//
	// Returns:
	//   - []IndexRange: the index ranges to draw, in selection order
	//   - error: ErrNotLoaded, or an error when the selection does not apply to the shape
	Ranges(shape Shape, selection Selection) ([]IndexRange, error)

	// Release releases all GPU buffers held by the library and clears it.
	Release()
}

var _ Library = &library{}

// NewLibrary creates a new mesh Library backed by the given buffer initializer
// and geometry source.
//
// Parameters:
//   - initializer: the GPU device used to upload mesh buffers
//   - source: the geometry generator for shapes
//
// Returns:
//   - Library: a new Library instance
func NewLibrary(initializer BufferInitializer, source Source) Library {
	return &library{
		initializer: initializer,
		source:      source,
		entries:     make(map[Shape]*libraryEntry),
	}
}

func (l *library) Load(shapes ...Shape) error {
	for _, shape := range shapes {
		if _, exists := l.entries[shape]; exists {
			continue
		}

		data, err := l.source.Mesh(shape)
		if err != nil {
			return fmt.Errorf("generate %s mesh: %w", shape, err)
		}

		provider := bind_group_provider.NewBindGroupProvider(shape.String() + " mesh")
		err = l.initializer.InitMeshBuffers(
			provider,
			common.SliceToBytes(data.Vertices),
			common.SliceToBytes(data.Indices),
			len(data.Indices),
		)
		if err != nil {
			return fmt.Errorf("upload %s mesh: %w", shape, err)
		}

		l.entries[shape] = &libraryEntry{data: data, provider: provider}
	}
	return nil
}

func (l *library) Loaded(shape Shape) bool {
	_, exists := l.entries[shape]
	return exists
}

func (l *library) Provider(shape Shape) (bind_group_provider.BindGroupProvider, error) {
	e, exists := l.entries[shape]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, shape)
	}
	return e.provider, nil
}

func (l *library) Ranges(shape Shape, selection Selection) ([]IndexRange, error) {
	e, exists := l.entries[shape]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, shape)
	}

	switch {
	case len(selection.BoxSides) > 0:
		if shape != Box {
			return nil, fmt.Errorf("side selection does not apply to %s mesh", shape)
		}
		ranges := make([]IndexRange, 0, len(selection.BoxSides))
		for _, side := range selection.BoxSides {
			rng, ok := e.data.BoxSides[side]
			if !ok {
				return nil, fmt.Errorf("box mesh has no %s side range", side)
			}
			ranges = append(ranges, rng)
		}
		return ranges, nil

	case selection.Cylinder != nil:
		if shape != Cylinder && shape != TaperedCylinder {
			return nil, fmt.Errorf("cylinder part selection does not apply to %s mesh", shape)
		}
		var ranges []IndexRange
		if selection.Cylinder.Top {
			ranges = append(ranges, e.data.CylinderTop)
		}
		if selection.Cylinder.Sides {
			ranges = append(ranges, e.data.CylinderSides)
		}
		if selection.Cylinder.Bottom {
			ranges = append(ranges, e.data.CylinderBottom)
		}
		return ranges, nil

	default:
		return []IndexRange{{First: 0, Count: uint32(len(e.data.Indices))}}, nil
	}
}

func (l *library) Release() {
	for shape, e := range l.entries {
		if e.provider != nil {
			e.provider.Release()
		}
		delete(l.entries, shape)
	}
}

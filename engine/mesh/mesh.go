// Package mesh provides the shape vocabulary for the scene and a library that
// uploads shape geometry to the GPU once and serves it to draw calls by index
// range. Box and cylinder meshes carry named sub-ranges so individual sides or
// caps can be drawn with different appearance state.
package mesh

// Shape identifies one of the parametric primitives the scene can draw.
type Shape int

const (
	// Plane is a flat quad in the XZ plane, centered on the origin.
	Plane Shape = iota

	// Box is an axis-aligned unit box with per-side index ranges.
	Box

	// Sphere is a full UV sphere.
	Sphere

	// HalfSphere is the upper hemisphere of a UV sphere, with a flat rim.
	HalfSphere

	// Cylinder is a capped cylinder with separate top, side, and bottom ranges.
	Cylinder

	// Cone is a cone with a circular base.
	Cone

	// TaperedCylinder is a cylinder whose top radius is smaller than its base,
	// with the same top/side/bottom ranges as Cylinder.
	TaperedCylinder

	// Torus is a ring torus.
	Torus

	// Prism is a triangular prism.
	Prism

	// Pyramid4 is a four-sided pyramid with a square base.
	Pyramid4
)

func (s Shape) String() string {
	switch s {
	case Plane:
		return "plane"
	case Box:
		return "box"
	case Sphere:
		return "sphere"
	case HalfSphere:
		return "half sphere"
	case Cylinder:
		return "cylinder"
	case Cone:
		return "cone"
	case TaperedCylinder:
		return "tapered cylinder"
	case Torus:
		return "torus"
	case Prism:
		return "prism"
	case Pyramid4:
		return "pyramid"
	default:
		return "unknown"
	}
}

// BoxSide identifies one face of a Box mesh.
type BoxSide int

const (
	BoxSideFront BoxSide = iota
	BoxSideBack
	BoxSideLeft
	BoxSideRight
	BoxSideTop
	BoxSideBottom
)

func (s BoxSide) String() string {
	switch s {
	case BoxSideFront:
		return "front"
	case BoxSideBack:
		return "back"
	case BoxSideLeft:
		return "left"
	case BoxSideRight:
		return "right"
	case BoxSideTop:
		return "top"
	case BoxSideBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// IndexRange is a contiguous run of indices within a mesh's index buffer.
type IndexRange struct {
	First uint32
	Count uint32
}

// Data is the CPU-side geometry for one shape, produced by a Source.
// BoxSides is populated for Box meshes; the cylinder ranges are populated for
// Cylinder and TaperedCylinder meshes. All other shapes draw the full index
// buffer as one range.
type Data struct {
	Vertices []GPUVertex
	Indices  []uint32

	BoxSides map[BoxSide]IndexRange

	CylinderTop    IndexRange
	CylinderSides  IndexRange
	CylinderBottom IndexRange
}

// CylinderParts selects which parts of a cylinder mesh to draw.
type CylinderParts struct {
	Top    bool
	Sides  bool
	Bottom bool
}

// Selection narrows a draw to part of a mesh. The zero Selection draws the
// whole mesh. BoxSides applies to Box; Cylinder applies to Cylinder and
// TaperedCylinder.
type Selection struct {
	BoxSides []BoxSide
	Cylinder *CylinderParts
}

// Source produces geometry for shapes on demand. Implementations generate the
// vertex and index data; the library handles GPU upload and range bookkeeping.
type Source interface {
	// Mesh generates the geometry for a shape.
	//
	// Parameters:
	//   - shape: the shape to generate
	//
	// Returns:
	//   - Data: the generated geometry
	//   - error: an error if the shape is not supported
	Mesh(shape Shape) (Data, error)
}

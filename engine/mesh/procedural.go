package mesh

import (
	"fmt"
	"math"
)

// Tessellation levels for the curved shapes. High enough that silhouettes
// read as smooth at table-top viewing distances, low enough that every
// shape stays well under a thousand triangles.
const (
	sphereRings    = 16
	sphereSegments = 24
	circleSegments = 36
	torusMajorSegs = 32
	torusMinorSegs = 16
)

// proceduralSource generates all Shape geometry parametrically. Every mesh is
// wound counter-clockwise when viewed from outside, so the shapes render
// correctly with back-face culling enabled.
//
// Conventions: boxes, spheres, and the torus are centered on the origin.
// Cylinders, cones, prisms, and pyramids have their base in the XZ plane at
// y=0 and extend to y=1, so a placement's Y position is the height of the
// shape's base.
type proceduralSource struct{}

var _ Source = &proceduralSource{}

// NewProceduralSource creates a Source that generates geometry for every Shape.
//
// Returns:
//   - Source: the procedural geometry source
func NewProceduralSource() Source {
	return &proceduralSource{}
}

func (p *proceduralSource) Mesh(shape Shape) (Data, error) {
	switch shape {
	case Plane:
		return buildPlane(), nil
	case Box:
		return buildBox(), nil
	case Sphere:
		return buildSphere(sphereRings, sphereSegments, false), nil
	case HalfSphere:
		return buildSphere(sphereRings/2, sphereSegments, true), nil
	case Cylinder:
		return buildCylinder(1.0, 1.0, true), nil
	case TaperedCylinder:
		return buildCylinder(1.0, 0.5, true), nil
	case Cone:
		return buildCylinder(1.0, 0.0, false), nil
	case Torus:
		return buildTorus(0.75, 0.25), nil
	case Prism:
		return buildPrism(), nil
	case Pyramid4:
		return buildPyramid4(), nil
	default:
		return Data{}, fmt.Errorf("no generator for shape %q", shape)
	}
}

// quad appends a four-corner face to the mesh. Corners must be given in
// counter-clockwise order when viewed from outside, starting at the corner
// mapped to UV (0,0). Produces two triangles sharing the c0-c2 diagonal.
func quad(verts []GPUVertex, indices []uint32, c0, c1, c2, c3, normal [3]float32) ([]GPUVertex, []uint32) {
	base := uint32(len(verts))
	verts = append(verts,
		GPUVertex{Position: c0, Normal: normal, TexCoord: [2]float32{0, 0}},
		GPUVertex{Position: c1, Normal: normal, TexCoord: [2]float32{1, 0}},
		GPUVertex{Position: c2, Normal: normal, TexCoord: [2]float32{1, 1}},
		GPUVertex{Position: c3, Normal: normal, TexCoord: [2]float32{0, 1}},
	)
	indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	return verts, indices
}

// buildPlane generates a flat quad in the XZ plane spanning [-1,1] on both
// axes, facing +Y.
func buildPlane() Data {
	verts, indices := quad(nil, nil,
		[3]float32{-1, 0, 1},
		[3]float32{1, 0, 1},
		[3]float32{1, 0, -1},
		[3]float32{-1, 0, -1},
		[3]float32{0, 1, 0},
	)
	return Data{Vertices: verts, Indices: indices}
}

// buildBox generates a unit box centered on the origin with a named index
// range per face, so callers can draw individual sides with different
// appearance state.
func buildBox() Data {
	const h = 0.5
	var verts []GPUVertex
	var indices []uint32
	sides := make(map[BoxSide]IndexRange, 6)

	face := func(side BoxSide, c0, c1, c2, c3, normal [3]float32) {
		first := uint32(len(indices))
		verts, indices = quad(verts, indices, c0, c1, c2, c3, normal)
		sides[side] = IndexRange{First: first, Count: 6}
	}

	face(BoxSideFront,
		[3]float32{-h, -h, h}, [3]float32{h, -h, h}, [3]float32{h, h, h}, [3]float32{-h, h, h},
		[3]float32{0, 0, 1})
	face(BoxSideBack,
		[3]float32{h, -h, -h}, [3]float32{-h, -h, -h}, [3]float32{-h, h, -h}, [3]float32{h, h, -h},
		[3]float32{0, 0, -1})
	face(BoxSideLeft,
		[3]float32{-h, -h, -h}, [3]float32{-h, -h, h}, [3]float32{-h, h, h}, [3]float32{-h, h, -h},
		[3]float32{-1, 0, 0})
	face(BoxSideRight,
		[3]float32{h, -h, h}, [3]float32{h, -h, -h}, [3]float32{h, h, -h}, [3]float32{h, h, h},
		[3]float32{1, 0, 0})
	face(BoxSideTop,
		[3]float32{-h, h, h}, [3]float32{h, h, h}, [3]float32{h, h, -h}, [3]float32{-h, h, -h},
		[3]float32{0, 1, 0})
	face(BoxSideBottom,
		[3]float32{-h, -h, -h}, [3]float32{h, -h, -h}, [3]float32{h, -h, h}, [3]float32{-h, -h, h},
		[3]float32{0, -1, 0})

	return Data{Vertices: verts, Indices: indices, BoxSides: sides}
}

// buildSphere generates a UV sphere of radius 1 centered on the origin.
// When half is true only the upper hemisphere is generated, down to an open
// rim at y=0, and rings covers just that hemisphere.
func buildSphere(rings, segments int, half bool) Data {
	var verts []GPUVertex
	var indices []uint32

	phiMax := math.Pi
	if half {
		phiMax = math.Pi / 2
	}

	for r := 0; r <= rings; r++ {
		phi := phiMax * float64(r) / float64(rings)
		y := float32(math.Cos(phi))
		ringRadius := float32(math.Sin(phi))

		for s := 0; s <= segments; s++ {
			theta := 2.0 * math.Pi * float64(s) / float64(segments)
			x := ringRadius * float32(math.Cos(theta))
			z := ringRadius * float32(math.Sin(theta))

			verts = append(verts, GPUVertex{
				Position: [3]float32{x, y, z},
				Normal:   [3]float32{x, y, z},
				TexCoord: [2]float32{float32(s) / float32(segments), 1 - float32(r)/float32(rings)},
			})
		}
	}

	stride := segments + 1
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := uint32(r*stride + s)
			b := uint32(r*stride + s + 1)
			c := uint32((r+1)*stride + s)
			d := uint32((r+1)*stride + s + 1)
			indices = append(indices, a, b, c, b, d, c)
		}
	}

	return Data{Vertices: verts, Indices: indices}
}

// buildCylinder generates a capped cylinder with its base circle in the XZ
// plane at y=0 and its top at y=1. A topRadius smaller than bottomRadius
// gives a tapered cylinder; a topRadius of zero with topCap false gives a
// cone. The top cap, side surface, and bottom cap each get their own index
// range so they can be drawn separately.
func buildCylinder(bottomRadius, topRadius float32, topCap bool) Data {
	var verts []GPUVertex
	var indices []uint32
	var data Data

	ringPos := func(radius float32, theta float64) (float32, float32) {
		return radius * float32(math.Cos(theta)), radius * float32(math.Sin(theta))
	}

	if topCap {
		first := uint32(len(indices))
		center := uint32(len(verts))
		verts = append(verts, GPUVertex{
			Position: [3]float32{0, 1, 0},
			Normal:   [3]float32{0, 1, 0},
			TexCoord: [2]float32{0.5, 0.5},
		})
		for s := 0; s <= circleSegments; s++ {
			theta := 2.0 * math.Pi * float64(s) / float64(circleSegments)
			x, z := ringPos(topRadius, theta)
			verts = append(verts, GPUVertex{
				Position: [3]float32{x, 1, z},
				Normal:   [3]float32{0, 1, 0},
				TexCoord: [2]float32{0.5 + 0.5*float32(math.Cos(theta)), 0.5 + 0.5*float32(math.Sin(theta))},
			})
		}
		for s := 0; s < circleSegments; s++ {
			indices = append(indices, center, center+uint32(s)+2, center+uint32(s)+1)
		}
		data.CylinderTop = IndexRange{First: first, Count: uint32(len(indices)) - first}
	}

	// Side surface. The lateral normal of a linear taper leans up by the
	// radius change over the height.
	sideFirst := uint32(len(indices))
	sideBase := uint32(len(verts))
	ny := bottomRadius - topRadius
	nScale := 1.0 / float32(math.Sqrt(float64(1+ny*ny)))
	for s := 0; s <= circleSegments; s++ {
		theta := 2.0 * math.Pi * float64(s) / float64(circleSegments)
		cosT := float32(math.Cos(theta))
		sinT := float32(math.Sin(theta))
		normal := [3]float32{cosT * nScale, ny * nScale, sinT * nScale}
		u := float32(s) / float32(circleSegments)

		topX, topZ := ringPos(topRadius, theta)
		verts = append(verts, GPUVertex{
			Position: [3]float32{topX, 1, topZ},
			Normal:   normal,
			TexCoord: [2]float32{u, 1},
		})
		bottomX, bottomZ := ringPos(bottomRadius, theta)
		verts = append(verts, GPUVertex{
			Position: [3]float32{bottomX, 0, bottomZ},
			Normal:   normal,
			TexCoord: [2]float32{u, 0},
		})
	}
	for s := 0; s < circleSegments; s++ {
		a := sideBase + uint32(s)*2     // top ring
		c := a + 1                      // bottom ring
		b := sideBase + uint32(s)*2 + 2 // next top
		d := b + 1                      // next bottom
		indices = append(indices, a, b, c, b, d, c)
	}
	data.CylinderSides = IndexRange{First: sideFirst, Count: uint32(len(indices)) - sideFirst}

	bottomFirst := uint32(len(indices))
	center := uint32(len(verts))
	verts = append(verts, GPUVertex{
		Position: [3]float32{0, 0, 0},
		Normal:   [3]float32{0, -1, 0},
		TexCoord: [2]float32{0.5, 0.5},
	})
	for s := 0; s <= circleSegments; s++ {
		theta := 2.0 * math.Pi * float64(s) / float64(circleSegments)
		x, z := ringPos(bottomRadius, theta)
		verts = append(verts, GPUVertex{
			Position: [3]float32{x, 0, z},
			Normal:   [3]float32{0, -1, 0},
			TexCoord: [2]float32{0.5 + 0.5*float32(math.Cos(theta)), 0.5 + 0.5*float32(math.Sin(theta))},
		})
	}
	for s := 0; s < circleSegments; s++ {
		indices = append(indices, center, center+uint32(s)+1, center+uint32(s)+2)
	}
	data.CylinderBottom = IndexRange{First: bottomFirst, Count: uint32(len(indices)) - bottomFirst}

	data.Vertices = verts
	data.Indices = indices
	return data
}

// buildTorus generates a ring torus centered on the origin, lying in the XZ
// plane. ringRadius is the distance from the origin to the tube center;
// tubeRadius is the tube's own radius, so the overall reach is their sum.
func buildTorus(ringRadius, tubeRadius float32) Data {
	var verts []GPUVertex
	var indices []uint32

	for i := 0; i <= torusMajorSegs; i++ {
		phi := 2.0 * math.Pi * float64(i) / float64(torusMajorSegs)
		cosPhi := float32(math.Cos(phi))
		sinPhi := float32(math.Sin(phi))

		for j := 0; j <= torusMinorSegs; j++ {
			psi := 2.0 * math.Pi * float64(j) / float64(torusMinorSegs)
			cosPsi := float32(math.Cos(psi))
			sinPsi := float32(math.Sin(psi))

			r := ringRadius + tubeRadius*cosPsi
			verts = append(verts, GPUVertex{
				Position: [3]float32{r * cosPhi, tubeRadius * sinPsi, r * sinPhi},
				Normal:   [3]float32{cosPsi * cosPhi, sinPsi, cosPsi * sinPhi},
				TexCoord: [2]float32{float32(i) / float32(torusMajorSegs), float32(j) / float32(torusMinorSegs)},
			})
		}
	}

	stride := torusMinorSegs + 1
	for i := 0; i < torusMajorSegs; i++ {
		for j := 0; j < torusMinorSegs; j++ {
			a := uint32(i*stride + j)
			b := uint32(i*stride + j + 1)
			c := uint32((i+1)*stride + j)
			d := uint32((i+1)*stride + j + 1)
			indices = append(indices, a, b, c, b, d, c)
		}
	}

	return Data{Vertices: verts, Indices: indices}
}

// buildPrism generates a triangular prism with an equilateral cross-section
// inscribed in a unit circle, base at y=0 and top at y=1.
func buildPrism() Data {
	corner := func(deg float64) [3]float32 {
		rad := deg * math.Pi / 180.0
		return [3]float32{float32(math.Cos(rad)), 0, float32(math.Sin(rad))}
	}
	p0 := corner(90)
	p1 := corner(210)
	p2 := corner(330)

	var verts []GPUVertex
	var indices []uint32

	// Rectangular sides, taking the base edges in the order that keeps the
	// outward normal (-dz, 0, dx) pointing away from the axis.
	for _, edge := range [][2][3]float32{{p0, p2}, {p2, p1}, {p1, p0}} {
		a, b := edge[0], edge[1]
		dx := b[0] - a[0]
		dz := b[2] - a[2]
		length := float32(math.Sqrt(float64(dx*dx + dz*dz)))
		normal := [3]float32{-dz / length, 0, dx / length}
		verts, indices = quad(verts, indices,
			a,
			b,
			[3]float32{b[0], 1, b[2]},
			[3]float32{a[0], 1, a[2]},
			normal,
		)
	}

	triCap := func(a, b, c [3]float32, y, ny float32) {
		base := uint32(len(verts))
		for _, p := range [][3]float32{a, b, c} {
			verts = append(verts, GPUVertex{
				Position: [3]float32{p[0], y, p[2]},
				Normal:   [3]float32{0, ny, 0},
				TexCoord: [2]float32{0.5 + p[0]/2, 0.5 + p[2]/2},
			})
		}
		indices = append(indices, base, base+1, base+2)
	}
	triCap(p0, p2, p1, 1, 1)
	triCap(p0, p1, p2, 0, -1)

	return Data{Vertices: verts, Indices: indices}
}

// buildPyramid4 generates a four-sided pyramid with a unit square base at
// y=0 and its apex at y=1.
func buildPyramid4() Data {
	const q = 0.5
	apex := [3]float32{0, 1, 0}
	base := [][3]float32{
		{-q, 0, q},  // front-left
		{q, 0, q},   // front-right
		{q, 0, -q},  // back-right
		{-q, 0, -q}, // back-left
	}

	var verts []GPUVertex
	var indices []uint32

	for i := range base {
		b0 := base[i]
		b1 := base[(i+1)%len(base)]
		normal := triangleNormal(b0, b1, apex)
		first := uint32(len(verts))
		verts = append(verts,
			GPUVertex{Position: b0, Normal: normal, TexCoord: [2]float32{0, 0}},
			GPUVertex{Position: b1, Normal: normal, TexCoord: [2]float32{1, 0}},
			GPUVertex{Position: apex, Normal: normal, TexCoord: [2]float32{0.5, 1}},
		)
		indices = append(indices, first, first+1, first+2)
	}

	verts, indices = quad(verts, indices,
		base[3], base[2], base[1], base[0],
		[3]float32{0, -1, 0},
	)

	return Data{Vertices: verts, Indices: indices}
}

// triangleNormal returns the unit normal of a counter-clockwise triangle.
func triangleNormal(v0, v1, v2 [3]float32) [3]float32 {
	ux, uy, uz := v1[0]-v0[0], v1[1]-v0[1], v1[2]-v0[2]
	wx, wy, wz := v2[0]-v0[0], v2[1]-v0[1], v2[2]-v0[2]
	nx := uy*wz - uz*wy
	ny := uz*wx - ux*wz
	nz := ux*wy - uy*wx
	length := float32(math.Sqrt(float64(nx*nx + ny*ny + nz*nz)))
	if length == 0 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{nx / length, ny / length, nz / length}
}

package scene

import "github.com/Carmen-Shannon/vignette-go/engine/mesh"

// TextureRef names an image file to load into the texture registry.
type TextureRef struct {
	Tag  string
	Path string
}

// Placement is one declarative draw record: a shape (or part of one), its
// transform, and its appearance. TextureTag takes precedence over Color when
// set; a zero UVScale means no tiling (1, 1).
type Placement struct {
	Shape     mesh.Shape
	Selection mesh.Selection

	Scale       [3]float32
	RotationDeg [3]float32
	Position    [3]float32

	Color       [4]float32
	TextureTag  string
	UVScale     [2]float32
	MaterialTag string
}

// Object is a named group of placements drawn together, in order.
type Object struct {
	Name       string
	Placements []Placement
}

// Stub is a scene object that is named but not yet modeled. Stubs draw
// nothing; they exist so the scene's inventory is visible and honest about
// what remains.
type Stub struct {
	Name string
	Note string
}

// DefaultTextures returns the texture manifest for the showcase scene, in
// texture unit order.
//
// Returns:
//   - []TextureRef: the textures to load, in registration order
func DefaultTextures() []TextureRef {
	return []TextureRef{
		{Tag: "marble", Path: "textures/marble.jpg"},
		{Tag: "gold", Path: "textures/gold.jpg"},
		{Tag: "emblem", Path: "textures/emblem.jpg"},
		{Tag: "blue_glass", Path: "textures/blue_glass.jpg"},
		{Tag: "perfume", Path: "textures/perfume.jpg"},
	}
}

// DefaultShapes returns every shape the default object tables reference.
//
// Returns:
//   - []mesh.Shape: the shapes to load into the mesh library
func DefaultShapes() []mesh.Shape {
	return []mesh.Shape{
		mesh.Plane,
		mesh.Box,
		mesh.Sphere,
		mesh.HalfSphere,
		mesh.Cylinder,
		mesh.Torus,
	}
}

// DefaultObjects returns the placement tables for the showcase scene: a
// marble tabletop holding a cologne bottle, a perfume bottle, and a wedding
// itinerary with a foliage ring. Objects render in slice order and placements
// render in order within each object.
//
// Returns:
//   - []Object: the objects to render, in draw order
func DefaultObjects() []Object {
	return []Object{
		{
			Name: "table",
			Placements: []Placement{
				{
					Shape:       mesh.Plane,
					Scale:       [3]float32{30, 1, 30},
					Position:    [3]float32{0, 0, 0},
					TextureTag:  "marble",
					MaterialTag: "marble",
				},
			},
		},
		{
			Name: "cologne bottle",
			Placements: []Placement{
				{
					// Bottle body.
					Shape:       mesh.Box,
					Scale:       [3]float32{3.5, 5.0, 1.5},
					Position:    [3]float32{-15, 2.5, -15},
					TextureTag:  "blue_glass",
					MaterialTag: "glass",
				},
				{
					// Emblem medallion on the front face.
					Shape:       mesh.Sphere,
					Scale:       [3]float32{0.5, 0.5, 0.2},
					Position:    [3]float32{-15, 2.5, -14.25},
					TextureTag:  "emblem",
					MaterialTag: "glass",
				},
				{
					// Bottle neck.
					Shape:       mesh.Cylinder,
					Scale:       [3]float32{0.7, 0.8, 0.7},
					Position:    [3]float32{-15, 5.0, -15},
					TextureTag:  "gold",
					MaterialTag: "gold",
				},
				{
					// Cap body, drawn without its top so the lid placement can
					// cover it with a different texture.
					Shape:       mesh.Cylinder,
					Selection:   mesh.Selection{Cylinder: &mesh.CylinderParts{Sides: true, Bottom: true}},
					Scale:       [3]float32{1, 1, 1},
					RotationDeg: [3]float32{0, 90, 0},
					Position:    [3]float32{-15, 5.8, -15},
					TextureTag:  "gold",
					MaterialTag: "gold",
				},
				{
					// Cap lid.
					Shape:       mesh.Cylinder,
					Selection:   mesh.Selection{Cylinder: &mesh.CylinderParts{Top: true}},
					Scale:       [3]float32{1, 1, 1},
					RotationDeg: [3]float32{0, 90, 0},
					Position:    [3]float32{-15, 5.8, -15},
					TextureTag:  "emblem",
					MaterialTag: "gold",
				},
			},
		},
		{
			Name: "perfume bottle",
			Placements: []Placement{
				{
					// Bottle body.
					Shape:       mesh.Box,
					Scale:       [3]float32{1.75, 3.5, 1.75},
					Position:    [3]float32{-19, 1.75, 5},
					TextureTag:  "perfume",
					MaterialTag: "glass",
				},
				{
					// Label panel on the front face.
					Shape:       mesh.Plane,
					Scale:       [3]float32{0.65, 1.0, 1.25},
					RotationDeg: [3]float32{90, 0, 0},
					Position:    [3]float32{-19, 1.75, 5.9},
					Color:       [4]float32{1, 0, 0, 1},
					MaterialTag: "paper",
				},
				{
					// Bottle neck.
					Shape:       mesh.Cylinder,
					Scale:       [3]float32{0.65, 0.5, 0.65},
					Position:    [3]float32{-19, 3.5, 5},
					TextureTag:  "gold",
					MaterialTag: "gold",
				},
				{
					// Cap body, all sides except the top.
					Shape: mesh.Box,
					Selection: mesh.Selection{BoxSides: []mesh.BoxSide{
						mesh.BoxSideBottom,
						mesh.BoxSideRight,
						mesh.BoxSideLeft,
						mesh.BoxSideBack,
						mesh.BoxSideFront,
					}},
					Scale:       [3]float32{1.5, 0.75, 1.5},
					Position:    [3]float32{-19, 4.37, 5},
					TextureTag:  "gold",
					MaterialTag: "gold",
				},
				{
					// Cap top with the emblem.
					Shape:       mesh.Box,
					Selection:   mesh.Selection{BoxSides: []mesh.BoxSide{mesh.BoxSideTop}},
					Scale:       [3]float32{1.5, 0.75, 1.5},
					Position:    [3]float32{-19, 4.37, 5},
					TextureTag:  "emblem",
					MaterialTag: "gold",
				},
			},
		},
		{
			Name: "itinerary",
			Placements: []Placement{
				{
					// Paper sheet.
					Shape:       mesh.Box,
					Scale:       [3]float32{22, 0.1, 11},
					RotationDeg: [3]float32{0, -60, 0},
					Position:    [3]float32{-18, 0.1, -5},
					Color:       [4]float32{1, 1, 1, 1},
					MaterialTag: "paper",
				},
				{
					// Foliage ring resting on the sheet's corner.
					Shape:       mesh.Torus,
					Scale:       [3]float32{1.5, 1.5, 0.75},
					RotationDeg: [3]float32{90, 0, 0},
					Position:    [3]float32{-22.25, 0.3, -12.75},
					Color:       [4]float32{0.12, 0.21, 0.18, 1},
					MaterialTag: "foliage",
				},
				{
					// Foliage mound filling the ring.
					Shape:       mesh.HalfSphere,
					Scale:       [3]float32{1.6, 0.3, 1.6},
					Position:    [3]float32{-22.25, 0, -12.75},
					Color:       [4]float32{0.12, 0.21, 0.18, 1},
					MaterialTag: "foliage",
				},
			},
		},
	}
}

// DefaultStubs returns the scene objects that are planned but not yet modeled.
//
// Returns:
//   - []Stub: the unmodeled objects
func DefaultStubs() []Stub {
	return []Stub{
		{Name: "necklace box", Note: "TODO: model the velvet necklace box (box body, half-sphere clasp)"},
		{Name: "ring box", Note: "TODO: model the ring box (box body, hinged lid)"},
		{Name: "white vow book", Note: "TODO: model the white vow book (two angled box covers, page stack)"},
		{Name: "brown vow book", Note: "TODO: model the brown vow book (two angled box covers, page stack)"},
	}
}

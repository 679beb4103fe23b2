package common

import (
	"math"
	"testing"
)

const epsilon = 1e-5

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func approxEqualVec(a, b [3]float32) bool {
	return approxEqual(a[0], b[0]) && approxEqual(a[1], b[1]) && approxEqual(a[2], b[2])
}

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = float32(i)
	}
	Identity(m)
	for i, v := range m {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		if v != want {
			t.Fatalf("m[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestMul4Identity(t *testing.T) {
	var id [16]float32
	Identity(id[:])
	m := [16]float32{2, 0, 0, 0, 0, 3, 0, 0, 0, 0, 4, 0, 5, 6, 7, 1}

	var out [16]float32
	Mul4(out[:], id[:], m[:])
	if out != m {
		t.Errorf("I*M = %v, want %v", out, m)
	}
	Mul4(out[:], m[:], id[:])
	if out != m {
		t.Errorf("M*I = %v, want %v", out, m)
	}
}

// Mul4 must tolerate the output slice aliasing an input, since
// ComposeTransform accumulates in place.
func TestMul4Aliasing(t *testing.T) {
	var tr, sc [16]float32
	Translate4(tr[:], 1, 2, 3)
	Scale4(sc[:], 2, 2, 2)

	var expected [16]float32
	Mul4(expected[:], tr[:], sc[:])

	out := tr
	Mul4(out[:], out[:], sc[:])
	if out != expected {
		t.Errorf("aliased multiply = %v, want %v", out, expected)
	}
}

func TestRotationDirections(t *testing.T) {
	tt := []struct {
		name   string
		rotate func(out []float32, degrees float32)
		point  [3]float32
		want   [3]float32
	}{
		// Right-handed rotations: +90 degrees about Y carries +X to -Z.
		{"Y carries +X to -Z", RotationY4, [3]float32{1, 0, 0}, [3]float32{0, 0, -1}},
		{"X carries +Y to +Z", RotationX4, [3]float32{0, 1, 0}, [3]float32{0, 0, 1}},
		{"Z carries +X to +Y", RotationZ4, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			var m [16]float32
			tc.rotate(m[:], 90)
			got := TransformPoint(m[:], tc.point)
			if !approxEqualVec(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

// The model matrix composition order is scale, then X, Y, Z rotation, then
// translation. With scale (2,1,1), a 90 degree Y rotation, and a (1,0,0)
// translation, the point (1,0,0) scales to (2,0,0), rotates to (0,0,-2),
// and translates to (1,0,-2). Any other composition order produces a
// different result, so this pins the contract.
func TestComposeTransformOrder(t *testing.T) {
	var m [16]float32
	ComposeTransform(m[:],
		[3]float32{2, 1, 1},
		[3]float32{0, 90, 0},
		[3]float32{1, 0, 0},
	)
	got := TransformPoint(m[:], [3]float32{1, 0, 0})
	want := [3]float32{1, 0, -2}
	if !approxEqualVec(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestComposeTransformIdentity(t *testing.T) {
	var m [16]float32
	ComposeTransform(m[:], [3]float32{1, 1, 1}, [3]float32{}, [3]float32{})
	p := [3]float32{3, -4, 5}
	if got := TransformPoint(m[:], p); !approxEqualVec(got, p) {
		t.Errorf("identity transform moved %v to %v", p, got)
	}
}

// Perspective must map the near plane to depth 0 and the far plane to depth
// 1, the WebGPU clip space convention.
func TestPerspectiveDepthRange(t *testing.T) {
	var p [16]float32
	near, far := float32(0.1), float32(200.0)
	Perspective(p[:], float32(math.Pi/4), 16.0/9.0, near, far)

	depthAt := func(z float32) float32 {
		// clip = P * (0, 0, z, 1)
		clipZ := p[10]*z + p[14]
		clipW := p[11]*z + p[15]
		return clipZ / clipW
	}

	if d := depthAt(-near); !approxEqual(d, 0) {
		t.Errorf("near plane depth = %v, want 0", d)
	}
	if d := depthAt(-far); !approxEqual(d, 1) {
		t.Errorf("far plane depth = %v, want 1", d)
	}
}

func TestOrthographicDepthRange(t *testing.T) {
	var p [16]float32
	near, far := float32(0.1), float32(200.0)
	Orthographic(p[:], -10, 10, -10, 10, near, far)

	depthAt := func(z float32) float32 {
		return p[10]*z + p[14]
	}
	if d := depthAt(-near); !approxEqual(d, 0) {
		t.Errorf("near plane depth = %v, want 0", d)
	}
	if d := depthAt(-far); !approxEqual(d, 1) {
		t.Errorf("far plane depth = %v, want 1", d)
	}

	// The view volume center maps to the origin.
	center := TransformPoint(p[:], [3]float32{0, 0, -100})
	if !approxEqual(center[0], 0) || !approxEqual(center[1], 0) {
		t.Errorf("center mapped to (%v, %v), want origin", center[0], center[1])
	}
}

func TestLookAtTransformsWorldToView(t *testing.T) {
	var v [16]float32
	LookAt(v[:], 0, 0, 10, 0, 0, 0, 0, 1, 0)

	// The look-at target sits 10 units down the view -Z axis.
	origin := TransformPoint(v[:], [3]float32{0, 0, 0})
	if !approxEqualVec(origin, [3]float32{0, 0, -10}) {
		t.Errorf("target in view space = %v, want (0,0,-10)", origin)
	}

	// The eye maps to the view space origin.
	eye := TransformPoint(v[:], [3]float32{0, 0, 10})
	if !approxEqualVec(eye, [3]float32{0, 0, 0}) {
		t.Errorf("eye in view space = %v, want origin", eye)
	}

	// World +X stays view +X for this camera.
	right := TransformPoint(v[:], [3]float32{1, 0, 10})
	if !approxEqualVec(right, [3]float32{1, 0, 0}) {
		t.Errorf("right in view space = %v, want (1,0,0)", right)
	}
}

func TestSliceToBytesLength(t *testing.T) {
	data := []float32{1, 2, 3}
	b := SliceToBytes(data)
	if len(b) != 12 {
		t.Errorf("len = %d, want 12", len(b))
	}
	if SliceToBytes([]float32(nil)) != nil {
		t.Error("empty slice should produce nil")
	}
}

func TestStructToBytesSize(t *testing.T) {
	v := struct {
		A [16]float32
		B [4]float32
	}{}
	if got := len(StructToBytes(&v)); got != 80 {
		t.Errorf("len = %d, want 80", got)
	}
}

package common

import (
	"math"
	"unsafe"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b. The output slice may alias either input.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Scale4 writes a scale matrix with the given per-axis factors.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - x, y, z: scale factors along each axis
func Scale4(out []float32, x, y, z float32) {
	Identity(out)
	out[0] = x
	out[5] = y
	out[10] = z
}

// Translate4 writes a translation matrix for the given offset.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - x, y, z: translation in world units
func Translate4(out []float32, x, y, z float32) {
	Identity(out)
	out[12] = x
	out[13] = y
	out[14] = z
}

// RotationX4 writes a rotation matrix about the X axis.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - degrees: rotation angle in degrees
func RotationX4(out []float32, degrees float32) {
	s, c := sincosDeg(degrees)
	Identity(out)
	out[5] = c
	out[6] = s
	out[9] = -s
	out[10] = c
}

// RotationY4 writes a rotation matrix about the Y axis.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - degrees: rotation angle in degrees
func RotationY4(out []float32, degrees float32) {
	s, c := sincosDeg(degrees)
	Identity(out)
	out[0] = c
	out[2] = -s
	out[8] = s
	out[10] = c
}

// RotationZ4 writes a rotation matrix about the Z axis.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - degrees: rotation angle in degrees
func RotationZ4(out []float32, degrees float32) {
	s, c := sincosDeg(degrees)
	Identity(out)
	out[0] = c
	out[1] = s
	out[4] = -s
	out[5] = c
}

// ComposeTransform builds a model matrix from per-axis scale, Euler rotation in
// degrees, and world position. The composition order is fixed:
//
//	model = T * Rz * Ry * Rx * S
//
// i.e. scale first, then rotation about X, then Y, then Z, then translation.
// This order is a rendering contract — every placement in the scene tables is
// authored against it, so it must not change.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - scale: per-axis scale factors
//   - rotationDeg: rotation angles in degrees about the X, Y and Z axes
//   - position: world-space translation
func ComposeTransform(out []float32, scale, rotationDeg, position [3]float32) {
	var s, rx, ry, rz, t [16]float32
	Scale4(s[:], scale[0], scale[1], scale[2])
	RotationX4(rx[:], rotationDeg[0])
	RotationY4(ry[:], rotationDeg[1])
	RotationZ4(rz[:], rotationDeg[2])
	Translate4(t[:], position[0], position[1], position[2])

	Mul4(out, rx[:], s[:])
	Mul4(out, ry[:], out)
	Mul4(out, rz[:], out)
	Mul4(out, t[:], out)
}

// TransformPoint applies a column-major 4x4 matrix to a 3D point (w = 1).
//
// Parameters:
//   - m: the matrix (16 elements, column-major)
//   - p: the point to transform
//
// Returns:
//   - [3]float32: the transformed point
func TransformPoint(m []float32, p [3]float32) [3]float32 {
	return [3]float32{
		m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12],
		m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13],
		m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14],
	}
}

// Perspective creates a perspective projection matrix.
// Uses the WebGPU clip space convention with depth in [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// Orthographic creates an orthographic projection matrix.
// Uses the WebGPU clip space convention with depth in [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - left, right: extents of the view volume along the X axis
//   - bottom, top: extents of the view volume along the Y axis
//   - near: near clipping plane distance
//   - far: far clipping plane distance
func Orthographic(out []float32, left, right, bottom, top, near, far float32) {
	Identity(out)
	out[0] = 2.0 / (right - left)
	out[5] = 2.0 / (top - bottom)
	out[10] = 1.0 / (near - far)
	out[12] = (left + right) / (left - right)
	out[13] = (bottom + top) / (bottom - top)
	out[14] = near / (near - far)
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eyeX, eyeY, eyeZ: camera position in world space
//   - centerX, centerY, centerZ: target point the camera looks at
//   - upX, upY, upZ: up vector defining camera orientation (typically 0,1,0)
func LookAt(out []float32, eyeX, eyeY, eyeZ, centerX, centerY, centerZ, upX, upY, upZ float32) {
	z0 := eyeX - centerX
	z1 := eyeY - centerY
	z2 := eyeZ - centerZ
	val := float64(z0*z0 + z1*z1 + z2*z2)
	if val == 0 {
		val = 1
	}
	invLen := 1.0 / float32(math.Sqrt(val))
	z0 *= invLen
	z1 *= invLen
	z2 *= invLen

	x0 := upY*z2 - upZ*z1
	x1 := upZ*z0 - upX*z2
	x2 := upX*z1 - upY*z0
	val = float64(x0*x0 + x1*x1 + x2*x2)
	if val == 0 {
		val = 1
	}
	invLen = 1.0 / float32(math.Sqrt(val))
	x0 *= invLen
	x1 *= invLen
	x2 *= invLen

	y0 := z1*x2 - z2*x1
	y1 := z2*x0 - z0*x2
	y2 := z0*x1 - z1*x0

	out[0], out[4], out[8], out[12] = x0, x1, x2, -(x0*eyeX + x1*eyeY + x2*eyeZ)
	out[1], out[5], out[9], out[13] = y0, y1, y2, -(y0*eyeX + y1*eyeY + y2*eyeZ)
	out[2], out[6], out[10], out[14] = z0, z1, z2, -(z0*eyeX + z1*eyeY + z2*eyeZ)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// sincosDeg returns the sine and cosine of an angle given in degrees.
//
// Parameters:
//   - degrees: the angle in degrees
//
// Returns:
//   - float32: the sine of the angle
//   - float32: the cosine of the angle
func sincosDeg(degrees float32) (float32, float32) {
	rad := float64(degrees) * math.Pi / 180.0
	s, c := math.Sincos(rad)
	return float32(s), float32(c)
}

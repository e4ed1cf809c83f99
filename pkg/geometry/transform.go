package geometry

import "math"

// Matrix3 is a row-major 3x3 matrix
type Matrix3 [3][3]float64

// IdentityMatrix3 returns the identity matrix
func IdentityMatrix3() Matrix3 {
	return Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// MulVector multiplies the matrix by a column vector
func (m Matrix3) MulVector(v Vector3) Vector3 {
	return Vector3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Mul returns the product m * other
func (m Matrix3) Mul(other Matrix3) Matrix3 {
	var out Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return out
}

// Determinant returns the determinant of the matrix
func (m Matrix3) Determinant() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Inverse returns the inverse matrix, or false if the matrix is singular
func (m Matrix3) Inverse() (Matrix3, bool) {
	det := m.Determinant()
	if math.Abs(det) < 1e-12 {
		return Matrix3{}, false
	}
	inv := 1 / det
	return Matrix3{
		{
			(m[1][1]*m[2][2] - m[1][2]*m[2][1]) * inv,
			(m[0][2]*m[2][1] - m[0][1]*m[2][2]) * inv,
			(m[0][1]*m[1][2] - m[0][2]*m[1][1]) * inv,
		},
		{
			(m[1][2]*m[2][0] - m[1][0]*m[2][2]) * inv,
			(m[0][0]*m[2][2] - m[0][2]*m[2][0]) * inv,
			(m[0][2]*m[1][0] - m[0][0]*m[1][2]) * inv,
		},
		{
			(m[1][0]*m[2][1] - m[1][1]*m[2][0]) * inv,
			(m[0][1]*m[2][0] - m[0][0]*m[2][1]) * inv,
			(m[0][0]*m[1][1] - m[0][1]*m[1][0]) * inv,
		},
	}, true
}

// Transform maps mesh-local coordinates to world coordinates
type Transform struct {
	linear      Matrix3
	inverse     Matrix3
	translation Vector3
	invertible  bool
}

// IdentityTransform returns a transform that leaves points unchanged
func IdentityTransform() Transform {
	return NewTransformMatrix(IdentityMatrix3(), Vector3{})
}

// NewTransformMatrix builds a transform from a linear part and a translation
func NewTransformMatrix(linear Matrix3, translation Vector3) Transform {
	inverse, ok := linear.Inverse()
	if !ok {
		inverse = IdentityMatrix3()
	}
	return Transform{
		linear:      linear,
		inverse:     inverse,
		translation: translation,
		invertible:  ok,
	}
}

// NewTransform builds a transform from position, Euler rotation in degrees
// and scale. Rotation is applied around Z, then X, then Y.
func NewTransform(position, eulerDegrees, scale Vector3) Transform {
	rx := eulerDegrees.X * math.Pi / 180
	ry := eulerDegrees.Y * math.Pi / 180
	rz := eulerDegrees.Z * math.Pi / 180

	rotX := Matrix3{
		{1, 0, 0},
		{0, math.Cos(rx), -math.Sin(rx)},
		{0, math.Sin(rx), math.Cos(rx)},
	}
	rotY := Matrix3{
		{math.Cos(ry), 0, math.Sin(ry)},
		{0, 1, 0},
		{-math.Sin(ry), 0, math.Cos(ry)},
	}
	rotZ := Matrix3{
		{math.Cos(rz), -math.Sin(rz), 0},
		{math.Sin(rz), math.Cos(rz), 0},
		{0, 0, 1},
	}
	scaleM := Matrix3{
		{scale.X, 0, 0},
		{0, scale.Y, 0},
		{0, 0, scale.Z},
	}

	linear := rotY.Mul(rotX).Mul(rotZ).Mul(scaleM)
	return NewTransformMatrix(linear, position)
}

// Translation returns a pure translation transform
func Translation(offset Vector3) Transform {
	return NewTransformMatrix(IdentityMatrix3(), offset)
}

// Invertible reports whether the linear part can be inverted
// Inverse operations of a singular transform use the identity instead.
func (t Transform) Invertible() bool {
	return t.invertible
}

// Position returns the translation part of the transform
func (t Transform) Position() Vector3 {
	return t.translation
}

// TransformPoint maps a local point to world space
func (t Transform) TransformPoint(p Vector3) Vector3 {
	return t.linear.MulVector(p).Add(t.translation)
}

// TransformVector maps a local direction to world space, ignoring translation
func (t Transform) TransformVector(v Vector3) Vector3 {
	return t.linear.MulVector(v)
}

// InverseTransformPoint maps a world point to local space
func (t Transform) InverseTransformPoint(p Vector3) Vector3 {
	return t.inverse.MulVector(p.Sub(t.translation))
}

// InverseTransformVector maps a world direction to local space
func (t Transform) InverseTransformVector(v Vector3) Vector3 {
	return t.inverse.MulVector(v)
}

// TransformNormal maps a local surface normal to world space
func (t Transform) TransformNormal(n Vector3) Vector3 {
	inv := t.inverse
	// inverse transpose
	return Vector3{
		X: inv[0][0]*n.X + inv[1][0]*n.Y + inv[2][0]*n.Z,
		Y: inv[0][1]*n.X + inv[1][1]*n.Y + inv[2][1]*n.Z,
		Z: inv[0][2]*n.X + inv[1][2]*n.Y + inv[2][2]*n.Z,
	}.Normalize()
}

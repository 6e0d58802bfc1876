package vecmath

import "math"

// Vector3 is a 3-component real-valued vector. Point3 is the same type
// used where a position, rather than a displacement, is meant.
type Vector3 struct {
	X, Y, Z Real
}

// Point3 is an alias for Vector3 used for positional values.
type Point3 = Vector3

// NewVector3 creates a new Vector3 from its components.
func NewVector3(x, y, z Real) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns the componentwise sum of two vectors.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns the componentwise difference of two vectors.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns the vector scaled by a scalar.
func (v Vector3) Scale(s Real) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// MulVec returns the componentwise product of two vectors.
func (v Vector3) MulVec(other Vector3) Vector3 {
	return Vector3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Dot returns the dot product of two vectors.
func (v Vector3) Dot(other Vector3) Real {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors.
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// LengthSquared returns the squared magnitude of the vector.
func (v Vector3) LengthSquared() Real {
	return v.Dot(v)
}

// Length returns the magnitude of the vector.
func (v Vector3) Length() Real {
	return Real(math.Sqrt(float64(v.LengthSquared())))
}

// Normalize returns a unit vector in the same direction. The zero vector
// normalizes to itself.
func (v Vector3) Normalize() Vector3 {
	length := v.Length()
	if length == 0 {
		return v
	}
	return v.Scale(1 / length)
}

// Reciprocal returns the componentwise reciprocal (1/x) of the vector.
// Components of a zero-valued axis become +/-Inf, which is intentional:
// it is what Ray relies on to treat axis-parallel rays via the slab test.
func (v Vector3) Reciprocal() Vector3 {
	return Vector3{1 / v.X, 1 / v.Y, 1 / v.Z}
}

// Min returns the componentwise minimum of two vectors.
func (v Vector3) Min(other Vector3) Vector3 {
	return Vector3{minReal(v.X, other.X), minReal(v.Y, other.Y), minReal(v.Z, other.Z)}
}

// Max returns the componentwise maximum of two vectors.
func (v Vector3) Max(other Vector3) Vector3 {
	return Vector3{maxReal(v.X, other.X), maxReal(v.Y, other.Y), maxReal(v.Z, other.Z)}
}

// Component returns the value of the given axis (0=X, 1=Y, 2=Z).
func (v Vector3) Component(axis int) Real {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Negate returns the vector pointing in the opposite direction.
func (v Vector3) Negate() Vector3 { return Vector3{-v.X, -v.Y, -v.Z} }

// IsZero reports whether every component of the vector is exactly zero.
func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// AbsReal returns the absolute value of a Real.
func AbsReal(a Real) Real { return absReal(a) }

// MinReal returns the smaller of two Real values.
func MinReal(a, b Real) Real { return minReal(a, b) }

// MaxReal returns the larger of two Real values.
func MaxReal(a, b Real) Real { return maxReal(a, b) }

func minReal(a, b Real) Real {
	if a < b {
		return a
	}
	return b
}

func maxReal(a, b Real) Real {
	if a > b {
		return a
	}
	return b
}

func absReal(a Real) Real {
	if a < 0 {
		return -a
	}
	return a
}

func infPos() Real { return Real(math.Inf(1)) }

func infNeg() Real { return Real(math.Inf(-1)) }

// InfPositive returns positive infinity in the module's chosen precision.
// Shapes use it as the Distance of a missed ray/triangle intersection.
func InfPositive() Real { return infPos() }

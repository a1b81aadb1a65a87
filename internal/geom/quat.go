// internal/geom/quat.go
package geom

import "github.com/chewxy/math32"

// Quat: ориентация в пространстве (единичный кватернион).
type Quat struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
}

var Identity = Quat{W: 1}

// AxisAngle строит поворот на degrees градусов вокруг оси axis.
func AxisAngle(axis Vec3, degrees float32) Quat {
	axis = axis.Normalized()
	sin, cos := math32.Sincos(degrees * Deg2Rad / 2)
	return Quat{X: axis.X * sin, Y: axis.Y * sin, Z: axis.Z * sin, W: cos}
}

// Euler строит поворот из углов в градусах (порядок Z, X, Y).
func Euler(x, y, z float32) Quat {
	return AxisAngle(Up, y).Mul(AxisAngle(Right, x)).Mul(AxisAngle(Forward, z))
}

// LookRotation строит ориентацию, у которой "вперёд" смотрит в forward, а "вверх" близко к up.
// Для нулевого forward возвращает Identity.
func LookRotation(forward, up Vec3) Quat {
	f := forward.Normalized()
	if f == Zero {
		return Identity
	}
	r := up.Cross(f).Normalized()
	if r == Zero {
		// forward параллелен up: берём любую перпендикулярную ось
		r = Forward.Cross(f).Normalized()
		if r == Zero {
			r = Right
		}
	}
	u := f.Cross(r)

	m00, m01, m02 := r.X, u.X, f.X
	m10, m11, m12 := r.Y, u.Y, f.Y
	m20, m21, m22 := r.Z, u.Z, f.Z

	var q Quat
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := math32.Sqrt(trace+1) * 2
		q = Quat{W: 0.25 * s, X: (m21 - m12) / s, Y: (m02 - m20) / s, Z: (m10 - m01) / s}
	case m00 > m11 && m00 > m22:
		s := math32.Sqrt(1+m00-m11-m22) * 2
		q = Quat{W: (m21 - m12) / s, X: 0.25 * s, Y: (m01 + m10) / s, Z: (m02 + m20) / s}
	case m11 > m22:
		s := math32.Sqrt(1+m11-m00-m22) * 2
		q = Quat{W: (m02 - m20) / s, X: (m01 + m10) / s, Y: 0.25 * s, Z: (m12 + m21) / s}
	default:
		s := math32.Sqrt(1+m22-m00-m11) * 2
		q = Quat{W: (m10 - m01) / s, X: (m02 + m20) / s, Y: (m12 + m21) / s, Z: 0.25 * s}
	}
	return q.Normalized()
}

// Mul возвращает композицию поворотов, сначала other, затем q.
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
	}
}

func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

func (q Quat) Normalized() Quat {
	length := math32.Sqrt(q.Dot(q))
	if length < epsilon {
		return Identity
	}
	inv := 1 / length
	return Quat{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// Rotate поворачивает вектор.
func (q Quat) Rotate(vec Vec3) Vec3 {
	axis := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := axis.Cross(vec).Mul(2)
	return vec.AddScaled(t, q.W).Add(axis.Cross(t))
}

// Forward: направление "вперёд" для этой ориентации.
func (q Quat) Forward() Vec3 {
	return q.Rotate(Forward)
}

// Angle возвращает угол между ориентациями в градусах.
func (q Quat) Angle(other Quat) float32 {
	dot := math32.Abs(q.Dot(other))
	if dot > 1 {
		dot = 1
	}
	return 2 * math32.Acos(dot) * Rad2Deg
}

// Slerp: сферическая интерполяция по кратчайшей дуге, t в [0, 1].
func (q Quat) Slerp(other Quat, t float32) Quat {
	if t <= 0 {
		return q
	}
	if t >= 1 {
		return other
	}
	dot := q.Dot(other)
	if dot < 0 {
		other = Quat{X: -other.X, Y: -other.Y, Z: -other.Z, W: -other.W}
		dot = -dot
	}
	if dot > 0.9995 {
		return Quat{
			X: q.X + (other.X-q.X)*t,
			Y: q.Y + (other.Y-q.Y)*t,
			Z: q.Z + (other.Z-q.Z)*t,
			W: q.W + (other.W-q.W)*t,
		}.Normalized()
	}
	theta := math32.Acos(dot)
	sinTheta := math32.Sin(theta)
	a := math32.Sin((1-t)*theta) / sinTheta
	b := math32.Sin(t*theta) / sinTheta
	return Quat{
		X: q.X*a + other.X*b,
		Y: q.Y*a + other.Y*b,
		Z: q.Z*a + other.Z*b,
		W: q.W*a + other.W*b,
	}
}

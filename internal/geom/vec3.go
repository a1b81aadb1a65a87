// internal/geom/vec3.go
package geom

import "github.com/chewxy/math32"

const (
	Deg2Rad = math32.Pi / 180
	Rad2Deg = 180 / math32.Pi

	epsilon = 1e-6
)

// Vec3: вектор в мировых координатах. Y смотрит вверх, Z, "вперёд".
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

var (
	Zero    = Vec3{}
	Up      = Vec3{Y: 1}
	Forward = Vec3{Z: 1}
	Right   = Vec3{X: 1}
)

func (vec Vec3) Add(otherVec Vec3) Vec3 {
	vec.X += otherVec.X
	vec.Y += otherVec.Y
	vec.Z += otherVec.Z
	return vec
}

func (vec Vec3) Sub(otherVec Vec3) Vec3 {
	vec.X -= otherVec.X
	vec.Y -= otherVec.Y
	vec.Z -= otherVec.Z
	return vec
}

func (vec Vec3) Mul(factor float32) Vec3 {
	vec.X *= factor
	vec.Y *= factor
	vec.Z *= factor
	return vec
}

func (vec Vec3) AddScaled(otherVec Vec3, factor float32) Vec3 {
	vec.X += otherVec.X * factor
	vec.Y += otherVec.Y * factor
	vec.Z += otherVec.Z * factor
	return vec
}

func (vec Vec3) Dot(otherVec Vec3) float32 {
	return vec.X*otherVec.X + vec.Y*otherVec.Y + vec.Z*otherVec.Z
}

func (vec Vec3) Cross(otherVec Vec3) Vec3 {
	return Vec3{
		X: vec.Y*otherVec.Z - vec.Z*otherVec.Y,
		Y: vec.Z*otherVec.X - vec.X*otherVec.Z,
		Z: vec.X*otherVec.Y - vec.Y*otherVec.X,
	}
}

func (vec Vec3) LengthSquared() float32 {
	return vec.Dot(vec)
}

func (vec Vec3) Length() float32 {
	return math32.Sqrt(vec.LengthSquared())
}

// Normalized возвращает единичный вектор. Нулевой вектор остаётся нулевым.
func (vec Vec3) Normalized() Vec3 {
	length := vec.Length()
	if length < epsilon {
		return Zero
	}
	return vec.Mul(1 / length)
}

func (vec Vec3) Distance(otherVec Vec3) float32 {
	return vec.Sub(otherVec).Length()
}

// Flat обнуляет вертикальную составляющую.
func (vec Vec3) Flat() Vec3 {
	vec.Y = 0
	return vec
}

// Angle возвращает угол между векторами в градусах, [0, 180].
func (vec Vec3) Angle(otherVec Vec3) float32 {
	denominator := math32.Sqrt(vec.LengthSquared() * otherVec.LengthSquared())
	if denominator < 1e-15 {
		return 0
	}
	cos := vec.Dot(otherVec) / denominator
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math32.Acos(cos) * Rad2Deg
}

// Yaw: угол вокруг Up в градусах, на который надо повернуть Forward, чтобы он смотрел вдоль vec.
func (vec Vec3) Yaw() float32 {
	return math32.Atan2(vec.X, vec.Z) * Rad2Deg
}

func (vec Vec3) Lerp(otherVec Vec3, factor float32) Vec3 {
	return vec.AddScaled(otherVec.Sub(vec), factor)
}

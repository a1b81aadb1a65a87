package geom

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
)

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 0.001
}

func approxVec(a, b Vec3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func TestVec3_Angle(t *testing.T) {
	tests := []struct {
		a, b Vec3
		ang  float32
	}{
		{Forward, Forward, 0},
		{Forward, Right, 90},
		{Forward, Forward.Mul(-1), 180},
		{Forward, Vec3{X: 1, Z: 1}, 45},
		{Zero, Forward, 0},
	}

	for _, test := range tests {
		if got := test.a.Angle(test.b); !approx(got, test.ang) {
			t.Errorf("angle between %v and %v: expected %f, found %f", test.a, test.b, test.ang, got)
		}
	}
}

func TestVec3_Normalized(t *testing.T) {
	if Zero.Normalized() != Zero {
		t.Errorf("zero vector should stay zero")
	}
	n := Vec3{X: 3, Y: 4}.Normalized()
	if !approx(n.Length(), 1) || !approx(n.X, 0.6) {
		t.Errorf("unexpected normalized vector %v", n)
	}
}

func TestLookRotation(t *testing.T) {
	directions := []Vec3{
		Forward,
		Right,
		Forward.Mul(-1),
		{X: 1, Y: 1, Z: 1},
		{X: -2, Y: -0.5, Z: 3},
	}

	for _, dir := range directions {
		q := LookRotation(dir, Up)
		if got := q.Forward(); !approxVec(got, dir.Normalized()) {
			t.Errorf("LookRotation(%v).Forward(): expected %v, found %v", dir, dir.Normalized(), got)
		}
	}

	if LookRotation(Zero, Up) != Identity {
		t.Errorf("zero forward should give identity")
	}
	if got := LookRotation(Up, Up).Forward(); !approxVec(got, Up) {
		t.Errorf("forward parallel to up: found %v", got)
	}
}

func TestQuat_Slerp(t *testing.T) {
	from := Identity
	to := AxisAngle(Up, 90)

	if from.Slerp(to, 0) != from || from.Slerp(to, 1) != to {
		t.Errorf("slerp endpoints should be exact")
	}

	half := from.Slerp(to, 0.5)
	if got := half.Angle(from); !approx(got, 45) {
		t.Errorf("expected 45 degrees at half way, found %f", got)
	}
}

func TestEuler(t *testing.T) {
	q := Euler(0, 90, 0)
	if got := q.Forward(); !approxVec(got, Right) {
		t.Errorf("yaw 90 should face right, found %v", got)
	}
}

func TestYaw(t *testing.T) {
	for _, dir := range []Vec3{Forward, Right, {X: -1, Z: -1}, {X: 3, Z: -4}} {
		if got := Euler(0, dir.Yaw(), 0).Forward(); !approxVec(got, dir.Normalized()) {
			t.Errorf("yaw of %v gives forward %v", dir, got)
		}
	}
}

func BenchmarkQuat_Rotate(b *testing.B) {
	const count = 1024
	quats := make([]Quat, count)
	for i := range quats {
		quats[i] = Euler(rand.Float32()*360, rand.Float32()*360, 0)
	}
	b.ResetTimer()

	var acc Vec3
	for i := 0; i < b.N; i++ {
		acc = acc.Add(quats[i&(count-1)].Forward())
	}
	_ = acc
}

package projection

import (
	"testing"

	"go-turret-defense/internal/config"
	"go-turret-defense/internal/geom"
)

func TestWorldToScreen_RoundTrip(t *testing.T) {
	points := []geom.Vec3{
		{},
		{X: 3, Z: -2},
		{X: -10, Z: 7},
	}
	for _, p := range points {
		x, y := WorldToScreen(p)
		back := ScreenToWorld(int(x), int(y))
		if back.Sub(p).Length() > 1/config.WorldScale {
			t.Errorf("expected %v after round trip, found %v", p, back)
		}
	}
}

func TestLabelOrigin(t *testing.T) {
	x, y := LabelOrigin(geom.Vec3{X: 1, Z: 1}, 40)

	cx, cy := WorldToScreen(geom.Vec3{X: 1, Z: 1})
	if x != int(cx)-20 {
		t.Errorf("expected label centred at %d, found left edge %d", int(cx), x)
	}
	if want := int(cy) - 21; y < want-1 || y > want+1 {
		t.Errorf("expected label about %d, found %d", want, y)
	}
	if y >= int(cy) {
		t.Errorf("label should sit above the turret: %d >= %d", y, int(cy))
	}
}

package picking

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blackjack/internal/engine/gpu/gputest"
	"github.com/Faultbox/blackjack/internal/engine/model"
	"github.com/Faultbox/blackjack/internal/engine/scene"
	"github.com/Faultbox/blackjack/internal/engine/texture"
)

const (
	width  = 800
	height = 600
)

// unitBox returns mesh data spanning [-1,1] on every axis. Only the bounds
// matter for picking.
func unitBox() model.MeshData {
	return model.MeshData{
		Positions: []float32{-1, -1, -1, 1, 1, 1, 1, -1, 1},
		Indices:   []uint32{0, 1, 2},
		AABBMin:   mgl32.Vec3{-1, -1, -1},
		AABBMax:   mgl32.Vec3{1, 1, 1},
	}
}

type placement struct {
	id         string
	z          float32
	selectable bool
}

// newPickScene registers one box model per placement, in order, each with
// a single entity at (0, 0, z).
func newPickScene(t *testing.T, places ...placement) *scene.Scene {
	t.Helper()
	dev := gputest.New()
	cache, err := texture.NewCache(dev, "")
	if err != nil {
		t.Fatal(err)
	}
	s := scene.New(scene.Config{Width: width, Height: height}, cache)
	for _, p := range places {
		mesh, err := model.NewMesh(dev, unitBox())
		if err != nil {
			t.Fatal(err)
		}
		mat := model.NewMaterial()
		mat.AddMesh(mesh)
		if err := s.AddModel(model.New(p.id+"-model", []*model.Material{mat})); err != nil {
			t.Fatal(err)
		}
		e := model.NewEntity(p.id, p.id+"-model", p.selectable)
		e.SetPosition(0, 0, p.z)
		if err := s.AddEntity(e); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func selectedID(s *scene.Scene) string {
	if e := s.Selected(); e != nil {
		return e.ID()
	}
	return ""
}

func TestSelectEntity(t *testing.T) {
	tests := []struct {
		name   string
		places []placement
		x, y   float32
		want   string
	}{
		{
			name:   "centre hits box ahead",
			places: []placement{{"cube", -5, true}},
			x:      width / 2, y: height / 2,
			want: "cube",
		},
		{
			name:   "far outside viewport misses",
			places: []placement{{"cube", -5, true}},
			x:      100 * width, y: -100 * height,
			want: "",
		},
		{
			name:   "nearer wins when registered last",
			places: []placement{{"far", -10, true}, {"near", -4, true}},
			x:      width / 2, y: height / 2,
			want: "near",
		},
		{
			name:   "nearer wins when registered first",
			places: []placement{{"near", -4, true}, {"far", -10, true}},
			x:      width / 2, y: height / 2,
			want: "near",
		},
		{
			name:   "exact tie keeps first visited",
			places: []placement{{"first", -5, true}, {"second", -5, true}},
			x:      width / 2, y: height / 2,
			want: "first",
		},
		{
			name:   "non-selectable entity is skipped",
			places: []placement{{"table", -3, false}, {"chair", -6, true}},
			x:      width / 2, y: height / 2,
			want: "chair",
		},
		{
			name:   "only non-selectable",
			places: []placement{{"table", -3, false}},
			x:      width / 2, y: height / 2,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newPickScene(t, tt.places...)
			got := SelectEntity(s, tt.x, tt.y, width, height)
			gotID := ""
			if got != nil {
				gotID = got.ID()
			}
			if gotID != tt.want || selectedID(s) != tt.want {
				t.Errorf("selected %q (scene %q), want %q", gotID, selectedID(s), tt.want)
			}
		})
	}
}

func TestSelectEntityClearsOnMiss(t *testing.T) {
	s := newPickScene(t, placement{"cube", -5, true})
	if SelectEntity(s, width/2, height/2, width, height) == nil {
		t.Fatal("expected a hit")
	}
	if SelectEntity(s, 0, 0, width, height) != nil {
		t.Fatal("corner pick should miss")
	}
	if s.Selected() != nil {
		t.Error("selection should be cleared after a miss")
	}
}

func TestPickUsesScaleAndSkipsRotation(t *testing.T) {
	s := newPickScene(t, placement{"cube", -5, true})
	e, _ := s.Entity("cube")
	e.SetPosition(3, 0, -5)
	e.SetRotation(mgl32.Vec3{0, 1, 0}, mgl32.DegToRad(45))

	ray := Ray{Origin: mgl32.Vec3{0, 0, 0}, Direction: mgl32.Vec3{0, 0, -1}}
	if _, ok := Pick(s, ray); ok {
		t.Fatal("unscaled box at x=3 should miss")
	}

	e.SetScale(4)
	hit, ok := Pick(s, ray)
	if !ok || hit.Entity != e {
		t.Fatal("scaled box should be hit")
	}
	if !mgl32.FloatEqual(hit.Distance, 1) {
		t.Errorf("distance = %v, want 1", hit.Distance)
	}
}

func TestPickMovedCamera(t *testing.T) {
	s := newPickScene(t, placement{"left", -5, true}, placement{"right", -5, true})
	right, _ := s.Entity("right")
	right.SetPosition(6, 0, -5)

	s.Camera().SetPosition(6, 0, 0)
	if got := SelectEntity(s, width/2, height/2, width, height); got != right {
		t.Errorf("selected %v, want right", got)
	}
}

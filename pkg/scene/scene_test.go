package scene

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// nullLogger discards progress output
type nullLogger struct{}

func (nullLogger) Printf(string, ...interface{}) {}

func TestNewDefaultScene(t *testing.T) {
	s := NewDefaultScene()

	if s.World.Len() != 4 {
		t.Fatalf("Expected 4 spheres, got %d", s.World.Len())
	}
	if s.CameraConfig.ImageWidth != 400 || s.CameraConfig.SamplesPerPixel != 100 || s.CameraConfig.MaxDepth != 50 {
		t.Errorf("Unexpected camera defaults: %+v", s.CameraConfig)
	}

	// Straight down the view axis: the blue diffuse sphere's front face
	hit, ok := s.World.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), core.NewInterval(0.001, 1e9))
	if !ok {
		t.Fatal("Expected the central ray to hit")
	}
	if lambertian, isLambertian := hit.Material.(material.Lambertian); !isLambertian || lambertian.Albedo != core.NewVec3(0.1, 0.2, 0.5) {
		t.Errorf("Expected blue Lambertian, got %#v", hit.Material)
	}

	// Toward the left sphere: the water bubble
	hit, ok = s.World.Hit(core.NewRay(core.Vec3{}, core.NewVec3(-1, 0, -1)), core.NewInterval(0.001, 1e9))
	if !ok {
		t.Fatal("Expected the left ray to hit")
	}
	if d, isDielectric := hit.Material.(material.Dielectric); !isDielectric || d.RefractionIndex != 1.0/1.33 {
		t.Errorf("Expected bubble dielectric, got %#v", hit.Material)
	}
}

func TestNewDefaultScene_Overrides(t *testing.T) {
	s := NewDefaultScene(renderer.CameraConfig{ImageWidth: 64, SamplesPerPixel: 3})

	if s.CameraConfig.ImageWidth != 64 || s.CameraConfig.SamplesPerPixel != 3 {
		t.Errorf("Overrides not applied: %+v", s.CameraConfig)
	}
	if s.CameraConfig.MaxDepth != 50 {
		t.Errorf("Expected untouched depth 50, got %d", s.CameraConfig.MaxDepth)
	}
}

func TestNewSphereGridScene_Deterministic(t *testing.T) {
	a := NewSphereGridScene(11)
	b := NewSphereGridScene(11)
	c := NewSphereGridScene(12)

	if a.World.Len() != b.World.Len() {
		t.Fatalf("Same seed produced %d and %d objects", a.World.Len(), b.World.Len())
	}
	for i, obj := range a.World.Objects() {
		sa, sb := obj.(*geometry.Sphere), b.World.Objects()[i].(*geometry.Sphere)
		if sa.Center != sb.Center || sa.Material != sb.Material {
			t.Fatalf("Object %d differs between identical seeds", i)
		}
	}

	differs := a.World.Len() != c.World.Len()
	for i := 1; !differs && i < a.World.Len(); i++ {
		differs = a.World.Objects()[i].(*geometry.Sphere).Center != c.World.Objects()[i].(*geometry.Sphere).Center
	}
	if !differs {
		t.Error("Different seeds should produce different layouts")
	}
}

func TestNewSphereGridScene_Layout(t *testing.T) {
	s := NewSphereGridScene(1)

	// Ground + at most 22x22 small spheres + three feature spheres
	if s.World.Len() < 4 || s.World.Len() > 1+22*22+3 {
		t.Fatalf("Unexpected object count %d", s.World.Len())
	}

	metalFeature := core.NewVec3(4, 0.2, 0)
	objects := s.World.Objects()
	for _, obj := range objects[1 : len(objects)-3] {
		sphere := obj.(*geometry.Sphere)
		if sphere.Radius != 0.2 || sphere.Center.Y != 0.2 {
			t.Errorf("Small sphere %v has radius %f", sphere.Center, sphere.Radius)
		}
		if sphere.Center.Subtract(metalFeature).Length() <= 0.9 {
			t.Errorf("Small sphere %v overlaps the metal feature sphere", sphere.Center)
		}
	}

	config := s.CameraConfig
	if config.LookFrom != core.NewVec3(13, 2, 3) || config.VFov != 20 || config.DefocusAngle != 0.6 || config.FocusDist != 10 {
		t.Errorf("Unexpected camera: %+v", config)
	}
}

func TestScene_NewRaytracer(t *testing.T) {
	s := NewGroundScene(renderer.CameraConfig{ImageWidth: 16, SamplesPerPixel: 1, MaxDepth: 3})

	rt, err := s.NewRaytracer(nullLogger{})
	if err != nil {
		t.Fatal(err)
	}
	img, stats, err := rt.Render()
	if err != nil {
		t.Fatal(err)
	}
	if img.Width != 16 || img.Height != 9 || stats.TotalPixels != 16*9 {
		t.Errorf("Unexpected render %dx%d, stats %+v", img.Width, img.Height, stats)
	}
}

func TestScene_NewRaytracer_InvalidCamera(t *testing.T) {
	s := NewDefaultScene()
	s.CameraConfig.SamplesPerPixel = 0

	if _, err := s.NewRaytracer(nullLogger{}); err == nil {
		t.Error("Expected invalid camera error")
	}
}

package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDielectric_IndexOneDoesNotBend(t *testing.T) {
	glass := NewDielectric(1.0)
	sampler := core.NewSeededSampler(42)

	directions := []core.Vec3{
		core.NewVec3(0, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0.3, -0.2, 0.9),
		core.NewVec3(-5, -0.1, 2),
	}

	for _, frontFace := range []bool{true, false} {
		for _, dir := range directions {
			rayIn := core.NewRay(core.NewVec3(0, 1, 0), dir)
			hit := HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: frontFace}

			scatter, ok := glass.Scatter(rayIn, hit, sampler)
			if !ok {
				t.Fatal("Dielectric should never absorb")
			}
			expected := dir.Normalize()
			if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-9 {
				t.Errorf("frontFace=%t: expected %v, got %v", frontFace, expected, scatter.Scattered.Direction)
			}
		}
	}
}

func TestDielectric_AttenuationIsWhite(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewSeededSampler(1)
	hit := HitRecord{Normal: core.NewVec3(0, 0, 1), FrontFace: true}

	scatter, ok := glass.Scatter(core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0.2, 0, -1)), hit, sampler)
	if !ok {
		t.Fatal("Dielectric should never absorb")
	}
	if scatter.Attenuation != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected attenuation (1, 1, 1), got %v", scatter.Attenuation)
	}
}

func TestDielectric_RefractionEnteringGlass(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewSeededSampler(1)

	normal := core.NewVec3(0, 1, 0)
	dir := core.NewVec3(1, -1, 0).Normalize()
	hit := HitRecord{Normal: normal, FrontFace: true}

	scatter, _ := glass.Scatter(core.NewRay(core.NewVec3(-1, 1, 0), dir), hit, sampler)
	out := scatter.Scattered.Direction

	if out.Dot(normal) >= 0 {
		t.Fatalf("Refracted ray should continue into the surface, got %v", out)
	}

	sinIn := math.Sqrt(1 - math.Pow(dir.Dot(normal), 2))
	sinOut := math.Sqrt(1 - math.Pow(out.Normalize().Dot(normal), 2))
	if math.Abs(sinOut-sinIn/1.5) > 1e-9 {
		t.Errorf("Snell's law violated: sin(out)=%f, expected %f", sinOut, sinIn/1.5)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewSeededSampler(1)

	// Leaving glass at 60° from the normal: 1.5*sin(60°) > 1
	normal := core.NewVec3(0, -1, 0) // against the ray, which travels upward inside the glass
	dir := core.NewVec3(math.Sin(math.Pi/3), math.Cos(math.Pi/3), 0)
	hit := HitRecord{Normal: normal, FrontFace: false}

	scatter, ok := glass.Scatter(core.NewRay(core.Vec3{}, dir), hit, sampler)
	if !ok {
		t.Fatal("Dielectric should never absorb")
	}

	expected := core.Reflect(dir, normal)
	if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected reflection %v, got %v", expected, scatter.Scattered.Direction)
	}
	if scatter.Scattered.Direction.Y >= 0 {
		t.Errorf("Reflected ray should stay inside the glass, got %v", scatter.Scattered.Direction)
	}
}

func TestAbsorber(t *testing.T) {
	var m Material = Absorber{}
	if _, ok := m.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), HitRecord{}, core.NewSeededSampler(1)); ok {
		t.Error("Absorber should never scatter")
	}
}

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 0, 1)

	var front HitRecord
	front.SetFaceNormal(core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1)), outward)
	if !front.FrontFace || front.Normal != outward {
		t.Errorf("Expected front face with outward normal, got %t %v", front.FrontFace, front.Normal)
	}

	var back HitRecord
	back.SetFaceNormal(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), outward)
	if back.FrontFace || back.Normal != outward.Negate() {
		t.Errorf("Expected back face with flipped normal, got %t %v", back.FrontFace, back.Normal)
	}
}

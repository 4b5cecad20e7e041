package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
		{"Clamp large positive", 10.0, 1.0},
		{"Clamp large negative", -10.0, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewSeededSampler(42)

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	// Incident (0, -1, -1) reflects to (0, -1, 1), normalized
	expected := core.NewVec3(0, -1, 1).Normalize()
	actual := scatter.Scattered.Direction
	if actual.Subtract(expected).Length() > 1e-10 {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, actual)
	}

	// Angle of reflection equals angle of incidence
	incoming := rayIn.Direction.Normalize()
	if math.Abs(actual.Dot(hit.Normal)-incoming.Negate().Dot(hit.Normal)) > 1e-10 {
		t.Errorf("Expected dot(reflected, n) = dot(-incoming, n), got %f vs %f",
			actual.Dot(hit.Normal), incoming.Negate().Dot(hit.Normal))
	}

	if scatter.Attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
	}
	if scatter.Scattered.Origin != hit.Point {
		t.Errorf("Expected scattered ray to start at hit point, got %v", scatter.Scattered.Origin)
	}
}

func TestMetal_FuzzStaysNearMirror(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	sampler := core.NewSeededSampler(7)

	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	mirror := core.NewVec3(0, 1, 0)
	for i := 0; i < 1000; i++ {
		scatter, ok := metal.Scatter(rayIn, hit, sampler)
		if !ok {
			t.Fatal("Straight-on reflection with fuzz 0.3 can never point below the surface")
		}
		if d := scatter.Scattered.Direction.Subtract(mirror).Length(); d > 0.3+1e-12 {
			t.Fatalf("Fuzzed direction strays %f from the mirror direction", d)
		}
	}
}

func TestMetal_GrazingFuzzIsSometimesAbsorbed(t *testing.T) {
	metal := NewMetal(core.NewVec3(1, 1, 1), 1.0)
	sampler := core.NewSeededSampler(3)

	// Nearly tangent incoming ray: heavy fuzz pushes many reflections under the surface
	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	absorbed := 0
	for i := 0; i < 1000; i++ {
		scatter, ok := metal.Scatter(rayIn, hit, sampler)
		if ok {
			if scatter.Scattered.Direction.Dot(hit.Normal) <= 0 {
				t.Fatal("Accepted scatter must leave the surface")
			}
		} else {
			absorbed++
		}
	}
	if absorbed == 0 {
		t.Error("Expected some grazing fuzzed rays to be absorbed")
	}
}

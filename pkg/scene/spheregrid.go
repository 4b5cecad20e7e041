package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Layout of the small sphere field
const (
	gridMin         = -11
	gridMax         = 11
	smallRadius     = 0.2
	featureRadius   = 1.0
	diffuseChance   = 0.8
	metalChance     = 0.95 // Cumulative: the rest is glass
	glassIndex      = 1.5
	clearanceRadius = 0.9 // Keeps small spheres off the metal feature sphere
)

// NewSphereGridScene creates a field of randomly placed small spheres around three large
// feature spheres. The same seed always produces the same layout.
func NewSphereGridScene(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	// Default camera configuration for the sphere field
	defaultCameraConfig := renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      1200,
		SamplesPerPixel: 500,
		MaxDepth:        50,
		VFov:            20,
		LookFrom:        core.NewVec3(13, 2, 3),
		LookAt:          core.NewVec3(0, 0, 0),
		VUp:             core.NewVec3(0, 1, 0),
		DefocusAngle:    0.6, // Slight blur away from the focus plane
		FocusDist:       10,
	}

	s := &Scene{
		Name:         "spheregrid",
		CameraConfig: applyOverrides(defaultCameraConfig, cameraOverrides),
		World:        geometry.NewHittableList(),
	}

	// Ground is a huge sphere so it reads as a plane from the camera
	s.World.Add(geometry.NewSphere(
		core.NewVec3(0, -1000, 0),
		1000,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)),
	))

	random := rand.New(rand.NewSource(seed))
	between := func(lo, hi float64) float64 { return lo + (hi-lo)*random.Float64() }
	randomColor := func(lo, hi float64) core.Vec3 {
		return core.NewVec3(between(lo, hi), between(lo, hi), between(lo, hi))
	}

	metalFeature := core.NewVec3(4, smallRadius, 0)
	for a := gridMin; a < gridMax; a++ {
		for b := gridMin; b < gridMax; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), smallRadius, float64(b)+0.9*random.Float64())

			if center.Subtract(metalFeature).Length() <= clearanceRadius {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < diffuseChance:
				mat = material.NewLambertian(randomColor(0, 1).MultiplyVec(randomColor(0, 1)))
			case chooseMat < metalChance:
				mat = material.NewMetal(randomColor(0.5, 1), between(0, 0.5))
			default:
				mat = material.NewDielectric(glassIndex)
			}
			s.World.Add(geometry.NewSphere(center, smallRadius, mat))
		}
	}

	s.World.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), featureRadius, material.NewDielectric(glassIndex)))
	s.World.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), featureRadius, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	s.World.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), featureRadius, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	return s
}

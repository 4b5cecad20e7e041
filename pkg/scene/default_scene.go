package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewDefaultScene creates the four-sphere scene: a yellow ground, a diffuse blue sphere
// flanked by an air bubble in water on the left and fuzzy gold on the right
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	// Default camera configuration
	defaultCameraConfig := renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		VUp:             core.NewVec3(0, 1, 0),
		FocusDist:       1,
	}

	s := &Scene{
		Name:         "default",
		CameraConfig: applyOverrides(defaultCameraConfig, cameraOverrides),
		World:        geometry.NewHittableList(),
	}

	// Create materials
	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	bubble := material.NewDielectric(1.0 / 1.33) // Air inside water
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.2)

	s.World.Add(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground))
	s.World.Add(geometry.NewSphere(core.NewVec3(0, 0, -1.2), 0.5, center))
	s.World.Add(geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, bubble))
	s.World.Add(geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gold))

	return s
}

// NewGroundScene creates a single large diffuse sphere standing in for a ground plane
func NewGroundScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := &Scene{
		Name:         "ground",
		CameraConfig: applyOverrides(renderer.DefaultCameraConfig(), cameraOverrides),
		World:        geometry.NewHittableList(),
	}

	s.World.Add(geometry.NewSphere(
		core.NewVec3(0, -100.5, -1),
		100,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)),
	))

	return s
}

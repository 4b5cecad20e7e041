package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	CameraConfig renderer.CameraConfig
	World        *geometry.HittableList // Objects in the scene
}

// applyOverrides merges the first override, if any, onto the scene's camera defaults
func applyOverrides(defaults renderer.CameraConfig, overrides []renderer.CameraConfig) renderer.CameraConfig {
	if len(overrides) > 0 {
		return renderer.MergeCameraConfig(defaults, overrides[0])
	}
	return defaults
}

// NewCamera builds the camera described by the scene's configuration
func (s *Scene) NewCamera() (*renderer.Camera, error) {
	return renderer.NewCamera(s.CameraConfig)
}

// NewRaytracer builds a camera and wires it with the scene's world.
// A nil logger logs to stderr.
func (s *Scene) NewRaytracer(logger core.Logger) (*renderer.Raytracer, error) {
	camera, err := s.NewCamera()
	if err != nil {
		return nil, err
	}
	return renderer.NewRaytracer(s.World, camera, logger), nil
}

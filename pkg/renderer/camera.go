package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrInvalidCamera is returned when a camera configuration cannot produce an image
var ErrInvalidCamera = errors.New("invalid camera configuration")

// CameraConfig contains all parameters needed to set up a camera and sample an image
type CameraConfig struct {
	AspectRatio     float64   // Ratio of image width over height
	ImageWidth      int       // Rendered image width in pixels
	SamplesPerPixel int       // Number of random samples for each pixel
	MaxDepth        int       // Maximum number of ray bounces
	VFov            float64   // Vertical field of view in degrees
	LookFrom        core.Vec3 // Point camera is looking from
	LookAt          core.Vec3 // Point camera is looking at
	VUp             core.Vec3 // Camera-relative "up" direction
	DefocusAngle    float64   // Variation angle of rays through each pixel, in degrees
	FocusDist       float64   // Distance from LookFrom to the plane of perfect focus
}

// DefaultCameraConfig returns a 16:9 pinhole camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		VUp:             core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDist:       1,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied on top.
// Zero values in override mean "keep the base value".
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.ImageWidth != 0 {
		result.ImageWidth = override.ImageWidth
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.LookFrom != (core.Vec3{}) {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.VUp != (core.Vec3{}) {
		result.VUp = override.VUp
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDist != 0 {
		result.FocusDist = override.FocusDist
	}
	return result
}

// Validate reports configurations that would otherwise produce NaNs or divide by zero
func (c CameraConfig) Validate() error {
	switch {
	case !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0):
		return fmt.Errorf("%w: aspect ratio must be positive, got %g", ErrInvalidCamera, c.AspectRatio)
	case c.ImageWidth <= 0:
		return fmt.Errorf("%w: image width must be positive, got %d", ErrInvalidCamera, c.ImageWidth)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidCamera, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidCamera, c.MaxDepth)
	case !(c.VFov > 0 && c.VFov < 180):
		return fmt.Errorf("%w: vertical field of view must be in (0, 180), got %g", ErrInvalidCamera, c.VFov)
	case !(c.FocusDist > 0) || math.IsInf(c.FocusDist, 0):
		return fmt.Errorf("%w: focus distance must be positive, got %g", ErrInvalidCamera, c.FocusDist)
	case c.LookFrom == c.LookAt:
		return fmt.Errorf("%w: look-from and look-at are both %v", ErrInvalidCamera, c.LookFrom)
	}

	w := c.LookFrom.Subtract(c.LookAt)
	if c.VUp.Cross(w).NearZero() {
		return fmt.Errorf("%w: up vector %v is parallel to the view direction", ErrInvalidCamera, c.VUp)
	}
	return nil
}

// Camera generates primary rays. All derived geometry is computed once in NewCamera.
type Camera struct {
	config CameraConfig

	imageHeight  int
	center       core.Vec3 // Camera center
	pixel00Loc   core.Vec3 // Location of pixel 0, 0
	pixelDeltaU  core.Vec3 // Offset to pixel to the right
	pixelDeltaV  core.Vec3 // Offset to pixel below
	u, v, w      core.Vec3 // Camera frame basis vectors
	defocusDiskU core.Vec3 // Defocus disk horizontal radius
	defocusDiskV core.Vec3 // Defocus disk vertical radius
}

// NewCamera validates the configuration and derives the viewport geometry
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	imageHeight := max(1, int(float64(config.ImageWidth)/config.AspectRatio))

	center := config.LookFrom

	// Determine viewport dimensions
	theta := degreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDist
	viewportWidth := viewportHeight * (float64(config.ImageWidth) / float64(imageHeight))

	// Calculate the u,v,w unit basis vectors for the camera coordinate frame
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.VUp.Cross(w).Normalize()
	v := w.Cross(u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	pixelDeltaU := viewportU.Divide(float64(config.ImageWidth))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	viewportUpperLeft := center.
		Subtract(w.Multiply(config.FocusDist)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00Loc := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	camera := &Camera{
		config:      config,
		imageHeight: imageHeight,
		center:      center,
		pixel00Loc:  pixel00Loc,
		pixelDeltaU: pixelDeltaU,
		pixelDeltaV: pixelDeltaV,
		u:           u,
		v:           v,
		w:           w,
	}

	if config.DefocusAngle > 0 {
		defocusRadius := config.FocusDist * math.Tan(degreesToRadians(config.DefocusAngle/2))
		camera.defocusDiskU = u.Multiply(defocusRadius)
		camera.defocusDiskV = v.Multiply(defocusRadius)
	}

	return camera, nil
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// ImageWidth returns the image width in pixels
func (c *Camera) ImageWidth() int {
	return c.config.ImageWidth
}

// ImageHeight returns the image height in pixels, derived from the width and aspect ratio
func (c *Camera) ImageHeight() int {
	return c.imageHeight
}

// GetRay returns a camera ray through a random point in pixel (i, j).
// The ray starts on the defocus disk when depth of field is enabled.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := core.SampleSquare(sampler)
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(origin, pixelSample.Subtract(origin))
}

// defocusDiskSample returns a random point on the camera defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

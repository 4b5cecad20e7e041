package renderer

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// DefaultSeed seeds the per-row generators when no seed is configured
const DefaultSeed int64 = 42

// shadowAcneBias is the smallest accepted hit distance; it keeps scattered rays from
// re-hitting the surface they start on due to floating-point error
const shadowAcneBias = 0.001

var (
	skyColor     = core.NewVec3(0.5, 0.7, 1.0)
	horizonColor = core.NewVec3(1.0, 1.0, 1.0)
)

// Raytracer handles the rendering process
type Raytracer struct {
	world      geometry.Hittable
	camera     *Camera
	logger     core.Logger
	numWorkers int
	seed       int64
	newSampler func(row int) core.Sampler
}

// NewRaytracer creates a raytracer for a prebuilt world. A nil logger logs to stderr.
func NewRaytracer(world geometry.Hittable, camera *Camera, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	rt := &Raytracer{
		world:  world,
		camera: camera,
		logger: logger,
		seed:   DefaultSeed,
	}
	rt.newSampler = rt.seededSampler
	return rt
}

// SetNumWorkers sets the number of parallel workers (0 = use CPU count)
func (rt *Raytracer) SetNumWorkers(n int) {
	rt.numWorkers = n
}

// SetSeed changes the base seed of the per-row generators
func (rt *Raytracer) SetSeed(seed int64) {
	rt.seed = seed
}

// SetSamplerFactory overrides how the sampler for each image row is created.
// The factory is called concurrently from workers and must return independent samplers.
func (rt *Raytracer) SetSamplerFactory(factory func(row int) core.Sampler) {
	if factory == nil {
		factory = rt.seededSampler
	}
	rt.newSampler = factory
}

// seededSampler gives every row its own generator so the image does not depend on
// how rows are distributed across workers
func (rt *Raytracer) seededSampler(row int) core.Sampler {
	return core.NewSeededSampler(rt.seed + int64(row))
}

// RayColor estimates the radiance arriving along r with at most depth bounces.
// The path is followed iteratively, carrying the product of attenuations.
func (rt *Raytracer) RayColor(r core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)
	rayT := core.NewInterval(shadowAcneBias, math.Inf(1))

	for ; depth > 0; depth-- {
		hit, isHit := rt.world.Hit(r, rayT)
		if !isHit {
			return throughput.MultiplyVec(backgroundGradient(r))
		}

		scatter, didScatter := hit.Material.Scatter(r, hit, sampler)
		if !didScatter {
			return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		r = scatter.Scattered
	}

	// Bounce budget exhausted, no more light is gathered
	return core.Vec3{X: 0, Y: 0, Z: 0}
}

// backgroundGradient blends white at the horizon into sky blue straight up
func backgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	return horizonColor.Multiply(1.0 - a).Add(skyColor.Multiply(a))
}

// samplePixel averages SamplesPerPixel radiance estimates for pixel (i, j)
func (rt *Raytracer) samplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	config := rt.camera.Config()

	var ps PixelStats
	for s := 0; s < config.SamplesPerPixel; s++ {
		ray := rt.camera.GetRay(i, j, sampler)
		ps.AddSample(rt.RayColor(ray, config.MaxDepth, sampler))
	}
	return ps.GetColor()
}

// renderRows renders every pixel of rows into img
func (rt *Raytracer) renderRows(rows RowRange, img *Image) RenderStats {
	width := rt.camera.ImageWidth()
	spp := rt.camera.Config().SamplesPerPixel

	for j := rows.Start; j < rows.End; j++ {
		sampler := rt.newSampler(j)
		row := img.Row(j)
		for i := range row {
			row[i] = ColorToRGB(rt.samplePixel(i, j, sampler))
		}
	}

	return RenderStats{
		TotalPixels:  rows.Len() * width,
		TotalSamples: rows.Len() * width * spp,
	}
}

// Render renders the whole image in parallel and blocks until every worker is done.
// A panic in any worker is returned as an error and no image is produced.
func (rt *Raytracer) Render() (*Image, RenderStats, error) {
	if rt.world == nil {
		return nil, RenderStats{}, errors.New("render: world is nil")
	}
	if rt.camera == nil {
		return nil, RenderStats{}, errors.New("render: camera is nil")
	}

	startTime := time.Now()
	width, height := rt.camera.ImageWidth(), rt.camera.ImageHeight()
	img := NewImage(width, height)

	chunks := SplitRows(height, rt.numWorkers)
	pool := NewWorkerPool(rt, len(chunks))

	rt.logger.Printf("Rendering %dx%d, %d samples per pixel, max depth %d (using %d workers)...\n",
		width, height, rt.camera.Config().SamplesPerPixel, rt.camera.Config().MaxDepth, pool.GetNumWorkers())

	pool.Start()
	for taskID, rows := range chunks {
		pool.SubmitTask(RowTask{Rows: rows, TaskID: taskID, Image: img})
	}

	stats := RenderStats{
		SamplesPerPixel: rt.camera.Config().SamplesPerPixel,
		Workers:         pool.GetNumWorkers(),
	}
	var errs []error
	rowsLeft := height
	for remaining := len(chunks); remaining > 0; remaining-- {
		result, ok := pool.GetResult()
		if !ok {
			errs = append(errs, errors.New("worker pool closed unexpectedly"))
			break
		}
		if result.Error != nil {
			errs = append(errs, result.Error)
			continue
		}
		stats.merge(result.Stats)

		rowsLeft -= chunks[result.TaskID].Len()
		rt.logger.Printf("Scanlines remaining: %d\n", rowsLeft)
	}
	pool.Stop()

	if len(errs) > 0 {
		return nil, RenderStats{}, fmt.Errorf("render: %w", errors.Join(errs...))
	}

	stats.Duration = time.Since(startTime)
	rt.logger.Printf("Done in %v.\n", stats.Duration)
	return img, stats, nil
}

// RenderPPM renders the image and streams it to w in PPM (P3) format
func (rt *Raytracer) RenderPPM(w io.Writer) (RenderStats, error) {
	img, stats, err := rt.Render()
	if err != nil {
		return stats, err
	}
	if err := img.WritePPM(w); err != nil {
		return stats, err
	}
	return stats, nil
}

package core

import (
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler backed by a fresh generator with the given seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomInRange maps a uniform sample into [minVal, maxVal)
func RandomInRange(sampler Sampler, minVal, maxVal float64) float64 {
	return minVal + (maxVal-minVal)*sampler.Get1D()
}

// RandomVec returns a vector whose components are uniform in [minVal, maxVal)
func RandomVec(sampler Sampler, minVal, maxVal float64) Vec3 {
	u := sampler.Get3D()
	return Vec3{
		X: minVal + (maxVal-minVal)*u.X,
		Y: minVal + (maxVal-minVal)*u.Y,
		Z: minVal + (maxVal-minVal)*u.Z,
	}
}

// RandomInUnitSphere returns a point strictly inside the unit sphere by rejection sampling.
// Points too close to the origin are rejected as well so the result can be normalized.
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := RandomVec(sampler, -1, 1)
		if lensq := p.LengthSquared(); 1e-160 < lensq && lensq < 1 {
			return p
		}
	}
}

// RandomUnitVector returns a uniformly distributed direction on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	return RandomInUnitSphere(sampler).Normalize()
}

// RandomOnHemisphere returns a unit direction in the hemisphere around normal
func RandomOnHemisphere(normal Vec3, sampler Sampler) Vec3 {
	onUnitSphere := RandomUnitVector(sampler)
	if onUnitSphere.Dot(normal) > 0 {
		return onUnitSphere
	}
	return onUnitSphere.Negate()
}

// RandomInUnitDisk generates a random point in a unit disk (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		// Generate random point in [-1,1] x [-1,1] square
		s := sampler.Get2D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 0)
		// Accept if inside unit disk
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// SampleSquare returns a random offset in the [-0.5, 0.5]² pixel square
func SampleSquare(sampler Sampler) Vec2 {
	s := sampler.Get2D()
	return NewVec2(s.X-0.5, s.Y-0.5)
}

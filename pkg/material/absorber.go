package material

import "github.com/df07/go-pathtracer/pkg/core"

// Absorber swallows every ray that reaches it
type Absorber struct{}

// Scatter always reports absorption
func (Absorber) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

func (Absorber) material() {}

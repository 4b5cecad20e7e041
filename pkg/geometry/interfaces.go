package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hittable is anything a ray can intersect.
// Hit only reports intersections whose ray parameter lies inside rayT.
type Hittable interface {
	Hit(ray core.Ray, rayT core.Interval) (material.HitRecord, bool)
}

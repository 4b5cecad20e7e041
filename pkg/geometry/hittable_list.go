package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// HittableList is an ordered collection of scene objects.
// It is filled during scene construction and only read while rendering, so it can be
// shared between render workers without locking.
type HittableList struct {
	objects []Hittable
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	l := &HittableList{}
	for _, o := range objects {
		l.Add(o)
	}
	return l
}

// Add appends an object to the list
func (l *HittableList) Add(object Hittable) {
	l.objects = append(l.objects, object)
}

// Clear removes all objects
func (l *HittableList) Clear() {
	l.objects = nil
}

// Len returns the number of objects in the list
func (l *HittableList) Len() int {
	return len(l.objects)
}

// Objects returns the objects in insertion order. The slice must not be modified.
func (l *HittableList) Objects() []Hittable {
	return l.objects
}

// Hit returns the nearest intersection along the ray across all objects
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval) (material.HitRecord, bool) {
	var closest material.HitRecord
	hitAnything := false
	closestSoFar := rayT.Max

	for _, object := range l.objects {
		if rec, ok := object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar)); ok {
			hitAnything = true
			closestSoFar = rec.T
			closest = rec
		}
	}

	return closest, hitAnything
}

package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string // Identifier used on the command line
	DisplayName string
	Description string
	Seeded      bool // Whether the layout depends on the seed
	build       func(seed int64) *Scene
}

// Registry maps scene names to their constructors
type Registry struct {
	scenes map[string]SceneInfo
}

// NewRegistry creates a registry holding every built-in scene
func NewRegistry() *Registry {
	r := &Registry{scenes: make(map[string]SceneInfo)}

	r.register("default", "Four spheres: diffuse, glass bubble and fuzzy gold on a yellow ground", false,
		func(int64) *Scene { return NewDefaultScene() })
	r.register("spheregrid", "Random field of small spheres around three large feature spheres", true,
		func(seed int64) *Scene { return NewSphereGridScene(seed) })
	r.register("ground", "A single diffuse ground sphere under the sky", false,
		func(int64) *Scene { return NewGroundScene() })

	return r
}

func (r *Registry) register(name, description string, seeded bool, build func(seed int64) *Scene) {
	r.scenes[name] = SceneInfo{
		Name:        name,
		DisplayName: titleCase(name),
		Description: description,
		Seeded:      seeded,
		build:       build,
	}
}

// Names returns the registered scene names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scenes returns information about every registered scene, sorted by name
func (r *Registry) Scenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(r.scenes))
	for _, name := range r.Names() {
		infos = append(infos, r.scenes[name])
	}
	return infos
}

// Lookup builds the named scene. Seed only affects scenes with random layouts.
func (r *Registry) Lookup(name string, seed int64) (*Scene, error) {
	info, ok := r.scenes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return info.build(seed), nil
}

// titleCase converts an identifier to title case
// e.g., "sphere-grid" -> "Sphere Grid"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}

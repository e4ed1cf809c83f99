package mesh

import (
	"fmt"
	"sort"
)

// Registry maps mesh IDs to meshes
type Registry struct {
	meshes map[string]*Mesh
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{meshes: make(map[string]*Mesh)}
}

// Add registers a mesh; the ID must not be taken yet
func (r *Registry) Add(m *Mesh) error {
	if m == nil {
		return fmt.Errorf("cannot register nil mesh")
	}
	if _, exists := r.meshes[m.ID]; exists {
		return fmt.Errorf("mesh %q already registered", m.ID)
	}
	r.meshes[m.ID] = m
	return nil
}

// Put registers a mesh, replacing any mesh with the same ID
func (r *Registry) Put(m *Mesh) {
	r.meshes[m.ID] = m
}

// Get returns the mesh with the given ID
func (r *Registry) Get(id string) (*Mesh, bool) {
	m, ok := r.meshes[id]
	return m, ok
}

// Len returns the number of registered meshes
func (r *Registry) Len() int {
	return len(r.meshes)
}

// All returns every mesh ordered by ID
func (r *Registry) All() []*Mesh {
	return r.Candidates("")
}

// Candidates returns the meshes that may be sliced and edited, ordered by ID
// Meshes whose tag equals excludeTag are skipped; an empty excludeTag
// excludes nothing.
func (r *Registry) Candidates(excludeTag string) []*Mesh {
	result := make([]*Mesh, 0, len(r.meshes))
	for _, m := range r.meshes {
		if excludeTag != "" && m.Tag == excludeTag {
			continue
		}
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

package vfs

// FeatureRegistry records the canonical paths that have been required.
//
// Entries are only ever added. The registry remembers insertion order so it
// can report features in the order they finished loading.
type FeatureRegistry struct {
	seen  map[string]struct{}
	order []string
}

// NewFeatureRegistry returns an empty registry.
func NewFeatureRegistry() *FeatureRegistry {
	return &FeatureRegistry{seen: make(map[string]struct{})}
}

// Contains reports whether key has been marked loaded.
func (r *FeatureRegistry) Contains(key string) bool {
	_, ok := r.seen[key]
	return ok
}

// Mark records key as loaded. It returns false if key was already present.
func (r *FeatureRegistry) Mark(key string) bool {
	if r.Contains(key) {
		return false
	}
	r.seen[key] = struct{}{}
	r.order = append(r.order, key)
	return true
}

// Len returns the number of loaded features.
func (r *FeatureRegistry) Len() int {
	return len(r.order)
}

// Features returns loaded feature keys in load order.
func (r *FeatureRegistry) Features() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

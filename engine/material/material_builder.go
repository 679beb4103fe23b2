package material

// RegistryOption is a functional option used to configure a material Registry during construction.
type RegistryOption func(*registry)

// WithMaterials pre-registers a set of materials during construction.
// Materials with duplicate tags are silently skipped; use Register directly
// when rejection matters.
//
// Parameters:
//   - materials: the materials to register, in order
//
// Returns:
//   - RegistryOption: a function that applies the materials option to a registry
func WithMaterials(materials ...Material) RegistryOption {
	return func(r *registry) {
		for _, m := range materials {
			if _, exists := r.materials[m.Tag]; exists {
				continue
			}
			r.materials[m.Tag] = m
			r.order = append(r.order, m.Tag)
		}
	}
}

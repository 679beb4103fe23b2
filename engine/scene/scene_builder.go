package scene

// ManagerOption is a functional option used to configure a scene Manager during construction.
type ManagerOption func(*manager)

// WithTextures overrides the texture manifest loaded by PrepareScene.
// Entries are registered in slice order, which fixes their texture units.
//
// Parameters:
//   - refs: the textures to load, in registration order
//
// Returns:
//   - ManagerOption: a function that applies the texture manifest option to a manager
func WithTextures(refs []TextureRef) ManagerOption {
	return func(m *manager) {
		m.textureRefs = refs
	}
}

// WithObjects overrides the placement tables rendered by RenderScene.
//
// Parameters:
//   - objects: the objects to render, in draw order
//
// Returns:
//   - ManagerOption: a function that applies the objects option to a manager
func WithObjects(objects []Object) ManagerOption {
	return func(m *manager) {
		m.objects = objects
	}
}

// WithStubs overrides the declared-but-unmodeled object list.
//
// Parameters:
//   - stubs: the stub objects
//
// Returns:
//   - ManagerOption: a function that applies the stubs option to a manager
func WithStubs(stubs []Stub) ManagerOption {
	return func(m *manager) {
		m.stubs = stubs
	}
}

// WithDecodeWorkers sets the number of workers used for parallel texture
// decoding during PrepareScene. Defaults to NumCPU-1 with a floor of 1.
//
// Parameters:
//   - workers: the worker count
//
// Returns:
//   - ManagerOption: a function that applies the worker count option to a manager
func WithDecodeWorkers(workers int) ManagerOption {
	return func(m *manager) {
		m.decodeWorkers = max(workers, 1)
	}
}

package texture

import "github.com/Carmen-Shannon/vignette-go/common"

// RegistryOption is a functional option used to configure a texture Registry during construction.
type RegistryOption func(*registry)

// WithDefaultSampler sets the sampler configuration applied to every texture
// bound by the registry. When not specified, zero values fall through to the
// renderer's defaults (repeat addressing, linear filtering).
//
// Parameters:
//   - sampler: the sampler configuration
//
// Returns:
//   - RegistryOption: a function that applies the sampler option to a registry
func WithDefaultSampler(sampler common.SamplerStagingData) RegistryOption {
	return func(r *registry) {
		r.defaultSampler = sampler
	}
}

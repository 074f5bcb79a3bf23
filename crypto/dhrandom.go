package crypto

import (
	"crypto/rand"
	"io"
	"sync"
)

var (
	defaultRandomOnce sync.Once
	defaultRandom     io.Reader
)

// DefaultRandom returns the process-wide secure randomness source. It
// is initialized lazily, exactly once, from the OS entropy source and
// never re-seeded. The returned reader is safe for concurrent use.
func DefaultRandom() io.Reader {
	defaultRandomOnce.Do(func() {
		defaultRandom = rand.Reader
	})
	return defaultRandom
}

// ParametersWithRandom binds one parameter set to one randomness source
// for operations that need fresh randomness tied to a group, e.g.
// ephemeral key generation. It is a pure composition: neither held
// object is copied or mutated, and accessors return the exact instances
// supplied at construction.
type ParametersWithRandom struct {
	params *DHParameters
	random io.Reader
}

func NewParametersWithRandom(params *DHParameters, random io.Reader) (*ParametersWithRandom, error) {
	if params == nil {
		return nil, NULL_ARGUMENT.Apply("parameters")
	}
	if random == nil {
		return nil, NULL_ARGUMENT.Apply("random")
	}
	return &ParametersWithRandom{params: params, random: random}, nil
}

// NewParametersWithDefaultRandom attaches the process default source.
func NewParametersWithDefaultRandom(params *DHParameters) (*ParametersWithRandom, error) {
	return NewParametersWithRandom(params, DefaultRandom())
}

func (r *ParametersWithRandom) Parameters() *DHParameters {
	return r.params
}

func (r *ParametersWithRandom) Random() io.Reader {
	return r.random
}

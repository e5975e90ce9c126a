package model

import (
	"sort"

	"github.com/solarcast/solarcast/internal/logger"
)

// Registry holds every successfully loaded model plus the built-in fallback.
// It is built once at startup and never mutated, so reads need no locking.
type Registry struct {
	handles  map[string]Handle
	order    []string
	fallback Fallback
}

// Load builds a registry from name → artifact path. Loading is best-effort
// per entry: a missing or corrupt artifact excludes only that entry and logs
// a warning. Startup never aborts here.
func Load(artifacts map[string]string) *Registry {
	reg := &Registry{
		handles: make(map[string]Handle),
	}

	names := make([]string, 0, len(artifacts))
	for name := range artifacts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		handle, err := LoadLinear(name, artifacts[name])
		if err != nil {
			logger.WithField("model", name).Warnf("Skipping model artifact: %v", err)
			continue
		}
		reg.handles[name] = handle
		reg.order = append(reg.order, name)
		logger.WithField("model", name).Infof("Loaded model artifact (features: %v)", handle.Features())
	}

	if len(reg.order) == 0 {
		logger.Warn("No model artifacts loaded, predictions will use the fallback formula")
	}

	return reg
}

// Get returns the named model or ErrModelNotFound.
func (r *Registry) Get(name string) (Handle, error) {
	handle, ok := r.handles[name]
	if !ok {
		return nil, ErrModelNotFound
	}
	return handle, nil
}

// Primary returns the default model used when a request names none: the
// first registered name in lexicographic order. Deterministic across
// restarts with the same artifact set.
func (r *Registry) Primary() (Handle, bool) {
	if len(r.order) == 0 {
		return nil, false
	}
	return r.handles[r.order[0]], true
}

// Names returns the registered model names in selection order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len is the number of loaded trained models, excluding the fallback.
func (r *Registry) Len() int {
	return len(r.order)
}

// PredictDefault runs the built-in fallback formula. It always succeeds.
func (r *Registry) PredictDefault(hour int, temperature, irradiance *float64) float64 {
	return r.fallback.Estimate(hour, temperature, irradiance)
}

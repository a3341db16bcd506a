// Package adapter defines the format adapter contract: each supported chat
// export format is an independent, swappable implementation of one
// interface, resolved at runtime by detection confidence.
package adapter

import (
	"github.com/iksnae/chatlens/internal"
)

// DefaultMinConfidence is the detection threshold below which a source is
// considered unrecognized.
const DefaultMinConfidence = 0.5

// Adapter converts one export format into the normalized model.
//
// Detect is a pure probe over the raw bytes returning confidence in [0,1].
// Parse either produces a fully built Conversation or a typed
// *internal.ParseError; it never returns a bare error.
type Adapter interface {
	Name() string
	Detect(src []byte) float64
	Parse(src []byte) (*internal.Conversation, error)
}

// Detection is one adapter's confidence for a source.
type Detection struct {
	Adapter    Adapter
	Confidence float64
}

// Registry holds adapters in registration order. Registration order is the
// tie-break when two adapters report equal confidence.
type Registry struct {
	adapters      []Adapter
	minConfidence float64
}

// NewRegistry creates an empty registry with the default threshold.
func NewRegistry() *Registry {
	return &Registry{minConfidence: DefaultMinConfidence}
}

// NewDefaultRegistry creates a registry with the built-in adapters.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewJSONAdapter())
	r.Register(NewWhatsAppAdapter())
	return r
}

// Register appends an adapter. Later registrations lose confidence ties.
func (r *Registry) Register(a Adapter) {
	r.adapters = append(r.adapters, a)
}

// Adapters returns the registered adapters in registration order.
func (r *Registry) Adapters() []Adapter {
	return r.adapters
}

// SetMinConfidence overrides the detection threshold.
func (r *Registry) SetMinConfidence(min float64) {
	r.minConfidence = min
}

// Detect probes every adapter and returns all confidences in registration
// order, including zeroes. Useful for diagnostics.
func (r *Registry) Detect(src []byte) []Detection {
	out := make([]Detection, 0, len(r.adapters))
	for _, a := range r.adapters {
		out = append(out, Detection{Adapter: a, Confidence: a.Detect(src)})
	}
	return out
}

// Select returns the adapter with the highest confidence at or above the
// threshold. Ties resolve to the earliest-registered adapter. Returns
// internal.ErrNoAdapter when nothing qualifies.
func (r *Registry) Select(src []byte) (Adapter, error) {
	var best Adapter
	bestConf := 0.0
	for _, a := range r.adapters {
		conf := a.Detect(src)
		if conf > bestConf {
			best = a
			bestConf = conf
		}
	}
	if best == nil || bestConf < r.minConfidence {
		return nil, internal.ErrNoAdapter
	}
	return best, nil
}

// Parse selects an adapter for the source and parses it.
func (r *Registry) Parse(src []byte) (*internal.Conversation, error) {
	a, err := r.Select(src)
	if err != nil {
		return nil, err
	}
	internal.LogDebug("selected adapter %s", a.Name())
	return a.Parse(src)
}

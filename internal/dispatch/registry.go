package dispatch

import (
	"fmt"
	"slices"
	"strings"

	"github.com/baalimago/lockbot/internal/models"
	"github.com/baalimago/lockbot/internal/vendors/cohere"
	"github.com/baalimago/lockbot/internal/vendors/openai"
	"github.com/baalimago/lockbot/internal/vendors/xai"
)

// Service describes one backend. The first model is the default one.
type Service struct {
	Name    string
	Models  []string
	Adapter Adapter
}

func (s Service) DefaultModel() string {
	if len(s.Models) == 0 {
		return ""
	}
	return s.Models[0]
}

func (s Service) Supports(model string) bool {
	return slices.Contains(s.Models, model)
}

// DisplayName is the capitalized service name.
func (s Service) DisplayName() string {
	if s.Name == "" {
		return ""
	}
	return strings.ToUpper(s.Name[:1]) + s.Name[1:]
}

// Registry holds the static set of services. It is not mutated after
// construction.
type Registry struct {
	services map[string]Service
	order    []string
}

// NewRegistry keeps the order of services, the first one is the
// fallback default. Duplicate names and services without models are
// rejected.
func NewRegistry(services ...Service) (*Registry, error) {
	r := &Registry{services: make(map[string]Service, len(services))}
	for _, s := range services {
		if _, exists := r.services[s.Name]; exists {
			return nil, fmt.Errorf("duplicate service: '%v'", s.Name)
		}
		if len(s.Models) == 0 {
			return nil, fmt.Errorf("service '%v' has no models", s.Name)
		}
		if s.Adapter == nil {
			return nil, fmt.Errorf("service '%v' has no adapter", s.Name)
		}
		r.services[s.Name] = s
		r.order = append(r.order, s.Name)
	}
	return r, nil
}

// DefaultRegistry is grok, openai and cohere with their supported models.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		Service{Name: "grok", Models: xai.Models, Adapter: xaiAdapter{}},
		Service{Name: "openai", Models: openai.Models, Adapter: openaiAdapter{}},
		Service{Name: "cohere", Models: cohere.Models, Adapter: cohereAdapter{}},
	)
	if err != nil {
		panic(fmt.Sprintf("static registry is invalid: %v", err))
	}
	return r
}

func (r *Registry) Lookup(name string) (Service, error) {
	s, ok := r.services[name]
	if !ok {
		return Service{}, fmt.Errorf("%w: %v", models.ErrUnknownService, name)
	}
	return s, nil
}

// Names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// Describe lists every service as 'name: [model model]', in registration order.
func (r *Registry) Describe() []string {
	ret := make([]string, 0, len(r.order))
	for _, name := range r.order {
		ret = append(ret, fmt.Sprintf("%v: %v", name, r.services[name].Models))
	}
	return ret
}

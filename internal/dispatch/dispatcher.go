// Package dispatch routes a turn to the backend adapter of the selected
// service. Each adapter declares which parameters it accepts and is handed
// only those.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/baalimago/lockbot/internal/models"
	"github.com/baalimago/lockbot/internal/trends"
	"github.com/baalimago/lockbot/internal/vendors/cohere"
	"github.com/baalimago/lockbot/internal/vendors/openai"
	"github.com/baalimago/lockbot/internal/vendors/xai"
)

// Clients are the per backend handles, constructed once at startup.
type Clients struct {
	XAI    *xai.Client
	OpenAI *openai.Client
	Cohere *cohere.Client
}

type Request struct {
	Prompt     string
	Service    string
	Model      string
	DeepSearch bool
	History    []models.Message
}

type Dispatcher struct {
	registry *Registry
	clients  Clients
	trends   trends.Lookup
}

// New returns a dispatcher. A nil lookup falls back to the static placeholder.
func New(registry *Registry, clients Clients, lookup trends.Lookup) *Dispatcher {
	if lookup == nil {
		lookup = trends.Static{}
	}
	return &Dispatcher{registry: registry, clients: clients, trends: lookup}
}

func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch resolves the service, validates the model and calls the adapter.
// Nothing is sent to a backend when the service or model is unknown.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (string, error) {
	svc, err := d.registry.Lookup(req.Service)
	if err != nil {
		return "", err
	}
	if !svc.Supports(req.Model) {
		return "", fmt.Errorf("%w: model %v not supported for %v", models.ErrUnsupportedModel, req.Model, req.Service)
	}

	prompt := req.Prompt
	if req.DeepSearch {
		extra, err := d.trends.Trends(ctx, prompt)
		if err != nil {
			slog.Warn("trend lookup failed, continuing without", "error", err)
		} else {
			prompt += "\nAdditional context: " + extra
		}
	}

	all := Params{
		Prompt:     prompt,
		Model:      req.Model,
		DeepSearch: req.DeepSearch,
		History:    req.History,
		XAI:        d.clients.XAI,
		OpenAI:     d.clients.OpenAI,
		Cohere:     d.clients.Cohere,
	}
	accepted := svc.Adapter.Accepts()
	start := time.Now()
	reply, err := svc.Adapter.Reply(ctx, all.Filter(accepted))
	if err != nil {
		slog.Error("dispatch failed", "service", svc.Name, "model", req.Model, "latency", time.Since(start), "error", err)
		return "", err
	}
	slog.Info("dispatched", "service", svc.Name, "model", req.Model, "params", accepted.String(), "latency", time.Since(start))
	return reply, nil
}

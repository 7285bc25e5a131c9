package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/GriffinCanCode/numcore/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/numcore/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/numcore/internal/shared/types"
	"go.uber.org/zap"
)

// Provider interface for service implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

// Registry manages service discovery and execution
type Registry struct {
	mu       sync.RWMutex
	services map[string]Provider

	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
	logger  *zap.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithMetrics times every execution into Prometheus.
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(r *Registry) { r.metrics = metrics }
}

// WithTracer records every execution as a span.
func WithTracer(tracer *tracing.Tracer) Option {
	return func(r *Registry) { r.tracer = tracer }
}

// WithLogger logs failed executions.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates a new service registry
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		services: make(map[string]Provider),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a service provider
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}
	if strings.Contains(def.ID, ".") {
		return fmt.Errorf("service ID %q must not contain '.'", def.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.services[def.ID]; exists {
		return fmt.Errorf("service already registered: %s", def.ID)
	}
	r.services[def.ID] = provider
	return nil
}

// Unregister removes a service provider
func (r *Registry) Unregister(serviceID string) {
	r.mu.Lock()
	delete(r.services, serviceID)
	r.mu.Unlock()
}

// Get retrieves a service by ID
func (r *Registry) Get(serviceID string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.services[serviceID]
	return p, ok
}

// List returns registered services sorted by ID, optionally filtered by category
func (r *Registry) List(category *types.Category) []types.Service {
	r.mu.RLock()
	defer r.mu.RUnlock()

	services := make([]types.Service, 0, len(r.services))
	for _, provider := range r.services {
		def := provider.Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
	}
	sort.Slice(services, func(i, j int) bool { return services[i].ID < services[j].ID })
	return services
}

// Tools returns every registered tool sorted by ID
func (r *Registry) Tools() []types.Tool {
	var tools []types.Tool
	for _, svc := range r.List(nil) {
		tools = append(tools, svc.Tools...)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].ID < tools[j].ID })
	return tools
}

// Discover ranks services by how well they match a free-text query
func (r *Registry) Discover(query string, limit int) []types.Service {
	type scored struct {
		service types.Service
		score   float64
	}

	query = strings.ToLower(query)
	var results []scored
	for _, svc := range r.List(nil) {
		if score := relevance(query, svc); score > 0 {
			results = append(results, scored{service: svc, score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	output := make([]types.Service, 0, limit)
	for i := 0; i < len(results) && i < limit; i++ {
		output = append(output, results[i].service)
	}
	return output
}

// Execute runs a tool addressed as "service.tool". Unknown services are a
// failed result; an error is returned only when the provider itself fails.
func (r *Registry) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	serviceID, _, found := strings.Cut(toolID, ".")
	if !found || serviceID == "" {
		return unknownTool(fmt.Sprintf("invalid tool ID format: %s", toolID)), nil
	}

	provider, ok := r.Get(serviceID)
	if !ok {
		return unknownTool(fmt.Sprintf("service not found: %s", serviceID)), nil
	}

	var span *tracing.Span
	if r.tracer != nil {
		span, ctx = r.tracer.StartSpan(ctx, toolID)
		defer func() {
			span.Finish()
			r.tracer.Submit(span)
		}()
	}

	timer := monitoring.NewTimer(r.metrics, serviceID, toolID)
	result, err := provider.Execute(ctx, toolID, params, appCtx)
	if err == nil && result == nil {
		err = fmt.Errorf("tool %s returned no result", toolID)
	}

	switch {
	case err != nil:
		timer.Stop("error")
		r.recordError(serviceID, toolID, "error")
		if span != nil {
			span.SetError(err)
		}
		r.logger.Warn("tool execution failed", zap.String("tool", toolID), zap.Error(err))
		return nil, err
	case !result.Success:
		timer.Stop("failure")
		r.recordError(serviceID, toolID, string(result.Reason))
		if span != nil {
			span.SetTag("reason", string(result.Reason))
		}
		r.logger.Debug("tool returned failure",
			zap.String("tool", toolID),
			zap.String("reason", string(result.Reason)),
			zap.String("error", result.Message()),
		)
	default:
		timer.Stop("success")
	}
	return result, nil
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	var total, totalTools int
	categories := make(map[string]int)

	for _, def := range r.List(nil) {
		total++
		totalTools += len(def.Tools)
		categories[string(def.Category)]++
	}

	return map[string]interface{}{
		"total_services": total,
		"total_tools":    totalTools,
		"categories":     categories,
	}
}

func (r *Registry) recordError(serviceID, toolID, reason string) {
	if r.metrics != nil {
		r.metrics.RecordToolError(serviceID, toolID, reason)
	}
}

func relevance(query string, svc types.Service) float64 {
	score := 0.0

	if strings.Contains(query, svc.ID) || strings.Contains(query, strings.ToLower(svc.Name)) {
		score += 10.0
	}

	for _, tool := range svc.Tools {
		name := strings.ToLower(tool.Name)
		if strings.Contains(query, name) || strings.Contains(name, query) {
			score += 5.0
		}
	}

	for _, capability := range svc.Capabilities {
		if strings.Contains(query, strings.ReplaceAll(strings.ToLower(capability), "_", " ")) {
			score += 3.0
		}
	}

	if strings.Contains(query, string(svc.Category)) {
		score += 2.0
	}

	return score
}

func unknownTool(message string) *types.Result {
	return &types.Result{Success: false, Error: &message, Reason: types.ReasonUnknownTool}
}

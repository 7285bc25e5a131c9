package numeric

import (
	"context"
	"fmt"
	"time"

	"github.com/GriffinCanCode/numcore/internal/infrastructure/config"
	"github.com/GriffinCanCode/numcore/internal/shared/types"
	"go.uber.org/zap"
)

// ServiceID is the registry prefix of every numeric tool.
const ServiceID = "numeric"

// Recorder receives the duration and input size of each computation.
// *monitoring.Metrics satisfies it.
type Recorder interface {
	RecordComputation(operation string, size int, duration time.Duration)
}

// Provider exposes the numeric core as service tools
type Provider struct {
	limits   config.LimitsConfig
	logger   *zap.Logger
	recorder Recorder
}

// Option configures a Provider
type Option func(*Provider)

// WithLimits sets the per-request limits.
func WithLimits(limits config.LimitsConfig) Option {
	return func(p *Provider) { p.limits = limits }
}

// WithLogger sets the progress logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRecorder sets the computation metrics sink.
func WithRecorder(recorder Recorder) Option {
	return func(p *Provider) { p.recorder = recorder }
}

// NewProvider creates a numeric provider with default limits and no logging.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		limits: config.DefaultLimits(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, datasetTools()...)
	tools = append(tools, sequenceTools()...)
	tools = append(tools, matrixTools()...)
	tools = append(tools, estimatorTools()...)
	tools = append(tools, types.Tool{
		ID:          "numeric.greet",
		Name:        "Greet",
		Description: "Check that the numeric module is loaded",
		Parameters:  []types.Parameter{},
		Returns:     "object",
	})

	return types.Service{
		ID:          ServiceID,
		Name:        "Numeric Service",
		Description: "Dataset statistics, normalization, fibonacci, prime sieve, matrix multiplication and Monte Carlo pi",
		Category:    types.CategoryMath,
		Capabilities: []string{
			"statistics",
			"normalization",
			"sequences",
			"primes",
			"matrix",
			"monte_carlo",
		},
		Tools: tools,
	}
}

// Execute routes to the tool implementation. Domain failures are returned as
// tagged results; only a cancelled context yields an error.
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if params == nil {
		params = map[string]interface{}{}
	}

	switch toolID {
	// Dataset operations
	case "numeric.process_csv":
		return p.ProcessCSV(ctx, params, appCtx)
	case "numeric.process_simple":
		return p.ProcessSimple(ctx, params, appCtx)
	case "numeric.statistics":
		return p.Statistics(ctx, params, appCtx)
	case "numeric.normalize":
		return p.Normalize(ctx, params, appCtx)

	// Sequences
	case "numeric.fibonacci":
		return p.Fibonacci(ctx, params, appCtx)
	case "numeric.primes":
		return p.Primes(ctx, params, appCtx)

	// Matrix operations
	case "numeric.matrix_demo":
		return p.MatrixDemo(ctx, params, appCtx)
	case "numeric.matrix_multiply":
		return p.MatrixMultiply(ctx, params, appCtx)

	// Estimators
	case "numeric.monte_carlo_pi":
		return p.MonteCarloPi(ctx, params, appCtx)

	case "numeric.greet":
		return p.Greet(ctx, params, appCtx)

	default:
		return Failure(types.ReasonUnknownTool, fmt.Sprintf("unknown tool: %s", toolID))
	}
}

// Greet logs and returns a greeting.
func (p *Provider) Greet(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	const message = "Hello from numcore! The numeric module is working correctly."
	p.logger.Info(message, originField(appCtx))
	return Success(map[string]interface{}{"message": message})
}

func (p *Provider) record(operation string, size int, start time.Time) {
	if p.recorder != nil {
		p.recorder.RecordComputation(operation, size, time.Since(start))
	}
}

func originField(appCtx *types.Context) zap.Field {
	if appCtx == nil || appCtx.Origin == nil {
		return zap.Skip()
	}
	return zap.String("origin", *appCtx.Origin)
}

package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/GriffinCanCode/numcore/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/numcore/internal/service"
	"github.com/GriffinCanCode/numcore/internal/shared/id"
	"github.com/GriffinCanCode/numcore/internal/shared/types"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
)

// pingPeriod must stay below the pong deadline it keeps alive.
func pingPeriod(wait time.Duration) time.Duration {
	return wait * 9 / 10
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// route binds a worker message type to a provider tool. keys maps message
// data keys onto tool parameter names.
type route struct {
	tool     string
	keys     map[string]string
	required string
	missing  string
}

var routes = map[string]route{
	"process_csv": {
		tool:     "numeric.process_csv",
		keys:     map[string]string{"csvContent": "text"},
		required: "csvContent",
		missing:  "CSV content is required",
	},
	"process_simple": {
		tool:     "numeric.process_simple",
		keys:     map[string]string{"input": "input"},
		required: "input",
		missing:  "Input data is required",
	},
	"fibonacci": {
		tool:     "numeric.fibonacci",
		keys:     map[string]string{"count": "count"},
		required: "count",
		missing:  "Count is required for fibonacci calculation",
	},
	"primes": {
		tool:     "numeric.primes",
		keys:     map[string]string{"limit": "limit"},
		required: "limit",
		missing:  "Limit is required for prime generation",
	},
	"matrix_demo": {tool: "numeric.matrix_demo"},
	"monte_carlo_pi": {
		tool:     "numeric.monte_carlo_pi",
		keys:     map[string]string{"iterations": "iterations", "seed": "seed"},
		required: "iterations",
		missing:  "Iterations are required for the pi estimate",
	},
	"greet": {tool: "numeric.greet"},
}

// Handler serves the worker protocol over WebSocket connections.
type Handler struct {
	registry  *service.Registry
	metrics   *monitoring.Metrics
	logger    *zap.Logger
	readLimit int64
	pongWait  time.Duration
}

// Option configures a Handler.
type Option func(*Handler)

// WithMetrics records connection and message counts.
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(h *Handler) { h.metrics = metrics }
}

// WithLogger sets the handler logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithReadLimit caps the size of a single inbound message.
func WithReadLimit(n int64) Option {
	return func(h *Handler) { h.readLimit = n }
}

// WithPongWait sets how long an idle connection may go without a pong.
// Pings are sent at nine tenths of this interval.
func WithPongWait(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.pongWait = d
		}
	}
}

// NewHandler creates a new WebSocket handler
func NewHandler(registry *service.Registry, opts ...Option) *Handler {
	h := &Handler{
		registry:  registry,
		logger:    zap.NewNop(),
		readLimit: 16 << 20,
		pongWait:  pongWait,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleConnection upgrades the request and answers worker messages until
// the client disconnects.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	connID := id.NewConnectionID()
	logger := h.logger.With(zap.String("conn_id", connID.String()))
	logger.Debug("websocket connected", zap.String("client_ip", c.ClientIP()))

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	conn.SetReadLimit(h.readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(h.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go h.keepAlive(conn, done, logger)

	ctx := c.Request.Context()
	for {
		var msg types.WorkerMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(h.pongWait))
		h.recordMessage("inbound", msg.Type)

		resp := h.Handle(ctx, msg, connID)

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(resp); err != nil {
			logger.Warn("websocket write error", zap.Error(err))
			return
		}
		h.recordMessage("outbound", msg.Type)
	}
}

// keepAlive pings the peer until done closes. WriteControl may run
// concurrently with the reader loop's WriteJSON.
func (h *Handler) keepAlive(conn *websocket.Conn, done <-chan struct{}, logger *zap.Logger) {
	ticker := time.NewTicker(pingPeriod(h.pongWait))
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				logger.Debug("websocket ping failed", zap.Error(err))
				return
			}
		}
	}
}

// Handle answers a single worker message. It never returns nil.
func (h *Handler) Handle(ctx context.Context, msg types.WorkerMessage, connID id.ConnectionID) *types.WorkerResponse {
	start := time.Now()
	resp := &types.WorkerResponse{ID: msg.ID}
	if resp.ID == "" {
		resp.ID = id.NewMessageID().String()
	}

	result, reason, err := h.dispatch(ctx, msg, connID)
	resp.Performance = float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		resp.Error = err.Error()
		resp.Reason = reason
		return resp
	}
	resp.Success = true
	resp.Result = result
	return resp
}

func (h *Handler) dispatch(ctx context.Context, msg types.WorkerMessage, connID id.ConnectionID) (interface{}, types.Reason, error) {
	if msg.Type == "ping" {
		return "pong", "", nil
	}

	rt, ok := routes[msg.Type]
	if !ok {
		return nil, types.ReasonUnknownTool, fmt.Errorf("unknown message type: %s", msg.Type)
	}

	params := make(map[string]interface{}, len(rt.keys))
	for from, to := range rt.keys {
		if v, ok := msg.Data[from]; ok && v != nil {
			params[to] = v
		}
	}
	if rt.required != "" {
		if v, ok := msg.Data[rt.required]; !ok || v == nil || v == "" {
			return nil, types.ReasonInvalidParams, errors.New(rt.missing)
		}
	}

	requestID := msg.ID
	origin := "ws"
	clientID := connID.String()
	appCtx := &types.Context{RequestID: &requestID, ClientIP: &clientID, Origin: &origin}

	result, err := h.registry.Execute(ctx, rt.tool, params, appCtx)
	if err != nil {
		return nil, types.ReasonUnavailable, err
	}
	if !result.Success {
		return nil, result.Reason, errors.New(result.Message())
	}
	return shape(msg.Type, result.Data), "", nil
}

// shape trims tool data to the payload the worker protocol promises.
func shape(msgType string, data map[string]interface{}) interface{} {
	switch msgType {
	case "fibonacci":
		out := map[string]interface{}{
			"numbers": data["numbers"],
			"count":   data["count"],
		}
		if last, ok := data["last_value"]; ok {
			out["last_value"] = last
		}
		return out
	case "greet":
		return data["message"]
	default:
		return data
	}
}

func (h *Handler) recordMessage(direction, msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage(direction, msgType)
	}
}

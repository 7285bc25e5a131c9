package types

// Category represents service categories
type Category string

const (
	CategoryMath       Category = "math"
	CategoryStatistics Category = "statistics"
	CategorySystem     Category = "system"
)

// Service represents a service definition
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool represents a service tool
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter represents a tool parameter
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Context provides execution context for services
type Context struct {
	RequestID *string `json:"request_id,omitempty"`
	ClientIP  *string `json:"client_ip,omitempty"`
	Origin    *string `json:"origin,omitempty"` // "http", "ws", "cli"
}

// Reason classifies a failed Result.
type Reason string

const (
	ReasonEmptyInput          Reason = "empty_input"
	ReasonShapeMismatch       Reason = "shape_mismatch"
	ReasonDegenerateIteration Reason = "degenerate_iteration"
	ReasonNumericOverflow     Reason = "numeric_overflow"
	ReasonInvalidParams       Reason = "invalid_params"
	ReasonLimitExceeded       Reason = "limit_exceeded"
	ReasonUnknownTool         Reason = "unknown_tool"
	ReasonUnavailable         Reason = "unavailable"
)

// Result represents a service execution result
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *string                `json:"error,omitempty"`
	Reason  Reason                 `json:"reason,omitempty"`
}

// Message returns the failure message, or "" for a successful result.
func (r *Result) Message() string {
	if r == nil || r.Error == nil {
		return ""
	}
	return *r.Error
}

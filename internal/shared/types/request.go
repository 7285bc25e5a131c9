package types

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params"`
}

// WorkerMessage is a request on the websocket worker protocol.
type WorkerMessage struct {
	ID   string                 `json:"id"`
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// WorkerResponse answers a WorkerMessage with the same ID. Performance is
// the host-side elapsed time in milliseconds.
type WorkerResponse struct {
	ID          string      `json:"id"`
	Success     bool        `json:"success"`
	Result      interface{} `json:"result,omitempty"`
	Error       string      `json:"error,omitempty"`
	Reason      Reason      `json:"reason,omitempty"`
	Performance float64     `json:"performance"`
}

package models

import "time"

// APIResponse is the envelope every HTTP endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Meta    Meta        `json:"meta"`
}

// Meta carries per-response bookkeeping.
type Meta struct {
	RequestID   string    `json:"request_id"`
	GeneratedAt time.Time `json:"generated_at"`
}

package notification

import (
	"time"
)

type ListFilter struct {
	Recipient string
	Type      string
	Page      int
	Limit     int
}

type LogResponse struct {
	ID        string    `json:"id"`
	To        string    `json:"to"`
	Type      string    `json:"type"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ListResponse struct {
	Logs  []LogResponse `json:"logs"`
	Total int64         `json:"total"`
}

// ToResponse maps a Log to its API representation.
func ToResponse(l Log) LogResponse {
	return LogResponse{
		ID:        l.ID,
		To:        l.To.String(),
		Type:      string(l.Type),
		Message:   l.Message,
		CreatedAt: l.CreatedAt,
	}
}

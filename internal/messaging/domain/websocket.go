package domain

// Action websocket request action
type Action string

const (
	// GetUnread websocket action get_unread
	GetUnread Action = "get_unread"
	// MarkRead websocket action mark_read
	MarkRead Action = "mark_read"
)

// WSRequest websocket Request
type WSRequest struct {
	Action         string `json:"action"`
	ConversationID string `json:"conversation_id"`
}

// WSResponse websocket Response
type WSResponse struct {
	Action  string                 `json:"action"`
	Success bool                   `json:"success"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

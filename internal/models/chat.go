package models

// ChatTurn is one prior message in the conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Query   string     `json:"query"`
	History []ChatTurn `json:"history"`
}

// ChatResponse is the successful chat answer together with the grounding
// context that produced it.
type ChatResponse struct {
	Response    string `json:"response"`
	ContextUsed string `json:"context_used"`
}

// ErrorResponse is the generic error envelope for all unhandled failures.
type ErrorResponse struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	ErrorType string `json:"error_type"`
}

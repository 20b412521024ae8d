// Package entity defines the request forms and response bodies of the web layer.
package entity

// Msg is the JSON body returned to AJAX callers of the HTML routes.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// LoginResult is the body of POST /api/login.
type LoginResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// APIResponse wraps every authenticated API reply.
type APIResponse struct {
	Status  int    `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// APIError is returned when the API token check fails.
type APIError struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

package http

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error" example:"history cannot be empty"`
}

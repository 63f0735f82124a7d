package dto

type APIErrorResponse struct {
	Message   string    `json:"message"`
	ErrorCode ErrorCode `json:"error_code,omitempty"`
}

type ErrorCode string

const (
	BadRequest     ErrorCode = "bad_request"
	NotFound       ErrorCode = "not_found"
	EngineDisabled ErrorCode = "engine_disabled"
	InternalError  ErrorCode = "internal_error"
)

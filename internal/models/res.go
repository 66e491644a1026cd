package models

// ErrorPayload is the wire shape of every failed response.
type ErrorPayload struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func ErrorResponse(err error) ErrorPayload {
	if ve, ok := err.(*ValidationError); ok {
		return ErrorPayload{Error: "validation failed", Details: ve.Violations}
	}
	return ErrorPayload{Error: err.Error()}
}

type MessagePayload struct {
	Message string `json:"message"`
}

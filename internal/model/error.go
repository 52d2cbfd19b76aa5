package model

// ValidationError is a caller fault raised outside of a Result, e.g. a
// malformed body, cursor or token.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(code string, message string, param string) *ValidationError {
	return &ValidationError{
		Code:    code,
		Message: message,
		Param:   param,
	}
}

package model

type ErrorType int

const (
	ErrorTypeBadRequest ErrorType = iota + 1
	ErrorTypeNotFound
	ErrorTypeProblem
)

func (errorType ErrorType) String() string {
	switch errorType {
	case ErrorTypeBadRequest:
		return "bad_request"
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeProblem:
		return "problem"
	default:
		return "unknown"
	}
}

// Fault describes why an operation did not succeed. The message is safe to
// show to the caller.
type Fault struct {
	ErrorType    ErrorType
	ErrorMessage string
}

func (f *Fault) Error() string {
	return f.ErrorMessage
}

// Result is the outcome of a mutating operation: either Value or Fault is set.
type Result[T any] struct {
	Value T
	Fault *Fault
}

func Success[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

func Failure[T any](errorType ErrorType, message string) Result[T] {
	return Result[T]{
		Fault: &Fault{
			ErrorType:    errorType,
			ErrorMessage: message,
		},
	}
}

func (r Result[T]) Succeeded() bool {
	return r.Fault == nil
}

// Outcome is the metrics label of the result.
func (r Result[T]) Outcome() string {
	if r.Fault == nil {
		return "success"
	}

	return r.Fault.ErrorType.String()
}

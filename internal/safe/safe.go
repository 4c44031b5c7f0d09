// Package safe turns operations that may fail or panic into a uniform result envelope.
package safe

import (
	"context"

	"github.com/customeros/mailbroker/dto"
)

const UnknownError = "Unknown error"

// Call runs op and converts its outcome into a dto.SafeResult. It never panics.
// Returned errors and panics carrying an error report the error message; any other panic value
// reports UnknownError.
func Call[T any](ctx context.Context, op func(ctx context.Context) (T, error)) (result dto.SafeResult) {
	defer func() {
		if r := recover(); r != nil {
			result = Failure(r)
		}
	}()

	value, err := op(ctx)
	if err != nil {
		return Failure(err)
	}
	return dto.SafeResult{IsError: false, Result: value}
}

// Failure builds a failed envelope from an error-like value.
func Failure(v any) dto.SafeResult {
	return dto.SafeResult{IsError: true, Result: message(v)}
}

func message(v any) string {
	err, ok := v.(error)
	if !ok || err == nil || err.Error() == "" {
		return UnknownError
	}
	return err.Error()
}

// FailureMessage builds a failed envelope carrying msg verbatim.
func FailureMessage(msg string) dto.SafeResult {
	if msg == "" {
		msg = UnknownError
	}
	return dto.SafeResult{IsError: true, Result: msg}
}

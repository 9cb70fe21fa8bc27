package backend

import "fmt"

// ApiError covers every way a backend call can fail: a non-2xx response
// (Detail taken from the body's detail field when present) or a transport
// failure, in which case Status is 0. The portal makes no retry decisions;
// callers render the message.
type ApiError struct {
	Status int
	Detail string
}

func (e *ApiError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("backend unreachable: %s", e.Detail)
	}
	return fmt.Sprintf("backend error (%d): %s", e.Status, e.Detail)
}

// IsUnauthorized reports whether err is an ApiError carrying HTTP 401.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*ApiError)
	return ok && apiErr.Status == 401
}

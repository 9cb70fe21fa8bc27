package provider

import "fmt"

// AuthError is the uniform wrapper for anything the auth provider rejects:
// bad credentials, duplicate accounts, weak passwords, expired sessions.
// Status is 0 when the request never reached the provider.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("auth provider unreachable: %s", e.Message)
	}
	return fmt.Sprintf("auth provider error (%d): %s", e.Status, e.Message)
}

func authErrorf(status int, format string, args ...interface{}) *AuthError {
	return &AuthError{Status: status, Message: fmt.Sprintf(format, args...)}
}

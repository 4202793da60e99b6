package multipass

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yehuo/multipass-k3s-cli/internal/retry"
)

// GatewayError reports a failed backend invocation. Stderr carries the
// backend's own message so users see what multipass said, not just that
// it exited non-zero.
type GatewayError struct {
	Op      string
	Subject string
	Stderr  string
	Err     error
}

func (e *GatewayError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Subject != "" {
		return fmt.Sprintf("multipass %s %s: %s", e.Op, e.Subject, msg)
	}
	return fmt.Sprintf("multipass %s: %s", e.Op, msg)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// IsGatewayError reports whether err came from a backend invocation.
func IsGatewayError(err error) bool {
	var gwErr *GatewayError
	return errors.As(err, &gwErr)
}

// IsNotFound reports whether the backend rejected the operation because
// the named instance does not exist.
func IsNotFound(err error) bool {
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		return false
	}
	return strings.Contains(gwErr.Stderr, "does not exist")
}

// IsTimeout reports whether err is a bounded-wait expiry, either from our
// own state polling or reported by the backend itself.
func IsTimeout(err error) bool {
	if errors.Is(err, retry.ErrTimeout) {
		return true
	}
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return strings.Contains(gwErr.Stderr, "timed out")
	}
	return false
}

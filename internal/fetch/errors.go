package fetch

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// Error codes reported for transport failures.
const (
	CodeConnReset   = "ECONNRESET"
	CodeTimedOut    = "ETIMEDOUT"
	CodeConnRefused = "ECONNREFUSED"
	CodeNotFound    = "ENOTFOUND"
)

// ErrorCode maps a transport error to a short code, or returns "" when the
// error has no recognised code.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var dnsErr *net.DNSError
	var netErr net.Error
	switch {
	case errors.Is(err, syscall.ECONNRESET):
		return CodeConnReset
	case errors.Is(err, syscall.ETIMEDOUT), errors.Is(err, context.DeadlineExceeded):
		return CodeTimedOut
	case errors.Is(err, syscall.ECONNREFUSED):
		return CodeConnRefused
	case errors.As(err, &dnsErr):
		if dnsErr.IsTimeout {
			return CodeTimedOut
		}
		return CodeNotFound
	case errors.As(err, &netErr) && netErr.Timeout():
		return CodeTimedOut
	}
	return ""
}

// Retryable reports whether a transport error is worth one more attempt.
func Retryable(err error) bool {
	switch ErrorCode(err) {
	case CodeConnReset, CodeTimedOut:
		return true
	}
	return false
}

// Describe returns the error code for err, or its message when it has none.
func Describe(err error) string {
	if code := ErrorCode(err); code != "" {
		return code
	}
	return err.Error()
}

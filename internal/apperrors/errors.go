package apperrors

import (
	"errors"
	"strings"
)

type Kind string

const (
	KindConfig   Kind = "config"
	KindSettings Kind = "settings"
	KindCommand  Kind = "command"
	KindTimeout  Kind = "timeout"
	KindTask     Kind = "task"
	KindReload   Kind = "reload"
	KindInternal Kind = "internal"
)

type Error struct {
	Kind Kind
	// SafeMessage is intended for user-facing output (toasts, error pages)
	// and logs.
	SafeMessage string
	// Cause keeps the original internal error for troubleshooting.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
		return msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func defaultSafeMessage(kind Kind) string {
	switch kind {
	case KindConfig:
		return "Configuration is invalid."
	case KindSettings:
		return "Settings operation failed."
	case KindCommand:
		return "Command failed to launch."
	case KindTimeout:
		return "Command timed out."
	case KindTask:
		return "Background task was rejected."
	case KindReload:
		return "Reload failed."
	default:
		return "Operation failed."
	}
}

func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = defaultSafeMessage(kind)
	}
	return &Error{
		Kind:        kind,
		SafeMessage: msg,
		Cause:       cause,
	}
}

func Config(err error) error {
	return New(KindConfig, "", err)
}

func Settings(err error) error {
	return New(KindSettings, "", err)
}

func Command(err error) error {
	return New(KindCommand, "", err)
}

func Timeout(err error) error {
	return New(KindTimeout, "", err)
}

func Task(err error) error {
	return New(KindTask, "", err)
}

func Reload(err error) error {
	return New(KindReload, "", err)
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}

// IsTimeout distinguishes a bounded-capture timeout from other command
// failures so callers can render the two outcomes differently.
func IsTimeout(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == KindTimeout
}

func IsConfig(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == KindConfig
}

package lib

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation error")
	ErrWallet     = errors.New("wallet error")
	ErrRemoteCall = errors.New("remote call error")
)

// WrapError joins a sentinel error with its cause so both match errors.Is
func WrapError(parent error, child error) error {
	return fmt.Errorf("%w: %w", parent, child)
}

// ValidationError is a local form error, it never reaches the chain
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// WalletError covers a missing wallet or a rejected connection/signature request
type WalletError struct {
	Message string
	Err     error
}

func NewWalletError(msg string, err error) *WalletError {
	return &WalletError{Message: msg, Err: err}
}

func (e *WalletError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Err)
}

func (e *WalletError) Unwrap() error { return e.Err }

func (e *WalletError) Is(target error) bool { return target == ErrWallet }

// RemoteCallError is a contract revert or a transport failure on a read or write
type RemoteCallError struct {
	Method string
	Err    error
}

func NewRemoteCallError(method string, err error) *RemoteCallError {
	return &RemoteCallError{Method: method, Err: err}
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("%s: %s", e.Method, e.Err)
}

func (e *RemoteCallError) Unwrap() error { return e.Err }

func (e *RemoteCallError) Is(target error) bool { return target == ErrRemoteCall }

// Message returns the underlying error text shown to the user
func (e *RemoteCallError) Message() string {
	if e.Err == nil {
		return e.Method
	}
	return e.Err.Error()
}

type AlertLevel string

const (
	AlertSuccess AlertLevel = "success"
	AlertInfo    AlertLevel = "info"
	AlertWarning AlertLevel = "warning"
	AlertDanger  AlertLevel = "danger"
)

// AlertLevelFor maps an error to the notification level it is reported with
func AlertLevelFor(err error) AlertLevel {
	switch {
	case err == nil:
		return AlertSuccess
	case errors.Is(err, ErrValidation):
		return AlertWarning
	default:
		return AlertDanger
	}
}

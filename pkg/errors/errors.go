// Package errors provides custom error types for the backend-api server.
// These errors enable programmatic error checking at the process boundary,
// where a fatal error is turned into a diagnostic message and exit status.
package errors

import (
	"errors"
	"fmt"
	"syscall"
)

// Common sentinel errors
var (
	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrBind indicates that the server could not bind its listening address
	ErrBind = errors.New("bind failed")
)

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// BindError represents a failure to open the server's listening socket.
// It is always fatal for the process.
type BindError struct {
	Addr string
	Err  error
}

// Error implements the error interface
func (e *BindError) Error() string {
	switch {
	case e.AddrInUse():
		return fmt.Sprintf("cannot listen on %s: address already in use", e.Addr)
	case e.PermissionDenied():
		return fmt.Sprintf("cannot listen on %s: permission denied (ports below 1024 need elevated privileges)", e.Addr)
	default:
		return fmt.Sprintf("cannot listen on %s: %v", e.Addr, e.Err)
	}
}

// Unwrap implements errors.Unwrap
func (e *BindError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *BindError) Is(target error) bool {
	return target == ErrBind
}

// AddrInUse reports whether another process already holds the address.
func (e *BindError) AddrInUse() bool {
	return errors.Is(e.Err, syscall.EADDRINUSE)
}

// PermissionDenied reports whether the process lacks privilege to bind the address.
func (e *BindError) PermissionDenied() bool {
	return errors.Is(e.Err, syscall.EACCES) || errors.Is(e.Err, syscall.EPERM)
}

// NewBindError creates a new BindError
func NewBindError(addr string, err error) *BindError {
	return &BindError{Addr: addr, Err: err}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "create", "load", "start", "shutdown"
	Resource  string // "config", "server", "logger"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

package entity

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures of the analysis pipeline.
type ErrorKind string

const (
	KindInvalidAddress ErrorKind = "invalid_address"
	KindRequestFailed  ErrorKind = "request_failed"
	KindStaleResponse  ErrorKind = "stale_response"
)

var (
	ErrInvalidAddress = errors.New("invalid wallet address")
	ErrRequestFailed  = errors.New("analysis request failed")
	ErrStaleResponse  = errors.New("stale analysis response")

	// ErrEndpointNotConfigured is reported on the first request when no analysis base URL is set.
	ErrEndpointNotConfigured = errors.New("analysis endpoint is not configured")
)

// AnalysisError carries the kind of failure together with its cause.
type AnalysisError struct {
	Kind    ErrorKind
	Address string
	Err     error
}

func (e *AnalysisError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s (address %q)", e.Kind, e.Address)
	}
	return fmt.Sprintf("%s (address %q): %v", e.Kind, e.Address, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel that corresponds to the error kind.
func (e *AnalysisError) Is(target error) bool {
	switch target {
	case ErrInvalidAddress:
		return e.Kind == KindInvalidAddress
	case ErrRequestFailed:
		return e.Kind == KindRequestFailed
	case ErrStaleResponse:
		return e.Kind == KindStaleResponse
	}
	return false
}

// NewInvalidAddressError reports an input that failed syntactic validation.
func NewInvalidAddressError(input string) *AnalysisError {
	return &AnalysisError{Kind: KindInvalidAddress, Address: input}
}

// NewRequestFailedError wraps a transport, status or decoding failure.
func NewRequestFailedError(address WalletAddress, err error) *AnalysisError {
	return &AnalysisError{Kind: KindRequestFailed, Address: string(address), Err: err}
}

// NewStaleResponseError marks a result that belongs to a superseded request.
func NewStaleResponseError(address WalletAddress) *AnalysisError {
	return &AnalysisError{Kind: KindStaleResponse, Address: string(address)}
}

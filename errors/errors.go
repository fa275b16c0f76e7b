package errors

import (
	stderrors "errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrWorkerPanic         = fmt.Errorf("worker panic")
	ErrInvalidTransaction  = fmt.Errorf("invalid transaction")
	ErrDatabaseCorrupted   = fmt.Errorf("database corrupted")
	ErrIngestionAborted    = fmt.Errorf("ingestion aborted")
	ErrNotFound            = fmt.Errorf("not found")
	ErrUnauthenticated     = fmt.Errorf("unauthenticated")
	ErrSubscriptionClosed  = fmt.Errorf("subscription closed")
	ErrEmptyMembers        = fmt.Errorf("chatroom has no members")
	ErrMessageIDMismatch   = fmt.Errorf("mismatch message id")
	ErrUnrecognizedPayload = fmt.Errorf("unrecognized payload")
)

// ValidationError rejects a transaction before anything is written.
type ValidationError struct {
	Reason string
	Err    error
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// WrapValidation turns a sentinel or library error into a ValidationError.
func WrapValidation(err error) *ValidationError {
	return &ValidationError{Reason: err.Error(), Err: err}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidTransaction, e.Reason)
}

func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidTransaction}
	}
	return []error{ErrInvalidTransaction, e.Err}
}

// CorruptionError reports a stored document missing a field its kind requires.
type CorruptionError struct {
	Key   string
	Field string
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("%s: document %q has no valid %q", ErrDatabaseCorrupted, e.Key, e.Field)
}

func (e *CorruptionError) Unwrap() error { return ErrDatabaseCorrupted }

// AbortedError stops a commit stream at the record that failed.
type AbortedError struct {
	Index int
	Err   error
}

func (e *AbortedError) Error() string {
	return fmt.Sprintf("%s at record %d: %v", ErrIngestionAborted, e.Index, e.Err)
}

func (e *AbortedError) Unwrap() []error { return []error{ErrIngestionAborted, e.Err} }

func IsValidation(err error) bool { return stderrors.Is(err, ErrInvalidTransaction) }

func IsCorruption(err error) bool { return stderrors.Is(err, ErrDatabaseCorrupted) }

// MapToGRPCError converts domain errors into gRPC statuses at the transport boundary.
func MapToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case IsCorruption(err):
		return status.Error(codes.DataLoss, err.Error())
	case stderrors.Is(err, ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case stderrors.Is(err, ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

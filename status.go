package gridpartition

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Status is the result of a partitioner operation. A nil Status (returned
// as a bare nil error) means OK; every other value carries one of four
// codes.Code kinds: InvalidArgument, OutOfRange, Internal, or Canceled
// (the last reserved for statuses forwarded verbatim from a caller's
// callback).
type Status = error

// InvalidArgumentErrorf builds a Status with codes.InvalidArgument.
func InvalidArgumentErrorf(format string, args ...interface{}) Status {
	return status.Error(codes.InvalidArgument, fmt.Sprintf(format, args...))
}

// OutOfRangeErrorf builds a Status with codes.OutOfRange.
func OutOfRangeErrorf(format string, args ...interface{}) Status {
	return status.Error(codes.OutOfRange, fmt.Sprintf(format, args...))
}

// InternalErrorf builds a Status with codes.Internal, reserved for
// invariant violations that should be unreachable.
func InternalErrorf(format string, args ...interface{}) Status {
	return status.Error(codes.Internal, fmt.Sprintf(format, args...))
}

// AsCancelled wraps a caller's callback-returned error verbatim as a
// codes.Canceled Status, preserving it for errors.Is/errors.As via Unwrap.
// An error that already carries a gRPC status is returned unchanged, with
// its own code.
func AsCancelled(err error) Status {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return &cancelled{cause: err}
}

// cancelled adapts an arbitrary callback error into a codes.Canceled
// status while keeping the original error reachable via Unwrap.
type cancelled struct {
	cause error
}

func (c *cancelled) Error() string { return c.cause.Error() }
func (c *cancelled) Unwrap() error { return c.cause }
func (c *cancelled) GRPCStatus() *status.Status {
	return status.New(codes.Canceled, c.cause.Error())
}

// Code extracts the codes.Code carried by a Status, defaulting to
// codes.Unknown for errors not produced by this package.
func Code(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if s, ok := status.FromError(err); ok {
		return s.Code()
	}
	return codes.Unknown
}

// ErrNotAGridDimension is returned when a caller names a grid output
// dimension outside the transform's output rank. It carries
// codes.InvalidArgument.
var ErrNotAGridDimension = status.Error(codes.InvalidArgument, "gridpartition: grid output dimension out of range")

// ErrDuplicateGridDimension is returned when the same output dimension
// appears twice in the caller-supplied grid dimension list. It carries
// codes.InvalidArgument.
var ErrDuplicateGridDimension = status.Error(codes.InvalidArgument, "gridpartition: duplicate grid output dimension")

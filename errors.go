package sqlseed

import (
	"errors"
	"fmt"
)

// Sentinel errors returned before any SQL is built. Check with errors.Is.
var (
	// ErrNotConnected is returned when a data operation is invoked without
	// an active database connection.
	ErrNotConnected = errors.New("sqlseed: no active database connection")

	// ErrNoColumns is returned when an insert or update is given an empty
	// values mapping.
	ErrNoColumns = errors.New("sqlseed: no columns specified")

	// ErrNoConditions is returned when an update is given an empty
	// conditions mapping, which would otherwise touch every row.
	ErrNoConditions = errors.New("sqlseed: no conditions specified")
)

// ConnectionError wraps a driver failure during Connect.
type ConnectionError struct {
	Driver string
	URL    string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("sqlseed: connect %s %q: %v", e.Driver, e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ExecutionError wraps a driver failure during statement execution or
// result iteration, carrying the operation, table and generated SQL for
// diagnosis.
type ExecutionError struct {
	Op    string
	Table string
	Query string
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("sqlseed: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

package domain

import "fmt"

// Request-scoped error taxonomy. None of these are retryable: a request either
// completes the whole pipeline or fails with exactly one of them. Empty inputs
// are never errors; they flow through as empty-but-well-formed results.

// NotFoundError signals that a required source table file is absent.
type NotFoundError struct {
	Table string
	Path  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("source table %s not found at %s", e.Table, e.Path)
}

// SchemaError signals that a required column is missing from a source table.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("source table %s is missing required column %s", e.Table, e.Column)
}

// InvalidRangeError signals a malformed YYYYMM period bound in the request.
// Out-of-range but well-formed bounds are not errors; they just filter to an
// empty window.
type InvalidRangeError struct {
	Param string
	Value string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid period %q for %s: expected YYYYMM with month 01-12", e.Value, e.Param)
}

// ComputationError signals an unexpected numeric failure in the metrics stage,
// such as unrepresentable values in the source data.
type ComputationError struct {
	ProductCode string
	Reason      string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("metrics computation failed for product %s: %s", e.ProductCode, e.Reason)
}

package contracts

import (
	"fmt"
	"math"
)

// FailureReason classifies why a metric could not be computed.
type FailureReason string

const (
	// MissingData means a required input series or field was absent.
	MissingData FailureReason = "missing_data"
	// InvalidDenominator means a ratio denominator was zero or non-positive.
	InvalidDenominator FailureReason = "invalid_denominator"
	// UnparseableDate means a source report date could not be interpreted.
	UnparseableDate FailureReason = "unparseable_date"
	// ProviderFailure means the upstream data provider returned an error.
	ProviderFailure FailureReason = "provider_failure"
)

// MetricResult is the outcome of one metric computation: either a finite
// value or a classified failure. Arithmetic that would produce NaN or Inf
// must yield a Failure instead, so a Success value is always finite.
type MetricResult struct {
	OK     bool          `json:"ok"`
	Value  float64       `json:"value,omitempty"`
	Reason FailureReason `json:"reason,omitempty"`
	Detail string        `json:"detail,omitempty"`
}

// Success wraps a finite value. Non-finite inputs degrade to a
// MissingData failure rather than leaking NaN/Inf to callers.
func Success(v float64) MetricResult {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Failure(MissingData, "non-finite result")
	}
	return MetricResult{OK: true, Value: v}
}

// Failure builds a failed result with a reason and a short detail.
func Failure(reason FailureReason, detail string) MetricResult {
	return MetricResult{OK: false, Reason: reason, Detail: detail}
}

// Failuref builds a failed result with a formatted detail.
func Failuref(reason FailureReason, format string, args ...interface{}) MetricResult {
	return Failure(reason, fmt.Sprintf(format, args...))
}

// String renders the result for logs and CLI tables.
func (m MetricResult) String() string {
	if m.OK {
		return fmt.Sprintf("%.4f", m.Value)
	}
	if m.Detail != "" {
		return fmt.Sprintf("n/a (%s: %s)", m.Reason, m.Detail)
	}
	return fmt.Sprintf("n/a (%s)", m.Reason)
}

// MetricMap holds one result per metric key.
type MetricMap map[string]MetricResult

// SuccessCount returns how many metrics computed successfully.
func (m MetricMap) SuccessCount() int {
	n := 0
	for _, r := range m {
		if r.OK {
			n++
		}
	}
	return n
}

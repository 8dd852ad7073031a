package transport

import (
	"context"
	"net/http"
)

// Decision is the outcome of classifying one attempt.
type Decision int

const (
	// DecisionSucceed ends the attempt loop with the response in hand.
	DecisionSucceed Decision = iota
	// DecisionRetry schedules another attempt after the backoff wait.
	DecisionRetry
	// DecisionFail ends the attempt loop immediately; retrying cannot help.
	DecisionFail
)

// Classify is the retry-classification policy, kept as a pure function so it
// can be tested independently of the sleep/loop mechanics.
//
// Transport-level failures (connection refused, DNS failure, timeout) are
// retryable. 401 and 403 are authentication failures and never retried. Other
// 4xx except 408 and 429 are caller-input errors and never retried. 408, 429
// and all 5xx are retryable.
func Classify(statusCode int, err error) Decision {
	if err != nil {
		return DecisionRetry
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return DecisionFail
	case statusCode == http.StatusRequestTimeout || statusCode == http.StatusTooManyRequests:
		return DecisionRetry
	case statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError:
		return DecisionFail
	case statusCode >= http.StatusInternalServerError:
		return DecisionRetry
	default:
		return DecisionSucceed
	}
}

// checkRetry adapts Classify to retryablehttp's CheckRetry contract.
// Context cancellation always ends the loop.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}

	return Classify(statusCode, err) == DecisionRetry, nil
}

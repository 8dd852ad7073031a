package transport_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsinv/assetdb-client/internal/transport"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		err        error
		want       transport.Decision
	}{
		{"success", http.StatusOK, nil, transport.DecisionSucceed},
		{"created", http.StatusCreated, nil, transport.DecisionSucceed},
		{"redirect", http.StatusFound, nil, transport.DecisionSucceed},
		{"connection error", 0, errors.New("connection refused"), transport.DecisionRetry},
		{"unauthorized", http.StatusUnauthorized, nil, transport.DecisionFail},
		{"forbidden", http.StatusForbidden, nil, transport.DecisionFail},
		{"bad request", http.StatusBadRequest, nil, transport.DecisionFail},
		{"not found", http.StatusNotFound, nil, transport.DecisionFail},
		{"conflict", http.StatusConflict, nil, transport.DecisionFail},
		{"request timeout", http.StatusRequestTimeout, nil, transport.DecisionRetry},
		{"too many requests", http.StatusTooManyRequests, nil, transport.DecisionRetry},
		{"internal server error", http.StatusInternalServerError, nil, transport.DecisionRetry},
		{"bad gateway", http.StatusBadGateway, nil, transport.DecisionRetry},
		{"service unavailable", http.StatusServiceUnavailable, nil, transport.DecisionRetry},
		{"gateway timeout", http.StatusGatewayTimeout, nil, transport.DecisionRetry},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, test.want, transport.Classify(test.statusCode, test.err))
		})
	}
}

func TestClassify_ErrorBeatsStatus(t *testing.T) {
	t.Parallel()

	// A transport error means the status code is meaningless.
	assert.Equal(t, transport.DecisionRetry, transport.Classify(http.StatusOK, errors.New("broken pipe")))
}

package errors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   ErrorCode
		status int
	}{
		{ValidationGeneral, http.StatusBadRequest},
		{TransactionInvalidID, http.StatusBadRequest},
		{DistributionInvalidSplit, http.StatusBadRequest},
		{AuthInvalidGrant, http.StatusUnauthorized},
		{AuthMissingToken, http.StatusUnauthorized},
		{AuthNotResourceOwner, http.StatusUnauthorized},
		{DistributionLocked, http.StatusForbidden},
		{UserNotFound, http.StatusNotFound},
		{CategoryNotFound, http.StatusNotFound},
		{TransactionNotFound, http.StatusNotFound},
		{CategoryInUse, http.StatusUnprocessableEntity},
		{CategoryNotCustom, http.StatusUnprocessableEntity},
		{SystemRateLimitExceeded, http.StatusTooManyRequests},
		{SystemServiceUnavailable, http.StatusServiceUnavailable},
		{SystemInternalError, http.StatusInternalServerError},
		{ErrorCode("UNKNOWN_999"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestGetErrorMessage(t *testing.T) {
	assert.NotEmpty(t, GetErrorMessage(DistributionLocked))
	assert.Equal(t, "An error occurred", GetErrorMessage(ErrorCode("UNKNOWN_999")))
}

func TestIsValidErrorCode(t *testing.T) {
	assert.True(t, IsValidErrorCode(TransactionNotFound))
	assert.False(t, IsValidErrorCode(ErrorCode("UNKNOWN_999")))
}

func TestNewErrorResponse(t *testing.T) {
	response := NewErrorResponse(TransactionNotFound, "trace-123")
	assert.Equal(t, "TRANSACTION_001", response.Error.Code)
	assert.Equal(t, GetErrorMessage(TransactionNotFound), response.Error.Message)
	assert.Equal(t, "trace-123", response.Error.TraceID)
	assert.True(t, response.IsClientError())
	assert.False(t, response.IsServerError())
}

func TestNewErrorResponse_WithOptions(t *testing.T) {
	response := NewErrorResponse(ValidationGeneral, "trace-123",
		WithMessage("amount must be positive"),
		WithDetails("amount: must be greater than 0"),
	)
	assert.Equal(t, "amount must be positive", response.Error.Message)
	assert.Equal(t, []string{"amount: must be greater than 0"}, response.Error.Details)
}

func TestNewValidationError(t *testing.T) {
	response := NewValidationError(map[string]string{"description": "is required"}, "trace-123")
	assert.Equal(t, string(ValidationGeneral), response.Error.Code)
	assert.Contains(t, response.Error.Details, "description: is required")
}

func TestErrorResponse_ToJSON(t *testing.T) {
	response := NewErrorResponse(DistributionLocked, "trace-123")

	raw, err := response.ToJSON()
	require.NoError(t, err)

	var decoded ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "DISTRIBUTION_001", decoded.Error.Code)
	assert.Equal(t, http.StatusForbidden, decoded.GetHTTPStatus())
}

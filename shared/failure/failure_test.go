package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"roomdesk/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{Code: http.StatusBadRequest, Message: "Please select check-in and check-out dates."}

	assert.Equal(t, "Please select check-in and check-out dates.", f.Error())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request from string", err: failure.BadRequestFromString("invalid draft"), code: http.StatusBadRequest, message: "invalid draft"},
		{name: "bad request from error", err: failure.BadRequest(errors.New("decode failed")), code: http.StatusBadRequest, message: "decode failed"},
		{name: "unauthorized", err: failure.Unauthorized("Token has expired"), code: http.StatusUnauthorized, message: "Token has expired"},
		{name: "internal", err: failure.InternalError(errors.New("boom")), code: http.StatusInternalServerError, message: "boom"},
		{name: "not found", err: failure.NotFound("page session not found"), code: http.StatusNotFound, message: "page session not found"},
		{name: "conflict", err: failure.Conflict("booking already in progress"), code: http.StatusConflict, message: "booking already in progress"},
		{name: "bad gateway", err: failure.BadGateway("Room not available"), code: http.StatusBadGateway, message: "Room not available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure

			require.ErrorAs(t, tt.err, &f)
			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.message, f.Message)
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{name: "failure error", input: &failure.Failure{Code: http.StatusBadRequest, Message: "test"}, expected: http.StatusBadRequest},
		{name: "wrapped failure error", input: fmt.Errorf("quote: %w", failure.Conflict("busy")), expected: http.StatusConflict},
		{name: "predefined", input: failure.InvalidLimitParam, expected: http.StatusBadRequest},
		{name: "regular error", input: errors.New("regular error"), expected: http.StatusInternalServerError},
		{name: "nil error", input: nil, expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}

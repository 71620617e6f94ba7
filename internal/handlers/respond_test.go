package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dairy-backend/internal/models"
	"dairy-backend/pkg/utils"
)

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", fmt.Errorf("bad qty: %w", models.ErrValidation), http.StatusBadRequest},
		{"not found", fmt.Errorf("customer 7: %w", models.ErrNotFound), http.StatusNotFound},
		{"duplicate", models.ErrDuplicate, http.StatusConflict},
		{"conflict", models.ErrConflict, http.StatusConflict},
		{"no unbilled", models.ErrNoUnbilledDeliveries, http.StatusUnprocessableEntity},
		{"unknown", errors.New("pq: connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tc.err)
			if rec.Code != tc.status {
				t.Errorf("status = %d, want %d", rec.Code, tc.status)
			}
			var env utils.Envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("body is not an envelope: %v", err)
			}
			if env.Success {
				t.Error("error response marked success")
			}
			if env.Message == "" {
				t.Error("error response has no message")
			}
		})
	}
}

func TestRespondErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	var env utils.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Message != "internal server error" {
		t.Errorf("message = %q, internals leaked to client", env.Message)
	}
}

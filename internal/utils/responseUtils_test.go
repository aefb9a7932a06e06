package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secondbrain/internal/apperrors"
)

func TestSendServiceErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation maps to 400",
			err:        fmt.Errorf("%w: URL is required", apperrors.ErrValidation),
			wantStatus: http.StatusBadRequest,
			wantBody:   "validation failed: URL is required",
		},
		{
			name:       "folder subfolder conflict maps to 400",
			err:        fmt.Errorf("%w: cannot delete folder with subfolders", apperrors.ErrConflict),
			wantStatus: http.StatusBadRequest,
			wantBody:   "conflict: cannot delete folder with subfolders",
		},
		{
			name:       "not found maps to 404",
			err:        fmt.Errorf("%w: item not found", apperrors.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   "not found: item not found",
		},
		{
			name:       "unclassified errors map to 500 without leaking detail",
			err:        errors.New("connection reset by peer"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Internal Server Error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			SendServiceError(rec, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tc.wantBody, body.Error)
		})
	}
}

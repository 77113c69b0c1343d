package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "gatehouse/pkg/domain-errors"
)

type plateRequest struct {
	Plate string `json:"plate"`
	steps []string
}

func (r *plateRequest) Sanitize() {
	r.steps = append(r.steps, "sanitize")
	r.Plate = strings.TrimSpace(r.Plate)
}
func (r *plateRequest) Normalize() {
	r.steps = append(r.steps, "normalize")
	r.Plate = strings.ToUpper(r.Plate)
}
func (r *plateRequest) Validate() error {
	r.steps = append(r.steps, "validate")
	if r.Plate == "" {
		return errors.New("plate is required")
	}
	return nil
}

type lotRequest struct {
	Lot string `json:"lot"`
}

func (r *lotRequest) Validate() error {
	if r.Lot == "" {
		return dErrors.New(dErrors.CodeBadRequest, "lot is required")
	}
	return nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestDecodeAndPrepare(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	t.Run("runs preparation in order", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"plate":"  abc 123 "}`))
		w := httptest.NewRecorder()

		req, ok := DecodeAndPrepare[plateRequest](w, r, logger, ctx, "req-1")

		require.True(t, ok)
		assert.Equal(t, "ABC 123", req.Plate)
		assert.Equal(t, []string{"sanitize", "normalize", "validate"}, req.steps)
	})

	t.Run("malformed json is bad_request", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{plate`))
		w := httptest.NewRecorder()

		req, ok := DecodeAndPrepare[plateRequest](w, r, logger, ctx, "req-2")

		assert.False(t, ok)
		assert.Nil(t, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", decodeBody(t, w).Error)
	})

	t.Run("plain validation error becomes validation_error", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"plate":"   "}`))
		w := httptest.NewRecorder()

		_, ok := DecodeAndPrepare[plateRequest](w, r, logger, ctx, "req-3")

		assert.False(t, ok)
		resp := decodeBody(t, w)
		assert.Equal(t, "validation_error", resp.Error)
		assert.Equal(t, "plate is required", resp.Description)
	})

	t.Run("domain validation error keeps its code", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		w := httptest.NewRecorder()

		_, ok := DecodeAndPrepare[lotRequest](w, r, logger, ctx, "req-4")

		assert.False(t, ok)
		assert.Equal(t, "bad_request", decodeBody(t, w).Error)
	})
}

func TestWriteError(t *testing.T) {
	t.Run("conflict carries details", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.WithDetails(dErrors.CodeDuplicateAddress, "unit taken", map[string]any{
			"resident_id": "r-1",
		}))

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeBody(t, w)
		assert.Equal(t, "duplicate_address", resp.Error)
		assert.Equal(t, "r-1", resp.Details["resident_id"])
	})

	t.Run("already processed maps to 409", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeAlreadyProcessed, "request already processed"))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("foreign error is 500 without description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeBody(t, w)
		assert.Equal(t, "internal_error", resp.Error)
		assert.Empty(t, resp.Description)
	})
}

package idempotency

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
	"gatehouse/pkg/requestcontext"
)

func newRequest(method, path, key string, accountID id.AccountID) *http.Request {
	return newRequestWithBody(method, path, key, `{}`, accountID)
}

func newRequestWithBody(method, path, key, body string, accountID id.AccountID) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if key != "" {
		req.Header.Set(HeaderKey, key)
	}
	ctx := requestcontext.WithPrincipal(req.Context(), accountID, "staff@x.com", "STAFF")
	return req.WithContext(ctx)
}

func TestMiddlewareReplaysCompletedResponse(t *testing.T) {
	var calls atomic.Int32
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"ok":true}`)
	})
	h := Middleware(NewMemory(), time.Hour, discardLogger())(next)
	actor := id.AccountID(uuid.New())

	first := httptest.NewRecorder()
	h.ServeHTTP(first, newRequest(http.MethodPost, "/admin/payments/1/verify", "k1", actor))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, newRequest(http.MethodPost, "/admin/payments/1/verify", "k1", actor))

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, `{"ok":true}`, second.Body.String())
	assert.Equal(t, "true", second.Header().Get(HeaderReplayed))
	assert.Empty(t, first.Header().Get(HeaderReplayed))

	t.Run("keys are scoped per account", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, newRequest(http.MethodPost, "/admin/payments/1/verify", "k1", id.AccountID(uuid.New())))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("reused key on another path is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, newRequest(http.MethodPost, "/admin/payments/2/verify", "k1", actor))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("reused key with another body is rejected", func(t *testing.T) {
		before := calls.Load()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, newRequestWithBody(http.MethodPost, "/admin/payments/1/verify", "k1", `{"note":"again"}`, actor))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, before, calls.Load())
	})

	t.Run("requests without a key pass through", func(t *testing.T) {
		before := calls.Load()
		h.ServeHTTP(httptest.NewRecorder(), newRequest(http.MethodPost, "/admin/payments/1/verify", "", actor))
		h.ServeHTTP(httptest.NewRecorder(), newRequest(http.MethodPost, "/admin/payments/1/verify", "", actor))
		assert.Equal(t, before+2, calls.Load())
	})

	t.Run("GET is never cached", func(t *testing.T) {
		before := calls.Load()
		h.ServeHTTP(httptest.NewRecorder(), newRequest(http.MethodGet, "/admin/payments", "k2", actor))
		h.ServeHTTP(httptest.NewRecorder(), newRequest(http.MethodGet, "/admin/payments", "k2", actor))
		assert.Equal(t, before+2, calls.Load())
	})
}

func TestMiddlewareHandsBodyToHandler(t *testing.T) {
	var seen string
	h := Middleware(NewMemory(), time.Hour, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		seen = string(raw)
		w.WriteHeader(http.StatusCreated)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, newRequestWithBody(http.MethodPost, "/payments", "pay-1", `{"amount":"1000"}`, id.AccountID(uuid.New())))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"amount":"1000"}`, seen)
}

func TestMiddlewareRejectsOversizedBody(t *testing.T) {
	h := Middleware(NewMemory(), time.Hour, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run for an oversized body")
	}))
	req := newRequestWithBody(http.MethodPost, "/payments", "big", strings.Repeat("x", 64), id.AccountID(uuid.New()))
	rec := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rec, req.Body, 16)
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMiddlewareDoesNotStoreServerErrors(t *testing.T) {
	var calls atomic.Int32
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	h := Middleware(NewMemory(), time.Hour, discardLogger())(next)
	actor := id.AccountID(uuid.New())

	first := httptest.NewRecorder()
	h.ServeHTTP(first, newRequest(http.MethodPut, "/admin/dues/configs/2025", "k", actor))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, newRequest(http.MethodPut, "/admin/dues/configs/2025", "k", actor))

	assert.Equal(t, http.StatusInternalServerError, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, int32(2), calls.Load())
}

func TestMiddlewareRejectsInFlightDuplicate(t *testing.T) {
	store := NewMemory()
	actor := id.AccountID(uuid.New())
	ok, err := store.Reserve(context.Background(), actor.String()+":busy", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	h := Middleware(store, time.Hour, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run while the key is reserved")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, newRequest(http.MethodPost, "/admin/registrations/x/approve", "busy", actor))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemory()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "k", &Record{Status: 200, Fingerprint: "POST /x"}, time.Minute))
	rec, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Status)

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	ok, err := store.Reserve(ctx, "lock", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = store.Reserve(ctx, "lock", time.Second)
	assert.False(t, ok)
	now = now.Add(2 * time.Second)
	ok, _ = store.Reserve(ctx, "lock", time.Second)
	assert.True(t, ok, "expired reservation can be taken again")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

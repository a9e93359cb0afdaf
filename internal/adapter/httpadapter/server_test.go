package httpadapter_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/couchcryptid/fire-behaviour-advisory/internal/adapter/httpadapter"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ready(err error) httpadapter.CheckFunc {
	return func(context.Context) error { return err }
}

func serve(srv *httpadapter.Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	srv := httpadapter.NewServer(":0", discardLogger(), ready(errors.New("pipeline idle")))
	assert.Equal(t, http.StatusOK, serve(srv, "/healthz").Code)
}

func TestReadyz(t *testing.T) {
	tests := []struct {
		name   string
		checks []sharedobs.ReadinessChecker
		want   int
	}{
		{"no checks", nil, http.StatusOK},
		{"all pass", []sharedobs.ReadinessChecker{ready(nil), ready(nil)}, http.StatusOK},
		{"one fails", []sharedobs.ReadinessChecker{ready(nil), ready(errors.New("pipeline has not processed any messages yet"))}, http.StatusServiceUnavailable},
		{"all fail", []sharedobs.ReadinessChecker{ready(errors.New("a")), ready(errors.New("b"))}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httpadapter.NewServer(":0", discardLogger(), tt.checks...)
			assert.Equal(t, tt.want, serve(srv, "/readyz").Code)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := httpadapter.NewServer(":0", discardLogger())
	rec := serve(srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestUnknownMethodRejected(t *testing.T) {
	srv := httpadapter.NewServer(":0", discardLogger())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

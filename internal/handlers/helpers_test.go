package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-remit-wallet/internal/middlewares"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/stretchr/testify/require"
)

// serve mounts h under pattern and sends one request as userID.
// uuid.Nil sends the request unauthenticated.
func serve(h http.HandlerFunc, method, pattern, target, body string, userID uuid.UUID, headers ...string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	if userID != uuid.Nil {
		req = req.WithContext(middlewares.WithUserID(req.Context(), userID))
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeResult(t *testing.T, rr *httptest.ResponseRecorder) models.OperationResult {
	t.Helper()
	var res models.OperationResult
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	return res
}

func timeNow() time.Time {
	return time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
}

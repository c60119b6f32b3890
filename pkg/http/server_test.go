package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	xhttp "MarketDash/pkg/http"
	applogger "MarketDash/pkg/logger"
)

type echoRequest struct {
	Kind  string `param:"kind" validate:"required,oneof=a b"`
	Limit int    `query:"limit" default:"10" validate:"gt=0"`
}

type testHandler struct{}

func (testHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/things/:kind", func(c echo.Context) error {
		var req echoRequest
		if errs := xhttp.ReadAndValidateRequest(c, &req); errs != nil {
			return xhttp.BadRequestResponse(c, errs)
		}
		return xhttp.SuccessResponse(c, req)
	})
	e.POST("/busy", func(c echo.Context) error {
		return xhttp.AppErrorResponse(c, xhttp.ConflictError("busy"))
	})
	e.GET("/panic", func(c echo.Context) error {
		panic("kaboom")
	})
}

func newTestServer() *xhttp.Server {
	return xhttp.NewServer(applogger.Nop(), []xhttp.Handler{testHandler{}})
}

func serve(t *testing.T, s *xhttp.Server, method, target string) (*httptest.ResponseRecorder, xhttp.APIResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	var body xhttp.APIResponse
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestServer_Healthz(t *testing.T) {
	rec, body := serve(t, newTestServer(), http.MethodGet, "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, http.StatusOK, body.Status)
	require.Equal(t, map[string]any{"status": "ok"}, body.Data)
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer()
	serve(t, s, http.MethodGet, "/healthz")

	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/healthz",status="200"}`)
}

func TestReadAndValidateRequest_DefaultsAndParams(t *testing.T) {
	rec, body := serve(t, newTestServer(), http.MethodGet, "/things/a")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, map[string]any{"Kind": "a", "Limit": float64(10)}, body.Data)
}

func TestReadAndValidateRequest_Oneof(t *testing.T) {
	rec, body := serve(t, newTestServer(), http.MethodGet, "/things/zzz")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs, ok := body.Data.([]any)
	require.True(t, ok)
	require.Len(t, errs, 1)
	first := errs[0].(map[string]any)
	require.Equal(t, "ERR_ONEOF", first["code"])
	require.Equal(t, "kind", first["field"])
	require.Equal(t, "kind must be one of: a, b", first["message"])
}

func TestAppErrorResponse_Conflict(t *testing.T) {
	rec, body := serve(t, newTestServer(), http.MethodPost, "/busy")

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, http.StatusConflict, body.Status)
	require.Equal(t, "Conflict", body.Message)
}

func TestServer_RecoversPanics(t *testing.T) {
	rec, _ := serve(t, newTestServer(), http.MethodGet, "/panic")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

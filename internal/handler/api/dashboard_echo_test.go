package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"MarketDash/internal/domain/models"
	"MarketDash/internal/handler/api"
	"MarketDash/internal/usecase"
	"MarketDash/internal/view"
	xhttp "MarketDash/pkg/http"
	xlogger "MarketDash/pkg/logger"
	"MarketDash/pkg/util"
)

type stubAPI struct {
	predictErr error
}

func (s *stubAPI) MarketData(context.Context) (*models.MarketSnapshot, error) {
	return &models.MarketSnapshot{BTCOpen: util.Float64(100), BTCCurrent: util.Float64(110)}, nil
}

func (s *stubAPI) VIXCurrentPrice(context.Context) (*models.VixQuote, error) {
	return &models.VixQuote{CurrentPrice: util.Float64(19.5)}, nil
}

func (s *stubAPI) RefreshCache(context.Context) (*models.RefreshResult, error) {
	return &models.RefreshResult{}, nil
}

func (s *stubAPI) Predict(context.Context) (*models.Prediction, error) {
	if s.predictErr != nil {
		return nil, s.predictErr
	}
	one := 1
	return &models.Prediction{Date: "2025-02-24", PredictedClass: &one}, nil
}

type dashFunc func(ctx context.Context, action string) error

func (f dashFunc) Run(ctx context.Context, action string) error { return f(ctx, action) }

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T, dash api.Dashboard, state *view.StateView) *xhttp.Server {
	t.Helper()
	h := api.NewDashboardEchoHandler(xlogger.Nop(), dash, state, time.Second)
	return xhttp.NewServer(xlogger.Nop(), []xhttp.Handler{h})
}

func realDashboard(stub *stubAPI) (api.Dashboard, *view.StateView) {
	state := view.NewStateView(16)
	d := usecase.NewDashboardController(stub, state, util.MustFormatter("pt-BR"))
	return d, state
}

func do(t *testing.T, s *xhttp.Server, method, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestPage(t *testing.T) {
	t.Parallel()
	d, state := realDashboard(&stubAPI{})

	rec, _ := do(t, setup(t, d, state), http.MethodGet, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `id="btcVariation"`)
	require.Contains(t, rec.Body.String(), `/api/actions/`)
}

func TestAction_Predict(t *testing.T) {
	t.Parallel()
	d, state := realDashboard(&stubAPI{})
	srv := setup(t, d, state)

	rec, env := do(t, srv, http.MethodPost, "/api/actions/predict")

	require.Equal(t, http.StatusOK, rec.Code)
	var res api.ActionResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.True(t, res.OK)
	require.Equal(t, "predict", res.Action)
	require.Equal(t, "Operate (possible rise)", res.State.Recommendation)
	require.True(t, res.State.PredictionVisible)
	require.False(t, res.State.Loading)

	_, env = do(t, srv, http.MethodGet, "/api/state")
	var s view.State
	require.NoError(t, json.Unmarshal(env.Data, &s))
	require.Equal(t, "2025-02-24", s.PredictionDate)
}

func TestAction_ChainFailureIsRenderedNotAnHTTPError(t *testing.T) {
	t.Parallel()
	d, state := realDashboard(&stubAPI{predictErr: errors.New("model offline")})

	rec, env := do(t, setup(t, d, state), http.MethodPost, "/api/actions/predict")

	require.Equal(t, http.StatusOK, rec.Code)
	var res api.ActionResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.False(t, res.OK)
	require.Equal(t, "Failed to get prediction: model offline", res.Error)
	require.True(t, res.State.ErrorVisible)
	require.Equal(t, res.Error, res.State.Error)
}

func TestAction_UnknownIsBadRequest(t *testing.T) {
	t.Parallel()
	called := false
	dash := dashFunc(func(context.Context, string) error { called = true; return nil })

	rec, env := do(t, setup(t, dash, view.NewStateView(1)), http.MethodPost, "/api/actions/sell")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, string(env.Data), "ERR_ONEOF")
	require.False(t, called)
}

func TestAction_BusyIsConflict(t *testing.T) {
	t.Parallel()
	dash := dashFunc(func(context.Context, string) error { return usecase.ErrBusy })

	rec, env := do(t, setup(t, dash, view.NewStateView(1)), http.MethodPost, "/api/actions/refresh")

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, http.StatusConflict, env.Status)
	require.Contains(t, string(env.Data), "ERR_CONFLICT")
}

func TestAction_LockFailureIsInternalError(t *testing.T) {
	t.Parallel()
	dash := dashFunc(func(context.Context, string) error { return errors.New("redis: connection refused") })

	rec, _ := do(t, setup(t, dash, view.NewStateView(1)), http.MethodPost, "/api/actions/load")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestStream_SendsSnapshotThenUpdates(t *testing.T) {
	t.Parallel()

	// Arrange
	d, state := realDashboard(&stubAPI{})
	srv := httptest.NewServer(setup(t, d, state).Echo())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first view.State
	require.NoError(t, conn.ReadJSON(&first))
	require.Equal(t, "--", first.BTCCurrent)

	// Act
	require.NoError(t, d.Run(context.Background(), usecase.ActionLoad))

	// Assert: frames keep coming until the market panel is visible.
	for {
		var s view.State
		require.NoError(t, conn.ReadJSON(&s))
		if s.MarketVisible && !s.Loading {
			require.Equal(t, "$110,00", s.BTCCurrent)
			require.Equal(t, "↑ 10,00%", s.BTCVariation)
			require.Equal(t, models.TrendPositive, s.BTCTrend)
			require.Equal(t, "19,50", s.VIXCurrentPrice)
			return
		}
	}
}

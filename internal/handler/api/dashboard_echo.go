package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"MarketDash/internal/domain/models"
	"MarketDash/internal/usecase"
	"MarketDash/internal/view"
	xhttp "MarketDash/pkg/http"
	xlogger "MarketDash/pkg/logger"
)

const writeWait = 10 * time.Second

// Dashboard runs actions by name.
type Dashboard interface {
	Run(ctx context.Context, action string) error
}

// StateSource exposes the rendered dashboard.
type StateSource interface {
	Snapshot() view.State
	Subscribe() <-chan view.State
	Unsubscribe(ch <-chan view.State)
}

// ActionResponse is the body of POST /api/actions/:action.
type ActionResponse struct {
	Action string     `json:"action"`
	OK     bool       `json:"ok"`
	Error  string     `json:"error,omitempty"`
	State  view.State `json:"state"`
}

// DashboardEchoHandler serves the page, the state API and the live stream.
type DashboardEchoHandler struct {
	logger       *xlogger.Logger
	dash         Dashboard
	state        StateSource
	upgrader     websocket.Upgrader
	pingInterval time.Duration
}

func NewDashboardEchoHandler(logger *xlogger.Logger, dash Dashboard, state StateSource, pingInterval time.Duration) *DashboardEchoHandler {
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &DashboardEchoHandler{
		logger: logger,
		dash:   dash,
		state:  state,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		pingInterval: pingInterval,
	}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Page)
	e.GET("/ws", h.Stream)

	g := e.Group("/api")
	g.GET("/state", h.State)
	g.POST("/actions/:action", h.Action)
}

func (h *DashboardEchoHandler) Page(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	return c.HTML(http.StatusOK, dashboardHTML)
}

func (h *DashboardEchoHandler) State(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.state.Snapshot())
}

func (h *DashboardEchoHandler) Action(c echo.Context) error {
	req := &models.ActionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	// The chain always runs to completion so every viewer sees its outcome.
	ctx := context.WithoutCancel(c.Request().Context())
	err := h.dash.Run(ctx, req.Action)

	var aerr *usecase.ActionError
	switch {
	case err == nil:
		return xhttp.SuccessResponse(c, ActionResponse{Action: req.Action, OK: true, State: h.state.Snapshot()})
	case errors.Is(err, usecase.ErrBusy):
		return xhttp.AppErrorResponse(c, xhttp.ConflictError("another action is in progress").
			WithParam("action", req.Action).
			WithError(err))
	case errors.As(err, &aerr):
		// Already rendered into the view as the error banner.
		return xhttp.SuccessResponse(c, ActionResponse{
			Action: req.Action,
			Error:  aerr.Error(),
			State:  h.state.Snapshot(),
		})
	default:
		h.logger.Error("dashboard action error", xlogger.String("action", req.Action), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("action could not be started").WithError(err))
	}
}

// Stream upgrades to a websocket, sends the current frame and then every
// update until the client goes away.
func (h *DashboardEchoHandler) Stream(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	updates := h.state.Subscribe()
	defer h.state.Unsubscribe(updates)

	pongWait := 2 * h.pingInterval
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// The page never sends data; reading only services control frames.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	if err := h.send(conn, h.state.Snapshot()); err != nil {
		return nil
	}

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-gone:
			return nil
		case s, ok := <-updates:
			if !ok {
				return nil
			}
			if err := h.send(conn, s); err != nil {
				h.logger.Debug("websocket write failed", xlogger.Error(err))
				return nil
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		}
	}
}

func (h *DashboardEchoHandler) send(conn *websocket.Conn, s view.State) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(s)
}

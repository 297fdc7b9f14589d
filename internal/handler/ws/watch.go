package ws

import (
	"errors"
	"net/http"
	"time"

	domrepo "ShellWatch/internal/domain/repository"
	"ShellWatch/internal/usecase"
	"ShellWatch/pkg/cache"
	xlogger "ShellWatch/pkg/logger"
	"ShellWatch/pkg/util"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 90 * time.Second
	pingPeriod = 30 * time.Second
)

// WatchHandler streams snapshot refreshes to WebSocket clients at every hour
// boundary. The client must have built a snapshot via the HTTP API first; the
// stream replays the cached snapshot, then pushes a refreshed one each hour.
type WatchHandler struct {
	logger   *xlogger.Logger
	builder  *usecase.SnapshotBuilder
	metrics  domrepo.Metrics
	upgrader websocket.Upgrader
}

func NewWatchHandler(logger *xlogger.Logger, builder *usecase.SnapshotBuilder, metrics domrepo.Metrics) *WatchHandler {
	return &WatchHandler{
		logger:  logger,
		builder: builder,
		metrics: metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (h *WatchHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/watch", h.Watch)
}

// Watch upgrades the connection and pushes one snapshot per hour until the
// client disconnects.
func (h *WatchHandler) Watch(c echo.Context) error {
	identityID := c.QueryParam("identity")
	if identityID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "identity required")
	}

	ctx := c.Request().Context()
	nowHour := util.CurrentUnixHour()
	snapshot, err := h.builder.Cached(ctx, identityID, nowHour)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return echo.NewHTTPError(http.StatusNotFound, "no snapshot for current hour")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "snapshot lookup failed")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("watch upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	h.metrics.WatchSessionStarted()
	defer h.metrics.WatchSessionEnded()
	h.logger.Info("watch session started", xlogger.String("identity", identityID))

	// Drain control frames so pong handlers fire.
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.writeSnapshot(conn, snapshot); err != nil {
		return nil
	}

	pinger := time.NewTicker(pingPeriod)
	defer pinger.Stop()
	hourly := time.NewTimer(util.UntilNextHour(time.Now()))
	defer hourly.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			h.logger.Info("watch session closed", xlogger.String("identity", identityID))
			return nil
		case <-pinger.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case <-hourly.C:
			hour := util.CurrentUnixHour()
			snapshot = h.builder.Refresh(ctx, snapshot, hour)
			if err := h.writeSnapshot(conn, snapshot); err != nil {
				h.logger.Warn("watch push failed", xlogger.Error(err), xlogger.String("identity", identityID))
				return nil
			}
			h.logger.Debug("watch snapshot pushed",
				xlogger.String("identity", identityID),
				xlogger.Int64("hour", hour),
			)
			hourly.Reset(util.UntilNextHour(time.Now()))
		}
	}
}

func (h *WatchHandler) writeSnapshot(conn *websocket.Conn, v interface{}) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

package ws

import (
	"net/http"
	"time"

	"IndexBoard/internal/domain/models"
	"IndexBoard/internal/usecase"
	xlogger "IndexBoard/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// liveUpdate is the frame pushed to dashboard clients once per second.
type liveUpdate struct {
	Clock models.ClockInfo `json:"clock"`
	Quote *models.Quote    `json:"quote,omitempty"`
}

// LiveHandler streams clock and quote updates over a WebSocket. This is the
// push counterpart of the polling endpoints: clients get one frame per second
// instead of hammering /api/clock and /api/quote.
type LiveHandler struct {
	logger   *xlogger.Logger
	chart    *usecase.ChartUseCase
	clock    *usecase.ClockUseCase
	interval time.Duration
	upgrader websocket.Upgrader
}

func NewLiveHandler(logger *xlogger.Logger, chart *usecase.ChartUseCase, clock *usecase.ClockUseCase) *LiveHandler {
	return &LiveHandler{
		logger:   logger,
		chart:    chart,
		clock:    clock,
		interval: time.Second,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The dashboard is served from arbitrary origins in dev setups.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *LiveHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/live", h.Live)
}

func (h *LiveHandler) Live(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()

	// Drain reads so close frames and pings are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		update := liveUpdate{Clock: h.clock.Now()}
		if q, qerr := h.chart.GetQuote(ctx); qerr == nil {
			update.Quote = q
		}

		_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(update); err != nil {
			h.logger.Debug("live client gone", xlogger.Error(err))
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

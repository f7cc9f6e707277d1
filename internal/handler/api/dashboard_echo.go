package api

import (
	"context"
	"time"

	models "IndexBoard/internal/domain/models"
	domrepo "IndexBoard/internal/domain/repository"
	"IndexBoard/internal/usecase"
	xhttp "IndexBoard/pkg/http"
	xlogger "IndexBoard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardEchoHandler exposes the dashboard API: chart series, quote,
// yearly returns, market clock and investment projections.
type DashboardEchoHandler struct {
	logger     *xlogger.Logger
	chart      *usecase.ChartUseCase
	returns    *usecase.ReturnsUseCase
	projection *usecase.ProjectionUseCase
	clock      *usecase.ClockUseCase
	store      domrepo.BarStore // optional, for health reporting
}

func NewDashboardEchoHandler(
	logger *xlogger.Logger,
	chart *usecase.ChartUseCase,
	returns *usecase.ReturnsUseCase,
	projection *usecase.ProjectionUseCase,
	clock *usecase.ClockUseCase,
	store domrepo.BarStore,
) *DashboardEchoHandler {
	return &DashboardEchoHandler{
		logger:     logger,
		chart:      chart,
		returns:    returns,
		projection: projection,
		clock:      clock,
		store:      store,
	}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/chart", h.Chart)
	g.GET("/quote", h.Quote)
	g.GET("/returns", h.Returns)
	g.GET("/clock", h.Clock)
	g.POST("/projection", h.Projection)

	e.GET("/healthz", h.Healthz)
}

func (h *DashboardEchoHandler) Chart(c echo.Context) error {
	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	period := domrepo.NormalizePeriod(req.Period)

	res, err := h.chart.GetChart(c.Request().Context(), period)
	if err != nil {
		h.logger.Error("chart usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UpstreamError("chart"))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=5")
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) Quote(c echo.Context) error {
	res, err := h.chart.GetQuote(c.Request().Context())
	if err != nil {
		h.logger.Error("quote usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UpstreamError("quote"))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) Returns(c echo.Context) error {
	res, err := h.returns.YearlyReturns(c.Request().Context())
	if err != nil {
		h.logger.Error("returns usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UpstreamError("returns"))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=300")
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) Clock(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.clock.Now())
}

func (h *DashboardEchoHandler) Projection(c echo.Context) error {
	req := &models.ProjectionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.projection.Project(models.ProjectionParams{
		InitialInvestment:  req.InitialInvestment,
		MonthlyInvestment:  req.MonthlyInvestment,
		NumYears:           req.NumYears,
		AnnualInterestRate: req.AnnualInterestRate,
		OngoingChargesRate: req.OngoingChargesRate,
	})
	if err != nil {
		h.logger.Error("projection usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("projection"))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) Healthz(c echo.Context) error {
	components := map[string]string{"http": "ok"}
	healthy := true

	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Health(ctx); err != nil {
			components["history"] = "down"
			healthy = false
		} else {
			components["history"] = "ok"
		}
	}

	body := map[string]interface{}{
		"status":     "ok",
		"components": components,
	}
	if !healthy {
		body["status"] = "degraded"
		return xhttp.ServiceUnavailableResponse(c, body)
	}
	return xhttp.SuccessResponse(c, body)
}

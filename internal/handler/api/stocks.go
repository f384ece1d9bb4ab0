package api

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"StockPilot/internal/domain/models"
	"StockPilot/internal/services/risk"
	"StockPilot/internal/usecase"
	xhttp "StockPilot/pkg/http"
	applogger "StockPilot/pkg/logger"
	"StockPilot/pkg/util"
)

// Handler serves the stocks API: tracked-set management, charts, risk
// sizing and training administration.
type Handler struct {
	logger  *applogger.Logger
	stocks  *usecase.Stocks
	risk    *usecase.RiskPlanner
	trainer *usecase.TrainScheduler
}

// NewHandler wires the API handler.
func NewHandler(
	logger *applogger.Logger,
	stocks *usecase.Stocks,
	risk *usecase.RiskPlanner,
	trainer *usecase.TrainScheduler,
) *Handler {
	return &Handler{logger: logger, stocks: stocks, risk: risk, trainer: trainer}
}

// RegisterRoutes mounts the API routes on the Echo instance.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.health)

	g := e.Group("/api")
	g.GET("/stocks", h.list)
	g.POST("/stocks", h.add)
	g.DELETE("/stocks", h.removeAll)
	g.PUT("/stocks/refresh", h.refresh)
	g.GET("/stocks/:ticker", h.get)
	g.DELETE("/stocks/:ticker", h.remove)
	g.GET("/stocks/:ticker/history", h.history)
	g.GET("/stocks/:ticker/risk", h.riskPlan)

	g.POST("/admin/train", h.train)
	g.GET("/models/:ticker", h.modelInfo)
}

func (h *Handler) health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *Handler) list(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.stocks.List())
}

func (h *Handler) add(c echo.Context) error {
	req := new(models.AddStockRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	stock, err := h.stocks.Add(c.Request().Context(), req.Ticker)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, stock)
}

func (h *Handler) get(c echo.Context) error {
	stock, err := h.stocks.Get(c.Request().Context(), c.Param("ticker"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, stock)
}

func (h *Handler) remove(c echo.Context) error {
	if !h.stocks.Remove(c.Param("ticker")) {
		return xhttp.NotFoundResponse(c, "ticker is not tracked")
	}
	return xhttp.NoContentResponse(c)
}

func (h *Handler) removeAll(c echo.Context) error {
	h.stocks.RemoveAll()
	return xhttp.NoContentResponse(c)
}

func (h *Handler) refresh(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.stocks.Refresh(c.Request().Context()))
}

// barPoint is the chart row shape returned by the history endpoint.
type barPoint struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

func (h *Handler) history(c echo.Context) error {
	req := new(models.HistoryRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	ticker := c.Param("ticker")
	ctx := c.Request().Context()

	var (
		bars []models.Bar
		err  error
	)
	// explicit from/to overrides the named period window
	if from, ok := util.ParseTime(c.QueryParam("from")); ok {
		to := util.ParseTimeDefault(c.QueryParam("to"), time.Now().UTC())
		bars, err = h.stocks.HistoryRange(ctx, ticker, from, to)
	} else {
		bars, err = h.stocks.History(ctx, ticker, req.Period)
	}
	if err != nil {
		return h.errorResponse(c, err)
	}

	points := make([]barPoint, len(bars))
	for i, b := range bars {
		points[i] = barPoint{
			Date:   b.Date.Format(util.DateLayout),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}
	return xhttp.SuccessResponse(c, points)
}

func (h *Handler) riskPlan(c echo.Context) error {
	req := new(models.RiskRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	plan, err := h.risk.Plan(c.Request().Context(), c.Param("ticker"), risk.Params{
		EntryPrice:   req.EntryPrice,
		Equity:       req.Equity,
		RiskPerTrade: req.RiskPerTrade,
		ATRMultSL:    req.ATRMultSL,
		ATRMultTP:    req.ATRMultTP,
	})
	if err != nil {
		return h.errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, plan)
}

func (h *Handler) errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrNoData):
		return xhttp.NotFoundResponse(c, err.Error())
	case errors.Is(err, models.ErrModelNotFound):
		return xhttp.NotFoundResponse(c, err.Error())
	case errors.Is(err, models.ErrInvalidRiskInput):
		return xhttp.BadRequestResponse(c, err.Error())
	case errors.Is(err, models.ErrTrainingDataInsufficient):
		return xhttp.UnprocessableResponse(c, err.Error())
	default:
		h.logger.Error("request failed", applogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
}

package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"StockPilot/internal/domain/models"
	xhttp "StockPilot/pkg/http"
	applogger "StockPilot/pkg/logger"
)

// trainAccepted is the response body for a scheduled training batch.
type trainAccepted struct {
	Tickers   []string `json:"tickers"`
	YearsBack int      `json:"years_back"`
	Status    string   `json:"status"`
}

// modelInfoView exposes the registry bookkeeping row.
type modelInfoView struct {
	Ticker        string  `json:"ticker"`
	LastTrainedAt string  `json:"last_trained_at"`
	DataStart     string  `json:"data_start"`
	DataEnd       string  `json:"data_end"`
	TrainScore    float64 `json:"train_score"`
	ValScore      float64 `json:"val_score"`
	IsActive      bool    `json:"is_active"`
}

func (h *Handler) train(c echo.Context) error {
	req := new(models.TrainRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	if err := h.trainer.Schedule(c.Request().Context(), req.Tickers, req.YearsBack); err != nil {
		h.logger.Error("training schedule failed", applogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}

	return xhttp.DataResponse(c, 202, trainAccepted{
		Tickers:   req.Tickers,
		YearsBack: req.YearsBack,
		Status:    "scheduled",
	})
}

func (h *Handler) modelInfo(c echo.Context) error {
	entry, err := h.trainer.ModelInfo(c.Request().Context(), c.Param("ticker"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, modelInfoView{
		Ticker:        entry.Ticker,
		LastTrainedAt: entry.LastTrainedAt.Format(time.RFC3339),
		DataStart:     entry.DataStart,
		DataEnd:       entry.DataEnd,
		TrainScore:    entry.TrainScore,
		ValScore:      entry.ValScore,
		IsActive:      entry.IsActive,
	})
}

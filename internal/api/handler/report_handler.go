package handler

import (
	"errors"
	"net/http"

	"github.com/akachour/wird/internal/api/dto"
	"github.com/akachour/wird/internal/core/domain"
	"github.com/akachour/wird/internal/core/repository"
	"github.com/akachour/wird/internal/core/service"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	ledgerService *service.LedgerService
}

func NewReportHandler(ledgerService *service.LedgerService) *ReportHandler {
	return &ReportHandler{ledgerService: ledgerService}
}

// Completion handles GET /admin/reports/completion
func (h *ReportHandler) Completion(c *gin.Context) {
	entries, err := h.ledgerService.ListAll(c.Request.Context(), repository.EntryFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, dto.CompletionReportResponse{
		CompletionRate: service.CompletionRateByUser(entries),
	})
}

// Totals handles GET /admin/reports/totals. Without a counter parameter all
// four counters are reported; with one, only that counter.
func (h *ReportHandler) Totals(c *gin.Context) {
	counters := domain.CounterNames
	if counter := c.Query("counter"); counter != "" {
		counters = []string{counter}
	}

	entries, err := h.ledgerService.ListAll(c.Request.Context(), repository.EntryFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	totals := make(map[string]map[string]int64, len(counters))
	for _, counter := range counters {
		sums, err := service.SumByUser(entries, counter)
		if err != nil {
			if errors.Is(err, service.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, dto.ErrorResponse{
					Error:   "Bad Request",
					Message: err.Error(),
					Code:    http.StatusBadRequest,
				})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "Internal Server Error",
				Message: err.Error(),
				Code:    http.StatusInternalServerError,
			})
			return
		}
		totals[counter] = sums
	}

	c.JSON(http.StatusOK, dto.TotalsReportResponse{Totals: totals})
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/akachour/wird/internal/api/dto"
	"github.com/akachour/wird/internal/api/middleware"
	"github.com/akachour/wird/internal/api/util"
	"github.com/akachour/wird/internal/core/domain"
	"github.com/akachour/wird/internal/core/repository"
	"github.com/akachour/wird/internal/core/service"
	"github.com/akachour/wird/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Allowed fields for admin entry queries and ordering
var (
	entryQueryFields = []string{"username", "salah_completed", "al_asaas_count",
		"marboota_shareef_count", "fatiha_count", "zikr_mufrith_count", "created_at"}
	entryOrderFields = []string{"id", "username", "created_at"}
)

type EntryHandler struct {
	ledgerService *service.LedgerService
}

func NewEntryHandler(ledgerService *service.LedgerService) *EntryHandler {
	return &EntryHandler{ledgerService: ledgerService}
}

// CreateEntry handles POST /entries. The entry is always recorded for the
// session's own username.
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Not logged in",
			Code:    http.StatusUnauthorized,
		})
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	entry, err := h.ledgerService.Append(c.Request.Context(), session.Username, service.AppendInput{
		SalahCompleted:       req.SalahCompleted,
		AlAsaasCount:         req.AlAsaasCount,
		MarbootaShareefCount: req.MarbootaShareefCount,
		FatihaCount:          req.FatihaCount,
		ZikrMufrithCount:     req.ZikrMufrithCount,
		Notes:                req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
		} else {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to record entry",
				Code:    http.StatusInternalServerError,
			})
		}
		return
	}

	metrics.EntriesSubmitted.Inc()

	c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// ListMyEntries handles GET /entries: the session user's full history,
// newest first.
func (h *EntryHandler) ListMyEntries(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Not logged in",
			Code:    http.StatusUnauthorized,
		})
		return
	}

	entries, err := h.ledgerService.ListForUser(c.Request.Context(), session.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	response := dto.EntryListResponse{
		Items: make([]dto.EntryResponse, len(entries)),
		Pagination: dto.PaginationInfo{
			Total:      len(entries),
			Page:       1,
			PerPage:    len(entries),
			TotalPages: 1,
		},
	}
	for i, entry := range entries {
		response.Items[i] = toEntryResponse(entry)
	}

	c.JSON(http.StatusOK, response)
}

// ListAllEntries handles GET /admin/entries
func (h *EntryHandler) ListAllEntries(c *gin.Context) {
	// Parse pagination parameters
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "25"))

	filter := repository.EntryFilter{
		ListFilter: util.ListFilter{
			Page:    page,
			PerPage: perPage,
		},
	}

	// Parse query filters
	if queryStr := c.Query("query"); queryStr != "" {
		filters, err := util.ParseQueryString(queryStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
			return
		}

		if err := util.ValidateFilterFields(filters, entryQueryFields); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
			return
		}

		filter.Filters = filters
	}

	// Parse order
	if orderStr := c.Query("order"); orderStr != "" {
		orders, err := util.ParseOrderString(orderStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
			return
		}

		if err := util.ValidateOrderFields(orders, entryOrderFields); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
			return
		}

		filter.Order = orders
	}

	entries, err := h.ledgerService.ListAll(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	count, _ := h.ledgerService.CountAll(c.Request.Context(), filter)

	totalPages := 0
	if perPage > 0 {
		totalPages = (count + perPage - 1) / perPage
	}

	response := dto.EntryListResponse{
		Items: make([]dto.EntryResponse, len(entries)),
		Pagination: dto.PaginationInfo{
			Total:      count,
			Page:       page,
			PerPage:    perPage,
			TotalPages: totalPages,
		},
	}
	for i, entry := range entries {
		response.Items[i] = toEntryResponse(entry)
	}

	c.JSON(http.StatusOK, response)
}

func toEntryResponse(entry *domain.Entry) dto.EntryResponse {
	return dto.EntryResponse{
		ID:                   entry.ID,
		Username:             entry.Username,
		SalahCompleted:       entry.SalahCompleted,
		AlAsaasCount:         entry.AlAsaasCount,
		MarbootaShareefCount: entry.MarbootaShareefCount,
		FatihaCount:          entry.FatihaCount,
		ZikrMufrithCount:     entry.ZikrMufrithCount,
		Notes:                entry.Notes,
		CreatedAt:            entry.CreatedAt,
	}
}

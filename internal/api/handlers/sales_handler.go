package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/Shivarajkushals/Dashboard/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type SalesHandler struct {
	service *service.SalesService
}

func NewSalesHandler(service *service.SalesService) *SalesHandler {
	return &SalesHandler{service: service}
}

func (h *SalesHandler) parseFilter(c *gin.Context) (domain.FilterSet, bool) {
	var q summaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return domain.FilterSet{}, false
	}

	f, details, err := q.filterSet()
	switch {
	case errors.Is(err, errDatesRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": errDatesRequired.Error()})
		return domain.FilterSet{}, false
	case err != nil:
		body := gin.H{"error": "invalid query"}
		if details != nil {
			body["details"] = details
		} else {
			body["details"] = err.Error()
		}
		c.JSON(http.StatusBadRequest, body)
		return domain.FilterSet{}, false
	}
	return f, true
}

func (h *SalesHandler) GetStoreSummary(c *gin.Context) {
	f, ok := h.parseFilter(c)
	if !ok {
		return
	}
	respond(c, "store summary", func(ctx context.Context) (any, error) {
		rows, err := h.service.StoreSummary(ctx, f)
		return nonNil(rows), err
	})
}

func (h *SalesHandler) GetShopTypeSummary(c *gin.Context) {
	f, ok := h.parseFilter(c)
	if !ok {
		return
	}
	respond(c, "shop type summary", func(ctx context.Context) (any, error) {
		rows, err := h.service.ShopTypeSummary(ctx, f)
		return nonNil(rows), err
	})
}

func (h *SalesHandler) GetMonthOnMonth(c *gin.Context) {
	f, ok := h.parseFilter(c)
	if !ok {
		return
	}
	respond(c, "month on month", func(ctx context.Context) (any, error) {
		return h.service.MonthOnMonth(ctx, f)
	})
}

func (h *SalesHandler) GetStoreList(c *gin.Context) {
	respond(c, "store list", func(ctx context.Context) (any, error) {
		rows, err := h.service.Stores(ctx)
		return nonNil(rows), err
	})
}

func (h *SalesHandler) GetShopTypeList(c *gin.Context) {
	respond(c, "shop type list", func(ctx context.Context) (any, error) {
		rows, err := h.service.ShopTypes(ctx)
		return nonNil(rows), err
	})
}

func (h *SalesHandler) GetTranTypeList(c *gin.Context) {
	respond(c, "tran type list", func(ctx context.Context) (any, error) {
		rows, err := h.service.TranTypes(ctx)
		return nonNil(rows), err
	})
}

func respond(c *gin.Context, what string, load func(context.Context) (any, error)) {
	data, err := load(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("failed to load " + what)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load " + what,
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, data)
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

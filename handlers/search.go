package handlers

import (
	"context"
	"errors"
	"net/http"

	"providerhub/config"
	"providerhub/services/search"
	"providerhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchHandler serves provider discovery.
type SearchHandler struct {
	Service search.SearchService
}

func NewSearchHandler(service search.SearchService) *SearchHandler {
	return &SearchHandler{Service: service}
}

// SearchProvidersHandler handles GET /api/providers/search.
func (h *SearchHandler) SearchProvidersHandler(c *gin.Context) {
	logger := getLogger(c)

	var params search.SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Unreadable search query", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid search parameters", err.Error())
		return
	}

	filters, err := search.Normalize(params)
	if err != nil {
		h.respondError(c, logger, params, err)
		return
	}

	resp, err := h.Service.Search(c.Request.Context(), filters)
	if err != nil {
		h.respondError(c, logger, params, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SearchHandler) respondError(c *gin.Context, logger *zap.Logger, params search.SearchParams, err error) {
	var verr *search.ValidationError
	if errors.As(err, &verr) {
		logger.Info("Rejected search parameters", zap.Any("params", params), zap.Any("errors", verr.Fields))
		c.AbortWithStatusJSON(http.StatusBadRequest, utils.ErrorResponse{
			Message: "Invalid search parameters",
			Errors:  verr.Fields,
		})
		return
	}

	if errors.Is(err, context.Canceled) {
		logger.Warn("Provider search cancelled", zap.Any("params", params), zap.Error(err))
	} else {
		logger.Error("Provider search failed",
			zap.Any("params", params),
			zap.Error(err),
			zap.Stack("stack"),
		)
	}

	resp := utils.ErrorResponse{Message: "Internal Server Error"}
	if !config.IsProduction() {
		resp.Details = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
}

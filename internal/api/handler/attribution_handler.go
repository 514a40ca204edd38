package handler

import (
	"Pulse/internal/pkg/response"
	"Pulse/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AttributionHandler struct {
	attributionSvc service.AttributionService
}

func NewAttributionHandler(attributionSvc service.AttributionService) *AttributionHandler {
	return &AttributionHandler{
		attributionSvc: attributionSvc,
	}
}

func (s *AttributionHandler) GetRollup(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	rollup, err := s.attributionSvc.Rollup(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rollup)
}

package handler

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/pkg/response"
	"Pulse/internal/pkg/util"
	"Pulse/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsSvc service.AnalyticsService
	velocitySvc  service.VelocityService
}

func NewAnalyticsHandler(analyticsSvc service.AnalyticsService, velocitySvc service.VelocityService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsSvc: analyticsSvc,
		velocitySvc:  velocitySvc,
	}
}

func (s *AnalyticsHandler) GetQualityRank(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	rank, err := s.analyticsSvc.GetQualityRank(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rank)
}

func (s *AnalyticsHandler) GetTopPerformers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	items, err := s.analyticsSvc.GetTopPerformers(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

func (s *AnalyticsHandler) GetLongTailChampions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	items, err := s.analyticsSvc.GetLongTailChampions(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

func (s *AnalyticsHandler) GetReferrers(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("article_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	report, err := s.analyticsSvc.GetReferrers(c.Request.Context(), articleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}

func (s *AnalyticsHandler) ListRecentMilestones(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	items, err := s.velocitySvc.ListRecentMilestones(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

func (s *AnalyticsHandler) GetReadTime(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("article_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	days, err := strconv.Atoi(c.DefaultQuery("days", "14"))
	if err != nil || days <= 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	readTime, err := s.analyticsSvc.GetReadTime(c.Request.Context(), articleID, days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, readTime)
}

func (s *AnalyticsHandler) GetReactionGaps(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	gaps, err := s.analyticsSvc.GetReactionGaps(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(gaps) > limit {
		gaps = gaps[:limit]
	}
	response.Success(c, gaps)
}

func (s *AnalyticsHandler) GetOverview(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	overview, err := s.analyticsSvc.GetOverview(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, overview)
}

func (s *AnalyticsHandler) GetRestarts(c *gin.Context) {
	restarts, err := s.velocitySvc.DetectRestarts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, restarts)
}

func (s *AnalyticsHandler) ListMilestones(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("article_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	milestones, err := s.velocitySvc.ListMilestones(c.Request.Context(), articleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, milestones)
}

func (s *AnalyticsHandler) RecordMilestone(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("article_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.MilestoneCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	milestone, err := s.velocitySvc.RecordMilestone(c.Request.Context(), articleID, req.EventType, req.Description, req.OccurredAt)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, milestone)
}
